package entity

import (
	"time"
)

type Category string

const (
	CategoryConference Category = "Conference"
	CategoryWorkshop   Category = "Workshop"
	CategorySeminar    Category = "Seminar"
	CategoryConcert    Category = "Concert"
	CategorySports     Category = "Sports"
	CategoryCultural   Category = "Cultural"
	CategoryNetworking Category = "Networking"
	CategoryOther      Category = "Other"
)

// Categories lists every allowed event category.
var Categories = []Category{
	CategoryConference,
	CategoryWorkshop,
	CategorySeminar,
	CategoryConcert,
	CategorySports,
	CategoryCultural,
	CategoryNetworking,
	CategoryOther,
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

const (
	DefaultCapacity = 100
	DefaultImage    = "default-event.jpg"
)

type Location struct {
	Lat     float64 `json:"lat" db:"lat"`
	Lng     float64 `json:"lng" db:"lng"`
	Address string  `json:"address,omitempty" db:"address"`
}

type Event struct {
	ID          int64     `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Date        time.Time `json:"date" db:"date"`
	Time        string    `json:"time" db:"event_time"`
	Category    Category  `json:"category" db:"category"`
	Venue       string    `json:"venue" db:"venue"`
	Location    Location  `json:"location"`
	Image       string    `json:"image" db:"image"`
	Capacity    int       `json:"capacity" db:"capacity"`
	CreatedBy   int64     `json:"createdBy" db:"created_by"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`

	// Creator's public fields, joined on reads.
	CreatedByName  string `json:"createdByName,omitempty"`
	CreatedByEmail string `json:"createdByEmail,omitempty"`
}

// Stats are exact collection counts taken at call time.
type Stats struct {
	TotalEvents        int64 `json:"totalEvents"`
	TotalUsers         int64 `json:"totalUsers"`
	TotalRegistrations int64 `json:"totalRegistrations"`
}
