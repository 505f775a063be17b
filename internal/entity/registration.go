package entity

import "time"

type Registration struct {
	ID           int64     `json:"id" db:"id"`
	UserID       int64     `json:"userId" db:"user_id"`
	EventID      int64     `json:"eventId" db:"event_id"`
	RegisteredAt time.Time `json:"registeredAt" db:"registered_at"`
}

// RegistrationWithEvent is a registration joined with its event, the shape
// returned when listing a user's own registrations.
type RegistrationWithEvent struct {
	Registration
	Event Event `json:"event"`
}

// RegistrationWithUser is a registration joined with the registrant's
// contact fields, the shape returned on the admin per-event listing.
type RegistrationWithUser struct {
	Registration
	UserName  string `json:"userName"`
	UserEmail string `json:"userEmail"`
	UserPhone string `json:"userPhone,omitempty"`
}

// RegistrationDetails is the populated result of a successful registration:
// the stored row plus the event and the registrant's public fields.
type RegistrationDetails struct {
	Registration
	Event     Event  `json:"event"`
	UserName  string `json:"userName"`
	UserEmail string `json:"userEmail"`
}
