package service

import (
	"context"
	"fmt"
	"time"

	repository "github.com/eventhub/eventhub-api/internal/database/postgres"
	"github.com/eventhub/eventhub-api/internal/entity"

	"github.com/sirupsen/logrus"
)

// CreateEventRequest carries the data needed to publish an event. Every
// violated field is reported, not just the first one.
type CreateEventRequest struct {
	Title       string          `json:"title" validate:"required"`
	Description string          `json:"description" validate:"required"`
	Date        time.Time       `json:"date" validate:"required"`
	Time        string          `json:"time" validate:"required"`
	Category    entity.Category `json:"category" validate:"required,oneof=Conference Workshop Seminar Concert Sports Cultural Networking Other"`
	Venue       string          `json:"venue" validate:"required"`
	Lat         *float64        `json:"lat" validate:"required"`
	Lng         *float64        `json:"lng" validate:"required"`
	Address     string          `json:"address"`
	Image       string          `json:"image"`
	Capacity    int             `json:"capacity"`
}

// UpdateEventRequest is a sparse merge: empty fields keep the stored value.
// Lat and lng are replaced only when both are supplied.
type UpdateEventRequest struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Date        *time.Time      `json:"date"`
	Time        string          `json:"time"`
	Category    entity.Category `json:"category" validate:"omitempty,oneof=Conference Workshop Seminar Concert Sports Cultural Networking Other"`
	Venue       string          `json:"venue"`
	Lat         *float64        `json:"lat"`
	Lng         *float64        `json:"lng"`
	Address     string          `json:"address"`
	Image       string          `json:"image"`
	Capacity    int             `json:"capacity"`
}

type eventService struct {
	eventRepo        repository.EventRepository
	userRepo         repository.UserRepository
	registrationRepo repository.RegistrationRepository
	cache            EventCache
}

// NewEventService creates a new instance of EventService. cache may be nil,
// in which case every lookup goes straight to the store.
func NewEventService(
	eventRepo repository.EventRepository,
	userRepo repository.UserRepository,
	registrationRepo repository.RegistrationRepository,
	cache EventCache,
) EventService {
	return &eventService{
		eventRepo:        eventRepo,
		userRepo:         userRepo,
		registrationRepo: registrationRepo,
		cache:            cache,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, identity entity.Identity, req *CreateEventRequest) (*entity.Event, error) {
	if err := entity.ValidateStruct(req); err != nil {
		return nil, err
	}

	event := &entity.Event{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Time:        req.Time,
		Category:    req.Category,
		Venue:       req.Venue,
		Location: entity.Location{
			Lat:     *req.Lat,
			Lng:     *req.Lng,
			Address: req.Address,
		},
		Image:     req.Image,
		Capacity:  req.Capacity,
		CreatedBy: identity.UserID,
	}

	if event.Capacity == 0 {
		event.Capacity = entity.DefaultCapacity
	}
	if event.Image == "" {
		event.Image = entity.DefaultImage
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"event_id": event.ID,
		"category": event.Category,
		"admin_id": identity.UserID,
	}).Info("event created")

	return event, nil
}

func (s *eventService) GetEvent(ctx context.Context, id int64) (*entity.Event, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, id); err == nil && cached != nil {
			return cached, nil
		}
	}

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, event); err != nil {
			logrus.WithError(err).Warn("failed to cache event")
		}
	}

	return event, nil
}

func (s *eventService) GetAllEvents(ctx context.Context, filter *repository.EventFilter) ([]*entity.Event, error) {
	events, err := s.eventRepo.GetAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to get events: %w", err)
	}
	return events, nil
}

func (s *eventService) UpdateEvent(ctx context.Context, id int64, req *UpdateEventRequest) (*entity.Event, error) {
	if err := entity.ValidateStruct(req); err != nil {
		return nil, err
	}

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != "" {
		event.Title = req.Title
	}
	if req.Description != "" {
		event.Description = req.Description
	}
	if req.Date != nil && !req.Date.IsZero() {
		event.Date = *req.Date
	}
	if req.Time != "" {
		event.Time = req.Time
	}
	if req.Category != "" {
		event.Category = req.Category
	}
	if req.Venue != "" {
		event.Venue = req.Venue
	}
	if req.Capacity != 0 {
		event.Capacity = req.Capacity
	}
	if req.Image != "" {
		event.Image = req.Image
	}

	// Coordinates move together. With only one of the pair supplied the whole
	// location sub-record is kept as stored.
	if req.Lat != nil && req.Lng != nil {
		address := event.Location.Address
		if req.Address != "" {
			address = req.Address
		}
		event.Location = entity.Location{
			Lat:     *req.Lat,
			Lng:     *req.Lng,
			Address: address,
		}
	}

	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Delete(ctx, id); err != nil {
			logrus.WithError(err).Warn("failed to invalidate event cache")
		}
	}

	return event, nil
}

// DeleteEvent removes the event together with every registration referencing
// it. The repository performs both removals in one transaction, so no reader
// can observe a registration whose event is gone.
func (s *eventService) DeleteEvent(ctx context.Context, id int64) error {
	if err := s.eventRepo.DeleteWithRegistrations(ctx, id); err != nil {
		return err
	}

	if s.cache != nil {
		if err := s.cache.Delete(ctx, id); err != nil {
			logrus.WithError(err).Warn("failed to invalidate event cache")
		}
	}

	logrus.WithField("event_id", id).Info("event deleted with its registrations")
	return nil
}

// GetStats returns exact collection counts at call time. Never served from
// cache.
func (s *eventService) GetStats(ctx context.Context) (*entity.Stats, error) {
	totalEvents, err := s.eventRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count events: %w", err)
	}

	totalUsers, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	totalRegistrations, err := s.registrationRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count registrations: %w", err)
	}

	return &entity.Stats{
		TotalEvents:        totalEvents,
		TotalUsers:         totalUsers,
		TotalRegistrations: totalRegistrations,
	}, nil
}
