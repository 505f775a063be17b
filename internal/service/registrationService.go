package service

import (
	"context"
	"errors"
	"fmt"

	repository "github.com/eventhub/eventhub-api/internal/database/postgres"
	"github.com/eventhub/eventhub-api/internal/entity"

	"github.com/sirupsen/logrus"
)

// RegistrationStatus reports whether the caller holds a live registration for
// an event.
type RegistrationStatus struct {
	IsRegistered bool                 `json:"isRegistered"`
	Registration *entity.Registration `json:"registration"`
}

type registrationService struct {
	registrationRepo repository.RegistrationRepository
	eventRepo        repository.EventRepository
}

// NewRegistrationService creates a new instance of RegistrationService.
func NewRegistrationService(
	registrationRepo repository.RegistrationRepository,
	eventRepo repository.EventRepository,
) RegistrationService {
	return &registrationService{
		registrationRepo: registrationRepo,
		eventRepo:        eventRepo,
	}
}

// Register creates a registration for the caller on the given event. The
// event must exist. Duplicates are refused by the storage-level unique
// constraint, so two racing calls for the same user and event cannot both
// succeed; the application-level lookup before the insert only exists to give
// the common case a clean error without burning a sequence value.
func (s *registrationService) Register(ctx context.Context, identity entity.Identity, eventID int64) (*entity.RegistrationDetails, error) {
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		return nil, err
	}

	_, err := s.registrationRepo.GetByEventAndUser(ctx, eventID, identity.UserID)
	if err == nil {
		return nil, entity.ErrAlreadyRegistered
	}
	if !errors.Is(err, entity.ErrRegistrationNotFound) {
		return nil, fmt.Errorf("failed to check existing registration: %w", err)
	}

	registration := &entity.Registration{
		UserID:  identity.UserID,
		EventID: eventID,
	}

	if err := s.registrationRepo.Create(ctx, registration); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"registration_id": registration.ID,
		"event_id":        eventID,
		"user_id":         identity.UserID,
	}).Info("registration created")

	details, err := s.registrationRepo.GetDetails(ctx, registration.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load registration details: %w", err)
	}
	return details, nil
}

// Cancel removes a registration. Only the owning user or an admin may cancel;
// a second cancel of the same id fails with not-found.
func (s *registrationService) Cancel(ctx context.Context, identity entity.Identity, registrationID int64) error {
	registration, err := s.registrationRepo.GetByID(ctx, registrationID)
	if err != nil {
		return err
	}

	if registration.UserID != identity.UserID && !identity.IsAdmin() {
		return entity.ErrForbidden
	}

	if err := s.registrationRepo.Delete(ctx, registrationID); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"registration_id": registrationID,
		"cancelled_by":    identity.UserID,
	}).Info("registration cancelled")

	return nil
}

func (s *registrationService) ListForUser(ctx context.Context, identity entity.Identity) ([]*entity.RegistrationWithEvent, error) {
	registrations, err := s.registrationRepo.GetByUserID(ctx, identity.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user registrations: %w", err)
	}
	return registrations, nil
}

func (s *registrationService) ListForEvent(ctx context.Context, eventID int64) ([]*entity.RegistrationWithUser, error) {
	registrations, err := s.registrationRepo.GetByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list event registrations: %w", err)
	}
	return registrations, nil
}

// CheckStatus is a pure lookup with no side effects.
func (s *registrationService) CheckStatus(ctx context.Context, identity entity.Identity, eventID int64) (*RegistrationStatus, error) {
	registration, err := s.registrationRepo.GetByEventAndUser(ctx, eventID, identity.UserID)
	if errors.Is(err, entity.ErrRegistrationNotFound) {
		return &RegistrationStatus{IsRegistered: false}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to check registration status: %w", err)
	}

	return &RegistrationStatus{
		IsRegistered: true,
		Registration: registration,
	}, nil
}
