package service

import (
	"context"

	repository "github.com/eventhub/eventhub-api/internal/database/postgres"
	"github.com/eventhub/eventhub-api/internal/entity"
)

type EventService interface {
	// Catalog operations
	CreateEvent(ctx context.Context, identity entity.Identity, req *CreateEventRequest) (*entity.Event, error)
	GetEvent(ctx context.Context, id int64) (*entity.Event, error)
	GetAllEvents(ctx context.Context, filter *repository.EventFilter) ([]*entity.Event, error)
	UpdateEvent(ctx context.Context, id int64, req *UpdateEventRequest) (*entity.Event, error)
	DeleteEvent(ctx context.Context, id int64) error

	// Admin operations
	GetStats(ctx context.Context) (*entity.Stats, error)
}

// RegistrationService is the ledger enforcing registration uniqueness and
// ownership rules.
type RegistrationService interface {
	Register(ctx context.Context, identity entity.Identity, eventID int64) (*entity.RegistrationDetails, error)
	Cancel(ctx context.Context, identity entity.Identity, registrationID int64) error
	ListForUser(ctx context.Context, identity entity.Identity) ([]*entity.RegistrationWithEvent, error)
	ListForEvent(ctx context.Context, eventID int64) ([]*entity.RegistrationWithUser, error)
	CheckStatus(ctx context.Context, identity entity.Identity, eventID int64) (*RegistrationStatus, error)
}

type AuthService interface {
	Signup(ctx context.Context, req *SignupRequest) (*AuthResponse, error)
	Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error)
	Profile(ctx context.Context, userID int64) (*entity.User, error)
	UpdateProfile(ctx context.Context, userID int64, req *UpdateProfileRequest) (*entity.User, error)
}

// EventCache is the optional read-through cache consulted on event lookups.
type EventCache interface {
	Get(ctx context.Context, id int64) (*entity.Event, error)
	Set(ctx context.Context, event *entity.Event) error
	Delete(ctx context.Context, id int64) error
}
