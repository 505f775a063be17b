package repository

import (
	"context"
	"time"

	"github.com/eventhub/eventhub-api/internal/entity"
)

// EventFilter narrows the public event listing. Zero values mean "no filter".
type EventFilter struct {
	Search   string
	Category string
	DateFrom time.Time
	DateTo   time.Time
}

type EventRepository interface {
	Create(ctx context.Context, event *entity.Event) error
	GetByID(ctx context.Context, id int64) (*entity.Event, error)
	GetAll(ctx context.Context, filter *EventFilter) ([]*entity.Event, error)
	Update(ctx context.Context, event *entity.Event) error

	// DeleteWithRegistrations removes the event and every registration that
	// references it inside a single transaction, so readers never observe a
	// registration whose event is gone.
	DeleteWithRegistrations(ctx context.Context, id int64) error

	Count(ctx context.Context) (int64, error)
}

type RegistrationRepository interface {
	Create(ctx context.Context, registration *entity.Registration) error
	GetByID(ctx context.Context, id int64) (*entity.Registration, error)
	GetByEventAndUser(ctx context.Context, eventID, userID int64) (*entity.Registration, error)
	Delete(ctx context.Context, id int64) error

	// Query operations
	GetByUserID(ctx context.Context, userID int64) ([]*entity.RegistrationWithEvent, error)
	GetByEventID(ctx context.Context, eventID int64) ([]*entity.RegistrationWithUser, error)
	GetDetails(ctx context.Context, id int64) (*entity.RegistrationDetails, error)

	Count(ctx context.Context) (int64, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error

	Count(ctx context.Context) (int64, error)
}
