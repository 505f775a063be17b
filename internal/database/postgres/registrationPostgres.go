package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/eventhub/eventhub-api/internal/entity"
	"github.com/lib/pq"
)

type registrationRepository struct {
	db *sql.DB
}

func NewRegistrationRepository(db *sql.DB) RegistrationRepository {
	return &registrationRepository{db: db}
}

// Postgres error codes we translate into domain errors.
const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

// Create inserts a registration. The UNIQUE (user_id, event_id) constraint is
// the authority on duplicates: two racing inserts for the same pair cannot
// both commit, whichever loses surfaces as ErrAlreadyRegistered.
func (r *registrationRepository) Create(ctx context.Context, registration *entity.Registration) error {
	query := `
		INSERT INTO registrations (user_id, event_id, registered_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	registration.RegisteredAt = time.Now()

	err := r.db.QueryRowContext(ctx, query,
		registration.UserID,
		registration.EventID,
		registration.RegisteredAt,
	).Scan(&registration.ID)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqUniqueViolation:
			return entity.ErrAlreadyRegistered
		case pqForeignKeyViolation:
			return entity.ErrEventNotFound
		}
	}
	if err != nil {
		return fmt.Errorf("failed to create registration: %w", err)
	}
	return nil
}

func (r *registrationRepository) GetByID(ctx context.Context, id int64) (*entity.Registration, error) {
	query := `SELECT id, user_id, event_id, registered_at FROM registrations WHERE id = $1`

	var registration entity.Registration
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&registration.ID,
		&registration.UserID,
		&registration.EventID,
		&registration.RegisteredAt,
	)
	if err == sql.ErrNoRows {
		return nil, entity.ErrRegistrationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get registration: %w", err)
	}
	return &registration, nil
}

func (r *registrationRepository) GetByEventAndUser(ctx context.Context, eventID, userID int64) (*entity.Registration, error) {
	query := `SELECT id, user_id, event_id, registered_at FROM registrations WHERE event_id = $1 AND user_id = $2`

	var registration entity.Registration
	err := r.db.QueryRowContext(ctx, query, eventID, userID).Scan(
		&registration.ID,
		&registration.UserID,
		&registration.EventID,
		&registration.RegisteredAt,
	)
	if err == sql.ErrNoRows {
		return nil, entity.ErrRegistrationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get registration: %w", err)
	}
	return &registration, nil
}

func (r *registrationRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM registrations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete registration: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return entity.ErrRegistrationNotFound
	}

	return nil
}

func (r *registrationRepository) GetByUserID(ctx context.Context, userID int64) ([]*entity.RegistrationWithEvent, error) {
	query := `
		SELECT r.id, r.user_id, r.event_id, r.registered_at,
		       e.id, e.title, e.description, e.date, e.event_time, e.category, e.venue,
		       e.lat, e.lng, e.address, e.image, e.capacity, e.created_by, e.created_at, e.updated_at
		FROM registrations r
		JOIN events e ON e.id = r.event_id
		WHERE r.user_id = $1
		ORDER BY r.registered_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query user registrations: %w", err)
	}
	defer rows.Close()

	var registrations []*entity.RegistrationWithEvent
	for rows.Next() {
		var reg entity.RegistrationWithEvent
		err := rows.Scan(
			&reg.ID,
			&reg.UserID,
			&reg.EventID,
			&reg.RegisteredAt,
			&reg.Event.ID,
			&reg.Event.Title,
			&reg.Event.Description,
			&reg.Event.Date,
			&reg.Event.Time,
			&reg.Event.Category,
			&reg.Event.Venue,
			&reg.Event.Location.Lat,
			&reg.Event.Location.Lng,
			&reg.Event.Location.Address,
			&reg.Event.Image,
			&reg.Event.Capacity,
			&reg.Event.CreatedBy,
			&reg.Event.CreatedAt,
			&reg.Event.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan registration: %w", err)
		}
		registrations = append(registrations, &reg)
	}

	return registrations, rows.Err()
}

func (r *registrationRepository) GetByEventID(ctx context.Context, eventID int64) ([]*entity.RegistrationWithUser, error) {
	query := `
		SELECT r.id, r.user_id, r.event_id, r.registered_at,
		       u.name, u.email, u.phone
		FROM registrations r
		JOIN users u ON u.id = r.user_id
		WHERE r.event_id = $1
		ORDER BY r.registered_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to query event registrations: %w", err)
	}
	defer rows.Close()

	var registrations []*entity.RegistrationWithUser
	for rows.Next() {
		var reg entity.RegistrationWithUser
		err := rows.Scan(
			&reg.ID,
			&reg.UserID,
			&reg.EventID,
			&reg.RegisteredAt,
			&reg.UserName,
			&reg.UserEmail,
			&reg.UserPhone,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan registration: %w", err)
		}
		registrations = append(registrations, &reg)
	}

	return registrations, rows.Err()
}

func (r *registrationRepository) GetDetails(ctx context.Context, id int64) (*entity.RegistrationDetails, error) {
	query := `
		SELECT r.id, r.user_id, r.event_id, r.registered_at,
		       e.id, e.title, e.description, e.date, e.event_time, e.category, e.venue,
		       e.lat, e.lng, e.address, e.image, e.capacity, e.created_by, e.created_at, e.updated_at,
		       u.name, u.email
		FROM registrations r
		JOIN events e ON e.id = r.event_id
		JOIN users u ON u.id = r.user_id
		WHERE r.id = $1
	`

	var details entity.RegistrationDetails
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&details.ID,
		&details.UserID,
		&details.EventID,
		&details.RegisteredAt,
		&details.Event.ID,
		&details.Event.Title,
		&details.Event.Description,
		&details.Event.Date,
		&details.Event.Time,
		&details.Event.Category,
		&details.Event.Venue,
		&details.Event.Location.Lat,
		&details.Event.Location.Lng,
		&details.Event.Location.Address,
		&details.Event.Image,
		&details.Event.Capacity,
		&details.Event.CreatedBy,
		&details.Event.CreatedAt,
		&details.Event.UpdatedAt,
		&details.UserName,
		&details.UserEmail,
	)
	if err == sql.ErrNoRows {
		return nil, entity.ErrRegistrationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get registration details: %w", err)
	}
	return &details, nil
}

func (r *registrationRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM registrations`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count registrations: %w", err)
	}
	return count, nil
}
