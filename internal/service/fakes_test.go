package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	repository "github.com/eventhub/eventhub-api/internal/database/postgres"
	"github.com/eventhub/eventhub-api/internal/entity"
)

// fakeStore is an in-memory stand-in for the Postgres repositories. It keeps
// the same guarantees the real schema gives: the (user_id, event_id) unique
// constraint, the event foreign key, and the transactional cascade on event
// delete.
type fakeStore struct {
	mu sync.Mutex

	nextEventID        int64
	nextUserID         int64
	nextRegistrationID int64

	events        map[int64]*entity.Event
	users         map[int64]*entity.User
	registrations map[int64]*entity.Registration
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		events:        make(map[int64]*entity.Event),
		users:         make(map[int64]*entity.User),
		registrations: make(map[int64]*entity.Registration),
	}
}

func (s *fakeStore) addUser(name, email string, role entity.Role) *entity.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextUserID++
	user := &entity.User{
		ID:        s.nextUserID,
		Name:      name,
		Email:     email,
		Role:      role,
		CreatedAt: time.Now(),
	}
	s.users[user.ID] = user
	return user
}

// joinCreator mirrors the creator join the Postgres layer does on reads.
// Callers hold the store lock.
func (s *fakeStore) joinCreator(event *entity.Event) {
	if creator, ok := s.users[event.CreatedBy]; ok {
		event.CreatedByName = creator.Name
		event.CreatedByEmail = creator.Email
	}
}

type fakeEventRepo struct{ store *fakeStore }
type fakeRegistrationRepo struct{ store *fakeStore }
type fakeUserRepo struct{ store *fakeStore }

func (s *fakeStore) eventRepo() repository.EventRepository {
	return &fakeEventRepo{store: s}
}

func (s *fakeStore) registrationRepo() repository.RegistrationRepository {
	return &fakeRegistrationRepo{store: s}
}

func (s *fakeStore) userRepo() repository.UserRepository {
	return &fakeUserRepo{store: s}
}

// --- EventRepository ---

func (r *fakeEventRepo) Create(_ context.Context, event *entity.Event) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.nextEventID++
	event.ID = r.store.nextEventID
	now := time.Now()
	event.CreatedAt = now
	event.UpdatedAt = now
	copied := *event
	r.store.events[event.ID] = &copied
	return nil
}

func (r *fakeEventRepo) GetByID(_ context.Context, id int64) (*entity.Event, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	event, ok := r.store.events[id]
	if !ok {
		return nil, entity.ErrEventNotFound
	}
	copied := *event
	r.store.joinCreator(&copied)
	return &copied, nil
}

func (r *fakeEventRepo) GetAll(_ context.Context, filter *repository.EventFilter) ([]*entity.Event, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if filter == nil {
		filter = &repository.EventFilter{}
	}

	var events []*entity.Event
	for _, event := range r.store.events {
		if filter.Search != "" && !containsFold(event.Title, filter.Search) {
			continue
		}
		if filter.Category != "" && filter.Category != "all" && string(event.Category) != filter.Category {
			continue
		}
		if !filter.DateFrom.IsZero() && event.Date.Before(filter.DateFrom) {
			continue
		}
		if !filter.DateTo.IsZero() && event.Date.After(filter.DateTo) {
			continue
		}
		copied := *event
		r.store.joinCreator(&copied)
		events = append(events, &copied)
	}

	sort.Slice(events, func(i, j int) bool {
		return events[i].Date.Before(events[j].Date)
	})
	return events, nil
}

func (r *fakeEventRepo) Update(_ context.Context, event *entity.Event) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.events[event.ID]; !ok {
		return entity.ErrEventNotFound
	}
	event.UpdatedAt = time.Now()
	copied := *event
	r.store.events[event.ID] = &copied
	return nil
}

func (r *fakeEventRepo) DeleteWithRegistrations(_ context.Context, id int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.events[id]; !ok {
		return entity.ErrEventNotFound
	}
	for regID, reg := range r.store.registrations {
		if reg.EventID == id {
			delete(r.store.registrations, regID)
		}
	}
	delete(r.store.events, id)
	return nil
}

func (r *fakeEventRepo) Count(_ context.Context) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return int64(len(r.store.events)), nil
}

// --- RegistrationRepository ---

func (r *fakeRegistrationRepo) Create(_ context.Context, registration *entity.Registration) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.events[registration.EventID]; !ok {
		return entity.ErrEventNotFound
	}
	for _, existing := range r.store.registrations {
		if existing.UserID == registration.UserID && existing.EventID == registration.EventID {
			return entity.ErrAlreadyRegistered
		}
	}
	r.store.nextRegistrationID++
	registration.ID = r.store.nextRegistrationID
	registration.RegisteredAt = time.Now()
	copied := *registration
	r.store.registrations[registration.ID] = &copied
	return nil
}

func (r *fakeRegistrationRepo) GetByID(_ context.Context, id int64) (*entity.Registration, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	registration, ok := r.store.registrations[id]
	if !ok {
		return nil, entity.ErrRegistrationNotFound
	}
	copied := *registration
	return &copied, nil
}

func (r *fakeRegistrationRepo) GetByEventAndUser(_ context.Context, eventID, userID int64) (*entity.Registration, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, registration := range r.store.registrations {
		if registration.EventID == eventID && registration.UserID == userID {
			copied := *registration
			return &copied, nil
		}
	}
	return nil, entity.ErrRegistrationNotFound
}

func (r *fakeRegistrationRepo) Delete(_ context.Context, id int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.registrations[id]; !ok {
		return entity.ErrRegistrationNotFound
	}
	delete(r.store.registrations, id)
	return nil
}

func (r *fakeRegistrationRepo) GetByUserID(_ context.Context, userID int64) ([]*entity.RegistrationWithEvent, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var result []*entity.RegistrationWithEvent
	for _, registration := range r.store.registrations {
		if registration.UserID != userID {
			continue
		}
		event, ok := r.store.events[registration.EventID]
		if !ok {
			continue
		}
		result = append(result, &entity.RegistrationWithEvent{
			Registration: *registration,
			Event:        *event,
		})
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].RegisteredAt.Equal(result[j].RegisteredAt) {
			return result[i].RegisteredAt.After(result[j].RegisteredAt)
		}
		return result[i].ID > result[j].ID
	})
	return result, nil
}

func (r *fakeRegistrationRepo) GetByEventID(_ context.Context, eventID int64) ([]*entity.RegistrationWithUser, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var result []*entity.RegistrationWithUser
	for _, registration := range r.store.registrations {
		if registration.EventID != eventID {
			continue
		}
		user := r.store.users[registration.UserID]
		result = append(result, &entity.RegistrationWithUser{
			Registration: *registration,
			UserName:     user.Name,
			UserEmail:    user.Email,
			UserPhone:    user.Phone,
		})
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].RegisteredAt.Equal(result[j].RegisteredAt) {
			return result[i].RegisteredAt.After(result[j].RegisteredAt)
		}
		return result[i].ID > result[j].ID
	})
	return result, nil
}

func (r *fakeRegistrationRepo) GetDetails(_ context.Context, id int64) (*entity.RegistrationDetails, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	registration, ok := r.store.registrations[id]
	if !ok {
		return nil, entity.ErrRegistrationNotFound
	}
	event := r.store.events[registration.EventID]
	user := r.store.users[registration.UserID]
	return &entity.RegistrationDetails{
		Registration: *registration,
		Event:        *event,
		UserName:     user.Name,
		UserEmail:    user.Email,
	}, nil
}

func (r *fakeRegistrationRepo) Count(_ context.Context) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return int64(len(r.store.registrations)), nil
}

// --- UserRepository ---

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, existing := range r.store.users {
		if existing.Email == user.Email {
			return entity.ErrEmailTaken
		}
	}
	r.store.nextUserID++
	user.ID = r.store.nextUserID
	user.CreatedAt = time.Now()
	copied := *user
	r.store.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	user, ok := r.store.users[id]
	if !ok {
		return nil, entity.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, user := range r.store.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, entity.ErrUserNotFound
}

func (r *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.users[user.ID]; !ok {
		return entity.ErrUserNotFound
	}
	copied := *user
	r.store.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) Count(_ context.Context) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return int64(len(r.store.users)), nil
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
