package service

import (
	"context"
	"testing"
	"time"

	"github.com/eventhub/eventhub-api/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEnv(t *testing.T) (*fakeStore, RegistrationService, EventService) {
	t.Helper()
	store := newFakeStore()
	registrationService := NewRegistrationService(store.registrationRepo(), store.eventRepo())
	eventService := NewEventService(store.eventRepo(), store.userRepo(), store.registrationRepo(), nil)
	return store, registrationService, eventService
}

func floatPtr(f float64) *float64 { return &f }

func identityFor(u *entity.User) entity.Identity {
	return entity.Identity{UserID: u.ID, Role: u.Role, Email: u.Email}
}

func createTestEvent(t *testing.T, events EventService, admin entity.Identity, title string, category entity.Category, date time.Time) *entity.Event {
	t.Helper()
	event, err := events.CreateEvent(context.Background(), admin, &CreateEventRequest{
		Title:       title,
		Description: "test event",
		Date:        date,
		Time:        "18:00",
		Category:    category,
		Venue:       "Main Hall",
		Lat:         floatPtr(40.71),
		Lng:         floatPtr(-74.00),
	})
	require.NoError(t, err)
	return event
}

func TestRegisterOncePerEvent(t *testing.T) {
	store, registrations, events := newTestEnv(t)
	ctx := context.Background()

	admin := identityFor(store.addUser("Admin", "admin@eventhub.com", entity.RoleAdmin))
	user := identityFor(store.addUser("John Doe", "user@eventhub.com", entity.RoleUser))

	event := createTestEvent(t, events, admin, "Tech Conference", entity.CategoryConference, time.Now().Add(48*time.Hour))

	details, err := registrations.Register(ctx, user, event.ID)
	require.NoError(t, err)
	assert.Equal(t, user.UserID, details.UserID)
	assert.Equal(t, event.ID, details.Event.ID)
	assert.Equal(t, "John Doe", details.UserName)
	assert.Equal(t, "user@eventhub.com", details.UserEmail)
	assert.False(t, details.RegisteredAt.IsZero())

	// Second registration for the same user and event must be refused and
	// must not create a second row.
	_, err = registrations.Register(ctx, user, event.ID)
	assert.ErrorIs(t, err, entity.ErrAlreadyRegistered)

	count, err := store.registrationRepo().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	status, err := registrations.CheckStatus(ctx, user, event.ID)
	require.NoError(t, err)
	assert.True(t, status.IsRegistered)
	require.NotNil(t, status.Registration)
	assert.Equal(t, details.ID, status.Registration.ID)
}

func TestRegisterUnknownEvent(t *testing.T) {
	store, registrations, _ := newTestEnv(t)

	user := identityFor(store.addUser("John Doe", "user@eventhub.com", entity.RoleUser))

	_, err := registrations.Register(context.Background(), user, 9999)
	assert.ErrorIs(t, err, entity.ErrEventNotFound)
}

func TestCancelOwnership(t *testing.T) {
	store, registrations, events := newTestEnv(t)
	ctx := context.Background()

	admin := identityFor(store.addUser("Admin", "admin@eventhub.com", entity.RoleAdmin))
	owner := identityFor(store.addUser("Owner", "owner@eventhub.com", entity.RoleUser))
	stranger := identityFor(store.addUser("Stranger", "stranger@eventhub.com", entity.RoleUser))

	event := createTestEvent(t, events, admin, "Workshop Night", entity.CategoryWorkshop, time.Now().Add(24*time.Hour))

	tests := []struct {
		name    string
		caller  entity.Identity
		wantErr error
	}{
		{
			name:    "stranger cannot cancel",
			caller:  stranger,
			wantErr: entity.ErrForbidden,
		},
		{
			name:   "owner can cancel",
			caller: owner,
		},
		{
			name:   "admin can cancel",
			caller: admin,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			details, err := registrations.Register(ctx, owner, event.ID)
			if err == entity.ErrAlreadyRegistered {
				// Re-register after a previous sub-test cancelled.
				status, serr := registrations.CheckStatus(ctx, owner, event.ID)
				require.NoError(t, serr)
				details = &entity.RegistrationDetails{Registration: *status.Registration}
			} else {
				require.NoError(t, err)
			}

			err = registrations.Cancel(ctx, tt.caller, details.ID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				// Cleanup so the next sub-test starts fresh.
				require.NoError(t, registrations.Cancel(ctx, owner, details.ID))
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestCancelIsNotIdempotent(t *testing.T) {
	store, registrations, events := newTestEnv(t)
	ctx := context.Background()

	admin := identityFor(store.addUser("Admin", "admin@eventhub.com", entity.RoleAdmin))
	user := identityFor(store.addUser("User", "user@eventhub.com", entity.RoleUser))

	event := createTestEvent(t, events, admin, "Concert", entity.CategoryConcert, time.Now().Add(24*time.Hour))

	details, err := registrations.Register(ctx, user, event.ID)
	require.NoError(t, err)

	require.NoError(t, registrations.Cancel(ctx, user, details.ID))

	// The second cancel of the same id reports not-found.
	err = registrations.Cancel(ctx, user, details.ID)
	assert.ErrorIs(t, err, entity.ErrRegistrationNotFound)
}

func TestEventDeleteCascadesRegistrations(t *testing.T) {
	store, registrations, events := newTestEnv(t)
	ctx := context.Background()

	admin := identityFor(store.addUser("Admin", "admin@eventhub.com", entity.RoleAdmin))
	user1 := identityFor(store.addUser("User One", "one@eventhub.com", entity.RoleUser))
	user2 := identityFor(store.addUser("User Two", "two@eventhub.com", entity.RoleUser))

	doomed := createTestEvent(t, events, admin, "Doomed Event", entity.CategorySeminar, time.Now().Add(24*time.Hour))
	kept := createTestEvent(t, events, admin, "Kept Event", entity.CategorySeminar, time.Now().Add(48*time.Hour))

	reg1, err := registrations.Register(ctx, user1, doomed.ID)
	require.NoError(t, err)
	_, err = registrations.Register(ctx, user2, doomed.ID)
	require.NoError(t, err)
	keptReg, err := registrations.Register(ctx, user1, kept.ID)
	require.NoError(t, err)

	require.NoError(t, events.DeleteEvent(ctx, doomed.ID))

	// The event and every registration referencing it are gone.
	_, err = events.GetEvent(ctx, doomed.ID)
	assert.ErrorIs(t, err, entity.ErrEventNotFound)

	listed, err := registrations.ListForEvent(ctx, doomed.ID)
	require.NoError(t, err)
	assert.Empty(t, listed)

	_, err = store.registrationRepo().GetByID(ctx, reg1.ID)
	assert.ErrorIs(t, err, entity.ErrRegistrationNotFound)

	for _, u := range []entity.Identity{user1, user2} {
		mine, err := registrations.ListForUser(ctx, u)
		require.NoError(t, err)
		for _, reg := range mine {
			assert.NotEqual(t, doomed.ID, reg.EventID)
		}
	}

	// Registrations for other events survive.
	mine, err := registrations.ListForUser(ctx, user1)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, keptReg.ID, mine[0].ID)
}

func TestListForUserOrdering(t *testing.T) {
	store, registrations, events := newTestEnv(t)
	ctx := context.Background()

	admin := identityFor(store.addUser("Admin", "admin@eventhub.com", entity.RoleAdmin))
	user := identityFor(store.addUser("User", "user@eventhub.com", entity.RoleUser))

	first := createTestEvent(t, events, admin, "First", entity.CategoryOther, time.Now().Add(24*time.Hour))
	second := createTestEvent(t, events, admin, "Second", entity.CategoryOther, time.Now().Add(48*time.Hour))
	third := createTestEvent(t, events, admin, "Third", entity.CategoryOther, time.Now().Add(72*time.Hour))

	for _, ev := range []*entity.Event{first, second, third} {
		_, err := registrations.Register(ctx, user, ev.ID)
		require.NoError(t, err)
	}

	mine, err := registrations.ListForUser(ctx, user)
	require.NoError(t, err)
	require.Len(t, mine, 3)

	// Most recent registration first, each with its event populated.
	assert.Equal(t, third.ID, mine[0].EventID)
	assert.Equal(t, "Third", mine[0].Event.Title)
	assert.Equal(t, second.ID, mine[1].EventID)
	assert.Equal(t, first.ID, mine[2].EventID)
	for i := 0; i < len(mine)-1; i++ {
		assert.False(t, mine[i].RegisteredAt.Before(mine[i+1].RegisteredAt))
	}
}

func TestCheckStatusUnregistered(t *testing.T) {
	store, registrations, events := newTestEnv(t)
	ctx := context.Background()

	admin := identityFor(store.addUser("Admin", "admin@eventhub.com", entity.RoleAdmin))
	user := identityFor(store.addUser("User", "user@eventhub.com", entity.RoleUser))

	event := createTestEvent(t, events, admin, "Networking Evening", entity.CategoryNetworking, time.Now().Add(24*time.Hour))

	status, err := registrations.CheckStatus(ctx, user, event.ID)
	require.NoError(t, err)
	assert.False(t, status.IsRegistered)
	assert.Nil(t, status.Registration)
}

func TestListForEventPopulatesRegistrant(t *testing.T) {
	store, registrations, events := newTestEnv(t)
	ctx := context.Background()

	admin := identityFor(store.addUser("Admin", "admin@eventhub.com", entity.RoleAdmin))
	user := store.addUser("Jane Smith", "jane@example.com", entity.RoleUser)
	user.Phone = "+1 555-0102"

	event := createTestEvent(t, events, admin, "Cultural Fest", entity.CategoryCultural, time.Now().Add(24*time.Hour))

	_, err := registrations.Register(ctx, identityFor(user), event.ID)
	require.NoError(t, err)

	listed, err := registrations.ListForEvent(ctx, event.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "Jane Smith", listed[0].UserName)
	assert.Equal(t, "jane@example.com", listed[0].UserEmail)
	assert.Equal(t, "+1 555-0102", listed[0].UserPhone)
}
