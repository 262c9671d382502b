package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"conferencecentral/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newConferenceService(f *fixture, email domain.EmailService) domain.ConferenceService {
	return NewConferenceService(f.txm, f.conferences, f.profiles, email, f.tasks, time.Second)
}

func TestConferenceService_CreateConference(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		input   domain.ConferenceInput
		errIs   error
		check   func(t *testing.T, c *domain.Conference)
		wantJob bool
	}{
		{
			name:  "applies defaults",
			input: domain.ConferenceInput{Name: "  GopherCon  "},
			check: func(t *testing.T, c *domain.Conference) {
				assert.Equal(t, "GopherCon", c.Name)
				assert.Equal(t, domain.DefaultConferenceCity, c.City)
				assert.Equal(t, []string{"Default", "Topic"}, c.Topics)
				assert.Equal(t, 0, c.MaxAttendees)
				assert.Equal(t, 0, c.SeatsAvailable)
				assert.Equal(t, 0, c.Month)
				assert.Nil(t, c.StartDate)
			},
			wantJob: true,
		},
		{
			name: "seats start at capacity and month follows start date",
			input: domain.ConferenceInput{
				Name: "GopherCon", City: "London", Topics: []string{"Go", ""}, StartDate: "2025-06-10", EndDate: "2025-06-12", MaxAttendees: 200,
			},
			check: func(t *testing.T, c *domain.Conference) {
				assert.Equal(t, 200, c.SeatsAvailable)
				assert.Equal(t, 6, c.Month)
				assert.Equal(t, []string{"Go"}, c.Topics)
				require.NotNil(t, c.EndDate)
				assert.Equal(t, 12, c.EndDate.Day())
			},
			wantJob: true,
		},
		{
			name:  "name required",
			input: domain.ConferenceInput{Name: "   "},
			errIs: domain.ErrInvalidInput,
		},
		{
			name:  "bad date",
			input: domain.ConferenceInput{Name: "X", StartDate: "10/06/2025"},
			errIs: domain.ErrInvalidInput,
		},
		{
			name:  "negative capacity",
			input: domain.ConferenceInput{Name: "X", MaxAttendees: -1},
			errIs: domain.ErrInvalidInput,
		},
		{
			name:  "capacity beyond column range",
			input: domain.ConferenceInput{Name: "X", MaxAttendees: domain.MaxAttendeesLimit + 1},
			errIs: domain.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			email := &fakeEmailService{}
			svc := newConferenceService(f, email)

			c, err := svc.CreateConference(ctx, identity("org"), tt.input)
			if tt.errIs != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.errIs))
				assert.Empty(t, f.tasks.names())
				return
			}
			require.NoError(t, err)
			require.NotEmpty(t, c.ID)
			assert.Equal(t, "org", c.OrganizerID)
			tt.check(t, c)

			_, found := f.store.profile("org")
			assert.True(t, found, "organizer profile is created with the conference")

			if tt.wantJob {
				assert.Equal(t, []string{"conference-created-email"}, f.tasks.names())
				assert.Empty(t, f.tasks.runAll(ctx))
				require.Len(t, email.sent, 1)
				assert.Equal(t, "org@example.com", email.sent[0].Email)
				assert.Equal(t, c.Name, email.sent[0].ConferenceName)
			}
		})
	}
}

func TestConferenceService_EmailFailureDoesNotFailCreate(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	email := &fakeEmailService{err: errors.New("smtp down")}
	svc := newConferenceService(f, email)

	c, err := svc.CreateConference(ctx, identity("org"), domain.ConferenceInput{Name: "GopherCon"})
	require.NoError(t, err)
	require.NotNil(t, c)

	errs := f.tasks.runAll(ctx)
	assert.Len(t, errs, 1, "the failure surfaces only in the task")
}

func TestConferenceService_UpdateConference(t *testing.T) {
	ctx := context.Background()
	name := "Renamed"
	start := "2025-03-01"
	bigger := 20
	tooSmall := 1
	tooLarge := domain.MaxAttendeesLimit + 1
	empty := ""

	tests := []struct {
		name   string
		caller string
		confID string
		patch  domain.ConferencePatch
		errIs  error
		check  func(t *testing.T, got *domain.ConferenceWithOrganizer)
	}{
		{
			name:   "organizer updates provided fields",
			caller: "org",
			patch:  domain.ConferencePatch{Name: &name, StartDate: &start, MaxAttendees: &bigger},
			check: func(t *testing.T, got *domain.ConferenceWithOrganizer) {
				assert.Equal(t, "Renamed", got.Conference.Name)
				assert.Equal(t, 3, got.Conference.Month)
				assert.Equal(t, 20, got.Conference.MaxAttendees)
				assert.Equal(t, 17, got.Conference.SeatsAvailable, "seats shift by the capacity delta")
				assert.Equal(t, domain.DefaultConferenceCity, got.Conference.City, "omitted fields untouched")
				assert.Equal(t, "User org", got.OrganizerDisplayName)
			},
		},
		{
			name:   "other user is forbidden",
			caller: "intruder",
			patch:  domain.ConferencePatch{Name: &name},
			errIs:  domain.ErrForbidden,
		},
		{
			name:   "missing conference",
			caller: "org",
			confID: "missing",
			patch:  domain.ConferencePatch{Name: &name},
			errIs:  domain.ErrNotFound,
		},
		{
			name:   "capacity below registrations",
			caller: "org",
			patch:  domain.ConferencePatch{MaxAttendees: &tooSmall},
			errIs:  domain.ErrConflict,
		},
		{
			name:   "capacity beyond column range",
			caller: "org",
			patch:  domain.ConferencePatch{MaxAttendees: &tooLarge},
			errIs:  domain.ErrInvalidInput,
		},
		{
			name:   "empty name rejected",
			caller: "org",
			patch:  domain.ConferencePatch{Name: &empty},
			errIs:  domain.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			_, err := loadOrCreateProfile(ctx, f.profiles, identity("org"))
			require.NoError(t, err)
			conf := f.seedConference("org", "GopherCon", 10)
			f.setSeats(conf.ID, 7) // three registrations

			target := conf.ID
			if tt.confID != "" {
				target = tt.confID
			}
			got, err := newConferenceService(f, nil).UpdateConference(ctx, identity(tt.caller), target, tt.patch)
			if tt.errIs != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.errIs), "got %v", err)
				assert.Equal(t, "GopherCon", f.store.conference(conf.ID).Name)
				return
			}
			require.NoError(t, err)
			tt.check(t, got)
		})
	}
}

func TestConferenceService_QueryConferences(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	_, err := loadOrCreateProfile(ctx, f.profiles, identity("org"))
	require.NoError(t, err)
	f.seedConference("org", "A", 10)
	svc := newConferenceService(f, nil)

	got, err := svc.QueryConferences(ctx, []domain.Filter{
		{Field: "CITY", Operator: "EQ", Value: "London"},
		{Field: "MAX_ATTENDEES", Operator: "GT", Value: "5"},
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "User org", got[0].OrganizerDisplayName)
	require.NotNil(t, f.conferences.lastQuery)
	assert.Equal(t, []domain.FilterField{domain.FieldMaxAttendees, domain.FieldName}, f.conferences.lastQuery.OrderBy)

	f.conferences.lastQuery = nil
	_, err = svc.QueryConferences(ctx, []domain.Filter{
		{Field: "MAX_ATTENDEES", Operator: "GT", Value: "5"},
		{Field: "MONTH", Operator: "LT", Value: "6"},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Nil(t, f.conferences.lastQuery, "rejected queries never reach the store")
}

func TestConferenceService_GetAndListCreated(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	svc := newConferenceService(f, nil)
	mine := f.seedConference("org", "Mine", 10)
	f.seedConference("other", "Theirs", 10)

	got, err := svc.GetConference(ctx, mine.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mine", got.Conference.Name)
	assert.Equal(t, "", got.OrganizerDisplayName, "organizer without profile has no display name")

	_, err = svc.GetConference(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	created, err := svc.ListCreated(ctx, identity("org"))
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Equal(t, mine.ID, created[0].Conference.ID)

	_, err = svc.ListCreated(ctx, domain.Identity{})
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}
