package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"conferencecentral/internal/delivery/http/helpers"
	"conferencecentral/internal/delivery/http/middleware"
	"conferencecentral/internal/domain"

	"github.com/stretchr/testify/require"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

var testCaller = domain.Identity{UserID: "user-123", Email: "ada@example.com", DisplayName: "Ada"}

const (
	confID    = "3f2504e0-4f89-11d3-9a0c-0305e82c3301"
	sessionID = "9b2c1a3e-1d6f-4a57-8c1e-2a5d7f0b6e11"
)

// newRequest builds a request with optional JSON body, path values and caller identity.
func newRequest(method, target, body string, pathValues map[string]string, authenticated bool) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range pathValues {
		req.SetPathValue(k, v)
	}
	if authenticated {
		req = req.WithContext(middleware.SetIdentity(req.Context(), testCaller))
	}
	return req
}

// decodeEnvelope decodes the response envelope and, when dest is non-nil, its data.
func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder, dest any) helpers.APIResponse {
	t.Helper()
	var envelope helpers.APIResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope), "response must be valid JSON envelope")
	if dest != nil && envelope.Data != nil {
		raw, err := json.Marshal(envelope.Data)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(raw, dest))
	}
	return envelope
}

// fakeAuthService implements domain.AuthService for handler tests.
type fakeAuthService struct {
	signUpErr error
	loginErr  error
	token     string
	lastEmail string
	lastName  string
}

func (f *fakeAuthService) SignUp(ctx context.Context, email, password, name string) (*domain.User, error) {
	f.lastEmail, f.lastName = email, name
	if f.signUpErr != nil {
		return nil, f.signUpErr
	}
	return &domain.User{ID: "user-new", Email: email, Name: name}, nil
}

func (f *fakeAuthService) Login(ctx context.Context, email, password string) (string, error) {
	f.lastEmail = email
	if f.loginErr != nil {
		return "", f.loginErr
	}
	return f.token, nil
}

// fakeProfileService implements domain.ProfileService.
type fakeProfileService struct {
	err          error
	lastIdentity domain.Identity
	lastName     string
	lastSize     string
}

func (f *fakeProfileService) GetProfile(ctx context.Context, id domain.Identity) (*domain.Profile, error) {
	f.lastIdentity = id
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Profile{UserID: id.UserID, DisplayName: id.DisplayName, TeeShirtSize: domain.TeeShirtNotSpecified}, nil
}

func (f *fakeProfileService) SaveProfile(ctx context.Context, id domain.Identity, displayName, teeShirtSize string) (*domain.Profile, error) {
	f.lastIdentity, f.lastName, f.lastSize = id, displayName, teeShirtSize
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Profile{UserID: id.UserID, DisplayName: displayName, TeeShirtSize: teeShirtSize}, nil
}

// fakeConferenceService implements domain.ConferenceService.
type fakeConferenceService struct {
	err         error
	lastInput   domain.ConferenceInput
	lastPatch   domain.ConferencePatch
	lastID      string
	lastFilters []domain.Filter
	results     []*domain.ConferenceWithOrganizer
}

func (f *fakeConferenceService) CreateConference(ctx context.Context, id domain.Identity, in domain.ConferenceInput) (*domain.Conference, error) {
	f.lastInput = in
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Conference{ID: confID, OrganizerID: id.UserID, Name: in.Name, MaxAttendees: in.MaxAttendees, SeatsAvailable: in.MaxAttendees}, nil
}

func (f *fakeConferenceService) UpdateConference(ctx context.Context, id domain.Identity, conferenceID string, patch domain.ConferencePatch) (*domain.ConferenceWithOrganizer, error) {
	f.lastID, f.lastPatch = conferenceID, patch
	if f.err != nil {
		return nil, f.err
	}
	return &domain.ConferenceWithOrganizer{Conference: &domain.Conference{ID: conferenceID}, OrganizerDisplayName: id.DisplayName}, nil
}

func (f *fakeConferenceService) GetConference(ctx context.Context, conferenceID string) (*domain.ConferenceWithOrganizer, error) {
	f.lastID = conferenceID
	if f.err != nil {
		return nil, f.err
	}
	return &domain.ConferenceWithOrganizer{Conference: &domain.Conference{ID: conferenceID, Name: "GopherCon"}, OrganizerDisplayName: "Ada"}, nil
}

func (f *fakeConferenceService) QueryConferences(ctx context.Context, filters []domain.Filter) ([]*domain.ConferenceWithOrganizer, error) {
	f.lastFilters = filters
	return f.results, f.err
}

func (f *fakeConferenceService) ListCreated(ctx context.Context, id domain.Identity) ([]*domain.ConferenceWithOrganizer, error) {
	return f.results, f.err
}

// fakeRegistrationService implements domain.RegistrationService.
type fakeRegistrationService struct {
	err     error
	changed bool
	lastID  string
}

func (f *fakeRegistrationService) Register(ctx context.Context, id domain.Identity, conferenceID string) (bool, error) {
	f.lastID = conferenceID
	if f.err != nil {
		return false, f.err
	}
	return true, nil
}

func (f *fakeRegistrationService) Unregister(ctx context.Context, id domain.Identity, conferenceID string) (bool, error) {
	f.lastID = conferenceID
	return f.changed, f.err
}

func (f *fakeRegistrationService) ListAttending(ctx context.Context, id domain.Identity) ([]*domain.ConferenceWithOrganizer, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []*domain.ConferenceWithOrganizer{{Conference: &domain.Conference{ID: confID}}}, nil
}

// fakeSessionService implements domain.SessionService.
type fakeSessionService struct {
	err          error
	lastInput    domain.SessionInput
	lastConfID   string
	lastType     string
	lastSpeaker  string
	listedResult []*domain.Session
}

func (f *fakeSessionService) CreateSession(ctx context.Context, id domain.Identity, conferenceID string, in domain.SessionInput) (*domain.Session, error) {
	f.lastConfID, f.lastInput = conferenceID, in
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Session{ID: sessionID, ConferenceID: conferenceID, Name: in.Name, Speaker: in.Speaker}, nil
}

func (f *fakeSessionService) ListByConference(ctx context.Context, conferenceID string) ([]*domain.Session, error) {
	f.lastConfID = conferenceID
	return f.listedResult, f.err
}

func (f *fakeSessionService) ListByConferenceAndType(ctx context.Context, conferenceID, typeOfSession string) ([]*domain.Session, error) {
	f.lastConfID, f.lastType = conferenceID, typeOfSession
	return f.listedResult, f.err
}

func (f *fakeSessionService) ListBySpeaker(ctx context.Context, speaker string) ([]*domain.Session, error) {
	f.lastSpeaker = speaker
	return f.listedResult, f.err
}

// fakeWishlistService implements domain.WishlistService.
type fakeWishlistService struct {
	err         error
	changed     bool
	lastSession string
	lastType    string
	lastSpeaker string
	sessions    []*domain.Session
}

func (f *fakeWishlistService) AddToWishlist(ctx context.Context, id domain.Identity, sessionID string) (bool, error) {
	f.lastSession = sessionID
	if f.err != nil {
		return false, f.err
	}
	return true, nil
}

func (f *fakeWishlistService) RemoveFromWishlist(ctx context.Context, id domain.Identity, sessionID string) (bool, error) {
	f.lastSession = sessionID
	return f.changed, f.err
}

func (f *fakeWishlistService) ListWishlist(ctx context.Context, id domain.Identity) ([]*domain.Session, error) {
	return f.sessions, f.err
}

func (f *fakeWishlistService) ListWishlistByType(ctx context.Context, id domain.Identity, typeOfSession string) ([]*domain.Session, error) {
	f.lastType = typeOfSession
	return f.sessions, f.err
}

func (f *fakeWishlistService) ListWishlistBySpeaker(ctx context.Context, id domain.Identity, speaker string) ([]*domain.Session, error) {
	f.lastSpeaker = speaker
	return f.sessions, f.err
}

// fakeDerivedFactService implements domain.DerivedFactService.
type fakeDerivedFactService struct {
	announcement string
	hasText      bool
	featured     *domain.FeaturedSpeaker
	err          error
}

func (f *fakeDerivedFactService) RecomputeAnnouncement(ctx context.Context) (string, error) {
	return f.announcement, nil
}

func (f *fakeDerivedFactService) RecomputeFeaturedSpeaker(ctx context.Context, conferenceID, speaker string) error {
	return nil
}

func (f *fakeDerivedFactService) Announcement() (string, bool) {
	return f.announcement, f.hasText
}

func (f *fakeDerivedFactService) FeaturedSpeaker(ctx context.Context, conferenceID string) (domain.FeaturedSpeaker, bool, error) {
	if f.err != nil {
		return domain.FeaturedSpeaker{}, false, f.err
	}
	if f.featured == nil {
		return domain.FeaturedSpeaker{}, false, nil
	}
	return *f.featured, true, nil
}
