package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"conferencecentral/internal/delivery/http/controllers"
	"conferencecentral/internal/delivery/http/helpers"
	"conferencecentral/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type fakeVerifier struct{}

func (fakeVerifier) Verify(token string) (domain.Identity, error) {
	if token != "good" {
		return domain.Identity{}, errors.New("bad token")
	}
	return domain.Identity{UserID: "u1", DisplayName: "Ada"}, nil
}

type fakePinger struct{}

func (fakePinger) PingContext(ctx context.Context) error { return nil }

// stubConferences records which method served the request.
type stubConferences struct {
	domain.ConferenceService
	called string
}

func (s *stubConferences) GetConference(ctx context.Context, id string) (*domain.ConferenceWithOrganizer, error) {
	s.called = "get:" + id
	return &domain.ConferenceWithOrganizer{Conference: &domain.Conference{ID: id}}, nil
}

func (s *stubConferences) ListCreated(ctx context.Context, id domain.Identity) ([]*domain.ConferenceWithOrganizer, error) {
	s.called = "created:" + id.UserID
	return []*domain.ConferenceWithOrganizer{}, nil
}

type stubDerivedFacts struct {
	domain.DerivedFactService
}

func (stubDerivedFacts) Announcement() (string, bool) { return "", false }

func newTestRouter(confs *stubConferences) http.Handler {
	mux := NewRouter(Controllers{
		Auth:         controllers.NewAuthController(testLogger, nil),
		Profile:      controllers.NewProfileController(testLogger, nil),
		Conference:   controllers.NewConferenceController(testLogger, confs),
		Registration: controllers.NewRegistrationController(testLogger, nil),
		Session:      controllers.NewSessionController(testLogger, nil),
		Wishlist:     controllers.NewWishlistController(testLogger, nil),
		DerivedFact:  controllers.NewDerivedFactController(testLogger, stubDerivedFacts{}),
		Health:       controllers.NewHealthController(testLogger, fakePinger{}),
	}, fakeVerifier{}, testLogger)
	return NewHandler(mux, []string{"*"}, testLogger)
}

func TestRouter_Routing(t *testing.T) {
	const id = "3f2504e0-4f89-11d3-9a0c-0305e82c3301"
	tests := []struct {
		name       string
		method     string
		path       string
		token      string
		wantStatus int
		wantCalled string
	}{
		{name: "public conference read", method: http.MethodGet, path: "/conferences/" + id, wantStatus: http.StatusOK, wantCalled: "get:" + id},
		{name: "created wins over id pattern", method: http.MethodGet, path: "/conferences/created", token: "good", wantStatus: http.StatusOK, wantCalled: "created:u1"},
		{name: "created requires auth", method: http.MethodGet, path: "/conferences/created", wantStatus: http.StatusUnauthorized},
		{name: "registration requires auth", method: http.MethodPost, path: "/conferences/" + id + "/registration", token: "bad", wantStatus: http.StatusUnauthorized},
		{name: "wishlist requires auth", method: http.MethodGet, path: "/wishlist", wantStatus: http.StatusUnauthorized},
		{name: "profile requires auth", method: http.MethodGet, path: "/profile", wantStatus: http.StatusUnauthorized},
		{name: "announcement is public", method: http.MethodGet, path: "/announcement", wantStatus: http.StatusOK},
		{name: "health", method: http.MethodGet, path: "/health", wantStatus: http.StatusOK},
		{name: "method not allowed", method: http.MethodPatch, path: "/conferences/" + id, wantStatus: http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			confs := &stubConferences{}
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			rr := httptest.NewRecorder()

			newTestRouter(confs).ServeHTTP(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantCalled, confs.called)
			if tt.wantStatus == http.StatusUnauthorized {
				var envelope helpers.APIResponse
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
				assert.Equal(t, helpers.ErrCodeUnauthorized, envelope.Error.Code)
			}
		})
	}
}
