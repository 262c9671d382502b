package http

import (
	"log/slog"
	"net/http"

	"conferencecentral/internal/delivery/http/controllers"
	"conferencecentral/internal/delivery/http/middleware"
	"conferencecentral/internal/domain"

	httpSwagger "github.com/swaggo/http-swagger"
)

// Controllers groups the handlers mounted by NewRouter.
type Controllers struct {
	Auth         *controllers.AuthController
	Profile      *controllers.ProfileController
	Conference   *controllers.ConferenceController
	Registration *controllers.RegistrationController
	Session      *controllers.SessionController
	Wishlist     *controllers.WishlistController
	DerivedFact  *controllers.DerivedFactController
	Health       *controllers.HealthController
}

// NewRouter initializes the HTTP router with all application routes.
// Routes acting on behalf of a user are wrapped with RequireAuth.
func NewRouter(c Controllers, verifier domain.TokenVerifier, logger *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier, logger)

	// Auth
	mux.HandleFunc("POST /auth/signup", c.Auth.SignUp)
	mux.HandleFunc("POST /auth/login", c.Auth.Login)

	// Profile
	mux.HandleFunc("GET /profile", auth(c.Profile.GetProfile))
	mux.HandleFunc("POST /profile", auth(c.Profile.SaveProfile))

	// Conferences
	mux.HandleFunc("POST /conferences", auth(c.Conference.CreateConference))
	mux.HandleFunc("POST /conferences/query", c.Conference.QueryConferences)
	mux.HandleFunc("GET /conferences/created", auth(c.Conference.ListCreated))
	mux.HandleFunc("GET /conferences/attending", auth(c.Registration.ListAttending))
	mux.HandleFunc("GET /conferences/{conferenceID}", c.Conference.GetConference)
	mux.HandleFunc("PUT /conferences/{conferenceID}", auth(c.Conference.UpdateConference))

	// Registration
	mux.HandleFunc("POST /conferences/{conferenceID}/registration", auth(c.Registration.Register))
	mux.HandleFunc("DELETE /conferences/{conferenceID}/registration", auth(c.Registration.Unregister))

	// Sessions
	mux.HandleFunc("POST /conferences/{conferenceID}/sessions", auth(c.Session.CreateSession))
	mux.HandleFunc("GET /conferences/{conferenceID}/sessions", c.Session.ListByConference)
	mux.HandleFunc("GET /conferences/{conferenceID}/sessions/type/{type}", c.Session.ListByConferenceAndType)
	mux.HandleFunc("GET /sessions/speaker/{speaker}", c.Session.ListBySpeaker)

	// Wishlist
	mux.HandleFunc("GET /wishlist", auth(c.Wishlist.ListWishlist))
	mux.HandleFunc("GET /wishlist/type/{type}", auth(c.Wishlist.ListWishlistByType))
	mux.HandleFunc("GET /wishlist/speaker/{speaker}", auth(c.Wishlist.ListWishlistBySpeaker))
	mux.HandleFunc("POST /wishlist/{sessionID}", auth(c.Wishlist.AddToWishlist))
	mux.HandleFunc("DELETE /wishlist/{sessionID}", auth(c.Wishlist.RemoveFromWishlist))

	// Derived facts
	mux.HandleFunc("GET /announcement", c.DerivedFact.GetAnnouncement)
	mux.HandleFunc("GET /conferences/{conferenceID}/featured-speaker", c.DerivedFact.GetFeaturedSpeaker)

	mux.HandleFunc("GET /health", c.Health.Health)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}

// NewHandler wraps the router with request logging and CORS.
func NewHandler(mux http.Handler, allowedOrigins []string, logger *slog.Logger) http.Handler {
	return middleware.LoggingMiddleware(logger, middleware.CORS(allowedOrigins, mux))
}
