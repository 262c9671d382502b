package cli

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"conferencecentral/config"
	"conferencecentral/internal/adapters/auth"
	"conferencecentral/internal/adapters/email"
	"conferencecentral/internal/cache"
	deliveryhttp "conferencecentral/internal/delivery/http"
	"conferencecentral/internal/delivery/http/controllers"
	"conferencecentral/internal/domain"
	"conferencecentral/internal/repository/postgres"
	"conferencecentral/internal/services"
	"conferencecentral/internal/tasks"

	_ "github.com/lib/pq"
)

// app is the wired object graph shared by the commands.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	db     *sql.DB

	tasks        *tasks.Queue
	derivedFacts domain.DerivedFactService
	verifier     domain.TokenVerifier
	controllers  deliveryhttp.Controllers
}

// loadConfig reads configuration and builds the logger.
func loadConfig() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, config.NewLogger(cfg.Environment), nil
}

// openDB connects to Postgres and checks the connection.
func openDB(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

// newApp wires repositories, services and controllers on top of db.
func newApp(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*app, error) {
	txm := postgres.NewTxManager(db, cfg.TxMaxAttempts)
	userRepo := postgres.NewUserRepository(db)
	profileRepo := postgres.NewProfileRepository(db)
	conferenceRepo := postgres.NewConferenceRepository(db)
	sessionRepo := postgres.NewSessionRepository(db)

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFromAddress,
		FromName:    cfg.EmailFromName,
		SES: email.SESConfig{
			Region:             cfg.AWSRegion,
			AccessKeyID:        cfg.AWSAccessKeyID,
			SecretAccessKey:    cfg.AWSSecretKey,
			InsecureSkipVerify: cfg.SESInsecureTLS,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create mailer: %w", err)
	}
	renderer, err := email.NewTemplateRenderer()
	if err != nil {
		return nil, fmt.Errorf("load email templates: %w", err)
	}

	queue := tasks.NewQueue(logger, tasks.Config{
		Workers:     cfg.TaskWorkers,
		QueueSize:   cfg.TaskQueueSize,
		TaskTimeout: cfg.TaskTimeout,
	})
	derivedFacts := services.NewDerivedFactService(conferenceRepo, sessionRepo, cache.NewMemory(cfg.CacheTTL))
	emailService := services.NewEmailService(mailer, renderer)

	authService := services.NewAuthService(userRepo, auth.NewBcryptHasher(auth.DefaultBcryptCost), auth.NewJWTIssuer(cfg.JWTSecret), cfg.JWTExpiry)
	profileService := services.NewProfileService(txm, profileRepo)
	conferenceService := services.NewConferenceService(txm, conferenceRepo, profileRepo, emailService, queue, cfg.RequestTimeout)
	registrationService := services.NewRegistrationService(txm, conferenceRepo, profileRepo, cfg.RequestTimeout)
	sessionService := services.NewSessionService(txm, conferenceRepo, sessionRepo, derivedFacts, queue, cfg.RequestTimeout)
	wishlistService := services.NewWishlistService(txm, sessionRepo, profileRepo, cfg.RequestTimeout)

	return &app{
		cfg:          cfg,
		logger:       logger,
		db:           db,
		tasks:        queue,
		derivedFacts: derivedFacts,
		verifier:     auth.NewJWTVerifier(cfg.JWTSecret),
		controllers: deliveryhttp.Controllers{
			Auth:         controllers.NewAuthController(logger, authService),
			Profile:      controllers.NewProfileController(logger, profileService),
			Conference:   controllers.NewConferenceController(logger, conferenceService),
			Registration: controllers.NewRegistrationController(logger, registrationService),
			Session:      controllers.NewSessionController(logger, sessionService),
			Wishlist:     controllers.NewWishlistController(logger, wishlistService),
			DerivedFact:  controllers.NewDerivedFactController(logger, derivedFacts),
			Health:       controllers.NewHealthController(logger, db),
		},
	}, nil
}

// recomputeAnnouncement refreshes the announcement and logs the outcome.
func (a *app) recomputeAnnouncement(ctx context.Context) error {
	text, err := a.derivedFacts.RecomputeAnnouncement(ctx)
	if err != nil {
		return err
	}
	a.logger.InfoContext(ctx, "announcement recomputed", "empty", text == "")
	return nil
}
