package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	deliveryhttp "conferencecentral/internal/delivery/http"
	"conferencecentral/internal/repository/postgres"
	"conferencecentral/internal/tasks"

	_ "conferencecentral/docs"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

// ServeOptions holds flags for the serve command.
type ServeOptions struct {
	Migrate bool
}

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	opts := &ServeOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API together with the post-commit task workers and the
periodic announcement refresh. SIGINT or SIGTERM drains in-flight requests
and queued tasks before exiting.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Migrate, "migrate", true, "apply pending migrations before serving")

	return cmd
}

// @title Conference Central API
// @version 1.0
// @description Conference organization, seat registration and session wishlists.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT.
func runServe(ctx context.Context, opts *ServeOptions) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := openDB(ctx, cfg.DBUrl)
	if err != nil {
		return err
	}
	defer db.Close()

	if opts.Migrate {
		if err := postgres.Migrate(ctx, db); err != nil {
			return err
		}
	}

	a, err := newApp(cfg, logger, db)
	if err != nil {
		return err
	}

	mux := deliveryhttp.NewRouter(a.controllers, a.verifier, logger)
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           deliveryhttp.NewHandler(mux, cfg.CORSOrigins, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("api listening", "addr", server.Addr, "env", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		return a.tasks.Run(gctx)
	})
	g.Go(func() error {
		if err := a.recomputeAnnouncement(gctx); err != nil {
			logger.Error("initial announcement recompute failed", "err", err)
		}
		return tasks.Every(gctx, logger, "announcement", cfg.AnnouncementInterval, a.recomputeAnnouncement)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("server stopped")
	return nil
}
