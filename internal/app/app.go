package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/pollboard/pollboard-backend/internal/adapter/postgres"
	autopilotrepo "github.com/pollboard/pollboard-backend/internal/adapter/postgres/autopilot"
	categoryrepo "github.com/pollboard/pollboard-backend/internal/adapter/postgres/category"
	commentrepo "github.com/pollboard/pollboard-backend/internal/adapter/postgres/comment"
	likerepo "github.com/pollboard/pollboard-backend/internal/adapter/postgres/like"
	postrepo "github.com/pollboard/pollboard-backend/internal/adapter/postgres/post"
	userrepo "github.com/pollboard/pollboard-backend/internal/adapter/postgres/user"
	"github.com/pollboard/pollboard-backend/internal/auth"
	"github.com/pollboard/pollboard-backend/internal/config"
	"github.com/pollboard/pollboard-backend/internal/feed"
	"github.com/pollboard/pollboard-backend/internal/pagemeta"
	"github.com/pollboard/pollboard-backend/internal/service/autocreator"
	"github.com/pollboard/pollboard-backend/internal/service/engagement"
	"github.com/pollboard/pollboard-backend/internal/synth"
	"github.com/pollboard/pollboard-backend/internal/transport/middleware"
	"github.com/pollboard/pollboard-backend/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, connects to
// the database, wires the autopilot services, and serves HTTP until ctx is
// cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	autopilotStore := autopilotrepo.New(pool)
	txManager := postgres.NewTxManager(pool)
	posts := postrepo.New(pool)
	comments := commentrepo.New(pool)
	likes := likerepo.New(pool)
	users := userrepo.New(pool)
	taxonomy := categoryrepo.New(pool)

	feeds := feed.NewReader(cfg.Autopilot.FeedTimeout, cfg.Autopilot.FeedItemLimit, logger)
	meta := pagemeta.NewScraper(cfg.Autopilot.PageTimeout, logger)
	synthClient := synth.NewClient(cfg.Autopilot.SynthTimeout, logger)
	actors := engagement.NewSelector(logger, users, cfg.Autopilot.ActorPoolLimit)

	creatorSvc := autocreator.NewService(logger, autopilotStore, posts, taxonomy, feeds, meta, synthClient, actors)
	engagementSvc := engagement.NewService(logger, autopilotStore, txManager, posts, comments, likes, actors, synthClient)

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.JWTAccessTTL)

	healthHandler := rest.NewHealthHandler(pool, BuildVersion())
	autopilotHandler := rest.NewAutopilotHandler(creatorSvc, engagementSvc, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", healthHandler.Health)
	mux.HandleFunc("GET /health/live", healthHandler.Live)
	mux.HandleFunc("GET /health/ready", healthHandler.Ready)
	mux.HandleFunc("POST /api/autopilot/creator/run", autopilotHandler.RunCreator)
	mux.HandleFunc("POST /api/autopilot/engagement/run", autopilotHandler.RunEngagement)
	mux.HandleFunc("POST /api/autopilot/engagement/execute", autopilotHandler.ExecuteEngagement)

	handler := middleware.Chain(
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.CORS(cfg.CORS),
		middleware.AdminAuth(cfg.Auth.APISecret, jwtManager),
	)(mux)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	return nil
}
