// Command engagement-run executes one scheduled engagement tick. It is
// intended to be invoked by an external cron job; all run-level settings are
// read from the auto_engagement_settings table.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/pollboard/pollboard-backend/internal/adapter/postgres"
	autopilotrepo "github.com/pollboard/pollboard-backend/internal/adapter/postgres/autopilot"
	commentrepo "github.com/pollboard/pollboard-backend/internal/adapter/postgres/comment"
	likerepo "github.com/pollboard/pollboard-backend/internal/adapter/postgres/like"
	postrepo "github.com/pollboard/pollboard-backend/internal/adapter/postgres/post"
	userrepo "github.com/pollboard/pollboard-backend/internal/adapter/postgres/user"
	"github.com/pollboard/pollboard-backend/internal/app"
	"github.com/pollboard/pollboard-backend/internal/config"
	"github.com/pollboard/pollboard-backend/internal/service/engagement"
	"github.com/pollboard/pollboard-backend/internal/synth"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	store := autopilotrepo.New(pool)
	actors := engagement.NewSelector(logger, userrepo.New(pool), cfg.Autopilot.ActorPoolLimit)

	svc := engagement.NewService(
		logger,
		store,
		postgres.NewTxManager(pool),
		postrepo.New(pool),
		commentrepo.New(pool),
		likerepo.New(pool),
		actors,
		synth.NewClient(cfg.Autopilot.SynthTimeout, logger),
	)

	result, err := svc.RunScheduled(ctx)
	if err != nil {
		logger.Error("engagement run failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("engagement run finished",
		slog.Bool("ran", result.Ran),
		slog.String("reason", result.Reason),
		slog.String("message", result.Message),
	)
}
