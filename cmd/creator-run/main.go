// Command creator-run executes one post creation pass. It is intended to be
// invoked by an external cron job, not as an in-process goroutine; all
// run-level settings are read from the auto_creator_settings table.
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
	categoryrepo "github.com/pollboard/pollboard-backend/internal/adapter/postgres/category"
	postrepo "github.com/pollboard/pollboard-backend/internal/adapter/postgres/post"
	userrepo "github.com/pollboard/pollboard-backend/internal/adapter/postgres/user"
	"github.com/pollboard/pollboard-backend/internal/app"
	"github.com/pollboard/pollboard-backend/internal/config"
	"github.com/pollboard/pollboard-backend/internal/domain"
	"github.com/pollboard/pollboard-backend/internal/feed"
	"github.com/pollboard/pollboard-backend/internal/pagemeta"
	"github.com/pollboard/pollboard-backend/internal/service/autocreator"
	"github.com/pollboard/pollboard-backend/internal/service/engagement"
	"github.com/pollboard/pollboard-backend/internal/synth"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	store := autopilotrepo.New(pool)
	actors := engagement.NewSelector(logger, userrepo.New(pool), cfg.Autopilot.ActorPoolLimit)

	svc := autocreator.NewService(
		logger,
		store,
		postrepo.New(pool),
		categoryrepo.New(pool),
		feed.NewReader(cfg.Autopilot.FeedTimeout, cfg.Autopilot.FeedItemLimit, logger),
		pagemeta.NewScraper(cfg.Autopilot.PageTimeout, logger),
		synth.NewClient(cfg.Autopilot.SynthTimeout, logger),
		actors,
	)

	result, err := svc.Run(ctx, domain.ExecutionKindAuto)
	if err != nil {
		logger.Error("creation run failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("creation run finished",
		slog.Bool("ran", result.Ran),
		slog.String("reason", result.Reason),
		slog.Int("created", len(result.CreatedPostIDs)),
	)
}
