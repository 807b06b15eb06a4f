// Command migrate applies database migrations from the migrations
// directory using goose.
//
// Flags:
//
//	--dir      migrations directory (default: migrations)
//	--command  goose command: up, down, status (default: up)
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/pollboard/pollboard-backend/internal/app"
	"github.com/pollboard/pollboard-backend/internal/config"
)

func main() {
	dirFlag := flag.String("dir", "migrations", "migrations directory")
	commandFlag := flag.String("command", "up", "goose command: up, down, status")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	db, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("open database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, os.DirFS(*dirFlag))
	if err != nil {
		logger.Error("create migration provider", slog.String("error", err.Error()))
		os.Exit(1)
	}

	switch *commandFlag {
	case "up":
		results, err := provider.Up(ctx)
		if err != nil {
			logger.Error("apply migrations", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("migrations applied", slog.Int("count", len(results)))
	case "down":
		result, err := provider.Down(ctx)
		if err != nil {
			logger.Error("roll back migration", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("migration rolled back", slog.String("source", result.Source.Path))
	case "status":
		statuses, err := provider.Status(ctx)
		if err != nil {
			logger.Error("migration status", slog.String("error", err.Error()))
			os.Exit(1)
		}
		for _, st := range statuses {
			state := "pending"
			if !st.AppliedAt.IsZero() {
				state = st.AppliedAt.Format(time.RFC3339)
			}
			logger.Info("migration", slog.String("source", st.Source.Path), slog.String("applied", state))
		}
	default:
		logger.Error("unknown command", slog.String("command", *commandFlag))
		os.Exit(1)
	}
}
