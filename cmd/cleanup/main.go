// Command cleanup permanently removes records that have been in the trash
// longer than the configured retention period, and deletes expired or revoked
// refresh tokens. It is intended to be invoked by an external cron job, not
// as an in-process goroutine.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/taxnation/crm-backend/internal/adapter/postgres"
	recordrepo "github.com/taxnation/crm-backend/internal/adapter/postgres/record"
	tokenrepo "github.com/taxnation/crm-backend/internal/adapter/postgres/token"
	"github.com/taxnation/crm-backend/internal/app"
	"github.com/taxnation/crm-backend/internal/config"
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

	records := recordrepo.New(pool)
	tokens := tokenrepo.New(pool)

	cutoff := time.Now().AddDate(0, 0, -cfg.Trash.RetentionDays)

	purged, err := records.PurgeTrashedBefore(ctx, cutoff)
	if err != nil {
		logger.Error("purge trashed records failed",
			slog.String("error", err.Error()),
			slog.Time("cutoff", cutoff),
		)
		os.Exit(1)
	}

	logger.Info("purge completed",
		slog.Int("purged", purged),
		slog.Time("cutoff", cutoff),
	)

	deleted, err := tokens.DeleteExpired(ctx)
	if err != nil {
		logger.Error("delete expired tokens failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("token cleanup completed", slog.Int("deleted", deleted))
}
