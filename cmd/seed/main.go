// Command seed creates the initial superadmin account so the first login is
// possible on a fresh database. It is idempotent: if a user with the given
// email already exists, nothing is changed.
//
// Usage:
//
//	SEED_NAME="Owner" SEED_EMAIL=owner@example.com SEED_PASSWORD=... seed
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/taxnation/crm-backend/internal/adapter/postgres"
	userrepo "github.com/taxnation/crm-backend/internal/adapter/postgres/user"
	"github.com/taxnation/crm-backend/internal/app"
	"github.com/taxnation/crm-backend/internal/config"
	"github.com/taxnation/crm-backend/internal/domain"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	name := os.Getenv("SEED_NAME")
	email := strings.ToLower(strings.TrimSpace(os.Getenv("SEED_EMAIL")))
	password := os.Getenv("SEED_PASSWORD")
	if name == "" || email == "" || password == "" {
		logger.Error("SEED_NAME, SEED_EMAIL, and SEED_PASSWORD are required")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	users := userrepo.New(pool)

	if _, err := users.GetByEmail(ctx, email); err == nil {
		logger.Info("user already exists, nothing to do", slog.String("email", email))
		return
	} else if !errors.Is(err, domain.ErrNotFound) {
		logger.Error("lookup user", slog.String("error", err.Error()))
		os.Exit(1)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("hash password", slog.String("error", err.Error()))
		os.Exit(1)
	}

	now := time.Now()
	user := &domain.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleSuperAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := users.Create(ctx, user); err != nil {
		logger.Error("create user", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("superadmin created",
		slog.String("user_id", user.ID.String()),
		slog.String("email", email),
	)
}
