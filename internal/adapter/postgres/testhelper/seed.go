package testhelper

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taxnation/crm-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedUser creates a user with the given role and returns the filled domain.User.
func SeedUser(t *testing.T, pool *pgxpool.Pool, role domain.Role) domain.User {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	user := domain.User{
		ID:           uuid.New(),
		Name:         "Test User " + suffix,
		Email:        "testuser-" + suffix + "@example.com",
		PasswordHash: "$2a$10$seeded-hash-" + suffix,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO users (id, name, email, password_hash, role, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		user.ID, user.Name, user.Email, user.PasswordHash, string(user.Role), user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser insert user: %v", err)
	}

	return user
}

// SeedRecord creates an ACTIVE record of the given type owned by owner.
// Returns the filled domain.Record.
func SeedRecord(t *testing.T, pool *pgxpool.Pool, rt domain.ResourceType, owner domain.User, fields domain.FieldMap) domain.Record {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	rec := domain.Record{
		ID:         uuid.New(),
		Type:       rt,
		OwnerID:    owner.ID,
		OwnerLabel: owner.Name,
		State:      domain.RecordStateActive,
		Fields:     fields,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	fieldsJSON, err := json.Marshal(fields)
	if err != nil {
		t.Fatalf("testhelper: SeedRecord marshal fields: %v", err)
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO records (id, resource_type, owner_id, owner_label, state, fields, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		rec.ID, string(rec.Type), rec.OwnerID, rec.OwnerLabel, string(rec.State), fieldsJSON, rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedRecord insert: %v", err)
	}

	return rec
}

// SeedBookingFields returns a minimal valid booking payload.
func SeedBookingFields() domain.FieldMap {
	return domain.FieldMap{
		"branch_name":    "Noida",
		"contact_person": "Rohit Sharma",
		"email":          "client-" + uniqueSuffix() + "@example.com",
		"services":       []any{"GST"},
		"total_amount":   float64(1000),
		"pan":            "ABCDE1234F",
		"state":          "UP",
		"status":         "Pending",
	}
}
