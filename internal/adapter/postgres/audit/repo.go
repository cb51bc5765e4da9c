// Package audit implements the audit entry repository using PostgreSQL.
// Entries are append-only: there is no update or single-entry delete, the
// whole history goes only when its record is purged (ON DELETE CASCADE).
package audit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/taxnation/crm-backend/internal/adapter/postgres"
	"github.com/taxnation/crm-backend/internal/domain"
)

// Repo provides audit entry persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new audit repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const appendEntrySQL = `
INSERT INTO audit_entries (id, record_id, actor_id, actor_label, note, changes, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

const listByRecordSQL = `
SELECT id, record_id, actor_id, actor_label, note, changes, created_at
FROM audit_entries
WHERE record_id = $1
ORDER BY created_at ASC, id ASC`

// Append inserts one audit entry.
func (r *Repo) Append(ctx context.Context, entry domain.AuditEntry) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	changesJSON, err := json.Marshal(entry.Changes)
	if err != nil {
		return fmt.Errorf("marshal changes: %w", err)
	}

	_, err = q.Exec(ctx, appendEntrySQL,
		entry.ID, entry.RecordID, entry.ActorID, entry.ActorLabel,
		entry.Note, changesJSON, entry.CreatedAt,
	)
	if err != nil {
		return mapError(err, "audit_entry", entry.ID)
	}
	return nil
}

// ListByRecord returns the full history of a record, oldest first.
func (r *Repo) ListByRecord(ctx context.Context, recordID uuid.UUID) ([]domain.AuditEntry, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, listByRecordSQL, recordID)
	if err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}
	defer rows.Close()

	entries := make([]domain.AuditEntry, 0)
	for rows.Next() {
		var (
			entry       domain.AuditEntry
			changesJSON []byte
		)
		err := rows.Scan(
			&entry.ID, &entry.RecordID, &entry.ActorID, &entry.ActorLabel,
			&entry.Note, &changesJSON, &entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		if err := json.Unmarshal(changesJSON, &entry.Changes); err != nil {
			return nil, fmt.Errorf("unmarshal changes: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit entries: %w", err)
	}

	return entries, nil
}

// mapError converts pgx/pgconn errors to domain errors.
func mapError(err error, entity string, id uuid.UUID) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s %s: %w", entity, id, err)
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrConflict)
		case "23503":
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
		case "23514":
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrValidation)
		}
	}
	return fmt.Errorf("%s %s: %w", entity, id, err)
}
