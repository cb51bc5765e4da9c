// Package record implements the lifecycle record repository using PostgreSQL.
// All resource types share one records table; the type-specific payload is a
// jsonb column queried with squirrel-built dynamic filters.
package record

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/taxnation/crm-backend/internal/adapter/postgres"
	"github.com/taxnation/crm-backend/internal/domain"
)

// Repo provides record persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new record repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const recordColumns = `id, resource_type, owner_id, owner_label, state, fields,
       created_at, updated_at, deleted_at, deleted_by`

const insertRecordSQL = `
INSERT INTO records (id, resource_type, owner_id, owner_label, state, fields, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

const getRecordSQL = `
SELECT ` + recordColumns + `
FROM records
WHERE id = $1 AND resource_type = $2`

const updateFieldsSQL = `
UPDATE records
SET fields = $2, updated_at = $3
WHERE id = $1 AND state = 'ACTIVE'`

const updateStateSQL = `
UPDATE records
SET state = $3, deleted_at = $4, deleted_by = $5, updated_at = $6
WHERE id = $1 AND state = $2`

const currentStateSQL = `
SELECT state FROM records WHERE id = $1`

const purgeRecordSQL = `
DELETE FROM records
WHERE id = $1 AND state = $2`

const purgeTrashedBeforeSQL = `
DELETE FROM records
WHERE state = 'TRASHED' AND deleted_at < $1`

// Create inserts a new ACTIVE record.
func (r *Repo) Create(ctx context.Context, rec *domain.Record) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	fieldsJSON, err := json.Marshal(rec.Fields)
	if err != nil {
		return fmt.Errorf("marshal fields: %w", err)
	}

	_, err = q.Exec(ctx, insertRecordSQL,
		rec.ID, string(rec.Type), rec.OwnerID, rec.OwnerLabel,
		string(rec.State), fieldsJSON, rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		return mapError(err, "record", rec.ID)
	}
	return nil
}

// GetByID returns a record by primary key regardless of state. History is not
// loaded here; the audit repository owns it.
func (r *Repo) GetByID(ctx context.Context, rt domain.ResourceType, id uuid.UUID) (*domain.Record, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	row := q.QueryRow(ctx, getRecordSQL, id, string(rt))
	rec, err := scanRecord(row)
	if err != nil {
		return nil, mapError(err, "record", id)
	}
	return rec, nil
}

// UpdateFields replaces the jsonb payload of an ACTIVE record. Trashed
// records are not updatable; the 0-rows case is resolved to either
// ErrNotFound or an invalid-state error.
func (r *Repo) UpdateFields(ctx context.Context, id uuid.UUID, fields domain.FieldMap, updatedAt time.Time) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	fieldsJSON, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("marshal fields: %w", err)
	}

	tag, err := q.Exec(ctx, updateFieldsSQL, id, fieldsJSON, updatedAt)
	if err != nil {
		return mapError(err, "record", id)
	}
	if tag.RowsAffected() == 0 {
		return r.resolveMissedWrite(ctx, id, domain.RecordStateActive)
	}
	return nil
}

// UpdateState performs a compare-and-set state transition: the row is only
// written when its current state equals from. deletedAt/deletedBy are set on
// trash and cleared (nil) on restore.
func (r *Repo) UpdateState(ctx context.Context, id uuid.UUID, from, to domain.RecordState, deletedAt *time.Time, deletedBy *uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, updateStateSQL,
		id, string(from), string(to), deletedAt, deletedBy, time.Now().UTC(),
	)
	if err != nil {
		return mapError(err, "record", id)
	}
	if tag.RowsAffected() == 0 {
		return r.resolveMissedWrite(ctx, id, from)
	}
	return nil
}

// Purge hard-deletes a record. The state precondition guards against a
// concurrent restore between the service's check and the delete. Audit
// entries go with the record via ON DELETE CASCADE.
func (r *Repo) Purge(ctx context.Context, id uuid.UUID, from domain.RecordState) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, purgeRecordSQL, id, string(from))
	if err != nil {
		return mapError(err, "record", id)
	}
	if tag.RowsAffected() == 0 {
		return r.resolveMissedWrite(ctx, id, from)
	}
	return nil
}

// PurgeTrashedBefore hard-deletes every trashed record whose deleted_at is
// older than cutoff. Returns the number of purged records.
func (r *Repo) PurgeTrashedBefore(ctx context.Context, cutoff time.Time) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, purgeTrashedBeforeSQL, cutoff)
	if err != nil {
		return 0, fmt.Errorf("purge trashed before %s: %w", cutoff, err)
	}
	return int(tag.RowsAffected()), nil
}

// resolveMissedWrite distinguishes the two reasons a state-conditioned write
// can hit zero rows: the record is gone, or it is in a different state.
func (r *Repo) resolveMissedWrite(ctx context.Context, id uuid.UUID, required domain.RecordState) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var current string
	if err := q.QueryRow(ctx, currentStateSQL, id).Scan(&current); err != nil {
		return mapError(err, "record", id)
	}
	return fmt.Errorf("record %s: %w", id, domain.NewInvalidStateError(domain.RecordState(current), required))
}

// scanRecord scans one record row (recordColumns order).
func scanRecord(row pgx.Row) (*domain.Record, error) {
	var (
		rec        domain.Record
		rt         string
		state      string
		fieldsJSON []byte
	)
	err := row.Scan(
		&rec.ID, &rt, &rec.OwnerID, &rec.OwnerLabel, &state, &fieldsJSON,
		&rec.CreatedAt, &rec.UpdatedAt, &rec.DeletedAt, &rec.DeletedBy,
	)
	if err != nil {
		return nil, err
	}

	rec.Type = domain.ResourceType(rt)
	rec.State = domain.RecordState(state)
	if err := json.Unmarshal(fieldsJSON, &rec.Fields); err != nil {
		return nil, fmt.Errorf("unmarshal fields: %w", err)
	}
	return &rec, nil
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
