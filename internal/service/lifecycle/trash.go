package lifecycle

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/taxnation/crm-backend/internal/domain"
	"github.com/taxnation/crm-backend/pkg/ctxutil"
)

// Trash moves an ACTIVE record into the trash, stamping who and when. The
// state switch is a compare-and-set, so two concurrent trashes cannot both
// succeed.
func (s *Service) Trash(ctx context.Context, id uuid.UUID) (*domain.Record, error) {
	ident, ok := ctxutil.IdentityFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if !domain.Permits(ident.Role, s.meta.Type, domain.ActionTrash) {
		return nil, fmt.Errorf("trash %s: %w", s.meta.Type, domain.ErrForbidden)
	}

	rec, err := s.records.GetByID(ctx, s.meta.Type, id)
	if err != nil {
		return nil, err
	}
	if !s.canReadAll(ident) && rec.OwnerID != ident.ID {
		return nil, fmt.Errorf("record %s: %w", id, domain.ErrNotFound)
	}

	now := time.Now().UTC()
	entry := newAuditEntry(ident, rec.ID, "moved to trash", nil, now)

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		err := s.records.UpdateState(txCtx, rec.ID,
			domain.RecordStateActive, domain.RecordStateTrashed, &now, &ident.ID)
		if err != nil {
			return fmt.Errorf("trash record: %w", err)
		}
		if err := s.audit.Append(txCtx, entry); err != nil {
			return fmt.Errorf("append audit entry: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	rec.State = domain.RecordStateTrashed
	rec.DeletedAt = &now
	rec.DeletedBy = &ident.ID
	rec.History = append(rec.History, entry)

	s.log.InfoContext(ctx, "record trashed",
		slog.String("record_id", rec.ID.String()),
		slog.String("actor_id", ident.ID.String()),
	)

	return rec, nil
}

// Restore moves a TRASHED record back to ACTIVE and clears the trash
// markers. Restoring an active record fails with an invalid-state error.
func (s *Service) Restore(ctx context.Context, id uuid.UUID) (*domain.Record, error) {
	ident, ok := ctxutil.IdentityFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if !domain.Permits(ident.Role, s.meta.Type, domain.ActionRestore) {
		return nil, fmt.Errorf("restore %s: %w", s.meta.Type, domain.ErrForbidden)
	}

	rec, err := s.records.GetByID(ctx, s.meta.Type, id)
	if err != nil {
		return nil, err
	}
	if !s.canReadAll(ident) && rec.OwnerID != ident.ID {
		return nil, fmt.Errorf("record %s: %w", id, domain.ErrNotFound)
	}

	now := time.Now().UTC()
	entry := newAuditEntry(ident, rec.ID, "restored from trash", nil, now)

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		err := s.records.UpdateState(txCtx, rec.ID,
			domain.RecordStateTrashed, domain.RecordStateActive, nil, nil)
		if err != nil {
			return fmt.Errorf("restore record: %w", err)
		}
		if err := s.audit.Append(txCtx, entry); err != nil {
			return fmt.Errorf("append audit entry: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	rec.State = domain.RecordStateActive
	rec.DeletedAt = nil
	rec.DeletedBy = nil
	rec.History = append(rec.History, entry)

	s.log.InfoContext(ctx, "record restored",
		slog.String("record_id", rec.ID.String()),
		slog.String("actor_id", ident.ID.String()),
	)

	return rec, nil
}
