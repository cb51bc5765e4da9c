package lifecycle

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/taxnation/crm-backend/internal/domain"
	"github.com/taxnation/crm-backend/pkg/ctxutil"
)

// Purge permanently deletes a TRASHED record together with its history.
// A record must pass through the trash first: purging an ACTIVE record
// fails with an invalid-state error, never a silent delete.
func (s *Service) Purge(ctx context.Context, id uuid.UUID) error {
	ident, ok := ctxutil.IdentityFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}
	if !domain.Permits(ident.Role, s.meta.Type, domain.ActionPurge) {
		return fmt.Errorf("purge %s: %w", s.meta.Type, domain.ErrForbidden)
	}

	rec, err := s.records.GetByID(ctx, s.meta.Type, id)
	if err != nil {
		return err
	}
	if !rec.IsTrashed() {
		return fmt.Errorf("record %s: %w", id,
			domain.NewInvalidStateError(rec.State, domain.RecordStateTrashed))
	}

	if err := s.records.Purge(ctx, rec.ID, domain.RecordStateTrashed); err != nil {
		return err
	}

	s.log.InfoContext(ctx, "record purged",
		slog.String("record_id", rec.ID.String()),
		slog.String("actor_id", ident.ID.String()),
	)

	return nil
}
