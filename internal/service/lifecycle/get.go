package lifecycle

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/taxnation/crm-backend/internal/domain"
	"github.com/taxnation/crm-backend/pkg/ctxutil"
)

// Get returns a record with its full history. Records outside the caller's
// scope answer ErrNotFound, not ErrForbidden, so their existence leaks
// nothing. Trashed records are visible only with the view_trash permission.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Record, error) {
	ident, ok := ctxutil.IdentityFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if !domain.Permits(ident.Role, s.meta.Type, domain.ActionRead) {
		return nil, fmt.Errorf("read %s: %w", s.meta.Type, domain.ErrForbidden)
	}

	rec, err := s.records.GetByID(ctx, s.meta.Type, id)
	if err != nil {
		return nil, err
	}

	if !s.canReadAll(ident) && rec.OwnerID != ident.ID {
		return nil, fmt.Errorf("record %s: %w", id, domain.ErrNotFound)
	}
	if rec.IsTrashed() && !domain.Permits(ident.Role, s.meta.Type, domain.ActionViewTrash) {
		return nil, fmt.Errorf("record %s: %w", id, domain.ErrNotFound)
	}

	history, err := s.audit.ListByRecord(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	rec.History = history

	return rec, nil
}
