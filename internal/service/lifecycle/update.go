package lifecycle

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/taxnation/crm-backend/internal/domain"
	"github.com/taxnation/crm-backend/pkg/ctxutil"
)

// Update applies a partial field update to an ACTIVE record and appends one
// audit entry holding the old/new pair of every field that actually changed.
// Restricted fields are silently stripped for roles without full field
// access; if nothing survives the strip-and-diff, the update is rejected
// with ErrNoChange and no audit entry is written.
func (s *Service) Update(ctx context.Context, id uuid.UUID, fields domain.FieldMap, note string) (*domain.Record, error) {
	ident, ok := ctxutil.IdentityFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if !domain.Permits(ident.Role, s.meta.Type, domain.ActionUpdate) {
		return nil, fmt.Errorf("update %s: %w", s.meta.Type, domain.ErrForbidden)
	}

	rec, err := s.records.GetByID(ctx, s.meta.Type, id)
	if err != nil {
		return nil, err
	}
	if !s.canReadAll(ident) && rec.OwnerID != ident.ID {
		return nil, fmt.Errorf("record %s: %w", id, domain.ErrNotFound)
	}
	if rec.IsTrashed() {
		return nil, fmt.Errorf("record %s: %w", id,
			domain.NewInvalidStateError(domain.RecordStateTrashed, domain.RecordStateActive))
	}

	proposed := fields.Clone()
	if !domain.HasFullFieldAccess(ident.Role) {
		for _, name := range s.meta.RestrictedFields {
			delete(proposed, name)
		}
	}

	if err := s.validateUpdate(proposed); err != nil {
		return nil, err
	}

	changes := domain.Diff(rec.Fields, proposed)
	if len(changes) == 0 {
		return nil, fmt.Errorf("record %s: %w", id, domain.ErrNoChange)
	}

	merged := rec.Fields.Clone()
	for name, value := range proposed {
		merged[name] = value
	}

	now := time.Now().UTC()
	entry := newAuditEntry(ident, rec.ID, note, changes, now)

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.records.UpdateFields(txCtx, rec.ID, merged, now); err != nil {
			return fmt.Errorf("update fields: %w", err)
		}
		if err := s.audit.Append(txCtx, entry); err != nil {
			return fmt.Errorf("append audit entry: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	rec.Fields = merged
	rec.UpdatedAt = now
	rec.History = append(rec.History, entry)

	s.log.InfoContext(ctx, "record updated",
		slog.String("record_id", rec.ID.String()),
		slog.String("actor_id", ident.ID.String()),
		slog.Int("changed_fields", len(changes)),
	)

	return rec, nil
}

// validateUpdate checks the update payload against the resource metadata.
// Required fields may be absent (partial update) but must not be blanked
// out, and status values must stay in the allow-list.
func (s *Service) validateUpdate(fields domain.FieldMap) error {
	var errs []domain.FieldError

	for _, name := range s.meta.RequiredFields {
		if _, present := fields[name]; !present {
			continue
		}
		if msg, ok := missingReason(fields, name, s.meta.IsArrayField(name)); !ok {
			errs = append(errs, domain.FieldError{Field: name, Message: msg})
		}
	}

	if status, ok := fields["status"].(string); ok && len(s.meta.ValidStatus) > 0 {
		if !s.meta.IsValidStatus(status) {
			errs = append(errs, domain.FieldError{
				Field:   "status",
				Message: fmt.Sprintf("must be one of: %s", strings.Join(s.meta.ValidStatus, ", ")),
			})
		}
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
