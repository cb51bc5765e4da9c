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

// Create validates the payload against the resource metadata and inserts a
// new ACTIVE record owned by the caller. Validation reports every offending
// field at once, not just the first.
func (s *Service) Create(ctx context.Context, fields domain.FieldMap) (*domain.Record, error) {
	ident, ok := ctxutil.IdentityFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if !domain.Permits(ident.Role, s.meta.Type, domain.ActionCreate) {
		return nil, fmt.Errorf("create %s: %w", s.meta.Type, domain.ErrForbidden)
	}

	if err := s.validateCreate(fields); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	rec := &domain.Record{
		ID:         uuid.New(),
		Type:       s.meta.Type,
		OwnerID:    ident.ID,
		OwnerLabel: ident.Label,
		State:      domain.RecordStateActive,
		Fields:     fields.Clone(),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	// History starts empty; audit entries record changes to an existing
	// record, and creation is not a change.
	if err := s.records.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("create record: %w", err)
	}

	s.log.InfoContext(ctx, "record created",
		slog.String("record_id", rec.ID.String()),
		slog.String("actor_id", ident.ID.String()),
	)

	return rec, nil
}

// validateCreate checks required fields and the status allow-list,
// collecting all violations into a single ValidationError.
func (s *Service) validateCreate(fields domain.FieldMap) error {
	var errs []domain.FieldError

	for _, name := range s.meta.RequiredFields {
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

// missingReason reports whether the field satisfies the required-field rule.
// On failure it returns the reason; ok is false.
func missingReason(fields domain.FieldMap, name string, isArray bool) (string, bool) {
	v, present := fields[name]
	if !present || v == nil {
		return "is required", false
	}

	if isArray {
		arr, ok := v.([]any)
		if !ok {
			return "must be a non-empty array", false
		}
		if len(arr) == 0 {
			return "must be a non-empty array", false
		}
		return "", true
	}

	if str, ok := v.(string); ok && strings.TrimSpace(str) == "" {
		return "is required", false
	}
	return "", true
}
