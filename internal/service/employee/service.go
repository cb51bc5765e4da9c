// Package employee wires the employee HR profile resource into the
// lifecycle engine and adds the approve operation on top of it.
package employee

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/taxnation/crm-backend/internal/domain"
	"github.com/taxnation/crm-backend/internal/service/lifecycle"
	"github.com/taxnation/crm-backend/pkg/ctxutil"
)

// Meta is the employee resource metadata.
func Meta() domain.ResourceMeta {
	return domain.ResourceMeta{
		Type: domain.ResourceTypeEmployee,
		RequiredFields: []string{
			"full_name", "designation", "department", "branch",
			"work_email", "date_of_joining",
		},
		RestrictedFields: []string{"approved", "approved_by", "approved_at"},
		SearchableFields: []string{"full_name", "designation", "department", "work_email"},
	}
}

// Service provides employee lifecycle operations plus approval.
type Service struct {
	*lifecycle.Service
	log *slog.Logger
}

// NewService creates the employee service on top of the shared engine.
func NewService(log *slog.Logger, records lifecycle.RecordRepo, audit lifecycle.AuditRepo, tx lifecycle.TxManager) *Service {
	return &Service{
		Service: lifecycle.NewService(log, Meta(), records, audit, tx),
		log:     log.With("service", "employee"),
	}
}

// Approve marks an employee profile as approved, recording who approved it
// and when. Approving twice fails with ErrNoChange.
func (s *Service) Approve(ctx context.Context, id uuid.UUID) (*domain.Record, error) {
	ident, ok := ctxutil.IdentityFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if !domain.Permits(ident.Role, domain.ResourceTypeEmployee, domain.ActionApprove) {
		return nil, fmt.Errorf("approve employee: %w", domain.ErrForbidden)
	}

	rec, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if approved, _ := rec.Fields["approved"].(bool); approved {
		return nil, fmt.Errorf("record %s: already approved: %w", id, domain.ErrNoChange)
	}

	updated, err := s.Update(ctx, id, domain.FieldMap{
		"approved":    true,
		"approved_by": ident.Label,
		"approved_at": time.Now().UTC().Format(time.RFC3339),
	}, "approved")
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "employee approved",
		slog.String("record_id", id.String()),
		slog.String("actor_id", ident.ID.String()),
	)

	return updated, nil
}
