package lifecycle

import (
	"context"
	"fmt"
	"strings"

	"github.com/taxnation/crm-backend/internal/domain"
	"github.com/taxnation/crm-backend/pkg/ctxutil"
)

// List returns one page of records the caller may see. Roles without
// read_all are scoped down to their own records instead of being rejected;
// the trash view additionally requires view_trash.
func (s *Service) List(ctx context.Context, f domain.ListFilter) (domain.RecordPage, error) {
	ident, ok := ctxutil.IdentityFromCtx(ctx)
	if !ok {
		return domain.RecordPage{}, domain.ErrUnauthorized
	}
	if !domain.Permits(ident.Role, s.meta.Type, domain.ActionRead) {
		return domain.RecordPage{}, fmt.Errorf("list %s: %w", s.meta.Type, domain.ErrForbidden)
	}
	if f.Trash && !domain.Permits(ident.Role, s.meta.Type, domain.ActionViewTrash) {
		return domain.RecordPage{}, fmt.Errorf("list %s trash: %w", s.meta.Type, domain.ErrForbidden)
	}

	if err := s.validateFilter(f); err != nil {
		return domain.RecordPage{}, err
	}
	f.Normalize()

	scope := domain.ListScope{}
	if !s.canReadAll(ident) {
		ownerID := ident.ID
		scope.OwnerID = &ownerID
	}

	return s.records.List(ctx, s.meta, scope, f)
}

// validateFilter rejects filter values outside the resource's allow-lists.
func (s *Service) validateFilter(f domain.ListFilter) error {
	if f.Status != nil && !s.meta.IsValidStatus(*f.Status) {
		return domain.NewValidationError("status",
			fmt.Sprintf("must be one of: %s", strings.Join(s.meta.ValidStatus, ", ")))
	}
	if f.PaymentMethod != nil && !domain.PaymentMethod(*f.PaymentMethod).IsValid() {
		return domain.NewValidationError("payment_method", "unknown payment method")
	}
	if f.StartDate != nil && f.EndDate != nil && f.EndDate.Before(*f.StartDate) {
		return domain.NewValidationError("end_date", "must not precede start_date")
	}
	return nil
}
