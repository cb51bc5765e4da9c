// Package payment creates UPI payment links through an external gateway and
// manages them as lifecycle records afterwards.
package payment

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/taxnation/crm-backend/internal/domain"
	"github.com/taxnation/crm-backend/internal/service/lifecycle"
	"github.com/taxnation/crm-backend/pkg/ctxutil"
)

// Meta is the payment link resource metadata.
func Meta() domain.ResourceMeta {
	return domain.ResourceMeta{
		Type:             domain.ResourceTypePaymentLink,
		RequiredFields:   []string{"customer_name", "contact", "amount"},
		RestrictedFields: []string{"amount", "gateway_link_id", "short_url"},
		SearchableFields: []string{"customer_name", "contact"},
		ValidStatus: []string{
			string(domain.PaymentLinkStatusPending),
			string(domain.PaymentLinkStatusPaid),
			string(domain.PaymentLinkStatusExpired),
			string(domain.PaymentLinkStatusFailed),
		},
	}
}

// GatewayRequest is what the payment gateway needs to issue a link.
type GatewayRequest struct {
	Amount       float64
	Currency     string
	CustomerName string
	Contact      string
	Description  string
}

// GatewayLink is the gateway's answer: its link id and the shareable URL.
type GatewayLink struct {
	ID       string
	ShortURL string
	Status   string
}

// Gateway issues payment links with an external provider.
type Gateway interface {
	CreateLink(ctx context.Context, req GatewayRequest) (*GatewayLink, error)
}

// Service provides payment link creation and lifecycle management.
type Service struct {
	*lifecycle.Service
	gateway Gateway
	log     *slog.Logger
}

// NewService creates the payment service. gateway may be nil when payment
// collection is not configured; CreateLink then fails cleanly.
func NewService(log *slog.Logger, gateway Gateway, records lifecycle.RecordRepo, audit lifecycle.AuditRepo, tx lifecycle.TxManager) *Service {
	return &Service{
		Service: lifecycle.NewService(log, Meta(), records, audit, tx),
		gateway: gateway,
		log:     log.With("service", "payment"),
	}
}

// CreateLinkInput is the payload for issuing a new payment link.
type CreateLinkInput struct {
	CustomerName string
	Contact      string
	Amount       float64
	Description  string
}

// Validate collects every invalid field at once.
func (in CreateLinkInput) Validate() error {
	var errs []domain.FieldError
	if strings.TrimSpace(in.CustomerName) == "" {
		errs = append(errs, domain.FieldError{Field: "customer_name", Message: "is required"})
	}
	if strings.TrimSpace(in.Contact) == "" {
		errs = append(errs, domain.FieldError{Field: "contact", Message: "is required"})
	}
	if in.Amount <= 0 {
		errs = append(errs, domain.FieldError{Field: "amount", Message: "must be positive"})
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// CreateLink issues a link with the gateway, then persists it as a
// payment_link record owned by the caller. The gateway is only called after
// the permission and validation checks pass.
func (s *Service) CreateLink(ctx context.Context, in CreateLinkInput) (*domain.Record, error) {
	ident, ok := ctxutil.IdentityFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if !domain.Permits(ident.Role, domain.ResourceTypePaymentLink, domain.ActionCreate) {
		return nil, fmt.Errorf("create payment link: %w", domain.ErrForbidden)
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if s.gateway == nil {
		return nil, fmt.Errorf("create payment link: gateway not configured")
	}

	link, err := s.gateway.CreateLink(ctx, GatewayRequest{
		Amount:       in.Amount,
		Currency:     "INR",
		CustomerName: in.CustomerName,
		Contact:      in.Contact,
		Description:  in.Description,
	})
	if err != nil {
		return nil, fmt.Errorf("gateway create link: %w", err)
	}

	rec, err := s.Create(ctx, domain.FieldMap{
		"customer_name":   in.CustomerName,
		"contact":         in.Contact,
		"amount":          in.Amount,
		"description":     in.Description,
		"status":          string(domain.PaymentLinkStatusPending),
		"gateway_link_id": link.ID,
		"short_url":       link.ShortURL,
	})
	if err != nil {
		// The gateway link exists but the record does not; surface the id
		// so the failure is reconcilable from the logs.
		s.log.ErrorContext(ctx, "payment link issued but not persisted",
			slog.String("gateway_link_id", link.ID),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	s.log.InfoContext(ctx, "payment link created",
		slog.String("record_id", rec.ID.String()),
		slog.String("gateway_link_id", link.ID),
	)

	return rec, nil
}

// UpdateStatus moves a payment link through its status set, recording the
// transition in the audit history.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*domain.Record, error) {
	if !domain.PaymentLinkStatus(status).IsValid() {
		return nil, domain.NewValidationError("status", "unknown payment link status")
	}
	return s.Update(ctx, id, domain.FieldMap{"status": status}, "payment status changed")
}
