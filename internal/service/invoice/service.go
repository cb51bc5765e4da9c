// Package invoice wires the invoice resource into the lifecycle engine.
package invoice

import (
	"log/slog"

	"github.com/taxnation/crm-backend/internal/domain"
	"github.com/taxnation/crm-backend/internal/service/lifecycle"
)

// Meta is the invoice resource metadata. Monetary fields and the invoice
// number are restricted: contributor-level roles cannot rewrite them.
func Meta() domain.ResourceMeta {
	return domain.ResourceMeta{
		Type: domain.ResourceTypeInvoice,
		RequiredFields: []string{
			"invoice_number", "invoice_date", "client_name", "client_email",
			"items", "subtotal", "total",
		},
		ArrayFields:      []string{"items"},
		RestrictedFields: []string{"invoice_number", "subtotal", "gst_amount", "total"},
		SearchableFields: []string{"invoice_number", "client_name", "client_company_name"},
	}
}

// Service provides invoice lifecycle operations.
type Service struct {
	*lifecycle.Service
}

// NewService creates the invoice service on top of the shared engine.
func NewService(log *slog.Logger, records lifecycle.RecordRepo, audit lifecycle.AuditRepo, tx lifecycle.TxManager) *Service {
	return &Service{Service: lifecycle.NewService(log, Meta(), records, audit, tx)}
}
