// Package booking wires the booking resource into the lifecycle engine.
package booking

import (
	"log/slog"

	"github.com/taxnation/crm-backend/internal/domain"
	"github.com/taxnation/crm-backend/internal/service/lifecycle"
)

// Meta is the booking resource metadata: the richest payload, carrying the
// status and payment-method allow-lists used by the booking filters.
func Meta() domain.ResourceMeta {
	return domain.ResourceMeta{
		Type: domain.ResourceTypeBooking,
		RequiredFields: []string{
			"branch_name", "contact_person", "email", "services",
			"total_amount", "pan", "state",
		},
		ArrayFields:      []string{"services"},
		RestrictedFields: []string{"services", "total_amount"},
		SearchableFields: []string{"contact_person", "company_name", "email", "remark"},
		ValidStatus: []string{
			string(domain.BookingStatusPending),
			string(domain.BookingStatusInProgress),
			string(domain.BookingStatusCompleted),
		},
	}
}

// Service provides booking lifecycle operations.
type Service struct {
	*lifecycle.Service
}

// NewService creates the booking service on top of the shared engine.
func NewService(log *slog.Logger, records lifecycle.RecordRepo, audit lifecycle.AuditRepo, tx lifecycle.TxManager) *Service {
	return &Service{Service: lifecycle.NewService(log, Meta(), records, audit, tx)}
}
