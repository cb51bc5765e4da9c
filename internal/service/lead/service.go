// Package lead wires the lead resource into the lifecycle engine.
package lead

import (
	"log/slog"

	"github.com/taxnation/crm-backend/internal/domain"
	"github.com/taxnation/crm-backend/internal/service/lifecycle"
)

// Meta is the lead resource metadata.
func Meta() domain.ResourceMeta {
	return domain.ResourceMeta{
		Type:             domain.ResourceTypeLead,
		RequiredFields:   []string{"name", "phone", "email"},
		RestrictedFields: []string{"assigned_to"},
		SearchableFields: []string{"name", "company_name", "email", "service"},
		ValidStatus: []string{
			string(domain.LeadStatusNew),
			string(domain.LeadStatusContacted),
			string(domain.LeadStatusFollowup),
			string(domain.LeadStatusWon),
			string(domain.LeadStatusLost),
		},
	}
}

// Service provides lead lifecycle operations.
type Service struct {
	*lifecycle.Service
}

// NewService creates the lead service on top of the shared engine.
func NewService(log *slog.Logger, records lifecycle.RecordRepo, audit lifecycle.AuditRepo, tx lifecycle.TxManager) *Service {
	return &Service{Service: lifecycle.NewService(log, Meta(), records, audit, tx)}
}
