// Package lifecycle implements the shared record lifecycle engine: create,
// read, scoped listing, audited updates and the trash/restore/purge state
// machine. One Service instance serves one resource type; the per-type
// behavior comes entirely from the domain.ResourceMeta it is built with.
package lifecycle

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/taxnation/crm-backend/internal/domain"
)

type RecordRepo interface {
	Create(ctx context.Context, rec *domain.Record) error
	GetByID(ctx context.Context, rt domain.ResourceType, id uuid.UUID) (*domain.Record, error)
	List(ctx context.Context, meta domain.ResourceMeta, scope domain.ListScope, f domain.ListFilter) (domain.RecordPage, error)
	UpdateFields(ctx context.Context, id uuid.UUID, fields domain.FieldMap, updatedAt time.Time) error
	UpdateState(ctx context.Context, id uuid.UUID, from, to domain.RecordState, deletedAt *time.Time, deletedBy *uuid.UUID) error
	Purge(ctx context.Context, id uuid.UUID, from domain.RecordState) error
}

type AuditRepo interface {
	Append(ctx context.Context, entry domain.AuditEntry) error
	ListByRecord(ctx context.Context, recordID uuid.UUID) ([]domain.AuditEntry, error)
}

type TxManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service is the lifecycle engine for a single resource type.
type Service struct {
	meta    domain.ResourceMeta
	records RecordRepo
	audit   AuditRepo
	tx      TxManager
	log     *slog.Logger
}

// NewService creates a lifecycle engine for the given resource metadata.
func NewService(
	log *slog.Logger,
	meta domain.ResourceMeta,
	records RecordRepo,
	audit AuditRepo,
	tx TxManager,
) *Service {
	return &Service{
		meta:    meta,
		records: records,
		audit:   audit,
		tx:      tx,
		log:     log.With("service", "lifecycle", "resource", string(meta.Type)),
	}
}

// Meta returns the resource metadata the engine was built with.
func (s *Service) Meta() domain.ResourceMeta { return s.meta }

// canReadAll reports whether the identity sees the whole collection or only
// its own records.
func (s *Service) canReadAll(ident domain.Identity) bool {
	return domain.Permits(ident.Role, s.meta.Type, domain.ActionReadAll)
}

// newAuditEntry builds an audit entry attributed to the identity, freezing
// its display label.
func newAuditEntry(ident domain.Identity, recordID uuid.UUID, note string, changes domain.Changes, at time.Time) domain.AuditEntry {
	if changes == nil {
		changes = domain.Changes{}
	}
	return domain.AuditEntry{
		ID:         uuid.New(),
		RecordID:   recordID,
		ActorID:    ident.ID,
		ActorLabel: ident.Label,
		Note:       note,
		Changes:    changes,
		CreatedAt:  at,
	}
}
