package lifecycle

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/taxnation/crm-backend/internal/domain"
	"github.com/taxnation/crm-backend/pkg/ctxutil"
)

// testMeta mirrors the booking metadata: the richest resource, exercising
// required fields, array fields, restricted fields and a status allow-list.
func testMeta() domain.ResourceMeta {
	return domain.ResourceMeta{
		Type:             domain.ResourceTypeBooking,
		RequiredFields:   []string{"branch_name", "contact_person", "email", "services", "total_amount", "pan", "state"},
		ArrayFields:      []string{"services"},
		RestrictedFields: []string{"services", "total_amount"},
		SearchableFields: []string{"contact_person", "email", "pan"},
		ValidStatus:      []string{"Pending", "In Progress", "Completed"},
	}
}

// validFields returns a payload satisfying testMeta's required fields.
func validFields() domain.FieldMap {
	return domain.FieldMap{
		"branch_name":    "Noida",
		"contact_person": "Rohit Sharma",
		"email":          "client@example.com",
		"services":       []any{"GST", "ITR"},
		"total_amount":   float64(5000),
		"pan":            "ABCDE1234F",
		"state":          "UP",
		"status":         "Pending",
	}
}

// newTestService wires a Service with the given mocks and a passthrough tx.
func newTestService(t *testing.T, records *recordRepoMock, audit *auditRepoMock) *Service {
	t.Helper()
	return NewService(slog.Default(), testMeta(), records, audit, defaultTxMock())
}

// defaultTxMock returns a txManagerMock that simply calls the function with the same context.
func defaultTxMock() *txManagerMock {
	return &txManagerMock{
		RunInTxFunc: func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		},
	}
}

// identityCtx returns a context carrying a fresh identity with the given role.
func identityCtx(role domain.Role) (context.Context, domain.Identity) {
	ident := domain.Identity{
		ID:    uuid.New(),
		Label: "Test " + string(role),
		Role:  role,
	}
	return ctxutil.WithIdentity(context.Background(), ident), ident
}

// activeRecord returns an ACTIVE booking record owned by owner.
func activeRecord(owner domain.Identity) *domain.Record {
	now := time.Now().UTC().Add(-time.Hour)
	return &domain.Record{
		ID:         uuid.New(),
		Type:       domain.ResourceTypeBooking,
		OwnerID:    owner.ID,
		OwnerLabel: owner.Label,
		State:      domain.RecordStateActive,
		Fields:     validFields(),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// trashedRecord returns a TRASHED booking record owned by owner.
func trashedRecord(owner domain.Identity) *domain.Record {
	rec := activeRecord(owner)
	now := time.Now().UTC()
	rec.State = domain.RecordStateTrashed
	rec.DeletedAt = &now
	rec.DeletedBy = &owner.ID
	return rec
}

// getByIDReturning returns a GetByIDFunc serving the given record by ID.
func getByIDReturning(rec *domain.Record) func(context.Context, domain.ResourceType, uuid.UUID) (*domain.Record, error) {
	return func(_ context.Context, _ domain.ResourceType, id uuid.UUID) (*domain.Record, error) {
		if id != rec.ID {
			return nil, domain.ErrNotFound
		}
		clone := *rec
		clone.Fields = rec.Fields.Clone()
		return &clone, nil
	}
}

// emptyHistory is a ListByRecordFunc returning no entries.
func emptyHistory(context.Context, uuid.UUID) ([]domain.AuditEntry, error) {
	return []domain.AuditEntry{}, nil
}
