package employee

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/taxnation/crm-backend/internal/domain"
	"github.com/taxnation/crm-backend/internal/service/lifecycle"
)

// fakeStore is an in-memory record and audit store that backs the engine in
// tests. It implements just enough of the repository contracts for the
// operations exercised here.
type fakeStore struct {
	mu      sync.Mutex
	records map[uuid.UUID]*domain.Record
	history map[uuid.UUID][]domain.AuditEntry
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		records: make(map[uuid.UUID]*domain.Record),
		history: make(map[uuid.UUID][]domain.AuditEntry),
	}
}

var (
	_ lifecycle.RecordRepo = (*fakeStore)(nil)
	_ lifecycle.AuditRepo  = (*fakeStore)(nil)
	_ lifecycle.TxManager  = (*fakeStore)(nil)
)

func (f *fakeStore) Create(ctx context.Context, rec *domain.Record) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *rec
	clone.Fields = rec.Fields.Clone()
	f.records[rec.ID] = &clone
	return nil
}

func (f *fakeStore) GetByID(ctx context.Context, rt domain.ResourceType, id uuid.UUID) (*domain.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.records[id]
	if !ok || rec.Type != rt {
		return nil, domain.ErrNotFound
	}
	clone := *rec
	clone.Fields = rec.Fields.Clone()
	return &clone, nil
}

func (f *fakeStore) List(ctx context.Context, meta domain.ResourceMeta, scope domain.ListScope, filter domain.ListFilter) (domain.RecordPage, error) {
	return domain.RecordPage{}, nil
}

func (f *fakeStore) UpdateFields(ctx context.Context, id uuid.UUID, fields domain.FieldMap, updatedAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.records[id]
	if !ok {
		return domain.ErrNotFound
	}
	if rec.State != domain.RecordStateActive {
		return domain.NewInvalidStateError(rec.State, domain.RecordStateActive)
	}
	rec.Fields = fields.Clone()
	rec.UpdatedAt = updatedAt
	return nil
}

func (f *fakeStore) UpdateState(ctx context.Context, id uuid.UUID, from, to domain.RecordState, deletedAt *time.Time, deletedBy *uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.records[id]
	if !ok {
		return domain.ErrNotFound
	}
	if rec.State != from {
		return domain.NewInvalidStateError(rec.State, from)
	}
	rec.State = to
	rec.DeletedAt = deletedAt
	rec.DeletedBy = deletedBy
	return nil
}

func (f *fakeStore) Purge(ctx context.Context, id uuid.UUID, from domain.RecordState) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.records[id]
	if !ok {
		return domain.ErrNotFound
	}
	if rec.State != from {
		return domain.NewInvalidStateError(rec.State, from)
	}
	delete(f.records, id)
	delete(f.history, id)
	return nil
}

func (f *fakeStore) Append(ctx context.Context, entry domain.AuditEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.records[entry.RecordID]; !ok {
		return domain.ErrNotFound
	}
	entry.ID = uuid.New()
	entry.CreatedAt = time.Now()
	f.history[entry.RecordID] = append(f.history[entry.RecordID], entry)
	return nil
}

func (f *fakeStore) ListByRecord(ctx context.Context, recordID uuid.UUID) ([]domain.AuditEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.AuditEntry(nil), f.history[recordID]...), nil
}

func (f *fakeStore) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
