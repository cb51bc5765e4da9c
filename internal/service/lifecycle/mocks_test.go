package lifecycle

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/taxnation/crm-backend/internal/domain"
)

var _ RecordRepo = &recordRepoMock{}

type recordRepoMock struct {
	CreateFunc       func(ctx context.Context, rec *domain.Record) error
	GetByIDFunc      func(ctx context.Context, rt domain.ResourceType, id uuid.UUID) (*domain.Record, error)
	ListFunc         func(ctx context.Context, meta domain.ResourceMeta, scope domain.ListScope, f domain.ListFilter) (domain.RecordPage, error)
	UpdateFieldsFunc func(ctx context.Context, id uuid.UUID, fields domain.FieldMap, updatedAt time.Time) error
	UpdateStateFunc  func(ctx context.Context, id uuid.UUID, from, to domain.RecordState, deletedAt *time.Time, deletedBy *uuid.UUID) error
	PurgeFunc        func(ctx context.Context, id uuid.UUID, from domain.RecordState) error

	calls struct {
		Create []struct {
			Rec *domain.Record
		}
		List []struct {
			Scope domain.ListScope
			F     domain.ListFilter
		}
		UpdateFields []struct {
			ID     uuid.UUID
			Fields domain.FieldMap
		}
		UpdateState []struct {
			ID   uuid.UUID
			From domain.RecordState
			To   domain.RecordState
		}
		Purge []struct {
			ID uuid.UUID
		}
	}
	lock sync.RWMutex
}

func (mock *recordRepoMock) Create(ctx context.Context, rec *domain.Record) error {
	if mock.CreateFunc == nil {
		panic("recordRepoMock.CreateFunc: method is nil but RecordRepo.Create was just called")
	}
	mock.lock.Lock()
	mock.calls.Create = append(mock.calls.Create, struct {
		Rec *domain.Record
	}{Rec: rec})
	mock.lock.Unlock()
	return mock.CreateFunc(ctx, rec)
}

func (mock *recordRepoMock) CreateCalls() []struct {
	Rec *domain.Record
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Create
}

func (mock *recordRepoMock) GetByID(ctx context.Context, rt domain.ResourceType, id uuid.UUID) (*domain.Record, error) {
	if mock.GetByIDFunc == nil {
		panic("recordRepoMock.GetByIDFunc: method is nil but RecordRepo.GetByID was just called")
	}
	return mock.GetByIDFunc(ctx, rt, id)
}

func (mock *recordRepoMock) List(ctx context.Context, meta domain.ResourceMeta, scope domain.ListScope, f domain.ListFilter) (domain.RecordPage, error) {
	if mock.ListFunc == nil {
		panic("recordRepoMock.ListFunc: method is nil but RecordRepo.List was just called")
	}
	mock.lock.Lock()
	mock.calls.List = append(mock.calls.List, struct {
		Scope domain.ListScope
		F     domain.ListFilter
	}{Scope: scope, F: f})
	mock.lock.Unlock()
	return mock.ListFunc(ctx, meta, scope, f)
}

func (mock *recordRepoMock) ListCalls() []struct {
	Scope domain.ListScope
	F     domain.ListFilter
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.List
}

func (mock *recordRepoMock) UpdateFields(ctx context.Context, id uuid.UUID, fields domain.FieldMap, updatedAt time.Time) error {
	if mock.UpdateFieldsFunc == nil {
		panic("recordRepoMock.UpdateFieldsFunc: method is nil but RecordRepo.UpdateFields was just called")
	}
	mock.lock.Lock()
	mock.calls.UpdateFields = append(mock.calls.UpdateFields, struct {
		ID     uuid.UUID
		Fields domain.FieldMap
	}{ID: id, Fields: fields})
	mock.lock.Unlock()
	return mock.UpdateFieldsFunc(ctx, id, fields, updatedAt)
}

func (mock *recordRepoMock) UpdateFieldsCalls() []struct {
	ID     uuid.UUID
	Fields domain.FieldMap
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.UpdateFields
}

func (mock *recordRepoMock) UpdateState(ctx context.Context, id uuid.UUID, from, to domain.RecordState, deletedAt *time.Time, deletedBy *uuid.UUID) error {
	if mock.UpdateStateFunc == nil {
		panic("recordRepoMock.UpdateStateFunc: method is nil but RecordRepo.UpdateState was just called")
	}
	mock.lock.Lock()
	mock.calls.UpdateState = append(mock.calls.UpdateState, struct {
		ID   uuid.UUID
		From domain.RecordState
		To   domain.RecordState
	}{ID: id, From: from, To: to})
	mock.lock.Unlock()
	return mock.UpdateStateFunc(ctx, id, from, to, deletedAt, deletedBy)
}

func (mock *recordRepoMock) UpdateStateCalls() []struct {
	ID   uuid.UUID
	From domain.RecordState
	To   domain.RecordState
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.UpdateState
}

func (mock *recordRepoMock) Purge(ctx context.Context, id uuid.UUID, from domain.RecordState) error {
	if mock.PurgeFunc == nil {
		panic("recordRepoMock.PurgeFunc: method is nil but RecordRepo.Purge was just called")
	}
	mock.lock.Lock()
	mock.calls.Purge = append(mock.calls.Purge, struct {
		ID uuid.UUID
	}{ID: id})
	mock.lock.Unlock()
	return mock.PurgeFunc(ctx, id, from)
}

func (mock *recordRepoMock) PurgeCalls() []struct {
	ID uuid.UUID
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Purge
}

var _ AuditRepo = &auditRepoMock{}

type auditRepoMock struct {
	AppendFunc       func(ctx context.Context, entry domain.AuditEntry) error
	ListByRecordFunc func(ctx context.Context, recordID uuid.UUID) ([]domain.AuditEntry, error)

	calls struct {
		Append []struct {
			Entry domain.AuditEntry
		}
	}
	lock sync.RWMutex
}

func (mock *auditRepoMock) Append(ctx context.Context, entry domain.AuditEntry) error {
	if mock.AppendFunc == nil {
		panic("auditRepoMock.AppendFunc: method is nil but AuditRepo.Append was just called")
	}
	mock.lock.Lock()
	mock.calls.Append = append(mock.calls.Append, struct {
		Entry domain.AuditEntry
	}{Entry: entry})
	mock.lock.Unlock()
	return mock.AppendFunc(ctx, entry)
}

func (mock *auditRepoMock) AppendCalls() []struct {
	Entry domain.AuditEntry
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Append
}

func (mock *auditRepoMock) ListByRecord(ctx context.Context, recordID uuid.UUID) ([]domain.AuditEntry, error) {
	if mock.ListByRecordFunc == nil {
		panic("auditRepoMock.ListByRecordFunc: method is nil but AuditRepo.ListByRecord was just called")
	}
	return mock.ListByRecordFunc(ctx, recordID)
}

var _ TxManager = &txManagerMock{}

type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (mock *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if mock.RunInTxFunc == nil {
		panic("txManagerMock.RunInTxFunc: method is nil but TxManager.RunInTx was just called")
	}
	return mock.RunInTxFunc(ctx, fn)
}
