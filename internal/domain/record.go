package domain

import (
	"time"

	"github.com/google/uuid"
)

// FieldMap is the type-specific payload of a record. Values are the JSON
// scalar/array/object types produced by encoding/json.
type FieldMap map[string]any

// Clone returns a shallow copy of the map. Nested values are shared; callers
// that mutate nested structures must copy them first.
func (f FieldMap) Clone() FieldMap {
	if f == nil {
		return nil
	}
	out := make(FieldMap, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Identity is the authenticated caller resolved upstream by the auth
// provider. The core trusts this pair and never re-derives it.
type Identity struct {
	ID    uuid.UUID
	Label string // display name, frozen into audit entries
	Role  Role
}

// Record is a lifecycle-managed business entity: a booking, lead, invoice,
// employee profile or payment link. The type-specific payload lives in Fields;
// everything else is lifecycle metadata shared by all resource types.
type Record struct {
	ID         uuid.UUID
	Type       ResourceType
	OwnerID    uuid.UUID
	OwnerLabel string
	State      RecordState
	Fields     FieldMap
	History    []AuditEntry
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  *time.Time
	DeletedBy  *uuid.UUID
}

// IsTrashed reports whether the record is currently in the trash.
func (r *Record) IsTrashed() bool { return r.State == RecordStateTrashed }

// AuditEntry is one immutable history item capturing a field-level diff.
// Entries are append-only: a revert produces a new entry, never a removal.
type AuditEntry struct {
	ID         uuid.UUID
	RecordID   uuid.UUID
	ActorID    uuid.UUID
	ActorLabel string // display name at the time of the change
	Note       string
	Changes    Changes
	CreatedAt  time.Time
}

// Change is an old/new value pair for a single field.
type Change struct {
	Old any `json:"old"`
	New any `json:"new"`
}

// Changes maps field names to their old/new pairs. Only fields whose value
// actually changed are present.
type Changes map[string]Change

// ResourceMeta is the per-type metadata a resource service wires into the
// lifecycle engine and the scoped query builder. It is static data, not
// behavior: required fields, per-role write restrictions, searchable fields
// and filter allow-lists.
type ResourceMeta struct {
	Type ResourceType

	// RequiredFields must be present and non-empty on create.
	// ArrayFields among them must additionally be non-empty arrays.
	RequiredFields []string
	ArrayFields    []string

	// RestrictedFields are silently stripped from update payloads for roles
	// without full field access (see Policy.HasFullFieldAccess).
	RestrictedFields []string

	// SearchableFields participate in the case-insensitive free-text search.
	SearchableFields []string

	// ValidStatus is the status filter allow-list; empty means the resource
	// has no status filter.
	ValidStatus []string
}

// IsArrayField reports whether the named field must be a non-empty array.
func (m ResourceMeta) IsArrayField(name string) bool {
	for _, f := range m.ArrayFields {
		if f == name {
			return true
		}
	}
	return false
}

// IsValidStatus reports whether s is in the resource's status allow-list.
func (m ResourceMeta) IsValidStatus(s string) bool {
	for _, v := range m.ValidStatus {
		if v == s {
			return true
		}
	}
	return false
}
