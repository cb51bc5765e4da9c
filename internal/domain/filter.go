package domain

import (
	"time"

	"github.com/google/uuid"
)

// ListScope restricts a listing to what the caller may see. A nil OwnerID
// means the full collection; a non-nil one limits the listing to that
// owner's records.
type ListScope struct {
	OwnerID *uuid.UUID
}

const (
	defaultPageLimit = 50
	maxPageLimit     = 200
)

// ListFilter contains the optional filters and pagination for scoped record
// listings. The role/ownership scope is not part of the filter; it is derived
// from the caller's identity and always applied first.
type ListFilter struct {
	// Trash requests the trash view instead of active records. Requires the
	// view_trash permission.
	Trash bool

	// Status filters by the resource's status field; must be in the
	// resource's allow-list.
	Status *string

	// PaymentMethod filters bookings by the bank/payment-method field;
	// must be in the payment-method allow-list.
	PaymentMethod *string

	// Search is a case-insensitive substring match across the resource's
	// searchable fields.
	Search *string

	// StartDate/EndDate bound created_at. Both bounds are inclusive; EndDate
	// is extended to the end of its day.
	StartDate *time.Time
	EndDate   *time.Time

	// Page is 1-based. Limit defaults to 50, capped at 200.
	Page  int
	Limit int
}

// Normalize applies pagination defaults and clamps values.
func (f *ListFilter) Normalize() {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 {
		f.Limit = defaultPageLimit
	}
	if f.Limit > maxPageLimit {
		f.Limit = maxPageLimit
	}
}

// Offset returns the row offset for the normalized page.
func (f *ListFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

// RecordPage is one page of a scoped listing.
type RecordPage struct {
	Items       []*Record
	TotalCount  int
	TotalPages  int
	CurrentPage int
}

// NewRecordPage assembles a page, deriving TotalPages from the limit. An
// out-of-range page yields an empty Items slice, never an error.
func NewRecordPage(items []*Record, totalCount, page, limit int) RecordPage {
	totalPages := 0
	if totalCount > 0 {
		totalPages = (totalCount + limit - 1) / limit
	}
	if items == nil {
		items = []*Record{}
	}
	return RecordPage{
		Items:       items,
		TotalCount:  totalCount,
		TotalPages:  totalPages,
		CurrentPage: page,
	}
}
