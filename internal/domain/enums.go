package domain

// RecordState represents the lifecycle state of a record.
// A purged record has no state: it no longer exists in the store.
type RecordState string

const (
	RecordStateActive  RecordState = "ACTIVE"
	RecordStateTrashed RecordState = "TRASHED"
)

func (s RecordState) String() string { return string(s) }

func (s RecordState) IsValid() bool {
	switch s {
	case RecordStateActive, RecordStateTrashed:
		return true
	}
	return false
}

// ResourceType identifies the kind of lifecycle-managed record.
type ResourceType string

const (
	ResourceTypeBooking     ResourceType = "booking"
	ResourceTypeLead        ResourceType = "lead"
	ResourceTypeInvoice     ResourceType = "invoice"
	ResourceTypeEmployee    ResourceType = "employee"
	ResourceTypePaymentLink ResourceType = "payment_link"
	ResourceTypeUser        ResourceType = "user"
)

func (t ResourceType) String() string { return string(t) }

func (t ResourceType) IsValid() bool {
	switch t {
	case ResourceTypeBooking, ResourceTypeLead, ResourceTypeInvoice,
		ResourceTypeEmployee, ResourceTypePaymentLink, ResourceTypeUser:
		return true
	}
	return false
}

// Role represents the authorization level of a user. The set is closed:
// anything outside it carries no permissions at all.
type Role string

const (
	RoleSuperAdmin Role = "superadmin"
	RoleManager    Role = "manager"
	RoleAdmin      Role = "admin"
	RoleHR         Role = "hr"
	RoleAgent      Role = "agent"
)

func (r Role) String() string { return string(r) }

func (r Role) IsValid() bool {
	switch r {
	case RoleSuperAdmin, RoleManager, RoleAdmin, RoleHR, RoleAgent:
		return true
	}
	return false
}

// Action is a permission checked against the role policy table.
type Action string

const (
	ActionCreate    Action = "create"
	ActionRead      Action = "read"
	ActionReadAll   Action = "read_all"
	ActionUpdate    Action = "update"
	ActionTrash     Action = "trash"
	ActionRestore   Action = "restore"
	ActionPurge     Action = "purge"
	ActionViewTrash Action = "view_trash"
	ActionApprove   Action = "approve"
)

func (a Action) String() string { return string(a) }

// BookingStatus values accepted by the booking status filter.
type BookingStatus string

const (
	BookingStatusPending    BookingStatus = "Pending"
	BookingStatusInProgress BookingStatus = "In Progress"
	BookingStatusCompleted  BookingStatus = "Completed"
)

func (s BookingStatus) String() string { return string(s) }

func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingStatusPending, BookingStatusInProgress, BookingStatusCompleted:
		return true
	}
	return false
}

// LeadStatus values accepted by the lead status filter.
type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "new"
	LeadStatusContacted LeadStatus = "contacted"
	LeadStatusFollowup  LeadStatus = "followup"
	LeadStatusWon       LeadStatus = "won"
	LeadStatusLost      LeadStatus = "lost"
)

func (s LeadStatus) String() string { return string(s) }

func (s LeadStatus) IsValid() bool {
	switch s {
	case LeadStatusNew, LeadStatusContacted, LeadStatusFollowup, LeadStatusWon, LeadStatusLost:
		return true
	}
	return false
}

// PaymentLinkStatus values accepted by the payment link status filter.
type PaymentLinkStatus string

const (
	PaymentLinkStatusPending PaymentLinkStatus = "pending"
	PaymentLinkStatusPaid    PaymentLinkStatus = "paid"
	PaymentLinkStatusExpired PaymentLinkStatus = "expired"
	PaymentLinkStatusFailed  PaymentLinkStatus = "failed"
)

func (s PaymentLinkStatus) String() string { return string(s) }

func (s PaymentLinkStatus) IsValid() bool {
	switch s {
	case PaymentLinkStatusPending, PaymentLinkStatusPaid, PaymentLinkStatusExpired, PaymentLinkStatusFailed:
		return true
	}
	return false
}

// PaymentMethod values accepted by the booking payment-method filter.
type PaymentMethod string

const (
	PaymentMethodKotak    PaymentMethod = "KOTAK MAHINDRA BANK"
	PaymentMethodRazorpay PaymentMethod = "RAZORPAY"
	PaymentMethodPayU     PaymentMethod = "PayU"
	PaymentMethodCash     PaymentMethod = "Cash"
	PaymentMethodCheque   PaymentMethod = "Cheque"
)

func (m PaymentMethod) String() string { return string(m) }

func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodKotak, PaymentMethodRazorpay, PaymentMethodPayU, PaymentMethodCash, PaymentMethodCheque:
		return true
	}
	return false
}
