package domain

// actionSet is a lookup set of permitted actions.
type actionSet map[Action]struct{}

func actions(as ...Action) actionSet {
	set := make(actionSet, len(as))
	for _, a := range as {
		set[a] = struct{}{}
	}
	return set
}

// fullLifecycle is every action short of purge and approve.
func fullLifecycle() actionSet {
	return actions(ActionCreate, ActionRead, ActionReadAll, ActionUpdate,
		ActionTrash, ActionRestore, ActionViewTrash)
}

// rolePermissions is the single source of truth for authorization: which
// actions each role may perform on each resource type. Every mutation path
// goes through Permits; nothing writes around it.
//
// superadmin is the only role holding purge, anywhere.
var rolePermissions = map[Role]map[ResourceType]actionSet{
	RoleSuperAdmin: {
		ResourceTypeBooking:     actions(ActionCreate, ActionRead, ActionReadAll, ActionUpdate, ActionTrash, ActionRestore, ActionPurge, ActionViewTrash),
		ResourceTypeLead:        actions(ActionCreate, ActionRead, ActionReadAll, ActionUpdate, ActionTrash, ActionRestore, ActionPurge, ActionViewTrash),
		ResourceTypeInvoice:     actions(ActionCreate, ActionRead, ActionReadAll, ActionUpdate, ActionTrash, ActionRestore, ActionPurge, ActionViewTrash),
		ResourceTypeEmployee:    actions(ActionCreate, ActionRead, ActionReadAll, ActionUpdate, ActionTrash, ActionRestore, ActionPurge, ActionViewTrash, ActionApprove),
		ResourceTypePaymentLink: actions(ActionCreate, ActionRead, ActionReadAll, ActionUpdate, ActionTrash, ActionRestore, ActionPurge, ActionViewTrash),
		ResourceTypeUser:        actions(ActionCreate, ActionRead, ActionReadAll, ActionUpdate, ActionTrash, ActionRestore, ActionPurge, ActionViewTrash),
	},
	RoleManager: {
		ResourceTypeBooking:     fullLifecycle(),
		ResourceTypeLead:        fullLifecycle(),
		ResourceTypeInvoice:     fullLifecycle(),
		ResourceTypeEmployee:    actions(ActionRead, ActionReadAll),
		ResourceTypePaymentLink: fullLifecycle(),
		ResourceTypeUser:        actions(ActionRead, ActionReadAll),
	},
	RoleAdmin: {
		ResourceTypeBooking:     actions(ActionCreate, ActionRead, ActionReadAll, ActionUpdate),
		ResourceTypeLead:        actions(ActionCreate, ActionRead, ActionReadAll, ActionUpdate),
		ResourceTypeInvoice:     actions(ActionCreate, ActionRead, ActionReadAll, ActionUpdate),
		ResourceTypePaymentLink: actions(ActionCreate, ActionRead, ActionReadAll),
	},
	RoleHR: {
		ResourceTypeBooking:  actions(ActionRead, ActionReadAll, ActionUpdate),
		ResourceTypeEmployee: actions(ActionCreate, ActionRead, ActionReadAll, ActionUpdate, ActionApprove),
	},
	RoleAgent: {
		ResourceTypeBooking:     actions(ActionCreate, ActionRead, ActionUpdate),
		ResourceTypeLead:        actions(ActionCreate, ActionRead, ActionUpdate),
		ResourceTypePaymentLink: actions(ActionCreate, ActionRead),
	},
}

// Permits reports whether role may perform action on the given resource
// type. Unknown roles, resources and actions all fail closed.
func Permits(role Role, resource ResourceType, action Action) bool {
	byResource, ok := rolePermissions[role]
	if !ok {
		return false
	}
	set, ok := byResource[resource]
	if !ok {
		return false
	}
	_, ok = set[action]
	return ok
}

// HasFullFieldAccess reports whether the role may change restricted fields
// on update. Roles without it get those fields silently stripped from the
// payload instead of a rejection.
func HasFullFieldAccess(role Role) bool {
	switch role {
	case RoleSuperAdmin, RoleManager, RoleHR:
		return true
	}
	return false
}
