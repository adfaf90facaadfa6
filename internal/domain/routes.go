package domain

// View names one navigable surface of the console. The set is closed: the
// client renders its menu and routes from these values, and the server gates
// its endpoints with the same table, so there is exactly one access-control
// source of truth.
type View string

const (
	ViewDashboard     View = "dashboard"
	ViewLogEntry      View = "entry"
	ViewLogHistory    View = "history"
	ViewUsers         View = "users"
	ViewShips         View = "ships"
	ViewNotifications View = "telegram"
)

// viewRoles maps each view to the roles permitted to reach it.
// Field staff (captain, chief engineer) and crew work the logbook surfaces;
// everything administrative is admin-only.
var viewRoles = map[View][]Role{
	ViewDashboard:     {RoleAdmin},
	ViewLogEntry:      {RoleAdmin, RoleCaptain, RoleChiefEngineer, RoleCrew},
	ViewLogHistory:    {RoleAdmin, RoleCaptain, RoleChiefEngineer, RoleCrew},
	ViewUsers:         {RoleAdmin},
	ViewShips:         {RoleAdmin},
	ViewNotifications: {RoleAdmin},
}

// viewOrder fixes the menu order of AllowedViews output.
var viewOrder = []View{
	ViewDashboard, ViewLogEntry, ViewLogHistory,
	ViewUsers, ViewShips, ViewNotifications,
}

// CanAccess reports whether role may reach view. Unknown views are
// unreachable for every role.
func CanAccess(role Role, view View) bool {
	for _, r := range viewRoles[view] {
		if r == role {
			return true
		}
	}
	return false
}

// AllowedViews returns the views role may reach, in menu order.
func AllowedViews(role Role) []View {
	var out []View
	for _, v := range viewOrder {
		if CanAccess(role, v) {
			out = append(out, v)
		}
	}
	return out
}

// DefaultView is the landing surface after login: admins start on the
// dashboard, everyone else on the log entry form.
func DefaultView(role Role) View {
	if role == RoleAdmin {
		return ViewDashboard
	}
	return ViewLogEntry
}

// ResolveView is the navigation decision: requesting an allowed view yields
// that view; requesting a disallowed or unknown view yields the role's
// default landing. The decision is stateless and re-evaluated per request.
func ResolveView(role Role, requested View) View {
	if CanAccess(role, requested) {
		return requested
	}
	return DefaultView(role)
}
