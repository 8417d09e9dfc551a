// Package routes enumerates the navigable pages and their location
// fragments. Route identifiers are symbolic names independent of the
// on-screen fragment representation, so containers can request navigation
// without knowing how the router spells its addresses.
package routes

import "strings"

// ID names one page of the app.
type ID string

const (
	Login     ID = "Login"
	Bills     ID = "Bills"
	NewBill   ID = "NewBill"
	Dashboard ID = "Dashboard"
)

// Fragment returns the location fragment the route is addressed by.
// Login is the root page and has an empty fragment.
func (id ID) Fragment() string {
	switch id {
	case Bills:
		return "employee/bills"
	case NewBill:
		return "employee/bill/new"
	case Dashboard:
		return "admin/dashboard"
	default:
		return ""
	}
}

// FromFragment resolves a location fragment to a route identifier. A leading
// '#' is tolerated. An empty fragment resolves to Login; anything
// unrecognized reports false.
func FromFragment(fragment string) (ID, bool) {
	fragment = strings.TrimPrefix(strings.TrimSpace(fragment), "#")
	switch fragment {
	case "", "login":
		return Login, true
	case "employee/bills":
		return Bills, true
	case "employee/bill/new":
		return NewBill, true
	case "admin/dashboard":
		return Dashboard, true
	}
	return "", false
}
