package models

// User types stored in the session record.
const (
	UserTypeEmployee = "Employee"
	UserTypeAdmin    = "Admin"
)

// User is the persisted session record identifying the logged-in user.
// It is read-only for the page containers: written at login, cleared at
// logout, consulted by the router guard on every navigation.
type User struct {
	Type  string `json:"type"`
	Email string `json:"email"`
}

// IsAdmin reports whether the user may access the admin dashboard.
func (u User) IsAdmin() bool {
	return u.Type == UserTypeAdmin
}
