package containers

import (
	"context"
	"log/slog"

	"github.com/billed-app/billed/internal/models"
	"github.com/billed-app/billed/internal/routes"
	"github.com/billed-app/billed/internal/session"
	"github.com/billed-app/billed/internal/store"
)

// Login establishes the session from submitted credentials. The user record
// itself already exists on the store side; this container only exchanges
// credentials for a token and persists the session.
type Login struct {
	store      store.Store
	sessions   *session.Manager
	onNavigate func(routes.ID)
}

// NewLogin creates the login container. st may be nil; submits then fail
// with ErrNoStore instead of establishing a session.
func NewLogin(st store.Store, sessions *session.Manager, onNavigate func(routes.ID)) *Login {
	return &Login{store: st, sessions: sessions, onNavigate: onNavigate}
}

// HandleEmployeeSubmit logs the user in as an employee and lands on the bill
// list.
func (l *Login) HandleEmployeeSubmit(ctx context.Context, email, password string) error {
	return l.submit(ctx, email, password, models.UserTypeEmployee, routes.Bills)
}

// HandleAdminSubmit logs the user in as an admin and lands on the dashboard.
func (l *Login) HandleAdminSubmit(ctx context.Context, email, password string) error {
	return l.submit(ctx, email, password, models.UserTypeAdmin, routes.Dashboard)
}

func (l *Login) submit(ctx context.Context, email, password, userType string, landing routes.ID) error {
	if l.store == nil {
		return ErrNoStore
	}
	token, err := l.store.Login(ctx, email, password)
	if err != nil {
		slog.Error("login failed", "email", email, "error", err)
		return err
	}

	if err := l.sessions.SetUser(models.User{Type: userType, Email: email}); err != nil {
		return err
	}
	l.sessions.SetToken(token)

	if l.onNavigate != nil {
		l.onNavigate(landing)
	}
	return nil
}

// Logout clears the session and returns to the login page.
type Logout struct {
	sessions   *session.Manager
	onNavigate func(routes.ID)
}

// NewLogout creates the logout container.
func NewLogout(sessions *session.Manager, onNavigate func(routes.ID)) *Logout {
	return &Logout{sessions: sessions, onNavigate: onNavigate}
}

// HandleClick clears the session store and navigates to Login.
func (l *Logout) HandleClick() {
	l.sessions.Clear()
	if l.onNavigate != nil {
		l.onNavigate(routes.Login)
	}
}
