// Package session persists the authenticated user across page loads.
//
// Storage is the raw key-value capability (the browser would call it
// localStorage); Manager layers the user/token records on top of it.
package session

import (
	"encoding/json"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/billed-app/billed/internal/models"
)

// Storage is a synchronous key-value store scoped to the app instance.
// Implementations must survive "page reloads": a value set before a restart
// is readable after it, except for the throwaway Memory implementation used
// in tests.
type Storage interface {
	GetItem(key string) (string, bool)
	SetItem(key, value string)
	RemoveItem(key string)
	Clear()
}

const (
	userKey  = "user"
	tokenKey = "jwt"
)

// Manager reads and writes the session records on a Storage.
type Manager struct {
	storage Storage
}

// NewManager wraps the given storage.
func NewManager(storage Storage) *Manager {
	return &Manager{storage: storage}
}

// User returns the persisted session user, if a well-formed one exists.
func (m *Manager) User() (models.User, bool) {
	raw, ok := m.storage.GetItem(userKey)
	if !ok {
		return models.User{}, false
	}
	var user models.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return models.User{}, false
	}
	return user, true
}

// SetUser persists the session user.
func (m *Manager) SetUser(user models.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return err
	}
	m.storage.SetItem(userKey, string(raw))
	return nil
}

// Token returns the persisted API token, if any.
func (m *Manager) Token() (string, bool) {
	return m.storage.GetItem(tokenKey)
}

// SetToken persists the API token.
func (m *Manager) SetToken(token string) {
	m.storage.SetItem(tokenKey, token)
}

// Clear removes every session record.
func (m *Manager) Clear() {
	m.storage.Clear()
}

// Valid reports whether a usable session exists. The check is synchronous:
// the user record must be present and well-formed, and when the stored token
// carries a readable expiry that expiry must not have passed. The token
// signature is not checked here; only the store can do that.
func (m *Manager) Valid() bool {
	if _, ok := m.User(); !ok {
		return false
	}
	token, ok := m.Token()
	if !ok {
		return true
	}
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		// Opaque token; presence is all we can check.
		return true
	}
	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now()) {
		return false
	}
	return true
}
