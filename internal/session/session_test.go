package session

import (
	"testing"
	"time"

	"github.com/billed-app/billed/internal/auth"
	"github.com/billed-app/billed/internal/models"
)

func TestManagerUserRoundtrip(t *testing.T) {
	m := NewManager(NewMemory())

	if _, ok := m.User(); ok {
		t.Fatal("expected no user on fresh storage")
	}

	want := models.User{Type: models.UserTypeEmployee, Email: "employee@test.tld"}
	if err := m.SetUser(want); err != nil {
		t.Fatalf("SetUser failed: %v", err)
	}

	got, ok := m.User()
	if !ok {
		t.Fatal("expected user after SetUser")
	}
	if got != want {
		t.Errorf("got user %+v, want %+v", got, want)
	}
}

func TestManagerUser_MalformedRecord(t *testing.T) {
	storage := NewMemory()
	storage.SetItem("user", "{not json")

	m := NewManager(storage)
	if _, ok := m.User(); ok {
		t.Error("expected malformed user record to read as absent")
	}
	if m.Valid() {
		t.Error("expected session with malformed user record to be invalid")
	}
}

func TestManagerClear(t *testing.T) {
	m := NewManager(NewMemory())
	m.SetUser(models.User{Type: models.UserTypeAdmin, Email: "admin@test.tld"})
	m.SetToken("tok")

	m.Clear()

	if _, ok := m.User(); ok {
		t.Error("expected no user after Clear")
	}
	if _, ok := m.Token(); ok {
		t.Error("expected no token after Clear")
	}
}

func TestValid(t *testing.T) {
	user := models.User{Type: models.UserTypeEmployee, Email: "employee@test.tld"}

	t.Run("no user", func(t *testing.T) {
		m := NewManager(NewMemory())
		if m.Valid() {
			t.Error("empty session reported valid")
		}
	})

	t.Run("user without token", func(t *testing.T) {
		m := NewManager(NewMemory())
		m.SetUser(user)
		if !m.Valid() {
			t.Error("session with user but no token reported invalid")
		}
	})

	t.Run("user with live token", func(t *testing.T) {
		token, err := auth.NewJWTManager("test-secret", time.Hour).Generate(user)
		if err != nil {
			t.Fatalf("failed to generate token: %v", err)
		}
		m := NewManager(NewMemory())
		m.SetUser(user)
		m.SetToken(token)
		if !m.Valid() {
			t.Error("session with live token reported invalid")
		}
	})

	t.Run("user with expired token", func(t *testing.T) {
		token, err := auth.NewJWTManager("test-secret", -time.Hour).Generate(user)
		if err != nil {
			t.Fatalf("failed to generate token: %v", err)
		}
		m := NewManager(NewMemory())
		m.SetUser(user)
		m.SetToken(token)
		if m.Valid() {
			t.Error("session with expired token reported valid")
		}
	})

	t.Run("user with opaque token", func(t *testing.T) {
		m := NewManager(NewMemory())
		m.SetUser(user)
		m.SetToken("not-a-jwt")
		if !m.Valid() {
			t.Error("opaque token should not invalidate the session")
		}
	})
}
