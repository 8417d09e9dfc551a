package httpstore

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/billed-app/billed/internal/auth"
	"github.com/billed-app/billed/internal/devserver"
	"github.com/billed-app/billed/internal/models"
	"github.com/billed-app/billed/internal/session"
	"github.com/billed-app/billed/internal/store"
	"github.com/billed-app/billed/internal/store/memstore"
)

func setupClient(t *testing.T) (*Client, *session.Manager) {
	t.Helper()
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	srv := devserver.New(memstore.New(jwtManager), jwtManager)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	sessions := session.NewManager(session.NewMemory())
	return New(ts.URL, sessions), sessions
}

func login(t *testing.T, c *Client, sessions *session.Manager) {
	t.Helper()
	token, err := c.Login(context.Background(), "employee@test.tld", "employee")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	sessions.SetToken(token)
}

func TestLogin(t *testing.T) {
	c, _ := setupClient(t)

	token, err := c.Login(context.Background(), "employee@test.tld", "employee")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatal("expected a session token")
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	c, _ := setupClient(t)

	if _, err := c.Login(context.Background(), "employee@test.tld", "wrong"); err == nil || err.Error() != "Erreur 401" {
		t.Fatalf("expected Erreur 401, got %v", err)
	}
}

func TestList_RequiresToken(t *testing.T) {
	c, _ := setupClient(t)

	if _, err := c.Bills().List(context.Background()); err == nil || err.Error() != "Erreur 401" {
		t.Fatalf("expected Erreur 401 without a token, got %v", err)
	}
}

func TestList(t *testing.T) {
	c, sessions := setupClient(t)
	login(t, c, sessions)

	bills, err := c.Bills().List(context.Background())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(bills) != 4 {
		t.Fatalf("expected the 4 seeded bills, got %d", len(bills))
	}
	if bills[0].ID != "b-encore" || bills[0].Date != "2004-04-04" {
		t.Errorf("unexpected first record: %+v", bills[0])
	}
}

func TestUploadThenFinalize(t *testing.T) {
	c, sessions := setupClient(t)
	login(t, c, sessions)
	ctx := context.Background()

	upload, err := c.Bills().UploadReceipt(ctx, store.Receipt{
		FileName: "receipt.png",
		Content:  []byte("png-bytes"),
		Email:    "employee@test.tld",
	})
	if err != nil {
		t.Fatalf("UploadReceipt failed: %v", err)
	}
	if upload.Key == "" {
		t.Fatal("expected an upload key")
	}
	if !strings.HasSuffix(upload.FileURL, "/receipt.png") {
		t.Errorf("expected the file URL to carry the file name, got %q", upload.FileURL)
	}

	bill := models.Bill{
		ID:       upload.Key,
		Email:    "employee@test.tld",
		Type:     "Transports",
		Name:     "Vol Paris",
		Date:     "2023-09-01",
		Amount:   348,
		VAT:      "70",
		Pct:      "20",
		FileURL:  upload.FileURL,
		FileName: "receipt.png",
		Status:   models.StatusPending,
	}
	stored, err := c.Bills().FinalizeBill(ctx, bill)
	if err != nil {
		t.Fatalf("FinalizeBill failed: %v", err)
	}
	if stored.ID != upload.Key || stored.Name != "Vol Paris" {
		t.Errorf("unexpected stored record: %+v", stored)
	}

	bills, err := c.Bills().List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(bills) != 5 {
		t.Fatalf("expected the finalized bill in the list, got %d records", len(bills))
	}
}

func TestFinalize_UnknownKey(t *testing.T) {
	c, sessions := setupClient(t)
	login(t, c, sessions)

	_, err := c.Bills().FinalizeBill(context.Background(), models.Bill{ID: "no-such-key"})
	if err == nil || err.Error() != "Erreur 404" {
		t.Fatalf("expected Erreur 404, got %v", err)
	}
}
