// Package memstore is an in-memory document store seeded with fixture data.
// It backs tests, the terminal demo and the dev server; nothing in it
// survives a restart.
package memstore

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/billed-app/billed/internal/auth"
	"github.com/billed-app/billed/internal/models"
	"github.com/billed-app/billed/internal/store"
)

const fileURLBase = "https://billed.test/receipts"

// account is a seeded user record. User records are assumed to already
// exist; memstore only checks credentials against them.
type account struct {
	userType     string
	passwordHash []byte
}

// Store implements store.Store entirely in memory.
type Store struct {
	mu       sync.Mutex
	bills    []models.Bill
	pending  map[string]store.Upload // upload key -> upload awaiting finalize
	accounts map[string]account      // email -> account
	jwt      *auth.JWTManager
}

var _ store.Store = (*Store)(nil)

// New returns a store seeded with the fixture bills and the two demo
// accounts (employee@test.tld/employee and admin@test.tld/admin).
func New(jwtManager *auth.JWTManager) *Store {
	s := &Store{
		bills:    seedBills(),
		pending:  make(map[string]store.Upload),
		accounts: make(map[string]account),
		jwt:      jwtManager,
	}
	s.seedAccount("employee@test.tld", "employee", models.UserTypeEmployee)
	s.seedAccount("admin@test.tld", "admin", models.UserTypeAdmin)
	return s
}

func (s *Store) seedAccount(email, password, userType string) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(fmt.Sprintf("memstore: seeding account %s: %v", email, err))
	}
	s.accounts[email] = account{userType: userType, passwordHash: hash}
}

func seedBills() []models.Bill {
	return []models.Bill{
		{
			ID:         "b-encore",
			Email:      "employee@test.tld",
			Type:       "Hôtel et logement",
			Name:       "encore",
			Date:       "2004-04-04",
			Amount:     400,
			VAT:        "80",
			Pct:        "20",
			Commentary: "séminaire billed",
			FileURL:    fileURLBase + "/b-encore/facture-hotel.jpg",
			FileName:   "facture-hotel.jpg",
			Status:     models.StatusPending,
		},
		{
			ID:       "b-test1",
			Email:    "employee@test.tld",
			Type:     "Transports",
			Name:     "test1",
			Date:     "2001-01-01",
			Amount:   100,
			VAT:      "20",
			Pct:      "20",
			FileURL:  fileURLBase + "/b-test1/billet-train.jpg",
			FileName: "billet-train.jpg",
			Status:   models.StatusRefused,
		},
		{
			ID:       "b-test3",
			Email:    "employee@test.tld",
			Type:     "Services en ligne",
			Name:     "test3",
			Date:     "2003-03-03",
			Amount:   300,
			VAT:      "60",
			Pct:      "20",
			FileURL:  fileURLBase + "/b-test3/abonnement.png",
			FileName: "abonnement.png",
			Status:   models.StatusAccepted,
		},
		{
			ID:       "b-test2",
			Email:    "employee@test.tld",
			Type:     "Restaurants et bars",
			Name:     "test2",
			Date:     "2002-02-02",
			Amount:   200,
			VAT:      "40",
			Pct:      "20",
			FileURL:  fileURLBase + "/b-test2/repas-client.jpg",
			FileName: "repas-client.jpg",
			Status:   models.StatusRefused,
		},
	}
}

// Login checks the credentials against the seeded accounts and returns a
// signed session token.
func (s *Store) Login(ctx context.Context, email, password string) (string, error) {
	s.mu.Lock()
	acct, ok := s.accounts[email]
	s.mu.Unlock()
	if !ok {
		return "", fmt.Errorf("Erreur 401")
	}
	if err := bcrypt.CompareHashAndPassword(acct.passwordHash, []byte(password)); err != nil {
		return "", fmt.Errorf("Erreur 401")
	}
	return s.jwt.Generate(models.User{Type: acct.userType, Email: email})
}

// UserType returns the seeded account type for an email, for the dev
// server's login handler.
func (s *Store) UserType(email string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acct, ok := s.accounts[email]
	return acct.userType, ok
}

// Bills returns the bills collection client.
func (s *Store) Bills() store.BillsClient {
	return &billsClient{store: s}
}

type billsClient struct {
	store *Store
}

func (c *billsClient) List(ctx context.Context) ([]models.Bill, error) {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	out := make([]models.Bill, len(c.store.bills))
	copy(out, c.store.bills)
	return out, nil
}

func (c *billsClient) UploadReceipt(ctx context.Context, receipt store.Receipt) (store.Upload, error) {
	if receipt.FileName == "" {
		return store.Upload{}, fmt.Errorf("Erreur 400")
	}
	key := uuid.NewString()
	upload := store.Upload{
		FileURL: fmt.Sprintf("%s/%s/%s", fileURLBase, key, receipt.FileName),
		Key:     key,
	}
	c.store.mu.Lock()
	c.store.pending[key] = upload
	c.store.mu.Unlock()
	return upload, nil
}

func (c *billsClient) FinalizeBill(ctx context.Context, bill models.Bill) (models.Bill, error) {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	// Finalizing an already-stored bill replaces the record (the admin
	// accept/refuse path). Otherwise the id must come from an upload.
	for i := range c.store.bills {
		if c.store.bills[i].ID == bill.ID {
			c.store.bills[i] = bill
			return bill, nil
		}
	}
	if _, ok := c.store.pending[bill.ID]; !ok {
		return models.Bill{}, fmt.Errorf("Erreur 404")
	}
	delete(c.store.pending, bill.ID)
	c.store.bills = append(c.store.bills, bill)
	return bill, nil
}

// NewDefault returns a store with a throwaway signing secret, for tests and
// demos that do not share tokens with a dev server.
func NewDefault() *Store {
	return New(auth.NewJWTManager("billed-dev-secret", 24*time.Hour))
}
