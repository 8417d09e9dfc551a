package memstore

import (
	"context"
	"testing"

	"github.com/billed-app/billed/internal/models"
	"github.com/billed-app/billed/internal/store"
)

func TestList_SeededFixtures(t *testing.T) {
	s := NewDefault()
	bills, err := s.Bills().List(context.Background())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(bills) != 4 {
		t.Fatalf("expected 4 seeded bills, got %d", len(bills))
	}
}

func TestLogin(t *testing.T) {
	s := NewDefault()
	ctx := context.Background()

	token, err := s.Login(ctx, "employee@test.tld", "employee")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if token == "" {
		t.Error("expected a non-empty token")
	}

	if _, err := s.Login(ctx, "employee@test.tld", "wrong"); err == nil {
		t.Error("expected error for bad password")
	} else if err.Error() != "Erreur 401" {
		t.Errorf("expected Erreur 401, got %q", err.Error())
	}

	if _, err := s.Login(ctx, "nobody@test.tld", "employee"); err == nil {
		t.Error("expected error for unknown account")
	}
}

func TestUploadThenFinalize(t *testing.T) {
	s := NewDefault()
	ctx := context.Background()

	upload, err := s.Bills().UploadReceipt(ctx, store.Receipt{
		FileName: "receipt.png",
		Content:  []byte("png-bytes"),
		Email:    "employee@test.tld",
	})
	if err != nil {
		t.Fatalf("UploadReceipt failed: %v", err)
	}
	if upload.Key == "" || upload.FileURL == "" {
		t.Fatalf("expected key and fileUrl, got %+v", upload)
	}

	// The bill is not listed between the phases.
	bills, _ := s.Bills().List(ctx)
	if len(bills) != 4 {
		t.Fatalf("upload alone must not create a bill record, got %d bills", len(bills))
	}

	finalized, err := s.Bills().FinalizeBill(ctx, models.Bill{
		ID:       upload.Key,
		Email:    "employee@test.tld",
		Type:     "Transports",
		Name:     "vol paris",
		Date:     "2023-09-01",
		Amount:   348,
		FileURL:  upload.FileURL,
		FileName: "receipt.png",
		Status:   models.StatusPending,
	})
	if err != nil {
		t.Fatalf("FinalizeBill failed: %v", err)
	}
	if finalized.ID != upload.Key {
		t.Errorf("finalized bill keyed by %q, want upload key %q", finalized.ID, upload.Key)
	}

	bills, _ = s.Bills().List(ctx)
	if len(bills) != 5 {
		t.Errorf("expected 5 bills after finalize, got %d", len(bills))
	}
}

func TestFinalize_UnknownKey(t *testing.T) {
	s := NewDefault()
	_, err := s.Bills().FinalizeBill(context.Background(), models.Bill{ID: "missing"})
	if err == nil {
		t.Fatal("expected error for unknown key")
	}
	if err.Error() != "Erreur 404" {
		t.Errorf("expected Erreur 404, got %q", err.Error())
	}
}

func TestFinalize_ExistingBillReplaced(t *testing.T) {
	s := NewDefault()
	ctx := context.Background()

	bills, _ := s.Bills().List(ctx)
	bill := bills[0]
	bill.Status = models.StatusAccepted

	if _, err := s.Bills().FinalizeBill(ctx, bill); err != nil {
		t.Fatalf("FinalizeBill failed: %v", err)
	}

	bills, _ = s.Bills().List(ctx)
	for _, b := range bills {
		if b.ID == bill.ID && b.Status != models.StatusAccepted {
			t.Errorf("expected bill %s to be accepted, got %s", b.ID, b.Status)
		}
	}
	if len(bills) != 4 {
		t.Errorf("replacing a bill must not grow the list, got %d", len(bills))
	}
}
