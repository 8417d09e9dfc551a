package containers

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/billed-app/billed/internal/dom"
	"github.com/billed-app/billed/internal/models"
	"github.com/billed-app/billed/internal/routes"
)

func unsortedFixture() []models.Bill {
	return []models.Bill{
		{ID: "b1", Name: "test1", Date: "2001-01-01", Status: models.StatusRefused},
		{ID: "b4", Name: "encore", Date: "2004-04-04", Status: models.StatusPending},
		{ID: "b3", Name: "test3", Date: "2003-03-03", Status: models.StatusAccepted},
		{ID: "b2", Name: "test2", Date: "2002-02-02", Status: models.StatusRefused},
	}
}

func TestGetBills_SortsNewestFirst(t *testing.T) {
	st := &fakeStore{billsClient: &fakeBillsClient{bills: unsortedFixture()}}
	b := NewBills(st, nil, nil)

	bills, err := b.GetBills(context.Background())
	if err != nil {
		t.Fatalf("GetBills failed: %v", err)
	}
	if len(bills) != 4 {
		t.Fatalf("expected 4 bills, got %d", len(bills))
	}

	wantOrder := []string{"b4", "b3", "b2", "b1"}
	for i, want := range wantOrder {
		if bills[i].ID != want {
			t.Errorf("position %d: got %s, want %s", i, bills[i].ID, want)
		}
	}
}

func TestGetBills_FormatsAfterSorting(t *testing.T) {
	st := &fakeStore{billsClient: &fakeBillsClient{bills: unsortedFixture()}}
	b := NewBills(st, nil, nil)

	bills, err := b.GetBills(context.Background())
	if err != nil {
		t.Fatalf("GetBills failed: %v", err)
	}

	if bills[0].Date != "4 Avr. 04" {
		t.Errorf("expected display date %q, got %q", "4 Avr. 04", bills[0].Date)
	}
	if bills[0].Status != "En attente" {
		t.Errorf("expected status label %q, got %q", "En attente", bills[0].Status)
	}
	if bills[1].Status != "Accepté" {
		t.Errorf("expected status label %q, got %q", "Accepté", bills[1].Status)
	}
}

func TestGetBills_MalformedDateKeptRaw(t *testing.T) {
	bills := unsortedFixture()
	bills = append(bills, models.Bill{ID: "b5", Name: "broken", Date: "not-a-date", Status: "archived"})
	st := &fakeStore{billsClient: &fakeBillsClient{bills: bills}}
	b := NewBills(st, nil, nil)

	got, err := b.GetBills(context.Background())
	if err != nil {
		t.Fatalf("GetBills failed: %v", err)
	}
	if len(got) != 5 {
		t.Fatalf("malformed record must still be included, got %d bills", len(got))
	}

	var broken *models.Bill
	for i := range got {
		if got[i].ID == "b5" {
			broken = &got[i]
		}
	}
	if broken == nil {
		t.Fatal("record with malformed date missing from result")
	}
	if broken.Date != "not-a-date" {
		t.Errorf("expected raw date to be kept, got %q", broken.Date)
	}
	if broken.Status != "archived" {
		t.Errorf("unrecognized status must pass through, got %q", broken.Status)
	}
}

func TestGetBills_StableForEqualDates(t *testing.T) {
	st := &fakeStore{billsClient: &fakeBillsClient{bills: []models.Bill{
		{ID: "first", Date: "2003-03-03"},
		{ID: "second", Date: "2003-03-03"},
		{ID: "third", Date: "2003-03-03"},
	}}}
	b := NewBills(st, nil, nil)

	got, err := b.GetBills(context.Background())
	if err != nil {
		t.Fatalf("GetBills failed: %v", err)
	}
	for i, want := range []string{"first", "second", "third"} {
		if got[i].ID != want {
			t.Errorf("ties must keep original order: position %d got %s, want %s", i, got[i].ID, want)
		}
	}
}

func TestGetBills_PropagatesStoreError(t *testing.T) {
	listErr := errors.New("Erreur 404")
	st := &fakeStore{billsClient: &fakeBillsClient{listErr: listErr}}
	b := NewBills(st, nil, nil)

	_, err := b.GetBills(context.Background())
	if !errors.Is(err, listErr) {
		t.Fatalf("expected the store rejection unchanged, got %v", err)
	}
	if err.Error() != "Erreur 404" {
		t.Errorf("rejection message must pass through verbatim, got %q", err.Error())
	}
}

func TestGetBills_NoStore(t *testing.T) {
	b := NewBills(nil, nil, nil)
	bills, err := b.GetBills(context.Background())
	if err != nil {
		t.Fatalf("GetBills without store must not fail: %v", err)
	}
	if len(bills) != 0 {
		t.Errorf("expected empty result without store, got %d bills", len(bills))
	}
}

func TestHandleClickNewBill(t *testing.T) {
	nav := &navRecorder{}
	b := NewBills(nil, nav.navigate, nil)

	b.HandleClickNewBill()

	if len(nav.ids) != 1 || nav.ids[0] != routes.NewBill {
		t.Errorf("expected navigation to NewBill, got %v", nav.ids)
	}
}

func TestHandleClickIconEye(t *testing.T) {
	modal := dom.NewMemoryModal()
	modal.AddContainer("modaleFile", 500)
	b := NewBills(nil, nil, modal)

	b.HandleClickIconEye("https://billed.test/receipts/b-encore/facture-hotel.jpg")

	if !modal.Visible("modaleFile") {
		t.Error("expected the preview overlay to be shown")
	}
	content := modal.ContentOf("modaleFile")
	if !strings.Contains(content, "width=250") {
		t.Errorf("expected image scaled to half the overlay width, got %q", content)
	}
	if !strings.Contains(content, "facture-hotel.jpg") {
		t.Errorf("expected the receipt url in the overlay, got %q", content)
	}
}

func TestHandleClickIconEye_AbsentHost(t *testing.T) {
	// Unknown container id: the modal reports width 0 and swallows calls.
	b := NewBills(nil, nil, dom.NewMemoryModal())
	b.HandleClickIconEye("https://billed.test/receipts/x.png")

	// No modal at all (headless render) must not panic either.
	b = NewBills(nil, nil, nil)
	b.HandleClickIconEye("https://billed.test/receipts/x.png")
}
