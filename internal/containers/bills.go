// Package containers holds the page controllers: each container owns the
// interactions of one page, talks to the document store through the injected
// client, and requests navigation through the injected callback. Containers
// never reach for a global router handle.
package containers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/billed-app/billed/internal/dom"
	"github.com/billed-app/billed/internal/format"
	"github.com/billed-app/billed/internal/models"
	"github.com/billed-app/billed/internal/routes"
	"github.com/billed-app/billed/internal/store"
)

// previewModalID is the overlay host receipt previews render into. The host
// may be absent from partial renders; the modal capability tolerates that.
const previewModalID = "modaleFile"

// ErrNoStore is returned by interactions that need the document store when
// the container was built without one. Fetch paths instead degrade to local
// data; see GetBills and GetBillsAllUsers.
var ErrNoStore = errors.New("no document store configured")

// Bills keeps the employee's bill list in sync with the document store and
// wires the list-level interactions.
type Bills struct {
	store      store.Store
	onNavigate func(routes.ID)
	modal      dom.Modal
}

// NewBills creates the bill-list container. store may be nil, in which case
// the page renders with whatever local data the caller has.
func NewBills(st store.Store, onNavigate func(routes.ID), modal dom.Modal) *Bills {
	return &Bills{store: st, onNavigate: onNavigate, modal: modal}
}

// GetBills fetches the bill list and returns it ready for display: ordered
// by raw date descending (ties keep their original relative order), status
// mapped to its label, and the date field swapped for the display string
// only after sorting. Records whose date does not parse are kept with the
// raw string as both sort key and display value. A store rejection is
// returned unchanged; turning it into a visible error state is the render
// path's job.
func (b *Bills) GetBills(ctx context.Context) ([]models.Bill, error) {
	if b.store == nil {
		return nil, nil
	}

	records, err := b.store.Bills().List(ctx)
	if err != nil {
		return nil, err
	}

	type entry struct {
		bill   models.Bill
		raw    string
		when   time.Time
		parsed bool
	}

	entries := make([]entry, len(records))
	for i, record := range records {
		e := entry{bill: record, raw: record.Date}
		if when, err := format.ParseDate(record.Date); err == nil {
			e.when = when
			e.parsed = true
			e.bill.Date = format.DisplayDate(when)
		} else {
			// Degraded ordering: the raw string becomes the sort key.
			slog.Warn("bill date does not parse, ordering by raw value",
				"bill_id", record.ID, "date", record.Date)
		}
		e.bill.Status = format.Status(record.Status)
		entries[i] = e
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.parsed && b.parsed {
			return a.when.After(b.when)
		}
		return a.raw > b.raw
	})

	bills := make([]models.Bill, len(entries))
	for i, e := range entries {
		bills[i] = e.bill
	}
	return bills, nil
}

// HandleClickNewBill navigates to the new-bill form. No network call.
func (b *Bills) HandleClickNewBill() {
	if b.onNavigate != nil {
		b.onNavigate(routes.NewBill)
	}
}

// HandleClickIconEye opens the receipt preview overlay with the image scaled
// to half the overlay width. Purely presentational; a missing overlay host
// makes this a no-op.
func (b *Bills) HandleClickIconEye(billURL string) {
	if b.modal == nil {
		return
	}
	width := b.modal.Width(previewModalID) / 2
	html := fmt.Sprintf(
		`<div style='text-align: center;' class="bill-proof-container"><img width=%d src=%s alt="Bill" /></div>`,
		width, billURL,
	)
	b.modal.SetContent(previewModalID, html)
	b.modal.Show(previewModalID)
}
