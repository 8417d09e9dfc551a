package containers

import (
	"context"
	"log/slog"

	"github.com/billed-app/billed/internal/format"
	"github.com/billed-app/billed/internal/models"
	"github.com/billed-app/billed/internal/routes"
	"github.com/billed-app/billed/internal/store"
)

// StatusGroup summarizes the bills sharing one status.
type StatusGroup struct {
	Status string // wire status
	Label  string // display label
	Count  int
	Total  float64
	Bills  []models.Bill
}

// Dashboard aggregates every user's bills for the admin view and wires the
// accept/refuse decisions.
type Dashboard struct {
	store      store.Store
	onNavigate func(routes.ID)
}

// NewDashboard creates the admin dashboard container. st may be nil; the
// fetch then yields no groups and decisions fail with ErrNoStore.
func NewDashboard(st store.Store, onNavigate func(routes.ID)) *Dashboard {
	return &Dashboard{store: st, onNavigate: onNavigate}
}

// GetBillsAllUsers fetches every bill and groups them by status with count
// and amount totals: pending first, then accepted, then refused, then any
// unrecognized status in encounter order. Store rejections propagate
// unchanged.
func (d *Dashboard) GetBillsAllUsers(ctx context.Context) ([]StatusGroup, error) {
	if d.store == nil {
		return nil, nil
	}
	bills, err := d.store.Bills().List(ctx)
	if err != nil {
		return nil, err
	}

	order := []string{models.StatusPending, models.StatusAccepted, models.StatusRefused}
	byStatus := make(map[string]*StatusGroup)
	var groups []*StatusGroup

	add := func(status string) *StatusGroup {
		group := &StatusGroup{Status: status, Label: format.Status(status)}
		byStatus[status] = group
		groups = append(groups, group)
		return group
	}
	for _, status := range order {
		add(status)
	}

	for _, bill := range bills {
		group, ok := byStatus[bill.Status]
		if !ok {
			group = add(bill.Status)
		}
		group.Count++
		group.Total += bill.Amount
		group.Bills = append(group.Bills, bill)
	}

	out := make([]StatusGroup, len(groups))
	for i, group := range groups {
		out[i] = *group
	}
	return out, nil
}

// Bill looks up one bill by id, for callers that hold an id rather than a
// full record.
func (d *Dashboard) Bill(ctx context.Context, id string) (models.Bill, bool) {
	if d.store == nil {
		return models.Bill{}, false
	}
	bills, err := d.store.Bills().List(ctx)
	if err != nil {
		slog.Error("bill lookup failed", "bill_id", id, "error", err)
		return models.Bill{}, false
	}
	for _, bill := range bills {
		if bill.ID == id {
			return bill, true
		}
	}
	return models.Bill{}, false
}

// HandleAccept marks a bill accepted.
func (d *Dashboard) HandleAccept(ctx context.Context, bill models.Bill) error {
	return d.decide(ctx, bill, models.StatusAccepted)
}

// HandleRefuse marks a bill refused.
func (d *Dashboard) HandleRefuse(ctx context.Context, bill models.Bill) error {
	return d.decide(ctx, bill, models.StatusRefused)
}

func (d *Dashboard) decide(ctx context.Context, bill models.Bill, status string) error {
	if d.store == nil {
		return ErrNoStore
	}
	bill.Status = status
	if _, err := d.store.Bills().FinalizeBill(ctx, bill); err != nil {
		slog.Error("bill decision failed", "bill_id", bill.ID, "status", status, "error", err)
		return err
	}
	if d.onNavigate != nil {
		d.onNavigate(routes.Dashboard)
	}
	return nil
}
