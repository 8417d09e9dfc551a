// Package router resolves location fragments to page renders. It is the
// single navigation entry point: containers get a NavigateTo callback
// injected at construction and never reach for the router directly.
package router

import (
	"context"
	"log/slog"
	"sync"

	"github.com/billed-app/billed/internal/containers"
	"github.com/billed-app/billed/internal/dom"
	"github.com/billed-app/billed/internal/metrics"
	"github.com/billed-app/billed/internal/routes"
	"github.com/billed-app/billed/internal/session"
	"github.com/billed-app/billed/internal/store"
	"github.com/billed-app/billed/internal/views"
)

// Location is the address-bar analog the router reads and rewrites.
type Location interface {
	Fragment() string
	SetFragment(fragment string)
}

// MemoryLocation is an in-process Location.
type MemoryLocation struct {
	mu       sync.Mutex
	fragment string
}

var _ Location = (*MemoryLocation)(nil)

func NewMemoryLocation() *MemoryLocation {
	return &MemoryLocation{}
}

func (l *MemoryLocation) Fragment() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.fragment
}

func (l *MemoryLocation) SetFragment(fragment string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.fragment = fragment
}

// Router owns the route table and the session guard.
type Router struct {
	doc      dom.Document
	modal    dom.Modal
	loc      Location
	sessions *session.Manager
	store    store.Store

	// page is the container driving the page rendered last.
	page any
}

// New wires the router. store may be nil; pages then render with local data
// only and interactions that need the store fail with containers.ErrNoStore.
func New(doc dom.Document, modal dom.Modal, loc Location, sessions *session.Manager, st store.Store) *Router {
	return &Router{doc: doc, modal: modal, loc: loc, sessions: sessions, store: st}
}

// Current returns the container behind the last rendered page: *containers.Login,
// *containers.Bills, *containers.NewBill or *containers.Dashboard.
func (r *Router) Current() any {
	return r.page
}

// NavigateTo rewrites the location fragment and renders the matching page.
// It is idempotent: requesting the current route re-renders it.
func (r *Router) NavigateTo(ctx context.Context, id routes.ID) {
	r.loc.SetFragment(id.Fragment())
	r.render(ctx, id)
}

// Resolve renders whatever page the current fragment points to: the entry
// point at load time and after user-initiated location changes
// (back/forward, manual reload). Unknown fragments render an empty page and
// never fail.
func (r *Router) Resolve(ctx context.Context) {
	fragment := r.loc.Fragment()
	id, ok := routes.FromFragment(fragment)
	if !ok {
		slog.Debug("unknown fragment", "fragment", fragment)
		r.page = nil
		r.doc.Render("")
		return
	}
	r.render(ctx, id)
}

// render applies the guard and draws the page. The guard runs synchronously
// on every navigation: without a valid session every protected route falls
// back to the login render, and the dashboard additionally requires an admin
// session.
func (r *Router) render(ctx context.Context, id routes.ID) {
	metrics.Navigations.WithLabelValues(string(id)).Inc()

	if id != routes.Login {
		if !r.sessions.Valid() {
			slog.Info("no valid session, rendering login", "requested", id)
			id = routes.Login
		} else if id == routes.Dashboard {
			if user, _ := r.sessions.User(); !user.IsAdmin() {
				slog.Info("dashboard requires an admin session", "user_type", user.Type)
				id = routes.Login
			}
		}
	}

	nav := func(target routes.ID) { r.NavigateTo(ctx, target) }

	switch id {
	case routes.Login:
		r.page = containers.NewLogin(r.store, r.sessions, nav)
		r.doc.Render(views.Login())

	case routes.Bills:
		bills := containers.NewBills(r.store, nav, r.modal)
		r.page = bills
		r.doc.Render(views.Loading())
		list, err := bills.GetBills(ctx)
		if err != nil {
			r.doc.Render(views.Error(err.Error()))
			return
		}
		r.doc.Render(views.Bills(list))

	case routes.NewBill:
		r.page = containers.NewNewBill(r.store, r.sessions, nav, r.doc)
		r.doc.Render(views.NewBill())

	case routes.Dashboard:
		dashboard := containers.NewDashboard(r.store, nav)
		r.page = dashboard
		r.doc.Render(views.Loading())
		groups, err := dashboard.GetBillsAllUsers(ctx)
		if err != nil {
			r.doc.Render(views.Error(err.Error()))
			return
		}
		viewGroups := make([]views.DashboardGroup, len(groups))
		for i, g := range groups {
			viewGroups[i] = views.DashboardGroup{
				Label: g.Label,
				Count: g.Count,
				Total: g.Total,
				Bills: g.Bills,
			}
		}
		r.doc.Render(views.Dashboard(viewGroups))
	}
}
