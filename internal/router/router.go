// Package router is the view state machine: exactly one view is active, the
// route string always reflects it, and every transition (menu, route, deep
// link) goes through the same path.
package router

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"contentbrowser/internal/domain"
	"contentbrowser/internal/eventbus"
)

// ErrNoPage is returned when a view has no page factory
var ErrNoPage = errors.New("no page factory")

// ErrUnroutable is returned for item kinds no view owns
var ErrUnroutable = errors.New("no view owns item kind")

// Page is the content attached for one view
type Page interface {
	View() domain.View
	// Close releases transient resources such as in-flight loads
	Close()
}

// Deactivator is implemented by pages that stay cached while hidden
type Deactivator interface {
	Deactivate()
}

// Activator is implemented by pages that need to know when they are shown
type Activator interface {
	Activate()
}

// Selectable is implemented by pages that can select an item by id
type Selectable interface {
	SelectItem(id string) error
}

// SelectionHolder is implemented by selectable pages that can report what
// is selected after activation
type SelectionHolder interface {
	SelectedID() (string, bool)
}

// DisplayAware is implemented by pages that adapt to the display class
type DisplayAware interface {
	SetDisplay(domain.Display)
}

// Transition describes one committed view change
type Transition struct {
	From  domain.View
	To    domain.View
	Route string
	Item  string
	Page  Page
}

// Options configures a Router
type Options struct {
	ReusePages bool
	Display    domain.Display
	Bus        eventbus.EventBus
}

// Router owns the current view, its page and the route
type Router struct {
	mu      sync.Mutex
	table   *Table
	opts    Options
	started bool
	current domain.View
	page    Page
	pages   map[domain.View]Page
	route   string
	display domain.Display

	onTransition []func(Transition)
	onDisplay    []func(domain.Display)
}

// New creates a router. No page is attached until the first transition.
func New(table *Table, opts Options) *Router {
	return &Router{
		table:   table,
		opts:    opts,
		current: domain.ViewHome,
		pages:   make(map[domain.View]Page),
		route:   FormatRoute(domain.ViewHome),
		display: opts.Display,
	}
}

// Table returns the dispatch table
func (r *Router) Table() *Table {
	return r.table
}

// Current returns the active view
func (r *Router) Current() domain.View {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// Page returns the active page, nil before the first transition
func (r *Router) Page() Page {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.page
}

// Route returns the route of the active view
func (r *Router) Route() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.route
}

// Display returns the current display class
func (r *Router) Display() domain.Display {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.display
}

// OnTransition registers fn to be called after every transition
func (r *Router) OnTransition(fn func(Transition)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onTransition = append(r.onTransition, fn)
}

// OnDisplay registers fn to be called when the display class changes
func (r *Router) OnDisplay(fn func(domain.Display)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onDisplay = append(r.onDisplay, fn)
}

// SetView switches to v. Values outside the enumeration are rejected.
func (r *Router) SetView(v domain.View) error {
	if err := v.Validate(); err != nil {
		return err
	}
	return r.transition(v, "")
}

// Navigate resolves an inbound route and transitions to it. Unknown or
// malformed routes fall back to Home; a failing deep link still changes view.
func (r *Router) Navigate(route string) domain.View {
	target, err := ParseRoute(route)
	if err != nil {
		slog.Warn("router: falling back to home", "route", route, "error", err)
		target = Route{View: domain.ViewHome}
	}
	if err := r.transition(target.View, target.Item); err != nil {
		slog.Warn("router: navigation failed", "route", route, "error", err)
		if target.View != domain.ViewHome {
			if err := r.transition(domain.ViewHome, ""); err != nil {
				slog.Error("router: home page unavailable", "error", err)
			}
		}
	}
	return r.Current()
}

// OpenItem switches to the view owning ref's kind with ref selected. The
// page selects the item before it is attached, so no observer sees the
// view without its target.
func (r *Router) OpenItem(ref domain.ItemRef) error {
	v, ok := r.table.KindView(ref.Kind)
	if !ok {
		return fmt.Errorf("%s: %w", ref, ErrUnroutable)
	}
	if err := r.transition(v, ref.ID); err != nil {
		return err
	}
	if r.opts.Bus != nil {
		r.opts.Bus.Publish(eventbus.ItemOpenedEvent{Ref: ref, View: v, Selected: r.Route() == FormatItemRoute(v, ref.ID)})
	}
	return nil
}

// SetDisplay changes the display class and propagates it to the pages
func (r *Router) SetDisplay(d domain.Display) {
	r.mu.Lock()
	if r.display == d {
		r.mu.Unlock()
		return
	}
	r.display = d
	pages := r.livePages()
	listeners := slices.Clone(r.onDisplay)
	r.mu.Unlock()

	for _, p := range pages {
		if da, ok := p.(DisplayAware); ok {
			da.SetDisplay(d)
		}
	}
	for _, fn := range listeners {
		fn(d)
	}
	if r.opts.Bus != nil {
		r.opts.Bus.Publish(eventbus.DisplayChangedEvent{Display: d})
	}
}

// Close tears down every page
func (r *Router) Close() {
	r.mu.Lock()
	pages := r.livePages()
	r.page = nil
	r.pages = make(map[domain.View]Page)
	r.mu.Unlock()

	for _, p := range pages {
		p.Close()
	}
}

// livePages returns the active page and cached ones; caller holds mu
func (r *Router) livePages() []Page {
	var out []Page
	if r.page != nil {
		out = append(out, r.page)
	}
	for v, p := range r.pages {
		if r.page == nil || v != r.page.View() {
			out = append(out, p)
		}
	}
	return out
}

func (r *Router) transition(to domain.View, item string) error {
	r.mu.Lock()

	entry, ok := r.table.Lookup(to)
	if !ok {
		r.mu.Unlock()
		return &domain.InvalidViewError{Value: to.String()}
	}

	from := r.current
	old := r.page
	same := r.started && from == to && old != nil

	next := old
	if !same {
		var err error
		next, err = r.pageFor(entry)
		if err != nil {
			r.mu.Unlock()
			return err
		}
		if da, ok := next.(DisplayAware); ok {
			da.SetDisplay(r.display)
		}
	}

	// select before attaching so the page is never shown without its target
	selected := false
	if item != "" {
		if sel, ok := next.(Selectable); ok {
			if err := sel.SelectItem(item); err != nil {
				slog.Warn("router: deep link item not selectable", "view", to, "item", item, "error", err)
			} else {
				selected = true
			}
		}
	}

	if !same {
		if old != nil {
			r.detach(old)
		}
		if a, ok := next.(Activator); ok {
			a.Activate()
		}
	}

	// the route only names the item the attached page actually holds
	if selected {
		if h, ok := next.(SelectionHolder); ok {
			id, ok := h.SelectedID()
			selected = ok && id == item
		}
	}
	route := entry.Route
	if selected {
		route = FormatItemRoute(to, item)
	}

	r.started = true
	r.current = to
	r.page = next
	r.route = route
	listeners := slices.Clone(r.onTransition)
	r.mu.Unlock()

	slog.Info("router: transition", "from", from, "to", to, "route", route)
	t := Transition{From: from, To: to, Route: route, Item: item, Page: next}
	for _, fn := range listeners {
		fn(t)
	}
	if r.opts.Bus != nil {
		r.opts.Bus.Publish(eventbus.ViewChangedEvent{From: from, To: to, Route: route})
	}
	return nil
}

// pageFor returns the cached page of entry or builds one; caller holds mu
func (r *Router) pageFor(entry Entry) (Page, error) {
	if p, ok := r.pages[entry.View]; ok && r.opts.ReusePages {
		return p, nil
	}
	if entry.Factory == nil {
		return nil, fmt.Errorf("%s: %w", entry.View, ErrNoPage)
	}
	p, err := entry.Factory(entry)
	if err != nil {
		return nil, fmt.Errorf("building %s page: %w", entry.View, err)
	}
	if r.opts.ReusePages {
		r.pages[entry.View] = p
	}
	return p, nil
}

// detach hides old: cached pages are deactivated, others closed; caller holds mu
func (r *Router) detach(old Page) {
	if r.opts.ReusePages {
		if d, ok := old.(Deactivator); ok {
			d.Deactivate()
		}
		return
	}
	old.Close()
}
