package coordinator

import (
	"fmt"
	"log/slog"
	"time"

	"contentbrowser/internal/catalog"
	"contentbrowser/internal/domain"
	"contentbrowser/internal/facet"
	"contentbrowser/internal/loader"
	"contentbrowser/internal/ui/services/events"
	"contentbrowser/internal/ui/services/facets"
	"contentbrowser/internal/ui/services/navigation"
	"contentbrowser/internal/ui/services/query"
	"contentbrowser/internal/ui/services/search"
	"contentbrowser/internal/ui/services/selection"
	"contentbrowser/internal/ui/services/sorting"
)

// Options configures a Coordinator
type Options struct {
	PageSize int
	Timeout  time.Duration          // per related-content load, 0 = none
	Supports func(domain.Kind) bool // kinds with related content, nil = all
}

// Coordinator manages the UI services of one catalog page around a single
// filter engine and a single related-content slot. All methods must be
// called from the UI loop.
type Coordinator struct {
	// Services
	Navigation *navigation.Service
	Query      *query.Service
	Selection  *selection.Service
	Search     *search.Service
	Facets     *facets.Service
	Sorting    *sorting.Service

	// Dependencies
	bus    events.EventBus
	engine *facet.Engine
	source catalog.Source
}

// NewCoordinator creates a new coordinator with all services
func NewCoordinator(bus events.EventBus, engine *facet.Engine, source catalog.Source, fetch loader.FetchFunc[domain.Item, []domain.Related], opts Options) *Coordinator {
	c := &Coordinator{
		Navigation: navigation.NewService(bus, opts.PageSize),
		Query:      query.NewService(engine.Snapshot),
		Selection:  selection.NewService(bus, fetch, opts.Timeout),
		Search:     search.NewService(bus),
		Facets:     facets.NewService(bus, engine),
		Sorting:    sorting.NewService(bus),
		bus:        bus,
		engine:     engine,
		source:     source,
	}
	if opts.Supports != nil {
		c.Selection.SetSupportsFunction(opts.Supports)
	}

	// Wire up service dependencies
	c.wireServices()

	// Subscribe to events
	c.subscribeToEvents()

	c.Apply(engine.Snapshot())
	return c
}

// wireServices connects services with their dependencies
func (c *Coordinator) wireServices() {
	c.Navigation.SetCountFunction(c.Query.Count)

	c.Query.SetSelectedFunction(c.Selection.SelectedID)

	c.Selection.SetContainsFunction(func(id string) bool {
		return c.engine.Snapshot().Contains(id)
	})

	c.Search.SetApplyFunction(func(q string) int {
		snap := c.engine.SetQuery(q)
		c.Apply(snap)
		return len(snap.Items)
	})

	c.Sorting.SetApplyFunction(func(mode facet.SortMode) {
		c.Apply(c.engine.SetSort(mode))
	})
}

// subscribeToEvents sets up event handlers
func (c *Coordinator) subscribeToEvents() {
	// Keep the cursor on an item selected by id
	c.bus.Subscribe(events.TypeOf(selection.SelectionChangedEvent{}), func(e any) {
		ev := e.(selection.SelectionChangedEvent)
		if i := c.Query.GetIndexForItem(ev.Current); i >= 0 && i != c.Navigation.GetCursor() {
			c.Navigation.MoveToIndex(i)
		}
	})

	c.bus.Subscribe(events.TypeOf(selection.SelectionClearedEvent{}), func(e any) {
		ev := e.(selection.SelectionClearedEvent)
		slog.Debug("coordinator: selection cleared", "kind", c.engine.Kind(), "id", ev.ID, "reason", ev.Reason)
	})
}

// Snapshot returns the current engine snapshot
func (c *Coordinator) Snapshot() *facet.Snapshot {
	return c.engine.Snapshot()
}

// Kind returns the item kind of the page
func (c *Coordinator) Kind() domain.Kind {
	return c.engine.Kind()
}

// Apply brings selection, cursor and search state in line with snap. It runs
// after every catalog, filter, search or sort change.
func (c *Coordinator) Apply(snap *facet.Snapshot) {
	if snap == nil {
		return
	}
	c.Selection.OnFilteredResultChanged(snap.Items)
	if i := snap.Index(c.Selection.SelectedID()); i >= 0 {
		c.Navigation.MoveToIndex(i)
	}
	c.Navigation.Clamp()
	c.Search.Sync(snap.Query, len(snap.Items))
}

// Refresh re-reads the catalog after a change
func (c *Coordinator) Refresh() {
	c.Apply(c.engine.Refresh())
}

// MoveCursor moves the list cursor and selects the item under it
func (c *Coordinator) MoveCursor(direction navigation.Direction) *selection.Task {
	c.Navigation.Navigate(direction)
	return c.SelectCursor()
}

// SelectCursor selects the item under the cursor
func (c *Coordinator) SelectCursor() *selection.Task {
	it, ok := c.Query.GetItemAtIndex(c.Navigation.GetCursor())
	if !ok {
		return nil
	}
	task, err := c.Selection.Select(it)
	if err != nil {
		slog.Warn("coordinator: select under cursor failed", "id", it.ID, "error", err)
		return nil
	}
	return task
}

// SelectID selects an item by id. An item of the catalog hidden by the
// current search or facets becomes visible by clearing them first.
func (c *Coordinator) SelectID(id string) (*selection.Task, error) {
	snap := c.engine.Snapshot()
	if !snap.Contains(id) {
		if _, ok := c.source.ResolveReference(c.engine.Kind(), id); !ok {
			return nil, fmt.Errorf("select %s/%s: %w", c.engine.Kind(), id, selection.ErrNotInResult)
		}
		slog.Info("coordinator: clearing filters to reveal item", "kind", c.engine.Kind(), "id", id)
		snap = c.engine.ClearAll()
		c.Apply(snap)
	}

	i := snap.Index(id)
	if i < 0 {
		return nil, fmt.Errorf("select %s/%s: %w", c.engine.Kind(), id, selection.ErrNotInResult)
	}
	return c.Selection.Select(snap.Items[i])
}

// SetQuery applies the free-text search
func (c *Coordinator) SetQuery(q string) {
	c.Search.StartSearch(q)
}

// ClearQuery removes the free-text search
func (c *Coordinator) ClearQuery() {
	c.Search.ClearSearch()
}

// ToggleFacet flips the facet panel row under its cursor
func (c *Coordinator) ToggleFacet() {
	c.Apply(c.Facets.Toggle())
}

// ClearFacetGroup clears the group under the facet cursor
func (c *Coordinator) ClearFacetGroup() {
	c.Apply(c.Facets.ClearGroup())
}

// ClearAll clears every facet and the search
func (c *Coordinator) ClearAll() {
	c.Apply(c.Facets.ClearAll())
}

// SetFacet replaces the active labels of group
func (c *Coordinator) SetFacet(group string, labels ...string) {
	c.Apply(c.engine.SetActive(group, labels...))
}

// CycleSort switches to the next sort mode
func (c *Coordinator) CycleSort() {
	c.Sorting.NextMode()
}

// ApplyRelated publishes a finished related-content load if it is current
func (c *Coordinator) ApplyRelated(r selection.Result) bool {
	return c.Selection.ApplyRelated(r)
}

// GetCurrentIndex returns the current navigation index
func (c *Coordinator) GetCurrentIndex() int {
	return c.Navigation.GetCursor()
}

// GetCurrentItem returns the item under the cursor
func (c *Coordinator) GetCurrentItem() (domain.Item, bool) {
	return c.Query.GetItemAtIndex(c.Navigation.GetCursor())
}

// SetViewportHeight updates viewport height across services
func (c *Coordinator) SetViewportHeight(height int) {
	c.Navigation.SetViewportHeight(height)
}

// Close cancels the related-content load in flight
func (c *Coordinator) Close() {
	c.Selection.Close()
}
