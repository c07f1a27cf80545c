package pages

import (
	"context"

	"contentbrowser/internal/catalog"
	"contentbrowser/internal/domain"
	"contentbrowser/internal/facet"
	"contentbrowser/internal/router"
	"contentbrowser/internal/ui/coordinator"
	"contentbrowser/internal/ui/services/events"
	"contentbrowser/internal/ui/services/selection"
	"contentbrowser/internal/ui/views"
)

// CatalogPage browses the items of one kind: a filter engine, a list and a
// detail pane driven by one coordinator. All methods run on the UI loop.
type CatalogPage struct {
	entry   router.Entry
	source  catalog.Source
	engine  *facet.Engine
	coord   *coordinator.Coordinator
	bus     *events.Bus
	display domain.Display
	pending *selection.Task
}

// NewCatalogPage creates the page of a catalog view
func NewCatalogPage(entry router.Entry, deps Deps) *CatalogPage {
	engine := facet.NewEngine(deps.Catalog, entry.Kind, facet.SpecsFor(entry.Kind))
	bus := events.NewBus()

	opts := coordinator.Options{PageSize: deps.PageSize, Timeout: deps.Timeout}
	var fetch func(context.Context, domain.Item) ([]domain.Related, error)
	if deps.Related != nil {
		fetch = deps.Related.FetchRelated
		opts.Supports = deps.Related.Supports
	}

	return &CatalogPage{
		entry:  entry,
		source: deps.Catalog,
		engine: engine,
		coord:  coordinator.NewCoordinator(bus, engine, deps.Catalog, fetch, opts),
		bus:    bus,
	}
}

func (p *CatalogPage) View() domain.View {
	return p.entry.View
}

// Kind returns the item kind listed by the page
func (p *CatalogPage) Kind() domain.Kind {
	return p.entry.Kind
}

// Label returns the menu label of the page
func (p *CatalogPage) Label() string {
	return p.entry.Label
}

// Coordinator returns the page's coordinator
func (p *CatalogPage) Coordinator() *coordinator.Coordinator {
	return p.coord
}

// Bus returns the page's UI event bus
func (p *CatalogPage) Bus() *events.Bus {
	return p.bus
}

// Close cancels the related-content load in flight
func (p *CatalogPage) Close() {
	p.pending = nil
	p.coord.Close()
}

// Deactivate keeps search, facets and selection but stops loading
func (p *CatalogPage) Deactivate() {
	p.pending = nil
	p.coord.Close()
}

// Activate catches up with catalog changes made while the page was hidden
// and restarts the related load a deactivation canceled
func (p *CatalogPage) Activate() {
	p.coord.Refresh()
	if p.pending != nil || p.coord.Selection.IsLoading() {
		return
	}
	if _, ok := p.coord.Selection.Selected(); ok {
		p.pending = p.coord.Selection.Reload()
	}
}

func (p *CatalogPage) SetDisplay(d domain.Display) {
	p.display = d
}

// Display returns the display class last applied by the router
func (p *CatalogPage) Display() domain.Display {
	return p.display
}

// SelectItem selects id, clearing search and facets if they hide it. A
// cached page may be behind the catalog, so it catches up first.
func (p *CatalogPage) SelectItem(id string) error {
	p.coord.Refresh()
	task, err := p.coord.SelectID(id)
	if err != nil {
		return err
	}
	if task != nil {
		p.pending = task
	}
	return nil
}

// SelectedID returns the id of the selected item
func (p *CatalogPage) SelectedID() (string, bool) {
	it, ok := p.coord.Selection.Selected()
	return it.ID, ok
}

// TakePending returns the load started outside a key handler, if any, and
// forgets it
func (p *CatalogPage) TakePending() *selection.Task {
	t := p.pending
	p.pending = nil
	return t
}

// Refresh re-reads the catalog
func (p *CatalogPage) Refresh() {
	p.coord.Refresh()
}

// ApplyRelated hands a finished load to the selection
func (p *CatalogPage) ApplyRelated(r selection.Result) bool {
	return p.coord.ApplyRelated(r)
}

// Detail returns the detail pane content of the selection, nil when empty
func (p *CatalogPage) Detail(spinner string) *views.Detail {
	it, ok := p.coord.Selection.Selected()
	if !ok {
		return nil
	}
	d := &views.Detail{Item: it}
	for _, id := range it.PersonIDs {
		if person, ok := p.source.ResolveReference(domain.KindPerson, id); ok {
			d.People = append(d.People, person.Title)
		}
	}
	if it.CompanyID != "" {
		if company, ok := p.source.ResolveReference(domain.KindCompany, it.CompanyID); ok {
			d.Company = company.Title
		}
	}

	rel, err := p.coord.Selection.Related()
	d.Related = views.RelatedState{
		Supported: p.coord.Selection.SupportsRelated(it.Kind),
		Loading:   p.coord.Selection.IsLoading(),
		Err:       err,
		Items:     rel,
		Spinner:   spinner,
	}
	return d
}

// Reference returns the first person or the company of the selection
func (p *CatalogPage) Reference(kind domain.Kind) (domain.ItemRef, bool) {
	it, ok := p.coord.Selection.Selected()
	if !ok {
		return domain.ItemRef{}, false
	}
	switch kind {
	case domain.KindPerson:
		for _, id := range it.PersonIDs {
			if _, ok := p.source.ResolveReference(domain.KindPerson, id); ok {
				return domain.ItemRef{Kind: domain.KindPerson, ID: id}, true
			}
		}
	case domain.KindCompany:
		if it.CompanyID != "" {
			return domain.ItemRef{Kind: domain.KindCompany, ID: it.CompanyID}, true
		}
	}
	return domain.ItemRef{}, false
}
