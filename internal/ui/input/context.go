package input

import (
	"contentbrowser/internal/domain"
	"contentbrowser/internal/ui/coordinator"
)

// ModelContext implements the Context interface for the input handler. A
// nil Coordinator means the active page has no item list.
type ModelContext struct {
	Coordinator *coordinator.Coordinator
}

// OnCatalogPage reports whether the active page lists items
func (c *ModelContext) OnCatalogPage() bool {
	return c.Coordinator != nil
}

// CurrentIndex returns the cursor position
func (c *ModelContext) CurrentIndex() int {
	if c.Coordinator == nil {
		return 0
	}
	return c.Coordinator.GetCurrentIndex()
}

// TotalItems returns the number of rows in the filtered result
func (c *ModelContext) TotalItems() int {
	if c.Coordinator == nil {
		return 0
	}
	return c.Coordinator.Query.Count()
}

// HasSelection returns true if an item is selected
func (c *ModelContext) HasSelection() bool {
	_, ok := c.selected()
	return ok
}

// SelectedHasPerson reports whether the selection references a person
func (c *ModelContext) SelectedHasPerson() bool {
	it, ok := c.selected()
	return ok && len(it.PersonIDs) > 0
}

// SelectedHasCompany reports whether the selection references a company
func (c *ModelContext) SelectedHasCompany() bool {
	it, ok := c.selected()
	return ok && it.CompanyID != ""
}

// SearchQuery returns the applied search query
func (c *ModelContext) SearchQuery() string {
	if c.Coordinator == nil {
		return ""
	}
	return c.Coordinator.Search.GetQuery()
}

// HasActiveFilters reports whether any facet is active
func (c *ModelContext) HasActiveFilters() bool {
	if c.Coordinator == nil {
		return false
	}
	return c.Coordinator.Snapshot().Active.Len() > 0
}

func (c *ModelContext) selected() (domain.Item, bool) {
	if c.Coordinator == nil {
		return domain.Item{}, false
	}
	return c.Coordinator.Selection.Selected()
}
