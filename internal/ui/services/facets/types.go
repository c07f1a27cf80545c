package facets

// RowType tells group headers from filters in the facet panel
type RowType int

const (
	RowGroup RowType = iota
	RowFilter
)

// Row is one line of the facet panel
type Row struct {
	Type   RowType
	Group  string
	Label  string // empty for group headers
	Count  int    // matches given the other groups' selections
	Active bool
	// ActiveCount is the number of active filters of a group header
	ActiveCount int
}

// State holds the facet panel cursor
type State struct {
	Cursor int
}

// Event types
type FilterToggledEvent struct {
	Group  string
	Label  string
	Active bool
	Result int
}

type GroupClearedEvent struct {
	Group  string
	Result int
}

type AllClearedEvent struct {
	Result int
}
