package sorting

import "contentbrowser/internal/facet"

// State holds sorting state
type State struct {
	CurrentMode facet.SortMode
}

// Event types
type SortModeChangedEvent struct {
	OldMode facet.SortMode
	NewMode facet.SortMode
}
