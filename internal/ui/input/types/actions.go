package types

// Navigation actions
type NavigateAction struct {
	Direction string // "up", "down", "pageup", "pagedown", "home", "end"
}

func (a NavigateAction) Type() string { return "navigate" }

// SwitchViewAction moves between views: by menu key, or by Delta positions
type SwitchViewAction struct {
	Key   string
	Delta int
}

func (a SwitchViewAction) Type() string { return "switch_view" }

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
	Data interface{} // Optional data for the mode
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// Text input actions
type UpdateTextAction struct {
	Text string
}

func (a UpdateTextAction) Type() string { return "update_text" }

type SubmitTextAction struct {
	Text string
	Mode Mode // Which mode submitted the text
}

func (a SubmitTextAction) Type() string { return "submit_text" }

type CancelTextAction struct{}

func (a CancelTextAction) Type() string { return "cancel_text" }

// Facet panel actions
type FacetNavigateAction struct {
	Delta     int
	NextGroup bool
}

func (a FacetNavigateAction) Type() string { return "facet_navigate" }

type ToggleFacetAction struct{}

func (a ToggleFacetAction) Type() string { return "toggle_facet" }

type ClearFacetGroupAction struct{}

func (a ClearFacetGroupAction) Type() string { return "clear_facet_group" }

// ClearFiltersAction clears every facet and the search
type ClearFiltersAction struct{}

func (a ClearFiltersAction) Type() string { return "clear_filters" }

// Item actions
type CycleSortAction struct{}

func (a CycleSortAction) Type() string { return "cycle_sort" }

// OpenReferenceAction opens the person or company the selection references
type OpenReferenceAction struct {
	Kind string // "person" or "company"
}

func (a OpenReferenceAction) Type() string { return "open_reference" }

type ReloadRelatedAction struct{}

func (a ReloadRelatedAction) Type() string { return "reload_related" }

// ReloadCatalogAction re-reads the catalog file
type ReloadCatalogAction struct{}

func (a ReloadCatalogAction) Type() string { return "reload_catalog" }

type ScrollDetailAction struct {
	Lines int
}

func (a ScrollDetailAction) Type() string { return "scroll_detail" }

type OpenPagerAction struct{}

func (a OpenPagerAction) Type() string { return "open_pager" }

type HelpPagerAction struct{}

func (a HelpPagerAction) Type() string { return "help_pager" }

type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

type QuitAction struct {
	Force bool // true for Ctrl+C, false for 'q'
}

func (a QuitAction) Type() string { return "quit" }
