package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"contentbrowser/internal/ui/input/types"
)

// FacetsMode moves a cursor over the facet panel
type FacetsMode struct{}

func NewFacetsMode() *FacetsMode {
	return &FacetsMode{}
}

func (m *FacetsMode) Name() string {
	return "facets"
}

func (m *FacetsMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *FacetsMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *FacetsMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{Force: true}}, true
	case "esc", "f", "q":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeNormal}}, true
	case "up", "k":
		return []types.Action{types.FacetNavigateAction{Delta: -1}}, true
	case "down", "j":
		return []types.Action{types.FacetNavigateAction{Delta: 1}}, true
	case "tab":
		return []types.Action{types.FacetNavigateAction{NextGroup: true}}, true
	case " ", "enter":
		return []types.Action{types.ToggleFacetAction{}}, true
	case "x":
		return []types.Action{types.ClearFacetGroupAction{}}, true
	case "X":
		return []types.Action{types.ClearFiltersAction{}}, true
	case "/":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeSearch, Data: ctx.SearchQuery()}}, true
	}
	return nil, true
}
