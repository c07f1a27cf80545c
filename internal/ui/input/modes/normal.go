package modes

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"contentbrowser/internal/ui/input/types"
)

type NormalMode struct {
	keys        KeyMap
	lastKeyWasG bool
	lastGTime   time.Time
}

func NewNormalMode() *NormalMode {
	return &NormalMode{keys: Keys}
}

func (m *NormalMode) Name() string {
	return "normal"
}

func (m *NormalMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	if msg.Type == tea.KeyCtrlC {
		return []types.Action{types.QuitAction{Force: true}}, true
	}

	s := msg.String()
	if s == "g" {
		if m.lastKeyWasG && time.Since(m.lastGTime) < 500*time.Millisecond {
			m.lastKeyWasG = false
			return []types.Action{types.NavigateAction{Direction: "home"}}, true
		}
		m.lastKeyWasG = true
		m.lastGTime = time.Now()
		return nil, true
	}
	m.lastKeyWasG = false

	// menu shortcuts 1-9
	if len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
		return []types.Action{types.SwitchViewAction{Key: s}}, true
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return []types.Action{types.QuitAction{Force: false}}, true
	case key.Matches(msg, m.keys.Help):
		return []types.Action{types.ToggleHelpAction{}}, true
	case key.Matches(msg, m.keys.HelpPager):
		return []types.Action{types.HelpPagerAction{}}, true
	case key.Matches(msg, m.keys.NextView):
		return []types.Action{types.SwitchViewAction{Delta: 1}}, true
	case key.Matches(msg, m.keys.PrevView):
		return []types.Action{types.SwitchViewAction{Delta: -1}}, true
	case key.Matches(msg, m.keys.Pager):
		return []types.Action{types.OpenPagerAction{}}, true
	case key.Matches(msg, m.keys.Refresh):
		return []types.Action{types.ReloadCatalogAction{}}, true
	case key.Matches(msg, m.keys.ScrollUp):
		return []types.Action{types.ScrollDetailAction{Lines: -5}}, true
	case key.Matches(msg, m.keys.ScrollDn):
		return []types.Action{types.ScrollDetailAction{Lines: 5}}, true
	}

	if !ctx.OnCatalogPage() {
		return nil, false
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		return []types.Action{types.NavigateAction{Direction: "up"}}, true
	case key.Matches(msg, m.keys.Down):
		return []types.Action{types.NavigateAction{Direction: "down"}}, true
	case key.Matches(msg, m.keys.PageUp):
		return []types.Action{types.NavigateAction{Direction: "pageup"}}, true
	case key.Matches(msg, m.keys.PageDown):
		return []types.Action{types.NavigateAction{Direction: "pagedown"}}, true
	case key.Matches(msg, m.keys.Top):
		return []types.Action{types.NavigateAction{Direction: "home"}}, true
	case key.Matches(msg, m.keys.Bottom):
		return []types.Action{types.NavigateAction{Direction: "end"}}, true
	case key.Matches(msg, m.keys.Search):
		return []types.Action{types.ChangeModeAction{Mode: types.ModeSearch, Data: ctx.SearchQuery()}}, true
	case key.Matches(msg, m.keys.Facets):
		return []types.Action{types.ChangeModeAction{Mode: types.ModeFacets}}, true
	case key.Matches(msg, m.keys.ClearAll):
		if ctx.HasActiveFilters() || ctx.SearchQuery() != "" {
			return []types.Action{types.ClearFiltersAction{}}, true
		}
		return nil, true
	case key.Matches(msg, m.keys.Sort):
		return []types.Action{types.CycleSortAction{}}, true
	case key.Matches(msg, m.keys.Person):
		if ctx.SelectedHasPerson() {
			return []types.Action{types.OpenReferenceAction{Kind: "person"}}, true
		}
		return nil, true
	case key.Matches(msg, m.keys.Company):
		if ctx.SelectedHasCompany() {
			return []types.Action{types.OpenReferenceAction{Kind: "company"}}, true
		}
		return nil, true
	case key.Matches(msg, m.keys.Reload):
		if ctx.HasSelection() {
			return []types.Action{types.ReloadRelatedAction{}}, true
		}
		return nil, true
	case s == "esc":
		if ctx.SearchQuery() != "" || ctx.HasActiveFilters() {
			return []types.Action{types.ClearFiltersAction{}}, true
		}
		return nil, true
	}

	return nil, false
}
