package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contentbrowser/internal/ui/input/types"
)

type fakeContext struct {
	catalog bool
	query   string
	filters bool
	person  bool
}

func (c fakeContext) OnCatalogPage() bool      { return c.catalog }
func (c fakeContext) CurrentIndex() int        { return 0 }
func (c fakeContext) TotalItems() int          { return 3 }
func (c fakeContext) HasSelection() bool       { return c.person }
func (c fakeContext) SelectedHasPerson() bool  { return c.person }
func (c fakeContext) SelectedHasCompany() bool { return false }
func (c fakeContext) SearchQuery() string      { return c.query }
func (c fakeContext) HasActiveFilters() bool   { return c.filters }

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNormalModeKeys(t *testing.T) {
	h := New()
	ctx := fakeContext{catalog: true, person: true}

	actions, _ := h.HandleKey(runes("j"), ctx)
	assert.Equal(t, []types.Action{types.NavigateAction{Direction: "down"}}, actions)

	actions, _ = h.HandleKey(runes("8"), ctx)
	assert.Equal(t, []types.Action{types.SwitchViewAction{Key: "8"}}, actions)

	actions, _ = h.HandleKey(tea.KeyMsg{Type: tea.KeyTab}, ctx)
	assert.Equal(t, []types.Action{types.SwitchViewAction{Delta: 1}}, actions)

	actions, _ = h.HandleKey(runes("p"), ctx)
	assert.Equal(t, []types.Action{types.OpenReferenceAction{Kind: "person"}}, actions)

	actions, _ = h.HandleKey(runes("g"), ctx)
	assert.Empty(t, actions)
	actions, _ = h.HandleKey(runes("g"), ctx)
	assert.Equal(t, []types.Action{types.NavigateAction{Direction: "home"}}, actions)
}

func TestListKeysIgnoredOffCatalogPages(t *testing.T) {
	h := New()
	actions, _ := h.HandleKey(runes("j"), fakeContext{})
	assert.Empty(t, actions)

	actions, _ = h.HandleKey(runes("q"), fakeContext{})
	assert.Equal(t, []types.Action{types.QuitAction{}}, actions)
}

func TestSearchModeTypesAndSubmits(t *testing.T) {
	h := New()
	ctx := fakeContext{catalog: true, query: "ja"}

	actions, cmd := h.HandleKey(runes("/"), ctx)
	assert.NotNil(t, cmd)
	assert.Equal(t, types.ModeSearch, h.CurrentMode())
	require.NotEmpty(t, actions)
	assert.Equal(t, "ja", h.TextInput().Value(), "prompt starts from the applied query")
	assert.Equal(t, "Search: ", h.Prompt())

	actions, _ = h.HandleKey(runes("v"), ctx)
	assert.Equal(t, []types.Action{types.UpdateTextAction{Text: "jav"}}, actions)

	actions, _ = h.HandleKey(tea.KeyMsg{Type: tea.KeyEnter}, ctx)
	require.Len(t, actions, 2)
	assert.Equal(t, types.SubmitTextAction{Text: "jav", Mode: types.ModeSearch}, actions[0])
	assert.Equal(t, types.ModeNormal, h.CurrentMode())
	assert.Nil(t, h.TextInput())
}

func TestFacetsMode(t *testing.T) {
	h := New()
	ctx := fakeContext{catalog: true}

	h.HandleKey(runes("f"), ctx)
	assert.Equal(t, types.ModeFacets, h.CurrentMode())

	actions, _ := h.HandleKey(runes(" "), ctx)
	assert.Equal(t, []types.Action{types.ToggleFacetAction{}}, actions)
	actions, _ = h.HandleKey(runes("x"), ctx)
	assert.Equal(t, []types.Action{types.ClearFacetGroupAction{}}, actions)

	h.HandleKey(tea.KeyMsg{Type: tea.KeyEsc}, ctx)
	assert.Equal(t, types.ModeNormal, h.CurrentMode())
}
