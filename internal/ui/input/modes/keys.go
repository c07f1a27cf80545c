package modes

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the normal mode bindings. It implements help.KeyMap for the
// short help line.
type KeyMap struct {
	Up        key.Binding
	Down      key.Binding
	PageUp    key.Binding
	PageDown  key.Binding
	Top       key.Binding
	Bottom    key.Binding
	NextView  key.Binding
	PrevView  key.Binding
	Search    key.Binding
	Facets    key.Binding
	ClearAll  key.Binding
	Sort      key.Binding
	Person    key.Binding
	Company   key.Binding
	Reload    key.Binding
	Refresh   key.Binding
	ScrollUp  key.Binding
	ScrollDn  key.Binding
	Pager     key.Binding
	HelpPager key.Binding
	Help      key.Binding
	Quit      key.Binding
}

// Keys is the default key map
var Keys = KeyMap{
	Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	PageUp:    key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
	PageDown:  key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
	Top:       key.NewBinding(key.WithKeys("home"), key.WithHelp("gg/home", "top")),
	Bottom:    key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G/end", "bottom")),
	NextView:  key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next view")),
	PrevView:  key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("shift+tab", "prev view")),
	Search:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	Facets:    key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "facets")),
	ClearAll:  key.NewBinding(key.WithKeys("X"), key.WithHelp("X", "clear filters")),
	Sort:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
	Person:    key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "open person")),
	Company:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "open company")),
	Reload:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload related")),
	Refresh:   key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "reload catalog")),
	ScrollUp:  key.NewBinding(key.WithKeys("ctrl+u"), key.WithHelp("ctrl+u", "scroll detail up")),
	ScrollDn:  key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "scroll detail down")),
	Pager:     key.NewBinding(key.WithKeys("o", "enter"), key.WithHelp("o", "open in pager")),
	HelpPager: key.NewBinding(key.WithKeys("P"), key.WithHelp("P", "help in pager")),
	Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
}

// ShortHelp returns the bindings shown in the status line
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextView, k.Search, k.Facets, k.Sort, k.Pager, k.Help, k.Quit}
}

// FullHelp returns every binding, grouped by column
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Top, k.Bottom},
		{k.NextView, k.PrevView, k.Search, k.Facets, k.ClearAll, k.Sort},
		{k.Person, k.Company, k.Reload, k.ScrollUp, k.ScrollDn},
		{k.Pager, k.HelpPager, k.Refresh, k.Help, k.Quit},
	}
}
