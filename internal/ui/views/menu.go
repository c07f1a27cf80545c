package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// MenuEntry is one top menu item, taken from the router table
type MenuEntry struct {
	MenuID string
	Label  string
	Key    string
	Active bool
}

// RenderMenu renders the top menu. Expanded menus show full labels, compact
// ones the short ids; both are cut to width keeping the active entry visible.
func (r *Renderer) RenderMenu(entries []MenuEntry, expanded bool, width int) string {
	items := make([]string, 0, len(entries))
	active := 0
	for i, e := range entries {
		text := e.MenuID
		if expanded {
			text = e.Label
		}
		if expanded && e.Key != "" {
			text = r.styles.MenuKey.Render(e.Key+" ") + text
		}
		style := r.styles.MenuItem
		if e.Active {
			style = r.styles.MenuActive
			active = i
		}
		items = append(items, style.Render(text))
	}
	if width <= 0 {
		return strings.Join(items, "")
	}

	// drop entries from the far side of the active one until the menu fits
	start, end := 0, len(items)
	for start < end && lipgloss.Width(strings.Join(items[start:end], "")) > width {
		if active-start > end-1-active {
			start++
		} else {
			end--
		}
	}
	return strings.Join(items[start:end], "")
}
