package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ListRow is one visible row of the item list
type ListRow struct {
	Title    string
	Meta     string
	Cursor   bool
	Selected bool
}

// ListState is the windowed list of the filtered result
type ListState struct {
	Rows   []ListRow // rows inside the window only
	Offset int       // index of the first row
	Count  int       // size of the filtered result
	Total  int       // items of the kind before filtering
	Query  string
}

// RenderList renders the window with a scroll indicator line above and below
func (r *Renderer) RenderList(state ListState, width, height int) string {
	if state.Count == 0 {
		msg := "No items"
		if state.Total > 0 {
			msg = fmt.Sprintf("No items match (%d hidden by filters)", state.Total)
		}
		return r.styles.Dim.Render(msg)
	}

	lines := make([]string, 0, height)
	if state.Offset > 0 {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("↑ %d more above ↑", state.Offset)))
	} else {
		lines = append(lines, "")
	}

	for _, row := range state.Rows {
		lines = append(lines, r.renderRow(row, state.Query, width))
	}

	if below := state.Count - (state.Offset + len(state.Rows)); below > 0 {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("↓ %d more below ↓", below)))
	}
	if height > 0 && len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}

func (r *Renderer) renderRow(row ListRow, query string, width int) string {
	prefix := "  "
	if row.Cursor {
		prefix = "▸ "
	}

	titleWidth := width - lipgloss.Width(prefix)
	meta := ""
	if row.Meta != "" && titleWidth > 30 {
		meta = truncate(row.Meta, titleWidth/3)
		titleWidth -= lipgloss.Width(meta) + 2
	}
	title := truncate(row.Title, titleWidth)

	switch {
	case row.Selected:
		title = r.styles.Selected.Render(title)
	case query != "":
		title = r.highlight(title, query)
	}

	line := prefix + title
	if meta != "" {
		pad := width - lipgloss.Width(line) - lipgloss.Width(meta)
		if pad < 2 {
			pad = 2
		}
		line += strings.Repeat(" ", pad) + r.styles.Dim.Render(meta)
	}
	if row.Cursor {
		return r.styles.Cursor.Render(line)
	}
	return line
}

// highlight marks the first case-insensitive occurrence of query in s
func (r *Renderer) highlight(s, query string) string {
	lower := strings.ToLower(s)
	i := strings.Index(lower, strings.ToLower(query))
	if i < 0 || len(lower) != len(s) {
		return s
	}
	end := i + len(query)
	return s[:i] + r.styles.Highlight.Render(s[i:end]) + s[end:]
}
