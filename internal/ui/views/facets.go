package views

import (
	"fmt"
	"strings"

	"contentbrowser/internal/ui/services/facets"
)

// FacetState is the facet panel of a catalog page
type FacetState struct {
	Rows       []facets.Row
	Cursor     int
	Focused    bool
	ShowCounts bool
}

// RenderFacets renders the facet panel rows, scrolled so the cursor is visible
func (r *Renderer) RenderFacets(state FacetState, width, height int) string {
	if len(state.Rows) == 0 {
		return r.styles.Dim.Render("No filters")
	}

	start := 0
	if height > 0 && state.Cursor >= height {
		start = state.Cursor - height + 1
	}
	end := len(state.Rows)
	if height > 0 && end > start+height {
		end = start + height
	}

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		lines = append(lines, r.renderFacetRow(state.Rows[i], state.Focused && i == state.Cursor, state.ShowCounts, width))
	}
	return strings.Join(lines, "\n")
}

func (r *Renderer) renderFacetRow(row facets.Row, cursor, showCounts bool, width int) string {
	var line string
	if row.Type == facets.RowGroup {
		line = r.styles.GroupHeader.Render(truncate(row.Group, width-6))
		if row.ActiveCount > 0 {
			line += r.styles.Filter.Render(fmt.Sprintf(" (%d)", row.ActiveCount))
		}
	} else {
		box := "[ ] "
		if row.Active {
			box = "[x] "
		}
		count := ""
		if showCounts {
			count = fmt.Sprintf(" %d", row.Count)
		}
		label := truncate(row.Label, width-len(box)-len(count)-2)
		if row.Active {
			label = r.styles.FacetActive.Render(label)
		} else if showCounts && row.Count == 0 {
			label = r.styles.Dim.Render(label)
		}
		line = "  " + box + label + r.styles.FacetCount.Render(count)
	}
	if cursor {
		return r.styles.Cursor.Render(line)
	}
	return line
}

// FilterSummary formats the active filters for the status line
func FilterSummary(rows []facets.Row) string {
	var parts []string
	var labels []string
	group := ""
	flush := func() {
		if len(labels) > 0 {
			parts = append(parts, group+": "+strings.Join(labels, ", "))
		}
		labels = nil
	}
	for _, row := range rows {
		if row.Type == facets.RowGroup {
			flush()
			group = row.Group
			continue
		}
		if row.Active {
			labels = append(labels, row.Label)
		}
	}
	flush()
	return strings.Join(parts, "; ")
}
