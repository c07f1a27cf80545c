package views

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"contentbrowser/internal/domain"
)

// Detail is what the detail pane shows for the selected item
type Detail struct {
	Item    domain.Item
	People  []string // resolved person names
	Company string   // resolved company name
	Related RelatedState
}

// RelatedState is the secondary content section of the detail pane
type RelatedState struct {
	Supported bool
	Loading   bool
	Err       error
	Items     []domain.Related
	Spinner   string
}

// ItemMarkdown formats the item part of a detail as markdown
func ItemMarkdown(d Detail) string {
	it := d.Item
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", it.Title)

	meta := []string{string(it.Kind)}
	if !it.Date.IsZero() {
		meta = append(meta, it.Date.Format("2006-01-02"))
	}
	fmt.Fprintf(&b, "*%s*\n\n", strings.Join(meta, " · "))

	if it.Summary != "" {
		fmt.Fprintf(&b, "%s\n\n", it.Summary)
	}
	if it.Description != "" && it.Description != it.Summary {
		fmt.Fprintf(&b, "%s\n\n", it.Description)
	}

	if len(d.People) > 0 {
		fmt.Fprintf(&b, "- **People:** %s\n", strings.Join(d.People, ", "))
	}
	if d.Company != "" {
		fmt.Fprintf(&b, "- **Company:** %s\n", d.Company)
	}
	for _, name := range slices.Sorted(maps.Keys(it.Attributes)) {
		if v := strings.TrimSpace(it.Attributes[name]); v != "" {
			fmt.Fprintf(&b, "- **%s:** %s\n", name, v)
		}
	}
	if it.URL != "" {
		fmt.Fprintf(&b, "- **Link:** <%s>\n", it.URL)
	}
	if it.FeedURL != "" {
		fmt.Fprintf(&b, "- **Feed:** <%s>\n", it.FeedURL)
	}
	return b.String()
}

// RelatedMarkdown formats loaded related records as markdown, for the pager
func RelatedMarkdown(records []domain.Related) string {
	if len(records) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("## Related\n\n")
	for _, r := range records {
		line := r.Title
		if r.Link != "" {
			line = fmt.Sprintf("[%s](%s)", r.Title, r.Link)
		}
		if !r.Date.IsZero() {
			line += " (" + r.Date.Format("2006-01-02") + ")"
		}
		fmt.Fprintf(&b, "- %s\n", line)
	}
	return b.String()
}

// RenderDetail renders the detail pane content for width columns
func (r *Renderer) RenderDetail(d *Detail, width int) string {
	if d == nil {
		return r.styles.Dim.Render("Nothing selected")
	}
	body := r.markdown.Render(ItemMarkdown(*d), width)
	if !d.Related.Supported {
		return body
	}
	return body + "\n\n" + r.renderRelated(d.Item.Kind, d.Related, width)
}

func (r *Renderer) renderRelated(kind domain.Kind, rs RelatedState, width int) string {
	var lines []string
	title := "Related"
	placeholder := "Loading related ..."
	if kind == domain.KindBlog {
		title = "Posts"
		placeholder = "Loading posts ..."
	}
	lines = append(lines, r.styles.Section.Render(title))

	switch {
	case rs.Loading:
		lines = append(lines, r.styles.Loading.Render(strings.TrimSpace(rs.Spinner+" "+placeholder)))
	case rs.Err != nil:
		lines = append(lines, r.styles.StatusError.Render("Could not load related content: "+rs.Err.Error()))
	case len(rs.Items) == 0:
		lines = append(lines, r.styles.Dim.Render("No related content"))
	default:
		for _, rel := range rs.Items {
			line := "• " + truncate(rel.Title, width-2)
			if !rel.Date.IsZero() {
				line += r.styles.Dim.Render("  " + rel.Date.Format("2006-01-02"))
			}
			lines = append(lines, line)
			if rel.Link != "" {
				lines = append(lines, r.styles.Dim.Render("  "+truncate(rel.Link, width-2)))
			}
		}
	}
	return strings.Join(lines, "\n")
}

// truncate shortens s to width runes, marking the cut with an ellipsis
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(runes[:width-1]) + "…"
}
