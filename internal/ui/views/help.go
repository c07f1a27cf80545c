package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"contentbrowser/internal/ui/input/modes"
)

var helpSections = []string{"Navigation", "Views & Filters", "Item", "Other"}

// facetPanelHelp lists the keys of the facet panel, which has no key map
var facetPanelHelp = [][2]string{
	{"↑/↓, j/k", "Move between filters"},
	{"tab", "Next filter group"},
	{"space/enter", "Toggle filter (on a group: clear it)"},
	{"x", "Clear group"},
	{"X", "Clear all filters"},
	{"esc/f", "Close the panel"},
}

// HelpText returns the help page as plain text, used by the pager
func HelpText() string {
	return StripANSI(NewRenderer(RendererOptions{}).helpBody())
}

func (r *Renderer) helpBody() string {
	keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	sectionStyle := r.styles.GroupHeader.MarginTop(1)

	var help strings.Builder
	help.WriteString(r.styles.Title.Render("Content Browser Help"))
	help.WriteString("\n")

	line := func(k, desc string) {
		help.WriteString(fmt.Sprintf("  %s  %s\n", keyStyle.Render(fmt.Sprintf("%-12s", k)), descStyle.Render(desc)))
	}

	for i, column := range modes.Keys.FullHelp() {
		if i < len(helpSections) {
			help.WriteString(sectionStyle.Render(helpSections[i]))
			help.WriteString("\n")
		}
		for _, b := range column {
			if !b.Enabled() {
				continue
			}
			line(bindingKeys(b), b.Help().Desc)
		}
	}
	line("1-9", "Jump to menu entry")

	help.WriteString(sectionStyle.Render("Facet Panel"))
	help.WriteString("\n")
	for _, kv := range facetPanelHelp {
		line(kv[0], kv[1])
	}

	help.WriteString(r.styles.Dim.Italic(true).Render("  Filters within a group are alternatives; groups narrow each other."))
	return help.String()
}

func bindingKeys(b key.Binding) string {
	return strings.Join(b.Keys(), "/")
}

// renderHelpContent renders the help popup, scrolled by scrollOffset lines
func (r *Renderer) renderHelpContent(height int, scrollOffset int) string {
	lines := strings.Split(strings.TrimRight(r.helpBody(), "\n"), "\n")
	totalLines := len(lines)

	// account for popup border and padding
	visibleHeight := height - 4
	if visibleHeight < 5 {
		visibleHeight = 5
	}

	if totalLines > visibleHeight {
		maxOffset := totalLines - visibleHeight
		if scrollOffset > maxOffset {
			scrollOffset = maxOffset
		}
		if scrollOffset < 0 {
			scrollOffset = 0
		}

		endLine := scrollOffset + visibleHeight
		lines = lines[scrollOffset:endLine]

		if scrollOffset > 0 {
			lines[0] = r.styles.Scroll.Render("↑ (more above)")
		}
		if endLine < totalLines {
			lines[len(lines)-1] = r.styles.Scroll.Render("↓ (more below)")
		}
	}

	return strings.Join(lines, "\n")
}
