package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"contentbrowser/internal/ui/input/modes"
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width            int
	Height           int
	Menu             []MenuEntry
	ExpandMenu       bool
	Route            string
	Mode             string
	Prompt           string // rendered text input, empty outside text modes
	Catalog          *CatalogView
	Body             string // content of non-catalog pages
	StatusMessage    string
	StatusIsError    bool
	ShowHelp         bool
	HelpScrollOffset int
	HelpModel        help.Model
}

// CatalogView is the body of a catalog page
type CatalogView struct {
	List          ListState
	Facets        FacetState
	ShowFacets    bool
	FilterSummary string
	Sort          string
	Detail        string // detail viewport output
}

// Layout is the split of the body area between the columns
type Layout struct {
	BodyHeight  int
	FacetWidth  int
	ListWidth   int
	DetailWidth int
}

// ListHeight is the number of item rows, leaving room for the scroll indicators
func (l Layout) ListHeight() int {
	return max(l.BodyHeight-2, 1)
}

// PanelInner returns the content size of a bordered panel of width w
func (l Layout) PanelInner(w int) (int, int) {
	return max(w-4, 1), max(l.BodyHeight-2, 1)
}

// ComputeLayout splits a width x height screen
func ComputeLayout(width, height int, showFacets, hasPrompt bool) Layout {
	if width <= 0 {
		width = 80
	}
	if height <= 0 {
		height = 24
	}
	chrome := 4 // menu, gap, status, help line
	if hasPrompt {
		chrome++
	}
	l := Layout{BodyHeight: max(height-chrome, 3)}

	usable := width - 2
	if showFacets {
		l.FacetWidth = min(32, max(usable/4, 16))
	}
	if usable >= 60 {
		l.DetailWidth = usable * 45 / 100
	}
	l.ListWidth = max(usable-l.FacetWidth-l.DetailWidth, 10)
	return l
}

// RendererOptions configures a Renderer
type RendererOptions struct {
	MarkdownStyle string
}

// Renderer handles all view rendering
type Renderer struct {
	styles      *Styles
	popupRender *PopupRenderer
	markdown    *MarkdownRenderer
}

// NewRenderer creates a new renderer
func NewRenderer(opts RendererOptions) *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:      styles,
		popupRender: NewPopupRenderer(styles),
		markdown:    NewMarkdownRenderer(opts.MarkdownStyle),
	}
}

// Markdown returns the markdown renderer shared by pages and the detail pane
func (r *Renderer) Markdown() *MarkdownRenderer {
	return r.markdown
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	content := &strings.Builder{}
	layout := ComputeLayout(state.Width, state.Height, state.Catalog != nil && state.Catalog.ShowFacets, state.Prompt != "")

	content.WriteString(r.RenderMenu(state.Menu, state.ExpandMenu, state.Width-2))
	content.WriteString("\n\n")

	if state.Prompt != "" {
		content.WriteString(state.Prompt)
		content.WriteString("\n")
	}

	body := state.Body
	if state.Catalog != nil {
		body = r.renderCatalog(state.Catalog, layout)
	}
	body = lipgloss.NewStyle().Height(layout.BodyHeight).MaxHeight(layout.BodyHeight).Render(body)
	content.WriteString(body)
	content.WriteString("\n")

	content.WriteString(r.renderStatusBar(state))
	if !state.ShowHelp {
		content.WriteString("\n")
		content.WriteString(r.styles.Help.Render(state.HelpModel.ShortHelpView(modes.Keys.ShortHelp())))
	}

	mainStyle := r.styles.Main.MaxHeight(max(state.Height, 1))
	if state.Height <= 0 {
		mainStyle = r.styles.Main
	}
	finalContent := mainStyle.Render(content.String())

	if state.ShowHelp {
		helpContent := r.renderHelpContent(state.Height, state.HelpScrollOffset)
		return r.popupRender.RenderPopupOverlay(finalContent, helpContent, state.Height, state.Width, r.styles.InfoBox)
	}

	return finalContent
}

func (r *Renderer) renderCatalog(c *CatalogView, layout Layout) string {
	var columns []string

	if c.ShowFacets && layout.FacetWidth > 0 {
		w, h := layout.PanelInner(layout.FacetWidth)
		style := r.styles.Panel
		if c.Facets.Focused {
			style = r.styles.PanelFocused
		}
		panel := style.Width(w + 2).Height(h).Render(r.RenderFacets(c.Facets, w, h))
		columns = append(columns, panel)
	}

	list := r.RenderList(c.List, layout.ListWidth-1, layout.BodyHeight)
	columns = append(columns, lipgloss.NewStyle().Width(layout.ListWidth).Render(list))

	if layout.DetailWidth > 0 {
		w, h := layout.PanelInner(layout.DetailWidth)
		panel := r.styles.Panel.Width(w + 2).Height(h).MaxHeight(layout.BodyHeight).Render(c.Detail)
		columns = append(columns, panel)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, columns...)
}

func (r *Renderer) renderStatusBar(state ViewState) string {
	parts := []string{r.styles.Route.Render(state.Route)}
	if state.Mode != "" && state.Mode != "normal" {
		parts = append(parts, r.styles.Filter.Render("["+state.Mode+"]"))
	}
	if c := state.Catalog; c != nil {
		parts = append(parts, fmt.Sprintf("%d/%d", c.List.Count, c.List.Total))
		if c.Sort != "" {
			parts = append(parts, r.styles.Dim.Render("sort: "+c.Sort))
		}
		if c.List.Query != "" {
			parts = append(parts, r.styles.Filter.Render(fmt.Sprintf("[Search: %s]", c.List.Query)))
		}
		if c.FilterSummary != "" {
			parts = append(parts, r.styles.Filter.Render("["+c.FilterSummary+"]"))
		}
	}
	left := strings.Join(parts, "  ")

	if state.StatusMessage == "" {
		return left
	}
	msgStyle := r.styles.Status
	if state.StatusIsError {
		msgStyle = r.styles.StatusError
	}
	right := msgStyle.Render(state.StatusMessage)

	pad := state.Width - 2 - lipgloss.Width(left) - lipgloss.Width(right)
	if pad < 2 {
		return left + "  " + right
	}
	return left + strings.Repeat(" ", pad) + right
}
