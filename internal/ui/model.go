package ui

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"contentbrowser/internal/config"
	"contentbrowser/internal/domain"
	"contentbrowser/internal/eventbus"
	"contentbrowser/internal/router"
	"contentbrowser/internal/ui/coordinator"
	"contentbrowser/internal/ui/handlers"
	"contentbrowser/internal/ui/input"
	inputtypes "contentbrowser/internal/ui/input/types"
	"contentbrowser/internal/ui/pages"
	"contentbrowser/internal/ui/services/navigation"
	"contentbrowser/internal/ui/services/selection"
	"contentbrowser/internal/ui/views"
)

const (
	statusTTL = 3 * time.Second
	// facetAutoWidth is the width from which wide displays show the facet
	// panel without entering the facet mode
	facetAutoWidth = 120
)

// relatedTarget is the page a related-content load was started for
type relatedTarget interface {
	Kind() domain.Kind
	ApplyRelated(selection.Result) bool
}

// Model represents the UI state
type Model struct {
	bus    eventbus.EventBus
	config *config.Config
	router *router.Router

	width       int
	height      int
	help        help.Model
	spinner     spinner.Model
	body        viewport.Model // detail pane, or the whole body of a markdown page
	bodyKey     string         // what body shows; a change scrolls back to the top
	inPagerMode bool           // tracks if we're currently in pager mode

	showHelp      bool
	helpScroll    int
	statusMessage string
	statusIsError bool
	searchOrigin  string // query to restore when a search is canceled

	renderer      *views.Renderer
	eventHandler  *handlers.EventHandler
	inputHandler  *input.Handler
	pager         *Pager
	reloadCatalog func() error

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model over a router whose first transition has
// already been made
func NewModel(bus eventbus.EventBus, cfg *config.Config, r *router.Router) *Model {
	m := &Model{
		bus:          bus,
		config:       cfg,
		router:       r,
		help:         help.New(),
		spinner:      spinner.New(spinner.WithSpinner(spinner.Dot)),
		body:         viewport.New(0, 0),
		renderer:     views.NewRenderer(views.RendererOptions{MarkdownStyle: cfg.UISettings.MarkdownStyle}),
		inputHandler: input.New(),
		pager:        NewPager(),
	}
	m.eventHandler = handlers.NewEventHandler(m)
	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.pager.SetProgram(p)
}

// SetCatalogReloader sets the function run by the reload key; it runs off
// the UI loop and reports changes through catalog events
func (m *Model) SetCatalogReloader(fn func() error) {
	m.reloadCatalog = fn
}

// CurrentPage returns the active page
func (m *Model) CurrentPage() any {
	return m.router.Page()
}

// SetStatus shows message in the status bar
func (m *Model) SetStatus(message string, isError bool) {
	m.statusMessage = message
	m.statusIsError = isError
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return m.afterTransition()
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.update(msg)
	m.refreshBody()
	return m, cmd
}

func (m *Model) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.syncLayout()
		return nil

	case tea.KeyMsg:
		if m.showHelp {
			return m.handleHelpKey(msg)
		}

		ctx := &input.ModelContext{Coordinator: m.coordinator()}
		actions, cmd := m.inputHandler.HandleKey(msg, ctx)

		cmds := []tea.Cmd{cmd}
		for _, action := range actions {
			cmds = append(cmds, m.processAction(action))
		}
		// the search prompt takes a line when it opens or closes
		m.syncLayout()
		return tea.Batch(cmds...)

	case spinner.TickMsg:
		// the tick chain ends once nothing is loading
		if !m.loading() {
			return nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return cmd

	default:
		if cmd, handled := m.handleNonKeyboardMsg(msg); handled {
			return cmd
		}
		// cursor blink of the search prompt
		return m.inputHandler.Update(msg)
	}
}

// handleNonKeyboardMsg handles non-keyboard messages
func (m *Model) handleNonKeyboardMsg(msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case EventMsg:
		return m.eventHandler.HandleEvent(msg.Event), true

	case relatedLoadedMsg:
		if msg.result.Canceled {
			return nil, true
		}
		if msg.page.ApplyRelated(msg.result) && m.bus != nil {
			m.bus.Publish(eventbus.RelatedLoadedEvent{
				Ref:   domain.ItemRef{Kind: msg.page.Kind(), ID: msg.result.ID},
				Count: len(msg.result.Value),
				Err:   msg.result.Err,
			})
		}
		return nil, true

	case catalogReloadedMsg:
		if msg.err != nil {
			slog.Error("ui: catalog reload failed", "error", msg.err)
			return m.flashStatus(fmt.Sprintf("Reload failed: %v", msg.err), true), true
		}
		return m.flashStatus("Catalog reloaded", false), true

	case pagerMsg:
		if msg.err != nil {
			// log only; the screen is restored either way
			slog.Error("ui: pager failed", "what", msg.what, "error", msg.err)
			return m.flashStatus(fmt.Sprintf("Pager failed: %v", msg.err), true), true
		}
		return nil, true

	case pauseRenderingMsg:
		m.inPagerMode = true
		return nil, true

	case resumeRenderingMsg:
		m.inPagerMode = false
		return nil, true

	case handlers.ClearStatusMsg:
		m.statusMessage = ""
		m.statusIsError = false
		return nil, true

	case quitMsg:
		m.router.Close()
		return tea.Quit, true
	}
	return nil, false
}

// processAction processes an action from the input handler
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	coord := m.coordinator()

	switch a := action.(type) {
	case inputtypes.NavigateAction:
		page := m.catalogPage()
		if page == nil {
			return nil
		}
		return m.loadRelated(page, coord.MoveCursor(navigation.Direction(a.Direction)))

	case inputtypes.SwitchViewAction:
		return m.switchView(a)

	case inputtypes.ChangeModeAction:
		if a.Mode == inputtypes.ModeSearch && coord != nil {
			m.searchOrigin = coord.Search.GetQuery()
		}
		return nil

	case inputtypes.UpdateTextAction:
		if coord != nil {
			coord.SetQuery(a.Text)
		}
		return nil

	case inputtypes.SubmitTextAction:
		if coord == nil {
			return nil
		}
		coord.SetQuery(a.Text)
		if coord.Search.GetQuery() == "" {
			return nil
		}
		return m.flashStatus(fmt.Sprintf("%d matches", coord.Search.GetMatchCount()), false)

	case inputtypes.CancelTextAction:
		if coord != nil {
			coord.SetQuery(m.searchOrigin)
		}
		return nil

	case inputtypes.FacetNavigateAction:
		if coord == nil {
			return nil
		}
		if a.NextGroup {
			coord.Facets.NextGroup()
		} else {
			coord.Facets.Move(a.Delta)
		}
		return nil

	case inputtypes.ToggleFacetAction:
		if coord != nil {
			coord.ToggleFacet()
		}
		return nil

	case inputtypes.ClearFacetGroupAction:
		if coord != nil {
			coord.ClearFacetGroup()
		}
		return nil

	case inputtypes.ClearFiltersAction:
		if coord == nil {
			return nil
		}
		coord.ClearAll()
		return m.flashStatus("Filters cleared", false)

	case inputtypes.CycleSortAction:
		if coord == nil {
			return nil
		}
		coord.CycleSort()
		return m.flashStatus("Sort: "+coord.Sorting.GetModeString(), false)

	case inputtypes.OpenReferenceAction:
		return m.openReference(domain.Kind(a.Kind))

	case inputtypes.ReloadRelatedAction:
		page := m.catalogPage()
		if page == nil {
			return nil
		}
		return m.loadRelated(page, coord.Selection.Reload())

	case inputtypes.ReloadCatalogAction:
		return m.reloadCatalogCmd()

	case inputtypes.ScrollDetailAction:
		if a.Lines > 0 {
			m.body.ScrollDown(a.Lines)
		} else {
			m.body.ScrollUp(-a.Lines)
		}
		return nil

	case inputtypes.OpenPagerAction:
		return m.openPager()

	case inputtypes.HelpPagerAction:
		if cmd := m.showInPager("help", views.HelpText()); cmd != nil {
			return cmd
		}
		// no terminal to hand over, e.g. under test
		m.showHelp = true
		m.helpScroll = 0
		return nil

	case inputtypes.ToggleHelpAction:
		m.showHelp = !m.showHelp
		m.helpScroll = 0
		return nil

	case inputtypes.QuitAction:
		return func() tea.Msg { return quitMsg{} }
	}

	slog.Debug("ui: unhandled action", "type", action.Type())
	return nil
}

func (m *Model) handleHelpKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c":
		return func() tea.Msg { return quitMsg{} }
	case "esc", "?", "q":
		m.showHelp = false
		m.helpScroll = 0
	case "up", "k":
		m.helpScroll = max(m.helpScroll-1, 0)
	case "down", "j":
		m.helpScroll++
	}
	return nil
}

func (m *Model) switchView(a inputtypes.SwitchViewAction) tea.Cmd {
	table := m.router.Table()
	target := m.router.Current()
	if a.Key != "" {
		entry, ok := table.ByKey(a.Key)
		if !ok {
			return nil
		}
		target = entry.View
	} else {
		target = table.Step(target, a.Delta)
	}
	if target == m.router.Current() {
		return nil
	}

	if err := m.router.SetView(target); err != nil {
		slog.Error("ui: switch view", "view", target, "error", err)
		return m.flashStatus(err.Error(), true)
	}
	return m.afterTransition()
}

func (m *Model) openReference(kind domain.Kind) tea.Cmd {
	page := m.catalogPage()
	if page == nil {
		return nil
	}
	ref, ok := page.Reference(kind)
	if !ok {
		return m.flashStatus(fmt.Sprintf("No %s to open", kind), true)
	}
	if err := m.router.OpenItem(ref); err != nil {
		slog.Warn("ui: open item", "ref", ref, "error", err)
		return m.flashStatus(fmt.Sprintf("Cannot open %s: %v", ref, err), true)
	}
	return m.afterTransition()
}

// afterTransition resets per-page UI state and starts the related load the
// new page queued while it was attached
func (m *Model) afterTransition() tea.Cmd {
	m.inputHandler.Reset()
	m.bodyKey = ""
	m.body.GotoTop()
	m.syncLayout()

	page := m.catalogPage()
	if page == nil {
		return nil
	}
	return m.loadRelated(page, page.TakePending())
}

// loadRelated runs task off the UI loop and animates the spinner meanwhile
func (m *Model) loadRelated(page relatedTarget, task *selection.Task) tea.Cmd {
	if task == nil {
		return nil
	}
	return tea.Batch(
		func() tea.Msg { return relatedLoadedMsg{page: page, result: task.Run()} },
		m.spinner.Tick,
	)
}

func (m *Model) reloadCatalogCmd() tea.Cmd {
	if m.reloadCatalog == nil {
		return m.flashStatus("Built-in catalog, nothing to reload", false)
	}
	reload := m.reloadCatalog
	m.SetStatus("Reloading catalog...", false)
	return func() tea.Msg { return catalogReloadedMsg{err: reload()} }
}

func (m *Model) openPager() tea.Cmd {
	width := max(m.width-2, 40)

	var what, content string
	switch page := m.router.Page().(type) {
	case *pages.CatalogPage:
		d := page.Detail("")
		if d == nil {
			return m.flashStatus("Nothing selected", false)
		}
		md := views.ItemMarkdown(*d)
		if d.Related.Supported && len(d.Related.Items) > 0 {
			md += "\n" + views.RelatedMarkdown(d.Related.Items)
		}
		what, content = d.Item.Ref().String(), m.renderer.Markdown().Render(md, width)
	case pages.MarkdownPage:
		what, content = page.View().String(), m.renderer.Markdown().Render(page.Markdown(), width)
	default:
		return nil
	}

	if cmd := m.showInPager(what, content); cmd != nil {
		return cmd
	}
	return m.flashStatus("Pager unavailable", true)
}

func (m *Model) flashStatus(message string, isError bool) tea.Cmd {
	m.SetStatus(message, isError)
	return tea.Tick(statusTTL, func(time.Time) tea.Msg { return handlers.ClearStatusMsg{} })
}

func (m *Model) catalogPage() *pages.CatalogPage {
	page, _ := m.router.Page().(*pages.CatalogPage)
	return page
}

func (m *Model) coordinator() *coordinator.Coordinator {
	if page := m.catalogPage(); page != nil {
		return page.Coordinator()
	}
	return nil
}

func (m *Model) loading() bool {
	coord := m.coordinator()
	return coord != nil && coord.Selection.IsLoading()
}

func (m *Model) showFacets() bool {
	if m.catalogPage() == nil {
		return false
	}
	if m.inputHandler.CurrentMode() == inputtypes.ModeFacets {
		return true
	}
	return m.router.Display().Wide() && m.width >= facetAutoWidth
}

func (m *Model) layout() views.Layout {
	return views.ComputeLayout(m.width, m.height, m.showFacets(), m.inputHandler.Prompt() != "")
}

// syncLayout sizes the list window and the body viewport
func (m *Model) syncLayout() {
	layout := m.layout()
	if coord := m.coordinator(); coord != nil {
		coord.SetViewportHeight(layout.ListHeight())
		m.body.Width, m.body.Height = layout.PanelInner(layout.DetailWidth)
		return
	}
	m.body.Width = max(m.width-2, 10)
	m.body.Height = layout.BodyHeight
}

// refreshBody re-renders the detail pane or the markdown page into the body
// viewport
func (m *Model) refreshBody() {
	if m.width == 0 || m.body.Width <= 0 {
		return
	}

	var key, content string
	switch page := m.router.Page().(type) {
	case *pages.CatalogPage:
		d := page.Detail(m.spinner.View())
		key = page.View().String() + "/"
		if d != nil {
			key += d.Item.ID
		}
		content = m.renderer.RenderDetail(d, m.body.Width)
	case pages.MarkdownPage:
		key = page.View().String()
		content = m.renderer.Markdown().Render(page.Markdown(), m.body.Width)
	default:
		return
	}

	m.body.SetContent(content)
	if key != m.bodyKey {
		m.bodyKey = key
		m.body.GotoTop()
	}
}

// View renders the UI
func (m *Model) View() string {
	if m.inPagerMode {
		return ""
	}
	if m.width == 0 {
		return "Loading..."
	}

	current := m.router.Current()
	entries := m.router.Table().Entries()
	menu := make([]views.MenuEntry, 0, len(entries))
	for _, e := range entries {
		menu = append(menu, views.MenuEntry{MenuID: e.MenuID, Label: e.Label, Key: e.Key, Active: e.View == current})
	}

	state := views.ViewState{
		Width:            m.width,
		Height:           m.height,
		Menu:             menu,
		ExpandMenu:       m.router.Display().Wide() && m.width > m.config.UISettings.MenuExpandWidth,
		Route:            m.router.Route(),
		Mode:             m.inputHandler.CurrentMode().String(),
		StatusMessage:    m.statusMessage,
		StatusIsError:    m.statusIsError,
		ShowHelp:         m.showHelp,
		HelpScrollOffset: m.helpScroll,
		HelpModel:        m.help,
	}
	if prompt := m.inputHandler.Prompt(); prompt != "" {
		if ti := m.inputHandler.TextInput(); ti != nil {
			state.Prompt = prompt + ti.View()
		}
	}

	if coord := m.coordinator(); coord != nil {
		state.Catalog = m.catalogView(coord)
	} else {
		state.Body = m.body.View()
	}

	return m.renderer.Render(state)
}

func (m *Model) catalogView(coord *coordinator.Coordinator) *views.CatalogView {
	snap := coord.Snapshot()
	start, end := coord.Navigation.Window()
	cursor := coord.GetCurrentIndex()

	list := views.ListState{
		Offset: start,
		Count:  coord.Query.Count(),
		Total:  snap.Total,
		Query:  snap.Query,
	}
	for _, row := range coord.Query.Rows(start, end) {
		list.Rows = append(list.Rows, views.ListRow{
			Title:    row.Item.Title,
			Meta:     itemMeta(row.Item),
			Cursor:   row.Index == cursor,
			Selected: row.Selected,
		})
	}

	facetRows := coord.Facets.Rows()
	return &views.CatalogView{
		List: list,
		Facets: views.FacetState{
			Rows:       facetRows,
			Cursor:     coord.Facets.GetCursor(),
			Focused:    m.inputHandler.CurrentMode() == inputtypes.ModeFacets,
			ShowCounts: m.config.UISettings.ShowFacetCounts,
		},
		ShowFacets:    m.showFacets(),
		FilterSummary: views.FilterSummary(facetRows),
		Sort:          coord.Sorting.GetModeString(),
		Detail:        m.body.View(),
	}
}

// itemMeta is the dim text after a list row's title
func itemMeta(it domain.Item) string {
	if !it.Date.IsZero() {
		return it.Date.Format("2006-01-02")
	}
	return it.Summary
}
