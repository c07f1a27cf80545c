package views

import (
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

// MarkdownRenderer renders item detail markdown. Renderers are cached per
// wrap width; a fixed standard style keeps glamour from querying the terminal.
type MarkdownRenderer struct {
	style string

	mu    sync.Mutex
	cache map[string]*glamour.TermRenderer
}

// NewMarkdownRenderer creates a renderer using one of glamour's standard
// styles ("dark", "light", "notty", ...)
func NewMarkdownRenderer(style string) *MarkdownRenderer {
	if style == "" {
		style = "dark"
	}
	return &MarkdownRenderer{style: style, cache: make(map[string]*glamour.TermRenderer)}
}

// Render returns md rendered for width columns, or md itself if glamour fails
func (m *MarkdownRenderer) Render(md string, width int) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	if width < 10 {
		width = 10
	}

	r, err := m.renderer(width)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}

func (m *MarkdownRenderer) renderer(width int) (*glamour.TermRenderer, error) {
	key := m.style + ":" + strconv.Itoa(width)

	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.cache[key]; ok {
		return r, nil
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(m.style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	m.cache[key] = r
	return r, nil
}
