package handlers

import (
	"fmt"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"contentbrowser/internal/domain"
	"contentbrowser/internal/eventbus"
)

// statusTTL is how long an event's status message stays on screen
const statusTTL = 3 * time.Second

// ClearStatusMsg clears the status message set by an event
type ClearStatusMsg struct{}

// Refresher is a page that re-reads the catalog items of one kind
type Refresher interface {
	Kind() domain.Kind
	Refresh()
}

// Target is the part of the model the event handler updates
type Target interface {
	// CurrentPage returns the active page, nil before the first transition
	CurrentPage() any
	SetStatus(message string, isError bool)
}

// EventHandler applies domain events to the UI. It runs on the UI loop.
type EventHandler struct {
	target Target
}

// NewEventHandler creates a new event handler
func NewEventHandler(target Target) *EventHandler {
	return &EventHandler{target: target}
}

// HandleEvent processes domain events and returns any necessary commands
func (h *EventHandler) HandleEvent(event eventbus.DomainEvent) tea.Cmd {
	switch e := event.(type) {
	case eventbus.CatalogChangedEvent:
		// hidden pages catch up when they are activated
		if page, ok := h.target.CurrentPage().(Refresher); ok && page.Kind() == e.Kind {
			page.Refresh()
		}
		slog.Debug("ui: catalog changed", "kind", e.Kind, "op", e.Op, "ids", len(e.IDs), "version", e.Version)

	case eventbus.ItemOpenedEvent:
		if !e.Selected {
			h.target.SetStatus(fmt.Sprintf("%s not found", e.Ref), true)
			return clearStatusAfter(statusTTL)
		}

	case eventbus.ErrorEvent:
		h.target.SetStatus(fmt.Sprintf("Error: %s", e.Message), true)
		return clearStatusAfter(statusTTL)

	case eventbus.DisplayChangedEvent:
		h.target.SetStatus(fmt.Sprintf("Display: %s", e.Display), false)
		return clearStatusAfter(statusTTL)

	case eventbus.ConfigSavedEvent:
		h.target.SetStatus(fmt.Sprintf("Config saved to %s", e.Path), false)
		return clearStatusAfter(statusTTL)

	case eventbus.RelatedLoadedEvent:
		// the detail pane shows the outcome
		slog.Debug("ui: related loaded", "ref", e.Ref, "count", e.Count, "error", e.Err)

	case eventbus.ViewChangedEvent:
		slog.Debug("ui: view changed", "from", e.From, "to", e.To, "route", e.Route)
	}

	return nil
}

func clearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return ClearStatusMsg{} })
}
