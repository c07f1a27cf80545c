package ui

import (
	"contentbrowser/internal/eventbus"
	"contentbrowser/internal/ui/services/selection"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// relatedLoadedMsg carries a finished related-content load back to the page
// that started it
type relatedLoadedMsg struct {
	page   relatedTarget
	result selection.Result
}

// catalogReloadedMsg reports the outcome of re-reading the catalog file
type catalogReloadedMsg struct {
	err error
}

// pagerMsg reports the end of an external pager session
type pagerMsg struct {
	what string
	err  error
}

// quitMsg signals that the application should quit
type quitMsg struct{}

// pauseRenderingMsg signals to pause Bubble Tea rendering
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals to resume Bubble Tea rendering
type resumeRenderingMsg struct{}
