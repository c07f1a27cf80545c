package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contentbrowser/internal/domain"
	"contentbrowser/internal/eventbus"
)

type fakePage struct {
	kind      domain.Kind
	refreshes int
}

func (p *fakePage) Kind() domain.Kind { return p.kind }
func (p *fakePage) Refresh()          { p.refreshes++ }

type fakeTarget struct {
	page    any
	status  string
	isError bool
}

func (t *fakeTarget) CurrentPage() any { return t.page }
func (t *fakeTarget) SetStatus(message string, isError bool) {
	t.status, t.isError = message, isError
}

func TestCatalogChangedRefreshesMatchingPage(t *testing.T) {
	page := &fakePage{kind: domain.KindVideo}
	target := &fakeTarget{page: page}
	h := NewEventHandler(target)

	assert.Nil(t, h.HandleEvent(eventbus.CatalogChangedEvent{Kind: domain.KindVideo, Op: domain.ChangeAppend}))
	assert.Equal(t, 1, page.refreshes)

	h.HandleEvent(eventbus.CatalogChangedEvent{Kind: domain.KindBlog, Op: domain.ChangeAppend})
	assert.Equal(t, 1, page.refreshes, "other kinds leave the page alone")

	// pages without items are ignored
	target.page = "home"
	h.HandleEvent(eventbus.CatalogChangedEvent{Kind: domain.KindVideo})
	assert.Empty(t, target.status)
}

func TestStatusEvents(t *testing.T) {
	tests := []struct {
		name    string
		event   eventbus.DomainEvent
		status  string
		isError bool
	}{
		{
			name:    "item not found",
			event:   eventbus.ItemOpenedEvent{Ref: domain.ItemRef{Kind: domain.KindPerson, ID: "nobody"}},
			status:  "person/nobody not found",
			isError: true,
		},
		{
			name:    "error",
			event:   eventbus.ErrorEvent{Message: "boom"},
			status:  "Error: boom",
			isError: true,
		},
		{
			name:   "display",
			event:  eventbus.DisplayChangedEvent{Display: domain.DisplayPhone},
			status: "Display: phone",
		},
		{
			name:   "config saved",
			event:  eventbus.ConfigSavedEvent{Path: "/tmp/config.toml"},
			status: "Config saved to /tmp/config.toml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := &fakeTarget{}
			cmd := NewEventHandler(target).HandleEvent(tt.event)
			require.NotNil(t, cmd, "status messages clear themselves")
			assert.Equal(t, tt.status, target.status)
			assert.Equal(t, tt.isError, target.isError)
		})
	}
}

func TestQuietEvents(t *testing.T) {
	target := &fakeTarget{}
	h := NewEventHandler(target)

	assert.Nil(t, h.HandleEvent(eventbus.ItemOpenedEvent{Selected: true}))
	assert.Nil(t, h.HandleEvent(eventbus.RelatedLoadedEvent{Count: 3}))
	assert.Nil(t, h.HandleEvent(eventbus.ViewChangedEvent{From: domain.ViewHome, To: domain.ViewBlogs}))
	assert.Empty(t, target.status)
}
