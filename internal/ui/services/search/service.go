package search

import (
	"log/slog"
	"strings"

	"contentbrowser/internal/ui/services/events"
)

// Service holds the free-text query of one page. Applying a query goes
// through applyFn, which feeds the filter engine and returns the number of
// rows left.
type Service struct {
	state   *State
	bus     events.EventBus
	applyFn func(string) int
}

// NewService creates a new search service
func NewService(bus events.EventBus) *Service {
	return &Service{
		state: &State{},
		bus:   bus,
	}
}

// SetApplyFunction sets the function that applies a query
func (s *Service) SetApplyFunction(fn func(string) int) {
	s.applyFn = fn
}

// StartSearch applies query; an identical query is not reapplied
func (s *Service) StartSearch(query string) {
	s.state.Draft = query
	if query == s.state.Query {
		return
	}
	if strings.TrimSpace(query) == "" {
		s.clearSearch()
		return
	}

	s.state.Query = query
	s.bus.Publish(SearchStartedEvent{Query: query})
	s.performSearch()
}

// ClearSearch clears the current search
func (s *Service) ClearSearch() {
	s.state.Draft = ""
	if s.state.Query == "" {
		return
	}
	s.clearSearch()
}

// GetQuery returns the current search query
func (s *Service) GetQuery() string {
	return s.state.Query
}

// GetDraft returns the text last typed in the prompt
func (s *Service) GetDraft() string {
	return s.state.Draft
}

// GetMatchCount returns the number of rows matching the query
func (s *Service) GetMatchCount() int {
	return s.state.Matches
}

// Sync adopts a query that was changed elsewhere, e.g. cleared with the facets
func (s *Service) Sync(query string, matches int) {
	s.state.Query = query
	s.state.Draft = query
	s.state.Matches = matches
}

// ShouldHighlight reports whether text contains the query
func (s *Service) ShouldHighlight(text string) bool {
	q := strings.TrimSpace(s.state.Query)
	if q == "" {
		return false
	}
	return strings.Contains(strings.ToLower(text), strings.ToLower(q))
}

func (s *Service) performSearch() {
	if s.applyFn == nil {
		return
	}
	s.state.Matches = s.applyFn(s.state.Query)
	slog.Debug("search: applied", "query", s.state.Query, "matches", s.state.Matches)

	s.bus.Publish(SearchCompletedEvent{
		Query:      s.state.Query,
		MatchCount: s.state.Matches,
	})
}

func (s *Service) clearSearch() {
	s.state.Query = ""
	if s.applyFn != nil {
		s.state.Matches = s.applyFn("")
	}
	s.bus.Publish(SearchClearedEvent{})
}
