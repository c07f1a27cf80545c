package facets

import (
	"contentbrowser/internal/facet"
	"contentbrowser/internal/ui/services/events"
)

// Engine is the part of the filter engine the facet panel drives
type Engine interface {
	Snapshot() *facet.Snapshot
	Toggle(group, label string) *facet.Snapshot
	ClearGroup(group string) *facet.Snapshot
	ClearAll() *facet.Snapshot
}

// Service keeps a cursor over the facet panel rows and turns panel
// actions into engine updates
type Service struct {
	state  *State
	bus    events.EventBus
	engine Engine
}

// NewService creates a new facet panel service over engine
func NewService(bus events.EventBus, engine Engine) *Service {
	return &Service{
		state:  &State{},
		bus:    bus,
		engine: engine,
	}
}

// Rows returns the panel rows: one header per group followed by its filters
func (s *Service) Rows() []Row {
	snap := s.engine.Snapshot()
	if snap == nil {
		return nil
	}
	var rows []Row
	for _, g := range snap.Groups {
		header := Row{Type: RowGroup, Group: g.Name, ActiveCount: len(snap.Active[g.Name])}
		rows = append(rows, header)
		for _, f := range g.Filters {
			rows = append(rows, Row{
				Type:   RowFilter,
				Group:  g.Name,
				Label:  f.Label,
				Count:  snap.Counts[g.Name][f.Label],
				Active: snap.IsActive(g.Name, f.Label),
			})
		}
	}
	return rows
}

// GetCursor returns the cursor row, clamped to the current rows
func (s *Service) GetCursor() int {
	s.clamp(len(s.Rows()))
	return s.state.Cursor
}

// Current returns the row under the cursor
func (s *Service) Current() (Row, bool) {
	rows := s.Rows()
	s.clamp(len(rows))
	if len(rows) == 0 {
		return Row{}, false
	}
	return rows[s.state.Cursor], true
}

// Move moves the cursor by delta rows
func (s *Service) Move(delta int) {
	s.state.Cursor += delta
	s.clamp(len(s.Rows()))
}

// NextGroup moves the cursor to the following group header, wrapping
func (s *Service) NextGroup() {
	rows := s.Rows()
	for i := 1; i <= len(rows); i++ {
		j := (s.state.Cursor + i) % len(rows)
		if rows[j].Type == RowGroup {
			s.state.Cursor = j
			return
		}
	}
}

// Toggle flips the filter under the cursor; on a header it clears the group
func (s *Service) Toggle() *facet.Snapshot {
	row, ok := s.Current()
	if !ok {
		return nil
	}
	if row.Type == RowGroup {
		return s.ClearGroup()
	}

	snap := s.engine.Toggle(row.Group, row.Label)
	s.bus.Publish(FilterToggledEvent{
		Group:  row.Group,
		Label:  row.Label,
		Active: snap.IsActive(row.Group, row.Label),
		Result: len(snap.Items),
	})
	return snap
}

// ClearGroup clears the group under the cursor
func (s *Service) ClearGroup() *facet.Snapshot {
	row, ok := s.Current()
	if !ok {
		return nil
	}
	snap := s.engine.ClearGroup(row.Group)
	s.bus.Publish(GroupClearedEvent{Group: row.Group, Result: len(snap.Items)})
	return snap
}

// ClearAll clears every group and the search query
func (s *Service) ClearAll() *facet.Snapshot {
	snap := s.engine.ClearAll()
	s.bus.Publish(AllClearedEvent{Result: len(snap.Items)})
	return snap
}

func (s *Service) clamp(n int) {
	if s.state.Cursor >= n {
		s.state.Cursor = n - 1
	}
	if s.state.Cursor < 0 {
		s.state.Cursor = 0
	}
}
