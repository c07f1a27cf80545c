package navigation

import (
	"contentbrowser/internal/ui/services/events"
)

// Service moves a cursor over the filtered result and keeps it inside a
// window of ViewportHeight rows
type Service struct {
	state   *State
	bus     events.EventBus
	countFn func() int // number of rows in the current result
}

// NewService creates a new navigation service showing pageSize rows
func NewService(bus events.EventBus, pageSize int) *Service {
	if pageSize < 1 {
		pageSize = 20
	}
	return &Service{
		state: &State{ViewportHeight: pageSize},
		bus:   bus,
	}
}

// SetCountFunction sets the function returning the number of rows
func (s *Service) SetCountFunction(fn func() int) {
	s.countFn = fn
}

// GetCursor returns current cursor position
func (s *Service) GetCursor() int {
	return s.state.Cursor
}

// GetViewportOffset returns current viewport offset
func (s *Service) GetViewportOffset() int {
	return s.state.ViewportOffset
}

// GetViewportHeight returns current viewport height
func (s *Service) GetViewportHeight() int {
	return s.state.ViewportHeight
}

// Window returns the half-open range of visible rows
func (s *Service) Window() (start, end int) {
	s.refreshCount()
	start = s.state.ViewportOffset
	end = min(start+s.state.ViewportHeight, s.state.Count)
	return start, max(start, end)
}

// SetViewportHeight updates the number of visible rows
func (s *Service) SetViewportHeight(rows int) {
	s.state.ViewportHeight = max(rows, 1)
	s.ensureVisible()
}

// Navigate handles navigation in a direction
func (s *Service) Navigate(direction Direction) {
	s.refreshCount()
	target := s.state.Cursor
	page := max(s.state.ViewportHeight-1, 1)

	switch direction {
	case DirectionUp:
		target--
	case DirectionDown:
		target++
	case DirectionPageUp:
		target -= page
	case DirectionPageDown:
		target += page
	case DirectionHome:
		target = 0
	case DirectionEnd:
		target = s.state.Count - 1
	}
	s.MoveToIndex(target)
}

// MoveToIndex moves cursor to a specific row
func (s *Service) MoveToIndex(index int) {
	s.refreshCount()
	old := s.state.Cursor
	s.state.Cursor = s.clampIndex(index)
	s.ensureVisible()

	if old != s.state.Cursor {
		s.bus.Publish(CursorMovedEvent{
			OldIndex: old,
			NewIndex: s.state.Cursor,
		})
	}
}

// Clamp keeps the cursor and window valid after the row count changed
func (s *Service) Clamp() {
	s.MoveToIndex(s.state.Cursor)
	if maxOffset := max(s.state.Count-s.state.ViewportHeight, 0); s.state.ViewportOffset > maxOffset {
		s.setOffset(maxOffset)
	}
}

// Reset moves back to the first row
func (s *Service) Reset() {
	s.state.Cursor = 0
	s.setOffset(0)
}

func (s *Service) refreshCount() {
	if s.countFn != nil {
		s.state.Count = s.countFn()
	}
}

func (s *Service) clampIndex(index int) int {
	if index > s.state.Count-1 {
		index = s.state.Count - 1
	}
	if index < 0 {
		return 0
	}
	return index
}

func (s *Service) ensureVisible() {
	if s.state.Cursor < s.state.ViewportOffset {
		s.setOffset(s.state.Cursor)
	} else if s.state.Cursor >= s.state.ViewportOffset+s.state.ViewportHeight {
		s.setOffset(s.state.Cursor - s.state.ViewportHeight + 1)
	}
}

func (s *Service) setOffset(offset int) {
	if offset == s.state.ViewportOffset {
		return
	}
	s.state.ViewportOffset = offset
	s.bus.Publish(ViewportChangedEvent{
		Offset: s.state.ViewportOffset,
		Height: s.state.ViewportHeight,
	})
}
