package sorting

import (
	"contentbrowser/internal/facet"
	"contentbrowser/internal/ui/services/events"
)

// Service handles the sort order of the filtered result
type Service struct {
	state   *State
	bus     events.EventBus
	applyFn func(facet.SortMode) // hands the mode to the engine
}

// NewService creates a new sorting service starting in catalog order
func NewService(bus events.EventBus) *Service {
	return &Service{
		state: &State{
			CurrentMode: facet.SortCatalog,
		},
		bus: bus,
	}
}

// SetApplyFunction sets the function applying a sort mode
func (s *Service) SetApplyFunction(fn func(facet.SortMode)) {
	s.applyFn = fn
}

// GetCurrentMode returns the current sort mode
func (s *Service) GetCurrentMode() facet.SortMode {
	return s.state.CurrentMode
}

// SetMode sets the sort mode
func (s *Service) SetMode(mode facet.SortMode) {
	if mode == s.state.CurrentMode {
		return
	}

	oldMode := s.state.CurrentMode
	s.state.CurrentMode = mode
	if s.applyFn != nil {
		s.applyFn(mode)
	}

	s.bus.Publish(SortModeChangedEvent{
		OldMode: oldMode,
		NewMode: mode,
	})
}

// NextMode cycles to the next sort mode
func (s *Service) NextMode() {
	s.SetMode(s.state.CurrentMode.Next())
}

// GetModeString returns a string representation of the current mode
func (s *Service) GetModeString() string {
	return s.state.CurrentMode.String()
}
