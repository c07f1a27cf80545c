package selection

import (
	"fmt"
	"log/slog"
	"time"

	"contentbrowser/internal/domain"
	"contentbrowser/internal/loader"
	"contentbrowser/internal/ui/services/events"
)

// Service holds the selected item of one page. The selection is either empty
// or an item of the current filtered result, and every change cancels the
// related-content load of the previous selection.
type Service struct {
	state      *State
	bus        events.EventBus
	slot       *loader.Slot[domain.Item, []domain.Related]
	supportsFn func(domain.Kind) bool // kinds with related content
	containsFn func(id string) bool   // membership in the filtered result
}

// NewService creates a new selection service. fetch may be nil when the page
// has no related content.
func NewService(bus events.EventBus, fetch loader.FetchFunc[domain.Item, []domain.Related], timeout time.Duration) *Service {
	s := &Service{
		state: &State{},
		bus:   bus,
	}
	if fetch != nil {
		s.slot = loader.NewSlot(fetch, timeout)
	}
	return s
}

// SetSupportsFunction sets the function deciding which kinds load related content
func (s *Service) SetSupportsFunction(fn func(domain.Kind) bool) {
	s.supportsFn = fn
}

// SetContainsFunction sets the function testing membership in the filtered result
func (s *Service) SetContainsFunction(fn func(id string) bool) {
	s.containsFn = fn
}

// Selected returns the selected item
func (s *Service) Selected() (domain.Item, bool) {
	if s.state.Selected == nil {
		return domain.Item{}, false
	}
	return *s.state.Selected, true
}

// SelectedID returns the id of the selected item, "" when empty
func (s *Service) SelectedID() string {
	if s.state.Selected == nil {
		return ""
	}
	return s.state.Selected.ID
}

// Related returns the related content of the selection and the load error
func (s *Service) Related() ([]domain.Related, error) {
	return s.state.Related, s.state.RelatedErr
}

// IsLoading reports whether a related-content load is in flight
func (s *Service) IsLoading() bool {
	return s.state.Loading
}

// Select makes item the selection. The returned task, if any, must be run off
// the UI loop and its result handed to ApplyRelated. Reselecting the current
// item is a no-op.
func (s *Service) Select(item domain.Item) (*Task, error) {
	if s.containsFn != nil && !s.containsFn(item.ID) {
		return nil, fmt.Errorf("select %s: %w", item.Ref(), ErrNotInResult)
	}
	if s.state.Selected != nil && s.state.Selected.ID == item.ID {
		return nil, nil
	}

	previous := s.SelectedID()
	if s.slot != nil {
		s.slot.Cancel()
	}
	selected := item
	s.state.Selected = &selected
	s.state.Related = nil
	s.state.RelatedErr = nil
	s.state.Loading = false

	var task *Task
	if s.slot != nil && s.supports(item.Kind) {
		task = s.slot.Start(item.ID, item)
		s.state.Loading = true
	}

	s.bus.Publish(SelectionChangedEvent{Previous: previous, Current: item.ID})
	return task, nil
}

// OnFilteredResultChanged clears the selection when it left the result.
// It reports whether the selection was cleared.
func (s *Service) OnFilteredResultChanged(items []domain.Item) bool {
	if s.state.Selected == nil {
		return false
	}
	id := s.state.Selected.ID
	for _, it := range items {
		if it.ID == id {
			return false
		}
	}
	slog.Debug("selection: cleared, item left the result", "id", id)
	s.clear("filtered out")
	return true
}

// Clear empties the selection and cancels its load
func (s *Service) Clear() {
	if s.state.Selected == nil {
		return
	}
	s.clear("cleared")
}

// ApplyRelated publishes a finished load. Results of superseded or canceled
// tasks are dropped; it reports whether r was applied.
func (s *Service) ApplyRelated(r Result) bool {
	if s.slot == nil || !s.slot.Accept(r) {
		return false
	}
	if s.state.Selected == nil || s.state.Selected.ID != r.ID {
		return false
	}
	s.state.Loading = false
	s.state.Related = r.Value
	s.state.RelatedErr = r.Err
	if r.Err != nil {
		slog.Warn("selection: related content failed", "id", r.ID, "error", r.Err)
	}
	s.bus.Publish(RelatedAppliedEvent{ID: r.ID, Count: len(r.Value), Err: r.Err})
	return true
}

// Reload starts a fresh load for the current selection
func (s *Service) Reload() *Task {
	if s.state.Selected == nil || s.slot == nil || !s.supports(s.state.Selected.Kind) {
		return nil
	}
	s.state.Related = nil
	s.state.RelatedErr = nil
	s.state.Loading = true
	return s.slot.Start(s.state.Selected.ID, *s.state.Selected)
}

// Close cancels any load in flight; the selection itself is kept
func (s *Service) Close() {
	if s.slot != nil {
		s.slot.Cancel()
	}
	s.state.Loading = false
}

// SupportsRelated reports whether items of kind have related content
func (s *Service) SupportsRelated(kind domain.Kind) bool {
	return s.slot != nil && s.supports(kind)
}

func (s *Service) supports(kind domain.Kind) bool {
	return s.supportsFn == nil || s.supportsFn(kind)
}

func (s *Service) clear(reason string) {
	id := s.state.Selected.ID
	if s.slot != nil {
		s.slot.Cancel()
	}
	s.state.Selected = nil
	s.state.Related = nil
	s.state.RelatedErr = nil
	s.state.Loading = false
	s.bus.Publish(SelectionClearedEvent{ID: id, Reason: reason})
}
