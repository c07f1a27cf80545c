package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"contentbrowser/internal/ui/services/events"
)

func newNav(count, page int) (*Service, *events.Recorder, *int) {
	bus := events.NewRecorder()
	n := count
	s := NewService(bus, page)
	s.SetCountFunction(func() int { return n })
	return s, bus, &n
}

func TestNavigateWithinBounds(t *testing.T) {
	s, _, _ := newNav(5, 3)

	s.Navigate(DirectionUp)
	assert.Equal(t, 0, s.GetCursor())

	s.Navigate(DirectionDown)
	s.Navigate(DirectionDown)
	assert.Equal(t, 2, s.GetCursor())

	s.Navigate(DirectionEnd)
	assert.Equal(t, 4, s.GetCursor())
	s.Navigate(DirectionDown)
	assert.Equal(t, 4, s.GetCursor())

	s.Navigate(DirectionHome)
	assert.Equal(t, 0, s.GetCursor())
}

func TestWindowFollowsCursor(t *testing.T) {
	s, bus, _ := newNav(50, 20)

	start, end := s.Window()
	assert.Equal(t, 0, start)
	assert.Equal(t, 20, end)

	s.MoveToIndex(25)
	start, end = s.Window()
	assert.Equal(t, 6, start)
	assert.Equal(t, 26, end)

	s.Navigate(DirectionPageUp)
	assert.Equal(t, 6, s.GetCursor())
	assert.Equal(t, 6, s.GetViewportOffset())

	assert.Contains(t, bus.Events, CursorMovedEvent{OldIndex: 0, NewIndex: 25})
	assert.Contains(t, bus.Events, ViewportChangedEvent{Offset: 6, Height: 20})
}

func TestClampAfterResultShrinks(t *testing.T) {
	s, _, n := newNav(30, 10)
	s.MoveToIndex(29)
	assert.Equal(t, 20, s.GetViewportOffset())

	*n = 4
	s.Clamp()
	assert.Equal(t, 3, s.GetCursor())
	assert.Equal(t, 0, s.GetViewportOffset())

	*n = 0
	s.Clamp()
	assert.Equal(t, 0, s.GetCursor())
	start, end := s.Window()
	assert.Equal(t, 0, start)
	assert.Equal(t, 0, end)
}

func TestViewportHeightChange(t *testing.T) {
	s, _, _ := newNav(40, 20)
	s.MoveToIndex(15)
	s.SetViewportHeight(5)
	assert.Equal(t, 11, s.GetViewportOffset())
	assert.Equal(t, 5, s.GetViewportHeight())

	s.Reset()
	assert.Equal(t, 0, s.GetCursor())
	assert.Equal(t, 0, s.GetViewportOffset())
}
