package selection

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contentbrowser/internal/domain"
	"contentbrowser/internal/ui/services/events"
)

func blog(id string) domain.Item {
	return domain.Item{ID: id, Kind: domain.KindBlog, Title: "Blog " + id}
}

func fetchTitle(_ context.Context, it domain.Item) ([]domain.Related, error) {
	if it.ID == "bad" {
		return nil, errors.New("feed down")
	}
	return []domain.Related{{Title: "post of " + it.ID}}, nil
}

func newService(result ...string) (*Service, *events.Recorder) {
	bus := events.NewRecorder()
	s := NewService(bus, fetchTitle, time.Second)
	members := make(map[string]bool)
	for _, id := range result {
		members[id] = true
	}
	s.SetContainsFunction(func(id string) bool { return members[id] })
	return s, bus
}

func TestSelectRejectsItemOutsideResult(t *testing.T) {
	s, _ := newService("a")
	task, err := s.Select(blog("z"))
	assert.ErrorIs(t, err, ErrNotInResult)
	assert.Nil(t, task)
	_, ok := s.Selected()
	assert.False(t, ok)
}

func TestSelectStartsLoadAndApplies(t *testing.T) {
	s, bus := newService("a", "b")
	task, err := s.Select(blog("a"))
	require.NoError(t, err)
	require.NotNil(t, task)
	assert.True(t, s.IsLoading())

	assert.True(t, s.ApplyRelated(task.Run()))
	assert.False(t, s.IsLoading())
	related, err := s.Related()
	require.NoError(t, err)
	assert.Equal(t, "post of a", related[0].Title)

	require.Len(t, bus.Events, 2)
	assert.Equal(t, SelectionChangedEvent{Current: "a"}, bus.Events[0])
	assert.Equal(t, RelatedAppliedEvent{ID: "a", Count: 1}, bus.Events[1])
}

func TestReselectingSameItemKeepsLoad(t *testing.T) {
	s, _ := newService("a")
	first, err := s.Select(blog("a"))
	require.NoError(t, err)

	again, err := s.Select(blog("a"))
	require.NoError(t, err)
	assert.Nil(t, again)
	assert.True(t, s.ApplyRelated(first.Run()))
}

func TestNewSelectionSupersedesPreviousLoad(t *testing.T) {
	s, _ := newService("a", "b")
	first, err := s.Select(blog("a"))
	require.NoError(t, err)
	second, err := s.Select(blog("b"))
	require.NoError(t, err)

	// the old task finishes after the new one started
	stale := first.Run()
	assert.True(t, stale.Canceled)
	assert.False(t, s.ApplyRelated(stale))

	assert.True(t, s.ApplyRelated(second.Run()))
	related, _ := s.Related()
	assert.Equal(t, "post of b", related[0].Title)
	assert.Equal(t, "b", s.SelectedID())
}

func TestLoadErrorBecomesEmptyResult(t *testing.T) {
	s, _ := newService("bad")
	task, err := s.Select(blog("bad"))
	require.NoError(t, err)

	assert.True(t, s.ApplyRelated(task.Run()))
	related, err := s.Related()
	assert.Error(t, err)
	assert.Empty(t, related)
	assert.False(t, s.IsLoading())
}

func TestUnsupportedKindStartsNoLoad(t *testing.T) {
	s, _ := newService("v")
	s.SetSupportsFunction(func(k domain.Kind) bool { return k == domain.KindBlog })

	task, err := s.Select(domain.Item{ID: "v", Kind: domain.KindVideo})
	require.NoError(t, err)
	assert.Nil(t, task)
	assert.False(t, s.IsLoading())
	assert.Equal(t, "v", s.SelectedID())
}

func TestFilteredResultChangeClearsSelection(t *testing.T) {
	s, bus := newService("a", "b")
	task, err := s.Select(blog("a"))
	require.NoError(t, err)

	assert.False(t, s.OnFilteredResultChanged([]domain.Item{blog("b"), blog("a")}))
	assert.Equal(t, "a", s.SelectedID())

	assert.True(t, s.OnFilteredResultChanged([]domain.Item{blog("b")}))
	assert.Equal(t, "", s.SelectedID())
	assert.False(t, s.IsLoading())
	assert.Equal(t, SelectionClearedEvent{ID: "a", Reason: "filtered out"}, bus.Events[len(bus.Events)-1])

	// the canceled load can no longer publish
	assert.False(t, s.ApplyRelated(task.Run()))

	assert.False(t, s.OnFilteredResultChanged(nil))
}

func TestClearAndClose(t *testing.T) {
	s, _ := newService("a")
	task, err := s.Select(blog("a"))
	require.NoError(t, err)

	s.Close()
	assert.Equal(t, "a", s.SelectedID())
	assert.False(t, s.ApplyRelated(task.Run()))

	reload := s.Reload()
	require.NotNil(t, reload)
	assert.True(t, s.ApplyRelated(reload.Run()))

	s.Clear()
	_, ok := s.Selected()
	assert.False(t, ok)
	assert.Nil(t, s.Reload())
}

func TestServiceWithoutFetch(t *testing.T) {
	s := NewService(&events.NullBus{}, nil, 0)
	task, err := s.Select(blog("a"))
	require.NoError(t, err)
	assert.Nil(t, task)
	assert.False(t, s.ApplyRelated(Result{ID: "a", Gen: 1}))
}
