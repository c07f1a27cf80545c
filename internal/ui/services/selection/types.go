package selection

import (
	"errors"

	"contentbrowser/internal/domain"
	"contentbrowser/internal/loader"
)

// ErrNotInResult is returned when selecting an item outside the filtered result
var ErrNotInResult = errors.New("item is not in the filtered result")

// Task loads the related content of one selected item
type Task = loader.Task[domain.Item, []domain.Related]

// Result is the outcome of a Task
type Result = loader.Result[[]domain.Related]

// State holds selection state
type State struct {
	Selected   *domain.Item
	Related    []domain.Related
	RelatedErr error
	Loading    bool
}

// Event types
type SelectionChangedEvent struct {
	Previous string // empty when nothing was selected
	Current  string // empty when the selection was cleared
}

type SelectionClearedEvent struct {
	ID     string
	Reason string
}

type RelatedAppliedEvent struct {
	ID    string
	Count int
	Err   error
}
