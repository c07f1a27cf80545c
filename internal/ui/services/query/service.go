package query

import (
	"contentbrowser/internal/domain"
	"contentbrowser/internal/facet"
)

// Service answers index questions about the current filtered result. It
// reads the engine snapshot on every call, so it never holds stale rows.
type Service struct {
	snapshotFn func() *facet.Snapshot
	selectedFn func() string
}

// NewService creates a new query service over snapshotFn
func NewService(snapshotFn func() *facet.Snapshot) *Service {
	return &Service{snapshotFn: snapshotFn}
}

// SetSelectedFunction sets the function returning the selected id
func (s *Service) SetSelectedFunction(fn func() string) {
	s.selectedFn = fn
}

// Count returns the number of rows in the filtered result
func (s *Service) Count() int {
	return len(s.items())
}

// GetMaxIndex returns the maximum selectable index
func (s *Service) GetMaxIndex() int {
	if n := s.Count(); n > 0 {
		return n - 1
	}
	return 0
}

// GetItemAtIndex returns the item at index
func (s *Service) GetItemAtIndex(index int) (domain.Item, bool) {
	items := s.items()
	if index < 0 || index >= len(items) {
		return domain.Item{}, false
	}
	return items[index], true
}

// GetIndexInfo returns information about the row at index, nil if out of range
func (s *Service) GetIndexInfo(index int) *IndexInfo {
	it, ok := s.GetItemAtIndex(index)
	if !ok {
		return nil
	}
	return &IndexInfo{
		Index:    index,
		Item:     it,
		Selected: s.selectedFn != nil && s.selectedFn() == it.ID,
	}
}

// GetIndexForItem finds the index of id, -1 when it is not in the result
func (s *Service) GetIndexForItem(id string) int {
	snap := s.snapshotFn()
	if snap == nil {
		return -1
	}
	return snap.Index(id)
}

// Rows returns the infos of the half-open range [start, end)
func (s *Service) Rows(start, end int) []IndexInfo {
	items := s.items()
	start = max(start, 0)
	end = min(end, len(items))
	rows := make([]IndexInfo, 0, max(end-start, 0))
	for i := start; i < end; i++ {
		rows = append(rows, *s.GetIndexInfo(i))
	}
	return rows
}

func (s *Service) items() []domain.Item {
	snap := s.snapshotFn()
	if snap == nil {
		return nil
	}
	return snap.Items
}
