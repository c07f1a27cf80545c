package facet

import (
	"strings"

	"contentbrowser/internal/domain"
)

// Comparator orders two items like cmp.Compare
type Comparator func(a, b domain.Item) int

// SortMode represents different sort modes
type SortMode int

const (
	SortCatalog SortMode = iota // catalog iteration order
	SortByTitle
	SortByNewest
)

// SortModes returns all modes in cycling order
func SortModes() []SortMode {
	return []SortMode{SortCatalog, SortByTitle, SortByNewest}
}

func (m SortMode) String() string {
	switch m {
	case SortByTitle:
		return "title"
	case SortByNewest:
		return "newest"
	default:
		return "catalog"
	}
}

// Next returns the following mode, wrapping around
func (m SortMode) Next() SortMode {
	modes := SortModes()
	return modes[(int(m)+1)%len(modes)]
}

// ParseSortMode resolves a mode name; unknown names are catalog order
func ParseSortMode(s string) SortMode {
	for _, m := range SortModes() {
		if strings.EqualFold(s, m.String()) {
			return m
		}
	}
	return SortCatalog
}

// Comparator returns the ordering for m, nil for catalog order
func (m SortMode) Comparator() Comparator {
	switch m {
	case SortByTitle:
		return byTitle
	case SortByNewest:
		return byNewest
	default:
		return nil
	}
}

func byTitle(a, b domain.Item) int {
	return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
}

// byNewest puts undated items last, ties keep title order
func byNewest(a, b domain.Item) int {
	switch {
	case a.Date.IsZero() && b.Date.IsZero():
		return byTitle(a, b)
	case a.Date.IsZero():
		return 1
	case b.Date.IsZero():
		return -1
	}
	if c := b.Date.Compare(a.Date); c != 0 {
		return c
	}
	return byTitle(a, b)
}
