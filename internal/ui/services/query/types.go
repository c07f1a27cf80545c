package query

import (
	"contentbrowser/internal/domain"
)

// IndexInfo describes the row at a list index
type IndexInfo struct {
	Index int
	Item  domain.Item
	// Selected reports whether the row is the page's selection
	Selected bool
}
