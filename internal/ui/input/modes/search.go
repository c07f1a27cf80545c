package modes

import (
	"github.com/charmbracelet/bubbles/textinput"

	"contentbrowser/internal/ui/input/types"
)

// SearchMode edits the free-text query; every keystroke is applied
type SearchMode struct {
	TextInputMode
}

func NewSearchMode(ti *textinput.Model) *SearchMode {
	return &SearchMode{
		TextInputMode: NewTextInputMode(types.ModeSearch, "search", "Search: ", ti),
	}
}
