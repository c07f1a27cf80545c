package search

// State holds search state
type State struct {
	Query   string // committed query applied to the engine
	Draft   string // text typed in the prompt, applied as you type
	Matches int    // rows in the result after the last apply
}

// Event types
type SearchStartedEvent struct {
	Query string
}

type SearchCompletedEvent struct {
	Query      string
	MatchCount int
}

type SearchClearedEvent struct{}
