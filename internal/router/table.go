package router

import (
	"fmt"

	"contentbrowser/internal/domain"
)

// Factory builds the page bound to an entry
type Factory func(Entry) (Page, error)

// Entry binds one view to everything that depends on it. The router and the
// menu both read this table, so there is exactly one place to add a view.
type Entry struct {
	View    domain.View
	Route   string
	MenuID  string // compact menu label
	Label   string // expanded menu label
	Key     string // shortcut, may be empty
	Kind    domain.Kind
	Factory Factory
}

// Table is the ordered dispatch table of all views, in menu order
type Table struct {
	entries []Entry
	byView  map[domain.View]int
}

// DefaultEntries returns the built-in views without page factories
func DefaultEntries() []Entry {
	return []Entry{
		{View: domain.ViewHome, MenuID: "HOME", Label: "Home", Key: "1"},
		{View: domain.ViewNews, MenuID: "NEWS", Label: "Latest News", Key: "2", Kind: domain.KindNews},
		{View: domain.ViewOpenJFX, MenuID: "JFX", Label: "Open JFX", Key: "3"},
		{View: domain.ViewRealWorld, MenuID: "APPS", Label: "Real World Apps", Key: "4", Kind: domain.KindApp},
		{View: domain.ViewPeople, MenuID: "PPL", Label: "People", Key: "5", Kind: domain.KindPerson},
		{View: domain.ViewCompanies, MenuID: "COS", Label: "Companies", Key: "6", Kind: domain.KindCompany},
		{View: domain.ViewBlogs, MenuID: "BLOG", Label: "Blogs", Key: "7", Kind: domain.KindBlog},
		{View: domain.ViewVideos, MenuID: "VID", Label: "Videos", Key: "8", Kind: domain.KindVideo},
		{View: domain.ViewBooks, MenuID: "BOOK", Label: "Books", Key: "9", Kind: domain.KindBook},
		{View: domain.ViewTools, MenuID: "TOOL", Label: "Tools", Kind: domain.KindTool},
		{View: domain.ViewLibraries, MenuID: "LIB", Label: "Libraries", Kind: domain.KindLibrary},
		{View: domain.ViewTutorials, MenuID: "TUT", Label: "Tutorials", Kind: domain.KindTutorial},
		{View: domain.ViewDownloads, MenuID: "DL", Label: "Downloads", Kind: domain.KindDownload},
	}
}

// DefaultTable returns the built-in table
func DefaultTable() *Table {
	t, err := NewTable(DefaultEntries())
	if err != nil {
		panic(err)
	}
	return t
}

// NewTable validates that every view appears exactly once and fills in routes
func NewTable(entries []Entry) (*Table, error) {
	t := &Table{byView: make(map[domain.View]int, len(entries))}
	for _, e := range entries {
		if err := e.View.Validate(); err != nil {
			return nil, err
		}
		if _, dup := t.byView[e.View]; dup {
			return nil, fmt.Errorf("view %s listed twice", e.View)
		}
		if e.Route == "" {
			e.Route = FormatRoute(e.View)
		}
		t.byView[e.View] = len(t.entries)
		t.entries = append(t.entries, e)
	}
	for _, v := range domain.Views() {
		if _, ok := t.byView[v]; !ok {
			return nil, fmt.Errorf("view %s missing from table", v)
		}
	}
	return t, nil
}

// Entries returns the entries in menu order
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Lookup returns the entry of v
func (t *Table) Lookup(v domain.View) (Entry, bool) {
	i, ok := t.byView[v]
	if !ok {
		return Entry{}, false
	}
	return t.entries[i], true
}

// Bind sets f as the factory of every entry that has none
func (t *Table) Bind(f Factory) {
	for i := range t.entries {
		if t.entries[i].Factory == nil {
			t.entries[i].Factory = f
		}
	}
}

// BindView sets the factory of one view
func (t *Table) BindView(v domain.View, f Factory) {
	if i, ok := t.byView[v]; ok {
		t.entries[i].Factory = f
	}
}

// ByKey returns the entry bound to a shortcut key
func (t *Table) ByKey(key string) (Entry, bool) {
	for _, e := range t.entries {
		if e.Key != "" && e.Key == key {
			return e, true
		}
	}
	return Entry{}, false
}

// KindView returns the view owning items of kind
func (t *Table) KindView(kind domain.Kind) (domain.View, bool) {
	for _, e := range t.entries {
		if e.Kind != "" && e.Kind == kind {
			return e.View, true
		}
	}
	return domain.ViewHome, false
}

// Step returns the view delta positions away from v in menu order, wrapping
func (t *Table) Step(v domain.View, delta int) domain.View {
	n := len(t.entries)
	i, ok := t.byView[v]
	if !ok || n == 0 {
		return domain.ViewHome
	}
	return t.entries[((i+delta)%n+n)%n].View
}
