package domain

import (
	"fmt"
	"strings"
	"time"
)

// Kind identifies the type of a catalog record
type Kind string

const (
	KindVideo    Kind = "video"
	KindBlog     Kind = "blog"
	KindPerson   Kind = "person"
	KindCompany  Kind = "company"
	KindBook     Kind = "book"
	KindLibrary  Kind = "library"
	KindTool     Kind = "tool"
	KindTutorial Kind = "tutorial"
	KindApp      Kind = "app"
	KindNews     Kind = "news"
	KindDownload Kind = "download"
)

// Kinds returns every known kind in catalog file order
func Kinds() []Kind {
	return []Kind{
		KindPerson, KindCompany, KindVideo, KindBlog, KindBook, KindLibrary,
		KindTool, KindTutorial, KindApp, KindNews, KindDownload,
	}
}

// ParseKind resolves a kind name, accepting plural forms ("videos")
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, k := range Kinds() {
		if name == string(k) || name == string(k)+"s" {
			return k, nil
		}
	}
	switch name {
	case "people":
		return KindPerson, nil
	case "companies":
		return KindCompany, nil
	case "libraries":
		return KindLibrary, nil
	}
	return "", fmt.Errorf("unknown item kind %q", s)
}

// Item is one immutable catalog record. Categorical attributes hold single
// tokens or comma-separated token lists.
type Item struct {
	ID          string
	Kind        Kind
	Title       string
	Summary     string
	Description string
	URL         string
	FeedURL     string // blogs only
	Date        time.Time
	PersonIDs   []string
	CompanyID   string
	Attributes  map[string]string
}

// Attr returns the raw value of a categorical attribute ("" if absent)
func (i Item) Attr(name string) string {
	if i.Attributes == nil {
		return ""
	}
	return i.Attributes[name]
}

// Ref returns the item's kind-tagged identifier
func (i Item) Ref() ItemRef {
	return ItemRef{Kind: i.Kind, ID: i.ID}
}

// SearchText returns the fields free-text search looks at for this kind
func (i Item) SearchText() []string {
	switch i.Kind {
	case KindVideo:
		return []string{i.Title, i.Description}
	case KindBlog:
		return []string{i.Title, i.Summary}
	default:
		return []string{i.Title, i.Summary, i.Description}
	}
}

// ItemRef is a kind-tagged identifier used by "open item" requests
type ItemRef struct {
	Kind Kind
	ID   string
}

func (r ItemRef) String() string {
	return string(r.Kind) + "/" + r.ID
}

// Related is one record of secondary content loaded for a selected item,
// e.g. a blog post or a video featuring a person.
type Related struct {
	Title   string
	Link    string
	Date    time.Time
	Summary string
	Source  string   // feed title or "catalog"
	Ref     *ItemRef // set when the record is itself a catalog item
}
