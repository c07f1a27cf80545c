package facet

import (
	"slices"
	"strings"

	"contentbrowser/internal/domain"
)

// Predicate decides whether an item belongs to a derived view
type Predicate func(domain.Item) bool

// Filter is one toggleable option of a group. Identity is the label within its group.
type Filter struct {
	Label     string
	Predicate Predicate
}

// FilterGroup holds the filters derived from one categorical attribute
type FilterGroup struct {
	Name    string
	Filters []Filter
}

// Labels returns the filter labels in derivation order
func (g FilterGroup) Labels() []string {
	out := make([]string, len(g.Filters))
	for i, f := range g.Filters {
		out[i] = f.Label
	}
	return out
}

// Find returns the filter with label
func (g FilterGroup) Find(label string) (Filter, bool) {
	for _, f := range g.Filters {
		if f.Label == label {
			return f, true
		}
	}
	return Filter{}, false
}

// Accessor reads the raw attribute value a group is derived from
type Accessor func(domain.Item) string

// IDsAccessor reads entity ids referenced by an item
type IDsAccessor func(domain.Item) []string

// ReferenceSpec describes an attribute that holds ids of other catalog entities
type ReferenceSpec struct {
	Kind  domain.Kind
	IDs   IDsAccessor
	Label func(domain.Item) string // defaults to the referenced item's title
}

// GroupSpec describes how one filter group is derived
type GroupSpec struct {
	Name      string
	Accessor  Accessor
	Multi     bool // comma separated value
	Reference *ReferenceSpec
}

// AttrSpec is a group over a named categorical attribute
func AttrSpec(name string, multi bool) GroupSpec {
	return GroupSpec{
		Name:     name,
		Accessor: func(it domain.Item) string { return it.Attr(name) },
		Multi:    multi,
	}
}

// tokens returns the trimmed non-blank tokens of an item for this spec
func (s GroupSpec) tokens(it domain.Item) []string {
	if s.Accessor == nil {
		return nil
	}
	v := s.Accessor(it)
	if !s.Multi {
		v = strings.TrimSpace(v)
		if v == "" {
			return nil
		}
		return []string{v}
	}
	return Tokenize(v)
}

// NewTokenFilter matches items whose raw attribute value contains token,
// ignoring case, so "Java" also matches "JavaOne"
func NewTokenFilter(spec GroupSpec, token string) Filter {
	needle := strings.ToLower(token)
	return Filter{
		Label: token,
		Predicate: func(it domain.Item) bool {
			if spec.Accessor == nil {
				return false
			}
			return strings.Contains(strings.ToLower(spec.Accessor(it)), needle)
		},
	}
}

// NewReferenceFilter matches items referencing any of ids; label is the resolved name
func NewReferenceFilter(ref ReferenceSpec, label string, ids ...string) Filter {
	return Filter{
		Label: label,
		Predicate: func(it domain.Item) bool {
			for _, other := range ref.IDs(it) {
				if slices.Contains(ids, other) {
					return true
				}
			}
			return false
		},
	}
}
