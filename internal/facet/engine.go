package facet

import (
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"

	"contentbrowser/internal/catalog"
	"contentbrowser/internal/domain"
)

// Resolver looks up entities referenced by id. Lookups are best effort.
type Resolver interface {
	ResolveReference(kind domain.Kind, id string) (domain.Item, bool)
}

// Active maps a group name to its active filter labels, in activation order
type Active map[string][]string

// Has reports whether label is active in group
func (a Active) Has(group, label string) bool {
	return slices.Contains(a[group], label)
}

// Len returns the number of active filters across all groups
func (a Active) Len() int {
	n := 0
	for _, labels := range a {
		n += len(labels)
	}
	return n
}

func (a Active) clone() Active {
	out := make(Active, len(a))
	for g, labels := range a {
		if len(labels) > 0 {
			out[g] = slices.Clone(labels)
		}
	}
	return out
}

// without returns a copy of a with group removed
func (a Active) without(group string) Active {
	out := a.clone()
	delete(out, group)
	return out
}

// DeriveGroups scans items once per spec and builds one filter per distinct
// token in first-seen order. Blank values contribute nothing. Reference specs
// resolve ids through resolver and silently drop ids that cannot be resolved.
func DeriveGroups(items []domain.Item, specs []GroupSpec, resolver Resolver) []FilterGroup {
	groups := make([]FilterGroup, 0, len(specs))
	for _, spec := range specs {
		if spec.Reference != nil {
			groups = append(groups, deriveReferenceGroup(items, spec, resolver))
			continue
		}

		group := FilterGroup{Name: spec.Name}
		seen := make(map[string]bool)
		for _, it := range items {
			for _, tok := range spec.tokens(it) {
				if seen[tok] {
					continue
				}
				seen[tok] = true
				group.Filters = append(group.Filters, NewTokenFilter(spec, tok))
			}
		}
		groups = append(groups, group)
	}
	return groups
}

func deriveReferenceGroup(items []domain.Item, spec GroupSpec, resolver Resolver) FilterGroup {
	ref := *spec.Reference
	group := FilterGroup{Name: spec.Name}
	if resolver == nil || ref.IDs == nil {
		return group
	}

	// two entities sharing a display name collapse into one filter
	var labels []string
	idsByLabel := make(map[string][]string)
	seenID := make(map[string]bool)
	for _, it := range items {
		for _, id := range ref.IDs(it) {
			if id == "" || seenID[id] {
				continue
			}
			seenID[id] = true

			target, ok := resolver.ResolveReference(ref.Kind, id)
			if !ok {
				slog.Debug("facet: unresolved reference", "group", spec.Name, "kind", ref.Kind, "id", id)
				continue
			}
			label := target.Title
			if ref.Label != nil {
				label = ref.Label(target)
			}
			if label == "" {
				continue
			}
			if _, ok := idsByLabel[label]; !ok {
				labels = append(labels, label)
			}
			idsByLabel[label] = append(idsByLabel[label], id)
		}
	}
	for _, label := range labels {
		group.Filters = append(group.Filters, NewReferenceFilter(ref, label, idsByLabel[label]...))
	}
	return group
}

// EffectivePredicate combines active filters (OR within a group, AND across
// groups with a selection) with the free-text query. Labels that are not part
// of a group are ignored. text selects the searchable fields of an item.
func EffectivePredicate(groups []FilterGroup, active Active, query string, text func(domain.Item) []string) Predicate {
	var clauses [][]Predicate
	for _, g := range groups {
		var preds []Predicate
		for _, label := range active[g.Name] {
			if f, ok := g.Find(label); ok {
				preds = append(preds, f.Predicate)
			}
		}
		if len(preds) > 0 {
			clauses = append(clauses, preds)
		}
	}
	if text == nil {
		text = domain.Item.SearchText
	}

	return func(it domain.Item) bool {
		if !MatchesQuery(text(it), query) {
			return false
		}
		for _, anyOf := range clauses {
			if !slices.ContainsFunc(anyOf, func(p Predicate) bool { return p(it) }) {
				return false
			}
		}
		return true
	}
}

// FilteredItems returns the items accepted by pred, in catalog order unless
// cmp is given. The input is never modified.
func FilteredItems(items []domain.Item, pred Predicate, cmp Comparator) []domain.Item {
	out := make([]domain.Item, 0, len(items))
	for _, it := range items {
		if pred == nil || pred(it) {
			out = append(out, it)
		}
	}
	if cmp != nil {
		slices.SortStableFunc(out, cmp)
	}
	return out
}

// Snapshot is an immutable, consistent view of one engine's state
type Snapshot struct {
	Kind    domain.Kind
	Groups  []FilterGroup
	Active  Active
	Query   string
	Sort    SortMode
	Items   []domain.Item
	Total   int                       // items before filtering
	Counts  map[string]map[string]int // group -> label -> matches given the other groups
	Version uint64
}

// IsActive reports whether label is active in group
func (s *Snapshot) IsActive(group, label string) bool {
	return s.Active.Has(group, label)
}

// Index returns the position of id in the filtered result, or -1
func (s *Snapshot) Index(id string) int {
	return slices.IndexFunc(s.Items, func(it domain.Item) bool { return it.ID == id })
}

// Contains reports whether id is part of the filtered result
func (s *Snapshot) Contains(id string) bool {
	return s.Index(id) >= 0
}

// Group returns the group named name
func (s *Snapshot) Group(name string) (FilterGroup, bool) {
	for _, g := range s.Groups {
		if g.Name == name {
			return g, true
		}
	}
	return FilterGroup{}, false
}

// Engine owns the filter groups, active filters and query of one kind of one
// injected catalog. Every input change rebuilds the whole snapshot and swaps
// it in one step, so readers never see a partially updated state.
type Engine struct {
	mu       sync.Mutex
	source   catalog.Source
	kind     domain.Kind
	specs    []GroupSpec
	text     func(domain.Item) []string
	items    []domain.Item
	active   Active
	query    string
	sortMode SortMode
	version  uint64

	snap      atomic.Pointer[Snapshot]
	listeners []func(*Snapshot)
	unwatch   func()
}

// NewEngine creates an engine for kind using specs. The catalog contents are
// read once; call Watch to follow changes.
func NewEngine(source catalog.Source, kind domain.Kind, specs []GroupSpec) *Engine {
	e := &Engine{
		source: source,
		kind:   kind,
		specs:  specs,
		text:   domain.Item.SearchText,
		active: make(Active),
	}
	e.mu.Lock()
	e.items = source.Items(kind)
	e.rebuild()
	e.mu.Unlock()
	return e
}

// Kind returns the item kind this engine filters
func (e *Engine) Kind() domain.Kind {
	return e.kind
}

// Snapshot returns the current state. The returned value must not be modified.
func (e *Engine) Snapshot() *Snapshot {
	return e.snap.Load()
}

// OnChange registers fn to be called with every new snapshot
func (e *Engine) OnChange(fn func(*Snapshot)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.listeners = append(e.listeners, fn)
}

// Watch follows catalog changes for the engine's kind. Groups are fully
// rebuilt on every change. Watching again replaces the previous subscription.
func (e *Engine) Watch(obs catalog.Observable) {
	_, unsubscribe := obs.Observe(e.kind, func(catalog.Change) {
		e.Refresh()
	})
	e.update(func() {
		if e.unwatch != nil {
			e.unwatch()
		}
		e.unwatch = unsubscribe
		// re-read instead of using the observe snapshot, a change may already have been applied
		e.items = obs.Items(e.kind)
	})
}

// Close stops watching the catalog
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.unwatch != nil {
		e.unwatch()
		e.unwatch = nil
	}
}

// Refresh re-reads the catalog and rebuilds everything
func (e *Engine) Refresh() *Snapshot {
	return e.update(func() {
		e.items = e.source.Items(e.kind)
	})
}

// Toggle flips one filter. Unknown groups or labels are ignored.
func (e *Engine) Toggle(group, label string) *Snapshot {
	return e.update(func() {
		if !e.exists(group, label) {
			return
		}
		labels := e.active[group]
		if i := slices.Index(labels, label); i >= 0 {
			e.active[group] = slices.Delete(slices.Clone(labels), i, i+1)
		} else {
			e.active[group] = append(slices.Clone(labels), label)
		}
	})
}

// SetActive replaces the active filters of group
func (e *Engine) SetActive(group string, labels ...string) *Snapshot {
	return e.update(func() {
		var keep []string
		for _, l := range labels {
			if e.exists(group, l) && !slices.Contains(keep, l) {
				keep = append(keep, l)
			}
		}
		e.active[group] = keep
	})
}

// ClearGroup deactivates every filter of group
func (e *Engine) ClearGroup(group string) *Snapshot {
	return e.update(func() {
		delete(e.active, group)
	})
}

// ClearAll deactivates every filter and empties the query
func (e *Engine) ClearAll() *Snapshot {
	return e.update(func() {
		e.active = make(Active)
		e.query = ""
	})
}

// SetQuery sets the free-text search
func (e *Engine) SetQuery(q string) *Snapshot {
	return e.update(func() {
		e.query = q
	})
}

// SetSort sets the order of the filtered result
func (e *Engine) SetSort(mode SortMode) *Snapshot {
	return e.update(func() {
		e.sortMode = mode
	})
}

// SetSearchText overrides the fields free-text search looks at
func (e *Engine) SetSearchText(fn func(domain.Item) []string) *Snapshot {
	return e.update(func() {
		if fn == nil {
			fn = domain.Item.SearchText
		}
		e.text = fn
	})
}

func (e *Engine) exists(group, label string) bool {
	snap := e.snap.Load()
	g, ok := snap.Group(group)
	if !ok {
		return false
	}
	_, ok = g.Find(label)
	return ok
}

// update applies mutate, rebuilds the snapshot and notifies listeners
func (e *Engine) update(mutate func()) *Snapshot {
	e.mu.Lock()
	mutate()
	snap := e.rebuild()
	listeners := slices.Clone(e.listeners)
	e.mu.Unlock()

	for _, fn := range listeners {
		fn(snap)
	}
	return snap
}

// rebuild derives groups, prunes vanished active labels and recomputes the
// result. Caller holds mu.
func (e *Engine) rebuild() *Snapshot {
	groups := DeriveGroups(e.items, e.specs, e.source)

	pruned := make(Active)
	for _, g := range groups {
		for _, label := range e.active[g.Name] {
			if _, ok := g.Find(label); ok {
				pruned[g.Name] = append(pruned[g.Name], label)
			}
		}
	}
	e.active = pruned

	pred := EffectivePredicate(groups, e.active, e.query, e.text)
	result := FilteredItems(e.items, pred, e.sortMode.Comparator())

	e.version++
	snap := &Snapshot{
		Kind:    e.kind,
		Groups:  groups,
		Active:  e.active.clone(),
		Query:   e.query,
		Sort:    e.sortMode,
		Items:   result,
		Total:   len(e.items),
		Counts:  counts(e.items, groups, e.active, e.query, e.text),
		Version: e.version,
	}
	e.snap.Store(snap)
	return snap
}

// counts returns, per filter, how many items would match if that filter were
// the only active one of its group
func counts(items []domain.Item, groups []FilterGroup, active Active, query string, text func(domain.Item) []string) map[string]map[string]int {
	out := make(map[string]map[string]int, len(groups))
	for _, g := range groups {
		base := EffectivePredicate(groups, active.without(g.Name), query, text)
		perLabel := make(map[string]int, len(g.Filters))
		for _, it := range items {
			if !base(it) {
				continue
			}
			for _, f := range g.Filters {
				if f.Predicate(it) {
					perLabel[f.Label]++
				}
			}
		}
		out[g.Name] = perLabel
	}
	return out
}
