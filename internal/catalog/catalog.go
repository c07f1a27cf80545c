package catalog

import (
	"maps"
	"slices"
	"sync"

	"contentbrowser/internal/domain"
	"contentbrowser/internal/eventbus"
)

// Change describes one committed mutation of a kind's ordered sequence
type Change struct {
	Kind    domain.Kind
	Op      domain.ChangeOp
	IDs     []string
	Version uint64
}

// Observer receives changes after they are committed
type Observer func(Change)

// Source is the read side of the catalog used by the filter engine and related loaders
type Source interface {
	Items(kind domain.Kind) []domain.Item
	ResolveReference(kind domain.Kind, id string) (domain.Item, bool)
}

// Observable is a Source that notifies about changes
type Observable interface {
	Source
	Observe(kind domain.Kind, fn Observer) ([]domain.Item, func())
}

// Catalog is an in-memory, observable collection of items per kind.
// Items are never mutated in place; readers always get copies of the sequence.
type Catalog struct {
	mu        sync.RWMutex
	items     map[domain.Kind][]domain.Item
	index     map[domain.Kind]map[string]int
	version   uint64
	observers map[domain.Kind]map[uint64]Observer
	nextID    uint64
	bus       eventbus.EventBus
}

// New creates an empty catalog. bus may be nil.
func New(bus eventbus.EventBus) *Catalog {
	return &Catalog{
		items:     make(map[domain.Kind][]domain.Item),
		index:     make(map[domain.Kind]map[string]int),
		observers: make(map[domain.Kind]map[uint64]Observer),
		bus:       bus,
	}
}

// Items returns a copy of the ordered sequence for kind
func (c *Catalog) Items(kind domain.Kind) []domain.Item {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.copyOf(kind)
}

func (c *Catalog) copyOf(kind domain.Kind) []domain.Item {
	src := c.items[kind]
	out := make([]domain.Item, len(src))
	copy(out, src)
	return out
}

// Get returns the item with id of the given kind
func (c *Catalog) Get(kind domain.Kind, id string) (domain.Item, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	pos, ok := c.index[kind][id]
	if !ok {
		return domain.Item{}, false
	}
	return c.items[kind][pos], true
}

// ResolveReference looks up a cross-referenced entity (person, company, ...)
func (c *Catalog) ResolveReference(kind domain.Kind, id string) (domain.Item, bool) {
	if id == "" {
		return domain.Item{}, false
	}
	return c.Get(kind, id)
}

// Counts returns the number of items per kind
func (c *Catalog) Counts() map[domain.Kind]int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[domain.Kind]int, len(c.items))
	for k, items := range c.items {
		out[k] = len(items)
	}
	return out
}

// Version returns the number of committed mutations
func (c *Catalog) Version() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.version
}

// Observe registers fn for changes of kind and returns the current sequence
// together with an unsubscribe function. The snapshot and the registration
// are taken atomically, so no change is missed or seen twice.
func (c *Catalog) Observe(kind domain.Kind, fn Observer) ([]domain.Item, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextID++
	id := c.nextID
	if c.observers[kind] == nil {
		c.observers[kind] = make(map[uint64]Observer)
	}
	c.observers[kind][id] = fn

	return c.copyOf(kind), func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.observers[kind], id)
	}
}

// Append adds items to the end of kind's sequence. An item whose id is
// already present replaces the existing record in place.
func (c *Catalog) Append(kind domain.Kind, items ...domain.Item) {
	if len(items) == 0 {
		return
	}
	c.mu.Lock()
	ids := make([]string, 0, len(items))
	for _, it := range items {
		it.Kind = kind
		c.put(kind, it)
		ids = append(ids, it.ID)
	}
	change := c.commit(kind, domain.ChangeAppend, ids)
	c.mu.Unlock()

	c.notify(change)
}

// Remove deletes the items with the given ids
func (c *Catalog) Remove(kind domain.Kind, ids ...string) {
	c.mu.Lock()
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		if _, ok := c.index[kind][id]; ok {
			drop[id] = true
		}
	}
	if len(drop) == 0 {
		c.mu.Unlock()
		return
	}

	kept := make([]domain.Item, 0, len(c.items[kind])-len(drop))
	removed := make([]string, 0, len(drop))
	for _, it := range c.items[kind] {
		if drop[it.ID] {
			removed = append(removed, it.ID)
			continue
		}
		kept = append(kept, it)
	}
	c.setAll(kind, kept)
	change := c.commit(kind, domain.ChangeRemove, removed)
	c.mu.Unlock()

	c.notify(change)
}

// Replace swaps kind's whole sequence
func (c *Catalog) Replace(kind domain.Kind, items []domain.Item) {
	c.mu.Lock()
	fresh := make([]domain.Item, 0, len(items))
	for _, it := range items {
		it.Kind = kind
		fresh = append(fresh, it)
	}
	c.setAll(kind, fresh)
	ids := make([]string, 0, len(fresh))
	for _, it := range c.items[kind] {
		ids = append(ids, it.ID)
	}
	change := c.commit(kind, domain.ChangeReplace, ids)
	c.mu.Unlock()

	c.notify(change)
}

// Load makes items the whole catalog, keeping their relative order. Kinds
// that held items before but have none in items are emptied.
func (c *Catalog) Load(items []domain.Item) {
	c.mu.RLock()
	var stale []domain.Kind
	for _, k := range slices.Sorted(maps.Keys(c.items)) {
		if len(c.items[k]) > 0 {
			stale = append(stale, k)
		}
	}
	c.mu.RUnlock()

	byKind := make(map[domain.Kind][]domain.Item)
	var order []domain.Kind
	for _, it := range items {
		if _, seen := byKind[it.Kind]; !seen {
			order = append(order, it.Kind)
		}
		byKind[it.Kind] = append(byKind[it.Kind], it)
	}
	for _, k := range order {
		c.Replace(k, byKind[k])
	}
	for _, k := range stale {
		if _, ok := byKind[k]; !ok {
			c.Replace(k, nil)
		}
	}
}

// put inserts or overwrites one item; caller holds the write lock
func (c *Catalog) put(kind domain.Kind, it domain.Item) {
	if c.index[kind] == nil {
		c.index[kind] = make(map[string]int)
	}
	if pos, ok := c.index[kind][it.ID]; ok {
		c.items[kind][pos] = it
		return
	}
	c.items[kind] = append(c.items[kind], it)
	c.index[kind][it.ID] = len(c.items[kind]) - 1
}

// setAll replaces a sequence, dropping duplicate ids after the first; caller holds the write lock
func (c *Catalog) setAll(kind domain.Kind, items []domain.Item) {
	idx := make(map[string]int, len(items))
	out := make([]domain.Item, 0, len(items))
	for _, it := range items {
		if _, dup := idx[it.ID]; dup {
			continue
		}
		idx[it.ID] = len(out)
		out = append(out, it)
	}
	c.items[kind] = out
	c.index[kind] = idx
}

func (c *Catalog) commit(kind domain.Kind, op domain.ChangeOp, ids []string) Change {
	c.version++
	return Change{Kind: kind, Op: op, IDs: ids, Version: c.version}
}

func (c *Catalog) notify(change Change) {
	c.mu.RLock()
	observers := make([]Observer, 0, len(c.observers[change.Kind]))
	for _, fn := range c.observers[change.Kind] {
		observers = append(observers, fn)
	}
	c.mu.RUnlock()

	for _, fn := range observers {
		fn(change)
	}

	if c.bus != nil {
		c.bus.Publish(eventbus.CatalogChangedEvent{
			Kind:    change.Kind,
			Op:      change.Op,
			IDs:     change.IDs,
			Version: change.Version,
		})
	}
}
