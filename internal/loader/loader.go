// Package loader runs secondary-content fetches off the UI loop with
// single-flight semantics: starting a task for a new key invalidates every
// earlier task of the same slot.
package loader

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"
)

// FetchFunc produces the content for key. It may block and should honor ctx.
type FetchFunc[K, V any] func(ctx context.Context, key K) (V, error)

// Result is the outcome of one task
type Result[V any] struct {
	ID       string
	Gen      uint64
	Value    V
	Err      error
	Canceled bool // superseded or canceled before completion, never delivered
}

// Task is one cancelable fetch started by a Slot
type Task[K, V any] struct {
	id      string
	gen     uint64
	key     K
	ctx     context.Context
	fetch   FetchFunc[K, V]
	timeout time.Duration
}

// ID returns the key id the task was started for
func (t *Task[K, V]) ID() string { return t.id }

// Gen returns the slot generation the task belongs to
func (t *Task[K, V]) Gen() uint64 { return t.gen }

// Run executes the fetch on the calling goroutine. Errors and panics are
// turned into an error result; a task canceled before it finished reports
// Canceled and drops whatever it computed.
func (t *Task[K, V]) Run() (res Result[V]) {
	res = Result[V]{ID: t.id, Gen: t.gen}
	if t.ctx.Err() != nil {
		res.Canceled = true
		return res
	}

	ctx := t.ctx
	if t.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	defer func() {
		if r := recover(); r != nil {
			slog.Error("loader: task panic", "id", t.id, "panic", r, "stack", string(debug.Stack()))
			res.Err = fmt.Errorf("loading %s: panic: %v", t.id, r)
		}
		if t.ctx.Err() != nil {
			var zero V
			res.Value = zero
			res.Err = nil
			res.Canceled = true
		}
	}()

	v, err := t.fetch(ctx, t.key)
	if err != nil {
		res.Err = fmt.Errorf("loading %s: %w", t.id, err)
		return res
	}
	res.Value = v
	return res
}

// Slot holds at most one live task. The zero value is not usable; use NewSlot.
type Slot[K, V any] struct {
	mu        sync.Mutex
	fetch     FetchFunc[K, V]
	timeout   time.Duration
	gen       uint64
	cancel    context.CancelFunc
	pendingID string
	pending   bool
}

// NewSlot creates a slot running fetch with the given per-task timeout (0 = none)
func NewSlot[K, V any](fetch FetchFunc[K, V], timeout time.Duration) *Slot[K, V] {
	return &Slot[K, V]{fetch: fetch, timeout: timeout}
}

// Start cancels the task in flight, if any, and returns a new task for key.
// The caller decides where the task runs (tea.Cmd, goroutine).
func (s *Slot[K, V]) Start(id string, key K) *Task[K, V] {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.gen++
	s.pendingID = id
	s.pending = true

	slog.Debug("loader: start", "id", id, "gen", s.gen)
	return &Task[K, V]{
		id:      id,
		gen:     s.gen,
		key:     key,
		ctx:     ctx,
		fetch:   s.fetch,
		timeout: s.timeout,
	}
}

// Accept reports whether r belongs to the current task and may be published.
// It must be called on the goroutine that owns the state r is applied to.
func (s *Slot[K, V]) Accept(r Result[V]) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r.Canceled || r.Gen != s.gen || !s.pending {
		slog.Debug("loader: drop stale result", "id", r.ID, "gen", r.Gen, "current", s.gen)
		return false
	}
	s.pending = false
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	return true
}

// Cancel invalidates the task in flight
func (s *Slot[K, V]) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.gen++
	s.pending = false
	s.pendingID = ""
}

// Pending returns the id of the task in flight
func (s *Slot[K, V]) Pending() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pendingID, s.pending
}

// Go starts a task for key on a new goroutine and calls deliver with its
// result if, and only if, the result is accepted.
func (s *Slot[K, V]) Go(id string, key K, deliver func(Result[V])) *Task[K, V] {
	t := s.Start(id, key)
	go func() {
		res := t.Run()
		if s.Accept(res) {
			deliver(res)
		}
	}()
	return t
}
