package loader

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gate lets a test control when each key's fetch completes
type gate struct {
	mu      sync.Mutex
	release map[string]chan struct{}
}

func newGate(keys ...string) *gate {
	g := &gate{release: make(map[string]chan struct{})}
	for _, k := range keys {
		g.release[k] = make(chan struct{})
	}
	return g
}

func (g *gate) open(key string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	close(g.release[key])
}

// fetch ignores ctx on purpose to model a source that computes a result
// even after it was canceled
func (g *gate) fetch(_ context.Context, key string) (string, error) {
	g.mu.Lock()
	ch := g.release[key]
	g.mu.Unlock()
	<-ch
	return "content for " + key, nil
}

func TestStaleResultIsNeverPublished(t *testing.T) {
	g := newGate("A", "B")
	slot := NewSlot(g.fetch, 0)

	taskA := slot.Start("A", "A")
	doneA := make(chan Result[string], 1)
	go func() { doneA <- taskA.Run() }()

	taskB := slot.Start("B", "B")
	doneB := make(chan Result[string], 1)
	go func() { doneB <- taskB.Run() }()

	// A finishes after B was started
	g.open("A")
	resA := <-doneA
	assert.True(t, resA.Canceled)
	assert.Empty(t, resA.Value)
	assert.False(t, slot.Accept(resA))

	id, pending := slot.Pending()
	assert.True(t, pending)
	assert.Equal(t, "B", id)

	g.open("B")
	resB := <-doneB
	require.False(t, resB.Canceled)
	assert.True(t, slot.Accept(resB))
	assert.Equal(t, "content for B", resB.Value)

	_, pending = slot.Pending()
	assert.False(t, pending)

	// a result is accepted once
	assert.False(t, slot.Accept(resB))
}

func TestOldGenerationRejectedEvenIfNotCanceled(t *testing.T) {
	slot := NewSlot(func(context.Context, string) (int, error) { return 1, nil }, 0)
	old := slot.Start("A", "A").Run()
	slot.Start("B", "B")

	old.Canceled = false
	assert.False(t, slot.Accept(old))
}

func TestGoDeliversOnlyCurrent(t *testing.T) {
	g := newGate("A", "B")
	slot := NewSlot(g.fetch, 0)

	delivered := make(chan Result[string], 2)
	slot.Go("A", "A", func(r Result[string]) { delivered <- r })
	slot.Go("B", "B", func(r Result[string]) { delivered <- r })

	g.open("A")
	g.open("B")

	select {
	case r := <-delivered:
		assert.Equal(t, "B", r.ID)
	case <-time.After(2 * time.Second):
		t.Fatal("nothing delivered")
	}
	select {
	case r := <-delivered:
		t.Fatalf("unexpected delivery for %s", r.ID)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestErrorsAndPanicsBecomeResults(t *testing.T) {
	boom := errors.New("feed unreachable")
	slot := NewSlot(func(_ context.Context, key string) (string, error) {
		if key == "panic" {
			panic("bad feed")
		}
		return "", boom
	}, 0)

	res := slot.Start("err", "err").Run()
	assert.ErrorIs(t, res.Err, boom)
	assert.True(t, slot.Accept(res))

	res = slot.Start("panic", "panic").Run()
	require.Error(t, res.Err)
	assert.Contains(t, res.Err.Error(), "bad feed")
	assert.True(t, slot.Accept(res))
}

func TestTimeout(t *testing.T) {
	slot := NewSlot(func(ctx context.Context, _ string) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	}, 20*time.Millisecond)

	res := slot.Start("slow", "slow").Run()
	assert.False(t, res.Canceled)
	assert.ErrorIs(t, res.Err, context.DeadlineExceeded)
	assert.True(t, slot.Accept(res))
}

func TestCancel(t *testing.T) {
	started := make(chan struct{})
	slot := NewSlot(func(ctx context.Context, _ string) (string, error) {
		close(started)
		<-ctx.Done()
		return "", ctx.Err()
	}, 0)

	task := slot.Start("A", "A")
	done := make(chan Result[string], 1)
	go func() { done <- task.Run() }()

	<-started
	slot.Cancel()
	res := <-done
	assert.True(t, res.Canceled)
	assert.NoError(t, res.Err)
	assert.False(t, slot.Accept(res))

	_, pending := slot.Pending()
	assert.False(t, pending)
}

func TestTaskCanceledBeforeRun(t *testing.T) {
	called := false
	slot := NewSlot(func(context.Context, string) (string, error) {
		called = true
		return "x", nil
	}, 0)
	first := slot.Start("A", "A")
	slot.Start("B", "B")

	res := first.Run()
	assert.True(t, res.Canceled)
	assert.False(t, called)
}
