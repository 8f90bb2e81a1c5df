package search

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSuggestions struct {
	mu      sync.Mutex
	queries []string
	block   map[string]chan struct{}
	fail    bool
}

func (f *fakeSuggestions) Suggest(ctx context.Context, q string) ([]string, error) {
	f.mu.Lock()
	f.queries = append(f.queries, q)
	gate := f.block[q]
	fail := f.fail
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}
	if fail {
		return nil, errors.New("suggest down")
	}

	out := make([]string, 12)
	for i := range out {
		out[i] = fmt.Sprintf("%s %d", q, i)
	}
	return out, nil
}

func (f *fakeSuggestions) calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.queries...)
}

type collector struct {
	ch chan Suggestions
}

func newCollector() *collector { return &collector{ch: make(chan Suggestions, 16)} }

func (c *collector) deliver(s Suggestions) { c.ch <- s }

func (c *collector) next(t *testing.T) Suggestions {
	t.Helper()
	select {
	case s := <-c.ch:
		return s
	case <-time.After(2 * time.Second):
		t.Fatal("no suggestions delivered")
		return Suggestions{}
	}
}

func (c *collector) none(t *testing.T, wait time.Duration) {
	t.Helper()
	select {
	case s := <-c.ch:
		t.Fatalf("unexpected delivery: %+v", s)
	case <-time.After(wait):
	}
}

func TestSuggesterDebouncesAndTruncates(t *testing.T) {
	src := &fakeSuggestions{}
	out := newCollector()
	s := NewSuggester(src, 30*time.Millisecond, out.deliver, nil)

	s.Request("c")
	s.Request("ca")
	s.Request("cat")

	got := out.next(t)
	assert.Equal(t, "cat", got.Query)
	assert.Len(t, got.Items, DefaultSuggestLimit)
	assert.Equal(t, "cat 0", got.Items[0])
	assert.Equal(t, []string{"cat"}, src.calls())
}

func TestSuggesterDropsStaleResult(t *testing.T) {
	gate := make(chan struct{})
	src := &fakeSuggestions{block: map[string]chan struct{}{"slow": gate}}
	out := newCollector()
	s := NewSuggester(src, 10*time.Millisecond, out.deliver, nil)

	s.Request("slow")
	require.Eventually(t, func() bool { return len(src.calls()) == 1 }, time.Second, 5*time.Millisecond)

	s.Request("fast")
	got := out.next(t)
	assert.Equal(t, "fast", got.Query)

	close(gate)
	out.none(t, 100*time.Millisecond)
}

func TestSuggesterCancelDropsInflight(t *testing.T) {
	gate := make(chan struct{})
	src := &fakeSuggestions{block: map[string]chan struct{}{"cat": gate}}
	out := newCollector()
	s := NewSuggester(src, 10*time.Millisecond, out.deliver, nil)

	s.Request("cat")
	require.Eventually(t, func() bool { return len(src.calls()) == 1 }, time.Second, 5*time.Millisecond)

	s.Cancel()
	close(gate)
	out.none(t, 100*time.Millisecond)
}

func TestSuggesterCancelDropsPending(t *testing.T) {
	src := &fakeSuggestions{}
	out := newCollector()
	s := NewSuggester(src, 30*time.Millisecond, out.deliver, nil)

	s.Request("cat")
	s.Cancel()
	out.none(t, 100*time.Millisecond)
	assert.Empty(t, src.calls())
}

func TestSuggesterDeliversFailure(t *testing.T) {
	src := &fakeSuggestions{fail: true}
	out := newCollector()
	s := NewSuggester(src, 10*time.Millisecond, out.deliver, nil)

	s.Request("cat")
	got := out.next(t)
	assert.Error(t, got.Err)
	assert.Empty(t, got.Items)
}
