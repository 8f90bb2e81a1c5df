package search

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/mmcdole/tubes/internal/debounce"
	"github.com/mmcdole/tubes/internal/domain"
)

const (
	DefaultSuggestDelay   = 300 * time.Millisecond
	DefaultSuggestLimit   = 8
	DefaultSuggestTimeout = 5 * time.Second
)

// Suggestions is one delivered suggestion result
type Suggestions struct {
	Seq   uint64
	Query string
	Items []string
	Err   error
}

// Suggester debounces queries and fetches suggestions for the last one.
// Only the result of the newest request is delivered.
type Suggester struct {
	source  domain.SuggestionSource
	deliver func(Suggestions)
	logger  *slog.Logger

	Limit   int
	Timeout time.Duration

	debounced *debounce.Func[string]

	mu       sync.Mutex
	seq      uint64
	inflight context.CancelFunc
}

// NewSuggester creates a suggester. deliver is called from a background goroutine.
func NewSuggester(source domain.SuggestionSource, delay time.Duration, deliver func(Suggestions), logger *slog.Logger) *Suggester {
	if delay <= 0 {
		delay = DefaultSuggestDelay
	}
	if logger == nil {
		logger = slog.Default()
	}
	s := &Suggester{
		source:  source,
		deliver: deliver,
		logger:  logger,
		Limit:   DefaultSuggestLimit,
		Timeout: DefaultSuggestTimeout,
	}
	s.debounced = debounce.New(delay, s.fetch)
	return s
}

// Request schedules a fetch for q once typing pauses
func (s *Suggester) Request(q string) {
	s.debounced.Call(q)
}

// Cancel drops the scheduled fetch and any fetch in flight
func (s *Suggester) Cancel() {
	s.debounced.Cancel()

	s.mu.Lock()
	s.seq++
	if s.inflight != nil {
		s.inflight()
		s.inflight = nil
	}
	s.mu.Unlock()
}

func (s *Suggester) fetch(q string) {
	ctx, cancel := context.WithTimeout(context.Background(), s.Timeout)
	defer cancel()

	s.mu.Lock()
	s.seq++
	seq := s.seq
	if s.inflight != nil {
		s.inflight()
	}
	s.inflight = cancel
	s.mu.Unlock()

	items, err := s.source.Suggest(ctx, q)

	s.mu.Lock()
	stale := seq != s.seq
	if !stale {
		s.inflight = nil
	}
	s.mu.Unlock()

	if stale {
		s.logger.Debug("discarding stale suggestions", "query", q, "seq", seq)
		return
	}
	if err != nil {
		s.logger.Warn("suggestions failed", "query", q, "error", err)
		s.deliver(Suggestions{Seq: seq, Query: q, Err: err})
		return
	}

	if s.Limit > 0 && len(items) > s.Limit {
		items = items[:s.Limit]
	}
	s.deliver(Suggestions{Seq: seq, Query: q, Items: items})
}
