// Package search implements the search bar behavior: the dropdown of recent
// searches and suggestions, keyboard selection, and debounced suggestion fetching.
package search

import "strings"

// Phase is the dropdown state of the bar
type Phase int

const (
	PhaseIdle               Phase = iota // Never focused
	PhaseShowingRecents                  // Empty query, dropdown lists recent searches
	PhaseLoading                         // Waiting for suggestions for the current query
	PhaseShowingSuggestions              // Dropdown lists suggestions (possibly none)
	PhaseClosed                          // Dropdown dismissed
)

func (p Phase) String() string {
	switch p {
	case PhaseShowingRecents:
		return "recents"
	case PhaseLoading:
		return "loading"
	case PhaseShowingSuggestions:
		return "suggestions"
	case PhaseClosed:
		return "closed"
	default:
		return "idle"
	}
}

// Recents is the persisted recent search list
type Recents interface {
	RecentSearches() []string
	RecordSearch(q string)
	RemoveRecentSearch(q string)
	ClearRecentSearches()
}

// Bar is the search bar state machine. It knows nothing about rendering or
// input devices; callers translate keys and clicks into method calls.
type Bar struct {
	recents Recents

	phase       Phase
	query       string
	suggestions []string
	cursor      int // -1 = nothing selected
}

// NewBar creates a bar backed by the given recent search list
func NewBar(recents Recents) *Bar {
	return &Bar{recents: recents, cursor: -1}
}

func (b *Bar) Phase() Phase          { return b.phase }
func (b *Bar) Query() string         { return b.query }
func (b *Bar) Cursor() int           { return b.cursor }
func (b *Bar) Suggestions() []string { return b.suggestions }

// Open reports whether the dropdown is visible
func (b *Bar) Open() bool {
	return b.phase != PhaseIdle && b.phase != PhaseClosed
}

// ShowingRecents reports whether the dropdown lists recent searches
func (b *Bar) ShowingRecents() bool {
	return b.Open() && strings.TrimSpace(b.query) == ""
}

// Items returns the list the dropdown displays: suggestions for a non-empty
// query, recent searches otherwise.
func (b *Bar) Items() []string {
	if strings.TrimSpace(b.query) == "" {
		return b.recents.RecentSearches()
	}
	return b.suggestions
}

// Selected returns the highlighted item, if any
func (b *Bar) Selected() (string, bool) {
	items := b.Items()
	if !b.Open() || b.cursor < 0 || b.cursor >= len(items) {
		return "", false
	}
	return items[b.cursor], true
}

// Focus opens the dropdown for the current query
func (b *Bar) Focus() {
	b.cursor = -1
	b.phase = b.openPhase()
}

func (b *Bar) openPhase() Phase {
	if strings.TrimSpace(b.query) == "" {
		return PhaseShowingRecents
	}
	if b.phase == PhaseLoading {
		return PhaseLoading
	}
	return PhaseShowingSuggestions
}

// SetQuery updates the text and reports whether suggestions should be fetched
// for it. Clearing the query drops current suggestions.
func (b *Bar) SetQuery(q string) bool {
	if q == b.query && b.Open() {
		return false
	}
	b.query = q
	b.cursor = -1

	if strings.TrimSpace(q) == "" {
		b.suggestions = nil
		b.phase = PhaseShowingRecents
		return false
	}
	b.phase = PhaseLoading
	return true
}

// ApplySuggestions shows fetched suggestions for the current query
func (b *Bar) ApplySuggestions(items []string) {
	if strings.TrimSpace(b.query) == "" {
		return
	}
	b.suggestions = items
	b.clamp()
	if b.Open() {
		b.phase = PhaseShowingSuggestions
	}
}

// FailSuggestions clears suggestions after a failed fetch
func (b *Bar) FailSuggestions() {
	b.ApplySuggestions(nil)
}

// MoveDown highlights the next item, stopping at the last one
func (b *Bar) MoveDown() {
	if !b.Open() {
		return
	}
	if b.cursor < len(b.Items())-1 {
		b.cursor++
	}
}

// MoveUp highlights the previous item, stopping at no selection
func (b *Bar) MoveUp() {
	if !b.Open() {
		return
	}
	if b.cursor > -1 {
		b.cursor--
	}
}

// Enter commits the highlighted item, or the typed query when nothing is highlighted
func (b *Bar) Enter() (string, bool) {
	if item, ok := b.Selected(); ok {
		return b.Commit(item)
	}
	return b.Commit(b.query)
}

// Commit records q as a recent search, closes the dropdown and returns the
// query to search for. Suggestions are dropped since they belong to the typed
// prefix, not the committed query. Blank queries are ignored.
func (b *Bar) Commit(q string) (string, bool) {
	q = strings.TrimSpace(q)
	if q == "" {
		return "", false
	}
	b.recents.RecordSearch(q)
	b.query = q
	b.suggestions = nil
	b.cursor = -1
	b.phase = PhaseClosed
	return q, true
}

// Escape dismisses the dropdown
func (b *Bar) Escape() {
	b.cursor = -1
	b.phase = PhaseClosed
}

// PressOutside dismisses the dropdown after a click elsewhere, keeping the query
func (b *Bar) PressOutside() {
	if !b.Open() {
		return
	}
	b.cursor = -1
	b.phase = PhaseClosed
}

// Clear empties the query and suggestions
func (b *Bar) Clear() {
	b.query = ""
	b.suggestions = nil
	b.cursor = -1
	if b.Open() {
		b.phase = PhaseShowingRecents
	}
}

// RemoveRecent drops one recent search
func (b *Bar) RemoveRecent(q string) {
	b.recents.RemoveRecentSearch(q)
	b.clamp()
}

// ClearRecents drops all recent searches
func (b *Bar) ClearRecents() {
	b.recents.ClearRecentSearches()
	b.clamp()
}

func (b *Bar) clamp() {
	if n := len(b.Items()); b.cursor >= n {
		b.cursor = n - 1
	}
}
