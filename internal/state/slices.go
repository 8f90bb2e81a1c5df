package state

import (
	"slices"
	"strings"

	"github.com/mmcdole/tubes/internal/domain"
)

// Reducers in this file never modify a backing array they were given, so a
// shallow copy of a slice value is safe to hand to readers.

const (
	MaxHistory        = 100
	MaxRecentSearches = 10
)

// VideoList is the home and trending feed
type VideoList struct {
	Category string // "All", "Music", ... or empty for the trending chart
	Resource[[]domain.Video]
}

// SetVideos replaces the list outright
func (v VideoList) SetVideos(videos []domain.Video) VideoList {
	v.Status = StatusFulfilled
	v.Data = videos
	v.Err = nil
	return v
}

// SetLoading flips the loading flag without touching data
func (v VideoList) SetLoading(loading bool) VideoList {
	switch {
	case loading:
		v.Status = StatusPending
		v.Err = nil
	case v.Status == StatusPending:
		v.Status = StatusFulfilled
	}
	return v
}

// SetError records a failure and stops loading, keeping data
func (v VideoList) SetError(err error) VideoList {
	v.Status = StatusRejected
	v.Err = err
	return v
}

// SearchResults is the result page for a committed query
type SearchResults struct {
	Query string
	Order string // Provider ordering, empty for relevance
	Resource[[]domain.Video]
}

// Clear drops the query and results, keeping the chosen order.
// A request still in flight is discarded.
func (s SearchResults) Clear() SearchResults {
	return SearchResults{Order: s.Order, Resource: Resource[[]domain.Video]{gen: s.gen + 1}}
}

// VideoPage is a video with its related videos
type VideoPage struct {
	Video   *domain.Video // nil when the provider does not know the id
	Related []domain.Video
}

// VideoDetail is the single video slice. Data always belongs to ID:
// switching ids drops the previous page.
type VideoDetail struct {
	ID string
	Resource[VideoPage]
}

// ChannelPage is a channel with its latest uploads
type ChannelPage struct {
	Channel *domain.Channel // nil when the provider does not know the id
	Videos  []domain.Video
}

// ChannelDetail is the channel slice. Data always belongs to ID.
type ChannelDetail struct {
	ID string
	Resource[ChannelPage]
}

// Clear resets the channel slice. A request still in flight is discarded.
func (c ChannelDetail) Clear() ChannelDetail {
	return ChannelDetail{Resource: Resource[ChannelPage]{gen: c.gen + 1}}
}

// Library is the locally persisted history, liked and watch later lists
type Library struct {
	History    []domain.HistoryEntry // Most recent first
	Liked      []string              // Video ids in insertion order
	WatchLater []string
}

// AddToHistory moves or inserts entry at the front and caps the list
func (l Library) AddToHistory(entry domain.HistoryEntry) Library {
	history := make([]domain.HistoryEntry, 0, min(len(l.History)+1, MaxHistory))
	history = append(history, entry)
	for _, h := range l.History {
		if len(history) == MaxHistory {
			break
		}
		if h.VideoID != entry.VideoID {
			history = append(history, h)
		}
	}
	l.History = history
	return l
}

// RemoveFromHistory drops the entry for id
func (l Library) RemoveFromHistory(id string) Library {
	l.History = slices.DeleteFunc(slices.Clone(l.History), func(h domain.HistoryEntry) bool {
		return h.VideoID == id
	})
	return l
}

// ClearHistory empties the history
func (l Library) ClearHistory() Library {
	l.History = []domain.HistoryEntry{}
	return l
}

// ToggleLiked flips membership of id in the liked list
func (l Library) ToggleLiked(id string) (Library, bool) {
	var on bool
	l.Liked, on = toggle(l.Liked, id)
	return l, on
}

// ToggleWatchLater flips membership of id in the watch later list
func (l Library) ToggleWatchLater(id string) (Library, bool) {
	var on bool
	l.WatchLater, on = toggle(l.WatchLater, id)
	return l, on
}

// IsLiked reports whether id is in the liked list
func (l Library) IsLiked(id string) bool { return slices.Contains(l.Liked, id) }

// InWatchLater reports whether id is in the watch later list
func (l Library) InWatchLater(id string) bool { return slices.Contains(l.WatchLater, id) }

// toggle removes id when present, else appends it. Reports the new membership.
func toggle(ids []string, id string) ([]string, bool) {
	if i := slices.Index(ids, id); i >= 0 {
		return slices.Delete(slices.Clone(ids), i, i+1), false
	}
	out := make([]string, len(ids), len(ids)+1)
	copy(out, ids)
	return append(out, id), true
}

// UI holds presentation preferences
type UI struct {
	Theme       domain.Theme
	SidebarOpen bool
}

// SetTheme sets the theme, ignoring unknown values
func (u UI) SetTheme(t domain.Theme) UI {
	if t.Valid() {
		u.Theme = t
	}
	return u
}

// ToggleTheme flips between dark and light
func (u UI) ToggleTheme() UI {
	u.Theme = u.Theme.Toggle()
	return u
}

// SetSidebarOpen shows or hides the sidebar
func (u UI) SetSidebarOpen(open bool) UI {
	u.SidebarOpen = open
	return u
}

// ToggleSidebar flips sidebar visibility
func (u UI) ToggleSidebar() UI {
	u.SidebarOpen = !u.SidebarOpen
	return u
}

// RecentSearches is the list of committed queries, most recent first
type RecentSearches []string

// Record trims q, moves or inserts it at the front and caps the list.
// An empty query leaves the list unchanged.
func (r RecentSearches) Record(q string) RecentSearches {
	q = strings.TrimSpace(q)
	if q == "" {
		return r
	}
	out := make(RecentSearches, 0, min(len(r)+1, MaxRecentSearches))
	out = append(out, q)
	for _, s := range r {
		if len(out) == MaxRecentSearches {
			break
		}
		if s != q {
			out = append(out, s)
		}
	}
	return out
}

// Remove drops q
func (r RecentSearches) Remove(q string) RecentSearches {
	return slices.DeleteFunc(slices.Clone(r), func(s string) bool { return s == q })
}
