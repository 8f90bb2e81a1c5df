// Package state holds the application state and the operations that change it.
package state

import (
	"log/slog"
	"sync"

	"github.com/mmcdole/tubes/internal/domain"
	"github.com/mmcdole/tubes/internal/store"
)

// Slice names passed to observers
type Slice string

const (
	SliceVideos     Slice = "videos"
	SliceSearch     Slice = "search"
	SliceVideo      Slice = "video"
	SliceChannel    Slice = "channel"
	SliceLibrary    Slice = "library"
	SliceCollection Slice = "collection"
	SliceUI         Slice = "ui"
	SliceRecent     Slice = "recent"
)

// Observer is notified after a slice changes. It is called without the store lock held.
type Observer interface {
	StateChanged(slice Slice)
}

// ObserverFunc adapts a function to Observer
type ObserverFunc func(Slice)

func (f ObserverFunc) StateChanged(s Slice) { f(s) }

// State is the whole application state
type State struct {
	Videos     VideoList
	Search     SearchResults
	Video      VideoDetail
	Channel    ChannelDetail
	Library    Library
	Liked      Resource[[]domain.Video] // Full details for Library.Liked
	WatchLater Resource[[]domain.Video] // Full details for Library.WatchLater
	UI         UI
	Recent     RecentSearches
}

// Deps are the collaborators of a Store
type Deps struct {
	Source       domain.VideoSource
	Prefs        *store.Store // nil disables persistence
	Logger       *slog.Logger
	Region       string       // Region for the trending chart, default "US"
	DefaultTheme domain.Theme // Used when no theme has been saved
	SidebarOpen  bool
}

// Store owns the State. All mutations go through its methods, which persist
// library, theme and recent search changes before notifying observers.
type Store struct {
	source domain.VideoSource
	prefs  *store.Store
	logger *slog.Logger
	region string

	mu    sync.Mutex
	state State

	obsMu     sync.RWMutex
	observers []Observer
}

// New builds a store, loading persisted lists and preferences
func New(deps Deps) *Store {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Prefs == nil {
		deps.Prefs = store.NewDetached(deps.Logger)
	}
	if deps.Region == "" {
		deps.Region = "US"
	}
	if !deps.DefaultTheme.Valid() {
		deps.DefaultTheme = domain.ThemeDark
	}

	s := &Store{
		source: deps.Source,
		prefs:  deps.Prefs,
		logger: deps.Logger,
		region: deps.Region,
	}

	s.state.Library = Library{
		History:    store.Get(deps.Prefs, store.KeyWatchHistory, []domain.HistoryEntry{}),
		Liked:      store.Get(deps.Prefs, store.KeyLikedVideos, []string{}),
		WatchLater: store.Get(deps.Prefs, store.KeyWatchLater, []string{}),
	}
	s.state.Recent = store.Get(deps.Prefs, store.KeyRecentSearches, RecentSearches{})
	s.state.UI = UI{
		Theme:       domain.ParseTheme(store.Get(deps.Prefs, store.KeyTheme, string(deps.DefaultTheme))),
		SidebarOpen: deps.SidebarOpen,
	}

	return s
}

// Subscribe registers an observer
func (s *Store) Subscribe(o Observer) {
	s.obsMu.Lock()
	s.observers = append(s.observers, o)
	s.obsMu.Unlock()
}

func (s *Store) notify(slice Slice) {
	s.obsMu.RLock()
	observers := s.observers
	s.obsMu.RUnlock()

	for _, o := range observers {
		o.StateChanged(slice)
	}
}

// Snapshot returns a copy of the state that is safe to read without locking
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// update applies fn under the lock and notifies observers of slice.
// Persistence happens inside fn so writes land in mutation order.
func (s *Store) update(slice Slice, fn func(*State)) {
	s.mu.Lock()
	fn(&s.state)
	s.mu.Unlock()
	s.notify(slice)
}

// track runs load as one request against the resource selected by field.
// A result that arrives after a newer request started is dropped.
func track[T any](s *Store, slice Slice, field func(*State) *Resource[T], load func() (T, error)) error {
	var gen uint64
	s.update(slice, func(st *State) {
		r := field(st)
		*r, gen = r.Pending()
	})

	data, err := load()

	var applied bool
	s.mu.Lock()
	r := field(&s.state)
	if err != nil {
		*r, applied = r.Rejected(gen, err)
	} else {
		*r, applied = r.Fulfilled(gen, data)
	}
	s.mu.Unlock()

	if !applied {
		s.logger.Debug("discarding stale result", "slice", slice)
		return nil
	}
	s.notify(slice)
	return err
}

// Theme returns the current theme
func (s *Store) Theme() domain.Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.UI.Theme
}

// SetTheme sets and persists the theme
func (s *Store) SetTheme(t domain.Theme) {
	s.update(SliceUI, func(st *State) {
		st.UI = st.UI.SetTheme(t)
		s.prefs.Set(store.KeyTheme, string(st.UI.Theme))
	})
}

// ToggleTheme flips and persists the theme
func (s *Store) ToggleTheme() domain.Theme {
	var theme domain.Theme
	s.update(SliceUI, func(st *State) {
		st.UI = st.UI.ToggleTheme()
		theme = st.UI.Theme
		s.prefs.Set(store.KeyTheme, string(theme))
	})
	return theme
}

// SetSidebarOpen shows or hides the sidebar for this session
func (s *Store) SetSidebarOpen(open bool) {
	s.update(SliceUI, func(st *State) { st.UI = st.UI.SetSidebarOpen(open) })
}

// ToggleSidebar flips sidebar visibility for this session
func (s *Store) ToggleSidebar() {
	s.update(SliceUI, func(st *State) { st.UI = st.UI.ToggleSidebar() })
}

// RecentSearches returns the recent searches, most recent first
func (s *Store) RecentSearches() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Recent
}

// RecordSearch promotes q to the front of the recent searches
func (s *Store) RecordSearch(q string) {
	s.update(SliceRecent, func(st *State) {
		st.Recent = st.Recent.Record(q)
		s.prefs.Set(store.KeyRecentSearches, st.Recent)
	})
}

// RemoveRecentSearch drops q from the recent searches
func (s *Store) RemoveRecentSearch(q string) {
	s.update(SliceRecent, func(st *State) {
		st.Recent = st.Recent.Remove(q)
		s.prefs.Set(store.KeyRecentSearches, st.Recent)
	})
}

// ClearRecentSearches empties the recent searches
func (s *Store) ClearRecentSearches() {
	s.update(SliceRecent, func(st *State) {
		st.Recent = RecentSearches{}
		s.prefs.Remove(store.KeyRecentSearches)
	})
}
