package state

import (
	"context"
	"fmt"

	"github.com/mmcdole/tubes/internal/domain"
	"github.com/mmcdole/tubes/internal/store"
)

// AddToHistory records a watched video
func (s *Store) AddToHistory(entry domain.HistoryEntry) {
	s.update(SliceLibrary, func(st *State) {
		st.Library = st.Library.AddToHistory(entry)
		s.prefs.Set(store.KeyWatchHistory, st.Library.History)
	})
}

// RemoveFromHistory drops one video from the history
func (s *Store) RemoveFromHistory(id string) {
	s.update(SliceLibrary, func(st *State) {
		st.Library = st.Library.RemoveFromHistory(id)
		s.prefs.Set(store.KeyWatchHistory, st.Library.History)
	})
}

// ClearHistory empties the history
func (s *Store) ClearHistory() {
	s.update(SliceLibrary, func(st *State) {
		st.Library = st.Library.ClearHistory()
		s.prefs.Set(store.KeyWatchHistory, st.Library.History)
	})
}

// ToggleLiked flips whether id is liked and reports the new membership
func (s *Store) ToggleLiked(id string) bool {
	var on bool
	s.update(SliceLibrary, func(st *State) {
		st.Library, on = st.Library.ToggleLiked(id)
		s.prefs.Set(store.KeyLikedVideos, st.Library.Liked)
	})
	return on
}

// ToggleWatchLater flips whether id is saved for later and reports the new membership
func (s *Store) ToggleWatchLater(id string) bool {
	var on bool
	s.update(SliceLibrary, func(st *State) {
		st.Library, on = st.Library.ToggleWatchLater(id)
		s.prefs.Set(store.KeyWatchLater, st.Library.WatchLater)
	})
	return on
}

// IsLiked reports whether id is liked
func (s *Store) IsLiked(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Library.IsLiked(id)
}

// InWatchLater reports whether id is saved for later
func (s *Store) InWatchLater(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Library.InWatchLater(id)
}

// Collection selects one of the saved id lists
type Collection int

const (
	CollectionLiked Collection = iota
	CollectionWatchLater
)

func (c Collection) String() string {
	if c == CollectionWatchLater {
		return "Watch Later"
	}
	return "Liked"
}

// FetchCollection loads full details for the ids in a saved list.
// Results follow the list order; ids the provider no longer knows are dropped.
func (s *Store) FetchCollection(ctx context.Context, c Collection) error {
	s.mu.Lock()
	var ids []string
	var field func(*State) *Resource[[]domain.Video]
	switch c {
	case CollectionLiked:
		ids = s.state.Library.Liked
		field = func(st *State) *Resource[[]domain.Video] { return &st.Liked }
	case CollectionWatchLater:
		ids = s.state.Library.WatchLater
		field = func(st *State) *Resource[[]domain.Video] { return &st.WatchLater }
	default:
		s.mu.Unlock()
		return fmt.Errorf("unknown collection %d", c)
	}
	s.mu.Unlock()

	return track(s, SliceCollection, field, func() ([]domain.Video, error) {
		if len(ids) == 0 {
			return []domain.Video{}, nil
		}
		videos, err := s.source.Videos(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", c, err)
		}
		return orderByIDs(videos, ids), nil
	})
}

func orderByIDs(videos []domain.Video, ids []string) []domain.Video {
	byID := make(map[string]domain.Video, len(videos))
	for _, v := range videos {
		byID[v.ID] = v
	}
	out := make([]domain.Video, 0, len(ids))
	for _, id := range ids {
		if v, ok := byID[id]; ok {
			out = append(out, v)
		}
	}
	return out
}
