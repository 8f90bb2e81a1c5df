package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/tubes/internal/domain"
	"github.com/mmcdole/tubes/internal/search"
	"github.com/mmcdole/tubes/internal/state"
)

// Command factories for async operations

const (
	fetchTimeout  = 30 * time.Second
	statusTimeout = 4 * time.Second

	// statusTitleLen caps video titles quoted in the status line
	statusTitleLen = 60
)

// Player launches a video in an external player
type Player interface {
	Play(videoID, title string) error
}

func fetchCmd(label string, fn func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		return FetchDoneMsg{Context: label, Err: fn(ctx)}
	}
}

// FetchFeedCmd loads the home feed for a category
func FetchFeedCmd(st *state.Store, category string) tea.Cmd {
	return fetchCmd("loading "+category, func(ctx context.Context) error {
		return st.FetchFeed(ctx, category)
	})
}

// FetchTrendingCmd loads the trending chart
func FetchTrendingCmd(st *state.Store) tea.Cmd {
	return fetchCmd("loading trending", st.FetchTrending)
}

// SearchCmd runs a search
func SearchCmd(st *state.Store, query string) tea.Cmd {
	return fetchCmd("searching", func(ctx context.Context) error {
		return st.Search(ctx, query)
	})
}

// FetchVideoCmd loads a video with its related videos
func FetchVideoCmd(st *state.Store, id string) tea.Cmd {
	return fetchCmd("loading video", func(ctx context.Context) error {
		return st.FetchVideo(ctx, id)
	})
}

// FetchChannelCmd loads a channel with its popular uploads
func FetchChannelCmd(st *state.Store, id string) tea.Cmd {
	return fetchCmd("loading channel", func(ctx context.Context) error {
		return st.FetchChannel(ctx, id)
	})
}

// FetchCollectionCmd loads details for a saved list
func FetchCollectionCmd(st *state.Store, c state.Collection) tea.Cmd {
	return fetchCmd("loading "+c.String(), func(ctx context.Context) error {
		return st.FetchCollection(ctx, c)
	})
}

// PlayCmd launches the player and records the video in history
func PlayCmd(p Player, st *state.Store, v domain.Video) tea.Cmd {
	return func() tea.Msg {
		if err := p.Play(v.ID, v.Title); err != nil {
			return ErrMsg{Err: err, Context: "starting playback"}
		}
		st.AddToHistory(domain.NewHistoryEntry(v, time.Now()))
		return PlayedMsg{Video: v}
	}
}

// WaitForStateCmd waits for the next store change
func WaitForStateCmd(ch <-chan state.Slice) tea.Cmd {
	return func() tea.Msg {
		slice, ok := <-ch
		if !ok {
			return nil
		}
		return StateChangedMsg{Slice: slice}
	}
}

// WaitForSuggestionsCmd waits for the next suggestion result
func WaitForSuggestionsCmd(ch <-chan search.Suggestions) tea.Cmd {
	return func() tea.Msg {
		res, ok := <-ch
		if !ok {
			return nil
		}
		return SuggestionsMsg{Result: res}
	}
}

// ClearStatusCmd clears status id after a delay
func ClearStatusCmd(id int) tea.Cmd {
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return ClearStatusMsg{ID: id}
	})
}
