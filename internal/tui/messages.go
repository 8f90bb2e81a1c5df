package tui

import (
	"github.com/mmcdole/tubes/internal/domain"
	"github.com/mmcdole/tubes/internal/search"
	"github.com/mmcdole/tubes/internal/state"
)

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// StateChangedMsg signals that a store slice changed
type StateChangedMsg struct {
	Slice state.Slice
}

// SuggestionsMsg delivers a suggestion result for the search bar
type SuggestionsMsg struct {
	Result search.Suggestions
}

// FetchDoneMsg signals that a store fetch finished. Data lands in the store;
// this only carries the outcome for the status line.
type FetchDoneMsg struct {
	Context string
	Err     error
}

// PlayedMsg signals that a player was launched for a video
type PlayedMsg struct {
	Video domain.Video
}

// ClearStatusMsg clears the status line if it still shows the given id
type ClearStatusMsg struct {
	ID int
}
