package tui

import (
	"github.com/mmcdole/tubes/internal/search"
	"github.com/mmcdole/tubes/internal/state"
)

var _ state.Observer = (*ChannelObserver)(nil)

// ChannelObserver adapts state.Observer to a channel for Bubble Tea.
type ChannelObserver struct {
	ch chan<- state.Slice
}

// NewChannelObserver creates a new channel-based observer.
func NewChannelObserver(ch chan<- state.Slice) *ChannelObserver {
	return &ChannelObserver{ch: ch}
}

// StateChanged sends the slice to the channel (non-blocking if full).
// The model re-reads the whole snapshot, so a dropped signal loses nothing.
func (o *ChannelObserver) StateChanged(slice state.Slice) {
	select {
	case o.ch <- slice:
	default:
	}
}

// suggestionSink returns a deliver func for a search.Suggester that
// forwards results to ch, replacing any undelivered older result.
func suggestionSink(ch chan search.Suggestions) func(search.Suggestions) {
	return func(res search.Suggestions) {
		for {
			select {
			case ch <- res:
				return
			default:
			}
			select {
			case <-ch:
			default:
			}
		}
	}
}
