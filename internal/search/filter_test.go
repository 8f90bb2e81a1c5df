package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/tubes/internal/domain"
)

func TestFilterVideosEmptyQueryKeepsAll(t *testing.T) {
	videos := []domain.Video{{Title: "a"}, {Title: "b"}}
	got := FilterVideos("  ", videos)
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[1].Index)
}

func TestFilterVideos(t *testing.T) {
	videos := []domain.Video{
		{ID: "1", Title: "Cooking pasta at home"},
		{ID: "2", Title: "Go Concurrency Patterns"},
		{ID: "3", Title: "Learn Go in 10 minutes"},
	}

	got := FilterVideos("CONCUR", videos)
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].Index)
	assert.Equal(t, []int{3, 4, 5, 6, 7, 8}, got[0].MatchedIndexes)

	assert.Empty(t, FilterVideos("zzz", videos))
}

func TestFilterHistory(t *testing.T) {
	entries := []domain.HistoryEntry{
		{VideoID: "1", Title: "Rust for gophers", ChannelTitle: "Go Time"},
		{VideoID: "2", Title: "gophercon keynote", ChannelTitle: "GopherCon"},
		{VideoID: "3", Title: "Baking bread", ChannelTitle: "Kitchen"},
		{VideoID: "4", Title: "Gophers", ChannelTitle: "Nature"},
	}

	got := FilterHistory("gophers", entries)
	require.Len(t, got, 2)
	assert.Equal(t, "4", got[0].VideoID, "exact title first")
	assert.Equal(t, "1", got[1].VideoID)

	got = FilterHistory("kitchen", entries)
	require.Len(t, got, 1)
	assert.Equal(t, "3", got[0].VideoID)

	assert.Equal(t, entries, FilterHistory("", entries))
}
