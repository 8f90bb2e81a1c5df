package state

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/tubes/internal/domain"
)

func TestResourceTransitions(t *testing.T) {
	var r Resource[[]string]
	assert.Equal(t, StatusIdle, r.Status)

	r, gen := r.Pending()
	assert.True(t, r.Loading())

	r, ok := r.Fulfilled(gen, []string{"a"})
	require.True(t, ok)
	assert.Equal(t, StatusFulfilled, r.Status)
	assert.Equal(t, []string{"a"}, r.Data)

	r, gen = r.Pending()
	assert.Equal(t, []string{"a"}, r.Data, "pending keeps previous data")

	r, ok = r.Rejected(gen, errors.New("boom"))
	require.True(t, ok)
	assert.Equal(t, StatusRejected, r.Status)
	assert.EqualError(t, r.Err, "boom")
	assert.Equal(t, []string{"a"}, r.Data, "rejection keeps previous data")

	r, _ = r.Pending()
	assert.NoError(t, r.Err, "pending clears the error")
}

func TestResourceLastRequestWins(t *testing.T) {
	var r Resource[string]
	r, first := r.Pending()
	r, second := r.Pending()

	r, ok := r.Fulfilled(second, "new")
	require.True(t, ok)

	r, ok = r.Fulfilled(first, "old")
	assert.False(t, ok)
	assert.Equal(t, "new", r.Data)

	_, ok = r.Rejected(first, errors.New("late"))
	assert.False(t, ok)
}

func TestVideoListSetters(t *testing.T) {
	var v VideoList
	v = v.SetLoading(true)
	assert.True(t, v.Loading())

	v = v.SetVideos([]domain.Video{{ID: "a"}})
	assert.False(t, v.Loading())
	assert.Len(t, v.Data, 1)

	v = v.SetError(errors.New("offline"))
	assert.Equal(t, StatusRejected, v.Status)
	assert.Len(t, v.Data, 1)

	v = v.SetLoading(true).SetLoading(false)
	assert.False(t, v.Loading())
}

func entry(id string) domain.HistoryEntry {
	return domain.HistoryEntry{VideoID: id, Title: "title " + id}
}

func TestAddToHistoryDedupes(t *testing.T) {
	var l Library
	l = l.AddToHistory(entry("a"))
	l = l.AddToHistory(entry("b"))
	l = l.AddToHistory(entry("a"))

	require.Len(t, l.History, 2)
	assert.Equal(t, "a", l.History[0].VideoID)
	assert.Equal(t, "b", l.History[1].VideoID)
}

func TestAddToHistoryCaps(t *testing.T) {
	var l Library
	for i := 0; i < MaxHistory+5; i++ {
		l = l.AddToHistory(entry(fmt.Sprintf("v%d", i)))
	}

	require.Len(t, l.History, MaxHistory)
	assert.Equal(t, fmt.Sprintf("v%d", MaxHistory+4), l.History[0].VideoID)
	assert.Equal(t, "v5", l.History[MaxHistory-1].VideoID)
}

func TestAddToHistoryDoesNotAlias(t *testing.T) {
	l := Library{}.AddToHistory(entry("a")).AddToHistory(entry("b"))
	before := l.History

	_ = l.AddToHistory(entry("c"))
	_ = l.RemoveFromHistory("a")
	assert.Equal(t, "b", before[0].VideoID)
	assert.Equal(t, "a", before[1].VideoID)
}

func TestRemoveAndClearHistory(t *testing.T) {
	l := Library{}.AddToHistory(entry("a")).AddToHistory(entry("b"))

	l = l.RemoveFromHistory("a")
	require.Len(t, l.History, 1)
	assert.Equal(t, "b", l.History[0].VideoID)

	l = l.ClearHistory()
	assert.Empty(t, l.History)
}

func TestToggleTwiceRestores(t *testing.T) {
	l := Library{Liked: []string{"x"}}

	l, on := l.ToggleLiked("y")
	assert.True(t, on)
	assert.Equal(t, []string{"x", "y"}, l.Liked)

	l, on = l.ToggleLiked("y")
	assert.False(t, on)
	assert.Equal(t, []string{"x"}, l.Liked)

	l, _ = l.ToggleWatchLater("z")
	assert.True(t, l.InWatchLater("z"))
	l, _ = l.ToggleWatchLater("z")
	assert.False(t, l.InWatchLater("z"))
}

func TestRecentSearchesRecord(t *testing.T) {
	var r RecentSearches
	r = r.Record("cats")
	r = r.Record("dogs")
	r = r.Record("cats")
	assert.Equal(t, RecentSearches{"cats", "dogs"}, r)

	assert.Equal(t, r, r.Record("   "))
	assert.Equal(t, RecentSearches{"birds", "cats", "dogs"}, r.Record("  birds "))
}

func TestRecentSearchesCap(t *testing.T) {
	var r RecentSearches
	for i := 0; i < 15; i++ {
		r = r.Record(fmt.Sprintf("q%d", i))
	}
	require.Len(t, r, MaxRecentSearches)
	assert.Equal(t, "q14", r[0])
	assert.Equal(t, "q5", r[MaxRecentSearches-1])
}

func TestUIReducers(t *testing.T) {
	u := UI{Theme: domain.ThemeDark}
	assert.Equal(t, domain.ThemeLight, u.ToggleTheme().Theme)
	assert.Equal(t, domain.ThemeDark, u.ToggleTheme().ToggleTheme().Theme)
	assert.Equal(t, domain.ThemeDark, u.SetTheme("neon").Theme)
	assert.True(t, u.ToggleSidebar().SidebarOpen)
	assert.False(t, u.SetSidebarOpen(true).SetSidebarOpen(false).SidebarOpen)
}
