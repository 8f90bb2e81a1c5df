package components

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/tubes/internal/domain"
)

func rowsOf(titles ...string) []Row {
	rows := make([]Row, len(titles))
	for i, title := range titles {
		rows[i] = Row{Video: domain.Video{ID: title, Title: title}}
	}
	return rows
}

func newTestList(titles ...string) *VideoList {
	l := NewVideoList("Test")
	l.SetSize(60, 10)
	l.SetFocused(true)
	l.SetRows(rowsOf(titles...))
	return l
}

func TestVideoListNavigation(t *testing.T) {
	l := newTestList("a", "b", "c")

	l.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	l.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	l.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})

	v, ok := l.Selected()
	require.True(t, ok)
	assert.Equal(t, "c", v.ID)

	l.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("g")})
	assert.Equal(t, 0, l.Cursor())
}

func TestVideoListKeepsCursorWhenRowsShrink(t *testing.T) {
	l := newTestList("a", "b", "c")
	l.MoveDown()
	l.MoveDown()

	l.SetRows(rowsOf("a"))
	assert.Equal(t, 0, l.Cursor())
}

func TestVideoListFilter(t *testing.T) {
	l := newTestList("cats", "dogs", "cars")

	consumed, _ := l.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/")})
	require.True(t, consumed)
	require.True(t, l.IsFilterTyping())

	l.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("c")})
	l.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")})
	assert.Equal(t, 2, l.Len())

	v, ok := l.Selected()
	require.True(t, ok)
	assert.Contains(t, []string{"cats", "cars"}, v.ID)

	l.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, l.IsFiltering())
	assert.Equal(t, 3, l.Len())
}

func TestVideoListClickAt(t *testing.T) {
	l := newTestList("a", "b", "c")

	// Title and the top scroll indicator precede the rows
	assert.False(t, l.ClickAt(0))
	assert.False(t, l.ClickAt(1))

	assert.True(t, l.ClickAt(3))
	assert.Equal(t, 1, l.Cursor())

	assert.False(t, l.ClickAt(5))
	assert.Equal(t, 1, l.Cursor())

	l.SetError("boom")
	assert.True(t, l.ClickAt(3))
	assert.Equal(t, 0, l.Cursor())
}

func TestVideoListReset(t *testing.T) {
	l := newTestList("a", "b")
	l.MoveDown()
	l.StartFilter()

	l.Reset()
	assert.Equal(t, 0, l.Cursor())
	assert.False(t, l.IsFiltering())
}

func TestVideoListViewStates(t *testing.T) {
	l := NewVideoList("Feed")
	l.SetSize(60, 10)

	l.SetLoading(true, "*")
	assert.Contains(t, l.View(), "Loading")

	l.SetLoading(false, "")
	assert.Contains(t, l.View(), "Nothing found")

	l.SetError("quota")
	assert.Contains(t, l.View(), "✗ quota")
}
