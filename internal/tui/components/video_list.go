package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/tubes/internal/domain"
	"github.com/mmcdole/tubes/internal/search"
	"github.com/mmcdole/tubes/internal/tui/styles"
)

// Scroll indicators ("↑ more" and "↓ more") each take 1 line
const ScrollIndicatorLines = 2

// Row is one video line in a list
type Row struct {
	Video    domain.Video
	Meta     string // Channel, views, age
	Badge    string // Right-aligned, e.g. duration
	Selected bool   // Marked (liked, saved) indicator
}

// FilterFunc narrows rows to matches for query
type FilterFunc func(query string, rows []Row) []search.Match

// FilterByTitle is the default filter
func FilterByTitle(query string, rows []Row) []search.Match {
	videos := make([]domain.Video, len(rows))
	for i, r := range rows {
		videos[i] = r.Video
	}
	return search.FilterVideos(query, videos)
}

// VideoList is a scrollable, filterable list of videos
type VideoList struct {
	rows  []Row
	title string
	keys  ListKeyMap

	// Selection
	cursor     int
	offset     int
	maxVisible int

	// Dimensions
	width   int
	height  int
	focused bool

	// Status
	loading bool
	spinner string
	errText string
	empty   string

	// Filter state
	filter       FilterFunc
	filterActive bool
	filterInput  textinput.Model
	filterQuery  string
	matches      []search.Match // nil = unfiltered
}

// NewVideoList creates an empty list
func NewVideoList(title string) *VideoList {
	ti := textinput.New()
	ti.Placeholder = "type to filter..."
	ti.Prompt = "/ "

	return &VideoList{
		title:       title,
		keys:        DefaultListKeyMap(),
		empty:       "Nothing found",
		filter:      FilterByTitle,
		filterInput: ti,
	}
}

// SetFilter replaces the filter used by "/"
func (l *VideoList) SetFilter(f FilterFunc) { l.filter = f }

// SetTitle sets the header line
func (l *VideoList) SetTitle(title string) { l.title = title }

// SetEmptyText sets the text shown when there are no rows
func (l *VideoList) SetEmptyText(s string) { l.empty = s }

// SetRows replaces the rows, keeping the cursor where possible
func (l *VideoList) SetRows(rows []Row) {
	l.rows = rows
	if l.filterActive && l.filterQuery != "" {
		l.applyFilter(false)
	}
	l.clamp()
}

// SetLoading shows spinner in place of an empty list while loading
func (l *VideoList) SetLoading(loading bool, spinner string) {
	l.loading = loading
	l.spinner = spinner
}

// SetError shows an error line above the rows; empty clears it
func (l *VideoList) SetError(text string) { l.errText = text }

// SetSize sets the rendered size
func (l *VideoList) SetSize(width, height int) {
	l.width = width
	l.height = height
	l.recalcMaxVisible()
	l.ensureVisible()
}

// SetFocused marks the list as receiving keys
func (l *VideoList) SetFocused(focused bool) { l.focused = focused }

// Len returns the number of visible rows
func (l *VideoList) Len() int {
	if l.matches != nil {
		return len(l.matches)
	}
	return len(l.rows)
}

// Selected returns the highlighted video
func (l *VideoList) Selected() (domain.Video, bool) {
	if l.Len() == 0 {
		return domain.Video{}, false
	}
	return l.rows[l.mapIndex(l.cursor)].Video, true
}

// Cursor returns the highlighted position among visible rows
func (l *VideoList) Cursor() int { return l.cursor }

// StartFilter opens the filter input
func (l *VideoList) StartFilter() {
	l.filterActive = true
	l.filterInput.Focus()
	l.recalcMaxVisible()
}

// IsFiltering reports whether a filter is applied or being typed
func (l *VideoList) IsFiltering() bool { return l.filterActive }

// IsFilterTyping reports whether the filter input has focus
func (l *VideoList) IsFilterTyping() bool { return l.filterActive && l.filterInput.Focused() }

// ClearFilter shows every row again
func (l *VideoList) ClearFilter() {
	l.filterActive = false
	l.filterQuery = ""
	l.matches = nil
	l.filterInput.SetValue("")
	l.filterInput.Blur()
	l.recalcMaxVisible()
	l.clamp()
}

// Update handles a key. It returns true when the key was consumed.
func (l *VideoList) Update(msg tea.KeyMsg) (bool, tea.Cmd) {
	if l.IsFilterTyping() {
		switch {
		case key.Matches(msg, l.keys.Escape):
			l.ClearFilter()
			return true, nil
		case key.Matches(msg, l.keys.Accept):
			l.filterInput.Blur()
			return true, nil
		case msg.Type == tea.KeyBackspace && l.filterInput.Value() == "":
			l.ClearFilter()
			return true, nil
		}

		var cmd tea.Cmd
		l.filterInput, cmd = l.filterInput.Update(msg)
		l.applyFilter(true)
		return true, cmd
	}

	if l.filterActive {
		switch {
		case key.Matches(msg, l.keys.Escape):
			l.ClearFilter()
			return true, nil
		case key.Matches(msg, l.keys.Filter):
			l.filterInput.Focus()
			return true, nil
		}
	} else if key.Matches(msg, l.keys.Filter) {
		l.StartFilter()
		return true, nil
	}

	count := l.Len()
	switch {
	case key.Matches(msg, l.keys.Down):
		l.MoveDown()
	case key.Matches(msg, l.keys.Up):
		l.MoveUp()
	case key.Matches(msg, l.keys.Home):
		l.cursor = 0
		l.offset = 0
	case key.Matches(msg, l.keys.End):
		l.cursor = max(count-1, 0)
		l.ensureVisible()
	case key.Matches(msg, l.keys.HalfDown):
		l.cursor = min(l.cursor+l.maxVisible/2, max(count-1, 0))
		l.ensureVisible()
	case key.Matches(msg, l.keys.HalfUp):
		l.cursor = max(l.cursor-l.maxVisible/2, 0)
		l.ensureVisible()
	default:
		return false, nil
	}
	return true, nil
}

// Reset clears the filter and moves the cursor to the top
func (l *VideoList) Reset() {
	l.ClearFilter()
	l.cursor = 0
	l.offset = 0
}

// ClickAt highlights the row rendered at line y of the list, if any
func (l *VideoList) ClickAt(y int) bool {
	// Title, optional error line and the top scroll indicator
	first := 2
	if l.errText != "" {
		first++
	}
	i := l.offset + y - first
	if y < first || i >= min(l.offset+l.maxVisible, l.Len()) {
		return false
	}
	l.cursor = i
	return true
}

// MoveDown highlights the next row
func (l *VideoList) MoveDown() {
	if l.cursor < l.Len()-1 {
		l.cursor++
		l.ensureVisible()
	}
}

// MoveUp highlights the previous row
func (l *VideoList) MoveUp() {
	if l.cursor > 0 {
		l.cursor--
		l.ensureVisible()
	}
}

// View renders the list
func (l *VideoList) View() string {
	width := max(l.width, 10)
	var lines []string

	title := styles.AccentStyle.Render(styles.Truncate(l.title, width))
	lines = append(lines, title)

	if l.errText != "" {
		lines = append(lines, styles.ErrorStyle.Render(styles.Truncate("✗ "+l.errText, width)))
	}

	count := l.Len()
	switch {
	case count == 0 && l.loading:
		lines = append(lines, " ", styles.DimStyle.Render(l.spinner+" Loading..."))
	case count == 0:
		msg := l.empty
		if l.filterActive && l.filterQuery != "" {
			msg = "No matches"
		}
		if l.errText == "" {
			lines = append(lines, " ", styles.DimStyle.Render(msg))
		}
	default:
		lines = append(lines, l.renderRows(width)...)
	}

	if l.filterActive {
		lines = append(lines, l.renderFilterBar())
	}
	return strings.Join(lines, "\n")
}

func (l *VideoList) renderRows(width int) []string {
	count := l.Len()
	end := min(l.offset+l.maxVisible, count)

	header := " "
	if l.offset > 0 {
		header = styles.DimStyle.Render("↑ more")
	}
	if l.loading {
		header = styles.DimStyle.Render(l.spinner + " refreshing")
	}

	lines := []string{header}
	for i := l.offset; i < end; i++ {
		lines = append(lines, l.renderRow(i, width))
	}

	footer := " "
	if end < count {
		footer = styles.DimStyle.Render(fmt.Sprintf("↓ %d more", count-end))
	}
	return append(lines, footer)
}

func (l *VideoList) renderRow(i, width int) string {
	row := l.rows[l.mapIndex(i)]
	selected := i == l.cursor && l.focused

	marker := "  "
	if row.Selected {
		marker = "♥ "
	}
	badge := ""
	if row.Badge != "" {
		badge = " " + row.Badge
	}
	meta := ""
	if row.Meta != "" {
		meta = "  " + row.Meta
	}

	// Row margins, marker and badge are fixed; title and meta share the rest
	inner := width - 2 - lipgloss.Width(marker) - lipgloss.Width(badge)
	title := styles.Truncate(row.Video.Title, max(inner-min(lipgloss.Width(meta), inner/3), 1))
	meta = styles.Truncate(meta, max(inner-lipgloss.Width(title), 0))
	gap := max(inner-lipgloss.Width(title)-lipgloss.Width(meta), 0)

	if l.matches != nil && !selected && title == row.Video.Title {
		title = styles.Highlight(title, l.matches[i].MatchedIndexes, styles.SubtitleStyle)
	}

	accent := styles.Current.Accent
	dim := styles.Current.Dim
	parts := []styles.RowPart{
		{Text: marker, Foreground: &accent},
		{Text: title},
		{Text: meta, Foreground: &dim},
		{Text: strings.Repeat(" ", gap)},
		{Text: badge, Foreground: &dim},
	}
	return styles.RenderListRow(parts, selected, width)
}

func (l *VideoList) renderFilterBar() string {
	bar := l.filterInput.View()
	if l.filterQuery != "" {
		bar += styles.DimStyle.Render(fmt.Sprintf(" [%d/%d]", l.Len(), len(l.rows)))
	}
	return bar
}

func (l *VideoList) applyFilter(resetCursor bool) {
	l.filterQuery = l.filterInput.Value()
	if l.filterQuery == "" {
		l.matches = nil
	} else {
		l.matches = l.filter(l.filterQuery, l.rows)
		if l.matches == nil {
			l.matches = []search.Match{}
		}
	}
	if resetCursor {
		l.cursor = 0
		l.offset = 0
	}
}

func (l *VideoList) mapIndex(i int) int {
	if l.matches != nil && i < len(l.matches) {
		return l.matches[i].Index
	}
	return i
}

func (l *VideoList) clamp() {
	if n := l.Len(); l.cursor >= n {
		l.cursor = max(n-1, 0)
	}
	l.ensureVisible()
}

func (l *VideoList) recalcMaxVisible() {
	// Title line, error line and scroll indicators
	l.maxVisible = l.height - 2 - ScrollIndicatorLines
	if l.filterActive {
		l.maxVisible--
	}
	if l.maxVisible < 1 {
		l.maxVisible = 1
	}
}

func (l *VideoList) ensureVisible() {
	if l.maxVisible <= 0 {
		return
	}
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+l.maxVisible {
		l.offset = l.cursor - l.maxVisible + 1
	}
}
