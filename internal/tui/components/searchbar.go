package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/tubes/internal/search"
	"github.com/mmcdole/tubes/internal/tui/styles"
)

// SearchEvent tells the app what a search bar key requires
type SearchEvent int

const (
	SearchNone   SearchEvent = iota
	SearchFetch              // Schedule suggestions for the query
	SearchCancel             // Drop pending suggestions
	SearchSubmit             // Navigate to results for the query
	SearchBlur               // Give focus back to the content
)

// inputHeight is the bordered input box
const inputHeight = 3

// SearchBar renders the query input and the suggestion dropdown on top of a search.Bar
type SearchBar struct {
	input   textinput.Model
	bar     *search.Bar
	keys    SearchBarKeyMap
	width   int
	spinner string
}

// NewSearchBar creates a search bar over recents
func NewSearchBar(recents search.Recents) SearchBar {
	ti := textinput.New()
	ti.Placeholder = "Search"
	ti.CharLimit = 200
	ti.Prompt = "⌕ "

	return SearchBar{
		input: ti,
		bar:   search.NewBar(recents),
		keys:  DefaultSearchBarKeyMap(),
	}
}

// SetWidth sets the rendered width
func (s *SearchBar) SetWidth(width int) {
	s.width = width
	s.input.Width = max(width-6, 10)
}

// SetSpinner sets the frame shown while suggestions load
func (s *SearchBar) SetSpinner(frame string) { s.spinner = frame }

// Focus gives the input focus and opens the dropdown
func (s *SearchBar) Focus() tea.Cmd {
	s.bar.Focus()
	return s.input.Focus()
}

// Blur removes focus, closing the dropdown
func (s *SearchBar) Blur() {
	s.bar.Escape()
	s.input.Blur()
}

// Focused reports whether the input has focus
func (s SearchBar) Focused() bool { return s.input.Focused() }

// Query returns the current text
func (s SearchBar) Query() string { return s.input.Value() }

// Open reports whether the dropdown is showing
func (s SearchBar) Open() bool { return s.bar.Open() }

// Update handles a key while the bar is focused
func (s *SearchBar) Update(msg tea.KeyMsg) (SearchEvent, string, tea.Cmd) {
	switch {
	case key.Matches(msg, s.keys.Up):
		s.bar.MoveUp()
		return SearchNone, "", nil

	case key.Matches(msg, s.keys.Down):
		if !s.bar.Open() {
			s.bar.Focus()
		}
		s.bar.MoveDown()
		return SearchNone, "", nil

	case key.Matches(msg, s.keys.Submit):
		q, ok := s.bar.Enter()
		if !ok {
			return SearchNone, "", nil
		}
		s.input.SetValue(q)
		s.input.CursorEnd()
		return SearchSubmit, q, nil

	case key.Matches(msg, s.keys.Escape):
		if s.bar.Open() {
			s.bar.Escape()
			return SearchNone, "", nil
		}
		return SearchBlur, "", nil

	case key.Matches(msg, s.keys.RemoveRecent):
		if s.bar.ShowingRecents() {
			if item, ok := s.bar.Selected(); ok {
				s.bar.RemoveRecent(item)
			}
		}
		return SearchNone, "", nil

	case key.Matches(msg, s.keys.ClearRecents):
		if s.bar.ShowingRecents() {
			s.bar.ClearRecents()
		}
		return SearchNone, "", nil
	}

	before := s.input.Value()
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	after := s.input.Value()
	if after == before {
		return SearchNone, "", cmd
	}

	if s.bar.SetQuery(after) {
		return SearchFetch, after, cmd
	}
	if strings.TrimSpace(after) == "" {
		return SearchCancel, "", cmd
	}
	return SearchNone, "", cmd
}

// ApplySuggestions shows a delivered suggestion result if it is for the current query
func (s *SearchBar) ApplySuggestions(res search.Suggestions) {
	if res.Query != s.bar.Query() {
		return
	}
	if res.Err != nil {
		s.bar.FailSuggestions()
		return
	}
	s.bar.ApplySuggestions(res.Items)
}

// PressOutside closes the dropdown after a click elsewhere
func (s *SearchBar) PressOutside() {
	s.bar.PressOutside()
}

// Height returns the rendered height including the dropdown
func (s SearchBar) Height() int {
	return lipgloss.Height(s.View())
}

// Contains reports whether the cell at x, y is part of the bar or its dropdown
func (s SearchBar) Contains(x, y int) bool {
	return x >= 0 && x < s.width && y >= 0 && y < s.Height()
}

// ClickAt commits the dropdown item under row y, if any
func (s *SearchBar) ClickAt(y int) (string, bool) {
	// Dropdown border and heading sit above the first item
	i := y - inputHeight - 2
	items := s.bar.Items()
	if !s.bar.Open() || i < 0 || i >= len(items) {
		return "", false
	}
	q, ok := s.bar.Commit(items[i])
	if ok {
		s.input.SetValue(q)
		s.input.CursorEnd()
	}
	return q, ok
}

// View renders the input and, when open, the dropdown below it
func (s SearchBar) View() string {
	border := styles.InactiveBorder
	if s.input.Focused() {
		border = styles.ActiveBorder
	}
	s.input.PromptStyle = styles.AccentStyle
	s.input.TextStyle = styles.TitleStyle
	s.input.PlaceholderStyle = styles.DimStyle

	box := border.Width(max(s.width-2, 10)).Render(s.input.View())
	if !s.bar.Open() {
		return box
	}

	dropdown := s.renderDropdown()
	if dropdown == "" {
		return box
	}
	return lipgloss.JoinVertical(lipgloss.Left, box, dropdown)
}

func (s SearchBar) renderDropdown() string {
	items := s.bar.Items()
	inner := max(s.width-4, 10)

	var heading string
	icon := "⌕ "
	switch s.bar.Phase() {
	case search.PhaseShowingRecents:
		if len(items) == 0 {
			return ""
		}
		heading = "Recent searches  " + styles.HelpKeyStyle.Render("C-x") + styles.HelpDescStyle.Render(" forget  ") +
			styles.HelpKeyStyle.Render("C-l") + styles.HelpDescStyle.Render(" clear all")
		icon = "↺ "
	case search.PhaseLoading:
		if len(items) == 0 {
			heading = s.spinner + " Loading suggestions"
		} else {
			heading = "Suggestions " + s.spinner
		}
	default:
		if len(items) == 0 {
			return ""
		}
		heading = "Suggestions"
	}

	lines := []string{styles.DimStyle.Render(styles.Truncate(heading, inner))}
	for i, item := range items {
		text := styles.Truncate(icon+item, inner-2)
		if i == s.bar.Cursor() {
			lines = append(lines, styles.SelectedItemStyle.Render(styles.Pad(text, inner-2)))
		} else {
			lines = append(lines, styles.NormalItemStyle.Render(text))
		}
	}

	return styles.DropdownStyle.Width(max(s.width-2, 10)).Render(strings.Join(lines, "\n"))
}

// Keys returns the search bar key bindings
func (s SearchBar) Keys() SearchBarKeyMap { return s.keys }
