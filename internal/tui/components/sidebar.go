package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/tubes/internal/tui/styles"
)

// Section is a top-level destination reachable from the sidebar
type Section int

const (
	SectionHome Section = iota
	SectionTrending
	SectionHistory
	SectionLiked
	SectionWatchLater
)

// Sections in sidebar order
var Sections = []Section{SectionHome, SectionTrending, SectionHistory, SectionLiked, SectionWatchLater}

func (s Section) String() string {
	switch s {
	case SectionHome:
		return "Home"
	case SectionTrending:
		return "Trending"
	case SectionHistory:
		return "History"
	case SectionLiked:
		return "Liked videos"
	case SectionWatchLater:
		return "Watch later"
	default:
		return "Unknown"
	}
}

func (s Section) icon() string {
	switch s {
	case SectionHome:
		return "⌂"
	case SectionTrending:
		return "↗"
	case SectionHistory:
		return "↺"
	case SectionLiked:
		return "♥"
	case SectionWatchLater:
		return "◷"
	default:
		return " "
	}
}

// SectionItem implements list.Item for a sidebar entry
type SectionItem struct {
	Section Section
	Count   int // Shown when positive
	Active  bool
}

func (i SectionItem) FilterValue() string { return i.Section.String() }

func (i SectionItem) Title() string {
	marker := " "
	if i.Active {
		marker = "▌"
	}
	title := fmt.Sprintf("%s%s %s", marker, i.Section.icon(), i.Section)
	if i.Count > 0 {
		title += fmt.Sprintf(" (%d)", i.Count)
	}
	return title
}

func (i SectionItem) Description() string { return "" }

// Border overhead for the sidebar panel
const BorderSize = 2

// Sidebar lists the top-level sections
type Sidebar struct {
	list    list.Model
	focused bool
	width   int
	height  int
	counts  map[Section]int
	active  Section
}

// NewSidebar creates a new sidebar component
func NewSidebar() Sidebar {
	l := list.New([]list.Item{}, newSidebarDelegate(), 0, 0)
	l.Title = "tubes"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.SetShowPagination(false)

	s := Sidebar{list: l, counts: make(map[Section]int)}
	s.ApplyTheme()
	s.refreshItems()
	return s
}

func newSidebarDelegate() list.DefaultDelegate {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetSpacing(0)
	delegate.Styles.SelectedTitle = lipgloss.NewStyle().
		Foreground(styles.Current.Text).
		Background(styles.Current.Surface).
		Padding(0, 1)
	delegate.Styles.NormalTitle = lipgloss.NewStyle().
		Foreground(styles.Current.Muted).
		Padding(0, 1)
	return delegate
}

// ApplyTheme restyles the list after a palette change
func (s *Sidebar) ApplyTheme() {
	s.list.SetDelegate(newSidebarDelegate())
	s.list.Styles.Title = lipgloss.NewStyle().
		Foreground(styles.Current.Accent).
		Bold(true).
		Padding(0, 1)
}

// SetCounts updates the badge counts for library sections
func (s *Sidebar) SetCounts(history, liked, watchLater int) {
	s.counts[SectionHistory] = history
	s.counts[SectionLiked] = liked
	s.counts[SectionWatchLater] = watchLater
	s.refreshItems()
}

// SetActive marks the section currently shown in the main area
func (s *Sidebar) SetActive(section Section) {
	s.active = section
	s.refreshItems()
}

func (s *Sidebar) refreshItems() {
	items := make([]list.Item, len(Sections))
	for i, sec := range Sections {
		items[i] = SectionItem{Section: sec, Count: s.counts[sec], Active: sec == s.active}
	}
	s.list.SetItems(items)
}

// SetSize updates the component dimensions
func (s *Sidebar) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.list.SetSize(width-BorderSize, height-BorderSize)
}

// SetFocused sets the focus state
func (s *Sidebar) SetFocused(focused bool) {
	s.focused = focused
}

// IsFocused returns the focus state
func (s Sidebar) IsFocused() bool {
	return s.focused
}

// Selected returns the section under the cursor
func (s Sidebar) Selected() Section {
	item, ok := s.list.SelectedItem().(SectionItem)
	if !ok {
		return SectionHome
	}
	return item.Section
}

// Select moves the cursor to section
func (s *Sidebar) Select(section Section) {
	for i, sec := range Sections {
		if sec == section {
			s.list.Select(i)
			return
		}
	}
}

// SectionAt returns the section rendered at row y relative to the sidebar top
func (s Sidebar) SectionAt(y int) (Section, bool) {
	// Border, title and the blank line under it
	i := y - 1 - 2
	if i < 0 || i >= len(Sections) {
		return 0, false
	}
	return Sections[i], true
}

// Update handles messages
func (s Sidebar) Update(msg tea.Msg) (Sidebar, tea.Cmd) {
	if !s.focused {
		return s, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			s.list.CursorDown()
		case "k", "up":
			s.list.CursorUp()
		case "g", "home":
			s.list.Select(0)
		case "G", "end":
			s.list.Select(len(s.list.Items()) - 1)
		}
	}

	return s, nil
}

// View renders the component
func (s Sidebar) View() string {
	style := styles.InactiveBorder
	if s.focused {
		style = styles.ActiveBorder
	}

	frameW, frameH := style.GetFrameSize()

	return style.
		Width(s.width - frameW).
		Height(s.height - frameH).
		Render(s.list.View())
}
