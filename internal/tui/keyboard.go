package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/tubes/internal/domain"
	"github.com/mmcdole/tubes/internal/tui/components"
)

// handleKey handles keyboard input
func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		return tea.Quit
	}
	if m.ShowHelp {
		m.ShowHelp = false
		return nil
	}

	if handled, choice := m.SortModal.HandleKey(msg.String()); handled {
		if choice != nil {
			m.Store.SetSearchOrder(choice.Order)
			if m.Route.Page == PageSearch {
				return m.load(m.Route, true)
			}
		}
		return nil
	}

	switch {
	case m.Focus == FocusSearch:
		return m.handleSearchKey(msg)
	case m.Focus == FocusMain && m.List.IsFilterTyping():
		_, cmd := m.List.Update(msg)
		return cmd
	}

	// Global keys
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.ShowHelp = true
		return nil
	case key.Matches(msg, m.keys.Search):
		return m.setFocus(FocusSearch)
	case key.Matches(msg, m.keys.NextFocus):
		return m.cycleFocus(1)
	case key.Matches(msg, m.keys.PrevFocus):
		return m.cycleFocus(-1)
	case key.Matches(msg, m.keys.Theme):
		m.Store.ToggleTheme()
		return nil
	case key.Matches(msg, m.keys.Sidebar):
		m.Store.ToggleSidebar()
		return nil
	case key.Matches(msg, m.keys.Refresh):
		return m.load(m.Route, true)
	case key.Matches(msg, m.keys.Sort):
		m.SortModal.Show(components.SearchSortOptions(), m.snap.Search.Order)
		return nil
	}

	if m.Focus == FocusSidebar {
		return m.handleSidebarKey(msg)
	}
	return m.handleMainKey(msg)
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.NextFocus):
		return m.cycleFocus(1)
	case key.Matches(msg, m.keys.PrevFocus):
		return m.cycleFocus(-1)
	}

	event, query, cmd := m.SearchBar.Update(msg)
	switch event {
	case components.SearchFetch:
		if m.Suggester != nil {
			m.Suggester.Request(query)
		}
	case components.SearchCancel:
		if m.Suggester != nil {
			m.Suggester.Cancel()
		}
	case components.SearchSubmit:
		return tea.Batch(cmd, m.submitSearch(query))
	case components.SearchBlur:
		return tea.Batch(cmd, m.setFocus(FocusMain))
	}
	return cmd
}

// submitSearch leaves the search bar and shows results for query
func (m *Model) submitSearch(query string) tea.Cmd {
	m.setFocus(FocusMain)
	return m.navigate(Route{Page: PageSearch, ID: query})
}

func (m *Model) handleSidebarKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Enter):
		cmd := m.navigate(routeFor(m.Sidebar.Selected()))
		m.setFocus(FocusMain)
		return cmd
	case key.Matches(msg, m.keys.Back):
		return m.setFocus(FocusMain)
	}

	var cmd tea.Cmd
	m.Sidebar, cmd = m.Sidebar.Update(msg)
	return cmd
}

func (m *Model) handleMainKey(msg tea.KeyMsg) tea.Cmd {
	if consumed, cmd := m.List.Update(msg); consumed {
		return cmd
	}

	switch {
	case key.Matches(msg, m.keys.Back):
		return m.back()

	case key.Matches(msg, m.keys.NextCategory):
		if m.Route.Page == PageHome {
			return m.setCategory(m.Category + 1)
		}

	case key.Matches(msg, m.keys.PrevCategory):
		if m.Route.Page == PageHome {
			return m.setCategory(m.Category - 1)
		}

	case key.Matches(msg, m.keys.ScrollDown):
		m.Detail.ScrollDown(3)

	case key.Matches(msg, m.keys.ScrollUp):
		m.Detail.ScrollUp(3)

	case key.Matches(msg, m.keys.Enter):
		if v, ok := m.List.Selected(); ok {
			return m.navigate(Route{Page: PageVideo, ID: v.ID})
		}

	case key.Matches(msg, m.keys.Play):
		if v, ok := m.target(); ok {
			return PlayCmd(m.Player, m.Store, v)
		}

	case key.Matches(msg, m.keys.Like):
		if v, ok := m.target(); ok {
			if m.Store.ToggleLiked(v.ID) {
				return m.setStatus("♥ Added to liked videos", false)
			}
			return m.setStatus("Removed from liked videos", false)
		}

	case key.Matches(msg, m.keys.WatchLater):
		if v, ok := m.target(); ok {
			if m.Store.ToggleWatchLater(v.ID) {
				return m.setStatus("◷ Saved to watch later", false)
			}
			return m.setStatus("Removed from watch later", false)
		}

	case key.Matches(msg, m.keys.Channel):
		if v, ok := m.target(); ok {
			if v.ChannelID == "" {
				return m.setStatus("Channel unknown for this video", true)
			}
			return m.navigate(Route{Page: PageChannel, ID: v.ChannelID})
		}

	case key.Matches(msg, m.keys.Remove):
		return m.removeSelected()

	case key.Matches(msg, m.keys.ClearHistory):
		if m.Route.Page == PageHistory && len(m.snap.Library.History) > 0 {
			m.Store.ClearHistory()
			return m.setStatus("History cleared", false)
		}
	}
	return nil
}

// target is the video an action applies to: the open video on its page,
// otherwise the highlighted row
func (m *Model) target() (domain.Video, bool) {
	if m.Route.Page == PageVideo {
		if v := m.snap.Video.Data.Video; v != nil && v.ID == m.Route.ID {
			return *v, true
		}
		return domain.Video{}, false
	}
	return m.List.Selected()
}

// removeSelected drops the highlighted row from the list the page shows
func (m *Model) removeSelected() tea.Cmd {
	v, ok := m.List.Selected()
	if !ok {
		return nil
	}

	switch m.Route.Page {
	case PageHistory:
		m.Store.RemoveFromHistory(v.ID)
		return m.setStatus("Removed from history", false)
	case PageLiked:
		if m.Store.IsLiked(v.ID) {
			m.Store.ToggleLiked(v.ID)
		}
		return m.setStatus("Removed from liked videos", false)
	case PageWatchLater:
		if m.Store.InWatchLater(v.ID) {
			m.Store.ToggleWatchLater(v.ID)
		}
		return m.setStatus("Removed from watch later", false)
	}
	return nil
}

// handleMouse handles clicks and the scroll wheel
func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if msg.Action != tea.MouseActionPress {
		return nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.List.MoveUp()
		return nil
	case tea.MouseButtonWheelDown:
		m.List.MoveDown()
		return nil
	case tea.MouseButtonLeft:
	default:
		return nil
	}

	top := m.bodyTop()
	if m.SearchBar.Contains(msg.X, msg.Y) {
		if query, ok := m.SearchBar.ClickAt(msg.Y); ok {
			return m.submitSearch(query)
		}
		if m.Focus != FocusSearch {
			return m.setFocus(FocusSearch)
		}
		return nil
	}

	m.SearchBar.PressOutside()
	x, y := msg.X, msg.Y-top

	if m.sidebarVisible() {
		if x < SidebarWidth {
			m.setFocus(FocusSidebar)
			if sec, ok := m.Sidebar.SectionAt(y); ok {
				m.Sidebar.Select(sec)
				return m.navigate(routeFor(sec))
			}
			return nil
		}
		x -= SidebarWidth
	}

	wasFocused := m.Focus == FocusMain
	m.setFocus(FocusMain)
	switch m.Route.Page {
	case PageHome:
		if y < ChipsHeight {
			if i := m.chipAt(x); i >= 0 {
				return m.setCategory(i)
			}
			return nil
		}
		y -= ChipsHeight
	case PageVideo, PageChannel:
		y -= m.detailHeight()
	}

	// A click on the highlighted row opens it
	prev := m.List.Cursor()
	if m.List.ClickAt(y) && wasFocused && m.List.Cursor() == prev {
		if v, ok := m.List.Selected(); ok {
			return m.navigate(Route{Page: PageVideo, ID: v.ID})
		}
	}
	return nil
}
