package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/tubes/internal/state"
	"github.com/mmcdole/tubes/internal/tui/components"
)

// Page identifies what the main area shows
type Page int

const (
	PageHome Page = iota
	PageTrending
	PageSearch
	PageVideo
	PageChannel
	PageHistory
	PageLiked
	PageWatchLater
)

// Route is a page plus its parameter: a query, video id or channel id
type Route struct {
	Page Page
	ID   string
}

// routeFor maps a sidebar section to its route
func routeFor(sec components.Section) Route {
	switch sec {
	case components.SectionTrending:
		return Route{Page: PageTrending}
	case components.SectionHistory:
		return Route{Page: PageHistory}
	case components.SectionLiked:
		return Route{Page: PageLiked}
	case components.SectionWatchLater:
		return Route{Page: PageWatchLater}
	default:
		return Route{Page: PageHome}
	}
}

// section returns the sidebar section a route belongs to
func (r Route) section() (components.Section, bool) {
	switch r.Page {
	case PageHome:
		return components.SectionHome, true
	case PageTrending:
		return components.SectionTrending, true
	case PageHistory:
		return components.SectionHistory, true
	case PageLiked:
		return components.SectionLiked, true
	case PageWatchLater:
		return components.SectionWatchLater, true
	default:
		return 0, false
	}
}

// navigate opens r, remembering the current route for back.
// Navigating to the current route reloads it.
func (m *Model) navigate(r Route) tea.Cmd {
	if r == m.Route {
		return m.load(r, true)
	}
	m.BackStack = append(m.BackStack, m.Route)
	return m.open(r)
}

// back returns to the previous route. The search or channel slice of the
// page being left is cleared unless the previous page shows it too.
func (m *Model) back() tea.Cmd {
	if len(m.BackStack) == 0 {
		return nil
	}
	prev := m.BackStack[len(m.BackStack)-1]
	m.BackStack = m.BackStack[:len(m.BackStack)-1]

	if m.Route.Page != prev.Page {
		switch m.Route.Page {
		case PageSearch:
			m.Store.ClearSearch()
		case PageChannel:
			m.Store.ClearChannel()
		}
	}
	return m.open(prev)
}

func (m *Model) open(r Route) tea.Cmd {
	m.Route = r
	m.List.Reset()
	if sec, ok := r.section(); ok {
		m.Sidebar.SetActive(sec)
		m.Sidebar.Select(sec)
	}
	m.syncView()
	return m.load(r, false)
}

// load fetches whatever r needs. Unless forced, data already loaded for r is reused.
func (m *Model) load(r Route, force bool) tea.Cmd {
	snap := m.snap
	switch r.Page {
	case PageHome:
		category := state.Categories[m.Category]
		if !force && snap.Videos.Category == category && snap.Videos.Status == state.StatusFulfilled {
			return nil
		}
		return FetchFeedCmd(m.Store, category)

	case PageTrending:
		if !force && snap.Videos.Category == "" && snap.Videos.Status == state.StatusFulfilled {
			return nil
		}
		return FetchTrendingCmd(m.Store)

	case PageSearch:
		if !force && snap.Search.Query == r.ID && snap.Search.Status == state.StatusFulfilled {
			return nil
		}
		return SearchCmd(m.Store, r.ID)

	case PageVideo:
		if !force && snap.Video.ID == r.ID && snap.Video.Status == state.StatusFulfilled {
			return nil
		}
		return FetchVideoCmd(m.Store, r.ID)

	case PageChannel:
		if !force && snap.Channel.ID == r.ID && snap.Channel.Status == state.StatusFulfilled {
			return nil
		}
		return FetchChannelCmd(m.Store, r.ID)

	case PageLiked:
		return FetchCollectionCmd(m.Store, state.CollectionLiked)

	case PageWatchLater:
		return FetchCollectionCmd(m.Store, state.CollectionWatchLater)
	}
	return nil
}

// setCategory switches the home feed category
func (m *Model) setCategory(i int) tea.Cmd {
	n := len(state.Categories)
	m.Category = ((i % n) + n) % n
	if m.Route.Page != PageHome {
		return m.navigate(Route{Page: PageHome})
	}
	m.List.Reset()
	return m.load(m.Route, false)
}
