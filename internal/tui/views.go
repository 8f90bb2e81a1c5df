package tui

import (
	"errors"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/tubes/internal/domain"
	"github.com/mmcdole/tubes/internal/format"
	"github.com/mmcdole/tubes/internal/search"
	"github.com/mmcdole/tubes/internal/state"
	"github.com/mmcdole/tubes/internal/tui/components"
	"github.com/mmcdole/tubes/internal/tui/styles"
	"github.com/mmcdole/tubes/internal/youtube"
)

// syncView projects the current snapshot onto the components
func (m *Model) syncView() {
	snap := m.snap

	if snap.UI.Theme != m.theme {
		m.applyTheme(snap.UI.Theme)
	}
	if m.Focus == FocusSidebar && !m.sidebarVisible() {
		m.setFocus(FocusMain)
	}

	m.Sidebar.SetCounts(len(snap.Library.History), len(snap.Library.Liked), len(snap.Library.WatchLater))
	m.SearchBar.SetSpinner(m.Spinner.View())
	m.updateLayout()
	m.List.SetFilter(components.FilterByTitle)
	m.List.SetEmptyText("Nothing found")

	switch m.Route.Page {
	case PageHome:
		category := state.Categories[m.Category]
		m.List.SetTitle("Home · " + category)
		m.showVideos(snap.Videos.Resource, snap.Videos.Category == category)

	case PageTrending:
		m.List.SetTitle("Trending")
		m.showVideos(snap.Videos.Resource, snap.Videos.Category == "")

	case PageSearch:
		title := "Results for “" + m.Route.ID + "”"
		if snap.Search.Order != "" {
			title += " · " + components.SortLabel(components.SearchSortOptions(), snap.Search.Order)
		}
		m.List.SetTitle(title)
		m.List.SetEmptyText("No results")
		m.showVideos(snap.Search.Resource, snap.Search.Query == m.Route.ID)

	case PageVideo:
		m.syncVideoPage()

	case PageChannel:
		m.syncChannelPage()

	case PageHistory:
		m.List.SetTitle("History")
		m.List.SetEmptyText("Nothing watched yet")
		m.List.SetFilter(historyFilter(snap.Library.History))
		m.List.SetRows(m.historyRows(snap.Library.History))
		m.List.SetLoading(false, "")
		m.List.SetError("")

	case PageLiked:
		m.List.SetTitle("Liked videos")
		m.List.SetEmptyText("No liked videos")
		m.showCollection(snap.Liked, snap.Library.Liked)

	case PageWatchLater:
		m.List.SetTitle("Watch later")
		m.List.SetEmptyText("Nothing saved for later")
		m.showCollection(snap.WatchLater, snap.Library.WatchLater)
	}
}

// showVideos renders a list resource. current is false while the resource
// still holds data for a different request than the one on screen.
func (m *Model) showVideos(r state.Resource[[]domain.Video], current bool) {
	if !current {
		m.List.SetRows(nil)
		m.List.SetLoading(true, m.Spinner.View())
		m.List.SetError("")
		return
	}
	m.List.SetRows(m.videoRows(r.Data))
	m.showStatus(r.Status, r.Err)
}

func (m *Model) showStatus(status state.Status, err error) {
	m.List.SetLoading(status == state.StatusPending, m.Spinner.View())
	if status == state.StatusRejected {
		m.List.SetError(errorText(err))
	} else {
		m.List.SetError("")
	}
}

// showCollection renders saved videos, hiding any removed since they were fetched
func (m *Model) showCollection(r state.Resource[[]domain.Video], ids []string) {
	kept := make([]domain.Video, 0, len(r.Data))
	for _, v := range r.Data {
		if slices.Contains(ids, v.ID) {
			kept = append(kept, v)
		}
	}
	m.List.SetRows(m.videoRows(kept))
	m.showStatus(r.Status, r.Err)
}

func (m *Model) syncVideoPage() {
	detail := m.snap.Video
	m.List.SetTitle("Related videos")
	m.List.SetEmptyText("No related videos")

	if detail.ID != m.Route.ID {
		m.Detail.SetVideo(nil, false, false)
		m.showVideos(state.Resource[[]domain.Video]{}, false)
		return
	}

	page := detail.Data
	if page.Video != nil && page.Video.ID != m.Route.ID {
		page = state.VideoPage{}
	}
	if page.Video != nil {
		lib := m.snap.Library
		m.Detail.SetVideo(page.Video, lib.IsLiked(page.Video.ID), lib.InWatchLater(page.Video.ID))
	} else {
		m.Detail.SetVideo(nil, false, false)
	}
	m.List.SetRows(m.videoRows(page.Related))
	m.showStatus(detail.Status, detail.Err)

	if detail.Status == state.StatusFulfilled && page.Video == nil {
		m.List.SetError("Video not found")
	}
}

func (m *Model) syncChannelPage() {
	detail := m.snap.Channel
	m.List.SetTitle("Uploads")
	m.List.SetEmptyText("No uploads")

	if detail.ID != m.Route.ID {
		m.Detail.SetChannel(nil)
		m.showVideos(state.Resource[[]domain.Video]{}, false)
		return
	}

	page := detail.Data
	if page.Channel != nil && page.Channel.ID != m.Route.ID {
		page = state.ChannelPage{}
	}
	m.Detail.SetChannel(page.Channel)
	m.List.SetRows(m.videoRows(page.Videos))
	m.showStatus(detail.Status, detail.Err)

	if detail.Status == state.StatusFulfilled && page.Channel == nil {
		m.List.SetError("Channel not found")
	}
}

func (m *Model) videoRows(videos []domain.Video) []components.Row {
	rows := make([]components.Row, len(videos))
	for i, v := range videos {
		meta := []string{v.ChannelTitle}
		if v.ViewCount != nil {
			meta = append(meta, format.Views(*v.ViewCount)+" views")
		}
		if !v.PublishedAt.IsZero() {
			meta = append(meta, format.RelativeTime(v.PublishedAt, m.now()))
		}

		var badge string
		if v.Duration != "" {
			badge = format.Duration(v.Duration)
		}

		rows[i] = components.Row{
			Video:    v,
			Meta:     strings.Join(meta, " • "),
			Badge:    badge,
			Selected: m.snap.Library.IsLiked(v.ID),
		}
	}
	return rows
}

func (m *Model) historyRows(entries []domain.HistoryEntry) []components.Row {
	rows := make([]components.Row, len(entries))
	for i, e := range entries {
		rows[i] = components.Row{
			Video: domain.Video{
				ID:           e.VideoID,
				Title:        e.Title,
				ChannelTitle: e.ChannelTitle,
				ThumbnailURL: e.ThumbnailURL,
			},
			Meta:     e.ChannelTitle,
			Badge:    format.RelativeTime(e.WatchedAt, m.now()),
			Selected: m.snap.Library.IsLiked(e.VideoID),
		}
	}
	return rows
}

// historyFilter ranks history rows by title, then channel
func historyFilter(entries []domain.HistoryEntry) components.FilterFunc {
	return func(query string, rows []components.Row) []search.Match {
		index := make(map[string]int, len(rows))
		for i, r := range rows {
			index[r.Video.ID] = i
		}

		hits := search.FilterHistory(query, entries)
		matches := make([]search.Match, 0, len(hits))
		for _, e := range hits {
			if i, ok := index[e.VideoID]; ok {
				matches = append(matches, search.Match{Index: i})
			}
		}
		return matches
	}
}

// errorText turns a fetch failure into a line for the user
func errorText(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, domain.ErrAPIKeyMissing):
		return "No API key configured. Set TUBES_API_KEY or add api.key to the config file"
	case errors.Is(err, domain.ErrQuotaExceeded):
		return "YouTube API quota exceeded. Try again later"
	case errors.Is(err, domain.ErrProviderOffline):
		return "YouTube is unreachable. Check your connection"
	default:
		return youtube.ErrorMessage(err)
	}
}

// View renders the UI
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}
	if m.ShowHelp {
		return m.renderHelp()
	}

	body := m.renderMain()
	if m.sidebarVisible() {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.Sidebar.View(), body)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.SearchBar.View(),
		body,
		m.renderFooter(),
	)
}

func (m Model) renderMain() string {
	width := m.mainWidth()
	height := max(m.Height-m.bodyTop()-FooterHeight, MinListLines)

	var parts []string
	switch m.Route.Page {
	case PageHome:
		parts = append(parts, m.renderChips(width))
	case PageVideo, PageChannel:
		parts = append(parts, m.Detail.View())
	}
	parts = append(parts, m.List.View())

	if m.SortModal.IsVisible() {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, m.SortModal.View())
	}
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		MaxHeight(height).
		Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (m Model) renderChips(width int) string {
	chips := make([]string, len(state.Categories))
	for i, c := range state.Categories {
		if i == m.Category {
			chips[i] = styles.ChipActiveStyle.Render(c)
		} else {
			chips[i] = styles.ChipStyle.Render(c)
		}
	}
	return styles.Truncate(strings.Join(chips, " "), width)
}

// chipAt returns the category chip under column x
func (m Model) chipAt(x int) int {
	pos := 0
	for i, c := range state.Categories {
		w := lipgloss.Width(styles.ChipStyle.Render(c))
		if x >= pos && x < pos+w {
			return i
		}
		pos += w + 1
	}
	return -1
}

func (m Model) renderFooter() string {
	if m.status != "" {
		style := styles.SuccessStyle
		if m.statusErr {
			style = styles.ErrorStyle
		}
		return style.Render(styles.Truncate(m.status, m.Width))
	}

	var bindings []key.Binding
	switch m.Focus {
	case FocusSearch:
		bindings = []key.Binding{m.SearchBar.Keys().Submit, m.SearchBar.Keys().Down,
			m.SearchBar.Keys().Escape, m.keys.NextFocus}
	case FocusSidebar:
		bindings = []key.Binding{m.keys.Enter, m.keys.NextFocus, m.keys.Search, m.keys.Help, m.keys.Quit}
	default:
		bindings = []key.Binding{m.keys.Enter, m.keys.Play, m.keys.Like, m.keys.WatchLater, m.keys.Channel}
		switch m.Route.Page {
		case PageHome:
			bindings = append(bindings, m.keys.NextCategory)
		case PageSearch:
			bindings = append(bindings, m.keys.Sort)
		case PageHistory:
			bindings = append(bindings, m.keys.Remove, m.keys.ClearHistory)
		case PageLiked, PageWatchLater:
			bindings = append(bindings, m.keys.Remove)
		}
		bindings = append(bindings, m.keys.Search, m.keys.Help, m.keys.Quit)
	}
	return styles.Truncate(renderBindings(bindings), m.Width)
}

func renderBindings(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, styles.HelpKeyStyle.Render(h.Key)+" "+styles.HelpDescStyle.Render(h.Desc))
	}
	return strings.Join(parts, "  ")
}

func (m Model) renderHelp() string {
	var columns []string
	for _, group := range m.keys.helpGroups() {
		lines := make([]string, 0, len(group))
		for _, b := range group {
			h := b.Help()
			lines = append(lines, styles.HelpKeyStyle.Render(styles.Pad(h.Key, 8))+styles.HelpDescStyle.Render(h.Desc))
		}
		columns = append(columns, lipgloss.NewStyle().PaddingRight(4).Render(strings.Join(lines, "\n")))
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.TitleStyle.Render("Keyboard shortcuts"),
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, columns...),
		"",
		styles.DimStyle.Render("Press any key to close"),
	)
	box := styles.ActiveBorder.Padding(1, 2).Render(content)
	return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center, box)
}
