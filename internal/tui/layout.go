package tui

// Layout constants
const (
	SidebarWidth = 24
	MinMainWidth = 30
	FooterHeight = 1
	ChipsHeight  = 1
	MinListLines = 3
)

// sidebarVisible reports whether the sidebar is open and fits
func (m Model) sidebarVisible() bool {
	return m.snap.UI.SidebarOpen && m.Width-SidebarWidth >= MinMainWidth
}

// bodyTop is the first row below the search bar
func (m Model) bodyTop() int {
	return m.SearchBar.Height()
}

// mainWidth is the width of the content area
func (m Model) mainWidth() int {
	if m.sidebarVisible() {
		return m.Width - SidebarWidth
	}
	return m.Width
}

// updateLayout updates component sizes based on window size and page
func (m *Model) updateLayout() {
	if m.Width == 0 || m.Height == 0 {
		return
	}

	m.SearchBar.SetWidth(m.Width)
	bodyHeight := max(m.Height-m.bodyTop()-FooterHeight, MinListLines)
	mainWidth := m.mainWidth()

	if m.sidebarVisible() {
		m.Sidebar.SetSize(SidebarWidth, bodyHeight)
	}

	listHeight := bodyHeight
	if m.Route.Page == PageHome {
		listHeight -= ChipsHeight
	}
	if dh := m.detailHeight(); dh > 0 {
		m.Detail.SetSize(mainWidth, dh)
		listHeight -= dh
	}
	m.List.SetSize(mainWidth, max(listHeight, MinListLines))
}

// detailHeight returns the rows taken by the detail panel on the current page
func (m Model) detailHeight() int {
	if m.Route.Page != PageVideo && m.Route.Page != PageChannel {
		return 0
	}
	bodyHeight := max(m.Height-m.bodyTop()-FooterHeight, MinListLines)
	if m.Route.Page == PageVideo {
		return min(max(bodyHeight/2, 6), 14)
	}
	return min(max(bodyHeight/3, 5), 9)
}
