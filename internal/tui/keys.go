package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the application
type KeyMap struct {
	// Navigation
	Back         key.Binding
	NextFocus    key.Binding
	PrevFocus    key.Binding
	NextCategory key.Binding
	PrevCategory key.Binding
	Enter        key.Binding
	ScrollUp     key.Binding
	ScrollDown   key.Binding

	// Actions
	Quit         key.Binding
	Help         key.Binding
	Search       key.Binding
	Play         key.Binding
	Like         key.Binding
	WatchLater   key.Binding
	Channel      key.Binding
	Remove       key.Binding
	ClearHistory key.Binding
	Refresh      key.Binding
	Sort         key.Binding
	Theme        key.Binding
	Sidebar      key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Back: key.NewBinding(
			key.WithKeys("esc", "backspace", "h"),
			key.WithHelp("esc", "back"),
		),
		NextFocus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next pane"),
		),
		PrevFocus: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "previous pane"),
		),
		NextCategory: key.NewBinding(
			key.WithKeys("]", "right"),
			key.WithHelp("]", "next category"),
		),
		PrevCategory: key.NewBinding(
			key.WithKeys("[", "left"),
			key.WithHelp("[", "previous category"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter", "l"),
			key.WithHelp("enter", "open"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("K"),
			key.WithHelp("K", "scroll details up"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("J"),
			key.WithHelp("J", "scroll details down"),
		),

		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Search: key.NewBinding(
			key.WithKeys("s", "ctrl+f"),
			key.WithHelp("s", "search"),
		),
		Play: key.NewBinding(
			key.WithKeys("p", " "),
			key.WithHelp("p", "play"),
		),
		Like: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "like"),
		),
		WatchLater: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "watch later"),
		),
		Channel: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "channel"),
		),
		Remove: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "remove"),
		),
		ClearHistory: key.NewBinding(
			key.WithKeys("X"),
			key.WithHelp("X", "clear history"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Sort: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "sort results"),
		),
		Theme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "toggle theme"),
		),
		Sidebar: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "toggle sidebar"),
		),
	}
}

// helpGroups returns bindings grouped for the help overlay
func (k KeyMap) helpGroups() [][]key.Binding {
	return [][]key.Binding{
		{k.NextFocus, k.PrevFocus, k.Enter, k.Back, k.PrevCategory, k.NextCategory, k.ScrollUp, k.ScrollDown},
		{k.Search, k.Play, k.Like, k.WatchLater, k.Channel, k.Sort, k.Refresh},
		{k.Remove, k.ClearHistory, k.Theme, k.Sidebar, k.Help, k.Quit},
	}
}
