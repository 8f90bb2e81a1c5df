package tui

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/tubes/internal/domain"
	"github.com/mmcdole/tubes/internal/format"
	"github.com/mmcdole/tubes/internal/search"
	"github.com/mmcdole/tubes/internal/state"
	"github.com/mmcdole/tubes/internal/tui/components"
	"github.com/mmcdole/tubes/internal/tui/styles"
)

// Focus is the pane receiving keys
type Focus int

const (
	FocusMain Focus = iota
	FocusSidebar
	FocusSearch
)

// Deps are the collaborators of the TUI
type Deps struct {
	Store       *state.Store
	Suggestions domain.SuggestionSource // nil disables suggestions
	Player      Player
	Logger      *slog.Logger
	StartPage   Page
}

// Model is the main Bubble Tea model for the application
type Model struct {
	Ready  bool
	Width  int
	Height int

	// Services
	Store     *state.Store
	Player    Player
	Suggester *search.Suggester
	Logger    *slog.Logger

	// Navigation
	Route     Route
	BackStack []Route
	Category  int // Index into state.Categories
	Focus     Focus
	ShowHelp  bool

	// UI Components
	SearchBar components.SearchBar
	Sidebar   components.Sidebar
	List      *components.VideoList
	Detail    components.Detail
	SortModal components.SortModal
	Spinner   spinner.Model

	snap      state.State
	theme     domain.Theme
	stateCh   chan state.Slice
	suggestCh chan search.Suggestions
	keys      KeyMap
	now       func() time.Time

	// Status line
	status    string
	statusErr bool
	statusID  int
}

// New creates the model and subscribes it to the store
func New(deps Deps) Model {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	stateCh := make(chan state.Slice, 32)
	suggestCh := make(chan search.Suggestions, 1)
	deps.Store.Subscribe(NewChannelObserver(stateCh))

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		Store:     deps.Store,
		Player:    deps.Player,
		Logger:    deps.Logger,
		Route:     Route{Page: deps.StartPage},
		SearchBar: components.NewSearchBar(deps.Store),
		Sidebar:   components.NewSidebar(),
		List:      components.NewVideoList(""),
		Detail:    components.NewDetail(),
		SortModal: components.NewSortModal(),
		Spinner:   sp,
		stateCh:   stateCh,
		suggestCh: suggestCh,
		keys:      DefaultKeyMap(),
		now:       time.Now,
	}
	if deps.Suggestions != nil {
		m.Suggester = search.NewSuggester(deps.Suggestions, search.DefaultSuggestDelay, suggestionSink(suggestCh), deps.Logger)
	}

	m.snap = deps.Store.Snapshot()
	m.applyTheme(m.snap.UI.Theme)
	if sec, ok := m.Route.section(); ok {
		m.Sidebar.SetActive(sec)
		m.Sidebar.Select(sec)
	}
	m.setFocus(FocusMain)
	m.syncView()
	return m
}

// Init starts loading the first page and listening for changes
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.load(m.Route, false),
		WaitForStateCmd(m.stateCh),
		WaitForSuggestionsCmd(m.suggestCh),
		m.Spinner.Tick,
	)
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true

	case tea.KeyMsg:
		cmds = append(cmds, m.handleKey(msg))

	case tea.MouseMsg:
		cmds = append(cmds, m.handleMouse(msg))

	case StateChangedMsg:
		cmds = append(cmds, WaitForStateCmd(m.stateCh))

	case SuggestionsMsg:
		m.SearchBar.ApplySuggestions(msg.Result)
		cmds = append(cmds, WaitForSuggestionsCmd(m.suggestCh))

	case FetchDoneMsg:
		// The failure itself is rendered from the store
		if msg.Err != nil && !errors.Is(msg.Err, context.Canceled) {
			m.Logger.Warn("fetch failed", "context", msg.Context, "error", msg.Err)
		}

	case PlayedMsg:
		cmds = append(cmds, m.setStatus("▶ Playing "+format.Truncate(msg.Video.Title, statusTitleLen), false))

	case ErrMsg:
		m.Logger.Error(msg.Context, "error", msg.Err)
		cmds = append(cmds, m.setStatus(msg.Error(), true))

	case ClearStatusMsg:
		if msg.ID == m.statusID {
			m.status = ""
			m.statusErr = false
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	m.snap = m.Store.Snapshot()
	m.syncView()
	return m, tea.Batch(cmds...)
}

// setStatus shows a transient message in the footer
func (m *Model) setStatus(text string, isErr bool) tea.Cmd {
	m.statusID++
	m.status = text
	m.statusErr = isErr
	return ClearStatusCmd(m.statusID)
}

func (m *Model) applyTheme(theme domain.Theme) {
	m.theme = theme
	styles.Apply(theme)
	m.Sidebar.ApplyTheme()
	m.Spinner.Style = styles.SpinnerStyle
}

// setFocus moves key focus to f
func (m *Model) setFocus(f Focus) tea.Cmd {
	if f == FocusSidebar && !m.sidebarVisible() {
		f = FocusMain
	}
	m.Focus = f
	m.Sidebar.SetFocused(f == FocusSidebar)
	m.List.SetFocused(f == FocusMain)

	if f == FocusSearch {
		return m.SearchBar.Focus()
	}
	if m.SearchBar.Focused() {
		m.SearchBar.Blur()
		if m.Suggester != nil {
			m.Suggester.Cancel()
		}
	}
	return nil
}

// cycleFocus moves focus through search, sidebar and main
func (m *Model) cycleFocus(dir int) tea.Cmd {
	order := []Focus{FocusSearch, FocusMain}
	if m.sidebarVisible() {
		order = []Focus{FocusSearch, FocusSidebar, FocusMain}
	}
	i := 0
	for j, f := range order {
		if f == m.Focus {
			i = j
		}
	}
	n := len(order)
	return m.setFocus(order[((i+dir)%n+n)%n])
}
