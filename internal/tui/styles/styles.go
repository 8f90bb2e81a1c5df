package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/mmcdole/tubes/internal/domain"
)

// Palette is one color scheme
type Palette struct {
	Accent     lipgloss.Color
	Background lipgloss.Color
	Surface    lipgloss.Color // Selected row background
	Dim        lipgloss.Color
	Muted      lipgloss.Color
	Text       lipgloss.Color
	Green      lipgloss.Color
	Red        lipgloss.Color
}

var (
	DarkPalette = Palette{
		Accent:     lipgloss.Color("#FF4E45"),
		Background: lipgloss.Color("#0F0F0F"),
		Surface:    lipgloss.Color("#272727"),
		Dim:        lipgloss.Color("#717171"),
		Muted:      lipgloss.Color("#AAAAAA"),
		Text:       lipgloss.Color("#F1F1F1"),
		Green:      lipgloss.Color("#2BA640"),
		Red:        lipgloss.Color("#FF4E45"),
	}

	LightPalette = Palette{
		Accent:     lipgloss.Color("#CC0000"),
		Background: lipgloss.Color("#FFFFFF"),
		Surface:    lipgloss.Color("#E5E5E5"),
		Dim:        lipgloss.Color("#909090"),
		Muted:      lipgloss.Color("#606060"),
		Text:       lipgloss.Color("#0F0F0F"),
		Green:      lipgloss.Color("#107516"),
		Red:        lipgloss.Color("#CC0000"),
	}
)

// Active palette and the styles derived from it. Apply swaps them.
var (
	Current Palette

	ActiveBorder   lipgloss.Style
	InactiveBorder lipgloss.Style

	TitleStyle     lipgloss.Style
	SubtitleStyle  lipgloss.Style
	DimStyle       lipgloss.Style
	AccentStyle    lipgloss.Style
	ErrorStyle     lipgloss.Style
	SuccessStyle   lipgloss.Style
	HighlightStyle lipgloss.Style

	ChipStyle       lipgloss.Style
	ChipActiveStyle lipgloss.Style

	SidebarStyle lipgloss.Style

	SelectedItemStyle lipgloss.Style
	NormalItemStyle   lipgloss.Style

	DropdownStyle lipgloss.Style

	HelpKeyStyle  lipgloss.Style
	HelpDescStyle lipgloss.Style

	SpinnerStyle      lipgloss.Style
	FilterStyle       lipgloss.Style
	FilterPromptStyle lipgloss.Style

	MatchHighlightStyle lipgloss.Style
)

func init() {
	Apply(domain.ThemeDark)
}

// Apply rebuilds every style for theme
func Apply(theme domain.Theme) {
	p := DarkPalette
	if theme == domain.ThemeLight {
		p = LightPalette
	}
	Current = p

	ActiveBorder = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.Accent)
	InactiveBorder = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.Dim)

	TitleStyle = lipgloss.NewStyle().Foreground(p.Text).Bold(true)
	SubtitleStyle = lipgloss.NewStyle().Foreground(p.Muted)
	DimStyle = lipgloss.NewStyle().Foreground(p.Dim)
	AccentStyle = lipgloss.NewStyle().Foreground(p.Accent)
	ErrorStyle = lipgloss.NewStyle().Foreground(p.Red)
	SuccessStyle = lipgloss.NewStyle().Foreground(p.Green)
	HighlightStyle = lipgloss.NewStyle().Foreground(p.Background).Background(p.Accent).Padding(0, 1)

	ChipStyle = lipgloss.NewStyle().Foreground(p.Text).Background(p.Surface).Padding(0, 1)
	ChipActiveStyle = lipgloss.NewStyle().Foreground(p.Background).Background(p.Text).Padding(0, 1)

	SidebarStyle = lipgloss.NewStyle().Padding(0, 1)

	SelectedItemStyle = lipgloss.NewStyle().Foreground(p.Text).Background(p.Surface).Padding(0, 1)
	NormalItemStyle = lipgloss.NewStyle().Foreground(p.Muted).Padding(0, 1)

	DropdownStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.Dim).Padding(0, 1)

	HelpKeyStyle = lipgloss.NewStyle().Foreground(p.Accent)
	HelpDescStyle = lipgloss.NewStyle().Foreground(p.Dim)

	SpinnerStyle = lipgloss.NewStyle().Foreground(p.Accent)
	FilterStyle = lipgloss.NewStyle().Foreground(p.Accent)
	FilterPromptStyle = lipgloss.NewStyle().Foreground(p.Accent).Bold(true)

	MatchHighlightStyle = lipgloss.NewStyle().Foreground(p.Accent).Bold(true)
}

// Truncate shortens s to width terminal cells, ending with an ellipsis
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(s, width, "…")
}

// Pad right-pads s with spaces to width terminal cells
func Pad(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return Truncate(s, width)
	}
	return s + strings.Repeat(" ", width-w)
}

// RowPart is a segment of a list row with an optional foreground color
type RowPart struct {
	Text       string
	Foreground *lipgloss.Color
}

// RenderListRow renders a row whose background is uniform when selected.
// Each part is styled on its own so ANSI resets do not break the highlight.
func RenderListRow(parts []RowPart, selected bool, width int) string {
	var b strings.Builder
	visible := 0

	for _, part := range parts {
		style := lipgloss.NewStyle()
		switch {
		case part.Foreground != nil:
			style = style.Foreground(*part.Foreground)
		case selected:
			style = style.Foreground(Current.Text)
		default:
			style = style.Foreground(Current.Muted)
		}
		if selected {
			style = style.Background(Current.Surface)
		}
		b.WriteString(style.Render(part.Text))
		visible += lipgloss.Width(part.Text)
	}

	fill := lipgloss.NewStyle()
	if selected {
		fill = fill.Background(Current.Surface)
	}
	if pad := width - visible - 2; pad > 0 {
		b.WriteString(fill.Render(strings.Repeat(" ", pad)))
	}

	margin := fill.Render(" ")
	return margin + b.String() + margin
}

// Highlight renders s with the bytes at positions emphasized
func Highlight(s string, positions []int, base lipgloss.Style) string {
	if len(positions) == 0 {
		return base.Render(s)
	}
	marked := make(map[int]bool, len(positions))
	for _, p := range positions {
		marked[p] = true
	}

	match := MatchHighlightStyle
	var b strings.Builder
	for i, r := range s {
		if marked[i] {
			b.WriteString(match.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}
	return b.String()
}
