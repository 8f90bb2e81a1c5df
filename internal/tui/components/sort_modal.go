package components

import (
	"strings"

	"github.com/mmcdole/tubes/internal/domain"
	"github.com/mmcdole/tubes/internal/tui/styles"
)

// SortOption is one provider ordering
type SortOption struct {
	Label string
	Order string // Value sent to the provider, empty for its default
}

// SearchSortOptions returns the orderings offered for search results
func SearchSortOptions() []SortOption {
	return []SortOption{
		{Label: "Relevance", Order: ""},
		{Label: "Upload date", Order: domain.OrderDate},
		{Label: "View count", Order: domain.OrderViewCount},
	}
}

// SortLabel returns the label for order among options
func SortLabel(options []SortOption, order string) string {
	for _, opt := range options {
		if opt.Order == order {
			return opt.Label
		}
	}
	return order
}

// SortModal is a small popup for choosing result order
type SortModal struct {
	visible bool
	options []SortOption
	cursor  int
	active  string
}

// NewSortModal creates a new sort modal
func NewSortModal() SortModal {
	return SortModal{}
}

// Show displays the modal with the cursor on the active order
func (m *SortModal) Show(options []SortOption, active string) {
	m.visible = true
	m.options = options
	m.active = active
	m.cursor = 0
	for i, opt := range options {
		if opt.Order == active {
			m.cursor = i
			break
		}
	}
}

// Hide dismisses the modal
func (m *SortModal) Hide() {
	m.visible = false
}

// IsVisible returns whether the modal is shown
func (m SortModal) IsVisible() bool {
	return m.visible
}

// HandleKey processes a key press, returns (handled, selection).
// If selection is non-nil, the user confirmed a choice.
func (m *SortModal) HandleKey(key string) (handled bool, selection *SortOption) {
	if !m.visible {
		return false, nil
	}

	switch key {
	case "j", "down":
		if m.cursor < len(m.options)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "enter":
		m.visible = false
		if m.cursor < len(m.options) {
			chosen := m.options[m.cursor]
			return true, &chosen
		}
	case "esc", "o", "q":
		m.visible = false
	}

	return true, nil // consume all keys when visible
}

// View renders the sort modal
func (m SortModal) View() string {
	if !m.visible || len(m.options) == 0 {
		return ""
	}

	lines := make([]string, 0, len(m.options))
	for i, opt := range m.options {
		prefix := "  "
		if opt.Order == m.active {
			prefix = "✓ "
		}
		text := styles.Pad(prefix+opt.Label, 20)

		switch {
		case i == m.cursor:
			lines = append(lines, styles.SelectedItemStyle.Render(text))
		case opt.Order == m.active:
			lines = append(lines, styles.AccentStyle.Padding(0, 1).Render(text))
		default:
			lines = append(lines, styles.NormalItemStyle.Render(text))
		}
	}

	return styles.ActiveBorder.
		Padding(0, 1).
		Render(styles.TitleStyle.Render("Sort results by") + "\n" + strings.Join(lines, "\n"))
}
