package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/pending/internal/model"
)

// Palette is the set of colors a theme draws with.
type Palette struct {
	Accent  lipgloss.Color
	Green   lipgloss.Color
	Yellow  lipgloss.Color
	Red     lipgloss.Color
	Orange  lipgloss.Color
	Gray    lipgloss.Color
	Text    lipgloss.Color
	Subtle  lipgloss.Color
	Border  lipgloss.Color
	Surface lipgloss.Color
}

// Light and Dark are the two user-selectable palettes. The user picks one
// explicitly, so these are fixed colors rather than terminal-adaptive ones.
var (
	Light = Palette{
		Accent:  "#2B6CB0",
		Green:   "#2F855A",
		Yellow:  "#B7791F",
		Red:     "#C53030",
		Orange:  "#C05621",
		Gray:    "#718096",
		Text:    "#1A202C",
		Subtle:  "#CBD5E0",
		Border:  "#E2E8F0",
		Surface: "#F7FAFC",
	}
	Dark = Palette{
		Accent:  "#5B9BD5",
		Green:   "#6BCB77",
		Yellow:  "#FFD93D",
		Red:     "#FF6B6B",
		Orange:  "#FFA94D",
		Gray:    "#868E96",
		Text:    "#F8F9FA",
		Subtle:  "#495057",
		Border:  "#495057",
		Surface: "#212529",
	}
)

// PaletteFor returns the palette of theme t.
func PaletteFor(t model.Theme) Palette {
	if t == model.ThemeDark {
		return Dark
	}
	return Light
}

// Styles are the rendered styles of one theme.
type Styles struct {
	Palette Palette

	// Header is used for the application title bar.
	Header lipgloss.Style

	// StatusBar is used for the bottom key hint bar.
	StatusBar lipgloss.Style

	// Panel wraps dialogs, forms and the help overlay.
	Panel lipgloss.Style

	ListItem     lipgloss.Style
	SelectedItem lipgloss.Style
	Dimmed       lipgloss.Style
	Meta         lipgloss.Style
	Help         lipgloss.Style
	Error        lipgloss.Style

	// Star is the favorite marker; StarOff is shown for non-favorites.
	Star    lipgloss.Style
	StarOff lipgloss.Style

	// Tab and ActiveTab render the view switcher.
	Tab       lipgloss.Style
	ActiveTab lipgloss.Style
}

// New builds the styles of theme t.
func New(t model.Theme) Styles {
	p := PaletteFor(t)

	return Styles{
		Palette: p,
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Surface).
			Background(p.Accent).
			Padding(0, 1),
		StatusBar: lipgloss.NewStyle().
			Foreground(p.Text).
			Background(p.Subtle).
			Padding(0, 1),
		Panel: lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Border),
		ListItem: lipgloss.NewStyle().
			PaddingLeft(2).
			Foreground(p.Text),
		SelectedItem: lipgloss.NewStyle().
			PaddingLeft(1).
			Bold(true).
			Foreground(p.Accent).
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(p.Accent),
		Dimmed: lipgloss.NewStyle().
			Foreground(p.Gray).
			Strikethrough(true),
		Meta: lipgloss.NewStyle().
			Foreground(p.Gray),
		Help: lipgloss.NewStyle().
			Foreground(p.Gray).
			Italic(true),
		Error: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Red),
		Star: lipgloss.NewStyle().
			Foreground(p.Yellow),
		StarOff: lipgloss.NewStyle().
			Foreground(p.Subtle),
		Tab: lipgloss.NewStyle().
			Foreground(p.Gray).
			Padding(0, 1),
		ActiveTab: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Accent).
			Underline(true).
			Padding(0, 1),
	}
}

// PriorityBadge returns the badge style for a task's priority. Tasks
// without a priority get the neutral "update" badge.
func (s Styles) PriorityBadge(p *model.Priority) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	if p == nil {
		return base.Foreground(s.Palette.Accent)
	}

	switch *p {
	case model.PriorityHigh:
		return base.Foreground(s.Palette.Red)
	case model.PriorityMedium:
		return base.Foreground(s.Palette.Orange)
	case model.PriorityLow:
		return base.Foreground(s.Palette.Green)
	default:
		return base.Foreground(s.Palette.Gray)
	}
}
