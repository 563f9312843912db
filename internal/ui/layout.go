package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/pending/internal/theme"
)

// Layout manages the terminal layout dimensions.
type Layout struct {
	Width           int
	Height          int
	HeaderHeight    int
	TabsHeight      int
	StatusBarHeight int
}

// NewLayout creates a Layout with the given terminal dimensions.
// The header, view tabs and status bar take one line each.
func NewLayout(width, height int) Layout {
	return Layout{
		Width:           width,
		Height:          height,
		HeaderHeight:    1,
		TabsHeight:      1,
		StatusBarHeight: 1,
	}
}

// ContentWidth returns the full available width.
func (l Layout) ContentWidth() int {
	return l.Width
}

// ContentHeight returns the height available for the main content area,
// accounting for the header, tabs and status bar.
func (l Layout) ContentHeight() int {
	h := l.Height - l.HeaderHeight - l.TabsHeight - l.StatusBarHeight
	if h < 0 {
		return 0
	}
	return h
}

// RenderHeader renders the top bar with the brand on the left and the
// current view title on the right.
func (l Layout) RenderHeader(s theme.Styles, brand, title string) string {
	left := s.Header.Render(brand)
	right := s.Header.Render(title)

	gap := l.Width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	filler := lipgloss.NewStyle().
		Width(gap).
		Background(s.Header.GetBackground()).
		Render("")

	return lipgloss.JoinHorizontal(lipgloss.Top, left, filler, right)
}

// Tab is one entry of the view switcher.
type Tab struct {
	Label  string
	Active bool
}

// RenderTabs renders the view switcher line.
func (l Layout) RenderTabs(s theme.Styles, tabs []Tab) string {
	rendered := make([]string, len(tabs))
	for i, t := range tabs {
		if t.Active {
			rendered[i] = s.ActiveTab.Render(t.Label)
		} else {
			rendered[i] = s.Tab.Render(t.Label)
		}
	}
	return lipgloss.NewStyle().
		MaxWidth(l.Width).
		Render(strings.Join(rendered, ""))
}

// RenderStatusBar renders the bottom status bar with keyboard hints.
func (l Layout) RenderStatusBar(s theme.Styles, hints string) string {
	rendered := s.StatusBar.Render(hints)

	gap := l.Width - lipgloss.Width(rendered)
	if gap < 0 {
		gap = 0
	}

	filler := lipgloss.NewStyle().
		Width(gap).
		Background(s.StatusBar.GetBackground()).
		Render("")

	return lipgloss.JoinHorizontal(lipgloss.Top, rendered, filler)
}

// RenderWithFrame composes a full terminal view by vertically joining
// the header, tabs, content area, and status bar.
func (l Layout) RenderWithFrame(header, tabs, content, statusBar string) string {
	content = lipgloss.NewStyle().
		Height(l.ContentHeight()).
		MaxHeight(l.ContentHeight()).
		Render(content)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		tabs,
		content,
		statusBar,
	)
}
