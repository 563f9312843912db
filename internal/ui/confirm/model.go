package confirm

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/pending/internal/i18n"
	"github.com/nhle/pending/internal/theme"
)

// ResultMsg reports the user's answer for the task identified by ID.
type ResultMsg struct {
	ID        string
	Confirmed bool
}

// Model asks the user to confirm moving a task to the trash.
type Model struct {
	id     string
	yes    bool
	tr     *i18n.Translator
	styles theme.Styles
	width  int
}

// New creates a confirmation dialog.
func New(tr *i18n.Translator, styles theme.Styles, width int) Model {
	return Model{tr: tr, styles: styles, width: width}
}

// Ask resets the dialog for task id. "No" is preselected.
func (m *Model) Ask(id string) {
	m.id = id
	m.yes = false
}

// SetAppearance switches language and theme.
func (m *Model) SetAppearance(tr *i18n.Translator, styles theme.Styles) {
	m.tr = tr
	m.styles = styles
}

// Update handles key presses: y/n answer directly, arrows move the
// selection, enter submits it and esc cancels.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch km.String() {
	case "y", "Y":
		return m, m.answer(true)
	case "n", "N", "esc", "q":
		return m, m.answer(false)
	case "left", "right", "h", "l", "tab":
		m.yes = !m.yes
	case "enter":
		return m, m.answer(m.yes)
	}
	return m, nil
}

func (m Model) answer(ok bool) tea.Cmd {
	id := m.id
	return func() tea.Msg { return ResultMsg{ID: id, Confirmed: ok} }
}

// View renders the dialog.
func (m Model) View() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(m.styles.Palette.Text).
		Render(m.tr.T(i18n.ConfirmTitle))
	sub := m.styles.Meta.Render(m.tr.T(i18n.ConfirmSub))

	button := lipgloss.NewStyle().Padding(0, 2).MarginRight(1)
	active := button.
		Bold(true).
		Foreground(m.styles.Palette.Surface).
		Background(m.styles.Palette.Red)
	inactive := button.Foreground(m.styles.Palette.Gray)

	yes, no := inactive.Render(m.tr.T(i18n.YesDelete)), active.Render(m.tr.T(i18n.No))
	if m.yes {
		yes, no = active.Render(m.tr.T(i18n.YesDelete)), inactive.Render(m.tr.T(i18n.No))
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		title, sub, "",
		lipgloss.JoinHorizontal(lipgloss.Top, yes, no),
	)

	w := m.width - 4
	if w > 60 {
		w = 60
	}
	return m.styles.Panel.Width(w).Render(content)
}

// SetSize updates the dialog width.
func (m *Model) SetSize(width int) {
	m.width = width
}
