package tasklist

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/pending/internal/i18n"
	"github.com/nhle/pending/internal/keys"
	"github.com/nhle/pending/internal/model"
	"github.com/nhle/pending/internal/theme"
)

// QueryChangedMsg is sent whenever the search text changes.
type QueryChangedMsg struct {
	Query string
}

// Model is the projected task list with its search bar.
type Model struct {
	list        list.Model
	keys        *keys.KeyMap
	tr          *i18n.Translator
	styles      theme.Styles
	searchMode  bool
	searchInput textinput.Model
	width       int
	height      int
}

// New creates a new task list model.
func New(k *keys.KeyMap, tr *i18n.Translator, styles theme.Styles, width, height int) Model {
	l := list.New([]list.Item{}, NewDelegate(tr, styles), width, height-1)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()

	si := textinput.New()
	si.Prompt = "/ "
	si.Placeholder = tr.T(i18n.SearchHint)
	si.Width = width - 4

	return Model{
		list:        l,
		keys:        k,
		tr:          tr,
		styles:      styles,
		searchInput: si,
		width:       width,
		height:      height,
	}
}

// SetTasks replaces the displayed tasks, keeping the cursor in range.
func (m *Model) SetTasks(tasks []model.Task) tea.Cmd {
	items := make([]list.Item, len(tasks))
	for i, t := range tasks {
		items[i] = TaskItem{Task: t}
	}
	cmd := m.list.SetItems(items)
	if idx := m.list.Index(); idx >= len(items) && len(items) > 0 {
		m.list.Select(len(items) - 1)
	}
	return cmd
}

// SetAppearance switches language and theme.
func (m *Model) SetAppearance(tr *i18n.Translator, styles theme.Styles) {
	m.tr = tr
	m.styles = styles
	m.list.SetDelegate(NewDelegate(tr, styles))
	m.searchInput.Placeholder = tr.T(i18n.SearchHint)
}

// SelectedTask returns the task under the cursor.
func (m Model) SelectedTask() (model.Task, bool) {
	item, ok := m.list.SelectedItem().(TaskItem)
	if !ok {
		return model.Task{}, false
	}
	return item.Task, true
}

// Tasks returns the displayed tasks in order.
func (m Model) Tasks() []model.Task {
	items := m.list.Items()
	out := make([]model.Task, 0, len(items))
	for _, it := range items {
		if ti, ok := it.(TaskItem); ok {
			out = append(out, ti.Task)
		}
	}
	return out
}

// Searching reports whether the search bar has focus.
func (m Model) Searching() bool {
	return m.searchMode
}

// Query returns the current search text.
func (m Model) Query() string {
	return m.searchInput.Value()
}

// StartSearch focuses the search bar.
func (m *Model) StartSearch() tea.Cmd {
	m.searchMode = true
	return m.searchInput.Focus()
}

// ClearSearch empties the search bar.
func (m *Model) ClearSearch() tea.Cmd {
	m.searchMode = false
	m.searchInput.Blur()
	m.searchInput.Reset()
	return queryChanged("")
}

// Update handles messages for the task list view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && m.searchMode {
		return m.handleSearchKeys(msg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// handleSearchKeys filters as the user types; enter keeps the query and
// esc clears it.
func (m Model) handleSearchKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyEnter:
		m.searchMode = false
		m.searchInput.Blur()
		return m, nil
	case key.Matches(msg, m.keys.Back):
		cmd := m.ClearSearch()
		return m, cmd
	}

	before := m.searchInput.Value()
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	if after := m.searchInput.Value(); after != before {
		return m, tea.Batch(cmd, queryChanged(after))
	}
	return m, cmd
}

func queryChanged(q string) tea.Cmd {
	return func() tea.Msg { return QueryChangedMsg{Query: q} }
}

// View renders the search bar (when in use) above the list.
func (m Model) View() string {
	var search string
	if m.searchMode || m.searchInput.Value() != "" {
		search = lipgloss.NewStyle().
			Foreground(m.styles.Palette.Text).
			Padding(0, 1).
			Render(m.searchInput.View())
	}

	body := m.list.View()
	if len(m.list.Items()) == 0 {
		body = m.renderEmptyState()
	}

	if search == "" {
		return body
	}
	return lipgloss.JoinVertical(lipgloss.Left, search, body)
}

// renderEmptyState shows guidance text when the view has no tasks.
func (m Model) renderEmptyState() string {
	title := lipgloss.NewStyle().Bold(true).Render(m.tr.T(i18n.NoTasksTitle))
	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height-1).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(m.styles.Palette.Gray).
		Render(title + "\n" + m.tr.T(i18n.NoTasksSub))
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-1)
	m.searchInput.Width = width - 4
}
