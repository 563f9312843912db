package taskform

import (
	"errors"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/pending/internal/i18n"
	"github.com/nhle/pending/internal/model"
	"github.com/nhle/pending/internal/theme"
)

// SubmittedMsg is dispatched when the form is completed.
type SubmittedMsg struct {
	Draft model.Draft
}

// CancelMsg is dispatched when the user cancels the form.
type CancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	title       string
	date        string
	time        string
	priority    string
	label       string
	assignee    string
	description string
}

// Model is the Bubble Tea model for the new task form.
type Model struct {
	form    *huh.Form
	fb      *formBindings
	tr      *i18n.Translator
	styles  theme.Styles
	members []string
	width   int
	height  int
}

// New creates a new task form model.
func New(tr *i18n.Translator, styles theme.Styles, members []string, width, height int) Model {
	return Model{
		fb:      &formBindings{},
		tr:      tr,
		styles:  styles,
		members: members,
		width:   width,
		height:  height,
	}
}

// SetAppearance switches language and theme for the next form.
func (m *Model) SetAppearance(tr *i18n.Translator, styles theme.Styles) {
	m.tr = tr
	m.styles = styles
}

// Start resets the bindings and builds a fresh form.
func (m *Model) Start() tea.Cmd {
	*m.fb = formBindings{}
	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the task form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		d := m.fb.draft()
		m.form = nil
		return m, func() tea.Msg { return SubmittedMsg{Draft: d} }
	case huh.StateAborted:
		m.form = nil
		return m, func() tea.Msg { return CancelMsg{} }
	}

	return m, cmd
}

// View renders the task form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(m.styles.Palette.Accent).
		MarginBottom(1).
		Render(m.tr.T(i18n.NewTask))

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(title + "\n" + m.form.View())
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm() *huh.Form {
	fields := []huh.Field{
		huh.NewInput().
			Title(m.tr.T(i18n.Title)).
			Value(&m.fb.title).
			Validate(m.validateTitle),
		huh.NewInput().
			Title(m.tr.T(i18n.Date)).
			Placeholder("YYYY-MM-DD").
			Value(&m.fb.date).
			Validate(m.validateDate),
		huh.NewInput().
			Title(m.tr.T(i18n.Time)).
			Placeholder("HH:MM").
			Value(&m.fb.time).
			Validate(m.validateTime),
		huh.NewSelect[string]().
			Title(m.tr.T(i18n.PriorityKey)).
			Options(m.priorityOptions()...).
			Value(&m.fb.priority),
		huh.NewInput().
			Title(m.tr.T(i18n.Label)).
			Value(&m.fb.label),
		m.assigneeField(),
		huh.NewText().
			Title(m.tr.T(i18n.Description)).
			Value(&m.fb.description),
	}

	return huh.NewForm(
		huh.NewGroup(fields...),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m *Model) priorityOptions() []huh.Option[string] {
	opts := []huh.Option[string]{huh.NewOption(m.tr.T(i18n.SelectPriority), "")}
	for _, p := range model.Priorities {
		opts = append(opts, huh.NewOption(m.tr.PriorityLabel(&p), string(p)))
	}
	return opts
}

// assigneeField is a picker over the configured members, or free text when
// none are configured.
func (m *Model) assigneeField() huh.Field {
	if len(m.members) == 0 {
		return huh.NewInput().
			Title(m.tr.T(i18n.Assignee)).
			Value(&m.fb.assignee)
	}
	opts := []huh.Option[string]{huh.NewOption(m.tr.T(i18n.SelectMember), "")}
	for _, name := range m.members {
		opts = append(opts, huh.NewOption(name, name))
	}
	return huh.NewSelect[string]().
		Title(m.tr.T(i18n.Assignee)).
		Options(opts...).
		Value(&m.fb.assignee)
}

func (fb *formBindings) draft() model.Draft {
	d := model.Draft{
		Title:       strings.TrimSpace(fb.title),
		Date:        model.StringPtr(strings.TrimSpace(fb.date)),
		Time:        model.StringPtr(strings.TrimSpace(fb.time)),
		Label:       model.StringPtr(strings.TrimSpace(fb.label)),
		Assignee:    model.StringPtr(fb.assignee),
		Description: model.StringPtr(strings.TrimSpace(fb.description)),
	}
	if fb.priority != "" {
		p := model.Priority(fb.priority)
		d.Priority = &p
	}
	return d
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

func (m Model) formHeight() int {
	h := m.height - 4
	if h < 10 {
		h = 10
	}
	return h
}

func (m Model) validateTitle(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New(m.tr.T(i18n.TitleRequired))
	}
	return nil
}

func (m Model) validateDate(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if _, err := time.Parse(model.DateLayout, s); err != nil {
		return errors.New(m.tr.T(i18n.InvalidDate))
	}
	return nil
}

func (m Model) validateTime(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if _, err := time.Parse(model.TimeLayout, s); err != nil {
		return errors.New(m.tr.T(i18n.InvalidTime))
	}
	return nil
}
