package command

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/pending/internal/model"
	"github.com/nhle/pending/internal/theme"
)

// CommandMsg is emitted when the user executes a command.
type CommandMsg string

// Kind identifies a palette command.
type Kind int

const (
	KindView Kind = iota
	KindTheme
	KindLanguage
	KindNew
	KindClear
	KindQuit
)

// Command is a parsed palette line. Only the field matching Kind is set.
type Command struct {
	Kind     Kind
	View     model.View
	Theme    model.Theme
	Language model.Language
}

// Parse turns a palette line such as "trash", "theme dark" or "lang en"
// into a Command.
func Parse(line string) (Command, error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return Command{}, fmt.Errorf("empty command")
	}

	name, args := fields[0], fields[1:]
	if v := model.View(name); v.Valid() && len(args) == 0 {
		return Command{Kind: KindView, View: v}, nil
	}

	switch name {
	case "theme":
		if len(args) == 0 {
			return Command{}, fmt.Errorf("usage: theme light|dark")
		}
		t := model.Theme(args[0])
		if !t.Valid() {
			return Command{}, fmt.Errorf("unknown theme %q", args[0])
		}
		return Command{Kind: KindTheme, Theme: t}, nil
	case "lang":
		if len(args) == 0 {
			return Command{}, fmt.Errorf("usage: lang pt|en")
		}
		l := model.Language(args[0])
		if !l.Valid() {
			return Command{}, fmt.Errorf("unknown language %q", args[0])
		}
		return Command{Kind: KindLanguage, Language: l}, nil
	case "new", "add":
		return Command{Kind: KindNew}, nil
	case "clear":
		return Command{Kind: KindClear}, nil
	case "quit", "q":
		return Command{Kind: KindQuit}, nil
	}
	return Command{}, fmt.Errorf("unknown command %q", name)
}

// Model is the command palette view.
type Model struct {
	input  textinput.Model
	styles theme.Styles
	width  int
	height int
}

// New creates a new command palette model.
func New(styles theme.Styles, width, height int) Model {
	ti := textinput.New()
	ti.Placeholder = "today · trash · theme dark · lang en · clear · quit"
	ti.Prompt = ": "
	ti.Focus()
	ti.Width = width - 6

	return Model{
		input:  ti,
		styles: styles,
		width:  width,
		height: height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the command palette.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			cmd := strings.TrimSpace(m.input.Value())
			m.input.Reset()
			if cmd != "" {
				return m, func() tea.Msg {
					return CommandMsg(cmd)
				}
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the command palette.
func (m Model) View() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(m.styles.Palette.Accent).
		MarginBottom(1).
		Render("Command Palette")

	content := lipgloss.JoinVertical(lipgloss.Left, title, m.input.View())

	return m.styles.Panel.
		Width(m.width - 4).
		Render(content)
}

// SetStyles switches the palette to another theme.
func (m *Model) SetStyles(styles theme.Styles) {
	m.styles = styles
}

// SetSize updates the command palette dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = width - 6
}

// Focus gives keyboard focus to the text input.
func (m *Model) Focus() tea.Cmd {
	return m.input.Focus()
}

// Reset clears any half-typed command.
func (m *Model) Reset() {
	m.input.Reset()
}
