package app

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/pending/internal/i18n"
	"github.com/nhle/pending/internal/keys"
	"github.com/nhle/pending/internal/model"
	"github.com/nhle/pending/internal/store"
	"github.com/nhle/pending/internal/tasks"
	"github.com/nhle/pending/internal/theme"
	"github.com/nhle/pending/internal/ui"
	"github.com/nhle/pending/internal/ui/command"
	"github.com/nhle/pending/internal/ui/confirm"
	helpview "github.com/nhle/pending/internal/ui/help"
	"github.com/nhle/pending/internal/ui/taskform"
	"github.com/nhle/pending/internal/ui/tasklist"
)

// Screen represents what occupies the content area.
type Screen int

const (
	ScreenList Screen = iota
	ScreenForm
	ScreenConfirm
	ScreenHelp
	ScreenCommand
)

// storeChangedMsg signals that the task collection changed.
type storeChangedMsg struct{}

// Model is the root Bubble Tea model that manages screen routing,
// layout, preferences and access to the task store.
type Model struct {
	ctx            context.Context
	screen         Screen
	previousScreen Screen
	layout         ui.Layout
	kv             store.KV
	tasks          *tasks.Store
	changes        chan struct{}
	unsubscribe    func()
	prefs          store.Preferences
	keys           *keys.KeyMap
	tr             *i18n.Translator
	styles         theme.Styles
	taskList       tasklist.Model
	form           taskform.Model
	confirm        confirm.Model
	helpView       helpview.Model
	commandView    command.Model
	status         string
	ready          bool
}

// New creates the root model over an opened task store. Preferences are
// read from kv; members feed the assignee picker.
func New(ctx context.Context, kv store.KV, ts *tasks.Store, members []string) Model {
	prefs := store.LoadPreferences(ctx, kv)
	k := keys.DefaultKeyMap()
	tr := i18n.New(prefs.Language)
	styles := theme.New(prefs.Theme)

	changes := make(chan struct{}, 1)
	unsubscribe := ts.Subscribe(func() {
		select {
		case changes <- struct{}{}:
		default:
		}
	})

	m := Model{
		ctx:         ctx,
		screen:      ScreenList,
		layout:      ui.NewLayout(80, 24),
		kv:          kv,
		tasks:       ts,
		changes:     changes,
		unsubscribe: unsubscribe,
		prefs:       prefs,
		keys:        k,
		tr:          tr,
		styles:      styles,
		taskList:    tasklist.New(k, tr, styles, 80, 21),
		form:        taskform.New(tr, styles, members, 80, 21),
		confirm:     confirm.New(tr, styles, 80),
		helpView:    helpview.New(k, styles, 80, 21),
		commandView: command.New(styles, 80, 21),
	}
	m.taskList.SetTasks(m.project())
	return m
}

// Init starts listening for store changes.
func (m Model) Init() tea.Cmd {
	return m.waitForChange()
}

// waitForChange blocks until the store reports a mutation.
func (m Model) waitForChange() tea.Cmd {
	ch := m.changes
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return storeChangedMsg{}
	}
}

// Update handles messages and dispatches to the active screen.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		w, h := m.layout.ContentWidth(), m.layout.ContentHeight()
		m.taskList.SetSize(w, h)
		m.form.SetSize(w, h)
		m.confirm.SetSize(w)
		m.helpView.SetSize(w, h)
		m.commandView.SetSize(w, h)
		// Forward to the active screen so huh forms can calculate their layout.
		return m.updateActiveScreen(msg)

	case storeChangedMsg:
		cmd := m.refresh()
		return m, tea.Batch(cmd, m.waitForChange())

	case tasklist.QueryChangedMsg:
		cmd := m.refresh()
		return m, cmd

	case taskform.SubmittedMsg:
		m.screen = ScreenList
		if _, err := m.tasks.Create(m.ctx, msg.Draft); err != nil {
			m.status = m.describe(err)
		}
		return m, nil

	case taskform.CancelMsg:
		m.screen = ScreenList
		return m, nil

	case confirm.ResultMsg:
		m.screen = ScreenList
		if msg.Confirmed {
			m.report(m.tasks.SoftDelete(m.ctx, msg.ID))
		}
		return m, nil

	case command.CommandMsg:
		m.screen = m.previousScreen
		cmd := m.executeCommand(string(msg))
		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			cmd := m.quit()
			return m, cmd
		}
		if m.screen == ScreenList {
			return m.handleListKeys(msg)
		}
		if key.Matches(msg, m.keys.Back) && m.screen == ScreenForm {
			m.screen = ScreenList
			return m, nil
		}
		if key.Matches(msg, m.keys.Back) && (m.screen == ScreenHelp || m.screen == ScreenCommand) {
			m.commandView.Reset()
			m.screen = m.previousScreen
			return m, nil
		}
		if key.Matches(msg, m.keys.Help) && m.screen == ScreenHelp {
			m.screen = m.previousScreen
			return m, nil
		}
	}

	return m.updateActiveScreen(msg)
}

// handleListKeys maps key presses on the task list to store operations.
func (m Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.taskList.Searching() {
		return m.updateActiveScreen(msg)
	}
	m.status = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		cmd := m.quit()
		return m, cmd

	case key.Matches(msg, m.keys.New):
		m.screen = ScreenForm
		cmd := m.form.Start()
		return m, cmd

	case key.Matches(msg, m.keys.Complete):
		if t, ok := m.taskList.SelectedTask(); ok {
			m.report(m.tasks.ToggleCompleted(m.ctx, t.ID))
		}
		return m, nil

	case key.Matches(msg, m.keys.Favorite):
		if t, ok := m.taskList.SelectedTask(); ok {
			m.report(m.tasks.ToggleFavorite(m.ctx, t.ID))
		}
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		if t, ok := m.taskList.SelectedTask(); ok && !t.Deleted {
			m.confirm.Ask(t.ID)
			m.screen = ScreenConfirm
		}
		return m, nil

	case key.Matches(msg, m.keys.Restore):
		if t, ok := m.taskList.SelectedTask(); ok && t.Deleted {
			m.report(m.tasks.Restore(m.ctx, t.ID))
		}
		return m, nil

	case key.Matches(msg, m.keys.ViewToday):
		cmd := m.setView(model.ViewToday)
		return m, cmd
	case key.Matches(msg, m.keys.ViewFavorites):
		cmd := m.setView(model.ViewFavorites)
		return m, cmd
	case key.Matches(msg, m.keys.ViewInbox):
		cmd := m.setView(model.ViewInbox)
		return m, cmd
	case key.Matches(msg, m.keys.ViewAssigned):
		cmd := m.setView(model.ViewAssigned)
		return m, cmd
	case key.Matches(msg, m.keys.ViewTrash):
		cmd := m.setView(model.ViewTrash)
		return m, cmd

	case key.Matches(msg, m.keys.Search):
		cmd := m.taskList.StartSearch()
		return m, cmd

	case key.Matches(msg, m.keys.Back):
		if m.taskList.Query() != "" {
			cmd := m.taskList.ClearSearch()
			return m, cmd
		}
		return m, nil

	case key.Matches(msg, m.keys.ToggleTheme):
		cmd := m.setTheme(m.prefs.Theme.Toggle())
		return m, cmd

	case key.Matches(msg, m.keys.ToggleLang):
		cmd := m.setLanguage(m.prefs.Language.Toggle())
		return m, cmd

	case key.Matches(msg, m.keys.Help):
		m.previousScreen = m.screen
		m.screen = ScreenHelp
		return m, nil

	case key.Matches(msg, m.keys.Command):
		m.previousScreen = m.screen
		m.screen = ScreenCommand
		cmd := m.commandView.Focus()
		return m, cmd
	}

	return m.updateActiveScreen(msg)
}

// updateActiveScreen dispatches the message to the current screen.
func (m Model) updateActiveScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.screen {
	case ScreenList:
		m.taskList, cmd = m.taskList.Update(msg)
	case ScreenForm:
		m.form, cmd = m.form.Update(msg)
	case ScreenConfirm:
		m.confirm, cmd = m.confirm.Update(msg)
	case ScreenHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	case ScreenCommand:
		m.commandView, cmd = m.commandView.Update(msg)
	}

	return m, cmd
}

// executeCommand handles a line from the command palette.
func (m *Model) executeCommand(line string) tea.Cmd {
	c, err := command.Parse(line)
	if err != nil {
		m.status = err.Error()
		return nil
	}

	switch c.Kind {
	case command.KindView:
		return m.setView(c.View)
	case command.KindTheme:
		return m.setTheme(c.Theme)
	case command.KindLanguage:
		return m.setLanguage(c.Language)
	case command.KindNew:
		m.screen = ScreenForm
		return m.form.Start()
	case command.KindClear:
		return m.taskList.ClearSearch()
	case command.KindQuit:
		return m.quit()
	}
	return nil
}

func (m *Model) setView(v model.View) tea.Cmd {
	if v == m.prefs.View {
		return nil
	}
	m.prefs.View = v
	m.savePref(store.SaveView(m.ctx, m.kv, v))
	return m.refresh()
}

func (m *Model) setTheme(t model.Theme) tea.Cmd {
	m.prefs.Theme = t
	m.savePref(store.SaveTheme(m.ctx, m.kv, t))
	m.styles = theme.New(t)
	m.applyAppearance()
	return nil
}

func (m *Model) setLanguage(l model.Language) tea.Cmd {
	m.prefs.Language = l
	m.savePref(store.SaveLanguage(m.ctx, m.kv, l))
	m.tr = i18n.New(l)
	m.applyAppearance()
	return nil
}

func (m *Model) applyAppearance() {
	m.taskList.SetAppearance(m.tr, m.styles)
	m.form.SetAppearance(m.tr, m.styles)
	m.confirm.SetAppearance(m.tr, m.styles)
	m.helpView.SetStyles(m.styles)
	m.commandView.SetStyles(m.styles)
}

// savePref keeps the in-memory preference even when it could not be saved.
func (m *Model) savePref(err error) {
	if err != nil {
		log.Printf("Warning: saving preference: %v", err)
		m.status = m.tr.T(i18n.NotSaved)
	}
}

// refresh re-projects the store into the task list.
func (m *Model) refresh() tea.Cmd {
	return m.taskList.SetTasks(m.project())
}

func (m Model) project() []model.Task {
	return m.tasks.Project(m.prefs.View, m.taskList.Query())
}

// report surfaces a store error in the status bar.
func (m *Model) report(err error) {
	if err != nil {
		m.status = m.describe(err)
	}
}

func (m Model) describe(err error) string {
	switch {
	case errors.Is(err, tasks.ErrEmptyTitle):
		return m.tr.T(i18n.TitleRequired)
	case errors.Is(err, tasks.ErrPersist):
		return m.tr.T(i18n.NotSaved)
	default:
		return err.Error()
	}
}

// quit flushes the task collection and stops listening for changes.
func (m *Model) quit() tea.Cmd {
	if err := m.tasks.Flush(m.ctx); err != nil {
		log.Printf("Warning: flushing tasks on exit: %v", err)
	}
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
		close(m.changes)
	}
	return tea.Quit
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader(m.styles, m.tr.T(i18n.Brand), m.tr.ViewTitle(m.prefs.View))
	tabs := m.layout.RenderTabs(m.styles, m.tabs())
	statusBar := m.layout.RenderStatusBar(m.styles, m.statusText())

	return m.layout.RenderWithFrame(header, tabs, m.renderContent(), statusBar)
}

func (m Model) tabs() []ui.Tab {
	counts := m.tasks.Counts()
	labels := map[model.View]i18n.Key{
		model.ViewToday:     i18n.Today,
		model.ViewFavorites: i18n.Favorites,
		model.ViewInbox:     i18n.Tasks,
		model.ViewAssigned:  i18n.Assigned,
		model.ViewTrash:     i18n.Trash,
	}

	out := make([]ui.Tab, len(model.Views))
	for i, v := range model.Views {
		out[i] = ui.Tab{
			Label:  fmt.Sprintf("%d %s (%d)", i+1, m.tr.T(labels[v]), counts[v]),
			Active: v == m.prefs.View,
		}
	}
	return out
}

// renderContent returns the rendered string for the current screen.
func (m Model) renderContent() string {
	switch m.screen {
	case ScreenForm:
		return m.form.View()
	case ScreenConfirm:
		return m.confirm.View()
	case ScreenHelp:
		return m.helpView.View()
	case ScreenCommand:
		return m.commandView.View()
	default:
		return m.taskList.View()
	}
}

// statusText returns the status message, or keyboard hints for the screen.
func (m Model) statusText() string {
	if m.status != "" {
		return m.styles.Error.Render(m.status)
	}

	switch m.screen {
	case ScreenForm:
		return "enter next | shift+tab back | esc cancel"
	case ScreenConfirm:
		return "y yes | n no | ←/→ select | enter confirm"
	case ScreenHelp:
		return "? close help | esc back"
	case ScreenCommand:
		return "enter execute | esc back"
	default:
		if m.taskList.Searching() {
			return "enter keep | esc clear"
		}
		return "q quit | ? help | n new | x done | f fav | d delete | u restore | 1-5 views | / search | T theme | L lang"
	}
}
