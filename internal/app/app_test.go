package app

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/pending/internal/model"
	"github.com/nhle/pending/internal/store"
	"github.com/nhle/pending/internal/tasks"
	"github.com/nhle/pending/internal/ui/command"
	"github.com/nhle/pending/internal/ui/confirm"
	"github.com/nhle/pending/internal/ui/taskform"
	"github.com/nhle/pending/internal/ui/tasklist"
	"github.com/nhle/pending/tests/testutil"
)

var start = time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)

// flakyKV fails every write while broken is set.
type flakyKV struct {
	store.KV
	broken bool
}

func (f *flakyKV) Put(ctx context.Context, key string, value []byte) error {
	if f.broken {
		return errors.New("disk full")
	}
	return f.KV.Put(ctx, key, value)
}

type fixture struct {
	kv    *flakyKV
	tasks *tasks.Store
	clock *testutil.Clock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	kv := &flakyKV{KV: testutil.NewTestStore(t)}
	clock := testutil.NewClock(start)
	ts := tasks.Open(context.Background(), kv,
		tasks.WithIDFunc(testutil.SequentialIDs("task")),
		tasks.WithClock(clock.Now),
		tasks.WithMembers([]string{"alice", "bob"}),
	)
	return &fixture{kv: kv, tasks: ts, clock: clock}
}

func (f *fixture) add(t *testing.T, d model.Draft) model.Task {
	t.Helper()
	task, err := f.tasks.Create(context.Background(), d)
	require.NoError(t, err)
	f.clock.Advance(time.Second)
	return task
}

func (f *fixture) model(t *testing.T) Model {
	t.Helper()
	m := New(context.Background(), f.kv, f.tasks, []string{"alice", "bob"})
	return update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
}

// update feeds msg to m and delivers any store change notification, the
// way the running program would.
func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)

	select {
	case <-out.changes:
		next, _ = out.Update(storeChangedMsg{})
		out = next.(Model)
	default:
	}
	return out
}

func press(t *testing.T, m Model, k string) Model {
	t.Helper()
	return update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
}

func titles(m Model) []string {
	var out []string
	for _, t := range m.taskList.Tasks() {
		out = append(out, t.Title)
	}
	return out
}

func TestStartsOnSavedView(t *testing.T) {
	f := newFixture(t)
	today := f.tasks.Today()
	f.add(t, model.Draft{Title: "Today", Date: &today})
	f.add(t, model.Draft{Title: "Someday"})

	m := f.model(t)
	assert.Equal(t, model.ViewToday, m.prefs.View)
	assert.Equal(t, []string{"Today"}, titles(m))

	require.NoError(t, store.SaveView(context.Background(), f.kv, model.ViewInbox))
	m = f.model(t)
	assert.Equal(t, []string{"Today", "Someday"}, titles(m))
}

func TestSwitchViewPersists(t *testing.T) {
	f := newFixture(t)
	f.add(t, model.Draft{Title: "Someday"})
	m := f.model(t)

	m = press(t, m, "3")
	assert.Equal(t, model.ViewInbox, m.prefs.View)
	assert.Equal(t, []string{"Someday"}, titles(m))
	assert.Equal(t, model.ViewInbox, store.LoadPreferences(context.Background(), f.kv).View)

	m = press(t, m, "5")
	assert.Empty(t, titles(m))
}

func TestToggleKeysReproject(t *testing.T) {
	f := newFixture(t)
	f.add(t, model.Draft{Title: "A"})
	f.add(t, model.Draft{Title: "B"})
	m := press(t, f.model(t), "3")

	// Completing the first task moves it to the bottom.
	m = press(t, m, "x")
	assert.Equal(t, []string{"B", "A"}, titles(m))
	got, _ := f.tasks.Get("task-1")
	assert.True(t, got.Completed)

	m = press(t, m, "2")
	assert.Empty(t, titles(m))
	m = press(t, m, "3")
	m = press(t, m, "f")
	m = press(t, m, "2")
	assert.Equal(t, []string{"B"}, titles(m))
}

func TestDeleteAsksForConfirmation(t *testing.T) {
	f := newFixture(t)
	f.add(t, model.Draft{Title: "A"})
	m := press(t, f.model(t), "3")

	m = press(t, m, "d")
	assert.Equal(t, ScreenConfirm, m.screen)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	m = next.(Model)
	require.NotNil(t, cmd)
	m = update(t, m, cmd())
	assert.Equal(t, ScreenList, m.screen)
	assert.Equal(t, []string{"A"}, titles(m))

	m = press(t, m, "d")
	next, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	m = next.(Model)
	msg := cmd()
	require.IsType(t, confirm.ResultMsg{}, msg)
	m = update(t, m, msg)
	assert.Empty(t, titles(m))

	m = press(t, m, "5")
	assert.Equal(t, []string{"A"}, titles(m))

	m = press(t, m, "u")
	assert.Empty(t, titles(m))
	got, _ := f.tasks.Get("task-1")
	assert.False(t, got.Deleted)
}

func TestSubmittedFormCreatesTask(t *testing.T) {
	f := newFixture(t)
	m := press(t, f.model(t), "3")

	m = press(t, m, "n")
	assert.Equal(t, ScreenForm, m.screen)

	m = update(t, m, taskform.SubmittedMsg{Draft: model.Draft{Title: "From form"}})
	assert.Equal(t, ScreenList, m.screen)
	assert.Equal(t, []string{"From form"}, titles(m))
	assert.Empty(t, m.status)
}

func TestRejectedDraftShowsStatus(t *testing.T) {
	f := newFixture(t)
	m := f.model(t)

	m = update(t, m, taskform.SubmittedMsg{Draft: model.Draft{Title: "  "}})
	assert.Equal(t, "O título é obrigatório", m.status)
	assert.Zero(t, f.tasks.Len())
}

func TestFailedWriteShowsNotSaved(t *testing.T) {
	f := newFixture(t)
	f.add(t, model.Draft{Title: "A"})
	m := press(t, f.model(t), "3")

	f.kv.broken = true
	m = press(t, m, "f")
	assert.Equal(t, "Alteração não guardada", m.status)

	// The change is kept in memory and shown.
	got, _ := f.tasks.Get("task-1")
	assert.True(t, got.Favorite)
}

func TestAppearanceToggles(t *testing.T) {
	f := newFixture(t)
	m := f.model(t)

	m = press(t, m, "L")
	assert.Equal(t, model.LanguageEnglish, m.tr.Language())
	m = press(t, m, "T")
	assert.Equal(t, model.ThemeDark, m.prefs.Theme)

	prefs := store.LoadPreferences(context.Background(), f.kv)
	assert.Equal(t, model.LanguageEnglish, prefs.Language)
	assert.Equal(t, model.ThemeDark, prefs.Theme)
	assert.Contains(t, m.View(), "Pending")
}

func TestCommandPalette(t *testing.T) {
	f := newFixture(t)
	m := f.model(t)

	m = press(t, m, ":")
	assert.Equal(t, ScreenCommand, m.screen)

	m = update(t, m, command.CommandMsg("lang en"))
	assert.Equal(t, ScreenList, m.screen)
	assert.Equal(t, model.LanguageEnglish, m.prefs.Language)

	m = update(t, m, command.CommandMsg("trash"))
	assert.Equal(t, model.ViewTrash, m.prefs.View)

	m = update(t, m, command.CommandMsg("bogus"))
	assert.Contains(t, m.status, "unknown command")
}

func TestSearchFiltersCurrentView(t *testing.T) {
	f := newFixture(t)
	f.add(t, model.Draft{Title: "Buy milk"})
	f.add(t, model.Draft{Title: "Walk dog", Label: model.StringPtr("pets")})
	m := press(t, f.model(t), "3")

	m = press(t, m, "/")
	require.True(t, m.taskList.Searching())

	// Keys go to the search bar, not to task actions.
	m = press(t, m, "PET")
	m = update(t, m, tasklist.QueryChangedMsg{Query: m.taskList.Query()})
	assert.Equal(t, []string{"Walk dog"}, titles(m))

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	m = update(t, m, tasklist.QueryChangedMsg{})
	assert.Equal(t, []string{"Buy milk", "Walk dog"}, titles(m))
}

func TestViewRendersChrome(t *testing.T) {
	f := newFixture(t)
	m := f.model(t)

	out := m.View()
	assert.Contains(t, out, "Pendência")
	assert.Contains(t, out, "Meu Dia")
	assert.Contains(t, out, "Nada por aqui")
}
