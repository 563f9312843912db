package tasks_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/pending/internal/model"
	"github.com/nhle/pending/internal/store"
	"github.com/nhle/pending/internal/tasks"
	"github.com/nhle/pending/tests/testutil"
)

var start = time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)

// countingKV records writes made through it.
type countingKV struct {
	store.KV
	puts int
}

func (c *countingKV) Put(ctx context.Context, key string, value []byte) error {
	c.puts++
	return c.KV.Put(ctx, key, value)
}

type fixture struct {
	kv    *countingKV
	clock *testutil.Clock
	store *tasks.Store
}

func newFixture(t *testing.T, opts ...tasks.Option) *fixture {
	t.Helper()

	kv := &countingKV{KV: testutil.NewTestStore(t)}
	clock := testutil.NewClock(start)
	opts = append([]tasks.Option{
		tasks.WithIDFunc(testutil.SequentialIDs("task")),
		tasks.WithClock(clock.Now),
	}, opts...)

	return &fixture{
		kv:    kv,
		clock: clock,
		store: tasks.Open(context.Background(), kv, opts...),
	}
}

func (f *fixture) create(t *testing.T, title string) model.Task {
	t.Helper()
	task, err := f.store.Create(context.Background(), model.Draft{Title: title})
	require.NoError(t, err)
	f.clock.Advance(time.Second)
	return task
}

func TestCreate(t *testing.T) {
	f := newFixture(t)
	low := model.PriorityLow

	task, err := f.store.Create(context.Background(), model.Draft{
		Title:       "  Buy milk  ",
		Date:        model.StringPtr("2026-10-18"),
		Time:        model.StringPtr("18:00"),
		Priority:    &low,
		Label:       model.StringPtr("  "),
		Assignee:    model.StringPtr("bob"),
		Description: model.StringPtr(" semi-skimmed "),
	})
	require.NoError(t, err)

	assert.Equal(t, "task-1", task.ID)
	assert.Equal(t, "Buy milk", task.Title)
	assert.Equal(t, "2026-10-18", model.Deref(task.Date))
	assert.Equal(t, "18:00", model.Deref(task.Time))
	require.NotNil(t, task.Priority)
	assert.Equal(t, model.PriorityLow, *task.Priority)
	assert.Nil(t, task.Label)
	assert.Equal(t, "bob", model.Deref(task.Assignee))
	assert.Equal(t, "semi-skimmed", model.Deref(task.Description))
	assert.False(t, task.Completed)
	assert.False(t, task.Favorite)
	assert.False(t, task.Deleted)
	assert.Equal(t, start, task.CreatedAt)

	assert.Equal(t, 1, f.kv.puts)
	assert.Equal(t, []model.Task{task}, f.store.All())
}

func TestCreateRejectsBlankTitle(t *testing.T) {
	f := newFixture(t)

	for _, title := range []string{"", "   ", "\t\n"} {
		_, err := f.store.Create(context.Background(), model.Draft{Title: title})
		assert.ErrorIs(t, err, tasks.ErrEmptyTitle)
		assert.ErrorIs(t, err, tasks.ErrValidation)
	}

	assert.Zero(t, f.store.Len())
	assert.Zero(t, f.kv.puts)
}

func TestCreateRejectsMalformedFields(t *testing.T) {
	bogus := model.Priority("urgent")
	tests := map[string]model.Draft{
		"date":     {Title: "x", Date: model.StringPtr("18/10/2026")},
		"time":     {Title: "x", Date: model.StringPtr("2026-10-18"), Time: model.StringPtr("6pm")},
		"priority": {Title: "x", Priority: &bogus},
		"assignee": {Title: "x", Assignee: model.StringPtr("mallory")},
	}

	for name, draft := range tests {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t, tasks.WithMembers([]string{"alice", "bob"}))

			_, err := f.store.Create(context.Background(), draft)
			assert.ErrorIs(t, err, tasks.ErrValidation)
			assert.Zero(t, f.store.Len())
			assert.Zero(t, f.kv.puts)
		})
	}
}

func TestCreateAcceptsAnyAssigneeWithoutMembers(t *testing.T) {
	f := newFixture(t)

	task, err := f.store.Create(context.Background(), model.Draft{
		Title:    "x",
		Assignee: model.StringPtr("mallory"),
	})
	require.NoError(t, err)
	assert.Equal(t, "mallory", model.Deref(task.Assignee))
}

func TestCreatedAtStrictlyIncreases(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.store.Create(ctx, model.Draft{Title: "first"})
	require.NoError(t, err)
	second, err := f.store.Create(ctx, model.Draft{Title: "second"})
	require.NoError(t, err)

	f.clock.Advance(-time.Hour)
	third, err := f.store.Create(ctx, model.Draft{Title: "third"})
	require.NoError(t, err)

	assert.True(t, second.CreatedAt.After(first.CreatedAt))
	assert.True(t, third.CreatedAt.After(second.CreatedAt))
}

func TestCreateRejectsReusedID(t *testing.T) {
	f := newFixture(t, tasks.WithIDFunc(func() string { return "same" }))
	ctx := context.Background()

	_, err := f.store.Create(ctx, model.Draft{Title: "one"})
	require.NoError(t, err)

	_, err = f.store.Create(ctx, model.Draft{Title: "two"})
	require.Error(t, err)
	assert.Equal(t, 1, f.store.Len())
}

func TestToggles(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	task := f.create(t, "toggle me")

	require.NoError(t, f.store.ToggleCompleted(ctx, task.ID))
	require.NoError(t, f.store.ToggleFavorite(ctx, task.ID))

	got, ok := f.store.Get(task.ID)
	require.True(t, ok)
	assert.True(t, got.Completed)
	assert.True(t, got.Favorite)

	require.NoError(t, f.store.ToggleCompleted(ctx, task.ID))
	require.NoError(t, f.store.ToggleFavorite(ctx, task.ID))

	got, _ = f.store.Get(task.ID)
	assert.False(t, got.Completed)
	assert.False(t, got.Favorite)
	assert.Equal(t, 5, f.kv.puts)
}

func TestSoftDelete(t *testing.T) {
	for _, favorite := range []bool{true, false} {
		f := newFixture(t)
		ctx := context.Background()
		task := f.create(t, "doomed")
		if favorite {
			require.NoError(t, f.store.ToggleFavorite(ctx, task.ID))
		}

		require.NoError(t, f.store.SoftDelete(ctx, task.ID))

		got, ok := f.store.Get(task.ID)
		require.True(t, ok)
		assert.True(t, got.Deleted)
		assert.False(t, got.Favorite)
		assert.Equal(t, 1, f.store.Len())
	}
}

func TestSoftDeleteIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	task := f.create(t, "doomed")

	require.NoError(t, f.store.SoftDelete(ctx, task.ID))
	once := f.store.All()
	writes := f.kv.puts

	require.NoError(t, f.store.SoftDelete(ctx, task.ID))
	assert.Equal(t, once, f.store.All())
	assert.Equal(t, writes, f.kv.puts)
}

func TestRestore(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	task := f.create(t, "second chance")
	require.NoError(t, f.store.ToggleFavorite(ctx, task.ID))
	require.NoError(t, f.store.SoftDelete(ctx, task.ID))

	require.NoError(t, f.store.Restore(ctx, task.ID))

	got, _ := f.store.Get(task.ID)
	assert.False(t, got.Deleted)
	assert.False(t, got.Favorite)

	writes := f.kv.puts
	require.NoError(t, f.store.Restore(ctx, task.ID))
	assert.Equal(t, writes, f.kv.puts)
}

func TestUnknownIDIsNotFound(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.create(t, "existing")
	writes := f.kv.puts

	ops := map[string]func(context.Context, string) error{
		"complete": f.store.ToggleCompleted,
		"favorite": f.store.ToggleFavorite,
		"delete":   f.store.SoftDelete,
		"restore":  f.store.Restore,
	}
	for name, op := range ops {
		err := op(ctx, "missing")
		assert.ErrorIs(t, err, tasks.ErrNotFound, name)
	}
	assert.Equal(t, writes, f.kv.puts)
}

func TestReloadRestoresCollection(t *testing.T) {
	kv := testutil.NewTestStore(t)
	ctx := context.Background()
	clock := testutil.NewClock(start)
	s := tasks.Open(ctx, kv, tasks.WithClock(clock.Now))

	high := model.PriorityHigh
	a, err := s.Create(ctx, model.Draft{Title: "a", Priority: &high, Label: model.StringPtr("work")})
	require.NoError(t, err)
	_, err = s.Create(ctx, model.Draft{Title: "b", Date: model.StringPtr("2026-10-18")})
	require.NoError(t, err)
	require.NoError(t, s.ToggleFavorite(ctx, a.ID))
	require.NoError(t, s.SoftDelete(ctx, a.ID))

	reloaded := tasks.Open(ctx, kv)
	assert.Equal(t, s.All(), reloaded.All())
}

func TestOpenSkipsBrokenRecords(t *testing.T) {
	kv := testutil.NewTestStore(t)
	ctx := context.Background()
	require.NoError(t, kv.Put(ctx, store.KeyTasks, []byte(`[
		{"id":"x","title":"first","createdAt":"2026-10-01T00:00:00Z"},
		{"id":"","title":"no id","createdAt":"2026-10-02T00:00:00Z"},
		{"id":"x","title":"dup","createdAt":"2026-10-03T00:00:00Z"}
	]`)))

	s := tasks.Open(ctx, kv)
	require.Equal(t, 1, s.Len())
	got, _ := s.Get("x")
	assert.Equal(t, "first", got.Title)
}

func TestOpenCorruptCollectionStartsEmpty(t *testing.T) {
	kv := testutil.NewTestStore(t)
	ctx := context.Background()
	require.NoError(t, kv.Put(ctx, store.KeyTasks, []byte(`{"tasks":`)))

	s := tasks.Open(ctx, kv)
	assert.Zero(t, s.Len())
	assert.NotNil(t, s.All())
}

func TestAllReturnsCopies(t *testing.T) {
	f := newFixture(t)
	task, err := f.store.Create(context.Background(), model.Draft{
		Title: "immutable",
		Label: model.StringPtr("keep"),
	})
	require.NoError(t, err)

	all := f.store.All()
	all[0].Title = "changed"
	*all[0].Label = "changed"

	got, _ := f.store.Get(task.ID)
	assert.Equal(t, "immutable", got.Title)
	assert.Equal(t, "keep", model.Deref(got.Label))
}

func TestProjectUsesStoreClock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	due, err := f.store.Create(ctx, model.Draft{Title: "due", Date: model.StringPtr(start.Format(model.DateLayout))})
	require.NoError(t, err)
	_, err = f.store.Create(ctx, model.Draft{Title: "later", Date: model.StringPtr("2026-12-01")})
	require.NoError(t, err)

	got := f.store.Project(model.ViewToday, "")
	require.Len(t, got, 1)
	assert.Equal(t, due.ID, got[0].ID)
	assert.Equal(t, 1, f.store.Counts()[model.ViewToday])
}

func TestSubscribe(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	calls := 0
	unsubscribe := f.store.Subscribe(func() { calls++ })

	task := f.create(t, "watched")
	require.NoError(t, f.store.ToggleCompleted(ctx, task.ID))
	_, _ = f.store.Create(ctx, model.Draft{Title: " "})
	_ = f.store.ToggleFavorite(ctx, "missing")
	assert.Equal(t, 2, calls)

	unsubscribe()
	require.NoError(t, f.store.ToggleCompleted(ctx, task.ID))
	assert.Equal(t, 2, calls)
}

func newMockStore(t *testing.T) (*store.SQLiteStore, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return store.NewWithDB(sqlx.NewDb(db, "sqlmock")), mock
}

func TestWriteFailureKeepsMemoryAndReportsPersistError(t *testing.T) {
	kv, mock := newMockStore(t)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT value FROM kv WHERE key = ?")).
		WithArgs(store.KeyTasks).
		WillReturnRows(sqlmock.NewRows([]string{"value"}))
	mock.ExpectExec("INSERT INTO kv").
		WithArgs(store.KeyTasks, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(errors.New("database or disk is full"))

	s := tasks.Open(ctx, kv, tasks.WithClock(func() time.Time { return start }))
	notified := false
	s.Subscribe(func() { notified = true })

	task, err := s.Create(ctx, model.Draft{Title: "unsaved"})
	require.Error(t, err)
	assert.ErrorIs(t, err, tasks.ErrPersist)
	assert.NotErrorIs(t, err, tasks.ErrValidation)
	assert.Equal(t, "unsaved", task.Title)
	assert.Equal(t, 1, s.Len())
	assert.True(t, notified)

	// A later successful flush makes the change durable.
	mock.ExpectExec("INSERT INTO kv").
		WithArgs(store.KeyTasks, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	require.NoError(t, s.Flush(ctx))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestToggleWriteFailure(t *testing.T) {
	kv, mock := newMockStore(t)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT value FROM kv WHERE key = ?")).
		WithArgs(store.KeyTasks).
		WillReturnRows(sqlmock.NewRows([]string{"value"}).
			AddRow(`[{"id":"t1","title":"stored","completed":false,"createdAt":"2026-10-01T00:00:00Z"}]`))
	mock.ExpectExec("INSERT INTO kv").WillReturnError(errors.New("read-only file system"))

	s := tasks.Open(ctx, kv)
	err := s.ToggleCompleted(ctx, "t1")
	assert.ErrorIs(t, err, tasks.ErrPersist)

	got, ok := s.Get("t1")
	require.True(t, ok)
	assert.True(t, got.Completed)
	assert.NoError(t, mock.ExpectationsWereMet())
}
