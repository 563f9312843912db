// Package tasks owns the authoritative in-memory task collection. Every
// mutation writes the whole collection through to the key/value store
// before returning.
//
// A Store is not safe for concurrent use. It is meant to be driven from a
// single UI loop, one call at a time.
package tasks

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nhle/pending/internal/model"
	"github.com/nhle/pending/internal/store"
	"github.com/nhle/pending/internal/view"
)

// Option configures a Store.
type Option func(*Store)

// WithIDFunc replaces the UUID generator used for new task ids.
func WithIDFunc(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

// WithClock replaces time.Now for creation timestamps and "today".
func WithClock(fn func() time.Time) Option {
	return func(s *Store) { s.now = fn }
}

// WithMembers restricts assignees to the given member list. An empty list
// accepts any assignee.
func WithMembers(members []string) Option {
	return func(s *Store) { s.members = append([]string(nil), members...) }
}

type subscriber struct {
	id int
	fn func()
}

// Store holds the task collection in creation order.
type Store struct {
	kv      store.KV
	tasks   []model.Task
	index   map[string]int
	newID   func() string
	now     func() time.Time
	members []string

	subscribers []subscriber
	nextSubID   int

	// lastCreated keeps CreatedAt strictly increasing even if the clock
	// stalls or steps back.
	lastCreated time.Time
}

// Open loads the task collection from kv. Missing or unreadable data
// yields an empty collection. Records without an id, or repeating an id
// already seen, are skipped.
func Open(ctx context.Context, kv store.KV, opts ...Option) *Store {
	s := &Store{
		kv:    kv,
		tasks: make([]model.Task, 0),
		index: make(map[string]int),
		newID: uuid.NewString,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	loaded := store.Load(ctx, kv, store.KeyTasks, []model.Task{})
	for _, t := range loaded {
		if t.ID == "" {
			log.Printf("skipping stored task without id (%q)", t.Title)
			continue
		}
		if _, dup := s.index[t.ID]; dup {
			log.Printf("skipping stored task with duplicate id %s", t.ID)
			continue
		}
		s.index[t.ID] = len(s.tasks)
		s.tasks = append(s.tasks, t)
		if t.CreatedAt.After(s.lastCreated) {
			s.lastCreated = t.CreatedAt
		}
	}

	return s
}

// Create validates the draft and appends a new task built from it. A
// rejected draft leaves the collection and the store untouched.
func (s *Store) Create(ctx context.Context, d model.Draft) (model.Task, error) {
	t, err := s.build(d)
	if err != nil {
		return model.Task{}, err
	}

	s.index[t.ID] = len(s.tasks)
	s.tasks = append(s.tasks, t)
	s.lastCreated = t.CreatedAt

	err = s.persist(ctx)
	s.notify()
	return t.Clone(), err
}

// ToggleCompleted flips the completed flag of the task with id.
func (s *Store) ToggleCompleted(ctx context.Context, id string) error {
	return s.mutate(ctx, id, func(t *model.Task) bool {
		t.Completed = !t.Completed
		return true
	})
}

// ToggleFavorite flips the favorite flag of the task with id.
func (s *Store) ToggleFavorite(ctx context.Context, id string) error {
	return s.mutate(ctx, id, func(t *model.Task) bool {
		t.Favorite = !t.Favorite
		return true
	})
}

// SoftDelete moves the task to the trash and clears its favorite flag.
// Deleting a task that is already in the trash does nothing.
func (s *Store) SoftDelete(ctx context.Context, id string) error {
	return s.mutate(ctx, id, func(t *model.Task) bool {
		if t.Deleted {
			return false
		}
		t.Deleted = true
		t.Favorite = false
		return true
	})
}

// Restore takes the task out of the trash. Its favorite flag stays off.
// Restoring a task that is not in the trash does nothing.
func (s *Store) Restore(ctx context.Context, id string) error {
	return s.mutate(ctx, id, func(t *model.Task) bool {
		if !t.Deleted {
			return false
		}
		t.Deleted = false
		return true
	})
}

// Get returns a copy of the task with id.
func (s *Store) Get(id string) (model.Task, bool) {
	i, ok := s.index[id]
	if !ok {
		return model.Task{}, false
	}
	return s.tasks[i].Clone(), true
}

// All returns a copy of the whole collection, trash included, in creation
// order.
func (s *Store) All() []model.Task {
	out := make([]model.Task, len(s.tasks))
	for i, t := range s.tasks {
		out[i] = t.Clone()
	}
	return out
}

// Len returns the number of tasks, trash included.
func (s *Store) Len() int {
	return len(s.tasks)
}

// Project returns the sorted tasks of view v matching query, using the
// store clock for "today".
func (s *Store) Project(v model.View, query string) []model.Task {
	return view.Project(s.tasks, v, query, s.Today())
}

// Counts returns the number of tasks in each view.
func (s *Store) Counts() map[model.View]int {
	return view.Counts(s.tasks, s.Today())
}

// Today is the current local date according to the store clock.
func (s *Store) Today() string {
	return view.Today(s.now())
}

// Subscribe registers fn to run after every change to the collection and
// returns a function that removes it.
func (s *Store) Subscribe(fn func()) (unsubscribe func()) {
	s.nextSubID++
	id := s.nextSubID
	s.subscribers = append(s.subscribers, subscriber{id: id, fn: fn})

	return func() {
		for i, sub := range s.subscribers {
			if sub.id == id {
				s.subscribers = append(s.subscribers[:i], s.subscribers[i+1:]...)
				return
			}
		}
	}
}

// Flush writes the full collection. It is called on shutdown so a
// previously failed write gets another chance.
func (s *Store) Flush(ctx context.Context) error {
	return s.persist(ctx)
}

func (s *Store) mutate(ctx context.Context, id string, fn func(*model.Task) bool) error {
	i, ok := s.index[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if !fn(&s.tasks[i]) {
		return nil
	}

	err := s.persist(ctx)
	s.notify()
	return err
}

func (s *Store) persist(ctx context.Context) error {
	if err := store.Save(ctx, s.kv, store.KeyTasks, s.tasks); err != nil {
		log.Printf("warning: task change kept in memory only: %v", err)
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return nil
}

func (s *Store) notify() {
	for _, sub := range s.subscribers {
		sub.fn()
	}
}

// build turns a draft into a task, trimming text fields and rejecting
// anything malformed.
func (s *Store) build(d model.Draft) (model.Task, error) {
	title := strings.TrimSpace(d.Title)
	if title == "" {
		return model.Task{}, &validationError{err: ErrEmptyTitle}
	}

	t := model.Task{
		Title:       title,
		Date:        trimmed(d.Date),
		Time:        trimmed(d.Time),
		Label:       trimmed(d.Label),
		Assignee:    trimmed(d.Assignee),
		Description: trimmed(d.Description),
	}

	if t.Date != nil {
		if _, err := time.Parse(model.DateLayout, *t.Date); err != nil {
			return model.Task{}, invalidf("date %q must be YYYY-MM-DD", *t.Date)
		}
	}
	if t.Time != nil {
		if _, err := time.Parse(model.TimeLayout, *t.Time); err != nil {
			return model.Task{}, invalidf("time %q must be HH:MM", *t.Time)
		}
	}
	if d.Priority != nil && *d.Priority != "" {
		if !d.Priority.Valid() {
			return model.Task{}, invalidf("unknown priority %q", *d.Priority)
		}
		p := *d.Priority
		t.Priority = &p
	}
	if t.Assignee != nil && !s.isMember(*t.Assignee) {
		return model.Task{}, invalidf("%q is not a team member", *t.Assignee)
	}

	t.ID = s.newID()
	if _, taken := s.index[t.ID]; taken || t.ID == "" {
		return model.Task{}, fmt.Errorf("generated task id %q is not unique", t.ID)
	}

	created := s.now().UTC().Round(0)
	if !created.After(s.lastCreated) {
		created = s.lastCreated.Add(time.Nanosecond)
	}
	t.CreatedAt = created

	return t, nil
}

func (s *Store) isMember(name string) bool {
	if len(s.members) == 0 {
		return true
	}
	for _, m := range s.members {
		if m == name {
			return true
		}
	}
	return false
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	return model.StringPtr(strings.TrimSpace(*s))
}

func invalidf(format string, args ...any) error {
	return &validationError{err: fmt.Errorf(format, args...)}
}
