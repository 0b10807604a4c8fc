// Package store owns the ordered todo list, the active filter, and the
// save-after-every-mutation cycle.
package store

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/sandeepkv93/todo/internal/model"
)

// Persister loads and saves the full task list.
type Persister interface {
	Load(ctx context.Context) ([]model.Task, error)
	Save(ctx context.Context, tasks []model.Task) error
}

type EventKind string

const (
	EventAdded     EventKind = "added"
	EventToggled   EventKind = "toggled"
	EventDeleted   EventKind = "deleted"
	EventCleared   EventKind = "cleared"
	EventReordered EventKind = "reordered"
	EventFiltered  EventKind = "filtered"
)

// Event is delivered to subscribers after each change. TaskID is zero for
// list-wide changes.
type Event struct {
	Kind   EventKind
	TaskID int64
}

type Option func(*TodoStore)

func WithClock(now func() time.Time) Option {
	return func(s *TodoStore) {
		if now != nil {
			s.now = now
		}
	}
}

func WithLogger(logger *log.Logger) Option {
	return func(s *TodoStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// TodoStore is the only writer of the task list. Every mutating method
// persists the full list before it returns; a failed save is logged and kept
// in LastError while the in-memory list stays authoritative.
type TodoStore struct {
	mu        sync.Mutex
	ctx       context.Context
	persister Persister
	tasks     []model.Task
	filter    model.Filter
	now       func() time.Time
	logger    *log.Logger
	listeners []func(Event)
	lastErr   error
}

// New loads the list through p. The context bounds every later save as well.
func New(ctx context.Context, p Persister, opts ...Option) (*TodoStore, error) {
	s := &TodoStore{
		ctx:       ctx,
		persister: p,
		filter:    model.FilterAll,
		now:       time.Now,
		logger:    log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	tasks, err := p.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load todos: %w", err)
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	s.tasks = tasks
	s.logger.Debug("todo list loaded", "count", len(tasks))
	return s, nil
}

// Subscribe registers fn for change events. Listeners run synchronously
// after the store lock is released, in registration order.
func (s *TodoStore) Subscribe(fn func(Event)) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Add appends a new incomplete task. Blank text is ignored. The returned
// task is the zero value when nothing was added.
func (s *TodoStore) Add(text string) (model.Task, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return model.Task{}, false
	}
	s.mu.Lock()
	task := model.Task{ID: s.nextIDLocked(), Text: trimmed}
	s.tasks = append(s.tasks, task)
	s.saveLocked()
	s.mu.Unlock()

	s.emit(Event{Kind: EventAdded, TaskID: task.ID})
	return task, true
}

func (s *TodoStore) Toggle(id int64) bool {
	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	s.tasks[i].Completed = !s.tasks[i].Completed
	s.saveLocked()
	s.mu.Unlock()

	s.emit(Event{Kind: EventToggled, TaskID: id})
	return true
}

func (s *TodoStore) Delete(id int64) bool {
	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	s.tasks = slices.Delete(s.tasks, i, i+1)
	s.saveLocked()
	s.mu.Unlock()

	s.emit(Event{Kind: EventDeleted, TaskID: id})
	return true
}

// ClearCompleted removes every completed task and returns how many went.
// The list is saved even when nothing was removed.
func (s *TodoStore) ClearCompleted() int {
	s.mu.Lock()
	before := len(s.tasks)
	s.tasks = slices.DeleteFunc(s.tasks, func(t model.Task) bool { return t.Completed })
	removed := before - len(s.tasks)
	s.saveLocked()
	s.mu.Unlock()

	s.emit(Event{Kind: EventCleared})
	return removed
}

// Reorder sorts the list by each id's position in order. Ids missing from
// order sort as position -1, so they move ahead of every listed task while
// keeping their relative order. Unknown ids in order are ignored.
func (s *TodoStore) Reorder(order []int64) {
	s.mu.Lock()
	s.tasks = reconcile(s.tasks, order)
	s.saveLocked()
	s.mu.Unlock()

	s.emit(Event{Kind: EventReordered})
}

func (s *TodoStore) SetFilter(f model.Filter) {
	if !f.IsValid() {
		f = model.FilterAll
	}
	s.mu.Lock()
	s.filter = f
	s.mu.Unlock()

	s.emit(Event{Kind: EventFiltered})
}

func (s *TodoStore) Filter() model.Filter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

// VisibleTasks returns a copy of the tasks matching the current filter in
// list order.
func (s *TodoStore) VisibleTasks() []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if s.filter.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}

func (s *TodoStore) ActiveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.tasks {
		if !t.Completed {
			n++
		}
	}
	return n
}

// Tasks returns a copy of the full list.
func (s *TodoStore) Tasks() []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.tasks)
}

func (s *TodoStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

func (s *TodoStore) Task(id int64) (model.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(id)
	if i < 0 {
		return model.Task{}, false
	}
	return s.tasks[i], true
}

// LastError returns the error from the most recent save, nil once a save
// succeeds again.
func (s *TodoStore) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *TodoStore) indexLocked(id int64) int {
	return slices.IndexFunc(s.tasks, func(t model.Task) bool { return t.ID == id })
}

// nextIDLocked uses the wall clock in milliseconds, bumped past the largest
// existing id when two adds land in the same millisecond.
func (s *TodoStore) nextIDLocked() int64 {
	id := s.now().UnixMilli()
	for _, t := range s.tasks {
		if t.ID >= id {
			id = t.ID + 1
		}
	}
	return id
}

func (s *TodoStore) saveLocked() {
	err := s.persister.Save(s.ctx, slices.Clone(s.tasks))
	if err != nil {
		s.logger.Error("save todos", "err", err, "count", len(s.tasks))
	}
	s.lastErr = err
}

func (s *TodoStore) emit(ev Event) {
	s.mu.Lock()
	listeners := slices.Clone(s.listeners)
	s.mu.Unlock()
	for _, fn := range listeners {
		fn(ev)
	}
}
