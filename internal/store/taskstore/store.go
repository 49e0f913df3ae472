package taskstore

import (
	"slices"
	"time"

	"github.com/idilsaglam/tasks/internal/model"
)

// In-memory task collection for a single session. Nothing is written to disk.
// Every mutation swaps in a new slice; a slice returned by Tasks is never
// touched again by the store.
//
// The store is not safe for concurrent use. The UI drives it from a single
// event loop.

type Store struct {
	tasks []model.Task
	ids   idSource
}

type Option func(*Store)

// WithClock overrides the time source used to derive task ids.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.ids.now = now }
}

func New(opts ...Option) *Store {
	s := &Store{
		tasks: []model.Task{},
		ids:   idSource{now: time.Now},
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Tasks returns the collection in insertion order.
func (s *Store) Tasks() []model.Task { return slices.Clone(s.tasks) }

func (s *Store) Len() int { return len(s.tasks) }

func (s *Store) Get(id int64) (model.Task, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return model.Task{}, false
	}
	return s.tasks[i], true
}

// Add appends a new pending task. Titles are compared exactly; an existing
// task with the same title rejects the add with ErrDuplicateTitle.
func (s *Store) Add(title string) (model.Task, error) {
	for _, t := range s.tasks {
		if t.Title == title {
			return model.Task{}, ErrDuplicateTitle
		}
	}
	t := model.Task{ID: s.ids.next(), Title: title}
	next := make([]model.Task, len(s.tasks), len(s.tasks)+1)
	copy(next, s.tasks)
	s.tasks = append(next, t)
	return t, nil
}

// ToggleDone flips the done flag of the task with the given id.
// It reports false when no such task exists.
func (s *Store) ToggleDone(id int64) bool {
	return s.replace(id, func(t *model.Task) { t.Done = !t.Done })
}

// Rename replaces the title of the task with the given id. The new title is
// not checked against other titles.
func (s *Store) Rename(id int64, title string) bool {
	return s.replace(id, func(t *model.Task) { t.Title = title })
}

// Remove drops the task with the given id. Callers are expected to have
// confirmed the removal with the user.
func (s *Store) Remove(id int64) bool {
	if s.indexOf(id) < 0 {
		return false
	}
	next := make([]model.Task, 0, len(s.tasks)-1)
	for _, t := range s.tasks {
		if t.ID != id {
			next = append(next, t)
		}
	}
	s.tasks = next
	return true
}

func (s *Store) replace(id int64, fn func(*model.Task)) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	next := slices.Clone(s.tasks)
	fn(&next[i])
	s.tasks = next
	return true
}

func (s *Store) indexOf(id int64) int {
	return slices.IndexFunc(s.tasks, func(t model.Task) bool { return t.ID == id })
}
