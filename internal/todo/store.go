// Package todo holds the in-memory todo collection.
//
// Every mutation builds a new slice and publishes a new *Snapshot. A
// published snapshot is never modified, so holders of an older pointer can
// tell that something changed by comparing pointers.
package todo

import (
	"slices"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/idilsaglam/tada/internal/model"
)

// Snapshot is an immutable view of the collection in display order.
type Snapshot struct {
	todos []model.Todo
}

var empty = &Snapshot{}

// Len returns the number of todos.
func (s *Snapshot) Len() int { return len(s.todos) }

// Todos returns the backing slice. Callers must not modify it.
func (s *Snapshot) Todos() []model.Todo { return s.todos }

// Find returns the todo with the given id.
func (s *Snapshot) Find(id string) (model.Todo, bool) {
	if i := s.index(id); i >= 0 {
		return s.todos[i], true
	}
	return model.Todo{}, false
}

// Stats counts completed and pending todos.
func (s *Snapshot) Stats() (done, pending int) {
	for _, t := range s.todos {
		if t.IsCompleted {
			done++
		} else {
			pending++
		}
	}
	return
}

func (s *Snapshot) index(id string) int {
	return slices.IndexFunc(s.todos, func(t model.Todo) bool { return t.ID == id })
}

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator replaces the default UUID generator.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

// Store is the ordered todo collection. It is meant to be driven by a
// single event loop; the atomic pointer only makes reads safe elsewhere.
type Store struct {
	cur   atomic.Pointer[Snapshot]
	newID func() string
}

// New returns an empty store.
func New(opts ...Option) *Store {
	s := &Store{newID: uuid.NewString}
	for _, opt := range opts {
		opt(s)
	}
	s.cur.Store(empty)
	return s
}

// Snapshot returns the current collection.
func (s *Store) Snapshot() *Snapshot { return s.cur.Load() }

// Create appends a todo with a fresh id. Empty text is allowed.
func (s *Store) Create(text string) model.Todo {
	t := model.Todo{ID: s.newID(), Text: text}
	old := s.cur.Load().todos
	next := make([]model.Todo, len(old), len(old)+1)
	copy(next, old)
	s.publish(append(next, t))
	return t
}

// UpdateText replaces the text of the todo with the given id.
// Unknown ids are ignored.
func (s *Store) UpdateText(id, text string) {
	s.modify(id, func(t *model.Todo) { t.Text = text })
}

// ToggleComplete flips the completion flag of the todo with the given id.
// Unknown ids are ignored.
func (s *Store) ToggleComplete(id string) {
	s.modify(id, func(t *model.Todo) { t.IsCompleted = !t.IsCompleted })
}

// Remove drops the todo with the given id. Unknown ids are ignored.
func (s *Store) Remove(id string) {
	cur := s.cur.Load()
	i := cur.index(id)
	if i < 0 {
		return
	}
	next := make([]model.Todo, 0, len(cur.todos)-1)
	next = append(next, cur.todos[:i]...)
	s.publish(append(next, cur.todos[i+1:]...))
}

func (s *Store) modify(id string, fn func(*model.Todo)) {
	cur := s.cur.Load()
	i := cur.index(id)
	if i < 0 {
		return
	}
	next := slices.Clone(cur.todos)
	fn(&next[i])
	s.publish(next)
}

func (s *Store) publish(todos []model.Todo) {
	s.cur.Store(&Snapshot{todos: todos})
}
