// Package repotest provides an in-memory TodoRepo for service and handler
// tests. It mirrors the Postgres repo's contract: monotonic never-reused ids,
// patch semantics, and the domain error taxonomy.
package repotest

import (
	"context"
	"sort"
	"sync"
	"time"

	dom "github.com/chelishino05/todo-devops-app/internal/domain"
	"github.com/chelishino05/todo-devops-app/internal/repo"
)

// Compile-time interface check.
var _ repo.TodoRepo = (*InMemory)(nil)

type InMemory struct {
	mu     sync.Mutex
	todos  map[int64]dom.Todo
	nextID int64
	clock  time.Time

	// Err, when set, makes every operation fail with a StorageError wrapping
	// it. Used to exercise unavailable paths.
	Err error
}

func New() *InMemory {
	return &InMemory{
		todos: map[int64]dom.Todo{},
		clock: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// now advances a fake clock by 1ms per call so updated_at visibly moves
// between operations.
func (m *InMemory) now() time.Time {
	m.clock = m.clock.Add(time.Millisecond)
	return m.clock
}

func (m *InMemory) fail(op string) error {
	if m.Err != nil {
		return &dom.StorageError{Op: op, Err: m.Err}
	}
	return nil
}

func (m *InMemory) Create(_ context.Context, in dom.TodoInput) (dom.Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("create"); err != nil {
		return dom.Todo{}, err
	}
	m.nextID++
	now := m.now()
	t := dom.Todo{
		ID:          m.nextID,
		Title:       in.Title,
		Description: in.Description,
		DueDate:     in.DueDate,
		Completed:   false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	m.todos[t.ID] = t
	return t, nil
}

func (m *InMemory) GetByID(_ context.Context, id int64) (dom.Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("get"); err != nil {
		return dom.Todo{}, err
	}
	t, ok := m.todos[id]
	if !ok {
		return dom.Todo{}, dom.ErrNotFound
	}
	return t, nil
}

func (m *InMemory) List(_ context.Context) ([]dom.Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("list"); err != nil {
		return nil, err
	}
	list := make([]dom.Todo, 0, len(m.todos))
	for _, t := range m.todos {
		list = append(list, t)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].ID < list[j].ID
		}
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})
	return list, nil
}

func (m *InMemory) Update(_ context.Context, id int64, patch dom.TodoPatch) (dom.Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("update"); err != nil {
		return dom.Todo{}, err
	}
	t, ok := m.todos[id]
	if !ok {
		return dom.Todo{}, dom.ErrNotFound
	}
	if patch.Empty() {
		return t, nil
	}
	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Description != nil {
		d := *patch.Description
		t.Description = &d
	}
	if patch.Completed != nil {
		t.Completed = *patch.Completed
	}
	if patch.SetDueDate {
		t.DueDate = patch.DueDate
	}
	t.UpdatedAt = m.now()
	m.todos[id] = t
	return t, nil
}

func (m *InMemory) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("delete"); err != nil {
		return err
	}
	if _, ok := m.todos[id]; !ok {
		return dom.ErrNotFound
	}
	delete(m.todos, id)
	return nil
}

func (m *InMemory) Stats(_ context.Context) (dom.Stats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("stats"); err != nil {
		return dom.Stats{}, err
	}
	var s dom.Stats
	for _, t := range m.todos {
		s.Total++
		if t.Completed {
			s.Completed++
		}
	}
	s.Pending = s.Total - s.Completed
	return s, nil
}

func (m *InMemory) Ping(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fail("ping")
}
