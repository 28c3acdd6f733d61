// ABOUTME: In-memory Store implementation backed by an ordered slice
// ABOUTME: Default backend; state is discarded when the process exits

package store

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory Store implementation.
type MemoryStore struct {
	mu     sync.RWMutex
	tasks  []*Task
	nextID int
}

// NewMemoryStore creates an empty MemoryStore. The first task gets id 1.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1}
}

// List returns copies of all tasks in insertion order.
func (m *MemoryStore) List(ctx context.Context) ([]*Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*Task, len(m.tasks))
	for i, t := range m.tasks {
		taskCopy := *t
		result[i] = &taskCopy
	}
	return result, nil
}

// Get retrieves a task by ID.
func (m *MemoryStore) Get(ctx context.Context, id int) (*Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	i := m.indexOf(id)
	if i < 0 {
		return nil, ErrNotFound
	}

	// Return a copy
	result := *m.tasks[i]
	return &result, nil
}

// Create assigns the next id and appends the task.
func (m *MemoryStore) Create(ctx context.Context, task *Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	task.ID = m.nextID
	m.nextID++

	// Make a copy to avoid external modification
	t := *task
	m.tasks = append(m.tasks, &t)

	return nil
}

// Update applies mutate to the stored task while holding the write lock.
func (m *MemoryStore) Update(ctx context.Context, id int, mutate func(*Task)) (*Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i < 0 {
		return nil, ErrNotFound
	}

	t := *m.tasks[i]
	mutate(&t)
	t.ID = id
	m.tasks[i] = &t

	result := t
	return &result, nil
}

// Delete removes a task and returns it.
func (m *MemoryStore) Delete(ctx context.Context, id int) (*Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i < 0 {
		return nil, ErrNotFound
	}

	removed := m.tasks[i]
	m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)

	return removed, nil
}

// Close is a no-op for MemoryStore.
func (m *MemoryStore) Close() error {
	return nil
}

// indexOf returns the slice position of id, or -1. Callers hold mu.
func (m *MemoryStore) indexOf(id int) int {
	for i, t := range m.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
