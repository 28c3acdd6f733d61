// ABOUTME: Store interface and Task type for weekplan task state
// ABOUTME: Defines the ordered, id-assigning collection shared by every backend

package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a requested task does not exist
var ErrNotFound = errors.New("not found")

// Task is a single planner entry.
type Task struct {
	ID        int    `json:"id"`
	Day       string `json:"day"`
	Title     string `json:"title"`
	Time      string `json:"time"`
	Completed bool   `json:"completed"`
}

// Store holds the current set of tasks and hands out ids.
//
// Implementations preserve insertion order, never reuse an id once assigned,
// and are safe for concurrent use: Create, Update and Delete each run as a
// single atomic step with respect to every other call.
type Store interface {
	// List returns every task in insertion order.
	List(ctx context.Context) ([]*Task, error)

	// Get returns the task with the given id or ErrNotFound.
	Get(ctx context.Context, id int) (*Task, error)

	// Create assigns the next id to task and appends it.
	Create(ctx context.Context, task *Task) error

	// Update looks up the task and applies mutate to it in place.
	// The look-up and the mutation happen without any other writer interleaving.
	// mutate must not change the ID.
	Update(ctx context.Context, id int, mutate func(*Task)) (*Task, error)

	// Delete removes the task and returns its last state, or ErrNotFound.
	Delete(ctx context.Context, id int) (*Task, error)

	// Close releases any resources held by the store
	Close() error
}

// seedTasks is the initial week loaded at startup.
var seedTasks = []Task{
	{Day: "Понедельник", Title: "Утренняя зарядка", Time: "07:00"},
	{Day: "Понедельник", Title: "Работа над проектом", Time: "10:00"},
	{Day: "Вторник", Title: "Встреча с командой", Time: "14:00"},
	{Day: "Среда", Title: "Йога", Time: "18:00", Completed: true},
}

// Seed appends the default tasks to s. On an empty store they receive ids 1-4.
func Seed(ctx context.Context, s Store) error {
	for _, t := range seedTasks {
		task := t
		if err := s.Create(ctx, &task); err != nil {
			return err
		}
	}
	return nil
}
