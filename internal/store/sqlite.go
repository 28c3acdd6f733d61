// ABOUTME: SQLite implementation of the Store interface using modernc.org/sqlite
// ABOUTME: Runs against an in-memory database by default with automatic schema creation

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// MemoryDSN opens a private in-memory database that lives as long as the store.
const MemoryDSN = ":memory:"

// SQLiteStore implements the Store interface using SQLite
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLiteStore creates a new SQLite store at the given path.
// Pass MemoryDSN for a database that is discarded on Close.
// Parent directories are created if needed.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	logger := slog.Default().With("component", "store")

	if path != MemoryDSN {
		// Ensure parent directory exists
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Every connection to :memory: is a separate database, and a single
	// connection also serialises writers.
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{
		db:     db,
		logger: logger,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	logger.Info("SQLite store initialized", "path", path)
	return s, nil
}

// createSchema creates the database tables if they don't exist.
// AUTOINCREMENT keeps ids of deleted rows from being handed out again.
func (s *SQLiteStore) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS tasks (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			day       TEXT NOT NULL,
			title     TEXT NOT NULL,
			time      TEXT NOT NULL,
			completed INTEGER NOT NULL DEFAULT 0
		);
	`
	_, err := s.db.Exec(schema)
	return err
}

// List retrieves all tasks in insertion order.
func (s *SQLiteStore) List(ctx context.Context) ([]*Task, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, day, title, time, completed FROM tasks ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	tasks := []*Task{}
	for rows.Next() {
		var t Task
		if err := rows.Scan(&t.ID, &t.Day, &t.Title, &t.Time, &t.Completed); err != nil {
			return nil, fmt.Errorf("scanning task: %w", err)
		}
		tasks = append(tasks, &t)
	}
	return tasks, rows.Err()
}

// Get retrieves a task by ID.
func (s *SQLiteStore) Get(ctx context.Context, id int) (*Task, error) {
	return getTask(ctx, s.db, id)
}

// Create inserts the task and sets its ID.
func (s *SQLiteStore) Create(ctx context.Context, task *Task) error {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO tasks (day, title, time, completed) VALUES (?, ?, ?, ?)
	`, task.Day, task.Title, task.Time, task.Completed)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading task id: %w", err)
	}
	task.ID = int(id)
	return nil
}

// Update loads, mutates and writes back a task inside one transaction.
func (s *SQLiteStore) Update(ctx context.Context, id int, mutate func(*Task)) (*Task, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	t, err := getTask(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	mutate(t)
	t.ID = id

	if _, err := tx.ExecContext(ctx, `
		UPDATE tasks SET day = ?, title = ?, time = ?, completed = ? WHERE id = ?
	`, t.Day, t.Title, t.Time, t.Completed, id); err != nil {
		return nil, fmt.Errorf("updating task: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing update: %w", err)
	}
	return t, nil
}

// Delete removes a task by ID and returns its last state.
func (s *SQLiteStore) Delete(ctx context.Context, id int) (*Task, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	t, err := getTask(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id); err != nil {
		return nil, fmt.Errorf("deleting task: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing delete: %w", err)
	}
	return t, nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func getTask(ctx context.Context, q queryer, id int) (*Task, error) {
	var t Task
	err := q.QueryRowContext(ctx, `
		SELECT id, day, title, time, completed FROM tasks WHERE id = ?
	`, id).Scan(&t.ID, &t.Day, &t.Title, &t.Time, &t.Completed)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting task: %w", err)
	}
	return &t, nil
}
