// Package store holds the planner's tasks.
//
// # Backends
//
// Two implementations satisfy the Store interface:
//
//   - MemoryStore: an ordered slice guarded by a sync.RWMutex (default)
//   - SQLiteStore: modernc.org/sqlite, normally opened with MemoryDSN
//
// Neither backend survives a restart when used with the default configuration;
// the process seeds a fresh week on every start via Seed.
//
// # Ids and ordering
//
// Ids start at 1 and only grow. Deleting a task never frees its id for reuse:
// MemoryStore keeps a separate counter and SQLiteStore uses AUTOINCREMENT.
// List always returns tasks in insertion order.
//
// # Concurrency
//
// Create, Update and Delete are atomic. Update takes a mutate callback so the
// look-up and the write happen under the same lock (or transaction):
//
//	t, err := s.Update(ctx, 3, func(t *store.Task) { t.Completed = true })
//
// # Error Handling
//
// Get, Update and Delete return ErrNotFound for unknown ids. Callers should
// test with errors.Is.
package store
