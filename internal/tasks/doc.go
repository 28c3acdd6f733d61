// Package tasks implements the planner's operations on top of a store.Store.
//
// Failures that the caller can fix come back as typed errors:
//
//   - *ValidationError: create without day or title
//   - *NotFoundError: unknown or non-numeric id
//
// Any other error is an internal fault. A failed operation never changes the store.
package tasks
