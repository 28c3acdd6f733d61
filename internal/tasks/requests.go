// ABOUTME: Request types for creating and partially updating tasks
// ABOUTME: Update fields are pointers so "not supplied" differs from zero values

package tasks

import "github.com/2389/weekplan/internal/store"

// DefaultTime is used when a task is created without a time.
const DefaultTime = "00:00"

// CreateRequest is the input to Service.Create.
type CreateRequest struct {
	Day       string `json:"day"`
	Title     string `json:"title"`
	Time      string `json:"time,omitempty"`
	Completed bool   `json:"completed,omitempty"`
}

// UpdateRequest is the input to Service.Update.
// A nil field is left untouched; a non-nil field overwrites, even with "" or false.
// JSON null decodes to nil and so counts as not supplied.
type UpdateRequest struct {
	Day       *string `json:"day,omitempty"`
	Title     *string `json:"title,omitempty"`
	Time      *string `json:"time,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
}

// Empty reports whether no field was supplied.
func (r UpdateRequest) Empty() bool {
	return r.Day == nil && r.Title == nil && r.Time == nil && r.Completed == nil
}

// apply copies every supplied field onto t.
func (r UpdateRequest) apply(t *store.Task) {
	if r.Day != nil {
		t.Day = *r.Day
	}
	if r.Title != nil {
		t.Title = *r.Title
	}
	if r.Time != nil {
		t.Time = *r.Time
	}
	if r.Completed != nil {
		t.Completed = *r.Completed
	}
}

// String returns a pointer to s, for building UpdateRequests.
func String(s string) *string { return &s }

// Bool returns a pointer to b, for building UpdateRequests.
func Bool(b bool) *bool { return &b }
