// ABOUTME: Task operations: list/filter, get, create, partial update, delete, statistics
// ABOUTME: Translates store outcomes into ValidationError and NotFoundError

package tasks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"golang.org/x/text/cases"

	"github.com/2389/weekplan/internal/store"
)

// ListResult is the output of Service.List.
type ListResult struct {
	Count int
	Tasks []*store.Task
}

// Service implements the planner's task operations on top of a Store.
type Service struct {
	store  store.Store
	logger *slog.Logger
}

// New creates a Service. A nil logger discards output.
func New(s store.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{store: s, logger: logger}
}

// List returns all tasks, or only those whose day equals day ignoring case.
// The comparison is exact after Unicode case folding, never a substring match.
func (s *Service) List(ctx context.Context, day string) (*ListResult, error) {
	all, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}

	if day == "" {
		return &ListResult{Count: len(all), Tasks: all}, nil
	}

	want := foldDay(day)
	filtered := make([]*store.Task, 0, len(all))
	for _, t := range all {
		if foldDay(t.Day) == want {
			filtered = append(filtered, t)
		}
	}
	return &ListResult{Count: len(filtered), Tasks: filtered}, nil
}

// Get returns the task whose id is rawID.
func (s *Service) Get(ctx context.Context, rawID string) (*store.Task, error) {
	id, err := parseID(rawID)
	if err != nil {
		return nil, err
	}

	t, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, s.storeError(rawID, err)
	}
	return t, nil
}

// Create validates req, applies defaults and appends the new task.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*store.Task, error) {
	if req.Day == "" || req.Title == "" {
		return nil, &ValidationError{Message: "day and title are required"}
	}

	t := &store.Task{
		Day:       req.Day,
		Title:     req.Title,
		Time:      req.Time,
		Completed: req.Completed,
	}
	if t.Time == "" {
		t.Time = DefaultTime
	}

	if err := s.store.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("creating task: %w", err)
	}

	s.logger.Debug("task created", "id", t.ID, "day", t.Day)
	return t, nil
}

// Update overwrites the supplied fields of task rawID and returns the result.
// With no fields supplied the task is returned without a write.
func (s *Service) Update(ctx context.Context, rawID string, req UpdateRequest) (*store.Task, error) {
	id, err := parseID(rawID)
	if err != nil {
		return nil, err
	}

	if req.Empty() {
		return s.Get(ctx, rawID)
	}

	t, err := s.store.Update(ctx, id, req.apply)
	if err != nil {
		return nil, s.storeError(rawID, err)
	}

	s.logger.Debug("task updated", "id", t.ID)
	return t, nil
}

// Delete removes task rawID and returns its final state.
func (s *Service) Delete(ctx context.Context, rawID string) (*store.Task, error) {
	id, err := parseID(rawID)
	if err != nil {
		return nil, err
	}

	t, err := s.store.Delete(ctx, id)
	if err != nil {
		return nil, s.storeError(rawID, err)
	}

	s.logger.Debug("task deleted", "id", t.ID)
	return t, nil
}

// Statistics aggregates counts over every task in store order.
func (s *Service) Statistics(ctx context.Context) (*Statistics, error) {
	all, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}

	stats := &Statistics{
		Total: len(all),
		ByDay: DayCounts{},
	}

	index := make(map[string]int)
	for _, t := range all {
		if t.Completed {
			stats.Completed++
		}
		i, ok := index[t.Day]
		if !ok {
			i = len(stats.ByDay)
			index[t.Day] = i
			stats.ByDay = append(stats.ByDay, DayCount{Day: t.Day})
		}
		stats.ByDay[i].Count++
	}

	stats.Pending = stats.Total - stats.Completed
	stats.CompletionRate = completionRate(stats.Completed, stats.Total)
	return stats, nil
}

// storeError maps store.ErrNotFound to NotFoundError and wraps anything else.
func (s *Service) storeError(rawID string, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return &NotFoundError{ID: rawID}
	}
	return fmt.Errorf("task %s: %w", rawID, err)
}

// parseID converts a path id to an int. A sign and leading zeros are
// accepted, so "+1" and "01" both name task 1. Anything that is not an
// integer cannot name a task, so it is reported as not found.
func parseID(rawID string) (int, error) {
	id, err := strconv.Atoi(rawID)
	if err != nil {
		return 0, &NotFoundError{ID: rawID}
	}
	return id, nil
}

// foldDay normalises a day label for case-insensitive comparison.
// A Caser is stateful, so one is created per call.
func foldDay(day string) string {
	return cases.Fold().String(day)
}
