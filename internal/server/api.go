// ABOUTME: JSON API handlers for listing, reading, creating, updating and deleting tasks
// ABOUTME: Maps ValidationError to 400, NotFoundError to 404 and anything else to 500

package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/2389/weekplan/internal/store"
	"github.com/2389/weekplan/internal/tasks"
)

// Response messages
const (
	msgCreated = "Task created successfully"
	msgUpdated = "Task updated successfully"
	msgDeleted = "Task deleted successfully"
)

// errInvalidBody is reported for bodies that cannot be decoded.
var errInvalidBody = errors.New("invalid request body")

// ListResponse is the body of GET /api/tasks.
type ListResponse struct {
	Success bool          `json:"success"`
	Count   int           `json:"count"`
	Data    []*store.Task `json:"data"`
}

// TaskResponse carries a single task, with a message for mutations.
type TaskResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    *store.Task `json:"data"`
}

// StatisticsResponse is the body of GET /api/tasks/statistics.
type StatisticsResponse struct {
	Success    bool              `json:"success"`
	Statistics *tasks.Statistics `json:"statistics"`
}

// FailureResponse reports a validation or not-found outcome.
type FailureResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// handleListTasks returns all tasks, filtered by ?day= when present.
func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	res, err := s.tasks.List(r.Context(), r.URL.Query().Get("day"))
	if err != nil {
		s.sendError(w, err)
		return
	}

	data := res.Tasks
	if data == nil {
		data = []*store.Task{}
	}
	s.sendJSON(w, http.StatusOK, ListResponse{Success: true, Count: res.Count, Data: data})
}

// handleStatistics returns aggregate counts over every task.
func (s *Server) handleStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := s.tasks.Statistics(r.Context())
	if err != nil {
		s.sendError(w, err)
		return
	}
	s.sendJSON(w, http.StatusOK, StatisticsResponse{Success: true, Statistics: stats})
}

func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	t, err := s.tasks.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.sendError(w, err)
		return
	}
	s.sendJSON(w, http.StatusOK, TaskResponse{Success: true, Data: t})
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	req, err := parseCreateRequest(r)
	if err != nil {
		s.sendFailure(w, http.StatusBadRequest, err.Error())
		return
	}

	t, err := s.tasks.Create(r.Context(), req)
	if err != nil {
		s.sendError(w, err)
		return
	}
	s.sendJSON(w, http.StatusCreated, TaskResponse{Success: true, Message: msgCreated, Data: t})
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	req, err := parseUpdateRequest(r)
	if err != nil {
		s.sendFailure(w, http.StatusBadRequest, err.Error())
		return
	}

	t, err := s.tasks.Update(r.Context(), r.PathValue("id"), req)
	if err != nil {
		s.sendError(w, err)
		return
	}
	s.sendJSON(w, http.StatusOK, TaskResponse{Success: true, Message: msgUpdated, Data: t})
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	t, err := s.tasks.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		s.sendError(w, err)
		return
	}
	s.sendJSON(w, http.StatusOK, TaskResponse{Success: true, Message: msgDeleted, Data: t})
}

// handleNotFound answers every request no other route matched.
func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.sendJSON(w, http.StatusNotFound, map[string]string{
		"error": "Route not found",
		"path":  r.URL.Path,
	})
}

// sendError maps a task operation error to its HTTP response.
func (s *Server) sendError(w http.ResponseWriter, err error) {
	switch {
	case tasks.IsValidation(err):
		s.sendFailure(w, http.StatusBadRequest, err.Error())
	case tasks.IsNotFound(err):
		s.sendFailure(w, http.StatusNotFound, err.Error())
	default:
		s.logger.Error("task operation failed", "error", err)
		s.sendInternalError(w, err.Error())
	}
}

// sendFailure writes a {success:false,error} response.
func (s *Server) sendFailure(w http.ResponseWriter, status int, message string) {
	s.sendJSON(w, status, FailureResponse{Success: false, Error: message})
}

// sendInternalError writes the 500 response shared by handlers and panic recovery.
func (s *Server) sendInternalError(w http.ResponseWriter, message string) {
	s.sendJSON(w, http.StatusInternalServerError, map[string]string{
		"error":   "Internal server error",
		"message": message,
	})
}

// sendJSON writes v as a JSON response with the given status.
func (s *Server) sendJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

// isForm reports whether the request body is URL-encoded form data.
func isForm(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded")
}

// decodeJSON decodes the body into dst. An empty body leaves dst untouched;
// anything after the first JSON value is rejected.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return errInvalidBody
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errInvalidBody
	}
	return nil
}

// parseCreateRequest reads a CreateRequest from a JSON or form body.
func parseCreateRequest(r *http.Request) (tasks.CreateRequest, error) {
	var req tasks.CreateRequest
	if !isForm(r) {
		err := decodeJSON(r, &req)
		return req, err
	}

	if err := r.ParseForm(); err != nil {
		return req, errInvalidBody
	}
	req.Day = r.PostForm.Get("day")
	req.Title = r.PostForm.Get("title")
	req.Time = r.PostForm.Get("time")
	if v := r.PostForm.Get("completed"); v != "" {
		completed, err := parseFormBool(v)
		if err != nil {
			return req, err
		}
		req.Completed = completed
	}
	return req, nil
}

// parseUpdateRequest reads an UpdateRequest from a JSON or form body.
// Only keys present in the body are supplied.
func parseUpdateRequest(r *http.Request) (tasks.UpdateRequest, error) {
	var req tasks.UpdateRequest
	if !isForm(r) {
		err := decodeJSON(r, &req)
		return req, err
	}

	if err := r.ParseForm(); err != nil {
		return req, errInvalidBody
	}
	if r.PostForm.Has("day") {
		req.Day = tasks.String(r.PostForm.Get("day"))
	}
	if r.PostForm.Has("title") {
		req.Title = tasks.String(r.PostForm.Get("title"))
	}
	if r.PostForm.Has("time") {
		req.Time = tasks.String(r.PostForm.Get("time"))
	}
	if r.PostForm.Has("completed") {
		completed, err := parseFormBool(r.PostForm.Get("completed"))
		if err != nil {
			return req, err
		}
		req.Completed = tasks.Bool(completed)
	}
	return req, nil
}

// parseFormBool accepts strconv booleans plus the checkbox value "on".
func parseFormBool(v string) (bool, error) {
	if v == "on" {
		return true, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%w: completed must be a boolean", errInvalidBody)
	}
	return b, nil
}
