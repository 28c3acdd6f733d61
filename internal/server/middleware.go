// ABOUTME: HTTP middleware for request ids, logging, body limits and panic recovery
// ABOUTME: Applied around the whole mux so API and front-end routes share it

package server

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// RequestIDHeader carries the per-request id on every response.
const RequestIDHeader = "X-Request-ID"

// MaxRequestBodySize limits request bodies to 1MB.
const MaxRequestBodySize = 1 << 20

// maxLoggedBody caps how much of a request body is copied into the log.
const maxLoggedBody = 4 << 10

// statusRecorder captures the status code written by the wrapped handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	return r.ResponseWriter.Write(b)
}

// middleware wraps next with request ids, logging and recovery, outermost first.
func (s *Server) middleware(next http.Handler) http.Handler {
	return s.withRequestID(s.logRequests(s.recoverPanics(stripTrailingSlash(next))))
}

// stripTrailingSlash routes "/api/tasks/" and "/api/tasks/1/" like their
// slash-less forms. The root and /static/ keep their slash.
func stripTrailingSlash(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := r.URL.Path
		if len(p) > 1 && strings.HasSuffix(p, "/") && !strings.HasPrefix(p, "/static/") {
			u := *r.URL
			u.Path = strings.TrimSuffix(p, "/")
			u.RawPath = ""
			r = r.WithContext(r.Context())
			r.URL = &u
		}
		next.ServeHTTP(w, r)
	})
}

// withRequestID tags the response with a fresh uuid.
func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(RequestIDHeader, uuid.NewString())
		next.ServeHTTP(w, r)
	})
}

// logRequests logs method, path, query, body (POST/PUT), status and duration.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		attrs := []any{
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", w.Header().Get(RequestIDHeader),
		}
		if r.URL.RawQuery != "" {
			attrs = append(attrs, "query", r.URL.RawQuery)
		}

		rec := &statusRecorder{ResponseWriter: w}
		if r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, MaxRequestBodySize)
		}

		if r.Method == http.MethodPost || r.Method == http.MethodPut {
			body, err := peekBody(r)
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				s.sendFailure(rec, http.StatusRequestEntityTooLarge, "request body too large")
				attrs = append(attrs, "status", rec.status, "duration", time.Since(start))
				s.logger.Warn("request", attrs...)
				return
			}
			if body != "" {
				attrs = append(attrs, "body", body)
			}
		}

		next.ServeHTTP(rec, r)

		if rec.status == 0 {
			rec.status = http.StatusOK
		}
		attrs = append(attrs, "status", rec.status, "duration", time.Since(start))
		s.logger.Info("request", attrs...)
	})
}

// peekBody reads the body for logging and replaces it so handlers can read it again.
func peekBody(r *http.Request) (string, error) {
	if r.Body == nil {
		return "", nil
	}
	data, err := io.ReadAll(r.Body)
	_ = r.Body.Close()
	r.Body = io.NopCloser(bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	if len(data) > maxLoggedBody {
		return string(data[:maxLoggedBody]) + "...", nil
	}
	return string(data), nil
}

// recoverPanics turns a handler panic into a 500 response.
func (s *Server) recoverPanics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			s.logger.Error("panic serving request", "path", r.URL.Path, "panic", rec)
			s.sendInternalError(w, fmt.Sprint(rec))
		}()
		next.ServeHTTP(w, r)
	})
}
