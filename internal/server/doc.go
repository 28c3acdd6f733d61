// Package server exposes the task operations over HTTP.
//
// # Routes
//
//	GET    /api/tasks[?day=]       list, optionally filtered by day (case-insensitive)
//	GET    /api/tasks/statistics   aggregate counts
//	GET    /api/tasks/{id}         one task
//	POST   /api/tasks              create (201)
//	PUT    /api/tasks/{id}         partial update
//	DELETE /api/tasks/{id}         delete, returning the removed task
//	GET    /health                 liveness
//
// The same routes are also mounted under /tasks, and a single trailing slash
// is ignored ("/api/tasks/" lists tasks).
//
// The browser front-end from package webui is mounted on the same mux when
// webui.enabled is true. Anything else gets 404 {"error":"Route not found","path":...}.
//
// # Bodies
//
// POST and PUT accept JSON or application/x-www-form-urlencoded. For PUT only
// keys present in the body are applied; a JSON null counts as absent.
//
// Bodies over 1MB are rejected with 413 before any handler runs. A JSON body
// must hold exactly one value; trailing data is a 400.
//
// # Errors
//
// Validation failures are 400 and unknown ids 404, both as
// {"success":false,"error":...}. Internal errors and panics are 500
// {"error":"Internal server error","message":...}.
package server
