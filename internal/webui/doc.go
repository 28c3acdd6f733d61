// Package webui serves the planner's browser front-end.
//
// The index page and the task list are rendered on the server from embedded
// templates. Tasks are grouped by day in the order each day first appears.
// Titles go through goldmark, so `**bold**` or `[links](https://example.com)`
// render inline; raw HTML in a title is dropped.
//
// Routes:
//
//	GET /                 full page (optional ?day= filter)
//	GET /partials/tasks   task list fragment, fetched by static/app.js after each change
//	GET /static/...       embedded JS and CSS
//
// All mutations go through the JSON API under /api/tasks.
package webui
