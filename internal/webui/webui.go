// ABOUTME: Browser front-end for the planner: index page, task list partial and static assets
// ABOUTME: Groups tasks by day and renders titles as inline Markdown via goldmark

package webui

import (
	"bytes"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/util"

	"github.com/2389/weekplan/internal/store"
	"github.com/2389/weekplan/internal/tasks"
)

// WeekDays are the filter choices offered by the page.
var WeekDays = []string{
	"Понедельник",
	"Вторник",
	"Среда",
	"Четверг",
	"Пятница",
	"Суббота",
	"Воскресенье",
}

// Template data types
type taskItem struct {
	ID        int
	Day       string
	Title     template.HTML
	Time      string
	Completed bool
}

type dayGroup struct {
	Day   string
	Tasks []taskItem
}

type tasksData struct {
	Groups []dayGroup
}

type indexData struct {
	Title    string
	Days     []string
	Selected string
	Stats    *tasks.Statistics
	Groups   []dayGroup
}

// UI serves the planner front-end.
type UI struct {
	service  *tasks.Service
	markdown goldmark.Markdown
	index    *template.Template
	partial  *template.Template
	logger   *slog.Logger
}

// New creates the front-end. Templates are parsed once here.
func New(service *tasks.Service, logger *slog.Logger) *UI {
	return &UI{
		service:  service,
		markdown: newTitleMarkdown(),
		index: template.Must(template.ParseFS(templateFS,
			"templates/index.html",
			"templates/partials/tasks.html",
		)),
		partial: template.Must(template.ParseFS(templateFS, "templates/partials/tasks.html")),
		logger:  logger,
	}
}

// RegisterRoutes adds the front-end routes to mux.
func (u *UI) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", u.handleIndex)
	mux.HandleFunc("GET /partials/tasks", u.handleTasksPartial)

	mux.Handle("GET /static/", http.StripPrefix("/static/", staticHandler()))
}

// handleIndex renders the full page with statistics and the grouped task list.
func (u *UI) handleIndex(w http.ResponseWriter, r *http.Request) {
	day := r.URL.Query().Get("day")

	groups, err := u.groups(r, day)
	if err != nil {
		u.logger.Error("failed to list tasks", "error", err)
		http.Error(w, "failed to load tasks", http.StatusInternalServerError)
		return
	}

	stats, err := u.service.Statistics(r.Context())
	if err != nil {
		u.logger.Error("failed to compute statistics", "error", err)
		http.Error(w, "failed to load statistics", http.StatusInternalServerError)
		return
	}

	data := indexData{
		Title:    "Планировщик недели",
		Days:     WeekDays,
		Selected: day,
		Stats:    stats,
		Groups:   groups,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := u.index.ExecuteTemplate(w, "index.html", data); err != nil {
		u.logger.Error("failed to render index", "error", err)
	}
}

// handleTasksPartial renders only the task list, for refreshes after a change.
func (u *UI) handleTasksPartial(w http.ResponseWriter, r *http.Request) {
	groups, err := u.groups(r, r.URL.Query().Get("day"))
	if err != nil {
		u.logger.Error("failed to list tasks", "error", err)
		http.Error(w, "failed to load tasks", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := u.partial.ExecuteTemplate(w, "tasks", tasksData{Groups: groups}); err != nil {
		u.logger.Error("failed to render tasks partial", "error", err)
	}
}

// groups lists tasks (optionally filtered) and groups them by day in
// first-occurrence order.
func (u *UI) groups(r *http.Request, day string) ([]dayGroup, error) {
	res, err := u.service.List(r.Context(), day)
	if err != nil {
		return nil, err
	}
	return groupByDay(res.Tasks, u.renderTitle), nil
}

func groupByDay(list []*store.Task, render func(string) template.HTML) []dayGroup {
	var groups []dayGroup
	index := make(map[string]int)
	for _, t := range list {
		i, ok := index[t.Day]
		if !ok {
			i = len(groups)
			index[t.Day] = i
			groups = append(groups, dayGroup{Day: t.Day})
		}
		groups[i].Tasks = append(groups[i].Tasks, taskItem{
			ID:        t.ID,
			Day:       t.Day,
			Title:     render(t.Title),
			Time:      t.Time,
			Completed: t.Completed,
		})
	}
	return groups
}

// newTitleMarkdown builds a goldmark instance that only knows paragraphs and
// inline syntax (emphasis, code spans, links, autolinks). Titles like
// "1. Купить хлеб" or "# Встреча" stay literal text, and raw HTML has no
// parser, so it is escaped and shown as typed.
func newTitleMarkdown() goldmark.Markdown {
	return goldmark.New(goldmark.WithParser(parser.NewParser(
		parser.WithBlockParsers(
			util.Prioritized(parser.NewParagraphParser(), 1000),
		),
		parser.WithInlineParsers(
			util.Prioritized(parser.NewCodeSpanParser(), 100),
			util.Prioritized(parser.NewLinkParser(), 200),
			util.Prioritized(parser.NewAutoLinkParser(), 300),
			util.Prioritized(parser.NewEmphasisParser(), 500),
		),
		parser.WithParagraphTransformers(parser.DefaultParagraphTransformers()...),
	)))
}

// renderTitle converts a title to inline HTML safe to embed in a task card.
func (u *UI) renderTitle(title string) template.HTML {
	var buf bytes.Buffer
	if err := u.markdown.Convert([]byte(title), &buf); err != nil {
		u.logger.Warn("failed to convert title markdown", "error", err)
		return template.HTML(template.HTMLEscapeString(title))
	}

	out := strings.TrimSpace(buf.String())
	out = strings.TrimPrefix(out, "<p>")
	out = strings.TrimSuffix(out, "</p>")
	return template.HTML(out)
}
