// ABOUTME: Tests for the browser front-end handlers and helpers
// ABOUTME: Covers page rendering, day grouping, the tasks partial and embedded assets

package webui

import (
	"context"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2389/weekplan/internal/store"
	"github.com/2389/weekplan/internal/tasks"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestUI(t *testing.T, seed bool) (*UI, *tasks.Service, *http.ServeMux) {
	t.Helper()
	s := store.NewMemoryStore()
	if seed {
		require.NoError(t, store.Seed(context.Background(), s))
	}
	svc := tasks.New(s, testLogger())
	ui := New(svc, testLogger())
	mux := http.NewServeMux()
	ui.RegisterRoutes(mux)
	return ui, svc, mux
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestIndex_RendersStatsAndGroups(t *testing.T) {
	_, _, mux := newTestUI(t, true)

	rec := get(t, mux, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")

	body := rec.Body.String()
	assert.Contains(t, body, `id="totalTasks">4<`)
	assert.Contains(t, body, `id="completedTasks">1<`)
	assert.Contains(t, body, `id="pendingTasks">3<`)
	assert.Contains(t, body, `id="completionRate">25%<`)

	// Groups appear in first-occurrence order.
	mon := strings.Index(body, `<h3 class="day-title">Понедельник</h3>`)
	tue := strings.Index(body, `<h3 class="day-title">Вторник</h3>`)
	wed := strings.Index(body, `<h3 class="day-title">Среда</h3>`)
	require.NotEqual(t, -1, mon)
	assert.Less(t, mon, tue)
	assert.Less(t, tue, wed)

	assert.Contains(t, body, "Утренняя зарядка")
	assert.Contains(t, body, "/static/app.js")
}

func TestIndex_KeepsSelectedDay(t *testing.T) {
	_, _, mux := newTestUI(t, true)

	rec := get(t, mux, "/?day="+url.QueryEscape("Вторник"))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `<option value="Вторник" selected>`)
	assert.Contains(t, body, "Встреча с командой")
	assert.NotContains(t, body, "Утренняя зарядка")
	// Statistics always cover the whole list.
	assert.Contains(t, body, `id="totalTasks">4<`)
}

func TestIndex_OnlyExactRoot(t *testing.T) {
	_, _, mux := newTestUI(t, true)

	rec := get(t, mux, "/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTasksPartial_Filter(t *testing.T) {
	_, _, mux := newTestUI(t, true)

	rec := get(t, mux, "/partials/tasks?day="+url.QueryEscape("понедельник"))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Equal(t, 2, strings.Count(body, `class="task-checkbox"`))
	assert.NotContains(t, body, "<html")
	assert.Contains(t, body, `data-id="1"`)
	assert.Contains(t, body, `data-id="2"`)
}

func TestTasksPartial_EmptyState(t *testing.T) {
	_, _, mux := newTestUI(t, false)

	rec := get(t, mux, "/partials/tasks")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "empty-state")
}

func TestTasksPartial_CompletedMarkup(t *testing.T) {
	_, _, mux := newTestUI(t, true)

	rec := get(t, mux, "/partials/tasks?day="+url.QueryEscape("Среда"))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `class="task-card completed"`)
	assert.Contains(t, body, " checked>")
}

func TestRenderTitle(t *testing.T) {
	ui, _, _ := newTestUI(t, false)

	tests := []struct {
		name  string
		title string
		want  template.HTML
	}{
		{"plain", "Бег", "Бег"},
		{"bold", "**важно**", "<strong>важно</strong>"},
		{"link", "[docs](https://go.dev)", `<a href="https://go.dev">docs</a>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ui.renderTitle(tt.title))
		})
	}
}

func TestRenderTitle_BlockSyntaxStaysLiteral(t *testing.T) {
	ui, _, _ := newTestUI(t, false)

	tests := []struct {
		title string
		want  template.HTML
	}{
		{"1. Купить хлеб", "1. Купить хлеб"},
		{"# Встреча", "# Встреча"},
		{"- молоко", "- молоко"},
		{"> цитата", "&gt; цитата"},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, ui.renderTitle(tt.title))
		})
	}
}

func TestRenderTitle_EscapesRawHTML(t *testing.T) {
	ui, _, _ := newTestUI(t, false)

	assert.Equal(t, template.HTML("&lt;b&gt;x&lt;/b&gt;"), ui.renderTitle("<b>x</b>"))

	out := string(ui.renderTitle("hi <script>alert(1)</script>"))
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "&lt;script&gt;")
}

func TestIndex_ShowsRawHTMLTitleAsTyped(t *testing.T) {
	_, svc, mux := newTestUI(t, false)
	_, err := svc.Create(context.Background(), tasks.CreateRequest{Day: "Пятница", Title: "<b>важно</b>"})
	require.NoError(t, err)

	rec := get(t, mux, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "&lt;b&gt;важно&lt;/b&gt;")
	assert.NotContains(t, body, "raw HTML omitted")
}

func TestIndex_RendersMarkdownTitle(t *testing.T) {
	_, svc, mux := newTestUI(t, false)
	_, err := svc.Create(context.Background(), tasks.CreateRequest{Day: "Пятница", Title: "**кино**"})
	require.NoError(t, err)

	rec := get(t, mux, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<strong>кино</strong>")
}

func TestGroupByDay(t *testing.T) {
	list := []*store.Task{
		{ID: 1, Day: "B", Title: "one"},
		{ID: 2, Day: "A", Title: "two"},
		{ID: 3, Day: "B", Title: "three"},
	}
	plain := func(s string) template.HTML { return template.HTML(s) }

	groups := groupByDay(list, plain)
	require.Len(t, groups, 2)
	assert.Equal(t, "B", groups[0].Day)
	assert.Equal(t, "A", groups[1].Day)
	require.Len(t, groups[0].Tasks, 2)
	assert.Equal(t, 1, groups[0].Tasks[0].ID)
	assert.Equal(t, 3, groups[0].Tasks[1].ID)

	assert.Empty(t, groupByDay(nil, plain))
}

func TestStaticAssets(t *testing.T) {
	_, _, mux := newTestUI(t, false)

	for _, path := range []string{"/static/app.js", "/static/style.css"} {
		t.Run(path, func(t *testing.T) {
			rec := get(t, mux, path)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.NotEmpty(t, rec.Body.String())
		})
	}

	rec := get(t, mux, "/static/app.js")
	assert.Contains(t, rec.Body.String(), "/api/tasks")
	assert.Equal(t, "application/javascript", rec.Header().Get("Content-Type"))
	assert.Equal(t, "no-cache", rec.Header().Get("Cache-Control"))

	rec = get(t, mux, "/static/style.css")
	assert.Equal(t, "text/css; charset=utf-8", rec.Header().Get("Content-Type"))

	rec = get(t, mux, "/static/missing.js")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMimeFromExt(t *testing.T) {
	assert.Equal(t, "application/javascript", mimeFromExt(".mjs"))
	assert.Equal(t, "image/svg+xml", mimeFromExt(".svg"))
	assert.Equal(t, "application/octet-stream", mimeFromExt(".nope-ext"))
}
