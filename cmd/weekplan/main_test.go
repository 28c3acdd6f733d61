// ABOUTME: Tests for CLI helpers: flag parsing, config path, init output and logging
// ABOUTME: Task subcommands run against an in-process server

package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2389/weekplan/internal/client"
	"github.com/2389/weekplan/internal/config"
	"github.com/2389/weekplan/internal/server"
)

func init() {
	color.NoColor = true
}

func TestParseFlags(t *testing.T) {
	flags, pos, err := parseFlags([]string{"--day", "Среда", "--title=Йога", "extra"}, "day", "title", "time")
	require.NoError(t, err)
	assert.Equal(t, "Среда", flags["day"])
	assert.Equal(t, "Йога", flags["title"])
	assert.Equal(t, []string{"extra"}, pos)

	_, _, err = parseFlags([]string{"--nope", "x"}, "day")
	assert.EqualError(t, err, "unknown flag: --nope")

	_, _, err = parseFlags([]string{"--day"}, "day")
	assert.EqualError(t, err, "--day requires a value")
}

func TestParseTaskID(t *testing.T) {
	id, err := parseTaskID([]string{"7"})
	require.NoError(t, err)
	assert.Equal(t, 7, id)

	_, err = parseTaskID(nil)
	assert.Error(t, err)
	_, err = parseTaskID([]string{"abc"})
	assert.Error(t, err)
}

func TestGetConfigPath(t *testing.T) {
	t.Setenv("WEEKPLAN_CONFIG", "/tmp/custom.yaml")
	assert.Equal(t, "/tmp/custom.yaml", getConfigPath())

	t.Setenv("WEEKPLAN_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	assert.Equal(t, filepath.Join("/xdg", "weekplan", "config.yaml"), getConfigPath())
}

func TestGetServerURL(t *testing.T) {
	t.Setenv("WEEKPLAN_URL", "")
	assert.Equal(t, client.DefaultURL, getServerURL())

	t.Setenv("WEEKPLAN_URL", "http://planner:8080")
	assert.Equal(t, "http://planner:8080", getServerURL())
}

func TestRunInit_WritesLoadableConfig(t *testing.T) {
	t.Setenv("PORT", "")
	path := filepath.Join(t.TempDir(), "weekplan", "config.yaml")

	answers := strings.Join([]string{
		path,             // config path
		"127.0.0.1:4000", // http addr
		"sqlite",         // driver
		"",               // sqlite path (default)
		"no",             // seed
		"",               // web ui (default yes)
		"debug",          // level
		"json",           // format
	}, "\n") + "\n"

	var out bytes.Buffer
	require.NoError(t, runInit(strings.NewReader(answers), &out))
	assert.Contains(t, out.String(), "Config written to "+path)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:4000", cfg.Server.HTTPAddr)
	assert.Equal(t, config.DriverSQLite, cfg.Store.Driver)
	assert.Equal(t, ":memory:", cfg.Store.Path)
	assert.False(t, cfg.Store.SeedEnabled())
	assert.True(t, cfg.WebUI.IsEnabled())
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestRunInit_RejectsInvalidAnswers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	answers := path + "\n\npostgres\n\n\n\n\n"

	err := runInit(strings.NewReader(answers), io.Discard)
	require.Error(t, err)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunInit_KeepsExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("keep"), 0644))

	var out bytes.Buffer
	require.NoError(t, runInit(strings.NewReader(path+"\nno\n"), &out))
	assert.Contains(t, out.String(), "Aborted.")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "keep", string(data))
}

func TestSetupLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	logger := setupLogger(config.LoggingConfig{Level: "warn", Format: "text"}, &buf)

	logger.Info("hidden")
	logger.Warn("shown", "key", "value")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "WRN shown")
	assert.Contains(t, out, "key=value")
}

func TestSetupLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := setupLogger(config.LoggingConfig{Level: "info", Format: "json"}, &buf)

	logger.Info("hello", "n", 1)
	assert.Contains(t, buf.String(), `"msg":"hello"`)
	assert.Contains(t, buf.String(), `"n":1`)
}

func TestColorHandler_AttrsAndGroups(t *testing.T) {
	var buf bytes.Buffer
	logger := setupLogger(config.LoggingConfig{Level: "debug"}, &buf)

	logger.With("component", "server").WithGroup("req").Debug("done", "status", 200)

	out := buf.String()
	assert.Contains(t, out, "DBG done")
	assert.Contains(t, out, "component=server")
	assert.Contains(t, out, "req.status=200")
}

func newTestCLIClient(t *testing.T) *client.Client {
	t.Helper()
	srv, err := server.New(config.Default(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		ts.Close()
		_ = srv.Shutdown(context.Background())
	})
	return client.New(ts.URL)
}

func TestTaskCommands(t *testing.T) {
	c := newTestCLIClient(t)
	ctx := context.Background()

	var out bytes.Buffer
	require.NoError(t, cmdTasks(ctx, c, &out, []string{"--day", "понедельник"}))
	assert.Contains(t, out.String(), "Утренняя зарядка")
	assert.NotContains(t, out.String(), "Йога")

	out.Reset()
	require.NoError(t, cmdAdd(ctx, c, &out, []string{"--day", "Пятница", "--title", "Кино", "--time", "20:00"}))
	assert.Contains(t, out.String(), "Created task 5")

	out.Reset()
	require.NoError(t, cmdSetCompleted(ctx, c, &out, []string{"5"}, true))
	assert.Contains(t, out.String(), "marked completed: Кино")

	out.Reset()
	require.NoError(t, cmdSetCompleted(ctx, c, &out, []string{"4"}, false))
	assert.Contains(t, out.String(), "marked not completed: Йога")

	out.Reset()
	require.NoError(t, cmdRemove(ctx, c, &out, []string{"1"}))
	assert.Contains(t, out.String(), "Deleted task 1")

	out.Reset()
	require.NoError(t, cmdStats(ctx, c, &out))
	assert.Contains(t, out.String(), "Total:      4")
	assert.Contains(t, out.String(), "Completed:  1")
	assert.Contains(t, out.String(), "Progress:   25%")

	err := cmdRemove(ctx, c, &out, []string{"999"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Task with ID 999 not found")

	err = cmdAdd(ctx, c, &out, []string{"--day", "Пятница"})
	assert.EqualError(t, err, "--day and --title are required")
}

func TestTaskCommands_Empty(t *testing.T) {
	c := newTestCLIClient(t)

	var out bytes.Buffer
	require.NoError(t, cmdTasks(context.Background(), c, &out, []string{"--day=понед"}))
	assert.Equal(t, "No tasks.\n", out.String())
}

func TestRunHealth(t *testing.T) {
	c := newTestCLIClient(t)

	var out bytes.Buffer
	require.NoError(t, runHealth(context.Background(), c, &out))
	assert.Equal(t, "healthy ("+c.BaseURL()+")\n", out.String())
}

func TestRunHealth_Unreachable(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	var out bytes.Buffer
	err := runHealth(context.Background(), client.New(url), &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "health check against "+url+" failed")
	assert.Empty(t, out.String())
}
