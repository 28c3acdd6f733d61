// ABOUTME: Task subcommands that talk to a running server through the API client
// ABOUTME: Implements tasks, add, done, undo, rm and stats with tabular colour output

package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/2389/weekplan/internal/client"
	"github.com/2389/weekplan/internal/store"
	"github.com/2389/weekplan/internal/tasks"
)

// parseFlags reads "--name value" and "--name=value" pairs for the allowed names.
// Anything not starting with "-" is returned as a positional argument.
func parseFlags(args []string, allowed ...string) (map[string]string, []string, error) {
	isAllowed := make(map[string]bool, len(allowed))
	for _, name := range allowed {
		isAllowed[name] = true
	}

	flags := make(map[string]string)
	var positional []string

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") {
			positional = append(positional, arg)
			continue
		}

		name := strings.TrimLeft(arg, "-")
		value, hasValue := "", false
		if k, v, ok := strings.Cut(name, "="); ok {
			name, value, hasValue = k, v, true
		}

		if !isAllowed[name] {
			return nil, nil, fmt.Errorf("unknown flag: %s", arg)
		}
		if !hasValue {
			if i+1 >= len(args) {
				return nil, nil, fmt.Errorf("--%s requires a value", name)
			}
			value = args[i+1]
			i++
		}
		flags[name] = value
	}

	return flags, positional, nil
}

// parseTaskID returns the single positional id argument.
func parseTaskID(args []string) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("expected exactly one task id")
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("invalid task id %q", args[0])
	}
	return id, nil
}

func cmdTasks(ctx context.Context, c *client.Client, out io.Writer, args []string) error {
	flags, _, err := parseFlags(args, "day")
	if err != nil {
		return err
	}

	list, err := c.ListTasks(ctx, flags["day"])
	if err != nil {
		return fmt.Errorf("listing tasks: %w", err)
	}

	if len(list) == 0 {
		fmt.Fprintln(out, "No tasks.")
		return nil
	}

	printTasks(out, list)
	return nil
}

func printTasks(out io.Writer, list []*store.Task) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDAY\tTIME\tDONE\tTITLE")
	for _, t := range list {
		done := " "
		if t.Completed {
			done = color.GreenString("✓")
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", t.ID, t.Day, t.Time, done, t.Title)
	}
	w.Flush()
}

func cmdAdd(ctx context.Context, c *client.Client, out io.Writer, args []string) error {
	flags, _, err := parseFlags(args, "day", "title", "time")
	if err != nil {
		return err
	}
	if flags["day"] == "" || flags["title"] == "" {
		return fmt.Errorf("--day and --title are required")
	}

	t, err := c.CreateTask(ctx, tasks.CreateRequest{
		Day:   flags["day"],
		Title: flags["title"],
		Time:  flags["time"],
	})
	if err != nil {
		return fmt.Errorf("creating task: %w", err)
	}

	color.New(color.FgGreen).Fprintf(out, "  ✓ Created task %d: ", t.ID)
	fmt.Fprintf(out, "%s %s %s\n", t.Day, t.Time, t.Title)
	return nil
}

func cmdSetCompleted(ctx context.Context, c *client.Client, out io.Writer, args []string, completed bool) error {
	id, err := parseTaskID(args)
	if err != nil {
		return err
	}

	t, err := c.UpdateTask(ctx, id, tasks.UpdateRequest{Completed: tasks.Bool(completed)})
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}

	state := "not completed"
	if t.Completed {
		state = "completed"
	}
	color.New(color.FgGreen).Fprintf(out, "  ✓ Task %d ", t.ID)
	fmt.Fprintf(out, "marked %s: %s\n", state, t.Title)
	return nil
}

func cmdRemove(ctx context.Context, c *client.Client, out io.Writer, args []string) error {
	id, err := parseTaskID(args)
	if err != nil {
		return err
	}

	t, err := c.DeleteTask(ctx, id)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}

	color.New(color.FgGreen).Fprintf(out, "  ✓ Deleted task %d: ", t.ID)
	fmt.Fprintln(out, t.Title)
	return nil
}

func cmdStats(ctx context.Context, c *client.Client, out io.Writer) error {
	stats, err := c.Statistics(ctx)
	if err != nil {
		return fmt.Errorf("fetching statistics: %w", err)
	}

	cyan := color.New(color.FgCyan)

	fmt.Fprintln(out)
	cyan.Fprintln(out, "  Statistics")
	cyan.Fprintln(out, "  ----------")
	fmt.Fprintf(out, "  Total:      %d\n", stats.Total)
	fmt.Fprintf(out, "  Completed:  %d\n", stats.Completed)
	fmt.Fprintf(out, "  Pending:    %d\n", stats.Pending)
	fmt.Fprintf(out, "  Progress:   %d%%\n", stats.CompletionRate)

	if len(stats.ByDay) > 0 {
		fmt.Fprintln(out)
		cyan.Fprintln(out, "  By day")
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		for _, dc := range stats.ByDay {
			fmt.Fprintf(w, "  %s\t%d\n", dc.Day, dc.Count)
		}
		w.Flush()
	}
	fmt.Fprintln(out)
	return nil
}
