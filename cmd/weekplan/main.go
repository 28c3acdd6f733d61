// ABOUTME: Entry point for the weekplan server and command-line client
// ABOUTME: Dispatches serve/init/health and the task subcommands

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/fatih/color"

	"github.com/2389/weekplan/internal/client"
	"github.com/2389/weekplan/internal/config"
	"github.com/2389/weekplan/internal/server"
)

// Version is set at build time.
var version = "dev"

const banner = `
                    _         _
 __      _____  ___| | ___ __| | __ _ _ __
 \ \ /\ / / _ \/ _ \ |/ / '_ \ |/ _' | '_ \
  \ V  V /  __/  __/   <| |_) | | (_| | | | |
   \_/\_/ \___|\___|_|\_\ .__/|_|\__,_|_| |_|
                        |_|
`

// getConfigPath returns the path to the config file.
// Priority: WEEKPLAN_CONFIG env var > XDG_CONFIG_HOME/weekplan/config.yaml > ~/.config/weekplan/config.yaml
func getConfigPath() string {
	if envPath := os.Getenv("WEEKPLAN_CONFIG"); envPath != "" {
		return envPath
	}

	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "config.yaml" // fallback
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	return filepath.Join(configDir, "weekplan", "config.yaml")
}

// getServerURL returns the API base URL for client commands.
func getServerURL() string {
	if u := os.Getenv("WEEKPLAN_URL"); u != "" {
		return u
	}
	return client.DefaultURL
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "serve":
		err = runServe(ctx)
	case "init":
		err = runInit(os.Stdin, os.Stdout)
	case "health":
		err = runHealth(ctx, newClient(), os.Stdout)
	case "tasks", "ls":
		err = cmdTasks(ctx, newClient(), os.Stdout, args)
	case "add":
		err = cmdAdd(ctx, newClient(), os.Stdout, args)
	case "done":
		err = cmdSetCompleted(ctx, newClient(), os.Stdout, args, true)
	case "undo":
		err = cmdSetCompleted(ctx, newClient(), os.Stdout, args, false)
	case "rm":
		err = cmdRemove(ctx, newClient(), os.Stdout, args)
	case "stats":
		err = cmdStats(ctx, newClient(), os.Stdout)
	case "version":
		fmt.Println(version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		color.Red("Error: %v\n", err)
		os.Exit(1)
	}
}

func newClient() *client.Client {
	return client.New(getServerURL())
}

func printUsage() {
	cyan := color.New(color.FgCyan)
	yellow := color.New(color.FgYellow)

	cyan.Print(banner)
	fmt.Println()
	fmt.Println("Usage: weekplan <command> [args]")
	fmt.Println()
	yellow.Println("Server:")
	fmt.Println("  serve                              Start the HTTP server")
	fmt.Println("  init                               Create a new config file interactively")
	fmt.Println("  health                             Check server health")
	fmt.Println()
	yellow.Println("Tasks:")
	fmt.Println("  tasks [--day DAY]                  List tasks, optionally for one day")
	fmt.Println("  add --day DAY --title T [--time HH:MM]")
	fmt.Println("                                     Add a task")
	fmt.Println("  done <id>                          Mark a task completed")
	fmt.Println("  undo <id>                          Mark a task not completed")
	fmt.Println("  rm <id>                            Delete a task")
	fmt.Println("  stats                              Show statistics")
	fmt.Println()
	yellow.Println("Environment:")
	fmt.Println("  WEEKPLAN_CONFIG    Config file path (default: ~/.config/weekplan/config.yaml)")
	fmt.Println("  WEEKPLAN_URL       Server URL for task commands (default: http://localhost:3000)")
	fmt.Println("  PORT               Listen port when server.http_addr is unset (default: 3000)")
	fmt.Println()
}

func runServe(ctx context.Context) error {
	configPath := getConfigPath()

	cyan := color.New(color.FgCyan)
	cyan.Print(banner)

	gray := color.New(color.FgHiBlack)
	gray.Printf("    version: %s\n\n", version)

	// A missing config file means defaults
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := setupLogger(cfg.Logging, os.Stdout)

	green := color.New(color.FgGreen)
	green.Print("    ▶ ")
	fmt.Printf("Config:    %s\n", configPath)
	green.Print("    ▶ ")
	fmt.Printf("HTTP:      http://%s\n", cfg.Server.HTTPAddr)
	green.Print("    ▶ ")
	fmt.Printf("Store:     %s", cfg.Store.Driver)
	if cfg.Store.Driver == config.DriverSQLite {
		gray.Printf(" (%s)", cfg.Store.Path)
	}
	fmt.Println()
	if !cfg.WebUI.IsEnabled() {
		green.Print("    ▶ ")
		fmt.Println("Web UI:    disabled")
	}
	fmt.Println()

	logger.Info("starting weekplan",
		"config", configPath,
		"http_addr", cfg.Server.HTTPAddr,
		"store", cfg.Store.Driver,
	)

	srv, err := server.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	return srv.Run(ctx)
}

func runHealth(ctx context.Context, c *client.Client, out io.Writer) error {
	if err := c.Health(ctx); err != nil {
		return fmt.Errorf("health check against %s failed: %w", c.BaseURL(), err)
	}

	fmt.Fprintf(out, "healthy (%s)\n", c.BaseURL())
	return nil
}

// initAnswers holds the values collected by runInit.
type initAnswers struct {
	HTTPAddr  string
	Driver    string
	Path      string
	Seed      bool
	WebUI     bool
	LogLevel  string
	LogFormat string
}

func runInit(in io.Reader, out io.Writer) error {
	reader := bufio.NewReader(in)

	fmt.Fprintln(out, "weekplan configuration setup")
	fmt.Fprintln(out, "============================")
	fmt.Fprintln(out)

	outputFile := prompt(reader, out, "Config file path", getConfigPath())

	if _, err := os.Stat(outputFile); err == nil {
		overwrite := prompt(reader, out, "File exists. Overwrite?", "no")
		if !isYes(overwrite) {
			fmt.Fprintln(out, "Aborted.")
			return nil
		}
	}

	var a initAnswers

	fmt.Fprintln(out, "\n--- Server Configuration ---")
	a.HTTPAddr = prompt(reader, out, "HTTP address", "localhost:3000")

	fmt.Fprintln(out, "\n--- Store Configuration ---")
	a.Driver = prompt(reader, out, "Store driver (memory/sqlite)", config.DriverMemory)
	if a.Driver == config.DriverSQLite {
		a.Path = prompt(reader, out, "SQLite path", ":memory:")
	}
	a.Seed = isYes(prompt(reader, out, "Start with the sample week?", "yes"))

	fmt.Fprintln(out, "\n--- Web UI ---")
	a.WebUI = isYes(prompt(reader, out, "Serve the browser front-end?", "yes"))

	fmt.Fprintln(out, "\n--- Logging Configuration ---")
	a.LogLevel = prompt(reader, out, "Log level (debug/info/warn/error)", "info")
	a.LogFormat = prompt(reader, out, "Log format (text/json)", "text")

	content := renderConfig(a)

	// Refuse to write something serve would reject
	if _, err := config.Parse([]byte(content), false); err != nil {
		return fmt.Errorf("invalid answers: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(outputFile), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(outputFile, []byte(content), 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	fmt.Fprintf(out, "\nConfig written to %s\n", outputFile)
	fmt.Fprintln(out, "\nTo start the server:")
	fmt.Fprintln(out, "  weekplan serve")

	return nil
}

// renderConfig writes the YAML config for a set of init answers.
func renderConfig(a initAnswers) string {
	var cfg strings.Builder
	cfg.WriteString("# weekplan configuration\n")
	cfg.WriteString("# Generated by weekplan init\n\n")

	cfg.WriteString("server:\n")
	cfg.WriteString(fmt.Sprintf("  http_addr: %q\n", a.HTTPAddr))
	cfg.WriteString("  read_header_timeout: \"10s\"\n")
	cfg.WriteString("  shutdown_timeout: \"5s\"\n")
	cfg.WriteString("\n")

	cfg.WriteString("store:\n")
	cfg.WriteString(fmt.Sprintf("  driver: %q\n", a.Driver))
	if a.Path != "" {
		cfg.WriteString(fmt.Sprintf("  path: %q\n", a.Path))
	}
	cfg.WriteString(fmt.Sprintf("  seed: %t\n", a.Seed))
	cfg.WriteString("\n")

	cfg.WriteString("webui:\n")
	cfg.WriteString(fmt.Sprintf("  enabled: %t\n", a.WebUI))
	cfg.WriteString("\n")

	cfg.WriteString("logging:\n")
	cfg.WriteString(fmt.Sprintf("  level: %q\n", a.LogLevel))
	cfg.WriteString(fmt.Sprintf("  format: %q\n", a.LogFormat))

	return cfg.String()
}

func prompt(reader *bufio.Reader, out io.Writer, question, defaultVal string) string {
	if defaultVal != "" {
		fmt.Fprintf(out, "%s [%s]: ", question, defaultVal)
	} else {
		fmt.Fprintf(out, "%s: ", question)
	}

	input, err := reader.ReadString('\n')
	if err != nil && input == "" {
		// On EOF or error, return default
		fmt.Fprintln(out)
		return defaultVal
	}
	input = strings.TrimSpace(input)

	if input == "" {
		return defaultVal
	}
	return input
}

func isYes(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "yes" || s == "y"
}
