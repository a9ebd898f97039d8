package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/1broseidon/workstrip/internal/config"
	"github.com/1broseidon/workstrip/internal/i3"
	"github.com/1broseidon/workstrip/internal/strip"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "no output specified")
		fmt.Fprintln(os.Stderr, "")
		printMainUsage(os.Stderr)
		os.Exit(2)
	}

	switch os.Args[1] {
	case "watch":
		os.Exit(runWatch(os.Args[2:]))
	case "outputs":
		os.Exit(runOutputs(os.Args[2:]))
	case "workspaces":
		os.Exit(runWorkspaces(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "tui":
		os.Exit(runTUI(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		// Bare form: workstrip <output> behaves like workstrip watch <output>.
		os.Exit(runWatch(os.Args[1:]))
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: workstrip <output>")
	fmt.Fprintln(w, "       workstrip <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  watch <output>      Stream the workspace strip for an output (default)")
	fmt.Fprintln(w, "  outputs             List i3 outputs")
	fmt.Fprintln(w, "  workspaces          List i3 workspaces")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print configuration")
	fmt.Fprintln(w, "  config init         Write a config file interactively")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  tui <output>        Live strip inspector")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'workstrip <command> --help' for command-specific options.")
}

func runWatch(args []string) int {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	configPath := fs.String("config", "", "Config file path (default: ~/.config/workstrip/config.yaml)")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: workstrip watch [--config PATH] <output>")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Subscribe to i3 workspace events and write one line of eww yuck")
		fmt.Fprintln(os.Stderr, "markup to stdout per visible change. Meant for eww deflisten.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "watch requires exactly one output name")
		fs.Usage()
		return 2
	}
	output := fs.Arg(0)
	if strings.TrimSpace(output) == "" {
		fmt.Fprintln(os.Stderr, "no output specified")
		return 2
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	logger := newLogger(cfg.LogLevel)

	if term.IsTerminal(int(os.Stdout.Fd())) {
		logger.Warn("stdout is a terminal; the strip is meant to be consumed by eww deflisten")
	}

	// Two connections: queries stay synchronous while the second one
	// carries nothing but the subscribed event stream.
	queries, err := i3.Connect(cfg.SocketPath)
	if err != nil {
		logger.Error("failed to connect to i3", "error", err)
		return 1
	}
	defer queries.Close()

	events, err := i3.Connect(cfg.SocketPath)
	if err != nil {
		logger.Error("failed to connect to i3", "error", err)
		return 1
	}
	defer events.Close()
	logger.Info("connected to i3")

	if err := events.Subscribe(i3.SubscribeWorkspace); err != nil {
		logger.Error("failed to subscribe to workspace events", "error", err)
		return 1
	}
	logger.Info("subscribed to workspace events")

	engine := strip.NewEngine(strip.EngineConfig{
		Output: output,
		Widget: cfg.Widget,
		Logger: logger,
	}, queries.Workspaces)

	line, err := engine.Seed()
	if err != nil {
		logger.Error("failed to seed the workspace strip", "error", err)
		return 1
	}
	fmt.Println(line)
	logger.Info("seeded workspace strip", "output", output, "workspaces", len(engine.Keys()))

	for {
		event, err := events.NextWorkspaceEvent()
		if err != nil {
			logger.Error("event stream closed", "error", err)
			return 1
		}

		line, render, err := engine.Handle(event)
		if err != nil {
			logger.Error("failed to handle workspace event", "change", event.Change, "error", err)
			return 1
		}
		if render {
			fmt.Println(line)
		}
	}
}

// loadConfig loads from the override path when set, the default location
// otherwise.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromPath(path)
	}
	return config.Load()
}

// newLogger builds the stderr logger. stdout stays reserved for the strip.
func newLogger(level string) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: levelFromString(level),
	}))
}

func levelFromString(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
