package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/1broseidon/workstrip/internal/tui"
)

func runTUI(args []string) int {
	// Keep help out of flag parsing so the keybinding listing always
	// wins over flag errors.
	if len(args) > 0 && (args[0] == "help" || args[0] == "-h" || args[0] == "--help") {
		fmt.Fprintln(os.Stderr, "Usage: workstrip tui [--config PATH] <output>")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Live inspector. Runs the same engine as watch against live i3")
		fmt.Fprintln(os.Stderr, "events and shows the strip, the emitted line, and an event log.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Keybindings:")
		fmt.Fprintln(os.Stderr, "  c          Clear the event log")
		fmt.Fprintln(os.Stderr, "  q, Esc     Quit")
		fmt.Fprintln(os.Stderr, "  Ctrl+C     Quit")
		return 0
	}

	fs := flag.NewFlagSet("tui", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	configPath := fs.String("config", "", "Config file path (default: ~/.config/workstrip/config.yaml)")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: workstrip tui [--config PATH] <output>")
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "tui requires exactly one output name")
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

	if err := tui.Run(output, cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
