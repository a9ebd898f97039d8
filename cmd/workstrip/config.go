package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/1broseidon/workstrip/internal/config"
)

func printConfigUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  workstrip config validate [--config PATH]")
	fmt.Fprintln(w, "  workstrip config print [--config PATH] [--defaults]")
	fmt.Fprintln(w, "  workstrip config init [--config PATH] [--force]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'workstrip config <command> --help' for command-specific options.")
}

func runConfig(args []string) int {
	if len(args) == 0 {
		printConfigUsage(os.Stderr)
		return 2
	}
	if args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		printConfigUsage(os.Stdout)
		return 0
	}

	switch args[0] {
	case "validate":
		return runConfigValidate(args[1:])
	case "print":
		return runConfigPrint(args[1:])
	case "init":
		return runConfigInit(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "Unknown config command: %s\n\n", args[0])
		printConfigUsage(os.Stderr)
		return 2
	}
}

func runConfigValidate(args []string) int {
	fs := flag.NewFlagSet("config validate", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	configPath := fs.String("config", "", "Config file path (default: ~/.config/workstrip/config.yaml)")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: workstrip config validate [--config PATH]")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "config validate takes no arguments")
		fs.Usage()
		return 2
	}

	if _, err := loadConfig(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Println("config: ok")
	return 0
}

func runConfigPrint(args []string) int {
	fs := flag.NewFlagSet("config print", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	configPath := fs.String("config", "", "Config file path (default: ~/.config/workstrip/config.yaml)")
	defaults := fs.Bool("defaults", false, "Print the built-in defaults instead of the loaded config")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: workstrip config print [--config PATH] [--defaults]")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "config print takes no arguments")
		fs.Usage()
		return 2
	}

	cfg := config.DefaultConfig()
	if !*defaults {
		loaded, err := loadConfig(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		cfg = loaded
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Print(string(data))
	return 0
}

func runConfigInit(args []string) int {
	fs := flag.NewFlagSet("config init", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	configPath := fs.String("config", "", "Config file path (default: ~/.config/workstrip/config.yaml)")
	force := fs.Bool("force", false, "Overwrite an existing config file")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: workstrip config init [--config PATH] [--force]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Interactively write a config file.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "config init takes no arguments")
		fs.Usage()
		return 2
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "config init requires an interactive terminal")
		return 1
	}

	path := *configPath
	if path == "" {
		defaultPath, err := config.DefaultConfigPath()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		path = defaultPath
	}
	if _, err := os.Stat(path); err == nil && !*force {
		fmt.Fprintf(os.Stderr, "%s already exists (use --force to overwrite)\n", path)
		return 1
	}

	cfg, err := promptConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if cfg == nil {
		fmt.Fprintln(os.Stderr, "aborted, nothing written")
		return 0
	}

	if err := cfg.Save(path); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Printf("wrote %s\n", path)
	return 0
}

// promptConfig runs the interactive form. A nil config without an error
// means the user declined the final confirmation.
func promptConfig() (*config.Config, error) {
	defaults := config.DefaultConfig()

	logLevel := defaults.LogLevel
	orientation := defaults.Widget.Orientation
	spacing := strconv.Itoa(defaults.Widget.Spacing)
	boxClass := defaults.Widget.BoxClass
	classPrefix := defaults.Widget.ButtonClassPrefix
	confirmed := true

	levelOpts := []huh.Option[string]{
		huh.NewOption("debug", "debug"),
		huh.NewOption("info", "info"),
		huh.NewOption("warning", "warning"),
		huh.NewOption("error", "error"),
	}
	orientationOpts := []huh.Option[string]{
		huh.NewOption("horizontal", "h"),
		huh.NewOption("vertical", "v"),
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("log_level").
				Title("Log Level").
				Description("Diagnostics go to stderr, the strip stays on stdout").
				Options(levelOpts...).
				Value(&logLevel),

			huh.NewSelect[string]().
				Key("orientation").
				Title("Orientation").
				Description("Axis the box lays buttons out on").
				Options(orientationOpts...).
				Value(&orientation),

			huh.NewInput().
				Key("spacing").
				Title("Spacing").
				Description("Pixels between workspace buttons").
				Validate(validateSpacing).
				Value(&spacing),

			huh.NewInput().
				Key("box_class").
				Title("Box Class").
				Description("CSS class of the enclosing box").
				Validate(validateNonEmpty).
				Value(&boxClass),

			huh.NewInput().
				Key("button_class_prefix").
				Title("Button Class Prefix").
				Description("Composed with the state, e.g. i3wm-workspace-focused").
				Validate(validateNonEmpty).
				Value(&classPrefix),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Key("confirmed").
				Title("Write the config file?").
				Value(&confirmed),
		),
	).WithShowHelp(true).WithShowErrors(true)

	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("config form failed: %w", err)
	}
	if !confirmed {
		return nil, nil
	}

	cfg := config.DefaultConfig()
	cfg.LogLevel = logLevel
	cfg.Widget.Orientation = orientation
	cfg.Widget.BoxClass = boxClass
	cfg.Widget.ButtonClassPrefix = classPrefix
	if v, err := strconv.Atoi(spacing); err == nil && v >= 0 {
		cfg.Widget.Spacing = v
	}
	return cfg, nil
}

func validateSpacing(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil {
		return errors.New("must be an integer")
	}
	if n < 0 {
		return errors.New("must not be negative")
	}
	return nil
}

func validateNonEmpty(s string) error {
	if s == "" {
		return errors.New("must not be empty")
	}
	return nil
}
