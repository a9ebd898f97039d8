package config

import (
	"errors"
	"fmt"
)

// DefaultPlaceholder is the glyph shown when a workspace label strips down
// to nothing.
const DefaultPlaceholder = "" //  (U+F111, Font Awesome circle)

// Config is the on-disk configuration. Every field has a default; a missing
// config file behaves like an empty one.
type Config struct {
	// SocketPath overrides i3 socket discovery when set.
	SocketPath string `yaml:"socket_path,omitempty"`
	// LogLevel is one of debug, info, warning, error.
	LogLevel string `yaml:"log_level"`
	// Widget controls the emitted markup.
	Widget WidgetConfig `yaml:"widget"`
}

// WidgetConfig holds the attributes of the emitted yuck widgets.
type WidgetConfig struct {
	// BoxClass is the CSS class of the enclosing box.
	BoxClass string `yaml:"box_class"`
	// Orientation is the box axis: h, v, horizontal or vertical.
	Orientation string `yaml:"orientation"`
	// Spacing is the gap between buttons in pixels.
	Spacing int `yaml:"spacing"`
	// SpaceEvenly makes the box distribute its space equally.
	SpaceEvenly bool `yaml:"space_evenly"`
	// ButtonClassPrefix is prepended to the visibility state to form each
	// button's CSS class.
	ButtonClassPrefix string `yaml:"button_class_prefix"`
	// Placeholder is the label used when a workspace name yields no glyphs.
	Placeholder string `yaml:"placeholder"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Widget:   DefaultWidgetConfig(),
	}
}

// DefaultWidgetConfig returns widget attributes producing the classic
// i3wm-workspaces markup that existing eww themes style.
func DefaultWidgetConfig() WidgetConfig {
	return WidgetConfig{
		BoxClass:          "i3wm-workspaces",
		Orientation:       "h",
		Spacing:           5,
		SpaceEvenly:       false,
		ButtonClassPrefix: "i3wm-workspace-",
		Placeholder:       DefaultPlaceholder,
	}
}

// ValidationError reports an invalid config value with its YAML path.
type ValidationError struct {
	Path string
	Err  error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid config value at %s: %v", e.Path, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

var logLevels = map[string]bool{
	"debug":   true,
	"info":    true,
	"warning": true,
	"error":   true,
}

var orientations = map[string]bool{
	"h":          true,
	"v":          true,
	"horizontal": true,
	"vertical":   true,
}

// Validate checks for values the renderer or logger cannot use.
func (c *Config) Validate() error {
	if !logLevels[c.LogLevel] {
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("unknown level %q", c.LogLevel)}
	}
	if c.Widget.BoxClass == "" {
		return &ValidationError{Path: "widget.box_class", Err: errors.New("must not be empty")}
	}
	if !orientations[c.Widget.Orientation] {
		return &ValidationError{Path: "widget.orientation", Err: fmt.Errorf("unknown orientation %q", c.Widget.Orientation)}
	}
	if c.Widget.Spacing < 0 {
		return &ValidationError{Path: "widget.spacing", Err: errors.New("must not be negative")}
	}
	if c.Widget.ButtonClassPrefix == "" {
		return &ValidationError{Path: "widget.button_class_prefix", Err: errors.New("must not be empty")}
	}
	if c.Widget.Placeholder == "" {
		return &ValidationError{Path: "widget.placeholder", Err: errors.New("must not be empty")}
	}
	return nil
}
