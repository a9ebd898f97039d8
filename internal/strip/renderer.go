package strip

import (
	"fmt"
	"strings"

	"github.com/1broseidon/workstrip/internal/config"
)

// The templates mirror how the markup reads in a .yuck file. Line flattens
// the result: the deflisten transport is line-delimited, so the emitted
// strip must never contain a line break.
const boxTemplate = `(box :class '%s'
     :orientation '%s'
     :spacing %d
     :space-evenly '%t'
`

const buttonTemplate = `(button   :class '%s%s'
          :onclick 'i3-msg -t run_command workspace %d'
          '%s')`

// Renderer serializes registry content into eww's yuck widget markup.
type Renderer struct {
	boxClass    string
	orientation string
	spacing     int
	spaceEvenly bool
	classPrefix string
}

// NewRenderer returns a Renderer with the given widget attributes.
func NewRenderer(widget config.WidgetConfig) *Renderer {
	return &Renderer{
		boxClass:    widget.BoxClass,
		orientation: widget.Orientation,
		spacing:     widget.Spacing,
		spaceEvenly: widget.SpaceEvenly,
		classPrefix: widget.ButtonClassPrefix,
	}
}

// Button renders one workspace button. Clicking it asks i3 to switch to the
// workspace by its ordinal.
func (r *Renderer) Button(key int, label string, visibility Visibility) string {
	return fmt.Sprintf(buttonTemplate, r.classPrefix, visibility, key, label)
}

// Line renders the whole strip as a single line: box header, the widgets in
// the order given, a closing paren, with every line break stripped.
func (r *Renderer) Line(widgets []string) string {
	box := fmt.Sprintf(boxTemplate, r.boxClass, r.orientation, r.spacing, r.spaceEvenly)
	line := fmt.Sprintf("%s\n%s)\n", box, strings.Join(widgets, ""))
	return strings.ReplaceAll(line, "\n", "")
}
