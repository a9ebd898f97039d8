package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/workstrip/internal/i3"
	"github.com/1broseidon/workstrip/internal/strip"
)

var (
	statusStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("250")).
			Padding(0, 1)

	statusDotStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)

	focusedCellStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("62")).
				Padding(0, 1)

	urgentCellStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("124")).
			Padding(0, 1)

	visibleCellStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("250")).
				Background(lipgloss.Color("238")).
				Padding(0, 1)

	hiddenCellStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Background(lipgloss.Color("236")).
			Padding(0, 1)

	wireStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250"))

	logStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Padding(0, 1)
)

// View implements tea.Model.
func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	status := statusDotStyle.Render("●") + fmt.Sprintf(" watching %s  workspaces: %d", m.output, len(m.cells))
	statusBar := statusStyle.Width(m.width).Render(status)

	stripRow := renderStrip(m.cells)

	wireWidth := m.width - 2
	if wireWidth < 1 {
		wireWidth = 1
	}
	wireTitle := titleStyle.Render("wire")
	wire := wireStyle.Width(wireWidth).Render(m.line)

	logTitle := titleStyle.Render("events")
	helpBar := helpStyle.Width(m.width).Render("c: clear log  q/esc/ctrl-c: quit")

	used := lipgloss.Height(statusBar) + lipgloss.Height(stripRow) +
		lipgloss.Height(wireTitle) + lipgloss.Height(wire) +
		lipgloss.Height(logTitle) + lipgloss.Height(helpBar)
	logHeight := m.height - used
	if logHeight < 1 {
		logHeight = 1
	}
	logPanel := logStyle.Render(renderLog(m.log, logHeight))

	return lipgloss.JoinVertical(lipgloss.Left,
		statusBar,
		stripRow,
		wireTitle,
		wire,
		logTitle,
		logPanel,
		helpBar,
	)
}

// renderStrip renders one styled block per workspace button.
func renderStrip(cells []cell) string {
	if len(cells) == 0 {
		return hiddenCellStyle.Render("no workspaces on this output")
	}

	blocks := make([]string, 0, len(cells)*2-1)
	for i, c := range cells {
		if i > 0 {
			blocks = append(blocks, " ")
		}
		blocks = append(blocks, cellStyle(c.state).Render(fmt.Sprintf("%d %s", c.key, c.label)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, blocks...)
}

func cellStyle(state strip.Visibility) lipgloss.Style {
	switch state {
	case strip.VisibilityFocused:
		return focusedCellStyle
	case strip.VisibilityUrgent:
		return urgentCellStyle
	case strip.VisibilityVisible:
		return visibleCellStyle
	default:
		return hiddenCellStyle
	}
}

// renderLog shows the newest entries that fit, oldest first.
func renderLog(entries []string, height int) string {
	if len(entries) == 0 {
		return "waiting for workspace events"
	}
	if len(entries) > height {
		entries = entries[len(entries)-height:]
	}
	return strings.Join(entries, "\n")
}

// eventSummary formats one log line. The leading star marks events that
// re-rendered the strip.
func eventSummary(event *i3.WorkspaceEvent, rendered bool) string {
	mark := " "
	if rendered {
		mark = "*"
	}
	return fmt.Sprintf("%s %-7s current=%s old=%s", mark, event.Change, nodeName(event.Current), nodeName(event.Old))
}

func nodeName(node *i3.Node) string {
	if node == nil {
		return "-"
	}
	return node.Name
}

// cell is one workspace button recovered from the emitted line.
type cell struct {
	key   int
	state strip.Visibility
	label string
}

// parseCells recovers the button cells from an emitted line. The inspector
// reads the wire format rather than engine internals, so what it shows is
// what eww parses.
func parseCells(line, classPrefix string) []cell {
	var cells []cell
	rest := line
	for {
		i := strings.Index(rest, "(button")
		if i < 0 {
			return cells
		}
		rest = rest[i+len("(button"):]

		var c cell
		if v, ok := field(rest, ":class '", "'"); ok {
			c.state = strip.Visibility(strings.TrimPrefix(v, classPrefix))
		}
		if v, ok := field(rest, "workspace ", "'"); ok {
			if n, err := strconv.Atoi(v); err == nil {
				c.key = n
			}
		}
		// The label is the quoted argument right before the closing paren.
		if j := strings.Index(rest, "')"); j >= 0 {
			seg := rest[:j]
			if k := strings.LastIndex(seg, "'"); k >= 0 {
				c.label = seg[k+1:]
			}
		}
		cells = append(cells, c)
	}
}

func field(s, prefix, terminator string) (string, bool) {
	i := strings.Index(s, prefix)
	if i < 0 {
		return "", false
	}
	s = s[i+len(prefix):]
	j := strings.Index(s, terminator)
	if j < 0 {
		return "", false
	}
	return s[:j], true
}
