package strip

import "github.com/1broseidon/workstrip/internal/i3"

// Visibility is the visual state of a workspace button, rendered as the
// suffix of its CSS class. The zero value means the workspace could not be
// found in a live snapshot; it renders an empty suffix.
type Visibility string

const (
	VisibilityUnknown Visibility = ""
	VisibilityFocused Visibility = "focused"
	VisibilityUrgent  Visibility = "urgent"
	VisibilityVisible Visibility = "visible"
	VisibilityHidden  Visibility = "hidden"
)

// VisibilityOf classifies a workspace from its own state flags.
// Focused beats urgent beats visible.
func VisibilityOf(ws i3.Workspace) Visibility {
	switch {
	case ws.Focused:
		return VisibilityFocused
	case ws.Urgent:
		return VisibilityUrgent
	case ws.Visible:
		return VisibilityVisible
	default:
		return VisibilityHidden
	}
}

// VisibilityFromLive classifies the workspace with the given id against a
// live snapshot. An id missing from the snapshot (the workspace changed
// between the event and the query) degrades to VisibilityUnknown.
func VisibilityFromLive(id int64, live []i3.Workspace) Visibility {
	for _, ws := range live {
		if ws.ID == id {
			return VisibilityOf(ws)
		}
	}
	return VisibilityUnknown
}
