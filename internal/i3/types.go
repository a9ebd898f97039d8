package i3

// Workspace is one entry of a GET_WORKSPACES reply.
type Workspace struct {
	ID      int64  `json:"id"`
	Num     int    `json:"num"`
	Name    string `json:"name"`
	Visible bool   `json:"visible"`
	Focused bool   `json:"focused"`
	Urgent  bool   `json:"urgent"`
	Output  string `json:"output"`
}

// Output is one entry of a GET_OUTPUTS reply. CurrentWorkspace is empty for
// inactive outputs (i3 sends null).
type Output struct {
	Name             string `json:"name"`
	Active           bool   `json:"active"`
	Primary          bool   `json:"primary"`
	CurrentWorkspace string `json:"current_workspace"`
}

// SubscribeWorkspace is the event class name for workspace events.
const SubscribeWorkspace = "workspace"

// Workspace event change kinds. i3 also emits "rename", "restored" and
// "reload", which this package passes through unmodified.
const (
	ChangeFocus  = "focus"
	ChangeInit   = "init"
	ChangeEmpty  = "empty"
	ChangeUrgent = "urgent"
	ChangeMove   = "move"
)

// Node is the workspace snapshot embedded in a workspace event.
type Node struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Output string `json:"output"`
}

// WorkspaceEvent is the payload of a "workspace" event. Current and Old are
// nil when i3 sends null for them; Old is only populated on focus changes.
type WorkspaceEvent struct {
	Change  string `json:"change"`
	Current *Node  `json:"current"`
	Old     *Node  `json:"old"`
}
