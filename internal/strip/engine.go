package strip

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/1broseidon/workstrip/internal/config"
	"github.com/1broseidon/workstrip/internal/i3"
)

// errMissingNode reports an event that arrived without the workspace node
// its kind requires. Handle wraps it with the event kind.
var errMissingNode = errors.New("event carries no workspace node")

// FetchLiveWorkspaces returns a fresh workspace snapshot from the window
// manager. The engine calls it while seeding and whenever an event payload
// alone cannot answer whether a workspace still exists or how it is shown.
type FetchLiveWorkspaces func() ([]i3.Workspace, error)

// EngineConfig carries the construction parameters for an Engine.
type EngineConfig struct {
	// Output is the name of the output whose workspaces are tracked.
	Output string
	// Widget controls the rendered markup. The zero value means defaults.
	Widget config.WidgetConfig
	// Logger receives ignored-event and degraded-lookup diagnostics.
	// Optional; nil discards them.
	Logger *slog.Logger
}

// Engine folds workspace events into an ordered, output-scoped widget
// registry. Not safe for concurrent use: event processing is strictly
// sequential, and each event is fully handled (including any nested
// snapshot queries) before the next one is read.
type Engine struct {
	output   string
	fetch    FetchLiveWorkspaces
	resolver *Resolver
	registry *Registry
	renderer *Renderer
	logger   *slog.Logger
}

// NewEngine creates an Engine for one output backed by the given snapshot
// capability.
func NewEngine(cfg EngineConfig, fetch FetchLiveWorkspaces) *Engine {
	if cfg.Widget == (config.WidgetConfig{}) {
		cfg.Widget = config.DefaultWidgetConfig()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Engine{
		output:   cfg.Output,
		fetch:    fetch,
		resolver: NewResolver(cfg.Widget.Placeholder),
		registry: NewRegistry(),
		renderer: NewRenderer(cfg.Widget),
		logger:   logger,
	}
}

// Seed fetches the full workspace list once, tracks every workspace on the
// configured output with visibility taken from its own flags, and renders
// unconditionally. Workspaces on other outputs are skipped before any name
// parsing happens.
func (e *Engine) Seed() (string, error) {
	live, err := e.fetch()
	if err != nil {
		return "", fmt.Errorf("failed to fetch initial workspaces: %w", err)
	}

	for _, ws := range live {
		if ws.Output != e.output {
			continue
		}
		identity, err := e.resolver.Resolve(ws.ID, ws.Name)
		if err != nil {
			return "", err
		}
		e.registry.Upsert(identity.Key, e.renderer.Button(identity.Key, identity.Label, VisibilityOf(ws)))
	}
	return e.Line(), nil
}

// Handle folds one workspace event into the registry. When the visible
// content changed it returns the re-rendered strip and render=true. Event
// kinds outside the five meaningful ones are dropped.
func (e *Engine) Handle(event *i3.WorkspaceEvent) (string, bool, error) {
	var (
		dirty bool
		err   error
	)

	switch event.Change {
	case i3.ChangeUrgent:
		dirty, err = e.handleUrgent(event)
	case i3.ChangeEmpty:
		dirty, err = e.handleEmpty(event)
	case i3.ChangeFocus:
		dirty, err = e.handleFocus(event)
	case i3.ChangeInit:
		err = e.handleInit(event)
	case i3.ChangeMove:
		dirty, err = e.handleMove(event)
	default:
		e.logger.Debug("ignoring workspace event", "change", event.Change)
	}

	if err != nil {
		return "", false, fmt.Errorf("failed to handle %s event: %w", event.Change, err)
	}
	if !dirty {
		return "", false, nil
	}
	return e.Line(), true, nil
}

// Line renders the current registry state.
func (e *Engine) Line() string {
	return e.renderer.Line(e.registry.Widgets())
}

// Keys returns the tracked workspace keys in strip order.
func (e *Engine) Keys() []int {
	return e.registry.Keys()
}

// handleUrgent marks a workspace urgent. The urgency hint is set by the
// window, not the output, so no output filtering applies here.
func (e *Engine) handleUrgent(event *i3.WorkspaceEvent) (bool, error) {
	if event.Current == nil {
		return false, errMissingNode
	}
	identity, err := e.resolver.Resolve(event.Current.ID, event.Current.Name)
	if err != nil {
		return false, err
	}

	e.registry.Upsert(identity.Key, e.renderer.Button(identity.Key, identity.Label, VisibilityUrgent))
	return true, nil
}

// handleEmpty drops a workspace that lost its last window. i3 reverts an
// emptied workspace's name to the bare ordinal, so the name is parsed
// directly and the identity cache is bypassed.
func (e *Engine) handleEmpty(event *i3.WorkspaceEvent) (bool, error) {
	if event.Current == nil {
		return false, errMissingNode
	}
	key, err := parseKey(event.Current.Name)
	if err != nil {
		return false, err
	}
	return e.registry.Remove(key), nil
}

// handleFocus updates both sides of a focus switch. The previously focused
// workspace may have vanished by the time the event is processed, so its
// existence is checked against a fresh snapshot (matched by raw name)
// before its visibility is recomputed (matched by id). Focus never starts
// tracking a workspace; init, move and seeding do.
func (e *Engine) handleFocus(event *i3.WorkspaceEvent) (bool, error) {
	if event.Old == nil || event.Current == nil {
		return false, errMissingNode
	}

	dirty := false

	oldIdentity, err := e.resolver.Resolve(event.Old.ID, event.Old.Name)
	if err != nil {
		return false, err
	}
	if e.registry.Contains(oldIdentity.Key) {
		live, err := e.fetch()
		if err != nil {
			return false, fmt.Errorf("failed to fetch workspaces: %w", err)
		}
		if liveContainsName(live, event.Old.Name) {
			visibility, err := e.liveVisibility(event.Old.ID)
			if err != nil {
				return false, err
			}
			e.registry.Upsert(oldIdentity.Key, e.renderer.Button(oldIdentity.Key, oldIdentity.Label, visibility))
		} else {
			e.registry.Remove(oldIdentity.Key)
		}
		dirty = true
	}

	currentIdentity, err := e.resolver.Resolve(event.Current.ID, event.Current.Name)
	if err != nil {
		return false, err
	}
	if e.registry.Contains(currentIdentity.Key) {
		e.registry.Upsert(currentIdentity.Key, e.renderer.Button(currentIdentity.Key, currentIdentity.Label, VisibilityFocused))
		dirty = true
	}

	return dirty, nil
}

// handleInit starts tracking a newly created workspace. Init alone never
// triggers a render; the focus or urgent event that follows it does.
func (e *Engine) handleInit(event *i3.WorkspaceEvent) error {
	if event.Current == nil {
		return errMissingNode
	}
	identity, err := e.resolver.Resolve(event.Current.ID, event.Current.Name)
	if err != nil {
		return err
	}
	visibility, err := e.liveVisibility(event.Current.ID)
	if err != nil {
		return err
	}

	e.registry.Upsert(identity.Key, e.renderer.Button(identity.Key, identity.Label, visibility))
	return nil
}

// handleMove reacts to a workspace changing outputs. Arriving on the
// tracked output starts tracking it, leaving it stops, and a move without
// any output drops the workspace. Moves between other outputs are no-ops.
func (e *Engine) handleMove(event *i3.WorkspaceEvent) (bool, error) {
	if event.Current == nil {
		return false, errMissingNode
	}
	identity, err := e.resolver.Resolve(event.Current.ID, event.Current.Name)
	if err != nil {
		return false, err
	}

	switch {
	case event.Current.Output == "":
		return e.registry.Remove(identity.Key), nil

	case event.Current.Output == e.output:
		if e.registry.Contains(identity.Key) {
			return false, nil
		}
		visibility, err := e.liveVisibility(event.Current.ID)
		if err != nil {
			return false, err
		}
		e.registry.Upsert(identity.Key, e.renderer.Button(identity.Key, identity.Label, visibility))
		return true, nil

	default:
		if e.registry.Contains(identity.Key) {
			e.registry.Remove(identity.Key)
			return true, nil
		}
		return false, nil
	}
}

// liveVisibility classifies a workspace against a fresh snapshot.
func (e *Engine) liveVisibility(id int64) (Visibility, error) {
	live, err := e.fetch()
	if err != nil {
		return VisibilityUnknown, fmt.Errorf("failed to fetch workspaces: %w", err)
	}

	visibility := VisibilityFromLive(id, live)
	if visibility == VisibilityUnknown {
		e.logger.Debug("workspace missing from live snapshot", "id", id)
	}
	return visibility, nil
}

func liveContainsName(live []i3.Workspace, name string) bool {
	for _, ws := range live {
		if ws.Name == name {
			return true
		}
	}
	return false
}
