package strip

import (
	"errors"
	"strings"
	"testing"

	"github.com/1broseidon/workstrip/internal/i3"
)

// fakeFetcher serves canned snapshots and counts calls. Tests swap the live
// slice between phases to model the window manager changing underneath.
type fakeFetcher struct {
	live  []i3.Workspace
	err   error
	calls int
}

func (f *fakeFetcher) fetch() ([]i3.Workspace, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.live, nil
}

func newTestEngine(output string, fetcher *fakeFetcher) *Engine {
	return NewEngine(EngineConfig{Output: output}, fetcher.fetch)
}

func event(change string, current, old *i3.Node) *i3.WorkspaceEvent {
	return &i3.WorkspaceEvent{Change: change, Current: current, Old: old}
}

func node(id int64, name, output string) *i3.Node {
	return &i3.Node{ID: id, Name: name, Output: output}
}

func TestSeed_FiltersAndRenders(t *testing.T) {
	fetcher := &fakeFetcher{live: []i3.Workspace{
		{ID: 1, Name: "1", Output: "DP-1", Focused: true},
		{ID: 2, Name: "2;", Output: "DP-1", Urgent: true},
		{ID: 3, Name: "3", Output: "HDMI-1", Visible: true},
	}}
	e := newTestEngine("DP-1", fetcher)

	line, err := e.Seed()
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	keys := e.Keys()
	if len(keys) != 2 || keys[0] != 1 || keys[1] != 2 {
		t.Fatalf("expected keys [1 2], got %v", keys)
	}
	if !strings.Contains(line, "i3wm-workspace-focused") || !strings.Contains(line, "i3wm-workspace-urgent") {
		t.Fatalf("expected focused and urgent buttons, got %q", line)
	}
	if strings.Contains(line, "workspace 3") {
		t.Fatalf("expected the other output to be skipped, got %q", line)
	}
}

func TestSeed_ParseFailureIsFatal(t *testing.T) {
	fetcher := &fakeFetcher{live: []i3.Workspace{{ID: 1, Name: "mail", Output: "DP-1"}}}
	e := newTestEngine("DP-1", fetcher)

	if _, err := e.Seed(); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestSeed_SkipsForeignOutputsBeforeParsing(t *testing.T) {
	// An unparseable name on another output must not break seeding.
	fetcher := &fakeFetcher{live: []i3.Workspace{
		{ID: 1, Name: "1", Output: "DP-1"},
		{ID: 2, Name: "mail", Output: "HDMI-1"},
	}}
	e := newTestEngine("DP-1", fetcher)

	if _, err := e.Seed(); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if keys := e.Keys(); len(keys) != 1 || keys[0] != 1 {
		t.Fatalf("expected keys [1], got %v", keys)
	}
}

func TestSeed_FetchFailureIsFatal(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("connection lost")}
	e := newTestEngine("DP-1", fetcher)

	if _, err := e.Seed(); err == nil {
		t.Fatalf("expected fetch error to propagate")
	}
}

func TestHandleUrgent(t *testing.T) {
	e := newTestEngine("DP-1", &fakeFetcher{})

	line, render, err := e.Handle(event(i3.ChangeUrgent, node(5, "3;", "DP-1"), nil))
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if !render {
		t.Fatalf("expected a render")
	}
	if !strings.Contains(line, ":class 'i3wm-workspace-urgent'") {
		t.Fatalf("expected an urgent button, got %q", line)
	}
	if keys := e.Keys(); len(keys) != 1 || keys[0] != 3 {
		t.Fatalf("expected keys [3], got %v", keys)
	}
}

func TestHandleUrgent_MissingNodeIsFatal(t *testing.T) {
	e := newTestEngine("DP-1", &fakeFetcher{})

	if _, _, err := e.Handle(event(i3.ChangeUrgent, nil, nil)); err == nil {
		t.Fatalf("expected error for a missing node")
	}
}

func TestHandleEmpty(t *testing.T) {
	t.Run("tracked key is removed and rendered", func(t *testing.T) {
		fetcher := &fakeFetcher{live: []i3.Workspace{{ID: 1, Name: "2", Output: "DP-1", Focused: true}}}
		e := newTestEngine("DP-1", fetcher)
		if _, err := e.Seed(); err != nil {
			t.Fatalf("seed: %v", err)
		}

		line, render, err := e.Handle(event(i3.ChangeEmpty, node(1, "2", ""), nil))
		if err != nil {
			t.Fatalf("handle: %v", err)
		}
		if !render {
			t.Fatalf("expected a render")
		}
		if len(e.Keys()) != 0 {
			t.Fatalf("expected an empty registry, got %v", e.Keys())
		}
		if strings.Contains(line, "button") {
			t.Fatalf("expected a buttonless strip, got %q", line)
		}
	})

	t.Run("untracked key is a no-op", func(t *testing.T) {
		e := newTestEngine("DP-1", &fakeFetcher{})

		_, render, err := e.Handle(event(i3.ChangeEmpty, node(9, "7", ""), nil))
		if err != nil {
			t.Fatalf("handle: %v", err)
		}
		if render {
			t.Fatalf("expected no render for an untracked key")
		}
	})

	t.Run("parses the name even when the id is cached", func(t *testing.T) {
		e := newTestEngine("DP-1", &fakeFetcher{})
		// Track keys 4 and 7; the resolver now maps id 9 to key 4.
		if _, _, err := e.Handle(event(i3.ChangeUrgent, node(9, "4", "DP-1"), nil)); err != nil {
			t.Fatalf("urgent: %v", err)
		}
		if _, _, err := e.Handle(event(i3.ChangeUrgent, node(10, "7", "DP-1"), nil)); err != nil {
			t.Fatalf("urgent: %v", err)
		}

		// Same id 9, but the node is named 7 now: the name wins.
		_, render, err := e.Handle(event(i3.ChangeEmpty, node(9, "7", ""), nil))
		if err != nil {
			t.Fatalf("handle: %v", err)
		}
		if !render {
			t.Fatalf("expected a render")
		}
		if keys := e.Keys(); len(keys) != 1 || keys[0] != 4 {
			t.Fatalf("expected keys [4], got %v", keys)
		}
	})

	t.Run("non numeric name is fatal", func(t *testing.T) {
		e := newTestEngine("DP-1", &fakeFetcher{})

		if _, _, err := e.Handle(event(i3.ChangeEmpty, node(9, "scratch;", ""), nil)); err == nil {
			t.Fatalf("expected parse error")
		}
	})
}

// seedTwo populates an engine with workspaces 1 (focused) and 2 on DP-1.
func seedTwo(t *testing.T, fetcher *fakeFetcher) *Engine {
	t.Helper()
	fetcher.live = []i3.Workspace{
		{ID: 1, Name: "1", Output: "DP-1", Focused: true},
		{ID: 2, Name: "2;", Output: "DP-1"},
	}
	e := newTestEngine("DP-1", fetcher)
	if _, err := e.Seed(); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return e
}

func TestHandleFocus(t *testing.T) {
	t.Run("switch between tracked workspaces", func(t *testing.T) {
		fetcher := &fakeFetcher{}
		e := seedTwo(t, fetcher)
		fetcher.live = []i3.Workspace{
			{ID: 1, Name: "1", Output: "DP-1", Visible: true},
			{ID: 2, Name: "2;", Output: "DP-1", Focused: true},
		}

		line, render, err := e.Handle(event(i3.ChangeFocus, node(2, "2;", "DP-1"), node(1, "1", "DP-1")))
		if err != nil {
			t.Fatalf("handle: %v", err)
		}
		if !render {
			t.Fatalf("expected a render")
		}
		if !strings.Contains(line, ":class 'i3wm-workspace-visible'") {
			t.Fatalf("expected the old workspace to turn visible, got %q", line)
		}
		if !strings.Contains(line, ":class 'i3wm-workspace-focused'") {
			t.Fatalf("expected the current workspace to turn focused, got %q", line)
		}
		// Seed, existence check by name, visibility recompute by id.
		if fetcher.calls != 3 {
			t.Fatalf("expected 3 snapshot fetches, got %d", fetcher.calls)
		}
	})

	t.Run("old workspace vanished", func(t *testing.T) {
		fetcher := &fakeFetcher{}
		e := seedTwo(t, fetcher)
		fetcher.live = []i3.Workspace{
			{ID: 2, Name: "2;", Output: "DP-1", Focused: true},
		}

		_, render, err := e.Handle(event(i3.ChangeFocus, node(2, "2;", "DP-1"), node(1, "1", "DP-1")))
		if err != nil {
			t.Fatalf("handle: %v", err)
		}
		if !render {
			t.Fatalf("expected a render")
		}
		if keys := e.Keys(); len(keys) != 1 || keys[0] != 2 {
			t.Fatalf("expected keys [2], got %v", keys)
		}
	})

	t.Run("untracked old does not mutate", func(t *testing.T) {
		fetcher := &fakeFetcher{}
		e := newTestEngine("DP-1", fetcher)

		_, render, err := e.Handle(event(i3.ChangeFocus, node(8, "5", "DP-1"), node(7, "4", "DP-1")))
		if err != nil {
			t.Fatalf("handle: %v", err)
		}
		if render {
			t.Fatalf("expected no render")
		}
		if len(e.Keys()) != 0 {
			t.Fatalf("expected an untouched registry, got %v", e.Keys())
		}
		if fetcher.calls != 0 {
			t.Fatalf("expected no snapshot fetches, got %d", fetcher.calls)
		}
	})

	t.Run("focus never starts tracking the current workspace", func(t *testing.T) {
		fetcher := &fakeFetcher{}
		e := seedTwo(t, fetcher)
		fetcher.live = []i3.Workspace{
			{ID: 1, Name: "1", Output: "DP-1", Visible: true},
			{ID: 9, Name: "5", Output: "HDMI-1", Focused: true},
		}

		_, render, err := e.Handle(event(i3.ChangeFocus, node(9, "5", "HDMI-1"), node(1, "1", "DP-1")))
		if err != nil {
			t.Fatalf("handle: %v", err)
		}
		if !render {
			t.Fatalf("expected a render for the old workspace update")
		}
		keys := e.Keys()
		if len(keys) != 2 || keys[0] != 1 || keys[1] != 2 {
			t.Fatalf("expected keys [1 2], got %v", keys)
		}
	})

	t.Run("missing old node is fatal", func(t *testing.T) {
		e := newTestEngine("DP-1", &fakeFetcher{})

		if _, _, err := e.Handle(event(i3.ChangeFocus, node(2, "2", "DP-1"), nil)); err == nil {
			t.Fatalf("expected error for a missing old node")
		}
	})

	t.Run("unparseable old name is fatal even when untracked", func(t *testing.T) {
		e := newTestEngine("DP-1", &fakeFetcher{})

		if _, _, err := e.Handle(event(i3.ChangeFocus, node(2, "2", "DP-1"), node(1, "scratch", "DP-1"))); err == nil {
			t.Fatalf("expected parse error")
		}
	})

	t.Run("fetch failure is fatal", func(t *testing.T) {
		fetcher := &fakeFetcher{}
		e := seedTwo(t, fetcher)
		fetcher.err = errors.New("connection lost")

		if _, _, err := e.Handle(event(i3.ChangeFocus, node(2, "2;", "DP-1"), node(1, "1", "DP-1"))); err == nil {
			t.Fatalf("expected fetch error to propagate")
		}
	})
}

func TestHandleInit(t *testing.T) {
	t.Run("tracks without rendering", func(t *testing.T) {
		fetcher := &fakeFetcher{live: []i3.Workspace{{ID: 4, Name: "4", Output: "DP-1", Visible: true}}}
		e := newTestEngine("DP-1", fetcher)

		line, render, err := e.Handle(event(i3.ChangeInit, node(4, "4", "DP-1"), nil))
		if err != nil {
			t.Fatalf("handle: %v", err)
		}
		if render || line != "" {
			t.Fatalf("expected init to stay silent, got render=%v line=%q", render, line)
		}
		if keys := e.Keys(); len(keys) != 1 || keys[0] != 4 {
			t.Fatalf("expected keys [4], got %v", keys)
		}
		if !strings.Contains(e.Line(), ":class 'i3wm-workspace-visible'") {
			t.Fatalf("expected live visibility on the tracked button, got %q", e.Line())
		}
	})

	t.Run("lookup miss degrades to unknown visibility", func(t *testing.T) {
		// The snapshot does not list the new workspace yet.
		e := newTestEngine("DP-1", &fakeFetcher{})

		if _, _, err := e.Handle(event(i3.ChangeInit, node(4, "4", "DP-1"), nil)); err != nil {
			t.Fatalf("handle: %v", err)
		}
		if line := e.Line(); !strings.Contains(line, ":class 'i3wm-workspace-'") {
			t.Fatalf("expected an unstyled button, got %q", line)
		}
	})
}

func TestHandleMove(t *testing.T) {
	t.Run("arrival starts tracking", func(t *testing.T) {
		fetcher := &fakeFetcher{live: []i3.Workspace{{ID: 6, Name: "6", Output: "DP-1", Visible: true}}}
		e := newTestEngine("DP-1", fetcher)

		line, render, err := e.Handle(event(i3.ChangeMove, node(6, "6", "DP-1"), nil))
		if err != nil {
			t.Fatalf("handle: %v", err)
		}
		if !render {
			t.Fatalf("expected a render")
		}
		if !strings.Contains(line, ":class 'i3wm-workspace-visible'") {
			t.Fatalf("expected live visibility, got %q", line)
		}
		if keys := e.Keys(); len(keys) != 1 || keys[0] != 6 {
			t.Fatalf("expected keys [6], got %v", keys)
		}
	})

	t.Run("arrival of a tracked key is a no-op", func(t *testing.T) {
		fetcher := &fakeFetcher{live: []i3.Workspace{{ID: 6, Name: "6", Output: "DP-1", Focused: true}}}
		e := newTestEngine("DP-1", fetcher)
		if _, _, err := e.Handle(event(i3.ChangeMove, node(6, "6", "DP-1"), nil)); err != nil {
			t.Fatalf("first move: %v", err)
		}

		_, render, err := e.Handle(event(i3.ChangeMove, node(6, "6", "DP-1"), nil))
		if err != nil {
			t.Fatalf("second move: %v", err)
		}
		if render {
			t.Fatalf("expected no render for an already tracked key")
		}
	})

	t.Run("departure stops tracking", func(t *testing.T) {
		fetcher := &fakeFetcher{}
		e := seedTwo(t, fetcher)

		_, render, err := e.Handle(event(i3.ChangeMove, node(1, "1", "HDMI-1"), nil))
		if err != nil {
			t.Fatalf("handle: %v", err)
		}
		if !render {
			t.Fatalf("expected a render")
		}
		if keys := e.Keys(); len(keys) != 1 || keys[0] != 2 {
			t.Fatalf("expected keys [2], got %v", keys)
		}
	})

	t.Run("departure of an untracked key is a no-op", func(t *testing.T) {
		e := newTestEngine("DP-1", &fakeFetcher{})

		_, render, err := e.Handle(event(i3.ChangeMove, node(6, "6", "HDMI-1"), nil))
		if err != nil {
			t.Fatalf("handle: %v", err)
		}
		if render {
			t.Fatalf("expected no render")
		}
	})

	t.Run("missing output drops a tracked key", func(t *testing.T) {
		fetcher := &fakeFetcher{}
		e := seedTwo(t, fetcher)

		_, render, err := e.Handle(event(i3.ChangeMove, node(1, "1", ""), nil))
		if err != nil {
			t.Fatalf("handle: %v", err)
		}
		if !render {
			t.Fatalf("expected a render")
		}
		if keys := e.Keys(); len(keys) != 1 || keys[0] != 2 {
			t.Fatalf("expected keys [2], got %v", keys)
		}
	})

	t.Run("missing output on an untracked key is a no-op", func(t *testing.T) {
		e := newTestEngine("DP-1", &fakeFetcher{})

		_, render, err := e.Handle(event(i3.ChangeMove, node(6, "6", ""), nil))
		if err != nil {
			t.Fatalf("handle: %v", err)
		}
		if render {
			t.Fatalf("expected no render")
		}
	})
}

func TestHandle_IgnoresOtherChanges(t *testing.T) {
	e := newTestEngine("DP-1", &fakeFetcher{})

	for _, change := range []string{"rename", "reload", "restored"} {
		_, render, err := e.Handle(event(change, nil, nil))
		if err != nil {
			t.Fatalf("Handle(%q) error: %v", change, err)
		}
		if render {
			t.Fatalf("Handle(%q) rendered", change)
		}
	}
}

func TestEngine_EndToEnd(t *testing.T) {
	fetcher := &fakeFetcher{live: []i3.Workspace{
		{ID: 1, Name: "1", Output: "M1", Focused: true},
	}}
	e := newTestEngine("M1", fetcher)

	line, err := e.Seed()
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if !strings.Contains(line, ":class 'i3wm-workspace-focused'") || !strings.Contains(line, "workspace 1") {
		t.Fatalf("expected a focused button for key 1, got %q", line)
	}

	// A second workspace appears; the snapshot does not list it yet.
	_, render, err := e.Handle(event(i3.ChangeInit, node(2, "2;★", "M1"), nil))
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	if render {
		t.Fatalf("expected init to stay silent")
	}
	if keys := e.Keys(); len(keys) != 2 {
		t.Fatalf("expected two tracked keys, got %v", keys)
	}

	// Focus moves to it; workspace 1 stays alive and visible.
	fetcher.live = []i3.Workspace{
		{ID: 1, Name: "1", Output: "M1", Visible: true},
		{ID: 2, Name: "2;★", Output: "M1", Focused: true},
	}
	line, render, err = e.Handle(event(i3.ChangeFocus, node(2, "2;★", "M1"), node(1, "1", "M1")))
	if err != nil {
		t.Fatalf("focus: %v", err)
	}
	if !render {
		t.Fatalf("expected focus to render")
	}
	if !strings.Contains(line, ":class 'i3wm-workspace-visible'") {
		t.Fatalf("expected workspace 1 to turn visible, got %q", line)
	}
	if !strings.Contains(line, ":class 'i3wm-workspace-focused'") || !strings.Contains(line, "'★'") {
		t.Fatalf("expected workspace 2 focused with its glyph, got %q", line)
	}
}

func TestNewEngine_DefaultsWidget(t *testing.T) {
	e := NewEngine(EngineConfig{Output: "DP-1"}, (&fakeFetcher{}).fetch)

	if e.renderer.boxClass != "i3wm-workspaces" {
		t.Fatalf("expected default widget attributes, got %q", e.renderer.boxClass)
	}
	if e.resolver.placeholder == "" {
		t.Fatalf("expected a non-empty default placeholder")
	}
}
