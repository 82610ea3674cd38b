package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/examdrill/examdrill/internal/screen"
)

// stubScreen is a minimal screen.Screen for router tests.
type stubScreen struct {
	name      string
	activated bool
}

func (s *stubScreen) Init() tea.Cmd { return nil }
func (s *stubScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if _, ok := msg.(screen.ActivatedMsg); ok {
		s.activated = true
	}
	return s, nil
}
func (s *stubScreen) View(width, height int) string { return s.name }
func (s *stubScreen) Title() string                 { return s.name }

func TestRouter_PushPop(t *testing.T) {
	a := &stubScreen{name: "a"}
	b := &stubScreen{name: "b"}
	r := New(a)

	if r.Depth() != 1 {
		t.Fatalf("depth = %d, want 1", r.Depth())
	}

	r.Update(PushScreenMsg{Screen: b})
	if r.Depth() != 2 || r.Active() != b {
		t.Fatalf("after push: depth=%d active=%v", r.Depth(), r.Active().Title())
	}

	cmd := r.Update(PopScreenMsg{})
	if r.Depth() != 1 || r.Active() != a {
		t.Fatalf("after pop: depth=%d active=%v", r.Depth(), r.Active().Title())
	}

	// Pop notifies the exposed screen.
	if cmd == nil {
		t.Fatal("expected activation command from pop")
	}
	if _, ok := cmd().(screen.ActivatedMsg); !ok {
		t.Error("expected ActivatedMsg from pop command")
	}
}

func TestRouter_PopBottomIsNoop(t *testing.T) {
	a := &stubScreen{name: "a"}
	r := New(a)

	if cmd := r.Update(PopScreenMsg{}); cmd != nil {
		t.Error("popping the last screen should be a no-op")
	}
	if r.Depth() != 1 {
		t.Errorf("depth = %d, want 1", r.Depth())
	}
}

func TestRouter_Replace(t *testing.T) {
	a := &stubScreen{name: "a"}
	b := &stubScreen{name: "b"}
	c := &stubScreen{name: "c"}
	r := New(a)
	r.Push(b)

	r.Update(ReplaceScreenMsg{Screen: c})
	if r.Depth() != 2 || r.Active() != c {
		t.Fatalf("after replace: depth=%d active=%v", r.Depth(), r.Active().Title())
	}

	// Popping the replacement exposes the original bottom screen.
	r.Update(PopScreenMsg{})
	if r.Active() != a {
		t.Errorf("active = %v, want a", r.Active().Title())
	}
}

func TestRouter_ForwardsToActive(t *testing.T) {
	a := &stubScreen{name: "a"}
	b := &stubScreen{name: "b"}
	r := New(a)
	r.Push(b)

	r.Update(screen.ActivatedMsg{})
	if a.activated {
		t.Error("message reached a non-active screen")
	}
	if !b.activated {
		t.Error("active screen did not receive the message")
	}
}
