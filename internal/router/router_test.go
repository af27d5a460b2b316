package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/quizdrill/quizdrill/internal/screen"
)

// stubScreen is a minimal screen for testing.
type stubScreen struct {
	title   string
	initRan bool
	updates int
}

func (s *stubScreen) Init() tea.Cmd {
	s.initRan = true
	return nil
}

func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) {
	s.updates++
	return s, nil
}

func (s *stubScreen) View(int, int) string { return s.title }
func (s *stubScreen) Title() string        { return s.title }

func TestPush(t *testing.T) {
	s1 := &stubScreen{title: "home"}
	r := New(s1)

	s2 := &stubScreen{title: "study"}
	r.Push(s2)

	if r.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", r.Depth())
	}
	if r.Active().Title() != "study" {
		t.Errorf("expected active 'study', got %q", r.Active().Title())
	}
	if !s2.initRan {
		t.Error("expected Init() to run on pushed screen")
	}
}

func TestPop(t *testing.T) {
	s1 := &stubScreen{title: "home"}
	r := New(s1)

	s2 := &stubScreen{title: "study"}
	r.Push(s2)
	r.Pop()

	if r.Depth() != 1 {
		t.Errorf("expected depth 1, got %d", r.Depth())
	}
	if r.Active().Title() != "home" {
		t.Errorf("expected active 'home', got %q", r.Active().Title())
	}
}

func TestPopNoopAtBottom(t *testing.T) {
	s1 := &stubScreen{title: "home"}
	r := New(s1)

	r.Pop()

	if r.Depth() != 1 {
		t.Errorf("expected depth 1 after pop at bottom, got %d", r.Depth())
	}
}

func TestReplacePreservesStackDepth(t *testing.T) {
	s1 := &stubScreen{title: "home"}
	r := New(s1)

	s2 := &stubScreen{title: "study"}
	r.Push(s2)

	s3 := &stubScreen{title: "summary"}
	r.Replace(s3)

	if r.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", r.Depth())
	}
	if r.Active().Title() != "summary" {
		t.Errorf("expected active 'summary', got %q", r.Active().Title())
	}
	if !s3.initRan {
		t.Error("expected Init() to run on replacing screen")
	}

	r.Pop()
	if r.Active().Title() != "home" {
		t.Errorf("expected pop after replace to land on 'home', got %q", r.Active().Title())
	}
}

func TestNavigationMessages(t *testing.T) {
	s1 := &stubScreen{title: "home"}
	r := New(s1)

	s2 := &stubScreen{title: "study"}
	r.Update(PushScreenMsg{Screen: s2})
	if r.Depth() != 2 || !s2.initRan {
		t.Fatalf("expected PushScreenMsg to push and init, depth=%d init=%v", r.Depth(), s2.initRan)
	}

	s3 := &stubScreen{title: "summary"}
	r.Update(ReplaceScreenMsg{Screen: s3})
	if r.Depth() != 2 || r.Active().Title() != "summary" {
		t.Fatalf("expected ReplaceScreenMsg to swap in place, depth=%d active=%q", r.Depth(), r.Active().Title())
	}

	r.Update(PopScreenMsg{})
	if r.Depth() != 1 || r.Active().Title() != "home" {
		t.Fatalf("expected PopScreenMsg to pop, depth=%d active=%q", r.Depth(), r.Active().Title())
	}
}

func TestUpdateForwardsToActiveScreenOnly(t *testing.T) {
	s1 := &stubScreen{title: "home"}
	r := New(s1)

	s2 := &stubScreen{title: "study"}
	r.Push(s2)

	r.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	if s2.updates != 1 {
		t.Errorf("expected active screen to receive 1 update, got %d", s2.updates)
	}
	if s1.updates != 0 {
		t.Errorf("expected covered screen to receive no updates, got %d", s1.updates)
	}
}
