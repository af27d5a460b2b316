package home

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/quizdrill/quizdrill/internal/bank"
	"github.com/quizdrill/quizdrill/internal/progress"
	"github.com/quizdrill/quizdrill/internal/router"
	"github.com/quizdrill/quizdrill/internal/screen"
)

func testBank() *bank.Bank {
	return &bank.Bank{
		Meta: bank.Meta{Title: "Capital Cities", Creator: "the geography club", TotalQuestions: 2},
		Questions: []bank.Question{
			{ID: "tf1", Kind: bank.KindTrueFalse, KindLabel: "True / False",
				Prompt: "Oslo is the capital of Norway.", Options: []string{"True", "False"}},
			{ID: "fb1", Kind: bank.KindFillBlank, KindLabel: "Fill in",
				Prompt: "Capital of Vietnam?", Answer: "Hà Nội"},
		},
	}
}

func testHome(t *testing.T) *HomeScreen {
	t.Helper()
	store, err := progress.Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return New(testBank(), store)
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func TestHomeScreen_Title(t *testing.T) {
	h := testHome(t)
	if h.Title() != "Home" {
		t.Errorf("Title = %q, want %q", h.Title(), "Home")
	}
}

func TestHomeScreen_Display(t *testing.T) {
	h := testHome(t)
	view := h.View(80, 16)
	if !strings.Contains(view, "Capital Cities") {
		t.Error("expected bank title on the home screen")
	}
	if !strings.Contains(view, "Start drill") {
		t.Error("expected menu on the home screen")
	}
}

func TestHomeScreen_StartDrill(t *testing.T) {
	h := testHome(t)

	var scr screen.Screen = h
	_, cmd := scr.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command when selecting Start drill")
	}
	msg := cmd()
	push, ok := msg.(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", msg)
	}
	if push.Screen.Title() != "Study" {
		t.Errorf("pushed screen = %q, want Study", push.Screen.Title())
	}
}

func TestHomeScreen_StatsView(t *testing.T) {
	h := testHome(t)

	// Move to Statistics and select it.
	var scr screen.Screen = h
	scr, _ = scr.Update(keyPress('j'))
	scr, _ = scr.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	hh := scr.(*HomeScreen)
	if hh.mode != modeStats {
		t.Fatal("expected statistics view after selecting Statistics")
	}

	view := hh.View(80, 16)
	if !strings.Contains(view, "True / False") {
		t.Error("expected a per-kind row in the statistics table")
	}

	// Any key goes back to the menu.
	scr, _ = hh.Update(keyPress(' '))
	if scr.(*HomeScreen).mode != modeMenu {
		t.Error("expected any key to dismiss the statistics view")
	}
}

func TestHomeScreen_ResetConfirm(t *testing.T) {
	h := testHome(t)

	if err := h.store.RecordAnswer(context.Background(), "tf1", true); err != nil {
		t.Fatalf("record answer: %v", err)
	}

	// Navigate to Reset progress.
	var scr screen.Screen = h
	scr, _ = scr.Update(keyPress('j'))
	scr, _ = scr.Update(keyPress('j'))
	scr, _ = scr.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	hh := scr.(*HomeScreen)
	if hh.mode != modeResetConfirm {
		t.Fatal("expected reset confirmation")
	}

	// Decline first.
	scr, _ = hh.Update(keyPress('n'))
	hh = scr.(*HomeScreen)
	if hh.mode != modeMenu {
		t.Fatal("expected N to cancel the reset")
	}
	if got := hh.store.Get("tf1").Seen; got != 1 {
		t.Fatalf("expected progress intact after cancel, seen = %d", got)
	}

	// Now confirm.
	scr, _ = hh.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	scr, _ = scr.(*HomeScreen).Update(keyPress('y'))
	hh = scr.(*HomeScreen)
	if got := hh.store.Get("tf1").Seen; got != 0 {
		t.Errorf("expected progress wiped after confirm, seen = %d", got)
	}
	if hh.flash == "" {
		t.Error("expected a confirmation flash message")
	}
}

func TestHomeScreen_EscQuits(t *testing.T) {
	h := testHome(t)
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Error("expected quit command on Esc from the menu")
	}
}

func TestHomeScreen_KeyHints(t *testing.T) {
	h := testHome(t)
	if len(h.KeyHints()) == 0 {
		t.Error("expected key hints for the menu")
	}
	h.mode = modeResetConfirm
	hints := h.KeyHints()
	if len(hints) != 2 {
		t.Errorf("reset confirm hints = %d, want 2", len(hints))
	}
}
