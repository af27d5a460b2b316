package home

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/quizdrill/quizdrill/internal/bank"
	"github.com/quizdrill/quizdrill/internal/progress"
	"github.com/quizdrill/quizdrill/internal/router"
	"github.com/quizdrill/quizdrill/internal/screen"
	"github.com/quizdrill/quizdrill/internal/screens/study"
	"github.com/quizdrill/quizdrill/internal/ui/components"
	"github.com/quizdrill/quizdrill/internal/ui/layout"
)

// viewMode selects what the home screen is currently showing.
type viewMode int

const (
	modeMenu viewMode = iota
	modeStats
	modeResetConfirm
)

// HomeScreen is the entry screen: bank overview, menu, statistics view and
// the reset confirmation.
type HomeScreen struct {
	bank  *bank.Bank
	store *progress.Store
	menu  components.Menu
	mode  viewMode
	flash string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)
var _ screen.StatusProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(b *bank.Bank, store *progress.Store) *HomeScreen {
	h := &HomeScreen{bank: b, store: store}

	items := []components.MenuItem{
		{
			Label:       "Start drill",
			Description: "Answer questions with the current filters",
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: study.New(b, store)}
				}
			},
		},
		{
			Label:       "Statistics",
			Description: "Progress broken down by question type",
			Action: func() tea.Cmd {
				h.mode = modeStats
				return nil
			},
		},
		{
			Label:       "Reset progress",
			Description: "Forget every recorded answer and star",
			Action: func() tea.Cmd {
				h.mode = modeResetConfirm
				return nil
			},
		},
		{
			Label: "Quit",
			Action: func() tea.Cmd {
				return tea.Quit
			},
		},
	}

	h.menu = components.NewMenu(items)
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Home"
}

// Status shows the bank size in the header.
func (h *HomeScreen) Status() string {
	return fmt.Sprintf("%d questions", h.bank.Len())
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	switch h.mode {
	case modeStats:
		return []layout.KeyHint{
			{Key: "any key", Description: "Back"},
		}
	case modeResetConfirm:
		return []layout.KeyHint{
			{Key: "Y", Description: "Reset"},
			{Key: "N", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Esc", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return h, nil
	}

	switch h.mode {
	case modeResetConfirm:
		switch kmsg.String() {
		case "y", "Y":
			h.mode = modeMenu
			if err := h.store.Wipe(context.Background()); err != nil {
				h.flash = "reset failed: " + err.Error()
			} else {
				h.flash = "Progress cleared."
			}
		case "n", "N", "esc":
			h.mode = modeMenu
		}
		return h, nil

	case modeStats:
		// Any key returns to the menu.
		h.mode = modeMenu
		return h, nil
	}

	if kmsg.String() == "esc" {
		return h, tea.Quit
	}

	h.flash = ""
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}
