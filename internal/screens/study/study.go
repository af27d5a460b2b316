package study

import (
	"context"
	"fmt"
	"math/rand/v2"

	tea "charm.land/bubbletea/v2"

	"github.com/quizdrill/quizdrill/internal/bank"
	"github.com/quizdrill/quizdrill/internal/progress"
	"github.com/quizdrill/quizdrill/internal/router"
	"github.com/quizdrill/quizdrill/internal/sampler"
	"github.com/quizdrill/quizdrill/internal/screen"
	"github.com/quizdrill/quizdrill/internal/screens/summary"
	"github.com/quizdrill/quizdrill/internal/session"
	"github.com/quizdrill/quizdrill/internal/ui/components"
	"github.com/quizdrill/quizdrill/internal/ui/layout"
)

// StudyScreen runs the drill loop: pick a filter, answer questions, review
// feedback. The round is rebuilt from scratch whenever a filter key is
// pressed.
type StudyScreen struct {
	bank  *bank.Bank
	store *progress.Store
	rng   *rand.Rand

	filter sampler.Filter
	state  *session.State
	input  components.AnswerInput

	showingQuitConfirm bool
	saveErr            error
}

var _ screen.Screen = (*StudyScreen)(nil)
var _ screen.KeyHintProvider = (*StudyScreen)(nil)
var _ screen.StatusProvider = (*StudyScreen)(nil)

// New creates a StudyScreen and builds the first round with default filters.
func New(b *bank.Bank, store *progress.Store) *StudyScreen {
	s := &StudyScreen{
		bank:   b,
		store:  store,
		rng:    sampler.NewRNG(),
		filter: sampler.DefaultFilter(),
	}
	s.rebuild()
	return s
}

func (s *StudyScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *StudyScreen) Title() string {
	return "Study"
}

// Status summarizes the active filter for the header.
func (s *StudyScreen) Status() string {
	return fmt.Sprintf("%s · %s", kindLabel(s.filter.Kind), s.filter.Mode.Label())
}

func (s *StudyScreen) KeyHints() []layout.KeyHint {
	if s.showingQuitConfirm {
		return []layout.KeyHint{
			{Key: "Y", Description: "End drill"},
			{Key: "N", Description: "Keep going"},
		}
	}

	switch s.state.Phase() {
	case session.PhaseEmpty:
		return []layout.KeyHint{
			{Key: "t/m/f", Description: "Filters"},
			{Key: "Esc", Description: "Back"},
		}
	case session.PhaseRevealed:
		next := "Next"
		if s.state.AtEnd() {
			next = "Summary"
		}
		return []layout.KeyHint{
			{Key: "Enter", Description: next},
			{Key: "Ctrl+P", Description: "Back up"},
			{Key: "*", Description: "Star"},
			{Key: "Esc", Description: "Quit"},
		}
	}

	q := s.state.Current()
	if q != nil && q.Kind == bank.KindFillBlank {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Submit"},
			{Key: "Ctrl+P", Description: "Back up"},
			{Key: "Esc", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "1-9", Description: "Select"},
		{Key: "Enter", Description: "Submit"},
		{Key: "t/m/f", Description: "Filters"},
		{Key: "*", Description: "Star"},
		{Key: "Esc", Description: "Quit"},
	}
}

func (s *StudyScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		return s.handleKey(kmsg)
	}

	// Forward everything else to the text input while typing an answer.
	if s.typingActive() {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		session.SetTyped(s.state, s.input.Value())
		return s, cmd
	}

	return s, nil
}

func (s *StudyScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.showingQuitConfirm {
		switch key {
		case "y", "Y":
			s.showingQuitConfirm = false
			return s, s.finish(false)
		case "n", "N", "esc":
			s.showingQuitConfirm = false
		}
		return s, nil
	}

	switch key {
	case "esc":
		if s.state.Answered == 0 {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		s.showingQuitConfirm = true
		return s, nil

	case "enter":
		return s.handleEnter()

	case "ctrl+p", "shift+backspace":
		if session.Retreat(s.state) {
			s.resetInput()
		}
		return s, nil
	}

	// While typing a fill-in answer, printable keys belong to the input.
	if s.typingActive() {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		session.SetTyped(s.state, s.input.Value())
		return s, cmd
	}

	switch key {
	case "t":
		s.filter.Kind = nextKind(s.filter.Kind)
		s.rebuild()
		return s, nil
	case "m":
		s.filter.Mode = nextMode(s.filter.Mode)
		s.rebuild()
		return s, nil
	case "f":
		s.filter.Shuffle = !s.filter.Shuffle
		s.rebuild()
		return s, nil
	case "*":
		_, err := session.ToggleStar(context.Background(), s.state)
		s.saveErr = err
		return s, nil
	case "up", "k":
		s.moveSelection(-1)
		return s, nil
	case "down", "j":
		s.moveSelection(1)
		return s, nil
	}

	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		session.SelectOption(s.state, int(key[0]-'1'))
		return s, nil
	}

	return s, nil
}

// handleEnter submits in the answering phase and advances once revealed.
func (s *StudyScreen) handleEnter() (screen.Screen, tea.Cmd) {
	switch s.state.Phase() {
	case session.PhaseRevealed:
		if s.state.AtEnd() {
			return s, s.finish(true)
		}
		if session.Advance(s.state) {
			s.resetInput()
		}
		return s, nil

	case session.PhaseAnswering:
		if s.typingActive() {
			session.SetTyped(s.state, s.input.Value())
		}
		ok, err := session.Submit(context.Background(), s.state)
		s.saveErr = err
		if ok {
			q := s.state.Current()
			if q != nil && q.Kind == bank.KindFillBlank {
				s.input.Submit(s.state.Result == session.ResultCorrect)
			}
		}
		return s, nil
	}

	return s, nil
}

// finish swaps in the summary screen so that leaving it lands back on home.
func (s *StudyScreen) finish(completed bool) tea.Cmd {
	stats := summary.RoundStats{
		RoundSize: len(s.state.Working),
		Answered:  s.state.Answered,
		Correct:   s.state.Correct,
		Wrong:     s.state.Wrong(),
		Filter:    s.Status(),
		Completed: completed,
	}
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: summary.New(stats)}
	}
}

// rebuild snapshots progress and rebuilds the round for the current filter.
func (s *StudyScreen) rebuild() {
	working := sampler.Build(s.bank, s.filter, s.store.Snapshot(), s.rng)
	s.state = session.New(working, s.store)
	s.resetInput()
}

func (s *StudyScreen) resetInput() {
	s.input = components.NewAnswerInput("Type your answer...", 64)
}

// typingActive reports whether keystrokes should feed the text input.
func (s *StudyScreen) typingActive() bool {
	if s.state.Phase() != session.PhaseAnswering {
		return false
	}
	q := s.state.Current()
	return q != nil && q.Kind == bank.KindFillBlank
}

func (s *StudyScreen) moveSelection(delta int) {
	q := s.state.Current()
	if q == nil || !q.Kind.Choice() {
		return
	}
	target := s.state.Choice + delta
	if s.state.Choice == session.NoChoice {
		target = 0
	}
	session.SelectOption(s.state, target)
}

// nextKind cycles all -> true_false -> single_choice -> best_answer ->
// fill_blank -> all.
func nextKind(k bank.Kind) bank.Kind {
	if k == "" {
		return bank.Kinds[0]
	}
	for i, kk := range bank.Kinds {
		if kk == k {
			if i == len(bank.Kinds)-1 {
				return ""
			}
			return bank.Kinds[i+1]
		}
	}
	return ""
}

func nextMode(m sampler.Mode) sampler.Mode {
	for i, mm := range sampler.Modes {
		if mm == m {
			return sampler.Modes[(i+1)%len(sampler.Modes)]
		}
	}
	return sampler.Modes[0]
}

func kindLabel(k bank.Kind) string {
	if k == "" {
		return "All types"
	}
	return k.Label()
}
