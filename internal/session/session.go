package session

import (
	"context"
	"fmt"
	"strings"

	"github.com/quizdrill/quizdrill/internal/bank"
	"github.com/quizdrill/quizdrill/internal/textnorm"
)

// Submit grades the drafted answer for the current question, reveals
// the outcome and writes it through to the progress store. It reports
// whether a grading happened: submits on an empty round, with no valid
// answer drafted, or on an already revealed question are no-ops, which
// makes a double Enter (or double click) harmless.
func Submit(ctx context.Context, s *State) (bool, error) {
	q := s.Current()
	if q == nil || s.Revealed {
		return false, nil
	}

	correct, ok := grade(s, q)
	if !ok {
		return false, nil
	}

	s.Revealed = true
	s.Result = ResultIncorrect
	if correct {
		s.Result = ResultCorrect
	}
	s.Answered++
	if correct {
		s.Correct++
	}

	if err := s.Progress.RecordAnswer(ctx, q.ID, correct); err != nil {
		return true, fmt.Errorf("record outcome for %s: %w", q.ID, err)
	}
	return true, nil
}

// grade scores the drafted answer. ok is false when nothing gradable
// has been drafted yet: no option selected, or blank text.
func grade(s *State, q *bank.Question) (correct, ok bool) {
	if q.Kind.Choice() {
		if s.Choice < 0 || s.Choice >= len(q.Options) {
			return false, false
		}
		return s.Choice == q.CorrectIndex, true
	}
	if strings.TrimSpace(s.Typed) == "" {
		return false, false
	}
	return textnorm.Equal(s.Typed, q.Answer), true
}

// Advance moves the cursor to the next question and clears the answer
// state. Only a revealed question can be advanced past, and the cursor
// never moves beyond the last question; both cases report false.
func Advance(s *State) bool {
	if !s.Revealed || s.Position >= len(s.Working)-1 {
		return false
	}
	s.Position++
	resetAnswer(s)
	return true
}

// Retreat moves the cursor back one question, from either the
// answering or the revealed state. The earlier answer is not restored
// and recorded outcomes are not undone; the question simply starts
// fresh. At the first question it reports false and stays put.
func Retreat(s *State) bool {
	if len(s.Working) == 0 || s.Position == 0 {
		return false
	}
	s.Position--
	resetAnswer(s)
	return true
}

// resetAnswer clears everything tied to a single cursor position.
func resetAnswer(s *State) {
	s.Choice = NoChoice
	s.Typed = ""
	s.Revealed = false
	s.Result = ResultNone
}

// SelectOption records an option pick while answering a choice
// question. Out-of-range indexes, picks after reveal and picks on
// text questions are ignored.
func SelectOption(s *State, i int) {
	q := s.Current()
	if q == nil || s.Revealed || !q.Kind.Choice() {
		return
	}
	if i < 0 || i >= len(q.Options) {
		return
	}
	s.Choice = i
}

// SetTyped replaces the drafted text answer while answering a
// fill-in question. Ignored after reveal and on choice questions.
func SetTyped(s *State, text string) {
	q := s.Current()
	if q == nil || s.Revealed || q.Kind.Choice() {
		return
	}
	s.Typed = text
}

// ToggleStar flips the star on the current question and returns the
// new value. Stars are independent of the answer state: toggling works
// in any phase except an empty round and never touches the counters.
func ToggleStar(ctx context.Context, s *State) (bool, error) {
	q := s.Current()
	if q == nil {
		return false, nil
	}
	return s.Progress.ToggleStar(ctx, q.ID)
}

// Starred reports whether the current question is starred.
func Starred(s *State) bool {
	q := s.Current()
	if q == nil {
		return false
	}
	return s.Progress.Get(q.ID).Starred
}
