// Package session is the state machine for one drill round: a cursor
// over a working set, the answer being drafted for the current
// question, and the graded outcome once it is revealed. All transitions
// run synchronously inside the UI event loop.
package session

import (
	"context"

	"github.com/google/uuid"

	"github.com/quizdrill/quizdrill/internal/bank"
	"github.com/quizdrill/quizdrill/internal/progress"
)

// Recorder is the slice of the progress store the state machine writes
// through to.
type Recorder interface {
	RecordAnswer(ctx context.Context, id string, correct bool) error
	ToggleStar(ctx context.Context, id string) (bool, error)
	Get(id string) progress.Record
}

// Phase is the round's current mode, derived from the state rather
// than stored, so it can never disagree with it.
type Phase int

const (
	PhaseEmpty     Phase = iota // the working set has no questions
	PhaseAnswering              // collecting an answer for the current question
	PhaseRevealed               // outcome shown, waiting to move on
)

// Result is the graded outcome of the current question.
type Result int

const (
	ResultNone Result = iota
	ResultCorrect
	ResultIncorrect
)

// NoChoice is the Choice value while no option is selected.
const NoChoice = -1

// State tracks one round over a working set.
type State struct {
	// Working is the ordered question set for this round. It is fixed
	// at round start; changing the filter builds a new State instead.
	Working []bank.Question

	// Position indexes Working at the current question.
	Position int

	// Choice is the selected option index for choice questions,
	// NoChoice when nothing is selected yet.
	Choice int

	// Typed is the free-text answer drafted so far.
	Typed string

	// Revealed is true once the current question has been graded.
	// It also guards Submit: a revealed question cannot be graded
	// again until the cursor moves.
	Revealed bool

	// Result is the outcome of the grading at this position.
	Result Result

	// Answered and Correct are round tallies for the summary screen.
	// Unlike the durable per-question history they reset every round.
	Answered int
	Correct  int

	// Progress records graded outcomes and stars. Never nil.
	Progress Recorder

	// ID names this round in logs.
	ID string
}

// New starts a round over working. The cursor begins at the first
// question; an empty working set begins (and stays) in PhaseEmpty.
func New(working []bank.Question, rec Recorder) *State {
	return &State{
		Working:  working,
		Choice:   NoChoice,
		Progress: rec,
		ID:       uuid.New().String(),
	}
}

// Phase derives the round's current mode.
func (s *State) Phase() Phase {
	switch {
	case len(s.Working) == 0:
		return PhaseEmpty
	case s.Revealed:
		return PhaseRevealed
	default:
		return PhaseAnswering
	}
}

// Current returns the question under the cursor, nil for an empty
// round.
func (s *State) Current() *bank.Question {
	if len(s.Working) == 0 {
		return nil
	}
	return &s.Working[s.Position]
}

// AtEnd reports whether the cursor is on the round's last question.
func (s *State) AtEnd() bool {
	return len(s.Working) > 0 && s.Position == len(s.Working)-1
}

// Wrong is the round tally of incorrect answers.
func (s *State) Wrong() int {
	return s.Answered - s.Correct
}
