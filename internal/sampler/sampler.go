// Package sampler derives the working set a drill round runs over from
// the full bank, the active filter, and the study history so far.
package sampler

import (
	"math/rand/v2"

	"github.com/quizdrill/quizdrill/internal/bank"
	"github.com/quizdrill/quizdrill/internal/progress"
)

// Mode selects how the filtered questions are cut down to a round.
type Mode string

const (
	// ModeRandom20 caps the round at RoundSize questions.
	ModeRandom20 Mode = "random20"
	// ModeAll keeps every question the filter matches.
	ModeAll Mode = "all"
	// ModeWrongOnly keeps only questions missed more often than answered
	// correctly.
	ModeWrongOnly Mode = "wrong_only"
)

// RoundSize is the cap ModeRandom20 applies, taken after the shuffle so
// repeated rounds see different questions.
const RoundSize = 20

// Modes lists every mode in display order.
var Modes = []Mode{ModeRandom20, ModeAll, ModeWrongOnly}

// Label returns a short display name for the mode.
func (m Mode) Label() string {
	switch m {
	case ModeRandom20:
		return "Random 20"
	case ModeAll:
		return "All questions"
	case ModeWrongOnly:
		return "Wrong answers"
	}
	return string(m)
}

// Filter describes which slice of the bank a round draws from.
type Filter struct {
	// Kind restricts the round to one question kind; empty means all.
	Kind    bank.Kind
	Mode    Mode
	Shuffle bool
}

// DefaultFilter is what a fresh drill starts with.
func DefaultFilter() Filter {
	return Filter{Mode: ModeRandom20, Shuffle: true}
}

// Build derives a fresh working set from b. The bank's file order is
// kept unless f.Shuffle asks for a Fisher-Yates pass; ModeWrongOnly
// consults records as they stood when the filter changed, so grading
// during the round never resizes or reorders the set. The returned
// slice shares nothing with earlier calls.
func Build(b *bank.Bank, f Filter, records progress.Snapshot, rng *rand.Rand) []bank.Question {
	set := make([]bank.Question, 0, b.Len())
	for _, q := range b.Questions {
		if f.Kind != "" && q.Kind != f.Kind {
			continue
		}
		if f.Mode == ModeWrongOnly && !records[q.ID].NeedsReview() {
			continue
		}
		set = append(set, q)
	}

	if f.Shuffle {
		rng.Shuffle(len(set), func(i, j int) {
			set[i], set[j] = set[j], set[i]
		})
	}
	if f.Mode == ModeRandom20 && len(set) > RoundSize {
		set = set[:RoundSize]
	}
	return set
}

// NewRNG returns the entropy-seeded generator used outside tests.
func NewRNG() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}
