// Package bank loads and models the static question bank a drill runs
// against. A bank is read once at startup and never mutated; every other
// package treats its questions as immutable values.
package bank

// Kind identifies how a question is asked and graded.
type Kind string

const (
	KindTrueFalse    Kind = "true_false"
	KindSingleChoice Kind = "single_choice"
	KindBestAnswer   Kind = "best_answer"
	KindFillBlank    Kind = "fill_blank"
)

// Kinds lists every known kind in display order.
var Kinds = []Kind{KindTrueFalse, KindSingleChoice, KindBestAnswer, KindFillBlank}

// Valid reports whether k is one of the known kind tags.
func (k Kind) Valid() bool {
	switch k {
	case KindTrueFalse, KindSingleChoice, KindBestAnswer, KindFillBlank:
		return true
	}
	return false
}

// Choice reports whether questions of this kind are answered by picking
// from a fixed option list rather than typing free text.
func (k Kind) Choice() bool {
	return k != KindFillBlank
}

// Label returns a short display name for the kind.
func (k Kind) Label() string {
	switch k {
	case KindTrueFalse:
		return "True / False"
	case KindSingleChoice:
		return "Single choice"
	case KindBestAnswer:
		return "Best answer"
	case KindFillBlank:
		return "Fill in the blank"
	}
	return string(k)
}

// Question is a single bank entry.
//
// Exactly one answer shape is populated, matching Kind: choice kinds carry
// Options plus CorrectIndex, fill-in-blank carries Answer. The loader
// rejects banks that violate this, so downstream code may rely on it.
type Question struct {
	ID          string
	Kind        Kind
	KindLabel   string
	Prompt      string
	Options     []string
	Explanation string

	// CorrectIndex is the position in Options of the correct answer.
	// Meaningful only when Kind.Choice() is true.
	CorrectIndex int

	// Answer is the expected free-text answer, verbatim from the bank
	// file. Meaningful only for KindFillBlank; normalization happens at
	// grading time, not here.
	Answer string
}

// Meta describes the bank as a whole.
type Meta struct {
	Title          string
	Creator        string
	Description    string
	TotalQuestions int
	FormatVersion  string
}

// Bank is an ordered, immutable question collection.
type Bank struct {
	Meta      Meta
	Questions []Question
}

// Len returns the number of questions in the bank.
func (b *Bank) Len() int { return len(b.Questions) }

// CountByKind tallies questions per kind, for overview displays.
func (b *Bank) CountByKind() map[Kind]int {
	counts := make(map[Kind]int, len(Kinds))
	for _, q := range b.Questions {
		counts[q.Kind]++
	}
	return counts
}
