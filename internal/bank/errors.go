package bank

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoQuestions indicates the bank file parsed cleanly but contains an
// empty questions array.
var ErrNoQuestions = errors.New("bank contains no questions")

// Defect describes one data-integrity problem found in a bank file.
type Defect struct {
	Index int    // zero-based position in the questions array
	ID    string // question id, when one was present
	Msg   string
}

func (d Defect) String() string {
	if d.ID != "" {
		return fmt.Sprintf("question %q (entry %d): %s", d.ID, d.Index+1, d.Msg)
	}
	return fmt.Sprintf("entry %d: %s", d.Index+1, d.Msg)
}

// ErrInvalidBank aggregates every defect found while building a bank.
// The loader collects all defects in one pass instead of failing on the
// first, so a broken file can be fixed in a single round trip.
type ErrInvalidBank struct {
	Defects []Defect
}

func (e *ErrInvalidBank) Error() string {
	switch len(e.Defects) {
	case 0:
		return "invalid bank"
	case 1:
		return "invalid bank: " + e.Defects[0].String()
	}
	return fmt.Sprintf("invalid bank: %d defects, first: %s", len(e.Defects), e.Defects[0].String())
}

// Report returns the full defect list, one per line, for CLI output.
func (e *ErrInvalidBank) Report() string {
	lines := make([]string, len(e.Defects))
	for i, d := range e.Defects {
		lines[i] = d.String()
	}
	return strings.Join(lines, "\n")
}

// ErrUnsupportedFormat indicates the bank declares a format_version whose
// major version this build does not understand.
type ErrUnsupportedFormat struct {
	Version string
}

func (e *ErrUnsupportedFormat) Error() string {
	return fmt.Sprintf("unsupported bank format version %q (supported major: %s)", e.Version, SupportedFormat)
}
