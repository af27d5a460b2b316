package progress

// Record is the durable study history for one question.
//
// Seen counts graded submissions; every submission also bumps exactly
// one of Correct or Wrong, so Seen == Correct+Wrong at all times.
type Record struct {
	Seen    int
	Correct int
	Wrong   int
	Starred bool
}

// NeedsReview reports whether the question has been missed more often
// than answered correctly. Unseen questions do not need review.
func (r Record) NeedsReview() bool {
	return r.Wrong > r.Correct
}

// Accuracy returns the fraction of submissions answered correctly,
// or 0 for an unseen question.
func (r Record) Accuracy() float64 {
	if r.Seen == 0 {
		return 0
	}
	return float64(r.Correct) / float64(r.Seen)
}

// Snapshot is a point-in-time copy of every record, keyed by question
// id. Mutating a snapshot never affects the store.
type Snapshot map[string]Record

// Totals sums a snapshot into one aggregate record.
func (s Snapshot) Totals() Record {
	var total Record
	for _, r := range s {
		total.Seen += r.Seen
		total.Correct += r.Correct
		total.Wrong += r.Wrong
	}
	return total
}

// Starred counts starred questions in the snapshot.
func (s Snapshot) Starred() int {
	n := 0
	for _, r := range s {
		if r.Starred {
			n++
		}
	}
	return n
}
