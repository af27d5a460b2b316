package progress

import "testing"

func TestNeedsReview(t *testing.T) {
	tests := []struct {
		name string
		rec  Record
		want bool
	}{
		{name: "unseen", rec: Record{}, want: false},
		{name: "more wrong than correct", rec: Record{Seen: 3, Correct: 1, Wrong: 2}, want: true},
		{name: "even record", rec: Record{Seen: 2, Correct: 1, Wrong: 1}, want: false},
		{name: "mostly correct", rec: Record{Seen: 5, Correct: 4, Wrong: 1}, want: false},
		{name: "only wrong", rec: Record{Seen: 1, Wrong: 1}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rec.NeedsReview(); got != tt.want {
				t.Errorf("NeedsReview(%+v) = %v, want %v", tt.rec, got, tt.want)
			}
		})
	}
}

func TestAccuracy(t *testing.T) {
	tests := []struct {
		name string
		rec  Record
		want float64
	}{
		{name: "unseen", rec: Record{}, want: 0},
		{name: "perfect", rec: Record{Seen: 4, Correct: 4}, want: 1},
		{name: "half", rec: Record{Seen: 4, Correct: 2, Wrong: 2}, want: 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rec.Accuracy(); got != tt.want {
				t.Errorf("Accuracy(%+v) = %v, want %v", tt.rec, got, tt.want)
			}
		})
	}
}

func TestSnapshotTotals(t *testing.T) {
	snap := Snapshot{
		"q1": {Seen: 2, Correct: 2},
		"q2": {Seen: 3, Correct: 1, Wrong: 2, Starred: true},
		"q3": {Starred: true},
	}

	total := snap.Totals()
	if total.Seen != 5 || total.Correct != 3 || total.Wrong != 2 {
		t.Errorf("totals = %+v, want Seen 5, Correct 3, Wrong 2", total)
	}
	if got := snap.Starred(); got != 2 {
		t.Errorf("starred = %d, want 2", got)
	}
}
