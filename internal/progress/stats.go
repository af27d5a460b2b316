package progress

import (
	"github.com/quizdrill/quizdrill/internal/bank"
)

// KindStats aggregates progress over the questions of one kind.
type KindStats struct {
	Kind      bank.Kind
	Total     int // questions of this kind in the bank
	Attempted int // questions answered at least once
	Correct   int // correct answers across all attempts
	Wrong     int // wrong answers across all attempts
	Review    int // questions currently more wrong than right
	Starred   int
}

// Accuracy returns the share of recorded answers that were correct.
func (k KindStats) Accuracy() float64 {
	attempts := k.Correct + k.Wrong
	if attempts == 0 {
		return 0
	}
	return float64(k.Correct) / float64(attempts)
}

// Stats holds per-kind rows plus an overall total.
type Stats struct {
	Kinds []KindStats // one row per kind present in the bank
	All   KindStats
}

// Aggregate joins a bank with a progress snapshot. Kinds absent from the
// bank get no row; the snapshot may hold records for questions no longer
// in the bank, which are ignored.
func Aggregate(b *bank.Bank, snap Snapshot) Stats {
	byKind := make(map[bank.Kind]*KindStats, len(bank.Kinds))
	for _, q := range b.Questions {
		ks := byKind[q.Kind]
		if ks == nil {
			ks = &KindStats{Kind: q.Kind}
			byKind[q.Kind] = ks
		}

		ks.Total++
		r := snap[q.ID]
		if r.Seen > 0 {
			ks.Attempted++
		}
		ks.Correct += r.Correct
		ks.Wrong += r.Wrong
		if r.NeedsReview() {
			ks.Review++
		}
		if r.Starred {
			ks.Starred++
		}
	}

	var out Stats
	for _, k := range bank.Kinds {
		ks := byKind[k]
		if ks == nil {
			continue
		}
		out.Kinds = append(out.Kinds, *ks)
		out.All.Total += ks.Total
		out.All.Attempted += ks.Attempted
		out.All.Correct += ks.Correct
		out.All.Wrong += ks.Wrong
		out.All.Review += ks.Review
		out.All.Starred += ks.Starred
	}
	return out
}
