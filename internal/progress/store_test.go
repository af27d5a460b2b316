package progress

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so journal_mode is covered by the file-based tests below.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		if err := s.db.QueryRow("PRAGMA " + tt.pragma).Scan(&got); err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestGetUnseenQuestion(t *testing.T) {
	s := openTestStore(t)

	rec := s.Get("never-graded")
	if rec != (Record{}) {
		t.Errorf("Get on unseen id = %+v, want zero record", rec)
	}
	// Reads must not create rows.
	if n := len(s.Snapshot()); n != 0 {
		t.Errorf("snapshot has %d records after read-only access, want 0", n)
	}
}

func TestRecordAnswer(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.RecordAnswer(ctx, "q1", true); err != nil {
		t.Fatalf("record correct: %v", err)
	}
	if got, want := s.Get("q1"), (Record{Seen: 1, Correct: 1}); got != want {
		t.Errorf("after correct answer: %+v, want %+v", got, want)
	}

	if err := s.RecordAnswer(ctx, "q1", false); err != nil {
		t.Fatalf("record wrong: %v", err)
	}
	if got, want := s.Get("q1"), (Record{Seen: 2, Correct: 1, Wrong: 1}); got != want {
		t.Errorf("after wrong answer: %+v, want %+v", got, want)
	}

	// Counters stay consistent with the database, not just the mirror.
	var seen, correct, wrong int
	err := s.db.QueryRow(
		`SELECT seen_count, correct_count, wrong_count FROM question_progress WHERE question_id = ?`,
		"q1",
	).Scan(&seen, &correct, &wrong)
	if err != nil {
		t.Fatalf("query row: %v", err)
	}
	if seen != 2 || correct != 1 || wrong != 1 {
		t.Errorf("persisted counters = %d/%d/%d, want 2/1/1", seen, correct, wrong)
	}
}

func TestToggleStar(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	starred, err := s.ToggleStar(ctx, "q1")
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !starred || !s.Get("q1").Starred {
		t.Error("first toggle should star the question")
	}

	starred, err = s.ToggleStar(ctx, "q1")
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if starred || s.Get("q1").Starred {
		t.Error("second toggle should unstar the question")
	}

	// Starring must not touch the counters.
	if rec := s.Get("q1"); rec.Seen != 0 || rec.Correct != 0 || rec.Wrong != 0 {
		t.Errorf("toggle changed counters: %+v", rec)
	}
}

func TestSnapshotIsIsolated(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.RecordAnswer(ctx, "q1", true); err != nil {
		t.Fatal(err)
	}

	snap := s.Snapshot()
	snap["q1"] = Record{Seen: 99}
	if got := s.Get("q1"); got.Seen != 1 {
		t.Errorf("mutating a snapshot changed the store: %+v", got)
	}

	if err := s.RecordAnswer(ctx, "q1", false); err != nil {
		t.Fatal(err)
	}
	fresh := s.Snapshot()
	if fresh["q1"].Seen != 2 {
		t.Errorf("fresh snapshot Seen = %d, want 2", fresh["q1"].Seen)
	}
}

func TestWipe(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"q1", "q2", "q3"} {
		if err := s.RecordAnswer(ctx, id, false); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := s.ToggleStar(ctx, "q2"); err != nil {
		t.Fatal(err)
	}

	if err := s.Wipe(ctx); err != nil {
		t.Fatalf("wipe: %v", err)
	}

	for _, id := range []string{"q1", "q2", "q3"} {
		if rec := s.Get(id); rec != (Record{}) {
			t.Errorf("record %s survived wipe: %+v", id, rec)
		}
	}
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM question_progress`).Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("%d rows survived wipe", n)
	}
}

func TestWriteThroughSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.db")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.RecordAnswer(ctx, "q1", true); err != nil {
		t.Fatal(err)
	}
	if err := s.RecordAnswer(ctx, "q1", true); err != nil {
		t.Fatal(err)
	}
	if _, err := s.ToggleStar(ctx, "q2"); err != nil {
		t.Fatal(err)
	}
	// No explicit flush: every mutation is already on disk.
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	s2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()

	if got, want := s2.Get("q1"), (Record{Seen: 2, Correct: 2}); got != want {
		t.Errorf("q1 after reopen = %+v, want %+v", got, want)
	}
	if !s2.Get("q2").Starred {
		t.Error("q2 star lost across reopen")
	}
}

func TestOpenRecoversFromCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.db")
	if err := os.WriteFile(path, []byte("this is not a sqlite file"), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open over corrupt file: %v", err)
	}
	defer s.Close()

	if n := len(s.Snapshot()); n != 0 {
		t.Errorf("recovered store has %d records, want 0", n)
	}
	// The unreadable file is kept for inspection, not destroyed.
	if _, err := os.Stat(path + ".corrupt"); err != nil {
		t.Errorf("sidelined file missing: %v", err)
	}

	// The fresh store is fully usable.
	if err := s.RecordAnswer(context.Background(), "q1", true); err != nil {
		t.Errorf("record on recovered store: %v", err)
	}
}

func TestDefaultDBPath(t *testing.T) {
	t.Run("env override wins", func(t *testing.T) {
		t.Setenv("QUIZDRILL_DB", "/tmp/custom.db")
		p, err := DefaultDBPath()
		if err != nil {
			t.Fatal(err)
		}
		if p != "/tmp/custom.db" {
			t.Errorf("path = %q, want /tmp/custom.db", p)
		}
	})

	t.Run("xdg data home", func(t *testing.T) {
		t.Setenv("QUIZDRILL_DB", "")
		t.Setenv("XDG_DATA_HOME", "/xdg/data")
		p, err := DefaultDBPath()
		if err != nil {
			t.Fatal(err)
		}
		want := filepath.Join("/xdg/data", "quizdrill", "quizdrill.db")
		if p != want {
			t.Errorf("path = %q, want %q", p, want)
		}
	})
}
