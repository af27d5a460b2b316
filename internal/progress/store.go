// Package progress persists per-question study history in a local
// SQLite database. Every mutation is written through immediately, so an
// abrupt exit never loses a graded answer.
package progress

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	Prefix: "quizdrill-store",
	Level:  log.WarnLevel,
})

// SetLogLevel adjusts store logging, normally from QUIZDRILL_LOG_LEVEL.
func SetLogLevel(level log.Level) {
	logger.SetLevel(level)
}

// Store is the durable question-id → Record mapping. It mirrors the
// table in memory so reads never touch the database. Not safe for
// concurrent use; the single-threaded UI event loop is the only caller.
type Store struct {
	db      *sql.DB
	records map[string]Record
}

// Open opens (or creates) the store at path. A database file this
// build cannot read is moved aside with a ".corrupt" suffix and
// replaced by an empty store, so prior corruption never blocks a drill;
// only real I/O failures are returned as errors.
func Open(path string) (*Store, error) {
	if err := ensureDir(path); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	s, err := open(path)
	if err == nil {
		return s, nil
	}
	if _, statErr := os.Stat(path); statErr != nil {
		return nil, err
	}

	side := path + ".corrupt"
	if renameErr := os.Rename(path, side); renameErr != nil {
		return nil, err
	}
	for _, ext := range []string{"-wal", "-shm"} {
		_ = os.Rename(path+ext, side+ext)
	}
	logger.Warn("progress database unreadable, starting fresh",
		"db", path, "saved", side, "err", err)

	return open(path)
}

func open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	if err := ensureSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	records, err := loadRecords(db)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, records: records}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the record for id, a zero Record if the question has
// never been graded or starred. Reading never creates a row.
func (s *Store) Get(id string) Record {
	return s.records[id]
}

// Snapshot copies every record for callers that need a stable view,
// such as the sampler and the stats report.
func (s *Store) Snapshot() Snapshot {
	snap := make(Snapshot, len(s.records))
	for id, rec := range s.records {
		snap[id] = rec
	}
	return snap
}

// RecordAnswer bumps the seen counter and exactly one of the
// correct/wrong counters for id, creating the row on first contact.
func (s *Store) RecordAnswer(ctx context.Context, id string, correct bool) error {
	c, w := 0, 1
	if correct {
		c, w = 1, 0
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO question_progress(question_id, seen_count, correct_count, wrong_count)
		VALUES(?, 1, ?, ?)
		ON CONFLICT(question_id) DO UPDATE SET
			seen_count = question_progress.seen_count + 1,
			correct_count = question_progress.correct_count + excluded.correct_count,
			wrong_count = question_progress.wrong_count + excluded.wrong_count
	`, id, c, w)
	if err != nil {
		return fmt.Errorf("record answer for %s: %w", id, err)
	}

	rec := s.records[id]
	rec.Seen++
	if correct {
		rec.Correct++
	} else {
		rec.Wrong++
	}
	s.records[id] = rec
	return nil
}

// SetStarred marks or unmarks id, creating the row if needed.
func (s *Store) SetStarred(ctx context.Context, id string, starred bool) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO question_progress(question_id, starred)
		VALUES(?, ?)
		ON CONFLICT(question_id) DO UPDATE SET starred = excluded.starred
	`, id, boolInt(starred))
	if err != nil {
		return fmt.Errorf("star %s: %w", id, err)
	}

	rec := s.records[id]
	rec.Starred = starred
	s.records[id] = rec
	return nil
}

// ToggleStar flips the star on id and returns the new value.
func (s *Store) ToggleStar(ctx context.Context, id string) (bool, error) {
	starred := !s.records[id].Starred
	if err := s.SetStarred(ctx, id, starred); err != nil {
		return false, err
	}
	return starred, nil
}

// Wipe deletes every record, durably and immediately.
func (s *Store) Wipe(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM question_progress`); err != nil {
		return fmt.Errorf("wipe progress: %w", err)
	}
	s.records = make(map[string]Record)
	return nil
}

// applyPragmas configures SQLite for single-user local use.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

func ensureSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS question_progress (
			question_id TEXT PRIMARY KEY,
			seen_count INTEGER NOT NULL DEFAULT 0,
			correct_count INTEGER NOT NULL DEFAULT 0,
			wrong_count INTEGER NOT NULL DEFAULT 0,
			starred INTEGER NOT NULL DEFAULT 0
		)
	`)
	if err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

func loadRecords(db *sql.DB) (map[string]Record, error) {
	rows, err := db.Query(`
		SELECT question_id, seen_count, correct_count, wrong_count, starred
		FROM question_progress
	`)
	if err != nil {
		return nil, fmt.Errorf("load records: %w", err)
	}
	defer rows.Close()

	records := make(map[string]Record)
	for rows.Next() {
		var (
			id      string
			rec     Record
			starred int
		)
		if err := rows.Scan(&id, &rec.Seen, &rec.Correct, &rec.Wrong, &starred); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		rec.Starred = starred != 0
		records[id] = rec
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load records: %w", err)
	}
	return records, nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. QUIZDRILL_DB environment variable
// 2. $XDG_DATA_HOME/quizdrill/quizdrill.db
// 3. ~/.local/share/quizdrill/quizdrill.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("QUIZDRILL_DB"); p != "" {
		return p, nil
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	return filepath.Join(dataHome, "quizdrill", "quizdrill.db"), nil
}

// ensureDir creates the parent directory of path if it doesn't exist.
func ensureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
