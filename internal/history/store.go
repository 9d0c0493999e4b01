// Package history records menu selections in a SQLite database so that
// frequently picked lines can be floated to the top of later menus.
package history

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Selection is one recorded menu pick.
type Selection struct {
	ID       string
	Prompt   string
	Choice   string
	PickedAt time.Time
}

// Store manages the SQLite selection history database. Writes are
// additionally serialized across processes with a sidecar flock, since two
// xmenu invocations can finish at the same time.
type Store struct {
	db     *sql.DB
	dbPath string
	lock   *flock.Flock
}

// Open opens (and if necessary creates) the history database at dbPath.
// The special path ":memory:" opens a transient in-memory database.
func Open(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	if dbPath == ":memory:" {
		// Every pooled connection would otherwise get its own empty
		// in-memory database.
		db.SetMaxOpenConns(1)
	}

	// busy_timeout must come first so the remaining pragmas wait on locks
	// held by a concurrent opener.
	pragmas := []string{
		"PRAGMA busy_timeout=5000",
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
	}
	for _, pragma := range pragmas {
		if err := execWithRetry(db, pragma, 5, 10*time.Millisecond); err != nil {
			db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("init history schema: %w", err)
	}

	s := &Store{db: db, dbPath: dbPath}
	if dbPath != ":memory:" {
		s.lock = flock.New(dbPath + ".lock")
	}
	return s, nil
}

// execWithRetry executes a SQL statement with exponential backoff on
// "database is locked" errors that can occur during concurrent
// initialization of the same database file.
func execWithRetry(db *sql.DB, query string, maxRetries int, baseDelay time.Duration) error {
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		_, err := db.Exec(query)
		if err == nil {
			return nil
		}
		if !strings.Contains(err.Error(), "database is locked") {
			return err
		}
		lastErr = err
		time.Sleep(baseDelay * time.Duration(1<<attempt))
	}
	return lastErr
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// withWriteLock runs fn while holding the cross-process write lock.
func (s *Store) withWriteLock(fn func() error) error {
	if s.lock != nil {
		if err := s.lock.Lock(); err != nil {
			return fmt.Errorf("acquire history lock: %w", err)
		}
		defer s.lock.Unlock()
	}
	return fn()
}

// Record stores one selection made under the given prompt.
func (s *Store) Record(ctx context.Context, prompt, choice string) error {
	return s.withWriteLock(func() error {
		query := `INSERT INTO selections (id, prompt, choice) VALUES (?, ?, ?)`
		if _, err := s.db.ExecContext(ctx, query, uuid.New().String(), prompt, choice); err != nil {
			return fmt.Errorf("insert selection: %w", err)
		}
		return nil
	})
}

// Frequent returns the distinct choices previously picked under the given
// prompt, most frequent first, ties broken by recency.
func (s *Store) Frequent(ctx context.Context, prompt string, limit int) ([]string, error) {
	if limit <= 0 {
		return nil, nil
	}

	query := `SELECT choice FROM selections
		WHERE prompt = ?
		GROUP BY choice
		ORDER BY COUNT(*) DESC, MAX(picked_at) DESC
		LIMIT ?`

	rows, err := s.db.QueryContext(ctx, query, prompt, limit)
	if err != nil {
		return nil, fmt.Errorf("query frequent selections: %w", err)
	}
	defer rows.Close()

	var choices []string
	for rows.Next() {
		var choice string
		if err := rows.Scan(&choice); err != nil {
			return nil, fmt.Errorf("scan selection: %w", err)
		}
		choices = append(choices, choice)
	}
	return choices, rows.Err()
}

// Recent returns the most recent selections across all prompts, newest
// first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Selection, error) {
	query := `SELECT id, prompt, choice, picked_at FROM selections
		ORDER BY picked_at DESC, id DESC
		LIMIT ?`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent selections: %w", err)
	}
	defer rows.Close()

	var selections []Selection
	for rows.Next() {
		var sel Selection
		if err := rows.Scan(&sel.ID, &sel.Prompt, &sel.Choice, &sel.PickedAt); err != nil {
			return nil, fmt.Errorf("scan selection: %w", err)
		}
		selections = append(selections, sel)
	}
	return selections, rows.Err()
}

// Clear removes every recorded selection.
func (s *Store) Clear(ctx context.Context) error {
	return s.withWriteLock(func() error {
		if _, err := s.db.ExecContext(ctx, `DELETE FROM selections`); err != nil {
			return fmt.Errorf("clear selections: %w", err)
		}
		return nil
	})
}

// Prune deletes selections older than keepDays days. keepDays <= 0 keeps
// everything.
func (s *Store) Prune(ctx context.Context, keepDays int) (int64, error) {
	if keepDays <= 0 {
		return 0, nil
	}

	var deleted int64
	err := s.withWriteLock(func() error {
		cutoff := fmt.Sprintf("-%d days", keepDays)
		result, err := s.db.ExecContext(ctx,
			`DELETE FROM selections WHERE picked_at < datetime('now', ?)`, cutoff)
		if err != nil {
			return fmt.Errorf("prune selections: %w", err)
		}
		deleted, err = result.RowsAffected()
		return err
	})
	return deleted, err
}
