// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/verte-zerg/kanaflow/internal/catalog"
	"github.com/verte-zerg/kanaflow/internal/prefs"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Preference keys.
const (
	KeyBestStreak    = "best_streak"
	KeyTotalMastered = "total_mastered"
	KeyPreferredMode = "preferred_mode"
)

// Store wraps SQLite access for learner preferences.
type Store struct {
	db *sql.DB
}

var _ prefs.Repository = (*Store)(nil)

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS preferences (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Load reads the stored preferences. Missing or unreadable keys keep their
// default value.
func (s *Store) Load(ctx context.Context) (prefs.Preferences, error) {
	result := prefs.Defaults()
	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM preferences`)
	if err != nil {
		return result, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return result, err
		}
		switch key {
		case KeyBestStreak:
			if n, err := strconv.Atoi(value); err == nil && n >= 0 {
				result.BestStreak = n
			}
		case KeyTotalMastered:
			if n, err := strconv.Atoi(value); err == nil && n >= 0 {
				result.TotalMastered = n
			}
		case KeyPreferredMode:
			if mode, err := catalog.ParseMode(value); err == nil {
				result.PreferredMode = mode
			}
		}
	}
	if err := rows.Err(); err != nil {
		return result, err
	}
	return result, nil
}

// Save writes the non-nil fields of patch in one transaction.
func (s *Store) Save(ctx context.Context, patch prefs.Patch) (err error) {
	values := map[string]string{}
	if patch.BestStreak != nil {
		values[KeyBestStreak] = strconv.Itoa(*patch.BestStreak)
	}
	if patch.TotalMastered != nil {
		values[KeyTotalMastered] = strconv.Itoa(*patch.TotalMastered)
	}
	if patch.PreferredMode != nil {
		values[KeyPreferredMode] = string(*patch.PreferredMode)
	}
	if len(values) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO preferences (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := stmt.Close(); cerr != nil {
			// Best-effort statement close.
			_ = cerr
		}
	}()
	for key, value := range values {
		if _, err = stmt.ExecContext(ctx, key, value); err != nil {
			return fmt.Errorf("failed to save %s: %w", key, err)
		}
	}
	return tx.Commit()
}

// Reset deletes every stored preference.
func (s *Store) Reset(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM preferences`)
	return err
}
