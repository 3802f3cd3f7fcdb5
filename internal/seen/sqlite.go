package seen

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/kkyungseo/support-project-radar/internal/item"
)

// SQLite is the default single-host store backend.
type SQLite struct {
	db *sql.DB
}

func OpenSQLite(dbPath string) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating store dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening seen db: %w", err)
	}
	db.SetMaxOpenConns(1)

	s := &SQLite{db: db}
	if err := s.init(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLite) init() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS seen (
			source        TEXT NOT NULL,
			source_id     TEXT NOT NULL,
			first_seen_at DATETIME NOT NULL,
			PRIMARY KEY (source, source_id)
		);
	`)
	if err != nil {
		return fmt.Errorf("initializing schema: %w", err)
	}
	return nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

// FilterNew keeps only never-seen items and records them in one transaction.
// The primary key makes duplicate inserts no-ops, so the same key twice in a
// batch, or a concurrent run racing on the same key, still leaves exactly
// one record.
func (s *SQLite) FilterNew(ctx context.Context, items []item.Item) ([]item.Item, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning seen tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO seen (source, source_id, first_seen_at)
		VALUES (?, ?, ?)
		ON CONFLICT(source, source_id) DO NOTHING
	`)
	if err != nil {
		return nil, fmt.Errorf("preparing seen insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	fresh := make([]item.Item, 0, len(items))
	for _, it := range items {
		res, err := stmt.ExecContext(ctx, it.Source, it.SourceID, now)
		if err != nil {
			return nil, fmt.Errorf("recording %s/%s: %w", it.Source, it.SourceID, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return nil, fmt.Errorf("recording %s/%s: %w", it.Source, it.SourceID, err)
		}
		if n == 1 {
			fresh = append(fresh, it)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing seen records: %w", err)
	}
	return fresh, nil
}

// Stats returns the number of records and the database file size.
func (s *SQLite) Stats(dbPath string) (int64, int64, error) {
	var count int64
	if err := s.db.QueryRow("SELECT COUNT(*) FROM seen").Scan(&count); err != nil {
		return 0, 0, fmt.Errorf("counting records: %w", err)
	}
	info, err := os.Stat(dbPath)
	if err != nil {
		return count, 0, nil
	}
	return count, info.Size(), nil
}

// Prune deletes records first seen longer than the given duration ago.
// Pruned keys become eligible for re-notification; dedup behavior within
// the retention window is unchanged.
func (s *SQLite) Prune(olderThan time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-olderThan)
	res, err := s.db.Exec("DELETE FROM seen WHERE first_seen_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("pruning: %w", err)
	}
	return res.RowsAffected()
}
