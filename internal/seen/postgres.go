package seen

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/kkyungseo/support-project-radar/internal/item"
)

// Postgres backs the store with a shared database, for deployments where
// several hosts take turns running the job against one dedup state.
type Postgres struct {
	db *sql.DB
}

func OpenPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}

	p := &Postgres{db: db}
	if err := p.init(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return p, nil
}

func (p *Postgres) init(ctx context.Context) error {
	_, err := p.db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS seen (
    source        TEXT NOT NULL,
    source_id     TEXT NOT NULL,
    first_seen_at TIMESTAMP NOT NULL DEFAULT now(),
    PRIMARY KEY (source, source_id)
)`)
	if err != nil {
		return fmt.Errorf("initializing schema: %w", err)
	}
	return nil
}

func (p *Postgres) Close() error {
	return p.db.Close()
}

func (p *Postgres) FilterNew(ctx context.Context, items []item.Item) ([]item.Item, error) {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning seen tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO seen (source, source_id, first_seen_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (source, source_id) DO NOTHING
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
