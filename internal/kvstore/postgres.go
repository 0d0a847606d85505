package kvstore

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Spok95/school-analytics/internal/ctxutil"
)

// Postgres хранит коллекции в таблице kv_records (см. миграции).
type Postgres struct {
	db *sql.DB
}

func NewPostgres(database *sql.DB) *Postgres {
	return &Postgres{db: database}
}

func (p *Postgres) Read(ctx context.Context, key string) (string, bool, error) {
	ctx, cancel := ctxutil.WithStoreTimeout(ctx)
	defer cancel()

	var v string
	err := p.db.QueryRowContext(ctx, `SELECT value FROM kv_records WHERE key = $1`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (p *Postgres) Write(ctx context.Context, key, value string) error {
	ctx, cancel := ctxutil.WithStoreTimeout(ctx)
	defer cancel()

	_, err := p.db.ExecContext(ctx, `
INSERT INTO kv_records (key, value, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`, key, value)
	return err
}

func (p *Postgres) Ping(ctx context.Context) error {
	return p.db.PingContext(ctx)
}
