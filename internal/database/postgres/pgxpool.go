package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"skill-radar/internal/database"
)

type pgxDB struct {
	pool *pgxpool.Pool
}

// Connect opens a pgx pool against the given DSN and verifies it with a
// ping.
func Connect(ctx context.Context, dsn string) (database.DB, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &pgxDB{pool: pool}, nil
}

func (db *pgxDB) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	tag, err := db.pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (db *pgxDB) QueryRow(ctx context.Context, query string, args ...any) database.Row {
	return db.pool.QueryRow(ctx, query, args...)
}

func (db *pgxDB) Ping(ctx context.Context) error {
	return db.pool.Ping(ctx)
}

func (db *pgxDB) Close() error {
	db.pool.Close()
	return nil
}
