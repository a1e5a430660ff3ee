package database

import "context"

// DB is the minimal query surface the run-history repository needs.
type DB interface {
	Exec(ctx context.Context, query string, args ...any) (int64, error)
	QueryRow(ctx context.Context, query string, args ...any) Row
	Ping(ctx context.Context) error
	Close() error
}

type Row interface {
	Scan(dest ...any) error
}
