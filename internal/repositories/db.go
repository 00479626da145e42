package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"pgmaint/internal/common"
)

// DBTX is satisfied by *pgxpool.Pool, pgx.Tx and pgxmock pools.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// notFound converts pgx.ErrNoRows into the shared NotFound error
func notFound(err error, resource string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return common.NewNotFoundError(resource)
	}
	return err
}
