package repo

import (
	"context"
	"errors"

	dom "github.com/chelishino05/todo-devops-app/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// translate classifies a pgx-level failure into the domain taxonomy. No raw
// driver error crosses the repo boundary: anything unrecognized becomes a
// StorageError with the cause preserved.
func translate(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return dom.ErrNotFound
	}
	// Lock/statement timeouts and cancelled deadlines mean the medium could
	// not complete the operation in its configured bound.
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &dom.StorageError{Op: op, Err: err}
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return &dom.StorageError{Op: op, Err: pgErr}
	}
	return &dom.StorageError{Op: op, Err: err}
}
