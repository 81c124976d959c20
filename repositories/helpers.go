package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// SQLExecutor is satisfied by both *sql.DB and *sql.Tx, so repository
// methods can join a caller's transaction.
type SQLExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// Transactor runs fn as one unit of work. fn receives the executor that
// repository calls must use to take part in it.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(exec SQLExecutor) error) error
}

type sqlTransactor struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewSQLTransactor(db *sql.DB, logger *slog.Logger) Transactor {
	if logger == nil {
		logger = slog.Default()
	}
	return &sqlTransactor{db: db, logger: logger}
}

func (t *sqlTransactor) WithinTx(ctx context.Context, fn func(exec SQLExecutor) error) (txErr error) {
	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		} else if txErr != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				t.logger.ErrorContext(ctx, "transaction rollback failed", slog.Any("error", rbErr), slog.Any("cause", txErr))
				txErr = fmt.Errorf("transaction processing error: %w (rollback also failed: %v)", txErr, rbErr)
			}
		} else if cErr := tx.Commit(); cErr != nil {
			txErr = fmt.Errorf("failed to commit transaction: %w", cErr)
		}
	}()

	txErr = fn(tx)
	return txErr
}

func getExecutor(db *sql.DB, exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return db
}

func checkAffectedRows(result sql.Result, notFoundError error) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if rowsAffected == 0 {
		return notFoundError
	}
	return nil
}
