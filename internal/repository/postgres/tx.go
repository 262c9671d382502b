package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"conferencecentral/internal/domain"
)

// DefaultMaxAttempts bounds how many times a conflicting transaction is run.
const DefaultMaxAttempts = 5

// SQLSTATE codes Postgres uses for write conflicts between concurrent transactions.
const (
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
	codeUniqueViolation      = "23505"
	codeCheckViolation       = "23514"
	codeInvalidTextRepr      = "22P02"
)

type txKey struct{}

// querier is implemented by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// conn returns the transaction carried by ctx, or db when there is none.
func conn(ctx context.Context, db *sql.DB) querier {
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return tx
	}
	return db
}

type txManager struct {
	DB          *sql.DB
	maxAttempts int
}

// NewTxManager returns a domain.TxManager running transactions at SERIALIZABLE
// isolation. A transaction that fails with a serialization failure or deadlock
// is rolled back and run again, up to maxAttempts times in total.
func NewTxManager(db *sql.DB, maxAttempts int) domain.TxManager {
	if maxAttempts < 1 {
		maxAttempts = DefaultMaxAttempts
	}
	return &txManager{DB: db, maxAttempts: maxAttempts}
}

func (m *txManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return fn(ctx)
	}
	var err error
	for attempt := 1; attempt <= m.maxAttempts; attempt++ {
		err = m.runOnce(ctx, fn)
		if err == nil || !isRetryable(err) {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
	return fmt.Errorf("%w: gave up after %d attempts: %v", domain.ErrRetryable, m.maxAttempts, err)
}

func (m *txManager) runOnce(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := m.DB.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func pqCode(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

func isRetryable(err error) bool {
	code := pqCode(err)
	return code == codeSerializationFailure || code == codeDeadlockDetected
}

func isUniqueViolation(err error) bool {
	return pqCode(err) == codeUniqueViolation
}

func isInvalidID(err error) bool {
	return pqCode(err) == codeInvalidTextRepr
}
