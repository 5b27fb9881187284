// Package txmanager runs functions inside database transactions whose
// executor is propagated through the context (see pkg/dbmetrics). It expects
// an instrumented database handle; pkg/simpletxmanager is the plain variant.
package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/deskhive/RoomBookingService/pkg/dbmetrics"
)

// pgSerializationFailure is the Postgres SQLSTATE for a serializable
// transaction that must be retried.
const pgSerializationFailure = "40001"

// serializableAttempts bounds retries of a serializable transaction.
const serializableAttempts = 3

// ErrTxBegin is returned when a transaction cannot be started.
var ErrTxBegin = errors.New("txmanager: failed to begin transaction")

// TxBeginner starts transactions. Satisfied by *dbmetrics.DB.
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// TransactionManager runs functions inside transactions.
type TransactionManager struct {
	db TxBeginner
}

// NewTransactionManager creates a transaction manager over the given handle.
func NewTransactionManager(db TxBeginner) *TransactionManager {
	return &TransactionManager{db: db}
}

// Do runs fn inside a transaction with the default isolation level.
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{}, fn)
}

// DoReadOnly runs fn inside a read-only transaction.
func (m *TransactionManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{ReadOnly: true}, fn)
}

// DoSerializable runs fn inside a SERIALIZABLE transaction. On a
// serialization failure (SQLSTATE 40001) the whole function is retried a
// bounded number of times; any other error aborts immediately.
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	opts := &sql.TxOptions{Isolation: sql.LevelSerializable}

	var err error
	for attempt := 0; attempt < serializableAttempts; attempt++ {
		err = m.run(ctx, opts, fn)
		if !isSerializationFailure(err) {
			return err
		}
	}
	return err
}

func (m *TransactionManager) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) error {
	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTxBegin, err)
	}

	if err := fn(dbmetrics.WithTx(ctx, tx)); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

// isSerializationFailure reports whether the error chain contains a Postgres
// serialization failure.
func isSerializationFailure(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pgSerializationFailure
	}
	return false
}
