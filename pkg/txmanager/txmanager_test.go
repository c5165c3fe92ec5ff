package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arentz1234-code/jrodstudios/pkg/dbmetrics"
)

type fakeTx struct {
	commitErr  error
	commits    int
	rolledBack int
}

func (t *fakeTx) ExecContext(context.Context, string, ...interface{}) (sql.Result, error) {
	return nil, nil
}

func (t *fakeTx) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (t *fakeTx) QueryRowContext(context.Context, string, ...interface{}) *sql.Row {
	return nil
}

func (t *fakeTx) Commit() error {
	t.commits++
	return t.commitErr
}

func (t *fakeTx) Rollback() error {
	t.rolledBack++
	return nil
}

// fakeTxBeginner выдает по одной транзакции на попытку;
// commitErrs задает ошибку коммита для каждой попытки по порядку
type fakeTxBeginner struct {
	commitErrs []error
	txs        []*fakeTx
}

func (b *fakeTxBeginner) BeginTx(_ context.Context, _ *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	var commitErr error
	if len(b.txs) < len(b.commitErrs) {
		commitErr = b.commitErrs[len(b.txs)]
	}
	tx := &fakeTx{commitErr: commitErr}
	b.txs = append(b.txs, tx)
	return tx, nil
}

func serializationErr() *pq.Error {
	return &pq.Error{
		Code:    "40001",
		Message: "could not serialize access due to read/write dependencies among transactions",
	}
}

func TestDoSerializableRetriesOnCommitConflict(t *testing.T) {
	serErr := serializationErr()
	db := &fakeTxBeginner{commitErrs: []error{serErr, serErr, serErr}}
	m := NewTransactionManager(db)

	attempts := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		attempts++
		return nil
	})

	require.Error(t, err)
	assert.Equal(t, maxRetries, attempts)
	assert.ErrorIs(t, err, ErrTxFailed)

	// Код 40001 остается доступен в цепочке после исчерпания повторов
	var pqErr *pq.Error
	require.True(t, errors.As(err, &pqErr))
	assert.Equal(t, "40001", string(pqErr.Code))
}

func TestDoSerializableSucceedsAfterConflict(t *testing.T) {
	db := &fakeTxBeginner{commitErrs: []error{serializationErr()}}
	m := NewTransactionManager(db)

	attempts := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		attempts++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
	require.Len(t, db.txs, 2)
	assert.Equal(t, 1, db.txs[1].commits)
}

func TestDoSerializableNonConflictCommitError(t *testing.T) {
	db := &fakeTxBeginner{commitErrs: []error{errors.New("connection reset")}}
	m := NewTransactionManager(db)

	attempts := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		attempts++
		return nil
	})

	require.Error(t, err)
	assert.Equal(t, 1, attempts)
	assert.ErrorIs(t, err, ErrTxFailed)
}

func TestDoSerializableRetriesOnStatementConflict(t *testing.T) {
	// Конфликт может прийти и от запроса внутри транзакции, обернутый
	// вышележащими слоями - цепочка должна доходить до isSerializationFailure
	db := &fakeTxBeginner{}
	m := NewTransactionManager(db)

	attempts := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		attempts++
		if attempts == 1 {
			return fmt.Errorf("internal error: failed to get bookings: %w", serializationErr())
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
	require.Len(t, db.txs, 2)
	assert.Equal(t, 1, db.txs[0].rolledBack)
	assert.Equal(t, 1, db.txs[1].commits)
}

func TestDoSerializableFnErrorPassthrough(t *testing.T) {
	db := &fakeTxBeginner{}
	m := NewTransactionManager(db)

	errBusiness := errors.New("slot not available")
	attempts := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		attempts++
		return errBusiness
	})

	assert.ErrorIs(t, err, errBusiness)
	assert.Equal(t, 1, attempts)
	require.Len(t, db.txs, 1)
	assert.Equal(t, 1, db.txs[0].rolledBack)
}
