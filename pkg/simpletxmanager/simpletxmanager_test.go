package simpletxmanager

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serializationErr() *pq.Error {
	return &pq.Error{
		Code:    "40001",
		Message: "could not serialize access due to read/write dependencies among transactions",
	}
}

func TestDoSerializableRetriesOnCommitConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	for i := 0; i < maxRetries; i++ {
		mock.ExpectBegin()
		mock.ExpectCommit().WillReturnError(serializationErr())
	}

	m := NewTransactionManager(db)

	attempts := 0
	err = m.DoSerializable(context.Background(), func(ctx context.Context) error {
		attempts++
		return nil
	})

	require.Error(t, err)
	assert.Equal(t, maxRetries, attempts)
	assert.ErrorIs(t, err, ErrTxFailed)

	var pqErr *pq.Error
	require.True(t, errors.As(err, &pqErr))
	assert.Equal(t, "40001", string(pqErr.Code))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDoSerializableSucceedsAfterConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(serializationErr())
	mock.ExpectBegin()
	mock.ExpectCommit()

	m := NewTransactionManager(db)

	attempts := 0
	err = m.DoSerializable(context.Background(), func(ctx context.Context) error {
		attempts++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDoSerializableNonConflictCommitError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(errors.New("connection reset"))

	m := NewTransactionManager(db)

	attempts := 0
	err = m.DoSerializable(context.Background(), func(ctx context.Context) error {
		attempts++
		return nil
	})

	require.Error(t, err)
	assert.Equal(t, 1, attempts)
	assert.ErrorIs(t, err, ErrTxFailed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDoSerializableFnErrorRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	m := NewTransactionManager(db)

	errBusiness := errors.New("slot not available")
	err = m.DoSerializable(context.Background(), func(ctx context.Context) error {
		return errBusiness
	})

	assert.ErrorIs(t, err, errBusiness)
	assert.NoError(t, mock.ExpectationsWereMet())
}
