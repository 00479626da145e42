package database

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBootstrap_AppliesSchema(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(regexp.QuoteMeta(Schema())).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, Bootstrap(context.Background(), mock))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBootstrap_PropagatesFailure(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS owners").
		WillReturnError(errors.New("permission denied"))

	err = Bootstrap(context.Background(), mock)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "apply schema")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSchema_DeclaresConstraints(t *testing.T) {
	s := Schema()
	assert.Contains(t, s, "username      VARCHAR(50)  NOT NULL UNIQUE")
	assert.Contains(t, s, "CHECK (rent_status IN ('Paid', 'Pending'))")
	assert.Contains(t, s, "CHECK (status IN ('Pending', 'Fixed'))")
	assert.Contains(t, s, "ON DELETE CASCADE")
}

func TestNewPool_RejectsBadURL(t *testing.T) {
	_, err := NewPool(context.Background(), "postgres://%zz", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse database url")
}
