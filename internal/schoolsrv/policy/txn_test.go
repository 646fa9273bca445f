package policy

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siakadlabs/siakad-internal/internal/common/apperrors"
)

type failingBeginner struct{}

func (failingBeginner) BeginTx(context.Context, *sql.TxOptions) (*sql.Tx, error) {
	return nil, errors.New("pool exhausted")
}

// recordingConn counts transaction outcomes at the driver level.
type recordingConn struct {
	committed  int
	rolledBack int
}

func (c *recordingConn) Prepare(string) (driver.Stmt, error) { return nil, errors.New("no queries") }
func (c *recordingConn) Close() error                        { return nil }
func (c *recordingConn) Begin() (driver.Tx, error)           { return &recordingTx{conn: c}, nil }

type recordingTx struct{ conn *recordingConn }

func (tx *recordingTx) Commit() error   { tx.conn.committed++; return nil }
func (tx *recordingTx) Rollback() error { tx.conn.rolledBack++; return nil }

type recordingDriver struct{ conn *recordingConn }

func (d *recordingDriver) Open(string) (driver.Conn, error) { return d.conn, nil }

var recordedConn = &recordingConn{}

func init() {
	sql.Register("txnrecorder", &recordingDriver{conn: recordedConn})
}

func newRecordingDB(t *testing.T) (*sql.DB, *recordingConn) {
	db, err := sql.Open("txnrecorder", "")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	recordedConn.committed = 0
	recordedConn.rolledBack = 0
	return db, recordedConn
}

func TestRunInTransactionNoConnection(t *testing.T) {
	err := RunInTransaction(newTestCtx("TABC123"), nil,
		func(context.Context, *sql.Tx) apperrors.Error { return nil })
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransactionFailure)
}

func TestRunInTransactionCommitsOnSuccess(t *testing.T) {
	db, conn := newRecordingDB(t)

	called := false
	err := RunInTransaction(newTestCtx("TABC123"), db,
		func(context.Context, *sql.Tx) apperrors.Error {
			called = true
			return nil
		})
	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, 1, conn.committed)
	assert.Equal(t, 0, conn.rolledBack)
}

func TestRunInTransactionRollsBackOnError(t *testing.T) {
	db, conn := newRecordingDB(t)

	unitErr := ErrDependencyConflict.Msg("class still has 3 enrolled students")
	err := RunInTransaction(newTestCtx("TABC123"), db,
		func(context.Context, *sql.Tx) apperrors.Error {
			return unitErr
		})
	require.Error(t, err)

	// The unit-of-work error comes back unchanged, status code and all.
	assert.ErrorIs(t, err, ErrDependencyConflict)
	assert.Equal(t, http.StatusConflict, err.StatusCode())
	assert.Contains(t, err.Error(), "3 enrolled students")

	// Nothing was committed.
	assert.Equal(t, 0, conn.committed)
	assert.Equal(t, 1, conn.rolledBack)
}

func TestRunInTransactionBeginFails(t *testing.T) {
	called := false
	err := RunInTransaction(newTestCtx("TABC123"), failingBeginner{},
		func(context.Context, *sql.Tx) apperrors.Error {
			called = true
			return nil
		})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransactionFailure)
	assert.False(t, called)
}
