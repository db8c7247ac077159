package db

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pingDriver accepts every connection and answers pings with pingErr.
type pingDriver struct{}

var (
	pingMu  sync.Mutex
	pingErr error
)

func (pingDriver) Open(string) (driver.Conn, error) { return pingConn{}, nil }

type pingConn struct{}

func (pingConn) Prepare(string) (driver.Stmt, error) { return nil, errors.New("not supported") }
func (pingConn) Close() error                        { return nil }
func (pingConn) Begin() (driver.Tx, error)           { return nil, errors.New("not supported") }
func (pingConn) Ping(context.Context) error {
	pingMu.Lock()
	defer pingMu.Unlock()
	return pingErr
}

var registerOnce sync.Once

func useTestDriver(t *testing.T, failPing error) {
	t.Helper()
	registerOnce.Do(func() { sql.Register("trackertest", pingDriver{}) })
	prevOpen := openDB
	openDB = func(_, dsn string) (*sql.DB, error) { return sql.Open("trackertest", dsn) }
	setPingErr(failPing)

	lambdaMu.Lock()
	lambdaDB = nil
	lambdaMu.Unlock()

	t.Cleanup(func() {
		openDB = prevOpen
		setPingErr(nil)
		lambdaMu.Lock()
		lambdaDB = nil
		lambdaMu.Unlock()
	})
}

func setPingErr(err error) {
	pingMu.Lock()
	pingErr = err
	pingMu.Unlock()
}

func TestOptionsForProfiles(t *testing.T) {
	assert.Equal(t, 4, OptionsFor(ProfileServer).MaxOpenConns)
	assert.Equal(t, 1, OptionsFor(ProfileLambda).MaxOpenConns)
	assert.Equal(t, 1, OptionsFor(ProfileMigrate).MaxOpenConns)
	assert.Equal(t, OptionsFor(ProfileServer), OptionsFor(Profile("unknown")))
}

func TestOptionsForAppliesEnvOverrides(t *testing.T) {
	t.Setenv("DB_MAX_OPEN_CONNS", "7")
	t.Setenv("DB_MAX_IDLE_CONNS", "3")
	t.Setenv("DB_CONN_MAX_LIFETIME", "20m")
	t.Setenv("DB_CONN_MAX_IDLE_TIME", "45s")
	t.Setenv("DB_PING_TIMEOUT", "not-a-duration")

	opts := OptionsFor(ProfileServer)
	assert.Equal(t, 7, opts.MaxOpenConns)
	assert.Equal(t, 3, opts.MaxIdleConns)
	assert.Equal(t, 20*time.Minute, opts.ConnMaxLifetime)
	assert.Equal(t, 45*time.Second, opts.ConnMaxIdleTime)
	assert.Equal(t, 5*time.Second, opts.PingTimeout)
}

func TestRuntimeProfile(t *testing.T) {
	t.Setenv("AWS_LAMBDA_FUNCTION_NAME", "")
	assert.Equal(t, ProfileServer, RuntimeProfile())
	t.Setenv("AWS_LAMBDA_FUNCTION_NAME", "api")
	assert.Equal(t, ProfileLambda, RuntimeProfile())
}

func TestConnectAppliesPoolSize(t *testing.T) {
	useTestDriver(t, nil)

	db, err := Connect(context.Background(), "dsn", Options{MaxOpenConns: 3})
	require.NoError(t, err)
	defer db.Close()
	assert.Equal(t, 3, db.Stats().MaxOpenConnections)
}

func TestConnectRejectsEmptyURLAndFailedPing(t *testing.T) {
	_, err := Connect(context.Background(), "  ", OptionsFor(ProfileServer))
	assert.ErrorIs(t, err, ErrNoDatabaseURL)

	useTestDriver(t, errors.New("refused"))
	_, err = Connect(context.Background(), "dsn", OptionsFor(ProfileServer))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ping database")
}

func TestOpenReusesLambdaPoolAndRetriesAfterFailure(t *testing.T) {
	t.Setenv("AWS_LAMBDA_FUNCTION_NAME", "api")
	useTestDriver(t, errors.New("cold start"))

	_, err := Open(context.Background(), "dsn")
	require.Error(t, err)

	setPingErr(nil)
	first, err := Open(context.Background(), "dsn")
	require.NoError(t, err)
	second, err := Open(context.Background(), "dsn")
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, 1, first.Stats().MaxOpenConnections)
}

func TestOpenOnServerReturnsFreshPool(t *testing.T) {
	t.Setenv("AWS_LAMBDA_FUNCTION_NAME", "")
	useTestDriver(t, nil)

	first, err := Open(context.Background(), "dsn")
	require.NoError(t, err)
	defer first.Close()
	second, err := Open(context.Background(), "dsn")
	require.NoError(t, err)
	defer second.Close()
	assert.NotSame(t, first, second)
}
