package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectDbWithRetry_SucceedsAfterFailures(t *testing.T) {
	orig := newPool
	t.Cleanup(func() { newPool = orig })

	attempts := 0
	newPool = func(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
		attempts++
		if attempts < 3 {
			return nil, errors.New("refused")
		}
		return &pgxpool.Pool{}, nil
	}

	pool, err := connectDbWithRetry(context.Background(), "dsn", 5, time.Millisecond)
	require.NoError(t, err)
	require.NotNil(t, pool)
	assert.Equal(t, 3, attempts)
}

func TestConnectDbWithRetry_ExhaustsAttempts(t *testing.T) {
	orig := newPool
	t.Cleanup(func() { newPool = orig })

	wantErr := errors.New("refused")
	newPool = func(context.Context, string) (*pgxpool.Pool, error) {
		return nil, wantErr
	}

	_, err := connectDbWithRetry(context.Background(), "dsn", 3, time.Millisecond)
	require.Error(t, err)
	assert.ErrorIs(t, err, wantErr)
}

func TestConnectDbWithRetry_StopsOnCanceledContext(t *testing.T) {
	orig := newPool
	t.Cleanup(func() { newPool = orig })

	ctx, cancel := context.WithCancel(context.Background())
	newPool = func(context.Context, string) (*pgxpool.Pool, error) {
		cancel()
		return nil, errors.New("refused")
	}

	_, err := connectDbWithRetry(ctx, "dsn", 5, time.Minute)
	require.ErrorIs(t, err, context.Canceled)
}
