package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/opencollect/collect-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAndClose(t *testing.T) {
	mr := miniredis.RunT(t)

	cfg := &config.Config{}
	cfg.Redis.Addr = mr.Addr()
	cfg.Redis.PoolSize = 2

	rdb, err := New(cfg)
	require.NoError(t, err)
	require.NoError(t, rdb.Ping(context.Background()).Err())

	require.NoError(t, Close(rdb))
	assert.Error(t, rdb.Ping(context.Background()).Err())
}

func TestNew_Unreachable(t *testing.T) {
	cfg := &config.Config{}
	cfg.Redis.Addr = "127.0.0.1:1"

	_, err := New(cfg)
	assert.Error(t, err)
}
