package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"skill-radar/internal/logging"
)

func TestUnavailableCacheIsNoop(t *testing.T) {
	// Empty host means no server was configured; every operation degrades
	// to a miss instead of failing.
	r := NewRedis("", "", "", logging.NewNop())

	var out []string
	hit, err := r.GetJSON(context.Background(), "k", &out)
	assert.NoError(t, err)
	assert.False(t, hit)

	assert.NoError(t, r.SetJSON(context.Background(), "k", []string{"v"}, time.Minute))
	assert.Error(t, r.Ping(context.Background()))
	assert.NoError(t, r.Close())
}

func TestNilReceiverIsSafe(t *testing.T) {
	var r *Redis

	hit, err := r.GetJSON(context.Background(), "k", nil)
	assert.NoError(t, err)
	assert.False(t, hit)
	assert.NoError(t, r.SetJSON(context.Background(), "k", "v", time.Minute))
	assert.NoError(t, r.Close())
}

func TestUnreachableServerDegrades(t *testing.T) {
	// Nothing listens on this port, so the constructor's ping fails and the
	// cache comes back in bypass mode.
	r := NewRedis("127.0.0.1", "1", "", logging.NewNop())

	hit, err := r.GetJSON(context.Background(), "k", nil)
	assert.NoError(t, err)
	assert.False(t, hit)
}
