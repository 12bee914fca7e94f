package shardqueue

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolBackend_SatisfiesBackendAndRuns(t *testing.T) {
	pool := NewPool(WithWorkers(2), WithIdleTimeout(10*time.Millisecond))
	pool.Start()
	backend := &PoolBackend{Pool: pool}
	defer backend.Stop(context.Background())

	done := make(chan struct{})
	require.NoError(t, backend.Submit(func() { close(done) }))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("task submitted through PoolBackend never ran")
	}
}

func TestGammazeroBackend_SubmitExecutesTask(t *testing.T) {
	backend := NewGammazeroBackend(4)
	defer backend.Stop(context.Background())

	done := make(chan struct{})
	require.NoError(t, backend.Submit(func() { close(done) }))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("task submitted through GammazeroBackend never ran")
	}
}

func TestAntsBackend_SubmitExecutesTask(t *testing.T) {
	backend, err := NewAntsBackend(4)
	require.NoError(t, err)
	defer backend.Stop(context.Background())

	done := make(chan struct{})
	require.NoError(t, backend.Submit(func() { close(done) }))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("task submitted through AntsBackend never ran")
	}
}

func TestTunnyBackend_SubmitExecutesTask(t *testing.T) {
	backend := NewTunnyBackend(2)
	defer backend.Stop(context.Background())

	done := make(chan struct{})
	require.NoError(t, backend.Submit(func() { close(done) }))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("task submitted through TunnyBackend never ran")
	}
}

func TestPondBackend_StatsReportsRunningWorkers(t *testing.T) {
	backend := NewPondBackend(3, 16)
	defer backend.Stop(context.Background())

	assert.GreaterOrEqual(t, backend.Stats().SpawnedWorkers, 0)
}
