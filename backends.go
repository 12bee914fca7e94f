package shardqueue

import (
	"context"
	"fmt"

	"github.com/Jeffail/tunny"
	"github.com/alitto/pond"
	"github.com/gammazero/workerpool"
	"github.com/panjf2000/ants/v2"
)

// Backend is the minimal submission surface PoolBackend (wrapping the
// native Pool) and the alternative third-party pool adapters below all
// satisfy, so the runtime layer can swap implementations behind
// internal/config's POOL_BACKEND setting without the HTTP layer knowing
// which one is in use.
//
// This promotes the comparison libraries ultrapool's own benchmark suite
// measures itself against (benchmark/workerpool_test.go) from
// benchmark-only dependencies to genuine, swappable runtime backends.
type Backend interface {
	Submit(task Task) error
	Stop(ctx context.Context) error
	Stats() Stats
}

var (
	_ Backend = (*PoolBackend)(nil)
	_ Backend = (*AntsBackend)(nil)
	_ Backend = (*GammazeroBackend)(nil)
	_ Backend = (*TunnyBackend)(nil)
	_ Backend = (*PondBackend)(nil)
)

// PoolBackend adapts the native Pool to Backend, discarding the drain
// callback Pool.Stop accepts but Backend.Stop has no room for.
type PoolBackend struct {
	*Pool
}

func (b *PoolBackend) Stop(ctx context.Context) error {
	return b.Pool.Stop(ctx, nil)
}

// AntsBackend adapts github.com/panjf2000/ants/v2 to Backend.
type AntsBackend struct {
	pool *ants.Pool
}

// NewAntsBackend creates a backend around an ants.Pool with the given
// worker capacity.
func NewAntsBackend(size int) (*AntsBackend, error) {
	pool, err := ants.NewPool(size)
	if err != nil {
		return nil, fmt.Errorf("shardqueue: ants pool: %w", err)
	}
	return &AntsBackend{pool: pool}, nil
}

func (b *AntsBackend) Submit(task Task) error {
	return b.pool.Submit(func() { task() })
}

func (b *AntsBackend) Stop(ctx context.Context) error {
	b.pool.Release()
	return nil
}

func (b *AntsBackend) Stats() Stats {
	return Stats{SpawnedWorkers: b.pool.Running()}
}

// GammazeroBackend adapts github.com/gammazero/workerpool to Backend.
type GammazeroBackend struct {
	pool *workerpool.WorkerPool
}

// NewGammazeroBackend creates a backend around a workerpool.WorkerPool
// with the given worker capacity.
func NewGammazeroBackend(maxWorkers int) *GammazeroBackend {
	return &GammazeroBackend{pool: workerpool.New(maxWorkers)}
}

func (b *GammazeroBackend) Submit(task Task) error {
	b.pool.Submit(func() { task() })
	return nil
}

func (b *GammazeroBackend) Stop(ctx context.Context) error {
	b.pool.StopWait()
	return nil
}

func (b *GammazeroBackend) Stats() Stats {
	return Stats{QueueLen: b.pool.WaitingQueueSize()}
}

// TunnyBackend adapts github.com/Jeffail/tunny to Backend.
//
// tunny.Pool.Process is synchronous (it blocks the caller until the
// worker finishes), unlike the other backends' fire-and-forget Submit.
// To preserve Backend's fire-and-forget contract, Submit dispatches
// Process from its own goroutine rather than the caller's.
type TunnyBackend struct {
	pool *tunny.Pool
}

// NewTunnyBackend creates a backend around a tunny.Pool with the given
// worker count.
func NewTunnyBackend(numWorkers int) *TunnyBackend {
	pool := tunny.NewFunc(numWorkers, func(payload interface{}) interface{} {
		if task, ok := payload.(Task); ok {
			task()
		}
		return nil
	})
	return &TunnyBackend{pool: pool}
}

func (b *TunnyBackend) Submit(task Task) error {
	go b.pool.Process(task)
	return nil
}

func (b *TunnyBackend) Stop(ctx context.Context) error {
	b.pool.Close()
	return nil
}

func (b *TunnyBackend) Stats() Stats {
	return Stats{SpawnedWorkers: b.pool.GetSize()}
}

// PondBackend adapts github.com/alitto/pond to Backend.
type PondBackend struct {
	pool *pond.WorkerPool
}

// NewPondBackend creates a backend around a pond.WorkerPool with the given
// maximum worker count and task buffer capacity.
func NewPondBackend(maxWorkers, maxCapacity int) *PondBackend {
	return &PondBackend{pool: pond.New(maxWorkers, maxCapacity)}
}

func (b *PondBackend) Submit(task Task) error {
	b.pool.Submit(func() { task() })
	return nil
}

func (b *PondBackend) Stop(ctx context.Context) error {
	b.pool.StopAndWait()
	return nil
}

func (b *PondBackend) Stats() Stats {
	return Stats{SpawnedWorkers: int(b.pool.RunningWorkers())}
}
