package shardqueue

import (
	"sync/atomic"
	"time"
)

// ShardedQueue is a concurrent task queue that distributes tasks across a
// fixed number of shards, adapting how many shards are active to the
// current producer/worker concurrency.
//
// Producers call Push then NotifyOne; consumers call WaitForTask in a loop.
// ShardedQueue never blocks except inside WaitForTask.
type ShardedQueue struct {
	shards [NumShards]shard

	// pushIndex is the round-robin counter used to pick a shard on Push.
	pushIndex atomic.Int64

	// totalLen is the fast-path hint for "is the queue globally empty".
	totalLen atomic.Int64

	// maxShardPushed is the highest shard index ever pushed to. It is
	// raised before totalLen is incremented so that any Pop that observes
	// the new totalLen also observes a maxShardPushed that covers the
	// pushed-to shard.
	maxShardPushed atomic.Int64

	wake *wakeCoordinator
}

// NewShardedQueue constructs an empty, ready-to-use queue.
func NewShardedQueue() *ShardedQueue {
	return &ShardedQueue{wake: newWakeCoordinator()}
}

// Push enqueues task onto a shard chosen by round-robin among the shards
// effectiveShards(numThreads) currently considers active. numThreads is a
// hint from the caller about current concurrency; a stale hint only costs
// throughput, never correctness.
//
// Push does not itself wake a worker — call NotifyOne (or NotifyAll)
// afterwards so batched producers can amortize wakes if they choose to.
func (q *ShardedQueue) Push(task Task, numThreads int) {
	active := effectiveShards(numThreads)
	mask := int64(active - 1)
	index := q.pushIndex.Add(1) - 1
	index &= mask

	// Must precede the task becoming visible (the totalLen increment
	// below): otherwise a Pop could observe totalLen > 0 before
	// maxShardPushed covers this shard.
	for {
		cur := q.maxShardPushed.Load()
		if index <= cur {
			break
		}
		if q.maxShardPushed.CompareAndSwap(cur, index) {
			break
		}
	}

	q.shards[index].push(task)
	q.totalLen.Add(1)
}

// Pop tries to find and remove one task, scanning shards starting at
// preferredShard and wrapping within the range of shards that have ever
// been pushed to. It never blocks.
func (q *ShardedQueue) Pop(preferredShard int) (Task, bool) {
	if q.totalLen.Load() == 0 {
		return nil, false
	}

	numShardsToCheck := int(q.maxShardPushed.Load()) + 1
	start := preferredShard % numShardsToCheck

	for i := 0; i < numShardsToCheck; i++ {
		idx := (start + i) % numShardsToCheck
		if task, ok := q.shards[idx].pop(); ok {
			q.totalLen.Add(-1)
			return task, true
		}
	}
	return nil, false
}

// NotifyOne wakes one waiting worker, recording a wake token so the waker
// can tell a real notification apart from a spurious condvar wake.
func (q *ShardedQueue) NotifyOne() {
	q.wake.notifyOne()
}

// NotifyAll wakes every waiting worker without recording a token — used on
// Shutdown, since every worker re-checks IsShutdown itself.
func (q *ShardedQueue) NotifyAll() {
	q.wake.notifyAll()
}

// Shutdown marks the queue as shut down and wakes every waiter. Shutdown is
// sticky: once called, IsShutdown always reports true.
func (q *ShardedQueue) Shutdown() {
	q.wake.setShutdown()
}

// IsShutdown reports whether Shutdown has been called.
func (q *ShardedQueue) IsShutdown() bool {
	return q.wake.isShutdown()
}

// Len returns a best-effort snapshot of the total number of queued tasks,
// for observability only — like totalLen itself, it is a hint, not a
// linearizable count.
func (q *ShardedQueue) Len() int {
	return int(q.totalLen.Load())
}

// WaitForTask waits for a task to become available on preferredShard (or
// any other active shard, via Pop's scan), for at most timeout, and reports
// the outcome as a WaitResult.
//
// The scan order is: try Pop immediately; if nothing and not shut down,
// take the condvar mutex and re-check (state may have changed while
// acquiring the lock); if still nothing, block on the condvar until woken
// or timeout; then re-check shutdown, consume a wake token if one is
// pending, and try Pop one more time regardless of whether a token was
// claimed, since another producer may have pushed concurrently with the
// wake. Whether a token was claimed does not affect the result: with no
// task found, the outcome is WaitTimeout if the wait timed out and
// WaitSpurious otherwise.
func (q *ShardedQueue) WaitForTask(preferredShard int, timeout time.Duration) WaitResult {
	if task, ok := q.Pop(preferredShard); ok {
		return WaitResult{Kind: WaitTask, Task: task}
	}

	if q.IsShutdown() {
		return WaitResult{Kind: WaitShutdown}
	}

	q.wake.mu.Lock()

	if q.IsShutdown() {
		q.wake.mu.Unlock()
		return WaitResult{Kind: WaitShutdown}
	}
	if task, ok := q.Pop(preferredShard); ok {
		q.wake.mu.Unlock()
		return WaitResult{Kind: WaitTask, Task: task}
	}

	timedOut := q.wake.waitTimeout(timeout)
	q.wake.mu.Unlock()

	if q.IsShutdown() {
		return WaitResult{Kind: WaitShutdown}
	}

	q.wake.claimToken()

	if task, ok := q.Pop(preferredShard); ok {
		return WaitResult{Kind: WaitTask, Task: task}
	}

	if timedOut {
		return WaitResult{Kind: WaitTimeout}
	}
	return WaitResult{Kind: WaitSpurious}
}

// Drain unconditionally removes every remaining task from every shard,
// calling f on each outside any lock, and is used during shutdown to
// reclaim un-executed tasks. It terminates once every shard reports empty.
func (q *ShardedQueue) Drain(f func(Task)) {
	for i := range q.shards {
		s := &q.shards[i]
		for {
			task, ok := s.popForDrain(&q.totalLen)
			if !ok {
				break
			}
			f(task)
		}
	}
}
