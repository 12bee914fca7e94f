package shardqueue

import (
	"sync/atomic"

	"github.com/gammazero/deque"
)

// shard is a single lock-protected FIFO of tasks, plus an atomic length
// cache that lets Pop probe emptiness without taking the lock.
//
// The underlying FIFO is a gammazero/deque.Deque rather than a hand-rolled
// ring buffer: it gives O(1) amortized push-back/pop-front with none of the
// slice-growth bookkeeping a hand-rolled queue would need. The lock itself
// is spinLocker rather than sync.Mutex, since every critical section here
// is a deque operation plus an atomic store — never long enough to be
// worth parking a goroutine over.
type shard struct {
	mu    spinLocker
	queue deque.Deque[Task]
	len   atomic.Int64
}

// push appends a task to the back of the shard's queue.
func (s *shard) push(task Task) {
	s.mu.Lock()
	s.queue.PushBack(task)
	// Store the post-mutation length before releasing the mutex, so that
	// any reader observing len == 0 afterwards is guaranteed no task is
	// presently enqueued here.
	s.len.Store(int64(s.queue.Len()))
	s.mu.Unlock()
}

// pop removes and returns the task at the front of the shard's queue, or
// reports false if the shard is empty. The length check is a lock-free
// fast path: it may lag the true length only in the direction of appearing
// non-empty when empty, never the reverse.
func (s *shard) pop() (Task, bool) {
	if s.len.Load() == 0 {
		return nil, false
	}

	s.mu.Lock()
	if s.queue.Len() == 0 {
		s.mu.Unlock()
		return nil, false
	}
	task := s.queue.PopFront()
	s.len.Store(int64(s.queue.Len()))
	s.mu.Unlock()
	return task, true
}

// popForDrain unconditionally locks and pops the front task, updating both
// the shard's own length cache and the queue-wide total under the same
// critical section, matching push/pop's rule of never holding two mutexes
// at once (totalLen is an atomic counter, not a mutex).
func (s *shard) popForDrain(totalLen *atomic.Int64) (Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.queue.Len() == 0 {
		return nil, false
	}
	task := s.queue.PopFront()
	s.len.Store(int64(s.queue.Len()))
	totalLen.Add(-1)
	return task, true
}
