package shardqueue

import (
	"sync"
	"sync/atomic"
	"time"
)

// wakeCoordinator holds the condition variable, its paired mutex, the
// shutdown flag, and the pending-notification counter that together let a
// single condvar carry the "a task was pushed" signal as well as the
// "shut down" signal.
//
// A per-shard condvar would force producers to know which shard a specific
// worker prefers. A single condvar is simpler but loses the information
// that a push happened; numNotify restores it: after a wake, a worker tries
// to claim a token via a decrement-if-positive CAS loop, so each notifyOne
// is consumed by at most one waker. WaitForTask re-scans the queue after
// every wake whether or not a token was claimed, and reports a wake that
// neither timed out nor found a task as spurious.
type wakeCoordinator struct {
	mu       sync.Mutex
	cond     *sync.Cond
	shutdown atomic.Bool
	numNotify atomic.Int64
}

func newWakeCoordinator() *wakeCoordinator {
	w := &wakeCoordinator{}
	w.cond = sync.NewCond(&w.mu)
	return w
}

// notifyOne records one pending wake token and wakes a single waiter.
func (w *wakeCoordinator) notifyOne() {
	w.numNotify.Add(1)
	w.mu.Lock()
	w.cond.Signal()
	w.mu.Unlock()
}

// notifyAll wakes every waiter without touching the token counter — used
// only on shutdown, where every worker will re-check the shutdown flag
// itself rather than rely on a claimed token.
func (w *wakeCoordinator) notifyAll() {
	w.mu.Lock()
	w.cond.Broadcast()
	w.mu.Unlock()
}

func (w *wakeCoordinator) setShutdown() {
	w.shutdown.Store(true)
	w.notifyAll()
}

func (w *wakeCoordinator) isShutdown() bool {
	return w.shutdown.Load()
}

// waitTimeout blocks on the condition variable until woken by notifyOne,
// notifyAll, or until timeout elapses, and reports whether it was the
// timeout that woke it. The caller must already hold w.mu (exactly the
// sync.Cond.Wait contract); the mutex is released while blocked and
// reacquired before this returns. Push never takes it; WaitForTask holds it
// only across its one re-check Pop just before the wait and across the
// wait itself.
//
// sync.Cond has no built-in deadline, so a timer is used to force a wake:
// it fires at most once, takes the same mutex, and broadcasts — which is
// indistinguishable from a real notification to any other waiter, but is
// exactly the "spurious wakeup is acceptable" behavior the design already
// tolerates.
func (w *wakeCoordinator) waitTimeout(timeout time.Duration) (timedOut bool) {
	var fired atomic.Bool
	timer := time.AfterFunc(timeout, func() {
		fired.Store(true)
		w.mu.Lock()
		w.cond.Broadcast()
		w.mu.Unlock()
	})

	w.cond.Wait()
	timer.Stop()

	return fired.Load()
}

// claimToken tries to decrement numNotify by one via a CAS loop that only
// decrements while the counter is positive. It reports whether a token was
// actually claimed; WaitForTask, its only caller, ignores that result and
// classifies its outcome from the timeout and the follow-up Pop alone. The
// counter is never a queued-task count.
func (w *wakeCoordinator) claimToken() bool {
	for {
		cur := w.numNotify.Load()
		if cur == 0 {
			return false
		}
		if w.numNotify.CompareAndSwap(cur, cur-1) {
			return true
		}
	}
}
