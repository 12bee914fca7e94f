// Copyright 2019-2020 Moritz Fain
// Moritz Fain <moritz@fain.io>
//
// Source available at github.com/maurice2k/ultrapool,
// licensed under the MIT license (see LICENSE file).

package shardqueue

import (
	"runtime"
	"sync/atomic"
)

// spinLocker is a tight CAS spin lock, cheaper than sync.Mutex under the
// very short, low-contention critical sections a shard's push/pop guards:
// a deque append/pop and an atomic store, never a blocking call. Carried
// over from ultrapool's worker pool, which used the same trade-off to
// protect its per-shard idle-worker bookkeeping.
type spinLocker struct {
	lock uint64
}

func (s *spinLocker) Lock() {
	for !atomic.CompareAndSwapUint64(&s.lock, 0, 1) {
		runtime.Gosched()
	}
}

func (s *spinLocker) Unlock() {
	atomic.StoreUint64(&s.lock, 0)
}
