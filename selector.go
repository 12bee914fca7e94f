package shardqueue

// NumShards is the fixed number of shards a ShardedQueue allocates. Must be
// a power of two.
const NumShards = 16

// effectiveShards returns the number of shards that should be active given
// the current producer/worker thread count. Fewer active shards at low
// concurrency keeps the hot shards' memory in one core's cache and shortens
// Pop's scan; the table only ever yields powers of two so that (active - 1)
// is always usable as a mask.
func effectiveShards(numThreads int) int {
	switch {
	case numThreads <= 2:
		return 2
	case numThreads <= 4:
		return 4
	case numThreads <= 8:
		return 8
	default:
		return NumShards
	}
}
