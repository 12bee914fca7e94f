package shardqueue

import "testing"

func TestEffectiveShards(t *testing.T) {
	cases := []struct {
		numThreads int
		want       int
	}{
		{0, 2},
		{1, 2},
		{2, 2},
		{3, 4},
		{4, 4},
		{5, 8},
		{6, 8},
		{7, 8},
		{8, 8},
		{9, 16},
		{100, 16},
	}

	for _, c := range cases {
		got := effectiveShards(c.numThreads)
		if got != c.want {
			t.Errorf("effectiveShards(%d) = %d, want %d", c.numThreads, got, c.want)
		}
		if got&(got-1) != 0 {
			t.Errorf("effectiveShards(%d) = %d is not a power of two", c.numThreads, got)
		}
		if got > NumShards {
			t.Errorf("effectiveShards(%d) = %d exceeds NumShards (%d)", c.numThreads, got, NumShards)
		}
	}
}
