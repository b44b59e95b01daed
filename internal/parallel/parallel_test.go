package parallel

import (
	"sync/atomic"
	"testing"
)

func TestFor(t *testing.T) {
	cfg := DefaultConfig()

	var counter int64
	n := 5000

	For(n, func(_ int) {
		atomic.AddInt64(&counter, 1)
	}, cfg)

	if counter != int64(n) {
		t.Errorf("Expected %d, got %d", n, counter)
	}
}

func TestForCoversEveryIndexOnce(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinChunkSize = 10

	n := 1000
	hits := make([]int32, n)
	For(n, func(i int) {
		atomic.AddInt32(&hits[i], 1)
	}, cfg)

	for i, h := range hits {
		if h != 1 {
			t.Errorf("index %d visited %d times", i, h)
		}
	}
}

func TestForSmallInputStaysSequential(t *testing.T) {
	cfg := DefaultConfig()

	// Below the chunk threshold everything runs on the calling goroutine,
	// so unsynchronized writes are safe.
	n := 100
	out := make([]int, n)
	For(n, func(i int) {
		out[i] = i * i
	}, cfg)

	for i := range out {
		if out[i] != i*i {
			t.Errorf("out[%d] = %d, want %d", i, out[i], i*i)
		}
	}
}

func TestForRange(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinChunkSize = 16

	n := 1234
	var covered int64
	ForRange(n, func(start, end int) {
		if start < 0 || end > n || start >= end {
			t.Errorf("bad chunk [%d, %d)", start, end)
		}
		atomic.AddInt64(&covered, int64(end-start))
	}, cfg)

	if covered != int64(n) {
		t.Errorf("covered %d elements, want %d", covered, n)
	}
}

func TestForZeroElements(t *testing.T) {
	cfg := DefaultConfig()
	called := false
	For(0, func(_ int) { called = true }, cfg)
	if called {
		t.Error("callback invoked for empty range")
	}
}
