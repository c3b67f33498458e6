package parallel

import (
	"runtime"
	"sync/atomic"
	"testing"
)

func TestWorkers(t *testing.T) {
	tests := []struct {
		workers, n, want int
	}{
		{4, 100, 4},
		{8, 3, 3},
		{1, 0, 1},
		{0, 1 << 20, runtime.GOMAXPROCS(0)},
		{-2, 1 << 20, runtime.GOMAXPROCS(0)},
	}
	for _, tt := range tests {
		if got := Workers(tt.workers, tt.n); got != tt.want {
			t.Errorf("Workers(%d, %d) = %d, want %d", tt.workers, tt.n, got, tt.want)
		}
	}
}

func TestRows_EachRowOnce(t *testing.T) {
	for _, workers := range []int{1, 2, 7, 0} {
		const n = 1000
		var hits [n]atomic.Int32

		Rows(n, workers, func(row int) {
			hits[row].Add(1)
		})

		for i := range hits {
			if got := hits[i].Load(); got != 1 {
				t.Fatalf("workers=%d: row %d ran %d times, want 1", workers, i, got)
			}
		}
	}
}

func TestRows_Empty(t *testing.T) {
	called := false
	Rows(0, 4, func(int) { called = true })
	Rows(-3, 4, func(int) { called = true })
	if called {
		t.Error("Rows with n <= 0 should not call fn")
	}
}

func TestChunks_CoverRange(t *testing.T) {
	tests := []struct {
		n, size int
	}{
		{10, 3},
		{10, 10},
		{10, 100},
		{7, 0},
		{1, 1},
	}
	for _, tt := range tests {
		covered := make([]atomic.Int32, tt.n)
		var chunks atomic.Int32

		Chunks(tt.n, tt.size, 4, func(lo, hi int) {
			chunks.Add(1)
			if lo >= hi {
				t.Errorf("Chunks(%d, %d): empty range [%d, %d)", tt.n, tt.size, lo, hi)
			}
			for i := lo; i < hi; i++ {
				covered[i].Add(1)
			}
		})

		for i := range covered {
			if covered[i].Load() != 1 {
				t.Errorf("Chunks(%d, %d): index %d covered %d times", tt.n, tt.size, i, covered[i].Load())
			}
		}
		size := max(tt.size, 1)
		if want := int32((tt.n + size - 1) / size); chunks.Load() != want {
			t.Errorf("Chunks(%d, %d) made %d chunks, want %d", tt.n, tt.size, chunks.Load(), want)
		}
	}
}

func BenchmarkRows(b *testing.B) {
	var sink atomic.Int64
	b.ReportAllocs()
	for b.Loop() {
		Rows(1024, 0, func(row int) { sink.Add(int64(row)) })
	}
}
