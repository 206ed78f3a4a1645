package list

import (
	"fmt"
	"testing"

	"github.com/tujuhre12/vlist/internal/vlist/scroll"
)

func newBenchList(b *testing.B, size int) *Model[*row] {
	b.Helper()
	l, err := New(rowKey, renderRow, WithSize(80, 30), WithConfig(testConfig(3, 30)))
	if err != nil {
		b.Fatal(err)
	}
	l.SetDataSource(makeRows(size, 3))
	return l
}

// BenchmarkSetDataSource measures the first layout of data sets of
// different sizes.
func BenchmarkSetDataSource(b *testing.B) {
	sizes := []int{100, 1000, 10_000, 100_000}

	for _, size := range sizes {
		b.Run(fmt.Sprintf("Items_%d", size), func(b *testing.B) {
			rows := makeRows(size, 3)
			l := newBenchList(b, 0)

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				l.SetDataSource(rows)
			}
		})
	}
}

// BenchmarkScrollBy measures small incremental scrolls.
func BenchmarkScrollBy(b *testing.B) {
	sizes := []int{1000, 100_000}

	for _, size := range sizes {
		b.Run(fmt.Sprintf("Items_%d", size), func(b *testing.B) {
			l := newBenchList(b, size)

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				l.ScrollBy(10, false)
				l.ScrollBy(-10, false)
			}
		})
	}
}

// BenchmarkScrollToIndex measures jumps across the whole data set.
func BenchmarkScrollToIndex(b *testing.B) {
	l := newBenchList(b, 100_000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		l.ScrollToIndex((i*7919)%100_000, scroll.Options{Alignment: scroll.AlignCenter})
	}
}

func BenchmarkView(b *testing.B) {
	l := newBenchList(b, 100_000)
	l.ScrollToIndex(50_000, scroll.Options{})

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = l.View()
	}
}
