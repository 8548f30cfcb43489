package benchmarks

import (
	"fmt"
	"sync"
	"testing"

	bab "github.com/bits-and-blooms/bloom/v3"
	"github.com/cespare/xxhash/v2"
	atomicbloom "github.com/ericvolp12/atomic-bloom"
	"github.com/greatroar/blobloom"
	"github.com/s3bk/fastbloom"
)

const (
	benchItems  = 1_000_000
	benchFPRate = 0.01
)

// Pre-generate test data to avoid measuring string generation
var testKeys [][]byte
var testKeysStr []string

func init() {
	testKeys = make([][]byte, benchItems)
	testKeysStr = make([]string, benchItems)
	for i := range benchItems {
		s := fmt.Sprintf("key-%d", i)
		testKeys[i] = []byte(s)
		testKeysStr[i] = s
	}
}

// ============================================================================
// Sequential Add Benchmarks
// ============================================================================

func BenchmarkAddSequential_Fastbloom(b *testing.B) {
	f := fastbloom.NewBloomFilter(benchItems, benchFPRate)
	b.ResetTimer()
	for i := range b.N {
		f.Add(testKeys[i%benchItems])
	}
}

func BenchmarkAddSequential_FastbloomString(b *testing.B) {
	f := fastbloom.NewBloomFilter(benchItems, benchFPRate)
	b.ResetTimer()
	for i := range b.N {
		f.AddString(testKeysStr[i%benchItems])
	}
}

func BenchmarkAddSequential_FastbloomAtomic(b *testing.B) {
	f := fastbloom.NewAtomic(benchItems, benchFPRate)
	b.ResetTimer()
	for i := range b.N {
		f.Add(testKeys[i%benchItems])
	}
}

func BenchmarkAddSequential_FastbloomCounting(b *testing.B) {
	f := fastbloom.NewCountingBloomFilter(benchItems, benchFPRate)
	b.ResetTimer()
	for i := range b.N {
		f.Add(testKeys[i%benchItems])
	}
}

func BenchmarkAddSequential_BitsAndBlooms(b *testing.B) {
	f := bab.NewWithEstimates(benchItems, benchFPRate)
	b.ResetTimer()
	for i := range b.N {
		f.Add(testKeys[i%benchItems])
	}
}

func BenchmarkAddSequential_AtomicBloom(b *testing.B) {
	f := atomicbloom.NewWithEstimates(benchItems, benchFPRate)
	b.ResetTimer()
	for i := range b.N {
		f.Add(testKeys[i%benchItems])
	}
}

func BenchmarkAddSequential_Blobloom(b *testing.B) {
	f := blobloom.NewOptimized(blobloom.Config{
		Capacity: benchItems,
		FPRate:   benchFPRate,
	})
	b.ResetTimer()
	for i := range b.N {
		// blobloom requires pre-hashing
		h := xxhash.Sum64(testKeys[i%benchItems])
		f.Add(h)
	}
}

// ============================================================================
// Sequential Contains Benchmarks
// ============================================================================

func BenchmarkContainsSequential_Fastbloom(b *testing.B) {
	f := fastbloom.NewBloomFilter(benchItems, benchFPRate)
	for i := range benchItems {
		f.Add(testKeys[i])
	}
	b.ResetTimer()
	for i := range b.N {
		f.Contains(testKeys[i%benchItems])
	}
}

func BenchmarkContainsSequential_FastbloomString(b *testing.B) {
	f := fastbloom.NewBloomFilter(benchItems, benchFPRate)
	for i := range benchItems {
		f.Add(testKeys[i])
	}
	b.ResetTimer()
	for i := range b.N {
		f.ContainsString(testKeysStr[i%benchItems])
	}
}

func BenchmarkContainsSequential_FastbloomAtomic(b *testing.B) {
	f := fastbloom.NewAtomic(benchItems, benchFPRate)
	for i := range benchItems {
		f.Add(testKeys[i])
	}
	b.ResetTimer()
	for i := range b.N {
		f.Contains(testKeys[i%benchItems])
	}
}

func BenchmarkContainsSequential_FastbloomCounting(b *testing.B) {
	f := fastbloom.NewCountingBloomFilter(benchItems, benchFPRate)
	for i := range benchItems {
		f.Add(testKeys[i])
	}
	b.ResetTimer()
	for i := range b.N {
		f.Contains(testKeys[i%benchItems])
	}
}

func BenchmarkContainsSequential_BitsAndBlooms(b *testing.B) {
	f := bab.NewWithEstimates(benchItems, benchFPRate)
	for i := range benchItems {
		f.Add(testKeys[i])
	}
	b.ResetTimer()
	for i := range b.N {
		f.Test(testKeys[i%benchItems])
	}
}

func BenchmarkContainsSequential_AtomicBloom(b *testing.B) {
	f := atomicbloom.NewWithEstimates(benchItems, benchFPRate)
	for i := range benchItems {
		f.Add(testKeys[i])
	}
	b.ResetTimer()
	for i := range b.N {
		f.Test(testKeys[i%benchItems])
	}
}

func BenchmarkContainsSequential_Blobloom(b *testing.B) {
	f := blobloom.NewOptimized(blobloom.Config{
		Capacity: benchItems,
		FPRate:   benchFPRate,
	})
	// Pre-hash keys for fair comparison
	hashes := make([]uint64, benchItems)
	for i := range benchItems {
		hashes[i] = xxhash.Sum64(testKeys[i])
		f.Add(hashes[i])
	}
	b.ResetTimer()
	for i := range b.N {
		f.Has(hashes[i%benchItems])
	}
}

// ============================================================================
// Parallel Add Benchmarks
// ============================================================================

func BenchmarkAddParallel_FastbloomAtomic(b *testing.B) {
	f := fastbloom.NewAtomic(benchItems, benchFPRate)
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			f.Add(testKeys[i%benchItems])
			i++
		}
	})
}

func BenchmarkAddParallel_FastbloomSharded(b *testing.B) {
	f := fastbloom.NewShardedAtomicDefault(benchItems, benchFPRate)
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			f.Add(testKeys[i%benchItems])
			i++
		}
	})
}

func BenchmarkAddParallel_AtomicBloom(b *testing.B) {
	f := atomicbloom.NewWithEstimates(benchItems, benchFPRate)
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			f.Add(testKeys[i%benchItems])
			i++
		}
	})
}

// ============================================================================
// Parallel Contains Benchmarks
// ============================================================================

func BenchmarkContainsParallel_FastbloomAtomic(b *testing.B) {
	f := fastbloom.NewAtomic(benchItems, benchFPRate)
	for i := range benchItems {
		f.Add(testKeys[i])
	}
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			f.Contains(testKeys[i%benchItems])
			i++
		}
	})
}

func BenchmarkContainsParallel_FastbloomSharded(b *testing.B) {
	f := fastbloom.NewShardedAtomicDefault(benchItems, benchFPRate)
	for i := range benchItems {
		f.Add(testKeys[i])
	}
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			f.Contains(testKeys[i%benchItems])
			i++
		}
	})
}

func BenchmarkContainsParallel_AtomicBloom(b *testing.B) {
	f := atomicbloom.NewWithEstimates(benchItems, benchFPRate)
	for i := range benchItems {
		f.Add(testKeys[i])
	}
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			f.Test(testKeys[i%benchItems])
			i++
		}
	})
}

// ============================================================================
// Mixed Read/Write Benchmarks (50/50 split)
// ============================================================================

func BenchmarkMixed_FastbloomAtomic(b *testing.B) {
	f := fastbloom.NewAtomic(benchItems, benchFPRate)
	// Pre-populate half
	for i := 0; i < benchItems/2; i++ {
		f.Add(testKeys[i])
	}
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			if i%2 == 0 {
				f.Add(testKeys[(benchItems/2+i)%benchItems])
			} else {
				f.Contains(testKeys[i%benchItems])
			}
			i++
		}
	})
}

func BenchmarkMixed_FastbloomSharded(b *testing.B) {
	f := fastbloom.NewShardedAtomicDefault(benchItems, benchFPRate)
	for i := 0; i < benchItems/2; i++ {
		f.Add(testKeys[i])
	}
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			if i%2 == 0 {
				f.Add(testKeys[(benchItems/2+i)%benchItems])
			} else {
				f.Contains(testKeys[i%benchItems])
			}
			i++
		}
	})
}

func BenchmarkMixed_AtomicBloom(b *testing.B) {
	f := atomicbloom.NewWithEstimates(benchItems, benchFPRate)
	for i := 0; i < benchItems/2; i++ {
		f.Add(testKeys[i])
	}
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			if i%2 == 0 {
				f.Add(testKeys[(benchItems/2+i)%benchItems])
			} else {
				f.Test(testKeys[i%benchItems])
			}
			i++
		}
	})
}

// ============================================================================
// Memory Allocation Benchmarks
// ============================================================================

func BenchmarkAddAlloc_Fastbloom(b *testing.B) {
	f := fastbloom.NewBloomFilter(benchItems, benchFPRate)
	b.ReportAllocs()
	b.ResetTimer()
	for i := range b.N {
		f.Add(testKeys[i%benchItems])
	}
}

func BenchmarkAddAlloc_FastbloomString(b *testing.B) {
	f := fastbloom.NewBloomFilter(benchItems, benchFPRate)
	b.ReportAllocs()
	b.ResetTimer()
	for i := range b.N {
		f.AddString(testKeysStr[i%benchItems])
	}
}

func BenchmarkAddAlloc_BitsAndBlooms(b *testing.B) {
	f := bab.NewWithEstimates(benchItems, benchFPRate)
	b.ReportAllocs()
	b.ResetTimer()
	for i := range b.N {
		f.Add(testKeys[i%benchItems])
	}
}

// ============================================================================
// High Contention Benchmarks
// ============================================================================

func BenchmarkHighContention_FastbloomAtomic(b *testing.B) {
	// Use a small filter to maximize contention
	f := fastbloom.NewAtomic(1000, benchFPRate)
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			// All goroutines hammer the same few words
			f.Add(testKeys[i%1000])
			i++
		}
	})
}

func BenchmarkHighContention_FastbloomSharded(b *testing.B) {
	f := fastbloom.NewShardedAtomicDefault(1000, benchFPRate)
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			f.Add(testKeys[i%1000])
			i++
		}
	})
}

func BenchmarkHighContention_AtomicBloom(b *testing.B) {
	f := atomicbloom.NewWithEstimates(1000, benchFPRate)
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			f.Add(testKeys[i%1000])
			i++
		}
	})
}

// ============================================================================
// Throughput Test (items per second)
// ============================================================================

func BenchmarkThroughput_FastbloomAtomic(b *testing.B) {
	const goroutines = 8
	const itemsPerGoroutine = 100000

	f := fastbloom.NewAtomic(uint64(goroutines*itemsPerGoroutine), benchFPRate)

	b.ResetTimer()
	for range b.N {
		var wg sync.WaitGroup
		wg.Add(goroutines)
		for g := range goroutines {
			go func(gid int) {
				defer wg.Done()
				base := gid * itemsPerGoroutine
				for i := range itemsPerGoroutine {
					f.Add(testKeys[(base+i)%benchItems])
				}
			}(g)
		}
		wg.Wait()
	}
	b.ReportMetric(float64(goroutines*itemsPerGoroutine), "items/op")
}

func BenchmarkThroughput_FastbloomSharded(b *testing.B) {
	const goroutines = 8
	const itemsPerGoroutine = 100000

	f := fastbloom.NewShardedAtomicDefault(uint64(goroutines*itemsPerGoroutine), benchFPRate)

	b.ResetTimer()
	for range b.N {
		var wg sync.WaitGroup
		wg.Add(goroutines)
		for g := range goroutines {
			go func(gid int) {
				defer wg.Done()
				base := gid * itemsPerGoroutine
				for i := range itemsPerGoroutine {
					f.Add(testKeys[(base+i)%benchItems])
				}
			}(g)
		}
		wg.Wait()
	}
	b.ReportMetric(float64(goroutines*itemsPerGoroutine), "items/op")
}
