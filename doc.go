// Package fastbloom provides fast bloom filter and counting bloom
// filter implementations for Go.
//
// A bloom filter is a space-efficient probabilistic data structure that
// tests whether an element is a member of a set. False positive matches
// are possible, but false negatives are not – if the filter says an
// element is not present, it definitely is not. If it says an element
// might be present, it could be a false positive.
//
// # Architecture
//
// All filters share one flat bit (or counter) array and one hashing
// scheme: each key is hashed exactly once with xxh3, and the 64-bit
// digest is expanded into k probe positions via double hashing
// (h1 + i*h2 mod m, "Less Hashing, Same Performance"). Membership
// operations therefore cost a single hash computation regardless of k.
//
// # Implementations
//
// [BloomFilter] is the classic filter for single-threaded workloads.
// Besides Add/Contains it supports set algebra ([BloomFilter.Union],
// [BloomFilter.Intersect]) between filters built with identical
// parameters, and raw bitmap interop ([BloomFilter.Bytes], [FromBitmap])
// for exchanging filters with other systems.
//
// [CountingBloomFilter] replaces each bit with a saturating 4-bit
// counter, which makes [CountingBloomFilter.Remove] possible at four
// times the memory cost. Counters saturate at 15 and never wrap, so a
// full counter can under-remove but never produce a false negative for
// elements still present.
//
// [AtomicBloomFilter] provides thread-safety using lock-free atomic
// operations. Multiple goroutines can safely call Add and Contains
// concurrently. It uses [sync/atomic.Uint64.Or] (Go 1.23+) for
// efficient atomic bit-setting.
//
// [ShardedAtomicFilter] distributes keys across multiple independent
// shards to reduce contention under heavy parallel writes. The shard
// count is auto-tuned to GOMAXPROCS by default.
//
// # Choosing Parameters
//
// Use [NewBloomFilter], [NewCountingBloomFilter], or [NewAtomic] with
// your expected number of elements and desired false positive rate:
//
//	// Filter for 1 million elements with 1% false positive rate
//	f := fastbloom.NewBloomFilter(1_000_000, 0.01)
//
// The constructors automatically calculate the optimal filter size and
// number of hash probes. [FilterBuilder] gives explicit control over
// size, hash count, and counting filter insert semantics, and
// [FromSizeAndHashes] builds directly from explicit dimensions.
//
// When the number of elements is unknown ahead of time, feed a first
// pass of the stream through a [CardinalityEstimator] and size the
// filter from its estimate.
//
// # False Positive Rate
//
// The false positive rate depends on the filter size, the number of
// hash probes, and the number of elements added. A filter filled to
// its intended capacity achieves approximately the target rate; adding
// more elements degrades it. Use
// [BloomFilter.EstimatedFalsePositiveRate] to monitor the current rate.
//
// # Memory Usage
//
// For a plain filter sized for n elements with false positive rate p:
//
//	memory_bits ≈ -n * ln(p) / (ln(2))²
//
// Example: 1 million elements at 1% FP rate ≈ 1.2 MB. A counting
// filter with the same parameters uses four times that.
//
// # Thread Safety
//
// [BloomFilter] and [CountingBloomFilter] are NOT thread-safe. Use
// external synchronization or choose [AtomicBloomFilter] or
// [ShardedAtomicFilter] for concurrent access.
//
// The ContainsThenAdd methods of the atomic filters are NOT a single
// atomic operation – there is a race window between the check and the
// add. Use them for best-effort deduplication, not strict mutual
// exclusion.
//
// # References
//
//   - Space/Time Trade-offs in Hash Coding with Allowable Errors (Bloom, 1970)
//   - Less Hashing, Same Performance: https://www.eecs.harvard.edu/~michaelm/postscripts/rsa2008.pdf
//   - Summary Cache (counting bloom filters): https://pages.cs.wisc.edu/~jussara/papers/00ton.pdf
package fastbloom
