package fastbloom

import (
	"math/bits"
	"runtime"
	"sync/atomic"
)

// AtomicBloomFilter is a thread-safe bloom filter using atomic
// operations. It has the same flat layout and probing scheme as
// BloomFilter but stores its words as atomic.Uint64, so multiple
// goroutines can Add and Contains concurrently without locks.
type AtomicBloomFilter struct {
	words  []atomic.Uint64
	size   uint64        // Number of bits, always a multiple of 64
	hashes uint32        // Number of hash probes per element
	count  atomic.Uint64 // Number of elements added (approximate)
}

// NewAtomic creates a thread-safe bloom filter optimized for the
// expected number of elements and desired false positive rate.
func NewAtomic(expectedElements uint64, fpRate float64) *AtomicBloomFilter {
	return NewFilterBuilder(expectedElements, fpRate).BuildAtomicBloomFilter()
}

func newAtomicBloomFilter(size uint64, hashes uint32) *AtomicBloomFilter {
	return &AtomicBloomFilter{
		words:  make([]atomic.Uint64, size/wordBits),
		size:   size,
		hashes: hashes,
	}
}

// Add adds data to the filter atomically.
func (f *AtomicBloomFilter) Add(data []byte) {
	h1, h2 := hashData(data)
	f.addWithHash(h1, h2)
}

// AddString adds a string to the filter atomically without allocating.
func (f *AtomicBloomFilter) AddString(s string) {
	h1, h2 := hashString(s)
	f.addWithHash(h1, h2)
}

func (f *AtomicBloomFilter) addWithHash(h1, h2 uint64) {
	for i := uint32(0); i < f.hashes; i++ {
		pos := probe(h1, h2, i, f.size)
		// Atomic OR - most efficient on Go 1.23+
		f.words[pos>>6].Or(1 << (pos & 63))
	}
	f.count.Add(1)
}

// Contains checks if data might be in the filter. This operation is
// safe to call concurrently with Add.
func (f *AtomicBloomFilter) Contains(data []byte) bool {
	h1, h2 := hashData(data)
	return f.containsWithHash(h1, h2)
}

// ContainsString checks if a string might be in the filter.
func (f *AtomicBloomFilter) ContainsString(s string) bool {
	h1, h2 := hashString(s)
	return f.containsWithHash(h1, h2)
}

func (f *AtomicBloomFilter) containsWithHash(h1, h2 uint64) bool {
	for i := uint32(0); i < f.hashes; i++ {
		pos := probe(h1, h2, i, f.size)
		if f.words[pos>>6].Load()&(1<<(pos&63)) == 0 {
			return false
		}
	}
	return true
}

// ContainsThenAdd adds data and reports whether it was already present.
// The check and the add are not one atomic operation - there is a race
// window between them. Use it for best-effort deduplication, not
// strict mutual exclusion.
func (f *AtomicBloomFilter) ContainsThenAdd(data []byte) bool {
	h1, h2 := hashData(data)
	present := f.containsWithHash(h1, h2)
	f.addWithHash(h1, h2)
	return present
}

// ContainsThenAddString adds a string and reports whether it was
// already present. See ContainsThenAdd for the race caveat.
func (f *AtomicBloomFilter) ContainsThenAddString(s string) bool {
	h1, h2 := hashString(s)
	present := f.containsWithHash(h1, h2)
	f.addWithHash(h1, h2)
	return present
}

// Clear removes all elements from the filter. It is not atomic with
// respect to concurrent Adds: bits set during the sweep may survive.
func (f *AtomicBloomFilter) Clear() {
	for i := range f.words {
		f.words[i].Store(0)
	}
	f.count.Store(0)
}

// Size returns the size of the filter in bits.
func (f *AtomicBloomFilter) Size() uint64 {
	return f.size
}

// Hashes returns the number of hash probes per element.
func (f *AtomicBloomFilter) Hashes() uint32 {
	return f.hashes
}

// Count returns the approximate number of elements added.
func (f *AtomicBloomFilter) Count() uint64 {
	return f.count.Load()
}

// Snapshot captures the current contents as a plain BloomFilter.
// Concurrent Adds during the snapshot may be partially included.
func (f *AtomicBloomFilter) Snapshot() *BloomFilter {
	snap := &BloomFilter{
		bits:   newBitVec(f.size),
		size:   f.size,
		hashes: f.hashes,
		count:  f.count.Load(),
	}
	for i := range f.words {
		snap.bits.words[i] = f.words[i].Load()
	}
	return snap
}

// EstimatedFillRatio estimates the proportion of bits that are set.
func (f *AtomicBloomFilter) EstimatedFillRatio() float64 {
	var setBits uint64
	for i := range f.words {
		setBits += uint64(bits.OnesCount64(f.words[i].Load()))
	}
	return float64(setBits) / float64(f.size)
}

// EstimatedFalsePositiveRate estimates the current false positive rate.
func (f *AtomicBloomFilter) EstimatedFalsePositiveRate() float64 {
	return EstimateFalsePositiveRate(f.size, f.hashes, f.count.Load())
}

// ShardedAtomicFilter is a thread-safe bloom filter that distributes
// writes across multiple shards to reduce contention under parallel
// workloads. Each shard is an independent AtomicBloomFilter, and keys
// are consistently routed to shards based on their hash.
type ShardedAtomicFilter struct {
	shards    []*AtomicBloomFilter
	numShards uint64
	mask      uint64 // numShards - 1, for fast modulo
}

// NewShardedAtomic creates a new sharded thread-safe bloom filter.
// numShards must be a power of 2 (will be rounded up if not).
// The total capacity is distributed evenly across shards.
func NewShardedAtomic(expectedElements uint64, fpRate float64, numShards uint64) *ShardedAtomicFilter {
	// Round up to power of 2 (nextPowerOf2 always returns >= 1)
	numShards = nextPowerOf2(numShards)

	// Distribute capacity across shards
	elementsPerShard := (expectedElements + numShards - 1) / numShards

	shards := make([]*AtomicBloomFilter, numShards)
	for i := range shards {
		shards[i] = NewAtomic(elementsPerShard, fpRate)
	}

	return &ShardedAtomicFilter{
		shards:    shards,
		numShards: numShards,
		mask:      numShards - 1,
	}
}

// NewShardedAtomicDefault creates a sharded filter with a number of
// shards automatically tuned to the current GOMAXPROCS value. This
// provides good parallel performance without over-sharding on smaller
// machines.
func NewShardedAtomicDefault(expectedElements uint64, fpRate float64) *ShardedAtomicFilter {
	numShards := max(uint64(runtime.GOMAXPROCS(0)), 4)
	return NewShardedAtomic(expectedElements, fpRate, numShards)
}

// Add adds data to the filter.
func (f *ShardedAtomicFilter) Add(data []byte) {
	h := hashRaw(data)
	h1, h2 := splitHash(h)
	f.shards[f.shardIndex(h)].addWithHash(h1, h2)
}

// AddString adds a string to the filter without allocating.
func (f *ShardedAtomicFilter) AddString(s string) {
	h := hashRawString(s)
	h1, h2 := splitHash(h)
	f.shards[f.shardIndex(h)].addWithHash(h1, h2)
}

// Contains checks if data might be in the filter.
func (f *ShardedAtomicFilter) Contains(data []byte) bool {
	h := hashRaw(data)
	h1, h2 := splitHash(h)
	return f.shards[f.shardIndex(h)].containsWithHash(h1, h2)
}

// ContainsString checks if a string might be in the filter.
func (f *ShardedAtomicFilter) ContainsString(s string) bool {
	h := hashRawString(s)
	h1, h2 := splitHash(h)
	return f.shards[f.shardIndex(h)].containsWithHash(h1, h2)
}

// ContainsThenAdd adds data and reports whether it was already present.
// See AtomicBloomFilter.ContainsThenAdd for the race caveat.
func (f *ShardedAtomicFilter) ContainsThenAdd(data []byte) bool {
	h := hashRaw(data)
	h1, h2 := splitHash(h)
	shard := f.shards[f.shardIndex(h)]
	present := shard.containsWithHash(h1, h2)
	shard.addWithHash(h1, h2)
	return present
}

// ContainsThenAddString adds a string and reports whether it was
// already present. See AtomicBloomFilter.ContainsThenAdd for the race
// caveat.
func (f *ShardedAtomicFilter) ContainsThenAddString(s string) bool {
	h := hashRawString(s)
	h1, h2 := splitHash(h)
	shard := f.shards[f.shardIndex(h)]
	present := shard.containsWithHash(h1, h2)
	shard.addWithHash(h1, h2)
	return present
}

// shardIndex extracts the shard index from a hash value. It uses the
// upper 32 bits so that routing stays clear of the low bits that
// dominate small-filter probing.
func (f *ShardedAtomicFilter) shardIndex(h uint64) uint64 {
	return (h >> 32) & f.mask
}

// Clear removes all elements from every shard.
func (f *ShardedAtomicFilter) Clear() {
	for _, shard := range f.shards {
		shard.Clear()
	}
}

// Size returns the total size of all shards in bits.
func (f *ShardedAtomicFilter) Size() uint64 {
	var total uint64
	for _, shard := range f.shards {
		total += shard.Size()
	}
	return total
}

// Hashes returns the number of hash probes used per shard.
func (f *ShardedAtomicFilter) Hashes() uint32 {
	return f.shards[0].Hashes()
}

// Count returns the approximate total number of elements added.
func (f *ShardedAtomicFilter) Count() uint64 {
	var total uint64
	for _, shard := range f.shards {
		total += shard.Count()
	}
	return total
}

// NumShards returns the number of shards.
func (f *ShardedAtomicFilter) NumShards() uint64 {
	return f.numShards
}

// EstimatedFillRatio estimates the average fill ratio across all shards.
func (f *ShardedAtomicFilter) EstimatedFillRatio() float64 {
	var totalBits, setBits uint64
	for _, shard := range f.shards {
		totalBits += shard.Size()
		setBits += uint64(float64(shard.Size()) * shard.EstimatedFillRatio())
	}
	// totalBits is always > 0 since shards always have capacity
	return float64(setBits) / float64(totalBits)
}

// EstimatedFalsePositiveRate estimates the current false positive rate.
// For sharded filters, this is approximately the average across shards.
func (f *ShardedAtomicFilter) EstimatedFalsePositiveRate() float64 {
	var sum float64
	for _, shard := range f.shards {
		sum += shard.EstimatedFalsePositiveRate()
	}
	return sum / float64(f.numShards)
}

// nextPowerOf2 returns the smallest power of 2 >= n.
func nextPowerOf2(n uint64) uint64 {
	if n == 0 {
		return 1
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return n + 1
}
