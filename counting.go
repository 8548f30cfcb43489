package fastbloom

// CountingBloomFilter is a non-thread-safe counting bloom filter. It
// replaces each bit of a plain filter with a saturating 4-bit counter,
// which makes element removal possible at four times the memory cost.
//
// Counters saturate at 15 and never wrap. A counter that has saturated
// stays at 15 through removals of other elements that hash onto it, so
// heavily loaded filters can under-remove but never produce a false
// negative for elements still present.
type CountingBloomFilter struct {
	counters     *countingVec
	size         uint64 // Number of counters, always a multiple of 64
	hashes       uint32 // Number of hash probes per element
	repeatInsert bool   // Whether re-adding a contained element increments again
	count        uint64 // Number of elements added (approximate)
}

// NewCountingBloomFilter creates a counting bloom filter optimized for
// the expected number of elements and desired false positive rate,
// with repeat insert enabled.
func NewCountingBloomFilter(expectedElements uint64, fpRate float64) *CountingBloomFilter {
	return NewFilterBuilder(expectedElements, fpRate).BuildCountingBloomFilter()
}

// Add adds data to the filter and reports whether counters were
// incremented. With repeat insert disabled, adding data that is
// already contained is a no-op and returns false.
func (f *CountingBloomFilter) Add(data []byte) bool {
	h1, h2 := hashData(data)
	return f.addWithHash(h1, h2)
}

// AddString adds a string to the filter without allocating. See Add.
func (f *CountingBloomFilter) AddString(s string) bool {
	h1, h2 := hashString(s)
	return f.addWithHash(h1, h2)
}

func (f *CountingBloomFilter) addWithHash(h1, h2 uint64) bool {
	if !f.repeatInsert && f.containsWithHash(h1, h2) {
		return false
	}
	for i := uint32(0); i < f.hashes; i++ {
		f.counters.increment(probe(h1, h2, i, f.size))
	}
	f.count++
	return true
}

// Remove removes data from the filter and reports whether counters
// were decremented. Removing data that is not contained is a no-op
// and returns false.
func (f *CountingBloomFilter) Remove(data []byte) bool {
	h1, h2 := hashData(data)
	return f.removeWithHash(h1, h2)
}

// RemoveString removes a string from the filter without allocating.
// See Remove.
func (f *CountingBloomFilter) RemoveString(s string) bool {
	h1, h2 := hashString(s)
	return f.removeWithHash(h1, h2)
}

func (f *CountingBloomFilter) removeWithHash(h1, h2 uint64) bool {
	if !f.containsWithHash(h1, h2) {
		return false
	}
	for i := uint32(0); i < f.hashes; i++ {
		f.counters.decrement(probe(h1, h2, i, f.size))
	}
	if f.count > 0 {
		f.count--
	}
	return true
}

// Contains checks if data might be in the filter. It returns true if
// the data might be present (with false positive probability), or
// false if the data is definitely not present.
func (f *CountingBloomFilter) Contains(data []byte) bool {
	h1, h2 := hashData(data)
	return f.containsWithHash(h1, h2)
}

// ContainsString checks if a string might be in the filter without
// allocating.
func (f *CountingBloomFilter) ContainsString(s string) bool {
	h1, h2 := hashString(s)
	return f.containsWithHash(h1, h2)
}

func (f *CountingBloomFilter) containsWithHash(h1, h2 uint64) bool {
	for i := uint32(0); i < f.hashes; i++ {
		if f.counters.get(probe(h1, h2, i, f.size)) == 0 {
			return false
		}
	}
	return true
}

// EstimatedCount estimates how many times data was added, as the
// minimum over its probe counters. Like membership, the estimate can
// only err upward, and it saturates at 15.
func (f *CountingBloomFilter) EstimatedCount(data []byte) uint8 {
	h1, h2 := hashData(data)
	estimate := uint8(counterMax)
	for i := uint32(0); i < f.hashes; i++ {
		c := f.counters.get(probe(h1, h2, i, f.size))
		if c == 0 {
			return 0
		}
		estimate = min(estimate, c)
	}
	return estimate
}

// Clear removes all elements from the filter.
func (f *CountingBloomFilter) Clear() {
	f.counters.clear()
	f.count = 0
}

// Size returns the number of counters in the filter, equal to the bit
// size of the corresponding plain filter.
func (f *CountingBloomFilter) Size() uint64 {
	return f.size
}

// Hashes returns the number of hash probes per element.
func (f *CountingBloomFilter) Hashes() uint32 {
	return f.hashes
}

// Count returns the approximate number of elements currently in the
// filter (adds minus successful removes).
func (f *CountingBloomFilter) Count() uint64 {
	return f.count
}

// RepeatInsertEnabled reports whether repeated insertions of the same
// element keep incrementing counters.
func (f *CountingBloomFilter) RepeatInsertEnabled() bool {
	return f.repeatInsert
}

// Copy returns a deep copy of the filter.
func (f *CountingBloomFilter) Copy() *CountingBloomFilter {
	return &CountingBloomFilter{
		counters:     f.counters.copy(),
		size:         f.size,
		hashes:       f.hashes,
		repeatInsert: f.repeatInsert,
		count:        f.count,
	}
}
