package fastbloom

import "errors"

// ErrMismatchedFilters is returned when a set operation is attempted
// on filters with different sizes or hash counts.
var ErrMismatchedFilters = errors.New("fastbloom: filters have mismatched size or hash count")

// BloomFilter is a non-thread-safe bloom filter over a flat bit array.
//
// Each element is hashed once with xxh3 and the digest is expanded into
// k probe positions via double hashing, so membership operations cost a
// single hash computation regardless of k.
type BloomFilter struct {
	bits   *bitVec
	size   uint64 // Number of bits, always a multiple of 64
	hashes uint32 // Number of hash probes per element
	count  uint64 // Number of elements added (approximate)
}

// NewBloomFilter creates a bloom filter optimized for the expected
// number of elements and desired false positive rate.
func NewBloomFilter(expectedElements uint64, fpRate float64) *BloomFilter {
	return NewFilterBuilder(expectedElements, fpRate).BuildBloomFilter()
}

// Add adds data to the filter.
func (f *BloomFilter) Add(data []byte) {
	h1, h2 := hashData(data)
	f.addWithHash(h1, h2)
}

// AddString adds a string to the filter without allocating.
func (f *BloomFilter) AddString(s string) {
	h1, h2 := hashString(s)
	f.addWithHash(h1, h2)
}

func (f *BloomFilter) addWithHash(h1, h2 uint64) {
	for i := uint32(0); i < f.hashes; i++ {
		f.bits.set(probe(h1, h2, i, f.size))
	}
	f.count++
}

// Contains checks if data might be in the filter. It returns true if
// the data might be present (with false positive probability), or
// false if the data is definitely not present.
func (f *BloomFilter) Contains(data []byte) bool {
	h1, h2 := hashData(data)
	return f.containsWithHash(h1, h2)
}

// ContainsString checks if a string might be in the filter without
// allocating.
func (f *BloomFilter) ContainsString(s string) bool {
	h1, h2 := hashString(s)
	return f.containsWithHash(h1, h2)
}

func (f *BloomFilter) containsWithHash(h1, h2 uint64) bool {
	for i := uint32(0); i < f.hashes; i++ {
		if !f.bits.get(probe(h1, h2, i, f.size)) {
			return false
		}
	}
	return true
}

// ContainsThenAdd adds data to the filter and reports whether it was
// already present before the add.
func (f *BloomFilter) ContainsThenAdd(data []byte) bool {
	h1, h2 := hashData(data)
	return f.containsThenAddWithHash(h1, h2)
}

// ContainsThenAddString adds a string to the filter and reports whether
// it was already present before the add.
func (f *BloomFilter) ContainsThenAddString(s string) bool {
	h1, h2 := hashString(s)
	return f.containsThenAddWithHash(h1, h2)
}

func (f *BloomFilter) containsThenAddWithHash(h1, h2 uint64) bool {
	present := f.containsWithHash(h1, h2)
	f.addWithHash(h1, h2)
	return present
}

// Union merges other into f with a bitwise or, so f contains every
// element added to either filter. Both filters must have the same size
// and hash count; otherwise ErrMismatchedFilters is returned and f is
// unchanged.
func (f *BloomFilter) Union(other *BloomFilter) error {
	if f.size != other.size || f.hashes != other.hashes {
		return ErrMismatchedFilters
	}
	f.bits.or(other.bits)
	// Upper bound: common elements are counted twice.
	f.count += other.count
	return nil
}

// Intersect narrows f to the bitwise and of both filters. Elements
// added to both filters remain contained; the result may also report
// elements only the bit overlap suggests. Both filters must have the
// same size and hash count; otherwise ErrMismatchedFilters is returned
// and f is unchanged.
func (f *BloomFilter) Intersect(other *BloomFilter) error {
	if f.size != other.size || f.hashes != other.hashes {
		return ErrMismatchedFilters
	}
	f.bits.and(other.bits)
	f.count = min(f.count, other.count)
	return nil
}

// Clear removes all elements from the filter.
func (f *BloomFilter) Clear() {
	f.bits.clear()
	f.count = 0
}

// IsEmpty reports whether no bit of the filter is set.
func (f *BloomFilter) IsEmpty() bool {
	return f.bits.count() == 0
}

// Size returns the size of the filter in bits.
func (f *BloomFilter) Size() uint64 {
	return f.size
}

// Hashes returns the number of hash probes per element.
func (f *BloomFilter) Hashes() uint32 {
	return f.hashes
}

// Count returns the approximate number of elements added. Set
// operations make it an estimate: Union sums both counts and Intersect
// keeps the smaller one.
func (f *BloomFilter) Count() uint64 {
	return f.count
}

// Copy returns a deep copy of the filter.
func (f *BloomFilter) Copy() *BloomFilter {
	return &BloomFilter{
		bits:   f.bits.copy(),
		size:   f.size,
		hashes: f.hashes,
		count:  f.count,
	}
}

// Equal reports whether both filters have the same configuration and
// an identical bitmap. The approximate add counter is ignored.
func (f *BloomFilter) Equal(other *BloomFilter) bool {
	return f.size == other.size &&
		f.hashes == other.hashes &&
		f.bits.equal(other.bits)
}

// EstimatedFillRatio estimates the proportion of bits that are set.
func (f *BloomFilter) EstimatedFillRatio() float64 {
	return float64(f.bits.count()) / float64(f.size)
}

// EstimatedFalsePositiveRate estimates the current false positive rate
// based on the number of elements added.
func (f *BloomFilter) EstimatedFalsePositiveRate() float64 {
	return EstimateFalsePositiveRate(f.size, f.hashes, f.count)
}

// EstimatedElements estimates the number of distinct elements inserted
// from the bitmap fill, independent of the add counter. Useful after
// FromBitmap or set operations, where the counter is approximate.
func (f *BloomFilter) EstimatedElements() uint64 {
	return EstimateElements(f.size, f.hashes, f.bits.count())
}
