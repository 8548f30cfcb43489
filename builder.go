package fastbloom

import "math"

// FilterBuilder holds the desired parameters of a filter and derives
// the missing ones on build. Zero-value fields are computed from the
// others: a builder made with NewFilterBuilder derives size and hash
// count from the expected elements and false positive rate, while one
// made with FromSizeAndHashes derives the expected elements its
// explicit dimensions can hold.
type FilterBuilder struct {
	// ExpectedElements is the number of distinct elements the filter
	// is sized for.
	ExpectedElements uint64
	// FalsePositiveProbability is the target false positive rate at
	// ExpectedElements insertions.
	FalsePositiveProbability float64
	// Size is the filter size in bits, always a multiple of 64.
	Size uint64
	// Hashes is the number of hash probes per element.
	Hashes uint32
	// RepeatInsert controls whether adding an element that is already
	// contained increments the counters of a counting filter again.
	RepeatInsert bool

	done bool
}

// NewFilterBuilder creates a builder for the expected number of
// elements and desired false positive rate. Repeat insert is enabled
// by default.
func NewFilterBuilder(expectedElements uint64, fpRate float64) *FilterBuilder {
	if expectedElements == 0 {
		expectedElements = 1
	}
	if fpRate <= 0 {
		fpRate = 0.0001
	}
	if fpRate >= 1 {
		fpRate = 0.99
	}
	return &FilterBuilder{
		ExpectedElements:         expectedElements,
		FalsePositiveProbability: fpRate,
		RepeatInsert:             true,
	}
}

// FromSizeAndHashes creates a builder with an explicit size in bits and
// number of hash probes. The size is rounded up to a whole number of
// 64-bit words, and the expected element capacity is derived from the
// dimensions.
func FromSizeAndHashes(size uint64, hashes uint32) *FilterBuilder {
	if size == 0 {
		size = wordBits
	}
	size = (size + wordBits - 1) / wordBits * wordBits
	hashes = max(hashes, 1)
	hashes = min(hashes, maxHashes)

	// n = m * ln(2) / k
	expected := uint64(math.Round(float64(size) * ln2 / float64(hashes)))
	expected = max(expected, 1)

	return &FilterBuilder{
		ExpectedElements:         expected,
		FalsePositiveProbability: EstimateFalsePositiveRate(size, hashes, expected),
		Size:                     size,
		Hashes:                   hashes,
		RepeatInsert:             true,
	}
}

// EnableRepeatInsert sets whether repeated insertions of the same
// element keep incrementing counting filter counters. It returns the
// builder for chaining.
func (b *FilterBuilder) EnableRepeatInsert(enable bool) *FilterBuilder {
	b.RepeatInsert = enable
	return b
}

// complete derives any unset parameters. Safe to call more than once.
func (b *FilterBuilder) complete() {
	if b.done {
		return
	}
	if b.Size == 0 {
		b.Size = OptimalSize(b.ExpectedElements, b.FalsePositiveProbability)
	}
	b.Size = (b.Size + wordBits - 1) / wordBits * wordBits
	if b.Hashes == 0 {
		b.Hashes = OptimalHashes(b.Size, b.ExpectedElements)
	}
	b.done = true
}

// BuildBloomFilter builds a plain bloom filter from the builder's
// parameters.
func (b *FilterBuilder) BuildBloomFilter() *BloomFilter {
	b.complete()
	return &BloomFilter{
		bits:   newBitVec(b.Size),
		size:   b.Size,
		hashes: b.Hashes,
	}
}

// BuildCountingBloomFilter builds a counting bloom filter from the
// builder's parameters. It allocates one 4-bit counter per bit of the
// equivalent plain filter, so it uses four times the memory.
func (b *FilterBuilder) BuildCountingBloomFilter() *CountingBloomFilter {
	b.complete()
	return &CountingBloomFilter{
		counters:     newCountingVec(b.Size),
		size:         b.Size,
		hashes:       b.Hashes,
		repeatInsert: b.RepeatInsert,
	}
}

// BuildAtomicBloomFilter builds a thread-safe bloom filter from the
// builder's parameters.
func (b *FilterBuilder) BuildAtomicBloomFilter() *AtomicBloomFilter {
	b.complete()
	return newAtomicBloomFilter(b.Size, b.Hashes)
}
