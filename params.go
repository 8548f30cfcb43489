package fastbloom

import "math"

const (
	// ln2 is the natural logarithm of 2.
	ln2 = 0.6931471805599453
	// ln2Squared is ln(2)^2.
	ln2Squared = 0.4804530139182014

	// maxHashes caps the number of hash probes a filter may use. Any
	// false positive rate down to ~1e-19 fits well under this.
	maxHashes = 64
)

// OptimalSize calculates the optimal filter size in bits for the
// expected number of elements and desired false positive rate, rounded
// up to a whole number of 64-bit words.
//
// Formula: m = -n * ln(p) / ln(2)^2
func OptimalSize(expectedElements uint64, fpRate float64) uint64 {
	if expectedElements == 0 {
		expectedElements = 1
	}
	if fpRate <= 0 {
		fpRate = 0.0001 // default to 0.01%
	}
	if fpRate >= 1 {
		fpRate = 0.99
	}

	bitsNeeded := -float64(expectedElements) * math.Log(fpRate) / ln2Squared
	size := uint64(math.Ceil(bitsNeeded/wordBits)) * wordBits
	if size == 0 {
		size = wordBits
	}
	return size
}

// OptimalHashes calculates the optimal number of hash probes for a
// filter of size bits holding expectedElements, clamped to [1, 64].
//
// Formula: k = (m/n) * ln(2)
func OptimalHashes(size, expectedElements uint64) uint32 {
	if expectedElements == 0 {
		expectedElements = 1
	}
	k := uint32(math.Round(float64(size) / float64(expectedElements) * ln2))
	k = max(k, 1)
	k = min(k, maxHashes)
	return k
}

// EstimateFalsePositiveRate estimates the false positive rate of a
// filter of size bits with the given number of hash probes after
// itemsAdded insertions.
//
// Formula: (1 - e^(-kn/m))^k
func EstimateFalsePositiveRate(size uint64, hashes uint32, itemsAdded uint64) float64 {
	if size == 0 || itemsAdded == 0 {
		return 0
	}

	k := float64(hashes)
	return math.Pow(1-math.Exp(-k*float64(itemsAdded)/float64(size)), k)
}

// EstimateElements estimates the number of distinct elements inserted
// into a filter of size bits with the given number of hash probes and
// setBits bits set.
//
// Formula: n = -(m/k) * ln(1 - X/m)
func EstimateElements(size uint64, hashes uint32, setBits uint64) uint64 {
	if size == 0 || hashes == 0 || setBits == 0 {
		return 0
	}
	if setBits >= size {
		return math.MaxUint64
	}
	n := -float64(size) / float64(hashes) * math.Log(1-float64(setBits)/float64(size))
	return uint64(math.Round(n))
}
