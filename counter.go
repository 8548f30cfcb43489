package fastbloom

// Counting filter counters are 4 bits wide, packed 16 to a word. The
// high nibble of each word holds the first counter, so counter i lives
// in word i>>4 shifted left by (15 - i&15) * 4 bits.
const (
	countersPerWord = 16
	counterMax      = 0b1111
)

// countingVec is the saturating 4-bit counter array backing a counting
// bloom filter. The number of counters is always a multiple of 64.
type countingVec struct {
	words []uint64
	n     uint64
}

// newCountingVec creates a counter vector with the given number of
// counters. n must be a positive multiple of 64.
func newCountingVec(n uint64) *countingVec {
	return &countingVec{
		words: make([]uint64, n/countersPerWord),
		n:     n,
	}
}

func (v *countingVec) get(index uint64) uint8 {
	shift := (15 - (index & 15)) * 4
	return uint8((v.words[index>>4] >> shift) & counterMax)
}

// increment adds one to the counter at index, saturating at 15.
func (v *countingVec) increment(index uint64) {
	w := index >> 4
	shift := (15 - (index & 15)) * 4
	current := (v.words[w] >> shift) & counterMax
	if current == counterMax {
		return
	}
	v.words[w] = (v.words[w] &^ (counterMax << shift)) | ((current + 1) << shift)
}

// decrement subtracts one from the counter at index. A zero counter
// stays zero.
func (v *countingVec) decrement(index uint64) {
	w := index >> 4
	shift := (15 - (index & 15)) * 4
	current := (v.words[w] >> shift) & counterMax
	if current == 0 {
		return
	}
	v.words[w] = (v.words[w] &^ (counterMax << shift)) | ((current - 1) << shift)
}

func (v *countingVec) clear() {
	for i := range v.words {
		v.words[i] = 0
	}
}

func (v *countingVec) counters() uint64 {
	return v.n
}

func (v *countingVec) copy() *countingVec {
	words := make([]uint64, len(v.words))
	copy(words, v.words)
	return &countingVec{words: words, n: v.n}
}
