package fastbloom

import "math/bits"

// wordBits is the number of bits per storage word.
const wordBits = 64

// bitVec is the flat bitmap backing a bloom filter. The number of valid
// bits is always a multiple of 64, so every storage word is fully used.
type bitVec struct {
	words []uint64
	nbits uint64
}

// newBitVec creates a bit vector with the given number of bits.
// nbits must be a positive multiple of 64.
func newBitVec(nbits uint64) *bitVec {
	return &bitVec{
		words: make([]uint64, nbits/wordBits),
		nbits: nbits,
	}
}

func (v *bitVec) set(index uint64) {
	v.words[index>>6] |= 1 << (index & 63)
}

func (v *bitVec) get(index uint64) bool {
	return v.words[index>>6]&(1<<(index&63)) != 0
}

// The binary operations below pair words up to the shorter of the two
// vectors. Filters guarantee equal sizes before calling them.

func (v *bitVec) or(other *bitVec) {
	for i, o := range other.words[:min(len(v.words), len(other.words))] {
		v.words[i] |= o
	}
}

func (v *bitVec) and(other *bitVec) {
	for i, o := range other.words[:min(len(v.words), len(other.words))] {
		v.words[i] &= o
	}
}

func (v *bitVec) xor(other *bitVec) {
	for i, o := range other.words[:min(len(v.words), len(other.words))] {
		v.words[i] ^= o
	}
}

func (v *bitVec) nor(other *bitVec) {
	for i, o := range other.words[:min(len(v.words), len(other.words))] {
		v.words[i] = ^(v.words[i] | o)
	}
}

func (v *bitVec) xnor(other *bitVec) {
	for i, o := range other.words[:min(len(v.words), len(other.words))] {
		v.words[i] = ^(v.words[i] ^ o)
	}
}

func (v *bitVec) nand(other *bitVec) {
	for i, o := range other.words[:min(len(v.words), len(other.words))] {
		v.words[i] = ^(v.words[i] & o)
	}
}

// andNot clears every bit of v that is set in other.
func (v *bitVec) andNot(other *bitVec) {
	for i, o := range other.words[:min(len(v.words), len(other.words))] {
		v.words[i] &^= o
	}
}

func (v *bitVec) clear() {
	for i := range v.words {
		v.words[i] = 0
	}
}

// count returns the number of set bits.
func (v *bitVec) count() uint64 {
	var n uint64
	for _, w := range v.words {
		n += uint64(bits.OnesCount64(w))
	}
	return n
}

func (v *bitVec) equal(other *bitVec) bool {
	if v.nbits != other.nbits {
		return false
	}
	for i, w := range v.words {
		if w != other.words[i] {
			return false
		}
	}
	return true
}

func (v *bitVec) copy() *bitVec {
	words := make([]uint64, len(v.words))
	copy(words, v.words)
	return &bitVec{words: words, nbits: v.nbits}
}
