package fastbloom

import (
	"math/bits"

	"github.com/zeebo/xxh3"
)

// hashData computes the xxh3 hash of the given data and splits it into
// the two stride hashes used for probe derivation.
func hashData(data []byte) (h1, h2 uint64) {
	return splitHash(xxh3.Hash(data))
}

// hashString computes the xxh3 hash of the given string and splits it
// into the two stride hashes used for probe derivation.
// This avoids the allocation of converting string to []byte.
func hashString(s string) (h1, h2 uint64) {
	return splitHash(xxh3.HashString(s))
}

// splitHash derives two stride hashes from a single 64-bit digest.
// Probe i is then (h1 + i*h2) mod m, the double-hashing scheme from
// "Less Hashing, Same Performance". h2 is forced odd so the stride
// never collapses to zero.
func splitHash(h uint64) (h1, h2 uint64) {
	h1 = h
	h2 = bits.RotateLeft64(h, 32) | 1
	return
}

// probe returns the bit position of probe i for a filter of size bits.
func probe(h1, h2 uint64, i uint32, size uint64) uint64 {
	return (h1 + uint64(i)*h2) % size
}

// hashRaw returns the raw 64-bit hash of data.
func hashRaw(data []byte) uint64 {
	return xxh3.Hash(data)
}

// hashRawString returns the raw 64-bit hash of a string.
func hashRawString(s string) uint64 {
	return xxh3.HashString(s)
}
