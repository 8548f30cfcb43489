package fastbloom

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Serialization constants and errors.
const (
	// serializeVersion is the current serialization format version.
	serializeVersion byte = 1

	// Filter kind markers in the serialization header.
	kindBloom    byte = 1
	kindCounting byte = 2

	// flagRepeatInsert marks a counting filter with repeat insert
	// enabled.
	flagRepeatInsert byte = 1 << 0

	// headerSize is the size of the serialization header in bytes.
	// Version (1) + Kind (1) + Flags (1) + Hashes (4) + Size (8) + Count (8)
	headerSize = 23

	// maxSerializedSize bounds the size field of incoming data so a
	// corrupt header cannot drive a huge allocation. 2^43 bits is a
	// 1 TiB bitmap, far beyond any practical filter.
	maxSerializedSize = uint64(1) << 43
)

var (
	// ErrInvalidData is returned when the serialized data is invalid or corrupted.
	ErrInvalidData = errors.New("fastbloom: invalid serialized data")

	// ErrUnsupportedVersion is returned when the serialization version is not supported.
	ErrUnsupportedVersion = errors.New("fastbloom: unsupported serialization version")

	// ErrInvalidHashes is returned when the hash count in serialized data is out of range.
	ErrInvalidHashes = errors.New("fastbloom: invalid hash count in serialized data")

	// ErrKindMismatch is returned when serialized data holds a different filter kind
	// than the one being deserialized.
	ErrKindMismatch = errors.New("fastbloom: serialized data holds a different filter kind")
)

// MarshalBinary serializes the filter. The format is:
//   - Version (1 byte): serialization format version
//   - Kind (1 byte): filter kind (plain)
//   - Flags (1 byte): unused for plain filters
//   - Hashes (4 bytes): number of hash probes (little-endian uint32)
//   - Size (8 bytes): filter size in bits (little-endian uint64)
//   - Count (8 bytes): number of elements added (little-endian uint64)
//   - Words (size/8 bytes): the bit array (little-endian uint64s)
func (f *BloomFilter) MarshalBinary() ([]byte, error) {
	buf := make([]byte, headerSize+len(f.bits.words)*8)
	writeHeader(buf, kindBloom, 0, f.hashes, f.size, f.count)
	writeWords(buf[headerSize:], f.bits.words)
	return buf, nil
}

// UnmarshalBinary deserializes a plain bloom filter. It returns an
// error if the data is invalid, corrupted, or holds a counting filter.
func UnmarshalBinary(data []byte) (*BloomFilter, error) {
	hashes, size, count, _, err := readHeader(data, kindBloom)
	if err != nil {
		return nil, err
	}

	expectedLen := headerSize + size/wordBits*8
	if uint64(len(data)) != expectedLen {
		return nil, fmt.Errorf("%w: data length mismatch (got %d bytes, expected %d)",
			ErrInvalidData, len(data), expectedLen)
	}

	f := &BloomFilter{
		bits:   newBitVec(size),
		size:   size,
		hashes: hashes,
		count:  count,
	}
	readWords(data[headerSize:], f.bits.words)
	return f, nil
}

// MarshalBinary serializes the counting filter. The layout matches
// BloomFilter.MarshalBinary with the counting kind byte, the repeat
// insert flag, and the packed counter words as payload.
func (f *CountingBloomFilter) MarshalBinary() ([]byte, error) {
	var flags byte
	if f.repeatInsert {
		flags |= flagRepeatInsert
	}
	buf := make([]byte, headerSize+len(f.counters.words)*8)
	writeHeader(buf, kindCounting, flags, f.hashes, f.size, f.count)
	writeWords(buf[headerSize:], f.counters.words)
	return buf, nil
}

// UnmarshalCountingBinary deserializes a counting bloom filter. It
// returns an error if the data is invalid, corrupted, or holds a
// plain filter.
func UnmarshalCountingBinary(data []byte) (*CountingBloomFilter, error) {
	hashes, size, count, flags, err := readHeader(data, kindCounting)
	if err != nil {
		return nil, err
	}

	expectedLen := headerSize + size/countersPerWord*8
	if uint64(len(data)) != expectedLen {
		return nil, fmt.Errorf("%w: data length mismatch (got %d bytes, expected %d)",
			ErrInvalidData, len(data), expectedLen)
	}

	f := &CountingBloomFilter{
		counters:     newCountingVec(size),
		size:         size,
		hashes:       hashes,
		repeatInsert: flags&flagRepeatInsert != 0,
		count:        count,
	}
	readWords(data[headerSize:], f.counters.words)
	return f, nil
}

// Bytes returns the raw bitmap of the filter as little-endian words,
// without any header. Use FromBitmap to reconstruct a filter from it.
func (f *BloomFilter) Bytes() []byte {
	buf := make([]byte, len(f.bits.words)*8)
	writeWords(buf, f.bits.words)
	return buf
}

// FromBitmap reconstructs a bloom filter from a raw little-endian
// bitmap as produced by Bytes and the number of hash probes it was
// built with. The bitmap length must be a positive multiple of 8
// bytes. The element count is estimated from the bitmap fill.
func FromBitmap(bitmap []byte, hashes uint32) (*BloomFilter, error) {
	if len(bitmap) == 0 || len(bitmap)%8 != 0 {
		return nil, fmt.Errorf("%w: bitmap length %d is not a positive multiple of 8",
			ErrInvalidData, len(bitmap))
	}
	if uint64(len(bitmap))*8 > maxSerializedSize {
		return nil, fmt.Errorf("%w: bitmap too large (%d bytes)", ErrInvalidData, len(bitmap))
	}
	if hashes < 1 || hashes > maxHashes {
		return nil, fmt.Errorf("%w: hashes=%d (valid range: 1-%d)", ErrInvalidHashes, hashes, maxHashes)
	}

	size := uint64(len(bitmap)) * 8
	f := &BloomFilter{
		bits:   newBitVec(size),
		size:   size,
		hashes: hashes,
	}
	readWords(bitmap, f.bits.words)
	f.count = f.EstimatedElements()
	return f, nil
}

func writeHeader(buf []byte, kind, flags byte, hashes uint32, size, count uint64) {
	buf[0] = serializeVersion
	buf[1] = kind
	buf[2] = flags
	binary.LittleEndian.PutUint32(buf[3:7], hashes)
	binary.LittleEndian.PutUint64(buf[7:15], size)
	binary.LittleEndian.PutUint64(buf[15:23], count)
}

// readHeader validates the fixed header and returns its fields. The
// size is bounds-checked here so callers can derive allocation sizes
// from it without overflow.
func readHeader(data []byte, wantKind byte) (hashes uint32, size, count uint64, flags byte, err error) {
	if len(data) < headerSize {
		return 0, 0, 0, 0, fmt.Errorf("%w: data too short (got %d bytes, need at least %d)",
			ErrInvalidData, len(data), headerSize)
	}

	if version := data[0]; version != serializeVersion {
		return 0, 0, 0, 0, fmt.Errorf("%w: got version %d, expected %d",
			ErrUnsupportedVersion, version, serializeVersion)
	}

	kind := data[1]
	if kind != kindBloom && kind != kindCounting {
		return 0, 0, 0, 0, fmt.Errorf("%w: unknown filter kind %d", ErrInvalidData, kind)
	}
	if kind != wantKind {
		return 0, 0, 0, 0, fmt.Errorf("%w: got kind %d, expected %d", ErrKindMismatch, kind, wantKind)
	}

	flags = data[2]
	hashes = binary.LittleEndian.Uint32(data[3:7])
	size = binary.LittleEndian.Uint64(data[7:15])
	count = binary.LittleEndian.Uint64(data[15:23])

	if hashes < 1 || hashes > maxHashes {
		return 0, 0, 0, 0, fmt.Errorf("%w: hashes=%d (valid range: 1-%d)",
			ErrInvalidHashes, hashes, maxHashes)
	}
	if size == 0 {
		return 0, 0, 0, 0, fmt.Errorf("%w: size cannot be zero", ErrInvalidData)
	}
	if size%wordBits != 0 {
		return 0, 0, 0, 0, fmt.Errorf("%w: size %d is not a multiple of %d", ErrInvalidData, size, wordBits)
	}
	if size > maxSerializedSize {
		return 0, 0, 0, 0, fmt.Errorf("%w: size too large (%d)", ErrInvalidData, size)
	}

	return hashes, size, count, flags, nil
}

func writeWords(buf []byte, words []uint64) {
	for i, w := range words {
		binary.LittleEndian.PutUint64(buf[i*8:], w)
	}
}

func readWords(buf []byte, words []uint64) {
	for i := range words {
		words[i] = binary.LittleEndian.Uint64(buf[i*8:])
	}
}
