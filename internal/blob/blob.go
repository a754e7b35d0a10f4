// Package blob stores decoded string literals once per distinct content.
package blob

import (
	"errors"
	"fmt"
	"hash/crc32"

	"github.com/cespare/xxhash/v2"
)

// Index is the position of an entry in the store. Index 0 is the empty string.
type Index uint32

// Key is the 64-bit composite hash used for de-duplication:
// CRC32 in the high half, the low 32 bits of xxhash64 in the low half.
type Key uint64

// DefaultMaxBytes bounds the total decoded payload of a store.
const DefaultMaxBytes = 256 << 20

// ErrFull is returned when adding an entry would exceed the store capacity.
var ErrFull = errors.New("string blob full")

// KeyOf computes the composite key of b.
func KeyOf(b []byte) Key {
	hi := uint64(crc32.ChecksumIEEE(b))
	lo := xxhash.Sum64(b) & 0xFFFF_FFFF
	return Key(hi<<32 | lo)
}

// Store is a de-duplicating append-only blob of strings.
type Store struct {
	data    []byte
	offsets []uint32 // entry i spans data[offsets[i]:offsets[i+1]]
	byKey   map[Key][]Index
	max     int
}

// New creates a store holding at most maxBytes of payload
// (DefaultMaxBytes when maxBytes <= 0).
func New(maxBytes int) *Store {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Store{
		offsets: []uint32{0, 0},
		byKey:   make(map[Key][]Index),
		max:     maxBytes,
	}
}

// Intern stores b (copied) unless an identical entry exists and returns its index.
func (s *Store) Intern(b []byte) (Index, error) {
	if len(b) == 0 {
		return 0, nil
	}
	key := KeyOf(b)
	for _, idx := range s.byKey[key] {
		if string(s.bytes(idx)) == string(b) {
			return idx, nil
		}
	}
	if len(s.data)+len(b) > s.max {
		return 0, fmt.Errorf("intern %d bytes: %w", len(b), ErrFull)
	}
	s.data = append(s.data, b...)
	idx := Index(len(s.offsets) - 1)                   // #nosec G115 -- bounded by s.max
	s.offsets = append(s.offsets, uint32(len(s.data))) // #nosec G115
	s.byKey[key] = append(s.byKey[key], idx)
	return idx, nil
}

// Get returns the string stored at idx.
func (s *Store) Get(idx Index) (string, bool) {
	if int(idx) >= len(s.offsets)-1 {
		return "", false
	}
	return string(s.bytes(idx)), true
}

// Len returns the number of entries, including the empty string.
func (s *Store) Len() int {
	return len(s.offsets) - 1
}

// Size returns the total payload in bytes.
func (s *Store) Size() int {
	return len(s.data)
}

func (s *Store) bytes(idx Index) []byte {
	return s.data[s.offsets[idx]:s.offsets[idx+1]]
}
