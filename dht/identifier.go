package dht

import (
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/blake2b"
)

// Identifier is an immutable, non-empty byte sequence naming a contact.
// All contacts admitted into one RoutingTable are expected to share an
// Identifier length; the algorithms below tolerate mismatched lengths
// (see bitAt) but in normal operation every identifier in a table has the
// same length.
//
// Identifier is treated as a big-endian bit string: bit 0 is the
// most-significant bit of byte 0.
type Identifier []byte

// DefaultIdentifierLength is the conventional identifier length (160
// bits), used when a random local identifier is generated lazily.
const DefaultIdentifierLength = 20

// randomIdentifier returns a cryptographically random identifier of
// DefaultIdentifierLength bytes.
func randomIdentifier() (Identifier, error) {
	buf := make([]byte, DefaultIdentifierLength)
	if _, err := rand.Read(buf); err != nil {
		return nil, fmt.Errorf("generate random identifier: %w", err)
	}
	return Identifier(buf), nil
}

// DeriveID hashes an arbitrary-length seed (for example, the bytes of a
// long-term public key) into a deterministic DefaultIdentifierLength-byte
// identifier. It is a convenience for callers who want a stable local
// identifier instead of the lazily-generated random one; the table core
// itself never calls it.
func DeriveID(seed []byte) Identifier {
	sum := blake2b.Sum256(seed)
	return Identifier(sum[:DefaultIdentifierLength])
}

// Equal reports whether two identifiers are byte-equal. Identity of a
// contact is defined solely by this comparison.
func (id Identifier) Equal(other Identifier) bool {
	if len(id) != len(other) {
		return false
	}
	for i := range id {
		if id[i] != other[i] {
			return false
		}
	}
	return true
}

// String renders the identifier as lowercase hex, for logging.
func (id Identifier) String() string {
	const hexDigits = "0123456789abcdef"
	out := make([]byte, len(id)*2)
	for i, b := range id {
		out[i*2] = hexDigits[b>>4]
		out[i*2+1] = hexDigits[b&0x0f]
	}
	return string(out)
}

// bitAt returns the ith bit of id, 0-indexed from the most significant
// bit of byte 0. If i addresses a position beyond id's length the bit is
// defined to be 0 — short identifiers always route left when descending
// the tree. This preserves the source behavior documented in spec.md §4.1
// and is normally unreachable, since every identifier in one table shares
// a length.
func bitAt(id Identifier, i int) int {
	byteIndex := i / 8
	if byteIndex >= len(id) {
		return 0
	}
	bitIndex := uint(i % 8)
	return int((id[byteIndex] >> (7 - bitIndex)) & 1)
}

// distance returns the XOR distance between a and b as a big-endian byte
// sequence the length of the longer input, with the shorter input
// conceptually right-padded with 0xFF bytes so a missing tail counts as
// maximally distant.
func distance(a, b Identifier) []byte {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[i] = byteOrPad(a, i) ^ byteOrPad(b, i)
	}
	return out
}

func byteOrPad(id Identifier, i int) byte {
	if i < len(id) {
		return id[i]
	}
	return 0xFF
}

// lessDistance reports whether distance a is strictly smaller than
// distance b, comparing byte-by-byte from most to least significant —
// equivalent to big-endian integer comparison. Distance slices of
// differing length are padded on the left (conceptually, the shorter one
// has leading zero bytes), since distance() always returns same-length
// output for same-length identifiers in practice.
func lessDistance(a, b []byte) bool {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		ai := byteAt(a, i, n)
		bi := byteAt(b, i, n)
		if ai < bi {
			return true
		}
		if ai > bi {
			return false
		}
	}
	return false
}

// byteAt returns the ith byte of a width-n big-endian byte slice,
// treating b as left-padded with zeros if it is shorter than n.
func byteAt(b []byte, i, n int) byte {
	pad := n - len(b)
	if i < pad {
		return 0
	}
	return b[i-pad]
}

// Distance computes the XOR distance between two identifiers and returns
// it as a non-negative big-endian byte sequence, per spec.md §4.1. It is
// exposed on RoutingTable as well, for callers that already hold a table
// handle.
func Distance(a, b Identifier) []byte {
	return distance(a, b)
}
