// Package avatar detects GitHub accounts that still display their generated
// identicon instead of an uploaded profile picture.
package avatar

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/corona10/goimagehash"
)

// ErrIncomparable is returned when two hashes were produced with different
// algorithms or grid sizes.
var ErrIncomparable = errors.New("hashes computed with different parameters")

// Kind names the algorithm a Hash was computed with.
type Kind string

// BlockMean is the block-mean-value hash computed by Hasher.
const BlockMean Kind = "blockmean"

// Hash is a perceptual fingerprint of an image. It is a comparable value.
type Hash struct {
	kind Kind
	bits int
	raw  string // big-endian words
}

func newHash(kind Kind, words []uint64) Hash {
	raw := make([]byte, 0, len(words)*8)
	for _, w := range words {
		raw = binary.BigEndian.AppendUint64(raw, w)
	}
	return Hash{kind: kind, bits: len(words) * 64, raw: string(raw)}
}

// Bits returns the width of the hash in bits.
func (h Hash) Bits() int {
	return h.bits
}

// IsZero reports whether h holds no hash.
func (h Hash) IsZero() bool {
	return h.raw == ""
}

func (h Hash) checkComparable(other Hash) error {
	if h.IsZero() || other.IsZero() {
		return fmt.Errorf("%w: empty hash", ErrIncomparable)
	}
	if h.kind != other.kind || h.bits != other.bits {
		return fmt.Errorf("%w: %s/%d vs %s/%d", ErrIncomparable, h.kind, h.bits, other.kind, other.bits)
	}
	return nil
}

// Equal reports whether h and other fingerprint perceptually identical
// images. It fails instead of answering when the hashes cannot be compared.
func (h Hash) Equal(other Hash) (bool, error) {
	if err := h.checkComparable(other); err != nil {
		return false, err
	}
	return h.raw == other.raw, nil
}

// Distance returns the number of bits that differ between h and other.
func (h Hash) Distance(other Hash) (int, error) {
	if err := h.checkComparable(other); err != nil {
		return -1, err
	}
	return h.ext().Distance(other.ext())
}

func (h Hash) ext() *goimagehash.ExtImageHash {
	words := make([]uint64, len(h.raw)/8)
	for i := range words {
		words[i] = binary.BigEndian.Uint64([]byte(h.raw[i*8 : i*8+8]))
	}
	return goimagehash.NewExtImageHash(words, goimagehash.Unknown, h.bits)
}

func (h Hash) String() string {
	if h.IsZero() {
		return ""
	}
	return string(h.kind) + ":" + hex.EncodeToString([]byte(h.raw))
}
