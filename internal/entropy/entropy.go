package entropy

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"io"

	serrors "github.com/PolarWolf314/seedtool/internal/errors"
	"golang.org/x/crypto/hkdf"
)

// DirectHash returns the first count bytes of SHA-256(entropy).
func DirectHash(entropy []byte, count int) ([]byte, error) {
	digest := sha256.Sum256(entropy)
	if count > len(digest) {
		return nil, fmt.Errorf("%w: requested %d bytes, digest provides %d", serrors.ErrInsufficientEntropy, count, len(digest))
	}
	out := make([]byte, count)
	copy(out, digest[:count])
	return out, nil
}

// Expand derives count bytes from SHA-256(entropy) with HKDF-SHA256.
func Expand(entropy []byte, count int) ([]byte, error) {
	key := sha256.Sum256(entropy)
	return hkdfExpand(key[:], nil, count)
}

func hkdfExpand(key, salt []byte, count int) ([]byte, error) {
	out := make([]byte, count)
	if _, err := io.ReadFull(hkdf.New(sha256.New, key, salt, nil), out); err != nil {
		return nil, fmt.Errorf("%w: %v", serrors.ErrInsufficientEntropy, err)
	}
	return out, nil
}

// Deterministic is a reproducible random source seeded from a string.
type Deterministic struct {
	key     [32]byte
	counter uint64
}

// NewDeterministic creates a generator keyed by SHA-256(seed).
func NewDeterministic(seed string) *Deterministic {
	return &Deterministic{key: sha256.Sum256([]byte(seed))}
}

// Read fills p with the next block of output. Each call consumes one
// counter step regardless of len(p).
func (d *Deterministic) Read(p []byte) (int, error) {
	d.counter++
	salt := make([]byte, 8)
	binary.LittleEndian.PutUint64(salt, d.counter)

	block, err := hkdfExpand(d.key[:], salt, len(p))
	if err != nil {
		return 0, err
	}
	return copy(p, block), nil
}
