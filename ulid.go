package idforge

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/idforge/idforge/basex"
)

const (
	ulidEncodedLen = 26
	ulidRawLen     = 16
)

// ULIDGenerator produces 16-byte ULIDs: a 48-bit millisecond timestamp
// followed by 80 random bits, Crockford Base32 encoded to 26 characters.
//
// In monotonic mode, calls landing in the same millisecond increment the
// previous random payload as a big-endian counter so the string ordering
// stays strict; exhausting the 80-bit space within one millisecond fails.
type ULIDGenerator struct {
	monotonic bool

	mu          sync.Mutex
	lastMs      int64
	lastEntropy [10]byte
}

// NewULID returns a ULID generator.
func NewULID(cfg ULIDConfig) (*ULIDGenerator, error) {
	return &ULIDGenerator{monotonic: cfg.Monotonic}, nil
}

func (g *ULIDGenerator) Name() string { return string(KindULID) }

func (g *ULIDGenerator) Generate() (ID, error) {
	now := time.Now().UnixMilli()

	var entropy [10]byte
	if g.monotonic {
		g.mu.Lock()
		if now == g.lastMs {
			if err := incrementBigEndian(g.lastEntropy[:]); err != nil {
				g.mu.Unlock()
				return ID{}, fmt.Errorf("ulid: %w", err)
			}
		} else {
			r, err := randomBytes(10)
			if err != nil {
				g.mu.Unlock()
				return ID{}, fmt.Errorf("ulid: %w", err)
			}
			copy(g.lastEntropy[:], r)
			g.lastMs = now
		}
		entropy = g.lastEntropy
		g.mu.Unlock()
	} else {
		r, err := randomBytes(10)
		if err != nil {
			return ID{}, fmt.Errorf("ulid: %w", err)
		}
		copy(entropy[:], r)
	}

	raw := make([]byte, ulidRawLen)
	raw[0] = byte(now >> 40)
	raw[1] = byte(now >> 32)
	raw[2] = byte(now >> 24)
	raw[3] = byte(now >> 16)
	raw[4] = byte(now >> 8)
	raw[5] = byte(now)
	copy(raw[6:], entropy[:])

	return ulidID(raw), nil
}

func (g *ULIDGenerator) GenerateBatch(count int) ([]ID, error) {
	return generateBatch(count, g.Generate)
}

// Parse accepts the 26-character Crockford form, case-insensitively and with
// the usual I/L→1, O→0 corrections. Values above 2^128-1 (first character
// past '7') are rejected.
func (g *ULIDGenerator) Parse(s string) (ID, error) {
	if len(s) != ulidEncodedLen {
		return ID{}, fmt.Errorf("%w: ulid must be %d characters, got %d", ErrFormat, ulidEncodedLen, len(s))
	}
	raw, err := basex.Crockford.DecodeBytes(s, ulidRawLen)
	if err != nil {
		return ID{}, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	return ulidID(raw), nil
}

func (g *ULIDGenerator) IsValid(s string) bool {
	if len(s) != ulidEncodedLen {
		return false
	}
	_, err := basex.Crockford.DecodeBytes(s, ulidRawLen)
	return err == nil
}

func ulidID(raw []byte) ID {
	ts := int64(raw[0])<<40 | int64(raw[1])<<32 | int64(raw[2])<<24 |
		int64(raw[3])<<16 | int64(raw[4])<<8 | int64(raw[5])
	return ID{
		kind:     KindULID,
		str:      basex.Crockford.EncodeBytes(raw, ulidEncodedLen),
		raw:      raw,
		ts:       ts,
		sortable: true,
	}
}

// incrementBigEndian adds one to b treated as a big-endian counter,
// propagating the carry leftward. Overflow of the whole payload is an error.
func incrementBigEndian(b []byte) error {
	for i := len(b) - 1; i >= 0; i-- {
		b[i]++
		if b[i] != 0 {
			return nil
		}
	}
	return errors.New("monotonic random payload overflow")
}
