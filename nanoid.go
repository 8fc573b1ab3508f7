package idforge

import (
	"fmt"
	"math/bits"
	"strings"
)

const (
	// DefaultNanoIDSize matches the reference implementation.
	DefaultNanoIDSize = 21

	// DefaultNanoIDAlphabet is the URL-safe 64-character default.
	DefaultNanoIDAlphabet = "_-0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

	nanoidMaxSize = 256
)

// NanoIDGenerator produces NanoIDs: cryptographically random strings over an
// arbitrary alphabet. Random bytes are masked per symbol so the distribution
// over the alphabet stays uniform even when its size is not a power of two.
type NanoIDGenerator struct {
	size     int
	alphabet string
	mask     byte
	step     int
}

// NewNanoID validates cfg and returns a NanoID generator. Size must be in
// [1, 256] (zero selects 21); the alphabet needs 2 to 256 unique single-byte
// characters (empty selects the default).
func NewNanoID(cfg NanoIDConfig) (*NanoIDGenerator, error) {
	size := cfg.Size
	if size == 0 {
		size = DefaultNanoIDSize
	}
	if size < 1 || size > nanoidMaxSize {
		return nil, fmt.Errorf("%w: nanoid size must be between 1 and %d, got %d", ErrConfig, nanoidMaxSize, cfg.Size)
	}
	alphabet := cfg.Alphabet
	if alphabet == "" {
		alphabet = DefaultNanoIDAlphabet
	}
	if len(alphabet) < 2 || len(alphabet) > 256 {
		return nil, fmt.Errorf("%w: nanoid alphabet must have 2 to 256 characters, got %d", ErrConfig, len(alphabet))
	}
	seen := map[byte]struct{}{}
	for i := 0; i < len(alphabet); i++ {
		if _, ok := seen[alphabet[i]]; ok {
			return nil, fmt.Errorf("%w: nanoid alphabet must not repeat characters", ErrConfig)
		}
		seen[alphabet[i]] = struct{}{}
	}

	// Smallest all-ones mask covering the alphabet size, and the batch size
	// that makes a full id likely within one read.
	mask := byte(1<<bits.Len(uint(len(alphabet)-1)) - 1)
	step := int(1.6 * float64(int(mask)+1) * float64(size) / float64(len(alphabet)))
	if step < 1 {
		step = 1
	}

	return &NanoIDGenerator{size: size, alphabet: alphabet, mask: mask, step: step}, nil
}

func (g *NanoIDGenerator) Name() string { return string(KindNanoID) }

func (g *NanoIDGenerator) Generate() (ID, error) {
	id := make([]byte, 0, g.size)
	for {
		random, err := randomBytes(g.step)
		if err != nil {
			return ID{}, fmt.Errorf("nanoid: %w", err)
		}
		for _, b := range random {
			// Rejection sampling keeps the symbol distribution uniform.
			idx := int(b & g.mask)
			if idx >= len(g.alphabet) {
				continue
			}
			id = append(id, g.alphabet[idx])
			if len(id) == g.size {
				return nanoidID(string(id)), nil
			}
		}
	}
}

func (g *NanoIDGenerator) GenerateBatch(count int) ([]ID, error) {
	return generateBatch(count, g.Generate)
}

// Parse accepts strings of the configured size over the configured alphabet.
func (g *NanoIDGenerator) Parse(s string) (ID, error) {
	if len(s) != g.size {
		return ID{}, fmt.Errorf("%w: nanoid must be %d characters, got %d", ErrFormat, g.size, len(s))
	}
	for i := 0; i < len(s); i++ {
		if strings.IndexByte(g.alphabet, s[i]) < 0 {
			return ID{}, fmt.Errorf("%w: nanoid character %q at position %d not in alphabet", ErrFormat, s[i], i)
		}
	}
	return nanoidID(s), nil
}

func (g *NanoIDGenerator) IsValid(s string) bool {
	if len(s) != g.size {
		return false
	}
	for i := 0; i < len(s); i++ {
		if strings.IndexByte(g.alphabet, s[i]) < 0 {
			return false
		}
	}
	return true
}

func nanoidID(s string) ID {
	return ID{
		kind:     KindNanoID,
		str:      s,
		raw:      []byte(s),
		ts:       -1,
		sortable: false,
	}
}
