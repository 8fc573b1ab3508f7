package idforge

import (
	"encoding/binary"
	"fmt"
	"sync"
	"time"

	"github.com/idforge/idforge/hashids"
)

// HashidGenerator produces Hashids. Generate encodes the pair
// [unix milliseconds, per-instance counter]; Encode, Decode, EncodeHex and
// DecodeHex expose the underlying engine for caller-chosen values.
type HashidGenerator struct {
	engine *hashids.Engine

	mu      sync.Mutex
	counter int64
}

// NewHashid validates cfg and returns a Hashid generator.
func NewHashid(cfg HashidConfig) (*HashidGenerator, error) {
	engine, err := hashids.New(hashids.Config{
		Salt:      cfg.Salt,
		MinLength: cfg.MinLength,
		Alphabet:  cfg.Alphabet,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	return &HashidGenerator{engine: engine}, nil
}

func (g *HashidGenerator) Name() string { return string(KindHashid) }

func (g *HashidGenerator) Generate() (ID, error) {
	g.mu.Lock()
	g.counter++
	numbers := []int64{time.Now().UnixMilli(), g.counter}
	g.mu.Unlock()
	return g.Encode(numbers)
}

func (g *HashidGenerator) GenerateBatch(count int) ([]ID, error) {
	return generateBatch(count, g.Generate)
}

// Encode builds an ID from caller-chosen non-negative numbers.
func (g *HashidGenerator) Encode(numbers []int64) (ID, error) {
	s, err := g.engine.Encode(numbers)
	if err != nil {
		return ID{}, fmt.Errorf("hashid: %w", err)
	}
	return hashidID(s, numbers), nil
}

// Parse decodes s. Strings the engine soft-fails on — including hashes made
// under a different salt — are format errors here.
func (g *HashidGenerator) Parse(s string) (ID, error) {
	numbers := g.engine.Decode(s)
	if len(numbers) == 0 {
		return ID{}, fmt.Errorf("%w: not a hashid under this configuration", ErrFormat)
	}
	return hashidID(s, numbers), nil
}

// Decode exposes the engine's soft-fail decode.
func (g *HashidGenerator) Decode(s string) []int64 {
	return g.engine.Decode(s)
}

// EncodeHex encodes a hex string; DecodeHex reverses it. Both soft-fail to
// the empty string on malformed input, mirroring the engine.
func (g *HashidGenerator) EncodeHex(hexStr string) (string, error) {
	return g.engine.EncodeHex(hexStr)
}

func (g *HashidGenerator) DecodeHex(hash string) string {
	return g.engine.DecodeHex(hash)
}

func (g *HashidGenerator) IsValid(s string) bool {
	return len(g.engine.Decode(s)) > 0
}

func hashidID(s string, numbers []int64) ID {
	raw := make([]byte, 8*len(numbers))
	u := make([]uint64, len(numbers))
	for i, n := range numbers {
		binary.BigEndian.PutUint64(raw[i*8:], uint64(n))
		u[i] = uint64(n)
	}
	return ID{
		kind:     KindHashid,
		str:      s,
		raw:      raw,
		ts:       -1,
		sortable: false,
		numbers:  u,
	}
}
