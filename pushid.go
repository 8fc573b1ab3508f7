package idforge

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// PushIDAlphabet holds 64 symbols in ascending ASCII order so generated ids
// sort lexicographically by generation time.
const PushIDAlphabet = "-0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ_abcdefghijklmnopqrstuvwxyz"

const (
	pushidEncodedLen = 20
	pushidTimeLen    = 8
	pushidRandLen    = 12
	pushidRawLen     = 15 // 20 symbols * 6 bits
)

// PushIDGenerator produces Firebase-style push ids: 8 timestamp symbols
// (unix milliseconds, base 64) followed by 12 random symbols.
//
// Calls within the same millisecond increment the previous random payload as
// a base-64 counter with leftward carry. When all 12 symbols are at their
// maximum the increment wraps silently to zero, which can break ordering in
// that one pathological millisecond; the behavior is kept for compatibility
// with the reference implementations.
type PushIDGenerator struct {
	now func() int64 // unix ms, swappable in tests

	mu       sync.Mutex
	lastMs   int64
	lastRand [pushidRandLen]byte // symbol indices, 0..63
}

// NewPushID returns a push id generator.
func NewPushID() *PushIDGenerator {
	return &PushIDGenerator{
		now:    func() int64 { return time.Now().UnixMilli() },
		lastMs: -1,
	}
}

func (g *PushIDGenerator) Name() string { return string(KindPushID) }

func (g *PushIDGenerator) Generate() (ID, error) {
	now := g.now()

	g.mu.Lock()
	if now == g.lastMs {
		for i := pushidRandLen - 1; i >= 0; i-- {
			g.lastRand[i]++
			if g.lastRand[i] < 64 {
				break
			}
			g.lastRand[i] = 0
		}
	} else {
		r, err := randomBytes(pushidRandLen)
		if err != nil {
			g.mu.Unlock()
			return ID{}, fmt.Errorf("pushid: %w", err)
		}
		for i, b := range r {
			g.lastRand[i] = b & 0x3F
		}
		g.lastMs = now
	}
	rand := g.lastRand
	g.mu.Unlock()

	symbols := make([]byte, pushidEncodedLen)
	ms := now
	for i := pushidTimeLen - 1; i >= 0; i-- {
		symbols[i] = byte(ms % 64)
		ms /= 64
	}
	copy(symbols[pushidTimeLen:], rand[:])

	return pushidID(symbols), nil
}

func (g *PushIDGenerator) GenerateBatch(count int) ([]ID, error) {
	return generateBatch(count, g.Generate)
}

// Parse accepts the 20-character form over PushIDAlphabet.
func (g *PushIDGenerator) Parse(s string) (ID, error) {
	symbols, err := pushidSymbols(s)
	if err != nil {
		return ID{}, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	return pushidID(symbols), nil
}

func (g *PushIDGenerator) IsValid(s string) bool {
	_, err := pushidSymbols(s)
	return err == nil
}

func pushidSymbols(s string) ([]byte, error) {
	if len(s) != pushidEncodedLen {
		return nil, fmt.Errorf("pushid must be %d characters, got %d", pushidEncodedLen, len(s))
	}
	symbols := make([]byte, pushidEncodedLen)
	for i := 0; i < len(s); i++ {
		v := strings.IndexByte(PushIDAlphabet, s[i])
		if v < 0 {
			return nil, fmt.Errorf("pushid character %q at position %d not in alphabet", s[i], i)
		}
		symbols[i] = byte(v)
	}
	return symbols, nil
}

// pushidID packs the 20 6-bit symbol values into 15 bytes and derives the
// string and timestamp.
func pushidID(symbols []byte) ID {
	str := make([]byte, pushidEncodedLen)
	for i, v := range symbols {
		str[i] = PushIDAlphabet[v]
	}

	raw := make([]byte, pushidRawLen)
	var acc uint32
	bits := 0
	out := 0
	for _, v := range symbols {
		acc = acc<<6 | uint32(v)
		bits += 6
		for bits >= 8 {
			bits -= 8
			raw[out] = byte(acc >> uint(bits))
			out++
		}
	}

	var ts int64
	for _, v := range symbols[:pushidTimeLen] {
		ts = ts*64 + int64(v)
	}

	return ID{
		kind:     KindPushID,
		str:      string(str),
		raw:      raw,
		ts:       ts,
		sortable: true,
	}
}
