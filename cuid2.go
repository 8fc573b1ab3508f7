package idforge

import (
	"fmt"
	"math/big"
	"os"
	"strconv"
	"sync"
	"time"

	"golang.org/x/crypto/sha3"
)

const (
	// DefaultCUID2Length matches the reference implementation's default.
	DefaultCUID2Length = 24

	cuid2MinLength = 2
	cuid2MaxLength = 32
)

// CUID2Generator produces CUID2s: a random lowercase letter followed by a
// base36 SHA-3-256 digest of timestamp, random salt, an increasing counter
// and a per-generator process fingerprint, truncated to the configured
// length.
type CUID2Generator struct {
	length      int
	fingerprint string

	mu      sync.Mutex
	counter uint64
}

// NewCUID2 validates cfg and returns a CUID2 generator. Length must be in
// [2, 32]; zero selects DefaultCUID2Length. The fingerprint (hostname, pid
// and fresh randomness) is computed once per generator instance.
func NewCUID2(cfg CUID2Config) (*CUID2Generator, error) {
	length := cfg.Length
	if length == 0 {
		length = DefaultCUID2Length
	}
	if length < cuid2MinLength || length > cuid2MaxLength {
		return nil, fmt.Errorf("%w: cuid2 length must be between %d and %d, got %d", ErrConfig, cuid2MinLength, cuid2MaxLength, cfg.Length)
	}

	host, err := os.Hostname()
	if err != nil {
		host = "unknown"
	}
	seed, err := randomBytes(16)
	if err != nil {
		return nil, fmt.Errorf("cuid2: %w", err)
	}
	fp := sha3.Sum256(append([]byte(host+strconv.Itoa(os.Getpid())), seed...))

	counterSeed, err := randomBytes(8)
	if err != nil {
		return nil, fmt.Errorf("cuid2: %w", err)
	}

	return &CUID2Generator{
		length:      length,
		fingerprint: base36(fp[:]),
		counter:     uint64(counterSeed[0])<<8 | uint64(counterSeed[1]),
	}, nil
}

func (g *CUID2Generator) Name() string { return string(KindCUID2) }

func (g *CUID2Generator) Generate() (ID, error) {
	salt, err := randomBytes(16)
	if err != nil {
		return ID{}, fmt.Errorf("cuid2: %w", err)
	}

	g.mu.Lock()
	g.counter++
	count := g.counter
	g.mu.Unlock()

	input := strconv.FormatInt(time.Now().UnixMilli(), 36) +
		base36(salt) +
		strconv.FormatUint(count, 36) +
		g.fingerprint
	sum := sha3.Sum256([]byte(input))

	// First character is always a letter; the digest (minus its first, most
	// biased character) fills the rest.
	letter := 'a' + rune(salt[0]%26)
	digest := base36(sum[:])
	for len(digest) < g.length {
		digest = "0" + digest
	}
	str := string(letter) + digest[1:g.length]

	return cuid2ID(str), nil
}

func (g *CUID2Generator) GenerateBatch(count int) ([]ID, error) {
	return generateBatch(count, g.Generate)
}

// Parse accepts base36 strings of the configured length starting with a
// letter.
func (g *CUID2Generator) Parse(s string) (ID, error) {
	if len(s) != g.length {
		return ID{}, fmt.Errorf("%w: cuid2 must be %d characters, got %d", ErrFormat, g.length, len(s))
	}
	if !validCUID2(s) {
		return ID{}, fmt.Errorf("%w: cuid2 must be base36 and start with a letter", ErrFormat)
	}
	return cuid2ID(s), nil
}

func (g *CUID2Generator) IsValid(s string) bool {
	return len(s) == g.length && validCUID2(s)
}

func validCUID2(s string) bool {
	if len(s) == 0 || s[0] < 'a' || s[0] > 'z' {
		return false
	}
	for i := 1; i < len(s); i++ {
		c := s[i]
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'z') {
			return false
		}
	}
	return true
}

func cuid2ID(s string) ID {
	return ID{
		kind:     KindCUID2,
		str:      s,
		raw:      []byte(s),
		ts:       -1,
		sortable: false,
	}
}

func base36(b []byte) string {
	return new(big.Int).SetBytes(b).Text(36)
}
