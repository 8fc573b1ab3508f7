// Package sqids implements the Sqids obfuscated-id codec: short ids from
// non-negative integers, reversible, with profanity avoidance through
// blocklist-aware regeneration. The algorithm tracks the public Sqids
// specification so ids interoperate with the other language implementations.
package sqids

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// DefaultAlphabet is the shared cross-implementation default.
const DefaultAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

const (
	minAlphabetLen = 3
	maxMinLength   = 255
)

// ErrMaxAttempts is returned when blocklist regeneration fails to find a
// clean id after alphabet-length + 1 offsets.
var ErrMaxAttempts = errors.New("sqids: reached max attempts to regenerate the id")

// Config parameterizes an Engine. Zero values select the defaults.
type Config struct {
	Alphabet  string
	MinLength int
	Blocklist []string // nil selects the default blocklist; empty disables it
}

// Engine is an immutable Sqids codec. Safe for concurrent use.
type Engine struct {
	alphabet  string // shuffled at construction
	minLength int
	blocklist []string // lowercased, filtered against the alphabet
}

// New validates cfg and builds an Engine. The alphabet must contain at least
// three unique single-byte characters; MinLength must be in [0, 255].
func New(cfg Config) (*Engine, error) {
	alphabet := cfg.Alphabet
	if alphabet == "" {
		alphabet = DefaultAlphabet
	}
	if len(alphabet) < minAlphabetLen {
		return nil, fmt.Errorf("sqids: alphabet must contain at least %d characters", minAlphabetLen)
	}
	if utf8.RuneCountInString(alphabet) != len(alphabet) {
		return nil, errors.New("sqids: alphabet must not contain multibyte characters")
	}
	seen := map[byte]struct{}{}
	for i := 0; i < len(alphabet); i++ {
		if _, ok := seen[alphabet[i]]; ok {
			return nil, errors.New("sqids: alphabet must contain unique characters")
		}
		seen[alphabet[i]] = struct{}{}
	}
	if cfg.MinLength < 0 || cfg.MinLength > maxMinLength {
		return nil, fmt.Errorf("sqids: min length must be between 0 and %d", maxMinLength)
	}

	words := cfg.Blocklist
	if words == nil {
		words = defaultBlocklist()
	}
	// Keep only words the alphabet can actually produce, lowercased since
	// matching is case-insensitive.
	lowered := strings.ToLower(alphabet)
	filtered := make([]string, 0, len(words))
	for _, w := range words {
		if len(w) < 3 {
			continue
		}
		w = strings.ToLower(w)
		if strings.ContainsFunc(w, func(r rune) bool {
			return !strings.ContainsRune(lowered, r)
		}) {
			continue
		}
		filtered = append(filtered, w)
	}

	return &Engine{
		alphabet:  string(shuffle([]byte(alphabet))),
		minLength: cfg.MinLength,
		blocklist: filtered,
	}, nil
}

// Encode converts numbers into an id. An empty slice encodes to the empty
// string. The same engine configuration and numbers always produce the same
// id, except when blocklist regeneration perturbs the offset.
func (e *Engine) Encode(numbers []uint64) (string, error) {
	if len(numbers) == 0 {
		return "", nil
	}
	return e.encode(numbers, 0)
}

func (e *Engine) encode(numbers []uint64, increment int) (string, error) {
	if increment > len(e.alphabet) {
		return "", ErrMaxAttempts
	}

	// Semi-random but deterministic offset derived from the input.
	offset := len(numbers)
	for i, n := range numbers {
		offset = offset + int(e.alphabet[n%uint64(len(e.alphabet))]) + i
	}
	offset %= len(e.alphabet)
	offset = (offset + increment) % len(e.alphabet)

	alphabet := make([]byte, 0, len(e.alphabet))
	alphabet = append(alphabet, e.alphabet[offset:]...)
	alphabet = append(alphabet, e.alphabet[:offset]...)
	prefix := alphabet[0]
	reverse(alphabet)

	id := []byte{prefix}
	for i, n := range numbers {
		id = append(id, toID(n, alphabet[1:])...)
		if i < len(numbers)-1 {
			id = append(id, alphabet[0])
			alphabet = shuffle(alphabet)
		}
	}

	if e.minLength > len(id) {
		id = append(id, alphabet[0])
		for e.minLength > len(id) {
			alphabet = shuffle(alphabet)
			take := e.minLength - len(id)
			if take > len(alphabet) {
				take = len(alphabet)
			}
			id = append(id, alphabet[:take]...)
		}
	}

	if e.isBlocked(string(id)) {
		return e.encode(numbers, increment+1)
	}
	return string(id), nil
}

// Decode converts an id back into numbers. Malformed input — empty string or
// any character outside the alphabet — yields an empty slice, never an error.
func (e *Engine) Decode(id string) []uint64 {
	ret := []uint64{}
	if id == "" {
		return ret
	}
	for i := 0; i < len(id); i++ {
		if !strings.ContainsRune(e.alphabet, rune(id[i])) {
			return ret
		}
	}

	offset := strings.IndexByte(e.alphabet, id[0])
	alphabet := make([]byte, 0, len(e.alphabet))
	alphabet = append(alphabet, e.alphabet[offset:]...)
	alphabet = append(alphabet, e.alphabet[:offset]...)
	reverse(alphabet)

	rest := id[1:]
	for len(rest) > 0 {
		sep := string(alphabet[:1])
		chunks := strings.SplitN(rest, sep, 2)
		if chunks[0] == "" {
			return ret
		}
		ret = append(ret, toNumber(chunks[0], alphabet[1:]))
		if len(chunks) > 1 {
			rest = chunks[1]
			alphabet = shuffle(alphabet)
		} else {
			rest = ""
		}
	}
	return ret
}

// MinLength returns the configured minimum id length.
func (e *Engine) MinLength() int { return e.minLength }

// shuffle performs the deterministic consistent shuffle from the Sqids spec.
// It mutates and returns chars.
func shuffle(chars []byte) []byte {
	for i, j := 0, len(chars)-1; j > 0; i, j = i+1, j-1 {
		r := (i*j + int(chars[i]) + int(chars[j])) % len(chars)
		chars[i], chars[r] = chars[r], chars[i]
	}
	return chars
}

func reverse(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}

// toID converts num to the positional base defined by alphabet, most
// significant symbol first.
func toID(num uint64, alphabet []byte) []byte {
	base := uint64(len(alphabet))
	var out []byte
	for {
		out = append(out, alphabet[num%base])
		num /= base
		if num == 0 {
			break
		}
	}
	reverse(out)
	return out
}

func toNumber(s string, alphabet []byte) uint64 {
	base := uint64(len(alphabet))
	var n uint64
	for i := 0; i < len(s); i++ {
		n = n*base + uint64(indexOf(alphabet, s[i]))
	}
	return n
}

func indexOf(alphabet []byte, c byte) int {
	for i, a := range alphabet {
		if a == c {
			return i
		}
	}
	return 0
}
