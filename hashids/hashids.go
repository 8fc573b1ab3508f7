// Package hashids implements the classic Hashids codec: salted, reversible
// short ids over one or more non-negative integers, plus the hex chunking
// scheme. Output is compatible with the reference implementations in the
// other languages for the same salt/alphabet/min-length parameters.
package hashids

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

const (
	// DefaultAlphabet matches hashids.js.
	DefaultAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ1234567890"

	defaultSeps    = "cfhistuCFHISTU"
	minAlphabetLen = 16
	sepDiv         = 3.5
	guardDiv       = 12.0
)

// Config parameterizes an Engine. Zero values select the defaults.
type Config struct {
	Salt      string
	MinLength int
	Alphabet  string
}

// Engine is an immutable Hashids codec. Safe for concurrent use.
type Engine struct {
	salt      string
	minLength int
	alphabet  []byte // working alphabet after seps/guards extraction
	seps      []byte
	guards    []byte
}

// New validates cfg and derives the seps/guards partitioning. The alphabet
// must contain at least 16 unique characters and no spaces.
func New(cfg Config) (*Engine, error) {
	alphabet := cfg.Alphabet
	if alphabet == "" {
		alphabet = DefaultAlphabet
	}
	if strings.ContainsRune(alphabet, ' ') {
		return nil, errors.New("hashids: alphabet must not contain spaces")
	}
	if cfg.MinLength < 0 {
		return nil, errors.New("hashids: min length must not be negative")
	}

	// Dedupe while preserving order.
	unique := make([]byte, 0, len(alphabet))
	seen := map[byte]struct{}{}
	for i := 0; i < len(alphabet); i++ {
		if _, ok := seen[alphabet[i]]; ok {
			continue
		}
		seen[alphabet[i]] = struct{}{}
		unique = append(unique, alphabet[i])
	}
	if len(unique) < minAlphabetLen {
		return nil, fmt.Errorf("hashids: alphabet must contain at least %d unique characters", minAlphabetLen)
	}

	// Separators are the reserved characters present in the alphabet; the
	// working alphabet is what remains.
	var seps, working []byte
	for _, c := range unique {
		if strings.IndexByte(defaultSeps, c) >= 0 {
			seps = append(seps, c)
		} else {
			working = append(working, c)
		}
	}

	salt := []byte(cfg.Salt)
	seps = consistentShuffle(seps, salt)
	if len(seps) == 0 || float64(len(working))/float64(len(seps)) > sepDiv {
		sepsLen := int(math.Ceil(float64(len(working)) / sepDiv))
		if sepsLen > len(seps) {
			diff := sepsLen - len(seps)
			seps = append(seps, working[:diff]...)
			working = working[diff:]
		}
	}
	working = consistentShuffle(working, salt)

	guardCount := int(math.Ceil(float64(len(working)) / guardDiv))
	var guards []byte
	if len(working) < 3 {
		guards = seps[:guardCount]
		seps = seps[guardCount:]
	} else {
		guards = working[:guardCount]
		working = working[guardCount:]
	}

	return &Engine{
		salt:      cfg.Salt,
		minLength: cfg.MinLength,
		alphabet:  working,
		seps:      seps,
		guards:    guards,
	}, nil
}

// Encode converts numbers into a hash. An empty slice encodes to the empty
// string; negative numbers are rejected.
func (e *Engine) Encode(numbers []int64) (string, error) {
	if len(numbers) == 0 {
		return "", nil
	}
	for _, n := range numbers {
		if n < 0 {
			return "", fmt.Errorf("hashids: cannot encode negative number %d", n)
		}
	}

	alphabet := append([]byte(nil), e.alphabet...)

	var numbersHash int64
	for i, n := range numbers {
		numbersHash += n % int64(i+100)
	}
	lottery := alphabet[numbersHash%int64(len(alphabet))]

	result := make([]byte, 0, e.minLength)
	result = append(result, lottery)
	buf := make([]byte, 0, len(alphabet)+len(e.salt)+1)
	for i, n := range numbers {
		buf = buf[:0]
		buf = append(buf, lottery)
		buf = append(buf, e.salt...)
		buf = append(buf, alphabet...)
		alphabet = consistentShuffle(alphabet, buf[:len(alphabet)])
		last := hashNumber(n, alphabet)
		result = append(result, last...)

		if i+1 < len(numbers) {
			n %= int64(last[0]) + int64(i)
			result = append(result, e.seps[n%int64(len(e.seps))])
		}
	}

	if len(result) < e.minLength {
		i := (numbersHash + int64(result[0])) % int64(len(e.guards))
		result = append([]byte{e.guards[i]}, result...)
		if len(result) < e.minLength {
			i = (numbersHash + int64(result[2])) % int64(len(e.guards))
			result = append(result, e.guards[i])
		}
	}

	half := len(alphabet) / 2
	for len(result) < e.minLength {
		// The salt must be the pre-shuffle alphabet, so shuffle a copy.
		alphabet = consistentShuffle(alphabet, append([]byte(nil), alphabet...))
		wrapped := make([]byte, 0, len(result)+len(alphabet))
		wrapped = append(wrapped, alphabet[half:]...)
		wrapped = append(wrapped, result...)
		wrapped = append(wrapped, alphabet[:half]...)
		result = wrapped
		if excess := len(result) - e.minLength; excess > 0 {
			result = result[excess/2 : excess/2+e.minLength]
		}
	}

	return string(result), nil
}

// Decode converts a hash back into numbers. Any malformed or tampered input
// — including a hash produced under a different salt — yields an empty
// slice: the decoded candidate is re-encoded and must match exactly.
func (e *Engine) Decode(hash string) []int64 {
	numbers := e.decode(hash)
	if len(numbers) == 0 {
		return []int64{}
	}
	check, err := e.Encode(numbers)
	if err != nil || check != hash {
		return []int64{}
	}
	return numbers
}

func (e *Engine) decode(hash string) []int64 {
	empty := []int64{}
	parts := splitAny(hash, e.guards)
	i := 0
	if len(parts) == 2 || len(parts) == 3 {
		i = 1
	}
	breakdown := parts[i]
	if breakdown == "" {
		return empty
	}

	lottery := breakdown[0]
	segments := splitAny(breakdown[1:], e.seps)

	alphabet := append([]byte(nil), e.alphabet...)
	buf := make([]byte, 0, len(alphabet)+len(e.salt)+1)
	result := make([]int64, 0, len(segments))
	for _, segment := range segments {
		if segment == "" {
			return empty
		}
		buf = buf[:0]
		buf = append(buf, lottery)
		buf = append(buf, e.salt...)
		buf = append(buf, alphabet...)
		alphabet = consistentShuffle(alphabet, buf[:len(alphabet)])
		n, ok := unhashNumber(segment, alphabet)
		if !ok {
			return empty
		}
		result = append(result, n)
	}
	return result
}

// consistentShuffle permutes chars deterministically from salt. It mutates
// and returns chars. An empty salt leaves the input untouched.
func consistentShuffle(chars, salt []byte) []byte {
	if len(salt) == 0 {
		return chars
	}
	for i, v, p := len(chars)-1, 0, 0; i > 0; i-- {
		v %= len(salt)
		p += int(salt[v])
		j := (int(salt[v]) + v + p) % i
		chars[i], chars[j] = chars[j], chars[i]
		v++
	}
	return chars
}

// hashNumber converts n to the positional base defined by alphabet, most
// significant symbol first.
func hashNumber(n int64, alphabet []byte) []byte {
	base := int64(len(alphabet))
	var out []byte
	for {
		out = append([]byte{alphabet[n%base]}, out...)
		n /= base
		if n == 0 {
			return out
		}
	}
}

func unhashNumber(s string, alphabet []byte) (int64, bool) {
	base := int64(len(alphabet))
	var n int64
	for i := 0; i < len(s); i++ {
		pos := int64(strings.IndexByte(string(alphabet), s[i]))
		if pos < 0 {
			return 0, false
		}
		n = n*base + pos
	}
	return n, true
}

// splitAny splits s on any of the given separator bytes, keeping empty
// segments (the guard-stripping step depends on their positions). It always
// returns at least one element.
func splitAny(s string, seps []byte) []string {
	parts := []string{}
	last := 0
	for i := 0; i < len(s); i++ {
		if strings.IndexByte(string(seps), s[i]) >= 0 {
			parts = append(parts, s[last:i])
			last = i + 1
		}
	}
	return append(parts, s[last:])
}
