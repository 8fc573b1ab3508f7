// Package basex implements the positional base-N codecs shared by the
// fixed-layout identifier algorithms: Crockford Base32 (with ambiguous
// character correction), the strict lowercase Crockford variant used by
// TypeID suffixes, Base62 (digits, then upper, then lower), and the RFC 4648
// base32hex bit-stream encoding used by XID.
//
// Number mode operates on math/big integers because fixed-width identifiers
// (20-byte KSUID, 16-byte ULID/Timeflake) exceed the native word size. Bytes
// mode interprets the input as one big-endian unsigned integer and left-pads
// the output with the zero symbol to the canonical length, so encode/decode
// round-trips are exact for any fixed width.
package basex

import (
	"fmt"
	"math/big"
	"strings"
)

const (
	// CrockfordAlphabet excludes I, L, O and U to avoid transcription errors.
	CrockfordAlphabet = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

	// CrockfordLowerAlphabet is the TypeID suffix alphabet. Decoding is strict:
	// no case folding and no ambiguous-character correction.
	CrockfordLowerAlphabet = "0123456789abcdefghjkmnpqrstvwxyz"

	// Base62Alphabet orders digits before upper before lower, matching the
	// KSUID and Timeflake reference encodings. Case-sensitive.
	Base62Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
)

// Codec is a positional base-N codec over a fixed single-byte alphabet.
type Codec struct {
	name     string
	alphabet string
	base     *big.Int
	dec      [256]int8
}

// Exported codec instances. Immutable after package init.
var (
	Crockford      = newCodec("crockford", CrockfordAlphabet)
	CrockfordLower = newCodec("crockford-lower", CrockfordLowerAlphabet)
	Base62         = newCodec("base62", Base62Alphabet)
)

func init() {
	// Crockford decoding is case-insensitive and corrects the characters the
	// alphabet deliberately excludes: I and L read as 1, O reads as 0.
	for i := 0; i < len(CrockfordAlphabet); i++ {
		c := CrockfordAlphabet[i]
		if c >= 'A' && c <= 'Z' {
			Crockford.dec[c+'a'-'A'] = int8(i)
		}
	}
	for _, c := range []byte{'I', 'i', 'L', 'l'} {
		Crockford.dec[c] = 1
	}
	Crockford.dec['O'] = 0
	Crockford.dec['o'] = 0
}

func newCodec(name, alphabet string) *Codec {
	c := &Codec{
		name:     name,
		alphabet: alphabet,
		base:     big.NewInt(int64(len(alphabet))),
	}
	for i := range c.dec {
		c.dec[i] = -1
	}
	for i := 0; i < len(alphabet); i++ {
		c.dec[alphabet[i]] = int8(i)
	}
	return c
}

// Len returns the alphabet size.
func (c *Codec) Len() int { return len(c.alphabet) }

// EncodeNumber encodes n in the codec's base, left-padded with the zero
// symbol to minLength. n must be non-negative.
func (c *Codec) EncodeNumber(n *big.Int, minLength int) (string, error) {
	if n.Sign() < 0 {
		return "", fmt.Errorf("basex: cannot encode negative number in %s", c.name)
	}
	if n.Sign() == 0 {
		pad := minLength
		if pad < 1 {
			pad = 1
		}
		return strings.Repeat(c.alphabet[:1], pad), nil
	}

	// Upper bound on digit count: one symbol never encodes fewer than 5 bits
	// for the alphabets above, but sizing generously costs nothing.
	out := make([]byte, 0, n.BitLen())
	num := new(big.Int).Set(n)
	rem := new(big.Int)
	for num.Sign() > 0 {
		num.QuoRem(num, c.base, rem)
		out = append(out, c.alphabet[rem.Int64()])
	}
	for len(out) < minLength {
		out = append(out, c.alphabet[0])
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return string(out), nil
}

// EncodeUint64 is the native-word fast path of EncodeNumber.
func (c *Codec) EncodeUint64(n uint64, minLength int) string {
	base := uint64(len(c.alphabet))
	out := make([]byte, 0, 16)
	if n == 0 {
		out = append(out, c.alphabet[0])
	}
	for n > 0 {
		out = append(out, c.alphabet[n%base])
		n /= base
	}
	for len(out) < minLength {
		out = append(out, c.alphabet[0])
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return string(out)
}

// DecodeNumber decodes s back into a big integer. It fails on any character
// outside the alphabet (after Crockford correction, where applicable).
func (c *Codec) DecodeNumber(s string) (*big.Int, error) {
	if s == "" {
		return nil, fmt.Errorf("basex: empty %s string", c.name)
	}
	n := new(big.Int)
	digit := new(big.Int)
	for i := 0; i < len(s); i++ {
		v := c.dec[s[i]]
		if v < 0 {
			return nil, fmt.Errorf("basex: invalid %s character %q at position %d", c.name, s[i], i)
		}
		n.Mul(n, c.base)
		n.Add(n, digit.SetInt64(int64(v)))
	}
	return n, nil
}

// EncodeBytes encodes b, read as a big-endian unsigned integer, left-padded
// to length symbols.
func (c *Codec) EncodeBytes(b []byte, length int) string {
	s, _ := c.EncodeNumber(new(big.Int).SetBytes(b), length)
	return s
}

// DecodeBytes decodes s into exactly width big-endian bytes. It fails when a
// character is invalid or the decoded value does not fit in width bytes.
func (c *Codec) DecodeBytes(s string, width int) ([]byte, error) {
	n, err := c.DecodeNumber(s)
	if err != nil {
		return nil, err
	}
	raw := n.Bytes()
	if len(raw) > width {
		return nil, fmt.Errorf("basex: %s value overflows %d bytes", c.name, width)
	}
	out := make([]byte, width)
	copy(out[width-len(raw):], raw)
	return out, nil
}

// Valid reports whether every character of s belongs to the alphabet,
// Crockford corrections included.
func (c *Codec) Valid(s string) bool {
	for i := 0; i < len(s); i++ {
		if c.dec[s[i]] < 0 {
			return false
		}
	}
	return true
}
