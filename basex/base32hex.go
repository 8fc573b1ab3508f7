package basex

import (
	"encoding/base32"
	"fmt"
)

// Base32HexAlphabet is the RFC 4648 "extended hex" alphabet in lowercase.
const Base32HexAlphabet = "0123456789abcdefghijklmnopqrstuv"

// base32hex is a bit-stream encoding, not a positional one: 12 bytes become
// 20 symbols with four trailing pad bits, which is the XID wire format.
var base32hex = base32.NewEncoding(Base32HexAlphabet).WithPadding(base32.NoPadding)

// EncodeBase32Hex encodes b as unpadded lowercase base32hex.
func EncodeBase32Hex(b []byte) string {
	return base32hex.EncodeToString(b)
}

// DecodeBase32Hex decodes s into exactly width bytes.
func DecodeBase32Hex(s string, width int) ([]byte, error) {
	if len(s) != base32hex.EncodedLen(width) {
		return nil, fmt.Errorf("basex: base32hex length must be %d, got %d", base32hex.EncodedLen(width), len(s))
	}
	out := make([]byte, width)
	if _, err := base32hex.Decode(out, []byte(s)); err != nil {
		return nil, fmt.Errorf("basex: invalid base32hex: %w", err)
	}
	return out, nil
}

// ValidBase32Hex reports whether s decodes cleanly to width bytes.
func ValidBase32Hex(s string, width int) bool {
	_, err := DecodeBase32Hex(s, width)
	return err == nil
}
