package hashids

import (
	"strconv"
	"strings"
)

// Hex strings are encoded in chunks of at most 12 nibbles, each prefixed
// with a 1 nibble before conversion so leading zeros survive the round-trip.
const hexChunkLen = 12

// EncodeHex encodes a hexadecimal string as a regular multi-number hash.
// Non-hex input yields the empty string.
func (e *Engine) EncodeHex(hexStr string) (string, error) {
	if hexStr == "" {
		return "", nil
	}
	for i := 0; i < len(hexStr); i++ {
		c := hexStr[i]
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F') {
			return "", nil
		}
	}

	numbers := make([]int64, 0, len(hexStr)/hexChunkLen+1)
	for start := 0; start < len(hexStr); start += hexChunkLen {
		end := start + hexChunkLen
		if end > len(hexStr) {
			end = len(hexStr)
		}
		// 1 + 12 nibbles = 52 bits, always within int64.
		n, err := strconv.ParseInt("1"+hexStr[start:end], 16, 64)
		if err != nil {
			return "", nil
		}
		numbers = append(numbers, n)
	}
	return e.Encode(numbers)
}

// DecodeHex reverses EncodeHex, returning the lowercase hexadecimal string.
// Malformed input yields the empty string.
func (e *Engine) DecodeHex(hash string) string {
	numbers := e.Decode(hash)
	if len(numbers) == 0 {
		return ""
	}
	var b strings.Builder
	for _, n := range numbers {
		s := strconv.FormatInt(n, 16)
		if len(s) < 2 || s[0] != '1' {
			return ""
		}
		b.WriteString(s[1:])
	}
	return b.String()
}
