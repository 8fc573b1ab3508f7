package idforge

import (
	"encoding/hex"
	"fmt"
	"time"

	"github.com/idforge/idforge/basex"
)

const (
	timeflakeRawLen     = 16
	timeflakeEncodedLen = 22
	timeflakeHexLen     = 32
)

// TimeflakeGenerator produces 16-byte timeflakes: a 48-bit millisecond
// timestamp followed by 80 random bits. The canonical string form is Base62
// padded to 22 characters; ParseHex accepts the 32-character hex form.
type TimeflakeGenerator struct{}

// NewTimeflake returns a timeflake generator.
func NewTimeflake() *TimeflakeGenerator { return &TimeflakeGenerator{} }

func (g *TimeflakeGenerator) Name() string { return string(KindTimeflake) }

func (g *TimeflakeGenerator) Generate() (ID, error) {
	now := time.Now().UnixMilli()
	raw := make([]byte, timeflakeRawLen)
	raw[0] = byte(now >> 40)
	raw[1] = byte(now >> 32)
	raw[2] = byte(now >> 24)
	raw[3] = byte(now >> 16)
	raw[4] = byte(now >> 8)
	raw[5] = byte(now)
	payload, err := randomBytes(10)
	if err != nil {
		return ID{}, fmt.Errorf("timeflake: %w", err)
	}
	copy(raw[6:], payload)
	return timeflakeID(raw), nil
}

func (g *TimeflakeGenerator) GenerateBatch(count int) ([]ID, error) {
	return generateBatch(count, g.Generate)
}

// Parse accepts the 22-character Base62 form.
func (g *TimeflakeGenerator) Parse(s string) (ID, error) {
	if len(s) != timeflakeEncodedLen {
		return ID{}, fmt.Errorf("%w: timeflake must be %d characters, got %d", ErrFormat, timeflakeEncodedLen, len(s))
	}
	raw, err := basex.Base62.DecodeBytes(s, timeflakeRawLen)
	if err != nil {
		return ID{}, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	return timeflakeID(raw), nil
}

// ParseHex accepts the 32-character lowercase hex form.
func (g *TimeflakeGenerator) ParseHex(s string) (ID, error) {
	if len(s) != timeflakeHexLen {
		return ID{}, fmt.Errorf("%w: timeflake hex must be %d characters, got %d", ErrFormat, timeflakeHexLen, len(s))
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return ID{}, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	return timeflakeID(raw), nil
}

func (g *TimeflakeGenerator) IsValid(s string) bool {
	if len(s) != timeflakeEncodedLen {
		return false
	}
	_, err := basex.Base62.DecodeBytes(s, timeflakeRawLen)
	return err == nil
}

// HexString returns the 32-character hex form of a timeflake ID's bytes.
func (g *TimeflakeGenerator) HexString(id ID) string {
	return hex.EncodeToString(id.raw)
}

func timeflakeID(raw []byte) ID {
	ts := int64(raw[0])<<40 | int64(raw[1])<<32 | int64(raw[2])<<24 |
		int64(raw[3])<<16 | int64(raw[4])<<8 | int64(raw[5])
	return ID{
		kind:     KindTimeflake,
		str:      basex.Base62.EncodeBytes(raw, timeflakeEncodedLen),
		raw:      raw,
		ts:       ts,
		sortable: true,
	}
}
