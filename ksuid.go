package idforge

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/idforge/idforge/basex"
)

const (
	// KSUIDEpoch is the custom epoch (2014-05-13T16:53:20Z) in unix seconds,
	// shared with the reference implementation.
	KSUIDEpoch = int64(1400000000)

	ksuidRawLen     = 20
	ksuidEncodedLen = 27
)

// KSUIDGenerator produces 20-byte KSUIDs: a 32-bit second-resolution
// timestamp since KSUIDEpoch followed by 128 random bits, Base62 encoded to
// 27 characters.
type KSUIDGenerator struct{}

// NewKSUID returns a KSUID generator.
func NewKSUID() *KSUIDGenerator { return &KSUIDGenerator{} }

func (g *KSUIDGenerator) Name() string { return string(KindKSUID) }

func (g *KSUIDGenerator) Generate() (ID, error) {
	raw := make([]byte, ksuidRawLen)
	binary.BigEndian.PutUint32(raw[0:4], uint32(time.Now().Unix()-KSUIDEpoch))
	payload, err := randomBytes(16)
	if err != nil {
		return ID{}, fmt.Errorf("ksuid: %w", err)
	}
	copy(raw[4:], payload)
	return ksuidID(raw), nil
}

func (g *KSUIDGenerator) GenerateBatch(count int) ([]ID, error) {
	return generateBatch(count, g.Generate)
}

// Parse accepts the 27-character Base62 form. Values above 2^160-1 are
// rejected.
func (g *KSUIDGenerator) Parse(s string) (ID, error) {
	if len(s) != ksuidEncodedLen {
		return ID{}, fmt.Errorf("%w: ksuid must be %d characters, got %d", ErrFormat, ksuidEncodedLen, len(s))
	}
	raw, err := basex.Base62.DecodeBytes(s, ksuidRawLen)
	if err != nil {
		return ID{}, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	return ksuidID(raw), nil
}

func (g *KSUIDGenerator) IsValid(s string) bool {
	if len(s) != ksuidEncodedLen {
		return false
	}
	_, err := basex.Base62.DecodeBytes(s, ksuidRawLen)
	return err == nil
}

func ksuidID(raw []byte) ID {
	sec := int64(binary.BigEndian.Uint32(raw[0:4])) + KSUIDEpoch
	return ID{
		kind:     KindKSUID,
		str:      basex.Base62.EncodeBytes(raw, ksuidEncodedLen),
		raw:      raw,
		ts:       sec * 1000,
		sortable: true,
	}
}
