package idforge

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"sync/atomic"
	"time"
)

const (
	objectidRawLen     = 12
	objectidEncodedLen = 24
)

// ObjectIDGenerator produces MongoDB-style ObjectIDs: a 32-bit
// second-resolution unix timestamp, a 40-bit per-process random value and a
// 24-bit counter, lowercase hex encoded to 24 characters.
//
// The random value is drawn once per generator; the counter starts at a
// random value and increments atomically, wrapping at 2^24.
type ObjectIDGenerator struct {
	process [5]byte
	counter uint32
}

// NewObjectID returns an ObjectID generator. It fails only when the process
// value and counter seed cannot be drawn from crypto/rand.
func NewObjectID() (*ObjectIDGenerator, error) {
	g := &ObjectIDGenerator{}
	b, err := randomBytes(9)
	if err != nil {
		return nil, fmt.Errorf("objectid: %w", err)
	}
	copy(g.process[:], b[:5])
	g.counter = binary.BigEndian.Uint32(b[5:])
	return g, nil
}

func (g *ObjectIDGenerator) Name() string { return string(KindObjectID) }

func (g *ObjectIDGenerator) Generate() (ID, error) {
	raw := make([]byte, objectidRawLen)
	binary.BigEndian.PutUint32(raw[0:4], uint32(time.Now().Unix()))
	copy(raw[4:9], g.process[:])
	c := atomic.AddUint32(&g.counter, 1)
	raw[9] = byte(c >> 16)
	raw[10] = byte(c >> 8)
	raw[11] = byte(c)
	return objectidID(raw), nil
}

func (g *ObjectIDGenerator) GenerateBatch(count int) ([]ID, error) {
	return generateBatch(count, g.Generate)
}

// Parse accepts the 24-character lowercase hex form.
func (g *ObjectIDGenerator) Parse(s string) (ID, error) {
	if !validObjectID(s) {
		return ID{}, fmt.Errorf("%w: objectid must be 24 lowercase hex characters", ErrFormat)
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return ID{}, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	return objectidID(raw), nil
}

func (g *ObjectIDGenerator) IsValid(s string) bool {
	return validObjectID(s)
}

func validObjectID(s string) bool {
	if len(s) != objectidEncodedLen {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'f') {
			return false
		}
	}
	return true
}

func objectidID(raw []byte) ID {
	return ID{
		kind:     KindObjectID,
		str:      hex.EncodeToString(raw),
		raw:      raw,
		ts:       int64(binary.BigEndian.Uint32(raw[0:4])) * 1000,
		sortable: true,
	}
}
