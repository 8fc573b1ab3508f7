package idforge

import (
	"crypto/md5"
	"encoding/binary"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/idforge/idforge/basex"
)

const (
	xidRawLen     = 12
	xidEncodedLen = 20
)

// XIDGenerator produces 12-byte xids: a 32-bit second-resolution unix
// timestamp, a 40-bit machine id (3-byte hostname hash + 2-byte pid) and a
// 24-bit counter, base32hex encoded to 20 characters.
//
// The machine id is computed once per generator and the counter is seeded
// randomly, then incremented atomically; it wraps at 2^24.
type XIDGenerator struct {
	machineID [5]byte
	counter   uint32
}

// NewXID returns an xid generator. It fails only when the counter seed
// cannot be drawn from crypto/rand.
func NewXID() (*XIDGenerator, error) {
	g := &XIDGenerator{}

	host, err := os.Hostname()
	if err != nil || host == "" {
		host = "localhost"
	}
	sum := md5.Sum([]byte(host))
	copy(g.machineID[:3], sum[:3])
	binary.BigEndian.PutUint16(g.machineID[3:], uint16(os.Getpid()))

	seed, err := randomBytes(4)
	if err != nil {
		return nil, fmt.Errorf("xid: %w", err)
	}
	g.counter = binary.BigEndian.Uint32(seed)
	return g, nil
}

func (g *XIDGenerator) Name() string { return string(KindXID) }

func (g *XIDGenerator) Generate() (ID, error) {
	raw := make([]byte, xidRawLen)
	binary.BigEndian.PutUint32(raw[0:4], uint32(time.Now().Unix()))
	copy(raw[4:9], g.machineID[:])
	c := atomic.AddUint32(&g.counter, 1)
	raw[9] = byte(c >> 16)
	raw[10] = byte(c >> 8)
	raw[11] = byte(c)
	return xidID(raw), nil
}

func (g *XIDGenerator) GenerateBatch(count int) ([]ID, error) {
	return generateBatch(count, g.Generate)
}

// Parse accepts the 20-character lowercase base32hex form.
func (g *XIDGenerator) Parse(s string) (ID, error) {
	if len(s) != xidEncodedLen {
		return ID{}, fmt.Errorf("%w: xid must be %d characters, got %d", ErrFormat, xidEncodedLen, len(s))
	}
	raw, err := basex.DecodeBase32Hex(s, xidRawLen)
	if err != nil {
		return ID{}, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	return xidID(raw), nil
}

func (g *XIDGenerator) IsValid(s string) bool {
	return len(s) == xidEncodedLen && basex.ValidBase32Hex(s, xidRawLen)
}

func xidID(raw []byte) ID {
	return ID{
		kind:     KindXID,
		str:      basex.EncodeBase32Hex(raw),
		raw:      raw,
		ts:       int64(binary.BigEndian.Uint32(raw[0:4])) * 1000,
		sortable: true,
	}
}
