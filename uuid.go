package idforge

import (
	"crypto/md5"
	"crypto/sha1"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"time"
)

// Offset in 100ns ticks between the Gregorian epoch (1582-10-15) and the
// Unix epoch, used by the v1/v6 timestamp layout.
const gregorianToUnix100ns = 122192928000000000

// UUIDGenerator produces RFC 9562 UUIDs of one configured version.
// v1/v6 draw a fresh random clock sequence and node per call; v3/v5 are
// deterministic digests of namespace+name; v7 is the recommended
// time-ordered default.
type UUIDGenerator struct {
	version   int
	namespace [16]byte
	name      string
}

// NewUUID validates cfg and returns a UUID generator. Supported versions are
// 1, 3, 4, 5, 6, 7 and 8; zero selects 7. v3/v5 require a valid Namespace
// UUID and a non-empty Name.
func NewUUID(cfg UUIDConfig) (*UUIDGenerator, error) {
	version := cfg.Version
	if version == 0 {
		version = 7
	}
	switch version {
	case 1, 4, 6, 7, 8:
	case 3, 5:
		if cfg.Name == "" {
			return nil, fmt.Errorf("%w: uuid v%d requires a name", ErrConfig, version)
		}
	default:
		return nil, fmt.Errorf("%w: unsupported uuid version %d", ErrConfig, version)
	}

	g := &UUIDGenerator{version: version, name: cfg.Name}
	if version == 3 || version == 5 {
		ns, err := decodeUUIDString(cfg.Namespace)
		if err != nil {
			return nil, fmt.Errorf("%w: uuid namespace: %v", ErrConfig, err)
		}
		g.namespace = ns
	}
	return g, nil
}

func (g *UUIDGenerator) Name() string { return string(KindUUID) }

func (g *UUIDGenerator) Generate() (ID, error) {
	var b [16]byte
	var err error
	switch g.version {
	case 1:
		b, err = newUUIDv1()
	case 3:
		b = hashUUID(g.version, g.namespace, g.name)
	case 4, 8:
		b, err = randomUUID(g.version)
	case 5:
		b = hashUUID(g.version, g.namespace, g.name)
	case 6:
		b, err = newUUIDv6()
	case 7:
		b, err = newUUIDv7()
	}
	if err != nil {
		return ID{}, fmt.Errorf("uuid: %w", err)
	}
	return uuidID(b), nil
}

func (g *UUIDGenerator) GenerateBatch(count int) ([]ID, error) {
	return generateBatch(count, g.Generate)
}

// Parse accepts the 36-character hyphenated form of any RFC 9562 version.
func (g *UUIDGenerator) Parse(s string) (ID, error) {
	b, err := decodeUUIDString(s)
	if err != nil {
		return ID{}, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	return uuidID(b), nil
}

func (g *UUIDGenerator) IsValid(s string) bool {
	_, err := decodeUUIDString(s)
	return err == nil
}

// uuidID builds the value object, deriving the timestamp for the
// time-ordered versions.
func uuidID(b [16]byte) ID {
	version := int(b[6] >> 4)
	ts := int64(-1)
	sortable := false
	switch version {
	case 1:
		ticks := uint64(b[6]&0x0F)<<56 | uint64(b[7])<<48 |
			uint64(b[4])<<40 | uint64(b[5])<<32 |
			uint64(b[0])<<24 | uint64(b[1])<<16 | uint64(b[2])<<8 | uint64(b[3])
		ts = (int64(ticks) - gregorianToUnix100ns) / 10000
	case 6:
		t := uint64(binary.BigEndian.Uint32(b[0:4]))<<28 |
			uint64(binary.BigEndian.Uint16(b[4:6]))<<12 |
			uint64(b[6]&0x0F)<<8 | uint64(b[7])
		ts = (int64(t) - gregorianToUnix100ns) / 10000
		sortable = true
	case 7:
		ts = int64(b[0])<<40 | int64(b[1])<<32 | int64(b[2])<<24 |
			int64(b[3])<<16 | int64(b[4])<<8 | int64(b[5])
		sortable = true
	}
	return ID{
		kind:     KindUUID,
		str:      encodeUUIDString(b),
		raw:      b[:],
		ts:       ts,
		sortable: sortable,
		version:  version,
	}
}

// setVersionAndVariant forces the version nibble and the RFC variant bits.
func setVersionAndVariant(b *[16]byte, version int) {
	b[6] = (b[6] & 0x0F) | byte(version)<<4
	b[8] = (b[8] & 0x3F) | 0x80
}

func randomUUID(version int) ([16]byte, error) {
	var b [16]byte
	r, err := randomBytes(16)
	if err != nil {
		return b, err
	}
	copy(b[:], r)
	setVersionAndVariant(&b, version)
	return b, nil
}

// newUUIDv1 lays out the 60-bit Gregorian timestamp as time_low, time_mid,
// time_hi, with random clock sequence and node.
func newUUIDv1() ([16]byte, error) {
	var b [16]byte
	ticks := uint64(time.Now().UnixNano()/100) + gregorianToUnix100ns
	binary.BigEndian.PutUint32(b[0:4], uint32(ticks))
	binary.BigEndian.PutUint16(b[4:6], uint16(ticks>>32))
	binary.BigEndian.PutUint16(b[6:8], uint16(ticks>>48)&0x0FFF)
	tail, err := randomBytes(8)
	if err != nil {
		return b, err
	}
	copy(b[8:], tail)
	setVersionAndVariant(&b, 1)
	return b, nil
}

// newUUIDv6 reorders the v1 timestamp most-significant-first so the string
// form sorts chronologically.
func newUUIDv6() ([16]byte, error) {
	var b [16]byte
	ticks := uint64(time.Now().UnixNano()/100) + gregorianToUnix100ns
	binary.BigEndian.PutUint32(b[0:4], uint32(ticks>>28))
	binary.BigEndian.PutUint16(b[4:6], uint16(ticks>>12))
	binary.BigEndian.PutUint16(b[6:8], uint16(ticks)&0x0FFF)
	tail, err := randomBytes(8)
	if err != nil {
		return b, err
	}
	copy(b[8:], tail)
	setVersionAndVariant(&b, 6)
	return b, nil
}

// newUUIDv7 packs the 48-bit unix-millisecond timestamp followed by 74
// random bits.
func newUUIDv7() ([16]byte, error) {
	var b [16]byte
	ms := uint64(time.Now().UnixMilli())
	b[0] = byte(ms >> 40)
	b[1] = byte(ms >> 32)
	b[2] = byte(ms >> 24)
	b[3] = byte(ms >> 16)
	b[4] = byte(ms >> 8)
	b[5] = byte(ms)
	tail, err := randomBytes(10)
	if err != nil {
		return b, err
	}
	copy(b[6:], tail)
	setVersionAndVariant(&b, 7)
	return b, nil
}

// hashUUID digests namespace+name (MD5 for v3, SHA-1 for v5) and overwrites
// the version/variant bits, so the result is deterministic.
func hashUUID(version int, namespace [16]byte, name string) [16]byte {
	var sum []byte
	switch version {
	case 3:
		h := md5.New()
		h.Write(namespace[:])
		h.Write([]byte(name))
		sum = h.Sum(nil)
	case 5:
		h := sha1.New()
		h.Write(namespace[:])
		h.Write([]byte(name))
		sum = h.Sum(nil)
	}
	var b [16]byte
	copy(b[:], sum)
	setVersionAndVariant(&b, version)
	return b
}

func encodeUUIDString(b [16]byte) string {
	buf := make([]byte, 36)
	hex.Encode(buf[0:8], b[0:4])
	buf[8] = '-'
	hex.Encode(buf[9:13], b[4:6])
	buf[13] = '-'
	hex.Encode(buf[14:18], b[6:8])
	buf[18] = '-'
	hex.Encode(buf[19:23], b[8:10])
	buf[23] = '-'
	hex.Encode(buf[24:36], b[10:16])
	return string(buf)
}

func decodeUUIDString(s string) ([16]byte, error) {
	var b [16]byte
	if len(s) != 36 {
		return b, fmt.Errorf("uuid must be 36 characters, got %d", len(s))
	}
	if s[8] != '-' || s[13] != '-' || s[18] != '-' || s[23] != '-' {
		return b, fmt.Errorf("uuid has misplaced hyphens")
	}
	compact := s[0:8] + s[9:13] + s[14:18] + s[19:23] + s[24:36]
	if _, err := hex.Decode(b[:], []byte(compact)); err != nil {
		return b, fmt.Errorf("uuid contains non-hex characters")
	}
	return b, nil
}
