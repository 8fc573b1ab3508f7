package idforge

import (
	"encoding/binary"
	"strings"
	"time"
)

// ID is an immutable identifier value: the canonical string form, the binary
// form, and whatever auxiliary fields the owning algorithm decoded. IDs are
// constructed only by a Generator's Generate or Parse; decoding the string
// form always reproduces the byte form exactly.
type ID struct {
	kind     Kind
	str      string
	raw      []byte
	ts       int64 // unix ms; -1 when the kind embeds no timestamp
	sortable bool
	version  int      // UUID only
	prefix   string   // TypeID only
	numbers  []uint64 // Sqid/Hashid only
}

// Kind returns the identifier type that produced this ID.
func (id ID) Kind() Kind { return id.kind }

// String returns the canonical string form.
func (id ID) String() string { return id.str }

// Bytes returns a copy of the binary form.
func (id ID) Bytes() []byte {
	return append([]byte(nil), id.raw...)
}

// Timestamp returns the embedded timestamp in unix milliseconds. ok is false
// for kinds that do not embed one (UUID v3/4/5/8, CUID2, NanoID, Sqid,
// Hashid).
func (id ID) Timestamp() (ms int64, ok bool) {
	if id.ts < 0 {
		return 0, false
	}
	return id.ts, true
}

// Time is Timestamp as a time.Time.
func (id ID) Time() (time.Time, bool) {
	ms, ok := id.Timestamp()
	if !ok {
		return time.Time{}, false
	}
	return time.UnixMilli(ms), true
}

// Sortable reports whether ids of this kind sort approximately
// chronologically when compared as plain strings.
func (id ID) Sortable() bool { return id.sortable }

// Equal reports string-representation equality between ids of the same kind.
func (id ID) Equal(other ID) bool {
	return id.kind == other.kind && id.str == other.str
}

// Version returns the UUID version nibble, or 0 for other kinds.
func (id ID) Version() int { return id.version }

// Prefix returns the TypeID prefix, or "" for other kinds.
func (id ID) Prefix() string { return id.prefix }

// Suffix returns the TypeID suffix (the part after the last underscore), or
// "" for other kinds.
func (id ID) Suffix() string {
	if id.kind != KindTypeID {
		return ""
	}
	if i := strings.LastIndexByte(id.str, '_'); i >= 0 {
		return id.str[i+1:]
	}
	return id.str
}

// Numbers returns the decoded Sqid/Hashid numbers, or nil for other kinds.
func (id ID) Numbers() []uint64 {
	return append([]uint64(nil), id.numbers...)
}

// NodeID returns the Snowflake node id, re-derived from the binary form.
// Zero for other kinds.
func (id ID) NodeID() int64 {
	if id.kind != KindSnowflake || len(id.raw) != 8 {
		return 0
	}
	n := int64(binary.BigEndian.Uint64(id.raw))
	return (n >> snowflakeNodeShift) & snowflakeMaxNode
}

// Sequence returns the Snowflake sequence number, re-derived from the binary
// form. Zero for other kinds.
func (id ID) Sequence() int64 {
	if id.kind != KindSnowflake || len(id.raw) != 8 {
		return 0
	}
	return int64(binary.BigEndian.Uint64(id.raw)) & snowflakeMaxSequence
}
