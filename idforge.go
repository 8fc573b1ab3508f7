// Package idforge generates, parses and validates the common families of
// unique identifiers behind one Generator interface: UUID (v1/v3/v4/v5/v6/v7/v8),
// ULID, Snowflake, KSUID, TypeID, XID, ObjectID, PushID, Timeflake, CUID2,
// NanoID, and the Sqids/Hashids obfuscated-number codecs.
//
// Every generator produces immutable ID values that expose the string form,
// the binary form, the embedded timestamp where one exists, and whether the
// kind is lexicographically sortable. Generators validate their configuration
// at construction; Parse rejects malformed input with an error wrapping
// ErrFormat; IsValid never returns an error.
//
// Generators holding per-instance state (Snowflake, monotonic ULID, PushID,
// XID, ObjectID, Sqid/Hashid counters) serialize access with an internal
// mutex or atomics, so a single instance is safe for concurrent use. Distinct
// instances of node-scoped kinds (Snowflake, XID) should map to distinct
// logical nodes.
package idforge

import "fmt"

// Kind names an identifier type. The string value is the canonical lowercase
// type name returned by Generator.Name.
type Kind string

const (
	KindUUID      Kind = "uuid"
	KindULID      Kind = "ulid"
	KindSnowflake Kind = "snowflake"
	KindNanoID    Kind = "nanoid"
	KindSqid      Kind = "sqid"
	KindHashid    Kind = "hashid"
	KindKSUID     Kind = "ksuid"
	KindCUID2     Kind = "cuid2"
	KindTypeID    Kind = "typeid"
	KindXID       Kind = "xid"
	KindObjectID  Kind = "objectid"
	KindPushID    Kind = "pushid"
	KindTimeflake Kind = "timeflake"
)

// Generator is the interface implemented by every identifier algorithm.
type Generator interface {
	// Name returns the canonical lowercase type name.
	Name() string
	// Generate produces a new identifier.
	Generate() (ID, error)
	// GenerateBatch produces count identifiers in generation order.
	GenerateBatch(count int) ([]ID, error)
	// Parse decodes s, failing with an error wrapping ErrFormat when s is not
	// a well-formed identifier of this kind.
	Parse(s string) (ID, error)
	// IsValid reports whether s is structurally a well-formed identifier of
	// this kind. It never panics and has no side effects.
	IsValid(s string) bool
}

// New constructs a generator for kind from cfg. Unknown kinds and invalid
// per-kind configuration fail with an error wrapping ErrConfig.
func New(kind Kind, cfg Config) (Generator, error) {
	switch kind {
	case KindUUID:
		return NewUUID(cfg.UUID)
	case KindULID:
		return NewULID(cfg.ULID)
	case KindSnowflake:
		return NewSnowflake(cfg.Snowflake)
	case KindNanoID:
		return NewNanoID(cfg.NanoID)
	case KindSqid:
		return NewSqid(cfg.Sqid)
	case KindHashid:
		return NewHashid(cfg.Hashid)
	case KindKSUID:
		return NewKSUID(), nil
	case KindCUID2:
		return NewCUID2(cfg.CUID2)
	case KindTypeID:
		return NewTypeID(cfg.TypeID)
	case KindXID:
		return NewXID()
	case KindObjectID:
		return NewObjectID()
	case KindPushID:
		return NewPushID(), nil
	case KindTimeflake:
		return NewTimeflake(), nil
	default:
		return nil, fmt.Errorf("%w: unknown kind %q", ErrConfig, kind)
	}
}

// Kinds lists every supported kind.
func Kinds() []Kind {
	return []Kind{
		KindUUID, KindULID, KindSnowflake, KindNanoID, KindSqid, KindHashid,
		KindKSUID, KindCUID2, KindTypeID, KindXID, KindObjectID, KindPushID,
		KindTimeflake,
	}
}

// generateBatch implements GenerateBatch over a single-id generate func.
func generateBatch(count int, generate func() (ID, error)) ([]ID, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: batch count must not be negative, got %d", ErrConfig, count)
	}
	ids := make([]ID, 0, count)
	for i := 0; i < count; i++ {
		id, err := generate()
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
