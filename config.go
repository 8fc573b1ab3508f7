package idforge

import (
	"crypto/rand"
	"io"
)

// Config collects the per-kind configuration consumed by New. Zero values
// select each kind's defaults.
type Config struct {
	UUID      UUIDConfig
	ULID      ULIDConfig
	Snowflake SnowflakeConfig
	NanoID    NanoIDConfig
	CUID2     CUID2Config
	TypeID    TypeIDConfig
	Sqid      SqidConfig
	Hashid    HashidConfig
}

// UUIDConfig selects the UUID version to generate. Version 0 means v7, the
// recommended default. Namespace and Name are required for v3/v5 and ignored
// otherwise; Namespace is itself a UUID string.
type UUIDConfig struct {
	Version   int
	Namespace string
	Name      string
}

// ULIDConfig enables monotonic mode: calls within the same millisecond
// increment the random payload instead of redrawing it, preserving strict
// string ordering.
type ULIDConfig struct {
	Monotonic bool
}

// SnowflakeConfig sets the 10-bit node id ([0, 1023]) and the custom epoch in
// unix milliseconds. A zero epoch selects DefaultSnowflakeEpoch.
type SnowflakeConfig struct {
	NodeID int64
	Epoch  int64
}

// NanoIDConfig sets the id length (default 21) and the alphabet (default
// DefaultNanoIDAlphabet).
type NanoIDConfig struct {
	Size     int
	Alphabet string
}

// CUID2Config sets the id length, in [2, 32]. Zero means 24.
type CUID2Config struct {
	Length int
}

// TypeIDConfig sets the prefix: up to 63 lowercase letters with optional
// internal underscores, or empty for a bare suffix.
type TypeIDConfig struct {
	Prefix string
}

// SqidConfig mirrors the sqids engine configuration.
type SqidConfig struct {
	Alphabet  string
	MinLength int
	Blocklist []string
}

// HashidConfig mirrors the hashids engine configuration.
type HashidConfig struct {
	Salt      string
	MinLength int
	Alphabet  string
}

// randomBytes fills a fresh n-byte slice from crypto/rand.
func randomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return nil, err
	}
	return b, nil
}
