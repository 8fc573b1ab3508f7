package idforge

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/idforge/idforge/basex"
)

const (
	typeidMaxPrefixLen = 63
	typeidSuffixLen    = 26
)

// Prefix grammar: lowercase letters with optional internal underscores,
// never leading or trailing.
var typeidPrefixRe = regexp.MustCompile(`^[a-z]([a-z_]*[a-z])?$`)

// TypeIDGenerator produces TypeIDs: an optional lowercase prefix joined by
// an underscore to a 26-character suffix encoding a UUIDv7 payload in the
// lowercase Crockford alphabet. The first suffix character is limited to 0-7
// so the value never exceeds 128 bits.
type TypeIDGenerator struct {
	prefix string
}

// NewTypeID validates the prefix and returns a TypeID generator.
func NewTypeID(cfg TypeIDConfig) (*TypeIDGenerator, error) {
	if cfg.Prefix != "" {
		if len(cfg.Prefix) > typeidMaxPrefixLen {
			return nil, fmt.Errorf("%w: typeid prefix must be at most %d characters, got %d", ErrConfig, typeidMaxPrefixLen, len(cfg.Prefix))
		}
		if !typeidPrefixRe.MatchString(cfg.Prefix) {
			return nil, fmt.Errorf("%w: typeid prefix %q must match %s", ErrConfig, cfg.Prefix, typeidPrefixRe)
		}
	}
	return &TypeIDGenerator{prefix: cfg.Prefix}, nil
}

func (g *TypeIDGenerator) Name() string { return string(KindTypeID) }

func (g *TypeIDGenerator) Generate() (ID, error) {
	b, err := newUUIDv7()
	if err != nil {
		return ID{}, fmt.Errorf("typeid: %w", err)
	}
	return typeidID(g.prefix, b[:]), nil
}

func (g *TypeIDGenerator) GenerateBatch(count int) ([]ID, error) {
	return generateBatch(count, g.Generate)
}

// Parse accepts any well-formed TypeID regardless of the generator's own
// prefix; the decoded prefix is exposed on the ID.
func (g *TypeIDGenerator) Parse(s string) (ID, error) {
	prefix, suffix, err := splitTypeID(s)
	if err != nil {
		return ID{}, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	raw, err := basex.CrockfordLower.DecodeBytes(suffix, 16)
	if err != nil {
		return ID{}, fmt.Errorf("%w: typeid suffix: %v", ErrFormat, err)
	}
	return typeidID(prefix, raw), nil
}

func (g *TypeIDGenerator) IsValid(s string) bool {
	prefix, suffix, err := splitTypeID(s)
	if err != nil {
		return false
	}
	_ = prefix
	_, err = basex.CrockfordLower.DecodeBytes(suffix, 16)
	return err == nil
}

func splitTypeID(s string) (prefix, suffix string, err error) {
	suffix = s
	if i := strings.LastIndexByte(s, '_'); i >= 0 {
		prefix, suffix = s[:i], s[i+1:]
		if prefix == "" {
			return "", "", fmt.Errorf("typeid prefix must not be empty when an underscore is present")
		}
		if len(prefix) > typeidMaxPrefixLen || !typeidPrefixRe.MatchString(prefix) {
			return "", "", fmt.Errorf("invalid typeid prefix %q", prefix)
		}
	}
	if len(suffix) != typeidSuffixLen {
		return "", "", fmt.Errorf("typeid suffix must be %d characters, got %d", typeidSuffixLen, len(suffix))
	}
	if suffix[0] > '7' {
		return "", "", fmt.Errorf("typeid suffix first character must be 0-7")
	}
	return prefix, suffix, nil
}

func typeidID(prefix string, raw []byte) ID {
	suffix := basex.CrockfordLower.EncodeBytes(raw, typeidSuffixLen)
	str := suffix
	if prefix != "" {
		str = prefix + "_" + suffix
	}
	ts := int64(raw[0])<<40 | int64(raw[1])<<32 | int64(raw[2])<<24 |
		int64(raw[3])<<16 | int64(raw[4])<<8 | int64(raw[5])
	return ID{
		kind:     KindTypeID,
		str:      str,
		raw:      raw,
		ts:       ts,
		sortable: true,
		prefix:   prefix,
	}
}
