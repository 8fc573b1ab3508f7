package idforge

import (
	"testing"
	"time"

	guuid "github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dnsNamespace = "6ba7b810-9dad-11d1-80b4-00c04fd430c8"

func TestUUID_DefaultIsV7(t *testing.T) {
	g, err := NewUUID(UUIDConfig{})
	require.NoError(t, err)

	id, err := g.Generate()
	require.NoError(t, err)
	assert.Equal(t, 7, id.Version())
	assert.True(t, id.Sortable())

	parsed, err := guuid.Parse(id.String())
	require.NoError(t, err)
	assert.Equal(t, guuid.Version(7), parsed.Version())
}

func TestUUID_V4(t *testing.T) {
	g, err := NewUUID(UUIDConfig{Version: 4})
	require.NoError(t, err)

	id, err := g.Generate()
	require.NoError(t, err)
	assert.Equal(t, 4, id.Version())
	assert.False(t, id.Sortable())
	_, ok := id.Timestamp()
	assert.False(t, ok)

	parsed, err := guuid.Parse(id.String())
	require.NoError(t, err)
	assert.Equal(t, guuid.RFC4122, parsed.Variant())
}

func TestUUID_V3V5_MatchReference(t *testing.T) {
	for _, tc := range []struct {
		version int
		want    guuid.UUID
	}{
		{3, guuid.NewMD5(guuid.NameSpaceDNS, []byte("example.com"))},
		{5, guuid.NewSHA1(guuid.NameSpaceDNS, []byte("example.com"))},
	} {
		g, err := NewUUID(UUIDConfig{
			Version:   tc.version,
			Namespace: dnsNamespace,
			Name:      "example.com",
		})
		require.NoError(t, err)

		id, err := g.Generate()
		require.NoError(t, err)
		assert.Equal(t, tc.want.String(), id.String(), "v%d", tc.version)

		// Deterministic: a second call yields the same id.
		again, err := g.Generate()
		require.NoError(t, err)
		assert.True(t, id.Equal(again))
	}
}

func TestUUID_V1V6V7_EmbedCurrentTime(t *testing.T) {
	for _, version := range []int{1, 6, 7} {
		g, err := NewUUID(UUIDConfig{Version: version})
		require.NoError(t, err)

		before := time.Now().Add(-time.Second)
		id, err := g.Generate()
		require.NoError(t, err)
		after := time.Now().Add(time.Second)

		ts, ok := id.Time()
		require.True(t, ok, "v%d", version)
		assert.True(t, ts.After(before) && ts.Before(after), "v%d: %s", version, ts)
		assert.Equal(t, version == 6 || version == 7, id.Sortable(), "v%d", version)
	}
}

func TestUUID_V6SortsByGenerationOrder(t *testing.T) {
	g, err := NewUUID(UUIDConfig{Version: 6})
	require.NoError(t, err)

	ids, err := g.GenerateBatch(50)
	require.NoError(t, err)
	for i := 1; i < len(ids); i++ {
		// Same-tick ids may compare equal on the timestamp prefix but the
		// encoded time never decreases.
		a, _ := ids[i-1].Timestamp()
		b, _ := ids[i].Timestamp()
		assert.LessOrEqual(t, a, b)
	}
}

func TestUUID_ParseRoundTrip(t *testing.T) {
	g, err := NewUUID(UUIDConfig{Version: 4})
	require.NoError(t, err)

	ref := guuid.New()
	id, err := g.Parse(ref.String())
	require.NoError(t, err)
	assert.Equal(t, ref.String(), id.String())
	assert.Equal(t, ref[:], id.Bytes())
	assert.Equal(t, 4, id.Version())
}

func TestUUID_ParseRejectsMalformed(t *testing.T) {
	g, err := NewUUID(UUIDConfig{})
	require.NoError(t, err)

	for _, s := range []string{
		"",
		"not-a-uuid",
		"6ba7b8109dad11d180b400c04fd430c8",                       // missing hyphens
		"6ba7b810-9dad-11d1-80b4-00c04fd430c8f",                  // too long
		"6ba7b810-9dad-11d1-80b4-00c04fd430cg",                   // non-hex
		"6ba7b810x9dad-11d1-80b4-00c04fd430c8",                   // misplaced hyphen
		"6ba7b810-9dad-11d1-80b4-00c04fd430c ",                   // trailing space
	} {
		_, err := g.Parse(s)
		assert.ErrorIs(t, err, ErrFormat, "%q", s)
		assert.False(t, g.IsValid(s), "%q", s)
	}
	assert.True(t, g.IsValid(dnsNamespace))
}

func TestNewUUID_Validation(t *testing.T) {
	_, err := NewUUID(UUIDConfig{Version: 2})
	assert.ErrorIs(t, err, ErrConfig)

	_, err = NewUUID(UUIDConfig{Version: 9})
	assert.ErrorIs(t, err, ErrConfig)

	_, err = NewUUID(UUIDConfig{Version: 5, Namespace: dnsNamespace})
	assert.ErrorIs(t, err, ErrConfig, "missing name")

	_, err = NewUUID(UUIDConfig{Version: 3, Namespace: "bogus", Name: "x"})
	assert.ErrorIs(t, err, ErrConfig, "bad namespace")
}
