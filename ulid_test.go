package idforge

import (
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestULID_GenerateShape(t *testing.T) {
	g, err := NewULID(ULIDConfig{})
	require.NoError(t, err)

	id, err := g.Generate()
	require.NoError(t, err)
	assert.Len(t, id.String(), 26)
	assert.Len(t, id.Bytes(), 16)
	assert.True(t, id.Sortable())

	ms, ok := id.Timestamp()
	require.True(t, ok)
	assert.InDelta(t, time.Now().UnixMilli(), ms, 2000)
}

func TestULID_MatchesReferenceDecoding(t *testing.T) {
	g, err := NewULID(ULIDConfig{})
	require.NoError(t, err)

	id, err := g.Generate()
	require.NoError(t, err)

	ref, err := ulid.ParseStrict(id.String())
	require.NoError(t, err)
	assert.Equal(t, ref[:], id.Bytes())

	ms, _ := id.Timestamp()
	assert.Equal(t, ref.Time(), uint64(ms))
}

func TestULID_ParsesReferenceOutput(t *testing.T) {
	g, err := NewULID(ULIDConfig{})
	require.NoError(t, err)

	ref := ulid.Make()
	id, err := g.Parse(ref.String())
	require.NoError(t, err)
	assert.Equal(t, ref.String(), id.String())
	assert.Equal(t, ref[:], id.Bytes())
}

func TestULID_MonotonicWithinMillisecond(t *testing.T) {
	g, err := NewULID(ULIDConfig{Monotonic: true})
	require.NoError(t, err)

	ids, err := g.GenerateBatch(1000)
	require.NoError(t, err)
	for i := 1; i < len(ids); i++ {
		assert.Less(t, ids[i-1].String(), ids[i].String())
	}
}

func TestULID_ParseCorrectsAmbiguousCharacters(t *testing.T) {
	g, err := NewULID(ULIDConfig{})
	require.NoError(t, err)

	canonical, err := g.Parse("01ARZ3NDEKTSV4RRFFQ69G5FAV")
	require.NoError(t, err)

	// Lowercase and I/L/O substitutions decode to the same id.
	relaxed, err := g.Parse("0larz3ndektsv4rrffq69g5fav")
	require.NoError(t, err)
	assert.Equal(t, canonical.Bytes(), relaxed.Bytes())
	assert.Equal(t, canonical.String(), relaxed.String())
}

func TestULID_ParseRejectsMalformed(t *testing.T) {
	g, err := NewULID(ULIDConfig{})
	require.NoError(t, err)

	for _, s := range []string{
		"",
		"01ARZ3NDEKTSV4RRFFQ69G5FA",    // 25 chars
		"01ARZ3NDEKTSV4RRFFQ69G5FAVX",  // 27 chars
		"01ARZ3NDEKTSV4RRFFQ69G5FAU",   // U is excluded
		"81ARZ3NDEKTSV4RRFFQ69G5FAV",   // above 2^128-1
		"01ARZ3NDEKTSV4RRFFQ69G5FA!",   // punctuation
	} {
		_, err := g.Parse(s)
		assert.ErrorIs(t, err, ErrFormat, "%q", s)
		assert.False(t, g.IsValid(s), "%q", s)
	}
	assert.True(t, g.IsValid("01ARZ3NDEKTSV4RRFFQ69G5FAV"))
	assert.True(t, g.IsValid("7ZZZZZZZZZZZZZZZZZZZZZZZZZ"))
	assert.False(t, g.IsValid("8ZZZZZZZZZZZZZZZZZZZZZZZZZ"))
}
