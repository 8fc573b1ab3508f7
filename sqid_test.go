package idforge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSqid_GenerateIsUniqueAndParsable(t *testing.T) {
	g, err := NewSqid(SqidConfig{})
	require.NoError(t, err)

	ids, err := g.GenerateBatch(100)
	require.NoError(t, err)

	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		_, dup := seen[id.String()]
		assert.False(t, dup, "duplicate id %s", id.String())
		seen[id.String()] = struct{}{}

		parsed, err := g.Parse(id.String())
		require.NoError(t, err)
		assert.Equal(t, id.Numbers(), parsed.Numbers())
		assert.Len(t, id.Numbers(), 2)
	}
}

func TestSqid_EncodeDecode(t *testing.T) {
	g, err := NewSqid(SqidConfig{})
	require.NoError(t, err)

	id, err := g.Encode([]uint64{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, "86Rf07", id.String())
	assert.Equal(t, []uint64{1, 2, 3}, id.Numbers())
	assert.Len(t, id.Bytes(), 24)

	assert.Equal(t, []uint64{1, 2, 3}, g.Decode("86Rf07"))
	assert.Empty(t, g.Decode("not a sqid!"))
}

func TestSqid_MinLength(t *testing.T) {
	g, err := NewSqid(SqidConfig{MinLength: 12})
	require.NoError(t, err)

	id, err := g.Encode([]uint64{42})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(id.String()), 12)
	assert.Equal(t, []uint64{42}, g.Decode(id.String()))
}

func TestSqid_ParseRejectsMalformed(t *testing.T) {
	g, err := NewSqid(SqidConfig{})
	require.NoError(t, err)

	for _, s := range []string{"", "*", "86Rf07x"} {
		_, err := g.Parse(s)
		assert.ErrorIs(t, err, ErrFormat, "%q", s)
	}
	assert.False(t, g.IsValid(""))
	assert.True(t, g.IsValid("86Rf07"))
}

func TestNewSqid_Validation(t *testing.T) {
	_, err := NewSqid(SqidConfig{Alphabet: "ab"})
	assert.ErrorIs(t, err, ErrConfig)

	_, err = NewSqid(SqidConfig{MinLength: 300})
	assert.ErrorIs(t, err, ErrConfig)
}
