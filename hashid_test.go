package idforge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashid_GenerateIsUniqueAndParsable(t *testing.T) {
	g, err := NewHashid(HashidConfig{Salt: "generate salt"})
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

func TestHashid_EncodeDecode(t *testing.T) {
	g, err := NewHashid(HashidConfig{})
	require.NoError(t, err)

	id, err := g.Encode([]int64{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, "o2fXhV", id.String())
	assert.Equal(t, []uint64{1, 2, 3}, id.Numbers())

	assert.Equal(t, []int64{1, 2, 3}, g.Decode("o2fXhV"))

	_, err = g.Encode([]int64{-1})
	assert.Error(t, err)
}

func TestHashid_SaltIsolation(t *testing.T) {
	a, err := NewHashid(HashidConfig{Salt: "salt a"})
	require.NoError(t, err)
	b, err := NewHashid(HashidConfig{Salt: "salt b"})
	require.NoError(t, err)

	id, err := a.Encode([]int64{12345})
	require.NoError(t, err)

	_, err = b.Parse(id.String())
	assert.ErrorIs(t, err, ErrFormat)
	assert.False(t, b.IsValid(id.String()))
	assert.True(t, a.IsValid(id.String()))
}

func TestHashid_HexPassthrough(t *testing.T) {
	g, err := NewHashid(HashidConfig{Salt: "hex"})
	require.NoError(t, err)

	hash, err := g.EncodeHex("deadbeef")
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.Equal(t, "deadbeef", g.DecodeHex(hash))
}

func TestNewHashid_Validation(t *testing.T) {
	_, err := NewHashid(HashidConfig{Alphabet: "abc"})
	assert.ErrorIs(t, err, ErrConfig)

	_, err = NewHashid(HashidConfig{MinLength: -1})
	assert.ErrorIs(t, err, ErrConfig)
}
