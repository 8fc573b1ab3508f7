package idforge

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeflake_GenerateShape(t *testing.T) {
	g := NewTimeflake()

	id, err := g.Generate()
	require.NoError(t, err)
	assert.Len(t, id.String(), 22)
	assert.Len(t, id.Bytes(), 16)
	assert.True(t, id.Sortable())

	ts, ok := id.Time()
	require.True(t, ok)
	assert.WithinDuration(t, time.Now(), ts, 2*time.Second)
}

func TestTimeflake_ParseRoundTrip(t *testing.T) {
	g := NewTimeflake()

	id, err := g.Generate()
	require.NoError(t, err)

	parsed, err := g.Parse(id.String())
	require.NoError(t, err)
	assert.Equal(t, id.String(), parsed.String())
	assert.Equal(t, id.Bytes(), parsed.Bytes())
}

func TestTimeflake_HexForm(t *testing.T) {
	g := NewTimeflake()

	id, err := g.Generate()
	require.NoError(t, err)

	hexForm := g.HexString(id)
	assert.Len(t, hexForm, 32)

	parsed, err := g.ParseHex(hexForm)
	require.NoError(t, err)
	assert.Equal(t, id.Bytes(), parsed.Bytes())
	assert.Equal(t, id.String(), parsed.String())
}

func TestTimeflake_ParseRejectsMalformed(t *testing.T) {
	g := NewTimeflake()

	for _, s := range []string{
		"",
		"tooShort",
		"0123456789012345678901x", // 23 chars
		"012345678901234567890!",  // punctuation
	} {
		_, err := g.Parse(s)
		assert.ErrorIs(t, err, ErrFormat, "%q", s)
		assert.False(t, g.IsValid(s), "%q", s)
	}

	_, err := g.ParseHex("not-hex")
	assert.ErrorIs(t, err, ErrFormat)
	_, err = g.ParseHex("zz6fb88872d0b5679c33b06f89e0e2e9")
	assert.ErrorIs(t, err, ErrFormat)

	assert.True(t, g.IsValid("0000000000000000000000"))
}
