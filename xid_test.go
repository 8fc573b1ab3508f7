package idforge

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var xidPattern = regexp.MustCompile(`^[0-9a-v]{20}$`)

func TestXID_GenerateShape(t *testing.T) {
	g, err := NewXID()
	require.NoError(t, err)

	id, err := g.Generate()
	require.NoError(t, err)
	assert.Regexp(t, xidPattern, id.String())
	assert.Len(t, id.Bytes(), 12)
	assert.True(t, id.Sortable())

	ts, ok := id.Time()
	require.True(t, ok)
	assert.WithinDuration(t, time.Now(), ts, 2*time.Second)
}

func TestXID_CounterAdvances(t *testing.T) {
	g, err := NewXID()
	require.NoError(t, err)

	ids, err := g.GenerateBatch(100)
	require.NoError(t, err)

	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		_, dup := seen[id.String()]
		assert.False(t, dup, "duplicate id %s", id.String())
		seen[id.String()] = struct{}{}

		// Machine id and pid bytes are identical across the batch.
		assert.Equal(t, ids[0].Bytes()[4:9], id.Bytes()[4:9])
	}
}

func TestXID_ParseRoundTrip(t *testing.T) {
	g, err := NewXID()
	require.NoError(t, err)

	id, err := g.Generate()
	require.NoError(t, err)

	parsed, err := g.Parse(id.String())
	require.NoError(t, err)
	assert.Equal(t, id.String(), parsed.String())
	assert.Equal(t, id.Bytes(), parsed.Bytes())
}

func TestXID_ParseRejectsMalformed(t *testing.T) {
	g, err := NewXID()
	require.NoError(t, err)

	for _, s := range []string{
		"",
		"9m4e2mr0ui3e8a215n4",    // 19 chars
		"9m4e2mr0ui3e8a215n4gg",  // 21 chars
		"9m4e2mr0ui3e8a215n4w",   // w is outside base32hex
		"9M4E2MR0UI3E8A215N4G",   // uppercase
	} {
		_, err := g.Parse(s)
		assert.ErrorIs(t, err, ErrFormat, "%q", s)
		assert.False(t, g.IsValid(s), "%q", s)
	}
	assert.True(t, g.IsValid("9m4e2mr0ui3e8a215n4g"))
}
