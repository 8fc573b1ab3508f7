package idforge

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPushID_GenerateShape(t *testing.T) {
	g := NewPushID()

	id, err := g.Generate()
	require.NoError(t, err)
	assert.Len(t, id.String(), 20)
	assert.Len(t, id.Bytes(), 15)
	assert.True(t, id.Sortable())
	for i := 0; i < len(id.String()); i++ {
		assert.Contains(t, PushIDAlphabet, string(id.String()[i]))
	}

	ts, ok := id.Time()
	require.True(t, ok)
	assert.WithinDuration(t, time.Now(), ts, 2*time.Second)
}

func TestPushID_OrderedWithinBatch(t *testing.T) {
	g := NewPushID()

	ids, err := g.GenerateBatch(500)
	require.NoError(t, err)
	for i := 1; i < len(ids); i++ {
		// Same-millisecond ids increment the random tail, later milliseconds
		// have a greater timestamp prefix.
		assert.Less(t, ids[i-1].String(), ids[i].String())
	}
}

func TestPushID_ParseRoundTrip(t *testing.T) {
	g := NewPushID()

	id, err := g.Generate()
	require.NoError(t, err)

	parsed, err := g.Parse(id.String())
	require.NoError(t, err)
	assert.Equal(t, id.String(), parsed.String())
	assert.Equal(t, id.Bytes(), parsed.Bytes())

	ms, _ := id.Timestamp()
	pms, _ := parsed.Timestamp()
	assert.Equal(t, ms, pms)
}

func TestPushID_TimestampSymbolOrder(t *testing.T) {
	g := NewPushID()

	// All-minimum timestamp symbols decode to zero milliseconds.
	id, err := g.Parse("--------" + strings.Repeat("0", 12))
	require.NoError(t, err)
	ms, ok := id.Timestamp()
	require.True(t, ok)
	assert.Equal(t, int64(0), ms)
}

func TestPushID_SameMillisecondIncrementsTail(t *testing.T) {
	g := NewPushID()
	g.now = func() int64 { return 1700000000000 }

	first, err := g.Generate()
	require.NoError(t, err)
	second, err := g.Generate()
	require.NoError(t, err)
	assert.Equal(t, first.String()[:8], second.String()[:8])
	assert.Less(t, first.String(), second.String())
}

func TestPushID_RandomTailWrapsSilently(t *testing.T) {
	g := NewPushID()
	const ms = int64(1700000000000)
	g.now = func() int64 { return ms }

	// All twelve random symbols at their maximum: the next increment carries
	// through every position and wraps the tail to all zeros. Ordering is
	// knowingly lost in that one millisecond, for compatibility with the
	// reference implementations.
	g.lastMs = ms
	for i := range g.lastRand {
		g.lastRand[i] = 63
	}

	id, err := g.Generate()
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat(string(PushIDAlphabet[0]), 12), id.String()[8:])

	got, _ := id.Timestamp()
	assert.Equal(t, ms, got)
}

func TestPushID_ParseRejectsMalformed(t *testing.T) {
	g := NewPushID()

	for _, s := range []string{
		"",
		"-N3_short",
		strings.Repeat("a", 19),
		strings.Repeat("a", 21),
		strings.Repeat("a", 19) + "+", // + is not in the alphabet
	} {
		_, err := g.Parse(s)
		assert.ErrorIs(t, err, ErrFormat, "%q", s)
		assert.False(t, g.IsValid(s), "%q", s)
	}
	assert.True(t, g.IsValid(strings.Repeat("z", 20)))
}
