package config

import (
	"testing"

	"github.com/idforge/idforge"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.UUID.Version)
	assert.True(t, cfg.ULID.Monotonic)
	assert.Equal(t, int64(1), cfg.Snowflake.NodeID)
	assert.Equal(t, idforge.DefaultSnowflakeEpoch, cfg.Snowflake.Epoch)
	assert.Equal(t, idforge.DefaultNanoIDSize, cfg.NanoID.Size)
	assert.Equal(t, idforge.DefaultCUID2Length, cfg.CUID2.Length)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("UUID_VERSION", "4")
	t.Setenv("SNOWFLAKE_NODE_ID", "77")
	t.Setenv("HASHID_SALT", "from-env")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.UUID.Version)
	assert.Equal(t, int64(77), cfg.Snowflake.NodeID)
	assert.Equal(t, "from-env", cfg.Hashid.Salt)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestGenerators_FeedsLibraryConfig(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	lib := cfg.Generators()
	for _, kind := range idforge.Kinds() {
		g, err := idforge.New(kind, lib)
		require.NoError(t, err, string(kind))

		id, err := g.Generate()
		require.NoError(t, err, string(kind))
		assert.True(t, g.IsValid(id.String()), string(kind))
	}
}
