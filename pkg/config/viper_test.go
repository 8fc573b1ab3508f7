package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_ReadsConventionalFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, Name+".yaml")
	require.NoError(t, os.WriteFile(path, []byte("hashid:\n  salt: from-file\n"), 0o644))

	v, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "from-file", v.GetString("hashid.salt"))
}

func TestLoad_MissingFileIsNotAnError(t *testing.T) {
	v, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "", v.GetString("hashid.salt"))
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, Name+".yaml")
	require.NoError(t, os.WriteFile(path, []byte("hashid: [unclosed\n"), 0o644))

	_, err := Load(dir)
	assert.Error(t, err)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, Name+".yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: info\n"), 0o644))
	t.Setenv("LOG_LEVEL", "debug")

	v, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "debug", v.GetString("log.level"))
}
