package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mapLookup(m map[string]string) Lookup {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 16, cfg.ScopeCacheSize)
	assert.Equal(t, ColorAuto, cfg.Color)
	assert.False(t, cfg.PedanticErrors)
	assert.Zero(t, cfg.ErrorLimit)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFileOverlaysDefaults(t *testing.T) {
	path := writeFile(t, "cfront.yaml", `
pedantic_errors: true
error_limit: 5
include_paths: [include, /usr/local/include]
defines: ["DEBUG", "N=3"]
`)
	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.True(t, cfg.PedanticErrors)
	assert.Equal(t, 5, cfg.ErrorLimit)
	assert.Equal(t, []string{"include", "/usr/local/include"}, cfg.IncludePaths)
	assert.Equal(t, []string{"DEBUG", "N=3"}, cfg.Defines)
	// untouched keys keep their defaults
	assert.Equal(t, 16, cfg.ScopeCacheSize)
	assert.Equal(t, ColorAuto, cfg.Color)
}

func TestLoadFileEmpty(t *testing.T) {
	cfg, err := LoadFile(writeFile(t, "empty.yaml", ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFileErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown key", "scope_cache: 3\n"},
		{"wrong type", "error_limit: lots\n"},
		{"bad color", "color: sometimes\n"},
		{"negative cache", "scope_cache_size: -1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFile(writeFile(t, "bad.yaml", tt.content))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	err := cfg.ApplyEnv(mapLookup(map[string]string{
		EnvScopeCache:     "0",
		EnvPedanticErrors: "true",
		EnvNoWarnings:     "1",
		EnvErrorLimit:     " 20 ",
	}))
	require.NoError(t, err)

	assert.Equal(t, 0, cfg.ScopeCacheSize)
	assert.True(t, cfg.PedanticErrors)
	assert.True(t, cfg.NoWarnings)
	assert.Equal(t, 20, cfg.ErrorLimit)
}

func TestApplyEnvColor(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.ApplyEnv(mapLookup(map[string]string{EnvNoColor: ""})))
	assert.Equal(t, ColorNever, cfg.Color)

	cfg = Default()
	require.NoError(t, cfg.ApplyEnv(mapLookup(map[string]string{EnvNoColor: "1", EnvColor: "Always"})))
	assert.Equal(t, ColorAlways, cfg.Color)
}

func TestApplyEnvErrors(t *testing.T) {
	tests := map[string]string{
		EnvScopeCache:     "many",
		EnvPedanticErrors: "perhaps",
		EnvErrorLimit:     "-2",
		EnvColor:          "rainbow",
	}
	for key, val := range tests {
		t.Run(key, func(t *testing.T) {
			err := Default().ApplyEnv(mapLookup(map[string]string{key: val}))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestEnvironPrecedence(t *testing.T) {
	path := writeFile(t, ".env", "CFRONT_TEST_FROM_FILE=file\nCFRONT_TEST_BOTH=file\n")
	t.Setenv("CFRONT_TEST_BOTH", "process")

	lookup, err := Environ(path)
	require.NoError(t, err)

	v, ok := lookup("CFRONT_TEST_FROM_FILE")
	assert.True(t, ok)
	assert.Equal(t, "file", v)

	v, ok = lookup("CFRONT_TEST_BOTH")
	assert.True(t, ok)
	assert.Equal(t, "process", v)

	_, ok = lookup("CFRONT_TEST_UNSET_ANYWHERE")
	assert.False(t, ok)
}

func TestEnvironMissingFile(t *testing.T) {
	_, err := Environ(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}

func TestLayering(t *testing.T) {
	path := writeFile(t, "cfront.yaml", "scope_cache_size: 4\nerror_limit: 7\n")
	cfg, err := LoadFile(path)
	require.NoError(t, err)

	require.NoError(t, cfg.ApplyEnv(mapLookup(map[string]string{EnvScopeCache: "2"})))
	assert.Equal(t, 2, cfg.ScopeCacheSize, "env beats file")
	assert.Equal(t, 7, cfg.ErrorLimit, "file beats default")

	opts := cfg.DiagOptions()
	assert.Equal(t, 7, opts.ErrorLimit)
}
