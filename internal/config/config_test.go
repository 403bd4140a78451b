package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fap/internal/regex"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, regex.DefaultGlyphs, cfg.RegexGlyphs())
	assert.Equal(t, []string{"a", "b"}, cfg.DefaultAlphabet)
	assert.Equal(t, time.Second, cfg.Simulator.Delay)
}

func TestParseOverridesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
glyphs:
  epsilon: "e"
default_alphabet: ["0", "1"]
simulator:
  delay: 250ms
log:
  level: debug
  format: json
`))
	require.NoError(t, err)
	assert.Equal(t, "e", cfg.Glyphs.Epsilon)
	assert.Equal(t, "∅", cfg.Glyphs.Empty, "unset keys keep their default")
	assert.Equal(t, []string{"0", "1"}, cfg.DefaultAlphabet)
	assert.Equal(t, 250*time.Millisecond, cfg.Simulator.Delay)
	assert.Equal(t, regex.DefaultMaxPasses, cfg.Simplifier.MaxPasses)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestParseRejects(t *testing.T) {
	tests := map[string]string{
		"syntax":         "glyphs: [",
		"empty glyph":    "glyphs: {epsilon: ''}",
		"same glyphs":    "glyphs: {epsilon: x, empty: x}",
		"long symbol":    "default_alphabet: [ab]",
		"zero passes":    "simplifier: {max_passes: 0}",
		"negative delay": "simulator: {delay: -1s}",
		"unknown level":  "log: {level: loud}",
		"unknown format": "log: {format: xml}",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			require.Error(t, err)
			assert.True(t, IsInvalid(err))
		})
	}
}

func TestLoad(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	path := filepath.Join(t.TempDir(), "fap.yaml")
	require.NoError(t, os.WriteFile(path, []byte("simplifier: {max_passes: 8}\n"), 0o644))
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Simplifier.MaxPasses)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.False(t, IsInvalid(err))
}
