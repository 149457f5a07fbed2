package atlasconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsOnly(t *testing.T) {
	cfg, err := Load("", Overrides{})
	require.NoError(t, err)
	require.Equal(t, 64, cfg.TextureWidth)
	require.Equal(t, 64, cfg.TextureHeight)
	require.True(t, cfg.Merge)
}

func TestLoadFromFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "atlaspack.yaml")
	require.NoError(t, os.WriteFile(path, []byte("texture_width: 128\nmerge: false\n"), 0o644))

	cfg, err := Load(path, Overrides{})
	require.NoError(t, err)
	require.Equal(t, 128, cfg.TextureWidth)
	require.Equal(t, 64, cfg.TextureHeight)
	require.False(t, cfg.Merge)
}

func TestFlagOverridesBeatFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "atlaspack.yaml")
	require.NoError(t, os.WriteFile(path, []byte("texture_width: 128\n"), 0o644))

	flagWidth := 256
	cfg, err := Load(path, Overrides{TextureWidth: &flagWidth})
	require.NoError(t, err)
	require.Equal(t, 256, cfg.TextureWidth)
}

func TestLoadRejectsMissingExplicitFile(t *testing.T) {
	_, err := Load("/nonexistent/atlaspack.yaml", Overrides{})
	require.Error(t, err)
}

func TestLoadRejectsNonPositiveDimensions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "atlaspack.yaml")
	require.NoError(t, os.WriteFile(path, []byte("texture_width: 0\n"), 0o644))

	_, err := Load(path, Overrides{})
	require.Error(t, err)
}
