package scene_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pathtracer/scene"
)

func TestLoadRenderConfigParsesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "backend: cpu\ntile_size: 32\nworkers: 0\nseed: 42\noutput: out.png\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := scene.LoadRenderConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "cpu", cfg.Backend)
	assert.Equal(t, 32, cfg.TileSize)
	assert.Equal(t, 0, cfg.Workers)
	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, "out.png", cfg.Output)
}

func TestLoadRenderConfigRejectsUnknownBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "backend: quantum\noutput: out.png\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := scene.LoadRenderConfig(path)
	assert.Error(t, err)
}
