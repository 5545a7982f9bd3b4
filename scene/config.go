package scene

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RenderConfig controls how a render is driven — which backend, how the
// image is tiled across workers, the RNG seed, and where output goes — kept
// separate from the scene description (File) so the same scene can be
// rendered under different backend/dispatch settings without touching the
// geometry.
type RenderConfig struct {
	Backend     string `yaml:"backend"` // "cpu" or "gpu"
	TileSize    int    `yaml:"tile_size"`
	Workers     int    `yaml:"workers"` // <= 0 = runtime.GOMAXPROCS(0)
	Seed        int64  `yaml:"seed"`
	Output      string `yaml:"output"`
	BVHDebugSVG string `yaml:"bvh_debug_svg,omitempty"`
}

// LoadRenderConfig reads a YAML render configuration from path.
func LoadRenderConfig(path string) (*RenderConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read render config %q: %w", path, err)
	}
	var cfg RenderConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse render config %q: %w", path, err)
	}
	if cfg.Backend != "cpu" && cfg.Backend != "gpu" {
		return nil, fmt.Errorf("render config %q: backend must be \"cpu\" or \"gpu\", got %q", path, cfg.Backend)
	}
	return &cfg, nil
}
