package batch

import (
	"os"

	"github.com/ArnaudCalmettes/greygrid/grid"
	"gopkg.in/yaml.v3"
)

// Key describes a grid the way a painting-by-numbers sheet does: which shade
// each number stands for, and the numbers themselves.
type Key struct {
	Source     string     `yaml:"source"`
	BlockSize  int        `yaml:"block_size"`
	Thresholds []float64  `yaml:"thresholds"`
	Levels     []KeyLevel `yaml:"levels"`
	Grid       []string   `yaml:"grid"`
}

// KeyLevel describes one level of the grid.
type KeyLevel struct {
	Level  int   `yaml:"level"`
	Shade  uint8 `yaml:"shade"`
	Blocks int   `yaml:"blocks"`
}

// NewKey builds the key of a processed image.
func NewKey(source string, opts grid.Options, levels *grid.Levels) *Key {
	k := &Key{
		Source:     source,
		BlockSize:  opts.BlockSize,
		Thresholds: opts.Thresholds,
		Grid:       levels.Lines(),
	}
	steps := len(opts.Thresholds)
	for lvl, n := range levels.Histogram(opts.Colors()) {
		k.Levels = append(k.Levels, KeyLevel{
			Level:  lvl,
			Shade:  grid.Shade(lvl, steps),
			Blocks: n,
		})
	}
	return k
}

// WriteKey writes a key to a YAML file
func WriteKey(k *Key, path string) error {
	data, err := yaml.Marshal(k)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ReadKey reads a key from a YAML file
func ReadKey(path string) (*Key, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var k Key
	if err := yaml.Unmarshal(data, &k); err != nil {
		return nil, err
	}

	return &k, nil
}
