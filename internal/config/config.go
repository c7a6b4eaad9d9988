package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	DefaultElement   = "int"
	DefaultAllocator = "heap"
	DefaultAppends   = 64
	DefaultDataDir   = ".veclib"
	DefaultWidth     = 72
	DefaultHeight    = 12
	DefaultTheme     = "default"
)

// Config describes one vector workload for the demo commands.
type Config struct {
	Name      string          `yaml:"name"`
	Element   string          `yaml:"element"`
	Ints      []int           `yaml:"ints,omitempty"`
	Strings   []string        `yaml:"strings,omitempty"`
	Reserve   int             `yaml:"reserve"`
	Appends   int             `yaml:"appends"`
	Allocator AllocatorConfig `yaml:"allocator"`
	Render    RenderConfig    `yaml:"render"`
	DataDir   string          `yaml:"data_dir"`
}

type AllocatorConfig struct {
	Name       string `yaml:"name"`
	LimitBytes uint64 `yaml:"limit_bytes"`
}

type RenderConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Plot   bool   `yaml:"plot"`
	Theme  string `yaml:"theme"`
}

func DefaultConfig() *Config {
	return &Config{
		Name:    "default",
		Element: DefaultElement,
		Appends: DefaultAppends,
		Allocator: AllocatorConfig{
			Name: DefaultAllocator,
		},
		Render: RenderConfig{
			Width:  DefaultWidth,
			Height: DefaultHeight,
			Plot:   true,
			Theme:  DefaultTheme,
		},
		DataDir: DefaultDataDir,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid config %s", path)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	switch c.Element {
	case "int", "string":
	default:
		return errors.Errorf("unknown element type: %s", c.Element)
	}
	if c.Appends < 0 {
		return errors.Errorf("appends must not be negative, got %d", c.Appends)
	}
	if c.Reserve < 0 {
		return errors.Errorf("reserve must not be negative, got %d", c.Reserve)
	}
	if c.Allocator.Name == "limited" && c.Allocator.LimitBytes == 0 {
		return errors.New("limited allocator requires limit_bytes")
	}
	return nil
}

// Seeds returns how many literal values the workload starts from.
func (c *Config) Seeds() int {
	if c.Element == "string" {
		return len(c.Strings)
	}
	return len(c.Ints)
}
