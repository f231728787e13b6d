package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/gassim/internal/gas"
)

const (
	DefaultCount  = 1000
	DefaultRadius = 3.0
	DefaultSpeed  = 10.0
	DefaultDt     = 0.2
	DefaultWidth  = 700.0
	DefaultHeight = 700.0
	DefaultSteps  = 500
)

type Config struct {
	Count  int     `yaml:"count"`
	Radius float64 `yaml:"radius"`
	Speed  float64 `yaml:"speed"`
	Dt     float64 `yaml:"dt"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Steps  int     `yaml:"steps"`
	Seed   int64   `yaml:"seed"`
}

func DefaultConfig() *Config {
	return &Config{
		Count:  DefaultCount,
		Radius: DefaultRadius,
		Speed:  DefaultSpeed,
		Dt:     DefaultDt,
		Width:  DefaultWidth,
		Height: DefaultHeight,
		Steps:  DefaultSteps,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
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

// Validate enforces the construction contract before a simulation is
// built: positive count, radius, dt and steps, non-negative speed, and
// a domain large enough to hold a particle.
func (c *Config) Validate() error {
	if err := c.Params().Validate(); err != nil {
		return err
	}
	if c.Dt <= 0 {
		return fmt.Errorf("%w: got %f", gas.ErrTimeStep, c.Dt)
	}
	if c.Steps <= 0 {
		return fmt.Errorf("%w: got %d", gas.ErrStepCount, c.Steps)
	}
	return nil
}

// Params maps the config onto simulation construction parameters.
func (c *Config) Params() gas.Params {
	return gas.Params{
		Count:  c.Count,
		Radius: c.Radius,
		Speed:  c.Speed,
		Width:  c.Width,
		Height: c.Height,
	}
}
