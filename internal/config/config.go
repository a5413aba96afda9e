package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/wheely/internal/wheel"
)

const (
	DefaultNCups         = 12
	DefaultRadius        = 1.0
	DefaultG             = 9.81
	DefaultDamping       = 1.0
	DefaultLeakRate      = 1.0
	DefaultInflowRate    = 5.0
	DefaultInertia       = 1.0
	DefaultOmega0        = 0.1
	DefaultTEnd          = 40.0
	DefaultNFrames       = 1000
	DefaultStepsPerFrame = 4
)

type Config struct {
	NCups         int     `yaml:"n_cups"`
	Radius        float64 `yaml:"radius"`
	G             float64 `yaml:"g"`
	Damping       float64 `yaml:"damping"`
	LeakRate      float64 `yaml:"leak_rate"`
	InflowRate    float64 `yaml:"inflow_rate"`
	Inertia       float64 `yaml:"inertia"`
	Omega0        float64 `yaml:"omega0"`
	TStart        float64 `yaml:"t_start"`
	TEnd          float64 `yaml:"t_end"`
	NFrames       int     `yaml:"n_frames"`
	StepsPerFrame int     `yaml:"steps_per_frame"`
}

func DefaultConfig() *Config {
	return &Config{
		NCups:         DefaultNCups,
		Radius:        DefaultRadius,
		G:             DefaultG,
		Damping:       DefaultDamping,
		LeakRate:      DefaultLeakRate,
		InflowRate:    DefaultInflowRate,
		Inertia:       DefaultInertia,
		Omega0:        DefaultOmega0,
		TEnd:          DefaultTEnd,
		NFrames:       DefaultNFrames,
		StepsPerFrame: DefaultStepsPerFrame,
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

// Wheel converts the file-level configuration to the engine's form.
func (c *Config) Wheel() wheel.Config {
	return wheel.Config{
		NCups:         c.NCups,
		Radius:        c.Radius,
		G:             c.G,
		Damping:       c.Damping,
		LeakRate:      c.LeakRate,
		InflowRate:    c.InflowRate,
		Inertia:       c.Inertia,
		Omega0:        c.Omega0,
		TStart:        c.TStart,
		TEnd:          c.TEnd,
		NFrames:       c.NFrames,
		StepsPerFrame: c.StepsPerFrame,
	}
}
