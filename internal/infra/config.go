package infra

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds every setting of the application. Values loaded from the
// YAML file can be overridden through environment variables afterwards.
type Config struct {
	App struct {
		Name    string `yaml:"name"`
		Version string `yaml:"version"`
	} `yaml:"app"`

	Sim struct {
		DurationSec       int     `yaml:"duration_sec"`
		OrdersPerSec      float64 `yaml:"orders_per_sec"`
		SubmitProbability float64 `yaml:"submit_probability"`
		PriceMin          float64 `yaml:"price_min"`
		PriceMax          float64 `yaml:"price_max"`
		QtyMin            int64   `yaml:"qty_min"`
		QtyMax            int64   `yaml:"qty_max"`
		Seed              int64   `yaml:"seed"` // 0 means time-based
	} `yaml:"sim"`

	Journal struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"` // empty means <workspace>/data/trades.db
	} `yaml:"journal"`

	Logging struct {
		Level string `yaml:"level"`
	} `yaml:"logging"`
}

// LoadConfig reads and parses the config file, applies environment
// overrides and validates the result.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	overrideWithEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate checks configuration validity.
func (c *Config) Validate() error {
	if c.Sim.DurationSec <= 0 {
		return fmt.Errorf("sim duration must be positive, got %d", c.Sim.DurationSec)
	}
	if c.Sim.OrdersPerSec <= 0 {
		return fmt.Errorf("orders per second must be positive, got %f", c.Sim.OrdersPerSec)
	}
	if c.Sim.SubmitProbability < 0 || c.Sim.SubmitProbability > 1 {
		return fmt.Errorf("submit probability must be within [0,1], got %f", c.Sim.SubmitProbability)
	}
	if c.Sim.PriceMin <= 0 || c.Sim.PriceMax < c.Sim.PriceMin {
		return fmt.Errorf("invalid price band [%f, %f]", c.Sim.PriceMin, c.Sim.PriceMax)
	}
	if c.Sim.QtyMin <= 0 || c.Sim.QtyMax < c.Sim.QtyMin {
		return fmt.Errorf("invalid quantity band [%d, %d]", c.Sim.QtyMin, c.Sim.QtyMax)
	}
	return nil
}

// overrideWithEnv lets environment variables take precedence over the
// config file.
func overrideWithEnv(cfg *Config) {
	if path := os.Getenv("TSPOC_JOURNAL_PATH"); path != "" {
		cfg.Journal.Path = path
		cfg.Journal.Enabled = true
	}
	if level := os.Getenv("TSPOC_LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}
	if seed := os.Getenv("TSPOC_SIM_SEED"); seed != "" {
		if v, err := strconv.ParseInt(seed, 10, 64); err == nil {
			cfg.Sim.Seed = v
		}
	}
}
