package infra

import (
	"os"
	"path/filepath"
	"testing"
)

const validYAML = `
app:
  name: "trading-system-poc"
  version: "0.1.0"
sim:
  duration_sec: 10
  orders_per_sec: 5
  submit_probability: 0.7
  price_min: 90.0
  price_max: 110.0
  qty_min: 1
  qty_max: 20
journal:
  enabled: false
logging:
  level: "info"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, validYAML))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.App.Name != "trading-system-poc" {
		t.Errorf("App.Name = %q", cfg.App.Name)
	}
	if cfg.Sim.OrdersPerSec != 5 {
		t.Errorf("Sim.OrdersPerSec = %f, want 5", cfg.Sim.OrdersPerSec)
	}
	if cfg.Journal.Enabled {
		t.Error("Journal.Enabled = true, want false")
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("LoadConfig() on missing file should fail")
	}
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("TSPOC_JOURNAL_PATH", "/tmp/override.db")
	t.Setenv("TSPOC_LOG_LEVEL", "debug")
	t.Setenv("TSPOC_SIM_SEED", "42")

	cfg, err := LoadConfig(writeConfig(t, validYAML))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Journal.Path != "/tmp/override.db" || !cfg.Journal.Enabled {
		t.Errorf("journal override not applied: %+v", cfg.Journal)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Sim.Seed != 42 {
		t.Errorf("Sim.Seed = %d, want 42", cfg.Sim.Seed)
	}
}

func TestConfig_Validate(t *testing.T) {
	base := func() *Config {
		cfg := &Config{}
		cfg.Sim.DurationSec = 10
		cfg.Sim.OrdersPerSec = 5
		cfg.Sim.SubmitProbability = 0.7
		cfg.Sim.PriceMin = 90
		cfg.Sim.PriceMax = 110
		cfg.Sim.QtyMin = 1
		cfg.Sim.QtyMax = 20
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"zero duration", func(c *Config) { c.Sim.DurationSec = 0 }, true},
		{"zero rate", func(c *Config) { c.Sim.OrdersPerSec = 0 }, true},
		{"probability above one", func(c *Config) { c.Sim.SubmitProbability = 1.5 }, true},
		{"non-positive price min", func(c *Config) { c.Sim.PriceMin = 0 }, true},
		{"inverted price band", func(c *Config) { c.Sim.PriceMax = 50 }, true},
		{"inverted qty band", func(c *Config) { c.Sim.QtyMax = 0 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
