// Package config loads server configuration from a YAML file. A missing
// file is not an error: the defaults run a playable local server.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the full server configuration.
type Config struct {
	ListenPort int    `yaml:"listen_port"`
	DBPath     string `yaml:"db_path"`
	PlayerName string `yaml:"player_name"`

	TickIntervalSeconds int `yaml:"tick_interval_seconds"`

	Event struct {
		IntervalSeconds int     `yaml:"interval_seconds"`
		Chance          float64 `yaml:"chance"`
	} `yaml:"event"`

	// ResearchUsesSpeedBonus extends the building-speed research bonus to
	// research time as well. Historically construction-only.
	ResearchUsesSpeedBonus bool `yaml:"research_uses_speed_bonus"`

	CORSOrigins []string `yaml:"cors_origins"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	cfg := Config{
		ListenPort:          8080,
		DBPath:              "data/madangkara.db",
		PlayerName:          "Brama Kumbara",
		TickIntervalSeconds: 1,
	}
	cfg.Event.IntervalSeconds = 120
	cfg.Event.Chance = 0.33
	return cfg
}

// Load reads the YAML file at path over the defaults. A missing file
// returns the defaults; a malformed file is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// No file: defaults plus environment.
	case err != nil:
		return cfg, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.applyEnv()
	if cfg.TickIntervalSeconds <= 0 {
		cfg.TickIntervalSeconds = 1
	}
	return cfg, nil
}

// applyEnv lets the environment override the file, which keeps container
// deployments away from config volumes. Only deployment-level knobs are
// exposed this way.
func (c *Config) applyEnv() {
	if v := os.Getenv("KINGDOMD_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.ListenPort = port
		}
	}
	if v := os.Getenv("KINGDOMD_DB_PATH"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("KINGDOMD_PLAYER_NAME"); v != "" {
		c.PlayerName = v
	}
}

// TickInterval returns the tick cadence as a duration.
func (c Config) TickInterval() time.Duration {
	return time.Duration(c.TickIntervalSeconds) * time.Second
}

// EventInterval returns the narrative event roll cadence as a duration.
func (c Config) EventInterval() time.Duration {
	return time.Duration(c.Event.IntervalSeconds) * time.Second
}
