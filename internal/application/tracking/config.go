package tracking

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/twlf/activity-tracker/internal/core/classifier"
)

// Config contains configuration for the tracking loop and live view.
type Config struct {
	// Storage
	DBPath string `yaml:"db_path"`

	// Exclusion list
	ExclusionFile    string        `yaml:"exclusion_file"`
	ExclusionRefresh string        `yaml:"exclusion_refresh"` // always, ttl, watch
	ExclusionTTL     time.Duration `yaml:"exclusion_ttl"`

	// Tracking cadence
	SampleInterval  time.Duration `yaml:"sample_interval"`
	InactivityLimit time.Duration `yaml:"inactivity_limit"`

	// Display settings
	Timezone      string  `yaml:"timezone"`
	TimeFormat    string  `yaml:"time_format"`
	UIRefreshRate float64 `yaml:"ui_refresh_rate"` // redraws per second

	// How often today's persisted totals are re-read for the live footer
	TotalsRefreshInterval time.Duration `yaml:"totals_refresh_interval"`

	// Matter system integration (optional)
	MatterBaseURL string `yaml:"matter_base_url"`
	MatterToken   string `yaml:"matter_token"`

	// Headless disables the live display (track command)
	Headless bool `yaml:"-"`
}

// LoadConfig reads a YAML config file, returning a zero config when the file
// does not exist. Flags layered on top override file values.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration and fills defaults.
func (c *Config) Validate() error {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	if c.DBPath == "" {
		c.DBPath = filepath.Join(home, ".activity-tracker", "sessions.db")
	}
	if c.ExclusionFile == "" {
		c.ExclusionFile = filepath.Join(home, ".activity-tracker", "excluded_processes.txt")
	}
	switch classifier.RefreshMode(c.ExclusionRefresh) {
	case classifier.RefreshAlways, classifier.RefreshTTL, classifier.RefreshWatch:
	case "":
		c.ExclusionRefresh = string(classifier.RefreshAlways)
	default:
		return fmt.Errorf("invalid exclusion_refresh %q (expected always, ttl, watch)", c.ExclusionRefresh)
	}
	if c.ExclusionTTL <= 0 {
		c.ExclusionTTL = 30 * time.Second
	}
	if c.SampleInterval <= 0 {
		c.SampleInterval = 2 * time.Second
	}
	if c.InactivityLimit <= 0 {
		c.InactivityLimit = 5 * time.Minute
	}
	if c.Timezone == "" {
		c.Timezone = "Local"
	}
	if c.TimeFormat == "" {
		c.TimeFormat = "24h"
	}
	if c.UIRefreshRate <= 0 {
		c.UIRefreshRate = 1.0
	}
	if c.TotalsRefreshInterval <= 0 {
		c.TotalsRefreshInterval = 30 * time.Second
	}
	return nil
}
