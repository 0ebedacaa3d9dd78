// Package config loads doselog settings from an optional YAML file and
// DOSELOG_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/julianstephens/doselog/internal/constants"
)

type Config struct {
	Database      string              `mapstructure:"database"`
	Profile       string              `mapstructure:"profile"`
	Debug         bool                `mapstructure:"debug"`
	Notifications NotificationsConfig `mapstructure:"notifications"`
	Refill        RefillConfig        `mapstructure:"refill"`
	Report        ReportConfig        `mapstructure:"report"`
	Exercise      ExerciseConfig      `mapstructure:"exercise"`
}

type NotificationsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// RefillConfig holds the thresholds at which a logged dose raises a refill alert.
type RefillConfig struct {
	DaysThreshold    int `mapstructure:"days_threshold"`
	RefillsThreshold int `mapstructure:"refills_threshold"`
}

type ReportConfig struct {
	Days int `mapstructure:"days"`
}

// ExerciseConfig adds or overrides MET values by activity name.
type ExerciseConfig struct {
	METs map[string]float64 `mapstructure:"mets"`
}

// DefaultFile returns the config file consulted when none is given.
func DefaultFile() string {
	return filepath.Join(ExpandHome(constants.DefaultConfigDir), "config.yaml")
}

// Load reads configuration from defaults, the config file at path (if it
// exists) and the environment, in increasing order of precedence.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path == "" {
		path = DefaultFile()
	}
	path = ExpandHome(path)

	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	// DOSELOG_DATABASE, DOSELOG_REFILL_DAYS_THRESHOLD, etc.
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Database = ExpandHome(cfg.Database)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(constants.ConfigDatabase, constants.DefaultConfigPath)
	v.SetDefault(constants.ConfigProfile, constants.DefaultProfileName)
	v.SetDefault(constants.ConfigDebug, false)
	v.SetDefault(constants.ConfigNotificationsEnabled, false)
	v.SetDefault(constants.ConfigRefillDaysThreshold, constants.DefaultRefillDaysThreshold)
	v.SetDefault(constants.ConfigRefillRefillsThreshold, constants.DefaultRefillRefillsThreshold)
	v.SetDefault(constants.ConfigReportDays, constants.DefaultReportDays)
}

func (c *Config) Validate() error {
	if c.Database == "" {
		return fmt.Errorf("database path cannot be empty")
	}
	if c.Profile == "" {
		return fmt.Errorf("profile cannot be empty")
	}
	if c.Refill.DaysThreshold < 0 {
		return fmt.Errorf("refill.days_threshold cannot be negative")
	}
	if c.Refill.RefillsThreshold < 0 {
		return fmt.Errorf("refill.refills_threshold cannot be negative")
	}
	if c.Report.Days <= 0 {
		return fmt.Errorf("report.days must be positive")
	}
	for activity, met := range c.Exercise.METs {
		if met <= 0 {
			return fmt.Errorf("exercise.mets.%s must be positive", activity)
		}
	}
	return nil
}

// ExpandHome replaces a leading "~" with the user's home directory.
// Connection strings and paths without the prefix are returned unchanged.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
