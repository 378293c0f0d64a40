package config

import (
	"os"
	"path/filepath"
	"time"
)

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Feed modes.
const (
	ModeSynthetic = "synthetic"
	ModeScenario  = "scenario"
)

// Modes lists the accepted values of feed.mode.
var Modes = []string{ModeSynthetic, ModeScenario}

// Config represents the complete .ddstop.yaml configuration file.
type Config struct {
	Version      int             `yaml:"version" mapstructure:"version"`
	TickInterval time.Duration   `yaml:"tick_interval" mapstructure:"tick_interval"`
	PageSize     int             `yaml:"page_size" mapstructure:"page_size"`
	LogFile      string          `yaml:"log_file" mapstructure:"log_file"`
	NoColor      bool            `yaml:"no_color" mapstructure:"no_color"`
	Feed         FeedConfig      `yaml:"feed" mapstructure:"feed"`
	Retention    RetentionConfig `yaml:"retention" mapstructure:"retention"`
}

// FeedConfig selects and tunes the producer that fills the state store.
type FeedConfig struct {
	// Mode is "synthetic" or "scenario".
	Mode string `yaml:"mode" mapstructure:"mode"`

	// Scenario is the path of the scenario file used in scenario mode.
	// Relative paths resolve against the directory holding the config file.
	Scenario string `yaml:"scenario" mapstructure:"scenario"`

	// Loop replays the scenario after its last step.
	Loop bool `yaml:"loop" mapstructure:"loop"`

	// Seed for the synthetic generator. The same seed replays the same network.
	Seed int64 `yaml:"seed" mapstructure:"seed"`

	// Interval between synthetic network changes.
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`

	// Participants is the number of synthetic domain participants.
	Participants int `yaml:"participants" mapstructure:"participants"`
}

// RetentionConfig bounds the abnormality history.
type RetentionConfig struct {
	MaxAge   time.Duration `yaml:"max_age" mapstructure:"max_age"`
	MaxCount int           `yaml:"max_count" mapstructure:"max_count"`
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`
}

// DefaultLogFile is where the dashboard logs while it owns the terminal.
func DefaultLogFile() string {
	return filepath.Join(os.TempDir(), "ddstop.log")
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version:      CurrentConfigVersion,
		TickInterval: 250 * time.Millisecond,
		PageSize:     30,
		LogFile:      DefaultLogFile(),
		Feed: FeedConfig{
			Mode:         ModeSynthetic,
			Interval:     time.Second,
			Participants: 4,
		},
		Retention: RetentionConfig{
			MaxAge:   10 * time.Minute,
			MaxCount: 1000,
			Interval: 5 * time.Second,
		},
	}
}
