package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ddstop/ddstop/internal/config"
	"github.com/ddstop/ddstop/internal/errors"
)

// GlobalFlags holds the flags that override config file values.
type GlobalFlags struct {
	ConfigPath string
	NoColor    bool
	Interval   string
	PageSize   int
	Scenario   string
	Seed       int64
	LogFile    string
}

// AddGlobalFlags registers the global flags as persistent flags on cmd.
func AddGlobalFlags(cmd *cobra.Command, flags *GlobalFlags) {
	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.ConfigPath, "config", "", "config file (default: ./.ddstop.yaml, then ~/.config/ddstop/config.yaml)")
	pf.BoolVar(&flags.NoColor, "no-color", false, "disable colored output")
	pf.StringVar(&flags.Interval, "interval", "", "redraw interval (e.g., 250ms, 1s)")
	pf.IntVar(&flags.PageSize, "page-size", 0, "rows moved by PgUp/PgDn")
	pf.StringVar(&flags.Scenario, "scenario", "", "replay this scenario file instead of the synthetic feed")
	pf.Int64Var(&flags.Seed, "seed", 0, "seed for the synthetic feed")
	pf.StringVar(&flags.LogFile, "log-file", "", "write logs here while the dashboard runs")
}

// ApplyFlags copies every flag the user set onto cfg. Unset flags leave
// the config file values alone.
func ApplyFlags(cmd *cobra.Command, flags *GlobalFlags, cfg *config.Config) error {
	changed := cmd.Flags().Changed

	if changed("no-color") {
		cfg.NoColor = flags.NoColor
	}
	if changed("interval") {
		d, err := ParseInterval(flags.Interval)
		if err != nil {
			return err
		}
		cfg.TickInterval = d
	}
	if changed("page-size") {
		cfg.PageSize = flags.PageSize
	}
	if changed("scenario") {
		cfg.Feed.Mode = config.ModeScenario
		cfg.Feed.Scenario = flags.Scenario
	}
	if changed("seed") {
		cfg.Feed.Seed = flags.Seed
	}
	if changed("log-file") {
		cfg.LogFile = flags.LogFile
	}
	return nil
}

// ParseInterval parses a redraw interval string into a duration.
func ParseInterval(flag string) (time.Duration, error) {
	duration, err := time.ParseDuration(flag)
	if err != nil {
		return 0, errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("'%s' doesn't look like a valid interval", flag),
			"Try something like 250ms, 1s, or 2s.")
	}
	return duration, nil
}

// loadSettings finds and loads the config, applies flag overrides and
// validates the result.
func loadSettings(cmd *cobra.Command, flags *GlobalFlags) (*config.Config, error) {
	cfg, _, err := config.LoadOrDefault(flags.ConfigPath)
	if err != nil {
		return nil, err
	}
	if err := ApplyFlags(cmd, flags, cfg); err != nil {
		return nil, err
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
