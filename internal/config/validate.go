package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/ddstop/ddstop/internal/errors"
	"github.com/ddstop/ddstop/internal/util"
)

// MinTickInterval is the fastest redraw cadence accepted.
const MinTickInterval = 50 * time.Millisecond

// Validate checks the config for errors and returns structured error messages.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New(errors.ErrConfig,
			"Config is nil",
			"This is unexpected - try reloading the configuration.")
	}

	if cfg.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is from the future (version %d, but ddstop only knows up to %d)", cfg.Version, CurrentConfigVersion),
			"Upgrade ddstop or lower the version in .ddstop.yaml.")
	}

	if cfg.TickInterval < MinTickInterval {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("tick_interval %s is too fast", cfg.TickInterval),
			fmt.Sprintf("Use at least %s, like '250ms'.", MinTickInterval))
	}

	if cfg.PageSize <= 0 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("page_size must be positive, got %d", cfg.PageSize),
			"Set page_size to the number of rows a page jump should move, like 30.")
	}

	if err := validateFeed(cfg.Feed); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'feed' section in your .ddstop.yaml.")
	}

	if err := validateRetention(cfg.Retention); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'retention' section in your .ddstop.yaml.")
	}

	return nil
}

func validateFeed(feed FeedConfig) error {
	switch feed.Mode {
	case ModeSynthetic:
		if feed.Participants <= 0 {
			return fmt.Errorf("feed.participants must be positive, got %d", feed.Participants)
		}
		if feed.Interval <= 0 {
			return fmt.Errorf("feed.interval must be positive, got %s", feed.Interval)
		}
	case ModeScenario:
		if strings.TrimSpace(feed.Scenario) == "" {
			return fmt.Errorf("feed.mode is 'scenario' but no feed.scenario file is set")
		}
	default:
		return fmt.Errorf("feed.mode '%s' isn't recognized (expected one of: %s)",
			feed.Mode, util.JoinOrDefault(Modes, "none"))
	}
	return nil
}

func validateRetention(r RetentionConfig) error {
	if r.MaxAge < 0 {
		return fmt.Errorf("retention.max_age can't be negative, got %s", r.MaxAge)
	}
	if r.MaxCount < 0 {
		return fmt.Errorf("retention.max_count can't be negative, got %d", r.MaxCount)
	}
	if r.Interval < 0 {
		return fmt.Errorf("retention.interval can't be negative, got %s", r.Interval)
	}
	return nil
}
