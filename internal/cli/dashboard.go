package cli

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ddstop/ddstop/internal/config"
	"github.com/ddstop/ddstop/internal/errors"
	"github.com/ddstop/ddstop/internal/feed"
	"github.com/ddstop/ddstop/internal/logger"
	"github.com/ddstop/ddstop/internal/monitor"
	"github.com/ddstop/ddstop/internal/state"
	"github.com/ddstop/ddstop/internal/ui"
)

// runDashboard starts the feed, shows the dashboard until the user quits,
// then stops the feed and waits for it.
func runDashboard(ctx context.Context, cfg *config.Config) error {
	if cfg.NoColor {
		ui.DisableColors()
	}

	// The standard logger writes to a file while the TUI owns the screen.
	logFile, err := tea.LogToFile(cfg.LogFile, "ddstop")
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Can't open log file "+cfg.LogFile,
			"Point --log-file or log_file at a writable location")
	}
	defer logFile.Close()

	src, err := newSource(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	store := state.NewStore()
	feedLog := logger.NewEnvLogger("[feed]")
	feedDone := make(chan error, 1)
	go func() {
		feedDone <- feed.Run(ctx, store, src, retentionFrom(cfg), feedLog)
	}()

	model := monitor.NewModel(store, monitor.Options{
		Interval: cfg.TickInterval,
		PageSize: cfg.PageSize,
		Logger:   logger.NewEnvLogger("[monitor]"),
	})
	runErr := monitor.Run(ctx, model)

	cancel()
	if feedErr := <-feedDone; feedErr != nil {
		// The dashboard already showed the failure; keep it in the log.
		feedLog.Error("feed ended with error: %v", feedErr)
	}
	return runErr
}

// newSource builds the producer selected by feed.mode.
func newSource(cfg *config.Config) (feed.Source, error) {
	switch cfg.Feed.Mode {
	case config.ModeScenario:
		sc, err := feed.LoadScenario(cfg.Feed.Scenario)
		if err != nil {
			return nil, err
		}
		if cfg.Feed.Loop && !sc.Loop() {
			if err := sc.EnableLoop(); err != nil {
				return nil, errors.WrapWithCode(err, errors.ErrConfig,
					"Scenario can't loop",
					"Raise the scenario's period past its last step, or turn off feed.loop")
			}
		}
		return sc, nil
	case config.ModeSynthetic:
		return feed.NewSynthetic(cfg.Feed.Seed, cfg.Feed.Participants, cfg.Feed.Interval), nil
	default:
		return nil, errors.New(errors.ErrConfig,
			"Unknown feed mode: "+cfg.Feed.Mode,
			"Set feed.mode to 'synthetic' or 'scenario'")
	}
}

func retentionFrom(cfg *config.Config) feed.Retention {
	return feed.Retention{
		MaxAge:   cfg.Retention.MaxAge,
		MaxCount: cfg.Retention.MaxCount,
		Interval: cfg.Retention.Interval,
	}
}
