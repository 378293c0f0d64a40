package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/ddstop/ddstop/internal/config"
	"github.com/ddstop/ddstop/internal/errors"
	"github.com/ddstop/ddstop/internal/feed"
	"github.com/ddstop/ddstop/internal/logger"
	"github.com/ddstop/ddstop/internal/monitor"
	"github.com/ddstop/ddstop/internal/state"
	"github.com/ddstop/ddstop/internal/ui"
	"github.com/ddstop/ddstop/internal/util"
)

// ExitAbnormal is the exit code of 'ddstop dump --check' when abnormalities
// were recorded.
const ExitAbnormal = 2

// DumpOptions holds options for the dump command.
type DumpOptions struct {
	// Settle is how long the feed runs before the state is printed.
	Settle time.Duration

	// Check fails with ExitAbnormal when any abnormality was recorded.
	Check bool
}

// Dump runs the configured feed for the settle period and prints every
// table once, in tab order, as plain text.
func Dump(ctx context.Context, w io.Writer, cfg *config.Config, opts DumpOptions) error {
	if cfg.NoColor {
		ui.DisableColors()
	}

	src, err := newSource(cfg)
	if err != nil {
		return err
	}

	store := state.NewStore()
	ctx, cancel := context.WithTimeout(ctx, opts.Settle)
	defer cancel()

	if err := feed.Run(ctx, store, src, retentionFrom(cfg), logger.NewEnvLogger("[feed]")); err != nil {
		return err
	}

	snap, err := store.Snapshot()
	if err != nil {
		return err
	}

	abnormal := writeTables(w, snap, cfg.PageSize)
	if opts.Check && abnormal > 0 {
		return errors.NewExitError(ExitAbnormal)
	}
	return nil
}

// writeTables prints one titled table per tab and returns the number of
// abnormality rows.
func writeTables(w io.Writer, snap state.Snapshot, pageSize int) int {
	tabs := monitor.NewTabs(pageSize)
	for i, tab := range monitor.AllTabs() {
		v := tabs.View(tab)
		v.Refresh(snap)

		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s %s %s\n", ui.SymbolPointer, v.Title(), util.CountNoun(v.RowCount(), "row", "rows"))
		fmt.Fprintln(w, ui.RenderSimpleTable(v.Headers(), v.Rows()))
	}
	return tabs.View(monitor.TabAbnormalities).RowCount()
}
