package feed

import (
	"context"
	"time"

	"github.com/ddstop/ddstop/internal/logger"
	"github.com/ddstop/ddstop/internal/state"
)

// Retention bounds how many abnormalities the store keeps.
type Retention struct {
	// MaxAge drops records older than this. Zero keeps every age.
	MaxAge time.Duration

	// MaxCount keeps at most this many of the newest records. Zero means no limit.
	MaxCount int

	// Interval between prune passes.
	Interval time.Duration
}

// Enabled reports whether Run has anything to do.
func (r Retention) Enabled() bool {
	return r.Interval > 0 && (r.MaxAge > 0 || r.MaxCount > 0)
}

// Prune applies the policy once, relative to now.
func (r Retention) Prune(store *state.Store, now time.Time) (int, error) {
	var cutoff time.Time
	if r.MaxAge > 0 {
		cutoff = now.Add(-r.MaxAge)
	}

	removed := 0
	err := update(store, func(tx *state.Tx) {
		removed = tx.PruneAbnormalities(cutoff, r.MaxCount)
	})
	return removed, err
}

// Run prunes every Interval until ctx ends or the store fails.
func (r Retention) Run(ctx context.Context, store *state.Store, log logger.Logger) error {
	if !r.Enabled() {
		<-ctx.Done()
		return nil
	}

	ticker := time.NewTicker(r.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			removed, err := r.Prune(store, now)
			if err != nil {
				return err
			}
			if removed > 0 {
				log.Debug("pruned %d abnormalities", removed)
			}
		}
	}
}
