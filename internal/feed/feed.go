// Package feed drives the state store in place of a live DDS discovery
// stack. A Source is the only writer of the store; the retention pruner
// ages out old abnormalities alongside it.
package feed

import (
	"context"
	"sync"
	"time"

	"github.com/ddstop/ddstop/internal/errors"
	"github.com/ddstop/ddstop/internal/logger"
	"github.com/ddstop/ddstop/internal/state"
)

// Source produces entity and abnormality updates into a store.
// Run returns nil when ctx ends or the source has nothing more to send.
type Source interface {
	Run(ctx context.Context, store *state.Store) error
}

// Run starts src and the retention pruner and waits for both. It returns
// when ctx ends, or with the first error once either of them fails.
// A source that finishes cleanly leaves the pruner running.
func Run(ctx context.Context, store *state.Store, src Source, retention Retention, log logger.Logger) error {
	if log == nil {
		log = logger.Noop()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, 2)
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		if err := src.Run(ctx, store); err != nil {
			if !errors.IsCode(err, errors.ErrFeed) {
				err = errors.Wrap(err, "Feed source stopped")
			}
			log.Error("feed source stopped: %v", err)
			errCh <- err
			cancel()
			return
		}
		log.Debug("feed source finished")
	}()

	go func() {
		defer wg.Done()
		if err := retention.Run(ctx, store, log); err != nil {
			log.Error("retention stopped: %v", err)
			errCh <- err
			cancel()
		}
	}()

	wg.Wait()
	close(errCh)
	return <-errCh
}

// update applies fn to the store, wrapping store failures as FEED errors.
func update(store *state.Store, fn func(tx *state.Tx)) error {
	if err := store.Update(fn); err != nil {
		return errors.WrapWithCode(err, errors.ErrFeed,
			"Feed could not update state",
			"The state store is unusable; restart ddstop")
	}
	return nil
}

// sleep waits for d or until ctx ends, reporting whether the full wait
// elapsed.
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
