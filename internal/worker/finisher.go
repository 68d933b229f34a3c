// Package worker runs the periodic maintenance jobs: finishing past
// events and pruning expired idempotency keys.
package worker

import (
	"context"
	"log/slog"
	"time"

	"coachly/internal/pkg/clock"
	"coachly/internal/pkg/config"

	"github.com/robfig/cron/v3"
)

type FinisherStore interface {
	FinishPastEvents(ctx context.Context, now time.Time) (int64, error)
}

type KeyPruner interface {
	DeleteExpired(ctx context.Context) (int64, error)
}

// Finisher owns the cron schedule. Start and Stop hang off the
// application lifecycle.
type Finisher struct {
	cron   *cron.Cron
	store  FinisherStore
	pruner KeyPruner
	clock  clock.Clock
	spec   string
}

func NewFinisher(cfg config.WorkerConfig, store FinisherStore, pruner KeyPruner, clk clock.Clock) *Finisher {
	return &Finisher{
		cron:   cron.New(),
		store:  store,
		pruner: pruner,
		clock:  clk,
		spec:   cfg.FinisherSpec,
	}
}

func (f *Finisher) Start() error {
	if _, err := f.cron.AddFunc(f.spec, f.runOnce); err != nil {
		return err
	}
	f.cron.Start()
	slog.Info("event finisher started", "spec", f.spec)
	return nil
}

func (f *Finisher) Stop() {
	ctx := f.cron.Stop()
	<-ctx.Done()
	slog.Info("event finisher stopped")
}

func (f *Finisher) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	finished, err := f.store.FinishPastEvents(ctx, f.clock.Now())
	if err != nil {
		slog.Error("failed to finish past events", "error", err.Error())
	} else if finished > 0 {
		slog.Info("finished past events", "count", finished)
	}

	pruned, err := f.pruner.DeleteExpired(ctx)
	if err != nil {
		slog.Error("failed to prune idempotency keys", "error", err.Error())
	} else if pruned > 0 {
		slog.Info("pruned expired idempotency keys", "count", pruned)
	}
}
