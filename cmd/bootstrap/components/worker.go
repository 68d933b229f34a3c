package components

import (
	"context"

	"coachly/internal/pkg/config"
	"coachly/internal/worker"

	"go.uber.org/fx"
)

var WorkerModule = fx.Module("worker",
	fx.Provide(
		func(cfg config.Config) config.WorkerConfig { return cfg.Worker },
		worker.NewFinisher,
	),
	fx.Invoke(registerFinisher),
)

func registerFinisher(lc fx.Lifecycle, f *worker.Finisher) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			return f.Start()
		},
		OnStop: func(_ context.Context) error {
			f.Stop()
			return nil
		},
	})
}
