package components

import (
	"coachly/internal/infra/cache"
	"coachly/internal/infra/repository"
	"coachly/internal/pkg/config"
	"coachly/internal/usecase/commands"
	"coachly/internal/usecase/queries"
	"coachly/internal/worker"

	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		func(cfg config.Config) config.RedisConfig { return cfg.Redis },
		// User
		fx.Annotate(
			repository.NewUserRepository,
			fx.As(new(commands.UserWriteRepository)),
			fx.As(new(queries.UserReadStore)),
		),
		// Calendar
		fx.Annotate(
			repository.NewCalendarRepository,
			fx.As(new(commands.CalendarRepository)),
			fx.As(new(queries.CalendarReadStore)),
		),
		// Event
		fx.Annotate(
			repository.NewEventRepository,
			fx.As(new(commands.EventRepository)),
			fx.As(new(worker.FinisherStore)),
		),
		fx.Annotate(
			repository.NewEventReadStore,
			fx.As(new(queries.EventReadStore)),
		),
		// Rules
		fx.Annotate(
			repository.NewRuleRepository,
			fx.As(new(commands.RuleRepository)),
		),
		fx.Annotate(
			repository.NewRuleReadStore,
			fx.As(new(queries.RuleReadStore)),
		),
		// Booking
		fx.Annotate(
			repository.NewBookingRepository,
			fx.As(new(commands.BookingRepository)),
		),
		fx.Annotate(
			repository.NewBookingReadStore,
			fx.As(new(queries.BookingReadStore)),
		),
		// Idempotency
		fx.Annotate(
			repository.NewIdempotencyRepository,
			fx.As(new(commands.IdempotencyRepository)),
			fx.As(new(worker.KeyPruner)),
		),
		// Schedule cache
		fx.Annotate(
			cache.NewScheduleCache,
			fx.As(new(queries.ScheduleCache)),
		),
	),
)
