package components

import (
	"coachly/internal/handler"
	"coachly/internal/handler/api"
	"coachly/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewEventHandler,
		api.NewScheduleHandler,
		api.NewRuleHandler,
		api.NewBookingHandler,
		api.NewNegotiationHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
