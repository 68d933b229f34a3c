package components

import (
	"coachly/internal/infra/client"
	"coachly/internal/pkg/config"
	"coachly/internal/usecase/commands"

	"go.uber.org/fx"
)

// GatewayModule wires the HTTP clients for the sibling marketplace
// services behind the gateway interfaces the negotiation flow uses.
var GatewayModule = fx.Module("gateway",
	fx.Provide(
		func(cfg config.Config) config.ClientsConfig { return cfg.Clients },
		fx.Annotate(
			client.NewChatClient,
			fx.As(new(commands.ChatGateway)),
		),
		fx.Annotate(
			client.NewDemandClient,
			fx.As(new(commands.DemandGateway)),
		),
		fx.Annotate(
			client.NewProfileClient,
			fx.As(new(commands.ProfileGateway)),
		),
		fx.Annotate(
			client.NewAgentClient,
			fx.As(new(commands.AgentGateway)),
		),
	),
)
