package client

import (
	"context"
	"time"

	"coachly/internal/pkg/config"
	"coachly/internal/usecase/commands"
)

type AgentClient struct {
	httpClient
}

func NewAgentClient(cfg config.ClientsConfig) *AgentClient {
	return &AgentClient{newHTTPClient(cfg.AgentBaseURL, cfg)}
}

func (c *AgentClient) DraftProposal(ctx context.Context, input commands.DraftProposalInput) (*commands.DraftProposal, error) {
	req := struct {
		Topic          string    `json:"topic"`
		RecentMessages []string  `json:"recent_messages"`
		DemandTitle    string    `json:"demand_title"`
		DemandBody     string    `json:"demand_body"`
		BudgetCents    *int64    `json:"budget_cents,omitempty"`
		CoachName      string    `json:"coach_name"`
		Specialty      string    `json:"specialty"`
		StartTime      time.Time `json:"start_time"`
		EndTime        time.Time `json:"end_time"`
		PriceCents     *int64    `json:"price_cents,omitempty"`
	}{
		Topic:          input.Thread.Topic,
		RecentMessages: input.Thread.RecentMessages,
		DemandTitle:    input.Demand.Title,
		DemandBody:     input.Demand.Description,
		BudgetCents:    input.Demand.BudgetCents,
		CoachName:      input.Profile.DisplayName,
		Specialty:      input.Profile.Specialty,
		StartTime:      input.StartTime,
		EndTime:        input.EndTime,
		PriceCents:     input.PriceCents,
	}

	var resp struct {
		Message    string `json:"message"`
		PriceCents *int64 `json:"price_cents"`
	}
	if err := c.postJSON(ctx, "/api/drafts", req, &resp); err != nil {
		return nil, err
	}
	return &commands.DraftProposal{
		Message:    resp.Message,
		PriceCents: resp.PriceCents,
	}, nil
}
