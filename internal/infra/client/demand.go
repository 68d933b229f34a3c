package client

import (
	"context"

	"coachly/internal/pkg/config"
	"coachly/internal/usecase/commands"

	"github.com/google/uuid"
)

type DemandClient struct {
	httpClient
}

func NewDemandClient(cfg config.ClientsConfig) *DemandClient {
	return &DemandClient{newHTTPClient(cfg.DemandBaseURL, cfg)}
}

func (c *DemandClient) DemandDetail(ctx context.Context, demandID uuid.UUID) (*commands.DemandDetail, error) {
	var resp struct {
		ID          uuid.UUID `json:"id"`
		StudentID   uuid.UUID `json:"student_id"`
		Title       string    `json:"title"`
		Description string    `json:"description"`
		BudgetCents *int64    `json:"budget_cents"`
	}
	if err := c.getJSON(ctx, "/api/demands/"+demandID.String(), &resp); err != nil {
		return nil, err
	}
	return &commands.DemandDetail{
		ID:          resp.ID,
		StudentID:   resp.StudentID,
		Title:       resp.Title,
		Description: resp.Description,
		BudgetCents: resp.BudgetCents,
	}, nil
}
