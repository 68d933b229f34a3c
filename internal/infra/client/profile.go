package client

import (
	"context"

	"coachly/internal/pkg/config"
	"coachly/internal/usecase/commands"

	"github.com/google/uuid"
)

type ProfileClient struct {
	httpClient
}

func NewProfileClient(cfg config.ClientsConfig) *ProfileClient {
	return &ProfileClient{newHTTPClient(cfg.ProfileBaseURL, cfg)}
}

func (c *ProfileClient) CoachProfile(ctx context.Context, coachID uuid.UUID) (*commands.CoachProfile, error) {
	var resp struct {
		CoachID           uuid.UUID `json:"coach_id"`
		DisplayName       string    `json:"display_name"`
		Specialty         string    `json:"specialty"`
		DefaultPriceCents int64     `json:"default_price_cents"`
	}
	if err := c.getJSON(ctx, "/api/coaches/"+coachID.String()+"/profile", &resp); err != nil {
		return nil, err
	}
	return &commands.CoachProfile{
		CoachID:           resp.CoachID,
		DisplayName:       resp.DisplayName,
		Specialty:         resp.Specialty,
		DefaultPriceCents: resp.DefaultPriceCents,
	}, nil
}
