package client

import (
	"context"

	"coachly/internal/pkg/config"
	"coachly/internal/usecase/commands"

	"github.com/google/uuid"
)

type ChatClient struct {
	httpClient
}

func NewChatClient(cfg config.ClientsConfig) *ChatClient {
	return &ChatClient{newHTTPClient(cfg.ChatBaseURL, cfg)}
}

func (c *ChatClient) ThreadSummary(ctx context.Context, threadID uuid.UUID) (*commands.ThreadSummary, error) {
	var resp struct {
		ThreadID       uuid.UUID `json:"thread_id"`
		StudentID      uuid.UUID `json:"student_id"`
		Topic          string    `json:"topic"`
		RecentMessages []string  `json:"recent_messages"`
	}
	if err := c.getJSON(ctx, "/api/threads/"+threadID.String()+"/summary", &resp); err != nil {
		return nil, err
	}
	return &commands.ThreadSummary{
		ThreadID:       resp.ThreadID,
		StudentID:      resp.StudentID,
		Topic:          resp.Topic,
		RecentMessages: resp.RecentMessages,
	}, nil
}
