package request

import (
	"time"

	"github.com/google/uuid"
)

type NegotiationDraftRequest struct {
	ThreadID  uuid.UUID `json:"thread_id" binding:"required"`
	DemandID  uuid.UUID `json:"demand_id" binding:"required"`
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`
}
