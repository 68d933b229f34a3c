package request

import (
	"time"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	CoachID       uuid.UUID `json:"coach_id" binding:"required"`
	StartTime     time.Time `json:"start_time" binding:"required"`
	EndTime       time.Time `json:"end_time" binding:"required"`
	LocationTitle string    `json:"location_title"`
}

type SlotCheckRequest struct {
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`
}
