package response

import (
	"time"

	"coachly/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingResponse struct {
	ID            uuid.UUID `json:"id"`
	ProviderID    uuid.UUID `json:"providerId"`
	ParticipantID uuid.UUID `json:"participantId"`
	StartTime     time.Time `json:"startTime"`
	EndTime       time.Time `json:"endTime"`
	LocationTitle string    `json:"locationTitle,omitempty"`
	Status        string    `json:"status"`
}

func FromBookingView(view *queries.BookingView) *BookingResponse {
	return &BookingResponse{
		ID:            view.ID,
		ProviderID:    view.ProviderID,
		ParticipantID: view.ParticipantID,
		StartTime:     view.StartTime,
		EndTime:       view.EndTime,
		LocationTitle: view.LocationTitle,
		Status:        view.Status,
	}
}
