//go:build unit || e2e

package builder

import (
	"time"

	reqdto "coachly/internal/handler/dto/request"
	"coachly/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	CoachID       uuid.UUID
	StudentID     uuid.UUID
	StartTime     time.Time
	EndTime       time.Time
	LocationTitle string
}

func NewBookingBuilder() *BookingBuilder {
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	return &BookingBuilder{
		CoachID:       uuid.New(),
		StudentID:     uuid.New(),
		StartTime:     start,
		EndTime:       start.Add(time.Hour),
		LocationTitle: "Online",
	}
}

func (b *BookingBuilder) WithCoachID(id uuid.UUID) *BookingBuilder {
	b.CoachID = id
	return b
}

func (b *BookingBuilder) WithTimes(start, end time.Time) *BookingBuilder {
	b.StartTime = start
	b.EndTime = end
	return b
}

func (b *BookingBuilder) BuildDTO() reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		CoachID:       b.CoachID,
		StartTime:     b.StartTime,
		EndTime:       b.EndTime,
		LocationTitle: b.LocationTitle,
	}
}

func (b *BookingBuilder) BuildReadModel() *queries.BookingView {
	return &queries.BookingView{
		ID:            uuid.New(),
		ProviderID:    b.CoachID,
		ParticipantID: b.StudentID,
		StartTime:     b.StartTime,
		EndTime:       b.EndTime,
		LocationTitle: b.LocationTitle,
		Status:        "confirmed",
		CreatedAt:     b.StartTime.Add(-48 * time.Hour),
	}
}
