//go:build unit || e2e

package builder

import (
	"time"

	"coachly/internal/domain/event"
	"coachly/internal/domain/timerange"
	reqdto "coachly/internal/handler/dto/request"
	"coachly/internal/usecase/queries"

	"github.com/google/uuid"
)

type EventBuilder struct {
	CalendarID     uuid.UUID
	Title          string
	Description    string
	StartTime      time.Time
	EndTime        time.Time
	Timezone       string
	RecurrenceRule *string
	FreeBusy       *string
	Location       string
}

func NewEventBuilder() *EventBuilder {
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	return &EventBuilder{
		CalendarID: uuid.New(),
		Title:      "Coaching session",
		StartTime:  start,
		EndTime:    start.Add(time.Hour),
		Timezone:   "Asia/Tokyo",
	}
}

func (e *EventBuilder) WithCalendarID(id uuid.UUID) *EventBuilder {
	e.CalendarID = id
	return e
}

func (e *EventBuilder) WithTitle(title string) *EventBuilder {
	e.Title = title
	return e
}

func (e *EventBuilder) WithTimes(start, end time.Time) *EventBuilder {
	e.StartTime = start
	e.EndTime = end
	return e
}

func (e *EventBuilder) WithRecurrenceRule(rule string) *EventBuilder {
	e.RecurrenceRule = &rule
	return e
}

func (e *EventBuilder) AsFree() *EventBuilder {
	fb := "free"
	e.FreeBusy = &fb
	return e
}

func (e *EventBuilder) BuildDTO() reqdto.CreateEventRequest {
	return reqdto.CreateEventRequest{
		CalendarID:     e.CalendarID,
		Title:          e.Title,
		Description:    e.Description,
		StartTime:      e.StartTime,
		EndTime:        e.EndTime,
		Timezone:       e.Timezone,
		RecurrenceRule: e.RecurrenceRule,
		FreeBusy:       e.FreeBusy,
		Location:       e.Location,
	}
}

func (e *EventBuilder) BuildDomain() (*event.Event, error) {
	r, err := timerange.New(e.StartTime, e.EndTime)
	if err != nil {
		return nil, err
	}
	if e.RecurrenceRule != nil {
		return event.NewRecurring(e.CalendarID, e.Title, r, e.Timezone, *e.RecurrenceRule)
	}
	return event.NewSingle(e.CalendarID, e.Title, r, e.Timezone)
}

func (e *EventBuilder) BuildReadModel() *queries.EventView {
	eventType := "single"
	rule := ""
	if e.RecurrenceRule != nil {
		eventType = "recurring"
		rule = *e.RecurrenceRule
	}
	freeBusy := "busy"
	if e.FreeBusy != nil {
		freeBusy = *e.FreeBusy
	}
	return &queries.EventView{
		ID:             uuid.NewString(),
		CalendarID:     e.CalendarID,
		Title:          e.Title,
		Description:    e.Description,
		StartTime:      e.StartTime,
		EndTime:        e.EndTime,
		Timezone:       e.Timezone,
		Type:           eventType,
		RecurrenceRule: rule,
		Status:         "scheduled",
		FreeBusy:       freeBusy,
		Visibility:     "default",
		Location:       e.Location,
	}
}
