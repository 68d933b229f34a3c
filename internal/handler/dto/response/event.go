package response

import (
	"time"

	"coachly/internal/usecase/queries"

	"github.com/google/uuid"
)

type EventResponse struct {
	ID             string             `json:"id"`
	CalendarID     uuid.UUID          `json:"calendarId"`
	Title          string             `json:"title"`
	Description    string             `json:"description,omitempty"`
	StartTime      time.Time          `json:"startTime"`
	EndTime        time.Time          `json:"endTime"`
	Timezone       string             `json:"timezone"`
	Type           string             `json:"type"`
	RecurrenceRule string             `json:"recurrenceRule,omitempty"`
	Status         string             `json:"status"`
	FreeBusy       string             `json:"freeBusy"`
	Visibility     string             `json:"visibility"`
	IsException    bool               `json:"isException"`
	ParentID       *string            `json:"parentId,omitempty"`
	Location       string             `json:"location,omitempty"`
	Attendees      []AttendeeResponse `json:"attendees,omitempty"`
	Reminders      []ReminderResponse `json:"reminders,omitempty"`
}

type AttendeeResponse struct {
	ID         uuid.UUID `json:"id"`
	CustomerID uuid.UUID `json:"customerId"`
	Role       string    `json:"role"`
	RSVPStatus string    `json:"rsvpStatus"`
}

type ReminderResponse struct {
	MinutesBefore int    `json:"minutesBefore"`
	Method        string `json:"method"`
}

func FromEventView(view *queries.EventView) *EventResponse {
	resp := &EventResponse{
		ID:             view.ID,
		CalendarID:     view.CalendarID,
		Title:          view.Title,
		Description:    view.Description,
		StartTime:      view.StartTime,
		EndTime:        view.EndTime,
		Timezone:       view.Timezone,
		Type:           view.Type,
		RecurrenceRule: view.RecurrenceRule,
		Status:         view.Status,
		FreeBusy:       view.FreeBusy,
		Visibility:     view.Visibility,
		IsException:    view.IsException,
		ParentID:       view.ParentID,
		Location:       view.Location,
	}
	for _, a := range view.Attendees {
		resp.Attendees = append(resp.Attendees, AttendeeResponse{
			ID:         a.ID,
			CustomerID: a.CustomerID,
			Role:       a.Role,
			RSVPStatus: a.RSVPStatus,
		})
	}
	for _, r := range view.Reminders {
		resp.Reminders = append(resp.Reminders, ReminderResponse{
			MinutesBefore: r.MinutesBefore,
			Method:        r.Method,
		})
	}
	return resp
}
