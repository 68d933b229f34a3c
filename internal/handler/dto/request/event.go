package request

import (
	"time"

	"github.com/google/uuid"
)

type AttendeeRequest struct {
	CustomerID uuid.UUID `json:"customer_id" binding:"required"`
	Role       string    `json:"role" binding:"omitempty,oneof=required optional"`
}

type ReminderRequest struct {
	MinutesBefore int    `json:"minutes_before" binding:"min=0"`
	Method        string `json:"method" binding:"omitempty,oneof=email push"`
}

type CreateEventRequest struct {
	CalendarID     uuid.UUID         `json:"calendar_id" binding:"required"`
	Title          string            `json:"title" binding:"required"`
	Description    string            `json:"description"`
	StartTime      time.Time         `json:"start_time" binding:"required"`
	EndTime        time.Time         `json:"end_time" binding:"required"`
	Timezone       string            `json:"timezone"`
	RecurrenceRule *string           `json:"recurrence_rule,omitempty"`
	FreeBusy       *string           `json:"free_busy,omitempty" binding:"omitempty,oneof=free busy"`
	Visibility     *string           `json:"visibility,omitempty" binding:"omitempty,oneof=default public private"`
	Location       string            `json:"location"`
	Attendees      []AttendeeRequest `json:"attendees,omitempty"`
	Reminders      []ReminderRequest `json:"reminders,omitempty"`
}

type UpdateEventRequest struct {
	Title          *string    `json:"title,omitempty"`
	Description    *string    `json:"description,omitempty"`
	StartTime      *time.Time `json:"start_time,omitempty"`
	EndTime        *time.Time `json:"end_time,omitempty"`
	Timezone       *string    `json:"timezone,omitempty"`
	RecurrenceRule *string    `json:"recurrence_rule,omitempty"`
	FreeBusy       *string    `json:"free_busy,omitempty" binding:"omitempty,oneof=free busy"`
	Visibility     *string    `json:"visibility,omitempty" binding:"omitempty,oneof=default public private"`
	Location       *string    `json:"location,omitempty"`
}

type RSVPRequest struct {
	Status string `json:"status" binding:"required,oneof=pending accepted declined"`
}
