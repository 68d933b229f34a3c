package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type EventView struct {
	ID             string         `json:"id"`
	CalendarID     uuid.UUID      `json:"calendar_id"`
	Title          string         `json:"title"`
	Description    string         `json:"description,omitempty"`
	StartTime      time.Time      `json:"start_time"`
	EndTime        time.Time      `json:"end_time"`
	Timezone       string         `json:"timezone"`
	Type           string         `json:"type"`
	RecurrenceRule string         `json:"recurrence_rule,omitempty"`
	Status         string         `json:"status"`
	FreeBusy       string         `json:"free_busy"`
	Visibility     string         `json:"visibility"`
	IsException    bool           `json:"is_exception"`
	ParentID       *string        `json:"parent_id,omitempty"`
	Location       string         `json:"location,omitempty"`
	Attendees      []AttendeeView `json:"attendees,omitempty"`
	Reminders      []ReminderView `json:"reminders,omitempty"`
}

type AttendeeView struct {
	ID         uuid.UUID `json:"id"`
	CustomerID uuid.UUID `json:"customer_id"`
	Role       string    `json:"role"`
	RSVPStatus string    `json:"rsvp_status"`
}

type ReminderView struct {
	MinutesBefore int    `json:"minutes_before"`
	Method        string `json:"method"`
}

type CalendarView struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	Name      string    `json:"name"`
	Timezone  string    `json:"timezone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type RangeView struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type FreeBusyView struct {
	CalendarID uuid.UUID   `json:"calendar_id"`
	Free       []RangeView `json:"free"`
	Busy       []RangeView `json:"busy"`
}

type SlotView struct {
	Start         time.Time  `json:"start"`
	End           time.Time  `json:"end"`
	Availability  string     `json:"availability"`
	PriceCents    *int64     `json:"price_cents,omitempty"`
	BookingID     *uuid.UUID `json:"booking_id,omitempty"`
	BookedByID    *uuid.UUID `json:"booked_by_id,omitempty"`
	BookedByName  *string    `json:"booked_by_name,omitempty"`
	LocationTitle *string    `json:"location_title,omitempty"`
}

type BookingView struct {
	ID            uuid.UUID `json:"id"`
	ProviderID    uuid.UUID `json:"provider_id"`
	ParticipantID uuid.UUID `json:"participant_id"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	LocationTitle string    `json:"location_title,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

type AuthorizedUserView struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	DisplayName string    `json:"display_name"`
	Timezone    string    `json:"timezone"`
	IsActive    bool      `json:"is_active"`
}

type AvailabilityRuleView struct {
	ID             uuid.UUID  `json:"id"`
	Kind           string     `json:"kind"`
	DaysOfWeek     []int      `json:"days_of_week,omitempty"`
	TimeOfDayStart *int       `json:"time_of_day_start,omitempty"`
	TimeOfDayEnd   *int       `json:"time_of_day_end,omitempty"`
	DateStart      *time.Time `json:"date_start,omitempty"`
	DateEnd        *time.Time `json:"date_end,omitempty"`
}

type PriceRuleView struct {
	ID             uuid.UUID  `json:"id"`
	DaysOfWeek     []int      `json:"days_of_week,omitempty"`
	TimeOfDayStart *int       `json:"time_of_day_start,omitempty"`
	TimeOfDayEnd   *int       `json:"time_of_day_end,omitempty"`
	DateStart      *time.Time `json:"date_start,omitempty"`
	DateEnd        *time.Time `json:"date_end,omitempty"`
	PriceCents     int64      `json:"price_cents"`
}

type NegotiationDraftView struct {
	CoachID     uuid.UUID `json:"coach_id"`
	StudentID   uuid.UUID `json:"student_id"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	PriceCents  int64     `json:"price_cents"`
	PriceSource string    `json:"price_source"`
	Message     string    `json:"message"`
}
