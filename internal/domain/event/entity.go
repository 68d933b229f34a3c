// Package event models calendar events and their recurrence rules.
package event

import (
	"errors"

	"coachly/internal/domain/timerange"
	"coachly/internal/pkg/timezone"

	"github.com/google/uuid"
)

var (
	ErrMissingCalendar     = errors.New("event requires a calendar id")
	ErrMissingTitle        = errors.New("event requires a title")
	ErrMissingRecurrence   = errors.New("recurring event requires a recurrence rule")
	ErrUnexpectedParentRef = errors.New("recurring event must not reference a parent")
	ErrInvalidTimezone     = errors.New("invalid IANA timezone identifier")
)

type Reminder struct {
	MinutesBefore int
	Method        string
}

// Attendee is owned by exactly one event.
type Attendee struct {
	ID         uuid.UUID
	EventID    string
	CustomerID uuid.UUID
	Role       AttendeeRole
	RSVP       RSVPStatus
}

// Event is a calendar entry. Persisted events carry a UUID string id;
// materialized recurrence instances carry a derived id
// (parentID + "_" + formatted start) and are never persisted.
type Event struct {
	ID             string
	CalendarID     uuid.UUID
	Title          string
	Description    string
	Range          timerange.Range
	Timezone       string
	Type           Type
	RecurrenceRule string
	Status         Status
	FreeBusy       FreeBusy
	Visibility     Visibility
	IsException    bool
	ParentID       string
	Location       string
	Attendees      []Attendee
	Reminders      []Reminder
}

// NewSingle builds a validated one-off event.
func NewSingle(calendarID uuid.UUID, title string, r timerange.Range, tz string) (*Event, error) {
	e := &Event{
		ID:         uuid.NewString(),
		CalendarID: calendarID,
		Title:      title,
		Range:      r,
		Timezone:   tz,
		Type:       TypeSingle,
		Status:     StatusScheduled,
		FreeBusy:   FreeBusyBusy,
		Visibility: VisibilityDefault,
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}

// NewRecurring builds a validated recurring event. The rule string is
// parsed eagerly so malformed rules are rejected at creation, not at
// first expansion.
func NewRecurring(calendarID uuid.UUID, title string, r timerange.Range, tz, rule string) (*Event, error) {
	if _, err := ParseRule(rule); err != nil {
		return nil, err
	}
	e := &Event{
		ID:             uuid.NewString(),
		CalendarID:     calendarID,
		Title:          title,
		Range:          r,
		Timezone:       tz,
		Type:           TypeRecurring,
		RecurrenceRule: rule,
		Status:         StatusScheduled,
		FreeBusy:       FreeBusyBusy,
		Visibility:     VisibilityDefault,
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *Event) Validate() error {
	if e.CalendarID == uuid.Nil {
		return ErrMissingCalendar
	}
	if e.Title == "" {
		return ErrMissingTitle
	}
	if e.Range.IsZero() {
		return timerange.ErrInvalidRange
	}
	if !timezone.IsValid(e.Timezone) {
		return ErrInvalidTimezone
	}
	if e.Type == TypeRecurring && e.RecurrenceRule == "" {
		return ErrMissingRecurrence
	}
	if e.Type == TypeRecurring && e.ParentID != "" {
		return ErrUnexpectedParentRef
	}
	return nil
}

// IsRecurrenceInstance reports whether this event was materialized out
// of a recurring parent rather than created directly.
func (e *Event) IsRecurrenceInstance() bool {
	return e.Type == TypeSingle && e.ParentID != ""
}

// BlocksTime reports whether the event occupies calendar time for
// conflict detection. Only cancellation releases the time; a finished
// event still conflicts.
func (e *Event) BlocksTime() bool {
	return e.Status != StatusCancelled && e.FreeBusy == FreeBusyBusy
}

// OccupiesFreeBusy reports whether the event shows as busy in the
// free/busy projection. Stricter than BlocksTime: finished events no
// longer occupy time there.
func (e *Event) OccupiesFreeBusy() bool {
	return e.Status == StatusScheduled && e.FreeBusy == FreeBusyBusy
}
