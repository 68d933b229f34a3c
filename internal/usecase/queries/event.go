package queries

import (
	"context"
	"sort"
	"time"

	"coachly/internal/domain/event"
	"coachly/internal/domain/schedule"
	"coachly/internal/domain/timerange"
	"coachly/internal/infra"
	"coachly/internal/pkg/errs"
	"coachly/internal/pkg/timezone"

	"github.com/google/uuid"
)

var (
	ErrEventNotFound    = errs.New("event not found")
	ErrCalendarNotFound = errs.New("calendar not found")
	ErrInvalidWindow    = errs.New("invalid query window")
)

type EventQueries interface {
	GetByID(ctx context.Context, id string) (*EventView, error)
	ListByCalendar(ctx context.Context, calendarID uuid.UUID, from, to time.Time) ([]*EventView, error)
}

// EventReadStore returns domain entities rather than flat rows: the
// scheduling algorithms downstream need the full event semantics, and
// views are derived from entities in one place.
type EventReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*event.Event, error)
	// ListByCalendarWithin returns persisted events overlapping the
	// window. Recurring parents match on their padded rule horizon, so
	// callers expand before filtering.
	ListByCalendarWithin(ctx context.Context, calendarID uuid.UUID, within timerange.Range) ([]*event.Event, error)
}

type CalendarReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*CalendarView, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID) (*CalendarView, error)
}

type eventQueriesImpl struct {
	events EventReadStore
}

func NewEventQueries(events EventReadStore) EventQueries {
	return &eventQueriesImpl{events: events}
}

func (q *eventQueriesImpl) GetByID(ctx context.Context, id string) (*EventView, error) {
	if parentID, start, ok := event.ParseInstanceID(id); ok {
		return q.getInstance(ctx, id, parentID, start)
	}

	eventID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrEventNotFound
	}

	e, err := q.events.FindByID(ctx, eventID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return ToEventView(e), nil
}

// getInstance re-materializes one recurrence instance from its parent.
// Instances are never persisted, so the only source of truth is the
// parent's rule.
func (q *eventQueriesImpl) getInstance(ctx context.Context, id, parentIDStr string, wallStart time.Time) (*EventView, error) {
	parentID, err := uuid.Parse(parentIDStr)
	if err != nil {
		return nil, ErrEventNotFound
	}

	parent, err := q.events.FindByID(ctx, parentID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	loc := timezone.Location(parent.Timezone)
	start := time.Date(wallStart.Year(), wallStart.Month(), wallStart.Day(),
		wallStart.Hour(), wallStart.Minute(), wallStart.Second(), 0, loc)
	window, err := timerange.New(start, start.Add(parent.Range.Duration()))
	if err != nil {
		return nil, ErrEventNotFound
	}

	instances, err := event.Expand(parent, event.ExpandOptions{Window: window})
	if err != nil {
		return nil, ErrEventNotFound
	}
	for _, instance := range instances {
		if instance.ID == id {
			return ToEventView(instance), nil
		}
	}
	return nil, ErrEventNotFound
}

func (q *eventQueriesImpl) ListByCalendar(ctx context.Context, calendarID uuid.UUID, from, to time.Time) ([]*EventView, error) {
	window, err := timerange.New(from, to)
	if err != nil {
		return nil, ErrInvalidWindow
	}

	events, err := q.events.ListByCalendarWithin(ctx, calendarID, padWindow(window))
	if err != nil {
		return nil, err
	}

	views := make([]*EventView, 0, len(events))
	for _, e := range events {
		if e.Type == event.TypeRecurring {
			instances, expandErr := event.Expand(e, event.ExpandOptions{Window: window})
			if expandErr != nil {
				return nil, expandErr
			}
			for _, instance := range instances {
				views = append(views, ToEventView(instance))
			}
			continue
		}
		if window.Overlaps(e.Range) {
			views = append(views, ToEventView(e))
		}
	}

	sort.Slice(views, func(i, j int) bool {
		return views[i].StartTime.Before(views[j].StartTime)
	})
	return views, nil
}

// padWindow widens the fetch so recurring parents whose series starts
// before the window are still picked up for expansion.
func padWindow(window timerange.Range) timerange.Range {
	padded, err := timerange.New(
		window.Start().Add(-schedule.ConflictFetchPadding),
		window.End().Add(schedule.ConflictFetchPadding),
	)
	if err != nil {
		return window
	}
	return padded
}

func ToEventView(e *event.Event) *EventView {
	view := &EventView{
		ID:             e.ID,
		CalendarID:     e.CalendarID,
		Title:          e.Title,
		Description:    e.Description,
		StartTime:      e.Range.Start(),
		EndTime:        e.Range.End(),
		Timezone:       e.Timezone,
		Type:           e.Type.String(),
		RecurrenceRule: e.RecurrenceRule,
		Status:         e.Status.String(),
		FreeBusy:       e.FreeBusy.String(),
		Visibility:     e.Visibility.String(),
		IsException:    e.IsException,
		Location:       e.Location,
	}
	if e.ParentID != "" {
		parentID := e.ParentID
		view.ParentID = &parentID
	}
	for _, a := range e.Attendees {
		view.Attendees = append(view.Attendees, AttendeeView{
			ID:         a.ID,
			CustomerID: a.CustomerID,
			Role:       a.Role.String(),
			RSVPStatus: a.RSVP.String(),
		})
	}
	for _, r := range e.Reminders {
		view.Reminders = append(view.Reminders, ReminderView{
			MinutesBefore: r.MinutesBefore,
			Method:        r.Method,
		})
	}
	return view
}
