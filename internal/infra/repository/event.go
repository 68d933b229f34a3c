package repository

import (
	"context"
	"time"

	"coachly/internal/domain/event"
	"coachly/internal/domain/timerange"
	"coachly/internal/infra"
	"coachly/internal/infra/db"
	"coachly/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type EventRepository struct {
	db *pgxpool.Pool
}

func NewEventRepository(db *pgxpool.Pool) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Create(ctx context.Context, tx db.DBTX, e *event.Event) (uuid.UUID, error) {
	const query = `
		INSERT INTO events (
			id, calendar_id, title, description, start_time, end_time, timezone,
			event_type, recurrence_rule, status, free_busy, visibility,
			is_exception, parent_id, location
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id`

	eventID, err := uuid.Parse(e.ID)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("event id is not persistable", err)
	}
	parentID, err := parentIDToPgtype(e.ParentID)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("parent id is not persistable", err)
	}

	var id uuid.UUID
	err = tx.QueryRow(ctx, query,
		eventID, e.CalendarID, e.Title, e.Description,
		e.Range.Start(), e.Range.End(), e.Timezone,
		e.Type.String(), e.RecurrenceRule, e.Status.String(),
		e.FreeBusy.String(), e.Visibility.String(),
		e.IsException, parentID, e.Location,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create event", err)
	}

	for _, a := range e.Attendees {
		if err := insertAttendee(ctx, tx, id, a); err != nil {
			return uuid.Nil, err
		}
	}
	for _, rem := range e.Reminders {
		if err := insertReminder(ctx, tx, id, rem); err != nil {
			return uuid.Nil, err
		}
	}
	return id, nil
}

func (r *EventRepository) FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*event.Event, error) {
	return findEventByID(ctx, tx, id)
}

func (r *EventRepository) ListByCalendarWithin(ctx context.Context, tx db.DBTX, calendarID uuid.UUID, within timerange.Range) ([]*event.Event, error) {
	return listEventsByCalendarWithin(ctx, tx, calendarID, within)
}

func (r *EventRepository) Update(ctx context.Context, tx db.DBTX, e *event.Event) error {
	const query = `
		UPDATE events SET
			title = $2, description = $3, start_time = $4, end_time = $5,
			timezone = $6, recurrence_rule = $7, free_busy = $8,
			visibility = $9, location = $10, updated_at = now()
		WHERE id = $1`

	eventID, err := uuid.Parse(e.ID)
	if err != nil {
		return infra.WrapRepoErr("event id is not persistable", err)
	}

	tag, err := tx.Exec(ctx, query,
		eventID, e.Title, e.Description, e.Range.Start(), e.Range.End(),
		e.Timezone, e.RecurrenceRule, e.FreeBusy.String(),
		e.Visibility.String(), e.Location,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update event", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("event not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *EventRepository) UpdateStatus(ctx context.Context, tx db.DBTX, id uuid.UUID, status event.Status) error {
	const query = `UPDATE events SET status = $2, updated_at = now() WHERE id = $1`

	tag, err := tx.Exec(ctx, query, id, status.String())
	if err != nil {
		return infra.WrapRepoErr("failed to update event status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("event not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *EventRepository) Delete(ctx context.Context, tx db.DBTX, id uuid.UUID) error {
	// Attendees, reminders and recurrence children go with it via
	// ON DELETE CASCADE.
	tag, err := tx.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete event", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("event not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *EventRepository) SetRSVP(ctx context.Context, tx db.DBTX, eventID uuid.UUID, customerID uuid.UUID, status event.RSVPStatus) error {
	const query = `
		UPDATE event_attendees SET rsvp_status = $3
		WHERE event_id = $1 AND customer_id = $2`

	tag, err := tx.Exec(ctx, query, eventID, customerID, status.String())
	if err != nil {
		return infra.WrapRepoErr("failed to set rsvp", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("attendee not found", nil, infra.KindNotFound)
	}
	return nil
}

// FinishPastEvents flips scheduled events that already ended into the
// finished state. Recurring parents are left alone: their instances are
// never persisted, so there is no row to finish.
func (r *EventRepository) FinishPastEvents(ctx context.Context, now time.Time) (int64, error) {
	const query = `
		UPDATE events SET status = 'finished', updated_at = now()
		WHERE status = 'scheduled' AND event_type = 'single' AND end_time <= $1`

	tag, err := r.db.Exec(ctx, query, now)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to finish past events", err)
	}
	return tag.RowsAffected(), nil
}

// EventReadStore serves the query side off the pool directly.
type EventReadStore struct {
	db *pgxpool.Pool
}

func NewEventReadStore(db *pgxpool.Pool) *EventReadStore {
	return &EventReadStore{db: db}
}

func (s *EventReadStore) FindByID(ctx context.Context, id uuid.UUID) (*event.Event, error) {
	return findEventByID(ctx, s.db, id)
}

func (s *EventReadStore) ListByCalendarWithin(ctx context.Context, calendarID uuid.UUID, within timerange.Range) ([]*event.Event, error) {
	return listEventsByCalendarWithin(ctx, s.db, calendarID, within)
}

const eventColumns = `
	id, calendar_id, title, description, start_time, end_time, timezone,
	event_type, recurrence_rule, status, free_busy, visibility,
	is_exception, parent_id, location`

func findEventByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*event.Event, error) {
	query := `SELECT` + eventColumns + ` FROM events WHERE id = $1`

	e, err := scanEvent(tx.QueryRow(ctx, query, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("event not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find event by ID", err)
	}
	if err := attachChildren(ctx, tx, []*event.Event{e}); err != nil {
		return nil, err
	}
	return e, nil
}

// listEventsByCalendarWithin returns singles overlapping the window
// plus every recurring parent whose series begins before the window
// ends. How far a recurring series actually reaches depends on its
// rule, which only the expander understands, so the horizon check
// stays coarse here.
func listEventsByCalendarWithin(ctx context.Context, tx db.DBTX, calendarID uuid.UUID, within timerange.Range) ([]*event.Event, error) {
	query := `
		SELECT` + eventColumns + `
		FROM events
		WHERE calendar_id = $1
		  AND (
			(event_type = 'recurring' AND start_time < $3)
			OR (start_time < $3 AND end_time > $2)
		  )
		ORDER BY start_time`

	rows, err := tx.Query(ctx, query, calendarID, within.Start(), within.End())
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list events", err)
	}
	defer rows.Close()

	var events []*event.Event
	for rows.Next() {
		e, scanErr := scanEvent(rows)
		if scanErr != nil {
			return nil, infra.WrapRepoErr("failed to scan event row", scanErr)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate event rows", err)
	}

	if err := attachChildren(ctx, tx, events); err != nil {
		return nil, err
	}
	return events, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*event.Event, error) {
	var (
		id, calendarID                         uuid.UUID
		parentID                               pgtype.UUID
		title, description, tz, location       string
		eventType, rule, status, freeBusy, vis string
		isException                            bool
		start, end                             pgtype.Timestamptz
	)
	err := row.Scan(
		&id, &calendarID, &title, &description, &start, &end, &tz,
		&eventType, &rule, &status, &freeBusy, &vis,
		&isException, &parentID, &location,
	)
	if err != nil {
		return nil, err
	}

	r, err := timerange.New(start.Time, end.Time)
	if err != nil {
		return nil, err
	}

	e := &event.Event{
		ID:             id.String(),
		CalendarID:     calendarID,
		Title:          title,
		Description:    description,
		Range:          r,
		Timezone:       tz,
		Type:           event.Type(eventType),
		RecurrenceRule: rule,
		Status:         event.Status(status),
		FreeBusy:       event.FreeBusy(freeBusy),
		Visibility:     event.Visibility(vis),
		IsException:    isException,
		Location:       location,
	}
	if pid := pgconv.UUIDPtrFromPgtype(parentID); pid != nil {
		e.ParentID = pid.String()
	}
	return e, nil
}

// attachChildren loads attendees and reminders for the given events in
// two queries instead of two per event.
func attachChildren(ctx context.Context, tx db.DBTX, events []*event.Event) error {
	if len(events) == 0 {
		return nil
	}

	byID := make(map[uuid.UUID]*event.Event, len(events))
	ids := make([]uuid.UUID, 0, len(events))
	for _, e := range events {
		id, err := uuid.Parse(e.ID)
		if err != nil {
			continue
		}
		byID[id] = e
		ids = append(ids, id)
	}

	attendeeRows, err := tx.Query(ctx, `
		SELECT id, event_id, customer_id, role, rsvp_status
		FROM event_attendees WHERE event_id = ANY($1)`, ids)
	if err != nil {
		return infra.WrapRepoErr("failed to list attendees", err)
	}
	defer attendeeRows.Close()
	for attendeeRows.Next() {
		var a event.Attendee
		var eventID uuid.UUID
		var role, rsvp string
		if err := attendeeRows.Scan(&a.ID, &eventID, &a.CustomerID, &role, &rsvp); err != nil {
			return infra.WrapRepoErr("failed to scan attendee row", err)
		}
		a.EventID = eventID.String()
		a.Role = event.AttendeeRole(role)
		a.RSVP = event.RSVPStatus(rsvp)
		if e, ok := byID[eventID]; ok {
			e.Attendees = append(e.Attendees, a)
		}
	}
	if err := attendeeRows.Err(); err != nil {
		return infra.WrapRepoErr("failed to iterate attendee rows", err)
	}

	reminderRows, err := tx.Query(ctx, `
		SELECT event_id, minutes_before, method
		FROM event_reminders WHERE event_id = ANY($1)`, ids)
	if err != nil {
		return infra.WrapRepoErr("failed to list reminders", err)
	}
	defer reminderRows.Close()
	for reminderRows.Next() {
		var eventID uuid.UUID
		var rem event.Reminder
		if err := reminderRows.Scan(&eventID, &rem.MinutesBefore, &rem.Method); err != nil {
			return infra.WrapRepoErr("failed to scan reminder row", err)
		}
		if e, ok := byID[eventID]; ok {
			e.Reminders = append(e.Reminders, rem)
		}
	}
	if err := reminderRows.Err(); err != nil {
		return infra.WrapRepoErr("failed to iterate reminder rows", err)
	}
	return nil
}

func insertAttendee(ctx context.Context, tx db.DBTX, eventID uuid.UUID, a event.Attendee) error {
	const query = `
		INSERT INTO event_attendees (event_id, customer_id, role, rsvp_status)
		VALUES ($1, $2, $3, $4)`

	if _, err := tx.Exec(ctx, query, eventID, a.CustomerID, a.Role.String(), a.RSVP.String()); err != nil {
		return infra.WrapRepoErr("failed to insert attendee", err)
	}
	return nil
}

func insertReminder(ctx context.Context, tx db.DBTX, eventID uuid.UUID, rem event.Reminder) error {
	const query = `
		INSERT INTO event_reminders (event_id, minutes_before, method)
		VALUES ($1, $2, $3)`

	if _, err := tx.Exec(ctx, query, eventID, rem.MinutesBefore, rem.Method); err != nil {
		return infra.WrapRepoErr("failed to insert reminder", err)
	}
	return nil
}

func parentIDToPgtype(parentID string) (pgtype.UUID, error) {
	if parentID == "" {
		return pgtype.UUID{Valid: false}, nil
	}
	id, err := uuid.Parse(parentID)
	if err != nil {
		return pgtype.UUID{}, err
	}
	return pgconv.UUIDToPgtype(id), nil
}
