package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"time"

	"coachly/internal/domain/event"
	"coachly/internal/domain/schedule"
	"coachly/internal/domain/timerange"
	reqdto "coachly/internal/handler/dto/request"
	"coachly/internal/infra"
	"coachly/internal/infra/db"
	"coachly/internal/pkg/clock"
	"coachly/internal/pkg/errs"
	"coachly/internal/pkg/patch"
	"coachly/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrCalendarNotFound        = errs.New("calendar not found")
	ErrEventNotFound           = errs.New("event not found")
	ErrEventConflict           = errs.New("event conflicts with an existing event")
	ErrEventNotEditable        = errs.New("event is not editable")
	ErrNotCalendarOwner        = errs.New("not the calendar owner")
	ErrNotAnAttendee           = errs.New("user is not an attendee of the event")
	ErrInvalidTimeSlot         = errs.New("invalid time slot")
	ErrDomainValidation        = errs.New("domain validation error")
	ErrIdempotencyInProgress   = errs.New("idempotency in progress")
	ErrIdempotencyCheckFailed  = errs.New("idempotency check failed")
	ErrDuplicateRequest        = errs.New("duplicate request with different payload")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

type CreateEventResult struct {
	Event      *queries.EventView
	IsReplayed bool
}

type EventCommands interface {
	CreateEvent(ctx context.Context, req reqdto.CreateEventRequest, userID uuid.UUID, idempotencyKey uuid.UUID) (*CreateEventResult, error)
	UpdateEvent(ctx context.Context, eventID uuid.UUID, req reqdto.UpdateEventRequest, userID uuid.UUID) (*queries.EventView, error)
	CancelEvent(ctx context.Context, eventID uuid.UUID, userID uuid.UUID) error
	DeleteEvent(ctx context.Context, eventID uuid.UUID, userID uuid.UUID) error
	SetRSVP(ctx context.Context, eventID uuid.UUID, customerID uuid.UUID, status string) error
}

type eventCommandsImpl struct {
	eventRepo       EventRepository
	calendarRepo    CalendarRepository
	idempotencyRepo IdempotencyRepository
	eventQueries    queries.EventQueries
	scheduleCache   queries.ScheduleCache
	db              *pgxpool.Pool
	clock           clock.Clock
}

func NewEventCommands(
	eventRepo EventRepository,
	calendarRepo CalendarRepository,
	idempotencyRepo IdempotencyRepository,
	eventQueries queries.EventQueries,
	scheduleCache queries.ScheduleCache,
	db *pgxpool.Pool,
	clock clock.Clock,
) EventCommands {
	return &eventCommandsImpl{
		eventRepo:       eventRepo,
		calendarRepo:    calendarRepo,
		idempotencyRepo: idempotencyRepo,
		eventQueries:    eventQueries,
		scheduleCache:   scheduleCache,
		db:              db,
		clock:           clock,
	}
}

func (c *eventCommandsImpl) CreateEvent(
	ctx context.Context,
	req reqdto.CreateEventRequest,
	userID uuid.UUID,
	idempotencyKey uuid.UUID,
) (*CreateEventResult, error) {
	requestHash := calculateRequestHash(req)
	expiresAt := c.clock.Now().Add(24 * time.Hour)

	existing, err := c.handleIdempotency(ctx, idempotencyKey, userID, requestHash, expiresAt)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return &CreateEventResult{Event: existing, IsReplayed: true}, nil
	}

	view, err := c.createNewEvent(ctx, req, userID, idempotencyKey)
	if err != nil {
		return nil, err
	}
	return &CreateEventResult{Event: view, IsReplayed: false}, nil
}

func (c *eventCommandsImpl) handleIdempotency(
	ctx context.Context,
	idempotencyKey, userID uuid.UUID,
	requestHash string,
	expiresAt time.Time,
) (*queries.EventView, error) {
	if err := c.idempotencyRepo.TryInsert(ctx, idempotencyKey, userID, "POST /events", requestHash, expiresAt); err != nil {
		return nil, errs.Mark(err, ErrIdempotencyCheckFailed)
	}

	existing, err := c.idempotencyRepo.Get(ctx, idempotencyKey, userID)
	if err != nil {
		return nil, errs.Mark(err, ErrIdempotencyCheckFailed)
	}

	switch existing.Status {
	case "completed":
		if existing.ResultEventID != nil {
			return c.eventQueries.GetByID(ctx, existing.ResultEventID.String())
		}
		return nil, errs.New("completed request missing result event ID")

	case "processing":
		if existing.RequestHash != requestHash {
			return nil, ErrDuplicateRequest
		}
		return nil, ErrIdempotencyInProgress

	default:
		return nil, errs.New("invalid idempotency key status")
	}
}

func (c *eventCommandsImpl) createNewEvent(
	ctx context.Context,
	req reqdto.CreateEventRequest,
	userID, idempotencyKey uuid.UUID,
) (*queries.EventView, error) {
	ownerID, err := c.calendarRepo.FindOwnerID(ctx, c.db, req.CalendarID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrCalendarNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if ownerID != userID {
		return nil, ErrNotCalendarOwner
	}

	entity, err := c.buildEvent(req)
	if err != nil {
		return nil, err
	}

	tx, err := c.db.Begin(ctx)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	defer func() {
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil && rollbackErr.Error() != "tx is closed" {
			slog.Warn("failed to rollback transaction", "error", rollbackErr)
		}
	}()

	conflict, err := c.hasConflict(ctx, tx, entity.CalendarID, entity.Range, "")
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if conflict {
		return nil, ErrEventConflict
	}

	eventID, err := c.eventRepo.Create(ctx, tx, entity)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	responseHash := calculateIDHash(eventID)
	if err := c.idempotencyRepo.UpdateStatusCompleted(ctx, tx, idempotencyKey, userID, responseHash, eventID); err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if commitErr := tx.Commit(ctx); commitErr != nil {
		return nil, errs.Mark(commitErr, ErrDatabaseOperationFailed)
	}

	c.scheduleCache.InvalidateProvider(ctx, ownerID)

	// Read-after-write through the query side so the handler returns
	// the same shape as a GET.
	return c.eventQueries.GetByID(ctx, eventID.String())
}

func (c *eventCommandsImpl) buildEvent(req reqdto.CreateEventRequest) (*event.Event, error) {
	r, err := timerange.New(req.StartTime, req.EndTime)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidTimeSlot)
	}

	tz := req.Timezone
	if tz == "" {
		tz = "UTC"
	}

	var entity *event.Event
	if req.RecurrenceRule != nil && *req.RecurrenceRule != "" {
		entity, err = event.NewRecurring(req.CalendarID, req.Title, r, tz, *req.RecurrenceRule)
	} else {
		entity, err = event.NewSingle(req.CalendarID, req.Title, r, tz)
	}
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	entity.Description = req.Description
	entity.Location = req.Location
	if req.FreeBusy != nil {
		entity.FreeBusy = event.FreeBusy(*req.FreeBusy)
	}
	if req.Visibility != nil {
		entity.Visibility = event.Visibility(*req.Visibility)
	}
	for _, a := range req.Attendees {
		role := event.AttendeeRequired
		if a.Role != "" {
			role = event.AttendeeRole(a.Role)
		}
		entity.Attendees = append(entity.Attendees, event.Attendee{
			ID:         uuid.New(),
			EventID:    entity.ID,
			CustomerID: a.CustomerID,
			Role:       role,
			RSVP:       event.RSVPPending,
		})
	}
	for _, rem := range req.Reminders {
		method := rem.Method
		if method == "" {
			method = "email"
		}
		entity.Reminders = append(entity.Reminders, event.Reminder{
			MinutesBefore: rem.MinutesBefore,
			Method:        method,
		})
	}

	if err := entity.Validate(); err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}
	return entity, nil
}

func (c *eventCommandsImpl) UpdateEvent(
	ctx context.Context,
	eventID uuid.UUID,
	req reqdto.UpdateEventRequest,
	userID uuid.UUID,
) (*queries.EventView, error) {
	tx, err := c.db.Begin(ctx)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	defer func() {
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil && rollbackErr.Error() != "tx is closed" {
			slog.Warn("failed to rollback transaction", "error", rollbackErr)
		}
	}()

	entity, ownerID, err := c.loadOwnedEvent(ctx, tx, eventID, userID)
	if err != nil {
		return nil, err
	}
	if entity.Status.IsTerminal() {
		return nil, ErrEventNotEditable
	}

	start := patch.Coalesce(req.StartTime, entity.Range.Start())
	end := patch.Coalesce(req.EndTime, entity.Range.End())
	r, err := timerange.New(start, end)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidTimeSlot)
	}

	entity.Title = patch.Coalesce(req.Title, entity.Title)
	entity.Description = patch.Coalesce(req.Description, entity.Description)
	entity.Range = r
	entity.Timezone = patch.Coalesce(req.Timezone, entity.Timezone)
	entity.RecurrenceRule = patch.Coalesce(req.RecurrenceRule, entity.RecurrenceRule)
	entity.Location = patch.Coalesce(req.Location, entity.Location)
	if req.FreeBusy != nil {
		entity.FreeBusy = event.FreeBusy(*req.FreeBusy)
	}
	if req.Visibility != nil {
		entity.Visibility = event.Visibility(*req.Visibility)
	}

	if entity.Type == event.TypeRecurring {
		if _, parseErr := event.ParseRule(entity.RecurrenceRule); parseErr != nil {
			return nil, errs.Mark(parseErr, ErrDomainValidation)
		}
	}
	if err := entity.Validate(); err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	// The event being updated must not conflict with itself.
	conflict, err := c.hasConflict(ctx, tx, entity.CalendarID, entity.Range, entity.ID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if conflict {
		return nil, ErrEventConflict
	}

	if err := c.eventRepo.Update(ctx, tx, entity); err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if commitErr := tx.Commit(ctx); commitErr != nil {
		return nil, errs.Mark(commitErr, ErrDatabaseOperationFailed)
	}

	c.scheduleCache.InvalidateProvider(ctx, ownerID)
	return c.eventQueries.GetByID(ctx, entity.ID)
}

func (c *eventCommandsImpl) CancelEvent(ctx context.Context, eventID uuid.UUID, userID uuid.UUID) error {
	entity, ownerID, err := c.loadOwnedEvent(ctx, c.db, eventID, userID)
	if err != nil {
		return err
	}
	if entity.Status.IsTerminal() {
		return ErrEventNotEditable
	}

	if err := c.eventRepo.UpdateStatus(ctx, c.db, eventID, event.StatusCancelled); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	c.scheduleCache.InvalidateProvider(ctx, ownerID)
	return nil
}

func (c *eventCommandsImpl) DeleteEvent(ctx context.Context, eventID uuid.UUID, userID uuid.UUID) error {
	_, ownerID, err := c.loadOwnedEvent(ctx, c.db, eventID, userID)
	if err != nil {
		return err
	}

	if err := c.eventRepo.Delete(ctx, c.db, eventID); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	c.scheduleCache.InvalidateProvider(ctx, ownerID)
	return nil
}

func (c *eventCommandsImpl) SetRSVP(ctx context.Context, eventID uuid.UUID, customerID uuid.UUID, status string) error {
	rsvp := event.RSVPStatus(status)
	if !rsvp.IsValid() {
		return ErrDomainValidation
	}

	err := c.eventRepo.SetRSVP(ctx, c.db, eventID, customerID, rsvp)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrNotAnAttendee
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}

func (c *eventCommandsImpl) loadOwnedEvent(ctx context.Context, tx db.DBTX, eventID uuid.UUID, userID uuid.UUID) (*event.Event, uuid.UUID, error) {
	entity, err := c.eventRepo.FindByID(ctx, tx, eventID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, uuid.Nil, ErrEventNotFound
		}
		return nil, uuid.Nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	ownerID, err := c.calendarRepo.FindOwnerID(ctx, tx, entity.CalendarID)
	if err != nil {
		return nil, uuid.Nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if ownerID != userID {
		return nil, uuid.Nil, ErrNotCalendarOwner
	}
	return entity, ownerID, nil
}

// hasConflict evaluates the candidate against the calendar's concrete
// blocking events, materializing recurring series around the candidate.
// excludeID skips both the event itself and, for a recurring parent,
// its own instances.
func (c *eventCommandsImpl) hasConflict(ctx context.Context, tx db.DBTX, calendarID uuid.UUID, candidate timerange.Range, excludeID string) (bool, error) {
	fetchWindow, err := timerange.New(
		candidate.Start().Add(-schedule.ConflictFetchPadding),
		candidate.End().Add(schedule.ConflictFetchPadding),
	)
	if err != nil {
		return false, err
	}

	events, err := c.eventRepo.ListByCalendarWithin(ctx, tx, calendarID, fetchWindow)
	if err != nil {
		return false, err
	}

	var concrete []*event.Event
	for _, e := range events {
		if excludeID != "" && (e.ID == excludeID || e.ParentID == excludeID) {
			continue
		}
		if e.Type == event.TypeRecurring {
			instances, expandErr := event.Expand(e, event.ExpandOptions{Window: fetchWindow})
			if expandErr != nil {
				return false, expandErr
			}
			concrete = append(concrete, instances...)
			continue
		}
		concrete = append(concrete, e)
	}

	blocking := concrete[:0]
	for _, e := range concrete {
		if e.BlocksTime() {
			blocking = append(blocking, e)
		}
	}
	return schedule.HasConflict(candidate, blocking), nil
}

func calculateRequestHash(req any) string {
	data, _ := json.Marshal(req)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

func calculateIDHash(id uuid.UUID) string {
	hash := sha256.Sum256([]byte(id.String()))
	return hex.EncodeToString(hash[:])
}
