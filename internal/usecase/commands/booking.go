package commands

import (
	"context"
	"log/slog"

	"coachly/internal/domain/event"
	"coachly/internal/domain/schedule"
	"coachly/internal/domain/timerange"
	"coachly/internal/domain/user"
	reqdto "coachly/internal/handler/dto/request"
	"coachly/internal/infra"
	"coachly/internal/pkg/errs"
	"coachly/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrSlotUnavailable = errs.New("slot is not available for booking")

type BookingCommands interface {
	CreateBooking(ctx context.Context, req reqdto.CreateBookingRequest, studentID uuid.UUID) (*queries.BookingView, error)
}

type bookingCommandsImpl struct {
	bookingRepo     BookingRepository
	eventRepo       EventRepository
	calendarRepo    CalendarRepository
	userReadStore   queries.UserReadStore
	scheduleQueries queries.ScheduleQueries
	scheduleCache   queries.ScheduleCache
	db              *pgxpool.Pool
}

func NewBookingCommands(
	bookingRepo BookingRepository,
	eventRepo EventRepository,
	calendarRepo CalendarRepository,
	userReadStore queries.UserReadStore,
	scheduleQueries queries.ScheduleQueries,
	scheduleCache queries.ScheduleCache,
	db *pgxpool.Pool,
) BookingCommands {
	return &bookingCommandsImpl{
		bookingRepo:     bookingRepo,
		eventRepo:       eventRepo,
		calendarRepo:    calendarRepo,
		userReadStore:   userReadStore,
		scheduleQueries: scheduleQueries,
		scheduleCache:   scheduleCache,
		db:              db,
	}
}

// CreateBooking books a slot for a student: the slot must classify as
// available, and the booking materializes as a busy event on the
// coach's calendar so conflict detection and free/busy see it.
// Concurrent bookings of the same slot are serialized by the conflict
// check running inside the insert transaction.
func (b *bookingCommandsImpl) CreateBooking(ctx context.Context, req reqdto.CreateBookingRequest, studentID uuid.UUID) (*queries.BookingView, error) {
	candidate, err := timerange.New(req.StartTime, req.EndTime)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidTimeSlot)
	}

	slot, err := b.scheduleQueries.CheckSlot(ctx, req.CoachID, req.StartTime, req.EndTime, user.RoleStudent)
	if err != nil {
		return nil, err
	}
	if slot.Availability != schedule.SlotAvailable.String() {
		return nil, ErrSlotUnavailable
	}

	calendarID, err := b.calendarRepo.FindIDByOwner(ctx, b.db, req.CoachID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrCalendarNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	student, err := b.userReadStore.FindByID(ctx, studentID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	sessionEvent, err := event.NewSingle(calendarID, "Coaching session with "+student.DisplayName, candidate, student.Timezone)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}
	sessionEvent.Location = req.LocationTitle
	sessionEvent.Attendees = []event.Attendee{{
		ID:         uuid.New(),
		EventID:    sessionEvent.ID,
		CustomerID: studentID,
		Role:       event.AttendeeRequired,
		RSVP:       event.RSVPAccepted,
	}}

	tx, err := b.db.Begin(ctx)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	defer func() {
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil && rollbackErr.Error() != "tx is closed" {
			slog.Warn("failed to rollback transaction", "error", rollbackErr)
		}
	}()

	// Re-check under the transaction: another booking may have landed
	// between the slot check and here.
	overlapping, err := b.bookingRepo.ListByProviderWithin(ctx, tx, req.CoachID, candidate)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	for _, existing := range overlapping {
		if candidate.Overlaps(existing.Range) {
			return nil, ErrSlotUnavailable
		}
	}

	eventID, err := b.eventRepo.Create(ctx, tx, sessionEvent)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	booking := &schedule.Booking{
		ProviderID:      req.CoachID,
		ParticipantID:   studentID,
		ParticipantName: student.DisplayName,
		Range:           candidate,
		LocationTitle:   req.LocationTitle,
	}
	bookingID, err := b.bookingRepo.Create(ctx, tx, booking, eventID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if commitErr := tx.Commit(ctx); commitErr != nil {
		return nil, errs.Mark(commitErr, ErrDatabaseOperationFailed)
	}

	b.scheduleCache.InvalidateProvider(ctx, req.CoachID)

	return &queries.BookingView{
		ID:            bookingID,
		ProviderID:    req.CoachID,
		ParticipantID: studentID,
		StartTime:     candidate.Start(),
		EndTime:       candidate.End(),
		LocationTitle: req.LocationTitle,
		Status:        "confirmed",
	}, nil
}
