package commands

import (
	"context"
	"time"

	"coachly/internal/domain/event"
	"coachly/internal/domain/schedule"
	"coachly/internal/domain/timerange"
	"coachly/internal/domain/user"
	"coachly/internal/infra/db"

	"github.com/google/uuid"
)

// Write-side snapshots prevent dependency on Read-side query types (CQRS separation)
type IdempotencyRecord struct {
	Key           uuid.UUID
	UserID        uuid.UUID
	Status        string
	RequestHash   string
	ResultEventID *uuid.UUID
	ExpiresAt     time.Time
}

type EventPatch struct {
	Title          *string
	Description    *string
	StartTime      *time.Time
	EndTime        *time.Time
	Timezone       *string
	RecurrenceRule *string
	FreeBusy       *string
	Visibility     *string
	Location       *string
}

type EventRepository interface {
	Create(ctx context.Context, tx db.DBTX, e *event.Event) (uuid.UUID, error)
	FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*event.Event, error)
	ListByCalendarWithin(ctx context.Context, tx db.DBTX, calendarID uuid.UUID, within timerange.Range) ([]*event.Event, error)
	Update(ctx context.Context, tx db.DBTX, e *event.Event) error
	UpdateStatus(ctx context.Context, tx db.DBTX, id uuid.UUID, status event.Status) error
	Delete(ctx context.Context, tx db.DBTX, id uuid.UUID) error
	SetRSVP(ctx context.Context, tx db.DBTX, eventID uuid.UUID, customerID uuid.UUID, status event.RSVPStatus) error
}

type CalendarRepository interface {
	Create(ctx context.Context, tx db.DBTX, ownerID uuid.UUID, name, tz string) (uuid.UUID, error)
	FindOwnerID(ctx context.Context, tx db.DBTX, calendarID uuid.UUID) (uuid.UUID, error)
	FindIDByOwner(ctx context.Context, tx db.DBTX, ownerID uuid.UUID) (uuid.UUID, error)
}

type UserWriteRepository interface {
	Create(ctx context.Context, tx db.DBTX, u *user.User) (uuid.UUID, error)
	UpdateLastLogin(ctx context.Context, tx db.DBTX, userID uuid.UUID) error
}

type RuleRepository interface {
	ReplaceAvailabilityRules(ctx context.Context, tx db.DBTX, calendarID uuid.UUID, rules []schedule.AvailabilityRule) error
	ReplacePriceRules(ctx context.Context, tx db.DBTX, calendarID uuid.UUID, rules []schedule.PriceRule) error
	PriceRules(ctx context.Context, tx db.DBTX, calendarID uuid.UUID) ([]schedule.PriceRule, error)
}

type BookingRepository interface {
	Create(ctx context.Context, tx db.DBTX, b *schedule.Booking, eventID uuid.UUID) (uuid.UUID, error)
	ListByProviderWithin(ctx context.Context, tx db.DBTX, providerID uuid.UUID, within timerange.Range) ([]schedule.Booking, error)
}

type IdempotencyRepository interface {
	TryInsert(ctx context.Context, key uuid.UUID, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) error
	Get(ctx context.Context, key uuid.UUID, userID uuid.UUID) (*IdempotencyRecord, error)
	UpdateStatusCompleted(ctx context.Context, tx db.DBTX, key uuid.UUID, userID uuid.UUID, responseBodyHash string, resultEventID uuid.UUID) error
	DeleteExpired(ctx context.Context) (int64, error)
}
