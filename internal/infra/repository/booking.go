package repository

import (
	"context"

	"coachly/internal/domain/schedule"
	"coachly/internal/domain/timerange"
	"coachly/internal/infra"
	"coachly/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) Create(ctx context.Context, tx db.DBTX, b *schedule.Booking, eventID uuid.UUID) (uuid.UUID, error) {
	const query = `
		INSERT INTO bookings (provider_id, participant_id, event_id, start_time, end_time, location_title)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	var id uuid.UUID
	err := tx.QueryRow(ctx, query,
		b.ProviderID, b.ParticipantID, eventID,
		b.Range.Start(), b.Range.End(), b.LocationTitle,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create booking", err)
	}
	return id, nil
}

func (r *BookingRepository) ListByProviderWithin(ctx context.Context, tx db.DBTX, providerID uuid.UUID, within timerange.Range) ([]schedule.Booking, error) {
	return listBookingsByProviderWithin(ctx, tx, providerID, within)
}

// BookingReadStore serves confirmed bookings to the slot composer.
type BookingReadStore struct {
	db *pgxpool.Pool
}

func NewBookingReadStore(db *pgxpool.Pool) *BookingReadStore {
	return &BookingReadStore{db: db}
}

func (s *BookingReadStore) ListByProviderWithin(ctx context.Context, providerID uuid.UUID, within timerange.Range) ([]schedule.Booking, error) {
	return listBookingsByProviderWithin(ctx, s.db, providerID, within)
}

func listBookingsByProviderWithin(ctx context.Context, tx db.DBTX, providerID uuid.UUID, within timerange.Range) ([]schedule.Booking, error) {
	const query = `
		SELECT b.id, b.provider_id, b.participant_id, u.display_name,
		       b.start_time, b.end_time, b.location_title
		FROM bookings b
		JOIN users u ON u.id = b.participant_id
		WHERE b.provider_id = $1
		  AND b.status = 'confirmed'
		  AND b.start_time < $3 AND b.end_time > $2
		ORDER BY b.start_time`

	rows, err := tx.Query(ctx, query, providerID, within.Start(), within.End())
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}
	defer rows.Close()

	var bookings []schedule.Booking
	for rows.Next() {
		var b schedule.Booking
		var start, end pgtype.Timestamptz
		if err := rows.Scan(&b.ID, &b.ProviderID, &b.ParticipantID, &b.ParticipantName, &start, &end, &b.LocationTitle); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking row", err)
		}
		r, rangeErr := timerange.New(start.Time, end.Time)
		if rangeErr != nil {
			return nil, infra.WrapRepoErr("booking row carries an invalid range", rangeErr)
		}
		b.Range = r
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate booking rows", err)
	}
	return bookings, nil
}
