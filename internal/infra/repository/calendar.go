package repository

import (
	"context"

	"coachly/internal/infra"
	"coachly/internal/infra/db"
	"coachly/internal/pkg/pgconv"
	"coachly/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CalendarRepository struct {
	db *pgxpool.Pool
}

func NewCalendarRepository(db *pgxpool.Pool) *CalendarRepository {
	return &CalendarRepository{db: db}
}

func (r *CalendarRepository) Create(ctx context.Context, tx db.DBTX, ownerID uuid.UUID, name, tz string) (uuid.UUID, error) {
	const query = `
		INSERT INTO calendars (owner_id, name, timezone)
		VALUES ($1, $2, $3)
		RETURNING id`

	var id uuid.UUID
	if err := tx.QueryRow(ctx, query, ownerID, name, tz).Scan(&id); err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create calendar", err)
	}
	return id, nil
}

func (r *CalendarRepository) FindOwnerID(ctx context.Context, tx db.DBTX, calendarID uuid.UUID) (uuid.UUID, error) {
	const query = `SELECT owner_id FROM calendars WHERE id = $1`

	var ownerID uuid.UUID
	if err := tx.QueryRow(ctx, query, calendarID).Scan(&ownerID); err != nil {
		if pgconv.IsNoRows(err) {
			return uuid.Nil, infra.WrapRepoErr("calendar not found", err, infra.KindNotFound)
		}
		return uuid.Nil, infra.WrapRepoErr("failed to find calendar owner", err)
	}
	return ownerID, nil
}

func (r *CalendarRepository) FindIDByOwner(ctx context.Context, tx db.DBTX, ownerID uuid.UUID) (uuid.UUID, error) {
	const query = `SELECT id FROM calendars WHERE owner_id = $1 ORDER BY created_at LIMIT 1`

	var id uuid.UUID
	if err := tx.QueryRow(ctx, query, ownerID).Scan(&id); err != nil {
		if pgconv.IsNoRows(err) {
			return uuid.Nil, infra.WrapRepoErr("calendar not found", err, infra.KindNotFound)
		}
		return uuid.Nil, infra.WrapRepoErr("failed to find calendar by owner", err)
	}
	return id, nil
}

func (r *CalendarRepository) FindByID(ctx context.Context, id uuid.UUID) (*queries.CalendarView, error) {
	const query = `
		SELECT id, owner_id, name, timezone, created_at, updated_at
		FROM calendars WHERE id = $1`

	var view queries.CalendarView
	err := r.db.QueryRow(ctx, query, id).Scan(
		&view.ID, &view.OwnerID, &view.Name, &view.Timezone, &view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("calendar not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find calendar by ID", err)
	}
	return &view, nil
}

func (r *CalendarRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) (*queries.CalendarView, error) {
	const query = `
		SELECT id, owner_id, name, timezone, created_at, updated_at
		FROM calendars WHERE owner_id = $1 ORDER BY created_at LIMIT 1`

	var view queries.CalendarView
	err := r.db.QueryRow(ctx, query, ownerID).Scan(
		&view.ID, &view.OwnerID, &view.Name, &view.Timezone, &view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("calendar not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find calendar by owner", err)
	}
	return &view, nil
}
