package repository

import (
	"context"
	"time"

	"coachly/internal/infra"
	"coachly/internal/infra/db"
	"coachly/internal/pkg/pgconv"
	"coachly/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type IdempotencyRepository struct {
	db *pgxpool.Pool
}

func NewIdempotencyRepository(db *pgxpool.Pool) *IdempotencyRepository {
	return &IdempotencyRepository{db: db}
}

// TryInsert claims the key. An existing row is not an error; the caller
// reads the row back and decides between replay and rejection.
func (r *IdempotencyRepository) TryInsert(ctx context.Context, key uuid.UUID, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) error {
	const query = `
		INSERT INTO idempotency_keys (key, user_id, endpoint, request_hash, expires_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (key, user_id) DO NOTHING`

	if _, err := r.db.Exec(ctx, query, key, userID, endpoint, requestHash, pgconv.TimeToPgtype(expiresAt)); err != nil {
		return infra.WrapRepoErr("failed to try insert idempotency key", err)
	}
	return nil
}

func (r *IdempotencyRepository) Get(ctx context.Context, key uuid.UUID, userID uuid.UUID) (*commands.IdempotencyRecord, error) {
	const query = `
		SELECT key, user_id, status, request_hash, result_event_id, expires_at
		FROM idempotency_keys
		WHERE key = $1 AND user_id = $2`

	var record commands.IdempotencyRecord
	var resultEventID pgtype.UUID
	var expiresAt pgtype.Timestamptz
	err := r.db.QueryRow(ctx, query, key, userID).Scan(
		&record.Key, &record.UserID, &record.Status, &record.RequestHash,
		&resultEventID, &expiresAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("idempotency key not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get idempotency key", err)
	}
	record.ResultEventID = pgconv.UUIDPtrFromPgtype(resultEventID)
	record.ExpiresAt = expiresAt.Time
	return &record, nil
}

func (r *IdempotencyRepository) UpdateStatusCompleted(ctx context.Context, tx db.DBTX, key uuid.UUID, userID uuid.UUID, responseBodyHash string, resultEventID uuid.UUID) error {
	const query = `
		UPDATE idempotency_keys
		SET status = 'completed', response_body_hash = $3, result_event_id = $4
		WHERE key = $1 AND user_id = $2`

	_, err := tx.Exec(ctx, query, key, userID,
		pgconv.StringToPgtype(responseBodyHash), pgconv.UUIDToPgtype(resultEventID))
	if err != nil {
		return infra.WrapRepoErr("failed to update idempotency key status", err)
	}
	return nil
}

func (r *IdempotencyRepository) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM idempotency_keys WHERE expires_at < now()`)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to delete expired idempotency keys", err)
	}
	return tag.RowsAffected(), nil
}
