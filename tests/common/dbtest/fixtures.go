//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// bcrypt hash of "password123", precomputed so fixtures skip the cost
const testPasswordHash = "$2a$12$uhAjVE9f92IGYv3E25pJNetg.27lVt0p7jmLWjqjmhOg92ldPS0A."

func CreateTestUser(t *testing.T, db DBLike, email, role string) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	displayName := strings.Split(email, "@")[0]

	ctx := context.Background()
	tag, err := db.Exec(ctx,
		"INSERT INTO users (id, email, password_hash, role, display_name, timezone, is_active) VALUES ($1, $2, $3, $4, $5, 'UTC', true) ON CONFLICT (email) DO NOTHING",
		userID, email, testPasswordHash, role, displayName)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&userID)
	}

	return userID
}

// CreateTestCoach inserts a coach account together with the calendar
// registration would normally create.
func CreateTestCoach(t *testing.T, db DBLike, email string) (uuid.UUID, uuid.UUID) {
	t.Helper()

	coachID := CreateTestUser(t, db, email, "coach")
	calendarID := CreateTestCalendar(t, db, coachID)
	return coachID, calendarID
}

func CreateTestCalendar(t *testing.T, db DBLike, ownerID uuid.UUID) uuid.UUID {
	t.Helper()

	calendarID := uuid.New()
	ctx := context.Background()

	var existing uuid.UUID
	err := db.QueryRow(ctx, "SELECT id FROM calendars WHERE owner_id = $1 ORDER BY created_at LIMIT 1", ownerID).Scan(&existing)
	if err == nil {
		return existing
	}

	_, err = db.Exec(ctx, "INSERT INTO calendars (id, owner_id, name, timezone) VALUES ($1, $2, 'Primary', 'UTC')",
		calendarID, ownerID)
	require.NoError(t, err)

	return calendarID
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables between subtests
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return nil
}
