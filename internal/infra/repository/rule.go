package repository

import (
	"context"
	"sort"
	"time"

	"coachly/internal/domain/schedule"
	"coachly/internal/infra"
	"coachly/internal/infra/db"
	"coachly/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RuleRepository struct {
	db *pgxpool.Pool
}

func NewRuleRepository(db *pgxpool.Pool) *RuleRepository {
	return &RuleRepository{db: db}
}

// ReplaceAvailabilityRules swaps the calendar's availability rule set.
// Position preserves the submitted order, which is also the price
// evaluation order on the price side.
func (r *RuleRepository) ReplaceAvailabilityRules(ctx context.Context, tx db.DBTX, calendarID uuid.UUID, rules []schedule.AvailabilityRule) error {
	if _, err := tx.Exec(ctx, `DELETE FROM availability_rules WHERE calendar_id = $1`, calendarID); err != nil {
		return infra.WrapRepoErr("failed to clear availability rules", err)
	}

	const query = `
		INSERT INTO availability_rules (
			calendar_id, kind, days_of_week, time_of_day_start, time_of_day_end,
			date_start, date_end, position
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	for i, rule := range rules {
		_, err := tx.Exec(ctx, query,
			calendarID, string(rule.Kind), weekdaysToArray(rule.DaysOfWeek),
			pgconv.IntPtrToPgtype(rule.TimeOfDayStart), pgconv.IntPtrToPgtype(rule.TimeOfDayEnd),
			pgconv.TimePtrToPgtype(rule.DateStart), pgconv.TimePtrToPgtype(rule.DateEnd), i,
		)
		if err != nil {
			return infra.WrapRepoErr("failed to insert availability rule", err)
		}
	}
	return nil
}

func (r *RuleRepository) ReplacePriceRules(ctx context.Context, tx db.DBTX, calendarID uuid.UUID, rules []schedule.PriceRule) error {
	if _, err := tx.Exec(ctx, `DELETE FROM price_rules WHERE calendar_id = $1`, calendarID); err != nil {
		return infra.WrapRepoErr("failed to clear price rules", err)
	}

	const query = `
		INSERT INTO price_rules (
			calendar_id, days_of_week, time_of_day_start, time_of_day_end,
			date_start, date_end, price_cents, position
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	for i, rule := range rules {
		_, err := tx.Exec(ctx, query,
			calendarID, weekdaysToArray(rule.DaysOfWeek),
			pgconv.IntPtrToPgtype(rule.TimeOfDayStart), pgconv.IntPtrToPgtype(rule.TimeOfDayEnd),
			pgconv.TimePtrToPgtype(rule.DateStart), pgconv.TimePtrToPgtype(rule.DateEnd),
			rule.PriceCents, i,
		)
		if err != nil {
			return infra.WrapRepoErr("failed to insert price rule", err)
		}
	}
	return nil
}

func (r *RuleRepository) PriceRules(ctx context.Context, tx db.DBTX, calendarID uuid.UUID) ([]schedule.PriceRule, error) {
	return listPriceRules(ctx, tx, calendarID)
}

// RuleReadStore serves rule snapshots to the query side.
type RuleReadStore struct {
	db *pgxpool.Pool
}

func NewRuleReadStore(db *pgxpool.Pool) *RuleReadStore {
	return &RuleReadStore{db: db}
}

func (s *RuleReadStore) AvailabilityRules(ctx context.Context, calendarID uuid.UUID) ([]schedule.AvailabilityRule, error) {
	const query = `
		SELECT kind, days_of_week, time_of_day_start, time_of_day_end, date_start, date_end
		FROM availability_rules
		WHERE calendar_id = $1
		ORDER BY position`

	rows, err := s.db.Query(ctx, query, calendarID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list availability rules", err)
	}
	defer rows.Close()

	var rules []schedule.AvailabilityRule
	for rows.Next() {
		var (
			kind      string
			days      []int16
			todStart  pgtype.Int4
			todEnd    pgtype.Int4
			dateStart pgtype.Timestamptz
			dateEnd   pgtype.Timestamptz
		)
		if err := rows.Scan(&kind, &days, &todStart, &todEnd, &dateStart, &dateEnd); err != nil {
			return nil, infra.WrapRepoErr("failed to scan availability rule row", err)
		}
		rules = append(rules, schedule.AvailabilityRule{
			Kind:           schedule.RuleKind(kind),
			DaysOfWeek:     weekdaysFromArray(days),
			TimeOfDayStart: pgconv.IntPtrFromPgtype(todStart),
			TimeOfDayEnd:   pgconv.IntPtrFromPgtype(todEnd),
			DateStart:      pgconv.TimePtrFromPgtype(dateStart),
			DateEnd:        pgconv.TimePtrFromPgtype(dateEnd),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate availability rule rows", err)
	}
	return rules, nil
}

func (s *RuleReadStore) PriceRules(ctx context.Context, calendarID uuid.UUID) ([]schedule.PriceRule, error) {
	return listPriceRules(ctx, s.db, calendarID)
}

func listPriceRules(ctx context.Context, tx db.DBTX, calendarID uuid.UUID) ([]schedule.PriceRule, error) {
	const query = `
		SELECT days_of_week, time_of_day_start, time_of_day_end, date_start, date_end, price_cents
		FROM price_rules
		WHERE calendar_id = $1
		ORDER BY position`

	rows, err := tx.Query(ctx, query, calendarID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list price rules", err)
	}
	defer rows.Close()

	var rules []schedule.PriceRule
	for rows.Next() {
		var (
			days       []int16
			todStart   pgtype.Int4
			todEnd     pgtype.Int4
			dateStart  pgtype.Timestamptz
			dateEnd    pgtype.Timestamptz
			priceCents int64
		)
		if err := rows.Scan(&days, &todStart, &todEnd, &dateStart, &dateEnd, &priceCents); err != nil {
			return nil, infra.WrapRepoErr("failed to scan price rule row", err)
		}
		rules = append(rules, schedule.PriceRule{
			DaysOfWeek:     weekdaysFromArray(days),
			TimeOfDayStart: pgconv.IntPtrFromPgtype(todStart),
			TimeOfDayEnd:   pgconv.IntPtrFromPgtype(todEnd),
			DateStart:      pgconv.TimePtrFromPgtype(dateStart),
			DateEnd:        pgconv.TimePtrFromPgtype(dateEnd),
			PriceCents:     priceCents,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate price rule rows", err)
	}
	return rules, nil
}

func weekdaysToArray(days map[time.Weekday]bool) []int16 {
	out := make([]int16, 0, len(days))
	for day, set := range days {
		if set {
			out = append(out, int16(day))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func weekdaysFromArray(days []int16) map[time.Weekday]bool {
	if len(days) == 0 {
		return nil
	}
	set := make(map[time.Weekday]bool, len(days))
	for _, d := range days {
		set[time.Weekday(d)] = true
	}
	return set
}
