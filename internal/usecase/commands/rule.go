package commands

import (
	"context"
	"log/slog"
	"time"

	"coachly/internal/domain/schedule"
	reqdto "coachly/internal/handler/dto/request"
	"coachly/internal/infra"
	"coachly/internal/pkg/errs"
	"coachly/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrInvalidRule = errs.New("invalid rule")

type RuleCommands interface {
	ReplaceRules(ctx context.Context, coachID uuid.UUID, req reqdto.ReplaceRulesRequest) error
}

type ruleCommandsImpl struct {
	ruleRepo      RuleRepository
	calendarRepo  CalendarRepository
	scheduleCache queries.ScheduleCache
	db            *pgxpool.Pool
}

func NewRuleCommands(
	ruleRepo RuleRepository,
	calendarRepo CalendarRepository,
	scheduleCache queries.ScheduleCache,
	db *pgxpool.Pool,
) RuleCommands {
	return &ruleCommandsImpl{
		ruleRepo:      ruleRepo,
		calendarRepo:  calendarRepo,
		scheduleCache: scheduleCache,
		db:            db,
	}
}

// ReplaceRules swaps the coach's full rule set in one transaction so a
// reader never observes a half-applied rule set.
func (r *ruleCommandsImpl) ReplaceRules(ctx context.Context, coachID uuid.UUID, req reqdto.ReplaceRulesRequest) error {
	calendarID, err := r.calendarRepo.FindIDByOwner(ctx, r.db, coachID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrCalendarNotFound
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	availability := make([]schedule.AvailabilityRule, 0, len(req.AvailabilityRules))
	for _, rule := range req.AvailabilityRules {
		converted, convErr := toAvailabilityRule(rule)
		if convErr != nil {
			return convErr
		}
		availability = append(availability, converted)
	}
	prices := make([]schedule.PriceRule, 0, len(req.PriceRules))
	for _, rule := range req.PriceRules {
		converted, convErr := toPriceRule(rule)
		if convErr != nil {
			return convErr
		}
		prices = append(prices, converted)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	defer func() {
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil && rollbackErr.Error() != "tx is closed" {
			slog.Warn("failed to rollback transaction", "error", rollbackErr)
		}
	}()

	if err := r.ruleRepo.ReplaceAvailabilityRules(ctx, tx, calendarID, availability); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if err := r.ruleRepo.ReplacePriceRules(ctx, tx, calendarID, prices); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if commitErr := tx.Commit(ctx); commitErr != nil {
		return errs.Mark(commitErr, ErrDatabaseOperationFailed)
	}

	r.scheduleCache.InvalidateProvider(ctx, coachID)
	return nil
}

func toAvailabilityRule(req reqdto.AvailabilityRuleRequest) (schedule.AvailabilityRule, error) {
	kind := schedule.RuleKind(req.Kind)
	if !kind.IsValid() {
		return schedule.AvailabilityRule{}, ErrInvalidRule
	}
	if err := validateTimeOfDay(req.TimeOfDayStart, req.TimeOfDayEnd); err != nil {
		return schedule.AvailabilityRule{}, err
	}
	return schedule.AvailabilityRule{
		Kind:           kind,
		DaysOfWeek:     toWeekdaySet(req.DaysOfWeek),
		TimeOfDayStart: req.TimeOfDayStart,
		TimeOfDayEnd:   req.TimeOfDayEnd,
		DateStart:      req.DateStart,
		DateEnd:        req.DateEnd,
	}, nil
}

func toPriceRule(req reqdto.PriceRuleRequest) (schedule.PriceRule, error) {
	if err := validateTimeOfDay(req.TimeOfDayStart, req.TimeOfDayEnd); err != nil {
		return schedule.PriceRule{}, err
	}
	return schedule.PriceRule{
		DaysOfWeek:     toWeekdaySet(req.DaysOfWeek),
		TimeOfDayStart: req.TimeOfDayStart,
		TimeOfDayEnd:   req.TimeOfDayEnd,
		DateStart:      req.DateStart,
		DateEnd:        req.DateEnd,
		PriceCents:     req.PriceCents,
	}, nil
}

func validateTimeOfDay(start, end *int) error {
	if start != nil && end != nil && *start >= *end {
		return ErrInvalidRule
	}
	return nil
}

func toWeekdaySet(days []int) map[time.Weekday]bool {
	if len(days) == 0 {
		return nil
	}
	set := make(map[time.Weekday]bool, len(days))
	for _, d := range days {
		set[time.Weekday(d)] = true
	}
	return set
}
