package queries

import (
	"context"
	"fmt"
	"time"

	"coachly/internal/domain/event"
	"coachly/internal/domain/schedule"
	"coachly/internal/domain/timerange"
	"coachly/internal/domain/user"
	"coachly/internal/infra"
	"coachly/internal/pkg/timezone"

	"github.com/google/uuid"
)

type ScheduleQueries interface {
	FreeBusy(ctx context.Context, calendarID uuid.UUID, from, to time.Time) (*FreeBusyView, error)
	ComposedSchedule(ctx context.Context, coachID uuid.UUID, from, to time.Time, viewer user.Role) ([]SlotView, error)
	CheckSlot(ctx context.Context, coachID uuid.UUID, start, end time.Time, viewer user.Role) (*SlotView, error)
}

type RuleReadStore interface {
	AvailabilityRules(ctx context.Context, calendarID uuid.UUID) ([]schedule.AvailabilityRule, error)
	PriceRules(ctx context.Context, calendarID uuid.UUID) ([]schedule.PriceRule, error)
}

type BookingReadStore interface {
	ListByProviderWithin(ctx context.Context, providerID uuid.UUID, within timerange.Range) ([]schedule.Booking, error)
}

// ScheduleCache fronts the composed schedule, which is the most
// expensive read in the system. A miss is never an error.
type ScheduleCache interface {
	GetSlots(ctx context.Context, key string) ([]SlotView, bool)
	SetSlots(ctx context.Context, key string, slots []SlotView)
	InvalidateProvider(ctx context.Context, providerID uuid.UUID)
}

type scheduleQueriesImpl struct {
	events    EventReadStore
	calendars CalendarReadStore
	rules     RuleReadStore
	bookings  BookingReadStore
	cache     ScheduleCache
}

func NewScheduleQueries(
	events EventReadStore,
	calendars CalendarReadStore,
	rules RuleReadStore,
	bookings BookingReadStore,
	cache ScheduleCache,
) ScheduleQueries {
	return &scheduleQueriesImpl{
		events:    events,
		calendars: calendars,
		rules:     rules,
		bookings:  bookings,
		cache:     cache,
	}
}

func (q *scheduleQueriesImpl) FreeBusy(ctx context.Context, calendarID uuid.UUID, from, to time.Time) (*FreeBusyView, error) {
	window, err := timerange.New(from, to)
	if err != nil {
		return nil, ErrInvalidWindow
	}

	concrete, err := q.concreteEvents(ctx, calendarID, window)
	if err != nil {
		return nil, err
	}

	var busy []timerange.Range
	for _, e := range concrete {
		if !e.OccupiesFreeBusy() {
			continue
		}
		if clipped, ok := window.Intersect(e.Range); ok {
			busy = append(busy, clipped)
		}
	}

	view := &FreeBusyView{CalendarID: calendarID}
	for _, r := range timerange.Normalize(busy) {
		view.Busy = append(view.Busy, RangeView{Start: r.Start(), End: r.End()})
	}
	for _, r := range schedule.FreeSlots(window, concrete) {
		view.Free = append(view.Free, RangeView{Start: r.Start(), End: r.End()})
	}
	return view, nil
}

func (q *scheduleQueriesImpl) ComposedSchedule(ctx context.Context, coachID uuid.UUID, from, to time.Time, viewer user.Role) ([]SlotView, error) {
	window, err := timerange.New(from, to)
	if err != nil {
		return nil, ErrInvalidWindow
	}

	cacheKey := scheduleCacheKey(coachID, window, viewer)
	if cached, ok := q.cache.GetSlots(ctx, cacheKey); ok {
		return cached, nil
	}

	calendar, err := q.calendars.FindByOwner(ctx, coachID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrCalendarNotFound
		}
		return nil, err
	}
	loc := timezone.Location(calendar.Timezone)

	concrete, err := q.concreteEvents(ctx, calendar.ID, window)
	if err != nil {
		return nil, err
	}
	var busy []timerange.Range
	for _, e := range concrete {
		if !e.OccupiesFreeBusy() {
			continue
		}
		if clipped, ok := window.Intersect(e.Range); ok {
			busy = append(busy, clipped)
		}
	}

	availabilityRules, err := q.rules.AvailabilityRules(ctx, calendar.ID)
	if err != nil {
		return nil, err
	}
	priceRules, err := q.rules.PriceRules(ctx, calendar.ID)
	if err != nil {
		return nil, err
	}
	bookings, err := q.bookings.ListByProviderWithin(ctx, coachID, window)
	if err != nil {
		return nil, err
	}

	slots := schedule.BuildSlots(schedule.ComposeInput{
		WorkingRanges: workingRanges(availabilityRules, window, loc),
		BusyRanges:    busy,
		PriceRules:    priceRules,
		Bookings:      bookings,
		Viewer:        viewer,
		Location:      loc,
	})

	views := make([]SlotView, 0, len(slots))
	for _, s := range slots {
		views = append(views, toSlotView(s))
	}
	q.cache.SetSlots(ctx, cacheKey, views)
	return views, nil
}

func (q *scheduleQueriesImpl) CheckSlot(ctx context.Context, coachID uuid.UUID, start, end time.Time, viewer user.Role) (*SlotView, error) {
	candidate, err := timerange.New(start, end)
	if err != nil {
		return nil, ErrInvalidWindow
	}

	calendar, err := q.calendars.FindByOwner(ctx, coachID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrCalendarNotFound
		}
		return nil, err
	}
	loc := timezone.Location(calendar.Timezone)

	availabilityRules, err := q.rules.AvailabilityRules(ctx, calendar.ID)
	if err != nil {
		return nil, err
	}
	priceRules, err := q.rules.PriceRules(ctx, calendar.ID)
	if err != nil {
		return nil, err
	}
	bookings, err := q.bookings.ListByProviderWithin(ctx, coachID, candidate)
	if err != nil {
		return nil, err
	}

	slot := schedule.QuerySlot(candidate, viewer, availabilityRules, priceRules, bookings, loc)

	// A calendar event without a booking still makes the slot
	// unavailable, it just carries no booking detail. Transparent
	// events do not block.
	if slot.Availability == schedule.SlotAvailable {
		concrete, eventsErr := q.concreteEvents(ctx, calendar.ID, candidate)
		if eventsErr != nil {
			return nil, eventsErr
		}
		blocking := concrete[:0]
		for _, e := range concrete {
			if e.BlocksTime() {
				blocking = append(blocking, e)
			}
		}
		if schedule.HasConflict(candidate, blocking) {
			slot.Availability = schedule.SlotUnavailable
		}
	}

	view := toSlotView(slot)
	return &view, nil
}

// concreteEvents fetches the calendar's events around the window and
// replaces recurring parents with their materialized instances, so the
// result only contains events with concrete ranges.
//
// Expansion runs against the padded window, not the query window:
// expansion keeps only instances fully inside its window, so an
// instance that covers or straddles a narrow window (a slot-check
// candidate especially) would otherwise never materialize. The overlap
// filter below restores the query window's bounds.
func (q *scheduleQueriesImpl) concreteEvents(ctx context.Context, calendarID uuid.UUID, window timerange.Range) ([]*event.Event, error) {
	fetchWindow := padWindow(window)
	events, err := q.events.ListByCalendarWithin(ctx, calendarID, fetchWindow)
	if err != nil {
		return nil, err
	}

	var concrete []*event.Event
	for _, e := range events {
		if e.Type == event.TypeRecurring {
			instances, expandErr := event.Expand(e, event.ExpandOptions{Window: fetchWindow})
			if expandErr != nil {
				return nil, expandErr
			}
			for _, instance := range instances {
				if window.Overlaps(instance.Range) {
					concrete = append(concrete, instance)
				}
			}
			continue
		}
		if window.Overlaps(e.Range) {
			concrete = append(concrete, e)
		}
	}
	return concrete, nil
}

// workingRanges projects the working rules onto concrete ranges inside
// the window and carves the blackout rules out of them.
func workingRanges(rules []schedule.AvailabilityRule, window timerange.Range, loc *time.Location) []timerange.Range {
	working := projectRules(rules, schedule.RuleWorking, window, loc)
	blackout := projectRules(rules, schedule.RuleBlackout, window, loc)
	if len(blackout) == 0 {
		return working
	}

	var out []timerange.Range
	for _, w := range working {
		out = append(out, timerange.Subtract(w, blackout)...)
	}
	return timerange.Normalize(out)
}

func projectRules(rules []schedule.AvailabilityRule, kind schedule.RuleKind, window timerange.Range, loc *time.Location) []timerange.Range {
	var out []timerange.Range

	startDay := window.Start().In(loc)
	startDay = time.Date(startDay.Year(), startDay.Month(), startDay.Day(), 0, 0, 0, 0, loc)
	endDay := window.End().In(loc)

	for day := startDay; day.Before(endDay); day = day.AddDate(0, 0, 1) {
		for _, rule := range rules {
			if rule.Kind != kind || !ruleCoversDay(rule, day) {
				continue
			}

			fromMin, toMin := 0, 24*60
			if rule.TimeOfDayStart != nil {
				fromMin = *rule.TimeOfDayStart
			}
			if rule.TimeOfDayEnd != nil {
				toMin = *rule.TimeOfDayEnd
			}
			if fromMin >= toMin {
				continue
			}

			segment, err := timerange.New(
				day.Add(time.Duration(fromMin)*time.Minute),
				day.Add(time.Duration(toMin)*time.Minute),
			)
			if err != nil {
				continue
			}
			if clipped, ok := window.Intersect(segment); ok {
				out = append(out, clipped)
			}
		}
	}
	return timerange.Normalize(out)
}

func ruleCoversDay(rule schedule.AvailabilityRule, day time.Time) bool {
	if len(rule.DaysOfWeek) > 0 && !rule.DaysOfWeek[day.Weekday()] {
		return false
	}
	if rule.DateStart != nil {
		from := rule.DateStart.In(day.Location())
		if day.Before(time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, day.Location())) {
			return false
		}
	}
	if rule.DateEnd != nil {
		to := rule.DateEnd.In(day.Location())
		if day.After(time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, day.Location())) {
			return false
		}
	}
	return true
}

func scheduleCacheKey(coachID uuid.UUID, window timerange.Range, viewer user.Role) string {
	detail := "redacted"
	if viewer.SeesBookingDetail() {
		detail = "detailed"
	}
	return fmt.Sprintf("schedule:%s:%d:%d:%s", coachID, window.Start().Unix(), window.End().Unix(), detail)
}

func toSlotView(s schedule.SlotView) SlotView {
	return SlotView{
		Start:         s.Range.Start(),
		End:           s.Range.End(),
		Availability:  s.Availability.String(),
		PriceCents:    s.PriceCents,
		BookingID:     s.BookingID,
		BookedByID:    s.BookedByID,
		BookedByName:  s.BookedByName,
		LocationTitle: s.LocationTitle,
	}
}
