// Package schedule holds the pure scheduling algorithms: availability
// and price rule evaluation, conflict detection, free/busy calculation
// and slot composition. Everything here operates on immutable input
// snapshots fetched by the caller; nothing does I/O.
package schedule

import (
	"time"

	"coachly/internal/domain/timerange"
)

type RuleKind string

const (
	RuleWorking  RuleKind = "working"
	RuleBlackout RuleKind = "blackout"
)

func (k RuleKind) IsValid() bool {
	return k == RuleWorking || k == RuleBlackout
}

// AvailabilityRule is a calendar-independent recurring predicate: it
// constrains day-of-week, local time-of-day and a date interval. Nil
// fields are unconstrained and match vacuously.
type AvailabilityRule struct {
	Kind       RuleKind
	DaysOfWeek map[time.Weekday]bool
	// Minutes from local midnight.
	TimeOfDayStart *int
	TimeOfDayEnd   *int
	DateStart      *time.Time
	DateEnd        *time.Time
}

// Matches evaluates the rule against a concrete range in the
// provider's zone. All set constraints must hold:
// the start date within [DateStart, DateEnd], the start weekday in
// DaysOfWeek, local start >= TimeOfDayStart, local end <= TimeOfDayEnd.
func (a AvailabilityRule) Matches(r timerange.Range, loc *time.Location) bool {
	start := r.Start().In(loc)
	startDate := dateOf(start)

	if a.DateStart != nil && startDate.Before(dateOf(a.DateStart.In(loc))) {
		return false
	}
	if a.DateEnd != nil && startDate.After(dateOf(a.DateEnd.In(loc))) {
		return false
	}
	if len(a.DaysOfWeek) > 0 && !a.DaysOfWeek[start.Weekday()] {
		return false
	}
	if a.TimeOfDayStart != nil && minutesIntoDay(start, start) < *a.TimeOfDayStart {
		return false
	}
	// End minutes are measured from the start's midnight so a range
	// ending at midnight counts as minute 1440, not 0.
	if a.TimeOfDayEnd != nil && minutesIntoDay(start, r.End().In(loc)) > *a.TimeOfDayEnd {
		return false
	}
	return true
}

// IsBookable reports whether some working rule admits the range and no
// blackout rule vetoes it.
func IsBookable(rules []AvailabilityRule, r timerange.Range, loc *time.Location) bool {
	bookable := false
	for _, rule := range rules {
		if !rule.Matches(r, loc) {
			continue
		}
		switch rule.Kind {
		case RuleBlackout:
			return false
		case RuleWorking:
			bookable = true
		}
	}
	return bookable
}

// PriceRule shares the availability predicate shape plus a price.
type PriceRule struct {
	DaysOfWeek     map[time.Weekday]bool
	TimeOfDayStart *int
	TimeOfDayEnd   *int
	DateStart      *time.Time
	DateEnd        *time.Time
	PriceCents     int64
}

func (p PriceRule) Matches(r timerange.Range, loc *time.Location) bool {
	rule := AvailabilityRule{
		DaysOfWeek:     p.DaysOfWeek,
		TimeOfDayStart: p.TimeOfDayStart,
		TimeOfDayEnd:   p.TimeOfDayEnd,
		DateStart:      p.DateStart,
		DateEnd:        p.DateEnd,
	}
	return rule.Matches(r, loc)
}

// ResolvePrice returns the price of the first matching rule in the
// given evaluation order. No match means the price is unspecified,
// which callers must never conflate with zero.
func ResolvePrice(rules []PriceRule, r timerange.Range, loc *time.Location) *int64 {
	for _, rule := range rules {
		if rule.Matches(r, loc) {
			price := rule.PriceCents
			return &price
		}
	}
	return nil
}

// PriceBoundaries collects the instants inside the range where some
// price rule switches on or off: its time-of-day edges on every day
// the range spans, and local midnights when any rule is day- or
// date-constrained.
func PriceBoundaries(rules []PriceRule, within timerange.Range, loc *time.Location) []time.Time {
	var out []time.Time

	dayDependent := false
	for _, rule := range rules {
		if len(rule.DaysOfWeek) > 0 || rule.DateStart != nil || rule.DateEnd != nil {
			dayDependent = true
			break
		}
	}

	for day := dateOf(within.Start().In(loc)); !day.After(dateOf(within.End().In(loc))); day = day.AddDate(0, 0, 1) {
		if dayDependent {
			out = append(out, day)
		}
		for _, rule := range rules {
			if rule.TimeOfDayStart != nil {
				out = append(out, day.Add(time.Duration(*rule.TimeOfDayStart)*time.Minute))
			}
			if rule.TimeOfDayEnd != nil {
				out = append(out, day.Add(time.Duration(*rule.TimeOfDayEnd)*time.Minute))
			}
		}
	}
	return out
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func minutesIntoDay(anchor, t time.Time) int {
	return int(t.Sub(dateOf(anchor)) / time.Minute)
}
