package event

import (
	"errors"
	"strings"
	"time"

	"coachly/internal/domain/timerange"
	"coachly/internal/pkg/timezone"
)

// DefaultMaxInstances bounds expansion when a rule carries neither
// COUNT nor UNTIL. Long query windows are silently truncated at this
// cap; callers that need more pass ExpandOptions.MaxInstances.
const DefaultMaxInstances = 100

const instanceIDLayout = "20060102T150405"

var ErrNotRecurring = errors.New("event is not recurring")

// ExpandOptions controls recurrence expansion.
type ExpandOptions struct {
	// Window is the query window instances must fall into: instance
	// start >= Window.Start and instance end <= Window.End.
	Window timerange.Range

	// MaxInstances overrides DefaultMaxInstances when positive. A rule
	// COUNT still wins when set.
	MaxInstances int
}

// Expand materializes the concrete instances of a recurring event
// inside the window. Each instance is a single-type event inheriting
// the parent's descriptive fields, with a derived id and a
// back-reference to the parent.
func Expand(parent *Event, opts ExpandOptions) ([]*Event, error) {
	if parent.Type != TypeRecurring {
		return nil, ErrNotRecurring
	}
	rule, err := ParseRule(parent.RecurrenceRule)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(parent.Timezone)
	curStart := parent.Range.Start().In(loc)
	curEnd := parent.Range.End().In(loc)

	bound := opts.Window.End()
	if rule.HasUntil() {
		until := time.Date(
			rule.Until.Year(), rule.Until.Month(), rule.Until.Day(),
			rule.Until.Hour(), rule.Until.Minute(), rule.Until.Second(), 0, loc,
		)
		if until.Before(bound) {
			bound = until
		}
	}

	limit := DefaultMaxInstances
	if opts.MaxInstances > 0 {
		limit = opts.MaxInstances
	}
	if rule.Count > 0 {
		limit = rule.Count
	}

	var out []*Event
	for occurrence := 0; occurrence < limit; {
		if curStart.After(bound) {
			break
		}
		if monthMatches(rule, curStart) {
			occurrence++
			if instanceInWindow(curStart, curEnd, opts.Window) {
				r, rerr := timerange.New(curStart, curEnd)
				if rerr != nil {
					return nil, rerr
				}
				out = append(out, materialize(parent, r))
			}
		}
		curStart, curEnd = step(rule, curStart, curEnd)
	}
	return out, nil
}

// ParseInstanceID splits a derived instance id into the parent id and
// the instance start wall time. The returned time carries no zone; it
// must be interpreted in the parent's zone.
func ParseInstanceID(id string) (parentID string, start time.Time, ok bool) {
	parentID, stamp, found := strings.Cut(id, "_")
	if !found || parentID == "" {
		return "", time.Time{}, false
	}
	start, err := time.Parse(instanceIDLayout, stamp)
	if err != nil {
		return "", time.Time{}, false
	}
	return parentID, start, true
}

func instanceInWindow(start, end time.Time, window timerange.Range) bool {
	return !start.Before(window.Start()) && !end.After(window.End())
}

// BYMONTH acts as a materialization filter; it does not consume the
// occurrence count.
func monthMatches(rule Rule, start time.Time) bool {
	return rule.ByMonth == 0 || start.Month() == rule.ByMonth
}

func materialize(parent *Event, r timerange.Range) *Event {
	return &Event{
		ID:          parent.ID + "_" + r.Start().Format(instanceIDLayout),
		CalendarID:  parent.CalendarID,
		Title:       parent.Title,
		Description: parent.Description,
		Range:       r,
		Timezone:    parent.Timezone,
		Type:        TypeSingle,
		Status:      parent.Status,
		FreeBusy:    parent.FreeBusy,
		Visibility:  parent.Visibility,
		IsException: false,
		ParentID:    parent.ID,
		Location:    parent.Location,
		Reminders:   parent.Reminders,
	}
}

func step(rule Rule, start, end time.Time) (time.Time, time.Time) {
	switch rule.Freq {
	case FreqMinute:
		d := time.Duration(rule.Interval) * time.Minute
		return start.Add(d), end.Add(d)
	case FreqHour:
		d := time.Duration(rule.Interval) * time.Hour
		return start.Add(d), end.Add(d)
	case FreqDaily:
		return start.AddDate(0, 0, rule.Interval), end.AddDate(0, 0, rule.Interval)
	case FreqWeekly:
		if len(rule.ByDay) > 0 {
			return stepToNextWeekday(rule.ByDay, start, end)
		}
		return start.AddDate(0, 0, 7*rule.Interval), end.AddDate(0, 0, 7*rule.Interval)
	case FreqMonthly:
		return stepMonths(rule, start, end)
	case FreqYearly:
		return start.AddDate(rule.Interval, 0, 0), end.AddDate(rule.Interval, 0, 0)
	default:
		// Unreachable: ParseRule rejects unknown frequencies.
		return start.AddDate(0, 0, 1), end.AddDate(0, 0, 1)
	}
}

// Weekday-constrained weekly rules advance one day at a time until the
// next day in the set; INTERVAL only applies to unconstrained rules.
func stepToNextWeekday(days map[time.Weekday]bool, start, end time.Time) (time.Time, time.Time) {
	for {
		start = start.AddDate(0, 0, 1)
		end = end.AddDate(0, 0, 1)
		if days[start.Weekday()] {
			return start, end
		}
	}
}

// Monthly stepping clamps the target day to the destination month's
// length, so day 31 lands on day 30 of a 30-day month.
func stepMonths(rule Rule, start, end time.Time) (time.Time, time.Time) {
	day := start.Day()
	if rule.ByMonthDay > 0 {
		day = rule.ByMonthDay
	}
	duration := end.Sub(start)

	anchor := time.Date(start.Year(), start.Month(), 1,
		start.Hour(), start.Minute(), start.Second(), start.Nanosecond(), start.Location())
	next := anchor.AddDate(0, rule.Interval, 0)

	if last := daysInMonth(next.Year(), next.Month()); day > last {
		day = last
	}
	nextStart := time.Date(next.Year(), next.Month(), day,
		start.Hour(), start.Minute(), start.Second(), start.Nanosecond(), start.Location())
	return nextStart, nextStart.Add(duration)
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
