package schedule

import (
	"time"

	"coachly/internal/domain/event"
	"coachly/internal/domain/timerange"
)

// ConflictFetchPadding widens the event fetch window on each side of a
// conflict candidate. A pragmatic bound, not a correctness requirement:
// events are assumed not to extend past this horizon.
const ConflictFetchPadding = 7 * 24 * time.Hour

// HasConflict tests the candidate against every non-cancelled event
// with half-open overlap semantics.
func HasConflict(candidate timerange.Range, events []*event.Event) bool {
	return len(ConflictingEvents(candidate, events, "")) > 0
}

// ConflictingEvents returns the events overlapping the candidate,
// skipping cancelled events and, when excludeID is non-empty, the
// event being updated so it cannot conflict with itself.
func ConflictingEvents(candidate timerange.Range, events []*event.Event, excludeID string) []*event.Event {
	var out []*event.Event
	for _, e := range events {
		if e.Status == event.StatusCancelled {
			continue
		}
		if excludeID != "" && e.ID == excludeID {
			continue
		}
		if candidate.Overlaps(e.Range) {
			out = append(out, e)
		}
	}
	return out
}

// FreeSlots computes the ordered free gaps inside the query range
// given the calendar's busy events. Events are clipped to the window,
// zero-duration clippings dropped, and the remainder normalized before
// the gap walk.
func FreeSlots(query timerange.Range, busyEvents []*event.Event) []timerange.Range {
	var busy []timerange.Range
	for _, e := range busyEvents {
		if !e.OccupiesFreeBusy() {
			continue
		}
		if clipped, ok := query.Intersect(e.Range); ok {
			busy = append(busy, clipped)
		}
	}
	if len(busy) == 0 {
		return []timerange.Range{query}
	}

	var free []timerange.Range
	cursor := query.Start()
	for _, b := range timerange.Normalize(busy) {
		if cursor.Before(b.Start()) {
			gap, err := timerange.New(cursor, b.Start())
			if err == nil {
				free = append(free, gap)
			}
		}
		if b.End().After(cursor) {
			cursor = b.End()
		}
	}
	if cursor.Before(query.End()) {
		if gap, err := timerange.New(cursor, query.End()); err == nil {
			free = append(free, gap)
		}
	}
	return free
}
