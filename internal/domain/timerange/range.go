// Package timerange implements the half-open interval algebra the
// scheduling engine is built on. All operations treat a Range as
// [Start, End): two ranges that merely touch do not overlap.
package timerange

import (
	"errors"
	"sort"
	"time"
)

var (
	ErrInvalidRange   = errors.New("range start must be before end")
	ErrDisjointRanges = errors.New("ranges neither overlap nor touch")
)

// Range is an immutable half-open time interval [Start, End).
type Range struct {
	start time.Time
	end   time.Time
}

// New validates start < end. Invalid ranges are rejected here, never
// silently fixed.
func New(start, end time.Time) (Range, error) {
	if !start.Before(end) {
		return Range{}, ErrInvalidRange
	}
	return Range{start: start, end: end}, nil
}

// MustNew is for literals in tests and static rule tables.
func MustNew(start, end time.Time) Range {
	r, err := New(start, end)
	if err != nil {
		panic(err)
	}
	return r
}

func (r Range) Start() time.Time        { return r.start }
func (r Range) End() time.Time          { return r.end }
func (r Range) Duration() time.Duration { return r.end.Sub(r.start) }
func (r Range) IsZero() bool            { return r.start.IsZero() && r.end.IsZero() }

// Overlaps reports whether r and o share any instant. Half-open
// semantics: [10:00,11:00) and [11:00,12:00) do not overlap.
func (r Range) Overlaps(o Range) bool {
	return r.start.Before(o.end) && r.end.After(o.start)
}

// ContainsInstant reports start <= t < end.
func (r Range) ContainsInstant(t time.Time) bool {
	return !t.Before(r.start) && t.Before(r.end)
}

// Contains reports whether r fully encloses o.
func (r Range) Contains(o Range) bool {
	return !o.start.Before(r.start) && !o.end.After(r.end)
}

// Touches reports whether r and o share exactly one boundary instant.
func (r Range) Touches(o Range) bool {
	return r.end.Equal(o.start) || o.end.Equal(r.start)
}

// Intersect returns the overlapping sub-range. ok is false when the
// ranges are disjoint or merely touch.
func (r Range) Intersect(o Range) (Range, bool) {
	start := r.start
	if o.start.After(start) {
		start = o.start
	}
	end := r.end
	if o.end.Before(end) {
		end = o.end
	}
	if !start.Before(end) {
		return Range{}, false
	}
	return Range{start: start, end: end}, true
}

// Merge returns the envelope of two ranges that overlap or touch.
func Merge(a, b Range) (Range, error) {
	if !a.Overlaps(b) && !a.Touches(b) {
		return Range{}, ErrDisjointRanges
	}
	start := a.start
	if b.start.Before(start) {
		start = b.start
	}
	end := a.end
	if b.end.After(end) {
		end = b.end
	}
	return Range{start: start, end: end}, nil
}

// Normalize sorts by start and folds overlapping or touching ranges
// into their envelopes. The result is ascending and mutually disjoint.
// Idempotent: Normalize(Normalize(rs)) == Normalize(rs).
func Normalize(rs []Range) []Range {
	if len(rs) == 0 {
		return nil
	}

	sorted := make([]Range, len(rs))
	copy(sorted, rs)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].start.Before(sorted[j].start)
	})

	out := make([]Range, 0, len(sorted))
	current := sorted[0]
	for _, next := range sorted[1:] {
		merged, err := Merge(current, next)
		if err == nil {
			current = merged
			continue
		}
		out = append(out, current)
		current = next
	}
	return append(out, current)
}

// Subtract removes every subtractor from base and returns the ordered
// gaps that remain. Subtractors may be unsorted and may extend past
// base; only their intersections with base matter.
func Subtract(base Range, subtractors []Range) []Range {
	clipped := make([]Range, 0, len(subtractors))
	for _, s := range subtractors {
		if hit, ok := base.Intersect(s); ok {
			clipped = append(clipped, hit)
		}
	}
	if len(clipped) == 0 {
		return []Range{base}
	}

	var gaps []Range
	cursor := base.start
	for _, busy := range Normalize(clipped) {
		if cursor.Before(busy.start) {
			gaps = append(gaps, Range{start: cursor, end: busy.start})
		}
		if busy.end.After(cursor) {
			cursor = busy.end
		}
	}
	if cursor.Before(base.end) {
		gaps = append(gaps, Range{start: cursor, end: base.end})
	}
	return gaps
}

// SplitAt cuts base at every boundary instant that falls strictly
// inside it and returns the consecutive pieces, ascending. Duplicate
// and out-of-range boundaries are ignored.
func SplitAt(base Range, boundaries []time.Time) []Range {
	cuts := make([]time.Time, 0, len(boundaries)+2)
	cuts = append(cuts, base.start, base.end)
	for _, b := range boundaries {
		if b.After(base.start) && b.Before(base.end) {
			cuts = append(cuts, b)
		}
	}

	sort.Slice(cuts, func(i, j int) bool { return cuts[i].Before(cuts[j]) })

	out := make([]Range, 0, len(cuts)-1)
	for i := 1; i < len(cuts); i++ {
		if cuts[i].Equal(cuts[i-1]) {
			continue
		}
		out = append(out, Range{start: cuts[i-1], end: cuts[i]})
	}
	return out
}
