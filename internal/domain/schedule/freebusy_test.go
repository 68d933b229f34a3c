//go:build unit

package schedule_test

import (
	"testing"
	"time"

	"coachly/internal/domain/event"
	"coachly/internal/domain/schedule"
	"coachly/internal/domain/timerange"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func busyEvent(t *testing.T, r timerange.Range) *event.Event {
	t.Helper()
	e, err := event.NewSingle(uuid.New(), "Session", r, "UTC")
	require.NoError(t, err)
	return e
}

func hourRange(t *testing.T, fromHour, toHour int) timerange.Range {
	t.Helper()
	day := time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC)
	return timerange.MustNew(day.Add(time.Duration(fromHour)*time.Hour), day.Add(time.Duration(toHour)*time.Hour))
}

func TestHasConflict(t *testing.T) {
	existing := []*event.Event{busyEvent(t, hourRange(t, 10, 11))}

	t.Run("overlap conflicts", func(t *testing.T) {
		assert.True(t, schedule.HasConflict(hourRange(t, 10, 12), existing))
	})

	t.Run("touching ranges never conflict", func(t *testing.T) {
		assert.False(t, schedule.HasConflict(hourRange(t, 11, 12), existing))
		assert.False(t, schedule.HasConflict(hourRange(t, 9, 10), existing))
	})

	t.Run("cancelled events never conflict", func(t *testing.T) {
		cancelled := busyEvent(t, hourRange(t, 10, 11))
		cancelled.Status = event.StatusCancelled
		assert.False(t, schedule.HasConflict(hourRange(t, 10, 12), []*event.Event{cancelled}))
	})

	t.Run("finished events still conflict", func(t *testing.T) {
		finished := busyEvent(t, hourRange(t, 10, 11))
		finished.Status = event.StatusFinished
		assert.True(t, schedule.HasConflict(hourRange(t, 10, 12), []*event.Event{finished}))
	})
}

func TestConflictingEvents(t *testing.T) {
	a := busyEvent(t, hourRange(t, 9, 10))
	b := busyEvent(t, hourRange(t, 10, 12))
	c := busyEvent(t, hourRange(t, 14, 15))
	all := []*event.Event{a, b, c}

	t.Run("returns every overlapping event", func(t *testing.T) {
		got := schedule.ConflictingEvents(hourRange(t, 9, 11), all, "")
		assert.Equal(t, []*event.Event{a, b}, got)
	})

	t.Run("an update excludes the event itself", func(t *testing.T) {
		got := schedule.ConflictingEvents(hourRange(t, 10, 12), all, b.ID)
		assert.Empty(t, got)
	})
}

func TestFreeSlots(t *testing.T) {
	t.Run("gaps between busy events", func(t *testing.T) {
		query := hourRange(t, 9, 18)
		busy := []*event.Event{
			busyEvent(t, hourRange(t, 10, 11)),
			busyEvent(t, hourRange(t, 13, 14)),
		}

		free := schedule.FreeSlots(query, busy)

		want := []timerange.Range{
			hourRange(t, 9, 10),
			hourRange(t, 11, 13),
			hourRange(t, 14, 18),
		}
		assert.Equal(t, want, free)
	})

	t.Run("no busy events means the whole query is free", func(t *testing.T) {
		query := hourRange(t, 9, 18)
		free := schedule.FreeSlots(query, nil)
		assert.Equal(t, []timerange.Range{query}, free)
	})

	t.Run("events outside the window are ignored", func(t *testing.T) {
		query := hourRange(t, 9, 12)
		busy := []*event.Event{busyEvent(t, hourRange(t, 14, 15))}
		assert.Equal(t, []timerange.Range{query}, schedule.FreeSlots(query, busy))
	})

	t.Run("events crossing the window edge are clipped", func(t *testing.T) {
		query := hourRange(t, 9, 18)
		busy := []*event.Event{busyEvent(t, hourRange(t, 8, 10))}

		free := schedule.FreeSlots(query, busy)
		assert.Equal(t, []timerange.Range{hourRange(t, 10, 18)}, free)
	})

	t.Run("transparent and cancelled events do not block", func(t *testing.T) {
		query := hourRange(t, 9, 18)

		transparent := busyEvent(t, hourRange(t, 10, 11))
		transparent.FreeBusy = event.FreeBusyFree
		cancelled := busyEvent(t, hourRange(t, 13, 14))
		cancelled.Status = event.StatusCancelled

		free := schedule.FreeSlots(query, []*event.Event{transparent, cancelled})
		assert.Equal(t, []timerange.Range{query}, free)
	})

	t.Run("finished events release their time", func(t *testing.T) {
		query := hourRange(t, 9, 18)

		finished := busyEvent(t, hourRange(t, 10, 11))
		finished.Status = event.StatusFinished

		free := schedule.FreeSlots(query, []*event.Event{finished})
		assert.Equal(t, []timerange.Range{query}, free)
	})

	t.Run("fully booked window has no free slots", func(t *testing.T) {
		query := hourRange(t, 9, 12)
		busy := []*event.Event{busyEvent(t, hourRange(t, 8, 13))}
		assert.Empty(t, schedule.FreeSlots(query, busy))
	})
}
