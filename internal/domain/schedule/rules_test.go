//go:build unit

package schedule_test

import (
	"testing"
	"time"

	"coachly/internal/domain/schedule"
	"coachly/internal/domain/timerange"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func minutes(n int) *int { return &n }

func dayRange(t *testing.T, day time.Time, fromHour, fromMin, toHour, toMin int) timerange.Range {
	t.Helper()
	return timerange.MustNew(
		time.Date(day.Year(), day.Month(), day.Day(), fromHour, fromMin, 0, 0, day.Location()),
		time.Date(day.Year(), day.Month(), day.Day(), toHour, toMin, 0, 0, day.Location()),
	)
}

func TestAvailabilityRuleMatches(t *testing.T) {
	// 2026-01-12 is a Monday.
	monday := time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC)
	tuesday := monday.AddDate(0, 0, 1)

	weekdayMornings := schedule.AvailabilityRule{
		Kind:           schedule.RuleWorking,
		DaysOfWeek:     map[time.Weekday]bool{time.Monday: true, time.Tuesday: true},
		TimeOfDayStart: minutes(9 * 60),
		TimeOfDayEnd:   minutes(12 * 60),
	}

	cases := []struct {
		name string
		r    timerange.Range
		want bool
	}{
		{"inside the rule", dayRange(t, monday, 9, 0, 10, 0), true},
		{"other listed day", dayRange(t, tuesday, 10, 0, 11, 0), true},
		{"starts too early", dayRange(t, monday, 8, 30, 9, 30), false},
		{"ends too late", dayRange(t, monday, 11, 30, 12, 30), false},
		{"exactly the whole rule window", dayRange(t, monday, 9, 0, 12, 0), true},
		{"unlisted weekday", dayRange(t, monday.AddDate(0, 0, 2), 9, 0, 10, 0), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, weekdayMornings.Matches(tc.r, time.UTC))
		})
	}

	t.Run("date bounds compare by local date", func(t *testing.T) {
		from := time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC)
		to := time.Date(2026, 1, 13, 0, 0, 0, 0, time.UTC)
		bounded := schedule.AvailabilityRule{Kind: schedule.RuleWorking, DateStart: &from, DateEnd: &to}

		assert.True(t, bounded.Matches(dayRange(t, monday, 9, 0, 10, 0), time.UTC))
		assert.True(t, bounded.Matches(dayRange(t, tuesday, 23, 0, 23, 30), time.UTC))
		assert.False(t, bounded.Matches(dayRange(t, monday.AddDate(0, 0, -1), 9, 0, 10, 0), time.UTC))
		assert.False(t, bounded.Matches(dayRange(t, monday.AddDate(0, 0, 2), 9, 0, 10, 0), time.UTC))
	})

	t.Run("range ending at midnight counts as minute 1440", func(t *testing.T) {
		fullEvening := schedule.AvailabilityRule{
			Kind:           schedule.RuleWorking,
			TimeOfDayStart: minutes(18 * 60),
			TimeOfDayEnd:   minutes(24 * 60),
		}
		lateShift := timerange.MustNew(
			time.Date(2026, 1, 12, 22, 0, 0, 0, time.UTC),
			time.Date(2026, 1, 13, 0, 0, 0, 0, time.UTC),
		)
		assert.True(t, fullEvening.Matches(lateShift, time.UTC))
	})

	t.Run("unconstrained rule matches everything", func(t *testing.T) {
		anything := schedule.AvailabilityRule{Kind: schedule.RuleWorking}
		assert.True(t, anything.Matches(dayRange(t, monday, 3, 0, 4, 0), time.UTC))
	})
}

func TestIsBookable(t *testing.T) {
	monday := time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC)

	working := schedule.AvailabilityRule{
		Kind:           schedule.RuleWorking,
		TimeOfDayStart: minutes(9 * 60),
		TimeOfDayEnd:   minutes(17 * 60),
	}
	lunchBlackout := schedule.AvailabilityRule{
		Kind:           schedule.RuleBlackout,
		TimeOfDayStart: minutes(12 * 60),
		TimeOfDayEnd:   minutes(13 * 60),
	}
	rules := []schedule.AvailabilityRule{working, lunchBlackout}

	t.Run("working rule admits", func(t *testing.T) {
		assert.True(t, schedule.IsBookable(rules, dayRange(t, monday, 9, 0, 10, 0), time.UTC))
	})

	t.Run("blackout vetoes a matching working rule", func(t *testing.T) {
		assert.False(t, schedule.IsBookable(rules, dayRange(t, monday, 12, 0, 13, 0), time.UTC))
	})

	t.Run("no matching working rule means not bookable", func(t *testing.T) {
		assert.False(t, schedule.IsBookable(rules, dayRange(t, monday, 7, 0, 8, 0), time.UTC))
	})

	t.Run("no rules at all means not bookable", func(t *testing.T) {
		assert.False(t, schedule.IsBookable(nil, dayRange(t, monday, 9, 0, 10, 0), time.UTC))
	})
}

func TestResolvePrice(t *testing.T) {
	monday := time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC)
	saturday := time.Date(2026, 1, 17, 0, 0, 0, 0, time.UTC)

	weekendRate := schedule.PriceRule{
		DaysOfWeek: map[time.Weekday]bool{time.Saturday: true, time.Sunday: true},
		PriceCents: 8000,
	}
	baseRate := schedule.PriceRule{PriceCents: 5000}

	t.Run("first matching rule wins", func(t *testing.T) {
		rules := []schedule.PriceRule{weekendRate, baseRate}

		price := schedule.ResolvePrice(rules, dayRange(t, saturday, 10, 0, 11, 0), time.UTC)
		require.NotNil(t, price)
		assert.Equal(t, int64(8000), *price)

		price = schedule.ResolvePrice(rules, dayRange(t, monday, 10, 0, 11, 0), time.UTC)
		require.NotNil(t, price)
		assert.Equal(t, int64(5000), *price)
	})

	t.Run("evaluation order matters", func(t *testing.T) {
		rules := []schedule.PriceRule{baseRate, weekendRate}

		price := schedule.ResolvePrice(rules, dayRange(t, saturday, 10, 0, 11, 0), time.UTC)
		require.NotNil(t, price)
		assert.Equal(t, int64(5000), *price)
	})

	t.Run("no match yields nil, never zero", func(t *testing.T) {
		price := schedule.ResolvePrice([]schedule.PriceRule{weekendRate}, dayRange(t, monday, 10, 0, 11, 0), time.UTC)
		assert.Nil(t, price)
	})
}
