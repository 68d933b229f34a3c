//go:build unit

package event_test

import (
	"testing"
	"time"

	"coachly/internal/domain/event"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRule(t *testing.T) {
	t.Run("full rule", func(t *testing.T) {
		rule, err := event.ParseRule("FREQ=WEEKLY;INTERVAL=2;COUNT=10;BYDAY=MO,WE;UNTIL=2026-06-30T00:00:00")
		require.NoError(t, err)

		assert.Equal(t, event.FreqWeekly, rule.Freq)
		assert.Equal(t, 2, rule.Interval)
		assert.Equal(t, 10, rule.Count)
		assert.Equal(t, time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC), rule.Until)
		assert.Equal(t, map[time.Weekday]bool{time.Monday: true, time.Wednesday: true}, rule.ByDay)
	})

	t.Run("defaults", func(t *testing.T) {
		rule, err := event.ParseRule("FREQ=DAILY")
		require.NoError(t, err)

		assert.Equal(t, event.FreqDaily, rule.Freq)
		assert.Equal(t, 1, rule.Interval)
		assert.Zero(t, rule.Count)
		assert.False(t, rule.HasUntil())
		assert.Empty(t, rule.ByDay)
	})

	t.Run("key order is irrelevant", func(t *testing.T) {
		a, err := event.ParseRule("FREQ=MONTHLY;BYMONTHDAY=15")
		require.NoError(t, err)
		b, err := event.ParseRule("BYMONTHDAY=15;FREQ=MONTHLY")
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})

	t.Run("unknown keys are ignored", func(t *testing.T) {
		rule, err := event.ParseRule("FREQ=DAILY;WKST=MO;X-CUSTOM=1")
		require.NoError(t, err)
		assert.Equal(t, event.FreqDaily, rule.Freq)
	})

	t.Run("error cases", func(t *testing.T) {
		cases := []struct {
			name  string
			rule  string
			errIs error
		}{
			{"missing FREQ", "INTERVAL=2;COUNT=5", event.ErrMissingFreq},
			{"empty rule", "", event.ErrMissingFreq},
			{"unknown FREQ token", "FREQ=FORTNIGHTLY", event.ErrUnknownFrequency},
			{"unknown BYDAY token", "FREQ=WEEKLY;BYDAY=MO,XX", event.ErrUnknownWeekday},
			{"zero INTERVAL", "FREQ=DAILY;INTERVAL=0", event.ErrInvalidRuleValue},
			{"negative COUNT", "FREQ=DAILY;COUNT=-3", event.ErrInvalidRuleValue},
			{"non-numeric COUNT", "FREQ=DAILY;COUNT=ten", event.ErrInvalidRuleValue},
			{"BYMONTHDAY out of range", "FREQ=MONTHLY;BYMONTHDAY=32", event.ErrInvalidRuleValue},
			{"BYMONTH out of range", "FREQ=YEARLY;BYMONTH=13", event.ErrInvalidRuleValue},
			{"UNTIL with zone suffix", "FREQ=DAILY;UNTIL=2026-06-30T00:00:00Z", event.ErrInvalidUntilLayout},
			{"UNTIL compact layout", "FREQ=DAILY;UNTIL=20260630T000000", event.ErrInvalidUntilLayout},
			{"bare key", "FREQ=DAILY;BYDAY", event.ErrMalformedRulePair},
			{"empty value", "FREQ=DAILY;COUNT=", event.ErrMalformedRulePair},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := event.ParseRule(tc.rule)
				require.Error(t, err)
				assert.ErrorIs(t, err, tc.errIs)
			})
		}
	})

	t.Run("failures name the offending token", func(t *testing.T) {
		_, err := event.ParseRule("FREQ=SOMETIMES")
		require.Error(t, err)
		assert.Contains(t, err.Error(), `"SOMETIMES"`)

		_, err = event.ParseRule("FREQ=WEEKLY;BYDAY=LU")
		require.Error(t, err)
		assert.Contains(t, err.Error(), `"LU"`)
	})
}
