package event

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Recurrence rule grammar: semicolon-separated KEY=VALUE pairs,
// order-insensitive, unknown keys ignored. Unknown FREQ or BYDAY
// tokens fail fast naming the token; this parser never guesses.
//
//	FREQ=WEEKLY;INTERVAL=2;BYDAY=MO,WE;UNTIL=2026-06-30T00:00:00

var (
	ErrMissingFreq        = errors.New("recurrence rule requires FREQ")
	ErrUnknownFrequency   = errors.New("unknown FREQ token")
	ErrUnknownWeekday     = errors.New("unknown BYDAY token")
	ErrInvalidRuleValue   = errors.New("invalid recurrence rule value")
	ErrMalformedRulePair  = errors.New("recurrence rule pair must be KEY=VALUE")
	ErrInvalidUntilLayout = errors.New("UNTIL must be formatted yyyy-MM-ddTHH:mm:ss")
)

const untilLayout = "2006-01-02T15:04:05"

type Frequency string

const (
	FreqMinute  Frequency = "MINUTE"
	FreqHour    Frequency = "HOUR"
	FreqDaily   Frequency = "DAILY"
	FreqWeekly  Frequency = "WEEKLY"
	FreqMonthly Frequency = "MONTHLY"
	FreqYearly  Frequency = "YEARLY"
)

var weekdayTokens = map[string]time.Weekday{
	"MO": time.Monday,
	"TU": time.Tuesday,
	"WE": time.Wednesday,
	"TH": time.Thursday,
	"FR": time.Friday,
	"SA": time.Saturday,
	"SU": time.Sunday,
}

// Rule is the structured form of a recurrence rule string. Zero values
// mean "not set" for the optional fields.
type Rule struct {
	Freq       Frequency
	Interval   int
	Count      int
	Until      time.Time
	ByDay      map[time.Weekday]bool
	ByMonthDay int
	ByMonth    time.Month
}

func (r Rule) HasUntil() bool { return !r.Until.IsZero() }

// ParseRule parses the rule grammar bit-exactly.
func ParseRule(s string) (Rule, error) {
	rule := Rule{Interval: 1}
	seenFreq := false

	for _, pair := range strings.Split(s, ";") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		key, value, found := strings.Cut(pair, "=")
		if !found || value == "" {
			return Rule{}, fmt.Errorf("%w: %q", ErrMalformedRulePair, pair)
		}

		switch key {
		case "FREQ":
			freq := Frequency(value)
			switch freq {
			case FreqMinute, FreqHour, FreqDaily, FreqWeekly, FreqMonthly, FreqYearly:
				rule.Freq = freq
				seenFreq = true
			default:
				return Rule{}, fmt.Errorf("%w: %q", ErrUnknownFrequency, value)
			}

		case "INTERVAL":
			n, err := parsePositiveInt(key, value)
			if err != nil {
				return Rule{}, err
			}
			rule.Interval = n

		case "COUNT":
			n, err := parsePositiveInt(key, value)
			if err != nil {
				return Rule{}, err
			}
			rule.Count = n

		case "UNTIL":
			t, err := time.Parse(untilLayout, value)
			if err != nil {
				return Rule{}, fmt.Errorf("%w: %q", ErrInvalidUntilLayout, value)
			}
			rule.Until = t

		case "BYDAY":
			days := make(map[time.Weekday]bool)
			for _, token := range strings.Split(value, ",") {
				token = strings.TrimSpace(token)
				wd, ok := weekdayTokens[token]
				if !ok {
					return Rule{}, fmt.Errorf("%w: %q", ErrUnknownWeekday, token)
				}
				days[wd] = true
			}
			rule.ByDay = days

		case "BYMONTHDAY":
			n, err := parsePositiveInt(key, value)
			if err != nil {
				return Rule{}, err
			}
			if n > 31 {
				return Rule{}, fmt.Errorf("%w: BYMONTHDAY=%d out of range 1-31", ErrInvalidRuleValue, n)
			}
			rule.ByMonthDay = n

		case "BYMONTH":
			n, err := parsePositiveInt(key, value)
			if err != nil {
				return Rule{}, err
			}
			if n > 12 {
				return Rule{}, fmt.Errorf("%w: BYMONTH=%d out of range 1-12", ErrInvalidRuleValue, n)
			}
			rule.ByMonth = time.Month(n)

		default:
			// Unknown keys are ignored, unknown values of known keys are not.
		}
	}

	if !seenFreq {
		return Rule{}, ErrMissingFreq
	}
	return rule, nil
}

func parsePositiveInt(key, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: %s=%q must be a positive integer", ErrInvalidRuleValue, key, value)
	}
	return n, nil
}
