//go:build unit || e2e

package builder

import (
	reqdto "coachly/internal/handler/dto/request"
)

type RuleSetBuilder struct {
	Availability []reqdto.AvailabilityRuleRequest
	Prices       []reqdto.PriceRuleRequest
}

// NewRuleSetBuilder starts from a plausible coach setup: weekday
// working hours and a flat session price.
func NewRuleSetBuilder() *RuleSetBuilder {
	start := 9 * 60
	end := 18 * 60
	return &RuleSetBuilder{
		Availability: []reqdto.AvailabilityRuleRequest{
			{
				Kind:           "working",
				DaysOfWeek:     []int{1, 2, 3, 4, 5},
				TimeOfDayStart: &start,
				TimeOfDayEnd:   &end,
			},
		},
		Prices: []reqdto.PriceRuleRequest{
			{PriceCents: 5000},
		},
	}
}

func (r *RuleSetBuilder) WithAvailability(rules ...reqdto.AvailabilityRuleRequest) *RuleSetBuilder {
	r.Availability = rules
	return r
}

func (r *RuleSetBuilder) WithPrices(rules ...reqdto.PriceRuleRequest) *RuleSetBuilder {
	r.Prices = rules
	return r
}

func (r *RuleSetBuilder) BuildDTO() reqdto.ReplaceRulesRequest {
	return reqdto.ReplaceRulesRequest{
		AvailabilityRules: r.Availability,
		PriceRules:        r.Prices,
	}
}
