package request

import "time"

type AvailabilityRuleRequest struct {
	Kind           string     `json:"kind" binding:"required,oneof=working blackout"`
	DaysOfWeek     []int      `json:"days_of_week" binding:"omitempty,dive,min=0,max=6"`
	TimeOfDayStart *int       `json:"time_of_day_start,omitempty" binding:"omitempty,min=0,max=1440"`
	TimeOfDayEnd   *int       `json:"time_of_day_end,omitempty" binding:"omitempty,min=0,max=1440"`
	DateStart      *time.Time `json:"date_start,omitempty"`
	DateEnd        *time.Time `json:"date_end,omitempty"`
}

type PriceRuleRequest struct {
	DaysOfWeek     []int      `json:"days_of_week" binding:"omitempty,dive,min=0,max=6"`
	TimeOfDayStart *int       `json:"time_of_day_start,omitempty" binding:"omitempty,min=0,max=1440"`
	TimeOfDayEnd   *int       `json:"time_of_day_end,omitempty" binding:"omitempty,min=0,max=1440"`
	DateStart      *time.Time `json:"date_start,omitempty"`
	DateEnd        *time.Time `json:"date_end,omitempty"`
	PriceCents     int64      `json:"price_cents" binding:"min=0"`
}

// ReplaceRulesRequest swaps a calendar's full rule set atomically.
// Rule order is evaluation order on the price side.
type ReplaceRulesRequest struct {
	AvailabilityRules []AvailabilityRuleRequest `json:"availability_rules" binding:"omitempty,dive"`
	PriceRules        []PriceRuleRequest        `json:"price_rules" binding:"omitempty,dive"`
}
