// Package types defines the data model shared by the costing engine
// and its adapters.
package types

import "github.com/shopspring/decimal"

// Currency represents a currency code
type Currency string

const (
	CurrencyGBP Currency = "GBP"
)

// String returns the string representation
func (c Currency) String() string {
	return string(c)
}

// RateSettings holds the configurable constants every costing run reads.
// It is immutable per calculation: the engine only ever reads it.
type RateSettings struct {
	// FuelPricePerLitre is the pump price used by the fuel heuristic
	FuelPricePerLitre decimal.Decimal `json:"fuel_price_per_litre"`

	// ExpenseMarkupPercent is the uplift applied to cost-price labour
	// and expenses to derive the client-facing charge
	ExpenseMarkupPercent decimal.Decimal `json:"expense_markup_percent"`

	// AdminCostPerHour is added to the client labour charge per engaged hour
	AdminCostPerHour decimal.Decimal `json:"admin_cost_per_hour"`

	// HandoverTimeMinutes is the handling allowance for one-way jobs
	HandoverTimeMinutes int `json:"handover_time_minutes"`

	// UnloadTimeMinutes is the handling allowance for round-trip jobs
	UnloadTimeMinutes int `json:"unload_time_minutes"`

	// MinHoursThreshold floors hourly jobs at this many hours when the
	// minimum-hours flag is set
	MinHoursThreshold decimal.Decimal `json:"min_hours_threshold"`

	// MinClientCharge floors the rounded client total
	MinClientCharge decimal.Decimal `json:"min_client_charge"`

	// HourlyRateFreelancerDay is the freelancer rate inside sociable hours
	HourlyRateFreelancerDay decimal.Decimal `json:"hourly_rate_freelancer_day"`

	// HourlyRateFreelancerNight is the freelancer rate outside sociable hours
	HourlyRateFreelancerNight decimal.Decimal `json:"hourly_rate_freelancer_night"`

	// HourlyRateClientDay is the client rate inside sociable hours
	HourlyRateClientDay decimal.Decimal `json:"hourly_rate_client_day"`

	// HourlyRateClientNight is the client rate outside sociable hours
	HourlyRateClientNight decimal.Decimal `json:"hourly_rate_client_night"`

	// DriverDayRate is the flat per-day freelancer fee in day-rate mode
	DriverDayRate decimal.Decimal `json:"driver_day_rate"`

	// ExpenseVarianceThreshold is a percentage; quotes whose included
	// expenses exceed the labour charge by more than this are flagged
	ExpenseVarianceThreshold decimal.Decimal `json:"expense_variance_threshold"`
}

// DefaultRateSettings returns the documented fallback values used when no
// settings store is reachable.
func DefaultRateSettings() RateSettings {
	return RateSettings{
		FuelPricePerLitre:         decimal.NewFromFloat(1.50),
		ExpenseMarkupPercent:      decimal.NewFromInt(15),
		AdminCostPerHour:          decimal.NewFromInt(5),
		HandoverTimeMinutes:       15,
		UnloadTimeMinutes:         20,
		MinHoursThreshold:         decimal.NewFromInt(4),
		MinClientCharge:           decimal.NewFromInt(50),
		HourlyRateFreelancerDay:   decimal.NewFromInt(15),
		HourlyRateFreelancerNight: decimal.NewFromInt(20),
		HourlyRateClientDay:       decimal.NewFromInt(25),
		HourlyRateClientNight:     decimal.NewFromFloat(32.50),
		DriverDayRate:             decimal.NewFromInt(180),
		ExpenseVarianceThreshold:  decimal.NewFromInt(15),
	}
}
