// Package types - Costing output types
package types

import "github.com/shopspring/decimal"

// CalculatedCosts is the full breakdown produced by one costing run. It is
// created fresh per call and never mutated afterwards.
type CalculatedCosts struct {
	// ClientChargeLabour is the marked-up labour component of the quote
	ClientChargeLabour decimal.Decimal `json:"client_charge_labour"`

	// ClientChargeFuel is the fuel component, zero when the fuel entry
	// is excluded from the quote
	ClientChargeFuel decimal.Decimal `json:"client_charge_fuel"`

	// ClientChargeExpenses is the marked-up included non-fuel expenses
	ClientChargeExpenses decimal.Decimal `json:"client_charge_expenses"`

	// ClientChargeTotal is the sum of the three components
	ClientChargeTotal decimal.Decimal `json:"client_charge_total"`

	// ClientChargeTotalRounded is the total rounded to the nearest pound
	// and floored at the minimum client charge
	ClientChargeTotalRounded decimal.Decimal `json:"client_charge_total_rounded"`

	// FreelancerFee is the raw fee before the £5 rounding
	FreelancerFee decimal.Decimal `json:"freelancer_fee"`

	// FreelancerFeeRounded is the fee rounded to the nearest £5
	FreelancerFeeRounded decimal.Decimal `json:"freelancer_fee_rounded"`

	// ExpectedFuelCost is the output of the fuel heuristic
	ExpectedFuelCost decimal.Decimal `json:"expected_fuel_cost"`

	// ExpensesIncludedTotal sums every included entry, fuel excluded
	ExpensesIncludedTotal decimal.Decimal `json:"expenses_included_total"`

	// ExpensesExcludedTotal sums every excluded entry, fuel excluded
	ExpensesExcludedTotal decimal.Decimal `json:"expenses_excluded_total"`

	// OurTotalCost is what the job costs the company before margin
	OurTotalCost decimal.Decimal `json:"our_total_cost"`

	// Margin is the rounded client charge minus our total cost
	Margin decimal.Decimal `json:"margin"`

	// EstimatedMinutes is the engaged time for the job
	EstimatedMinutes int `json:"estimated_minutes"`

	// EstimatedHours is the engaged time expressed in hours
	EstimatedHours decimal.Decimal `json:"estimated_hours"`

	// EarlyStartMinutes is time before the sociable window
	EarlyStartMinutes int `json:"early_start_minutes"`

	// LateFinishMinutes is time after the sociable window
	LateFinishMinutes int `json:"late_finish_minutes"`

	// DepartureTime is the computed leave-home clock time (HH:MM),
	// empty when the auto calculator was skipped
	DepartureTime string `json:"departure_time,omitempty"`

	// FinishTime is the computed wrap clock time (HH:MM)
	FinishTime string `json:"finish_time,omitempty"`

	// Warnings carries advisory flags; they never change the numbers
	Warnings []string `json:"warnings,omitempty"`
}

// OutOfHoursMinutes returns the total premium-rate minutes
func (c CalculatedCosts) OutOfHoursMinutes() int {
	return c.EarlyStartMinutes + c.LateFinishMinutes
}
