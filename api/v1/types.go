// Package v1 defines the versioned wire types for the quoting API.
// Money travels as decimal strings; durations as integer minutes.
package v1

import "crewcost/core/types"

// QuoteRequest asks for one costing run.
type QuoteRequest struct {
	// Reference groups quotes for the same booking
	Reference string `json:"reference,omitempty"`

	// Job describes the work being priced
	Job JobRequest `json:"job"`

	// Expenses is the operator-entered ledger
	Expenses []ExpenseRequest `json:"expenses,omitempty"`
}

// JobRequest mirrors the engine's job parameters.
type JobRequest struct {
	Type                   string   `json:"type"`
	Cargo                  string   `json:"cargo,omitempty"`
	DistanceMiles          float64  `json:"distance_miles,omitempty"`
	DriveTimeMinutes       int      `json:"drive_time_minutes,omitempty"`
	PublicTransportMinutes int      `json:"public_transport_minutes,omitempty"`
	PublicTransportCost    float64  `json:"public_transport_cost,omitempty"`
	WorkHours              float64  `json:"work_hours,omitempty"`
	Mode                   string   `json:"mode,omitempty"`
	Days                   int      `json:"days,omitempty"`
	ArrivalTime            string   `json:"arrival_time,omitempty"`
	ManualOOH              bool     `json:"manual_ooh,omitempty"`
	ManualEarlyStart       int      `json:"manual_early_start_minutes,omitempty"`
	ManualLateFinish       int      `json:"manual_late_finish_minutes,omitempty"`
	ApplyMinHours          bool     `json:"apply_min_hours,omitempty"`
	DayRateOverride        *float64 `json:"day_rate_override,omitempty"`
	ReturnBooked           bool     `json:"return_booked,omitempty"`
	SetupMinutes           int      `json:"setup_minutes,omitempty"`
	SetupPremium           float64  `json:"setup_premium,omitempty"`
}

// ExpenseRequest is one ledger line as entered.
type ExpenseRequest struct {
	Category    string  `json:"category"`
	Label       string  `json:"label,omitempty"`
	Amount      float64 `json:"amount,omitempty"`
	Included    *bool   `json:"included,omitempty"`
	Description string  `json:"description,omitempty"`
	PDDays      int     `json:"pd_days,omitempty"`
}

// CostsResponse is the breakdown with money as fixed two-decimal strings.
type CostsResponse struct {
	ClientChargeLabour       string   `json:"client_charge_labour"`
	ClientChargeFuel         string   `json:"client_charge_fuel"`
	ClientChargeExpenses     string   `json:"client_charge_expenses"`
	ClientChargeTotal        string   `json:"client_charge_total"`
	ClientChargeTotalRounded string   `json:"client_charge_total_rounded"`
	FreelancerFee            string   `json:"freelancer_fee"`
	FreelancerFeeRounded     string   `json:"freelancer_fee_rounded"`
	ExpectedFuelCost         string   `json:"expected_fuel_cost"`
	ExpensesIncludedTotal    string   `json:"expenses_included_total"`
	ExpensesExcludedTotal    string   `json:"expenses_excluded_total"`
	OurTotalCost             string   `json:"our_total_cost"`
	Margin                   string   `json:"margin"`
	EstimatedMinutes         int      `json:"estimated_minutes"`
	EstimatedHours           string   `json:"estimated_hours"`
	EarlyStartMinutes        int      `json:"early_start_minutes"`
	LateFinishMinutes        int      `json:"late_finish_minutes"`
	DepartureTime            string   `json:"departure_time,omitempty"`
	FinishTime               string   `json:"finish_time,omitempty"`
	Currency                 string   `json:"currency"`
	Warnings                 []string `json:"warnings,omitempty"`
}

// QuoteResponse is one stored or previewed quote.
type QuoteResponse struct {
	ID        string        `json:"id,omitempty"`
	Reference string        `json:"reference,omitempty"`
	CreatedAt string        `json:"created_at,omitempty"`
	Costs     CostsResponse `json:"costs"`
	Breakdown string        `json:"breakdown"`
}

// QuoteListResponse is a page of stored quotes.
type QuoteListResponse struct {
	Quotes []QuoteResponse `json:"quotes"`
	Count  int             `json:"count"`
}

// RatesResponse wraps the current settings. RateSettings already
// serializes money as decimal strings.
type RatesResponse struct {
	Rates types.RateSettings `json:"rates"`
}

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
	Type  string `json:"type,omitempty"`
}
