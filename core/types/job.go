// Package types - Job parameter types
package types

import "github.com/shopspring/decimal"

// JobType classifies the booking
type JobType string

const (
	JobDelivery   JobType = "delivery"
	JobCollection JobType = "collection"
	JobCrewedWork JobType = "crewed_job"
)

// String returns the string representation
func (t JobType) String() string {
	return string(t)
}

// Cargo is the "what is being moved" tag for deliveries and collections.
// It governs whether the trip is round-trip or one-way.
type Cargo string

const (
	CargoVehicle   Cargo = "vehicle"
	CargoEquipment Cargo = "equipment"
	CargoPeople    Cargo = "people"
)

// CalcMode selects how labour is priced
type CalcMode string

const (
	ModeHourly  CalcMode = "hourly"
	ModeDayRate CalcMode = "day_rate"
)

// OOHSpec says how the unsociable-hours split is obtained. Exactly one of
// the two variants is used for a calculation; the auto and manual fields are
// never merged.
type OOHSpec struct {
	// Manual selects the manual variant
	Manual bool `json:"manual"`

	// ArrivalTime is the on-site arrival clock time (HH:MM), auto
	// variant only. Empty means the auto calculator is skipped.
	ArrivalTime string `json:"arrival_time,omitempty"`

	// EarlyStartMinutes is the operator-entered early-start count,
	// manual variant only
	EarlyStartMinutes int `json:"early_start_minutes,omitempty"`

	// LateFinishMinutes is the operator-entered late-finish count,
	// manual variant only
	LateFinishMinutes int `json:"late_finish_minutes,omitempty"`
}

// AutoOOH builds the auto-calculated variant
func AutoOOH(arrivalTime string) OOHSpec {
	return OOHSpec{ArrivalTime: arrivalTime}
}

// ManualOOH builds the operator-override variant
func ManualOOH(earlyStart, lateFinish int) OOHSpec {
	return OOHSpec{Manual: true, EarlyStartMinutes: earlyStart, LateFinishMinutes: lateFinish}
}

// TransportLeg is the optional public-transport leg used for vehicle
// collections and returns.
type TransportLeg struct {
	// Minutes is the journey time
	Minutes int `json:"minutes"`

	// Cost is the ticket price
	Cost decimal.Decimal `json:"cost"`
}

// JobParameters describes one delivery/collection/crewed-work booking as
// entered by staff. The engine is a pure function of this record plus the
// rate settings and the expense ledger.
type JobParameters struct {
	// JobType classifies the booking
	JobType JobType `json:"job_type"`

	// Cargo applies to deliveries and collections
	Cargo Cargo `json:"cargo,omitempty"`

	// DistanceMiles is the one-way distance to the venue
	DistanceMiles decimal.Decimal `json:"distance_miles"`

	// DriveTimeMinutes is the one-way drive time. Zero means unknown,
	// which skips the auto unsociable-hours calculator.
	DriveTimeMinutes int `json:"drive_time_minutes"`

	// PublicTransport is the optional non-driven leg of a vehicle
	// collection or return
	PublicTransport *TransportLeg `json:"public_transport,omitempty"`

	// WorkHours is the on-site engaged time for crewed jobs
	WorkHours decimal.Decimal `json:"work_hours"`

	// Mode selects hourly or day-rate pricing
	Mode CalcMode `json:"mode"`

	// NumberOfDays multiplies the day rate and per-diem expenses
	NumberOfDays int `json:"number_of_days"`

	// OOH selects auto or manual unsociable-hours accounting
	OOH OOHSpec `json:"ooh"`

	// ApplyMinHours floors hourly labour at the minimum-hours threshold
	ApplyMinHours bool `json:"apply_min_hours"`

	// DayRateOverride replaces the settings day rate when non-nil
	DayRateOverride *decimal.Decimal `json:"day_rate_override,omitempty"`

	// ReturnBooked marks vehicle jobs where a return collection is also
	// booked, which makes the trip there-and-back
	ReturnBooked bool `json:"return_booked,omitempty"`

	// SetupMinutes is extra fixed setup/pack-down time on deliveries
	// and collections
	SetupMinutes int `json:"setup_minutes,omitempty"`

	// SetupPremium is a flat fee attached to the setup/pack-down work
	SetupPremium decimal.Decimal `json:"setup_premium"`
}

// IsVehicle reports whether the booking moves a vehicle
func (p JobParameters) IsVehicle() bool {
	return (p.JobType == JobDelivery || p.JobType == JobCollection) && p.Cargo == CargoVehicle
}

// HasSetup reports whether the setup/pack-down extra applies. Only
// deliveries and collections carry it.
func (p JobParameters) HasSetup() bool {
	if p.JobType != JobDelivery && p.JobType != JobCollection {
		return false
	}
	return p.SetupMinutes > 0 || p.SetupPremium.IsPositive()
}

// Days returns the day count, never less than one
func (p JobParameters) Days() int {
	if p.NumberOfDays < 1 {
		return 1
	}
	return p.NumberOfDays
}
