// Package costing is the job costing engine: a pure function from rate
// settings, job parameters, and an expense ledger to a full cost breakdown.
// It performs no I/O, owns no state, and never fails; missing optional
// inputs degrade to zero/skip behaviour and invalid numbers produce a
// well-defined (if nonsensical) result, with validation left to the caller.
package costing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"crewcost/core/expense"
	"crewcost/core/schedule"
	"crewcost/core/travel"
	"crewcost/core/types"
)

var (
	sixty        = decimal.NewFromInt(60)
	hundred      = decimal.NewFromInt(100)
	dayRateHours = decimal.NewFromInt(8)
)

// Result pairs the cost breakdown with the normalized ledger it was
// computed from. The ledger always carries the derived fuel entry.
type Result struct {
	// Costs is the full breakdown
	Costs types.CalculatedCosts

	// Ledger is the normalized expense ledger
	Ledger []types.ExpenseEntry
}

// BreakdownText renders the result's ledger for storage with the quote
func (r Result) BreakdownText() string {
	return expense.Breakdown(r.Ledger)
}

// Calculate runs one costing attempt. Identical inputs always produce an
// identical Result.
func Calculate(job types.JobParameters, rates types.RateSettings, entries []types.ExpenseEntry) Result {
	fuelCost := travel.ExpectedFuelCost(job, rates).Round(2)
	ledger := expense.Normalize(entries, fuelCost)

	var costs types.CalculatedCosts
	if job.Mode == types.ModeDayRate {
		costs = calculateDayRate(job, rates, ledger, fuelCost)
	} else {
		costs = calculateHourly(job, rates, ledger, fuelCost)
	}

	costs.ExpectedFuelCost = fuelCost
	costs.ExpensesIncludedTotal = expense.IncludedTotal(ledger).Round(2)
	costs.ExpensesExcludedTotal = expense.ExcludedTotal(ledger).Round(2)

	if w, ok := varianceWarning(costs, rates); ok {
		costs.Warnings = append(costs.Warnings, w)
	}

	return Result{Costs: costs, Ledger: ledger}
}

// calculateDayRate prices the job at a flat per-day fee. Day-rate jobs do
// not carry an hourly night premium, so the unsociable-hours fields stay
// zero and estimated time is display-only.
func calculateDayRate(job types.JobParameters, rates types.RateSettings, ledger []types.ExpenseEntry, fuelCost decimal.Decimal) types.CalculatedCosts {
	days := job.Days()

	rate := rates.DriverDayRate
	if job.DayRateOverride != nil {
		rate = *job.DayRateOverride
	}

	fee := rate.Mul(decimal.NewFromInt(int64(days)))
	if job.HasSetup() {
		fee = fee.Add(job.SetupPremium)
	}
	fee = fee.Round(2)
	feeRounded := RoundToNearestFive(fee)

	markup := markupMultiplier(rates)
	clientLabour := feeRounded.Mul(markup).Round(2)

	estHours := dayRateHours.Mul(decimal.NewFromInt(int64(days)))

	costs := assembleClientCharges(clientLabour, fuelCost, rates, ledger)
	costs.FreelancerFee = fee
	costs.FreelancerFeeRounded = feeRounded
	costs.OurTotalCost = feeRounded.Add(fuelCost).Add(expense.IncludedTotal(ledger)).Round(2)
	costs.Margin = costs.ClientChargeTotalRounded.Sub(costs.OurTotalCost).Round(2)
	costs.EstimatedMinutes = days * 8 * 60
	costs.EstimatedHours = estHours
	return costs
}

// calculateHourly prices the job from engaged minutes, splitting time into
// sociable and premium rates.
func calculateHourly(job types.JobParameters, rates types.RateSettings, ledger []types.ExpenseEntry, fuelCost decimal.Decimal) types.CalculatedCosts {
	totalMinutes := engagedMinutes(job, rates)
	split := schedule.Resolve(job, totalMinutes)

	oohMinutes := split.OutOfHoursMinutes()
	normalMinutes := totalMinutes - oohMinutes
	if normalMinutes < 0 {
		normalMinutes = 0
	}

	normalHours := minutesToHours(normalMinutes)
	oohHours := minutesToHours(oohMinutes)
	totalHours := minutesToHours(totalMinutes)

	pay := normalHours.Mul(rates.HourlyRateFreelancerDay).
		Add(oohHours.Mul(rates.HourlyRateFreelancerNight))
	if job.HasSetup() {
		pay = pay.Add(job.SetupPremium)
	}
	if job.ApplyMinHours && totalMinutes > 0 {
		floor := rates.MinHoursThreshold.Mul(rates.HourlyRateFreelancerDay)
		if pay.LessThan(floor) {
			pay = floor
		}
	}
	pay = pay.Round(2)
	feeRounded := RoundToNearestFive(pay)

	clientLabour := normalHours.Mul(rates.HourlyRateClientDay).
		Add(oohHours.Mul(rates.HourlyRateClientNight))
	if job.ApplyMinHours && totalMinutes > 0 {
		floor := rates.MinHoursThreshold.Mul(rates.HourlyRateClientDay)
		if clientLabour.LessThan(floor) {
			clientLabour = floor
		}
	}
	clientLabour = clientLabour.Add(rates.AdminCostPerHour.Mul(totalHours))
	if job.HasSetup() {
		clientLabour = clientLabour.Add(job.SetupPremium.Mul(markupMultiplier(rates)))
	}
	clientLabour = clientLabour.Round(2)

	costs := assembleClientCharges(clientLabour, fuelCost, rates, ledger)
	costs.FreelancerFee = pay
	costs.FreelancerFeeRounded = feeRounded
	costs.OurTotalCost = feeRounded.Add(fuelCost).Add(expense.IncludedTotal(ledger)).Round(2)
	costs.Margin = costs.ClientChargeTotalRounded.Sub(costs.OurTotalCost).Round(2)
	costs.EstimatedMinutes = totalMinutes
	costs.EstimatedHours = totalHours.Round(2)
	costs.EarlyStartMinutes = split.EarlyStartMinutes
	costs.LateFinishMinutes = split.LateFinishMinutes
	costs.DepartureTime = split.DepartureClock()
	costs.FinishTime = split.FinishClock()
	return costs
}

// assembleClientCharges builds the three client components and the rounded
// total, shared by both modes.
func assembleClientCharges(clientLabour, fuelCost decimal.Decimal, rates types.RateSettings, ledger []types.ExpenseEntry) types.CalculatedCosts {
	markup := markupMultiplier(rates)

	clientExpenses := expense.IncludedTotal(ledger).Mul(markup).Round(2)

	clientFuel := decimal.Zero
	if expense.FuelIncluded(ledger) {
		clientFuel = fuelCost
	}

	total := clientLabour.Add(clientFuel).Add(clientExpenses).Round(2)
	totalRounded := RoundToPound(total)
	if totalRounded.LessThan(rates.MinClientCharge) {
		totalRounded = rates.MinClientCharge
	}

	return types.CalculatedCosts{
		ClientChargeLabour:       clientLabour,
		ClientChargeFuel:         clientFuel,
		ClientChargeExpenses:     clientExpenses,
		ClientChargeTotal:        total,
		ClientChargeTotalRounded: totalRounded,
	}
}

// engagedMinutes totals the hourly-mode engaged time: travel, the handling
// allowance, crewed work, and any fixed setup/pack-down time.
func engagedMinutes(job types.JobParameters, rates types.RateSettings) int {
	minutes := travel.Minutes(job)

	if travel.ThereAndBack(job) {
		minutes += rates.UnloadTimeMinutes
	} else {
		minutes += rates.HandoverTimeMinutes
	}

	if job.JobType == types.JobCrewedWork {
		minutes += int(job.WorkHours.Mul(sixty).Round(0).IntPart())
	}

	if job.JobType == types.JobDelivery || job.JobType == types.JobCollection {
		minutes += job.SetupMinutes
	}

	return minutes
}

// varianceWarning flags quotes whose included expenses dwarf the labour
// charge. Advisory only; the numbers are never changed.
func varianceWarning(costs types.CalculatedCosts, rates types.RateSettings) (string, bool) {
	if !costs.ClientChargeLabour.IsPositive() || rates.ExpenseVarianceThreshold.IsZero() {
		return "", false
	}
	limit := costs.ClientChargeLabour.Mul(rates.ExpenseVarianceThreshold).Div(hundred)
	if costs.ExpensesIncludedTotal.GreaterThan(limit) {
		return fmt.Sprintf("included expenses %s exceed %s%% of the labour charge",
			costs.ExpensesIncludedTotal.StringFixed(2), rates.ExpenseVarianceThreshold.String()), true
	}
	return "", false
}

func markupMultiplier(rates types.RateSettings) decimal.Decimal {
	return decimal.NewFromInt(1).Add(rates.ExpenseMarkupPercent.Div(hundred))
}

func minutesToHours(minutes int) decimal.Decimal {
	return decimal.NewFromInt(int64(minutes)).Div(sixty)
}
