// Package v1 - Wire/domain mapping
package v1

import (
	"time"

	"github.com/shopspring/decimal"

	"crewcost/adapters/storage"
	"crewcost/core/types"
	"crewcost/internal/errors"
)

// ToJobParameters converts the wire job into engine input.
func ToJobParameters(req JobRequest) (types.JobParameters, error) {
	var job types.JobParameters

	switch types.JobType(req.Type) {
	case types.JobDelivery, types.JobCollection, types.JobCrewedWork:
		job.JobType = types.JobType(req.Type)
	default:
		return job, errors.Input("job type must be delivery, collection, or crewed_job").
			WithContext("type", req.Type)
	}

	if req.Cargo != "" {
		switch types.Cargo(req.Cargo) {
		case types.CargoVehicle, types.CargoEquipment, types.CargoPeople:
			job.Cargo = types.Cargo(req.Cargo)
		default:
			return job, errors.Input("cargo must be vehicle, equipment, or people").
				WithContext("cargo", req.Cargo)
		}
	}

	job.Mode = types.ModeHourly
	if req.Mode != "" {
		switch types.CalcMode(req.Mode) {
		case types.ModeHourly, types.ModeDayRate:
			job.Mode = types.CalcMode(req.Mode)
		default:
			return job, errors.Input("mode must be hourly or day_rate").
				WithContext("mode", req.Mode)
		}
	}

	if req.ManualOOH && req.ArrivalTime != "" {
		return job, errors.Input("arrival_time and manual unsociable-hours minutes are mutually exclusive")
	}
	if req.ManualOOH {
		job.OOH = types.ManualOOH(req.ManualEarlyStart, req.ManualLateFinish)
	} else {
		job.OOH = types.AutoOOH(req.ArrivalTime)
	}

	job.DistanceMiles = decimal.NewFromFloat(req.DistanceMiles)
	job.DriveTimeMinutes = req.DriveTimeMinutes
	if req.PublicTransportMinutes > 0 || req.PublicTransportCost > 0 {
		job.PublicTransport = &types.TransportLeg{
			Minutes: req.PublicTransportMinutes,
			Cost:    decimal.NewFromFloat(req.PublicTransportCost),
		}
	}
	job.WorkHours = decimal.NewFromFloat(req.WorkHours)
	job.NumberOfDays = req.Days
	job.ApplyMinHours = req.ApplyMinHours
	if req.DayRateOverride != nil {
		d := decimal.NewFromFloat(*req.DayRateOverride)
		job.DayRateOverride = &d
	}
	job.ReturnBooked = req.ReturnBooked
	job.SetupMinutes = req.SetupMinutes
	job.SetupPremium = decimal.NewFromFloat(req.SetupPremium)

	return job, nil
}

// ToExpenseEntries converts the wire ledger into engine input.
func ToExpenseEntries(reqs []ExpenseRequest) ([]types.ExpenseEntry, error) {
	entries := make([]types.ExpenseEntry, 0, len(reqs))
	for _, r := range reqs {
		switch types.ExpenseCategory(r.Category) {
		case types.CategoryFuel, types.CategoryParking, types.CategoryTolls,
			types.CategoryTransportOut, types.CategoryTransportBack,
			types.CategoryHotel, types.CategoryPerDiem, types.CategoryOther:
		default:
			return nil, errors.Input("unknown expense category").WithContext("category", r.Category)
		}
		if types.ExpenseCategory(r.Category) == types.CategoryOther && r.Description == "" {
			return nil, errors.Input("other expenses require a description")
		}

		e := types.ExpenseEntry{
			Category:    types.ExpenseCategory(r.Category),
			Label:       r.Label,
			Description: r.Description,
			PDDays:      r.PDDays,
			Included:    true,
		}
		if e.Category != types.CategoryFuel {
			// The fuel amount is always derived by the engine.
			e.Amount = decimal.NewFromFloat(r.Amount)
		}
		if r.Included != nil {
			e.Included = *r.Included
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// FromCosts converts the breakdown to wire form.
func FromCosts(c types.CalculatedCosts) CostsResponse {
	return CostsResponse{
		ClientChargeLabour:       c.ClientChargeLabour.StringFixed(2),
		ClientChargeFuel:         c.ClientChargeFuel.StringFixed(2),
		ClientChargeExpenses:     c.ClientChargeExpenses.StringFixed(2),
		ClientChargeTotal:        c.ClientChargeTotal.StringFixed(2),
		ClientChargeTotalRounded: c.ClientChargeTotalRounded.StringFixed(2),
		FreelancerFee:            c.FreelancerFee.StringFixed(2),
		FreelancerFeeRounded:     c.FreelancerFeeRounded.StringFixed(2),
		ExpectedFuelCost:         c.ExpectedFuelCost.StringFixed(2),
		ExpensesIncludedTotal:    c.ExpensesIncludedTotal.StringFixed(2),
		ExpensesExcludedTotal:    c.ExpensesExcludedTotal.StringFixed(2),
		OurTotalCost:             c.OurTotalCost.StringFixed(2),
		Margin:                   c.Margin.StringFixed(2),
		EstimatedMinutes:         c.EstimatedMinutes,
		EstimatedHours:           c.EstimatedHours.StringFixed(2),
		EarlyStartMinutes:        c.EarlyStartMinutes,
		LateFinishMinutes:        c.LateFinishMinutes,
		DepartureTime:            c.DepartureTime,
		FinishTime:               c.FinishTime,
		Currency:                 types.CurrencyGBP.String(),
		Warnings:                 c.Warnings,
	}
}

// FromQuote converts a stored quote to wire form.
func FromQuote(q *storage.StoredQuote) QuoteResponse {
	resp := QuoteResponse{
		ID:        q.ID,
		Reference: q.Reference,
		Costs:     FromCosts(q.Costs),
		Breakdown: q.Breakdown,
	}
	if !q.CreatedAt.IsZero() {
		resp.CreatedAt = q.CreatedAt.UTC().Format(time.RFC3339)
	}
	return resp
}
