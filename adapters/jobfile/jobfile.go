// Package jobfile parses HCL job descriptions into engine inputs, so jobs
// can be costed from the command line without the portal.
package jobfile

import (
	"os"

	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/shopspring/decimal"

	"crewcost/core/types"
	"crewcost/internal/errors"
)

// file is the top-level HCL document: one job block plus any number of
// expense blocks.
type file struct {
	Job      jobBlock       `hcl:"job,block"`
	Expenses []expenseBlock `hcl:"expense,block"`
}

type jobBlock struct {
	Type                   string   `hcl:"type"`
	Cargo                  *string  `hcl:"cargo,optional"`
	DistanceMiles          *float64 `hcl:"distance_miles,optional"`
	DriveTimeMinutes       *int     `hcl:"drive_time_minutes,optional"`
	PublicTransportMinutes *int     `hcl:"public_transport_minutes,optional"`
	PublicTransportCost    *float64 `hcl:"public_transport_cost,optional"`
	WorkHours              *float64 `hcl:"work_hours,optional"`
	Mode                   *string  `hcl:"mode,optional"`
	Days                   *int     `hcl:"days,optional"`
	ArrivalTime            *string  `hcl:"arrival_time,optional"`
	ManualEarlyStart       *int     `hcl:"manual_early_start_minutes,optional"`
	ManualLateFinish       *int     `hcl:"manual_late_finish_minutes,optional"`
	ApplyMinHours          *bool    `hcl:"apply_min_hours,optional"`
	DayRateOverride        *float64 `hcl:"day_rate_override,optional"`
	ReturnBooked           *bool    `hcl:"return_booked,optional"`
	SetupMinutes           *int     `hcl:"setup_minutes,optional"`
	SetupPremium           *float64 `hcl:"setup_premium,optional"`
}

type expenseBlock struct {
	Category    string   `hcl:"category,label"`
	Amount      *float64 `hcl:"amount,optional"`
	Included    *bool    `hcl:"included,optional"`
	Description *string  `hcl:"description,optional"`
	PDDays      *int     `hcl:"pd_days,optional"`
	Label       *string  `hcl:"label,optional"`
}

// ParseFile loads a job description from disk.
func ParseFile(path string) (types.JobParameters, []types.ExpenseEntry, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return types.JobParameters{}, nil, errors.JobFile("read job file", err)
	}
	return Parse(path, src)
}

// Parse decodes a job description. The filename is used for diagnostics
// and must end in .hcl.
func Parse(filename string, src []byte) (types.JobParameters, []types.ExpenseEntry, error) {
	var f file
	if err := hclsimple.Decode(filename, src, nil, &f); err != nil {
		return types.JobParameters{}, nil, errors.JobFile("decode job file", err)
	}

	job, err := f.Job.toParameters()
	if err != nil {
		return types.JobParameters{}, nil, err
	}

	entries := make([]types.ExpenseEntry, 0, len(f.Expenses))
	for _, b := range f.Expenses {
		e, err := b.toEntry()
		if err != nil {
			return types.JobParameters{}, nil, err
		}
		entries = append(entries, e)
	}

	return job, entries, nil
}

func (b jobBlock) toParameters() (types.JobParameters, error) {
	var job types.JobParameters

	switch types.JobType(b.Type) {
	case types.JobDelivery, types.JobCollection, types.JobCrewedWork:
		job.JobType = types.JobType(b.Type)
	default:
		return job, errors.Input("job type must be delivery, collection, or crewed_job").
			WithContext("type", b.Type)
	}

	if b.Cargo != nil {
		switch types.Cargo(*b.Cargo) {
		case types.CargoVehicle, types.CargoEquipment, types.CargoPeople:
			job.Cargo = types.Cargo(*b.Cargo)
		default:
			return job, errors.Input("cargo must be vehicle, equipment, or people").
				WithContext("cargo", *b.Cargo)
		}
	}

	job.Mode = types.ModeHourly
	if b.Mode != nil {
		switch types.CalcMode(*b.Mode) {
		case types.ModeHourly, types.ModeDayRate:
			job.Mode = types.CalcMode(*b.Mode)
		default:
			return job, errors.Input("mode must be hourly or day_rate").
				WithContext("mode", *b.Mode)
		}
	}

	if b.DistanceMiles != nil {
		job.DistanceMiles = decimal.NewFromFloat(*b.DistanceMiles)
	}
	if b.DriveTimeMinutes != nil {
		job.DriveTimeMinutes = *b.DriveTimeMinutes
	}
	if b.PublicTransportMinutes != nil || b.PublicTransportCost != nil {
		leg := &types.TransportLeg{}
		if b.PublicTransportMinutes != nil {
			leg.Minutes = *b.PublicTransportMinutes
		}
		if b.PublicTransportCost != nil {
			leg.Cost = decimal.NewFromFloat(*b.PublicTransportCost)
		}
		job.PublicTransport = leg
	}
	if b.WorkHours != nil {
		job.WorkHours = decimal.NewFromFloat(*b.WorkHours)
	}
	if b.Days != nil {
		job.NumberOfDays = *b.Days
	}
	if b.ApplyMinHours != nil {
		job.ApplyMinHours = *b.ApplyMinHours
	}
	if b.DayRateOverride != nil {
		d := decimal.NewFromFloat(*b.DayRateOverride)
		job.DayRateOverride = &d
	}
	if b.ReturnBooked != nil {
		job.ReturnBooked = *b.ReturnBooked
	}
	if b.SetupMinutes != nil {
		job.SetupMinutes = *b.SetupMinutes
	}
	if b.SetupPremium != nil {
		job.SetupPremium = decimal.NewFromFloat(*b.SetupPremium)
	}

	manual := b.ManualEarlyStart != nil || b.ManualLateFinish != nil
	if manual && b.ArrivalTime != nil {
		return job, errors.Input("arrival_time and manual unsociable-hours minutes are mutually exclusive")
	}
	if manual {
		early, late := 0, 0
		if b.ManualEarlyStart != nil {
			early = *b.ManualEarlyStart
		}
		if b.ManualLateFinish != nil {
			late = *b.ManualLateFinish
		}
		job.OOH = types.ManualOOH(early, late)
	} else if b.ArrivalTime != nil {
		job.OOH = types.AutoOOH(*b.ArrivalTime)
	}

	return job, nil
}

func (b expenseBlock) toEntry() (types.ExpenseEntry, error) {
	var e types.ExpenseEntry

	switch types.ExpenseCategory(b.Category) {
	case types.CategoryFuel:
		// Fuel is auto-managed: the amount is always derived.
		e.Category = types.CategoryFuel
	case types.CategoryParking, types.CategoryTolls, types.CategoryTransportOut,
		types.CategoryTransportBack, types.CategoryHotel, types.CategoryPerDiem,
		types.CategoryOther:
		e.Category = types.ExpenseCategory(b.Category)
	default:
		return e, errors.Input("unknown expense category").WithContext("category", b.Category)
	}

	if e.Category == types.CategoryOther && (b.Description == nil || *b.Description == "") {
		return e, errors.Input("other expenses require a description")
	}

	if b.Amount != nil && e.Category != types.CategoryFuel {
		e.Amount = decimal.NewFromFloat(*b.Amount)
	}
	e.Included = true
	if b.Included != nil {
		e.Included = *b.Included
	}
	if b.Description != nil {
		e.Description = *b.Description
	}
	if b.PDDays != nil {
		e.PDDays = *b.PDDays
	}
	if b.Label != nil {
		e.Label = *b.Label
	}

	return e, nil
}
