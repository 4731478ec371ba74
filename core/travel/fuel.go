// Package travel turns a job's journey description into mileage, travel
// time, and an expected fuel cost.
package travel

import (
	"github.com/shopspring/decimal"

	"crewcost/core/types"
)

var two = decimal.NewFromInt(2)
var five = decimal.NewFromInt(5)

// ThereAndBack reports whether the journey is a round trip. Every
// non-vehicle job drives out and back; a vehicle job only returns when a
// return collection is booked alongside it.
func ThereAndBack(job types.JobParameters) bool {
	if !job.IsVehicle() {
		return true
	}
	return job.ReturnBooked
}

// TotalMiles returns the billable mileage for the journey.
func TotalMiles(job types.JobParameters) decimal.Decimal {
	if ThereAndBack(job) {
		return job.DistanceMiles.Mul(two)
	}
	return job.DistanceMiles
}

// FuelCost converts mileage into a fuel cost using the fixed
// price-per-5-miles heuristic: miles x price / 5. The heuristic is a
// business rule the quotes depend on, kept exactly as agreed.
func FuelCost(totalMiles, fuelPricePerLitre decimal.Decimal) decimal.Decimal {
	return totalMiles.Mul(fuelPricePerLitre).Div(five)
}

// ExpectedFuelCost is the fuel cost for the whole journey.
func ExpectedFuelCost(job types.JobParameters, rates types.RateSettings) decimal.Decimal {
	return FuelCost(TotalMiles(job), rates.FuelPricePerLitre)
}

// Minutes returns the total travel time for the journey: both drive legs
// for a round trip, or the single driven leg plus the public-transport leg
// for a one-way vehicle job.
func Minutes(job types.JobParameters) int {
	if ThereAndBack(job) {
		return job.DriveTimeMinutes * 2
	}
	m := job.DriveTimeMinutes
	if job.PublicTransport != nil {
		m += job.PublicTransport.Minutes
	}
	return m
}
