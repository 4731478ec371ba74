// Package costing - Calculator scenario and invariant tests
package costing

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"

	"crewcost/core/types"
)

func testRates() types.RateSettings {
	r := types.DefaultRateSettings()
	r.AdminCostPerHour = decimal.Zero
	r.ExpenseMarkupPercent = decimal.NewFromInt(10)
	return r
}

// TestDayRateBaseline pins the canonical day-rate quote: £180/day with 10%
// markup and no expenses charges the client exactly £198.
func TestDayRateBaseline(t *testing.T) {
	rates := testRates()
	job := types.JobParameters{
		JobType:      types.JobCrewedWork,
		Mode:         types.ModeDayRate,
		NumberOfDays: 1,
	}

	res := Calculate(job, rates, nil)
	costs := res.Costs

	if !costs.FreelancerFeeRounded.Equal(decimal.NewFromInt(180)) {
		t.Errorf("FreelancerFeeRounded = %s, want 180", costs.FreelancerFeeRounded)
	}
	if !costs.ClientChargeLabour.Equal(decimal.RequireFromString("198.00")) {
		t.Errorf("ClientChargeLabour = %s, want 198.00", costs.ClientChargeLabour)
	}
	if !costs.ClientChargeTotalRounded.Equal(decimal.NewFromInt(198)) {
		t.Errorf("ClientChargeTotalRounded = %s, want 198", costs.ClientChargeTotalRounded)
	}
	if !costs.Margin.Equal(decimal.NewFromInt(18)) {
		t.Errorf("Margin = %s, want 18", costs.Margin)
	}
	if costs.EstimatedMinutes != 8*60 {
		t.Errorf("EstimatedMinutes = %d, want 480", costs.EstimatedMinutes)
	}
	if costs.OutOfHoursMinutes() != 0 {
		t.Errorf("day-rate jobs must report zero unsociable minutes, got %d", costs.OutOfHoursMinutes())
	}
}

// TestHourlySociableWindow covers the all-daytime scenario: arrival 09:00
// with a 60-minute drive departs at exactly 08:00 and everything is billed
// at the day rate.
func TestHourlySociableWindow(t *testing.T) {
	rates := testRates()
	job := types.JobParameters{
		JobType:          types.JobDelivery,
		Cargo:            types.CargoEquipment,
		DistanceMiles:    decimal.NewFromInt(30),
		DriveTimeMinutes: 60,
		Mode:             types.ModeHourly,
		OOH:              types.AutoOOH("09:00"),
	}

	res := Calculate(job, rates, nil)
	costs := res.Costs

	if costs.EstimatedMinutes != 140 {
		t.Fatalf("EstimatedMinutes = %d, want 140 (120 drive + 20 unload)", costs.EstimatedMinutes)
	}
	if costs.EarlyStartMinutes != 0 || costs.LateFinishMinutes != 0 {
		t.Errorf("unsociable minutes = %d/%d, want 0/0", costs.EarlyStartMinutes, costs.LateFinishMinutes)
	}
	if costs.DepartureTime != "08:00" {
		t.Errorf("DepartureTime = %q, want 08:00", costs.DepartureTime)
	}
	if costs.FinishTime != "10:20" {
		t.Errorf("FinishTime = %q, want 10:20", costs.FinishTime)
	}

	// 140 minutes at £15/h, nothing at the night rate.
	if !costs.FreelancerFee.Equal(decimal.RequireFromString("35.00")) {
		t.Errorf("FreelancerFee = %s, want 35.00", costs.FreelancerFee)
	}
	if !costs.FreelancerFeeRounded.Equal(decimal.NewFromInt(35)) {
		t.Errorf("FreelancerFeeRounded = %s, want 35", costs.FreelancerFeeRounded)
	}
}

// TestHourlyEarlyStart covers the out-of-hours scenario: arrival 07:00 with
// a 90-minute drive departs at 05:30, putting 150 minutes on the night rate.
func TestHourlyEarlyStart(t *testing.T) {
	rates := testRates()
	rates.UnloadTimeMinutes = 30

	job := types.JobParameters{
		JobType:          types.JobCrewedWork,
		DistanceMiles:    decimal.NewFromInt(40),
		DriveTimeMinutes: 90,
		WorkHours:        decimal.RequireFromString("1.5"),
		Mode:             types.ModeHourly,
		OOH:              types.AutoOOH("07:00"),
	}

	res := Calculate(job, rates, nil)
	costs := res.Costs

	if costs.EstimatedMinutes != 300 {
		t.Fatalf("EstimatedMinutes = %d, want 300 (180 drive + 30 unload + 90 work)", costs.EstimatedMinutes)
	}
	if costs.EarlyStartMinutes != 150 {
		t.Errorf("EarlyStartMinutes = %d, want 150", costs.EarlyStartMinutes)
	}
	if costs.LateFinishMinutes != 0 {
		t.Errorf("LateFinishMinutes = %d, want 0", costs.LateFinishMinutes)
	}
	if costs.DepartureTime != "05:30" {
		t.Errorf("DepartureTime = %q, want 05:30", costs.DepartureTime)
	}

	// 150 sociable minutes at £15/h plus 150 premium minutes at £20/h.
	if !costs.FreelancerFee.Equal(decimal.RequireFromString("87.50")) {
		t.Errorf("FreelancerFee = %s, want 87.50", costs.FreelancerFee)
	}
}

// TestManualOverride proves the manual variant is used verbatim and never
// merged with computed clock times.
func TestManualOverride(t *testing.T) {
	rates := testRates()
	job := types.JobParameters{
		JobType:          types.JobDelivery,
		Cargo:            types.CargoEquipment,
		DriveTimeMinutes: 60,
		Mode:             types.ModeHourly,
		OOH:              types.ManualOOH(30, 45),
	}

	costs := Calculate(job, rates, nil).Costs

	if costs.EarlyStartMinutes != 30 || costs.LateFinishMinutes != 45 {
		t.Errorf("manual minutes = %d/%d, want 30/45", costs.EarlyStartMinutes, costs.LateFinishMinutes)
	}
	if costs.DepartureTime != "" || costs.FinishTime != "" {
		t.Errorf("manual mode must not report computed clock times, got %q/%q", costs.DepartureTime, costs.FinishTime)
	}
}

// TestMinimumHoursFloor proves the pre-rounding fee never drops below the
// threshold when the flag is set and the job has any time at all.
func TestMinimumHoursFloor(t *testing.T) {
	rates := testRates()
	floor := rates.MinHoursThreshold.Mul(rates.HourlyRateFreelancerDay)

	for drive := 1; drive <= 120; drive += 13 {
		job := types.JobParameters{
			JobType:          types.JobDelivery,
			Cargo:            types.CargoEquipment,
			DriveTimeMinutes: drive,
			Mode:             types.ModeHourly,
			ApplyMinHours:    true,
		}
		costs := Calculate(job, rates, nil).Costs
		if costs.FreelancerFee.LessThan(floor) {
			t.Fatalf("drive %d: FreelancerFee %s below floor %s", drive, costs.FreelancerFee, floor)
		}
	}
}

// TestMinimumClientCharge proves tiny jobs are floored at the minimum.
func TestMinimumClientCharge(t *testing.T) {
	rates := testRates()
	rates.MinClientCharge = decimal.NewFromInt(50)

	job := types.JobParameters{
		JobType:          types.JobDelivery,
		Cargo:            types.CargoEquipment,
		DriveTimeMinutes: 5,
		Mode:             types.ModeHourly,
	}

	costs := Calculate(job, rates, nil).Costs
	if !costs.ClientChargeTotalRounded.Equal(decimal.NewFromInt(50)) {
		t.Errorf("ClientChargeTotalRounded = %s, want the £50 floor", costs.ClientChargeTotalRounded)
	}
}

// TestFuelMonotonicity proves a longer trip never cheapens fuel.
func TestFuelMonotonicity(t *testing.T) {
	rates := testRates()
	prevFuel := decimal.NewFromInt(-1)
	prevCharge := decimal.NewFromInt(-1)

	for miles := 0; miles <= 400; miles += 17 {
		job := types.JobParameters{
			JobType:          types.JobDelivery,
			Cargo:            types.CargoEquipment,
			DistanceMiles:    decimal.NewFromInt(int64(miles)),
			DriveTimeMinutes: 60,
			Mode:             types.ModeHourly,
		}
		costs := Calculate(job, rates, nil).Costs

		if costs.ExpectedFuelCost.LessThan(prevFuel) {
			t.Fatalf("miles %d: ExpectedFuelCost %s decreased from %s", miles, costs.ExpectedFuelCost, prevFuel)
		}
		if costs.ClientChargeFuel.LessThan(prevCharge) {
			t.Fatalf("miles %d: ClientChargeFuel %s decreased from %s", miles, costs.ClientChargeFuel, prevCharge)
		}
		prevFuel = costs.ExpectedFuelCost
		prevCharge = costs.ClientChargeFuel
	}
}

// TestIdempotence proves two runs over identical inputs serialize to
// byte-identical output.
func TestIdempotence(t *testing.T) {
	rates := types.DefaultRateSettings()
	job := types.JobParameters{
		JobType:          types.JobCollection,
		Cargo:            types.CargoVehicle,
		DistanceMiles:    decimal.NewFromInt(120),
		DriveTimeMinutes: 150,
		PublicTransport:  &types.TransportLeg{Minutes: 200, Cost: decimal.NewFromInt(45)},
		Mode:             types.ModeHourly,
		OOH:              types.AutoOOH("06:30"),
		ApplyMinHours:    true,
	}
	entries := []types.ExpenseEntry{
		{Category: types.CategoryParking, Amount: decimal.NewFromInt(12), Included: true},
		{Category: types.CategoryPerDiem, Amount: decimal.NewFromInt(25), Included: true, PDDays: 2},
		{Category: types.CategoryHotel, Amount: decimal.NewFromInt(80), Included: false},
	}

	first, err := json.Marshal(Calculate(job, rates, entries))
	if err != nil {
		t.Fatal(err)
	}
	second, err := json.Marshal(Calculate(job, rates, entries))
	if err != nil {
		t.Fatal(err)
	}
	if string(first) != string(second) {
		t.Error("identical inputs produced different output")
	}
}

// TestDayRateOverride proves the per-job rate replaces the settings rate
// and the setup premium lands before the £5 rounding.
func TestDayRateOverride(t *testing.T) {
	rates := testRates()
	override := decimal.NewFromInt(210)

	job := types.JobParameters{
		JobType:         types.JobDelivery,
		Cargo:           types.CargoEquipment,
		Mode:            types.ModeDayRate,
		NumberOfDays:    2,
		DayRateOverride: &override,
		SetupPremium:    decimal.NewFromInt(22),
	}

	costs := Calculate(job, rates, nil).Costs

	// 2 x 210 + 22 = 442, which rounds up to 445.
	if !costs.FreelancerFee.Equal(decimal.RequireFromString("442.00")) {
		t.Errorf("FreelancerFee = %s, want 442.00", costs.FreelancerFee)
	}
	if !costs.FreelancerFeeRounded.Equal(decimal.NewFromInt(445)) {
		t.Errorf("FreelancerFeeRounded = %s, want 445", costs.FreelancerFeeRounded)
	}
}

// TestExpenseCharging proves the included/excluded and markup accounting:
// excluded entries never reach the client, per-diem entries multiply by
// their day count, and excluded fuel zeroes the fuel charge only.
func TestExpenseCharging(t *testing.T) {
	rates := testRates()
	job := types.JobParameters{
		JobType:          types.JobDelivery,
		Cargo:            types.CargoEquipment,
		DistanceMiles:    decimal.NewFromInt(50),
		DriveTimeMinutes: 60,
		Mode:             types.ModeHourly,
	}
	entries := []types.ExpenseEntry{
		{Category: types.CategoryFuel, Included: false},
		{Category: types.CategoryParking, Amount: decimal.NewFromInt(10), Included: true},
		{Category: types.CategoryPerDiem, Amount: decimal.NewFromInt(20), Included: true, PDDays: 3},
		{Category: types.CategoryTolls, Amount: decimal.NewFromInt(6), Included: false},
	}

	costs := Calculate(job, rates, entries).Costs

	if !costs.ClientChargeFuel.IsZero() {
		t.Errorf("excluded fuel must not be charged, got %s", costs.ClientChargeFuel)
	}
	// Fuel is still estimated: 100 miles x 1.50 / 5 = 30.
	if !costs.ExpectedFuelCost.Equal(decimal.RequireFromString("30.00")) {
		t.Errorf("ExpectedFuelCost = %s, want 30.00", costs.ExpectedFuelCost)
	}
	// 10 parking + 20x3 per diem = 70 included, marked up 10% = 77.
	if !costs.ExpensesIncludedTotal.Equal(decimal.RequireFromString("70.00")) {
		t.Errorf("ExpensesIncludedTotal = %s, want 70.00", costs.ExpensesIncludedTotal)
	}
	if !costs.ClientChargeExpenses.Equal(decimal.RequireFromString("77.00")) {
		t.Errorf("ClientChargeExpenses = %s, want 77.00", costs.ClientChargeExpenses)
	}
	if !costs.ExpensesExcludedTotal.Equal(decimal.RequireFromString("6.00")) {
		t.Errorf("ExpensesExcludedTotal = %s, want 6.00", costs.ExpensesExcludedTotal)
	}
}

// TestVarianceWarning proves the advisory flag fires without touching the
// numbers.
func TestVarianceWarning(t *testing.T) {
	rates := testRates()
	job := types.JobParameters{
		JobType:          types.JobDelivery,
		Cargo:            types.CargoEquipment,
		DriveTimeMinutes: 30,
		Mode:             types.ModeHourly,
	}
	entries := []types.ExpenseEntry{
		{Category: types.CategoryHotel, Amount: decimal.NewFromInt(500), Included: true},
	}

	flagged := Calculate(job, rates, entries).Costs
	if len(flagged.Warnings) == 0 {
		t.Error("expected a variance warning for outsized expenses")
	}

	plain := Calculate(job, rates, nil).Costs
	if len(plain.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", plain.Warnings)
	}
}
