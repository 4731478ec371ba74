// Package expense - Ledger tests
package expense

import (
	"testing"

	"github.com/shopspring/decimal"

	"crewcost/core/types"
)

// TestNormalizeFuelInvariant proves exactly one fuel entry survives and its
// amount is always the derived cost, never a user-entered figure.
func TestNormalizeFuelInvariant(t *testing.T) {
	fuelCost := decimal.NewFromInt(36)

	cases := [][]types.ExpenseEntry{
		nil,
		{{Category: types.CategoryFuel, Amount: decimal.NewFromInt(999), Included: false}},
		{
			{Category: types.CategoryFuel, Amount: decimal.NewFromInt(1), Included: true},
			{Category: types.CategoryFuel, Amount: decimal.NewFromInt(2), Included: true},
		},
	}

	for i, entries := range cases {
		ledger := Normalize(entries, fuelCost)

		count := 0
		for _, e := range ledger {
			if e.Category == types.CategoryFuel {
				count++
				if !e.Amount.Equal(fuelCost) {
					t.Errorf("case %d: fuel amount = %s, want derived %s", i, e.Amount, fuelCost)
				}
			}
		}
		if count != 1 {
			t.Errorf("case %d: %d fuel entries, want exactly 1", i, count)
		}
	}
}

// TestNormalizeKeepsFuelFlag proves the operator's included/excluded choice
// survives normalization even though the amount is overwritten.
func TestNormalizeKeepsFuelFlag(t *testing.T) {
	ledger := Normalize([]types.ExpenseEntry{
		{Category: types.CategoryFuel, Amount: decimal.NewFromInt(999), Included: false},
	}, decimal.NewFromInt(20))

	if FuelIncluded(ledger) {
		t.Error("excluded fuel entry became included during normalization")
	}
}

// TestNormalizeFillsStandardCategories proves every standard category is
// present afterwards so the breakdown stays self-documenting.
func TestNormalizeFillsStandardCategories(t *testing.T) {
	ledger := Normalize(nil, decimal.Zero)

	seen := make(map[types.ExpenseCategory]bool)
	for _, e := range ledger {
		seen[e.Category] = true
	}
	for _, c := range types.StandardCategories {
		if !seen[c] {
			t.Errorf("category %s missing after normalization", c)
		}
	}
}

func TestTotals(t *testing.T) {
	ledger := Normalize([]types.ExpenseEntry{
		{Category: types.CategoryParking, Amount: decimal.NewFromInt(10), Included: true},
		{Category: types.CategoryPerDiem, Amount: decimal.NewFromInt(25), Included: true, PDDays: 2},
		{Category: types.CategoryHotel, Amount: decimal.NewFromInt(80), Included: false},
		{Category: types.CategoryOther, Amount: decimal.NewFromInt(15), Included: false, Description: "congestion charge"},
	}, decimal.NewFromInt(30))

	if got := IncludedTotal(ledger); !got.Equal(decimal.NewFromInt(60)) {
		t.Errorf("IncludedTotal = %s, want 60 (fuel never counted)", got)
	}
	if got := ExcludedTotal(ledger); !got.Equal(decimal.NewFromInt(95)) {
		t.Errorf("ExcludedTotal = %s, want 95", got)
	}
}

func TestEntryTotal(t *testing.T) {
	pd := types.ExpenseEntry{Category: types.CategoryPerDiem, Amount: decimal.NewFromInt(25), PDDays: 3}
	if got := pd.Total(); !got.Equal(decimal.NewFromInt(75)) {
		t.Errorf("per-diem Total = %s, want 75", got)
	}

	flat := types.ExpenseEntry{Category: types.CategoryParking, Amount: decimal.NewFromInt(12), PDDays: 3}
	if got := flat.Total(); !got.Equal(decimal.NewFromInt(12)) {
		t.Errorf("flat Total = %s, want 12 (day count ignored)", got)
	}
}
