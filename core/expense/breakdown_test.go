// Package expense - Breakdown formatter tests
package expense

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"crewcost/core/types"
)

func TestBreakdownSections(t *testing.T) {
	ledger := Normalize([]types.ExpenseEntry{
		{Category: types.CategoryParking, Amount: decimal.NewFromInt(10), Included: true},
		{Category: types.CategoryPerDiem, Amount: decimal.NewFromInt(25), Included: true, PDDays: 2},
		{Category: types.CategoryHotel, Amount: decimal.NewFromInt(80), Included: false},
		{Category: types.CategoryOther, Amount: decimal.NewFromInt(15), Included: true, Description: "congestion charge"},
	}, decimal.NewFromInt(36))

	text := Breakdown(ledger)

	incIdx := strings.Index(text, "Included:")
	excIdx := strings.Index(text, "Not included:")
	if incIdx < 0 || excIdx < 0 || excIdx < incIdx {
		t.Fatalf("expected Included before Not included, got:\n%s", text)
	}
	included, notIncluded := text[:excIdx], text[excIdx:]

	for _, want := range []string{
		"Parking: £10.00",
		"Per diem: £25.00 x 2 days = £50.00",
		"Other (congestion charge): £15.00",
		"Subtotal (excl. fuel): £75.00",
		"Fuel: £36.00",
	} {
		if !strings.Contains(included, want) {
			t.Errorf("included section missing %q:\n%s", want, included)
		}
	}

	if !strings.Contains(notIncluded, "Hotel: £80.00") {
		t.Errorf("not-included section missing hotel:\n%s", notIncluded)
	}
}

// TestBreakdownListsZeroCategories proves every standard category appears
// even when nothing was entered for it.
func TestBreakdownListsZeroCategories(t *testing.T) {
	text := Breakdown(Normalize(nil, decimal.Zero))

	for _, c := range types.StandardCategories {
		if !strings.Contains(text, c.Label()+":") {
			t.Errorf("breakdown missing zero-amount category %s:\n%s", c, text)
		}
	}
	if strings.Contains(text, "Other") {
		t.Error("other entries must be omitted when absent")
	}
}

// TestBreakdownExcludedFuel proves fuel moves to the not-included section
// with the fuel flag.
func TestBreakdownExcludedFuel(t *testing.T) {
	ledger := Normalize([]types.ExpenseEntry{
		{Category: types.CategoryFuel, Included: false},
	}, decimal.NewFromInt(24))

	text := Breakdown(ledger)
	excIdx := strings.Index(text, "Not included:")
	if !strings.Contains(text[excIdx:], "Fuel: £24.00") {
		t.Errorf("excluded fuel missing from not-included section:\n%s", text)
	}
	if strings.Contains(text[:excIdx], "Fuel: £24.00") {
		t.Errorf("excluded fuel leaked into included section:\n%s", text)
	}
}
