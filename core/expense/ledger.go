// Package expense manages the typed expense ledger attached to a quote:
// normalization, included/excluded accounting, and the human-readable
// breakdown stored alongside the quote.
package expense

import (
	"github.com/shopspring/decimal"

	"crewcost/core/types"
)

// Normalize returns a ledger ready for costing. Exactly one fuel entry
// exists afterwards and its amount is always the derived fuel cost, never a
// user-entered figure. Missing standard categories are filled in as
// zero-amount included entries so the quote stays self-documenting. Caller
// order is preserved for entries that already exist.
func Normalize(entries []types.ExpenseEntry, fuelCost decimal.Decimal) []types.ExpenseEntry {
	out := make([]types.ExpenseEntry, 0, len(entries)+len(types.StandardCategories))
	seen := make(map[types.ExpenseCategory]bool)

	for _, e := range entries {
		if e.Category == types.CategoryFuel {
			if seen[types.CategoryFuel] {
				continue // only the first fuel entry survives
			}
			e.Amount = fuelCost
		}
		if e.Category != types.CategoryOther {
			seen[e.Category] = true
		}
		out = append(out, e)
	}

	for _, c := range types.StandardCategories {
		if seen[c] {
			continue
		}
		e := types.ExpenseEntry{Category: c, Amount: decimal.Zero, Included: true}
		if c == types.CategoryFuel {
			e.Amount = fuelCost
		}
		out = append(out, e)
	}

	return out
}

// FuelEntry returns the ledger's fuel entry. The second result is false
// only for a ledger that was never normalized.
func FuelEntry(entries []types.ExpenseEntry) (types.ExpenseEntry, bool) {
	for _, e := range entries {
		if e.Category == types.CategoryFuel {
			return e, true
		}
	}
	return types.ExpenseEntry{}, false
}

// FuelIncluded reports whether the fuel entry counts toward the quote.
func FuelIncluded(entries []types.ExpenseEntry) bool {
	e, ok := FuelEntry(entries)
	return ok && e.Included
}

// IncludedTotal sums every included entry except fuel, per-diem entries
// multiplied by their day count.
func IncludedTotal(entries []types.ExpenseEntry) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		if e.Category == types.CategoryFuel || !e.Included {
			continue
		}
		total = total.Add(e.Total())
	}
	return total
}

// ExcludedTotal sums every excluded entry except fuel.
func ExcludedTotal(entries []types.ExpenseEntry) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		if e.Category == types.CategoryFuel || e.Included {
			continue
		}
		total = total.Add(e.Total())
	}
	return total
}
