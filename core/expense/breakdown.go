// Package expense - Breakdown formatter
package expense

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"crewcost/core/types"
)

// Breakdown renders the ledger as the two-section text block stored with
// the quote. Every standard category appears even at zero; other entries
// appear only when present. The included section carries a subtotal
// excluding fuel, with the fuel line added after it.
func Breakdown(entries []types.ExpenseEntry) string {
	var b strings.Builder

	b.WriteString("Included:\n")
	writeSection(&b, entries, true)

	b.WriteString("\nNot included:\n")
	writeSection(&b, entries, false)

	return b.String()
}

func writeSection(b *strings.Builder, entries []types.ExpenseEntry, included bool) {
	var fuel *types.ExpenseEntry
	wrote := false

	for i := range entries {
		e := entries[i]
		if e.Included != included {
			continue
		}
		if e.Category == types.CategoryFuel {
			fuel = &entries[i]
			continue
		}
		b.WriteString(formatLine(e))
		wrote = true
	}

	if included {
		subtotal := IncludedTotal(entries)
		fmt.Fprintf(b, "  Subtotal (excl. fuel): %s\n", money(subtotal))
		if fuel != nil {
			fmt.Fprintf(b, "  Fuel: %s\n", money(fuel.Amount))
		}
		return
	}

	if fuel != nil {
		fmt.Fprintf(b, "  Fuel: %s\n", money(fuel.Amount))
		wrote = true
	}
	if !wrote {
		b.WriteString("  (none)\n")
	}
}

func formatLine(e types.ExpenseEntry) string {
	switch e.Category {
	case types.CategoryPerDiem:
		days := e.PDDays
		if days < 1 {
			days = 1
		}
		return fmt.Sprintf("  %s: %s x %d days = %s\n", e.DisplayLabel(), money(e.Amount), days, money(e.Total()))
	case types.CategoryOther:
		label := e.DisplayLabel()
		if e.Description != "" {
			label = fmt.Sprintf("%s (%s)", label, e.Description)
		}
		return fmt.Sprintf("  %s: %s\n", label, money(e.Amount))
	default:
		return fmt.Sprintf("  %s: %s\n", e.DisplayLabel(), money(e.Amount))
	}
}

func money(d decimal.Decimal) string {
	return "£" + d.StringFixed(2)
}
