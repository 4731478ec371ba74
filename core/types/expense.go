// Package types - Expense ledger types
package types

import "github.com/shopspring/decimal"

// ExpenseCategory is the closed set of expense kinds. CategoryOther is the
// one open-ended constructor: it may repeat and carries free text.
type ExpenseCategory string

const (
	CategoryFuel          ExpenseCategory = "fuel"
	CategoryParking       ExpenseCategory = "parking"
	CategoryTolls         ExpenseCategory = "tolls"
	CategoryTransportOut  ExpenseCategory = "transport_out"
	CategoryTransportBack ExpenseCategory = "transport_back"
	CategoryHotel         ExpenseCategory = "hotel"
	CategoryPerDiem       ExpenseCategory = "pd"
	CategoryOther         ExpenseCategory = "other"
)

// StandardCategories lists every fixed category in display order. Other is
// excluded: it only appears when entries exist for it.
var StandardCategories = []ExpenseCategory{
	CategoryFuel,
	CategoryParking,
	CategoryTolls,
	CategoryTransportOut,
	CategoryTransportBack,
	CategoryHotel,
	CategoryPerDiem,
}

// Label returns the human-readable name for a category
func (c ExpenseCategory) Label() string {
	switch c {
	case CategoryFuel:
		return "Fuel"
	case CategoryParking:
		return "Parking"
	case CategoryTolls:
		return "Tolls"
	case CategoryTransportOut:
		return "Transport out"
	case CategoryTransportBack:
		return "Transport back"
	case CategoryHotel:
		return "Hotel"
	case CategoryPerDiem:
		return "Per diem"
	case CategoryOther:
		return "Other"
	default:
		return string(c)
	}
}

// ExpenseEntry is one typed line in the expense ledger.
type ExpenseEntry struct {
	// Category is the expense kind
	Category ExpenseCategory `json:"category"`

	// Label overrides the category label when non-empty
	Label string `json:"label,omitempty"`

	// Amount is the flat amount, or the daily rate for per-diem entries
	Amount decimal.Decimal `json:"amount"`

	// Included says whether the entry counts toward the client's quote
	Included bool `json:"included"`

	// Description is free text, required semantically for other entries
	Description string `json:"description,omitempty"`

	// PDDays multiplies per-diem entries; ignored elsewhere
	PDDays int `json:"pd_days,omitempty"`
}

// Total returns the billable amount of the entry: the daily rate times the
// day count for per-diem entries, the flat amount otherwise.
func (e ExpenseEntry) Total() decimal.Decimal {
	if e.Category == CategoryPerDiem {
		days := e.PDDays
		if days < 1 {
			days = 1
		}
		return e.Amount.Mul(decimal.NewFromInt(int64(days)))
	}
	return e.Amount
}

// DisplayLabel returns the label to render for the entry
func (e ExpenseEntry) DisplayLabel() string {
	if e.Label != "" {
		return e.Label
	}
	return e.Category.Label()
}
