package model

import "github.com/shopspring/decimal"

// Aggregates are the derived totals shown for a car. TotalPartsCost counts both parts
// installed in repairs and parts still in stock.
type Aggregates struct {
	TotalWorkCost  decimal.Decimal
	TotalPartsCost decimal.Decimal
}

func (a Aggregates) TotalCost() decimal.Decimal {
	return a.TotalWorkCost.Add(a.TotalPartsCost)
}
