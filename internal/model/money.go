package model

import "github.com/shopspring/decimal"

// LineTotal is quantity × unit cost with quantity clamped to at least 1.
func LineTotal(quantity int, unitCost decimal.Decimal) decimal.Decimal {
	if quantity < 1 {
		quantity = 1
	}
	return unitCost.Mul(decimal.NewFromInt(int64(quantity)))
}
