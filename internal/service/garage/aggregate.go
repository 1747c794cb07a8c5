package garage

import (
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/Kevrnd/car-garage/internal/model"
)

// ComputeAggregates derives the car totals. Parts still in stock count towards the parts
// total together with parts installed in repairs.
func ComputeAggregates(repairs []model.Repair, stock []model.StockPart) model.Aggregates {
	work := lo.Reduce(repairs, func(acc decimal.Decimal, r model.Repair, _ int) decimal.Decimal {
		return acc.Add(r.WorkCost)
	}, decimal.Zero)

	installed := lo.Reduce(repairs, func(acc decimal.Decimal, r model.Repair, _ int) decimal.Decimal {
		return acc.Add(r.PartsCost())
	}, decimal.Zero)

	stocked := lo.Reduce(stock, func(acc decimal.Decimal, sp model.StockPart, _ int) decimal.Decimal {
		return acc.Add(sp.LineTotal())
	}, decimal.Zero)

	return model.Aggregates{
		TotalWorkCost:  work,
		TotalPartsCost: installed.Add(stocked),
	}
}
