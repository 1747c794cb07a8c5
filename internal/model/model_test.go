package model

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRepairTotalCost(t *testing.T) {
	t.Parallel()

	r := Repair{
		WorkCost: decimal.NewFromInt(1000),
		Parts: []Part{
			{Quantity: 2, Cost: decimal.NewFromInt(150)},
		},
	}

	assert.True(t, decimal.NewFromInt(300).Equal(r.PartsCost()))
	assert.True(t, decimal.NewFromInt(1300).Equal(r.TotalCost()))
}

func TestLineTotalClampsQuantity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		quantity int
		want     int64
	}{
		{name: "positive", quantity: 3, want: 600},
		{name: "zero treated as one", quantity: 0, want: 200},
		{name: "negative treated as one", quantity: -4, want: 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := LineTotal(tt.quantity, decimal.NewFromInt(200))
			assert.True(t, decimal.NewFromInt(tt.want).Equal(got), got.String())
		})
	}
}

func TestRepairIsOilChange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		desc string
		want bool
	}{
		{desc: "Замена: масло и фильтр", want: true},
		{desc: "Замена масла и фильтра", want: false},
		{desc: "масло: сменил", want: true},
		{desc: "МАСЛО ЗАМЕНЕНО", want: true},
		{desc: "Долил масло", want: false},
		{desc: "Замена колодок", want: false},
		{desc: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Repair{WorkDescription: tt.desc}.IsOilChange())
		})
	}
}

func TestRepairPartsSummary(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "-", Repair{}.PartsSummary())

	r := Repair{Parts: []Part{
		{Name: "Filter", PartCode: "F-1", Quantity: 1},
		{Name: "Oil", PartCode: "5W30", Quantity: 4},
	}}
	assert.Equal(t, "Filter (F-1) x1, Oil (5W30) x4", r.PartsSummary())
}

func TestStockPartAsPartInput(t *testing.T) {
	t.Parallel()

	cost := decimal.NewFromInt(200)
	sp := StockPart{Name: "Pads", PartCode: "P-9", Manufacturer: "ATE", Quantity: 3, Cost: &cost}

	in := sp.AsPartInput()
	assert.Equal(t, "Pads", in.Name)
	assert.Equal(t, 3, in.Quantity)
	assert.True(t, cost.Equal(in.Cost))
	assert.True(t, decimal.NewFromInt(600).Equal(sp.LineTotal()))

	noCost := StockPart{Quantity: 0}
	assert.True(t, decimal.Zero.Equal(noCost.AsPartInput().Cost))
	assert.Equal(t, 1, noCost.AsPartInput().Quantity)
}

func TestCloneSharesNoPointers(t *testing.T) {
	t.Parallel()

	cost := decimal.NewFromInt(200)
	notes := "shelf 3"
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	sp := StockPart{ID: 1, Cost: &cost, Notes: &notes, PurchaseDate: &at, CreatedAt: &at}

	c := sp.Clone()
	*c.Cost = decimal.NewFromInt(999999)
	*c.Notes = "gone"
	*c.PurchaseDate = time.Time{}
	assert.True(t, decimal.NewFromInt(200).Equal(*sp.Cost))
	assert.Equal(t, "shelf 3", *sp.Notes)
	assert.Equal(t, at, *sp.PurchaseDate)
	assert.Equal(t, at, *sp.CreatedAt)

	r := Repair{ID: 2, CreatedAt: &at, Parts: []Part{{ID: 3, CreatedAt: &at}}}
	rc := r.Clone()
	*rc.Parts[0].CreatedAt = time.Time{}
	*rc.CreatedAt = time.Time{}
	rc.Parts[0].Name = "changed"
	assert.Equal(t, at, *r.Parts[0].CreatedAt)
	assert.Equal(t, at, *r.CreatedAt)
	assert.Empty(t, r.Parts[0].Name)

	assert.Nil(t, StockPart{}.Clone().Cost)
	assert.Nil(t, Repair{}.Clone().Parts)
}

func TestSelection(t *testing.T) {
	t.Parallel()

	var s Selection
	assert.True(t, s.Toggle(3))
	assert.True(t, s.Toggle(1))
	assert.True(t, s.Toggle(2))
	assert.False(t, s.Toggle(1))
	assert.Equal(t, []int64{3, 2}, s.IDs())

	s.Add(2, 5)
	assert.Equal(t, []int64{3, 2, 5}, s.IDs())
	assert.True(t, s.Contains(5))

	s.Retain(func(id int64) bool { return id != 3 })
	assert.Equal(t, []int64{2, 5}, s.IDs())

	s.Clear()
	assert.Zero(t, s.Len())
}

func TestConversionResultViews(t *testing.T) {
	t.Parallel()

	r := ConversionResult{Steps: []ConversionStep{
		{StockPartID: 1, Outcome: OutcomeConverted},
		{StockPartID: 2, Outcome: OutcomeCreatedNotRemoved},
		{StockPartID: 3, Outcome: OutcomeSkipped},
		{StockPartID: 4, Outcome: OutcomeFailed},
	}}

	assert.Equal(t, []int64{1}, r.Converted())
	assert.Equal(t, []int64{2}, r.NotRemoved())
	assert.Equal(t, []int64{3}, r.Skipped())
	assert.Equal(t, []int64{4}, r.Failed())
	assert.False(t, r.Complete(4))
}

func TestAPIErrorUnwrap(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status int
		want   error
	}{
		{status: 400, want: ErrValidation},
		{status: 401, want: ErrUnauthorized},
		{status: 403, want: ErrForbidden},
		{status: 404, want: ErrNotFound},
		{status: 502, want: ErrBadGateway},
	}

	for _, tt := range tests {
		err := fmt.Errorf("op: %w", &APIError{Status: tt.status, Message: "boom"})
		assert.ErrorIs(t, err, tt.want)
		assert.EqualError(t, err, "op: boom")
	}

	assert.NoError(t, (&APIError{Status: 409}).Unwrap())
}
