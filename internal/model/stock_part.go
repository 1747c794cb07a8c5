package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockPart is a purchased part sitting in the warehouse, not yet installed.
type StockPart struct {
	ID           int64
	Name         string
	PartCode     string
	Manufacturer string
	Quantity     int
	// nil when the backend stores no price.
	Cost         *decimal.Decimal
	PurchaseDate *time.Time
	Notes        *string
	CreatedAt    *time.Time
}

func (s StockPart) UnitCost() decimal.Decimal {
	if s.Cost == nil {
		return decimal.Zero
	}
	return *s.Cost
}

func (s StockPart) LineTotal() decimal.Decimal {
	return LineTotal(s.Quantity, s.UnitCost())
}

// Clone returns a copy that shares no pointers with s.
func (s StockPart) Clone() StockPart {
	out := s
	out.Cost = clonePtr(s.Cost)
	out.PurchaseDate = clonePtr(s.PurchaseDate)
	out.Notes = clonePtr(s.Notes)
	out.CreatedAt = clonePtr(s.CreatedAt)
	return out
}

// AsPartInput copies the fields that survive conversion into a repair part.
func (s StockPart) AsPartInput() PartInput {
	q := s.Quantity
	if q < 1 {
		q = 1
	}
	return PartInput{
		Name:         s.Name,
		PartCode:     s.PartCode,
		Manufacturer: s.Manufacturer,
		Quantity:     q,
		Cost:         s.UnitCost(),
	}
}

type StockPartInput struct {
	Name         string
	PartCode     string
	Manufacturer string
	Quantity     int
	Cost         *decimal.Decimal
	PurchaseDate *time.Time
	Notes        *string
}
