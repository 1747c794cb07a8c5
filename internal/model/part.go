package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type Part struct {
	ID           int64
	Name         string
	PartCode     string
	Manufacturer string
	// Always at least 1.
	Quantity int
	// Unit cost, never negative.
	Cost      decimal.Decimal
	CreatedAt *time.Time
}

func (p Part) LineTotal() decimal.Decimal {
	return LineTotal(p.Quantity, p.Cost)
}

func (p Part) Clone() Part {
	out := p
	out.CreatedAt = clonePtr(p.CreatedAt)
	return out
}

func (p Part) Summary() string {
	q := p.Quantity
	if q < 1 {
		q = 1
	}
	return fmt.Sprintf("%s (%s) x%d", p.Name, p.PartCode, q)
}

type PartInput struct {
	Name         string
	PartCode     string
	Manufacturer string
	Quantity     int
	Cost         decimal.Decimal
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
