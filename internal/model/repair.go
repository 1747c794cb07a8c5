package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Repair struct {
	// Backend identifier.
	ID int64
	// Day the work was done; zero when the backend sent an unparsable date.
	Date time.Time
	// Odometer reading in km.
	Mileage int64
	// Free text of the work performed.
	WorkDescription string
	// Labour cost, never negative.
	WorkCost decimal.Decimal
	// Parts in server order.
	Parts []Part

	CreatedAt *time.Time
	UpdatedAt *time.Time
}

func (r Repair) PartsCost() decimal.Decimal {
	total := decimal.Zero
	for _, p := range r.Parts {
		total = total.Add(p.LineTotal())
	}
	return total
}

func (r Repair) TotalCost() decimal.Decimal {
	return r.WorkCost.Add(r.PartsCost())
}

// IsOilChange reports whether the description mentions oil ("масло") together with a
// change verb.
func (r Repair) IsOilChange() bool {
	desc := strings.ToLower(r.WorkDescription)
	if !strings.Contains(desc, "масло") {
		return false
	}
	return strings.Contains(desc, "замен") || strings.Contains(desc, "смен")
}

// PartsSummary renders parts as "name (code) xN, ..." or "-" when there are none.
func (r Repair) PartsSummary() string {
	if len(r.Parts) == 0 {
		return "-"
	}
	items := make([]string, len(r.Parts))
	for i, p := range r.Parts {
		items[i] = p.Summary()
	}
	return strings.Join(items, ", ")
}

func (r Repair) Clone() Repair {
	out := r
	if r.Parts != nil {
		out.Parts = make([]Part, len(r.Parts))
		for i := range r.Parts {
			out.Parts[i] = r.Parts[i].Clone()
		}
	}
	out.CreatedAt = clonePtr(r.CreatedAt)
	out.UpdatedAt = clonePtr(r.UpdatedAt)
	return out
}

type RepairInput struct {
	Date            time.Time
	Mileage         int64
	WorkDescription string
	WorkCost        decimal.Decimal
	// Stock parts the backend moves into the repair while saving it.
	StockPartIDs []int64
}
