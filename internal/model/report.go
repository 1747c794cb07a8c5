package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type ReportRow struct {
	RepairID        int64
	Date            time.Time
	Mileage         int64
	WorkDescription string
	Parts           string
	WorkCost        decimal.Decimal
	PartsCost       decimal.Decimal
	TotalCost       decimal.Decimal
}

type Report struct {
	From           time.Time
	To             time.Time
	Rows           []ReportRow
	TotalWorkCost  decimal.Decimal
	TotalPartsCost decimal.Decimal
	TotalCost      decimal.Decimal
	RecordsCount   int
}

// ExportedReport is a spreadsheet produced by the backend.
type ExportedReport struct {
	Filename    string
	ContentType string
	Data        []byte
}
