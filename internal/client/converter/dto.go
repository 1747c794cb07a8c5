package converter

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Wire shapes of the garage REST API. Numeric fields the backend may send as strings,
// numbers or null are kept raw and coerced in this package only.

type PartDTO struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	PartCode     string          `json:"part_code"`
	Manufacturer *string         `json:"manufacturer"`
	Quantity     json.RawMessage `json:"quantity"`
	Cost         json.RawMessage `json:"cost"`
	CreatedAt    *string         `json:"created_at,omitempty"`
}

type RepairDTO struct {
	ID              int64           `json:"id"`
	Date            *string         `json:"date"`
	Mileage         json.RawMessage `json:"mileage"`
	WorkDescription *string         `json:"work_description"`
	WorkCost        json.RawMessage `json:"work_cost"`
	Parts           []PartDTO       `json:"parts"`
	CreatedAt       *string         `json:"created_at,omitempty"`
	UpdatedAt       *string         `json:"updated_at,omitempty"`
}

type StockPartDTO struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	PartCode     string          `json:"part_code"`
	Manufacturer *string         `json:"manufacturer"`
	Quantity     json.RawMessage `json:"quantity"`
	Cost         json.RawMessage `json:"cost"`
	PurchaseDate *string         `json:"purchase_date"`
	Notes        *string         `json:"notes"`
	CreatedAt    *string         `json:"created_at,omitempty"`
}

type CarDTO struct {
	ID        int64   `json:"id"`
	Brand     string  `json:"brand"`
	Model     string  `json:"model"`
	VIN       string  `json:"vin"`
	Year      *int    `json:"year"`
	Power     *int    `json:"power"`
	TireFront *string `json:"tire_front"`
	TireRear  *string `json:"tire_rear"`
	Wipers    *string `json:"wipers"`
	Notes     *string `json:"notes"`
	CreatedAt *string `json:"created_at,omitempty"`
	UpdatedAt *string `json:"updated_at,omitempty"`
}

type CarRequest struct {
	Brand     string  `json:"brand"`
	Model     string  `json:"model"`
	VIN       string  `json:"vin"`
	Year      *int    `json:"year"`
	Power     *int    `json:"power"`
	TireFront *string `json:"tire_front"`
	TireRear  *string `json:"tire_rear"`
	Wipers    *string `json:"wipers"`
	Notes     *string `json:"notes"`
}

type RepairRequest struct {
	Date            string          `json:"date"`
	Mileage         int64           `json:"mileage"`
	WorkDescription string          `json:"work_description"`
	WorkCost        decimal.Decimal `json:"work_cost"`
	StockPartIDs    []int64         `json:"stock_part_ids,omitempty"`
}

type PartRequest struct {
	Name         string          `json:"name"`
	PartCode     string          `json:"part_code"`
	Manufacturer string          `json:"manufacturer"`
	Quantity     int             `json:"quantity"`
	Cost         decimal.Decimal `json:"cost"`
}

type StockPartRequest struct {
	Name         string           `json:"name"`
	PartCode     string           `json:"part_code"`
	Manufacturer string           `json:"manufacturer"`
	Quantity     int              `json:"quantity"`
	Cost         *decimal.Decimal `json:"cost"`
	PurchaseDate *string          `json:"purchase_date"`
	Notes        *string          `json:"notes"`
}
