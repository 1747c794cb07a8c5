package converter

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Kevrnd/car-garage/internal/model"
)

func RepairsToModel(dtos []RepairDTO) []model.Repair {
	res := make([]model.Repair, len(dtos))
	for i := range dtos {
		res[i] = RepairToModel(dtos[i])
	}

	return res
}

func RepairToModel(d RepairDTO) model.Repair {
	var date time.Time
	if d.Date != nil {
		date, _ = ParseDate(*d.Date)
	}

	return model.Repair{
		ID:              d.ID,
		Date:            date,
		Mileage:         nonNegativeInt(d.Mileage),
		WorkDescription: deref(d.WorkDescription),
		WorkCost:        Money(d.WorkCost),
		Parts:           PartsToModel(d.Parts),
		CreatedAt:       timestampPtr(d.CreatedAt),
		UpdatedAt:       timestampPtr(d.UpdatedAt),
	}
}

func PartsToModel(dtos []PartDTO) []model.Part {
	res := make([]model.Part, len(dtos))
	for i := range dtos {
		res[i] = PartToModel(dtos[i])
	}

	return res
}

func PartToModel(d PartDTO) model.Part {
	return model.Part{
		ID:           d.ID,
		Name:         d.Name,
		PartCode:     d.PartCode,
		Manufacturer: deref(d.Manufacturer),
		Quantity:     Quantity(d.Quantity),
		Cost:         Money(d.Cost),
		CreatedAt:    timestampPtr(d.CreatedAt),
	}
}

func StockPartsToModel(dtos []StockPartDTO) []model.StockPart {
	res := make([]model.StockPart, len(dtos))
	for i := range dtos {
		res[i] = StockPartToModel(dtos[i])
	}

	return res
}

func StockPartToModel(d StockPartDTO) model.StockPart {
	return model.StockPart{
		ID:           d.ID,
		Name:         d.Name,
		PartCode:     d.PartCode,
		Manufacturer: deref(d.Manufacturer),
		Quantity:     Quantity(d.Quantity),
		Cost:         NullableMoney(d.Cost),
		PurchaseDate: datePtr(d.PurchaseDate),
		Notes:        d.Notes,
		CreatedAt:    timestampPtr(d.CreatedAt),
	}
}

func CarsToModel(dtos []CarDTO) []model.Car {
	res := make([]model.Car, len(dtos))
	for i := range dtos {
		res[i] = CarToModel(dtos[i])
	}

	return res
}

func CarToModel(d CarDTO) model.Car {
	return model.Car{
		ID:        d.ID,
		Brand:     d.Brand,
		Model:     d.Model,
		VIN:       d.VIN,
		Year:      d.Year,
		Power:     d.Power,
		TireFront: d.TireFront,
		TireRear:  d.TireRear,
		Wipers:    d.Wipers,
		Notes:     d.Notes,
		CreatedAt: timestampPtr(d.CreatedAt),
		UpdatedAt: timestampPtr(d.UpdatedAt),
	}
}

// CarToRequest trims every text field; blank optional ones are sent as null.
func CarToRequest(in model.CarInput) CarRequest {
	return CarRequest{
		Brand:     strings.TrimSpace(in.Brand),
		Model:     strings.TrimSpace(in.Model),
		VIN:       strings.TrimSpace(in.VIN),
		Year:      in.Year,
		Power:     in.Power,
		TireFront: blankToNil(in.TireFront),
		TireRear:  blankToNil(in.TireRear),
		Wipers:    blankToNil(in.Wipers),
		Notes:     blankToNil(in.Notes),
	}
}

func RepairToRequest(in model.RepairInput) RepairRequest {
	return RepairRequest{
		Date:            FormatDate(in.Date),
		Mileage:         max(in.Mileage, 0),
		WorkDescription: strings.TrimSpace(in.WorkDescription),
		WorkCost:        nonNegative(in.WorkCost),
		StockPartIDs:    append([]int64(nil), in.StockPartIDs...),
	}
}

func PartToRequest(in model.PartInput) PartRequest {
	return PartRequest{
		Name:         strings.TrimSpace(in.Name),
		PartCode:     strings.TrimSpace(in.PartCode),
		Manufacturer: strings.TrimSpace(in.Manufacturer),
		Quantity:     NormalizeQuantity(in.Quantity),
		Cost:         nonNegative(in.Cost),
	}
}

func StockPartToRequest(in model.StockPartInput) StockPartRequest {
	req := StockPartRequest{
		Name:         strings.TrimSpace(in.Name),
		PartCode:     strings.TrimSpace(in.PartCode),
		Manufacturer: strings.TrimSpace(in.Manufacturer),
		Quantity:     NormalizeQuantity(in.Quantity),
		Notes:        in.Notes,
	}
	if in.Cost != nil {
		c := nonNegative(*in.Cost)
		req.Cost = &c
	}
	if in.PurchaseDate != nil {
		s := FormatDate(*in.PurchaseDate)
		req.PurchaseDate = &s
	}

	return req
}

func blankToNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
