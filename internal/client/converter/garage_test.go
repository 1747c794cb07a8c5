package converter

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kevrnd/car-garage/internal/model"
)

func TestMoney(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "drf string", raw: `"150.00"`, want: "150"},
		{name: "number", raw: `99.5`, want: "99.5"},
		{name: "null", raw: `null`, want: "0"},
		{name: "missing", raw: ``, want: "0"},
		{name: "garbage", raw: `"abc"`, want: "0"},
		{name: "negative", raw: `"-10"`, want: "0"},
		{name: "bool", raw: `true`, want: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Money(json.RawMessage(tt.raw))
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestNullableMoney(t *testing.T) {
	t.Parallel()

	assert.Nil(t, NullableMoney(json.RawMessage(`null`)))
	assert.Nil(t, NullableMoney(json.RawMessage(`"  "`)))

	got := NullableMoney(json.RawMessage(`"12.30"`))
	require.NotNil(t, got)
	assert.Equal(t, "12.3", got.String())
}

func TestQuantity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want int
	}{
		{raw: `3`, want: 3},
		{raw: `"4"`, want: 4},
		{raw: `2.9`, want: 2},
		{raw: `0`, want: 1},
		{raw: `-5`, want: 1},
		{raw: `null`, want: 1},
		{raw: `"x"`, want: 1},
		{raw: `2147483647`, want: 2147483647},
		{raw: `2147483648`, want: 1},
		{raw: `"25000000000000000000"`, want: 1},
		{raw: `36893488147419103237`, want: 1},
		{raw: `1e30`, want: 1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Quantity(json.RawMessage(tt.raw)), tt.raw)
	}
}

func TestNonNegativeInt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want int64
	}{
		{raw: `120000`, want: 120000},
		{raw: `"5000.7"`, want: 5000},
		{raw: `-1`, want: 0},
		{raw: `null`, want: 0},
		{raw: `"25000000000000000000"`, want: 0},
		{raw: `36893488147419103237`, want: 0},
		{raw: `1e30`, want: 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, nonNegativeInt(json.RawMessage(tt.raw)), tt.raw)
	}
}

func TestRepairToModelHugeMileage(t *testing.T) {
	t.Parallel()

	var dto RepairDTO
	require.NoError(t, json.Unmarshal([]byte(`{
		"id": 1, "date": "2024-01-01", "mileage": 36893488147419103237,
		"work_description": "ТО", "work_cost": "10",
		"parts": [{"id": 2, "name": "Фильтр", "quantity": 1e30, "cost": "5"}]
	}`), &dto))

	r := RepairToModel(dto)
	assert.Zero(t, r.Mileage)
	require.Len(t, r.Parts, 1)
	assert.Equal(t, 1, r.Parts[0].Quantity)
	assert.Equal(t, "15.00", r.TotalCost().StringFixed(2))
}

func TestParseDate(t *testing.T) {
	t.Parallel()

	d, ok := ParseDate("2024-03-15")
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), d)

	d, ok = ParseDate("2024-03-15T22:10:00+03:00")
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), d)

	_, ok = ParseDate("15.03.2024")
	assert.False(t, ok)
}

func TestRepairToModel(t *testing.T) {
	t.Parallel()

	var dto RepairDTO
	payload := `{
		"id": 7,
		"date": "2024-05-01",
		"mileage": 120000,
		"work_description": "Замена масла",
		"work_cost": "1000.00",
		"parts": [
			{"id": 1, "name": "Фильтр", "part_code": "F-1", "manufacturer": "Mann", "quantity": 2, "cost": "150.00"},
			{"id": 2, "name": "Масло", "part_code": "O-5", "manufacturer": null, "quantity": null, "cost": null}
		],
		"created_at": "2024-05-01T10:00:00.123456Z"
	}`
	require.NoError(t, json.Unmarshal([]byte(payload), &dto))

	r := RepairToModel(dto)
	assert.Equal(t, int64(7), r.ID)
	assert.Equal(t, int64(120000), r.Mileage)
	assert.True(t, r.WorkCost.Equal(decimal.NewFromInt(1000)))
	require.Len(t, r.Parts, 2)
	assert.Equal(t, 2, r.Parts[0].Quantity)
	assert.Equal(t, 1, r.Parts[1].Quantity)
	assert.True(t, r.Parts[1].Cost.IsZero())
	assert.Empty(t, r.Parts[1].Manufacturer)
	assert.True(t, r.TotalCost().Equal(decimal.NewFromInt(1300)))
	require.NotNil(t, r.CreatedAt)
	assert.Nil(t, r.UpdatedAt)
}

func TestRepairToModelBadDate(t *testing.T) {
	t.Parallel()

	bad := "not-a-date"
	r := RepairToModel(RepairDTO{ID: 1, Date: &bad})
	assert.True(t, r.Date.IsZero())
	assert.Empty(t, r.Parts)
	assert.NotNil(t, r.Parts)
}

func TestStockPartToModel(t *testing.T) {
	t.Parallel()

	var dto StockPartDTO
	require.NoError(t, json.Unmarshal([]byte(`{"id": 3, "name": "Колодки", "part_code": "B-1",
		"manufacturer": "TRW", "quantity": "3", "cost": "200", "purchase_date": "2024-01-10", "notes": null}`), &dto))

	s := StockPartToModel(dto)
	assert.Equal(t, 3, s.Quantity)
	require.NotNil(t, s.Cost)
	assert.True(t, s.LineTotal().Equal(decimal.NewFromInt(600)))
	require.NotNil(t, s.PurchaseDate)
	assert.Equal(t, "2024-01-10", FormatDate(*s.PurchaseDate))
	assert.Nil(t, s.Notes)

	noCost := StockPartToModel(StockPartDTO{ID: 4, Cost: json.RawMessage(`null`)})
	assert.Nil(t, noCost.Cost)
	assert.True(t, noCost.LineTotal().IsZero())
}

func TestRequests(t *testing.T) {
	t.Parallel()

	name := gofakeit.ProductName()
	part := PartToRequest(model.PartInput{
		Name:     "  " + name + " ",
		PartCode: "X-1",
		Quantity: 0,
		Cost:     decimal.NewFromInt(-3),
	})
	assert.Equal(t, name, part.Name)
	assert.Equal(t, 1, part.Quantity)
	assert.True(t, part.Cost.IsZero())

	repair := RepairToRequest(model.RepairInput{
		Date:         time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
		Mileage:      1000,
		WorkCost:     decimal.RequireFromString("250.50"),
		StockPartIDs: []int64{5, 6},
	})
	body, err := json.Marshal(repair)
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"2024-02-29","mileage":1000,"work_description":"","work_cost":"250.5","stock_part_ids":[5,6]}`, string(body))

	stock := StockPartToRequest(model.StockPartInput{Name: "Свеча", PartCode: "S-1", Quantity: 4})
	body, err = json.Marshal(stock)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Свеча","part_code":"S-1","manufacturer":"","quantity":4,"cost":null,"purchase_date":null,"notes":null}`, string(body))
}

func TestCarToRequest(t *testing.T) {
	t.Parallel()

	year := 2019
	blank := "   "
	wipers := " 600/400 "
	car := CarToRequest(model.CarInput{
		Brand:    " Lada ",
		Model:    "Vesta",
		VIN:      "XTA00000000000001 ",
		Year:     &year,
		TireRear: &blank,
		Wipers:   &wipers,
	})
	body, err := json.Marshal(car)
	require.NoError(t, err)
	assert.JSONEq(t, `{"brand":"Lada","model":"Vesta","vin":"XTA00000000000001","year":2019,"power":null,
		"tire_front":null,"tire_rear":null,"wipers":"600/400","notes":null}`, string(body))
}
