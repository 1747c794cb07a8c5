package model

import "time"

type Car struct {
	ID        int64
	Brand     string
	Model     string
	VIN       string
	Year      *int
	Power     *int
	TireFront *string
	TireRear  *string
	Wipers    *string
	Notes     *string
	CreatedAt *time.Time
	UpdatedAt *time.Time
}

func (c Car) Title() string { return c.Brand + " " + c.Model }

// CarInput carries the editable fields of a car. Brand, Model and VIN are required.
type CarInput struct {
	Brand     string
	Model     string
	VIN       string
	Year      *int
	Power     *int
	TireFront *string
	TireRear  *string
	Wipers    *string
	Notes     *string
}
