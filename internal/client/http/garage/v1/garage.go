package garageclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Kevrnd/car-garage/internal/client/converter"
	"github.com/Kevrnd/car-garage/internal/model"
)

const (
	resourceCars    = "cars"
	resourceRepairs = "repairs"
	resourceParts   = "parts"
	resourceStock   = "stock"
	resourceExport  = "export-report"
	resourceLogin   = "login"
)

func carsPath() string { return "api/cars/" }

func carPath(carID int64) string { return fmt.Sprintf("api/cars/%d/", carID) }

func repairsPath(carID int64) string { return carPath(carID) + "repairs/" }

func repairPath(carID, id int64) string { return fmt.Sprintf("%s%d/", repairsPath(carID), id) }

func partsPath(carID, repairID int64) string { return repairPath(carID, repairID) + "parts/" }

func partPath(carID, repairID, id int64) string {
	return fmt.Sprintf("%s%d/", partsPath(carID, repairID), id)
}

func stockPath(carID int64) string { return carPath(carID) + "stock/" }

func stockPartPath(carID, id int64) string { return fmt.Sprintf("%s%d/", stockPath(carID), id) }

func (c *client) ListCars(ctx context.Context) ([]model.Car, error) {
	var dtos []converter.CarDTO
	if err := c.doJSON(ctx, http.MethodGet, resourceCars, carsPath(), nil, &dtos); err != nil {
		return nil, err
	}

	return converter.CarsToModel(dtos), nil
}

func (c *client) Car(ctx context.Context, carID int64) (model.Car, error) {
	var dto converter.CarDTO
	if err := c.doJSON(ctx, http.MethodGet, resourceCars, carPath(carID), nil, &dto); err != nil {
		return model.Car{}, err
	}

	return converter.CarToModel(dto), nil
}

func (c *client) CreateCar(ctx context.Context, in model.CarInput) (model.Car, error) {
	var dto converter.CarDTO
	if err := c.doJSON(ctx, http.MethodPost, resourceCars, carsPath(), converter.CarToRequest(in), &dto); err != nil {
		return model.Car{}, err
	}

	return converter.CarToModel(dto), nil
}

func (c *client) UpdateCar(ctx context.Context, carID int64, in model.CarInput) (model.Car, error) {
	var dto converter.CarDTO
	if err := c.doJSON(ctx, http.MethodPut, resourceCars, carPath(carID), converter.CarToRequest(in), &dto); err != nil {
		return model.Car{}, err
	}

	return converter.CarToModel(dto), nil
}

// DeleteCar removes the car; the backend cascades to its repairs, parts and stock.
func (c *client) DeleteCar(ctx context.Context, carID int64) error {
	return c.doJSON(ctx, http.MethodDelete, resourceCars, carPath(carID), nil, nil)
}

func (c *client) ListRepairs(ctx context.Context, carID int64) ([]model.Repair, error) {
	var dtos []converter.RepairDTO
	if err := c.doJSON(ctx, http.MethodGet, resourceRepairs, repairsPath(carID), nil, &dtos); err != nil {
		return nil, err
	}

	return converter.RepairsToModel(dtos), nil
}

func (c *client) CreateRepair(ctx context.Context, carID int64, in model.RepairInput) (model.Repair, error) {
	var dto converter.RepairDTO
	err := c.doJSON(ctx, http.MethodPost, resourceRepairs, repairsPath(carID), converter.RepairToRequest(in), &dto)
	if err != nil {
		return model.Repair{}, err
	}

	return converter.RepairToModel(dto), nil
}

func (c *client) UpdateRepair(ctx context.Context, carID, repairID int64, in model.RepairInput) (model.Repair, error) {
	var dto converter.RepairDTO
	err := c.doJSON(ctx, http.MethodPut, resourceRepairs, repairPath(carID, repairID), converter.RepairToRequest(in), &dto)
	if err != nil {
		return model.Repair{}, err
	}

	return converter.RepairToModel(dto), nil
}

func (c *client) DeleteRepair(ctx context.Context, carID, repairID int64) error {
	return c.doJSON(ctx, http.MethodDelete, resourceRepairs, repairPath(carID, repairID), nil, nil)
}

func (c *client) CreatePart(ctx context.Context, carID, repairID int64, in model.PartInput) (model.Part, error) {
	var dto converter.PartDTO
	err := c.doJSON(ctx, http.MethodPost, resourceParts, partsPath(carID, repairID), converter.PartToRequest(in), &dto)
	if err != nil {
		return model.Part{}, err
	}

	return converter.PartToModel(dto), nil
}

func (c *client) UpdatePart(ctx context.Context, carID, repairID, partID int64, in model.PartInput) (model.Part, error) {
	var dto converter.PartDTO
	err := c.doJSON(ctx, http.MethodPut, resourceParts, partPath(carID, repairID, partID), converter.PartToRequest(in), &dto)
	if err != nil {
		return model.Part{}, err
	}

	return converter.PartToModel(dto), nil
}

func (c *client) DeletePart(ctx context.Context, carID, repairID, partID int64) error {
	return c.doJSON(ctx, http.MethodDelete, resourceParts, partPath(carID, repairID, partID), nil, nil)
}

func (c *client) ListStockParts(ctx context.Context, carID int64) ([]model.StockPart, error) {
	var dtos []converter.StockPartDTO
	if err := c.doJSON(ctx, http.MethodGet, resourceStock, stockPath(carID), nil, &dtos); err != nil {
		return nil, err
	}

	return converter.StockPartsToModel(dtos), nil
}

func (c *client) CreateStockPart(ctx context.Context, carID int64, in model.StockPartInput) (model.StockPart, error) {
	var dto converter.StockPartDTO
	err := c.doJSON(ctx, http.MethodPost, resourceStock, stockPath(carID), converter.StockPartToRequest(in), &dto)
	if err != nil {
		return model.StockPart{}, err
	}

	return converter.StockPartToModel(dto), nil
}

func (c *client) UpdateStockPart(ctx context.Context, carID, stockPartID int64, in model.StockPartInput) (model.StockPart, error) {
	var dto converter.StockPartDTO
	err := c.doJSON(ctx, http.MethodPut, resourceStock, stockPartPath(carID, stockPartID), converter.StockPartToRequest(in), &dto)
	if err != nil {
		return model.StockPart{}, err
	}

	return converter.StockPartToModel(dto), nil
}

func (c *client) DeleteStockPart(ctx context.Context, carID, stockPartID int64) error {
	return c.doJSON(ctx, http.MethodDelete, resourceStock, stockPartPath(carID, stockPartID), nil, nil)
}
