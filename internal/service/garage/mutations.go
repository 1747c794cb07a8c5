package garage

import (
	"context"
	"errors"
	"fmt"

	"github.com/Kevrnd/car-garage/internal/model"
	"github.com/Kevrnd/car-garage/platform/logger"
)

// CreateRepair saves a new repair. Stock parts listed in in.StockPartIDs are moved into it
// by the backend, so the stock collection is reloaded as well. A non-nil error together with
// a non-zero repair means the repair was saved but the reload failed.
func (s *Store) CreateRepair(ctx context.Context, in model.RepairInput) (model.Repair, error) {
	const op = "garage.store.CreateRepair"
	log := logger.With(
		logger.Int64("car_id", s.carID),
		logger.Int("stock_part_ids", len(in.StockPartIDs)),
	)

	s.mutate.Lock()
	defer s.mutate.Unlock()

	created, err := s.client.CreateRepair(ctx, s.carID, in)
	if err != nil {
		log.Error(ctx, "create repair", logger.ErrorF(err))
		return model.Repair{}, fmt.Errorf("%s: %w", op, err)
	}

	s.repairSelection.Clear()
	s.publish(ctx, model.EntityRepair, model.ActionCreated, created.ID, created.ID)
	log.Info(ctx, "repair created", logger.Int64("repair_id", created.ID))

	if err := s.reloadAfterRepairSave(ctx, len(in.StockPartIDs) > 0); err != nil {
		return created, fmt.Errorf("%s: reload: %w", op, err)
	}
	return created, nil
}

func (s *Store) UpdateRepair(ctx context.Context, repairID int64, in model.RepairInput) (model.Repair, error) {
	const op = "garage.store.UpdateRepair"
	log := logger.With(logger.Int64("car_id", s.carID), logger.Int64("repair_id", repairID))

	if repairID <= 0 {
		return model.Repair{}, fmt.Errorf("%s: %w: repair id must be positive", op, model.ErrInvalidArgument)
	}

	s.mutate.Lock()
	defer s.mutate.Unlock()

	updated, err := s.client.UpdateRepair(ctx, s.carID, repairID, in)
	if err != nil {
		log.Error(ctx, "update repair", logger.ErrorF(err))
		return model.Repair{}, fmt.Errorf("%s: %w", op, err)
	}

	s.repairSelection.Clear()
	s.publish(ctx, model.EntityRepair, model.ActionUpdated, repairID, repairID)
	log.Info(ctx, "repair updated")

	if err := s.reloadAfterRepairSave(ctx, len(in.StockPartIDs) > 0); err != nil {
		return updated, fmt.Errorf("%s: reload: %w", op, err)
	}
	return updated, nil
}

func (s *Store) reloadAfterRepairSave(ctx context.Context, stockMoved bool) error {
	if stockMoved {
		return s.reloadAll(ctx)
	}
	return s.loadRepairs(ctx)
}

func (s *Store) DeleteRepair(ctx context.Context, repairID int64) error {
	const op = "garage.store.DeleteRepair"
	log := logger.With(logger.Int64("car_id", s.carID), logger.Int64("repair_id", repairID))

	if repairID <= 0 {
		return fmt.Errorf("%s: %w: repair id must be positive", op, model.ErrInvalidArgument)
	}

	s.mutate.Lock()
	defer s.mutate.Unlock()

	if err := s.client.DeleteRepair(ctx, s.carID, repairID); err != nil {
		log.Error(ctx, "delete repair", logger.ErrorF(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	s.publish(ctx, model.EntityRepair, model.ActionDeleted, repairID, repairID)
	log.Info(ctx, "repair deleted")

	if err := s.loadRepairs(ctx); err != nil {
		return fmt.Errorf("%s: reload: %w", op, err)
	}
	return nil
}

func (s *Store) CreatePart(ctx context.Context, repairID int64, in model.PartInput) (model.Part, error) {
	const op = "garage.store.CreatePart"
	log := logger.With(logger.Int64("car_id", s.carID), logger.Int64("repair_id", repairID))

	if repairID <= 0 {
		return model.Part{}, fmt.Errorf("%s: %w: repair id must be positive", op, model.ErrInvalidArgument)
	}

	s.mutate.Lock()
	defer s.mutate.Unlock()

	created, err := s.client.CreatePart(ctx, s.carID, repairID, normalizePart(in))
	if err != nil {
		log.Error(ctx, "create part", logger.ErrorF(err))
		return model.Part{}, fmt.Errorf("%s: %w", op, err)
	}

	s.publish(ctx, model.EntityPart, model.ActionCreated, created.ID, repairID)

	if err := s.loadRepairs(ctx); err != nil {
		return created, fmt.Errorf("%s: reload: %w", op, err)
	}
	return created, nil
}

func (s *Store) UpdatePart(ctx context.Context, repairID, partID int64, in model.PartInput) (model.Part, error) {
	const op = "garage.store.UpdatePart"
	log := logger.With(
		logger.Int64("car_id", s.carID),
		logger.Int64("repair_id", repairID),
		logger.Int64("part_id", partID),
	)

	if repairID <= 0 || partID <= 0 {
		return model.Part{}, fmt.Errorf("%s: %w: repair and part ids must be positive", op, model.ErrInvalidArgument)
	}

	s.mutate.Lock()
	defer s.mutate.Unlock()

	updated, err := s.client.UpdatePart(ctx, s.carID, repairID, partID, normalizePart(in))
	if err != nil {
		log.Error(ctx, "update part", logger.ErrorF(err))
		return model.Part{}, fmt.Errorf("%s: %w", op, err)
	}

	s.publish(ctx, model.EntityPart, model.ActionUpdated, partID, repairID)

	if err := s.loadRepairs(ctx); err != nil {
		return updated, fmt.Errorf("%s: reload: %w", op, err)
	}
	return updated, nil
}

func (s *Store) DeletePart(ctx context.Context, repairID, partID int64) error {
	const op = "garage.store.DeletePart"
	log := logger.With(
		logger.Int64("car_id", s.carID),
		logger.Int64("repair_id", repairID),
		logger.Int64("part_id", partID),
	)

	if repairID <= 0 || partID <= 0 {
		return fmt.Errorf("%s: %w: repair and part ids must be positive", op, model.ErrInvalidArgument)
	}

	s.mutate.Lock()
	defer s.mutate.Unlock()

	if err := s.client.DeletePart(ctx, s.carID, repairID, partID); err != nil {
		log.Error(ctx, "delete part", logger.ErrorF(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	s.publish(ctx, model.EntityPart, model.ActionDeleted, partID, repairID)

	if err := s.loadRepairs(ctx); err != nil {
		return fmt.Errorf("%s: reload: %w", op, err)
	}
	return nil
}

func (s *Store) CreateStockPart(ctx context.Context, in model.StockPartInput) (model.StockPart, error) {
	const op = "garage.store.CreateStockPart"
	log := logger.With(logger.Int64("car_id", s.carID))

	s.mutate.Lock()
	defer s.mutate.Unlock()

	created, err := s.client.CreateStockPart(ctx, s.carID, normalizeStockPart(in))
	if err != nil {
		log.Error(ctx, "create stock part", logger.ErrorF(err))
		return model.StockPart{}, fmt.Errorf("%s: %w", op, err)
	}

	s.publish(ctx, model.EntityStockPart, model.ActionCreated, created.ID, 0)

	if err := s.loadStockParts(ctx); err != nil {
		return created, fmt.Errorf("%s: reload: %w", op, err)
	}
	return created, nil
}

func (s *Store) UpdateStockPart(ctx context.Context, stockPartID int64, in model.StockPartInput) (model.StockPart, error) {
	const op = "garage.store.UpdateStockPart"
	log := logger.With(logger.Int64("car_id", s.carID), logger.Int64("stock_part_id", stockPartID))

	if stockPartID <= 0 {
		return model.StockPart{}, fmt.Errorf("%s: %w: stock part id must be positive", op, model.ErrInvalidArgument)
	}

	s.mutate.Lock()
	defer s.mutate.Unlock()

	updated, err := s.client.UpdateStockPart(ctx, s.carID, stockPartID, normalizeStockPart(in))
	if err != nil {
		log.Error(ctx, "update stock part", logger.ErrorF(err))
		return model.StockPart{}, fmt.Errorf("%s: %w", op, err)
	}

	s.publish(ctx, model.EntityStockPart, model.ActionUpdated, stockPartID, 0)

	if err := s.loadStockParts(ctx); err != nil {
		return updated, fmt.Errorf("%s: reload: %w", op, err)
	}
	return updated, nil
}

func (s *Store) DeleteStockPart(ctx context.Context, stockPartID int64) error {
	const op = "garage.store.DeleteStockPart"
	log := logger.With(logger.Int64("car_id", s.carID), logger.Int64("stock_part_id", stockPartID))

	if stockPartID <= 0 {
		return fmt.Errorf("%s: %w: stock part id must be positive", op, model.ErrInvalidArgument)
	}

	s.mutate.Lock()
	defer s.mutate.Unlock()

	if err := s.client.DeleteStockPart(ctx, s.carID, stockPartID); err != nil {
		log.Error(ctx, "delete stock part", logger.ErrorF(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	s.publish(ctx, model.EntityStockPart, model.ActionDeleted, stockPartID, 0)

	if err := s.loadStockParts(ctx); err != nil {
		return fmt.Errorf("%s: reload: %w", op, err)
	}
	return nil
}

func normalizePart(in model.PartInput) model.PartInput {
	if in.Quantity < 1 {
		in.Quantity = 1
	}
	return in
}

func normalizeStockPart(in model.StockPartInput) model.StockPartInput {
	if in.Quantity < 1 {
		in.Quantity = 1
	}
	return in
}

// IsUnauthorized reports whether err asks the caller to log in again.
func IsUnauthorized(err error) bool { return errors.Is(err, model.ErrUnauthorized) }
