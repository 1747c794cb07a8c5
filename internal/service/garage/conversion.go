package garage

import (
	"context"
	"errors"
	"fmt"

	"github.com/samber/lo"

	"github.com/Kevrnd/car-garage/internal/model"
	"github.com/Kevrnd/car-garage/platform/logger"
)

// ConvertStockPartsToRepairParts moves stock parts into a repair one by one, in the given
// order. Each step creates a part and then deletes the stock part; the pair is not atomic.
//
// A failed create stops the run, leaves later ids untouched and returns an error wrapping
// model.ErrConversionAborted. A failed delete is recorded as created_not_removed and the run
// continues. Earlier steps are never rolled back. The step log is returned in every case.
func (s *Store) ConvertStockPartsToRepairParts(
	ctx context.Context,
	repairID int64,
	stockPartIDs []int64,
) (model.ConversionResult, error) {
	const op = "garage.store.ConvertStockPartsToRepairParts"
	log := logger.With(
		logger.Int64("car_id", s.carID),
		logger.Int64("repair_id", repairID),
		logger.Int64s("stock_part_ids", stockPartIDs),
	)

	result := model.ConversionResult{RepairID: repairID}

	if repairID <= 0 {
		return result, fmt.Errorf("%s: %w: repair id must be positive", op, model.ErrInvalidArgument)
	}
	ids := lo.Uniq(stockPartIDs)
	if len(ids) == 0 {
		return result, fmt.Errorf("%s: %w: no stock parts selected", op, model.ErrInvalidArgument)
	}

	s.mutate.Lock()
	defer s.mutate.Unlock()

	s.mu.RLock()
	snapshot := lo.SliceToMap(s.stock, func(sp model.StockPart) (int64, model.StockPart) { return sp.ID, sp })
	s.mu.RUnlock()

	var (
		abortErr error
		touched  bool
	)
	for _, id := range ids {
		sp, ok := snapshot[id]
		if !ok {
			log.Warn(ctx, "stock part is not loaded, skipping", logger.Int64("stock_part_id", id))
			result.Steps = append(result.Steps, model.ConversionStep{StockPartID: id, Outcome: model.OutcomeSkipped})
			continue
		}

		touched = true
		part, err := s.client.CreatePart(ctx, s.carID, repairID, sp.AsPartInput())
		if err != nil {
			log.Error(ctx, "create part from stock", logger.Int64("stock_part_id", id), logger.ErrorF(err))
			result.Steps = append(result.Steps, model.ConversionStep{
				StockPartID: id,
				Outcome:     model.OutcomeFailed,
				Err:         err,
			})
			abortErr = fmt.Errorf("%s: stock part %d (%s): %w: %w", op, id, sp.Name, model.ErrConversionAborted, err)
			break
		}

		if err := s.client.DeleteStockPart(ctx, s.carID, id); err != nil {
			log.Warn(ctx, "part created but stock part was not removed",
				logger.Int64("stock_part_id", id),
				logger.Int64("part_id", part.ID),
				logger.ErrorF(err),
			)
			result.Steps = append(result.Steps, model.ConversionStep{
				StockPartID: id,
				Outcome:     model.OutcomeCreatedNotRemoved,
				PartID:      part.ID,
				Err:         err,
			})
			s.publish(ctx, model.EntityPart, model.ActionCreated, part.ID, repairID)
			continue
		}

		result.Steps = append(result.Steps, model.ConversionStep{
			StockPartID: id,
			Outcome:     model.OutcomeConverted,
			PartID:      part.ID,
		})
		s.publish(ctx, model.EntityStockPart, model.ActionConverted, id, repairID)
	}

	var reloadErr error
	if touched {
		reloadErr = s.reloadAll(ctx)
	}

	if result.Complete(len(ids)) {
		s.addToRepairSelection.Clear()
	}

	log.Info(ctx, "stock conversion finished",
		logger.Int("converted", len(result.Converted())),
		logger.Int("not_removed", len(result.NotRemoved())),
		logger.Int("failed", len(result.Failed())),
		logger.Int("skipped", len(result.Skipped())),
	)

	switch {
	case abortErr != nil && reloadErr != nil:
		return result, errors.Join(abortErr, fmt.Errorf("%s: reload: %w", op, reloadErr))
	case abortErr != nil:
		return result, abortErr
	case reloadErr != nil:
		return result, fmt.Errorf("%s: reload: %w", op, reloadErr)
	}

	return result, nil
}
