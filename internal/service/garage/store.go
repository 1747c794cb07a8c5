package garage

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/Kevrnd/car-garage/internal/model"
	"github.com/Kevrnd/car-garage/platform/logger"
)

type GarageClient interface {
	ListRepairs(ctx context.Context, carID int64) ([]model.Repair, error)
	CreateRepair(ctx context.Context, carID int64, in model.RepairInput) (model.Repair, error)
	UpdateRepair(ctx context.Context, carID, repairID int64, in model.RepairInput) (model.Repair, error)
	DeleteRepair(ctx context.Context, carID, repairID int64) error

	CreatePart(ctx context.Context, carID, repairID int64, in model.PartInput) (model.Part, error)
	UpdatePart(ctx context.Context, carID, repairID, partID int64, in model.PartInput) (model.Part, error)
	DeletePart(ctx context.Context, carID, repairID, partID int64) error

	ListStockParts(ctx context.Context, carID int64) ([]model.StockPart, error)
	CreateStockPart(ctx context.Context, carID int64, in model.StockPartInput) (model.StockPart, error)
	UpdateStockPart(ctx context.Context, carID, stockPartID int64, in model.StockPartInput) (model.StockPart, error)
	DeleteStockPart(ctx context.Context, carID, stockPartID int64) error
}

type ChangePublisher interface {
	PublishChange(ctx context.Context, event model.ChangeEvent) error
}

// Store caches the repairs and stock parts of one car and keeps the derived totals in step
// with them. Every mutation is confirmed by the backend and followed by a reload of the
// affected collections.
type Store struct {
	carID     int64
	client    GarageClient
	publisher ChangePublisher
	now       func() time.Time

	// mutate serializes operations that talk to the backend.
	mutate sync.Mutex

	mu         sync.RWMutex
	repairs    []model.Repair
	stock      []model.StockPart
	aggregates model.Aggregates

	repairSelection      *model.Selection
	addToRepairSelection *model.Selection
}

func NewStore(carID int64, client GarageClient, publisher ChangePublisher) *Store {
	return &Store{
		carID:                carID,
		client:               client,
		publisher:            publisher,
		now:                  time.Now,
		repairs:              []model.Repair{},
		stock:                []model.StockPart{},
		repairSelection:      &model.Selection{},
		addToRepairSelection: &model.Selection{},
	}
}

func (s *Store) CarID() int64 { return s.carID }

// RepairSelection holds stock parts picked while creating a repair.
func (s *Store) RepairSelection() *model.Selection { return s.repairSelection }

// AddToRepairSelection holds stock parts picked for conversion into an existing repair.
func (s *Store) AddToRepairSelection() *model.Selection { return s.addToRepairSelection }

func (s *Store) Repairs() []model.Repair {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return lo.Map(s.repairs, func(r model.Repair, _ int) model.Repair { return r.Clone() })
}

func (s *Store) Repair(id int64) (model.Repair, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := lo.Find(s.repairs, func(r model.Repair) bool { return r.ID == id })
	if !ok {
		return model.Repair{}, false
	}
	return r.Clone(), true
}

func (s *Store) StockParts() []model.StockPart {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return lo.Map(s.stock, func(sp model.StockPart, _ int) model.StockPart { return sp.Clone() })
}

func (s *Store) StockPart(id int64) (model.StockPart, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sp, ok := lo.Find(s.stock, func(sp model.StockPart) bool { return sp.ID == id })
	if !ok {
		return model.StockPart{}, false
	}
	return sp.Clone(), true
}

func (s *Store) Aggregates() model.Aggregates {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.aggregates
}

func (s *Store) LoadRepairs(ctx context.Context) error {
	s.mutate.Lock()
	defer s.mutate.Unlock()
	return s.loadRepairs(ctx)
}

func (s *Store) LoadStockParts(ctx context.Context) error {
	s.mutate.Lock()
	defer s.mutate.Unlock()
	return s.loadStockParts(ctx)
}

// Refresh loads both collections concurrently. Each keeps its own failure handling; the
// returned error joins both failures.
func (s *Store) Refresh(ctx context.Context) error {
	s.mutate.Lock()
	defer s.mutate.Unlock()
	return s.reloadAll(ctx)
}

func (s *Store) reloadAll(ctx context.Context) error {
	var (
		g                   errgroup.Group
		repairErr, stockErr error
	)
	g.Go(func() error {
		repairErr = s.loadRepairs(ctx)
		return nil
	})
	g.Go(func() error {
		stockErr = s.loadStockParts(ctx)
		return nil
	})
	_ = g.Wait()

	return errors.Join(repairErr, stockErr)
}

func (s *Store) loadRepairs(ctx context.Context) error {
	const op = "garage.store.LoadRepairs"
	log := logger.With(logger.Int64("car_id", s.carID))

	repairs, err := s.client.ListRepairs(ctx, s.carID)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		if errors.Is(err, model.ErrUnauthorized) {
			log.Warn(ctx, "session expired while loading repairs")
			return fmt.Errorf("%s: %w", op, err)
		}

		log.Error(ctx, "load repairs", logger.ErrorF(err))
		s.repairs = []model.Repair{}
		s.recompute()
		return fmt.Errorf("%s: %w", op, err)
	}

	if repairs == nil {
		repairs = []model.Repair{}
	}
	s.repairs = repairs
	s.recompute()

	log.Debug(ctx, "repairs loaded", logger.Int("count", len(repairs)))
	return nil
}

func (s *Store) loadStockParts(ctx context.Context) error {
	const op = "garage.store.LoadStockParts"
	log := logger.With(logger.Int64("car_id", s.carID))

	stock, err := s.client.ListStockParts(ctx, s.carID)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		if errors.Is(err, model.ErrUnauthorized) {
			log.Warn(ctx, "session expired while loading stock parts")
			return fmt.Errorf("%s: %w", op, err)
		}

		log.Error(ctx, "load stock parts", logger.ErrorF(err))
		s.stock = []model.StockPart{}
		s.recompute()
		return fmt.Errorf("%s: %w", op, err)
	}

	if stock == nil {
		stock = []model.StockPart{}
	}
	s.stock = stock
	s.recompute()

	present := lo.SliceToMap(stock, func(sp model.StockPart) (int64, struct{}) { return sp.ID, struct{}{} })
	keep := func(id int64) bool {
		_, ok := present[id]
		return ok
	}
	s.repairSelection.Retain(keep)
	s.addToRepairSelection.Retain(keep)

	log.Debug(ctx, "stock parts loaded", logger.Int("count", len(stock)))
	return nil
}

// recompute must be called with mu held for writing.
func (s *Store) recompute() {
	s.aggregates = ComputeAggregates(s.repairs, s.stock)
}

func (s *Store) publish(ctx context.Context, entity model.Entity, action model.Action, entityID, repairID int64) {
	if s.publisher == nil {
		return
	}

	event := model.ChangeEvent{
		EventID:    uuid.New(),
		CarID:      s.carID,
		Entity:     entity,
		Action:     action,
		EntityID:   entityID,
		RepairID:   repairID,
		OccurredAt: s.now().UTC(),
	}
	if err := s.publisher.PublishChange(ctx, event); err != nil {
		logger.Warn(ctx, "publish change event",
			logger.String("entity", string(entity)),
			logger.String("action", string(action)),
			logger.Int64("entity_id", entityID),
			logger.ErrorF(err),
		)
	}
}
