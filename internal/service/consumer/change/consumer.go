package chgconsumer

import (
	"context"
	"fmt"

	"github.com/Kevrnd/car-garage/internal/metrics"
	"github.com/Kevrnd/car-garage/internal/model"
	"github.com/Kevrnd/car-garage/platform/kafka"
	"github.com/Kevrnd/car-garage/platform/logger"
)

type Converter interface {
	PayloadToChangeEvent(data []byte) (model.ChangeEvent, error)
}

// Service is the cache kept warm by the watch daemon.
type Service interface {
	CarID() int64
	Refresh(ctx context.Context) error
	Aggregates() model.Aggregates
}

type service struct {
	consumer kafka.Consumer
	conv     Converter
	svc      Service
}

func NewChangeConsumer(
	consumer kafka.Consumer,
	conv Converter,
	svc Service,
) *service {
	return &service{consumer: consumer, conv: conv, svc: svc}
}

func (s *service) RunChangeConsume(ctx context.Context) error {
	logger.Info(ctx, "Starting garage change consumer", logger.Int64("car_id", s.svc.CarID()))

	if err := s.consumer.Consume(ctx, s.changeHandler); err != nil {
		logger.Error(ctx, "Consume from garage changes topic error", logger.ErrorF(err))
		return err
	}

	return nil
}

func (s *service) changeHandler(ctx context.Context, msg kafka.Message) error {
	event, err := s.conv.PayloadToChangeEvent(msg.Value)
	if err != nil {
		logger.Error(ctx, "Failed to decode change record", logger.ErrorF(err))
		return fmt.Errorf("converter payload_to_change_event error: %w", err)
	}

	metrics.ChangeEventsConsumedTotal.
		WithLabelValues(string(event.Entity), string(event.Action)).
		Inc()

	log := logger.With(
		logger.String("event_uuid", event.EventID.String()),
		logger.Int64("car_id", event.CarID),
		logger.String("entity", string(event.Entity)),
		logger.String("action", string(event.Action)),
		logger.Int64("entity_id", event.EntityID),
	)
	log.Info(ctx, "garage change received")

	if event.CarID != s.svc.CarID() {
		return nil
	}

	if err := s.svc.Refresh(ctx); err != nil {
		log.Error(ctx, "refresh after change", logger.ErrorF(err))
		return err
	}

	agg := s.svc.Aggregates()
	log.Info(ctx, "totals updated",
		logger.String("work_cost", agg.TotalWorkCost.StringFixed(2)),
		logger.String("parts_cost", agg.TotalPartsCost.StringFixed(2)),
		logger.String("total_cost", agg.TotalCost().StringFixed(2)),
	)

	return nil
}
