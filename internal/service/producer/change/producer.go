package chgproducer

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Kevrnd/car-garage/internal/metrics"
	"github.com/Kevrnd/car-garage/internal/model"
	"github.com/Kevrnd/car-garage/platform/kafka"
)

type Converter interface {
	ChangeEventToPayload(event model.ChangeEvent) ([]byte, error)
}

type service struct {
	producer kafka.Producer
	conv     Converter
}

func NewChangeProducer(producer kafka.Producer, conv Converter) *service {
	return &service{producer: producer, conv: conv}
}

// PublishChange keys every event by car id so one car's history stays on one partition.
func (s *service) PublishChange(ctx context.Context, event model.ChangeEvent) error {
	payload, err := s.conv.ChangeEventToPayload(event)
	if err != nil {
		observe(event, "encode_error")
		return fmt.Errorf("converter change_event_to_payload error: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(event.CarID, 10)),
		Value: payload,
	}
	if err := s.producer.Send(ctx, msg); err != nil {
		observe(event, "send_error")
		return fmt.Errorf("producer to garage changes topic error: %w", err)
	}

	observe(event, "ok")
	return nil
}

func observe(event model.ChangeEvent, result string) {
	metrics.ChangeEventsPublishedTotal.
		WithLabelValues(string(event.Entity), string(event.Action), result).
		Inc()
}

type nopPublisher struct{}

// NewNopPublisher is used when no brokers are configured.
func NewNopPublisher() nopPublisher { return nopPublisher{} }

func (nopPublisher) PublishChange(context.Context, model.ChangeEvent) error { return nil }
