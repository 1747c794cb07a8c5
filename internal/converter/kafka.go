package converter

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Kevrnd/car-garage/internal/model"
)

type changeRecord struct {
	EventUUID  string `json:"event_uuid"`
	CarID      int64  `json:"car_id"`
	Entity     string `json:"entity"`
	Action     string `json:"action"`
	EntityID   int64  `json:"entity_id"`
	RepairID   int64  `json:"repair_id,omitempty"`
	OccurredAt string `json:"occurred_at"`
}

type kafkaConverter struct{}

func NewKafkaConverter() *kafkaConverter { return &kafkaConverter{} }

func (c *kafkaConverter) ChangeEventToPayload(e model.ChangeEvent) ([]byte, error) {
	rec := changeRecord{
		EventUUID:  e.EventID.String(),
		CarID:      e.CarID,
		Entity:     string(e.Entity),
		Action:     string(e.Action),
		EntityID:   e.EntityID,
		RepairID:   e.RepairID,
		OccurredAt: e.OccurredAt.UTC().Format(time.RFC3339Nano),
	}

	payload, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal change event: %w", err)
	}

	return payload, nil
}

func (c *kafkaConverter) PayloadToChangeEvent(data []byte) (model.ChangeEvent, error) {
	var rec changeRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return model.ChangeEvent{}, fmt.Errorf("failed to unmarshal change event: %w", err)
	}

	eventID, err := uuid.Parse(rec.EventUUID)
	if err != nil {
		return model.ChangeEvent{}, fmt.Errorf("%w: event_uuid: %v", model.ErrInvalidArgument, err)
	}

	occurred, err := time.Parse(time.RFC3339Nano, rec.OccurredAt)
	if err != nil {
		return model.ChangeEvent{}, fmt.Errorf("%w: occurred_at: %v", model.ErrInvalidArgument, err)
	}

	return model.ChangeEvent{
		EventID:    eventID,
		CarID:      rec.CarID,
		Entity:     model.Entity(rec.Entity),
		Action:     model.Action(rec.Action),
		EntityID:   rec.EntityID,
		RepairID:   rec.RepairID,
		OccurredAt: occurred,
	}, nil
}
