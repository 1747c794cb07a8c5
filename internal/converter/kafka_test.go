package converter

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kevrnd/car-garage/internal/model"
)

func TestChangeEventPayload(t *testing.T) {
	t.Parallel()

	conv := NewKafkaConverter()
	event := model.ChangeEvent{
		EventID:    uuid.New(),
		CarID:      12,
		Entity:     model.EntityPart,
		Action:     model.ActionConverted,
		EntityID:   40,
		RepairID:   9,
		OccurredAt: time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC),
	}

	payload, err := conv.ChangeEventToPayload(event)
	require.NoError(t, err)

	got, err := conv.PayloadToChangeEvent(payload)
	require.NoError(t, err)
	assert.Equal(t, event, got)
}

func TestPayloadToChangeEventRejectsBadInput(t *testing.T) {
	t.Parallel()

	conv := NewKafkaConverter()

	_, err := conv.PayloadToChangeEvent([]byte("{"))
	require.Error(t, err)

	_, err = conv.PayloadToChangeEvent([]byte(`{"event_uuid":"nope","occurred_at":"2024-06-01T00:00:00Z"}`))
	require.ErrorIs(t, err, model.ErrInvalidArgument)
}
