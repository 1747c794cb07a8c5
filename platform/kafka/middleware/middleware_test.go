package middleware

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kevrnd/car-garage/platform/kafka"
	"github.com/Kevrnd/car-garage/platform/logger"
)

func TestRecoveryConvertsPanic(t *testing.T) {
	t.Parallel()

	h := Recovery(logger.NoopLogger{})(func(context.Context, kafka.Message) error {
		panic("bad payload")
	})

	err := h(context.Background(), kafka.Message{Topic: "garage.changes"})
	require.Error(t, err)
	assert.ErrorContains(t, err, "bad payload")
}

func TestRecoveryPassesThrough(t *testing.T) {
	t.Parallel()

	want := errors.New("handler failed")
	h := Recovery(logger.NoopLogger{})(func(context.Context, kafka.Message) error {
		return want
	})

	assert.ErrorIs(t, h(context.Background(), kafka.Message{}), want)
}

func TestLoggingCallsNext(t *testing.T) {
	t.Parallel()

	called := false
	h := Logging(logger.NoopLogger{})(func(context.Context, kafka.Message) error {
		called = true
		return nil
	})

	require.NoError(t, h(context.Background(), kafka.Message{Key: []byte("1")}))
	assert.True(t, called)
}
