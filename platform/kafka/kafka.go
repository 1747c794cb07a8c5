package kafka

import (
	"context"
)

type (
	Middleware     func(next MessageHandler) MessageHandler
	MessageHandler func(ctx context.Context, msg Message) error
)

type Consumer interface {
	Consume(ctx context.Context, handler MessageHandler) error
}

// Producer writes to the single topic it was built for; Message.Topic is ignored.
type Producer interface {
	Send(ctx context.Context, msg Message) error
}

// HeaderRequestID carries the originating request id across the broker.
const HeaderRequestID = "x-request-id"
