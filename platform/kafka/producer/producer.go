package producer

import (
	"context"

	"github.com/IBM/sarama"
	"go.uber.org/zap"

	"github.com/Kevrnd/car-garage/platform/kafka"
	"github.com/Kevrnd/car-garage/platform/logger"
)

type Logger interface {
	Info(ctx context.Context, msg string, fields ...zap.Field)
	Error(ctx context.Context, msg string, fields ...zap.Field)
}

type producer struct {
	syncProducer sarama.SyncProducer
	topic        string
	logger       Logger
}

func NewProducer(syncProducer sarama.SyncProducer, topic string, logger Logger) *producer {
	return &producer{
		syncProducer: syncProducer,
		topic:        topic,
		logger:       logger,
	}
}

func (p *producer) Send(ctx context.Context, msg kafka.Message) error {
	pm := &sarama.ProducerMessage{
		Topic:   p.topic,
		Key:     sarama.ByteEncoder(msg.Key),
		Value:   sarama.ByteEncoder(msg.Value),
		Headers: toRecordHeaders(ctx, msg.Headers),
	}

	partition, offset, err := p.syncProducer.SendMessage(pm)
	if err != nil {
		p.logger.Error(ctx, "failed to send kafka message",
			zap.String("topic", p.topic),
			zap.Error(err),
		)
		return err
	}

	p.logger.Info(ctx, "kafka message sent",
		zap.String("topic", p.topic),
		zap.Int32("partition", partition),
		zap.Int64("offset", offset),
		zap.ByteString("key", msg.Key),
	)

	return nil
}

func toRecordHeaders(ctx context.Context, headers map[string][]byte) []sarama.RecordHeader {
	out := make([]sarama.RecordHeader, 0, len(headers)+1)
	for k, v := range headers {
		out = append(out, sarama.RecordHeader{Key: []byte(k), Value: v})
	}

	if _, ok := headers[kafka.HeaderRequestID]; !ok {
		if id := logger.RequestID(ctx); id != "" {
			out = append(out, sarama.RecordHeader{
				Key:   []byte(kafka.HeaderRequestID),
				Value: []byte(id),
			})
		}
	}

	return out
}
