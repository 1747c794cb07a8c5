package config

import (
	"time"

	"github.com/IBM/sarama"
)

type Backend interface {
	BaseURL() string
	CarID() int64
	SessionID() string
	CSRFToken() string
	Username() string
	Password() string
	Timeout() time.Duration
}

type Logger interface {
	Level() string
	AsJSON() bool
}

type Kafka interface {
	Enabled() bool
	Brokers() []string
	ChangesTopic() string
	ConsumerGroupID() string
	ChangeProducerConfig() *sarama.Config
	ChangeConsumerConfig() *sarama.Config
}

type Archive interface {
	Enabled() bool
	Bucket() string
	Region() string
	Endpoint() string
	AccessKeyID() string
	SecretAccessKey() string
	PathStyle() bool
	Prefix() string
}

type Server interface {
	Host() string
	Port() int
	Address() string
	ReadTimeout() time.Duration
	ShutdownTimeout() time.Duration
}
