package envconfig

import (
	"github.com/IBM/sarama"
	"github.com/caarlos0/env/v11"
)

type kafkaEnv struct {
	Brokers         []string `env:"KAFKA_BROKERS"`
	ChangesTopic    string   `env:"GARAGE_CHANGES_TOPIC_NAME" envDefault:"garage.changes"`
	ConsumerGroupID string   `env:"GARAGE_CHANGES_CONSUMER_GROUP_ID" envDefault:"garage-watch"`
}

type kafka struct {
	raw kafkaEnv
}

func NewKafkaConfig() (*kafka, error) {
	var raw kafkaEnv
	if err := env.Parse(&raw); err != nil {
		return nil, err
	}
	return &kafka{raw: raw}, nil
}

// Enabled reports whether brokers are configured. Without them change events are dropped.
func (cfg *kafka) Enabled() bool           { return len(cfg.raw.Brokers) > 0 }
func (cfg *kafka) Brokers() []string       { return cfg.raw.Brokers }
func (cfg *kafka) ChangesTopic() string    { return cfg.raw.ChangesTopic }
func (cfg *kafka) ConsumerGroupID() string { return cfg.raw.ConsumerGroupID }

func (cfg *kafka) ChangeConsumerConfig() *sarama.Config {
	config := sarama.NewConfig()
	config.Version = sarama.V4_0_0_0
	config.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRoundRobin()}
	config.Consumer.Offsets.Initial = sarama.OffsetNewest

	return config
}

func (cfg *kafka) ChangeProducerConfig() *sarama.Config {
	config := sarama.NewConfig()
	config.Version = sarama.V4_0_0_0
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll

	return config
}
