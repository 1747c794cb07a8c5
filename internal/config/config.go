package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	envconfig "github.com/Kevrnd/car-garage/internal/config/env"
)

var cfg *config

type config struct {
	Backend Backend
	Logger  Logger
	Kafka   Kafka
	Archive Archive
	Watch   Server
}

func Load(path ...string) error {
	const op = "config.Load"

	if shouldLoadDotenv() {
		if err := godotenv.Load(path...); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%s: load .env: %w", op, err)
		}
	}

	backendCfg, err := envconfig.NewBackendConfig()
	if err != nil {
		return fmt.Errorf("%s Backend: %w", op, err)
	}

	loggerCfg, err := envconfig.NewLoggerConfig()
	if err != nil {
		return fmt.Errorf("%s Logger: %w", op, err)
	}

	kafkaCfg, err := envconfig.NewKafkaConfig()
	if err != nil {
		return fmt.Errorf("%s Kafka: %w", op, err)
	}

	archiveCfg, err := envconfig.NewArchiveConfig()
	if err != nil {
		return fmt.Errorf("%s Archive: %w", op, err)
	}

	watchCfg, err := envconfig.NewWatchServerConfig()
	if err != nil {
		return fmt.Errorf("%s Watch: %w", op, err)
	}

	cfg = &config{
		Backend: backendCfg,
		Logger:  loggerCfg,
		Kafka:   kafkaCfg,
		Archive: archiveCfg,
		Watch:   watchCfg,
	}

	return nil
}

func C() *config { return cfg }

func shouldLoadDotenv() bool {
	return os.Getenv("APP_ENV") == "local"
}
