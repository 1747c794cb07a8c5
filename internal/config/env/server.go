package envconfig

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type watchServerEnv struct {
	Host string `env:"WATCH_HTTP_HOST" envDefault:"0.0.0.0"`
	Port int    `env:"WATCH_HTTP_PORT" envDefault:"9090"`

	ReadTimeout     time.Duration `env:"WATCH_HTTP_READ_TIMEOUT" envDefault:"5s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

type watchServer struct {
	raw watchServerEnv
}

func NewWatchServerConfig() (*watchServer, error) {
	var raw watchServerEnv
	if err := env.Parse(&raw); err != nil {
		return nil, err
	}
	return &watchServer{raw: raw}, nil
}

func (cfg *watchServer) Host() string { return cfg.raw.Host }
func (cfg *watchServer) Port() int    { return cfg.raw.Port }
func (cfg *watchServer) Address() string {
	return fmt.Sprintf("%s:%d", cfg.Host(), cfg.Port())
}

func (cfg *watchServer) ReadTimeout() time.Duration {
	return cfg.raw.ReadTimeout
}

func (cfg *watchServer) ShutdownTimeout() time.Duration {
	return cfg.raw.ShutdownTimeout
}
