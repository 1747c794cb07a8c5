package envconfig

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type backendEnv struct {
	BaseURL   string        `env:"GARAGE_BASE_URL,required,notEmpty"`
	CarID     int64         `env:"GARAGE_CAR_ID"`
	SessionID string        `env:"GARAGE_SESSION_ID"`
	CSRFToken string        `env:"GARAGE_CSRF_TOKEN"`
	Username  string        `env:"GARAGE_USERNAME"`
	Password  string        `env:"GARAGE_PASSWORD"`
	Timeout   time.Duration `env:"GARAGE_TIMEOUT" envDefault:"0s"`
}

type backend struct {
	raw backendEnv
}

func NewBackendConfig() (*backend, error) {
	var raw backendEnv
	if err := env.Parse(&raw); err != nil {
		return nil, err
	}
	return &backend{raw: raw}, nil
}

func (cfg *backend) BaseURL() string        { return cfg.raw.BaseURL }
func (cfg *backend) CarID() int64           { return cfg.raw.CarID }
func (cfg *backend) SessionID() string      { return cfg.raw.SessionID }
func (cfg *backend) CSRFToken() string      { return cfg.raw.CSRFToken }
func (cfg *backend) Username() string       { return cfg.raw.Username }
func (cfg *backend) Password() string       { return cfg.raw.Password }
func (cfg *backend) Timeout() time.Duration { return cfg.raw.Timeout }
