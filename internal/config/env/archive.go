package envconfig

import "github.com/caarlos0/env/v11"

type archiveEnv struct {
	Bucket          string `env:"ARCHIVE_BUCKET"`
	Region          string `env:"ARCHIVE_REGION" envDefault:"us-east-1"`
	Endpoint        string `env:"ARCHIVE_ENDPOINT"`
	AccessKeyID     string `env:"ARCHIVE_ACCESS_KEY_ID"`
	SecretAccessKey string `env:"ARCHIVE_SECRET_ACCESS_KEY"`
	PathStyle       bool   `env:"ARCHIVE_PATH_STYLE" envDefault:"false"`
	Prefix          string `env:"ARCHIVE_PREFIX" envDefault:"garage"`
}

type archive struct {
	raw archiveEnv
}

func NewArchiveConfig() (*archive, error) {
	var raw archiveEnv
	if err := env.Parse(&raw); err != nil {
		return nil, err
	}
	return &archive{raw: raw}, nil
}

func (cfg *archive) Enabled() bool           { return cfg.raw.Bucket != "" }
func (cfg *archive) Bucket() string          { return cfg.raw.Bucket }
func (cfg *archive) Region() string          { return cfg.raw.Region }
func (cfg *archive) Endpoint() string        { return cfg.raw.Endpoint }
func (cfg *archive) AccessKeyID() string     { return cfg.raw.AccessKeyID }
func (cfg *archive) SecretAccessKey() string { return cfg.raw.SecretAccessKey }
func (cfg *archive) PathStyle() bool         { return cfg.raw.PathStyle }
func (cfg *archive) Prefix() string          { return cfg.raw.Prefix }
