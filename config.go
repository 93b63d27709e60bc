package passkey

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// Defaults applied when the environment provides nothing.
const (
	DefaultRPDisplayName = "Aegis Bank"
	DefaultRPID          = "localhost"
	DefaultOrigin        = "http://localhost:3000"
	DefaultTimeout       = 60 * time.Second
)

// Config controls the relying-party settings advertised in ceremony options.
type Config struct {
	RPDisplayName string        `env:"AEGIS_PASSKEY_RP_DISPLAY_NAME" envDefault:"Aegis Bank"`
	RPID          string        `env:"AEGIS_PASSKEY_RP_ID"           envDefault:"localhost"`
	Origin        string        `env:"AEGIS_PASSKEY_ORIGIN"          envDefault:"http://localhost:3000"`
	Timeout       time.Duration `env:"AEGIS_PASSKEY_TIMEOUT"         envDefault:"60s"`
}

// LoadConfigFromEnv returns passkey configuration with defaults.
func LoadConfigFromEnv() Config {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{
			RPDisplayName: DefaultRPDisplayName,
			RPID:          DefaultRPID,
			Origin:        DefaultOrigin,
			Timeout:       DefaultTimeout,
		}
	}
	if cfg.RPDisplayName == "" {
		cfg.RPDisplayName = DefaultRPDisplayName
	}
	if cfg.RPID == "" {
		cfg.RPID = DefaultRPID
	}
	if cfg.Origin == "" {
		cfg.Origin = DefaultOrigin
	}
	return cfg
}
