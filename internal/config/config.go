package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	Port            string        `env:"PORT" envDefault:"8080"`
	RoundInterval   time.Duration `env:"ROUND_INTERVAL" envDefault:"7s"`
	StartingBalance int64         `env:"STARTING_BALANCE" envDefault:"10"`
	HistorySize     int           `env:"HISTORY_SIZE" envDefault:"10"`
}

func Load() (Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing env config: %w", err)
	}
	return cfg, nil
}
