package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type config struct {
	PollInterval      time.Duration `env:"WATCH_POLL_INTERVAL"      envDefault:"10ms"`
	Unit              time.Duration `env:"WATCH_UNIT"               envDefault:"1s"`
	DestructiveCancel bool          `env:"WATCH_DESTRUCTIVE_CANCEL" envDefault:"false"`
}

func loadConfig() (config, error) {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		return config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.PollInterval <= 0 {
		return config{}, errors.New("WATCH_POLL_INTERVAL must be positive")
	}
	if cfg.Unit <= 0 {
		return config{}, errors.New("WATCH_UNIT must be positive")
	}
	return cfg, nil
}
