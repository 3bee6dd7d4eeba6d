package server

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	log "github.com/sirupsen/logrus"

	"github.com/zucenko/seabattle/model"
)

// Config is the process configuration, read from the environment.
// BoardSize is the one board dimension shared by the validator, the
// fleets and the session layer.
type Config struct {
	Port      string `env:"PORT" envDefault:"8080"`
	BoardSize int    `env:"BOARD_SIZE" envDefault:"10"`
	NotifyURL string `env:"NOTIFY_URL"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.BoardSize < 1 {
		log.Warnf("BOARD_SIZE %d unusable, using %d", cfg.BoardSize, model.DefaultBoardSize)
		cfg.BoardSize = model.DefaultBoardSize
	}
	return cfg, nil
}
