package main

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the process configuration, read from the environment with an
// optional .env overlay for local development.
type Config struct {
	BotToken         string `env:"BOT_TOKEN,required"`
	Port             int    `env:"PORT" envDefault:"5000"`
	LogLevel         string `env:"LOG_LEVEL" envDefault:"info"`
	StartingBalance  int64  `env:"STARTING_BALANCE" envDefault:"0"`
	LeaderboardLimit int    `env:"LEADERBOARD_LIMIT" envDefault:"10"`
}

// LoadConfig loads .env if present, then parses the environment.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
