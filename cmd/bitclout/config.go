package main

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	"github.com/Muvon/bitclout-node-api/pkg/log"
	"github.com/Muvon/bitclout-node-api/pkg/rpc"
)

const defaultEnvFile = ".env"

// Config is the command line configuration, read from the environment
// after an optional .env file.
type Config struct {
	Node    rpc.Config
	Log     log.Config
	History HistoryConfig
}

type HistoryConfig struct {
	Path     string `env:"BITCLOUT_HISTORY_DB" env-default:"bitclout-history.db"`
	Disabled bool   `env:"BITCLOUT_HISTORY_DISABLED" env-default:"false"`
}

// LoadConfig loads envFile into the process environment, without
// overriding variables that are already set, then reads and validates Config.
// A missing envFile is not an error.
func LoadConfig(envFile string) (Config, error) {
	if envFile == "" {
		envFile = defaultEnvFile
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to read env: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// envUsage describes every variable Config reads.
func envUsage() string {
	var cfg Config
	header := fmt.Sprintf("Environment variables (a %s file in the working directory is loaded first):", defaultEnvFile)
	usage, err := cleanenv.GetDescription(&cfg, &header)
	if err != nil {
		return header
	}
	return usage
}
