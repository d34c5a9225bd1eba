// Package config handles loading and parsing application configuration.
// It supports these sources (in priority order):
//  1. An environment variable:  CONFIG_PATH=/path/to/config.yaml
//  2. A command-line flag:      --config=/path/to/config.yaml
//  3. Neither: values come from the environment and env-default tags only.
//
// A .env file in the working directory, when present, is loaded into the
// process environment first.
package config

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Backend names accepted in storage.backend.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

// Config is the root configuration structure.
// Every field maps to a key in the YAML file AND can be overridden
// by the corresponding environment variable (env:"...").
type Config struct {
	// Env controls log format and verbosity.
	// Valid values: "dev", "staging", "prod"
	Env string `yaml:"env" env:"ENV" env-default:"prod" validate:"oneof=dev staging prod"`

	// LogPath, when set, receives the logs (appended) instead of stderr.
	LogPath string `yaml:"log_path" env:"LOG_PATH"`

	Storage Storage `yaml:"storage"`
	Console Console `yaml:"console"`
}

// Storage selects the record backend. Both backends keep data in memory
// only; nothing survives the process.
type Storage struct {
	Backend string `yaml:"backend" env:"STORAGE_BACKEND" env-default:"memory" validate:"oneof=memory sqlite"`
}

// Console holds settings for the interactive menu.
type Console struct {
	Title string `yaml:"title" env:"CONSOLE_TITLE" env-default:"SAIT Enrollment Management System" validate:"required"`
}

// Load reads the config from path, or from the environment alone when
// path is empty, and validates the result.
func Load(path string) (*Config, error) {
	var cfg Config

	if path == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("read config from env: %w", err)
		}
	} else {
		// Verify the file exists before trying to read it, for a clearer
		// message than the YAML decoder would give.
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config file does not exist: %s", path)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("cannot read config: %w", err)
		}
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// MustLoad resolves the config path, reads, validates, and returns the
// application config.
//
// Functions prefixed with "Must" are allowed to fatal on failure; if this
// returns, the config is valid.
func MustLoad() *Config {
	// ── .env file ─────────────────────────────────────────────────────
	// Optional. Values already present in the environment win.
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			log.Fatalf("cannot load .env: %s", err.Error())
		}
	}

	// ── Source 1: environment variable ───────────────────────────────
	configPath := os.Getenv("CONFIG_PATH")

	// ── Source 2: command-line flag ───────────────────────────────────
	//   go run ./cmd/enrollment --config=config/local.yaml
	if configPath == "" {
		flags := flag.String("config", "", "Path to the configuration YAML file")
		flag.Parse()
		configPath = *flags
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatal(err.Error())
	}

	return cfg
}
