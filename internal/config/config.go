// Package config loads verifyctl's adapter-level settings: where to keep the
// run-history database and how many sessions batch mode verifies at once.
// None of the core's behavior is configurable — these are CLI/adapter knobs
// only.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

const defaultStorePath = "faircheck-runs.db"
const defaultBatchConcurrency = 4

// Environment variables override the file (and its defaults), but a flag
// parsed by the CLI always wins over either — the corpus's node configs
// follow this same flag > env > file > default precedence.
const (
	envStorePath        = "FAIRCHECK_STORE_PATH"
	envBatchConcurrency = "FAIRCHECK_BATCH_CONCURRENCY"
)

// Config is verifyctl's top-level configuration file shape.
type Config struct {
	StorePath        string `yaml:"store_path"`
	BatchConcurrency int    `yaml:"batch_concurrency"`
}

// Default returns the configuration used when no file is supplied.
func Default() Config {
	return Config{
		StorePath:        defaultStorePath,
		BatchConcurrency: defaultBatchConcurrency,
	}
}

// Load reads and parses a YAML config file at path, filling any field left
// zero-valued in the file with its default.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config YAML: %w", err)
	}

	if cfg.StorePath == "" {
		cfg.StorePath = defaultStorePath
	}
	if cfg.BatchConcurrency <= 0 {
		cfg.BatchConcurrency = defaultBatchConcurrency
	}

	ApplyEnvOverrides(&cfg)

	return cfg, nil
}

// ApplyEnvOverrides overlays FAIRCHECK_* environment variables on top of the
// file-resolved config. A malformed FAIRCHECK_BATCH_CONCURRENCY is ignored
// rather than treated as fatal, since env overrides are best-effort and a
// flag can always override it anyway.
func ApplyEnvOverrides(cfg *Config) {
	if v := os.Getenv(envStorePath); v != "" {
		cfg.StorePath = v
	}
	if v := os.Getenv(envBatchConcurrency); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.BatchConcurrency = n
		}
	}
}
