// Package config loads the stl configuration.
//
// Values come, by increasing priority, from the defaults, the YAML
// configuration file, and STL_* environment variables (a .env file in the
// working directory is read too).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/etnz/stockledger"
	"github.com/etnz/stockledger/logger"
	"github.com/etnz/stockledger/store"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the complete stl configuration.
type Config struct {
	LedgerFile string        `yaml:"ledger_file"`
	Store      string        `yaml:"store"`    // json or sqlite
	Currency   string        `yaml:"currency"` // display only, empty prints plain numbers
	Log        logger.Config `yaml:"log"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		LedgerFile: "trades.json",
		Store:      store.JSON,
		Log:        logger.DefaultConfig(),
	}
}

// Load reads the YAML file at path on top of the defaults, then applies the
// environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		content, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("error reading config %q: %w", path, err)
		default:
			if err := yaml.Unmarshal(content, &cfg); err != nil {
				return nil, fmt.Errorf("error parsing config %q: %w", path, err)
			}
		}
	}

	// Load .env file if present (silently ignore if missing).
	_ = godotenv.Load()

	applyEnvOverrides(&cfg)
	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	setStr(&cfg.LedgerFile, "STL_LEDGER_FILE")
	setStr(&cfg.Store, "STL_STORE")
	setStr(&cfg.Currency, "STL_CURRENCY")
	setStr(&cfg.Log.Level, "STL_LOG_LEVEL")
	setStr(&cfg.Log.Format, "STL_LOG_FORMAT")
}

func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// Validate checks every field and reports all the failures.
func (c *Config) Validate() error {
	var errs []error
	if c.LedgerFile == "" {
		errs = append(errs, errors.New("ledger_file is empty"))
	}
	switch c.Store {
	case store.JSON, store.SQLite:
	default:
		errs = append(errs, fmt.Errorf("unknown store %q want %q or %q", c.Store, store.JSON, store.SQLite))
	}
	if c.Currency != "" {
		if err := stockledger.ValidateCurrency(c.Currency); err != nil {
			errs = append(errs, err)
		}
	}
	if err := c.Log.Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
