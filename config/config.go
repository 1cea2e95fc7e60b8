// Package config reads the TOML configuration of the cfo tool.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/shopspring/decimal"

	"github.com/etnz/cardfolio/store"
)

// Config represents the application configuration.
type Config struct {
	Log       LogConfig       `toml:"log"`
	Catalog   CatalogConfig   `toml:"catalog"`
	Store     StoreConfig     `toml:"store"`
	Valuation ValuationConfig `toml:"valuation"`
}

// LogConfig configures the structured logger.
type LogConfig struct {
	Level     slog.Level `toml:"level"`
	Format    string     `toml:"format"` // "text" or "json"
	AddSource bool       `toml:"add_source"`
}

// CatalogConfig locates the catalog snapshot.
type CatalogConfig struct {
	Path   string `toml:"path"`
	Select string `toml:"select"` // JSONPath of the card array, e.g. "$.cards"
}

// StoreConfig locates the user's saved data.
type StoreConfig struct {
	Kind string `toml:"kind"` // "file" or "sqlite"
	Path string `toml:"path"` // folder for "file", database file for "sqlite"
}

// ValuationConfig configures price conversion.
type ValuationConfig struct {
	Rate               string `toml:"rate"` // decimal, e.g. "0.35"
	SourceCurrency     string `toml:"source_currency"`
	TargetCurrency     string `toml:"target_currency"`
	RoundUpToTensAbove int64  `toml:"round_up_to_tens_above"` // 0 disables it
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			Level:  slog.LevelInfo,
			Format: "text",
		},
		Catalog: CatalogConfig{
			Path: "cards.json",
		},
		Store: StoreConfig{
			Kind: store.KindFile,
			Path: ".cardfolio",
		},
		Valuation: ValuationConfig{
			Rate:           "0.35",
			SourceCurrency: "JPY",
			TargetCurrency: "PHP",
		},
	}
}

// Load reads the configuration file at path over the defaults. A missing file
// yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer f.Close()
	if err := cfg.Decode(f); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Decode reads TOML from r over the current values and validates the result.
func (c *Config) Decode(r io.Reader) error {
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(c); err != nil {
		return fmt.Errorf("failed to decode config: %w", err)
	}
	return c.Validate()
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	switch c.Log.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("invalid log format %q: must be \"text\" or \"json\"", c.Log.Format)
	}
	switch c.Store.Kind {
	case "", store.KindFile, store.KindSQLite:
	default:
		return fmt.Errorf("invalid store kind %q: must be %q or %q", c.Store.Kind, store.KindFile, store.KindSQLite)
	}
	if _, err := c.Valuation.DecimalRate(); err != nil {
		return err
	}
	if c.Valuation.RoundUpToTensAbove < 0 {
		return fmt.Errorf("invalid round_up_to_tens_above %d: must not be negative", c.Valuation.RoundUpToTensAbove)
	}
	if c.Valuation.TargetCurrency == "" {
		return errors.New("missing valuation target currency")
	}
	return nil
}

// DecimalRate parses the conversion rate as an exact decimal. It must be
// positive.
func (v ValuationConfig) DecimalRate() (decimal.Decimal, error) {
	rate, err := decimal.NewFromString(v.Rate)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid valuation rate %q: %w", v.Rate, err)
	}
	if !rate.IsPositive() {
		return decimal.Zero, fmt.Errorf("invalid valuation rate %q: must be positive", v.Rate)
	}
	return rate, nil
}

// NewLogger returns a logger writing to w as configured.
func (l LogConfig) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: l.Level, AddSource: l.AddSource}
	if l.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
