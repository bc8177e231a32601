/*
Package config loads platform configuration from a TOML file.

A missing config file is not an error; defaults apply. Example:

	data_dir = "./data"
	listen_addr = ":8080"
	ticket_price = "10"

	[archive]
	enabled = true
	path = "./data/history.db"
*/
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/shopspring/decimal"
)

// Config is the platform configuration.
type Config struct {
	DataDir     string  `toml:"data_dir"`
	ListenAddr  string  `toml:"listen_addr"`
	TicketPrice string  `toml:"ticket_price"`
	Archive     Archive `toml:"archive"`
}

// Archive configures the SQLite ledger history archive.
type Archive struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		DataDir:     "./data",
		ListenAddr:  ":8080",
		TicketPrice: "10",
		Archive: Archive{
			Enabled: true,
			Path:    "./data/history.db",
		},
	}
}

// Load reads the config file at path, falling back to defaults when the
// file does not exist. Fields absent from the file keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data_dir cannot be empty")
	}
	if _, err := c.UnitPrice(); err != nil {
		return err
	}
	return nil
}

// UnitPrice parses the configured ticket price.
func (c Config) UnitPrice() (decimal.Decimal, error) {
	price, err := decimal.NewFromString(c.TicketPrice)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid ticket_price %q: %w", c.TicketPrice, err)
	}
	if !price.IsPositive() {
		return decimal.Zero, fmt.Errorf("ticket_price must be greater than 0")
	}
	return price, nil
}
