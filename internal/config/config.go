//-------------------------------------------------------------------------
//
// Retail Data Warehouse ETL
//
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package config handles configuration management for retaildw.
// Configuration is loaded from config files and CLI flags; CLI flags take
// precedence over config file values.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for retaildw.
type Config struct {
	// Connection is the PostgreSQL connection string for the warehouse.
	Connection string `mapstructure:"connection"`

	// DataDir is the directory holding the source CSV files.
	DataDir string `mapstructure:"data_dir"`

	// LogLevel controls logging verbosity (debug, info, warn, error).
	LogLevel string `mapstructure:"log_level"`

	// Generate holds configuration for the generate subcommand.
	Generate GenerateConfig `mapstructure:"generate"`

	// Init holds configuration for the init subcommand.
	Init InitConfig `mapstructure:"init"`
}

// GenerateConfig controls synthetic source-data generation.
type GenerateConfig struct {
	// Customers is the number of customer records to generate.
	Customers int `mapstructure:"customers"`

	// Products is the number of product records to generate.
	Products int `mapstructure:"products"`

	// Orders is the number of order records to generate.
	Orders int `mapstructure:"orders"`

	// StartDate is the first possible order date (YYYY-MM-DD).
	StartDate string `mapstructure:"start_date"`

	// EndDate is the last possible order date (YYYY-MM-DD).
	EndDate string `mapstructure:"end_date"`

	// Seed makes generation reproducible; 0 uses a time-based seed.
	Seed uint64 `mapstructure:"seed"`
}

// InitConfig holds configuration for warehouse provisioning.
type InitConfig struct {
	// DropExisting drops the warehouse tables before creating them.
	DropExisting bool `mapstructure:"drop_existing"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		DataDir:  "./data",
		LogLevel: "info",
		Generate: GenerateConfig{
			Customers: 500,
			Products:  80,
			Orders:    3000,
			StartDate: "2022-01-01",
			EndDate:   "2024-12-31",
			Seed:      42,
		},
		Init: InitConfig{
			DropExisting: false,
		},
	}
}

// Load reads configuration from config files.
// Config file locations (in order of precedence):
// 1. Path specified by configFile parameter
// 2. ./retaildw.yaml
// 3. ~/.config/retaildw/config.yaml
func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("retaildw")
	v.SetConfigType("yaml")

	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "retaildw"))
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	}

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// Validate checks configuration shared by all subcommands.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data directory is required")
	}
	return nil
}

// ValidateGenerate checks configuration required for the generate command.
func (c *Config) ValidateGenerate() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Generate.Customers < 1 {
		return fmt.Errorf("generate.customers must be at least 1")
	}
	if c.Generate.Products < 1 {
		return fmt.Errorf("generate.products must be at least 1")
	}
	if c.Generate.Orders < 0 {
		return fmt.Errorf("generate.orders must be non-negative")
	}
	start, err := time.Parse("2006-01-02", c.Generate.StartDate)
	if err != nil {
		return fmt.Errorf("generate.start_date must be YYYY-MM-DD")
	}
	end, err := time.Parse("2006-01-02", c.Generate.EndDate)
	if err != nil {
		return fmt.Errorf("generate.end_date must be YYYY-MM-DD")
	}
	if end.Before(start) {
		return fmt.Errorf("generate.end_date must not be before generate.start_date")
	}
	return nil
}

// ValidateInit checks configuration required for the init command.
func (c *Config) ValidateInit() error {
	if c.Connection == "" {
		return fmt.Errorf("connection string is required")
	}
	return nil
}

// ValidateRun checks configuration required for the run command.
func (c *Config) ValidateRun() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Connection == "" {
		return fmt.Errorf("connection string is required")
	}
	return nil
}
