// Package config содержит логику чтения конфигурации сервиса проката.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/mmeshcher/carrental-system/internal/model"
	"github.com/mmeshcher/carrental-system/internal/receipt"
)

// Config содержит параметры конфигурации сервиса проката.
type Config struct {
	RunAddress     string  `env:"RUN_ADDRESS"`
	TotalCars      int     `env:"TOTAL_CARS"`
	RatesFile      string  `env:"RATES_FILE"`
	AuthSecret     string  `env:"AUTH_SECRET"`
	ReportSchedule string  `env:"REPORT_SCHEDULE"`
	RateLimit      float64 `env:"RATE_LIMIT"`
	Currency       string  `env:"CURRENCY"`

	Rates model.RateTable `env:"-"`
}

// Parse считывает конфигурацию из флагов командной строки и переменных окружения.
// Переменные окружения имеют приоритет над флагами.
func Parse() (*Config, error) {
	cfg := &Config{}

	flag.StringVar(&cfg.RunAddress, "a", "localhost:8080", "address and port for HTTP server")
	flag.IntVar(&cfg.TotalCars, "n", 100, "total number of cars in the fleet")
	flag.StringVar(&cfg.RatesFile, "f", "", "path to YAML file with rental rates")
	flag.StringVar(&cfg.AuthSecret, "s", "carrental-secret", "secret for signing customer cookies")
	flag.StringVar(&cfg.ReportSchedule, "c", "@every 1h", "cron schedule of the fleet report")
	flag.Float64Var(&cfg.RateLimit, "l", 20, "requests per second per client, 0 disables the limit")
	flag.StringVar(&cfg.Currency, "u", receipt.DefaultCurrency, "currency symbol for receipts")

	flag.Parse()

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.RunAddress == "" {
		cfg.RunAddress = "localhost:8080"
	}

	rates, err := LoadRates(cfg.RatesFile)
	if err != nil {
		return nil, err
	}
	cfg.Rates = rates

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadRates читает тарифы из YAML-файла. Отсутствующие в файле тарифы берутся по умолчанию,
// пустой путь означает тарифы по умолчанию.
func LoadRates(path string) (model.RateTable, error) {
	rates := model.DefaultRates()
	if path == "" {
		return rates, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return model.RateTable{}, fmt.Errorf("open rates file: %w", err)
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(&rates); err != nil {
		return model.RateTable{}, fmt.Errorf("decode rates file: %w", err)
	}

	if err := rates.Validate(); err != nil {
		return model.RateTable{}, fmt.Errorf("rates file %s: %w", path, err)
	}

	return rates, nil
}

// Validate проверяет согласованность конфигурации.
func (c *Config) Validate() error {
	if c.TotalCars <= 0 {
		return fmt.Errorf("total cars must be positive, got %d", c.TotalCars)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("rate limit must not be negative, got %v", c.RateLimit)
	}
	if c.ReportSchedule == "" {
		return errors.New("report schedule must not be empty")
	}
	return c.Rates.Validate()
}
