package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmeshcher/carrental-system/internal/model"
)

func TestParseConfig(t *testing.T) {
	type want struct {
		runAddress     string
		totalCars      int
		authSecret     string
		reportSchedule string
		rateLimit      float64
		currency       string
	}

	tests := []struct {
		name  string
		env   map[string]string
		flags []string
		want  want
	}{
		{
			name:  "defaults",
			env:   map[string]string{},
			flags: []string{},
			want: want{
				runAddress:     "localhost:8080",
				totalCars:      100,
				authSecret:     "carrental-secret",
				reportSchedule: "@every 1h",
				rateLimit:      20,
				currency:       "₹",
			},
		},
		{
			name: "env only",
			env: map[string]string{
				"RUN_ADDRESS":     "localhost:9999",
				"TOTAL_CARS":      "25",
				"AUTH_SECRET":     "env-secret",
				"REPORT_SCHEDULE": "@every 5m",
				"RATE_LIMIT":      "0",
				"CURRENCY":        "$",
			},
			flags: []string{},
			want: want{
				runAddress:     "localhost:9999",
				totalCars:      25,
				authSecret:     "env-secret",
				reportSchedule: "@every 5m",
				rateLimit:      0,
				currency:       "$",
			},
		},
		{
			name: "flags only",
			env:  map[string]string{},
			flags: []string{
				"-a", "localhost:7777",
				"-n", "12",
				"-s", "flag-secret",
				"-c", "0 0 * * * *",
				"-l", "5",
				"-u", "€",
			},
			want: want{
				runAddress:     "localhost:7777",
				totalCars:      12,
				authSecret:     "flag-secret",
				reportSchedule: "0 0 * * * *",
				rateLimit:      5,
				currency:       "€",
			},
		},
		{
			name: "env overrides flags",
			env: map[string]string{
				"RUN_ADDRESS": "env:9000",
				"TOTAL_CARS":  "40",
			},
			flags: []string{
				"-a", "flag:8000",
				"-n", "12",
			},
			want: want{
				runAddress:     "env:9000",
				totalCars:      40,
				authSecret:     "carrental-secret",
				reportSchedule: "@every 1h",
				rateLimit:      20,
				currency:       "₹",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ExitOnError)

			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			os.Args = append([]string{"test"}, tt.flags...)

			cfg, err := Parse()
			require.NoError(t, err)

			assert.Equal(t, tt.want.runAddress, cfg.RunAddress)
			assert.Equal(t, tt.want.totalCars, cfg.TotalCars)
			assert.Equal(t, tt.want.authSecret, cfg.AuthSecret)
			assert.Equal(t, tt.want.reportSchedule, cfg.ReportSchedule)
			assert.Equal(t, tt.want.rateLimit, cfg.RateLimit)
			assert.Equal(t, tt.want.currency, cfg.Currency)
			assert.Equal(t, model.DefaultRates(), cfg.Rates)
		})
	}
}

func TestParseConfig_InvalidTotal(t *testing.T) {
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	t.Setenv("TOTAL_CARS", "-3")
	os.Args = []string{"test"}

	_, err := Parse()
	assert.Error(t, err)
}

func TestParseConfig_RatesFileFromEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rates.yaml")
	require.NoError(t, os.WriteFile(path, []byte("hourly: 60\n"), 0o600))

	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	t.Setenv("RATES_FILE", path)
	os.Args = []string{"test"}

	cfg, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, path, cfg.RatesFile)
	assert.Equal(t, 60.0, cfg.Rates.Hourly)
}

func TestLoadRates(t *testing.T) {
	dir := t.TempDir()

	write := func(name, content string) string {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
		return p
	}

	t.Run("empty path gives defaults", func(t *testing.T) {
		rates, err := LoadRates("")
		require.NoError(t, err)
		assert.Equal(t, model.DefaultRates(), rates)
	})

	t.Run("full file", func(t *testing.T) {
		p := write("full.yaml", "hourly: 10\ndaily: 200\nweekly: 1000\n")
		rates, err := LoadRates(p)
		require.NoError(t, err)
		assert.Equal(t, model.RateTable{Hourly: 10, Daily: 200, Weekly: 1000}, rates)
	})

	t.Run("partial file keeps defaults", func(t *testing.T) {
		p := write("partial.yaml", "daily: 650.5\n")
		rates, err := LoadRates(p)
		require.NoError(t, err)
		assert.Equal(t, model.RateTable{Hourly: 50, Daily: 650.5, Weekly: 4000}, rates)
	})

	t.Run("non-positive rate", func(t *testing.T) {
		p := write("zero.yaml", "weekly: 0\n")
		_, err := LoadRates(p)
		assert.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		p := write("bad.yaml", "hourly: [1, 2\n")
		_, err := LoadRates(p)
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadRates(filepath.Join(dir, "nope.yaml"))
		assert.Error(t, err)
	})
}
