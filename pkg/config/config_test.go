package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "tickers.txt", cfg.TickersFile)
	assert.Equal(t, "output", cfg.OutputDir)
	assert.Equal(t, 6, cfg.LookbackMonths)
	assert.Equal(t, 60, cfg.MinHistory)
	assert.Equal(t, 10, cfg.TopN)
	assert.Equal(t, "smtp.gmail.com", cfg.SMTP.Host)
	assert.Equal(t, 587, cfg.SMTP.Port)
	assert.False(t, cfg.SMTP.Configured(), "mail should be off without credentials")
	assert.Equal(t, "https://query1.finance.yahoo.com", cfg.Provider.BaseURL)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("LOOKBACK_MONTHS", "12")
	t.Setenv("SMTP_USER", "scanner@example.com")
	t.Setenv("SMTP_PASS", "app-password")
	t.Setenv("SMTP_TO", "a@example.com, b@example.com,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, 12, cfg.LookbackMonths)
	assert.True(t, cfg.SMTP.Configured())
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, cfg.SMTP.To)
}

func TestLoad_InvalidEnv(t *testing.T) {
	t.Setenv("ENV", "sandbox")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ENV must be one of")
}

func TestLoad_InvalidNumbersFallBack(t *testing.T) {
	t.Setenv("LOOKBACK_MONTHS", "not-a-number")
	t.Setenv("PROVIDER_TIMEOUT", "banana")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 6, cfg.LookbackMonths)
	assert.Equal(t, "30s", cfg.Provider.Timeout.String())
}

func TestLoad_MinHistoryTooSmall(t *testing.T) {
	t.Setenv("MIN_HISTORY", "1")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MIN_HISTORY")
}

func TestConfig_Lookback(t *testing.T) {
	cfg := &Config{LookbackMonths: 6}
	assert.Equal(t, "4320h0m0s", cfg.Lookback().String())
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"single", "a@example.com", []string{"a@example.com"}},
		{"spaces and trailing comma", " a@x.com ,b@y.com, ", []string{"a@x.com", "b@y.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitList(tt.input))
		})
	}
}
