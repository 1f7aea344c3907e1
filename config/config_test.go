package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/etnz/allocator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets every variable Load reads, for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		EnvCurrency, EnvFeeRate, EnvOddLotMinFee, EnvRoundLotMinFee, EnvRoundLotThreshold,
		EnvFeeRounding, EnvFeeDigits, EnvWeighting, EnvTolerance, EnvSetupFile,
		EnvLogLevel, EnvLogPretty, EnvStyle,
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "TWD", cfg.Currency)
	assert.Equal(t, allocator.TaiwanFees(), cfg.Fees())
	assert.Equal(t, allocator.Reject, cfg.WeightMode())
	assert.Equal(t, allocator.DefaultTolerance, cfg.Tolerance)
	assert.Equal(t, "allocation.json", cfg.SetupFile)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.True(t, cfg.LogPretty)
	assert.Equal(t, "auto", cfg.Style)
}

func TestLoad_Environment(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvCurrency, "USD")
	t.Setenv(EnvFeeRate, "0.002")
	t.Setenv(EnvOddLotMinFee, "5")
	t.Setenv(EnvFeeRounding, "floor")
	t.Setenv(EnvFeeDigits, "2")
	t.Setenv(EnvWeighting, "renormalize")
	t.Setenv(EnvLogPretty, "false")

	cfg, err := Load()
	require.NoError(t, err)

	fees := cfg.Fees()
	assert.Equal(t, "USD", cfg.Currency)
	assert.Equal(t, 0.002, fees.Rate)
	assert.Equal(t, int64(5), fees.OddLotMinFee)
	assert.Equal(t, allocator.Floor, fees.Rounding)
	assert.Equal(t, int32(2), fees.Digits)
	assert.Equal(t, allocator.Renormalize, cfg.WeightMode())
	assert.False(t, cfg.LogPretty)
}

func TestLoad_MalformedNumbersUseDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvFeeRate, "a lot")
	t.Setenv(EnvRoundLotThreshold, "1k")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, allocator.TaiwanFees().Rate, cfg.FeeRate)
	assert.Equal(t, int64(1000), cfg.RoundLotThreshold)
}

func TestLoad_Invalid(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvFeeRounding, "ceil")
	t.Setenv(EnvWeighting, "ignore")
	t.Setenv(EnvLogLevel, "loud")
	t.Setenv(EnvStyle, "neon")

	_, err := Load()
	var errs allocator.ValidationErrors
	require.True(t, errors.As(err, &errs), "got %v", err)
	var fields []string
	for _, e := range errs {
		fields = append(fields, e.Field)
	}
	assert.Equal(t, []string{EnvFeeRounding, EnvWeighting, EnvLogLevel, EnvStyle}, fields)
}

func TestLoad_NonFiniteTolerance(t *testing.T) {
	for _, value := range []string{"NaN", "Inf", "-Inf"} {
		t.Run(value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(EnvTolerance, value)

			_, err := Load()
			var errs allocator.ValidationErrors
			require.True(t, errors.As(err, &errs), "got %v", err)
			require.Len(t, errs, 1)
			assert.Equal(t, EnvTolerance, errs[0].Field)
		})
	}
}

func TestLoad_InvalidFees(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvFeeRate, "0.5")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fees.rate")
}

func TestLoad_DotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("ALLOCATOR_CURRENCY=JPY\n"), 0644))
	t.Chdir(dir)
	// godotenv never overrides a variable already set, even empty.
	os.Unsetenv(EnvCurrency)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "JPY", cfg.Currency)
}
