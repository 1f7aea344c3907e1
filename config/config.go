// Package config loads the alloc settings from the environment.
package config

import (
	"math"
	"os"
	"slices"
	"strconv"

	"github.com/etnz/allocator"
	"github.com/joho/godotenv"
)

// Environment variables read by Load.
const (
	EnvCurrency          = "ALLOCATOR_CURRENCY"
	EnvFeeRate           = "ALLOCATOR_FEE_RATE"
	EnvOddLotMinFee      = "ALLOCATOR_ODD_LOT_MIN_FEE"
	EnvRoundLotMinFee    = "ALLOCATOR_ROUND_LOT_MIN_FEE"
	EnvRoundLotThreshold = "ALLOCATOR_ROUND_LOT_THRESHOLD"
	EnvFeeRounding       = "ALLOCATOR_FEE_ROUNDING"
	EnvFeeDigits         = "ALLOCATOR_FEE_DIGITS"
	EnvWeighting         = "ALLOCATOR_WEIGHTING"
	EnvTolerance         = "ALLOCATOR_TOLERANCE"
	EnvSetupFile         = "ALLOCATOR_SETUP_FILE"
	EnvLogLevel          = "ALLOCATOR_LOG_LEVEL"
	EnvLogPretty         = "ALLOCATOR_LOG_PRETTY"
	EnvStyle             = "ALLOCATOR_STYLE"
)

// Config holds application configuration
type Config struct {
	Currency          string
	FeeRate           float64
	OddLotMinFee      int64
	RoundLotMinFee    int64
	RoundLotThreshold int64
	FeeRounding       string
	FeeDigits         int
	Weighting         string
	Tolerance         float64
	SetupFile         string
	LogLevel          string
	LogPretty         bool
	Style             string // glamour style of the markdown output
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	defaults := allocator.TaiwanFees()
	cfg := &Config{
		Currency:          getEnv(EnvCurrency, "TWD"),
		FeeRate:           getEnvAsFloat(EnvFeeRate, defaults.Rate),
		OddLotMinFee:      getEnvAsInt64(EnvOddLotMinFee, defaults.OddLotMinFee),
		RoundLotMinFee:    getEnvAsInt64(EnvRoundLotMinFee, defaults.RoundLotMinFee),
		RoundLotThreshold: getEnvAsInt64(EnvRoundLotThreshold, defaults.RoundLotThreshold),
		FeeRounding:       getEnv(EnvFeeRounding, defaults.Rounding.String()),
		FeeDigits:         int(getEnvAsInt64(EnvFeeDigits, 0)),
		Weighting:         getEnv(EnvWeighting, allocator.Reject.String()),
		Tolerance:         getEnvAsFloat(EnvTolerance, allocator.DefaultTolerance),
		SetupFile:         getEnv(EnvSetupFile, "allocation.json"),
		LogLevel:          getEnv(EnvLogLevel, "warn"),
		LogPretty:         getEnvAsBool(EnvLogPretty, true),
		Style:             getEnv(EnvStyle, "auto"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var (
	logLevels = []string{"debug", "info", "warn", "error"}
	styles    = []string{"auto", "ascii", "dark", "dracula", "light", "notty", "pink", "tokyo-night"}
)

// Validate checks every setting and reports all the invalid ones.
func (c *Config) Validate() error {
	var errs allocator.ValidationErrors
	if c.Currency == "" {
		errs = append(errs, allocator.ValidationError{Field: EnvCurrency, Message: "is required"})
	}
	if _, err := allocator.ParseRoundingMode(c.FeeRounding); err != nil {
		errs = append(errs, allocator.ValidationError{Field: EnvFeeRounding, Message: err.Error()})
	} else if err := c.Fees().Validate(); err != nil {
		for _, e := range err.(allocator.ValidationErrors) {
			e.Field = "fees." + e.Field
			errs = append(errs, e)
		}
	}
	if _, err := allocator.ParseWeightMode(c.Weighting); err != nil {
		errs = append(errs, allocator.ValidationError{Field: EnvWeighting, Message: err.Error()})
	}
	if math.IsNaN(c.Tolerance) || c.Tolerance < 0 || c.Tolerance >= 1 {
		errs = append(errs, allocator.ValidationError{Field: EnvTolerance, Message: "must be in [0, 1)"})
	}
	if !slices.Contains(logLevels, c.LogLevel) {
		errs = append(errs, allocator.ValidationError{Field: EnvLogLevel, Message: "must be debug, info, warn or error"})
	}
	if !slices.Contains(styles, c.Style) {
		errs = append(errs, allocator.ValidationError{Field: EnvStyle, Message: "unknown style " + strconv.Quote(c.Style)})
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Fees returns the configured fee schedule. An unknown rounding is half-up,
// Validate reports it.
func (c *Config) Fees() allocator.FeeConfig {
	rounding, _ := allocator.ParseRoundingMode(c.FeeRounding)
	return allocator.FeeConfig{
		Rate:              c.FeeRate,
		OddLotMinFee:      c.OddLotMinFee,
		RoundLotMinFee:    c.RoundLotMinFee,
		RoundLotThreshold: c.RoundLotThreshold,
		Rounding:          rounding,
		Digits:            int32(c.FeeDigits),
	}
}

// WeightMode returns the configured weight mode.
func (c *Config) WeightMode() allocator.WeightMode {
	mode, _ := allocator.ParseWeightMode(c.Weighting)
	return mode
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
