package cmd

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/etnz/allocator/config"
	"github.com/stretchr/testify/require"
)

// testConfig is the default configuration, without reading the environment.
func testConfig() *config.Config {
	return &config.Config{
		Currency:          "TWD",
		FeeRate:           0.001425,
		OddLotMinFee:      1,
		RoundLotMinFee:    20,
		RoundLotThreshold: 1000,
		FeeRounding:       "half-up",
		Weighting:         "reject",
		Tolerance:         0.0001,
		SetupFile:         "allocation.json",
		LogLevel:          "warn",
		Style:             "notty",
	}
}

// parseCalc creates a calc command and parses args with it.
func parseCalc(t *testing.T, args ...string) (*calcCmd, map[string]bool) {
	t.Helper()
	c := &calcCmd{cfg: testConfig()}
	f := flag.NewFlagSet("calc", flag.ContinueOnError)
	c.SetFlags(f)
	require.NoError(t, f.Parse(args))
	return c, isSet(f)
}

// writeFile writes content in a temporary file and returns its path.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}
