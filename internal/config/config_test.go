package config

import (
	"os"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lokhei/Ridesharing-Simulation/engine"
)

// TestLoadDefaults asserts an empty viper with no config file and no
// environment variables resolves to exactly engine.DefaultConfig.
func TestLoadDefaults(t *testing.T) {
	v := viper.New()
	cfg, err := Load(v, "")
	require.NoError(t, err)

	want := engine.DefaultConfig()
	assert.Equal(t, want, cfg)
}

// TestLoadConfigFileOverridesDefault checks a config file layer wins over
// engine.DefaultConfig's seeded values.
func TestLoadConfigFileOverridesDefault(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "blisfleet-*.yaml")
	require.NoError(t, err)
	_, err = f.WriteString("num_drivers: 9\nstrategy: WAITING\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	v := viper.New()
	cfg, err := Load(v, f.Name())
	require.NoError(t, err)

	assert.Equal(t, 9, cfg.NumDrivers)
	assert.Equal(t, engine.StrategyWaiting, cfg.Strategy)
	// Untouched fields still fall back to the default layer.
	assert.Equal(t, engine.DefaultConfig().Width, cfg.Width)
}

// TestLoadEnvOverridesConfigFile checks BLISFLEET_-prefixed environment
// variables win over a config file, per the documented precedence.
func TestLoadEnvOverridesConfigFile(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "blisfleet-*.yaml")
	require.NoError(t, err)
	_, err = f.WriteString("num_drivers: 9\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	t.Setenv("BLISFLEET_NUM_DRIVERS", "7")

	v := viper.New()
	cfg, err := Load(v, f.Name())
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.NumDrivers)
}

// TestLoadExplicitSetOverridesEnv checks an explicit v.Set — the layer
// cmd/'s bindRunFlags uses for flags the user actually passed — wins over
// everything else, matching flags-win-last precedence.
func TestLoadExplicitSetOverridesEnv(t *testing.T) {
	t.Setenv("BLISFLEET_NUM_DRIVERS", "7")

	v := viper.New()
	v.Set(KeyNumDrivers, 3)
	cfg, err := Load(v, "")
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.NumDrivers)
}

// TestLoadWaitingTimeDerivesRange checks the single waiting-time flag
// widens into a [base, base+10] window rather than replacing both bounds
// independently.
func TestLoadWaitingTimeDerivesRange(t *testing.T) {
	v := viper.New()
	v.Set(KeyWaitingTime, 20)
	cfg, err := Load(v, "")
	require.NoError(t, err)

	assert.Equal(t, 20, cfg.WaitingMin)
	assert.Equal(t, 30, cfg.WaitingMax)
}

// TestLoadRejectsInvalidStrategy checks an unrecognized strategy name
// fails fast in Load, before Validate even runs.
func TestLoadRejectsInvalidStrategy(t *testing.T) {
	v := viper.New()
	v.Set(KeyStrategy, "NEAREST")
	_, err := Load(v, "")
	require.Error(t, err)
}

// TestLoadRejectsInvalidConfig checks Load surfaces engine.Config.Validate's
// *engine.ConfigError unchanged, since cmd/run.go type-switches on it.
func TestLoadRejectsInvalidConfig(t *testing.T) {
	v := viper.New()
	v.Set(KeyNumDrivers, 0)
	_, err := Load(v, "")
	require.Error(t, err)
	var cerr *engine.ConfigError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "num_drivers", cerr.Field)
}

func TestLoadMissingConfigFile(t *testing.T) {
	v := viper.New()
	_, err := Load(v, "/no/such/file.yaml")
	require.Error(t, err)
}
