// Package config loads simulation parameters from flags, environment
// variables and an optional config file into an engine.Config, the way the
// teacher's data package loads route and fleet files but widened to use
// viper's layered precedence instead of raw JSON decoding.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/lokhei/Ridesharing-Simulation/engine"
)

// Keys are the recognized option names of §6, exported so cmd/ can bind
// cobra flags to the same names viper reads from file/env.
const (
	KeyNumDrivers    = "num_drivers"
	KeyWidth         = "width"
	KeyHeight        = "height"
	KeyMultiPass     = "multi_pass"
	KeySeed          = "seed_int"
	KeyStrategy      = "strategy"
	KeyWaitingTime   = "waiting_time"
	KeyRate          = "rate"
	KeyTotalSteps    = "total_steps"
	KeyCapacity      = "capacity"
	KeyDetourMax     = "detour_max"
)

// Load seeds v's defaults from engine.DefaultConfig, optionally
// reading configPath (if non-empty) and BLISFLEET_-prefixed environment
// variables, then resolves it into an engine.Config.
func Load(v *viper.Viper, configPath string) (engine.Config, error) {
	def := engine.DefaultConfig()
	v.SetDefault(KeyNumDrivers, def.NumDrivers)
	v.SetDefault(KeyWidth, def.Width)
	v.SetDefault(KeyHeight, def.Height)
	v.SetDefault(KeyMultiPass, def.MultiPass)
	v.SetDefault(KeySeed, def.Seed)
	v.SetDefault(KeyStrategy, def.Strategy.String())
	v.SetDefault(KeyRate, def.ArrivalPeriod)
	v.SetDefault(KeyTotalSteps, def.TotalSteps)
	v.SetDefault(KeyCapacity, def.Capacity)
	v.SetDefault(KeyDetourMax, def.DetourMax)

	v.SetEnvPrefix("blisfleet")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return engine.Config{}, fmt.Errorf("config: read %s: %w", configPath, err)
		}
	}

	strategy, err := engine.ParseStrategy(strings.ToUpper(v.GetString(KeyStrategy)))
	if err != nil {
		return engine.Config{}, err
	}

	waitingMin, waitingMax := def.WaitingMin, def.WaitingMax
	if v.IsSet(KeyWaitingTime) {
		base := v.GetInt(KeyWaitingTime)
		waitingMin, waitingMax = base, base+10
	}

	cfg := engine.Config{
		Width:         v.GetInt(KeyWidth),
		Height:        v.GetInt(KeyHeight),
		NumDrivers:    v.GetInt(KeyNumDrivers),
		Capacity:      v.GetInt(KeyCapacity),
		MultiPass:     v.GetBool(KeyMultiPass),
		DetourMax:     v.GetInt(KeyDetourMax),
		Strategy:      strategy,
		Seed:          int64(v.GetInt(KeySeed)),
		ArrivalPeriod: v.GetInt(KeyRate),
		WaitingMin:    waitingMin,
		WaitingMax:    waitingMax,
		TotalSteps:    v.GetInt(KeyTotalSteps),
	}
	if err := cfg.Validate(); err != nil {
		return engine.Config{}, err
	}
	return cfg, nil
}
