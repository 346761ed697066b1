package engine

// Config is the full set of knobs a run needs, gathered in one place the
// way the teacher's sim.Config gathers route/headway/seed (sim/simulator.go).
type Config struct {
	Width, Height int
	NumDrivers    int
	Capacity      int
	MultiPass     bool
	DetourMax     int
	Strategy      Strategy
	Seed          int64

	ArrivalPeriod int // spawn a request every N ticks; 0 disables autospawn
	WaitingMin    int // inclusive lower bound of a spawned request's waiting budget
	WaitingMax    int // inclusive upper bound

	TotalSteps int // 0 means unbounded; used only to size the secondary-id pool
}

// DefaultConfig is the §6 default configuration: the fallback
// internal/config.Load seeds viper with before any file, environment
// variable, or flag overrides it.
func DefaultConfig() Config {
	return Config{
		Width:         10,
		Height:        10,
		NumDrivers:    5,
		Capacity:      4,
		MultiPass:     false,
		DetourMax:     10,
		Strategy:      StrategyClosest,
		Seed:          125,
		ArrivalPeriod: 5,
		WaitingMin:    10,
		WaitingMax:    40,
	}
}

// Validate checks the config is usable, returning a *ConfigError naming the
// first bad field.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0:
		return &ConfigError{Field: "width", Reason: "must be positive"}
	case c.Height <= 0:
		return &ConfigError{Field: "height", Reason: "must be positive"}
	case c.NumDrivers <= 0:
		return &ConfigError{Field: "num_drivers", Reason: "must be positive"}
	case c.Capacity <= 0:
		return &ConfigError{Field: "capacity", Reason: "must be positive"}
	case c.DetourMax < 0:
		return &ConfigError{Field: "detour_max", Reason: "must be >= 0"}
	case c.Strategy != StrategyQueue && c.Strategy != StrategyClosest && c.Strategy != StrategyWaiting:
		return &ConfigError{Field: "strategy", Reason: "unrecognized strategy"}
	case c.ArrivalPeriod < 0:
		return &ConfigError{Field: "arrival_period", Reason: "must be >= 0"}
	case c.WaitingMin <= 0:
		return &ConfigError{Field: "waiting_min", Reason: "must be positive"}
	case c.WaitingMax < c.WaitingMin:
		return &ConfigError{Field: "waiting_max", Reason: "must be >= waiting_min"}
	case c.NumDrivers > c.Width*c.Height:
		return &ConfigError{Field: "num_drivers", Reason: "exceeds grid capacity"}
	}
	return nil
}
