package engine

import "fmt"

// ConfigError reports an invalid simulation configuration value. It is the
// only error type the engine returns from constructors; anything discovered
// mid-run that should never happen (a broken invariant) panics instead, the
// same split the teacher draws between a bad route file (returned error) and
// a corrupt in-memory route (panic) in model/route_loader.go.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("engine: invalid %s: %s", e.Field, e.Reason)
}

// invariantViolation panics with a uniform message, used at the few spots
// where a broken invariant would otherwise corrupt state silently.
func invariantViolation(format string, args ...interface{}) {
	panic(fmt.Sprintf("engine: invariant violation: "+format, args...))
}
