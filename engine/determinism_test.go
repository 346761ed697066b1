package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runDeterministic builds a fresh world from cfg and steps it n times,
// returning its metrics rows for comparison.
func runDeterministic(t *testing.T, cfg Config, n int) *MetricsCollector {
	t.Helper()
	w, err := NewWorld(cfg, nil)
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		w.Step()
	}
	return w.Metrics
}

// TestDeterministicReplay is Testable Property 7: identical (seed, config)
// produces an identical metrics stream, tick for tick and field for field.
func TestDeterministicReplay(t *testing.T) {
	cfg := Config{
		Width: 12, Height: 12, NumDrivers: 6, Capacity: 4,
		MultiPass: true, DetourMax: 5, Strategy: StrategyWaiting,
		Seed: 2024, ArrivalPeriod: 4, WaitingMin: 8, WaitingMax: 30,
		TotalSteps: 150,
	}

	first := runDeterministic(t, cfg, 150)
	second := runDeterministic(t, cfg, 150)

	require.Equal(t, len(first.ModelRows), len(second.ModelRows))
	for i := range first.ModelRows {
		assert.Equal(t, first.ModelRows[i], second.ModelRows[i], "model row %d diverged", i)
	}

	require.Equal(t, len(first.AgentRows), len(second.AgentRows))
	for i := range first.AgentRows {
		a, b := first.AgentRows[i], second.AgentRows[i]
		assert.Equal(t, a.Tick, b.Tick)
		assert.Equal(t, a.Kind, b.Kind)
		assert.Equal(t, a.ID, b.ID)
		assert.Equal(t, derefInt(a.StepsMoved), derefInt(b.StepsMoved))
		assert.Equal(t, derefInt(a.IdleTicks), derefInt(b.IdleTicks))
		assert.Equal(t, derefInt(a.RequestTime), derefInt(b.RequestTime))
		assert.Equal(t, derefInt(a.PickupTime), derefInt(b.PickupTime))
		assert.Equal(t, derefInt(a.DropoffTime), derefInt(b.DropoffTime))
		assert.Equal(t, derefInt(a.SecondaryID), derefInt(b.SecondaryID))
	}
}

// TestDeterministicReplayDivergesOnSeed is the converse check: a different
// seed with everything else held fixed is expected, not required, to
// diverge — this just guards against a no-op PRNG wiring that would make
// every run identical regardless of seed.
func TestDeterministicReplayDivergesOnSeed(t *testing.T) {
	base := Config{
		Width: 12, Height: 12, NumDrivers: 6, Capacity: 4,
		MultiPass: true, DetourMax: 5, Strategy: StrategyWaiting,
		ArrivalPeriod: 4, WaitingMin: 8, WaitingMax: 30, TotalSteps: 150,
	}

	a := base
	a.Seed = 1
	b := base
	b.Seed = 2

	first := runDeterministic(t, a, 150)
	second := runDeterministic(t, b, 150)

	diverged := len(first.AgentRows) != len(second.AgentRows)
	if !diverged {
		for i := range first.AgentRows {
			x, y := first.AgentRows[i], second.AgentRows[i]
			if x.Tick != y.Tick || x.Kind != y.Kind || x.ID != y.ID ||
				derefInt(x.StepsMoved) != derefInt(y.StepsMoved) ||
				derefInt(x.IdleTicks) != derefInt(y.IdleTicks) ||
				derefInt(x.RequestTime) != derefInt(y.RequestTime) ||
				derefInt(x.PickupTime) != derefInt(y.PickupTime) ||
				derefInt(x.DropoffTime) != derefInt(y.DropoffTime) ||
				derefInt(x.SecondaryID) != derefInt(y.SecondaryID) {
				diverged = true
				break
			}
		}
	}
	assert.True(t, diverged, "two different seeds produced byte-identical metrics streams")
}

func derefInt(p *int) int {
	if p == nil {
		return -1
	}
	return *p
}
