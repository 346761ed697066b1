package telemetry

import "github.com/lokhei/Ridesharing-Simulation/engine"

// Observer tracks cumulative counts across ticks so Observe can feed
// monotonic counters from a World that only exposes current-state maps.
type Observer struct {
	delivered int
	abandoned int
}

// Observe updates every collector from world's current state. Call once
// per tick, after World.Step.
func (o *Observer) Observe(w *engine.World) {
	TickCounter.Inc()

	idle, toHead := 0, 0
	for _, d := range w.Drivers {
		if d.IsIdle() {
			idle++
			continue
		}
		toHead += d.Current.Manhattan(d.Route[0].Loc)
	}
	DriversIdle.Set(float64(idle))
	TotalToHeadDistance.Set(float64(toHead))
	RequestsWaiting.Set(float64(w.Pool.Len()))

	delivered, abandoned := 0, 0
	for _, r := range w.Requests {
		switch r.State {
		case engine.StateDelivered:
			delivered++
		case engine.StateAbandoned:
			abandoned++
		}
	}
	if delivered > o.delivered {
		RequestsDelivered.Add(float64(delivered - o.delivered))
		o.delivered = delivered
	}
	if abandoned > o.abandoned {
		RequestsAbandoned.Add(float64(abandoned - o.abandoned))
		o.abandoned = abandoned
	}
}
