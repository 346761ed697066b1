package engine

import (
	"math/rand"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// World is the explicit god-object replacement named in the Design Notes:
// every piece of simulation state threaded through operations, with no
// hidden globals. Mirrors the teacher's sim.Simulator (sim/simulator.go)
// in shape — a grid/fleet/clock bundle driven one tick at a time — widened
// to also own the request pool and PRNG.
type World struct {
	Config Config

	// RunID correlates one run's logs, CSV reports and telemetry, the way
	// flyingrobots tags a session with a generated id at startup.
	RunID uuid.UUID

	Grid    *Grid
	Pool    *RequestPool
	Drivers map[int]*Driver
	Requests map[int]*Request

	Tick int
	RNG  *rand.Rand

	Metrics *MetricsCollector
	Log     logrus.FieldLogger

	nextRequestID int
	secondaryIDs  []int
	secondaryAt   int
}

// NewWorld builds a simulation ready to step, placing num_drivers drivers
// at uniformly random cells. log may be nil, in which case a disabled
// logger discards everything (tests and benchmarks run silent).
func NewWorld(cfg Config, log logrus.FieldLogger) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		l := logrus.New()
		l.SetOutput(ioDiscard{})
		log = l
	}

	w := &World{
		Config:   cfg,
		RunID:    uuid.New(),
		Grid:     NewGrid(cfg.Width, cfg.Height),
		Pool:     NewRequestPool(),
		Drivers:  make(map[int]*Driver),
		Requests: make(map[int]*Request),
		RNG:      rand.New(rand.NewSource(cfg.Seed)),
		Metrics:  NewMetricsCollector(),
		Log:      log,
	}

	if cfg.TotalSteps > 0 {
		w.secondaryIDs = w.RNG.Perm(cfg.TotalSteps/5 + cfg.NumDrivers + 1)
	}

	for i := 0; i < cfg.NumDrivers; i++ {
		loc := Location{X: w.RNG.Intn(cfg.Width), Y: w.RNG.Intn(cfg.Height)}
		d := &Driver{
			ID:        i,
			Current:   loc,
			Capacity:  cfg.Capacity,
			Strategy:  cfg.Strategy,
			MultiPass: cfg.MultiPass,
			DetourMax: cfg.DetourMax,
		}
		w.Drivers[d.ID] = d
		w.Grid.Place(AgentRef{Kind: KindDriver, ID: d.ID}, loc)
	}

	w.Log.WithField("run_id", w.RunID).Info("world initialized")
	return w, nil
}

type ioDiscard struct{}

func (ioDiscard) Write(p []byte) (int, error) { return len(p), nil }

// nextSecondaryID hands out the next id from the pre-shuffled pool the
// original source draws and shrinks (Open Question: not load-bearing), or
//0 when total_steps was never given.
func (w *World) nextSecondaryID() int {
	if len(w.secondaryIDs) == 0 {
		return 0
	}
	id := w.secondaryIDs[w.secondaryAt%len(w.secondaryIDs)]
	w.secondaryAt++
	return id
}

// spawnRequest creates and places a new request at a uniformly random
// source cell with a uniformly random, distinct destination, per 4.6 step
// 3 and the rejection-sampling rule of §3.
func (w *World) spawnRequest() *Request {
	src := Location{X: w.RNG.Intn(w.Config.Width), Y: w.RNG.Intn(w.Config.Height)}
	dest := src
	for dest == src {
		dest = Location{X: w.RNG.Intn(w.Config.Width), Y: w.RNG.Intn(w.Config.Height)}
	}

	base, spread := w.Config.WaitingMin, w.Config.WaitingMax-w.Config.WaitingMin
	budget := base
	if spread > 0 {
		budget += w.RNG.Intn(spread + 1)
	}

	id := w.nextRequestID
	w.nextRequestID++
	r := &Request{
		ID:            id,
		Src:           src,
		Dest:          dest,
		NumPeople:     1,
		RequestTime:   w.Tick,
		WaitingBudget: budget,
		State:         StateWaiting,
		secondaryID:   w.nextSecondaryID(),
	}
	w.Requests[id] = r
	w.Pool.Push(id)
	w.Grid.Place(AgentRef{Kind: KindRequest, ID: id}, src)
	return r
}

// abandonRequest removes r from the pool and grid and marks it ABANDONED,
// per 4.3's deadline-expiry rule.
func (w *World) abandonRequest(r *Request) {
	w.Pool.Remove(r.ID)
	w.Grid.Remove(AgentRef{Kind: KindRequest, ID: r.ID})
	r.MarkAbandoned()
	w.Log.WithFields(logrus.Fields{"request_id": r.ID, "tick": w.Tick}).Debug("request abandoned")
}

// releaseRequest drops a terminal request from the active set entirely,
// the second phase of the two-phase release in 4.3.
func (w *World) releaseRequest(id int) {
	delete(w.Requests, id)
}

// activeAgents returns every agent ref still live this tick, in a fixed
// base order (drivers then requests, each by ascending id); Step permutes
// it before activation.
func (w *World) activeAgents() []AgentRef {
	out := make([]AgentRef, 0, len(w.Drivers)+len(w.Requests))
	for _, id := range orderedDriverIDs(w.Drivers) {
		out = append(out, AgentRef{Kind: KindDriver, ID: id})
	}
	for _, id := range orderedRequestIDs(w.Requests) {
		out = append(out, AgentRef{Kind: KindRequest, ID: id})
	}
	return out
}

// Step advances the simulation by one tick, per 4.6: snapshot metrics,
// activate every live agent once in random order, maybe spawn a new
// request, then advance the clock.
func (w *World) Step() {
	w.Metrics.Collect(w)

	agents := w.activeAgents()
	perm := w.RNG.Perm(len(agents))
	for _, idx := range perm {
		ref := agents[idx]
		switch ref.Kind {
		case KindDriver:
			if d, ok := w.Drivers[ref.ID]; ok {
				d.act(w)
			}
		case KindRequest:
			if r, ok := w.Requests[ref.ID]; ok {
				r.act(w)
			}
		}
	}

	if w.Config.ArrivalPeriod > 0 && w.Tick%w.Config.ArrivalPeriod == 0 {
		w.spawnRequest()
	}

	w.Tick++
}

// Run advances the simulation by n ticks.
func (w *World) Run(n int) {
	for i := 0; i < n; i++ {
		w.Step()
	}
}
