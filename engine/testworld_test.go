package engine

import (
	"math/rand"

	"github.com/sirupsen/logrus"
)

// newTestWorld builds an empty World for scenario tests: no pre-placed
// drivers or requests, arrival autospawn disabled so tests control every
// agent explicitly.
func newTestWorld(width, height int) *World {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return &World{
		Config:   Config{Width: width, Height: height, ArrivalPeriod: 0},
		Grid:     NewGrid(width, height),
		Pool:     NewRequestPool(),
		Drivers:  map[int]*Driver{},
		Requests: map[int]*Request{},
		RNG:      rand.New(rand.NewSource(1)),
		Metrics:  NewMetricsCollector(),
		Log:      log,
	}
}

func addDriver(w *World, id int, loc Location, strategy Strategy, multiPass bool, capacity, detourMax int) *Driver {
	d := &Driver{
		ID:        id,
		Current:   loc,
		Capacity:  capacity,
		Strategy:  strategy,
		MultiPass: multiPass,
		DetourMax: detourMax,
	}
	w.Drivers[id] = d
	w.Grid.Place(AgentRef{Kind: KindDriver, ID: id}, loc)
	return d
}

// addWaitingRequest adds a request in state WAITING, in the pool and on
// the grid at src.
func addWaitingRequest(w *World, id int, src, dest Location, requestTime, waitingBudget int) *Request {
	r := &Request{
		ID:            id,
		Src:           src,
		Dest:          dest,
		NumPeople:     1,
		RequestTime:   requestTime,
		WaitingBudget: waitingBudget,
		State:         StateWaiting,
	}
	w.Requests[id] = r
	w.Pool.Push(id)
	w.Grid.Place(AgentRef{Kind: KindRequest, ID: id}, src)
	return r
}

// addAssignedRequest adds a request already ASSIGNED to some driver's
// route: on the grid at src (still visible, per §3), not in the pool.
func addAssignedRequest(w *World, id int, src, dest Location, requestTime, waitingBudget int) *Request {
	r := &Request{
		ID:            id,
		Src:           src,
		Dest:          dest,
		NumPeople:     1,
		RequestTime:   requestTime,
		WaitingBudget: waitingBudget,
		State:         StateAssigned,
	}
	w.Requests[id] = r
	w.Grid.Place(AgentRef{Kind: KindRequest, ID: id}, src)
	return r
}
