package engine

// Driver is a single vehicle: its position, capacity, onboard manifest,
// planned route, and dispatch strategy. Capacity and manifest bookkeeping
// mirror the teacher's Bus (model/bus.go: PassengersOnboard/IsFull/
// RemainingCapacity), generalized from a single-route bus corridor to an
// arbitrary insertable route over discrete grid cells.
type Driver struct {
	ID        int
	Current   Location
	Capacity  int
	Manifest  []int // onboard request ids
	Route     []RouteStep
	Strategy  Strategy
	MultiPass bool
	DetourMax int

	StepsMoved int
	IdleTicks  int
}

// IsIdle reports whether the driver has no planned route.
func (d *Driver) IsIdle() bool {
	return len(d.Route) == 0
}

// RemainingCapacity returns how many more passengers can board.
func (d *Driver) RemainingCapacity() int {
	rem := d.Capacity - len(d.Manifest)
	if rem < 0 {
		return 0
	}
	return rem
}

func (d *Driver) addToManifest(reqID int) {
	d.Manifest = append(d.Manifest, reqID)
}

func (d *Driver) removeFromManifest(reqID int) {
	for i, id := range d.Manifest {
		if id == reqID {
			d.Manifest = append(d.Manifest[:i], d.Manifest[i+1:]...)
			return
		}
	}
}

// popHead drops the first route step.
func (d *Driver) popHead() {
	d.Route = d.Route[1:]
}

// headLoc returns the route head location, the movement target of 4.5
// step 3.
func (d *Driver) headLoc() (Location, bool) {
	if len(d.Route) == 0 {
		return Location{}, false
	}
	return d.Route[0].Loc, true
}

// stepToward advances Current by exactly one cell toward target, using
// the x-then-y tie-break of 4.5 step 3.
func (d *Driver) stepToward(target Location) {
	if d.Current.X != target.X {
		if target.X > d.Current.X {
			d.Current.X++
		} else {
			d.Current.X--
		}
		return
	}
	if target.Y > d.Current.Y {
		d.Current.Y++
	} else if target.Y < d.Current.Y {
		d.Current.Y--
	}
}

// act runs the per-tick driver algorithm of 4.5: assignment when idle,
// pickup/drop-off at the route head, one step of movement, and enroute
// insertion when ride-sharing is enabled.
func (d *Driver) act(w *World) {
	if d.IsIdle() {
		if w.Pool.Len() > 0 {
			assignInitial(w, d)
		}
		if d.IsIdle() {
			d.IdleTicks++
			return
		}
	}

arrivals:
	for len(d.Route) > 0 && d.Route[0].Loc == d.Current {
		head := d.Route[0]
		req := w.Requests[head.RequestID]
		switch {
		case req != nil && req.State == StateOnboard && head.Loc == req.Dest:
			d.removeFromManifest(req.ID)
			req.MarkDelivered(w.Tick)
			w.Grid.Remove(AgentRef{Kind: KindDestMarker, ID: req.ID})
			d.popHead()
		case req != nil && req.State == StateAssigned && head.Loc == req.Src:
			if loc, ok := w.Grid.LocationOf(AgentRef{Kind: KindRequest, ID: req.ID}); ok && loc == d.Current {
				w.Grid.Remove(AgentRef{Kind: KindRequest, ID: req.ID})
				d.addToManifest(req.ID)
				req.MarkPickedUp(w.Tick)
				w.Grid.Place(AgentRef{Kind: KindDestMarker, ID: req.ID}, req.Dest)
			}
			d.popHead()
		case req == nil || req.State == StateAbandoned:
			// request expired before pickup: drop its stop so the driver
			// is not parked on it forever.
			d.popHead()
		default:
			// inconsistent route head; defensive stop, per 4.5 step 2.
			break arrivals
		}
	}

	if len(d.Route) > 0 {
		target, _ := d.headLoc()
		d.stepToward(target)
		w.Grid.Move(AgentRef{Kind: KindDriver, ID: d.ID}, d.Current)
		d.StepsMoved++
	}

	if d.MultiPass && len(d.Manifest) < d.Capacity {
		enrouteInsertion(w, d)
	}
}
