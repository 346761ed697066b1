package engine

import "sort"

// sortByStrategy orders ids by the driver's dispatch strategy, stably, so
// ties resolve to "first encountered in the pool's current order" per
// 4.4.1's tie-break rule — callers pass ids already in that order.
// queueByRequestTime switches QUEUE's comparator to request_time, the
// variant 4.4.2 uses for its search-window candidates.
func sortByStrategy(ids []int, reqs map[int]*Request, strategy Strategy, from Location, queueByRequestTime bool) []int {
	out := append([]int(nil), ids...)
	var less func(i, j int) bool
	switch strategy {
	case StrategyQueue:
		if !queueByRequestTime {
			return out
		}
		less = func(i, j int) bool {
			return reqs[out[i]].RequestTime < reqs[out[j]].RequestTime
		}
	case StrategyClosest:
		less = func(i, j int) bool {
			return from.Manhattan(reqs[out[i]].Src) < from.Manhattan(reqs[out[j]].Src)
		}
	case StrategyWaiting:
		less = func(i, j int) bool {
			return reqs[out[i]].LatestPickupTime() < reqs[out[j]].LatestPickupTime()
		}
	default:
		return out
	}
	sort.SliceStable(out, less)
	return out
}

// assignInitial implements 4.4.1: pick a feasible request for an idle
// driver from the pool, discarding infeasible candidates in strategy
// order until one fits or the pool is exhausted.
func assignInitial(w *World, d *Driver) {
	ranked := sortByStrategy(w.Pool.Order(), w.Requests, d.Strategy, d.Current, false)
	for _, id := range ranked {
		req, ok := w.Requests[id]
		if !ok || !w.Pool.Contains(id) {
			continue // race-on-pool: claimed or expired since ranking
		}
		if w.Tick+d.Current.Manhattan(req.Src) > req.LatestPickupTime() {
			continue
		}
		w.Pool.Remove(id)
		req.MarkAssigned()
		d.Route = []RouteStep{
			{Loc: req.Src, RequestID: id, Kind: StepPickup},
			{Loc: req.Dest, RequestID: id, Kind: StepDropoff},
		}
		return
	}
}

// pendingPickups counts route steps that still need a physical pickup —
// committed assignments not yet reflected in the manifest.
func pendingPickups(route []RouteStep) int {
	n := 0
	for _, s := range route {
		if s.Kind == StepPickup {
			n++
		}
	}
	return n
}

// enrouteInsertion implements 4.4.2: scan the search window for insertable
// requests and splice each feasible one into the route in strategy order.
// The window itself is a Grid.ContentsRect query over the rectangle spanned
// by the driver's current cell and its route head, rather than a linear
// scan of the pool — the spatial index the grid already maintains.
func enrouteInsertion(w *World, d *Driver) {
	if len(d.Route) == 0 {
		return
	}
	head := d.Route[0].Loc
	var area []int
	for _, ref := range w.Grid.ContentsRect(d.Current, head) {
		if ref.Kind != KindRequest {
			continue
		}
		if !w.Pool.Contains(ref.ID) || containsRequest(d.Route, ref.ID) {
			continue
		}
		area = append(area, ref.ID)
	}
	if len(area) == 0 {
		return
	}
	// Request ids are minted in arrival order, so ascending id is the
	// pool's order — the tie-break order sortByStrategy expects.
	sort.Ints(area)
	ranked := sortByStrategy(area, w.Requests, d.Strategy, d.Current, true)
	for _, id := range ranked {
		if d.Capacity-len(d.Manifest)-pendingPickups(d.Route) <= 0 {
			break
		}
		req, ok := w.Requests[id]
		if !ok || !w.Pool.Contains(id) {
			continue
		}
		// The driver has already moved this tick, so the earliest it can
		// serve a stop is next tick's arrival loop.
		if req.LatestPickupTime() < w.Tick+1+d.Current.Manhattan(req.Src) {
			continue
		}
		newRoute, ok := tryInsert(w, d, req)
		if !ok {
			continue
		}
		d.Route = newRoute
		w.Pool.Remove(id)
		req.MarkAssigned()
	}
}

// tryInsert attempts to splice req's pickup and drop-off stops into d's
// route per 4.4.2 steps 3's src/dest placement rules. Returns the
// candidate route and true on success, leaving d.Route untouched on
// failure.
func tryInsert(w *World, d *Driver, req *Request) ([]RouteStep, bool) {
	route := d.Route

	srcIdx := -1
	for i := range route {
		var a Location
		if i == 0 {
			a = d.Current
		} else {
			a = route[i-1].Loc
		}
		if enroute(req.Src, a, route[i].Loc) {
			srcIdx = i
			break
		}
	}
	if srcIdx == -1 {
		return nil, false
	}

	withSrc := make([]RouteStep, 0, len(route)+1)
	withSrc = append(withSrc, route[:srcIdx]...)
	withSrc = append(withSrc, RouteStep{Loc: req.Src, RequestID: req.ID, Kind: StepPickup})
	withSrc = append(withSrc, route[srcIdx:]...)

	for j := srcIdx + 1; j < len(withSrc); j++ {
		a := withSrc[j-1].Loc
		if enroute(req.Dest, a, withSrc[j].Loc) {
			final := make([]RouteStep, 0, len(withSrc)+1)
			final = append(final, withSrc[:j]...)
			final = append(final, RouteStep{Loc: req.Dest, RequestID: req.ID, Kind: StepDropoff})
			final = append(final, withSrc[j:]...)
			return final, true
		}
	}

	type position struct {
		j    int
		cost int
	}
	positions := make([]position, 0, len(withSrc)-srcIdx)
	for j := srcIdx + 1; j <= len(withSrc); j++ {
		a := withSrc[j-1].Loc
		var cost int
		if j == len(withSrc) {
			cost = a.Manhattan(req.Dest)
		} else {
			b := withSrc[j].Loc
			cost = a.Manhattan(req.Dest) + req.Dest.Manhattan(b) - a.Manhattan(b)
		}
		positions = append(positions, position{j: j, cost: cost})
	}
	sort.SliceStable(positions, func(i, k int) bool { return positions[i].cost < positions[k].cost })

	for _, pos := range positions {
		if pos.cost > d.DetourMax {
			continue
		}
		candidate := make([]RouteStep, 0, len(withSrc)+1)
		candidate = append(candidate, withSrc[:pos.j]...)
		candidate = append(candidate, RouteStep{Loc: req.Dest, RequestID: req.ID, Kind: StepDropoff})
		candidate = append(candidate, withSrc[pos.j:]...)
		if feasibleArrival(w, d, candidate, req.ID) {
			return candidate, true
		}
	}
	return nil, false
}

// feasibleArrival simulates cumulative arrival time along route and checks
// every other request's src-stop still makes its deadline. skipReqID
// excludes the candidate being inserted, whose own feasibility was already
// checked by the caller. Called after this tick's move, so the first stop
// is served no earlier than next tick.
func feasibleArrival(w *World, d *Driver, route []RouteStep, skipReqID int) bool {
	t := w.Tick + 1
	cur := d.Current
	for _, step := range route {
		t += cur.Manhattan(step.Loc)
		cur = step.Loc
		if step.Kind != StepPickup || step.RequestID == skipReqID {
			continue
		}
		req := w.Requests[step.RequestID]
		if req != nil && t > req.LatestPickupTime() {
			return false
		}
	}
	return true
}
