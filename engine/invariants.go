package engine

import "fmt"

// CheckInvariants walks a world's current state and reports every
// violation of §8's invariants 1-6 it finds. Not called from any
// production path — it exists for tests that want to assert a world stays
// consistent across many ticks without hand-writing each check inline.
func CheckInvariants(w *World) []error {
	var errs []error

	routeHolders := make(map[int]int) // request id -> driver id, for invariant 3
	for _, d := range w.Drivers {
		if len(d.Manifest) > d.Capacity {
			errs = append(errs, fmt.Errorf("driver %d: manifest %d exceeds capacity %d", d.ID, len(d.Manifest), d.Capacity))
		}
		for _, reqID := range d.Manifest {
			if containsRequest(d.Route, reqID) {
				if first, _ := indexOfRequest(d.Route, reqID); d.Route[first].Kind != StepDropoff {
					errs = append(errs, fmt.Errorf("request %d: onboard but route entry is not a drop-off", reqID))
				}
			}
		}
		seen := map[int]bool{}
		for _, step := range d.Route {
			if other, ok := routeHolders[step.RequestID]; ok && other != d.ID {
				errs = append(errs, fmt.Errorf("request %d: appears in routes of both driver %d and %d", step.RequestID, other, d.ID))
			}
			routeHolders[step.RequestID] = d.ID

			if seen[step.RequestID] {
				continue
			}
			seen[step.RequestID] = true
			srcIdx, dstIdx := indexOfRequest(d.Route, step.RequestID)
			if dstIdx != -1 && srcIdx > dstIdx {
				errs = append(errs, fmt.Errorf("request %d: dest precedes src in driver %d's route", step.RequestID, d.ID))
			}
		}
	}

	for _, id := range w.Pool.Order() {
		r, ok := w.Requests[id]
		if !ok {
			errs = append(errs, fmt.Errorf("pool references unknown request %d", id))
			continue
		}
		if r.State != StateWaiting {
			errs = append(errs, fmt.Errorf("request %d: in pool with state %s, want WAITING", id, r.State))
		}
	}

	for _, r := range w.Requests {
		if r.DropoffTime != nil {
			if r.PickupTime == nil || r.RequestTime > *r.PickupTime || *r.PickupTime > *r.DropoffTime {
				errs = append(errs, fmt.Errorf("request %d: timestamps out of order (request=%d pickup=%v dropoff=%v)", r.ID, r.RequestTime, r.PickupTime, r.DropoffTime))
			}
		}
		if r.PickupTime != nil && *r.PickupTime > r.LatestPickupTime() {
			errs = append(errs, fmt.Errorf("request %d: picked up at %d after deadline %d", r.ID, *r.PickupTime, r.LatestPickupTime()))
		}
	}

	return errs
}
