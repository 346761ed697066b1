package engine

// StepKind distinguishes a route step serving a pickup from one serving a
// drop-off for the request it references.
type StepKind int

const (
	StepPickup StepKind = iota
	StepDropoff
)

// RouteStep is a planned stop: a location and which request it serves.
// Carries the request id rather than a pointer, per the Design Notes'
// back-reference rule — route steps are cheap to copy and never create a
// reference cycle with the request table.
type RouteStep struct {
	Loc       Location
	RequestID int
	Kind      StepKind
}

// indexOfRequest returns the index of the first route step referencing
// reqID, the index of the second (or -1 if absent), grounded on the
// teacher's Route.IndexOf (model/route.go) sequential lookup style.
func indexOfRequest(route []RouteStep, reqID int) (first, second int) {
	first, second = -1, -1
	for i, step := range route {
		if step.RequestID != reqID {
			continue
		}
		if first == -1 {
			first = i
		} else {
			second = i
			return
		}
	}
	return
}

// containsRequest reports whether route already has a step for reqID.
func containsRequest(route []RouteStep, reqID int) bool {
	for _, step := range route {
		if step.RequestID == reqID {
			return true
		}
	}
	return false
}
