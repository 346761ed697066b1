package engine

import "sort"

// ModelRow is one tick's model-level summary, per 4.7.
type ModelRow struct {
	Tick           int
	TotalToHeadDist int // sum over drivers of Manhattan(current, route head), 0 when idle
}

// AgentRow is one live agent's per-tick snapshot, per 4.7. Fields not
// meaningful for a given kind are left at their zero value; StepsMoved and
// IdleTicks apply only to drivers, the rest only to requests.
type AgentRow struct {
	Tick        int
	Kind        string
	ID          int
	StepsMoved  *int
	IdleTicks   *int
	RequestTime *int
	PickupTime  *int
	DropoffTime *int
	SecondaryID *int
}

// MetricsCollector accumulates the two tabular streams 4.7 describes,
// mirroring the teacher's Reporter (sim/report.go) collecting ModelRow and
// per-bus/per-stop rows into slices for later CSV/console output.
type MetricsCollector struct {
	ModelRows []ModelRow
	AgentRows []AgentRow
}

func NewMetricsCollector() *MetricsCollector {
	return &MetricsCollector{}
}

// Collect snapshots w's current state into one ModelRow and one AgentRow
// per live agent, called at the top of every tick before agents act.
func (m *MetricsCollector) Collect(w *World) {
	total := 0
	for _, d := range w.Drivers {
		if len(d.Route) == 0 {
			continue
		}
		total += d.Current.Manhattan(d.Route[0].Loc)
	}
	m.ModelRows = append(m.ModelRows, ModelRow{Tick: w.Tick, TotalToHeadDist: total})

	for _, d := range orderedDriverIDs(w.Drivers) {
		driver := w.Drivers[d]
		steps, idle := driver.StepsMoved, driver.IdleTicks
		m.AgentRows = append(m.AgentRows, AgentRow{
			Tick:       w.Tick,
			Kind:       KindDriver.String(),
			ID:         driver.ID,
			StepsMoved: &steps,
			IdleTicks:  &idle,
		})
	}
	for _, id := range orderedRequestIDs(w.Requests) {
		r := w.Requests[id]
		row := AgentRow{
			Tick:        w.Tick,
			Kind:        KindRequest.String(),
			ID:          r.ID,
			RequestTime: intPtr(r.RequestTime),
			PickupTime:  r.PickupTime,
			DropoffTime: r.DropoffTime,
			SecondaryID: intPtr(r.secondaryID),
		}
		m.AgentRows = append(m.AgentRows, row)
	}
}

func intPtr(v int) *int { return &v }

func orderedDriverIDs(m map[int]*Driver) []int {
	out := make([]int, 0, len(m))
	for id := range m {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}

func orderedRequestIDs(m map[int]*Request) []int {
	out := make([]int, 0, len(m))
	for id := range m {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}
