package engine


// Grid is a multi-occupancy 2D cell container: a mapping from location to
// the set of agents standing there. No ordering within a cell is
// guaranteed. Generalizes the teacher's per-stop directional passenger
// queues (model/stop.go's OutboundQueue/InboundQueue) into a single
// location-keyed multiset that holds drivers, requests, and dest markers
// alike.
type Grid struct {
	Width, Height int
	cells         map[Location]map[AgentRef]struct{}
	at            map[AgentRef]Location
}

// NewGrid builds an empty grid of the given extents.
func NewGrid(width, height int) *Grid {
	return &Grid{
		Width:  width,
		Height: height,
		cells:  make(map[Location]map[AgentRef]struct{}),
		at:     make(map[AgentRef]Location),
	}
}

// Place puts an entity at loc. Placing an entity already on the grid is a
// programmer error — callers must Remove or Move first.
func (g *Grid) Place(ref AgentRef, loc Location) {
	if !loc.InBounds(g.Width, g.Height) {
		invariantViolation("place %v out of bounds at %v", ref, loc)
	}
	if _, exists := g.at[ref]; exists {
		invariantViolation("place %v already on grid", ref)
	}
	g.insert(ref, loc)
}

func (g *Grid) insert(ref AgentRef, loc Location) {
	set, ok := g.cells[loc]
	if !ok {
		set = make(map[AgentRef]struct{})
		g.cells[loc] = set
	}
	set[ref] = struct{}{}
	g.at[ref] = loc
}

// Move relocates an entity already on the grid to new_loc.
func (g *Grid) Move(ref AgentRef, newLoc Location) {
	old, ok := g.at[ref]
	if !ok {
		invariantViolation("move unknown agent %v", ref)
	}
	if old == newLoc {
		return
	}
	delete(g.cells[old], ref)
	if len(g.cells[old]) == 0 {
		delete(g.cells, old)
	}
	g.insert(ref, newLoc)
}

// Remove takes an entity off the grid. Removing an entity not on the grid
// is a no-op, matching the defensive-pickup recovery path in 4.5 where a
// request may already be gone.
func (g *Grid) Remove(ref AgentRef) {
	loc, ok := g.at[ref]
	if !ok {
		return
	}
	delete(g.cells[loc], ref)
	if len(g.cells[loc]) == 0 {
		delete(g.cells, loc)
	}
	delete(g.at, ref)
}

// Contains reports whether ref currently occupies loc.
func (g *Grid) Contains(loc Location, ref AgentRef) bool {
	set, ok := g.cells[loc]
	if !ok {
		return false
	}
	_, present := set[ref]
	return present
}

// LocationOf returns the current location of ref, if any.
func (g *Grid) LocationOf(ref AgentRef) (Location, bool) {
	loc, ok := g.at[ref]
	return loc, ok
}

// Contents returns every agent standing at loc.
func (g *Grid) Contents(loc Location) []AgentRef {
	set, ok := g.cells[loc]
	if !ok {
		return nil
	}
	out := make([]AgentRef, 0, len(set))
	for ref := range set {
		out = append(out, ref)
	}
	return out
}

// ContentsRect returns every agent within the axis-aligned rectangle
// spanned by lo and hi, inclusive. O(area): scans every cell in range
// rather than the full grid.
func (g *Grid) ContentsRect(lo, hi Location) []AgentRef {
	minX, maxX := minMax(lo.X, hi.X)
	minY, maxY := minMax(lo.Y, hi.Y)
	var out []AgentRef
	for x := minX; x <= maxX; x++ {
		for y := minY; y <= maxY; y++ {
			set, ok := g.cells[Location{X: x, Y: y}]
			if !ok {
				continue
			}
			for ref := range set {
				out = append(out, ref)
			}
		}
	}
	return out
}
