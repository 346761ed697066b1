package engine

// Location is an integer grid cell. Equality is componentwise, matching
// the teacher's stop-to-stop distance primitives but swapped from
// haversine lat/lng to plain Manhattan grid math (no continuous-time or
// road-network routing, per the Non-goals).
type Location struct {
	X, Y int
}

// Manhattan returns the L1 distance between two locations, the unit of
// both travel time (one cell per tick) and deadline feasibility checks.
func (l Location) Manhattan(o Location) int {
	return absInt(l.X-o.X) + absInt(l.Y-o.Y)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// enroute reports whether p lies within the axis-aligned rectangle
// spanned by a and b, inclusive of the boundary.
func enroute(p, a, b Location) bool {
	minX, maxX := minMax(a.X, b.X)
	minY, maxY := minMax(a.Y, b.Y)
	return p.X >= minX && p.X <= maxX && p.Y >= minY && p.Y <= maxY
}

func minMax(a, b int) (int, int) {
	if a < b {
		return a, b
	}
	return b, a
}

// InBounds reports whether l is a valid cell of a w x h grid.
func (l Location) InBounds(w, h int) bool {
	return l.X >= 0 && l.X < w && l.Y >= 0 && l.Y < h
}
