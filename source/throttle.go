package source

import "time"

// Gate enforces a minimum interval between captures. Rasterizing content is
// expensive, so calls inside the window are dropped rather than queued.
type Gate struct {
	Min  time.Duration
	last time.Time
}

// Allow reports whether a capture may run now, and if so starts the interval.
func (g *Gate) Allow(now time.Time) bool {
	if !g.last.IsZero() && now.Sub(g.last) < g.Min {
		return false
	}
	g.last = now
	return true
}

// Reset opens the gate so the next request runs immediately. Used after
// events that invalidate the texture outright, like a resize.
func (g *Gate) Reset() {
	g.last = time.Time{}
}
