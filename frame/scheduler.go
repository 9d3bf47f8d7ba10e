// Package frame paces the lens render passes. Ebiten re-arms the display
// callback itself, so the scheduler only decides whether a given callback
// does work; it never blocks and never breaks the chain.
package frame

import "time"

// Scheduler skips passes that arrive before the target interval has elapsed
// since the last executed pass. Stopping it makes every later Tick inert,
// which is how teardown guarantees no further draws.
type Scheduler struct {
	interval time.Duration
	start    time.Time
	last     time.Time
	ticks    int
	stopped  bool
}

// New returns a scheduler targeting the given rate.
func New(targetFPS int) *Scheduler {
	s := &Scheduler{}
	s.SetRate(targetFPS)
	return s
}

// SetRate retargets the scheduler, used when the quality policy changes.
func (s *Scheduler) SetRate(targetFPS int) {
	if targetFPS <= 0 {
		targetFPS = 60
	}
	s.interval = time.Second / time.Duration(targetFPS)
}

// Tick reports whether a pass should execute now. The comparison leaves 10%
// slack so display callbacks arriving a hair early are not halved to the next
// multiple of the interval.
func (s *Scheduler) Tick(now time.Time) bool {
	if s.stopped {
		return false
	}
	if s.start.IsZero() {
		s.start = now
		s.last = now
		s.ticks++
		return true
	}
	if now.Sub(s.last) < s.interval-s.interval/10 {
		return false
	}
	s.last = now
	s.ticks++
	return true
}

// Elapsed is the time in seconds since the first executed pass, fed to the
// shader as its time uniform.
func (s *Scheduler) Elapsed(now time.Time) float64 {
	if s.start.IsZero() {
		return 0
	}
	return now.Sub(s.start).Seconds()
}

// Ticks is the number of executed passes.
func (s *Scheduler) Ticks() int { return s.ticks }

// Stop ends scheduling permanently.
func (s *Scheduler) Stop() { s.stopped = true }

// Stopped reports whether Stop was called.
func (s *Scheduler) Stopped() bool { return s.stopped }
