package frame

import (
	"testing"
	"time"
)

func TestSchedulerSkipsEarlyPasses(t *testing.T) {
	s := New(60)
	base := time.Now()

	if !s.Tick(base) {
		t.Fatal("first pass must execute")
	}
	if s.Tick(base.Add(5 * time.Millisecond)) {
		t.Fatal("a pass 5ms later must be skipped at 60Hz")
	}
	if !s.Tick(base.Add(17 * time.Millisecond)) {
		t.Fatal("a pass after the interval must execute")
	}
	if s.Ticks() != 2 {
		t.Fatalf("ticks = %d, want 2", s.Ticks())
	}
}

// At a 30Hz target fed by a 60Hz display, roughly half the callbacks do work.
func TestSchedulerHalvesRate(t *testing.T) {
	s := New(30)
	base := time.Now()
	for i := 0; i < 120; i++ {
		s.Tick(base.Add(time.Duration(i) * 16667 * time.Microsecond))
	}
	if s.Ticks() < 55 || s.Ticks() > 65 {
		t.Fatalf("executed %d of 120 callbacks at half rate, want ~60", s.Ticks())
	}
}

func TestStopCancelsAllFuturePasses(t *testing.T) {
	s := New(60)
	base := time.Now()
	s.Tick(base)
	s.Stop()
	for i := 1; i <= 100; i++ {
		if s.Tick(base.Add(time.Duration(i) * time.Second)) {
			t.Fatal("no pass may execute after Stop")
		}
	}
	if s.Ticks() != 1 {
		t.Fatalf("ticks advanced after Stop: %d", s.Ticks())
	}
	if !s.Stopped() {
		t.Fatal("Stopped must report true")
	}
}

func TestElapsedStartsAtFirstPass(t *testing.T) {
	s := New(60)
	base := time.Now()
	if s.Elapsed(base) != 0 {
		t.Fatal("elapsed before any pass must be 0")
	}
	s.Tick(base)
	got := s.Elapsed(base.Add(2500 * time.Millisecond))
	if got < 2.49 || got > 2.51 {
		t.Fatalf("elapsed = %v, want 2.5", got)
	}
}

func TestSetRateRetargets(t *testing.T) {
	s := New(60)
	base := time.Now()
	s.Tick(base)
	s.SetRate(10)
	if s.Tick(base.Add(20 * time.Millisecond)) {
		t.Fatal("20ms is inside a 100ms interval")
	}
	if !s.Tick(base.Add(110 * time.Millisecond)) {
		t.Fatal("110ms should pass a 10Hz gate")
	}
}
