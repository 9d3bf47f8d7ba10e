package input

import (
	"math"
	"testing"
	"time"
)

func tick(base time.Time, n int) time.Time {
	return base.Add(time.Duration(n) * 16 * time.Millisecond)
}

// A touch must activate the lens at the lifted position with the touch class.
// The lift varies with the device pixel ratio, so larger values must apply
// verbatim too.
func TestTouchActivatesWithLift(t *testing.T) {
	for _, lift := range []float64{80, 240} {
		tr := NewTracker(Options{Mode: ModeHover, TouchLift: lift, ReleaseLinger: 350 * time.Millisecond})
		base := time.Now()

		tr.Feed(Sample{Now: tick(base, 0)})
		if tr.State().Active {
			t.Fatal("no input yet, lens must be inactive")
		}

		tr.Feed(Sample{Now: tick(base, 1), Touches: []Touch{{X: 200, Y: 600}}})
		st := tr.State()
		if !st.Active {
			t.Fatal("touch-start must activate the lens")
		}
		if st.Class != ClassTouch {
			t.Fatalf("class = %v, want touch", st.Class)
		}
		if st.X != 200 || st.Y != 600-lift {
			t.Fatalf("position = (%v, %v), want (200, %v) with a %vpx lift", st.X, st.Y, 600-lift, lift)
		}
	}
}

// With two fingers down the lens must stay on the first-seen touch, whatever
// slot it lands in, and fall over to the remaining finger when it lifts.
func TestSecondFingerDoesNotStealTheLens(t *testing.T) {
	tr := NewTracker(Options{Mode: ModeHover})
	base := time.Now()

	tr.Feed(Sample{Now: tick(base, 0), Touches: []Touch{{ID: 1, X: 100, Y: 100}}})
	tr.Feed(Sample{Now: tick(base, 1), Touches: []Touch{
		{ID: 2, X: 500, Y: 500},
		{ID: 1, X: 120, Y: 100},
	}})
	st := tr.State()
	if st.X != 120 || st.Y != 100 {
		t.Fatalf("position = (%v, %v), want the first finger at (120, 100)", st.X, st.Y)
	}

	tr.Feed(Sample{Now: tick(base, 2), Touches: []Touch{{ID: 2, X: 500, Y: 500}}})
	st = tr.State()
	if st.X != 500 || st.Y != 500 {
		t.Fatalf("position = (%v, %v), want the remaining finger at (500, 500)", st.X, st.Y)
	}
	if !st.Active {
		t.Fatal("lens must stay active while any finger is down")
	}
}

// After touch-end the lens lingers briefly, then deactivates.
func TestTouchReleaseLingers(t *testing.T) {
	linger := 300 * time.Millisecond
	tr := NewTracker(Options{Mode: ModeHover, ReleaseLinger: linger})
	base := time.Now()

	tr.Feed(Sample{Now: tick(base, 0), Touches: []Touch{{X: 100, Y: 100}}})
	tr.Feed(Sample{Now: tick(base, 1)}) // finger lifted
	if !tr.State().Active {
		t.Fatal("lens must stay active right after touch-end")
	}
	tr.Feed(Sample{Now: tick(base, 1).Add(linger / 2)})
	if !tr.State().Active {
		t.Fatal("lens must still be active inside the linger window")
	}
	tr.Feed(Sample{Now: tick(base, 1).Add(linger + 50*time.Millisecond)})
	if tr.State().Active {
		t.Fatal("lens must deactivate after the linger window")
	}
}

func TestHoverModeActivatesOnFirstMove(t *testing.T) {
	tr := NewTracker(Options{Mode: ModeHover})
	base := time.Now()

	tr.Feed(Sample{Now: tick(base, 0), MouseX: 10, MouseY: 10})
	if tr.State().Active {
		t.Fatal("a stationary cursor is not yet input")
	}
	tr.Feed(Sample{Now: tick(base, 1), MouseX: 11, MouseY: 10})
	st := tr.State()
	if !st.Active || st.Class != ClassDesktop {
		t.Fatalf("first move must activate the desktop lens, got %+v", st)
	}
	// hover mode stays on without further movement
	tr.Feed(Sample{Now: tick(base, 2), MouseX: 11, MouseY: 10})
	if !tr.State().Active {
		t.Fatal("hover mode must stay active")
	}
}

func TestHoldModeFollowsButton(t *testing.T) {
	tr := NewTracker(Options{Mode: ModeHold})
	base := time.Now()

	tr.Feed(Sample{Now: tick(base, 0), MouseX: 5, MouseY: 5})
	tr.Feed(Sample{Now: tick(base, 1), MouseX: 6, MouseY: 5})
	if tr.State().Active {
		t.Fatal("hold mode must stay inactive without the button")
	}
	tr.Feed(Sample{Now: tick(base, 2), MouseX: 6, MouseY: 5, MouseDown: true})
	if !tr.State().Active {
		t.Fatal("pressing the button must reveal the lens")
	}
	tr.Feed(Sample{Now: tick(base, 3), MouseX: 6, MouseY: 5})
	if tr.State().Active {
		t.Fatal("releasing the button must hide the lens")
	}
}

// Wheel input scrolls the page while idle and is consumed while engaged.
func TestWheelOwnership(t *testing.T) {
	tr := NewTracker(Options{Mode: ModeHold})
	base := time.Now()

	tr.Feed(Sample{Now: tick(base, 0), MouseX: 5, MouseY: 5})
	tr.Feed(Sample{Now: tick(base, 1), MouseX: 6, MouseY: 5, WheelY: -3})
	if got := tr.ScrollDelta(); got != -3 {
		t.Fatalf("idle wheel = %v, want -3 passed to the page", got)
	}
	tr.Feed(Sample{Now: tick(base, 2), MouseX: 6, MouseY: 5, MouseDown: true, WheelY: -3})
	if got := tr.ScrollDelta(); got != 0 {
		t.Fatalf("engaged wheel = %v, want consumed", got)
	}
	// touch gestures are likewise consumed while the finger is down
	tr.Feed(Sample{Now: tick(base, 3), Touches: []Touch{{X: 1, Y: 1}}, WheelY: 2})
	if got := tr.ScrollDelta(); got != 0 {
		t.Fatalf("touch-engaged wheel = %v, want consumed", got)
	}
}

func TestSpringTrailsAndSettles(t *testing.T) {
	sp := NewSpring(60, 10)
	sp.Teleport(0, 0)

	x, y := 0.0, 0.0
	prev := math.Hypot(400-x, 300-y)
	for i := 0; i < 600; i++ {
		x, y = sp.Step(400, 300, 1.0/60)
	}
	got := math.Hypot(400-x, 300-y)
	if got >= prev {
		t.Fatalf("spring never approached the target: %v -> %v", prev, got)
	}
	if got > 20 {
		t.Fatalf("spring settled %v px away, want near the target", got)
	}
}

func TestSpringSmoothedTrackerTeleportsOnActivation(t *testing.T) {
	tr := NewTracker(Options{Mode: ModeHover})
	tr.AttachSpring(NewSpring(60, 10))
	base := time.Now()

	tr.Feed(Sample{Now: tick(base, 0), MouseX: 500, MouseY: 500})
	tr.Feed(Sample{Now: tick(base, 1), MouseX: 501, MouseY: 500})
	st := tr.State()
	if !st.Active {
		t.Fatal("move must activate")
	}
	if math.Hypot(st.X-501, st.Y-500) > 5 {
		t.Fatalf("activation must snap the spring to the pointer, got (%v, %v)", st.X, st.Y)
	}
}
