// Package input unifies mouse and touch into a single pointer signal for the
// lens: one position, one active flag, one device class.
package input

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Class is the pointer device class.
type Class int

const (
	ClassDesktop Class = iota
	ClassTouch
)

// Mode selects when the lens is considered engaged on desktop.
type Mode int

const (
	// ModeHover keeps the lens active from the first mouse move on.
	ModeHover Mode = iota
	// ModeHold reveals the lens only while the primary button is held.
	ModeHold
)

// Touch is one active touch point in device pixels.
type Touch struct {
	ID   ebiten.TouchID
	X, Y float64
}

// Sample is one tick's worth of polled device input. Tests feed these
// directly; the live path builds them from ebiten in Poll.
type Sample struct {
	Now            time.Time
	MouseX, MouseY float64
	MouseDown      bool
	Touches        []Touch
	WheelY         float64
}

// State is the unified pointer signal read by the renderer each frame.
type State struct {
	X, Y   float64
	Active bool
	Class  Class
}

// Options configure a Tracker. TouchLift raises the lens above the fingertip
// so the finger does not occlude it; ReleaseLinger keeps the lens up briefly
// after touch-end so tap sequences do not flicker.
type Options struct {
	Mode          Mode
	TouchLift     float64
	ReleaseLinger time.Duration
}

// Tracker turns raw input samples into PointerState. It owns its event
// subscription: the demo stops calling Poll on teardown and nothing else
// reads the devices.
type Tracker struct {
	opts Options

	st          State
	touching    bool
	touchID     ebiten.TouchID
	lingerUntil time.Time

	seenMouse      bool
	prevMX, prevMY float64
	havePrevMouse  bool

	prevNow time.Time

	// wheel movement owed to the page; engaged input consumes it instead
	wheel float64

	spring *Spring
}

func NewTracker(opts Options) *Tracker {
	return &Tracker{opts: opts}
}

// AttachSpring makes the reported position trail the raw pointer through a
// damped spring instead of snapping to it.
func (t *Tracker) AttachSpring(s *Spring) { t.spring = s }

// SetOptions swaps the tracker configuration, used when the quality policy
// re-detects the device class.
func (t *Tracker) SetOptions(opts Options) { t.opts = opts }

// Poll reads the devices through ebiten and feeds one sample. Positions are
// in the game's layout coordinate space.
func (t *Tracker) Poll(now time.Time) {
	var s Sample
	s.Now = now
	mx, my := ebiten.CursorPosition()
	s.MouseX, s.MouseY = float64(mx), float64(my)
	s.MouseDown = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	_, s.WheelY = ebiten.Wheel()
	for _, id := range ebiten.AppendTouchIDs(nil) {
		tx, ty := ebiten.TouchPosition(id)
		s.Touches = append(s.Touches, Touch{ID: id, X: float64(tx), Y: float64(ty)})
	}
	t.Feed(s)
}

// Feed consumes one input sample and updates the pointer state.
func (t *Tracker) Feed(s Sample) {
	dt := 1.0 / 60
	if !t.prevNow.IsZero() {
		dt = s.Now.Sub(t.prevNow).Seconds()
		if dt < 1.0/240 {
			dt = 1.0 / 240
		} else if dt > 1.0/20 {
			dt = 1.0 / 20
		}
	}
	t.prevNow = s.Now

	var targetX, targetY float64
	havePos := false

	if len(s.Touches) > 0 {
		// single-finger tracking on the first-seen ID; touch slot order is
		// not stable across frames, so extra fingers must not steal the lens
		pt := s.Touches[0]
		if t.touching {
			for _, c := range s.Touches {
				if c.ID == t.touchID {
					pt = c
					break
				}
			}
		}
		t.touchID = pt.ID
		t.touching = true
		t.st.Class = ClassTouch
		targetX = pt.X
		targetY = pt.Y - t.opts.TouchLift
		havePos = true
	} else {
		if t.touching {
			t.touching = false
			t.lingerUntil = s.Now.Add(t.opts.ReleaseLinger)
		}
		mouseMoved := t.havePrevMouse && (s.MouseX != t.prevMX || s.MouseY != t.prevMY)
		if mouseMoved {
			t.seenMouse = true
			t.st.Class = ClassDesktop
		}
		if t.st.Class == ClassDesktop && t.seenMouse {
			targetX, targetY = s.MouseX, s.MouseY
			havePos = true
		}
	}
	t.prevMX, t.prevMY = s.MouseX, s.MouseY
	t.havePrevMouse = true

	wasActive := t.st.Active
	switch {
	case t.touching:
		t.st.Active = true
	case t.st.Class == ClassTouch:
		t.st.Active = s.Now.Before(t.lingerUntil)
	case t.opts.Mode == ModeHold:
		t.st.Active = t.seenMouse && s.MouseDown
	default:
		t.st.Active = t.seenMouse
	}

	if havePos {
		if t.spring != nil {
			if !wasActive && t.st.Active {
				// snap on activation so the lens does not fly in
				t.spring.Teleport(targetX, targetY)
			}
			t.st.X, t.st.Y = t.spring.Step(targetX, targetY, dt)
		} else {
			t.st.X, t.st.Y = targetX, targetY
		}
	}

	// scroll gestures pass through unless the lens is actively engaged
	engaged := t.touching || (t.opts.Mode == ModeHold && s.MouseDown && t.seenMouse)
	if !engaged {
		t.wheel += s.WheelY
	}
}

// State returns the current unified pointer state.
func (t *Tracker) State() State { return t.st }

// ScrollDelta returns and clears the wheel movement owed to the page.
func (t *Tracker) ScrollDelta() float64 {
	d := t.wheel
	t.wheel = 0
	return d
}
