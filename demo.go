package main

import (
	"context"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"liquidlens/frame"
	"liquidlens/input"
	"liquidlens/lens"
	"liquidlens/source"
)

// One wheel notch scrolls this many logical pixels.
const wheelStep = 40

// Demo owns the lens pipeline for the window's lifetime: the tracker updates
// pointer state, the scheduler gates the passes, the renderer draws the lens
// over the committed texture, and the source manager refreshes that texture
// off the loop.
type Demo struct {
	cfg lens.Config
	// when true the quality profile was forced on the command line and
	// device detection is skipped
	forced bool
	mode   input.Mode

	// nil when shader compilation failed; the page then renders undistorted
	renderer *lens.Renderer
	tracker  *input.Tracker
	sched    *frame.Scheduler
	src      *source.Manager
	// provider teardown, when the strategy holds resources (browser)
	closer interface{ Close() }

	ctx    context.Context
	cancel context.CancelFunc

	// render size in device pixels, the scale that produced it, and the
	// logical width the quality heuristics read
	w, h     int
	scale    float64
	logicalW int

	scroll    float64
	touchSeen bool
	closed    bool
}

type demoOptions struct {
	cfg      lens.Config
	forced   bool
	mode     input.Mode
	provider source.Provider
	renderer *lens.Renderer
}

func newDemo(o demoOptions) *Demo {
	ctx, cancel := context.WithCancel(context.Background())
	d := &Demo{
		cfg:      o.cfg,
		forced:   o.forced,
		mode:     o.mode,
		renderer: o.renderer,
		sched:    frame.New(o.cfg.TargetFPS),
		src:      source.NewManager(o.provider, o.cfg.CaptureInterval),
		ctx:      ctx,
		cancel:   cancel,
		scale:    1,
	}
	d.tracker = input.NewTracker(d.trackerOptions())
	if c, ok := o.provider.(interface{ Close() }); ok {
		d.closer = c
	}
	return d
}

func (d *Demo) Update() error {
	if d.sched.Stopped() {
		return ebiten.Termination
	}
	now := time.Now()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		d.Close()
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		// manual quality toggle, the one config mutation mid-session
		if d.cfg.Tier == lens.TierFull {
			d.cfg.Tier = lens.TierLite
		} else {
			d.cfg.Tier = lens.TierFull
		}
	}

	d.tracker.Poll(now)
	st := d.tracker.State()
	if st.Class == input.ClassTouch && !d.touchSeen {
		d.touchSeen = true
		d.reconfigure()
	}

	if dy := d.tracker.ScrollDelta(); dy != 0 {
		d.scrollBy(-dy * wheelStep * d.scale)
	}

	// idle refresh and post-interaction settle both go through the
	// manager's gate, which enforces the capture interval
	if !st.Active {
		d.requestCapture()
	}

	d.src.Commit()
	return nil
}

func (d *Demo) Draw(screen *ebiten.Image) {
	now := time.Now()
	if !d.sched.Tick(now) {
		// screen clearing is disabled, the previous frame stays up
		return
	}
	screen.Fill(source.Paper)

	tex, tw, th, ok := d.src.Texture()
	if !ok {
		return
	}
	if tw != d.w || th != d.h {
		// stale size mid-resize: show it scaled, skip the lens pass until
		// the resize capture commits
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(float64(d.w)/float64(tw), float64(d.h)/float64(th))
		screen.DrawImage(tex, op)
		return
	}
	screen.DrawImage(tex, nil)

	st := d.tracker.State()
	if st.Active && d.renderer != nil {
		d.renderer.Draw(screen, tex, lens.RenderState{
			PointerX: st.X,
			PointerY: st.Y,
			Time:     d.sched.Elapsed(now),
			Width:    d.w,
			Height:   d.h,
		}, d.cfg)
	}
}

func (d *Demo) Layout(outsideWidth, outsideHeight int) (int, int) {
	scale := ebiten.DeviceScaleFactor()
	w := int(math.Ceil(float64(outsideWidth) * scale))
	h := int(math.Ceil(float64(outsideHeight) * scale))
	if w != d.w || h != d.h {
		d.w, d.h = w, h
		d.scale = scale
		d.logicalW = outsideWidth
		d.reconfigure()
		// the committed texture is the wrong size now, recapture at once
		d.src.Invalidate()
		d.requestCapture()
	}
	return w, h
}

// reconfigure re-evaluates the quality policy against the current device
// signals and pushes the result into every component.
func (d *Demo) reconfigure() {
	if !d.forced {
		d.cfg = lens.Detect(lens.Signals{Touch: d.touchSeen, Width: d.logicalW})
	}
	d.sched.SetRate(d.cfg.TargetFPS)
	ebiten.SetTPS(d.cfg.TargetFPS)
	d.src.SetMinInterval(d.cfg.CaptureInterval)
	d.tracker.SetOptions(d.trackerOptions())
}

// trackerOptions converts config ergonomics to tracker options. The lift is
// tuned in logical pixels; the tracker works in device pixels.
func (d *Demo) trackerOptions() input.Options {
	return input.Options{
		Mode:          d.mode,
		TouchLift:     d.cfg.TouchLift * d.scale,
		ReleaseLinger: d.cfg.ReleaseLinger,
	}
}

func (d *Demo) request() source.Request {
	return source.Request{
		Width:  d.w,
		Height: d.h,
		Scroll: d.scroll,
		Scale:  d.scale,
	}
}

func (d *Demo) requestCapture() {
	if d.w <= 0 || d.h <= 0 {
		return
	}
	d.src.Request(d.ctx, d.request())
}

func (d *Demo) scrollBy(dy float64) {
	ch := d.src.ContentHeight(d.request())
	if ch <= 0 {
		// the provider cannot measure its content (browser snapshot);
		// allow a few screens' worth
		ch = 3 * float64(d.h)
	}
	maxScroll := ch - float64(d.h)
	if maxScroll < 0 {
		maxScroll = 0
	}
	next := math.Min(math.Max(d.scroll+dy, 0), maxScroll)
	if next == d.scroll {
		return
	}
	d.scroll = next
	// content changed under the lens; the gate throttles how often this
	// actually recaptures
	d.requestCapture()
}

// Close tears the lens down: the scheduler goes inert, in-flight captures are
// discarded, and GPU resources are released.
func (d *Demo) Close() {
	if d.closed {
		return
	}
	d.closed = true
	d.sched.Stop()
	d.cancel()
	d.src.Close()
	if d.renderer != nil {
		d.renderer.Dispose()
	}
	if d.closer != nil {
		d.closer.Close()
	}
}
