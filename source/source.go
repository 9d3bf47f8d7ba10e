// Package source produces the texture the lens samples from: a rasterized
// snapshot of page content, captured off the render loop and committed to the
// GPU between frames.
package source

import (
	"context"
	"fmt"
	"image"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Request describes one capture: the viewport to rasterize, the vertical
// scroll offset into the content, and the device pixel ratio.
type Request struct {
	// Width, Height in device pixels.
	Width, Height int
	// Scroll offset in device pixels from the top of the content.
	Scroll float64
	// Scale is the device pixel ratio; 1 on standard-density displays.
	Scale float64
}

// Provider rasterizes content into a pixel buffer. Implementations may be
// slow; the Manager calls Capture off the game goroutine.
type Provider interface {
	Name() string
	Capture(ctx context.Context, req Request) (*image.RGBA, error)
}

// Measurer is implemented by providers that can report the total content
// height for a viewport, used to clamp scrolling.
type Measurer interface {
	ContentHeight(req Request) float64
}

// CaptureError wraps a failed capture with the strategy that produced it.
// The previous texture stays committed; the next attempt proceeds normally.
type CaptureError struct {
	Strategy string
	Err      error
}

func (e *CaptureError) Error() string {
	return fmt.Sprintf("%s capture: %v", e.Strategy, e.Err)
}

func (e *CaptureError) Unwrap() error { return e.Err }

// Textures larger than this on either axis are refused rather than risking a
// failed GPU allocation mid-session.
const maxTextureDim = 8192

type result struct {
	gen uint64
	img *image.RGBA
	err error
}

// Manager owns the live source texture. Captures run on their own goroutine
// and deliver into a channel; Commit drains it on the game goroutine so the
// texture handle and its dimensions always change together. Exactly one
// texture is live at a time.
type Manager struct {
	provider Provider
	gate     Gate

	results chan result
	gen     uint64 // last scheduled capture
	applied uint64 // last committed capture

	tex    *ebiten.Image
	w, h   int
	closed bool
}

func NewManager(p Provider, minInterval time.Duration) *Manager {
	return &Manager{
		provider: p,
		gate:     Gate{Min: minInterval},
		results:  make(chan result, 4),
	}
}

// Request schedules an asynchronous capture. Requests inside the minimum
// inter-capture interval are no-ops; the return value reports whether a
// capture was actually started.
func (m *Manager) Request(ctx context.Context, req Request) bool {
	if m.closed {
		return false
	}
	if !m.gate.Allow(time.Now()) {
		return false
	}
	m.gen++
	gen := m.gen
	out := m.results
	go func() {
		img, err := m.provider.Capture(ctx, req)
		select {
		case out <- result{gen: gen, img: img, err: err}:
		case <-ctx.Done():
		}
	}()
	return true
}

// Commit applies the newest finished capture, if any. Called once per tick on
// the game goroutine; never blocks. Failed captures are logged and the
// previous texture stays intact.
func (m *Manager) Commit() {
	for {
		select {
		case r := <-m.results:
			if m.closed || r.gen <= m.applied {
				// stale or post-teardown result, discard
				continue
			}
			if r.err != nil {
				log.Printf("lens: %v", r.err)
				continue
			}
			if m.upload(r.img) {
				m.applied = r.gen
			}
		default:
			return
		}
	}
}

// upload copies pixels into the GPU image, reallocating when the size
// changed. On an unusable size the previous texture is kept as-is.
func (m *Manager) upload(img *image.RGBA) bool {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 || w > maxTextureDim || h > maxTextureDim {
		log.Printf("lens: refusing %dx%d texture, keeping previous", w, h)
		return false
	}
	if m.tex == nil || m.w != w || m.h != h {
		next := ebiten.NewImage(w, h)
		if m.tex != nil {
			m.tex.Deallocate()
		}
		m.tex = next
		m.w, m.h = w, h
	}
	m.tex.WritePixels(img.Pix)
	return true
}

// Texture returns the committed texture and its size in source pixels.
func (m *Manager) Texture() (tex *ebiten.Image, w, h int, ok bool) {
	if m.tex == nil {
		return nil, 0, 0, false
	}
	return m.tex, m.w, m.h, true
}

// ContentHeight reports the provider's content height, or 0 when unknown.
func (m *Manager) ContentHeight(req Request) float64 {
	if mm, ok := m.provider.(Measurer); ok {
		return mm.ContentHeight(req)
	}
	return 0
}

// SetMinInterval retargets the capture throttle, used when the quality
// policy re-detects the device class.
func (m *Manager) SetMinInterval(d time.Duration) {
	m.gate.Min = d
}

// Invalidate opens the throttle gate so the next Request runs immediately,
// for events that make the committed texture wrong outright (resize).
func (m *Manager) Invalidate() {
	m.gate.Reset()
}

// Close releases the texture and makes any capture that completes later a
// no-op.
func (m *Manager) Close() {
	m.closed = true
	if m.tex != nil {
		m.tex.Deallocate()
		m.tex = nil
	}
}
