package lens

import (
	_ "embed"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

//go:embed shaders/lens.go
var fullShaderSrc []byte

//go:embed shaders/lenslite.go
var liteShaderSrc []byte

// RenderState is the per-frame input to the shader pass. It has no identity
// beyond a single frame.
type RenderState struct {
	// Pointer position in device pixels.
	PointerX, PointerY float64
	// Seconds since the lens was mounted.
	Time float64
	// Viewport size in device pixels.
	Width, Height int
}

// Renderer owns the compiled shader programs for the lens instance's
// lifetime. Create at mount with NewRenderer, release with Dispose.
type Renderer struct {
	full *ebiten.Shader
	lite *ebiten.Shader
}

// NewRenderer compiles both shader tiers. Compilation failure disables the
// lens: the caller runs without a renderer and the page stays visible.
func NewRenderer() (*Renderer, error) {
	full, err := ebiten.NewShader(fullShaderSrc)
	if err != nil {
		return nil, fmt.Errorf("compiling lens shader: %w", err)
	}
	lite, err := ebiten.NewShader(liteShaderSrc)
	if err != nil {
		full.Deallocate()
		return nil, fmt.Errorf("compiling lite lens shader: %w", err)
	}
	return &Renderer{full: full, lite: lite}, nil
}

// Draw runs one full-screen lens pass over dst, sampling src. src must match
// the viewport size in st; the caller skips the pass while a resize capture
// is still in flight.
func (r *Renderer) Draw(dst, src *ebiten.Image, st RenderState, cfg Config) {
	sh := r.full
	if cfg.Tier == TierLite {
		sh = r.lite
	}
	dst.DrawRectShader(st.Width, st.Height, sh, &ebiten.DrawRectShaderOptions{
		Uniforms: map[string]interface{}{
			"Pointer":           []float32{float32(st.PointerX), float32(st.PointerY)},
			"Viewport":          []float32{float32(st.Width), float32(st.Height)},
			"Time":              float32(st.Time),
			"Radius":            float32(cfg.Radius),
			"ClearZone":         float32(cfg.ClearZone),
			"Chromatic":         float32(cfg.Chromatic),
			"Prism":             float32(cfg.Prism),
			"ClearPull":         float32(cfg.ClearPull),
			"PullExponent":      float32(cfg.PullExponent),
			"PullStrength":      float32(cfg.PullStrength),
			"SwirlStrength":     float32(cfg.SwirlStrength),
			"ChromaticStrength": float32(cfg.ChromaticStrength),
			"ChromaticExponent": float32(cfg.ChromaticExponent),
			"PrismStrength":     float32(cfg.PrismStrength),
			"PrismExponent":     float32(cfg.PrismExponent),
			"TintStrength":      float32(cfg.TintStrength),
			"ShimmerStrength":   float32(cfg.ShimmerStrength),
		},
		Images: [4]*ebiten.Image{src},
	})
}

// Dispose releases the shader programs.
func (r *Renderer) Dispose() {
	if r.full != nil {
		r.full.Deallocate()
		r.full = nil
	}
	if r.lite != nil {
		r.lite.Deallocate()
		r.lite = nil
	}
}
