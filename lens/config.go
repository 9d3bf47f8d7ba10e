package lens

import (
	"fmt"
	"time"
)

// Tier selects between the full shader program and a cheaper variant that
// drops the swirl, curvature and shimmer terms.
type Tier int

const (
	TierFull Tier = iota
	TierLite
)

func (t Tier) String() string {
	if t == TierLite {
		return "lite"
	}
	return "full"
}

// Config holds every tunable of the lens effect. It is fixed at startup from
// device detection and only changes through the manual quality toggle.
type Config struct {
	// Radius of the lens in normalized units, where 1 spans the shorter
	// viewport axis.
	Radius float64

	// Zone thresholds as fractions of the radius. Must nest strictly:
	// 0 < ClearZone < Chromatic < Prism <= 1.
	ClearZone float64
	Chromatic float64
	Prism     float64

	// Pull of the clear zone toward the pointer, near zero for
	// near-identity magnification.
	ClearPull float64

	// Melting zone pull curve: strength * edgeZone^exponent.
	PullExponent float64
	PullStrength float64

	// Angular swirl amplitude in the melting zone. Zero in the lite tier.
	SwirlStrength float64

	// Chromatic aberration base magnitude and its falloff exponent.
	ChromaticStrength float64
	ChromaticExponent float64

	// Prism spectrum blend weight and falloff exponent at the lens rim.
	PrismStrength float64
	PrismExponent float64

	// Glass tint bias and shimmer amplitude. Shimmer is zero in the lite tier.
	TintStrength    float64
	ShimmerStrength float64

	// Scheduling and capture cadence.
	TargetFPS       int
	CaptureInterval time.Duration

	Tier Tier

	// Touch ergonomics: how far above the fingertip the lens sits in
	// logical pixels, and how long it lingers after the finger lifts.
	TouchLift     float64
	ReleaseLinger time.Duration
}

// Validate reports whether the effect zones nest the way the shader assumes.
func (c Config) Validate() error {
	if c.Radius <= 0 || c.Radius > 1 {
		return fmt.Errorf("lens radius %v out of (0, 1]", c.Radius)
	}
	if !(0 < c.ClearZone && c.ClearZone < c.Chromatic && c.Chromatic < c.Prism && c.Prism <= 1) {
		return fmt.Errorf("zone thresholds must nest: 0 < clear (%v) < chromatic (%v) < prism (%v) <= 1",
			c.ClearZone, c.Chromatic, c.Prism)
	}
	if c.PullExponent <= 0 {
		return fmt.Errorf("pull exponent %v must be positive", c.PullExponent)
	}
	if c.TargetFPS <= 0 {
		return fmt.Errorf("target fps %v must be positive", c.TargetFPS)
	}
	if c.CaptureInterval <= 0 {
		return fmt.Errorf("capture interval %v must be positive", c.CaptureInterval)
	}
	return nil
}
