package lens

import "math"

// This file mirrors the coordinate mapping of the Kage programs in pure Go so
// the lens geometry can be checked without a GPU. The shader remains the only
// rendering path; keep the two in sync when tuning the math.

// Zone classifies a pixel relative to the lens.
type Zone int

const (
	// ZoneOutside pixels show the source texture unmodified.
	ZoneOutside Zone = iota
	// ZoneClear is the near-identity magnified center.
	ZoneClear
	// ZoneMelt is the outer band where pull and swirl distortion dominate.
	ZoneMelt
)

// Sample is the result of mapping one output pixel to a source coordinate.
type Sample struct {
	// U, V is the normalized source coordinate to sample. Out of bounds
	// values are reported as-is, never wrapped or clamped; InBounds tells
	// the caller to discard them (transparent).
	U, V     float64
	Zone     Zone
	Dist     float64 // distance from the pointer over the lens radius
	InBounds bool
}

// stretch maps a normalized coordinate into aspect-corrected space, where
// equal distances are equal on screen. The longer axis is scaled by the
// aspect ratio.
func stretch(x, y, aspect float64) (float64, float64) {
	if aspect >= 1 {
		return x * aspect, y
	}
	return x, y / aspect
}

// unstretch inverts stretch, converting an aspect-corrected coordinate back
// to sample space.
func unstretch(x, y, aspect float64) (float64, float64) {
	if aspect >= 1 {
		return x / aspect, y
	}
	return x, y * aspect
}

// SampleAt maps the output pixel at normalized (u, v) to the source
// coordinate the shader would read, for a pointer at normalized (px, py), an
// aspect ratio of width over height, and t seconds of elapsed time.
func (c Config) SampleAt(u, v, px, py, aspect, t float64) Sample {
	cx, cy := stretch(u, v, aspect)
	qx, qy := stretch(px, py, aspect)

	dx, dy := qx-cx, qy-cy
	nd := math.Hypot(dx, dy) / c.Radius
	if nd >= 1 {
		return Sample{U: u, V: v, Zone: ZoneOutside, Dist: nd, InBounds: inUnit(u, v)}
	}

	var ox, oy float64
	zone := ZoneClear
	if nd < c.ClearZone {
		ox = dx * c.ClearPull * nd
		oy = dy * c.ClearPull * nd
	} else {
		zone = ZoneMelt
		edge := (nd - c.ClearZone) / (1 - c.ClearZone)
		pull := math.Pow(edge, c.PullExponent) * c.PullStrength
		dirx, diry := dx, dy
		if l := math.Hypot(dirx, diry); l > 0 {
			dirx /= l
			diry /= l
		}
		// curvature bends the pull angle, strongest mid-lens
		bend := math.Sin(nd*math.Pi) * edge
		cb, sb := math.Cos(bend), math.Sin(bend)
		bx := dirx*cb - diry*sb
		by := dirx*sb + diry*cb
		ox = bx * pull * c.Radius
		oy = by * pull * c.Radius
		if c.SwirlStrength > 0 {
			angle := math.Atan2(cy-qy, cx-qx)
			swirl := math.Sin(angle*3+nd*2*math.Pi+t*2) * edge * c.SwirlStrength
			// perpendicular to the pull direction
			ox += -diry * swirl * c.Radius
			oy += dirx * swirl * c.Radius
		}
	}

	su, sv := unstretch(cx+ox, cy+oy, aspect)
	return Sample{U: su, V: sv, Zone: zone, Dist: nd, InBounds: inUnit(su, sv)}
}

// ChromaticMagnitude is the base per-channel sampling offset at normalized
// distance nd; the red, green and blue channels use 0.5x, 1x and 1.5x of it.
// Zero below the chromatic threshold.
func (c Config) ChromaticMagnitude(nd float64) float64 {
	if nd <= c.Chromatic {
		return 0
	}
	f := (nd - c.Chromatic) / (1 - c.Chromatic)
	return math.Pow(f, c.ChromaticExponent) * c.ChromaticStrength * c.Radius
}

// PrismWeight is the blend weight of the synthetic spectrum at normalized
// distance nd. Zero below the prism threshold.
func (c Config) PrismWeight(nd float64) float64 {
	if nd <= c.Prism {
		return 0
	}
	f := (nd - c.Prism) / (1 - c.Prism)
	return math.Pow(f, c.PrismExponent) * c.PrismStrength
}

func inUnit(u, v float64) bool {
	return u >= 0 && u <= 1 && v >= 0 && v <= 1
}
