package lens

import "time"

// Signals are the device properties the quality policy looks at. Touch and a
// narrow viewport both indicate a constrained device.
type Signals struct {
	Touch bool
	// Viewport width in logical pixels.
	Width int
}

// Viewports at or below this logical width get the constrained profile even
// without touch input.
const narrowWidth = 768

// Constrained reports whether the signals call for the reduced profile.
func (s Signals) Constrained() bool {
	return s.Touch || (s.Width > 0 && s.Width <= narrowWidth)
}

// Detect maps device signals to a lens configuration. It is a pure function:
// the caller re-evaluates it on resize or orientation change and swaps the
// whole config at once.
func Detect(sig Signals) Config {
	if sig.Constrained() {
		return Config{
			Radius:            0.34,
			ClearZone:         0.62,
			Chromatic:         0.76,
			Prism:             0.9,
			ClearPull:         0.04,
			PullExponent:      1.3,
			PullStrength:      0.1,
			SwirlStrength:     0,
			ChromaticStrength: 0.012,
			ChromaticExponent: 1.6,
			PrismStrength:     0.5,
			PrismExponent:     2.2,
			TintStrength:      0.05,
			ShimmerStrength:   0,
			TargetFPS:         30,
			CaptureInterval:   2 * time.Second,
			Tier:              TierLite,
			TouchLift:         80,
			ReleaseLinger:     350 * time.Millisecond,
		}
	}
	return Config{
		Radius:            0.26,
		ClearZone:         0.6,
		Chromatic:         0.72,
		Prism:             0.88,
		ClearPull:         0.05,
		PullExponent:      1.5,
		PullStrength:      0.14,
		SwirlStrength:     0.01,
		ChromaticStrength: 0.02,
		ChromaticExponent: 1.8,
		PrismStrength:     0.65,
		PrismExponent:     2.6,
		TintStrength:      0.07,
		ShimmerStrength:   0.03,
		TargetFPS:         60,
		CaptureInterval:   400 * time.Millisecond,
		Tier:              TierFull,
		TouchLift:         0,
		ReleaseLinger:     250 * time.Millisecond,
	}
}
