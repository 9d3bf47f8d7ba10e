package lens

import "testing"

func TestDetectedConfigsValidate(t *testing.T) {
	for _, sig := range []Signals{
		{Touch: false, Width: 1920},
		{Touch: true, Width: 390},
		{Touch: false, Width: 768},
		{Touch: true, Width: 1920},
	} {
		cfg := Detect(sig)
		if err := cfg.Validate(); err != nil {
			t.Fatalf("Detect(%+v): %v", sig, err)
		}
	}
}

// A touch on a narrow viewport must get the constrained profile: the mobile
// radius, a vertical lift, and the lite shader tier.
func TestNarrowTouchViewportGetsMobileProfile(t *testing.T) {
	mobile := Detect(Signals{Touch: true, Width: 600})
	desktop := Detect(Signals{Touch: false, Width: 1920})

	if mobile.Radius == desktop.Radius {
		t.Fatal("mobile radius must differ from desktop radius")
	}
	if mobile.TouchLift <= 0 {
		t.Fatalf("mobile touch lift = %v, want positive", mobile.TouchLift)
	}
	if mobile.Tier != TierLite {
		t.Fatalf("mobile tier = %v, want lite", mobile.Tier)
	}
	if mobile.TargetFPS >= desktop.TargetFPS {
		t.Fatalf("mobile fps %d should be below desktop %d", mobile.TargetFPS, desktop.TargetFPS)
	}
	if mobile.CaptureInterval <= desktop.CaptureInterval {
		t.Fatal("mobile capture interval should be longer than desktop")
	}
}

func TestZoneNestingRejected(t *testing.T) {
	cfg := Detect(Signals{Width: 1920})
	cfg.Chromatic = cfg.ClearZone // collapse the nesting
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for non-nested thresholds")
	}
	cfg = Detect(Signals{Width: 1920})
	cfg.Prism = 1.1
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for prism threshold above 1")
	}
}

func TestNarrowWidthAloneIsConstrained(t *testing.T) {
	if !(Signals{Width: 768}).Constrained() {
		t.Fatal("width 768 should be constrained")
	}
	if (Signals{Width: 769}).Constrained() {
		t.Fatal("width 769 should not be constrained")
	}
}
