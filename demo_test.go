package main

import (
	"context"
	"image"
	"testing"

	"liquidlens/input"
	"liquidlens/lens"
	"liquidlens/source"
)

type nullProvider struct{}

func (nullProvider) Name() string { return "null" }

func (nullProvider) Capture(ctx context.Context, req source.Request) (*image.RGBA, error) {
	return image.NewRGBA(image.Rect(0, 0, req.Width, req.Height)), nil
}

// The touch lift is tuned in logical pixels; on a dense display the tracker
// must receive it multiplied by the device pixel ratio, or the finger still
// covers the lens.
func TestTouchLiftScalesWithDevicePixelRatio(t *testing.T) {
	d := newDemo(demoOptions{
		cfg:      lens.Detect(lens.Signals{Touch: true, Width: 390}),
		forced:   true,
		mode:     input.ModeHover,
		provider: nullProvider{},
	})
	defer d.Close()

	base := d.trackerOptions().TouchLift
	if base != d.cfg.TouchLift {
		t.Fatalf("lift at scale 1 = %v, want %v", base, d.cfg.TouchLift)
	}
	d.scale = 3
	if got := d.trackerOptions().TouchLift; got != 3*base {
		t.Fatalf("lift at scale 3 = %v, want %v", got, 3*base)
	}
}
