package source

import (
	"context"
	"image"
	"sync/atomic"
	"testing"
	"time"
)

func TestGateDropsCallsInsideInterval(t *testing.T) {
	g := Gate{Min: 500 * time.Millisecond}
	base := time.Now()
	if !g.Allow(base) {
		t.Fatal("first call must pass")
	}
	executed := 1
	for i := 1; i <= 10; i++ {
		if g.Allow(base.Add(time.Duration(i) * 40 * time.Millisecond)) {
			executed++
		}
	}
	if executed != 1 {
		t.Fatalf("%d captures executed inside the interval, want 1", executed)
	}
	if !g.Allow(base.Add(600 * time.Millisecond)) {
		t.Fatal("call after the interval must pass")
	}
}

func TestGateReset(t *testing.T) {
	g := Gate{Min: time.Hour}
	now := time.Now()
	g.Allow(now)
	if g.Allow(now.Add(time.Second)) {
		t.Fatal("gate should still be closed")
	}
	g.Reset()
	if !g.Allow(now.Add(2 * time.Second)) {
		t.Fatal("gate should be open after reset")
	}
}

type countingProvider struct {
	calls atomic.Int64
}

func (p *countingProvider) Name() string { return "counting" }

func (p *countingProvider) Capture(ctx context.Context, req Request) (*image.RGBA, error) {
	p.calls.Add(1)
	return image.NewRGBA(image.Rect(0, 0, req.Width, req.Height)), nil
}

func TestManagerThrottlesRequests(t *testing.T) {
	p := &countingProvider{}
	m := NewManager(p, time.Hour)
	defer m.Close()

	req := Request{Width: 8, Height: 8, Scale: 1}
	started := 0
	for i := 0; i < 10; i++ {
		if m.Request(context.Background(), req) {
			started++
		}
	}
	if started != 1 {
		t.Fatalf("%d captures started within the interval, want 1", started)
	}

	deadline := time.After(time.Second)
	for p.calls.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("the one allowed capture never ran")
		default:
			time.Sleep(time.Millisecond)
		}
	}
	if got := p.calls.Load(); got != 1 {
		t.Fatalf("provider ran %d times, want 1", got)
	}
}

func TestManagerDiscardsResultsAfterClose(t *testing.T) {
	p := &countingProvider{}
	m := NewManager(p, 0)

	if !m.Request(context.Background(), Request{Width: 8, Height: 8, Scale: 1}) {
		t.Fatal("request should start")
	}
	// let the capture finish, then tear down before committing
	deadline := time.After(time.Second)
	for p.calls.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("capture never ran")
		default:
			time.Sleep(time.Millisecond)
		}
	}
	time.Sleep(10 * time.Millisecond)
	m.Close()
	m.Commit()
	if _, _, _, ok := m.Texture(); ok {
		t.Fatal("a capture completing after teardown must not be applied")
	}
	if m.Request(context.Background(), Request{Width: 8, Height: 8, Scale: 1}) {
		t.Fatal("requests after close must be no-ops")
	}
}
