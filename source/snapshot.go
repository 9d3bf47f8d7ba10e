package source

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"image"
	"image/png"
	"net/url"
	"sync"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/chromedp"
	"golang.org/x/image/draw"
)

// Snapshot rasterizes the page content as real HTML in a headless browser.
// The markup uses the same fixed palette as the static raster and hides the
// lens overlay element so the capture can never feed back into itself.
//
// This is approximate by design: browser typography will not match the
// freetype raster, and no attempt is made at reproducing arbitrary page
// features. A failed capture returns an error and the previous texture stays
// committed.
type Snapshot struct {
	html string
	// remote debugger address; empty starts a local headless browser
	remote string

	allocOnce   sync.Once
	allocCtx    context.Context
	allocCancel context.CancelFunc
}

// Captures that take longer than this are abandoned.
const snapshotTimeout = 15 * time.Second

var pageTemplate = template.Must(template.New("page").Parse(`<!doctype html>
<html><head><meta charset="utf-8"><style>
  html, body { margin: 0; background: #faf7f0; color: #23262b; }
  body { font: 19px/1.5 Georgia, serif; padding: 10vw; }
  h1 { font-size: 40px; line-height: 1.2; }
  .attribution { color: #6e7278; font-style: italic; font-size: 14px; }
  a { color: #23262b; }
  /* never capture the lens itself */
  #lens-canvas, canvas { display: none !important; }
</style></head><body>
<h1>{{.Title}}</h1>
{{range .Paragraphs}}<p>{{.}}</p>
{{end}}<div class="attribution">{{range .Attribution}}<p>{{.}}</p>
{{end}}{{if .AttributionURL}}<p><a href="{{.AttributionURL}}">{{.AttributionURL}}</a></p>{{end}}</div>
</body></html>`))

// NewSnapshot renders the content to markup up front; the browser is started
// lazily on the first capture. A non-empty remote address attaches to an
// already running Chrome debugger instead of launching one.
func NewSnapshot(c Content, remote string) (*Snapshot, error) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, c); err != nil {
		return nil, fmt.Errorf("rendering page markup: %w", err)
	}
	return &Snapshot{html: buf.String(), remote: remote}, nil
}

func (s *Snapshot) Name() string { return "snapshot" }

// Capture screenshots the page at the requested viewport, scale and scroll.
func (s *Snapshot) Capture(ctx context.Context, req Request) (*image.RGBA, error) {
	if req.Width <= 0 || req.Height <= 0 {
		return nil, &CaptureError{Strategy: s.Name(), Err: fmt.Errorf("bad viewport %dx%d", req.Width, req.Height)}
	}
	if err := ctx.Err(); err != nil {
		return nil, &CaptureError{Strategy: s.Name(), Err: err}
	}
	s.allocOnce.Do(func() {
		if s.remote != "" {
			s.allocCtx, s.allocCancel = chromedp.NewRemoteAllocator(context.Background(), s.remote)
			return
		}
		s.allocCtx, s.allocCancel = chromedp.NewExecAllocator(context.Background(),
			chromedp.DefaultExecAllocatorOptions[:]...)
	})

	cctx, cancel := chromedp.NewContext(s.allocCtx)
	defer cancel()
	cctx, tcancel := context.WithTimeout(cctx, snapshotTimeout)
	defer tcancel()

	// emulate at scale 1 so css pixels are device pixels and the screenshot
	// matches the requested surface exactly, independent of the host ratio
	var buf []byte
	err := chromedp.Run(cctx,
		emulation.SetDeviceMetricsOverride(int64(req.Width), int64(req.Height), 1, false),
		chromedp.Navigate("data:text/html,"+url.PathEscape(s.html)),
		chromedp.Evaluate(fmt.Sprintf("window.scrollTo(0, %d)", int(req.Scroll)), nil),
		chromedp.CaptureScreenshot(&buf),
	)
	if err != nil {
		return nil, &CaptureError{Strategy: s.Name(), Err: err}
	}

	img, err := png.Decode(bytes.NewReader(buf))
	if err != nil {
		return nil, &CaptureError{Strategy: s.Name(), Err: fmt.Errorf("decoding screenshot: %w", err)}
	}
	return fitViewport(img, req.Width, req.Height), nil
}

// fitViewport copies img into a buffer of exactly w x h. When the browser
// rounded the surface differently than the layout did, the screenshot is
// rescaled; a mismatched texture would disable the lens pass outright.
func fitViewport(img image.Image, w, h int) *image.RGBA {
	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	b := img.Bounds()
	if b.Dx() == w && b.Dy() == h {
		draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
		return rgba
	}
	draw.ApproxBiLinear.Scale(rgba, rgba.Bounds(), img, b, draw.Src, nil)
	return rgba
}

// Close shuts the browser down. Safe to call without a prior capture.
func (s *Snapshot) Close() {
	if s.allocCancel != nil {
		s.allocCancel()
	}
}
