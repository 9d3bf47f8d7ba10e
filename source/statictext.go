package source

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strings"
	"sync"

	"github.com/golang/freetype/truetype"
	qrcode "github.com/skip2/go-qrcode"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// Fixed page palette, independent of any host theme.
var (
	// Paper is the page background; the demo clears to it while the first
	// capture is still in flight.
	Paper = color.RGBA{0xFA, 0xF7, 0xF0, 0xFF}
	ink   = color.RGBA{0x23, 0x26, 0x2B, 0xFF}
	faded = color.RGBA{0x6E, 0x72, 0x78, 0xFF}
)

// Content is the fixed text payload of the page: a title, body paragraphs
// and attribution lines with a link rendered as a QR code.
type Content struct {
	Title          string
	Paragraphs     []string
	Attribution    []string
	AttributionURL string
}

// StaticText rasterizes Content onto an offscreen surface with deterministic
// greedy word wrap: the same viewport and scroll always produce the same
// pixels.
type StaticText struct {
	content Content

	titleFont *truetype.Font
	bodyFont  *sfnt.Font
	smallFont *sfnt.Font

	mu    sync.Mutex
	faces map[float64]faceSet
}

type faceSet struct {
	title, body, small font.Face
	bodySize           float64 // px
	titleSize          float64
}

// NewStaticText parses the embedded Go fonts once. Face construction is
// deferred to capture time because sizes depend on the device pixel ratio.
func NewStaticText(c Content) (*StaticText, error) {
	title, err := truetype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parsing title font: %w", err)
	}
	body, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parsing body font: %w", err)
	}
	small, err := opentype.Parse(goitalic.TTF)
	if err != nil {
		return nil, fmt.Errorf("parsing attribution font: %w", err)
	}
	return &StaticText{
		content:   c,
		titleFont: title,
		bodyFont:  body,
		smallFont: small,
		faces:     map[float64]faceSet{},
	}, nil
}

func (s *StaticText) Name() string { return "statictext" }

func (s *StaticText) facesFor(scale float64) (faceSet, error) {
	if scale <= 0 {
		scale = 1
	}
	if fs, ok := s.faces[scale]; ok {
		return fs, nil
	}
	const dpi = 96
	titleSize := 40 * scale
	bodySize := 19 * scale
	smallSize := 14 * scale
	title := truetype.NewFace(s.titleFont, &truetype.Options{Size: titleSize, DPI: dpi, Hinting: font.HintingFull})
	body, err := opentype.NewFace(s.bodyFont, &opentype.FaceOptions{Size: bodySize, DPI: dpi, Hinting: font.HintingFull})
	if err != nil {
		return faceSet{}, fmt.Errorf("body face: %w", err)
	}
	small, err := opentype.NewFace(s.smallFont, &opentype.FaceOptions{Size: smallSize, DPI: dpi, Hinting: font.HintingFull})
	if err != nil {
		return faceSet{}, fmt.Errorf("attribution face: %w", err)
	}
	fs := faceSet{title: title, body: body, small: small, bodySize: bodySize, titleSize: titleSize}
	s.faces[scale] = fs
	return fs, nil
}

// textLine is one laid-out line: text, baseline origin, face and color.
type textLine struct {
	text string
	x, y int
	face font.Face
	col  color.RGBA
}

// flow is the full laid-out page, independent of scroll.
type flow struct {
	lines  []textLine
	qr     image.Rectangle
	height int
}

// layout runs the deterministic wrap for a viewport width. Line spacing and
// section gaps are fixed multipliers of the font size.
func (s *StaticText) layout(req Request, fs faceSet) flow {
	var f flow
	w := req.Width

	margin := w / 10
	if margin < 32 {
		margin = 32
	}
	maxWidth := w - 2*margin
	if maxWidth < 64 {
		maxWidth = 64
	}

	titleLine := int(fs.titleSize * 1.2)
	bodyLine := int(fs.bodySize * 1.5)
	paraGap := int(fs.bodySize * 1.0)
	sectionGap := int(fs.bodySize * 2.0)

	y := margin + titleLine
	for _, line := range wrapWords(fs.title, s.content.Title, fixed.I(maxWidth)) {
		f.lines = append(f.lines, textLine{text: line, x: margin, y: y, face: fs.title, col: ink})
		y += titleLine
	}
	y += sectionGap

	for _, para := range s.content.Paragraphs {
		for _, line := range wrapWords(fs.body, para, fixed.I(maxWidth)) {
			f.lines = append(f.lines, textLine{text: line, x: margin, y: y, face: fs.body, col: ink})
			y += bodyLine
		}
		y += paraGap
	}
	y += sectionGap

	for _, attr := range s.content.Attribution {
		for _, line := range wrapWords(fs.small, attr, fixed.I(maxWidth)) {
			f.lines = append(f.lines, textLine{text: line, x: margin, y: y, face: fs.small, col: faded})
			y += bodyLine
		}
	}

	if s.content.AttributionURL != "" {
		qrSize := int(fs.bodySize * 5)
		y += paraGap
		f.qr = image.Rect(margin, y, margin+qrSize, y+qrSize)
		y += qrSize
	}

	f.height = y + margin
	return f
}

// Capture rasterizes the visible window of the page at the requested scroll
// offset.
func (s *StaticText) Capture(ctx context.Context, req Request) (*image.RGBA, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if req.Width <= 0 || req.Height <= 0 {
		return nil, &CaptureError{Strategy: s.Name(), Err: fmt.Errorf("bad viewport %dx%d", req.Width, req.Height)}
	}
	if err := ctx.Err(); err != nil {
		return nil, &CaptureError{Strategy: s.Name(), Err: err}
	}
	fs, err := s.facesFor(req.Scale)
	if err != nil {
		return nil, &CaptureError{Strategy: s.Name(), Err: err}
	}

	canvas := image.NewRGBA(image.Rect(0, 0, req.Width, req.Height))
	draw.Draw(canvas, canvas.Bounds(), &image.Uniform{C: Paper}, image.Point{}, draw.Src)

	scroll := int(req.Scroll)
	f := s.layout(req, fs)
	for _, line := range f.lines {
		y := line.y - scroll
		if y < -int(fs.titleSize*2) || y > req.Height+int(fs.titleSize*2) {
			continue
		}
		d := &font.Drawer{
			Dst:  canvas,
			Src:  image.NewUniform(line.col),
			Face: line.face,
			Dot:  fixed.P(line.x, y),
		}
		d.DrawString(line.text)
	}

	if !f.qr.Empty() {
		r := f.qr.Sub(image.Pt(0, scroll))
		if r.Max.Y > 0 && r.Min.Y < req.Height {
			q, err := qrcode.New(s.content.AttributionURL, qrcode.Medium)
			if err == nil {
				q.DisableBorder = true
				q.BackgroundColor = Paper
				q.ForegroundColor = ink
				draw.Draw(canvas, r, q.Image(r.Dx()), image.Point{}, draw.Over)
			}
		}
	}

	return canvas, nil
}

// ContentHeight reports the total page height at the requested width and
// scale, used to clamp scrolling.
func (s *StaticText) ContentHeight(req Request) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	fs, err := s.facesFor(req.Scale)
	if err != nil {
		return 0
	}
	return float64(s.layout(req, fs).height)
}

// wrapWords greedily appends whitespace-delimited words to the current line
// until the measured width would exceed maxWidth, then flushes the line.
func wrapWords(face font.Face, text string, maxWidth fixed.Int26_6) []string {
	d := font.Drawer{Face: face}
	var lines []string
	var cur string
	for _, word := range strings.Fields(text) {
		if cur == "" {
			cur = word
			continue
		}
		cand := cur + " " + word
		if d.MeasureString(cand) > maxWidth {
			lines = append(lines, cur)
			cur = word
			continue
		}
		cur = cand
	}
	if cur != "" {
		lines = append(lines, cur)
	}
	return lines
}
