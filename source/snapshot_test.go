package source

import (
	"image"
	"image/color"
	"strings"
	"testing"
)

// A screenshot the browser rounded a pixel short must come back at exactly
// the requested surface size, or the committed texture would never match the
// viewport and the lens pass would be skipped forever.
func TestFitViewportNormalizesBrowserRounding(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 1534, 767))
	for i := range src.Pix {
		src.Pix[i] = 0x80
	}
	got := fitViewport(src, 1535, 768)
	if got.Bounds().Dx() != 1535 || got.Bounds().Dy() != 768 {
		t.Fatalf("fitted bounds = %v, want 1535x768", got.Bounds())
	}
}

func TestFitViewportExactSizeIsCopied(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 16, 16))
	src.SetRGBA(3, 5, color.RGBA{0x10, 0x20, 0x30, 0xFF})
	got := fitViewport(src, 16, 16)
	if got.RGBAAt(3, 5) != (color.RGBA{0x10, 0x20, 0x30, 0xFF}) {
		t.Fatal("exact-size fit must copy pixels unmodified")
	}
}

func TestPageMarkupHidesLensCanvas(t *testing.T) {
	s, err := NewSnapshot(testContent(), "")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(s.html, "canvas { display: none") {
		t.Fatal("page markup must exclude the lens canvas from capture")
	}
	if !strings.Contains(s.html, testContent().Title) {
		t.Fatal("page markup must carry the content title")
	}
}
