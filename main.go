package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"liquidlens/input"
	"liquidlens/lens"
	"liquidlens/source"
)

func main() {
	if err := run(); err != nil {
		log.Fatalln(err)
	}
}

func run() error {
	strategy := flag.String("strategy", "static", "Texture source: static (offscreen raster) or snapshot (headless browser).")
	mode := flag.String("mode", "hover", "Desktop reveal mode: hover or hold.")
	quality := flag.String("quality", "auto", "Quality profile: auto, high or low.")
	spring := flag.Bool("spring", false, "Let the lens trail the pointer on a damped spring.")
	chrome := flag.String("chrome", "", "Remote Chrome debugger address for the snapshot strategy; empty launches a local headless browser.")
	flag.Parse()

	content := pageContent()

	var provider source.Provider
	switch *strategy {
	case "static":
		p, err := source.NewStaticText(content)
		if err != nil {
			return fmt.Errorf("static text source: %w", err)
		}
		provider = p
	case "snapshot":
		p, err := source.NewSnapshot(content, *chrome)
		if err != nil {
			return fmt.Errorf("snapshot source: %w", err)
		}
		provider = p
	default:
		return fmt.Errorf("unknown strategy %q", *strategy)
	}

	var cfg lens.Config
	forced := true
	switch *quality {
	case "auto":
		// refined on the first layout, once the real viewport is known
		cfg = lens.Detect(lens.Signals{Width: 1024})
		forced = false
	case "high":
		cfg = lens.Detect(lens.Signals{Width: 1920})
	case "low":
		cfg = lens.Detect(lens.Signals{Touch: true, Width: 390})
	default:
		return fmt.Errorf("unknown quality %q", *quality)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("lens config: %w", err)
	}

	var m input.Mode
	switch *mode {
	case "hover":
		m = input.ModeHover
	case "hold":
		m = input.ModeHold
	default:
		return fmt.Errorf("unknown mode %q", *mode)
	}

	renderer, err := lens.NewRenderer()
	if err != nil {
		// the lens is a progressive enhancement: without a shader the page
		// still renders, just undistorted
		log.Printf("lens disabled: %v", err)
		renderer = nil
	}

	d := newDemo(demoOptions{
		cfg:      cfg,
		forced:   forced,
		mode:     m,
		provider: provider,
		renderer: renderer,
	})
	defer d.Close()
	if *spring {
		d.tracker.AttachSpring(input.NewSpring(60, 10))
	}

	ebiten.SetWindowTitle("Liquid Glass")
	ebiten.SetWindowSize(1024, 768)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	// skipped passes keep the previous frame on screen
	ebiten.SetScreenClearedEveryFrame(false)
	ebiten.SetTPS(cfg.TargetFPS)

	if err := ebiten.RunGame(d); err != nil {
		return fmt.Errorf("run demo: %w", err)
	}
	return nil
}

func pageContent() source.Content {
	return source.Content{
		Title: "Liquid Glass",
		Paragraphs: []string{
			"Move the pointer anywhere on this page. A circle of glass follows it, and the words underneath slide and stretch as if read through a drop of water resting on the paper.",
			"The center of the drop is honest. Light passing near the middle of a thick lens barely bends, so the text there stays crisp and very slightly magnified, the way a clean magnifying glass treats the fine print.",
			"Toward the rim the glass thickens and the image starts to melt. Each point is pulled toward the center along a curve, and the pull grows faster than the distance, which is what gives real glass edges their smeared, liquid look.",
			"At the very edge the colors come apart. Red, green and blue refract by different amounts in any dense medium, so every letter grows a faint rainbow fringe, and the outermost ring breaks the light into a slow turning spectrum.",
			"None of this touches the page itself. The glass reads a snapshot of the content and distorts only what you see, so scrolling, resizing and the text beneath keep working as before.",
			"Press Q to switch between the full and the reduced rendering tier. On small or touch screens the reduced tier is chosen automatically, with a larger drop held above the fingertip.",
		},
		Attribution: []string{
			"A pointer-driven refraction study, drawn by a fragment shader every frame.",
			"Set in the Go fonts. Rendered with Ebitengine.",
		},
		AttributionURL: "https://github.com/hajimehoshi/ebiten",
	}
}
