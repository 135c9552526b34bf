// Command textmeshdemo renders a frame of text through textmesh.
//
// It loads the configured fonts, draws a pangram in each of them and a bar
// along the top edge, and writes the frame and the glyph atlas as PNG
// files. Draw calls are executed by a small software backend so the demo
// runs without a GPU.
package main

import (
	"flag"
	"image"
	"image/png"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/textmesh"
	"github.com/gogpu/textmesh/mesh"
)

const pangram = "The quick brown fox jumps over the lazy dog."

func main() {
	var (
		width      = flag.Int("width", 800, "frame width")
		height     = flag.Int("height", 600, "frame height")
		configPath = flag.String("config", "", "TOML configuration file")
		output     = flag.String("output", "frame.png", "frame output file")
		atlasOut   = flag.String("atlas", "atlas.png", "atlas output file")
		verbose    = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	if *verbose {
		textmesh.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	cfg := textmesh.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = textmesh.LoadConfig(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}

	backend := newSoftBackend(*width, *height)
	r, err := textmesh.New(cfg, backend)
	if err != nil {
		log.Fatalf("Failed to create renderer: %v", err)
	}

	y := float32(80)
	for _, name := range r.FontNames() {
		f, _ := r.Font(name)
		if _, err := r.DrawText(f, pangram, 100, y, 0, mesh.White); err != nil {
			log.Fatalf("Failed to draw text in %s: %v", name, err)
		}
		y += float32(f.Metrics().Height) + 10
	}

	bar := mesh.Rect{X0: 0, Y0: 0, X1: float32(*width), Y1: 32}
	if err := r.DrawRect(bar, 0, mesh.Red); err != nil {
		log.Fatalf("Failed to draw rect: %v", err)
	}

	if err := savePNG(*output, backend.frame); err != nil {
		log.Fatalf("Failed to save frame: %v", err)
	}
	if err := savePNG(*atlasOut, r.Atlas().Image()); err != nil {
		log.Fatalf("Failed to save atlas: %v", err)
	}

	stats := r.Cache().Stats()
	log.Printf("Frame saved to %s (%dx%d), atlas to %s\n", *output, *width, *height, *atlasOut)
	log.Printf("Glyphs: %d packed, %d blank, %d hits; atlas %.1f%% used, %d uploads, %d draws\n",
		stats.Packed.Load(), stats.Blank.Load(), stats.Hits.Load(),
		r.Atlas().Packer().Utilization()*100, backend.uploads, backend.draws)
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
