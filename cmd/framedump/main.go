// Frame dump tool - renders the heart on the GPU for N ticks and writes the
// last frame to a PNG file for inspection.
//
// Usage: go run ./cmd/framedump -ticks 120 -out frame.png
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/heartbeat/config"
	"github.com/pthm-cable/heartbeat/game"
	"github.com/pthm-cable/heartbeat/renderer"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	outPath := flag.String("out", "frame.png", "Output PNG path")
	ticks := flag.Int("ticks", 120, "Ticks to render before capturing")
	seed := flag.Int64("seed", 1, "RNG seed")
	celebrateAt := flag.Int("celebrate-at", 0, "Say yes at tick N (0 = never)")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	g, err := game.New(config.Cfg(), game.Options{
		Seed:        *seed,
		Headless:    true,
		CelebrateAt: int32(*celebrateAt),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create heart: %v\n", err)
		os.Exit(1)
	}
	defer g.Close()

	w, h := g.Viewport()

	// Initialize raylib with hidden window
	rl.SetConfigFlags(rl.FlagWindowHidden)
	rl.SetTraceLogLevel(rl.LogWarning)
	rl.InitWindow(int32(w), int32(h), "Frame Dump")
	defer rl.CloseWindow()

	surface := renderer.NewRaylibSurface(int32(w), int32(h))
	surface.Init()
	defer surface.Unload()

	for i := 0; i < *ticks; i++ {
		surface.Begin()
		g.Tick(surface)
		surface.End()
	}

	if err := g.SaveSnapshot(surface, *outPath); err != nil {
		slog.Error("frame dump failed", "error", err)
		os.Exit(1)
	}
	fmt.Printf("Frame rendered to: %s (%dx%d, tick %d)\n", *outPath, w, h, g.Ticks())
}
