package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/heartbeat/config"
	"github.com/pthm-cable/heartbeat/game"
	"github.com/pthm-cable/heartbeat/raster"
	"github.com/pthm-cable/heartbeat/terminal"
	"github.com/pthm-cable/heartbeat/window"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	term := flag.Bool("terminal", false, "Draw the heart in the terminal")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	snapshot := flag.String("snapshot", "", "Write the last headless frame to this PNG file")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	celebrateAt := flag.Int("celebrate-at", 0, "Say yes automatically at tick N (0 = never)")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Set up seed
	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	// The terminal owns stdout while it draws
	logOut := os.Stdout
	if *term {
		logOut = os.Stderr
	}
	logger := slog.New(slog.NewJSONHandler(logOut, nil))
	slog.SetDefault(logger)

	opts := game.Options{
		Seed:           rngSeed,
		LogStats:       *logStats,
		StatsWindowSec: *statsWindow,
		OutputDir:      *outputDir,
		Headless:       *headless,
		CelebrateAt:    int32(*celebrateAt),
	}

	g, err := game.New(cfg, opts)
	if err != nil {
		slog.Error("failed to create heart", "error", err)
		os.Exit(1)
	}
	defer g.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch {
	case *headless:
		err = runHeadless(ctx, g, *maxTicks, *snapshot)
	case *term:
		err = runTerminal(ctx, g, *maxTicks)
	default:
		err = window.New(g).Run(ctx, *maxTicks)
	}
	if err != nil && ctx.Err() == nil {
		slog.Error("run failed", "error", err)
		os.Exit(1)
	}
}

// runHeadless steps the heart onto an in-memory raster as fast as possible.
func runHeadless(ctx context.Context, g *game.Game, maxTicks int, snapshot string) error {
	w, h := g.Viewport()
	surface := raster.New(w, h)

	slog.Info("starting headless run",
		"seed", g.Seed(),
		"max_ticks", maxTicks,
		"particles", len(g.Particles()),
	)

	err := game.StepScheduler{Ticks: maxTicks}.Run(ctx, func() bool {
		g.Tick(surface)
		return true
	})
	slog.Info("headless run finished", "tick", g.Ticks(), "celebrated", g.Celebrated())

	if snapshot != "" {
		if serr := g.SaveSnapshot(surface, snapshot); serr != nil {
			return serr
		}
	}
	return err
}

// runTerminal draws the heart with tcell at the configured frame rate.
func runTerminal(ctx context.Context, g *game.Game, maxTicks int) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	app := terminal.New(screen, g)
	app.MaxTicks = maxTicks
	return app.Run(ctx, game.NewTickerScheduler(g.Config().Screen.TargetFPS))
}
