package game

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/heartbeat/particle"
	"github.com/pthm-cable/heartbeat/telemetry"
)

// flushTelemetry checks if the stats window should be flushed and handles bookmarks.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	stats := g.collector.Flush(g.tick, g.sample())
	perfStats := g.perfCollector.Stats()

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}

	for _, bm := range g.bookmarkDetector.Check(stats) {
		if g.logStats {
			bm.LogBookmark()
		}
		if g.outputManager != nil {
			if err := g.outputManager.WriteBookmark(bm); err != nil {
				slog.Error("failed to write bookmark", "error", err)
			}
		}
	}
}

// sample reads the particle and rain state for the closing window.
func (g *Game) sample() telemetry.Sample {
	s := telemetry.Sample{
		AnimTime:   g.time,
		Pulse:      g.pulse,
		Celebrated: g.celebrated,
		Particles:  len(g.particles),
		RainLive:   g.rain.Count(),
	}
	s.RainSpawned, s.RainExpired = g.rain.Drain()

	for _, p := range g.particles {
		if p.State() == particle.Dispersing {
			s.Dispersing++
		}
		if !p.Visible() {
			continue
		}
		s.Visible++
		s.Radii = append(s.Radii, p.Position.Len())
		s.Sizes = append(s.Sizes, p.Size)
		s.Speeds = append(s.Speeds, p.Velocity.Len())
	}

	return s
}

// Snapshotter is a surface that can be saved as an image.
type Snapshotter interface {
	WritePNG(path string) error
}

// SaveSnapshot writes the current frame on s to path.
func (g *Game) SaveSnapshot(s Snapshotter, path string) error {
	if err := s.WritePNG(path); err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}
	g.collector.Record(telemetry.NewSnapshotEvent(g.tick))
	slog.Info("snapshot saved", "path", path, "tick", g.tick)
	return nil
}
