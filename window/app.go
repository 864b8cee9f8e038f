// Package window runs the heart in a raylib window: input, the persistent
// trail texture, the proposal panel and the debug overlays.
package window

import (
	"context"
	"fmt"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/heartbeat/game"
	"github.com/pthm-cable/heartbeat/renderer"
	"github.com/pthm-cable/heartbeat/ui"
)

const controlsLegend = "Y: yes | D: stats | P: timing | H: controls | F11: fullscreen | Esc: quit"

// App owns the window-side state around a Game.
type App struct {
	g *game.Game

	surface *renderer.RaylibSurface
	rain    *renderer.RainRenderer

	overlays *ui.OverlayRegistry
	controls *ui.ControlsPanel
	hud      *ui.HUD
	perf     *ui.PerfPanel
	panel    *ui.ProposalPanel

	screenW, screenH int32
}

// New creates an app around g. The window is opened by Run.
func New(g *game.Game) *App {
	w, h := g.Viewport()
	return &App{
		g:        g,
		surface:  renderer.NewRaylibSurface(int32(w), int32(h)),
		rain:     renderer.NewRainRenderer(int32(w), int32(h)),
		overlays: ui.NewOverlayRegistry(),
		controls: ui.NewControlsPanel(int32(w)-230, 10, 220),
		hud:      ui.NewHUD(),
		perf:     ui.NewPerfPanel(10, int32(h)-150),
		panel:    ui.NewProposalPanel(),
		screenW:  int32(w),
		screenH:  int32(h),
	}
}

// Run opens the window and animates until it is closed, ctx is cancelled
// or maxTicks ticks have run (0 = unlimited).
func (a *App) Run(ctx context.Context, maxTicks int) error {
	cfg := a.g.Config()

	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(a.screenW, a.screenH, cfg.Screen.Title)
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))
	rl.SetExitKey(rl.KeyEscape)

	a.surface.Init()
	defer a.surface.Unload()

	slog.Info("window opened", "width", a.screenW, "height", a.screenH, "fps", cfg.Screen.TargetFPS)

	for !rl.WindowShouldClose() {
		if err := ctx.Err(); err != nil {
			return nil
		}

		a.handleInput()
		a.frame()

		if maxTicks > 0 && int(a.g.Ticks()) >= maxTicks {
			slog.Info("max ticks reached", "tick", a.g.Ticks())
			break
		}
	}
	return nil
}

// handleInput processes keyboard and pointer input.
func (a *App) handleInput() {
	a.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	a.overlays.HandleKeys()

	if rl.IsKeyPressed(rl.KeyY) {
		a.g.Celebrate()
	}
	if rl.IsKeyPressed(rl.KeyN) {
		a.g.Dodge()
	}

	mouse := rl.GetMousePosition()
	a.g.SetPointer(float64(mouse.X), float64(mouse.Y))
}

// handleResize checks for window resize and propagates new dimensions.
func (a *App) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := int32(rl.GetScreenWidth())
	h := int32(rl.GetScreenHeight())
	if w == a.screenW && h == a.screenH {
		return
	}
	a.screenW, a.screenH = w, h

	// The game picks the new size up from the surface on its next tick.
	a.surface.Resize(w, h)
	a.rain.Resize(w, h)
	a.controls.SetPosition(w-230, 10)
	a.perf.SetPosition(10, h-150)
}

// frame ticks the game into the trail texture and composes the screen.
func (a *App) frame() {
	a.surface.Begin()
	a.g.Tick(a.surface)
	a.surface.End()

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)
	a.surface.Present()

	if a.overlays.IsEnabled(ui.OverlayRain) {
		a.rain.Draw(a.g.Rain(), a.g.Ticks())
	}

	if a.overlays.IsEnabled(ui.OverlayPanel) {
		switch a.panel.Draw(a.g.Proposal(), a.screenW, a.screenH) {
		case ui.ActionYes:
			a.g.Celebrate()
		case ui.ActionDodge:
			a.g.Dodge()
		}
	}

	a.drawOverlays()

	rl.EndDrawing()
	a.g.PerfCollector().RecordFrame()
}

// drawOverlays draws the debug panels that are switched on.
func (a *App) drawOverlays() {
	if a.overlays.IsEnabled(ui.OverlayStats) {
		a.hud.Draw(a.hudData(), a.screenW, a.screenH)
	}
	if a.overlays.IsEnabled(ui.OverlayPerf) {
		a.perf.Draw(a.g.PerfCollector().Stats())
	}
	if a.overlays.IsEnabled(ui.OverlayControls) {
		a.controls.Draw(a.overlays)
	} else {
		a.hud.DrawControls(a.screenW, a.screenH, controlsLegend)
	}
}

func (a *App) hudData() ui.HUDData {
	g := a.g
	cam := g.Camera()
	drawn, clipped := g.DrawCounts()
	return ui.HUDData{
		Title:      fmt.Sprintf("Heart (seed %d)", g.Seed()),
		Tick:       g.Ticks(),
		FPS:        rl.GetFPS(),
		Time:       g.Time(),
		Pulse:      g.Pulse(),
		PulsePeak:  g.Config().Pulse.SpikeAmplitude + g.Config().Pulse.WobbleAmplitude,
		Particles:  len(g.Particles()),
		Drawn:      drawn,
		Clipped:    clipped,
		Celebrated: g.Celebrated(),
		Dodges:     g.Proposal().Dodges(),
		RainDrops:  g.Rain().Count(),
		RotX:       cam.RotX,
		RotY:       cam.RotY,
	}
}
