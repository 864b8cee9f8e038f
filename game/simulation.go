package game

import (
	"log/slog"

	"github.com/pthm-cable/heartbeat/camera"
	"github.com/pthm-cable/heartbeat/telemetry"
)

// Update advances the animation by one step without drawing.
func (g *Game) Update() {
	g.perfCollector.StartTick()
	g.step()
	g.perfCollector.EndTick()
}

// Draw fades the surface and draws the particles projected on the last step.
func (g *Game) Draw(s Surface) {
	s.Fade(g.fadeColor)
	g.drawParticles(s)
}

// Tick runs one full frame on s: fade, step the simulation, draw.
func (g *Game) Tick(s Surface) {
	g.perfCollector.StartTick()

	if w, h := s.Size(); w != g.viewW || h != g.viewH {
		g.Resize(w, h)
	}

	g.perfCollector.StartPhase(telemetry.PhaseFade)
	s.Fade(g.fadeColor)

	g.step()

	g.perfCollector.StartPhase(telemetry.PhaseParticles)
	g.drawParticles(s)

	g.perfCollector.EndTick()
}

// step runs the simulation phases in order.
func (g *Game) step() {
	cfg := g.cfg

	if g.celebrateAt > 0 && g.tick >= g.celebrateAt && !g.celebrated {
		g.Celebrate()
	}

	g.perfCollector.StartPhase(telemetry.PhaseClock)
	g.time += cfg.Pulse.TimeStep
	g.pulse = Pulse(g.time, cfg.Pulse)
	g.camera.Update()

	g.perfCollector.StartPhase(telemetry.PhaseParticles)
	g.updateParticles()

	g.perfCollector.StartPhase(telemetry.PhaseRain)
	g.rain.Update()

	g.perfCollector.StartPhase(telemetry.PhaseProposal)
	g.proposal.Update(float32(cfg.Derived.TickSeconds))

	g.tick++

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.collector.RecordTick(g.pulse, g.drawn, g.clipped)
	g.flushTelemetry()
}

// updateParticles moves every particle and projects the visible ones
// into the frame buffer.
func (g *Game) updateParticles() {
	rot := g.camera.Matrix()
	focal := g.camera.Focal
	w, h := float64(g.viewW), float64(g.viewH)

	g.frame = g.frame[:0]
	g.drawn, g.clipped = 0, 0

	for _, p := range g.particles {
		p.Update(g.pulse)
		if !p.Visible() {
			continue
		}

		proj, ok := camera.Project(p.Position, p.Size, rot, focal, w, h)
		if !ok {
			g.clipped++
			continue
		}
		if !g.camera.IsVisible(proj) {
			continue
		}

		g.frame = append(g.frame, sprite{x: proj.X, y: proj.Y, r: proj.Radius, c: p.RGBA(255)})
		g.drawn++
	}
}

func (g *Game) drawParticles(s Surface) {
	s.BeginAdditive()
	for _, sp := range g.frame {
		s.DrawCircle(sp.x, sp.y, sp.r, sp.c)
	}
	s.EndAdditive()
}

// Celebrate disperses every particle, starts the heart rain and plays the
// success overlay. Only the first call has an effect.
func (g *Game) Celebrate() bool {
	if g.celebrated {
		return false
	}
	g.celebrated = true

	for _, p := range g.particles {
		p.Disperse()
	}
	g.proposal.Accept()
	g.rain.Start()
	g.collector.Record(telemetry.NewCelebrateEvent(g.tick))

	slog.Info("celebrated", "tick", g.tick, "particles", len(g.particles))
	return true
}

// Dodge moves the No button away from the pointer. It returns false once
// the proposal has been accepted.
func (g *Game) Dodge() bool {
	if !g.proposal.Dodge(float64(g.viewW), float64(g.viewH)) {
		return false
	}
	g.collector.Record(telemetry.NewDodgeEvent(g.tick))
	return true
}

// SetPointer records the pointer position in viewport pixels. The latest
// position before a step is the one that counts.
func (g *Game) SetPointer(x, y float64) {
	g.camera.SetPointer(x, y)
}

// Resize changes the viewport the heart is projected into.
func (g *Game) Resize(w, h int) {
	w, h = max(w, 1), max(h, 1)
	if w == g.viewW && h == g.viewH {
		return
	}
	g.viewW, g.viewH = w, h
	g.camera.Resize(float64(w), float64(h))
	g.collector.Record(telemetry.NewResizeEvent(g.tick, w, h))
}
