package ui

import (
	"fmt"
	"math"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/heartbeat/telemetry"
)

// HUDData holds all the data needed to render the debug HUD.
type HUDData struct {
	Title      string
	Tick       int32
	FPS        int32
	Time       float64
	Pulse      float64
	PulsePeak  float64
	Particles  int
	Drawn      int
	Clipped    int
	Celebrated bool
	Dodges     int
	RainDrops  int
	RotX       float64
	RotY       float64
}

// statsPanel describes the stats overlay.
var statsPanel = PanelDescriptor{
	ID:     "stats",
	Title:  "Heart",
	Width:  240,
	Anchor: AnchorTopLeft,
	Sections: []SectionDescriptor{
		{
			ID: "clock",
			Fields: []FieldDescriptor{
				{ID: "tick", Label: "Tick", Widget: WidgetText, TextGetter: func(d any) string {
					return fmt.Sprintf("%d", d.(HUDData).Tick)
				}},
				{ID: "fps", Label: "FPS", Widget: WidgetText, TextGetter: func(d any) string {
					return fmt.Sprintf("%d", d.(HUDData).FPS)
				}},
				{ID: "time", Label: "Time", Widget: WidgetText, Format: "%.2f", Getter: func(d any) float32 {
					return float32(d.(HUDData).Time)
				}},
			},
		},
		{
			ID:    "beat",
			Title: "Beat",
			Fields: []FieldDescriptor{
				{ID: "pulse", Label: "Pulse", Widget: WidgetCenteredBar, Range: CenteredRange(), Getter: func(d any) float32 {
					h := d.(HUDData)
					return float32(h.Pulse / h.PulsePeak)
				}, Visible: func(d any) bool { return d.(HUDData).PulsePeak > 0 }},
				{ID: "rotx", Label: "Tilt", Widget: WidgetCenteredBar, Range: CenteredRange(), Getter: func(d any) float32 {
					return float32(d.(HUDData).RotX)
				}},
				{ID: "roty", Label: "Turn", Widget: WidgetText, TextGetter: func(d any) string {
					deg := math.Mod(d.(HUDData).RotY*180/math.Pi, 360)
					if deg < 0 {
						deg += 360
					}
					return fmt.Sprintf("%.0f deg", deg)
				}},
			},
		},
		{
			ID:    "particles",
			Title: "Particles",
			Fields: []FieldDescriptor{
				{ID: "count", Label: "Count", Widget: WidgetText, TextGetter: func(d any) string {
					return fmt.Sprintf("%d", d.(HUDData).Particles)
				}},
				{ID: "drawn", Label: "Drawn", Widget: WidgetBar, Getter: func(d any) float32 {
					h := d.(HUDData)
					if h.Particles == 0 {
						return 0
					}
					return float32(h.Drawn) / float32(h.Particles)
				}},
				{ID: "clipped", Label: "Clipped", Widget: WidgetText, TextGetter: func(d any) string {
					return fmt.Sprintf("%d", d.(HUDData).Clipped)
				}},
			},
		},
		{
			ID:    "answer",
			Title: "Answer",
			Fields: []FieldDescriptor{
				{ID: "state", Label: "State", Widget: WidgetText, TextGetter: func(d any) string {
					if d.(HUDData).Celebrated {
						return "yes"
					}
					return "waiting"
				}},
				{ID: "dodges", Label: "Dodges", Widget: WidgetText, TextGetter: func(d any) string {
					return fmt.Sprintf("%d", d.(HUDData).Dodges)
				}},
				{ID: "rain", Label: "Rain", Widget: WidgetText, TextGetter: func(d any) string {
					return fmt.Sprintf("%d", d.(HUDData).RainDrops)
				}, Visible: func(d any) bool { return d.(HUDData).Celebrated }},
			},
		},
	},
}

// HUD renders the debug heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the stats panel.
func (h *HUD) Draw(data HUDData, screenW, screenH int32) {
	pd := statsPanel
	if data.Title != "" {
		pd.Title = data.Title
	}
	h.renderer.DrawPanelDescriptor(pd, data, screenW, screenH)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenWidth, screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Color{R: 150, G: 110, B: 125, A: 255})
}

// PerfPanel renders per-phase tick timing.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	x := p.x
	y := p.y

	rl.DrawText("Tick Timing", x, y, 16, rl.White)
	y += 20

	rl.DrawText(fmt.Sprintf("Avg: %s  Max: %s", stats.AvgTickDuration.Round(time.Microsecond), stats.MaxTickDuration.Round(time.Microsecond)), x, y, 14, rl.Yellow)
	y += 16

	for _, phase := range telemetry.Phases() {
		avg, ok := stats.PhaseAvg[phase]
		if !ok {
			continue
		}
		pct := stats.PhasePct[phase]

		color := rl.LightGray
		if pct > 50 {
			color = rl.Red
		} else if pct > 25 {
			color = rl.Orange
		}

		rl.DrawText(
			fmt.Sprintf("%-10s %8s %5.1f%%", phase, avg.Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}

	if stats.FPS > 0 {
		rl.DrawText(fmt.Sprintf("Frame: %s (%.0f fps)", stats.FrameDuration.Round(time.Microsecond), stats.FPS), x, y+4, 12, rl.LightGray)
	}
}
