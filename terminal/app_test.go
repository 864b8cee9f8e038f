package terminal

import (
	"context"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/heartbeat/config"
	"github.com/pthm-cable/heartbeat/game"
)

func newTestApp(t *testing.T, cols, rows int) (*App, tcell.SimulationScreen, *game.Game) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(cols, rows)

	cfg := config.Default()
	cfg.Heart.ParticleCount = 500
	g, err := game.New(cfg, game.Options{Seed: 3})
	if err != nil {
		t.Fatalf("game.New: %v", err)
	}
	t.Cleanup(func() { g.Close() })

	return New(screen, g), screen, g
}

func rowText(screen tcell.SimulationScreen, row int) string {
	cols, _ := screen.Size()
	var b strings.Builder
	for col := 0; col < cols; col++ {
		ch, _, _, _ := screen.GetContent(col, row)
		b.WriteRune(ch)
	}
	return b.String()
}

func screenText(screen tcell.SimulationScreen) string {
	_, rows := screen.Size()
	var b strings.Builder
	for row := 0; row < rows; row++ {
		b.WriteString(rowText(screen, row))
		b.WriteByte('\n')
	}
	return b.String()
}

func TestFrameResizesGame(t *testing.T) {
	app, _, g := newTestApp(t, 80, 24)
	app.Frame()

	w, h := app.Surface().Size()
	if gw, gh := g.Viewport(); gw != w || gh != h {
		t.Errorf("expected game viewport %dx%d, got %dx%d", w, h, gw, gh)
	}
	if g.Ticks() != 1 {
		t.Errorf("expected one tick, got %d", g.Ticks())
	}
}

func TestFrameDrawsHeartAndQuestion(t *testing.T) {
	app, screen, g := newTestApp(t, 80, 24)
	for range 10 {
		app.Frame()
	}

	text := screenText(screen)
	if !strings.Contains(text, g.Proposal().Question()) {
		t.Errorf("expected question on screen:\n%s", text)
	}
	if !strings.Contains(text, "[ Yes ]") || !strings.Contains(text, "[ No ]") {
		t.Errorf("expected both answers on screen:\n%s", text)
	}

	// The heart sits around the middle of the grid
	if strings.TrimSpace(rowText(screen, 12)) == "" {
		t.Errorf("expected heart glyphs on the middle row:\n%s", text)
	}
}

func TestHandleEventKeys(t *testing.T) {
	tests := []struct {
		name      string
		ev        *tcell.EventKey
		keepGoing bool
	}{
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), false},
		{"ctrl-c", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), false},
		{"q", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), false},
		{"other", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _, _ := newTestApp(t, 40, 20)
			if got := app.HandleEvent(tt.ev); got != tt.keepGoing {
				t.Errorf("expected %v, got %v", tt.keepGoing, got)
			}
		})
	}
}

func TestHandleEventAnswers(t *testing.T) {
	app, _, g := newTestApp(t, 80, 24)

	app.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'n', tcell.ModNone))
	if g.Proposal().Dodges() != 1 {
		t.Errorf("expected one dodge, got %d", g.Proposal().Dodges())
	}

	app.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'y', tcell.ModNone))
	if !g.Celebrated() {
		t.Fatal("expected celebration after 'y'")
	}

	app.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'n', tcell.ModNone))
	if g.Proposal().Dodges() != 1 {
		t.Errorf("expected no dodge after accepting, got %d", g.Proposal().Dodges())
	}
}

func TestMouseOverNoDodges(t *testing.T) {
	app, _, g := newTestApp(t, 80, 24)
	app.Frame()

	if !app.no.ok {
		t.Fatal("expected the No answer to be drawn")
	}
	app.HandleEvent(tcell.NewEventMouse(app.no.x0, app.no.row, tcell.ButtonNone, tcell.ModNone))
	if g.Proposal().Dodges() != 1 {
		t.Errorf("expected hover to dodge, got %d dodges", g.Proposal().Dodges())
	}
}

func TestMouseClickYesCelebrates(t *testing.T) {
	app, _, g := newTestApp(t, 80, 24)
	app.Frame()

	if !app.yes.ok {
		t.Fatal("expected the Yes answer to be drawn")
	}
	app.HandleEvent(tcell.NewEventMouse(app.yes.x0+1, app.yes.row, tcell.ButtonNone, tcell.ModNone))
	if g.Celebrated() {
		t.Fatal("expected hover over Yes to do nothing")
	}
	app.HandleEvent(tcell.NewEventMouse(app.yes.x0+1, app.yes.row, tcell.Button1, tcell.ModNone))
	if !g.Celebrated() {
		t.Error("expected click on Yes to celebrate")
	}
}

func TestMouseSetsPointer(t *testing.T) {
	app, _, g := newTestApp(t, 80, 24)
	app.Frame()

	// Far right of the grid turns the heart one way, far left the other
	app.HandleEvent(tcell.NewEventMouse(79, 0, tcell.ButtonNone, tcell.ModNone))
	right := g.Camera().PointerX
	app.HandleEvent(tcell.NewEventMouse(0, 0, tcell.ButtonNone, tcell.ModNone))
	left := g.Camera().PointerX
	if right == left {
		t.Errorf("expected pointer to change with mouse column, got %v both times", right)
	}
}

func TestSuccessMessageAfterCelebrate(t *testing.T) {
	app, screen, g := newTestApp(t, 80, 24)
	g.Celebrate()
	for range 120 {
		app.Frame()
	}

	text := screenText(screen)
	if !strings.Contains(text, g.Proposal().SuccessText()) {
		t.Errorf("expected success message:\n%s", text)
	}
	if strings.Contains(text, "[ Yes ]") {
		t.Errorf("expected answers gone after celebration:\n%s", text)
	}
	if app.yes.ok || app.no.ok {
		t.Error("expected answers not clickable after celebration")
	}
}

func TestRainDrawnAfterCelebrate(t *testing.T) {
	app, screen, g := newTestApp(t, 80, 24)
	g.Celebrate()
	for range 180 {
		app.Frame()
	}
	if g.Rain().Count() == 0 {
		t.Fatal("expected live drops")
	}
	text := screenText(screen)
	if !strings.ContainsAny(text, "♥✦❤") {
		t.Errorf("expected rain glyphs on screen:\n%s", text)
	}
}

func TestHandleEventResize(t *testing.T) {
	app, screen, g := newTestApp(t, 80, 24)
	screen.SetSize(100, 30)
	app.HandleEvent(tcell.NewEventResize(100, 30))

	if cols, rows := app.Surface().Grid(); cols != 100 || rows != 30 {
		t.Fatalf("expected 100x30 grid, got %dx%d", cols, rows)
	}
	app.Frame()
	w, h := app.Surface().Size()
	if gw, gh := g.Viewport(); gw != w || gh != h {
		t.Errorf("expected game viewport to follow, got %dx%d want %dx%d", gw, gh, w, h)
	}
}

func TestRunStepScheduler(t *testing.T) {
	app, _, g := newTestApp(t, 40, 20)
	if err := app.Run(context.Background(), game.StepScheduler{Ticks: 5}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if g.Ticks() != 5 {
		t.Errorf("expected 5 ticks, got %d", g.Ticks())
	}
}

func TestRunMaxTicks(t *testing.T) {
	app, _, g := newTestApp(t, 40, 20)
	app.MaxTicks = 3
	if err := app.Run(context.Background(), game.StepScheduler{}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if g.Ticks() != 3 {
		t.Errorf("expected 3 ticks, got %d", g.Ticks())
	}
}
