package terminal

import (
	"context"
	"log/slog"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/heartbeat/components"
	"github.com/pthm-cable/heartbeat/effects"
	"github.com/pthm-cable/heartbeat/game"
)

// Glyphs used for rain drops.
var dropRunes = [components.NumGlyphs]rune{
	components.GlyphHeart:   '♥',
	components.GlyphSparkle: '✦',
	components.GlyphTwin:    '♥',
	components.GlyphGrowing: '❤',
}

// span is a clickable run of cells on one row.
type span struct {
	row, x0, x1 int
	ok          bool
}

func (s span) contains(col, row int) bool {
	return s.ok && row == s.row && col >= s.x0 && col < s.x1
}

// App drives a Game on a tcell screen.
type App struct {
	screen  tcell.Screen
	g       *game.Game
	surface *Surface

	// MaxTicks stops Run after this many ticks (0 = unlimited)
	MaxTicks int

	yes, no span
}

// New creates an app on an initialised screen.
func New(screen tcell.Screen, g *game.Game) *App {
	screen.EnableMouse()
	screen.HideCursor()
	cols, rows := screen.Size()
	return &App{
		screen:  screen,
		g:       g,
		surface: NewSurface(cols, rows),
	}
}

// Surface returns the drawing surface.
func (a *App) Surface() *Surface {
	return a.surface
}

// Run animates on sched until the user quits, ctx is cancelled or the
// scheduler stops. Events are read on a separate goroutine and applied
// between ticks.
func (a *App) Run(ctx context.Context, sched game.Scheduler) error {
	events := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)

	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	return sched.Run(ctx, func() bool {
		if !a.drainEvents(events) {
			slog.Info("quit requested", "tick", a.g.Ticks())
			return false
		}
		a.Frame()
		return a.MaxTicks <= 0 || int(a.g.Ticks()) < a.MaxTicks
	})
}

// drainEvents applies every pending event without blocking.
func (a *App) drainEvents(events <-chan tcell.Event) bool {
	for {
		select {
		case ev := <-events:
			if !a.HandleEvent(ev) {
				return false
			}
		default:
			return true
		}
	}
}

// HandleEvent applies one input event. It returns false when the user
// asked to quit.
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() == tcell.KeyRune {
			switch ev.Rune() {
			case 'q', 'Q':
				return false
			case 'y', 'Y':
				a.g.Celebrate()
			case 'n', 'N':
				a.g.Dodge()
			}
		}

	case *tcell.EventMouse:
		col, row := ev.Position()
		cw, ch := a.surface.CellSize()
		a.g.SetPointer(float64(col*cw+cw/2), float64(row*ch+ch/2))

		switch {
		case a.no.contains(col, row):
			a.g.Dodge()
		case ev.Buttons()&tcell.Button1 != 0 && a.yes.contains(col, row):
			a.g.Celebrate()
		}

	case *tcell.EventResize:
		cols, rows := a.screen.Size()
		a.surface.Resize(cols, rows)
		a.screen.Sync()
	}
	return true
}

// Frame ticks the game onto the surface and shows it with the overlays.
func (a *App) Frame() {
	a.g.Tick(a.surface)
	a.surface.Present(a.screen)
	a.drawRain()
	a.drawPanel()
	a.screen.Show()
	a.g.PerfCollector().RecordFrame()
}

func (a *App) drawRain() {
	cols, rows := a.surface.Grid()
	a.g.Rain().Each(func(d effects.Drop) {
		if d.Fade <= 0 {
			return
		}
		col, row := int(d.X*float32(cols)), int(d.Y*float32(rows))
		if col < 0 || row < 0 || col >= cols || row >= rows {
			return
		}
		r, g, b := d.Glyph.RGB()
		fg := tcell.NewRGBColor(scale(r, d.Fade), scale(g, d.Fade), scale(b, d.Fade))
		a.screen.SetContent(col, row, dropRunes[d.Glyph], nil, tcell.StyleDefault.Foreground(fg).Background(tcell.ColorBlack))
	})
}

// drawPanel draws the question and answers, or the success message.
func (a *App) drawPanel() {
	p := a.g.Proposal()
	cols, rows := a.surface.Grid()
	qRow := min(rows/2+rows*3/10, rows-3)

	a.yes, a.no = span{}, span{}

	if alpha := p.UIAlpha(); alpha > 0 {
		question := tcell.NewRGBColor(scale(255, alpha), scale(220, alpha), scale(230, alpha))
		a.drawCentered(qRow, p.Question(), tcell.StyleDefault.Foreground(question))

		yesLabel := "[ Yes ]"
		if p.YesShown() > 1.5 {
			yesLabel = "[  YES  ]"
		}
		noLabel := "[ " + p.NoLabel() + " ]"

		row := qRow + 2
		yesX := cols/2 - 2 - runeLen(yesLabel)
		noX := cols/2 + 2
		noRow := row
		if ox, oy, moved := p.NoOffset(); moved {
			cw, ch := a.surface.CellSize()
			noX = cols/2 + int(ox)/cw - runeLen(noLabel)/2
			noRow = rows/2 + int(oy)/ch
		}

		yesStyle := tcell.StyleDefault.Foreground(tcell.NewRGBColor(scale(255, alpha), scale(90, alpha), scale(140, alpha))).Bold(true)
		noAlpha := alpha * float32(p.NoAlpha())
		noStyle := tcell.StyleDefault.Foreground(tcell.NewRGBColor(scale(200, noAlpha), scale(200, noAlpha), scale(200, noAlpha)))

		a.yes = a.drawText(yesX, row, yesLabel, yesStyle)
		a.no = a.drawText(noX, noRow, noLabel, noStyle)
		if !p.Interactive() {
			a.yes, a.no = span{}, span{}
		}
	}

	if alpha := p.SuccessAlpha(); alpha > 0 {
		fg := tcell.NewRGBColor(scale(255, alpha), scale(240, alpha), scale(245, alpha))
		a.drawCentered(qRow, p.SuccessText(), tcell.StyleDefault.Foreground(fg).Bold(true))
	}
}

func (a *App) drawCentered(row int, text string, style tcell.Style) span {
	cols, _ := a.surface.Grid()
	return a.drawText(cols/2-runeLen(text)/2, row, text, style)
}

// drawText writes text clipped to the grid and returns the cells it covers.
func (a *App) drawText(x, row int, text string, style tcell.Style) span {
	cols, rows := a.surface.Grid()
	if row < 0 || row >= rows {
		return span{}
	}
	x = min(max(x, 0), max(cols-runeLen(text), 0))
	col := x
	for _, r := range text {
		if col >= cols {
			break
		}
		a.screen.SetContent(col, row, r, nil, style.Background(tcell.ColorBlack))
		col++
	}
	return span{row: row, x0: x, x1: col, ok: col > x}
}

func runeLen(s string) int {
	return len([]rune(s))
}

func scale(v uint8, k float32) int32 {
	return int32(float32(v) * min(max(k, 0), 1))
}
