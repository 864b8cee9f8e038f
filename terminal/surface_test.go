package terminal

import (
	"image/color"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestNewSurfaceFitsHeart(t *testing.T) {
	tests := []struct {
		cols, rows   int
		cellW, cellH int
	}{
		{80, 24, 13, 27},
		{200, 60, 5, 11},
		{10, 1000, 1, 2},
		{0, 0, 320, 640},
	}
	for _, tt := range tests {
		s := NewSurface(tt.cols, tt.rows)
		cw, ch := s.CellSize()
		if cw != tt.cellW || ch != tt.cellH {
			t.Errorf("%dx%d: expected cell %dx%d, got %dx%d", tt.cols, tt.rows, tt.cellW, tt.cellH, cw, ch)
		}
		if _, h := s.Size(); tt.rows > 0 && tt.rows <= 320 && h < minVirtualHeight {
			t.Errorf("%dx%d: virtual height %d below %d", tt.cols, tt.rows, h, minVirtualHeight)
		}
	}
}

func TestSurfaceFade(t *testing.T) {
	s := NewSurface(4, 4)
	s.BeginAdditive()
	s.DrawCircle(0, 0, 1000, color.RGBA{R: 200, G: 200, B: 200, A: 255})
	s.EndAdditive()

	s.Fade(color.RGBA{R: 0, G: 0, B: 0, A: 128})
	c := s.Cell(0, 0)
	if c.R < 95 || c.R > 105 {
		t.Errorf("expected roughly half brightness after fade, got %v", c)
	}

	for range 50 {
		s.Fade(color.RGBA{R: 15, G: 2, B: 5, A: 102})
	}
	if c := s.Cell(0, 0); c.R != 15 || c.G != 2 || c.B != 5 {
		t.Errorf("expected fade colour after many fades, got %v", c)
	}
}

func TestSurfaceAdditiveSaturates(t *testing.T) {
	s := NewSurface(4, 4)
	s.BeginAdditive()
	for range 10 {
		s.DrawCircle(1, 1, 1000, color.RGBA{R: 100, G: 10, B: 40, A: 255})
	}
	s.EndAdditive()

	c := s.Cell(0, 0)
	if c.R != 255 || c.G != 100 || c.B != 255 {
		t.Errorf("expected additive sum clamped to 255, got %v", c)
	}
	if other := s.Cell(1, 1); other.R != 0 {
		t.Errorf("expected untouched neighbour cell, got %v", other)
	}
}

func TestSurfaceAlphaBlend(t *testing.T) {
	s := NewSurface(4, 4)
	for range 10 {
		s.DrawCircle(1, 1, 1000, color.RGBA{R: 100, A: 255})
	}
	if c := s.Cell(0, 0); c.R != 100 {
		t.Errorf("expected opaque alpha blend to replace colour, got %v", c)
	}
}

func TestSurfaceIgnoresOutside(t *testing.T) {
	s := NewSurface(4, 4)
	w, h := s.Size()
	c := color.RGBA{R: 255, A: 255}
	s.DrawCircle(-1, 5, 10, c)
	s.DrawCircle(5, -1, 10, c)
	s.DrawCircle(float64(w), 5, 10, c)
	s.DrawCircle(5, float64(h), 10, c)
	s.DrawCircle(5, 5, 0, c)

	for row := range 4 {
		for col := range 4 {
			if got := s.Cell(col, row); got.R != 0 {
				t.Fatalf("cell %d,%d: expected black, got %v", col, row, got)
			}
		}
	}
}

func TestShade(t *testing.T) {
	ch, fg := Shade(color.RGBA{A: 255})
	if ch != ' ' || fg != tcell.ColorBlack {
		t.Errorf("black: got %q %v", ch, fg)
	}

	ch, _ = Shade(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	if ch != '@' {
		t.Errorf("white: expected '@', got %q", ch)
	}

	// Dim red keeps its hue at full strength
	ch, fg = Shade(color.RGBA{R: 40, A: 255})
	if ch != ' ' {
		t.Errorf("dim red: expected ' ', got %q", ch)
	}
	if fg != tcell.NewRGBColor(255, 0, 0) {
		t.Errorf("dim red: expected normalised red, got %v", fg)
	}
}

func TestSurfacePresent(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer screen.Fini()
	screen.SetSize(4, 2)

	s := NewSurface(4, 2)
	s.BeginAdditive()
	s.DrawCircle(1, 1, 1000, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	s.EndAdditive()
	s.Present(screen)
	screen.Show()

	if ch, _, _, _ := screen.GetContent(0, 0); ch != '@' {
		t.Errorf("expected '@' at lit cell, got %q", ch)
	}
	if ch, _, _, _ := screen.GetContent(3, 1); ch != ' ' {
		t.Errorf("expected blank at dark cell, got %q", ch)
	}
}
