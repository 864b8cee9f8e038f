package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// ControlsPanel lists the overlay toggles and the other key bindings.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the panel position.
func (c *ControlsPanel) SetPosition(x, y int32) {
	c.x = x
	c.y = y
}

// keyBindings are the fixed keys that are not overlays.
var keyBindings = [][2]string{
	{"Y", "Say yes"},
	{"N", "Say no"},
	{"F11", "Fullscreen"},
	{"Esc", "Quit"},
}

// Draw renders the controls panel.
func (c *ControlsPanel) Draw(overlays *OverlayRegistry) int32 {
	r := c.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight

	// Calculate panel height based on content
	categories := overlays.Categories()
	totalItems := len(keyBindings) + 1
	for _, cat := range categories {
		totalItems += len(overlays.ByCategory(cat)) + 1 // +1 for category header
	}
	panelHeight := int32(totalItems)*lineHeight + padding*3 + lineHeight + int32(len(categories)+1)*4

	r.DrawPanel(c.x, c.y, c.width, panelHeight)

	y := c.y + padding

	// Title
	rl.DrawText("Controls", c.x+padding, y, 16, rl.White)
	y += lineHeight + 4

	// Draw overlays by category
	for _, category := range categories {
		rl.DrawText(categoryLabel(category), c.x+padding, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
		y += lineHeight

		for _, desc := range overlays.ByCategory(category) {
			enabled := overlays.IsEnabled(desc.ID)
			c.drawToggle(c.x+padding, y, desc, enabled, c.width-padding*2)
			y += lineHeight
		}

		y += 4 // Gap between categories
	}

	rl.DrawText("Keys", c.x+padding, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
	y += lineHeight
	for _, kb := range keyBindings {
		c.drawKey(c.x+padding, y, kb[0], kb[1], c.width-padding*2)
		y += lineHeight
	}

	return y
}

// drawToggle draws a single overlay toggle line.
func (c *ControlsPanel) drawToggle(x, y int32, desc OverlayDescriptor, enabled bool, width int32) {
	r := c.renderer

	// Status indicator
	statusColor := rl.Color{R: 80, G: 60, B: 70, A: 255}
	if enabled {
		statusColor = r.Theme.BarFillPositive
	}
	rl.DrawRectangle(x, y+2, 8, 8, statusColor)

	// Name
	nameColor := r.Theme.LabelColor
	if enabled {
		nameColor = rl.White
	}
	rl.DrawText(desc.Name, x+14, y, r.Theme.FontSize, nameColor)

	c.drawKeyLabel(x, y, desc.KeyLabel, width)
}

// drawKey draws a fixed key binding line.
func (c *ControlsPanel) drawKey(x, y int32, key, action string, width int32) {
	rl.DrawText(action, x+14, y, c.renderer.Theme.FontSize, c.renderer.Theme.LabelColor)
	c.drawKeyLabel(x, y, key, width)
}

// drawKeyLabel right-aligns a key label.
func (c *ControlsPanel) drawKeyLabel(x, y int32, label string, width int32) {
	if label == "" {
		return
	}
	size := c.renderer.Theme.FontSize
	keyText := fmt.Sprintf("[%s]", label)
	keyWidth := rl.MeasureText(keyText, size)
	rl.DrawText(keyText, x+width-keyWidth, y, size, rl.Color{R: 170, G: 140, B: 150, A: 255})
}

// categoryLabel returns a display label for a category.
func categoryLabel(cat string) string {
	switch cat {
	case "visual":
		return "Visual"
	case "debug":
		return "Debug"
	default:
		return cat
	}
}
