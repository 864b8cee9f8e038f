// Package ui draws the proposal panel, the success message and the debug
// panels over the heart. Debug panels are descriptor-driven: fields are
// defined as metadata next to the data they read.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// WidgetType specifies how a field should be rendered.
type WidgetType int

const (
	WidgetText        WidgetType = iota // Plain text with format string
	WidgetBar                           // Progress bar [0, 1]
	WidgetCenteredBar                   // Centered bar [-1, +1] or custom range
	WidgetSection                       // Section header
	WidgetSpacer                        // Vertical spacing
)

// FieldRange defines the value range for bar widgets.
type FieldRange struct {
	Min float32
	Max float32
}

// DefaultRange returns a [0, 1] range.
func DefaultRange() FieldRange {
	return FieldRange{Min: 0, Max: 1}
}

// CenteredRange returns a [-1, +1] range.
func CenteredRange() FieldRange {
	return FieldRange{Min: -1, Max: 1}
}

// FieldDescriptor defines how to display a single piece of data.
type FieldDescriptor struct {
	ID         string            // Unique identifier for the field
	Label      string            // Display label
	Widget     WidgetType        // How to render
	Format     string            // Printf format for text (e.g., "%.2f")
	Range      FieldRange        // Value range for bars
	Visible    func(any) bool    // Optional visibility check (nil = always visible)
	Getter     func(any) float32 // Value extractor (for numeric fields)
	TextGetter func(any) string  // Value extractor (for text fields)
}

// SectionDescriptor defines a group of fields with a header.
type SectionDescriptor struct {
	ID      string            // Unique identifier
	Title   string            // Section header text
	Fields  []FieldDescriptor // Fields in this section
	Visible func(any) bool    // Optional visibility check for entire section
}

// PanelDescriptor defines a complete panel layout.
type PanelDescriptor struct {
	ID       string              // Unique identifier
	Title    string              // Panel title (optional)
	Sections []SectionDescriptor // Sections in order
	Width    int32               // Panel width
	Anchor   PanelAnchor         // Where to position
}

// PanelAnchor specifies where a panel is anchored on screen.
type PanelAnchor int

const (
	AnchorTopLeft PanelAnchor = iota
	AnchorTopRight
	AnchorBottomLeft
	AnchorBottomRight
)

// Theme holds UI styling constants.
type Theme struct {
	PanelBg         rl.Color
	PanelBorder     rl.Color
	SectionHeader   rl.Color
	LabelColor      rl.Color
	ValueColor      rl.Color
	BarBg           rl.Color
	BarFill         rl.Color
	BarFillNegative rl.Color
	BarFillPositive rl.Color

	// Proposal panel
	QuestionColor rl.Color
	SuccessColor  rl.Color
	SuccessGlow   rl.Color

	Padding         int32
	LineHeight      int32
	LabelWidth      int32
	BarHeight       int32
	FontSize        int32
	HeaderFontSize  int32
	QuestionSize    int32
	SuccessSize     int32
	ButtonWidth     float32
	ButtonHeight    float32
	ButtonSpacing   float32
	QuestionOffsetY float32 // Question baseline below centre, as a fraction of height
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:         rl.Color{R: 30, G: 8, B: 16, A: 220},
		PanelBorder:     rl.Color{R: 120, G: 40, B: 70, A: 255},
		SectionHeader:   rl.Color{R: 255, G: 150, B: 190, A: 255},
		LabelColor:      rl.LightGray,
		ValueColor:      rl.RayWhite,
		BarBg:           rl.Color{R: 50, G: 20, B: 30, A: 255},
		BarFill:         rl.Color{R: 230, G: 60, B: 110, A: 255},
		BarFillNegative: rl.Color{R: 120, G: 100, B: 200, A: 255},
		BarFillPositive: rl.Color{R: 255, G: 90, B: 140, A: 255},
		QuestionColor:   rl.Color{R: 255, G: 220, B: 230, A: 255},
		SuccessColor:    rl.Color{R: 255, G: 240, B: 245, A: 255},
		SuccessGlow:     rl.Color{R: 255, G: 60, B: 120, A: 255},
		Padding:         10,
		LineHeight:      16,
		LabelWidth:      80,
		BarHeight:       12,
		FontSize:        12,
		HeaderFontSize:  14,
		QuestionSize:    36,
		SuccessSize:     48,
		ButtonWidth:     120,
		ButtonHeight:    44,
		ButtonSpacing:   40,
		QuestionOffsetY: 0.3,
	}
}
