package ui

import (
	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/heartbeat/proposal"
)

// Action is what the user did on the proposal panel this frame.
type Action int

const (
	ActionNone Action = iota
	ActionYes
	ActionDodge
)

// ProposalPanel draws the question, the Yes and No buttons and the
// success message.
type ProposalPanel struct {
	renderer *Renderer
}

// NewProposalPanel creates a proposal panel with the default theme.
func NewProposalPanel() *ProposalPanel {
	return &ProposalPanel{renderer: NewRenderer()}
}

// Layout returns the Yes and No button rectangles for a screen size.
func (pp *ProposalPanel) Layout(p *proposal.Proposal, screenW, screenH int32) (yes, no rl.Rectangle) {
	t := pp.renderer.Theme
	cx := float32(screenW) / 2
	cy := float32(screenH) / 2
	rowY := cy + float32(screenH)*t.QuestionOffsetY + float32(t.QuestionSize)

	s := p.YesShown()
	yw, yh := t.ButtonWidth*s, t.ButtonHeight*s
	yes = rl.Rectangle{
		X:      cx - t.ButtonSpacing/2 - t.ButtonWidth/2 - yw/2,
		Y:      rowY + t.ButtonHeight/2 - yh/2,
		Width:  yw,
		Height: yh,
	}

	no = rl.Rectangle{
		X:      cx + t.ButtonSpacing/2,
		Y:      rowY,
		Width:  t.ButtonWidth,
		Height: t.ButtonHeight,
	}
	if ox, oy, moved := p.NoOffset(); moved {
		no.X = cx + float32(ox) - t.ButtonWidth/2
		no.Y = cy + float32(oy) - t.ButtonHeight/2
	}
	return yes, no
}

// Draw renders the panel and reports the user's action. Hovering the No
// button counts as a dodge, as does clicking it.
func (pp *ProposalPanel) Draw(p *proposal.Proposal, screenW, screenH int32) Action {
	t := pp.renderer.Theme
	action := ActionNone

	if alpha := p.UIAlpha(); alpha > 0 {
		yes, no := pp.Layout(p, screenW, screenH)

		qy := screenH/2 + int32(float32(screenH)*t.QuestionOffsetY)
		DrawTextCentered(p.Question(), screenW/2, qy, t.QuestionSize, rl.Fade(t.QuestionColor, alpha))

		gui.SetAlpha(alpha)
		if gui.Button(yes, "Yes") && p.Interactive() {
			action = ActionYes
		}

		gui.SetAlpha(alpha * float32(p.NoAlpha()))
		clicked := gui.Button(no, p.NoLabel())
		hovered := rl.CheckCollisionPointRec(rl.GetMousePosition(), no)
		if action == ActionNone && p.Interactive() && (clicked || hovered) {
			action = ActionDodge
		}
		gui.SetAlpha(1)
	}

	pp.drawSuccess(p, screenW, screenH)
	return action
}

// drawSuccess draws the message that replaces the question.
func (pp *ProposalPanel) drawSuccess(p *proposal.Proposal, screenW, screenH int32) {
	alpha := p.SuccessAlpha()
	if alpha <= 0 {
		return
	}
	t := pp.renderer.Theme

	size := int32(float32(t.SuccessSize) * p.SuccessScale())
	if size < 1 {
		return
	}
	y := screenH/2 + int32(float32(screenH)*t.QuestionOffsetY) - size/2

	// Glow pass offset by a couple of pixels
	DrawTextCentered(p.SuccessText(), screenW/2+2, y+2, size, rl.Fade(t.SuccessGlow, alpha*0.6))
	DrawTextCentered(p.SuccessText(), screenW/2, y, size, rl.Fade(t.SuccessColor, alpha))
}
