// Package proposal holds the state of the Yes / No panel: the dodging No
// button, the growing Yes button and the fade to the success message.
package proposal

import (
	"math"
	"math/rand"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/pthm-cable/heartbeat/config"
)

const (
	yesGrowSeconds   = 0.3
	successGrowRatio = 0.8
)

// Proposal tracks the panel. It is driven from the frame loop and is not
// safe for concurrent use.
type Proposal struct {
	cfg config.ProposalConfig
	rng *rand.Rand

	phraseIndex int
	dodges      int
	yesScale    float64

	// No button offset from the viewport centre in pixels
	noX, noY float64
	moved    bool

	accepted bool

	// Animated values
	yesShown     float32
	uiAlpha      float32
	successAlpha float32
	successScale float32

	yesTween    *gween.Tween
	uiFade      *gween.Tween
	successFade *gween.Tween
	successGrow *gween.Tween
}

// New creates a panel showing the first phrase.
func New(cfg config.ProposalConfig, rng *rand.Rand) *Proposal {
	return &Proposal{
		cfg:      cfg,
		rng:      rng,
		yesScale: 1,
		yesShown: 1,
		uiAlpha:  1,
	}
}

// Dodge moves the No button to a random spot inside DodgeArea of the
// viewport, advances its phrase and grows Yes. It does nothing once the
// proposal has been accepted.
func (p *Proposal) Dodge(viewW, viewH float64) bool {
	if p.accepted {
		return false
	}

	p.yesScale += p.cfg.YesGrowth
	p.yesTween = gween.New(p.yesShown, float32(p.yesScale), yesGrowSeconds, ease.OutBack)

	p.phraseIndex = (p.phraseIndex + 1) % len(p.cfg.Phrases)
	p.dodges++

	maxX := viewW * p.cfg.DodgeArea
	maxY := viewH * p.cfg.DodgeArea
	p.noX = p.rng.Float64()*maxX - maxX/2
	p.noY = p.rng.Float64()*maxY - maxY/2
	p.moved = true

	return true
}

// Accept marks the proposal as accepted and starts the success
// animation. Only the first call has any effect.
func (p *Proposal) Accept() bool {
	if p.accepted {
		return false
	}
	p.accepted = true

	d := float32(p.cfg.FadeDuration)
	p.uiFade = gween.New(p.uiAlpha, 0, d, ease.Linear)
	p.successFade = gween.New(0, 1, d, ease.Linear)
	p.successGrow = gween.New(0, 1, d*successGrowRatio, ease.OutCubic)
	return true
}

// Update advances the tweens by dt seconds.
func (p *Proposal) Update(dt float32) {
	if p.yesTween != nil {
		v, done := p.yesTween.Update(dt)
		p.yesShown = v
		if done {
			p.yesTween = nil
		}
	}
	if p.uiFade != nil {
		v, done := p.uiFade.Update(dt)
		p.uiAlpha = clamp01(v)
		if done {
			p.uiFade = nil
		}
	}
	if p.successFade != nil {
		v, done := p.successFade.Update(dt)
		p.successAlpha = clamp01(v)
		if done {
			p.successFade = nil
		}
	}
	if p.successGrow != nil {
		v, done := p.successGrow.Update(dt)
		p.successScale = v
		if done {
			p.successGrow = nil
		}
	}
}

// Accepted reports whether Yes has been chosen.
func (p *Proposal) Accepted() bool { return p.accepted }

// Dodges returns how many times No has run away.
func (p *Proposal) Dodges() int { return p.dodges }

// Question returns the headline text.
func (p *Proposal) Question() string { return p.cfg.Question }

// SuccessText returns the message shown after acceptance.
func (p *Proposal) SuccessText() string { return p.cfg.Success }

// NoLabel returns the No button's current phrase.
func (p *Proposal) NoLabel() string {
	return p.cfg.Phrases[p.phraseIndex]
}

// NoAlpha returns the No button opacity; it weakens with every phrase.
func (p *Proposal) NoAlpha() float64 {
	return math.Max(p.cfg.MinNoAlpha, 1-0.1*float64(p.phraseIndex))
}

// NoOffset returns the No button's offset from the viewport centre and
// whether it has left its original place.
func (p *Proposal) NoOffset() (x, y float64, moved bool) {
	return p.noX, p.noY, p.moved
}

// YesScale returns the target Yes scale.
func (p *Proposal) YesScale() float64 { return p.yesScale }

// YesShown returns the animated Yes scale to draw with.
func (p *Proposal) YesShown() float32 { return p.yesShown }

// UIAlpha returns the panel opacity.
func (p *Proposal) UIAlpha() float32 { return p.uiAlpha }

// Interactive reports whether the panel still accepts input.
func (p *Proposal) Interactive() bool { return !p.accepted }

// SuccessAlpha returns the success message opacity.
func (p *Proposal) SuccessAlpha() float32 { return p.successAlpha }

// SuccessScale returns the success message scale.
func (p *Proposal) SuccessScale() float32 { return p.successScale }

func clamp01(v float32) float32 {
	return max(0, min(1, v))
}
