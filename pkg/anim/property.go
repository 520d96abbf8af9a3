// Package anim animates scalar panel properties frame by frame.
package anim

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"

	"github.com/Dicklesworthstone/cardsheet/pkg/card"
)

// DefaultFPS is the frame rate used when none is configured.
const DefaultFPS = 60

// settleFactor is how many time constants a critically damped spring gets to
// reach its target within the requested duration (e^-6 * 7 < 2% residue).
const settleFactor = 6.0

// Property is a float value that moves toward a target over a duration.
// Setting a new target while animating restarts from the presented value.
type Property struct {
	value float64
	frame time.Duration
	fps   int

	from    float64
	target  float64
	total   time.Duration
	elapsed time.Duration
	curve   card.Curve
	active  bool

	spring   harmonica.Spring
	velocity float64
}

// NewProperty creates a property resting at value, stepped at fps frames per
// second.
func NewProperty(value float64, fps int) *Property {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return &Property{
		value:  value,
		target: value,
		fps:    fps,
		frame:  time.Second / time.Duration(fps),
	}
}

// Set moves the property toward target. A zero duration applies instantly.
func (p *Property) Set(target float64, a card.Animation) {
	p.target = target
	if a.Duration <= 0 {
		p.value = target
		p.velocity = 0
		p.active = false
		return
	}

	p.from = p.value
	p.total = a.Duration
	p.elapsed = 0
	p.curve = a.Curve
	p.active = true
	if a.Curve == card.CurveCriticallyDamped {
		p.spring = harmonica.NewSpring(harmonica.FPS(p.fps), settleFactor/a.Duration.Seconds(), 1.0)
		p.velocity = 0
	}
}

// Step advances the animation by one frame. It reports whether the
// presented value changed.
func (p *Property) Step() bool {
	if !p.active {
		return false
	}
	before := p.value
	p.elapsed += p.frame

	// Finish when less than half a frame remains.
	if p.total-p.elapsed < p.frame/2 {
		p.value = p.target
		p.velocity = 0
		p.active = false
		return p.value != before
	}

	switch p.curve {
	case card.CurveCriticallyDamped:
		p.value, p.velocity = p.spring.Update(p.value, p.velocity, p.target)
	default:
		t := float64(p.elapsed) / float64(p.total)
		p.value = p.from + (p.target-p.from)*EaseOutCubic(t)
	}
	return p.value != before
}

// Value is the currently presented value.
func (p *Property) Value() float64 {
	return p.value
}

// Target is the value the property is heading for, or resting at.
func (p *Property) Target() float64 {
	return p.target
}

// Animating reports whether frames remain.
func (p *Property) Animating() bool {
	return p.active
}

// Frame is the time one Step represents.
func (p *Property) Frame() time.Duration {
	return p.frame
}

// EaseOutCubic maps linear progress t in [0,1] onto a decelerating curve.
func EaseOutCubic(t float64) float64 {
	t = math.Max(0, math.Min(1, t))
	inv := 1 - t
	return 1 - inv*inv*inv
}
