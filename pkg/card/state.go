package card

import (
	"fmt"
	"time"
)

// CardState is one of the two resting positions of the panel.
type CardState int

const (
	Collapsed CardState = iota
	Expanded
)

func (s CardState) String() string {
	switch s {
	case Collapsed:
		return "collapsed"
	case Expanded:
		return "expanded"
	default:
		return fmt.Sprintf("CardState(%d)", int(s))
	}
}

// Opacity is the backdrop opacity the panel rests at in this state.
func (s CardState) Opacity() float64 {
	if s == Expanded {
		return ExpandedOpacity
	}
	return 0
}

// DirectionFromVelocity maps a vertical velocity onto the state the gesture
// is heading for. Positive velocity (finger moving down) heads for Collapsed,
// negative for Expanded. Exactly zero is a dead zone and reports ok=false.
func DirectionFromVelocity(velocityY float64) (dir CardState, ok bool) {
	switch {
	case velocityY > 0:
		return Collapsed, true
	case velocityY < 0:
		return Expanded, true
	default:
		return Collapsed, false
	}
}

// Phase is the lifecycle phase of a drag gesture.
type Phase int

const (
	PhaseBegan Phase = iota
	PhaseChanged
	PhaseEnded
)

func (p Phase) String() string {
	switch p {
	case PhaseBegan:
		return "began"
	case PhaseChanged:
		return "changed"
	case PhaseEnded:
		return "ended"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// GestureSample is one drag observation. Only vertical velocity matters.
type GestureSample struct {
	Phase     Phase
	VelocityY float64
}

// SnapDecision is the outcome of a gesture end.
type SnapDecision struct {
	Target            CardState
	RemainingDistance float64
}

// Duration is the animation time for the remaining distance at SnapSpeed.
func (d SnapDecision) Duration() time.Duration {
	return time.Duration(d.RemainingDistance / SnapSpeed * float64(time.Second))
}

// Geometry is a snapshot of the panel placement.
//
// BottomOffset is the bottom constraint constant. A resting position p is
// stored as -p, so Collapsed rests at -CollapseHeight and Expanded at 0.
type Geometry struct {
	BottomOffset   float64
	PanelHeight    float64
	CollapseHeight float64
	CornerRadius   float64
}

// Position is the panel position in resting-position terms: CollapseHeight
// when collapsed, 0 when expanded.
func (g Geometry) Position() float64 {
	return -g.BottomOffset
}

// Curve selects the timing curve a Surface animates with.
type Curve int

const (
	CurveEaseOut Curve = iota
	CurveCriticallyDamped
)

func (c Curve) String() string {
	switch c {
	case CurveEaseOut:
		return "ease-out"
	case CurveCriticallyDamped:
		return "critically-damped"
	default:
		return fmt.Sprintf("Curve(%d)", int(c))
	}
}

// Animation describes how a Surface should reach a new value. A zero
// Duration means apply immediately.
type Animation struct {
	Duration time.Duration
	Curve    Curve
}

// Immediate is the zero-duration animation.
var Immediate = Animation{}
