package card

import "math"

const (
	// DefaultCollapseHeight is the resting offset magnitude when collapsed.
	DefaultCollapseHeight = 138
	// DefaultCornerRadius is cosmetic only.
	DefaultCornerRadius = 14

	// VelocityDivisor converts a velocity sample into a live offset delta.
	VelocityDivisor = 100
	// DirectionDamping scales the distance toward the state the gesture is
	// heading for, biasing the snap toward continuing the gesture.
	DirectionDamping = 0.3
	// SnapSpeed is the reference speed, in units per second, that turns a
	// remaining distance into an animation duration.
	SnapSpeed = 300
	// ExpandSlack is added to the visible height when expanding so the
	// panel is never shorter than the screen.
	ExpandSlack = 200
	// ExpandedOpacity is the backdrop opacity at rest when expanded.
	ExpandedOpacity = 0.7
)

// LiveDelta returns the offset delta a Changed sample produces.
func LiveDelta(velocityY float64) float64 {
	return -(velocityY / VelocityDivisor)
}

// CanTrack reports whether a live delta in direction dir may be applied at
// the current bottom offset.
func CanTrack(dir CardState, current, collapseHeight float64) bool {
	if dir == Expanded {
		return current < 0
	}
	return current > -collapseHeight
}

// Decide runs the snap decision for a gesture heading toward dir with the
// panel at bottom offset current.
//
// The damped distances are compared as-is: the panel snaps to Expanded only
// when the damped distance to Collapsed is strictly larger. Ties collapse.
func Decide(dir CardState, current, collapseHeight float64) SnapDecision {
	collapseDistance := collapseHeight - math.Abs(current)
	expandDistance := math.Abs(current)

	switch dir {
	case Collapsed:
		collapseDistance *= DirectionDamping
	case Expanded:
		expandDistance *= DirectionDamping
	}

	target := Collapsed
	if collapseDistance > expandDistance {
		target = Expanded
	}

	// Overshoot past either resting offset can make a distance negative;
	// the remaining distance is clamped so the duration never goes negative.
	return SnapDecision{
		Target:            target,
		RemainingDistance: math.Max(0, math.Min(expandDistance, collapseDistance)),
	}
}

// RestingPosition is the position a state rests at: 0 for Expanded,
// collapseHeight for Collapsed.
func RestingPosition(state CardState, collapseHeight float64) float64 {
	if state == Expanded {
		return 0
	}
	return collapseHeight
}
