// Package gesture turns terminal mouse input into card gesture samples.
package gesture

import (
	"math"
	"time"

	"gonum.org/v1/gonum/stat"
)

// DefaultWindow is how far back velocity estimation looks.
const DefaultWindow = 100 * time.Millisecond

type point struct {
	at time.Time
	y  float64
}

// VelocityTracker estimates vertical velocity as the least-squares slope of
// recent position samples.
type VelocityTracker struct {
	window  time.Duration
	samples []point
}

// NewVelocityTracker creates a tracker looking back over window. A zero
// window uses DefaultWindow.
func NewVelocityTracker(window time.Duration) *VelocityTracker {
	if window <= 0 {
		window = DefaultWindow
	}
	return &VelocityTracker{window: window}
}

// Add records position y at time at. Samples older than the window, measured
// from the newest sample, are dropped.
func (v *VelocityTracker) Add(at time.Time, y float64) {
	v.samples = append(v.samples, point{at: at, y: y})
	cutoff := at.Add(-v.window)
	i := 0
	for i < len(v.samples)-1 && v.samples[i].at.Before(cutoff) {
		i++
	}
	v.samples = v.samples[i:]
}

// Prune drops samples older than the window measured back from now, so a
// pointer that rested before release reports no velocity.
func (v *VelocityTracker) Prune(now time.Time) {
	cutoff := now.Add(-v.window)
	i := 0
	for i < len(v.samples) && v.samples[i].at.Before(cutoff) {
		i++
	}
	v.samples = v.samples[i:]
}

// Velocity is the estimated velocity in position units per second. It is 0
// with fewer than two samples or when all samples share a timestamp.
func (v *VelocityTracker) Velocity() float64 {
	if len(v.samples) < 2 {
		return 0
	}
	origin := v.samples[0].at
	xs := make([]float64, len(v.samples))
	ys := make([]float64, len(v.samples))
	for i, s := range v.samples {
		xs[i] = s.at.Sub(origin).Seconds()
		ys[i] = s.y
	}
	if xs[len(xs)-1] == 0 {
		return 0
	}
	_, slope := stat.LinearRegression(xs, ys, nil, false)
	if math.IsNaN(slope) || math.IsInf(slope, 0) {
		return 0
	}
	return slope
}

// Len is the number of samples inside the window.
func (v *VelocityTracker) Len() int {
	return len(v.samples)
}

// Reset drops all samples.
func (v *VelocityTracker) Reset() {
	v.samples = v.samples[:0]
}
