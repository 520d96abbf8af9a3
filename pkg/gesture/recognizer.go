package gesture

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Dicklesworthstone/cardsheet/pkg/card"
)

// Event is what the recognizer makes of one mouse message.
type Event struct {
	Sample card.GestureSample
	// Tap is set on a release that ends a press without vertical movement.
	Tap bool
}

// Recognizer tracks a left-button drag that starts on the panel and reports
// it as Began/Changed/Ended samples with velocities in layout units.
type Recognizer struct {
	unitsPerRow float64
	tracker     *VelocityTracker

	dragging bool
	moved    bool
	lastY    int
}

// NewRecognizer creates a recognizer that scales rows by unitsPerRow.
func NewRecognizer(unitsPerRow float64) *Recognizer {
	if unitsPerRow <= 0 {
		unitsPerRow = 1
	}
	return &Recognizer{
		unitsPerRow: unitsPerRow,
		tracker:     NewVelocityTracker(DefaultWindow),
	}
}

// Handle processes a mouse message received at now. inPanel says whether the
// pointer is over the panel; only presses there start a drag. The bool
// result is false when the message is not part of a drag.
func (r *Recognizer) Handle(msg tea.MouseMsg, now time.Time, inPanel bool) (Event, bool) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !inPanel {
			return Event{}, false
		}
		r.dragging = true
		r.moved = false
		r.lastY = msg.Y
		r.tracker.Reset()
		r.tracker.Add(now, r.units(msg.Y))
		return Event{Sample: card.GestureSample{Phase: card.PhaseBegan}}, true

	case tea.MouseActionMotion:
		if !r.dragging || msg.Y == r.lastY {
			return Event{}, false
		}
		r.moved = true
		r.lastY = msg.Y
		r.tracker.Add(now, r.units(msg.Y))
		return Event{Sample: card.GestureSample{Phase: card.PhaseChanged, VelocityY: r.tracker.Velocity()}}, true

	case tea.MouseActionRelease:
		if !r.dragging {
			return Event{}, false
		}
		r.dragging = false
		if msg.Y != r.lastY {
			r.moved = true
			r.tracker.Add(now, r.units(msg.Y))
		}
		r.tracker.Prune(now)
		ev := Event{
			Sample: card.GestureSample{Phase: card.PhaseEnded, VelocityY: r.tracker.Velocity()},
			Tap:    !r.moved,
		}
		r.tracker.Reset()
		return ev, true
	}
	return Event{}, false
}

// Dragging reports whether a drag is in progress.
func (r *Recognizer) Dragging() bool {
	return r.dragging
}

// Cancel abandons the current drag without emitting an end.
func (r *Recognizer) Cancel() {
	r.dragging = false
	r.moved = false
	r.tracker.Reset()
}

func (r *Recognizer) units(row int) float64 {
	return float64(row) * r.unitsPerRow
}
