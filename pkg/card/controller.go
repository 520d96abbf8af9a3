package card

import (
	"math"
	"reflect"

	"github.com/Dicklesworthstone/cardsheet/pkg/logging"
)

var _ HeightReportSink = (*PanelController)(nil)

// Options configures a PanelController. A non-positive CollapseHeight or a
// negative CornerRadius falls back to the default; a zero CornerRadius is kept.
type Options struct {
	CollapseHeight float64
	CornerRadius   float64
	Logger         logging.Log
	// OnTap is called by HandleTap. It carries no panel behavior.
	OnTap func()
}

// PanelController owns the panel geometry and the gesture state machine.
// It is not safe for concurrent use; drive it from the UI loop.
type PanelController struct {
	surface Surface
	content ContentHost
	log     logging.Log
	onTap   func()

	geometry Geometry
	state    CardState

	// contentHeight is the largest height the attached content has reported.
	contentHeight float64
	// pending buffers the largest report per source made before Attach.
	pending []pendingReport
}

type pendingReport struct {
	source ContentHost
	height float64
}

// NewPanelController creates a controller drawing onto surface.
func NewPanelController(surface Surface, opts Options) *PanelController {
	collapseHeight := opts.CollapseHeight
	if collapseHeight <= 0 {
		collapseHeight = DefaultCollapseHeight
	}
	cornerRadius := opts.CornerRadius
	if cornerRadius < 0 {
		cornerRadius = DefaultCornerRadius
	}
	log := opts.Logger
	if log == nil {
		log = logging.Nop()
	}

	return &PanelController{
		surface: surface,
		log:     log.With(logging.String("component", "card")),
		onTap:   opts.OnTap,
		geometry: Geometry{
			BottomOffset:   -collapseHeight,
			CollapseHeight: collapseHeight,
			CornerRadius:   cornerRadius,
		},
		state: Collapsed,
	}
}

// Attach embeds content in the panel. The panel starts collapsed with a
// clear backdrop, applied without animation.
func (c *PanelController) Attach(content ContentHost) error {
	if content == nil {
		return &PreconditionViolation{Op: "Attach", Reason: ErrNilContent.Reason}
	}

	if c.content != nil && !sameHost(c.content, content) {
		c.contentHeight = 0
	}
	c.content = content
	content.SetHeightSink(c)

	c.state = Collapsed
	c.surface.SetBackdropOpacity(Collapsed.Opacity(), Immediate)
	c.animateToPosition(c.geometry.CollapseHeight, Immediate)

	for _, p := range c.pending {
		if sameHost(p.source, content) {
			c.applyContentHeight(p.height)
		}
	}
	c.pending = nil

	c.log.Debug("content attached", logging.Float64("collapse_height", c.geometry.CollapseHeight))
	return nil
}

// ReportHeight records a content height. The panel height only ever grows
// through reports; anything not larger than the stored maximum is ignored.
func (c *PanelController) ReportHeight(source ContentHost, height float64) {
	if source == nil || math.IsNaN(height) || height < 0 {
		return
	}
	if c.content == nil {
		c.buffer(source, height)
		return
	}
	if !sameHost(source, c.content) {
		c.log.Debug("height report from detached host ignored", logging.Float64("height", height))
		return
	}
	c.applyContentHeight(height)
}

func (c *PanelController) buffer(source ContentHost, height float64) {
	for i := range c.pending {
		if sameHost(c.pending[i].source, source) {
			c.pending[i].height = max(c.pending[i].height, height)
			return
		}
	}
	c.pending = append(c.pending, pendingReport{source: source, height: height})
}

// sameHost reports whether a and b are the same content host. Hosts whose
// dynamic type is not comparable are matched by value.
func sameHost(a, b ContentHost) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}
	if va.Comparable() && vb.Comparable() {
		return a == b
	}
	return reflect.DeepEqual(a, b)
}

func (c *PanelController) applyContentHeight(height float64) {
	if height <= c.contentHeight {
		return
	}
	c.contentHeight = height
	c.setPanelHeight(height)
	c.log.Debug("content height grew", logging.Float64("height", height))
}

// HandleGesture feeds one gesture sample into the state machine.
func (c *PanelController) HandleGesture(sample GestureSample) error {
	if c.content == nil {
		return &PreconditionViolation{Op: "HandleGesture", Reason: ErrNotAttached.Reason}
	}

	dir, ok := DirectionFromVelocity(sample.VelocityY)
	if !ok {
		return nil
	}

	switch sample.Phase {
	case PhaseChanged:
		c.track(dir, sample.VelocityY)
	case PhaseEnded:
		c.settle(dir)
	}
	return nil
}

// track moves the panel with the finger. The offset is not
// clamped; a fast sample near a resting offset can overshoot it.
func (c *PanelController) track(dir CardState, velocityY float64) {
	current := c.geometry.BottomOffset
	if !CanTrack(dir, current, c.geometry.CollapseHeight) {
		return
	}
	c.geometry.BottomOffset = current + LiveDelta(velocityY)
	c.surface.SetBottomOffset(c.geometry.BottomOffset, Immediate)
}

func (c *PanelController) settle(dir CardState) {
	decision := c.Decide(dir)
	duration := decision.Duration()

	c.log.Debug("snap decided",
		logging.String("direction", dir.String()),
		logging.Float64("bottom_offset", c.geometry.BottomOffset),
		logging.String("target", decision.Target.String()),
		logging.Float64("remaining_distance", decision.RemainingDistance),
		logging.Duration("duration", duration),
	)

	if decision.Target == Expanded {
		c.setPanelHeight(math.Max(c.contentHeight, c.surface.VisibleHeight()+ExpandSlack))
	} else {
		c.setPanelHeight(c.contentHeight)
	}

	c.state = decision.Target
	target := RestingPosition(decision.Target, c.geometry.CollapseHeight)
	c.animateToPosition(target, Animation{Duration: duration, Curve: CurveEaseOut})
	c.surface.SetBackdropOpacity(decision.Target.Opacity(), Animation{Duration: duration, Curve: CurveCriticallyDamped})
}

// Decide computes the snap decision for a gesture heading toward dir from
// the current offset, without applying it.
func (c *PanelController) Decide(dir CardState) SnapDecision {
	return Decide(dir, c.geometry.BottomOffset, c.geometry.CollapseHeight)
}

// HandleTap is the tap hook. The panel itself does nothing on tap.
func (c *PanelController) HandleTap() {
	c.log.Debug("panel tapped")
	if c.onTap != nil {
		c.onTap()
	}
}

func (c *PanelController) animateToPosition(position float64, anim Animation) {
	c.geometry.BottomOffset = -position
	c.surface.SetBottomOffset(c.geometry.BottomOffset, anim)
}

func (c *PanelController) setPanelHeight(height float64) {
	c.geometry.PanelHeight = height
	c.surface.SetPanelHeight(height)
}

// State is the committed resting state.
func (c *PanelController) State() CardState {
	return c.state
}

// Geometry returns a copy of the current geometry.
func (c *PanelController) Geometry() Geometry {
	return c.geometry
}

// Position is the current model position: CollapseHeight when collapsed,
// 0 when expanded, anything in between mid-drag.
func (c *PanelController) Position() float64 {
	return c.geometry.Position()
}

// ContentHeight is the largest height reported by the attached content.
func (c *PanelController) ContentHeight() float64 {
	return c.contentHeight
}

// Attached reports whether a content host has been attached.
func (c *PanelController) Attached() bool {
	return c.content != nil
}
