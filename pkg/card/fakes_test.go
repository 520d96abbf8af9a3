package card

import "time"

type offsetCall struct {
	offset float64
	anim   Animation
}

type opacityCall struct {
	alpha float64
	anim  Animation
}

// recordingSurface captures every command the controller issues.
type recordingSurface struct {
	visible   float64
	offsets   []offsetCall
	heights   []float64
	opacities []opacityCall
}

func (s *recordingSurface) SetBottomOffset(offset float64, anim Animation) {
	s.offsets = append(s.offsets, offsetCall{offset, anim})
}

func (s *recordingSurface) SetPanelHeight(height float64) {
	s.heights = append(s.heights, height)
}

func (s *recordingSurface) SetBackdropOpacity(alpha float64, anim Animation) {
	s.opacities = append(s.opacities, opacityCall{alpha, anim})
}

func (s *recordingSurface) VisibleHeight() float64 {
	return s.visible
}

func (s *recordingSurface) commands() int {
	return len(s.offsets) + len(s.heights) + len(s.opacities)
}

func (s *recordingSurface) lastOffset() offsetCall {
	return s.offsets[len(s.offsets)-1]
}

func (s *recordingSurface) lastOpacity() opacityCall {
	return s.opacities[len(s.opacities)-1]
}

func (s *recordingSurface) lastHeight() float64 {
	return s.heights[len(s.heights)-1]
}

// fixedContent reports a fixed height.
type fixedContent struct {
	height float64
	sink   HeightReportSink
}

func (c *fixedContent) MeasuredHeight() float64 {
	return c.height
}

func (c *fixedContent) SetHeightSink(sink HeightReportSink) {
	c.sink = sink
}

// layout mimics a host layout pass.
func (c *fixedContent) layout() {
	if c.sink != nil {
		c.sink.ReportHeight(c, c.MeasuredHeight())
	}
}

func newAttached(t interface{ Fatalf(string, ...any) }, visible float64) (*PanelController, *recordingSurface, *fixedContent) {
	surface := &recordingSurface{visible: visible}
	c := NewPanelController(surface, Options{CollapseHeight: DefaultCollapseHeight})
	content := &fixedContent{}
	if err := c.Attach(content); err != nil {
		t.Fatalf("Attach failed: %v", err)
	}
	return c, surface, content
}

func approx(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 1e-9
}

func approxDuration(a, b time.Duration) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= time.Microsecond
}

// valueContent is a host with value semantics whose type cannot be used as
// a map key.
type valueContent struct {
	rows []string
}

func (c valueContent) MeasuredHeight() float64 {
	return float64(len(c.rows))
}

func (c valueContent) SetHeightSink(HeightReportSink) {}
