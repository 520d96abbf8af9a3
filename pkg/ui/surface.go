package ui

import (
	"github.com/Dicklesworthstone/cardsheet/pkg/anim"
	"github.com/Dicklesworthstone/cardsheet/pkg/card"
)

var _ card.Surface = (*panelSurface)(nil)

// panelSurface is the presentation side of the card: animated properties
// the view reads every frame.
type panelSurface struct {
	offset  *anim.Property
	opacity *anim.Property

	panelHeight float64
	// visibleHeight is the screen height in layout units.
	visibleHeight float64
}

func newPanelSurface(fps int) *panelSurface {
	return &panelSurface{
		offset:  anim.NewProperty(0, fps),
		opacity: anim.NewProperty(0, fps),
	}
}

func (s *panelSurface) SetBottomOffset(offset float64, a card.Animation) {
	s.offset.Set(offset, a)
}

func (s *panelSurface) SetPanelHeight(height float64) {
	s.panelHeight = height
}

func (s *panelSurface) SetBackdropOpacity(alpha float64, a card.Animation) {
	s.opacity.Set(alpha, a)
}

func (s *panelSurface) VisibleHeight() float64 {
	return s.visibleHeight
}

// step advances both properties one frame and reports whether either
// presented value changed.
func (s *panelSurface) step() bool {
	a := s.offset.Step()
	b := s.opacity.Step()
	return a || b
}

func (s *panelSurface) animating() bool {
	return s.offset.Animating() || s.opacity.Animating()
}

// position is the presented distance of the panel below its resting
// expanded place.
func (s *panelSurface) position() float64 {
	return -s.offset.Value()
}
