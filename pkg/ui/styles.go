package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// ══════════════════════════════════════════════════════════════════════════════
// COLOR PALETTE - Dracula-inspired
// ══════════════════════════════════════════════════════════════════════════════

var (
	ColorBg          = lipgloss.Color("#282A36")
	ColorBgDark      = lipgloss.Color("#1E1F29")
	ColorBgHighlight = lipgloss.Color("#44475A")
	ColorText        = lipgloss.Color("#F8F8F2")
	ColorSubtext     = lipgloss.Color("#BFBFBF")
	ColorMuted       = lipgloss.Color("#6272A4")
	ColorPrimary     = lipgloss.Color("#BD93F9")
	ColorDanger      = lipgloss.Color("#FF5555")

	// ColorScrim is what the backdrop fades toward as the card rises.
	ColorScrim = lipgloss.Color("#000000")
)

// Theme bundles the renderer and colors a view draws with.
type Theme struct {
	Renderer *lipgloss.Renderer

	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Subtext   lipgloss.Color
	Border    lipgloss.Color
	Text      lipgloss.Color
	PanelBg   lipgloss.Color
	Backdrop  lipgloss.Color
	Danger    lipgloss.Color
}

// DefaultTheme returns the standard palette on renderer. A nil renderer uses
// lipgloss' default.
func DefaultTheme(renderer *lipgloss.Renderer) Theme {
	if renderer == nil {
		renderer = lipgloss.DefaultRenderer()
	}
	return Theme{
		Renderer:  renderer,
		Primary:   ColorPrimary,
		Secondary: ColorMuted,
		Subtext:   ColorSubtext,
		Border:    ColorBgHighlight,
		Text:      ColorText,
		PanelBg:   ColorBgDark,
		Backdrop:  ColorBg,
		Danger:    ColorDanger,
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// PANEL RENDERING
// ══════════════════════════════════════════════════════════════════════════════

// PanelBorder picks the card outline. Any corner radius rounds the corners;
// terminal cells cannot show more than that.
func PanelBorder(cornerRadius float64) lipgloss.Border {
	if cornerRadius > 0 {
		return lipgloss.RoundedBorder()
	}
	return lipgloss.NormalBorder()
}

// RenderHandle renders the grab handle centered in width cells.
func RenderHandle(width int, t Theme) string {
	if width <= 0 {
		return ""
	}
	grip := HandleWidth
	if grip > width {
		grip = width
	}
	return t.Renderer.NewStyle().
		Foreground(t.Secondary).
		Width(width).
		Align(lipgloss.Center).
		Render(strings.Repeat("━", grip))
}

// BlendColor mixes from toward to by amount in [0,1]. Colors that fail to
// parse fall back to from.
func BlendColor(from, to lipgloss.Color, amount float64) lipgloss.Color {
	if amount <= 0 {
		return from
	}
	if amount > 1 {
		amount = 1
	}
	a, err := colorful.Hex(string(from))
	if err != nil {
		return from
	}
	b, err := colorful.Hex(string(to))
	if err != nil {
		return from
	}
	return lipgloss.Color(a.BlendRgb(b, amount).Clamped().Hex())
}

// BackdropColor is the backdrop background at the given opacity.
func BackdropColor(opacity float64, t Theme) lipgloss.Color {
	return BlendColor(t.Backdrop, ColorScrim, opacity)
}
