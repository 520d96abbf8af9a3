// Package content provides the markdown body shown inside the card.
package content

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/Dicklesworthstone/cardsheet/pkg/card"
)

var _ card.ContentHost = (*MarkdownHost)(nil)

// HandleRows is the number of rows above the body reserved for the drag
// handle.
const HandleRows = 1

// MarkdownHost renders markdown and reports its natural height to the panel.
type MarkdownHost struct {
	markdown    string
	style       string
	unitsPerRow float64

	// sink is not owned; the panel outlives its content.
	sink card.HeightReportSink

	width    int
	rendered string
}

// NewMarkdownHost creates a host for markdown. style is a glamour standard
// style name ("dark", "light", "notty", ...); empty means "dark".
func NewMarkdownHost(markdown, style string, unitsPerRow float64) *MarkdownHost {
	if style == "" {
		style = "dark"
	}
	if unitsPerRow <= 0 {
		unitsPerRow = 1
	}
	return &MarkdownHost{
		markdown:    markdown,
		style:       style,
		unitsPerRow: unitsPerRow,
	}
}

// SetHeightSink registers where layout passes report to.
func (h *MarkdownHost) SetHeightSink(sink card.HeightReportSink) {
	h.sink = sink
}

// SetMarkdown replaces the content. The next Layout re-renders it.
func (h *MarkdownHost) SetMarkdown(markdown string) {
	h.markdown = markdown
	h.rendered = ""
}

// Layout is one layout pass at the given inner width: render, measure, and
// report. Reports are sent on every pass, even when nothing changed.
func (h *MarkdownHost) Layout(width int) error {
	if width < 1 {
		width = 1
	}
	if h.rendered == "" || width != h.width {
		out, err := h.render(width)
		if err != nil {
			return err
		}
		h.width = width
		h.rendered = out
	}
	if h.sink != nil {
		h.sink.ReportHeight(h, h.MeasuredHeight())
	}
	return nil
}

func (h *MarkdownHost) render(width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(h.style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	out, err := r.Render(h.markdown)
	if err != nil {
		return "", fmt.Errorf("failed to render content: %w", err)
	}
	return strings.Trim(out, "\n"), nil
}

// Rows is the number of terminal rows the content needs, handle included.
func (h *MarkdownHost) Rows() int {
	if h.rendered == "" {
		return HandleRows
	}
	return HandleRows + lipgloss.Height(h.rendered)
}

// MeasuredHeight is Rows in layout units, rounded up to a whole unit.
func (h *MarkdownHost) MeasuredHeight() float64 {
	return math.Ceil(float64(h.Rows()) * h.unitsPerRow)
}

// View is the rendered body, without the handle.
func (h *MarkdownHost) View() string {
	return h.rendered
}

// Markdown is the source text.
func (h *MarkdownHost) Markdown() string {
	return h.markdown
}
