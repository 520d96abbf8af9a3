package ui

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Dicklesworthstone/cardsheet/pkg/card"
	"github.com/Dicklesworthstone/cardsheet/pkg/config"
	"github.com/Dicklesworthstone/cardsheet/pkg/content"
)

// keyMsg creates a tea.KeyMsg for testing
func keyMsg(key string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestSheet(t *testing.T, cfg config.Config) (*SheetModel, *fakeClock) {
	t.Helper()
	host := content.NewMarkdownHost(content.Sample, "notty", cfg.Terminal.UnitsPerRow)
	m, err := NewSheetModel(SheetOptions{
		Config: cfg,
		Host:   host,
		Theme:  DefaultTheme(lipgloss.NewRenderer(io.Discard)),
	})
	if err != nil {
		t.Fatalf("NewSheetModel failed: %v", err)
	}
	clock := &fakeClock{t: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	m.now = clock.now
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	return m, clock
}

// runFrames delivers frame ticks for as long as the model asks for them.
func runFrames(t *testing.T, m *SheetModel, cmd tea.Cmd) {
	t.Helper()
	for i := 0; cmd != nil; i++ {
		if i > 500 {
			t.Fatal("animation never settled")
		}
		_, cmd = m.Update(frameMsg(time.Time{}))
	}
}

func TestNewSheetModelRejectsNilHost(t *testing.T) {
	m, err := NewSheetModel(SheetOptions{Config: config.Default()})
	if !errors.Is(err, card.ErrNilContent) {
		t.Errorf("Expected ErrNilContent, got %v", err)
	}
	if m != nil {
		t.Error("Expected no model without a host")
	}
	var pv *card.PreconditionViolation
	if !errors.As(err, &pv) || pv.Op != "NewSheetModel" {
		t.Errorf("Expected the violation to name NewSheetModel, got %v", err)
	}
}

func TestSheetStartsCollapsed(t *testing.T) {
	m, _ := newTestSheet(t, config.Default())
	c := m.Controller()

	if c.State() != card.Collapsed {
		t.Errorf("Expected Collapsed, got %v", c.State())
	}
	if c.Position() != card.DefaultCollapseHeight {
		t.Errorf("Expected position %v, got %v", card.DefaultCollapseHeight, c.Position())
	}
	if c.ContentHeight() <= 0 {
		t.Errorf("Expected layout to report a content height, got %v", c.ContentHeight())
	}
	if m.surface.opacity.Value() != 0 {
		t.Errorf("Expected clear backdrop, got %v", m.surface.opacity.Value())
	}
	if got := m.surface.VisibleHeight(); got != 30*16 {
		t.Errorf("Expected visible height 480, got %v", got)
	}
}

func TestSheetViewFillsScreen(t *testing.T) {
	m, _ := newTestSheet(t, config.Default())

	view := m.View()
	if got := lipgloss.Height(view); got != 30 {
		t.Errorf("Expected 30 rows, got %d", got)
	}
	if !strings.Contains(view, "collapsed") {
		t.Errorf("Expected status line to show the state, got:\n%s", view)
	}
	if !strings.Contains(view, "━") {
		t.Error("Expected the grab handle to be visible")
	}
}

func TestSwipeExpandsThenCollapses(t *testing.T) {
	m, _ := newTestSheet(t, config.Default())
	c := m.Controller()

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if cmd == nil {
		t.Fatal("Expected swipe to start frame ticks")
	}
	runFrames(t, m, cmd)

	if c.State() != card.Expanded {
		t.Fatalf("Expected Expanded after swipe, got %v", c.State())
	}
	if m.surface.position() != 0 {
		t.Errorf("Expected presented position 0, got %v", m.surface.position())
	}
	if m.surface.opacity.Value() != card.ExpandedOpacity {
		t.Errorf("Expected opacity %v, got %v", card.ExpandedOpacity, m.surface.opacity.Value())
	}
	if got := c.Geometry().PanelHeight; got < m.surface.VisibleHeight()+card.ExpandSlack {
		t.Errorf("Expected expanded panel height >= %v, got %v", m.surface.VisibleHeight()+card.ExpandSlack, got)
	}
	if got := lipgloss.Height(m.View()); got != 30 {
		t.Errorf("Expected 30 rows when expanded, got %d", got)
	}

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	runFrames(t, m, cmd)

	if c.State() != card.Collapsed {
		t.Fatalf("Expected Collapsed after second swipe, got %v", c.State())
	}
	if m.surface.position() != card.DefaultCollapseHeight {
		t.Errorf("Expected presented position %v, got %v", card.DefaultCollapseHeight, m.surface.position())
	}
	if m.surface.opacity.Value() != 0 {
		t.Errorf("Expected clear backdrop, got %v", m.surface.opacity.Value())
	}
	if got := c.Geometry().PanelHeight; got != c.ContentHeight() {
		t.Errorf("Expected collapsed panel height %v, got %v", c.ContentHeight(), got)
	}
}

func TestShortKeyboardDragSnapsBack(t *testing.T) {
	m, _ := newTestSheet(t, config.Default())
	c := m.Controller()

	m.Update(keyMsg("k"))
	if got := c.Position(); got != 123 {
		t.Errorf("Expected live position 123, got %v", got)
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	runFrames(t, m, cmd)

	if c.State() != card.Collapsed {
		t.Errorf("Expected Collapsed, got %v", c.State())
	}
	if c.Position() != card.DefaultCollapseHeight {
		t.Errorf("Expected position %v, got %v", card.DefaultCollapseHeight, c.Position())
	}
}

func TestLongKeyboardDragExpands(t *testing.T) {
	m, _ := newTestSheet(t, config.Default())
	c := m.Controller()

	for i := 0; i < 9; i++ {
		m.Update(tea.KeyMsg{Type: tea.KeyUp})
	}
	if got := c.Position(); got != 3 {
		t.Errorf("Expected live position 3, got %v", got)
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	runFrames(t, m, cmd)

	if c.State() != card.Expanded {
		t.Errorf("Expected Expanded, got %v", c.State())
	}
}

func TestReleaseWithoutDragIsNoop(t *testing.T) {
	m, _ := newTestSheet(t, config.Default())
	before := m.Controller().Geometry()

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("Expected no command")
	}
	if m.Controller().Geometry() != before {
		t.Errorf("Expected geometry unchanged, got %+v", m.Controller().Geometry())
	}
}

func TestMouseDragExpands(t *testing.T) {
	m, clock := newTestSheet(t, config.Default())
	m.hitTest = func(tea.MouseMsg) bool { return true }
	c := m.Controller()

	m.Update(tea.MouseMsg{X: 10, Y: 29, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	for y := 28; y >= 18; y-- {
		clock.advance(10 * time.Millisecond)
		m.Update(tea.MouseMsg{X: 10, Y: y, Button: tea.MouseButtonLeft, Action: tea.MouseActionMotion})
	}
	if c.Position() >= card.DefaultCollapseHeight {
		t.Errorf("Expected the card to follow the drag, position %v", c.Position())
	}

	_, cmd := m.Update(tea.MouseMsg{X: 10, Y: 18, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease})
	runFrames(t, m, cmd)

	if c.State() != card.Expanded {
		t.Errorf("Expected Expanded, got %v", c.State())
	}
	if m.Taps() != 0 {
		t.Errorf("Expected no tap for a drag, got %d", m.Taps())
	}
}

func TestMouseTapCallsHook(t *testing.T) {
	m, clock := newTestSheet(t, config.Default())
	m.hitTest = func(tea.MouseMsg) bool { return true }

	m.Update(tea.MouseMsg{X: 10, Y: 25, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	clock.advance(50 * time.Millisecond)
	m.Update(tea.MouseMsg{X: 10, Y: 25, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease})

	if m.Taps() != 1 {
		t.Errorf("Expected 1 tap, got %d", m.Taps())
	}
	if m.Controller().State() != card.Collapsed {
		t.Errorf("Expected tap to leave the card collapsed, got %v", m.Controller().State())
	}
}

func TestMousePressOutsidePanelIgnored(t *testing.T) {
	m, clock := newTestSheet(t, config.Default())
	c := m.Controller()

	// Row 0 is the status line, never part of the panel.
	m.Update(tea.MouseMsg{X: 10, Y: 0, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	clock.advance(10 * time.Millisecond)
	m.Update(tea.MouseMsg{X: 10, Y: 1, Button: tea.MouseButtonLeft, Action: tea.MouseActionMotion})

	if c.Position() != card.DefaultCollapseHeight {
		t.Errorf("Expected no movement, got position %v", c.Position())
	}
	if m.recognizer.Dragging() {
		t.Error("Expected no drag to start")
	}
}

func TestInPanelUsesVisibleRows(t *testing.T) {
	m, _ := newTestSheet(t, config.Default())

	rows := m.visibleRows()
	if rows <= 0 {
		t.Fatalf("Expected part of the card on screen, got %d rows", rows)
	}
	top := m.height - rows
	if !m.inPanel(tea.MouseMsg{Y: top}) {
		t.Errorf("Expected row %d to be in the panel", top)
	}
	if top > 0 && m.inPanel(tea.MouseMsg{Y: top - 1}) {
		t.Errorf("Expected row %d to be backdrop", top-1)
	}
}

func TestHelpToggle(t *testing.T) {
	m, _ := newTestSheet(t, config.Default())

	m.Update(keyMsg("?"))
	if !m.help.IsVisible() {
		t.Fatal("Expected help to be visible")
	}
	if !strings.Contains(m.View(), "Card Sheet Help") {
		t.Error("Expected help overlay in view")
	}

	// Any key closes help without acting.
	m.Update(keyMsg("a"))
	if m.help.IsVisible() {
		t.Error("Expected help to close")
	}
	if m.Actions() != 0 {
		t.Errorf("Expected key to be swallowed by help, got %d actions", m.Actions())
	}
}

func TestActionKey(t *testing.T) {
	m, _ := newTestSheet(t, config.Default())

	m.Update(keyMsg("a"))
	m.Update(keyMsg("a"))
	if m.Actions() != 2 {
		t.Errorf("Expected 2 actions, got %d", m.Actions())
	}
	if m.Controller().State() != card.Collapsed {
		t.Errorf("Expected action to leave the card alone, got %v", m.Controller().State())
	}
}

func TestQuitKey(t *testing.T) {
	m, _ := newTestSheet(t, config.Default())

	_, cmd := m.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatal("Expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("Expected tea.QuitMsg, got %T", cmd())
	}
}

func TestContentChangedReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "card.md")
	if err := os.WriteFile(path, []byte("# One\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := config.Default()
	cfg.Content.Path = path
	m, _ := newTestSheet(t, cfg)
	before := m.Controller().ContentHeight()

	long := "# Two\n\n" + strings.Repeat("A much longer body paragraph.\n\n", 40)
	if err := os.WriteFile(path, []byte(long), 0o644); err != nil {
		t.Fatal(err)
	}
	m.Update(ContentChangedMsg{})

	if m.host.Markdown() != long {
		t.Error("Expected host to hold the new markdown")
	}
	if got := m.Controller().ContentHeight(); got <= before {
		t.Errorf("Expected content height to grow past %v, got %v", before, got)
	}
}

func TestContentChangedMissingFileKeepsContent(t *testing.T) {
	cfg := config.Default()
	cfg.Content.Path = filepath.Join(t.TempDir(), "gone.md")
	m, _ := newTestSheet(t, cfg)

	_, cmd := m.Update(ContentChangedMsg{})
	if cmd != nil {
		t.Error("Expected no command for a failed reload")
	}
	if m.host.Markdown() != content.Sample {
		t.Error("Expected previous content to stay")
	}
	if m.Err() != nil {
		t.Errorf("Expected reload failure not to stop the program, got %v", m.Err())
	}
}

func TestPageKeysScrollViewport(t *testing.T) {
	cfg := config.Default()
	m, _ := newTestSheet(t, cfg)
	m.host.SetMarkdown(strings.Repeat("line\n\n", 200))
	m.layoutContent()
	m.View()

	m.Update(tea.KeyMsg{Type: tea.KeyPgDown})
	if m.viewport.YOffset == 0 {
		t.Error("Expected pgdown to scroll the content")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyPgUp})
	if m.viewport.YOffset != 0 {
		t.Errorf("Expected pgup to scroll back, got offset %d", m.viewport.YOffset)
	}
}
