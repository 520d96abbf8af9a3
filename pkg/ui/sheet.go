package ui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/mattn/go-runewidth"

	"github.com/Dicklesworthstone/cardsheet/pkg/card"
	"github.com/Dicklesworthstone/cardsheet/pkg/config"
	"github.com/Dicklesworthstone/cardsheet/pkg/content"
	"github.com/Dicklesworthstone/cardsheet/pkg/gesture"
	"github.com/Dicklesworthstone/cardsheet/pkg/logging"
)

const panelZoneID = "cardsheet-panel"

// ContentChangedMsg tells the sheet its content file changed on disk.
type ContentChangedMsg struct{}

// frameMsg drives animations and keyboard swipes, one per frame.
type frameMsg time.Time

// SheetOptions configures NewSheetModel.
type SheetOptions struct {
	Config config.Config
	Host   *content.MarkdownHost
	Logger logging.Log
	// Zones enables mouse hit-testing by zone markers. Nil falls back to
	// row arithmetic.
	Zones *zone.Manager
	Theme Theme
}

// SheetModel is the bubbletea program: a backdrop with the card panel
// docked to the bottom of the screen.
type SheetModel struct {
	cfg        config.Config
	controller *card.PanelController
	host       *content.MarkdownHost
	surface    *panelSurface
	recognizer *gesture.Recognizer
	zones      *zone.Manager
	log        logging.Log

	keys     KeyMap
	theme    Theme
	help     HelpOverlayModel
	viewport viewport.Model

	width  int
	height int
	ready  bool

	// keyVelocity is the velocity of the keyboard drag in progress, 0 if none.
	keyVelocity float64
	swipeFrames int
	ticking     bool

	taps    int
	actions int
	status  string
	err     error

	now     func() time.Time
	hitTest func(tea.MouseMsg) bool
}

// NewSheetModel builds the sheet and attaches opts.Host to a new panel.
func NewSheetModel(opts SheetOptions) (*SheetModel, error) {
	if opts.Host == nil {
		return nil, &card.PreconditionViolation{Op: "NewSheetModel", Reason: card.ErrNilContent.Reason}
	}

	log := opts.Logger
	if log == nil {
		log = logging.Nop()
	}
	theme := opts.Theme
	if theme.Renderer == nil {
		theme = DefaultTheme(nil)
	}
	cfg := opts.Config
	keys := DefaultKeyMap()

	m := &SheetModel{
		cfg:        cfg,
		host:       opts.Host,
		surface:    newPanelSurface(cfg.Terminal.FPS),
		recognizer: gesture.NewRecognizer(cfg.Terminal.UnitsPerRow),
		zones:      opts.Zones,
		log:        log.With(logging.String("component", "ui")),
		keys:       keys,
		theme:      theme,
		help:       NewHelpOverlayModel(theme, keys.Sections()),
		viewport:   viewport.New(0, 0),
		now:        time.Now,
	}
	m.hitTest = m.inPanel

	cardOpts := cfg.CardOptions(log)
	cardOpts.OnTap = func() {
		m.taps++
		m.status = "tapped"
	}
	m.controller = card.NewPanelController(m.surface, cardOpts)

	if err := m.controller.Attach(opts.Host); err != nil {
		return nil, err
	}
	return m, nil
}

// Init implements tea.Model.
func (m *SheetModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *SheetModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case ContentChangedMsg:
		m.reloadContent()

	case frameMsg:
		m.ticking = false
		m.surface.step()
		if m.swipeFrames > 0 {
			m.swipeStep()
		}

	case tea.KeyMsg:
		if m.help.IsVisible() {
			m.help, _ = m.help.Update(msg)
			return m, nil
		}
		if cmd := m.handleKey(msg); cmd != nil {
			return m, cmd
		}

	case tea.MouseMsg:
		m.handleMouse(msg)
	}

	if m.err != nil {
		return m, tea.Quit
	}
	return m, m.ensureTicking()
}

func (m *SheetModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.Toggle()
	case key.Matches(msg, m.keys.DragUp):
		m.keyDrag(-m.cfg.Keyboard.Velocity)
	case key.Matches(msg, m.keys.DragDown):
		m.keyDrag(m.cfg.Keyboard.Velocity)
	case key.Matches(msg, m.keys.Release):
		m.keyRelease()
	case key.Matches(msg, m.keys.Swipe):
		m.startSwipe()
	case key.Matches(msg, m.keys.PageUp):
		m.viewport.SetYOffset(m.viewport.YOffset - max(1, m.viewport.Height))
	case key.Matches(msg, m.keys.PageDown):
		m.viewport.SetYOffset(m.viewport.YOffset + max(1, m.viewport.Height))
	case key.Matches(msg, m.keys.Action):
		m.actions++
		m.status = "action"
		m.log.Info("action invoked", logging.Int("count", m.actions))
	}
	return nil
}

// feed passes a sample to the controller. A false result means the
// controller rejected it and the program must stop.
func (m *SheetModel) feed(sample card.GestureSample) bool {
	if err := m.controller.HandleGesture(sample); err != nil {
		m.err = err
		m.log.Error("gesture rejected", logging.Err(err))
		return false
	}
	return true
}

// keyDrag moves the card as one drag sample at velocity. The first key of
// a drag begins it.
func (m *SheetModel) keyDrag(velocity float64) {
	m.swipeFrames = 0
	if m.keyVelocity == 0 {
		if !m.feed(card.GestureSample{Phase: card.PhaseBegan}) {
			return
		}
	}
	m.keyVelocity = velocity
	m.feed(card.GestureSample{Phase: card.PhaseChanged, VelocityY: velocity})
}

// keyRelease ends the keyboard drag with the velocity of its last key.
func (m *SheetModel) keyRelease() {
	if m.keyVelocity == 0 {
		return
	}
	v := m.keyVelocity
	m.keyVelocity = 0
	m.swipeFrames = 0
	m.feed(card.GestureSample{Phase: card.PhaseEnded, VelocityY: v})
}

// startSwipe plays a fling toward the other resting state over the next
// SwipeFrames frames.
func (m *SheetModel) startSwipe() {
	if m.swipeFrames > 0 {
		return
	}
	v := m.cfg.Keyboard.Velocity
	if m.controller.State() == card.Collapsed {
		v = -v
	}
	if !m.feed(card.GestureSample{Phase: card.PhaseBegan}) {
		return
	}
	m.keyVelocity = v
	m.swipeFrames = m.cfg.Keyboard.SwipeFrames
}

func (m *SheetModel) swipeStep() {
	if !m.feed(card.GestureSample{Phase: card.PhaseChanged, VelocityY: m.keyVelocity}) {
		return
	}
	m.swipeFrames--
	if m.swipeFrames == 0 {
		m.keyRelease()
	}
}

func (m *SheetModel) handleMouse(msg tea.MouseMsg) {
	inPanel := m.hitTest(msg)

	if msg.Action == tea.MouseActionPress && inPanel {
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.viewport.SetYOffset(m.viewport.YOffset - 1)
			return
		case tea.MouseButtonWheelDown:
			m.viewport.SetYOffset(m.viewport.YOffset + 1)
			return
		}
	}

	ev, ok := m.recognizer.Handle(msg, m.now(), inPanel)
	if !ok {
		return
	}
	if !m.feed(ev.Sample) {
		m.recognizer.Cancel()
		return
	}
	if ev.Tap {
		m.controller.HandleTap()
	}
}

// inPanel reports whether the pointer is over the visible part of the card.
func (m *SheetModel) inPanel(msg tea.MouseMsg) bool {
	if m.zones != nil {
		if zi := m.zones.Get(panelZoneID); zi != nil {
			return zi.InBounds(msg)
		}
	}
	rows := m.visibleRows()
	return rows > 0 && msg.Y >= m.height-rows && msg.Y < m.height
}

func (m *SheetModel) ensureTicking() tea.Cmd {
	if m.ticking || (!m.surface.animating() && m.swipeFrames == 0) {
		return nil
	}
	m.ticking = true
	return tea.Tick(m.surface.offset.Frame(), func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m *SheetModel) resize(width, height int) {
	m.width = width
	m.height = height
	m.ready = true
	m.surface.visibleHeight = float64(height) * m.cfg.Terminal.UnitsPerRow
	m.help.SetSize(width, height)
	m.layoutContent()
}

// layoutContent runs a layout pass on the content at the current width.
func (m *SheetModel) layoutContent() {
	if !m.ready {
		return
	}
	inner := max(m.width-PanelChromeWidth, MinPanelWidth)
	if err := m.host.Layout(inner); err != nil {
		m.err = err
		m.log.Error("content layout failed", logging.Err(err))
		return
	}
	m.viewport.Width = inner
	m.viewport.SetContent(m.host.View())
}

func (m *SheetModel) reloadContent() {
	path := m.cfg.Content.Path
	if path == "" {
		return
	}
	markdown, err := content.Load(path)
	if err != nil {
		m.status = "reload failed"
		m.log.Warn("content reload failed", logging.String("path", path), logging.Err(err))
		return
	}
	m.host.SetMarkdown(markdown)
	m.layoutContent()
	m.status = "reloaded"
	m.log.Info("content reloaded", logging.String("path", path))
}

// panelRows is the card's full height in rows, border included.
func (m *SheetModel) panelRows() int {
	u := m.cfg.Terminal.UnitsPerRow
	if m.surface.panelHeight <= 0 || u <= 0 {
		return 0
	}
	return int(math.Ceil(m.surface.panelHeight/u)) + BorderRows
}

// visibleRows is how many rows of the card are above the screen's bottom
// edge, given the presented position.
func (m *SheetModel) visibleRows() int {
	u := m.cfg.Terminal.UnitsPerRow
	total := m.panelRows()
	if total == 0 || u <= 0 {
		return 0
	}
	visible := m.surface.panelHeight - m.surface.position()
	if visible <= 0 {
		return 0
	}
	rows := int(math.Round(visible/u)) + 1
	return min(rows, total, max(m.height-StatusRows, 0))
}

// View implements tea.Model.
func (m *SheetModel) View() string {
	if m.err != nil {
		return m.theme.Renderer.NewStyle().Foreground(m.theme.Danger).Render("Error: " + m.err.Error())
	}
	if !m.ready {
		return "Loading..."
	}
	if m.help.IsVisible() {
		return m.help.View()
	}

	visible := m.visibleRows()
	lines := make([]string, 0, m.height)
	lines = append(lines, m.renderBackdrop(m.height-visible)...)

	if visible > 0 {
		panel := strings.Join(m.renderPanel(visible), "\n")
		if m.zones != nil {
			panel = m.zones.Mark(panelZoneID, panel)
		}
		lines = append(lines, panel)
	}

	out := strings.Join(lines, "\n")
	if m.zones != nil {
		out = m.zones.Scan(out)
	}
	return out
}

// renderBackdrop draws rows of backdrop, the first carrying the status line.
func (m *SheetModel) renderBackdrop(rows int) []string {
	if rows <= 0 {
		return nil
	}
	opacity := m.surface.opacity.Value()
	style := m.theme.Renderer.NewStyle().
		Background(BackdropColor(opacity, m.theme)).
		Foreground(BlendColor(m.theme.Subtext, ColorScrim, opacity)).
		Width(m.width).
		MaxWidth(m.width)

	lines := make([]string, rows)
	lines[0] = style.Render(m.statusLine())
	blank := style.Render("")
	for i := 1; i < rows; i++ {
		lines[i] = blank
	}
	return lines
}

// renderPanel renders the whole card and keeps its top visible rows; the
// rest is below the screen edge.
func (m *SheetModel) renderPanel(visible int) []string {
	inner := max(m.width-PanelChromeWidth, MinPanelWidth)
	bodyRows := m.panelRows() - BorderRows

	// Only the body rows above the screen edge can be scrolled into view.
	m.viewport.Height = max(min(bodyRows, visible-1)-content.HandleRows, 0)
	m.viewport.Width = inner

	body := RenderHandle(inner, m.theme)
	if m.viewport.Height > 0 {
		body += "\n" + m.viewport.View()
	}

	box := m.theme.Renderer.NewStyle().
		Border(PanelBorder(m.controller.Geometry().CornerRadius)).
		BorderForeground(m.theme.Border).
		Foreground(m.theme.Text).
		Padding(0, 1).
		Width(inner + 2).
		Height(bodyRows).
		Render(body)

	lines := strings.Split(box, "\n")
	if len(lines) > visible {
		lines = lines[:visible]
	}
	return lines
}

func (m *SheetModel) statusLine() string {
	s := fmt.Sprintf(" cardsheet  %s  position %.0f  height %.0f",
		m.controller.State(), m.surface.position(), m.surface.panelHeight)
	if m.status != "" {
		s += "  " + m.status
	}
	return runewidth.Truncate(s, m.width, "…")
}

// Controller exposes the panel state machine.
func (m *SheetModel) Controller() *card.PanelController {
	return m.controller
}

// Err is the error that stopped the program, if any.
func (m *SheetModel) Err() error {
	return m.err
}

// Taps is how many taps the panel has received.
func (m *SheetModel) Taps() int {
	return m.taps
}

// Actions is how many times the action key was pressed.
func (m *SheetModel) Actions() int {
	return m.actions
}
