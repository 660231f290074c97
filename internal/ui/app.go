package ui

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/poseview/internal/pose"
	"github.com/five82/poseview/internal/prefs"
	"github.com/five82/poseview/internal/scene"
	"github.com/five82/poseview/internal/session"
	"github.com/five82/poseview/internal/state"
)

// maxBatch bounds how many queued samples one update applies.
const maxBatch = 256

// Options configures the UI.
type Options struct {
	Context   context.Context
	Session   *session.Session
	Scene     *scene.Scene
	Store     *state.Store
	Samples   <-chan pose.Sample
	Redraw    time.Duration
	LogPath   string
	ThemeName string
	Zoom      float64
	PrefsPath string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx       context.Context
	session   *session.Session
	scene     *scene.Scene
	store     *state.Store
	samples   <-chan pose.Sample
	redraw    time.Duration
	logPath   string
	prefsPath string

	theme  Theme
	keys   keyMap
	help   help.Model
	camera Camera
	labels labelList
	logs   logPane

	width    int
	height   int
	ready    bool
	showHelp bool

	snapshot    state.Snapshot
	lastUpdated time.Time
	streamDone  bool
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	redraw := opts.Redraw
	if redraw <= 0 {
		redraw = 100 * time.Millisecond
	}
	sc := opts.Scene
	if sc == nil {
		sc = scene.New()
	}
	sess := opts.Session
	if sess == nil {
		sess = session.New(session.Options{Surface: sc})
	}
	theme := GetTheme(opts.ThemeName)

	return Model{
		ctx:       ctx,
		session:   sess,
		scene:     sc,
		store:     opts.Store,
		samples:   opts.Samples,
		redraw:    redraw,
		logPath:   opts.LogPath,
		prefsPath: opts.PrefsPath,
		theme:     theme,
		keys:      DefaultKeyMap(),
		help:      newHelp(theme),
		camera:    NewCamera(opts.Zoom),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tickCmd(m.redraw),
		waitForSamples(m.samples),
	}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.logs.resize(msg.Width)
		m.ready = true
		return m, nil

	case tickMsg:
		return m.handleTick()

	case snapshotMsg:
		m.snapshot = state.Snapshot(msg)
		m.lastUpdated = time.Now()
		return m, nil

	case sampleBatchMsg:
		for _, s := range msg {
			m.session.OnSample(s)
		}
		return m, waitForSamples(m.samples)

	case streamClosedMsg:
		m.streamDone = true
		return m, nil

	case logLinesMsg:
		m.logs.setLines(msg, m.theme.Styles())
		return m, nil

	case logErrorMsg:
		m.logs.err = msg.err
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.savePrefs()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.help = newHelp(m.theme)
		m.help.Width = m.width
		m.logs.setLines(m.logs.lines, m.theme.Styles())
		m.savePrefs()

	case key.Matches(msg, m.keys.Logs):
		m.logs.open = !m.logs.open
		if m.logs.open {
			return m, readLogCmd(m.logPath)
		}

	case key.Matches(msg, m.keys.Up):
		m.labels.move(-1, len(m.session.Toggles()))
	case key.Matches(msg, m.keys.Down):
		m.labels.move(1, len(m.session.Toggles()))
	case key.Matches(msg, m.keys.Toggle):
		m.labels.flip(m.session)
	case key.Matches(msg, m.keys.EnableAll):
		enableAll(m.session)

	case key.Matches(msg, m.keys.OrbitLeft):
		m.camera.Orbit(-OrbitStep, 0)
	case key.Matches(msg, m.keys.OrbitRight):
		m.camera.Orbit(OrbitStep, 0)
	case key.Matches(msg, m.keys.OrbitUp):
		m.camera.Orbit(0, OrbitStep)
	case key.Matches(msg, m.keys.OrbitDown):
		m.camera.Orbit(0, -OrbitStep)
	case key.Matches(msg, m.keys.ZoomIn):
		m.camera.ZoomBy(ZoomStep)
	case key.Matches(msg, m.keys.ZoomOut):
		m.camera.ZoomBy(-ZoomStep)
	case key.Matches(msg, m.keys.Reset):
		m.camera.Reset()
	}
	return m, nil
}

func (m Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	if err := prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name, Zoom: m.camera.Zoom}); err != nil {
		log.Printf("save prefs failed: %v", err)
	}
}

// handleTick schedules the periodic refreshes. The scene itself is redrawn
// by View after every message.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	if m.logs.open {
		if cmd := readLogCmd(m.logPath); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	cmds = append(cmds, tickCmd(m.redraw))
	return m, tea.Batch(cmds...)
}

func (m Model) renderMain() string {
	styles := m.theme.Styles()

	bodyHeight := m.height - 2
	if m.logs.open {
		bodyHeight -= logPaneHeight
	}
	bodyHeight = max(bodyHeight, 3)

	canvasWidth := max(m.width-labelPanelWidth, 1)
	cv := NewCanvas(canvasWidth, bodyHeight)
	p := painter{cv: cv, cam: m.camera}
	p.axes(m.theme)
	p.scene(m.scene)

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		cv.Render(),
		m.labels.render(m.session, styles, bodyHeight, true),
	)

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(body)
	if m.logs.open {
		b.WriteString("\n")
		b.WriteString(m.logs.render(styles, m.width))
	}
	b.WriteString("\n")
	b.WriteString(styles.Footer.Width(m.width).Render(m.help.ShortHelpView(m.keys.ShortHelp())))
	return b.String()
}

// renderHeader shows the connection state and session counters.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	snap := m.snapshot

	parts := []string{styles.Logo.Render("poseview")}
	switch {
	case m.streamDone:
		parts = append(parts, styles.MutedText.Render("STREAM ENDED"))
	case snap.Connected:
		parts = append(parts, styles.SuccessText.Render("● LIVE "+snap.Source))
	case snap.IsOffline():
		parts = append(parts, styles.DangerText.Render(fmt.Sprintf("OFFLINE (%d failures)", snap.ConsecutiveFailures)))
	case snap.LastError != nil:
		parts = append(parts, styles.WarningText.Render("RECONNECTING"))
	default:
		parts = append(parts, styles.WarningText.Render("CONNECTING"))
	}

	parts = append(parts,
		styles.Text.Render(fmt.Sprintf("%d samples", snap.Samples)),
		styles.MutedText.Render(fmt.Sprintf("%d labels", len(m.session.Toggles()))),
	)
	if snap.Rejected > 0 {
		parts = append(parts, styles.WarningText.Render(fmt.Sprintf("%d rejected", snap.Rejected)))
	}
	if !snap.LastSampleAt.IsZero() {
		parts = append(parts, styles.FaintText.Render("last "+snap.LastSampleAt.Format("15:04:05")))
	}
	parts = append(parts, styles.FaintText.Render(fmt.Sprintf("zoom %.2fx", m.camera.Zoom)))
	if snap.LastError != nil && !snap.Connected {
		parts = append(parts, styles.DangerText.Render(truncate(snap.LastError.Error(), 40)))
	}

	return styles.Header.Width(m.width).Render(bgJoin(parts, "  ", m.theme.Surface))
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

type sampleBatchMsg []pose.Sample

type streamClosedMsg struct{}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

// waitForSamples blocks for one sample, then drains whatever else is queued
// up to maxBatch.
func waitForSamples(ch <-chan pose.Sample) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		s, ok := <-ch
		if !ok {
			return streamClosedMsg{}
		}
		batch := sampleBatchMsg{s}
		for len(batch) < maxBatch {
			select {
			case s, ok := <-ch:
				if !ok {
					return batch
				}
				batch = append(batch, s)
			default:
				return batch
			}
		}
		return batch
	}
}

// Run starts the Bubble Tea program and blocks until it exits or the
// context is cancelled.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
		return nil
	}
	return err
}
