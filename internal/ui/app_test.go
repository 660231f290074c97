package ui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/five82/poseview/internal/pose"
	"github.com/five82/poseview/internal/prefs"
	"github.com/five82/poseview/internal/render"
	"github.com/five82/poseview/internal/scene"
	"github.com/five82/poseview/internal/session"
)

func newTestModel(t *testing.T, prefsPath string) (Model, *session.Session) {
	t.Helper()
	sc := scene.New()
	factories, err := render.Factories([]string{"trail", "points"}, render.Options{PointInterval: 2, PointScale: 1})
	if err != nil {
		t.Fatalf("Factories: %v", err)
	}
	sess := session.New(session.Options{Surface: sc, Template: factories})
	m := New(Options{Scene: sc, Session: sess, ThemeName: "Nightfox", Zoom: 1, PrefsPath: prefsPath})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return next.(Model), sess
}

func samplesFor(label string, n int) sampleBatchMsg {
	var batch sampleBatchMsg
	for i := 0; i < n; i++ {
		p := r3.Vec{X: float64(i) * 0.1}
		q := pose.Identity
		batch = append(batch, pose.Sample{Label: label, SequentialID: int64(i + 1), Position: &p, Rotation: &q})
	}
	return batch
}

func press(t *testing.T, m Model, k tea.KeyMsg) Model {
	t.Helper()
	next, _ := m.Update(k)
	return next.(Model)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_SampleBatchProvisionsLabel(t *testing.T) {
	m, sess := newTestModel(t, "")
	next, cmd := m.Update(samplesFor("pose-a", 4))
	m = next.(Model)
	if cmd != nil {
		t.Fatalf("Update(batch) cmd = non-nil without a sample channel")
	}

	toggles := sess.Toggles()
	if len(toggles) != 1 || toggles[0].Label != "pose-a" || toggles[0].Active {
		t.Fatalf("Toggles = %+v, want one inactive pose-a", toggles)
	}
	if got := sess.SampleCount("pose-a"); got != 4 {
		t.Fatalf("SampleCount = %d, want 4", got)
	}
	if !strings.Contains(m.View(), "pose-a") {
		t.Fatalf("View does not list pose-a")
	}
}

func TestModel_ToggleKeyActivatesAndReplays(t *testing.T) {
	m, sess := newTestModel(t, "")
	next, _ := m.Update(samplesFor("pose-a", 4))
	m = next.(Model)

	m = press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	set, ok := sess.Renderables("pose-a")
	if !ok {
		t.Fatalf("pose-a not active after toggle")
	}
	trail := set[0].(*render.Trail)
	if got := len(trail.Points()); got != 4 {
		t.Fatalf("trail has %d points after replay, want 4", got)
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	if got := sess.Toggles()[0]; !got.Active || got.Enabled {
		t.Fatalf("toggle after second press = %+v, want active and off", got)
	}
	_ = m
}

func TestModel_EnableAll(t *testing.T) {
	m, sess := newTestModel(t, "")
	next, _ := m.Update(samplesFor("pose-a", 2))
	m = next.(Model)
	next, _ = m.Update(samplesFor("pose-b", 2))
	m = next.(Model)

	press(t, m, runes("A"))
	for _, tg := range sess.Toggles() {
		if !tg.Active || !tg.Enabled {
			t.Fatalf("toggle %+v not enabled", tg)
		}
	}
}

func TestModel_CameraKeys(t *testing.T) {
	m, _ := newTestModel(t, "")
	m = press(t, m, runes("+"))
	if m.camera.Zoom != 1+ZoomStep {
		t.Fatalf("Zoom = %v, want %v", m.camera.Zoom, 1+ZoomStep)
	}
	yaw := m.camera.Yaw
	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if m.camera.Yaw <= yaw {
		t.Fatalf("Yaw = %v, want more than %v", m.camera.Yaw, yaw)
	}
	m = press(t, m, runes("r"))
	if m.camera.Yaw != DefaultYaw || m.camera.Zoom != 1+ZoomStep {
		t.Fatalf("camera after reset = %+v", m.camera)
	}
}

func TestModel_ThemeCycleSavesPrefs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	m, _ := newTestModel(t, path)
	m = press(t, m, runes("T"))
	if m.theme.Name != "Kanagawa" {
		t.Fatalf("theme = %q, want Kanagawa", m.theme.Name)
	}
	p, err := prefs.Load(path)
	if err != nil {
		t.Fatalf("prefs.Load: %v", err)
	}
	if p.Theme != "Kanagawa" || p.Zoom != 1 {
		t.Fatalf("saved prefs = %+v", p)
	}
}

func TestModel_QuitAndHelp(t *testing.T) {
	m, _ := newTestModel(t, "")
	m = press(t, m, runes("?"))
	if !m.showHelp || !strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Fatalf("help overlay not shown")
	}
	m = press(t, m, runes("x"))
	if m.showHelp {
		t.Fatalf("help overlay still shown after a key")
	}

	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatalf("quit returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("quit command did not quit")
	}
}

func TestModel_StreamClosedShownInHeader(t *testing.T) {
	m, _ := newTestModel(t, "")
	next, _ := m.Update(streamClosedMsg{})
	m = next.(Model)
	if !strings.Contains(m.View(), "STREAM ENDED") {
		t.Fatalf("header does not report the closed stream")
	}
}

func TestWaitForSamples_DrainsThenReportsClose(t *testing.T) {
	ch := make(chan pose.Sample, 3)
	for _, s := range samplesFor("pose-a", 3) {
		ch <- s
	}
	close(ch)

	batch, ok := waitForSamples(ch)().(sampleBatchMsg)
	if !ok || len(batch) != 3 {
		t.Fatalf("first message = %v, want a batch of 3", batch)
	}
	if _, ok := waitForSamples(ch)().(streamClosedMsg); !ok {
		t.Fatalf("second message is not streamClosedMsg")
	}
	if waitForSamples(nil) != nil {
		t.Fatalf("waitForSamples(nil) returned a command")
	}
}
