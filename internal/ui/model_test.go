package ui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/olivier-w/ripple/internal/config"
	"github.com/olivier-w/ripple/internal/frame"
	"github.com/olivier-w/ripple/internal/playback"
	"github.com/olivier-w/ripple/internal/session"
)

type stubHandle struct {
	name     string
	released int
}

func (h *stubHandle) Name() string   { return h.name }
func (h *stubHandle) Release() error { h.released++; return nil }

type stubEngine struct {
	handles []*stubHandle
	volume  float64
}

func (e *stubEngine) Open(path string) (playback.Handle, error) {
	h := &stubHandle{name: path}
	e.handles = append(e.handles, h)
	return h, nil
}

func (e *stubEngine) Load(playback.Handle) error { return nil }
func (e *stubEngine) Play() error                { return nil }
func (e *stubEngine) Pause()                     {}
func (e *stubEngine) SetVolume(v float64)        { e.volume = v }

func newTestModel(t *testing.T, mediaType string) (Model, *stubEngine) {
	t.Helper()
	eng := &stubEngine{}
	detect := playback.WithDetector(func(string) (string, error) { return mediaType, nil })
	s, err := session.New(config.DefaultConfig(), eng, nil, detect)
	if err != nil {
		t.Fatalf("session.New: %v", err)
	}
	m := New(s, Options{})
	m.width, m.height = 100, 40
	return m, eng
}

func press(t *testing.T, m Model, key string) (Model, tea.Cmd) {
	t.Helper()
	var msg tea.KeyMsg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case " ":
		msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func TestOpenNonAudioShowsBlockingNotice(t *testing.T) {
	m, eng := newTestModel(t, "text/plain")
	m = m.Open("notes.txt")

	if m.Notice() != "Please choose an audio file (mp3, wav, ogg, etc.)" {
		t.Fatalf("unexpected notice %q", m.Notice())
	}
	if len(eng.handles) != 0 {
		t.Fatal("non-audio file must not reach the engine")
	}
	if !strings.Contains(m.View(), "Please choose an audio file") {
		t.Fatal("expected notice in view")
	}

	m, cmd := press(t, m, "p")
	if cmd != nil || m.session.FrameState() != frame.Idle {
		t.Fatal("keys other than dismiss must be swallowed while the notice is up")
	}
	m, _ = press(t, m, "enter")
	if m.Notice() != "" {
		t.Fatal("expected enter to dismiss the notice")
	}
}

func TestPlayAndPauseKeysDriveFrames(t *testing.T) {
	m, _ := newTestModel(t, "audio/mpeg")
	m = m.Open("song.mp3")

	m, cmd := press(t, m, "p")
	if cmd == nil {
		t.Fatal("expected play to schedule a frame")
	}
	if m.session.FrameState() != frame.Running {
		t.Fatal("expected running frames")
	}
	if !strings.Contains(m.View(), "now playing: song.mp3") {
		t.Fatal("expected now playing status in view")
	}

	m, _ = press(t, m, "x")
	if m.session.FrameState() != frame.Idle {
		t.Fatal("expected pause to stop frames")
	}
	if m.session.Control().Status() != "" {
		t.Fatalf("expected empty status after pause, got %q", m.session.Control().Status())
	}

	m, cmd = press(t, m, " ")
	if cmd == nil || !m.session.Control().Playing() {
		t.Fatal("expected space to resume")
	}
}

func TestVolumeKeysClamp(t *testing.T) {
	m, eng := newTestModel(t, "audio/mpeg")
	for range 10 {
		m, _ = press(t, m, "+")
	}
	if eng.volume != 1 {
		t.Fatalf("expected volume clamped to 1, got %v", eng.volume)
	}
	m, _ = press(t, m, "-")
	if got := m.session.Control().Volume(); got < 0.949 || got > 0.951 {
		t.Fatalf("expected volume 0.95, got %v", got)
	}
}

func TestSliderKeysNudgeParams(t *testing.T) {
	m, _ := newTestModel(t, "audio/mpeg")
	p := m.session.Params()

	m, _ = press(t, m, "]")
	m, _ = press(t, m, "{")
	if p.Frequency != 0.91 {
		t.Fatalf("expected frequency 0.91, got %v", p.Frequency)
	}
	if p.Speed != 1.09 {
		t.Fatalf("expected speed 1.09, got %v", p.Speed)
	}
	if !strings.Contains(m.View(), "0.91") {
		t.Fatal("expected slider value in view")
	}
}

func TestPickerSelectionLoadsFile(t *testing.T) {
	m, eng := newTestModel(t, "audio/wav")
	m.dir = tempDirWith(t, map[string]string{"tone.wav": "data"})

	m, _ = press(t, m, "o")
	if m.picker == nil {
		t.Fatal("expected picker to open")
	}
	m, cmd := press(t, m, "enter")
	if cmd == nil {
		t.Fatal("expected selection command")
	}
	next, _ := m.Update(cmd())
	m = next.(Model)

	if m.picker != nil {
		t.Fatal("expected picker to close after selection")
	}
	if len(eng.handles) != 1 || !strings.HasSuffix(eng.handles[0].name, "tone.wav") {
		t.Fatalf("expected tone.wav to be opened, got %+v", eng.handles)
	}
	if !strings.HasPrefix(m.session.Control().Status(), "ready: ") {
		t.Fatalf("expected ready status, got %q", m.session.Control().Status())
	}
}

func TestStaleFrameAfterPauseIsDropped(t *testing.T) {
	m, _ := newTestModel(t, "audio/mpeg")
	m = m.Open("song.mp3")
	m, cmd := press(t, m, "p")
	msg := cmd()
	m, _ = press(t, m, "x")

	next, cmd := m.Update(msg)
	if cmd != nil {
		t.Fatal("expected stale frame to schedule nothing")
	}
	if next.(Model).session.Scene().Elapsed() != 0 {
		t.Fatal("expected stale frame not to advance the scene")
	}
}

func TestQuitClosesSession(t *testing.T) {
	m, eng := newTestModel(t, "audio/mpeg")
	m = m.Open("song.mp3")
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if next.(Model).View() != "" {
		t.Fatal("expected empty view after quit")
	}
	if eng.handles[0].released != 1 {
		t.Fatal("expected handle released on quit")
	}
}

func TestViewWithoutFile(t *testing.T) {
	m, _ := newTestModel(t, "audio/mpeg")
	m.clock = fixedClock{pos: 61 * time.Second, dur: 3 * time.Minute}
	m.refreshClock()
	view := m.View()
	for _, want := range []string{"ripple", "no file loaded", "1:01", "3:00", "frequency", "speed"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected view to contain %q", want)
		}
	}
}

type fixedClock struct {
	pos, dur time.Duration
}

func (c fixedClock) Position() time.Duration { return c.pos }
func (c fixedClock) Duration() time.Duration { return c.dur }

func TestDebugViewShowsEnvelopeReadout(t *testing.T) {
	m, _ := newTestModel(t, "audio/mpeg")
	m.debug = true
	view := m.View()
	if !strings.Contains(view, "bass") || !strings.Contains(view, "idle") {
		t.Fatal("expected envelope readout and frame state in debug view")
	}
}
