package ui

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/olivier-w/ripple/internal/envelope"
	"github.com/olivier-w/ripple/internal/frame"
	"github.com/olivier-w/ripple/internal/playback"
	"github.com/olivier-w/ripple/internal/render"
	"github.com/olivier-w/ripple/internal/session"
	"github.com/olivier-w/ripple/internal/util"
	"github.com/olivier-w/ripple/internal/visual"
)

const (
	volumeStep = 0.05
	orbitStep  = 0.15
	tiltStep   = 0.1
	zoomStep   = 1.1

	sliderWidth = 24
	// header, title, subtitle, status, progress, two sliders, help and spacing
	chromeLines = 13
	barsHeight  = 3
)

// Clock reports playback position for the progress line.
type Clock interface {
	Position() time.Duration
	Duration() time.Duration
}

type Options struct {
	Clock      Clock
	Dir        string // directory the file picker opens in
	WaterColor string
	FPS        int
	Debug      bool
}

// Model is the Bubbletea model for the ripple TUI.
type Model struct {
	session  *session.Session
	renderer *render.Renderer
	clock    Clock
	dir      string
	fps      int
	debug    bool

	picker *BrowserModel
	notice string

	freqBar  progress.Model
	speedBar progress.Model

	elapsed  time.Duration
	duration time.Duration
	width    int
	height   int
	quitting bool
}

func New(s *session.Session, opts Options) Model {
	dir := opts.Dir
	if dir == "" {
		dir = "."
	}
	fps := opts.FPS
	if fps < 1 {
		fps = 60
	}
	return Model{
		session:  s,
		renderer: render.New(opts.WaterColor),
		clock:    opts.Clock,
		dir:      dir,
		fps:      fps,
		debug:    opts.Debug,
		freqBar:  newSliderBar(sliderWidth),
		speedBar: newSliderBar(sliderWidth),
	}
}

// Open loads path into the session. Failures are shown as a notice.
func (m Model) Open(path string) Model {
	err := m.session.Load(path)
	if err == nil {
		m.notice = ""
		m.refreshClock()
		return m
	}
	log.Printf("load %s: %v", path, err)
	if errors.Is(err, playback.ErrNotAudio) {
		m.notice = playback.ErrNotAudio.Error()
	} else {
		m.notice = err.Error()
	}
	return m
}

// Notice returns the blocking message currently shown, if any.
func (m Model) Notice() string { return m.notice }

func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), tea.SetWindowTitle("ripple"))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frame.Msg:
		return m, m.session.HandleFrame(msg)

	case tickMsg:
		m.refreshClock()
		if m.session.FrameState() == frame.Idle {
			// keep camera easing alive between frames while paused
			for range m.fps / 5 {
				m.session.Scene().Camera.Update()
			}
		}
		return m, tickCmd()

	case BrowserSelectedMsg:
		m.picker = nil
		return m.Open(msg.Path), nil

	case BrowserCancelledMsg:
		m.picker = nil
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.picker != nil {
			p, _ := m.picker.Update(msg)
			m.picker = &p
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.picker != nil {
		p, cmd := m.picker.Update(msg)
		m.picker = &p
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m.quit()
	}

	if m.notice != "" {
		switch msg.String() {
		case "enter", "esc", " ":
			m.notice = ""
		}
		return m, nil
	}

	if m.picker != nil {
		p, cmd := m.picker.Update(msg)
		m.picker = &p
		return m, cmd
	}

	if isQuit(msg) {
		return m.quit()
	}

	params := m.session.Params()
	camera := m.session.Scene().Camera
	switch msg.String() {
	case "p":
		return m, m.session.Play()
	case "x":
		m.session.Pause()
	case " ":
		return m, m.session.Toggle()
	case "+", "=":
		m.session.Control().AdjustVolume(volumeStep)
	case "-", "_":
		m.session.Control().AdjustVolume(-volumeStep)
	case "o":
		p := NewBrowser(m.dir)
		if m.width > 0 && m.height > 0 {
			p, _ = p.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
		}
		m.picker = &p
	case "[":
		params.NudgeFrequency(-1)
	case "]":
		params.NudgeFrequency(1)
	case "{":
		params.NudgeSpeed(-1)
	case "}":
		params.NudgeSpeed(1)
	case "left", "h":
		camera.Orbit(-orbitStep, 0)
	case "right", "l":
		camera.Orbit(orbitStep, 0)
	case "up", "k":
		camera.Orbit(0, tiltStep)
	case "down", "j":
		camera.Orbit(0, -tiltStep)
	case ",":
		camera.Zoom(1 / zoomStep)
	case ".":
		camera.Zoom(zoomStep)
	}
	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.session.Close()
	return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)
}

func (m *Model) refreshClock() {
	if m.clock == nil {
		return
	}
	m.elapsed = m.clock.Position()
	m.duration = m.clock.Duration()
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.picker != nil {
		return m.picker.View()
	}

	w, h := m.width, m.height
	if w < 30 {
		w = 80
	}
	if h < chromeLines+4 {
		h = 24
	}

	if m.notice != "" {
		box := noticeStyle.Render(m.notice + "\n\n" + helpStyle.Render("enter to dismiss"))
		return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, box)
	}

	ctrl := m.session.Control()
	params := m.session.Params()

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + headerStyle.Render("ripple") + "\n")

	chrome := chromeLines
	if m.debug {
		chrome += barsHeight + 1
	}
	vizRows := max(h-chrome, 4)
	viz := m.renderer.Render(m.session.Scene(), w-4, vizRows)
	for _, line := range strings.Split(viz, "\n") {
		b.WriteString("  " + line + "\n")
	}
	b.WriteString("\n")

	title := ctrl.Name()
	if title == "" {
		title = "no file loaded, press o to open one"
	}
	b.WriteString("  " + titleStyle.Render(title) + "\n")
	b.WriteString("  " + artistStyle.Render(ctrl.Subtitle()) + "\n")

	status := ctrl.Status()
	if status == "" && ctrl.Loaded() {
		status = "paused"
	}
	vol := renderVolumePercent(ctrl.Volume())
	gap := w - lipgloss.Width(status) - len(vol) - 4
	b.WriteString("  " + statusStyle.Render(status) + spaces(max(gap, 2)) + statusStyle.Render(vol) + "\n")

	elapsedStr := util.FormatDuration(m.elapsed)
	durationStr := util.FormatDuration(m.duration)
	barWidth := max(w-len(elapsedStr)-len(durationStr)-6, 10)
	b.WriteString(fmt.Sprintf("  %s %s %s\n",
		timeStyle.Render(elapsedStr),
		renderProgressBar(m.elapsed.Seconds(), m.duration.Seconds(), barWidth),
		timeStyle.Render(durationStr),
	))
	b.WriteString("\n")

	b.WriteString("  " + renderSlider(m.freqBar, "frequency", visual.SliderFraction(params.Frequency), params.Frequency) + "\n")
	b.WriteString("  " + renderSlider(m.speedBar, "speed", visual.SliderFraction(params.Speed), params.Speed) + "\n")
	if m.debug {
		bass, mids := m.session.Envelopes()
		out := m.session.Output()
		b.WriteString("  " + helpStyle.Render(fmt.Sprintf(
			"bass %5.1f  mids %5.1f  scale %.2f  amp %.2f  %s",
			bass, mids, out.Scale, out.Amplitude, m.session.FrameState(),
		)) + "\n")
		snap := m.session.Snapshot()
		bassEnd, _ := envelope.Bounds(len(snap))
		bars := render.Bars(snap, w-4, barsHeight, bassEnd)
		for _, line := range strings.Split(bars, "\n") {
			b.WriteString("  " + barsStyle.Render(line) + "\n")
		}
	}
	b.WriteString("\n")
	b.WriteString("  " + helpStyle.Render(helpText(ctrl.Loaded())) + "\n")

	return b.String()
}
