// Package session ties the audio pipeline, the mapper and the scene together
// behind one object the UI drives.
package session

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/olivier-w/ripple/internal/config"
	"github.com/olivier-w/ripple/internal/envelope"
	"github.com/olivier-w/ripple/internal/frame"
	"github.com/olivier-w/ripple/internal/playback"
	"github.com/olivier-w/ripple/internal/scene"
	"github.com/olivier-w/ripple/internal/spectrum"
	"github.com/olivier-w/ripple/internal/visual"
)

// Session is the per-run state: one snapshot, one pair of envelopes, one
// scene and one playback controller.
type Session struct {
	analyser *spectrum.Analyser
	engine   playback.Engine
	control  *playback.Controller
	source   *spectrum.Source
	params   *visual.Params
	mapper   *visual.Mapper
	scene    *scene.Scene
	driver   *frame.Driver
	levels   envelope.Levels
	closed   bool
}

// New builds a session. analyser may be nil, in which case the sphere only
// reacts to silence.
func New(cfg *config.Config, engine playback.Engine, analyser *spectrum.Analyser, opts ...playback.Option) (*Session, error) {
	params, err := visual.NewParams(cfg.Sphere.Color, cfg.Sphere.NoiseFreq, cfg.Sphere.NoiseSpeed)
	if err != nil {
		return nil, err
	}

	var reader spectrum.Reader
	bins := cfg.Audio.FFTSize / 2
	if analyser != nil {
		reader = analyser
	}

	s := &Session{
		analyser: analyser,
		engine:   engine,
		control:  playback.New(engine, cfg.Audio.Volume, opts...),
		source:   spectrum.NewSource(reader, bins),
		params:   params,
		mapper:   visual.NewMapper(params),
		scene:    scene.New(cfg, params),
	}
	s.driver = frame.New(cfg.FPS, s)
	return s, nil
}

// Load swaps in the file at path, paused. A file that fails validation
// leaves playback and the frame loop as they were.
func (s *Session) Load(path string) error {
	if err := s.control.Check(path); err != nil {
		return err
	}
	s.driver.Stop()
	s.clearAnalyser()
	return s.control.Load(path)
}

// Play starts audio and, if that worked, the frame loop.
func (s *Session) Play() tea.Cmd {
	if !s.control.Play() {
		return nil
	}
	return s.driver.Start()
}

// Pause halts audio and the frame loop. The scene keeps its last pose.
func (s *Session) Pause() {
	s.control.Pause()
	s.clearAnalyser()
	s.driver.Stop()
}

// Toggle flips between Play and Pause.
func (s *Session) Toggle() tea.Cmd {
	if s.control.Playing() {
		s.Pause()
		return nil
	}
	return s.Play()
}

// Step runs one frame: refresh the snapshot, extract band levels, update the
// envelopes and uniforms, then advance the scene.
func (s *Session) Step(dt time.Duration) {
	snap := s.source.Refresh()
	s.levels = envelope.Extract(snap)
	out := s.mapper.Step(s.levels, dt)
	s.scene.Tick(dt, out)

	if f, ok := s.engine.(interface{ Finished() bool }); ok && f.Finished() {
		s.Pause()
	}
}

// HandleFrame forwards a frame tick to the driver.
func (s *Session) HandleFrame(msg frame.Msg) tea.Cmd {
	return s.driver.Handle(msg)
}

// Close ends the session and releases the media handle.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.driver.Stop()
	s.control.Close()
}

func (s *Session) clearAnalyser() {
	if s.analyser != nil {
		s.analyser.Clear()
	}
}

func (s *Session) Control() *playback.Controller { return s.control }
func (s *Session) Scene() *scene.Scene           { return s.scene }
func (s *Session) Params() *visual.Params        { return s.params }
func (s *Session) Snapshot() spectrum.Snapshot   { return s.source.Snapshot() }
func (s *Session) Levels() envelope.Levels       { return s.levels }
func (s *Session) Output() visual.Output         { return s.mapper.Output() }
func (s *Session) FrameState() frame.State       { return s.driver.State() }

func (s *Session) Envelopes() (bass, mids float64) { return s.mapper.Envelopes() }
