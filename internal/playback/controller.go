// Package playback owns the one media handle a session may hold at a time
// and validates files before they reach the audio engine.
package playback

import (
	"errors"
	"fmt"
	"log"

	"github.com/olivier-w/ripple/internal/media"
)

// ErrNotAudio is returned by Load when the chosen file is not audio. Its
// text is shown to the user as is.
var ErrNotAudio = errors.New("Please choose an audio file (mp3, wav, ogg, etc.)")

// ErrClosed is returned by Load after Close.
var ErrClosed = errors.New("playback closed")

// Handle is an opened media source. Release frees it and must tolerate
// being called more than once.
type Handle interface {
	Name() string
	Release() error
}

// Engine is the audio output the controller drives.
type Engine interface {
	Open(path string) (Handle, error)
	Load(h Handle) error
	Play() error
	Pause()
	SetVolume(v float64)
}

// Detector reports a file's media type.
type Detector func(path string) (string, error)

type Option func(*Controller)

// WithDetector replaces content sniffing, mainly for tests.
func WithDetector(d Detector) Option {
	return func(c *Controller) { c.detect = d }
}

// Controller tracks the current handle, the play state and the status line.
type Controller struct {
	engine   Engine
	detect   Detector
	handle   Handle
	name     string
	subtitle string
	status   string
	volume   float64
	playing  bool
	closed   bool
}

// New returns a controller driving engine at the given volume.
func New(engine Engine, volume float64, opts ...Option) *Controller {
	c := &Controller{
		engine: engine,
		detect: media.DetectType,
		volume: clamp(volume),
	}
	for _, opt := range opts {
		opt(c)
	}
	engine.SetVolume(c.volume)
	return c
}

// Load validates path, stops current playback, releases the previous handle
// and loads the new file paused.
func (c *Controller) Load(path string) error {
	if c.closed {
		return ErrClosed
	}

	if err := c.Check(path); err != nil {
		return err
	}

	c.Pause()
	c.release()

	h, err := c.engine.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	if err := c.engine.Load(h); err != nil {
		if rerr := h.Release(); rerr != nil {
			log.Printf("playback: release %s: %v", h.Name(), rerr)
		}
		return err
	}

	c.handle = h
	c.name = h.Name()
	c.subtitle = ""
	if s, ok := h.(interface{ Subtitle() string }); ok {
		c.subtitle = s.Subtitle()
	}
	c.status = "ready: " + c.name
	return nil
}

// Check reports whether path can be loaded without touching the current
// track. Non-audio content yields ErrNotAudio.
func (c *Controller) Check(path string) error {
	typ, err := c.detect(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if !media.IsAudioType(typ) {
		return fmt.Errorf("%w: got %s", ErrNotAudio, typ)
	}
	return nil
}

// Play starts the loaded file. Failures are logged and reported as false;
// the caller keeps running either way.
func (c *Controller) Play() bool {
	if c.closed || c.handle == nil {
		return false
	}
	if err := c.engine.Play(); err != nil {
		log.Printf("playback: play %s: %v", c.name, err)
		return false
	}
	c.playing = true
	c.status = "now playing: " + c.name
	return true
}

// Pause is safe to call in any state.
func (c *Controller) Pause() {
	if c.closed {
		return
	}
	c.engine.Pause()
	c.playing = false
	c.status = ""
}

// SetVolume sets volume (clamped to 0.0 - 1.0).
func (c *Controller) SetVolume(v float64) {
	c.volume = clamp(v)
	c.engine.SetVolume(c.volume)
}

func (c *Controller) AdjustVolume(delta float64) {
	c.SetVolume(c.volume + delta)
}

func (c *Controller) Volume() float64  { return c.volume }
func (c *Controller) Playing() bool    { return c.playing }
func (c *Controller) Loaded() bool     { return c.handle != nil }
func (c *Controller) Name() string     { return c.name }
func (c *Controller) Subtitle() string { return c.subtitle }
func (c *Controller) Status() string   { return c.status }

// Close stops playback and releases the handle. Later calls do nothing.
func (c *Controller) Close() {
	if c.closed {
		return
	}
	c.engine.Pause()
	c.playing = false
	c.release()
	c.closed = true
}

func (c *Controller) release() {
	if c.handle == nil {
		return
	}
	if err := c.handle.Release(); err != nil {
		log.Printf("playback: release %s: %v", c.name, err)
	}
	c.handle = nil
	c.name = ""
	c.subtitle = ""
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
