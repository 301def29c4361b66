package player

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

const bytesPerSec = outputRate * outputFrameSize

var (
	ErrUnsupportedFormat = errors.New("unsupported audio format")
	ErrNoTrack           = errors.New("no track loaded")
)

var (
	globalOtoCtx *oto.Context
	otoOnce      sync.Once
	otoInitErr   error
)

func initOto() (*oto.Context, error) {
	otoOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   outputRate,
			ChannelCount: outputChannels,
			Format:       oto.FormatSignedInt16LE,
		}
		var ready chan struct{}
		globalOtoCtx, ready, otoInitErr = oto.NewContext(op)
		if otoInitErr == nil {
			<-ready
		}
	})
	return globalOtoCtx, otoInitErr
}

// Engine plays one Track at a time through the shared oto context and
// mirrors the PCM it plays into a Sink.
type Engine struct {
	mu        sync.Mutex
	sink      Sink
	volume    float64
	track     *Track
	tap       *tap
	otoPlayer *oto.Player
	playing   bool
	closed    bool
}

// NewEngine creates an engine. The audio device is opened lazily on the
// first Play.
func NewEngine(sink Sink, volume float64) *Engine {
	return &Engine{sink: sink, volume: clampVolume(volume)}
}

// Load makes t the current source, stopping whatever was playing. The engine
// does not take ownership of t; callers release it.
func (e *Engine) Load(t *Track) error {
	if t == nil {
		return ErrNoTrack
	}
	src, err := newResampler(t.dec)
	if err != nil {
		return fmt.Errorf("loading %s: %w", t.Name(), err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.stopLocked()
	e.track = t
	e.tap = newTap(src, e.sink)
	return nil
}

// Play starts or resumes the loaded track.
func (e *Engine) Play() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed || e.tap == nil {
		return ErrNoTrack
	}
	if e.otoPlayer == nil {
		ctx, err := initOto()
		if err != nil {
			return fmt.Errorf("opening audio device: %w", err)
		}
		e.otoPlayer = ctx.NewPlayer(e.tap)
		e.otoPlayer.SetVolume(e.volume)
	}
	e.otoPlayer.Play()
	e.playing = true
	return nil
}

// Pause suspends output. Calling it while paused is a no-op.
func (e *Engine) Pause() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.otoPlayer != nil {
		e.otoPlayer.Pause()
	}
	e.playing = false
}

func (e *Engine) Playing() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.playing
}

// Volume returns current volume (0.0 to 1.0).
func (e *Engine) Volume() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.volume
}

// SetVolume sets volume (clamped to 0.0 - 1.0).
func (e *Engine) SetVolume(v float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.volume = clampVolume(v)
	if e.otoPlayer != nil {
		e.otoPlayer.SetVolume(e.volume)
	}
}

// Position returns how much of the track has reached the speakers.
func (e *Engine) Position() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.tap == nil {
		return 0
	}
	pos := e.tap.Pos()
	if e.otoPlayer != nil {
		pos -= int64(e.otoPlayer.BufferedSize())
	}
	if pos < 0 {
		pos = 0
	}
	return time.Duration(float64(pos) / bytesPerSec * float64(time.Second))
}

// Duration returns the loaded track's length, or 0 when unknown.
func (e *Engine) Duration() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.track == nil {
		return 0
	}
	return e.track.Duration()
}

// Finished reports whether the loaded track played through to the end.
func (e *Engine) Finished() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.playing && e.otoPlayer != nil && !e.otoPlayer.IsPlaying()
}

// Close stops playback. The current track is left for its owner to release.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.closed = true
	e.stopLocked()
}

func (e *Engine) stopLocked() {
	if e.otoPlayer != nil {
		e.otoPlayer.Pause()
		e.otoPlayer.Close()
		e.otoPlayer = nil
	}
	e.track = nil
	e.tap = nil
	e.playing = false
}

func clampVolume(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
