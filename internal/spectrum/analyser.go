package spectrum

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
	"sync"

	"gonum.org/v1/gonum/dsp/fourier"
)

const (
	minFFTSize = 32
	maxFFTSize = 32768

	// Decibel window mapped onto 0..255, as an HTML5 AnalyserNode does by default.
	minDecibels = -100.0
	maxDecibels = -30.0

	blackmanAlpha = 0.16
)

var (
	ErrInvalidFFTSize   = errors.New("spectrum: fft size must be a power of two between 32 and 32768")
	ErrInvalidSmoothing = errors.New("spectrum: smoothing time constant must be between 0 and 1")
)

// Analyser turns the most recent PCM written by the audio goroutine into
// byte frequency magnitudes. It is safe for one writer and one reader.
type Analyser struct {
	mu        sync.Mutex
	fftSize   int
	smoothing float64
	fft       *fourier.FFT
	ring      *ring
	window    []float64
	frame     []float64
	coeffs    []complex128
	smoothed  []float64
}

// NewAnalyser creates an analyser for the given FFT size and smoothing
// time constant.
func NewAnalyser(fftSize int, smoothing float64) (*Analyser, error) {
	a := &Analyser{}
	if err := a.Configure(fftSize, smoothing); err != nil {
		return nil, err
	}
	return a, nil
}

// Configure resizes the analysis window. Buffered audio and smoothing state
// are discarded.
func (a *Analyser) Configure(fftSize int, smoothing float64) error {
	if fftSize < minFFTSize || fftSize > maxFFTSize || fftSize&(fftSize-1) != 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidFFTSize, fftSize)
	}
	if smoothing < 0 || smoothing > 1 || math.IsNaN(smoothing) {
		return fmt.Errorf("%w: got %g", ErrInvalidSmoothing, smoothing)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.fftSize = fftSize
	a.smoothing = smoothing
	a.fft = fourier.NewFFT(fftSize)
	a.ring = newRing(fftSize)
	a.window = blackman(fftSize)
	a.frame = make([]float64, fftSize)
	a.coeffs = make([]complex128, fftSize/2+1)
	a.smoothed = make([]float64, fftSize/2)
	return nil
}

// FFTSize returns the configured transform length.
func (a *Analyser) FFTSize() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.fftSize
}

// FrequencyBinCount returns half the FFT size.
func (a *Analyser) FrequencyBinCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.fftSize / 2
}

// Write mixes interleaved 16-bit PCM down to mono and appends it to the
// analysis window.
func (a *Analyser) Write(samples []int16, channels int) {
	if channels < 1 {
		channels = 1
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	for i := 0; i+channels <= len(samples); i += channels {
		var sum float64
		for ch := range channels {
			sum += float64(samples[i+ch])
		}
		a.ring.push(sum / float64(channels) / 32768.0)
	}
}

// ByteFrequencyData fills dst with the current magnitudes scaled to 0..255.
// Bins beyond the analyser's bin count are zeroed.
func (a *Analyser) ByteFrequencyData(dst []byte) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.ring.latest(a.frame)
	for i := range a.frame {
		a.frame[i] *= a.window[i]
	}
	a.coeffs = a.fft.Coefficients(a.coeffs, a.frame)

	bins := len(a.smoothed)
	scale := 1.0 / float64(a.fftSize)
	for k := range bins {
		mag := cmplx.Abs(a.coeffs[k]) * scale
		a.smoothed[k] = a.smoothing*a.smoothed[k] + (1-a.smoothing)*mag
	}

	for k := range dst {
		if k >= bins {
			dst[k] = 0
			continue
		}
		dst[k] = toByte(a.smoothed[k])
	}
}

// Clear drops buffered audio and smoothing history so every bin reads zero.
func (a *Analyser) Clear() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.ring.clear()
	clear(a.smoothed)
}

func toByte(mag float64) byte {
	if mag <= 0 {
		return 0
	}
	db := 20 * math.Log10(mag)
	v := 255 * (db - minDecibels) / (maxDecibels - minDecibels)
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return byte(v)
}

func blackman(n int) []float64 {
	a0 := (1 - blackmanAlpha) / 2
	a1 := 0.5
	a2 := blackmanAlpha / 2
	w := make([]float64, n)
	for i := range w {
		x := float64(i) / float64(n)
		w[i] = a0 - a1*math.Cos(2*math.Pi*x) + a2*math.Cos(4*math.Pi*x)
	}
	return w
}
