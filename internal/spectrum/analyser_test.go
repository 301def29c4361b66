package spectrum

import (
	"errors"
	"math"
	"testing"
)

func toneSamples(n, bin, fftSize int, amp float64) []int16 {
	out := make([]int16, n)
	for i := range out {
		out[i] = int16(amp * 32767 * math.Sin(2*math.Pi*float64(bin)*float64(i)/float64(fftSize)))
	}
	return out
}

func TestNewAnalyserRejectsInvalidConfig(t *testing.T) {
	if _, err := NewAnalyser(100, 0.8); !errors.Is(err, ErrInvalidFFTSize) {
		t.Fatalf("expected ErrInvalidFFTSize, got %v", err)
	}
	if _, err := NewAnalyser(16, 0.8); !errors.Is(err, ErrInvalidFFTSize) {
		t.Fatalf("expected ErrInvalidFFTSize for 16, got %v", err)
	}
	if _, err := NewAnalyser(256, 1.2); !errors.Is(err, ErrInvalidSmoothing) {
		t.Fatalf("expected ErrInvalidSmoothing, got %v", err)
	}
}

func TestFrequencyBinCountIsHalfFFTSize(t *testing.T) {
	a, err := NewAnalyser(256, 0.8)
	if err != nil {
		t.Fatalf("NewAnalyser: %v", err)
	}
	if got := a.FrequencyBinCount(); got != 128 {
		t.Fatalf("expected 128 bins, got %d", got)
	}
	if err := a.Configure(1024, 0.5); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	if got := a.FrequencyBinCount(); got != 512 {
		t.Fatalf("expected 512 bins after reconfigure, got %d", got)
	}
}

func TestSilenceReadsAllZero(t *testing.T) {
	a, _ := NewAnalyser(256, 0.8)
	a.Write(make([]int16, 512), 2)

	dst := make([]byte, a.FrequencyBinCount())
	a.ByteFrequencyData(dst)
	for i, v := range dst {
		if v != 0 {
			t.Fatalf("expected bin %d to be zero, got %d", i, v)
		}
	}
}

func TestCancellingStereoChannelsMixToSilence(t *testing.T) {
	a, _ := NewAnalyser(256, 0)
	tone := toneSamples(256, 8, 256, 0.5)
	stereo := make([]int16, 0, len(tone)*2)
	for _, s := range tone {
		stereo = append(stereo, s, -s)
	}
	a.Write(stereo, 2)

	dst := make([]byte, a.FrequencyBinCount())
	a.ByteFrequencyData(dst)
	for i, v := range dst {
		if v != 0 {
			t.Fatalf("expected bin %d to be zero, got %d", i, v)
		}
	}
}

func TestToneProducesPeakAtItsBin(t *testing.T) {
	a, _ := NewAnalyser(256, 0)
	a.Write(toneSamples(256, 8, 256, 0.5), 1)

	dst := make([]byte, a.FrequencyBinCount())
	a.ByteFrequencyData(dst)
	if dst[8] != 255 {
		t.Fatalf("expected tone bin to saturate at 255, got %d", dst[8])
	}
	if dst[100] >= 128 {
		t.Fatalf("expected distant bin to stay low, got %d", dst[100])
	}
}

func TestClearResetsToZero(t *testing.T) {
	a, _ := NewAnalyser(256, 0.8)
	a.Write(toneSamples(256, 8, 256, 0.5), 1)
	dst := make([]byte, a.FrequencyBinCount())
	a.ByteFrequencyData(dst)
	if dst[8] == 0 {
		t.Fatal("expected energy before clear")
	}

	a.Clear()
	a.ByteFrequencyData(dst)
	for i, v := range dst {
		if v != 0 {
			t.Fatalf("expected bin %d to be zero after clear, got %d", i, v)
		}
	}
}

func TestSmoothingDelaysDecay(t *testing.T) {
	a, _ := NewAnalyser(256, 0.8)
	dst := make([]byte, a.FrequencyBinCount())
	for range 20 {
		a.Write(toneSamples(256, 8, 256, 0.5), 1)
		a.ByteFrequencyData(dst)
	}
	a.Write(make([]int16, 256), 1)
	a.ByteFrequencyData(dst)
	if dst[8] == 0 {
		t.Fatal("expected smoothed magnitude to persist one frame after silence")
	}
}

func TestRingKeepsMostRecentSamples(t *testing.T) {
	r := newRing(4)
	for _, v := range []float64{1, 2, 3, 4, 5, 6} {
		r.push(v)
	}
	got := make([]float64, 4)
	r.latest(got)
	want := []float64{3, 4, 5, 6}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestRingPadsUnwrittenSlotsWithSilence(t *testing.T) {
	r := newRing(4)
	r.push(7)
	got := make([]float64, 4)
	r.latest(got)
	if got[0] != 0 || got[3] != 7 {
		t.Fatalf("expected [0 0 0 7], got %v", got)
	}
}
