package player

import (
	"encoding/binary"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"
)

type stubDecoder struct {
	data       []byte
	sampleRate int
	channels   int
}

func (d *stubDecoder) Read(p []byte) (int, error) {
	if len(d.data) == 0 {
		return 0, io.EOF
	}
	n := copy(p, d.data)
	d.data = d.data[n:]
	return n, nil
}

func (d *stubDecoder) Length() int64     { return int64(len(d.data)) }
func (d *stubDecoder) SampleRate() int   { return d.sampleRate }
func (d *stubDecoder) ChannelCount() int { return d.channels }

type recordingSink struct {
	samples  int
	channels int
}

func (s *recordingSink) Write(samples []int16, channels int) {
	s.samples += len(samples)
	s.channels = channels
}

func pcm16(values ...int16) []byte {
	b := make([]byte, len(values)*2)
	for i, v := range values {
		binary.LittleEndian.PutUint16(b[i*2:], uint16(v))
	}
	return b
}

// writeWAV writes a minimal 16-bit PCM RIFF file.
func writeWAV(t *testing.T, path string, rate, channels int, samples []int16) {
	t.Helper()
	data := pcm16(samples...)
	hdr := make([]byte, 44)
	copy(hdr[0:], "RIFF")
	binary.LittleEndian.PutUint32(hdr[4:], uint32(36+len(data)))
	copy(hdr[8:], "WAVE")
	copy(hdr[12:], "fmt ")
	binary.LittleEndian.PutUint32(hdr[16:], 16)
	binary.LittleEndian.PutUint16(hdr[20:], 1)
	binary.LittleEndian.PutUint16(hdr[22:], uint16(channels))
	binary.LittleEndian.PutUint32(hdr[24:], uint32(rate))
	binary.LittleEndian.PutUint32(hdr[28:], uint32(rate*channels*2))
	binary.LittleEndian.PutUint16(hdr[32:], uint16(channels*2))
	binary.LittleEndian.PutUint16(hdr[34:], 16)
	copy(hdr[36:], "data")
	binary.LittleEndian.PutUint32(hdr[40:], uint32(len(data)))
	if err := os.WriteFile(path, append(hdr, data...), 0o644); err != nil {
		t.Fatalf("write wav: %v", err)
	}
}

func TestResamplerPassesThroughOutputFormat(t *testing.T) {
	dec := &stubDecoder{data: pcm16(1, 2, 3, 4), sampleRate: outputRate, channels: outputChannels}
	r, err := newResampler(dec)
	if err != nil {
		t.Fatalf("newResampler: %v", err)
	}
	if r != io.Reader(dec) {
		t.Fatal("expected decoder at output format to pass through unchanged")
	}
}

func TestResamplerDuplicatesMonoAndDoublesRate(t *testing.T) {
	dec := &stubDecoder{data: pcm16(0, 1000, 2000, 3000), sampleRate: outputRate / 2, channels: 1}
	r, err := newResampler(dec)
	if err != nil {
		t.Fatalf("newResampler: %v", err)
	}
	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	frames := len(out) / outputFrameSize
	if frames < 7 || frames > 8 {
		t.Fatalf("expected about 8 output frames for 4 mono frames at half rate, got %d", frames)
	}
	for i := range frames {
		left := int16(binary.LittleEndian.Uint16(out[i*4:]))
		right := int16(binary.LittleEndian.Uint16(out[i*4+2:]))
		if left != right {
			t.Fatalf("frame %d: expected mono duplicated to both channels, got %d/%d", i, left, right)
		}
	}
	if got := int16(binary.LittleEndian.Uint16(out[4:])); got != 500 {
		t.Fatalf("expected interpolated second frame 500, got %d", got)
	}
}

func TestResamplerRejectsZeroRate(t *testing.T) {
	_, err := newResampler(&stubDecoder{channels: 2})
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestTapCopiesSamplesAndCountsBytes(t *testing.T) {
	sink := &recordingSink{}
	tp := newTap(&stubDecoder{data: pcm16(1, 2, 3, 4, 5, 6)}, sink)
	buf := make([]byte, 8)
	n, err := tp.Read(buf)
	if err != nil || n != 8 {
		t.Fatalf("read: n=%d err=%v", n, err)
	}
	if sink.samples != 4 || sink.channels != outputChannels {
		t.Fatalf("expected 4 samples across %d channels, got %d/%d", outputChannels, sink.samples, sink.channels)
	}
	if tp.Pos() != 8 {
		t.Fatalf("expected position 8, got %d", tp.Pos())
	}
}

func TestOpenWAVTrack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tone.wav")
	writeWAV(t, path, 22050, 1, make([]int16, 22050))

	tr, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if tr.Name() != "tone.wav" {
		t.Fatalf("expected name tone.wav, got %q", tr.Name())
	}
	if tr.Duration() != time.Second {
		t.Fatalf("expected 1s duration, got %v", tr.Duration())
	}
	if tr.Metadata().Title != "tone" {
		t.Fatalf("expected title fallback to file stem, got %q", tr.Metadata().Title)
	}
	if err := tr.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if err := tr.Release(); err != nil {
		t.Fatalf("second Release should be a no-op, got %v", err)
	}
}

func TestOpenRejectsUnknownExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Open(path); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestEngineWithoutTrack(t *testing.T) {
	e := NewEngine(nil, 2)
	if e.Volume() != 1 {
		t.Fatalf("expected volume clamped to 1, got %v", e.Volume())
	}
	if err := e.Play(); !errors.Is(err, ErrNoTrack) {
		t.Fatalf("expected ErrNoTrack, got %v", err)
	}
	e.Pause()
	if e.Playing() || e.Finished() {
		t.Fatal("idle engine should be neither playing nor finished")
	}
	if e.Position() != 0 || e.Duration() != 0 {
		t.Fatal("idle engine should report zero position and duration")
	}
}

func TestEngineLoadResetsState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.wav")
	writeWAV(t, path, outputRate, 2, make([]int16, 400))
	tr, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer tr.Release()

	e := NewEngine(nil, 0.5)
	if err := e.Load(tr); err != nil {
		t.Fatalf("Load: %v", err)
	}
	e.SetVolume(-1)
	if e.Volume() != 0 {
		t.Fatalf("expected volume clamped to 0, got %v", e.Volume())
	}
	if e.Position() != 0 {
		t.Fatalf("expected fresh track at position 0, got %v", e.Position())
	}
	e.Close()
	e.Close()
	if err := e.Play(); !errors.Is(err, ErrNoTrack) {
		t.Fatalf("expected closed engine to refuse Play, got %v", err)
	}
}
