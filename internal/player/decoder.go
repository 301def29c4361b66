package player

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"
	"github.com/mewkiz/flac"
)

// pcmDecoder produces interleaved signed 16-bit little-endian PCM at the
// source's own sample rate and channel count.
type pcmDecoder interface {
	io.Reader
	Length() int64 // total PCM bytes, or -1 when unknown
	SampleRate() int
	ChannelCount() int
}

// newDecoder picks a decoder by file extension. Content validation happens
// earlier, in the media package.
func newDecoder(f *os.File) (pcmDecoder, error) {
	ext := strings.ToLower(filepath.Ext(f.Name()))
	switch ext {
	case ".mp3":
		return newMP3Decoder(f)
	case ".wav", ".wave":
		return newWAVDecoder(f)
	case ".flac":
		return newFLACDecoder(f)
	case ".ogg", ".oga":
		return newOGGDecoder(f)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
}

// pending holds converted PCM that did not fit the caller's buffer.
type pending struct {
	buf []byte
}

func (p *pending) drain(dst []byte) int {
	n := copy(dst, p.buf)
	p.buf = p.buf[n:]
	return n
}

func (p *pending) emit(dst, raw []byte) int {
	n := copy(dst, raw)
	if n < len(raw) {
		p.buf = raw[n:]
	}
	return n
}

func clamp16(v int) int16 {
	if v > 32767 {
		return 32767
	}
	if v < -32768 {
		return -32768
	}
	return int16(v)
}

// --- mp3 ---

type mp3Decoder struct {
	dec *mp3.Decoder
}

func newMP3Decoder(f *os.File) (*mp3Decoder, error) {
	dec, err := mp3.NewDecoder(f)
	if err != nil {
		return nil, fmt.Errorf("decoding MP3: %w", err)
	}
	return &mp3Decoder{dec: dec}, nil
}

func (d *mp3Decoder) Read(p []byte) (int, error) { return d.dec.Read(p) }
func (d *mp3Decoder) Length() int64              { return d.dec.Length() }
func (d *mp3Decoder) SampleRate() int            { return d.dec.SampleRate() }

// go-mp3 always decodes to stereo.
func (d *mp3Decoder) ChannelCount() int { return 2 }

// --- wav ---

type wavDecoder struct {
	r        io.Reader
	pending  pending
	length   int64
	rate     int
	channels int
	bitDepth int
	srcBuf   []byte
}

func newWAVDecoder(f *os.File) (*wavDecoder, error) {
	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("invalid WAV file")
	}
	if err := dec.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("reading WAV PCM data: %w", err)
	}

	bitDepth := int(dec.BitDepth)
	switch bitDepth {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d-bit WAV", ErrUnsupportedFormat, bitDepth)
	}
	channels := int(dec.NumChans)
	if channels < 1 {
		return nil, fmt.Errorf("invalid WAV channel count: %d", channels)
	}
	srcFrame := int64(channels * bitDepth / 8)
	frames := dec.PCMLen() / srcFrame

	// FwdToPCM leaves the file positioned at the first sample.
	return &wavDecoder{
		r:        io.LimitReader(f, frames*srcFrame),
		length:   frames * int64(channels) * 2,
		rate:     int(dec.SampleRate),
		channels: channels,
		bitDepth: bitDepth,
	}, nil
}

func (d *wavDecoder) Read(p []byte) (int, error) {
	if len(d.pending.buf) > 0 {
		return d.pending.drain(p), nil
	}

	width := d.bitDepth / 8
	samples := max(len(p)/2, 1)
	if cap(d.srcBuf) < samples*width {
		d.srcBuf = make([]byte, samples*width)
	}
	src := d.srcBuf[:samples*width]
	n, err := io.ReadFull(d.r, src)
	samples = n / width
	if samples == 0 {
		if err == nil || err == io.ErrUnexpectedEOF {
			err = io.EOF
		}
		return 0, err
	}

	raw := make([]byte, samples*2)
	for i := range samples {
		b := src[i*width:]
		var v int
		switch d.bitDepth {
		case 8:
			v = (int(b[0]) - 128) << 8
		case 16:
			v = int(int16(binary.LittleEndian.Uint16(b)))
		case 24:
			s := int32(b[0]) | int32(b[1])<<8 | int32(b[2])<<16
			if s&0x800000 != 0 {
				s |= ^0xFFFFFF
			}
			v = int(s >> 8)
		case 32:
			v = int(int32(binary.LittleEndian.Uint32(b)) >> 16)
		}
		binary.LittleEndian.PutUint16(raw[i*2:], uint16(clamp16(v)))
	}

	if err == io.ErrUnexpectedEOF {
		err = io.EOF
	}
	return d.pending.emit(p, raw), err
}

func (d *wavDecoder) Length() int64     { return d.length }
func (d *wavDecoder) SampleRate() int   { return d.rate }
func (d *wavDecoder) ChannelCount() int { return d.channels }

// --- flac ---

type flacDecoder struct {
	stream   *flac.Stream
	pending  pending
	length   int64
	rate     int
	channels int
	bps      int
}

func newFLACDecoder(f *os.File) (*flacDecoder, error) {
	stream, err := flac.New(f)
	if err != nil {
		return nil, fmt.Errorf("decoding FLAC: %w", err)
	}
	info := stream.Info
	channels := int(info.NChannels)
	return &flacDecoder{
		stream:   stream,
		length:   int64(info.NSamples) * int64(channels) * 2,
		rate:     int(info.SampleRate),
		channels: channels,
		bps:      int(info.BitsPerSample),
	}, nil
}

func (d *flacDecoder) Read(p []byte) (int, error) {
	if len(d.pending.buf) > 0 {
		return d.pending.drain(p), nil
	}

	frame, err := d.stream.ParseNext()
	if err != nil {
		return 0, err
	}

	n := int(frame.Subframes[0].NSamples)
	raw := make([]byte, n*d.channels*2)
	for i := range n {
		for ch := range d.channels {
			v := int(frame.Subframes[ch].Samples[i])
			switch {
			case d.bps > 16:
				v >>= d.bps - 16
			case d.bps < 16:
				v <<= 16 - d.bps
			}
			off := (i*d.channels + ch) * 2
			binary.LittleEndian.PutUint16(raw[off:], uint16(clamp16(v)))
		}
	}
	return d.pending.emit(p, raw), nil
}

func (d *flacDecoder) Length() int64     { return d.length }
func (d *flacDecoder) SampleRate() int   { return d.rate }
func (d *flacDecoder) ChannelCount() int { return d.channels }

// --- ogg vorbis ---

type oggDecoder struct {
	reader  *oggvorbis.Reader
	pending pending
	length  int64
	floats  []float32
}

func newOGGDecoder(f *os.File) (*oggDecoder, error) {
	reader, err := oggvorbis.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("decoding OGG: %w", err)
	}
	return &oggDecoder{
		reader: reader,
		length: reader.Length() * int64(reader.Channels()) * 2,
	}, nil
}

func (d *oggDecoder) Read(p []byte) (int, error) {
	if len(d.pending.buf) > 0 {
		return d.pending.drain(p), nil
	}

	want := max(len(p)/2, d.reader.Channels())
	if cap(d.floats) < want {
		d.floats = make([]float32, want)
	}
	n, err := d.reader.Read(d.floats[:want])
	if n == 0 {
		if err == nil {
			err = io.EOF
		}
		return 0, err
	}

	raw := make([]byte, n*2)
	for i, s := range d.floats[:n] {
		binary.LittleEndian.PutUint16(raw[i*2:], uint16(clamp16(int(s*32767))))
	}
	return d.pending.emit(p, raw), err
}

func (d *oggDecoder) Length() int64     { return d.length }
func (d *oggDecoder) SampleRate() int   { return d.reader.SampleRate() }
func (d *oggDecoder) ChannelCount() int { return d.reader.Channels() }
