package player

import (
	"encoding/binary"
	"io"
)

const (
	outputRate      = 44100
	outputChannels  = 2
	outputFrameSize = outputChannels * 2
	resampleChunk   = 2048 // source frames read per fill
)

// resampler converts a decoder's PCM to 44.1 kHz stereo with linear
// interpolation. Mono sources are duplicated; extra channels are dropped.
type resampler struct {
	src      pcmDecoder
	channels int
	step     float64 // source frames per output frame

	frames [][2]int16
	pos    float64 // read position within frames
	eof    bool
	srcBuf []byte
}

// newResampler wraps dec. Decoders already at the output format pass through.
func newResampler(dec pcmDecoder) (io.Reader, error) {
	rate, channels := dec.SampleRate(), dec.ChannelCount()
	if rate <= 0 {
		return nil, ErrUnsupportedFormat
	}
	if channels < 1 {
		return nil, ErrUnsupportedFormat
	}
	if rate == outputRate && channels == outputChannels {
		return dec, nil
	}
	return &resampler{
		src:      dec,
		channels: channels,
		step:     float64(rate) / outputRate,
		srcBuf:   make([]byte, resampleChunk*channels*2),
	}, nil
}

func (r *resampler) Read(p []byte) (int, error) {
	n := 0
	for n+outputFrameSize <= len(p) {
		i := int(r.pos)
		for i+1 >= len(r.frames) && !r.eof {
			r.fill()
		}
		if i >= len(r.frames) {
			break
		}

		a := r.frames[i]
		b := a
		if i+1 < len(r.frames) {
			b = r.frames[i+1]
		}
		t := r.pos - float64(i)
		for ch := range outputChannels {
			v := float64(a[ch]) + (float64(b[ch])-float64(a[ch]))*t
			binary.LittleEndian.PutUint16(p[n+ch*2:], uint16(int16(v)))
		}
		n += outputFrameSize
		r.pos += r.step

		if used := int(r.pos); used >= resampleChunk {
			r.frames = append(r.frames[:0], r.frames[used:]...)
			r.pos -= float64(used)
		}
	}

	if n == 0 && r.eof {
		return 0, io.EOF
	}
	return n, nil
}

// fill decodes the next chunk of source frames.
func (r *resampler) fill() {
	n, err := io.ReadFull(r.src, r.srcBuf)
	frameSize := r.channels * 2
	for off := 0; off+frameSize <= n; off += frameSize {
		left := int16(binary.LittleEndian.Uint16(r.srcBuf[off:]))
		right := left
		if r.channels > 1 {
			right = int16(binary.LittleEndian.Uint16(r.srcBuf[off+2:]))
		}
		r.frames = append(r.frames, [2]int16{left, right})
	}
	if err != nil {
		r.eof = true
	}
}
