package player

import (
	"encoding/binary"
	"io"
	"sync"
)

// Sink receives a copy of the PCM handed to the audio device.
type Sink interface {
	Write(samples []int16, channels int)
}

// tap sits between the resampler and oto. It copies every block oto pulls
// into the sink and counts the bytes played so far.
type tap struct {
	r       io.Reader
	sink    Sink
	samples []int16

	mu  sync.Mutex
	pos int64
}

func newTap(r io.Reader, sink Sink) *tap {
	return &tap{r: r, sink: sink}
}

func (t *tap) Read(p []byte) (int, error) {
	n, err := t.r.Read(p)
	if n > 0 && t.sink != nil {
		count := n / 2
		if cap(t.samples) < count {
			t.samples = make([]int16, count)
		}
		s := t.samples[:count]
		for i := range s {
			s[i] = int16(binary.LittleEndian.Uint16(p[i*2:]))
		}
		t.sink.Write(s, outputChannels)
	}
	t.mu.Lock()
	t.pos += int64(n)
	t.mu.Unlock()
	return n, err
}

// Pos returns the number of output bytes read so far.
func (t *tap) Pos() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pos
}
