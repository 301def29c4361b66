package player

import (
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Track is an opened media file ready to hand to an Engine. It holds the file
// descriptor until Release is called.
type Track struct {
	name     string
	file     *os.File
	dec      pcmDecoder
	meta     Metadata
	duration time.Duration

	once sync.Once
	err  error
}

// Open opens path and prepares a decoder for it.
func Open(path string) (*Track, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	dec, err := newDecoder(f)
	if err != nil {
		f.Close()
		return nil, err
	}

	var dur time.Duration
	if length := dec.Length(); length > 0 {
		frameBytes := int64(dec.ChannelCount() * 2)
		frames := length / frameBytes
		dur = time.Duration(frames) * time.Second / time.Duration(dec.SampleRate())
	}

	return &Track{
		name:     filepath.Base(path),
		file:     f,
		dec:      dec,
		meta:     ReadMetadata(path),
		duration: dur,
	}, nil
}

// Name returns the file's base name.
func (t *Track) Name() string { return t.name }

func (t *Track) Metadata() Metadata { return t.meta }

func (t *Track) Duration() time.Duration { return t.duration }

// Release closes the underlying file. Only the first call has an effect.
func (t *Track) Release() error {
	t.once.Do(func() {
		if t.file != nil {
			t.err = t.file.Close()
		}
	})
	return t.err
}

// Subtitle returns the artist/album line for display, if tagged.
func (t *Track) Subtitle() string { return t.meta.Subtitle() }
