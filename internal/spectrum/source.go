package spectrum

// Snapshot holds one byte magnitude (0..255) per frequency bin.
type Snapshot []byte

// Reader is the analyser capability a Source samples from.
type Reader interface {
	FrequencyBinCount() int
	ByteFrequencyData(dst []byte)
}

// Source exposes the single live frequency snapshot. Each Refresh overwrites
// the same buffer, so consumers always see the most recent audio state.
type Source struct {
	r    Reader
	snap Snapshot
}

// NewSource wraps r. A nil reader yields an all-zero snapshot of size bins.
func NewSource(r Reader, bins int) *Source {
	if r != nil {
		bins = r.FrequencyBinCount()
	}
	return &Source{r: r, snap: make(Snapshot, bins)}
}

// Refresh reads the analyser into the live snapshot and returns it. Call at
// most once per frame.
func (s *Source) Refresh() Snapshot {
	if s.r == nil {
		clear(s.snap)
		return s.snap
	}
	if n := s.r.FrequencyBinCount(); n != len(s.snap) {
		s.snap = make(Snapshot, n)
	}
	s.r.ByteFrequencyData(s.snap)
	return s.snap
}

// Snapshot returns the live snapshot without refreshing it.
func (s *Source) Snapshot() Snapshot {
	return s.snap
}
