package spectrum

// ring is a circular buffer of mono samples. Callers hold the analyser lock.
type ring struct {
	buf  []float64
	w    int // write position
	fill int
}

func newRing(size int) *ring {
	return &ring{buf: make([]float64, size)}
}

// push appends one sample, overwriting the oldest when full.
func (r *ring) push(v float64) {
	r.buf[r.w] = v
	r.w = (r.w + 1) % len(r.buf)
	if r.fill < len(r.buf) {
		r.fill++
	}
}

// latest copies the buffer into dst in chronological order, oldest first.
// Slots never written read as silence.
func (r *ring) latest(dst []float64) {
	size := len(r.buf)
	missing := size - r.fill
	for i := range missing {
		dst[i] = 0
	}
	start := (r.w - r.fill + size) % size
	for i := range r.fill {
		dst[missing+i] = r.buf[(start+i)%size]
	}
}

func (r *ring) clear() {
	clear(r.buf)
	r.w = 0
	r.fill = 0
}
