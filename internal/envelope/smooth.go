package envelope

import "math"

// Smoothing factors. Bass is snappy and drives the pulsing scale; mids move
// slowly and drive the broad surface undulation.
const (
	BassFactor = 0.5
	MidsFactor = 0.2
)

// Smooth moves envelope toward input by factor and returns the new value.
func Smooth(envelope, input, factor float64) float64 {
	return envelope + (input-envelope)*factor
}

// Envelope is an exponentially smoothed scalar. The zero value starts at rest.
type Envelope struct {
	Value  float64
	Factor float64
}

// NewEnvelope returns an envelope at zero with the given smoothing factor.
func NewEnvelope(factor float64) Envelope {
	return Envelope{Factor: factor}
}

// Update folds one input sample into the envelope and returns the new value.
func (e *Envelope) Update(input float64) float64 {
	e.Value = Smooth(e.Value, input, e.Factor)
	return e.Value
}

// FramesToConverge returns the number of constant-input updates needed for
// an envelope with the given factor to cover fraction of the distance to its
// target. The remaining error after t frames is (1-factor)^t.
func FramesToConverge(factor, fraction float64) int {
	if factor >= 1 {
		return 1
	}
	if fraction <= 0 {
		return 0
	}
	if factor <= 0 || fraction >= 1 {
		return math.MaxInt
	}
	t := math.Log(1-fraction) / math.Log(1-factor)
	return int(math.Ceil(t - 1e-9))
}
