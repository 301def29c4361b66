package visual

import (
	"time"

	"github.com/olivier-w/ripple/internal/envelope"
)

const (
	// ScaleGain is the extra uniform scale reached at a full bass envelope.
	ScaleGain = 0.7
	// MaxAmplitude is the displacement, in world units, at a full mids envelope.
	MaxAmplitude = 5.0
)

// Output is the per-frame result of the mapping.
type Output struct {
	Scale     float64
	Amplitude float64
}

// Mapper owns the bass and mids envelopes and writes the time and amplitude
// uniforms of a Params.
type Mapper struct {
	bass   envelope.Envelope
	mids   envelope.Envelope
	params *Params
	out    Output
}

// NewMapper returns a mapper writing into p with both envelopes at rest.
func NewMapper(p *Params) *Mapper {
	return &Mapper{
		bass:   envelope.NewEnvelope(envelope.BassFactor),
		mids:   envelope.NewEnvelope(envelope.MidsFactor),
		params: p,
		out:    Output{Scale: 1},
	}
}

// Step folds one frame's band levels into the envelopes, advances shader time
// by dt and returns the mesh scale and displacement amplitude.
func (m *Mapper) Step(l envelope.Levels, dt time.Duration) Output {
	bass := m.bass.Update(l.Bass)
	mids := m.mids.Update(l.Mids)

	m.out = Output{
		Scale:     ScaleFor(bass),
		Amplitude: AmplitudeFor(mids),
	}
	m.params.Time += dt.Seconds()
	m.params.Amplitude = m.out.Amplitude
	return m.out
}

// Output returns the result of the last Step.
func (m *Mapper) Output() Output {
	return m.out
}

// Envelopes returns the current bass and mids envelope values.
func (m *Mapper) Envelopes() (bass, mids float64) {
	return m.bass.Value, m.mids.Value
}

// ScaleFor maps a bass envelope in 0..255 onto a scale in 1.0..1.7.
func ScaleFor(bass float64) float64 {
	return 1 + (bass/255)*ScaleGain
}

// AmplitudeFor maps a mids envelope in 0..255 onto a displacement in 0..5.
func AmplitudeFor(mids float64) float64 {
	return (mids / 255) * MaxAmplitude
}
