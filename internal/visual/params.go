// Package visual maps band envelopes onto the sphere's shader parameters and
// evaluates the sphere's vertex displacement.
package visual

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Debug slider range shared by noise frequency and noise speed.
const (
	SliderMin  = 0.2
	SliderMax  = 3.0
	SliderStep = 0.01

	DefaultFrequency = 0.9
	DefaultSpeed     = 1.1
	DefaultColor     = "#50afa3"
)

// Params are the uniforms consumed by the sphere's vertex and fragment stages.
// Time and Amplitude belong to the Mapper; Frequency and Speed to the sliders.
type Params struct {
	Time      float64
	Amplitude float64
	Frequency float64
	Speed     float64
	Color     colorful.Color
}

// NewParams parses the hex base color and applies the slider values.
func NewParams(hex string, frequency, speed float64) (*Params, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return nil, fmt.Errorf("sphere color %q: %w", hex, err)
	}
	p := &Params{Color: c}
	p.SetFrequency(frequency)
	p.SetSpeed(speed)
	return p, nil
}

// SetFrequency sets the noise spatial frequency, clamped and snapped to the
// slider step.
func (p *Params) SetFrequency(v float64) {
	p.Frequency = sliderValue(v)
}

// SetSpeed sets the noise flow speed, clamped and snapped to the slider step.
func (p *Params) SetSpeed(v float64) {
	p.Speed = sliderValue(v)
}

// NudgeFrequency moves the frequency slider by the given number of steps.
func (p *Params) NudgeFrequency(steps int) {
	p.SetFrequency(p.Frequency + float64(steps)*SliderStep)
}

// NudgeSpeed moves the speed slider by the given number of steps.
func (p *Params) NudgeSpeed(steps int) {
	p.SetSpeed(p.Speed + float64(steps)*SliderStep)
}

// SliderFraction reports where v sits within the slider range, 0..1.
func SliderFraction(v float64) float64 {
	return (v - SliderMin) / (SliderMax - SliderMin)
}

func sliderValue(v float64) float64 {
	if math.IsNaN(v) {
		v = SliderMin
	}
	v = math.Max(SliderMin, math.Min(SliderMax, v))
	// SliderStep is one hundredth.
	return math.Round(v*100) / 100
}
