package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

var (
	ErrInvalidFFTSize   = errors.New("fft size must be a power of two between 32 and 32768")
	ErrInvalidSmoothing = errors.New("smoothing must be between 0 and 1")
	ErrInvalidFPS       = errors.New("fps must be between 1 and 240")
	ErrInvalidVolume    = errors.New("volume must be between 0 and 1")
)

type AudioConfig struct {
	FFTSize   int     `yaml:"fft_size"`
	Smoothing float64 `yaml:"smoothing"`
	Volume    float64 `yaml:"volume"`
}

type SphereConfig struct {
	Radius     float64 `yaml:"radius"`
	SegW       int     `yaml:"segments_w"`
	SegH       int     `yaml:"segments_h"`
	Color      string  `yaml:"color"`
	NoiseFreq  float64 `yaml:"noise_freq"`
	NoiseSpeed float64 `yaml:"noise_speed"`
}

type WaterConfig struct {
	Enabled bool    `yaml:"enabled"`
	Size    float64 `yaml:"size"`
	Y       float64 `yaml:"y"`
	Color   string  `yaml:"color"`
}

type Config struct {
	FPS    int          `yaml:"fps"`
	Audio  AudioConfig  `yaml:"audio"`
	Sphere SphereConfig `yaml:"sphere"`
	Water  WaterConfig  `yaml:"water"`
	Debug  bool         `yaml:"-"`
}

// DefaultConfig returns a 256-point analyser at 0.8 smoothing, a teal
// radius-7 sphere and the water plane eight units below the origin.
func DefaultConfig() *Config {
	return &Config{
		FPS: 60,
		Audio: AudioConfig{
			FFTSize:   256,
			Smoothing: 0.8,
			Volume:    0.8,
		},
		Sphere: SphereConfig{
			Radius:     7,
			SegW:       48,
			SegH:       24,
			Color:      "#50afa3",
			NoiseFreq:  0.9,
			NoiseSpeed: 1.1,
		},
		Water: WaterConfig{
			Enabled: true,
			Size:    120,
			Y:       -8,
			Color:   "#1f5f7a",
		},
	}
}

func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

// TryLoadDefault loads the first config file found in the usual locations.
// A missing file, or one that fails to parse, leaves c untouched; parse
// failures are logged.
func (c *Config) TryLoadDefault() {
	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	paths := []string{
		filepath.Join(home, ".config", "ripple", "config.yaml"),
		filepath.Join(home, ".config", "ripple", "config.yml"),
		filepath.Join(home, ".ripple.yaml"),
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			next := *c
			if err := next.LoadFromFile(p); err != nil {
				log.Printf("config: ignoring %s: %v", p, err)
				return
			}
			*c = next
			return
		}
	}
}

func (c *Config) Validate() error {
	n := c.Audio.FFTSize
	if n < 32 || n > 32768 || n&(n-1) != 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidFFTSize, n)
	}
	if c.Audio.Smoothing < 0 || c.Audio.Smoothing > 1 {
		return fmt.Errorf("%w: got %g", ErrInvalidSmoothing, c.Audio.Smoothing)
	}
	if c.FPS < 1 || c.FPS > 240 {
		return fmt.Errorf("%w: got %d", ErrInvalidFPS, c.FPS)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("%w: got %g", ErrInvalidVolume, c.Audio.Volume)
	}
	if c.Sphere.SegW < 3 {
		c.Sphere.SegW = 3
	}
	if c.Sphere.SegH < 2 {
		c.Sphere.SegH = 2
	}
	return nil
}
