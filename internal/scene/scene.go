// Package scene holds the objects drawn each frame: the reactive sphere, the
// water plane and the orbiting camera.
package scene

import (
	"math"
	"time"

	"github.com/olivier-w/ripple/internal/config"
	"github.com/olivier-w/ripple/internal/visual"
)

const (
	sphereRestY    = 5.0
	cameraDistance = 30.0
)

type Scene struct {
	Sphere *Sphere
	Water  *Water // nil when disabled
	Camera *Camera
	Params *visual.Params

	elapsed float64
}

// New builds the scene described by cfg around params.
func New(cfg *config.Config, params *visual.Params) *Scene {
	s := &Scene{
		Sphere: NewSphere(cfg.Sphere.Radius, cfg.Sphere.SegW, cfg.Sphere.SegH),
		Camera: NewCamera(cfg.FPS, cameraDistance),
		Params: params,
	}
	if cfg.Water.Enabled {
		s.Water = NewWater(cfg.Water.Size, cfg.Water.Y)
	}
	s.Sphere.Position[1] = sphereRestY
	return s
}

// Tick applies one frame of mapper output and advances scene time.
func (s *Scene) Tick(dt time.Duration, out visual.Output) {
	s.elapsed += dt.Seconds()
	s.Sphere.Scale = out.Scale
	s.Sphere.Position[1] = float32(sphereRestY + math.Sin(s.elapsed))
	if s.Water != nil {
		s.Water.Time = s.elapsed
	}
	s.Camera.Update()
}

// Elapsed returns the scene clock in seconds.
func (s *Scene) Elapsed() float64 {
	return s.elapsed
}
