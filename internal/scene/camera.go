package scene

import (
	"math"

	"github.com/charmbracelet/harmonica"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	fovDegrees = 75
	nearPlane  = 0.5
	farPlane   = 1000

	minDistance  = 12.0
	maxDistance  = 90.0
	maxElevation = math.Pi/2 - 0.05
)

// axis is one spring-damped camera coordinate chasing a target value.
type axis struct {
	pos    float64
	vel    float64
	target float64
}

func (a *axis) step(s harmonica.Spring) {
	a.pos, a.vel = s.Update(a.pos, a.vel, a.target)
}

// Camera orbits the origin. Orbit and zoom requests move targets; Update lets
// the springs ease the camera toward them, like damped orbit controls.
type Camera struct {
	spring    harmonica.Spring
	azimuth   axis
	elevation axis
	distance  axis
	Target    mgl32.Vec3
}

// NewCamera places the camera on the +Z axis at the given distance.
func NewCamera(fps int, distance float64) *Camera {
	distance = clamp(distance, minDistance, maxDistance)
	return &Camera{
		spring:   harmonica.NewSpring(harmonica.FPS(fps), 6.0, 1.0),
		distance: axis{pos: distance, target: distance},
	}
}

// Orbit rotates the camera target by the given angles in radians.
func (c *Camera) Orbit(dAzimuth, dElevation float64) {
	c.azimuth.target += dAzimuth
	c.elevation.target = clamp(c.elevation.target+dElevation, -maxElevation, maxElevation)
}

// Zoom multiplies the target distance by factor.
func (c *Camera) Zoom(factor float64) {
	c.distance.target = clamp(c.distance.target*factor, minDistance, maxDistance)
}

// Update advances the springs by one frame.
func (c *Camera) Update() {
	c.azimuth.step(c.spring)
	c.elevation.step(c.spring)
	c.distance.step(c.spring)
}

// Eye returns the camera position in world space.
func (c *Camera) Eye() mgl32.Vec3 {
	az, el, d := c.azimuth.pos, c.elevation.pos, c.distance.pos
	return c.Target.Add(mgl32.Vec3{
		float32(d * math.Cos(el) * math.Sin(az)),
		float32(d * math.Sin(el)),
		float32(d * math.Cos(el) * math.Cos(az)),
	})
}

// Distance returns the current eased distance from the target.
func (c *Camera) Distance() float64 {
	return c.distance.pos
}

// View returns the look-at matrix for the current position.
func (c *Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Eye(), c.Target, mgl32.Vec3{0, 1, 0})
}

// Projection returns the perspective matrix for the given aspect ratio.
func (c *Camera) Projection(aspect float64) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(fovDegrees), float32(aspect), nearPlane, farPlane)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
