package visual

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"
)

func fract(x float64) float64 { return x - math.Floor(x) }

func mix(a, b, t float64) float64 { return a + (b-a)*t }

var (
	hashX = mgl64.Vec3{127.1, 311.7, 74.7}
	hashY = mgl64.Vec3{269.5, 183.3, 246.1}
	hashZ = mgl64.Vec3{113.5, 271.9, 124.6}
)

// hash3 returns a pseudo-random gradient in [-1,1]^3 for a lattice point.
func hash3(p mgl64.Vec3) mgl64.Vec3 {
	q := mgl64.Vec3{p.Dot(hashX), p.Dot(hashY), p.Dot(hashZ)}
	for i := range q {
		q[i] = -1 + 2*fract(math.Sin(q[i])*43758.5453123)
	}
	return q
}

// Noise is smooth gradient noise over 3D space, roughly in [-1, 1].
func Noise(x, y, z float64) float64 {
	p := mgl64.Vec3{x, y, z}
	i := mgl64.Vec3{math.Floor(x), math.Floor(y), math.Floor(z)}
	f := p.Sub(i)
	var u mgl64.Vec3
	for k := range u {
		u[k] = f[k] * f[k] * (3 - 2*f[k])
	}

	corner := func(dx, dy, dz float64) float64 {
		o := mgl64.Vec3{dx, dy, dz}
		return hash3(i.Add(o)).Dot(f.Sub(o))
	}

	return mix(
		mix(
			mix(corner(0, 0, 0), corner(1, 0, 0), u[0]),
			mix(corner(0, 1, 0), corner(1, 1, 0), u[0]),
			u[1]),
		mix(
			mix(corner(0, 0, 1), corner(1, 0, 1), u[0]),
			mix(corner(0, 1, 1), corner(1, 1, 1), u[0]),
			u[1]),
		u[2])
}

// Field samples the flowing two-octave noise field the sphere is displaced by.
func Field(p mgl32.Vec3, params Params) float64 {
	x, y, z := float64(p[0]), float64(p[1]), float64(p[2])
	f := params.Frequency
	t := params.Time

	n1 := Noise(x*f, y*f, z*f+t*params.Speed)
	n2 := Noise(x*f*2+t*0.7, y*f*2+t*0.7, z*f*2+t*0.7)
	return n1*0.6 + n2*0.4
}

// Displace moves a vertex along its normal by the noise field times the
// current amplitude.
func Displace(p, normal mgl32.Vec3, params Params) mgl32.Vec3 {
	if params.Amplitude == 0 {
		return p
	}
	n := Field(p, params)
	return p.Add(normal.Mul(float32(n * params.Amplitude)))
}

// Shade applies the normal-based lighting rule to the base color.
func Shade(normal mgl32.Vec3, params Params) colorful.Color {
	nd := 0.5
	if l := normal.Len(); l > 0 {
		nd = 0.5 + 0.5*float64(normal[2]/l)
	}
	k := 0.6 + 0.4*nd
	c := params.Color
	return colorful.Color{R: c.R * k, G: c.G * k, B: c.B * k}.Clamped()
}
