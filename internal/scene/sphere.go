package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/olivier-w/ripple/internal/visual"
)

// Sphere is a UV sphere drawn as a wireframe. Vertices are displaced by the
// visual package's noise field before the model transform is applied.
type Sphere struct {
	Radius    float64
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	Edges     [][2]int

	Scale    float64
	Position mgl32.Vec3

	world []mgl32.Vec3
}

// NewSphere builds a sphere with segW meridians and segH parallels.
func NewSphere(radius float64, segW, segH int) *Sphere {
	segW = max(segW, 3)
	segH = max(segH, 2)

	s := &Sphere{Radius: radius, Scale: 1}
	grid := make([][]int, segH+1)
	for iy := 0; iy <= segH; iy++ {
		v := float64(iy) / float64(segH)
		row := make([]int, segW+1)
		for ix := 0; ix <= segW; ix++ {
			u := float64(ix) / float64(segW)
			n := mgl32.Vec3{
				float32(-math.Cos(u*2*math.Pi) * math.Sin(v*math.Pi)),
				float32(math.Cos(v * math.Pi)),
				float32(math.Sin(u*2*math.Pi) * math.Sin(v*math.Pi)),
			}
			row[ix] = len(s.Positions)
			s.Positions = append(s.Positions, n.Mul(float32(radius)))
			s.Normals = append(s.Normals, n)
		}
		grid[iy] = row
	}

	for iy := 0; iy <= segH; iy++ {
		for ix := 0; ix < segW; ix++ {
			// Parallels collapse to a point at the poles.
			if iy > 0 && iy < segH {
				s.Edges = append(s.Edges, [2]int{grid[iy][ix], grid[iy][ix+1]})
			}
			if iy < segH {
				s.Edges = append(s.Edges, [2]int{grid[iy][ix], grid[iy+1][ix]})
			}
		}
	}
	s.world = make([]mgl32.Vec3, len(s.Positions))
	return s
}

// Model returns the sphere's model matrix.
func (s *Sphere) Model() mgl32.Mat4 {
	sc := float32(s.Scale)
	return mgl32.Translate3D(s.Position[0], s.Position[1], s.Position[2]).
		Mul4(mgl32.Scale3D(sc, sc, sc))
}

// WorldVertices displaces every vertex with params and applies the model
// transform. The returned slice is reused between calls.
func (s *Sphere) WorldVertices(params visual.Params) []mgl32.Vec3 {
	model := s.Model()
	for i, p := range s.Positions {
		d := visual.Displace(p, s.Normals[i], params)
		s.world[i] = mgl32.TransformCoordinate(d, model)
	}
	return s.world
}
