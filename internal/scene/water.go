package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Water is a flat plane at height Y whose surface ripples over time. It is
// drawn as rows of polylines running across the view.
type Water struct {
	Size float64
	Y    float64
	Rows int
	Cols int
	Time float64

	lines [][]mgl32.Vec3
}

func NewWater(size, y float64) *Water {
	w := &Water{Size: size, Y: y, Rows: 14, Cols: 64}
	w.lines = make([][]mgl32.Vec3, w.Rows)
	for r := range w.lines {
		w.lines[r] = make([]mgl32.Vec3, w.Cols+1)
	}
	return w
}

// Height returns the surface height at (x, z) for the current time.
func (w *Water) Height(x, z float64) float64 {
	t := w.Time
	return w.Y + 0.35*math.Sin(x*0.32+t*1.3) + 0.25*math.Sin(z*0.45-t*0.9)
}

// Lines returns the current surface polylines, from far to near. The slices
// are reused between calls.
func (w *Water) Lines() [][]mgl32.Vec3 {
	half := w.Size / 2
	for r := range w.lines {
		// Rows are packed closer together near the camera.
		f := float64(r) / float64(w.Rows-1)
		z := -half + (half+20)*math.Sqrt(f)
		for c := range w.lines[r] {
			x := -half + w.Size*float64(c)/float64(w.Cols)
			w.lines[r][c] = mgl32.Vec3{float32(x), float32(w.Height(x, z)), float32(z)}
		}
	}
	return w.lines
}
