// Package render rasterises the scene into colored braille text.
package render

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/olivier-w/ripple/internal/scene"
	"github.com/olivier-w/ripple/internal/visual"
)

type point struct {
	x, y  int
	depth float32
	ok    bool
}

// Renderer draws a scene into a fixed cell grid.
type Renderer struct {
	water   colorful.Color
	profile colorProfile

	sphere []point
}

// New returns a renderer using waterHex for the water plane. The terminal
// color profile is detected from the environment.
func New(waterHex string) *Renderer {
	c, err := colorful.Hex(waterHex)
	if err != nil {
		c = colorful.Color{R: 0.12, G: 0.37, B: 0.48}
	}
	return &Renderer{water: c, profile: detectProfile()}
}

// Render draws the water plane and the displaced sphere for a view of
// cols x rows terminal cells.
func (r *Renderer) Render(s *scene.Scene, cols, rows int) string {
	if cols < 1 || rows < 1 {
		return ""
	}
	cv := newCanvas(cols, rows)
	w, h := cv.dotWidth(), cv.dotHeight()

	// Braille dots are close to square, so the dot grid gives the aspect.
	mvp := s.Camera.Projection(float64(w) / float64(h)).Mul4(s.Camera.View())
	project := func(v mgl32.Vec3) point {
		clip := mvp.Mul4x1(v.Vec4(1))
		if clip[3] <= 0 {
			return point{}
		}
		ndc := clip.Vec3().Mul(1 / clip[3])
		if ndc[2] < -1 || ndc[2] > 1 {
			return point{}
		}
		return point{
			x:     int((ndc[0] + 1) / 2 * float32(w)),
			y:     int((1 - ndc[1]) / 2 * float32(h)),
			depth: ndc[2],
			ok:    true,
		}
	}
	segment := func(a, b point, col rgb) {
		if !a.ok || !b.ok || offscreen(a, w, h) || offscreen(b, w, h) {
			return
		}
		cv.line(a.x, a.y, b.x, b.y, col, (a.depth+b.depth)/2)
	}

	if s.Water != nil {
		lines := s.Water.Lines()
		for i, line := range lines {
			// Far rows fade toward black.
			k := 0.35 + 0.65*float64(i+1)/float64(len(lines))
			col := fromColorful(colorful.Color{R: r.water.R * k, G: r.water.G * k, B: r.water.B * k})
			prev := project(line[0])
			for _, v := range line[1:] {
				cur := project(v)
				segment(prev, cur, col)
				prev = cur
			}
		}
	}

	params := *s.Params
	world := s.Sphere.WorldVertices(params)
	if cap(r.sphere) < len(world) {
		r.sphere = make([]point, len(world))
	}
	r.sphere = r.sphere[:len(world)]
	for i, v := range world {
		r.sphere[i] = project(v)
	}
	for _, e := range s.Sphere.Edges {
		n := s.Sphere.Normals[e[0]].Add(s.Sphere.Normals[e[1]])
		segment(r.sphere[e[0]], r.sphere[e[1]], fromColorful(visual.Shade(n, params)))
	}

	return cv.String(r.profile)
}

// offscreen rejects points far enough outside the canvas that drawing the
// segment would only burn time in the line plotter.
func offscreen(p point, w, h int) bool {
	return p.x < -w || p.x > 2*w || p.y < -h || p.y > 2*h
}
