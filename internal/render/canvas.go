package render

import (
	"math"
	"strings"
)

// Braille dot positions (col, row) → bit offset:
//
//	(0,0)=0  (1,0)=3
//	(0,1)=1  (1,1)=4
//	(0,2)=2  (1,2)=5
//	(0,3)=6  (1,3)=7
var brailleBits = [2][4]uint8{
	{0, 1, 2, 6},
	{3, 4, 5, 7},
}

// canvas is a grid of braille cells addressed in dots, 2 wide and 4 tall per
// cell. Each cell keeps the color of its nearest plotted dot.
type canvas struct {
	cols, rows int
	dots       []uint8
	colors     []rgb
	depth      []float32
}

func newCanvas(cols, rows int) *canvas {
	n := cols * rows
	c := &canvas{
		cols:   cols,
		rows:   rows,
		dots:   make([]uint8, n),
		colors: make([]rgb, n),
		depth:  make([]float32, n),
	}
	for i := range c.depth {
		c.depth[i] = math.MaxFloat32
	}
	return c
}

func (c *canvas) dotWidth() int  { return c.cols * 2 }
func (c *canvas) dotHeight() int { return c.rows * 4 }

// set plots one dot. Dots outside the canvas are ignored.
func (c *canvas) set(x, y int, col rgb, depth float32) {
	if x < 0 || y < 0 || x >= c.dotWidth() || y >= c.dotHeight() {
		return
	}
	i := (y/4)*c.cols + x/2
	c.dots[i] |= 1 << brailleBits[x%2][y%4]
	if depth <= c.depth[i] {
		c.depth[i] = depth
		c.colors[i] = col
	}
}

// line plots a Bresenham line between two dot positions.
func (c *canvas) line(x0, y0, x1, y1 int, col rgb, depth float32) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		c.set(x0, y0, col, depth)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// String renders the canvas as rows of braille runes with color sequences
// for the given profile.
func (c *canvas) String(p colorProfile) string {
	var sb strings.Builder
	sb.Grow(c.cols * c.rows * 4)
	w := newANSIWriter(p)
	for row := range c.rows {
		if row > 0 {
			w.reset(&sb)
			sb.WriteByte('\n')
		}
		for col := range c.cols {
			i := row*c.cols + col
			if c.dots[i] == 0 {
				sb.WriteByte(' ')
				continue
			}
			w.set(&sb, c.colors[i])
			sb.WriteRune(rune(0x2800 + int(c.dots[i])))
		}
	}
	w.reset(&sb)
	return sb.String()
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
