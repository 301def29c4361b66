package render

import (
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"
)

type colorProfile uint8

const (
	colorNone colorProfile = iota
	colorANSI16
	colorANSI256
	colorTrueColor
)

type rgb struct {
	R, G, B uint8
}

func fromColorful(c colorful.Color) rgb {
	r, g, b := c.Clamped().RGB255()
	return rgb{R: r, G: g, B: b}
}

var (
	profileOnce sync.Once
	profile     colorProfile
	seqCache    sync.Map
)

// detectProfile asks termenv for the environment's color support once per
// process. termenv honours NO_COLOR and CLICOLOR_FORCE.
func detectProfile() colorProfile {
	profileOnce.Do(func() {
		profile = profileFor(termenv.EnvColorProfile())
	})
	return profile
}

func profileFor(p termenv.Profile) colorProfile {
	switch p {
	case termenv.TrueColor:
		return colorTrueColor
	case termenv.ANSI256:
		return colorANSI256
	case termenv.ANSI:
		return colorANSI16
	default:
		return colorNone
	}
}

// ansiWriter emits a foreground sequence only when the color changes.
type ansiWriter struct {
	profile colorProfile
	current uint32
}

func newANSIWriter(p colorProfile) ansiWriter {
	return ansiWriter{profile: p, current: ^uint32(0)}
}

func (w *ansiWriter) set(sb *strings.Builder, c rgb) {
	if w.profile == colorNone {
		return
	}
	key := uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
	if key == w.current {
		return
	}
	sb.WriteString(colorSequence(w.profile, c))
	w.current = key
}

func (w *ansiWriter) reset(sb *strings.Builder) {
	if w.profile == colorNone || w.current == ^uint32(0) {
		return
	}
	sb.WriteString("\x1b[0m")
	w.current = ^uint32(0)
}

var ansi16 = []rgb{
	{0, 0, 0},
	{205, 49, 49},
	{13, 188, 121},
	{229, 229, 16},
	{36, 114, 200},
	{188, 63, 188},
	{17, 168, 205},
	{229, 229, 229},
}

func colorSequence(p colorProfile, c rgb) string {
	key := uint32(p)<<24 | uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
	if seq, ok := seqCache.Load(key); ok {
		return seq.(string)
	}

	var seq string
	switch p {
	case colorTrueColor:
		seq = fmt.Sprintf("\x1b[38;2;%d;%d;%dm", c.R, c.G, c.B)
	case colorANSI256:
		r := int(c.R) * 5 / 255
		g := int(c.G) * 5 / 255
		b := int(c.B) * 5 / 255
		seq = fmt.Sprintf("\x1b[38;5;%dm", 16+36*r+6*g+b)
	case colorANSI16:
		best, bestDist := 0, math.MaxFloat64
		for i, q := range ansi16 {
			dr := float64(c.R) - float64(q.R)
			dg := float64(c.G) - float64(q.G)
			db := float64(c.B) - float64(q.B)
			if d := dr*dr + dg*dg + db*db; d < bestDist {
				best, bestDist = i, d
			}
		}
		seq = fmt.Sprintf("\x1b[%dm", 30+best)
	}

	seqCache.Store(key, seq)
	return seq
}
