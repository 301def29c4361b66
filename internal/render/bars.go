package render

import "strings"

var barChars = []rune(" ▁▂▃▄▅▆▇█")

// Bars draws a byte frequency snapshot as vertical bars, one column per group
// of bins. Levels are absolute (255 is a full cell stack), so silence draws
// an empty strip. The first column starting at bin splitAt gets a baseline
// marker while it is empty.
func Bars(snap []byte, width, height, splitAt int) string {
	if width < 1 || height < 1 || len(snap) == 0 {
		return ""
	}
	cols := min(width, len(snap))
	levels := make([]float64, cols)
	split := -1
	for c := range cols {
		lo := c * len(snap) / cols
		hi := max((c+1)*len(snap)/cols, lo+1)
		sum := 0
		for _, v := range snap[lo:hi] {
			sum += int(v)
		}
		levels[c] = float64(sum) / float64(hi-lo) / 255 * float64(height)
		if split < 0 && splitAt > 0 && lo >= splitAt {
			split = c
		}
	}

	rows := make([]string, height)
	for row := range height {
		var line strings.Builder
		rowFromBottom := float64(height - 1 - row)
		for c, level := range levels {
			charIdx := 0
			if level >= rowFromBottom+1 {
				charIdx = len(barChars) - 1
			} else if level > rowFromBottom {
				charIdx = int((level - rowFromBottom) * float64(len(barChars)-1))
			}
			ch := barChars[charIdx]
			if c == split && ch == ' ' && row == height-1 {
				ch = '┊'
			}
			line.WriteRune(ch)
		}
		rows[row] = line.String()
	}
	return strings.Join(rows, "\n")
}
