// Package envelope reduces a frequency snapshot to smoothed band levels.
package envelope

// Band split as fractions of the bin count, expressed in percent so the
// bounds are computed in integer arithmetic.
const (
	bassPercent = 12
	midsPercent = 50
)

// Levels holds the raw band averages of one snapshot, each in 0..255.
type Levels struct {
	Bass float64
	Mids float64
}

// Bounds returns the exclusive end bins of the bass band [0, bassEnd) and the
// mids band [bassEnd, midsEnd) for a snapshot of n bins.
//
// bassEnd = max(1, ceil(0.12n)) and midsEnd = max(bassEnd+1, floor(0.5n)),
// both clamped to n so that bassEnd <= midsEnd <= n.
func Bounds(n int) (bassEnd, midsEnd int) {
	if n <= 0 {
		return 0, 0
	}
	bassEnd = max(1, (n*bassPercent+99)/100)
	midsEnd = max(bassEnd+1, n*midsPercent/100)
	return min(bassEnd, n), min(midsEnd, n)
}

// Extract averages the bass and mids bands of s.
func Extract(s []byte) Levels {
	bassEnd, midsEnd := Bounds(len(s))
	return Levels{
		Bass: mean(s[:bassEnd]),
		Mids: mean(s[bassEnd:midsEnd]),
	}
}

func mean(bins []byte) float64 {
	if len(bins) == 0 {
		return 0
	}
	var sum int
	for _, v := range bins {
		sum += int(v)
	}
	return float64(sum) / float64(len(bins))
}
