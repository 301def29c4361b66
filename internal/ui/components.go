package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
)

func renderProgressBar(elapsed, total float64, width int) string {
	if width < 10 {
		width = 10
	}
	barWidth := width - 2 // leave some margin

	var ratio float64
	if total > 0 {
		ratio = elapsed / total
	}
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}

	filled := int(ratio * float64(barWidth))
	return strings.Repeat("━", filled) + strings.Repeat("─", barWidth-filled)
}

func renderVolumePercent(vol float64) string {
	return fmt.Sprintf("vol %d%%", int(vol*100+0.5))
}

func newSliderBar(width int) progress.Model {
	bar := progress.New(
		progress.WithSolidFill(string(accentColor.Dark)),
		progress.WithoutPercentage(),
		progress.WithWidth(width),
	)
	bar.EmptyColor = "#444444"
	return bar
}

// renderSlider draws one labelled slider row: label, bar, numeric value.
func renderSlider(bar progress.Model, label string, fraction, value float64) string {
	return fmt.Sprintf("%s %s %s",
		statusStyle.Render(fmt.Sprintf("%-10s", label)),
		bar.ViewAs(fraction),
		timeStyle.Render(fmt.Sprintf("%.2f", value)),
	)
}

func spaces(n int) string {
	if n < 0 {
		n = 0
	}
	return strings.Repeat(" ", n)
}
