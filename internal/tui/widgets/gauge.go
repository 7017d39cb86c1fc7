// Package widgets renders the terminal chart primitives shared by the
// dashboard and the analyzer: gauges, sparklines and line charts.
package widgets

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Gauge describes a horizontal percentage bar.
type Gauge struct {
	// Label is shown left of the bar, padded to LabelWidth.
	Label      string
	LabelWidth int
	// Width is the bar width in characters.
	Width int
	// Percent is the value in [0, 100].
	Percent float64
	// Absent renders an n/a bar instead of a value, for missing sensors.
	Absent bool
}

var (
	gaugeGreen  = lipgloss.Color("#22C55E")
	gaugeYellow = lipgloss.Color("#EAB308")
	gaugeRed    = lipgloss.Color("#EF4444")
	gaugeFaint  = lipgloss.NewStyle().Faint(true)
)

func gaugeColor(percent float64) lipgloss.Color {
	switch {
	case percent >= 90:
		return gaugeRed
	case percent >= 70:
		return gaugeYellow
	default:
		return gaugeGreen
	}
}

// Render draws the gauge as "Label  ████░░░░  42.0%".
func (g Gauge) Render() string {
	width := g.Width
	if width <= 0 {
		width = 20
	}

	label := g.Label
	if g.LabelWidth > 0 {
		label = fmt.Sprintf("%-*s", g.LabelWidth, g.Label)
	}

	if g.Absent {
		bar := gaugeFaint.Render(strings.Repeat("░", width))
		return fmt.Sprintf("%s %s %s", label, bar, gaugeFaint.Render("n/a"))
	}

	percent := math.Max(0, math.Min(100, g.Percent))
	filled := int(math.Round(percent / 100 * float64(width)))

	style := lipgloss.NewStyle().Foreground(gaugeColor(percent))
	bar := style.Render(strings.Repeat("█", filled)) + strings.Repeat("░", width-filled)

	return fmt.Sprintf("%s %s %5.1f%%", label, bar, percent)
}
