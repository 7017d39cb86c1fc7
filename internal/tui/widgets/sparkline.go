package widgets

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// sparkBlocks are the unicode block characters used for sparklines,
// lowest to highest.
var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline describes a one-line history chart.
type Sparkline struct {
	// Data points, most recent last.
	Data []float64
	// Width caps the number of rendered points; 0 means len(Data).
	Width int
	// Min and Max fix the scale. Equal values auto-scale to the data.
	Min, Max float64
	Color    lipgloss.Color
}

// Render draws the sparkline.
func (s Sparkline) Render() string {
	if len(s.Data) == 0 {
		return ""
	}

	data := s.Data
	if s.Width > 0 && s.Width < len(data) {
		data = data[len(data)-s.Width:]
	}

	lo, hi := s.Min, s.Max
	if lo == hi {
		lo, hi = data[0], data[0]
		for _, v := range data {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}

	var b strings.Builder
	for _, v := range data {
		if hi == lo {
			b.WriteRune(sparkBlocks[len(sparkBlocks)/2])
			continue
		}
		norm := math.Max(0, math.Min(1, (v-lo)/(hi-lo)))
		b.WriteRune(sparkBlocks[int(norm*float64(len(sparkBlocks)-1))])
	}

	out := b.String()
	if s.Color != "" {
		out = lipgloss.NewStyle().Foreground(s.Color).Render(out)
	}

	return out
}
