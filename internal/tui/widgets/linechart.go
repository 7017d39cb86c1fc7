package widgets

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Series is one line on a chart.
type Series struct {
	Name  string
	Data  []float64
	Color lipgloss.Color
}

// LineChart describes a block-character chart of one or more series over
// a shared time range.
type LineChart struct {
	Title  string
	Series []Series
	// Width and Height are the plot area in characters, excluding axes.
	Width  int
	Height int
	// Start and End bound the x axis labels.
	Start time.Time
	End   time.Time
	// YMax fixes the scale top; 0 auto-scales. The bottom is always 0.
	YMax float64
	// Unit is appended to y axis labels (e.g. "%", "MB/s").
	Unit string
}

type chartCell struct {
	ch    rune
	color lipgloss.Color
}

// Render draws the chart with a y-axis scale, the plot, an x-axis time
// span and a legend when more than one series is present.
func (c LineChart) Render() string {
	width := c.Width
	if width <= 0 {
		width = 60
	}
	height := c.Height
	if height <= 0 {
		height = 8
	}

	yMax := c.YMax
	if yMax <= 0 {
		for _, s := range c.Series {
			for _, v := range s.Data {
				yMax = math.Max(yMax, v)
			}
		}
	}
	if yMax <= 0 {
		yMax = 1
	}

	grid := make([][]chartCell, height)
	for i := range grid {
		grid[i] = make([]chartCell, width)
		for j := range grid[i] {
			grid[i][j] = chartCell{ch: ' '}
		}
	}

	for _, s := range c.Series {
		plotSeries(grid, s, width, height, yMax)
	}

	var b strings.Builder

	if c.Title != "" {
		b.WriteString(lipgloss.NewStyle().Bold(true).Render(c.Title))
		b.WriteByte('\n')
	}

	yLabelWidth := len(formatYLabel(yMax, c.Unit))

	for row := range height {
		label := strings.Repeat(" ", yLabelWidth)
		switch row {
		case 0:
			label = formatYLabel(yMax, c.Unit)
		case height - 1:
			label = fmt.Sprintf("%*s", yLabelWidth, "0"+c.Unit)
		}
		b.WriteString(gaugeFaint.Render(label))
		b.WriteString(gaugeFaint.Render(" ┤"))

		for col := range width {
			cell := grid[row][col]
			if cell.ch == ' ' || cell.color == "" {
				b.WriteRune(cell.ch)
				continue
			}
			b.WriteString(lipgloss.NewStyle().Foreground(cell.color).Render(string(cell.ch)))
		}
		b.WriteByte('\n')
	}

	b.WriteString(strings.Repeat(" ", yLabelWidth))
	b.WriteString(gaugeFaint.Render(" └" + strings.Repeat("─", width)))
	b.WriteByte('\n')

	if !c.Start.IsZero() && !c.End.IsZero() {
		left := c.Start.Local().Format("15:04")
		right := c.End.Local().Format("15:04")
		pad := width - len(left) - len(right)
		if pad < 1 {
			pad = 1
		}
		b.WriteString(strings.Repeat(" ", yLabelWidth+2))
		b.WriteString(gaugeFaint.Render(left + strings.Repeat(" ", pad) + right))
		b.WriteByte('\n')
	}

	if len(c.Series) > 1 {
		var parts []string
		for _, s := range c.Series {
			marker := lipgloss.NewStyle().Foreground(s.Color).Render("▄")
			parts = append(parts, marker+" "+s.Name)
		}
		b.WriteString(strings.Repeat(" ", yLabelWidth+2))
		b.WriteString(strings.Join(parts, "   "))
		b.WriteByte('\n')
	}

	return b.String()
}

// plotSeries fills columns bottom-up. The topmost cell of each column
// gets a partial block so adjacent columns read as a line.
func plotSeries(grid [][]chartCell, s Series, width, height int, yMax float64) {
	if len(s.Data) == 0 {
		return
	}

	buckets := resample(s.Data, width)

	for col, v := range buckets {
		if math.IsNaN(v) {
			continue
		}

		norm := math.Max(0, math.Min(1, v/yMax))
		levels := norm * float64(height) * float64(len(sparkBlocks))
		full := int(levels) / len(sparkBlocks)
		rem := int(levels) % len(sparkBlocks)

		for row := 0; row < full && row < height; row++ {
			grid[height-1-row][col] = chartCell{ch: '█', color: s.Color}
		}
		if rem > 0 && full < height {
			grid[height-1-full][col] = chartCell{ch: sparkBlocks[rem-1], color: s.Color}
		}
	}
}

// resample averages data into width buckets. Sparse data leaves NaN gaps
// rather than smearing neighbours.
func resample(data []float64, width int) []float64 {
	out := make([]float64, width)
	counts := make([]int, width)

	for i, v := range data {
		col := i * width / len(data)
		if col >= width {
			col = width - 1
		}
		out[col] += v
		counts[col]++
	}

	for i := range out {
		if counts[i] == 0 {
			out[i] = math.NaN()
			continue
		}
		out[i] /= float64(counts[i])
	}

	return out
}

func formatYLabel(v float64, unit string) string {
	if v >= 100 {
		return fmt.Sprintf("%.0f%s", v, unit)
	}
	return fmt.Sprintf("%.1f%s", v, unit)
}
