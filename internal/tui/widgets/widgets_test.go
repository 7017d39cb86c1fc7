package widgets

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGaugeRenderShowsPercent(t *testing.T) {
	out := Gauge{Label: "CPU", Width: 10, Percent: 42}.Render()

	assert.Contains(t, out, "CPU")
	assert.Contains(t, out, "42.0%")
}

func TestGaugeRenderAbsentSensor(t *testing.T) {
	out := Gauge{Label: "GPU", Width: 10, Absent: true}.Render()

	assert.Contains(t, out, "n/a")
	assert.NotContains(t, out, "%")
}

func TestGaugeClampsOutOfRange(t *testing.T) {
	out := Gauge{Label: "CPU", Width: 10, Percent: 250}.Render()
	assert.Contains(t, out, "100.0%")

	out = Gauge{Label: "CPU", Width: 10, Percent: -5}.Render()
	assert.Contains(t, out, "0.0%")
}

func TestSparklineWidth(t *testing.T) {
	data := make([]float64, 100)
	for i := range data {
		data[i] = float64(i)
	}

	out := Sparkline{Data: data, Width: 10, Min: 0, Max: 100}.Render()
	assert.Equal(t, 10, len([]rune(out)))
}

func TestSparklineEmptyData(t *testing.T) {
	assert.Empty(t, Sparkline{}.Render())
}

func TestSparklineFlatSeriesUsesMidBlock(t *testing.T) {
	out := Sparkline{Data: []float64{5, 5, 5}}.Render()
	assert.Equal(t, strings.Repeat(string(sparkBlocks[len(sparkBlocks)/2]), 3), out)
}

func TestResampleAverages(t *testing.T) {
	out := resample([]float64{0, 10, 20, 30}, 2)
	require.Len(t, out, 2)
	assert.Equal(t, 5.0, out[0])
	assert.Equal(t, 25.0, out[1])
}

func TestResampleLeavesGapsForSparseData(t *testing.T) {
	out := resample([]float64{50}, 4)
	require.Len(t, out, 4)
	assert.Equal(t, 50.0, out[0])
	assert.True(t, math.IsNaN(out[1]))
	assert.True(t, math.IsNaN(out[3]))
}

func TestLineChartRendersTitleAndAxis(t *testing.T) {
	chart := LineChart{
		Title:  "CPU Usage",
		Unit:   "%",
		YMax:   100,
		Width:  20,
		Height: 4,
		Series: []Series{{Name: "CPU", Data: []float64{10, 50, 90}}},
		Start:  time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC),
		End:    time.Date(2026, 8, 30, 11, 0, 0, 0, time.UTC),
	}

	out := chart.Render()

	assert.Contains(t, out, "CPU Usage")
	assert.Contains(t, out, "100%")
	assert.Contains(t, out, "0%")
}

func TestLineChartLegendForMultipleSeries(t *testing.T) {
	chart := LineChart{
		Width:  20,
		Height: 4,
		Series: []Series{
			{Name: "Read", Data: []float64{1, 2}},
			{Name: "Write", Data: []float64{2, 1}},
		},
	}

	out := chart.Render()

	assert.Contains(t, out, "Read")
	assert.Contains(t, out, "Write")
}

func TestLineChartEmptySeries(t *testing.T) {
	chart := LineChart{Width: 10, Height: 3}

	// Renders an empty frame without panicking.
	out := chart.Render()
	assert.NotEmpty(t, out)
}
