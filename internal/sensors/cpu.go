package sensors

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/v3/cpu"
)

// cpuAvgWindow is the number of readings averaged into the reported CPU
// usage. Raw per-second readings are too jumpy to chart.
const cpuAvgWindow = 8

type cpuReader struct {
	recent []float64

	percent func(ctx context.Context) ([]float64, error)
}

func newCPUReader() *cpuReader {
	return &cpuReader{
		percent: func(ctx context.Context) ([]float64, error) {
			return cpu.PercentWithContext(ctx, 0, false)
		},
	}
}

func (c *cpuReader) read(ctx context.Context) (float64, error) {
	vals, err := c.percent(ctx)
	if err != nil {
		return 0, fmt.Errorf("cpu percent: %w", err)
	}
	if len(vals) == 0 {
		return 0, fmt.Errorf("cpu percent: no data")
	}

	c.recent = append(c.recent, vals[0])
	if len(c.recent) > cpuAvgWindow {
		c.recent = c.recent[1:]
	}

	var sum float64
	for _, v := range c.recent {
		sum += v
	}

	return sum / float64(len(c.recent)), nil
}
