package analyzer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vitals/internal/domain"
)

func TestSummarizeComputesMinAvgMax(t *testing.T) {
	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	samples := []domain.Sample{
		{Timestamp: base, CPUPercent: 10, RAMPercent: 40, DiskReadBPS: 100, DiskWriteBPS: 0},
		{Timestamp: base.Add(time.Second), CPUPercent: 20, RAMPercent: 60, DiskReadBPS: 300, DiskWriteBPS: 200},
		{Timestamp: base.Add(2 * time.Second), CPUPercent: 60, RAMPercent: 50, DiskReadBPS: 200, DiskWriteBPS: 100},
	}

	summaries := Summarize(samples)
	require.Len(t, summaries, 5)

	cpu := summaries[0]
	assert.Equal(t, "CPU", cpu.Name)
	assert.Equal(t, 10.0, cpu.Min)
	assert.Equal(t, 30.0, cpu.Avg)
	assert.Equal(t, 60.0, cpu.Max)
	assert.Equal(t, 3, cpu.N)

	ram := summaries[2]
	assert.Equal(t, "RAM", ram.Name)
	assert.Equal(t, 40.0, ram.Min)
	assert.Equal(t, 60.0, ram.Max)
}

func TestSummarizeHandlesSparseGPU(t *testing.T) {
	gpu := 80.0
	samples := []domain.Sample{
		{CPUPercent: 10, RAMPercent: 40},
		{CPUPercent: 20, RAMPercent: 40, GPUPercent: &gpu},
	}

	summaries := Summarize(samples)

	g := summaries[1]
	assert.Equal(t, "GPU", g.Name)
	assert.Equal(t, 1, g.N, "only samples with a GPU reading count")
	assert.Equal(t, 80.0, g.Min)
	assert.Equal(t, 80.0, g.Max)
}

func TestSummarizeEmptyInput(t *testing.T) {
	summaries := Summarize(nil)
	require.Len(t, summaries, 5)

	for _, s := range summaries {
		assert.Zero(t, s.N)
		assert.Zero(t, s.Min)
		assert.Zero(t, s.Avg)
		assert.Zero(t, s.Max)
	}
}
