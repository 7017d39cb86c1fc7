package analyzer

import (
	"math"

	"vitals/internal/domain"
)

// MetricSummary aggregates one metric over a queried window.
type MetricSummary struct {
	Name string
	Unit string
	Min  float64
	Avg  float64
	Max  float64
	// N is how many samples carried this metric (GPU may be sparse).
	N int
}

// Summarize computes min/avg/max per metric over the samples.
func Summarize(samples []domain.Sample) []MetricSummary {
	cpu := newAccumulator("CPU", "%")
	gpu := newAccumulator("GPU", "%")
	ram := newAccumulator("RAM", "%")
	read := newAccumulator("Disk Read", " B/s")
	write := newAccumulator("Disk Write", " B/s")

	for _, s := range samples {
		cpu.add(s.CPUPercent)
		ram.add(s.RAMPercent)
		if s.GPUPercent != nil {
			gpu.add(*s.GPUPercent)
		}
		read.add(s.DiskReadBPS)
		write.add(s.DiskWriteBPS)
	}

	return []MetricSummary{
		cpu.summary(),
		gpu.summary(),
		ram.summary(),
		read.summary(),
		write.summary(),
	}
}

type accumulator struct {
	name, unit string
	min, max   float64
	sum        float64
	n          int
}

func newAccumulator(name, unit string) *accumulator {
	return &accumulator{
		name: name,
		unit: unit,
		min:  math.Inf(1),
		max:  math.Inf(-1),
	}
}

func (a *accumulator) add(v float64) {
	a.min = math.Min(a.min, v)
	a.max = math.Max(a.max, v)
	a.sum += v
	a.n++
}

func (a *accumulator) summary() MetricSummary {
	s := MetricSummary{Name: a.name, Unit: a.unit, N: a.n}
	if a.n == 0 {
		return s
	}
	s.Min = a.min
	s.Max = a.max
	s.Avg = a.sum / float64(a.n)
	return s
}
