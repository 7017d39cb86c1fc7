// Package sensors reads host resource metrics. It wraps the OS sensor
// queries for CPU, RAM, GPU and disk I/O and produces one immutable
// sample per Acquire call.
package sensors

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vitals/internal/domain"
	"vitals/internal/logger"
)

// Reader implements domain.SampleSource. It owns the state needed for
// derived quantities (previous disk byte counters, CPU smoothing window),
// so independent Reader instances never interfere.
type Reader struct {
	log logger.Logger

	cpu  *cpuReader
	gpu  *gpuReader
	disk *diskReader

	readRAM func(ctx context.Context) (float64, error)

	now func() time.Time
}

func NewReader(log logger.Logger) *Reader {
	return &Reader{
		log:     log,
		cpu:     newCPUReader(),
		gpu:     newGPUReader(),
		disk:    newDiskReader(),
		readRAM: readRAMPercent,
		now:     time.Now,
	}
}

// Acquire reads every sensor and assembles a sample. A single failing
// sensor nulls its field; the sample is only abandoned when both CPU and
// RAM are unreadable, which indicates the sensor subsystem itself is gone.
func (r *Reader) Acquire(ctx context.Context) (domain.Sample, error) {
	var s domain.Sample

	cpuPct, cpuErr := r.cpu.read(ctx)
	ramPct, ramErr := r.readRAM(ctx)

	if cpuErr != nil && ramErr != nil {
		return s, fmt.Errorf("%w: cpu: %v, ram: %v", domain.ErrSensorSubsystem, cpuErr, ramErr)
	}

	if cpuErr != nil {
		r.log.Warn("sensors: cpu read failed", "error", cpuErr)
	} else {
		s.CPUPercent = clampPercent(cpuPct)
	}

	if ramErr != nil {
		r.log.Warn("sensors: ram read failed", "error", ramErr)
	} else {
		s.RAMPercent = clampPercent(ramPct)
	}

	gpuPct, gpuErr := r.gpu.read(ctx)
	switch {
	case gpuErr == nil:
		v := clampPercent(gpuPct)
		s.GPUPercent = &v
	case errors.Is(gpuErr, domain.ErrSensorUnavailable):
		// No GPU sensor on this host. Field stays absent.
	default:
		r.log.Warn("sensors: gpu read failed", "error", gpuErr)
	}

	readBPS, writeBPS, first, diskErr := r.disk.read(ctx, r.now())
	if diskErr != nil {
		r.log.Warn("sensors: disk read failed", "error", diskErr)
	} else {
		s.DiskReadBPS = readBPS
		s.DiskWriteBPS = writeBPS
		s.FirstCycle = first
	}

	return s, nil
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
