package sensors

import (
	"context"
	"fmt"
	"time"

	"github.com/shirou/gopsutil/v3/disk"
)

type diskCounters struct {
	ReadBytes  uint64
	WriteBytes uint64
}

// diskReader derives read/write byte rates from the delta between raw
// disk counters across calls. The very first call has no prior
// observation and reports the zero sentinel.
type diskReader struct {
	last     diskCounters
	lastTime time.Time
	primed   bool

	counters func(ctx context.Context) (diskCounters, error)
}

func newDiskReader() *diskReader {
	return &diskReader{
		counters: readDiskCounters,
	}
}

func readDiskCounters(ctx context.Context) (diskCounters, error) {
	stats, err := disk.IOCountersWithContext(ctx)
	if err != nil {
		return diskCounters{}, fmt.Errorf("disk io counters: %w", err)
	}

	var total diskCounters
	for _, s := range stats {
		total.ReadBytes += s.ReadBytes
		total.WriteBytes += s.WriteBytes
	}

	return total, nil
}

func (d *diskReader) read(ctx context.Context, now time.Time) (readBPS, writeBPS float64, first bool, err error) {
	curr, err := d.counters(ctx)
	if err != nil {
		return 0, 0, false, err
	}

	last := d.last
	lastTime := d.lastTime
	primed := d.primed

	d.last = curr
	d.lastTime = now
	d.primed = true

	if !primed {
		return 0, 0, true, nil
	}

	dt := now.Sub(lastTime).Seconds()
	if dt <= 0 {
		return 0, 0, false, nil
	}

	if curr.ReadBytes >= last.ReadBytes {
		readBPS = float64(curr.ReadBytes-last.ReadBytes) / dt
	}
	if curr.WriteBytes >= last.WriteBytes {
		writeBPS = float64(curr.WriteBytes-last.WriteBytes) / dt
	}

	return readBPS, writeBPS, false, nil
}
