package sensors

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"vitals/internal/domain"
)

const gpuQueryTimeout = 2 * time.Second

// gpuReader probes GPU utilization through nvidia-smi. Hosts without the
// binary report domain.ErrSensorUnavailable and the probe is not retried.
type gpuReader struct {
	missing bool

	query func(ctx context.Context) (string, error)
}

func newGPUReader() *gpuReader {
	return &gpuReader{
		query: func(ctx context.Context) (string, error) {
			out, err := exec.CommandContext(ctx,
				"nvidia-smi",
				"--query-gpu=utilization.gpu",
				"--format=csv,noheader,nounits",
			).Output()
			return string(out), err
		},
	}
}

func (g *gpuReader) read(ctx context.Context) (float64, error) {
	if g.missing {
		return 0, domain.ErrSensorUnavailable
	}

	queryCtx, cancel := context.WithTimeout(ctx, gpuQueryTimeout)
	defer cancel()

	out, err := g.query(queryCtx)
	if err != nil {
		if _, lookErr := exec.LookPath("nvidia-smi"); lookErr != nil {
			g.missing = true
			return 0, domain.ErrSensorUnavailable
		}
		return 0, fmt.Errorf("nvidia-smi: %w", err)
	}

	line, _, _ := strings.Cut(strings.TrimSpace(out), "\n")
	v, err := strconv.ParseFloat(strings.TrimSpace(line), 64)
	if err != nil {
		return 0, fmt.Errorf("nvidia-smi output %q: %w", line, err)
	}

	return v, nil
}
