package sensors

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/v3/mem"
)

func readRAMPercent(ctx context.Context) (float64, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("virtual memory: %w", err)
	}
	return vm.UsedPercent, nil
}
