package hardware

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

const bytesPerGB = 1 << 30

// Detect captures a hardware snapshot using gopsutil, with a /proc/cpuinfo
// fallback for CPU frequency on Linux. Frequency detection failures are not
// fatal: the snapshot carries a zero frequency and the scaling estimator
// falls back to assuming reference speed.
func Detect(opts Options) (Snapshot, error) {
	cores, err := cpu.Counts(opts.Logical)
	if err != nil || cores < 1 {
		// Physical-core counting is unavailable on some platforms; retry
		// with the opposite setting before giving up.
		cores, err = cpu.Counts(!opts.Logical)
		if err != nil {
			return Snapshot{}, fmt.Errorf("counting CPU cores: %w", err)
		}
	}

	if opts.ReserveCores > 0 {
		cores -= opts.ReserveCores
	}
	cores = max(cores, 1)

	vm, err := mem.VirtualMemory()
	if err != nil {
		return Snapshot{}, fmt.Errorf("reading total RAM: %w", err)
	}

	return Snapshot{
		Cores:         cores,
		TotalRAMGB:    float64(vm.Total) / bytesPerGB,
		CPUMaxFreqMHz: detectMaxFreqMHz(),
		Logical:       opts.Logical,
	}, nil
}

// detectMaxFreqMHz queries the CPU's maximum frequency. It tries gopsutil's
// CPU info first and falls back to averaging the "cpu MHz" lines from
// /proc/cpuinfo. Returns 0 when the frequency cannot be determined.
func detectMaxFreqMHz() float64 {
	if infos, err := cpu.Info(); err == nil {
		var best float64
		for _, info := range infos {
			if info.Mhz > best {
				best = info.Mhz
			}
		}
		if best > 0 {
			return best
		}
	}

	return procCPUInfoMHz()
}

// procCPUInfoMHz averages the per-core "cpu MHz" entries from /proc/cpuinfo.
// Returns 0 if the file is missing or holds no frequency lines.
func procCPUInfoMHz() float64 {
	data, err := os.ReadFile("/proc/cpuinfo")
	if err != nil {
		return 0
	}

	var sum float64
	var n int
	for _, line := range strings.Split(string(data), "\n") {
		if !strings.HasPrefix(line, "cpu MHz") {
			continue
		}
		_, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		mhz, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			continue
		}
		sum += mhz
		n++
	}

	if n == 0 {
		return 0
	}
	return sum / float64(n)
}
