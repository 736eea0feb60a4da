// Package hardware provides detection of the local machine's CPU and memory
// resources for the mriplan planner. It captures a single immutable snapshot
// per run; the planner never re-probes.
package hardware

import "fmt"

// Snapshot contains the detected hardware resources the planner works from.
// It is captured once per invocation and never mutated.
type Snapshot struct {
	// Cores is the number of usable CPU cores, after any reservation.
	Cores int `json:"cores" yaml:"cores"`

	// TotalRAMGB is the total physical RAM in gigabytes.
	TotalRAMGB float64 `json:"total_ram_gb" yaml:"total_ram_gb"`

	// CPUMaxFreqMHz is the maximum CPU frequency in MHz. Zero means the
	// frequency could not be determined.
	CPUMaxFreqMHz float64 `json:"cpu_max_freq_mhz" yaml:"cpu_max_freq_mhz"`

	// Logical reports whether Cores counts logical cores (hyperthreads)
	// rather than physical cores.
	Logical bool `json:"logical" yaml:"logical"`
}

// Options configures hardware detection.
type Options struct {
	// Logical selects logical (hyperthread) core counting instead of
	// physical. There is no hidden default in the planner itself; the CLI
	// defaults to physical and exposes this as an explicit toggle.
	Logical bool

	// ReserveCores is the number of cores to hold back from planning, for
	// the OS or other workloads. The snapshot never drops below one core.
	ReserveCores int
}

// CoreKind returns "logical" or "physical" for report output.
func (s Snapshot) CoreKind() string {
	if s.Logical {
		return "logical"
	}
	return "physical"
}

// String returns a short human-readable description of the snapshot.
func (s Snapshot) String() string {
	return fmt.Sprintf("%d %s cores, %.1f GB RAM, %.0f MHz max", s.Cores, s.CoreKind(), s.TotalRAMGB, s.CPUMaxFreqMHz)
}
