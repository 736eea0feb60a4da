// Package planner contains the capacity and throughput optimization engine.
// Given a hardware snapshot, a runtime curve, and job constraints, it finds
// the thread count and concurrency that maximize jobs per hour without
// exceeding CPU or memory limits.
package planner

import (
	"errors"
	"fmt"

	"github.com/pl8n4/mriplan/pkg/mriplan/hardware"
)

// MemoryPolicy selects how the RAM budget limits concurrency. The source
// tools disagreed on this convention, so it is an explicit, injectable
// choice rather than a silent inconsistency.
type MemoryPolicy int

const (
	// MemPerJob treats the per-job memory footprint as independent of
	// thread count. This is the canonical policy: a subject's peak RSS is
	// dominated by its image volumes, not its worker threads.
	MemPerJob MemoryPolicy = iota

	// MemPerThread scales the per-job footprint with thread count, for
	// workflows whose workers each hold a private copy of the data.
	MemPerThread
)

// String returns the policy name.
func (p MemoryPolicy) String() string {
	switch p {
	case MemPerJob:
		return "per-job"
	case MemPerThread:
		return "per-thread"
	default:
		return "unknown"
	}
}

// Input validation errors, detected at the boundary before any planning runs.
var (
	// ErrInvalidMemPerJob indicates a non-positive per-job memory value.
	ErrInvalidMemPerJob = errors.New("invalid mem-per-job")

	// ErrInvalidSafeFraction indicates a safe-memory fraction outside (0, 1].
	ErrInvalidSafeFraction = errors.New("invalid safe-mem fraction")

	// ErrMemExceedsRAM indicates the per-job footprint cannot fit in total
	// RAM at all. Fatal: the job cannot run on this machine.
	ErrMemExceedsRAM = errors.New("mem-per-job exceeds total RAM")
)

// Constraints carries the per-job resource requirements and caps.
type Constraints struct {
	// MemPerJobGB is the peak RAM one job needs, in gigabytes. Must be > 0.
	MemPerJobGB float64

	// SafeMemFraction is the portion of total RAM the planner may hand to
	// jobs, reserving headroom for the OS. Must be in (0, 1].
	SafeMemFraction float64

	// MaxJobs caps concurrency regardless of capacity. Zero means no cap.
	MaxJobs int

	// Policy selects the RAM accounting convention.
	Policy MemoryPolicy
}

// Validate checks the constraints against the machine's total RAM. It
// reports the first violated precondition, naming the offending value.
func (c Constraints) Validate(totalRAMGB float64) error {
	if c.MemPerJobGB <= 0 {
		return fmt.Errorf("%w: %.2f GB (must be > 0)", ErrInvalidMemPerJob, c.MemPerJobGB)
	}
	if c.SafeMemFraction <= 0 || c.SafeMemFraction > 1 {
		return fmt.Errorf("%w: %.2f (must be > 0 and <= 1)", ErrInvalidSafeFraction, c.SafeMemFraction)
	}
	if c.MemPerJobGB > totalRAMGB {
		return fmt.Errorf("%w: %.1f GB needed, %.1f GB installed", ErrMemExceedsRAM, c.MemPerJobGB, totalRAMGB)
	}
	return nil
}

// Capacity computes the maximum feasible concurrency for jobs running with
// the given thread count. It is the minimum of the CPU-bound and RAM-bound
// capacities and the optional external cap, floored to 1: over-subscribing
// slightly beats refusing to plan.
func Capacity(threads int, hw hardware.Snapshot, c Constraints) int {
	cpuConc := max(hw.Cores/threads, 1)

	memPerJob := c.MemPerJobGB
	if c.Policy == MemPerThread {
		memPerJob *= float64(threads)
	}
	ramConc := max(int(hw.TotalRAMGB*c.SafeMemFraction/memPerJob), 1)

	conc := min(cpuConc, ramConc)
	if c.MaxJobs > 0 {
		conc = min(conc, c.MaxJobs)
	}
	return max(conc, 1)
}
