// Package batch turns optimizer output into wall-clock estimates for a fixed
// number of subjects. Large batches are split into a full-concurrency phase
// and an independently re-optimized remainder phase.
package batch

import (
	"github.com/pl8n4/mriplan/pkg/mriplan/curve"
	"github.com/pl8n4/mriplan/pkg/mriplan/hardware"
	"github.com/pl8n4/mriplan/pkg/mriplan/planner"
	"github.com/pl8n4/mriplan/pkg/mriplan/scaling"
)

// Phase is one stage of a batch plan: a fixed job count processed at one
// thread/concurrency configuration.
type Phase struct {
	// Name labels the phase in reports ("full batches", "remainder").
	Name string `json:"name" yaml:"name"`

	// Threads is the per-job thread count for this phase.
	Threads int `json:"threads" yaml:"threads"`

	// Concurrency is the number of jobs running simultaneously.
	Concurrency int `json:"concurrency" yaml:"concurrency"`

	// Throughput is the scaled local throughput in jobs/hour.
	Throughput float64 `json:"throughput" yaml:"throughput"`

	// Jobs is the number of subjects processed in this phase.
	Jobs int `json:"jobs" yaml:"jobs"`

	// Seconds is the estimated wall time for the phase.
	Seconds float64 `json:"seconds" yaml:"seconds"`
}

// HoursMinutes returns the phase estimate as whole hours and minutes,
// truncated rather than rounded. Truncation is applied consistently for
// phases and totals so the parts always line up with the sum.
func (p Phase) HoursMinutes() (int, int) {
	return SplitSeconds(p.Seconds)
}

// Plan is an ordered sequence of phases plus the summed estimate.
type Plan struct {
	Phases       []Phase `json:"phases" yaml:"phases"`
	TotalSeconds float64 `json:"total_seconds" yaml:"total_seconds"`
}

// HoursMinutes returns the total estimate as truncated hours and minutes.
func (p Plan) HoursMinutes() (int, int) {
	return SplitSeconds(p.TotalSeconds)
}

// SplitSeconds converts seconds into whole hours and minutes by integer
// truncation.
func SplitSeconds(seconds float64) (hours, minutes int) {
	s := int(seconds)
	return s / 3600, (s % 3600) / 60
}

// PlanBatches estimates wall time for totalJobs subjects.
//
// When the whole batch fits inside the unconstrained optimal concurrency it
// is planned as a single phase, optimized with the batch size as the
// concurrency cap. Otherwise the bulk runs at the unconstrained optimum and
// the remainder is re-optimized on its own, since a smaller batch can often
// afford more threads per job.
func PlanBatches(totalJobs int, cv curve.Curve, hw hardware.Snapshot, c planner.Constraints, factor scaling.Factor) (Plan, error) {
	full, err := planner.Optimize(cv, hw, c)
	if err != nil {
		return Plan{}, err
	}

	if totalJobs <= full.Concurrency {
		single, err := phaseFor("single batch", totalJobs, cv, hw, c, factor)
		if err != nil {
			return Plan{}, err
		}
		return Plan{Phases: []Phase{single}, TotalSeconds: single.Seconds}, nil
	}

	fullBatches := totalJobs / full.Concurrency
	done := fullBatches * full.Concurrency
	throughput := factor.Apply(full.ThroughputRef)
	phase1 := Phase{
		Name:        "full batches",
		Threads:     full.Threads,
		Concurrency: full.Concurrency,
		Throughput:  throughput,
		Jobs:        done,
		Seconds:     float64(done) / throughput * 3600,
	}

	plan := Plan{Phases: []Phase{phase1}, TotalSeconds: phase1.Seconds}

	if remainder := totalJobs - done; remainder > 0 {
		phase2, err := phaseFor("remainder", remainder, cv, hw, c, factor)
		if err != nil {
			return Plan{}, err
		}
		plan.Phases = append(plan.Phases, phase2)
		plan.TotalSeconds += phase2.Seconds
	}

	return plan, nil
}

// phaseFor optimizes a phase of jobs jobs, capping concurrency at the phase
// size (and at any tighter caller-supplied cap).
func phaseFor(name string, jobs int, cv curve.Curve, hw hardware.Snapshot, c planner.Constraints, factor scaling.Factor) (Phase, error) {
	cc := c
	if cc.MaxJobs == 0 || jobs < cc.MaxJobs {
		cc.MaxJobs = jobs
	}

	cand, err := planner.Optimize(cv, hw, cc)
	if err != nil {
		return Phase{}, err
	}

	throughput := factor.Apply(cand.ThroughputRef)
	return Phase{
		Name:        name,
		Threads:     cand.Threads,
		Concurrency: cand.Concurrency,
		Throughput:  throughput,
		Jobs:        jobs,
		Seconds:     float64(jobs) / throughput * 3600,
	}, nil
}
