package planner

import (
	"errors"
	"fmt"

	"github.com/pl8n4/mriplan/pkg/mriplan/curve"
	"github.com/pl8n4/mriplan/pkg/mriplan/hardware"
)

// ErrNoFeasibleThreads indicates the optimizer found no thread count to
// consider: every tabulated point exceeds the available cores. Callers are
// expected to check curve feasibility up front, so hitting this from
// Optimize signals an internal inconsistency rather than user error.
var ErrNoFeasibleThreads = errors.New("no feasible thread count")

// Candidate is one feasible point in the optimizer's search space.
type Candidate struct {
	// Threads is the thread count per job.
	Threads int `json:"threads" yaml:"threads"`

	// Concurrency is the number of jobs run simultaneously.
	Concurrency int `json:"concurrency" yaml:"concurrency"`

	// MinutesPerJob is the reference runtime at Threads.
	MinutesPerJob float64 `json:"minutes_per_job" yaml:"minutes_per_job"`

	// ThroughputRef is jobs/hour at reference-machine speed.
	ThroughputRef float64 `json:"throughput_ref" yaml:"throughput_ref"`
}

// Better reports whether candidate a beats candidate b under the planner's
// ordering: higher reference throughput first, then more threads, then more
// concurrency. The ordering is deliberate and reproducible; ties on
// throughput go to the configuration that finishes each subject sooner.
func Better(a, b Candidate) bool {
	if a.ThroughputRef != b.ThroughputRef {
		return a.ThroughputRef > b.ThroughputRef
	}
	if a.Threads != b.Threads {
		return a.Threads > b.Threads
	}
	return a.Concurrency > b.Concurrency
}

// Optimize searches the runtime curve for the thread count that maximizes
// jobs/hour at reference speed, subject to the hardware and job constraints.
// Thread counts exceeding the available cores are never considered.
func Optimize(cv curve.Curve, hw hardware.Snapshot, c Constraints) (Candidate, error) {
	feasible := cv.Filter(hw.Cores)
	if feasible.Empty() {
		return Candidate{}, fmt.Errorf("%w: no tabulated thread count within %d cores", ErrNoFeasibleThreads, hw.Cores)
	}

	var best Candidate
	found := false
	for _, p := range feasible.Points() {
		conc := Capacity(p.Threads, hw, c)
		cand := Candidate{
			Threads:       p.Threads,
			Concurrency:   conc,
			MinutesPerJob: p.Minutes,
			ThroughputRef: float64(conc) / p.Minutes * 60,
		}
		if !found || Better(cand, best) {
			best = cand
			found = true
		}
	}
	return best, nil
}
