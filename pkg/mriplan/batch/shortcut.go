package batch

import (
	"github.com/pl8n4/mriplan/pkg/mriplan/curve"
	"github.com/pl8n4/mriplan/pkg/mriplan/hardware"
	"github.com/pl8n4/mriplan/pkg/mriplan/scaling"
)

// PlateauThreads caps the shortcut estimator's ideal thread count. Measured
// speedups flatten out around 16-24 threads per job for the supported
// workflows, so handing a job more than this buys nothing.
const PlateauThreads = 24

// Shortcut is the plan for the cores-exceed-subjects case: every subject
// runs at once, and each gets as many threads as the core/subject ratio
// allows (up to the plateau).
type Shortcut struct {
	// Threads is the per-job thread count. When the ideal count falls
	// outside the tabulated range it is reset to the nearest tabulated key.
	Threads int `json:"threads" yaml:"threads"`

	// MinutesPerJob is the (possibly interpolated) reference runtime.
	MinutesPerJob float64 `json:"minutes_per_job" yaml:"minutes_per_job"`

	// Interpolated reports whether MinutesPerJob was interpolated between
	// tabulated points rather than read directly.
	Interpolated bool `json:"interpolated" yaml:"interpolated"`

	// Concurrency is fixed at the subject count: one slot per subject.
	Concurrency int `json:"concurrency" yaml:"concurrency"`

	// Throughput is the scaled local throughput in jobs/hour.
	Throughput float64 `json:"throughput" yaml:"throughput"`

	// Seconds is the estimated wall time for the whole batch.
	Seconds float64 `json:"seconds" yaml:"seconds"`
}

// HoursMinutes returns the estimate as truncated hours and minutes.
func (s Shortcut) HoursMinutes() (int, int) {
	return SplitSeconds(s.Seconds)
}

// ShortcutApplies reports whether the shortcut path should be taken: more
// cores than subjects, with at least one subject.
func ShortcutApplies(hw hardware.Snapshot, subjects int) bool {
	return subjects > 0 && hw.Cores > subjects
}

// EstimateShortcut computes the ideal-thread-count plan for the case where
// cores vastly exceed subjects. The ideal count is floor(cores/subjects)
// clamped to [1, PlateauThreads]; its runtime comes straight from the curve
// when tabulated, or by linear interpolation between the bracketing points
// otherwise.
func EstimateShortcut(subjects int, cv curve.Curve, hw hardware.Snapshot, factor scaling.Factor) (Shortcut, error) {
	ideal := hw.Cores / subjects
	ideal = max(ideal, 1)
	ideal = min(ideal, PlateauThreads)

	_, tabulated := cv.Minutes(ideal)
	minutes, at, err := cv.Interpolate(ideal)
	if err != nil {
		return Shortcut{}, err
	}

	throughput := factor.Apply(float64(subjects) / minutes * 60)
	return Shortcut{
		Threads:       at,
		MinutesPerJob: minutes,
		Interpolated:  !tabulated && at == ideal,
		Concurrency:   subjects,
		Throughput:    throughput,
		Seconds:       float64(subjects) / throughput * 3600,
	}, nil
}
