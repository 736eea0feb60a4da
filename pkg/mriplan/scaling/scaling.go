// Package scaling derives the speed factor k that translates
// reference-machine throughput into local-machine throughput.
//
// Every source resolves to one convention: k is the local machine's speed
// relative to the reference machine, so k > 1 means faster than reference
// and throughput is always multiplied by k. The micro-benchmark measures
// elapsed time, whose ratio runs the opposite way; FromBenchmark inverts it
// (k = reference elapsed / local elapsed) so callers never have to care
// which source produced the factor.
package scaling

import (
	"errors"
	"fmt"
)

// Source identifies how a scaling factor was derived.
type Source string

const (
	// SourceOverride means the caller supplied k directly.
	SourceOverride Source = "override"

	// SourceFrequency means k is the ratio of local to reference CPU
	// frequency.
	SourceFrequency Source = "frequency"

	// SourceBenchmark means k was measured with the matmul micro-benchmark.
	SourceBenchmark Source = "benchmark"
)

// ErrInvalidFactor indicates a non-positive scaling factor override.
var ErrInvalidFactor = errors.New("invalid scaling factor")

// Factor is a derived speed scaling factor with its provenance.
type Factor struct {
	// K is the multiplicative speed factor. K > 1 means the local machine
	// is faster than the reference machine.
	K float64 `json:"k" yaml:"k"`

	// Source identifies the derivation method.
	Source Source `json:"source" yaml:"source"`

	// Note is a human-readable derivation for the report.
	Note string `json:"note" yaml:"note"`
}

// Apply translates a reference-machine throughput (jobs/hour) to the local
// machine.
func (f Factor) Apply(throughputRef float64) float64 {
	return throughputRef * f.K
}

// FromOverride builds a factor from an explicit caller-supplied k.
func FromOverride(k float64) (Factor, error) {
	if k <= 0 {
		return Factor{}, fmt.Errorf("%w: %.3f (must be > 0)", ErrInvalidFactor, k)
	}
	return Factor{
		K:      k,
		Source: SourceOverride,
		Note:   fmt.Sprintf("user-supplied k=%.2fx", k),
	}, nil
}

// FromFrequency derives k from the local CPU's maximum frequency relative to
// the reference machine's. A zero or negative local frequency means the
// frequency could not be detected; the factor falls back to 1.0 (assume
// reference speed) rather than failing the run.
func FromFrequency(localMHz, referenceMHz float64) Factor {
	if localMHz <= 0 {
		return Factor{
			K:      1.0,
			Source: SourceFrequency,
			Note:   "CPU frequency unavailable, assuming reference speed (k=1.00x)",
		}
	}
	k := localMHz / referenceMHz
	return Factor{
		K:      k,
		Source: SourceFrequency,
		Note:   fmt.Sprintf("detected CPU max %.0fMHz / %.0fMHz reference = %.2fx", localMHz, referenceMHz, k),
	}
}
