// Package curve provides reference runtime curves for supported neuro-imaging
// workflows. A curve maps thread counts to measured minutes-per-subject on a
// known benchmark machine, and is immutable once constructed.
package curve

import (
	"errors"
	"fmt"
	"sort"
)

// ReferenceCPUFreqMHz is the maximum CPU frequency of the machine on which
// the built-in curves were measured. Scaling factors derived from local CPU
// frequency are relative to this value.
const ReferenceCPUFreqMHz = 2600.0

// ErrEmptyCurve indicates that a curve has no tabulated points.
var ErrEmptyCurve = errors.New("empty runtime curve")

// ErrInvalidPoint indicates that a curve point has an invalid thread count
// or runtime value.
var ErrInvalidPoint = errors.New("invalid curve point")

// Point is one measured entry of a runtime curve.
type Point struct {
	// Threads is the thread count the measurement was taken at.
	Threads int `json:"threads" yaml:"threads"`

	// Minutes is the measured minutes per subject at that thread count.
	Minutes float64 `json:"minutes" yaml:"minutes"`
}

// Curve is an immutable runtime curve for one workflow, ordered by ascending
// thread count. Curves need not be monotonic: runtimes may plateau or rise
// slightly at high thread counts.
type Curve struct {
	points []Point
}

// New constructs a curve from a thread-count to minutes-per-subject mapping.
// Every thread count must be >= 1 and every runtime must be > 0.
func New(table map[int]float64) (Curve, error) {
	if len(table) == 0 {
		return Curve{}, ErrEmptyCurve
	}

	points := make([]Point, 0, len(table))
	for threads, minutes := range table {
		if threads < 1 {
			return Curve{}, fmt.Errorf("%w: thread count %d (must be >= 1)", ErrInvalidPoint, threads)
		}
		if minutes <= 0 {
			return Curve{}, fmt.Errorf("%w: runtime %.3f min at %d threads (must be > 0)", ErrInvalidPoint, minutes, threads)
		}
		points = append(points, Point{Threads: threads, Minutes: minutes})
	}

	sort.Slice(points, func(i, j int) bool {
		return points[i].Threads < points[j].Threads
	})

	return Curve{points: points}, nil
}

// MustNew is like New but panics on error. It is intended for the built-in
// tables, which are validated by tests.
func MustNew(table map[int]float64) Curve {
	c, err := New(table)
	if err != nil {
		panic(err)
	}
	return c
}

// Empty reports whether the curve has no points.
func (c Curve) Empty() bool {
	return len(c.points) == 0
}

// Len returns the number of tabulated points.
func (c Curve) Len() int {
	return len(c.points)
}

// Points returns a copy of the curve's points in ascending thread order.
func (c Curve) Points() []Point {
	out := make([]Point, len(c.points))
	copy(out, c.points)
	return out
}

// Minutes returns the tabulated minutes-per-subject for an exact thread
// count. The second return value reports whether the thread count is
// tabulated.
func (c Curve) Minutes(threads int) (float64, bool) {
	for _, p := range c.points {
		if p.Threads == threads {
			return p.Minutes, true
		}
	}
	return 0, false
}

// MinThreads returns the smallest tabulated thread count.
func (c Curve) MinThreads() int {
	if c.Empty() {
		return 0
	}
	return c.points[0].Threads
}

// MaxThreads returns the largest tabulated thread count.
func (c Curve) MaxThreads() int {
	if c.Empty() {
		return 0
	}
	return c.points[len(c.points)-1].Threads
}

// Filter returns a new curve containing only points with thread counts at or
// below maxThreads. The receiver is not modified.
func (c Curve) Filter(maxThreads int) Curve {
	var points []Point
	for _, p := range c.points {
		if p.Threads <= maxThreads {
			points = append(points, p)
		}
	}
	return Curve{points: points}
}

// Interpolate estimates minutes-per-subject at an arbitrary thread count.
//
// If threads is tabulated, the tabulated runtime is returned as-is. If it
// falls strictly between two tabulated points, the runtime is linearly
// interpolated between them. If it falls outside the tabulated range, the
// runtime is clamped to the nearest endpoint and the returned thread count is
// reset to that endpoint's key so callers report a thread count the curve can
// actually vouch for.
func (c Curve) Interpolate(threads int) (minutes float64, at int, err error) {
	if c.Empty() {
		return 0, 0, ErrEmptyCurve
	}

	if m, ok := c.Minutes(threads); ok {
		return m, threads, nil
	}

	first := c.points[0]
	last := c.points[len(c.points)-1]
	if threads < first.Threads {
		return first.Minutes, first.Threads, nil
	}
	if threads > last.Threads {
		return last.Minutes, last.Threads, nil
	}

	// Locate the bracketing points. The curve is sorted, so the first point
	// above threads closes the bracket.
	for i := 1; i < len(c.points); i++ {
		low, high := c.points[i-1], c.points[i]
		if threads > low.Threads && threads < high.Threads {
			frac := float64(threads-low.Threads) / float64(high.Threads-low.Threads)
			return low.Minutes + (high.Minutes-low.Minutes)*frac, threads, nil
		}
	}

	// Unreachable for a sorted, non-empty curve.
	return 0, 0, fmt.Errorf("%w: no bracket for %d threads", ErrInvalidPoint, threads)
}
