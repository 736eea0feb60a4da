package curve

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownWorkflow indicates that no curve is configured for the requested
// workflow.
var ErrUnknownWorkflow = errors.New("unknown workflow")

// Store is an immutable collection of runtime curves keyed by workflow name.
// It replaces any notion of a global lookup table: callers construct a store
// once and pass it to the planner.
type Store struct {
	curves map[string]Curve
}

// NewStore constructs a store from workflow runtime tables.
func NewStore(tables map[string]map[int]float64) (*Store, error) {
	curves := make(map[string]Curve, len(tables))
	for workflow, table := range tables {
		c, err := New(table)
		if err != nil {
			return nil, fmt.Errorf("workflow %q: %w", workflow, err)
		}
		curves[workflow] = c
	}
	return &Store{curves: curves}, nil
}

// WithCurves returns a new store containing the receiver's curves plus the
// given tables. Tables reusing an existing workflow name replace the
// built-in curve. The receiver is not modified.
func (s *Store) WithCurves(tables map[string]map[int]float64) (*Store, error) {
	merged := make(map[string]Curve, len(s.curves)+len(tables))
	for workflow, c := range s.curves {
		merged[workflow] = c
	}
	for workflow, table := range tables {
		c, err := New(table)
		if err != nil {
			return nil, fmt.Errorf("workflow %q: %w", workflow, err)
		}
		merged[workflow] = c
	}
	return &Store{curves: merged}, nil
}

// Get returns the curve for a workflow.
func (s *Store) Get(workflow string) (Curve, error) {
	c, ok := s.curves[workflow]
	if !ok {
		return Curve{}, fmt.Errorf("%w: %q (configured: %v)", ErrUnknownWorkflow, workflow, s.Workflows())
	}
	return c, nil
}

// Workflows returns the configured workflow names in sorted order.
func (s *Store) Workflows() []string {
	names := make([]string, 0, len(s.curves))
	for name := range s.curves {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
