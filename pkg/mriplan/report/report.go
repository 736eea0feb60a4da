// Package report provides the planner's result model and formatters for
// rendering it (pretty, plain, json, yaml).
//
// The package uses a registry pattern so formatter implementations can be
// selected at runtime:
//
//	formatter, err := report.Get("pretty")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	var buf bytes.Buffer
//	if err := formatter.Format(&buf, rpt); err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(buf.String())
package report

import (
	"bytes"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/pl8n4/mriplan/pkg/mriplan/batch"
	"github.com/pl8n4/mriplan/pkg/mriplan/hardware"
	"github.com/pl8n4/mriplan/pkg/mriplan/planner"
	"github.com/pl8n4/mriplan/pkg/mriplan/scaling"
)

// Report contains the complete planner output for formatting. Downstream
// automation parses the json rendering to size its own process and thread
// pools.
type Report struct {
	// ID is a deterministic identifier for this plan, derived from the
	// inputs. Identical inputs always produce the identical ID, so repeated
	// runs stay bit-for-bit reproducible.
	ID string `json:"id" yaml:"id"`

	// Hardware is the detected machine snapshot the plan was computed for.
	Hardware hardware.Snapshot `json:"hardware" yaml:"hardware"`

	// Workflow is the runtime curve the plan used.
	Workflow string `json:"workflow" yaml:"workflow"`

	// MemPerJobGB is the per-job peak memory the plan assumed.
	MemPerJobGB float64 `json:"mem_per_job_gb" yaml:"mem_per_job_gb"`

	// SafeMemFraction is the portion of RAM handed to jobs.
	SafeMemFraction float64 `json:"safe_mem_fraction" yaml:"safe_mem_fraction"`

	// MaxJobs is the external concurrency cap, 0 if none.
	MaxJobs int `json:"max_jobs,omitempty" yaml:"max_jobs,omitempty"`

	// MemoryPolicy names the RAM accounting convention.
	MemoryPolicy string `json:"memory_policy" yaml:"memory_policy"`

	// Scaling is the derived speed factor and its provenance.
	Scaling scaling.Factor `json:"scaling" yaml:"scaling"`

	// Best is the winning optimizer candidate at reference speed.
	Best planner.Candidate `json:"best" yaml:"best"`

	// Throughput is the scaled local throughput of Best, jobs/hour.
	Throughput float64 `json:"throughput" yaml:"throughput"`

	// Subjects is the requested job count; 0 disables time estimation.
	Subjects int `json:"subjects" yaml:"subjects"`

	// Shortcut holds the cores-exceed-subjects plan when that path fired.
	Shortcut *batch.Shortcut `json:"shortcut,omitempty" yaml:"shortcut,omitempty"`

	// Plan holds the two-phase batch estimate when Subjects > 0 and the
	// shortcut did not fire.
	Plan *batch.Plan `json:"plan,omitempty" yaml:"plan,omitempty"`
}

// ComputeID stamps the report with its deterministic plan ID. It must be
// called after all input fields are set. The ID is a name-based (SHA-1)
// UUID over a canonical rendering of the inputs, so it carries no clock or
// randomness.
func (r *Report) ComputeID() {
	canonical := fmt.Sprintf("mriplan|%s|%d|%t|%.3f|%.0f|%.3f|%.3f|%d|%s|%.6f|%s|%d",
		r.Workflow,
		r.Hardware.Cores,
		r.Hardware.Logical,
		r.Hardware.TotalRAMGB,
		r.Hardware.CPUMaxFreqMHz,
		r.MemPerJobGB,
		r.SafeMemFraction,
		r.MaxJobs,
		r.MemoryPolicy,
		r.Scaling.K,
		r.Scaling.Source,
		r.Subjects,
	)
	r.ID = uuid.NewSHA1(uuid.NameSpaceOID, []byte(canonical)).String()
}

// Formatter is the interface that all report formatters implement.
type Formatter interface {
	// Format writes the formatted report to the buffer.
	Format(w *bytes.Buffer, r *Report) error
}

// FormatterFactory is a function that creates a new Formatter instance.
type FormatterFactory func() Formatter

// Registry manages formatter registration and lookup.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]FormatterFactory
}

// NewRegistry creates a new formatter registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]FormatterFactory)}
}

// Register adds a formatter factory to the registry, replacing any existing
// formatter with the same name.
func (r *Registry) Register(name string, factory FormatterFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = factory
}

// Get returns a new formatter instance by name.
func (r *Registry) Get(name string) (Formatter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	factory, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("unknown formatter: %s", name)
	}
	return factory(), nil
}

// Available returns a sorted list of all registered formatter names.
func (r *Registry) Available() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultRegistry is the global formatter registry.
var DefaultRegistry = NewRegistry()

// Register adds a formatter factory to the default registry.
func Register(name string, factory FormatterFactory) {
	DefaultRegistry.Register(name, factory)
}

// Get returns a new formatter instance from the default registry.
func Get(name string) (Formatter, error) {
	return DefaultRegistry.Get(name)
}

// Available returns all formatter names from the default registry.
func Available() []string {
	return DefaultRegistry.Available()
}
