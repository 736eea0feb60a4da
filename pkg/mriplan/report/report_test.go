package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pl8n4/mriplan/pkg/mriplan/batch"
	"github.com/pl8n4/mriplan/pkg/mriplan/hardware"
	"github.com/pl8n4/mriplan/pkg/mriplan/planner"
	"github.com/pl8n4/mriplan/pkg/mriplan/scaling"
)

func sampleReport() *Report {
	r := &Report{
		Hardware:        hardware.Snapshot{Cores: 8, TotalRAMGB: 64, CPUMaxFreqMHz: 2600},
		Workflow:        "sswarper",
		MemPerJobGB:     8,
		SafeMemFraction: 0.9,
		MemoryPolicy:    "per-job",
		Scaling:         scaling.Factor{K: 1.0, Source: scaling.SourceFrequency, Note: "detected CPU max 2600MHz / 2600MHz reference = 1.00x"},
		Best:            planner.Candidate{Threads: 1, Concurrency: 7, MinutesPerJob: 100, ThroughputRef: 4.2},
		Throughput:      4.2,
		Subjects:        100,
		Plan: &batch.Plan{
			Phases: []batch.Phase{
				{Name: "full batches", Threads: 1, Concurrency: 7, Throughput: 4.2, Jobs: 98, Seconds: 84000},
				{Name: "remainder", Threads: 4, Concurrency: 2, Throughput: 3.0, Jobs: 2, Seconds: 2400},
			},
			TotalSeconds: 86400,
		},
	}
	r.ComputeID()
	return r
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry()
	reg.Register("plain", func() Formatter { return &PlainFormatter{} })

	f, err := reg.Get("plain")
	require.NoError(t, err)
	assert.IsType(t, &PlainFormatter{}, f)

	_, err = reg.Get("nope")
	assert.Error(t, err)
}

func TestDefaultRegistryFormats(t *testing.T) {
	assert.Equal(t, []string{"json", "plain", "pretty", "yaml"}, Available())
}

func TestComputeIDDeterministic(t *testing.T) {
	a := sampleReport()
	b := sampleReport()
	assert.Equal(t, a.ID, b.ID)

	c := sampleReport()
	c.Workflow = "afni_proc"
	c.ComputeID()
	assert.NotEqual(t, a.ID, c.ID)
}

func TestJSONFormatterDeterministic(t *testing.T) {
	// Identical inputs must render bit-identically across runs.
	f, err := Get("json")
	require.NoError(t, err)

	var first, second bytes.Buffer
	require.NoError(t, f.Format(&first, sampleReport()))
	require.NoError(t, f.Format(&second, sampleReport()))

	assert.Equal(t, first.String(), second.String())
	assert.Contains(t, first.String(), `"workflow": "sswarper"`)
	assert.Contains(t, first.String(), `"threads": 1`)
	assert.Contains(t, first.String(), `"concurrency": 7`)
}

func TestPlainFormatter(t *testing.T) {
	f, err := Get("plain")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, f.Format(&buf, sampleReport()))
	out := buf.String()

	assert.Contains(t, out, "Detected: 8 physical cores, 64.0 GB RAM")
	assert.Contains(t, out, "Workflow: sswarper")
	assert.Contains(t, out, "full batches")
	assert.Contains(t, out, "remainder")
	assert.Contains(t, out, "Total wall-time estimated: 24 h 0 m")
}

func TestPlainFormatterNoSubjects(t *testing.T) {
	// With no subject count the report omits every time-estimate section.
	r := sampleReport()
	r.Subjects = 0
	r.Plan = nil
	r.ComputeID()

	f, err := Get("plain")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, f.Format(&buf, r))
	out := buf.String()

	assert.Contains(t, out, "steady state")
	assert.NotContains(t, out, "Time for")
	assert.NotContains(t, out, "Total wall-time")
}

func TestPlainFormatterShortcut(t *testing.T) {
	r := sampleReport()
	r.Plan = nil
	r.Subjects = 2
	r.Shortcut = &batch.Shortcut{
		Threads:       12,
		MinutesPerJob: 32,
		Concurrency:   2,
		Throughput:    3.75,
		Seconds:       1920,
	}
	r.ComputeID()

	f, err := Get("plain")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, f.Format(&buf, r))
	out := buf.String()

	assert.Contains(t, out, "shortcut")
	assert.Contains(t, out, "Time for 2 subjects: 0 h 32 m")
}

func TestPrettyFormatter(t *testing.T) {
	f, err := Get("pretty")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, f.Format(&buf, sampleReport()))
	out := buf.String()

	assert.Contains(t, out, "sswarper")
	assert.Contains(t, out, "Recommendation")
}

func TestYAMLFormatter(t *testing.T) {
	f, err := Get("yaml")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, f.Format(&buf, sampleReport()))
	out := buf.String()

	assert.Contains(t, out, "workflow: sswarper")
	assert.Contains(t, out, "threads: 1")
}
