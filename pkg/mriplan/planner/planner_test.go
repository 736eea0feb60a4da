package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pl8n4/mriplan/pkg/mriplan/hardware"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		constraints Constraints
		totalRAMGB  float64
		wantErr     error
	}{
		{
			name:        "valid",
			constraints: Constraints{MemPerJobGB: 8, SafeMemFraction: 0.9},
			totalRAMGB:  64,
		},
		{
			name:        "zero mem per job",
			constraints: Constraints{MemPerJobGB: 0, SafeMemFraction: 0.9},
			totalRAMGB:  64,
			wantErr:     ErrInvalidMemPerJob,
		},
		{
			name:        "negative mem per job",
			constraints: Constraints{MemPerJobGB: -2, SafeMemFraction: 0.9},
			totalRAMGB:  64,
			wantErr:     ErrInvalidMemPerJob,
		},
		{
			name:        "zero fraction",
			constraints: Constraints{MemPerJobGB: 8, SafeMemFraction: 0},
			totalRAMGB:  64,
			wantErr:     ErrInvalidSafeFraction,
		},
		{
			name:        "fraction above one",
			constraints: Constraints{MemPerJobGB: 8, SafeMemFraction: 1.2},
			totalRAMGB:  64,
			wantErr:     ErrInvalidSafeFraction,
		},
		{
			// Scenario: job cannot fit in this machine at all.
			name:        "mem exceeds total RAM",
			constraints: Constraints{MemPerJobGB: 100, SafeMemFraction: 0.9},
			totalRAMGB:  64,
			wantErr:     ErrMemExceedsRAM,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.constraints.Validate(tt.totalRAMGB)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCapacity(t *testing.T) {
	hw := hardware.Snapshot{Cores: 8, TotalRAMGB: 64}
	c := Constraints{MemPerJobGB: 8, SafeMemFraction: 0.9}

	tests := []struct {
		threads int
		want    int
	}{
		// ram_conc = floor(57.6/8) = 7 regardless of threads
		{threads: 1, want: 7}, // cpu_conc 8, ram wins
		{threads: 2, want: 4}, // cpu_conc 4
		{threads: 4, want: 2},
		{threads: 8, want: 1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Capacity(tt.threads, hw, c), "threads=%d", tt.threads)
	}
}

func TestCapacityNeverZero(t *testing.T) {
	// A job bigger than the safe RAM budget still plans one slot:
	// over-subscription beats refusing to plan.
	hw := hardware.Snapshot{Cores: 2, TotalRAMGB: 4}
	c := Constraints{MemPerJobGB: 3.9, SafeMemFraction: 0.5}

	assert.Equal(t, 1, Capacity(1, hw, c))
	assert.Equal(t, 1, Capacity(16, hw, c)) // more threads than cores
}

func TestCapacityMonotonicInMemory(t *testing.T) {
	// Increasing mem-per-job never increases concurrency.
	hw := hardware.Snapshot{Cores: 32, TotalRAMGB: 128}

	prev := Capacity(1, hw, Constraints{MemPerJobGB: 1, SafeMemFraction: 0.9})
	for mem := 2.0; mem <= 64; mem += 1 {
		cur := Capacity(1, hw, Constraints{MemPerJobGB: mem, SafeMemFraction: 0.9})
		assert.LessOrEqual(t, cur, prev, "mem=%.0f", mem)
		prev = cur
	}
}

func TestCapacityMaxJobsCap(t *testing.T) {
	hw := hardware.Snapshot{Cores: 16, TotalRAMGB: 64}
	c := Constraints{MemPerJobGB: 2, SafeMemFraction: 0.9, MaxJobs: 3}

	assert.Equal(t, 3, Capacity(1, hw, c))
}

func TestCapacityMemPerThreadPolicy(t *testing.T) {
	hw := hardware.Snapshot{Cores: 16, TotalRAMGB: 64}

	perJob := Constraints{MemPerJobGB: 4, SafeMemFraction: 0.9, Policy: MemPerJob}
	perThread := Constraints{MemPerJobGB: 4, SafeMemFraction: 0.9, Policy: MemPerThread}

	// At one thread the policies agree.
	assert.Equal(t, Capacity(1, hw, perJob), Capacity(1, hw, perThread))

	// At four threads the per-thread budget is 16 GB/job: floor(57.6/16)=3,
	// while the per-job policy still allows cpu_conc=4.
	assert.Equal(t, 4, Capacity(4, hw, perJob))
	assert.Equal(t, 3, Capacity(4, hw, perThread))
}

func TestMemoryPolicyString(t *testing.T) {
	assert.Equal(t, "per-job", MemPerJob.String())
	assert.Equal(t, "per-thread", MemPerThread.String())
}
