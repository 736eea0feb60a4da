package main

import (
	"errors"

	"github.com/pl8n4/mriplan/pkg/mriplan/planner"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var capacityCmd = &cobra.Command{
	Use:   "capacity",
	Short: "Compute max parallel jobs from cores and RAM alone",
	Long: `Compute the maximum number of jobs this machine can run in parallel from
core and RAM limits alone, without consulting a runtime curve. Each job is
assumed to use one core; pass --total-jobs for a batching summary.`,
	RunE:          runCapacity,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	capacityCmd.Flags().Float64P("mem-per-job", "m", 0, "peak RAM per job in GB (required)")
	capacityCmd.Flags().Float64("safe-mem", 0, "fraction of RAM to hand to jobs")
	capacityCmd.Flags().Int("total-jobs", 0, "total jobs to schedule (optional, for batching)")

	_ = viper.BindPFlag("capacity.mem_per_job", capacityCmd.Flags().Lookup("mem-per-job"))
	_ = viper.BindPFlag("capacity.safe_mem", capacityCmd.Flags().Lookup("safe-mem"))
	_ = viper.BindPFlag("capacity.total_jobs", capacityCmd.Flags().Lookup("total-jobs"))

	rootCmd.AddCommand(capacityCmd)
}

// runCapacity computes RAM- and CPU-bound capacity for single-core jobs.
func runCapacity(_ *cobra.Command, _ []string) error {
	initLogging()

	memPerJob := viper.GetFloat64("capacity.mem_per_job")
	if memPerJob == 0 {
		return errors.New("--mem-per-job is required")
	}

	safeMem := viper.GetFloat64("capacity.safe_mem")
	if safeMem == 0 {
		safeMem = viper.GetFloat64("safe_mem")
	}

	constraints := planner.Constraints{
		MemPerJobGB:     memPerJob,
		SafeMemFraction: safeMem,
	}

	hw := detectHardware()
	if err := constraints.Validate(hw.TotalRAMGB); err != nil {
		return err
	}

	maxJobs := planner.Capacity(1, hw, constraints)

	printInfo("Note: performance tends to plateau around 16-24 threads per job for most workflows.")
	printInfo("")
	printInfo("Detected hardware  : %d %s cores, %.1f GB RAM", hw.Cores, hw.CoreKind(), hw.TotalRAMGB)
	printInfo("Per-job requirement: 1 core, %.2f GB RAM", memPerJob)
	printInfo("Safe RAM fraction  : %.0f%%", safeMem*100)
	printInfo("Maximum parallel jobs: %d", maxJobs)

	if totalJobs := viper.GetInt("capacity.total_jobs"); totalJobs > 0 {
		batches := (totalJobs + maxJobs - 1) / maxJobs
		printInfo("")
		printInfo("Batching strategy for %d total jobs:", totalJobs)
		printInfo("  Jobs per batch   : %d", maxJobs)
		printInfo("  Number of batches: %d", batches)
		printInfo("  Total slots      : %d", batches*maxJobs)
	}

	return nil
}
