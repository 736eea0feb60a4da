package main

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/pl8n4/mriplan/pkg/mriplan/batch"
	"github.com/pl8n4/mriplan/pkg/mriplan/config"
	"github.com/pl8n4/mriplan/pkg/mriplan/curve"
	"github.com/pl8n4/mriplan/pkg/mriplan/hardware"
	"github.com/pl8n4/mriplan/pkg/mriplan/logging"
	"github.com/pl8n4/mriplan/pkg/mriplan/planner"
	"github.com/pl8n4/mriplan/pkg/mriplan/report"
	"github.com/pl8n4/mriplan/pkg/mriplan/scaling"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// runPlan is the main planning command handler.
func runPlan(_ *cobra.Command, _ []string) error {
	initLogging()
	logger := logging.Get("planner")

	workflow := viper.GetString("workflow")
	if workflow == "" {
		return errors.New("--workflow is required (see 'mriplan curves' for options)")
	}

	memPerJob := viper.GetFloat64("mem_per_job")
	if memPerJob == 0 {
		return errors.New("--mem-per-job is required")
	}

	policy, err := parseMemPolicy(viper.GetString("mem_policy"))
	if err != nil {
		return err
	}

	constraints := planner.Constraints{
		MemPerJobGB:     memPerJob,
		SafeMemFraction: viper.GetFloat64("safe_mem"),
		MaxJobs:         viper.GetInt("max_jobs"),
		Policy:          policy,
	}

	store, err := loadStore()
	if err != nil {
		return err
	}

	cv, err := store.Get(workflow)
	if err != nil {
		return err
	}

	hw := detectHardware()
	logger.Debug("hardware detected", "cores", hw.Cores, "kind", hw.CoreKind(),
		"ram_gb", hw.TotalRAMGB, "freq_mhz", hw.CPUMaxFreqMHz)

	// Reject violated preconditions before any planning runs.
	if err := constraints.Validate(hw.TotalRAMGB); err != nil {
		return err
	}
	if cv.Filter(hw.Cores).Empty() {
		return fmt.Errorf("workflow %q has no tabulated thread count within %d cores (smallest is %d)",
			workflow, hw.Cores, cv.MinThreads())
	}

	factor, err := scalingFactor(hw)
	if err != nil {
		return err
	}
	logger.Debug("scaling factor derived", "k", factor.K, "source", factor.Source)

	best, err := planner.Optimize(cv, hw, constraints)
	if err != nil {
		return err
	}

	rpt := &report.Report{
		Hardware:        hw,
		Workflow:        workflow,
		MemPerJobGB:     constraints.MemPerJobGB,
		SafeMemFraction: constraints.SafeMemFraction,
		MaxJobs:         constraints.MaxJobs,
		MemoryPolicy:    policy.String(),
		Scaling:         factor,
		Best:            best,
		Throughput:      factor.Apply(best.ThroughputRef),
		Subjects:        viper.GetInt("subjects"),
	}

	if rpt.Subjects > 0 {
		if batch.ShortcutApplies(hw, rpt.Subjects) {
			sc, err := batch.EstimateShortcut(rpt.Subjects, cv, hw, factor)
			if err != nil {
				return err
			}
			rpt.Shortcut = &sc
		} else {
			plan, err := batch.PlanBatches(rpt.Subjects, cv, hw, constraints, factor)
			if err != nil {
				return err
			}
			rpt.Plan = &plan
		}
	}

	rpt.ComputeID()
	return render(rpt)
}

// initLogging configures logging from the quiet/verbose flags and the config
// file's logging section.
func initLogging() {
	level := viper.GetString("logging.level")
	if getVerbose() {
		level = "debug"
	}
	if err := logging.Init(logging.Config{
		Level:      level,
		Components: viper.GetStringMapString("logging.components"),
		Quiet:      getQuiet(),
	}); err != nil {
		printVerbose("Failed to initialize logging: %v", err)
	}
}

// loadStore builds the curve store from the built-in tables plus any curves
// declared in the config file.
func loadStore() (*curve.Store, error) {
	store := curve.Builtin()

	cfg, err := config.Load()
	if err != nil {
		printVerbose("Failed to load configuration, using built-in curves only: %v", err)
		return store, nil
	}

	tables, err := cfg.ParseCurves()
	if err != nil {
		return nil, err
	}
	if len(tables) == 0 {
		return store, nil
	}

	return store.WithCurves(tables)
}

// detectHardware captures the hardware snapshot, falling back to
// conservative defaults when probing fails.
func detectHardware() hardware.Snapshot {
	opts := hardware.Options{
		Logical:      viper.GetBool("logical_cores"),
		ReserveCores: viper.GetInt("reserve_cores"),
	}

	hw, err := hardware.Detect(opts)
	if err != nil {
		printVerbose("Failed to detect hardware, using defaults: %v", err)
		hw = hardware.Snapshot{
			Cores:      4,
			TotalRAMGB: 8,
			Logical:    opts.Logical,
		}
	}
	return hw
}

// scalingFactor derives k from the override flag, the micro-benchmark, or
// the CPU frequency ratio, in that order of precedence.
func scalingFactor(hw hardware.Snapshot) (scaling.Factor, error) {
	if override := viper.GetFloat64("freq_scale"); override != 0 {
		return scaling.FromOverride(override)
	}
	if viper.GetBool("benchmark") {
		printVerbose("Running matmul micro-benchmark")
		return scaling.FromBenchmark(), nil
	}
	return scaling.FromFrequency(hw.CPUMaxFreqMHz, curve.ReferenceCPUFreqMHz), nil
}

// parseMemPolicy maps the --mem-policy flag to a planner policy.
func parseMemPolicy(s string) (planner.MemoryPolicy, error) {
	switch s {
	case "per-job", "":
		return planner.MemPerJob, nil
	case "per-thread":
		return planner.MemPerThread, nil
	default:
		return 0, fmt.Errorf("invalid mem-policy %q (must be per-job or per-thread)", s)
	}
}

// render formats the report with the selected formatter and prints it.
func render(rpt *report.Report) error {
	name := viper.GetString("output")
	if name == "" {
		name = config.DefaultOutput
	}

	formatter, err := report.Get(name)
	if err != nil {
		return fmt.Errorf("%w (available: %v)", err, report.Available())
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, rpt); err != nil {
		return fmt.Errorf("formatting report: %w", err)
	}

	fmt.Print(buf.String())
	return nil
}
