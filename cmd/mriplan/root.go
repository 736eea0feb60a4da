package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pl8n4/mriplan/pkg/mriplan/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "mriplan",
		Short: "Recommend threads-per-job and concurrency for neuro-imaging batches",
		Long: `Mriplan recommends how many threads to give each neuro-imaging job and how
many jobs to run concurrently, given this machine's cores, RAM, and an
empirically measured speed-vs-threads curve. With a subject count it also
estimates total wall-clock time, split into full batches and a remainder.

It is an offline planning calculator: it never launches jobs itself.

Examples:
  mriplan -w sswarper -m 8                  # Recommend threads and concurrency
  mriplan -w sswarper -m 8 --subjects 100   # Also estimate wall time
  mriplan -w afni_proc -m 4 --freq-scale 1.1
  mriplan capacity -m 5 --total-jobs 80     # RAM/core capacity only, no curves
  mriplan curves                            # List configured workflows`,
		Args:          cobra.NoArgs,
		RunE:          runPlan,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func init() {
	cobra.OnInitialize(initConfig)

	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.config/mriplan/config.yaml)")
	rootCmd.PersistentFlags().StringP("output", "o", "", "output format (pretty, plain, json, yaml)")
	rootCmd.PersistentFlags().Bool("logical-cores", false, "count logical cores (hyperthreads) instead of physical")
	rootCmd.PersistentFlags().Int("reserve-cores", 0, "cores held back from planning")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "minimal output")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "debug output")

	// Plan flags (root command only)
	rootCmd.Flags().StringP("workflow", "w", "", "workflow curve to use (see 'mriplan curves')")
	rootCmd.Flags().Float64P("mem-per-job", "m", 0, "peak RAM per job in GB (required)")
	rootCmd.Flags().IntP("subjects", "n", 0, "number of subjects to process (0 skips time estimation)")
	rootCmd.Flags().Float64("safe-mem", 0, "fraction of RAM to hand to jobs")
	rootCmd.Flags().Float64("freq-scale", 0, "override the speed-scaling factor k")
	rootCmd.Flags().Bool("benchmark", false, "derive k from a matmul micro-benchmark instead of CPU frequency")
	rootCmd.Flags().Int("max-jobs", 0, "cap on concurrent jobs (0 = no cap)")
	rootCmd.Flags().String("mem-policy", "per-job", "RAM accounting policy (per-job, per-thread)")

	// Bind flags to viper
	_ = viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	_ = viper.BindPFlag("logical_cores", rootCmd.PersistentFlags().Lookup("logical-cores"))
	_ = viper.BindPFlag("reserve_cores", rootCmd.PersistentFlags().Lookup("reserve-cores"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("workflow", rootCmd.Flags().Lookup("workflow"))
	_ = viper.BindPFlag("mem_per_job", rootCmd.Flags().Lookup("mem-per-job"))
	_ = viper.BindPFlag("subjects", rootCmd.Flags().Lookup("subjects"))
	_ = viper.BindPFlag("safe_mem", rootCmd.Flags().Lookup("safe-mem"))
	_ = viper.BindPFlag("freq_scale", rootCmd.Flags().Lookup("freq-scale"))
	_ = viper.BindPFlag("benchmark", rootCmd.Flags().Lookup("benchmark"))
	_ = viper.BindPFlag("max_jobs", rootCmd.Flags().Lookup("max-jobs"))
	_ = viper.BindPFlag("mem_policy", rootCmd.Flags().Lookup("mem-policy"))
}

// initConfig reads in config file and environment variables.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Set config name and type
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")

		// Add config paths in order of precedence
		if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
			viper.AddConfigPath(filepath.Join(xdgConfigHome, "mriplan"))
		}

		homeDir, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(homeDir, ".config", "mriplan"))
		}
	}

	// Set environment variable prefix and enable auto env binding
	viper.SetEnvPrefix("MRIPLAN")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	// Set defaults from config package
	viper.SetDefault("safe_mem", config.DefaultSafeMemFraction)
	viper.SetDefault("output", config.DefaultOutput)
	viper.SetDefault("logging.level", config.DefaultLogLevel)

	// Read config file (ignore if not found)
	_ = viper.ReadInConfig()
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		printError("%v", err)
	}
	return err
}

// getVerbose returns true if verbose mode is enabled.
func getVerbose() bool {
	return viper.GetBool("verbose")
}

// getQuiet returns true if quiet mode is enabled.
func getQuiet() bool {
	return viper.GetBool("quiet")
}

// printVerbose prints a message if verbose mode is enabled.
func printVerbose(format string, args ...interface{}) {
	if getVerbose() && !getQuiet() {
		fmt.Fprintf(os.Stderr, "[DEBUG] "+format+"\n", args...)
	}
}

// printInfo prints a message if quiet mode is not enabled.
func printInfo(format string, args ...interface{}) {
	if !getQuiet() {
		fmt.Printf(format+"\n", args...)
	}
}

// printError prints an error message to stderr.
func printError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}
