package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pl8n4/mriplan/pkg/mriplan/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `Manage mriplan configuration settings.

Configuration is loaded from:
  1. $XDG_CONFIG_HOME/mriplan/config.yaml (if set)
  2. ~/.config/mriplan/config.yaml

Environment variables can override config file settings using the MRIPLAN_ prefix:
  MRIPLAN_SAFE_MEM=0.8
  MRIPLAN_OUTPUT=json
  MRIPLAN_RESERVE_CORES=2`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Display the current configuration settings from all sources.`,
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create default configuration file",
	Long:  `Create a default configuration file if one doesn't exist.`,
	RunE:  runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show configuration file path",
	Long:  `Display the path to the configuration file.`,
	RunE:  runConfigPath,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

// runConfigShow displays the current configuration.
func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		printError("Failed to load configuration: %v", err)
		// Show defaults anyway
		cfg = &config.Config{
			SafeMem: config.DefaultSafeMemFraction,
			Output:  config.DefaultOutput,
		}
		cfg.Logging.Level = config.DefaultLogLevel
	}

	// Show config file being used
	if configFile := viper.ConfigFileUsed(); configFile != "" {
		fmt.Printf("Config file: %s\n\n", configFile)
	} else {
		fmt.Println("Config file: (using defaults, no file found)")
		fmt.Println()
	}

	fmt.Println("Current Configuration:")
	fmt.Println("----------------------")
	fmt.Printf("safe_mem:       %.2f\n", cfg.SafeMem)
	fmt.Printf("output:         %s\n", cfg.Output)
	fmt.Printf("logical_cores:  %t\n", cfg.LogicalCores)
	fmt.Printf("reserve_cores:  %d\n", cfg.ReserveCores)
	fmt.Printf("logging.level:  %s\n", cfg.Logging.Level)
	if len(cfg.Curves) > 0 {
		fmt.Printf("curves:         %d additional workflow(s)\n", len(cfg.Curves))
	} else {
		fmt.Println("curves:         (built-in only)")
	}

	// Show any environment overrides
	fmt.Println("\nEnvironment Overrides:")
	fmt.Println("----------------------")
	envVars := []string{
		"MRIPLAN_SAFE_MEM",
		"MRIPLAN_OUTPUT",
		"MRIPLAN_LOGICAL_CORES",
		"MRIPLAN_RESERVE_CORES",
		"MRIPLAN_LOGGING_LEVEL",
	}

	anyOverrides := false
	for _, name := range envVars {
		if val := os.Getenv(name); val != "" {
			fmt.Printf("%s=%s\n", name, val)
			anyOverrides = true
		}
	}
	if !anyOverrides {
		fmt.Println("(none)")
	}

	return nil
}

// runConfigInit creates a default config file.
func runConfigInit(cmd *cobra.Command, args []string) error {
	if err := config.WriteDefault(); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	configDir, err := config.ConfigDir()
	if err != nil {
		return err
	}

	printInfo("Config file ready: %s", filepath.Join(configDir, "config.yaml"))
	return nil
}

// runConfigPath prints the config file path.
func runConfigPath(cmd *cobra.Command, args []string) error {
	if configFile := viper.ConfigFileUsed(); configFile != "" {
		fmt.Println(configFile)
		return nil
	}

	configDir, err := config.ConfigDir()
	if err != nil {
		return err
	}

	fmt.Println(filepath.Join(configDir, "config.yaml"))
	return nil
}
