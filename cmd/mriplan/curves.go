package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var curvesCmd = &cobra.Command{
	Use:   "curves",
	Short: "List configured workflow runtime curves",
	Long: `List every configured workflow and its tabulated runtime curve
(minutes per subject at each measured thread count). Built-in curves were
measured at a 2.6 GHz reference CPU; additional curves come from the
config file's curves section.`,
	RunE:          runCurves,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(curvesCmd)
}

// runCurves prints the tabulated points of every configured curve.
func runCurves(_ *cobra.Command, _ []string) error {
	store, err := loadStore()
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "WORKFLOW\tTHREADS\tMIN/SUBJECT")
	for _, workflow := range store.Workflows() {
		cv, err := store.Get(workflow)
		if err != nil {
			return err
		}
		for _, p := range cv.Points() {
			fmt.Fprintf(tw, "%s\t%d\t%.2f\n", workflow, p.Threads, p.Minutes)
		}
	}
	return tw.Flush()
}
