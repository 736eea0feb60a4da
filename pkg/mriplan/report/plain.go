package report

import (
	"bytes"
	"fmt"
	"text/tabwriter"
)

// PlainFormatter formats the report as unstyled text with aligned columns.
// It is suitable for scripting and piping.
type PlainFormatter struct{}

// Format writes the formatted report to the buffer.
func (f *PlainFormatter) Format(w *bytes.Buffer, r *Report) error {
	fmt.Fprintf(w, "Detected: %d %s cores, %.1f GB RAM\n", r.Hardware.Cores, r.Hardware.CoreKind(), r.Hardware.TotalRAMGB)
	fmt.Fprintf(w, "Workflow: %s\n", r.Workflow)
	fmt.Fprintf(w, "Memory: %.2f GB/job, safe fraction %.2f (%s policy)\n", r.MemPerJobGB, r.SafeMemFraction, r.MemoryPolicy)
	fmt.Fprintf(w, "Scaling factor k: %s\n\n", r.Scaling.Note)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	if r.Shortcut != nil {
		s := r.Shortcut
		fmt.Fprintln(tw, "PHASE\tTHR/JOB\tJOBS\tJOBS/H")
		fmt.Fprintf(tw, "shortcut\t%d\t%d\t%.1f\n", s.Threads, s.Concurrency, s.Throughput)
		if err := tw.Flush(); err != nil {
			return err
		}
		h, m := s.HoursMinutes()
		fmt.Fprintf(w, "\nTime for %d subjects: %d h %d m\n", s.Concurrency, h, m)
		return nil
	}

	fmt.Fprintln(tw, "PHASE\tTHR/JOB\tJOBS\tJOBS/H")
	if r.Plan == nil {
		fmt.Fprintf(tw, "steady state\t%d\t%d\t%.1f\n", r.Best.Threads, r.Best.Concurrency, r.Throughput)
		return tw.Flush()
	}

	for _, phase := range r.Plan.Phases {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%.1f\n", phase.Name, phase.Threads, phase.Concurrency, phase.Throughput)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	for _, phase := range r.Plan.Phases {
		h, m := phase.HoursMinutes()
		fmt.Fprintf(w, "Time for %d subjects (%s): %d h %d m\n", phase.Jobs, phase.Name, h, m)
	}
	h, m := r.Plan.HoursMinutes()
	fmt.Fprintf(w, "Total wall-time estimated: %d h %d m\n", h, m)
	return nil
}

func init() {
	Register("plain", func() Formatter {
		return &PlainFormatter{}
	})
}

// Ensure PlainFormatter implements Formatter.
var _ Formatter = (*PlainFormatter)(nil)
