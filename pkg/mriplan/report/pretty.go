package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

// PrettyFormatter formats the report with colors and styling using lipgloss.
// It is the default for terminal display.
type PrettyFormatter struct{}

// Format writes the formatted report to the buffer.
func (f *PrettyFormatter) Format(w *bytes.Buffer, r *Report) error {
	w.WriteString(f.formatHeader(r))
	w.WriteString("\n")
	w.WriteString(f.formatPlan(r))
	w.WriteString("\n")
	return nil
}

// formatHeader builds the hardware and input summary box.
func (f *PrettyFormatter) formatHeader(r *Report) string {
	var lines []string

	lines = append(lines, fmt.Sprintf("%s %s",
		LabelStyle.Render("Hardware:"),
		ValueStyle.Render(fmt.Sprintf("%d %s cores, %s GB RAM",
			r.Hardware.Cores, r.Hardware.CoreKind(), humanize.FtoaWithDigits(r.Hardware.TotalRAMGB, 1)))))

	lines = append(lines, fmt.Sprintf("%s %s   %s %s GB/job (safe fraction %s)",
		LabelStyle.Render("Workflow:"),
		ValueStyle.Render(r.Workflow),
		LabelStyle.Render("Memory:"),
		humanize.FtoaWithDigits(r.MemPerJobGB, 2),
		humanize.FtoaWithDigits(r.SafeMemFraction, 2)))

	lines = append(lines, fmt.Sprintf("%s %s",
		LabelStyle.Render("Scaling:"),
		MutedStyle.Render(r.Scaling.Note)))

	return HeaderBox.Render(strings.Join(lines, "\n"))
}

// formatPlan builds the recommendation box.
func (f *PrettyFormatter) formatPlan(r *Report) string {
	var lines []string

	if r.Shortcut != nil {
		s := r.Shortcut
		lines = append(lines, TitleStyle.Render("Recommendation (cores exceed subjects)"))
		lines = append(lines, fmt.Sprintf("%s %s threads/job, %s concurrent jobs",
			LabelStyle.Render("Run:"),
			HighlightStyle.Render(fmt.Sprintf("%d", s.Threads)),
			HighlightStyle.Render(fmt.Sprintf("%d", s.Concurrency))))
		runtime := fmt.Sprintf("%.1f min/subject", s.MinutesPerJob)
		if s.Interpolated {
			runtime += " (interpolated)"
		}
		lines = append(lines, fmt.Sprintf("%s %s   %s %.1f jobs/h",
			LabelStyle.Render("Runtime:"), ValueStyle.Render(runtime),
			LabelStyle.Render("Throughput:"), s.Throughput))
		h, m := s.HoursMinutes()
		lines = append(lines, fmt.Sprintf("%s %s",
			LabelStyle.Render("Estimated wall time:"),
			HighlightStyle.Render(fmt.Sprintf("%d h %d m for %d subjects", h, m, s.Concurrency))))
		return PlanBox.Render(strings.Join(lines, "\n"))
	}

	lines = append(lines, TitleStyle.Render("Recommendation"))
	lines = append(lines, fmt.Sprintf("%s %s threads/job, %s concurrent jobs, %.1f jobs/h",
		LabelStyle.Render("Run:"),
		HighlightStyle.Render(fmt.Sprintf("%d", r.Best.Threads)),
		HighlightStyle.Render(fmt.Sprintf("%d", r.Best.Concurrency)),
		r.Throughput))

	if r.Plan != nil {
		for _, phase := range r.Plan.Phases {
			h, m := phase.HoursMinutes()
			lines = append(lines, fmt.Sprintf("%s %d jobs at %dt x %d: %.1f jobs/h, %d h %d m",
				LabelStyle.Render(titleCase(phase.Name)+":"),
				phase.Jobs, phase.Threads, phase.Concurrency, phase.Throughput, h, m))
		}
		h, m := r.Plan.HoursMinutes()
		lines = append(lines, fmt.Sprintf("%s %s",
			LabelStyle.Render("Total wall time:"),
			HighlightStyle.Render(fmt.Sprintf("%d h %d m for %s subjects", h, m, humanize.Comma(int64(r.Subjects))))))
	}

	return PlanBox.Render(strings.Join(lines, "\n"))
}

// titleCase upcases the first letter of a phase name.
func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func init() {
	Register("pretty", func() Formatter {
		return &PrettyFormatter{}
	})
}

// Ensure PrettyFormatter implements Formatter.
var _ Formatter = (*PrettyFormatter)(nil)
