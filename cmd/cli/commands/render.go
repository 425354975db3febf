package commands

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/jakechorley/intern-rota/pkg/core/rota"
	"github.com/jakechorley/intern-rota/pkg/core/services"
	"github.com/jakechorley/intern-rota/pkg/core/shifts"
	"github.com/jakechorley/intern-rota/pkg/db"
)

func printRunSummary(run *db.Run) {
	fmt.Printf("\nRun:     %s\n", run.ID)
	fmt.Printf("Interns: %d\n", run.Interns)
	fmt.Printf("Start:   %s\n", run.StartDate)
	fmt.Printf("Status:  %s\n", run.Status)
	if run.Fairness != nil {
		fmt.Printf("Fairness: %.1f hours between the busiest and idlest intern\n", shifts.UnitsToHours(*run.Fairness))
	}
	fmt.Printf("Solved in %s\n\n", time.Duration(run.SolveMillis)*time.Millisecond)
}

func printNoSchedule(status, reason string, interns int) {
	renderNoSchedule(os.Stdout, status, reason, interns)
}

// renderNoSchedule explains a run that produced no schedule
func renderNoSchedule(w io.Writer, status, reason string, interns int) {
	switch status {
	case "INFEASIBLE":
		fmt.Fprintf(w, "✗ No rota exists for %d interns under the current rules.\n", interns)
	default:
		fmt.Fprintf(w, "⚠️  The solver stopped before finding a rota for %d interns.\n", interns)
	}
	if reason != "" {
		fmt.Fprintf(w, "  Reason: %s\n", reason)
	}
	if status == "INFEASIBLE" {
		fmt.Fprintln(w, "  Try again with a different number of interns.")
	} else {
		fmt.Fprintln(w, "  Try again with a longer --timeout.")
	}
	fmt.Fprintln(w)
}

func printSchedule(schedule *rota.Schedule, dates []time.Time) {
	renderSchedule(os.Stdout, schedule, dates)
}

// renderSchedule writes a day x shift table with 1-based days and 0-based intern indexes
func renderSchedule(w io.Writer, schedule *rota.Schedule, dates []time.Time) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	header := []string{"Day", "Date"}
	for _, t := range shifts.All {
		header = append(header, t.String())
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	for d := 0; d < shifts.Days; d++ {
		row := []string{fmt.Sprintf("%d", d+1), ""}
		if d < len(dates) {
			row[1] = dates[d].Format("Mon Jan 02")
		}
		for _, t := range shifts.All {
			cell := "—"
			if intern, ok := schedule.Intern(d, t); ok {
				cell = fmt.Sprintf("%d", intern)
			}
			row = append(row, cell)
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}

	tw.Flush()
	fmt.Fprintln(w)
}

func printWorkload(summary *services.WorkloadSummary) {
	renderWorkload(os.Stdout, summary)
}

// renderWorkload writes per-intern totals, heaviest first
func renderWorkload(w io.Writer, summary *services.WorkloadSummary) {
	fmt.Fprintf(w, "Workload: %.1f to %.1f hours (fairness %.1f)\n\n",
		summary.MinHours, summary.MaxHours, shifts.UnitsToHours(summary.Fairness))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Intern\tHours\tShifts\tNights\tWeekends")
	for _, iw := range summary.Interns {
		fmt.Fprintf(tw, "%d\t%.1f\t%d\t%d\t%d\n", iw.Intern, iw.Hours, iw.Shifts, iw.Nights, iw.Weekends)
	}
	tw.Flush()
	fmt.Fprintln(w)
}
