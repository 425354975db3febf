package commands

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/intern-rota/pkg/core/services"
)

// ListRunsCmd creates the listRuns command
func ListRunsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listRuns",
		Short: "List stored rota runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := app.RequireDatabase()
			if err != nil {
				return err
			}

			runs, err := services.ListRuns(app.Ctx, store, app.Logger)
			if err != nil {
				return err
			}

			if len(runs) == 0 {
				fmt.Println("No runs found.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tCreated\tInterns\tStart\tStatus\tFairness\tPublished")
			for _, r := range runs {
				fairness := "—"
				if r.Fairness != nil {
					fairness = fmt.Sprintf("%.1fh", float64(*r.Fairness)/2)
				}
				published := "—"
				if r.PublishedAt != nil {
					published = r.PublishedAt.Local().Format(time.DateTime)
				}
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\t%s\t%s\n",
					r.ID, r.CreatedAt.Local().Format(time.DateTime), r.Interns, r.StartDate, r.Status, fairness, published)
			}
			return w.Flush()
		},
	}
}

// ViewRunCmd creates the viewRun command
func ViewRunCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "viewRun [run_id]",
		Short: "Show a stored run's schedule (defaults to latest run)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runID := ""
			if len(args) > 0 {
				runID = args[0]
			}

			store, err := app.RequireDatabase()
			if err != nil {
				return err
			}

			app.Logger.Debug("viewRun command", zap.String("run_id", runID))

			view, err := services.ViewRun(app.Ctx, store, app.Logger, runID)
			if err != nil {
				return err
			}

			printRunSummary(view.Run)
			if view.Schedule == nil {
				printNoSchedule(view.Run.Status, view.Run.Reason, view.Run.Interns)
				return nil
			}

			start, err := time.Parse("2006-01-02", view.Run.StartDate)
			if err != nil {
				return fmt.Errorf("failed to parse run start date: %w", err)
			}
			dates, err := services.RotationDates(start, app.Cfg.DateRule)
			if err != nil {
				return err
			}

			printSchedule(view.Schedule, dates)
			printWorkload(services.SummariseWorkload(view.Schedule))
			return nil
		},
	}
}
