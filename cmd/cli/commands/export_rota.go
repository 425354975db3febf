package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jakechorley/intern-rota/pkg/core/services"
)

// ExportRotaCmd creates the exportRota command
func ExportRotaCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exportRota [run_id]",
		Short: "Export a stored run's schedule as CSV (defaults to latest run with a schedule)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runID := ""
			if len(args) > 0 {
				runID = args[0]
			}
			out, _ := cmd.Flags().GetString("out")

			store, err := app.RequireDatabase()
			if err != nil {
				return err
			}

			view, err := services.ViewScheduledRun(app.Ctx, store, app.Logger, runID)
			if err != nil {
				return err
			}
			if view.Schedule == nil {
				return fmt.Errorf("run %s has no schedule to export (status %s)", view.Run.ID, view.Run.Status)
			}

			start, err := time.Parse("2006-01-02", view.Run.StartDate)
			if err != nil {
				return fmt.Errorf("failed to parse run start date: %w", err)
			}
			dates, err := services.RotationDates(start, app.Cfg.DateRule)
			if err != nil {
				return err
			}

			if out == "" {
				return services.ExportRota(os.Stdout, view.Schedule, dates)
			}
			if err := writeCSV(out, view.Schedule, dates); err != nil {
				return err
			}
			fmt.Printf("✓ Run %s written to %s\n", view.Run.ID, out)
			return nil
		},
	}

	cmd.Flags().String("out", "", "File to write (defaults to stdout)")

	return cmd
}
