package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/intern-rota/pkg/core/services"
)

// PublishRotaCmd creates the publishRota command
func PublishRotaCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "publishRota [run_id]",
		Short: "Publish a run's schedule to Google Sheets",
		Long:  "Publish a run's schedule to Google Sheets and email the configured recipients. If no run_id is provided, publishes the latest run.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runID := ""
			if len(args) > 0 {
				runID = args[0]
			}
			noEmail, _ := cmd.Flags().GetBool("no-email")

			app.Logger.Debug("publishRota command", zap.String("run_id", runID), zap.Bool("no_email", noEmail))

			store, err := app.RequireDatabase()
			if err != nil {
				return err
			}

			sheets, gmail, err := app.GoogleClients()
			if err != nil {
				return err
			}

			var notifier services.Notifier
			if !noEmail {
				notifier = gmail
			}

			result, err := services.PublishRota(app.Ctx, store, sheets, notifier, app.Cfg, app.Logger, runID)
			if err != nil {
				return err
			}

			fmt.Printf("\n✅ Rota Published Successfully\n\n")
			fmt.Printf("Run:      %s\n", result.Rota.RunID)
			fmt.Printf("Tab:      %s\n", result.Rota.Title)
			fmt.Printf("Sheet ID: %s\n", app.Cfg.RotaSheetID)
			fmt.Printf("Days:     %d\n\n", len(result.Rota.Rows))

			if len(result.Notified) > 0 {
				fmt.Printf("Notified %d recipients:\n", len(result.Notified))
				for _, to := range result.Notified {
					fmt.Printf("  ✓ %s\n", to)
				}
				fmt.Println()
			}
			if len(result.FailedEmails) > 0 {
				fmt.Printf("⚠️  Failed to email %d recipients:\n", len(result.FailedEmails))
				for _, to := range result.FailedEmails {
					fmt.Printf("  ✗ %s\n", to)
				}
				fmt.Println()
			}

			return nil
		},
	}

	cmd.Flags().Bool("no-email", false, "Skip emailing notifyRecipients")

	return cmd
}
