package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/intern-rota/pkg/core/rota"
	"github.com/jakechorley/intern-rota/pkg/core/services"
	"github.com/jakechorley/intern-rota/pkg/solver/pbsolver"
)

// GenerateRotaCmd creates the generateRota command
func GenerateRotaCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generateRota <intern_count>",
		Short: "Solve a 30 day rota for the given number of interns",
		Long: `Solve a 30 day rota that staffs every shift every day within the working time
limits while minimising the workload gap between interns.
The run is stored unless --dry-run is set or no database is configured.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			interns, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("intern_count must be a number: %w", err)
			}

			timeout, _ := cmd.Flags().GetDuration("timeout")
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			out, _ := cmd.Flags().GetString("out")
			start, _ := cmd.Flags().GetString("start")
			seed, _ := cmd.Flags().GetInt64("seed")

			if timeout <= 0 {
				timeout = app.Cfg.SolverTimeout
			}

			params := services.GenerateParams{Interns: interns, DryRun: dryRun}
			if params.StartDate, err = resolveStartDate(app, start); err != nil {
				return err
			}

			if app.Database == nil && !dryRun {
				app.Logger.Warn("No databaseURL configured, the run will not be stored")
			}

			app.Logger.Debug("generateRota command",
				zap.Int("interns", interns),
				zap.Duration("timeout", timeout),
				zap.Bool("dry_run", dryRun))

			ctx, cancel := context.WithTimeout(app.Ctx, timeout)
			defer cancel()

			var store services.GenerateRotaStore
			if app.Database != nil {
				store = app.Database
			}

			solver := app.Solver
			if cmd.Flags().Changed("seed") {
				fmt.Printf("Using seed: %d\n", seed)
				solver = pbsolver.New(pbsolver.WithLogger(app.Logger), pbsolver.WithSeed(seed))
			}

			res, err := services.GenerateRota(ctx, store, solver, app.Logger, params)
			if err != nil {
				var cfgErr *rota.ConfigurationError
				if errors.As(err, &cfgErr) {
					return fmt.Errorf("invalid request: %w", cfgErr)
				}
				return err
			}

			printRunSummary(res.Run)

			if res.Result.Schedule == nil {
				printNoSchedule(res.Run.Status, res.Run.Reason, interns)
				return nil
			}

			dates, err := services.RotationDates(params.StartDate, app.Cfg.DateRule)
			if err != nil {
				return err
			}
			printSchedule(res.Result.Schedule, dates)
			printWorkload(services.SummariseWorkload(res.Result.Schedule))

			if out != "" {
				if err := writeCSV(out, res.Result.Schedule, dates); err != nil {
					return err
				}
				fmt.Printf("✓ Schedule written to %s\n", out)
			}

			return nil
		},
	}

	cmd.Flags().Duration("timeout", 0, "Solver time limit (defaults to solverTimeout from config)")
	cmd.Flags().Bool("dry-run", false, "Solve without saving the run")
	cmd.Flags().String("out", "", "Also write the schedule as CSV to this file")
	cmd.Flags().Int64("seed", 0, "Seed for the order in which the search tries to rebalance interns")
	cmd.Flags().String("start", "", "Calendar date of day 1 (YYYY-MM-DD, defaults to rotationStart or next Sunday)")

	return cmd
}

// resolveStartDate prefers the flag, then config; a zero time lets the service pick next Sunday
func resolveStartDate(app *AppContext, flag string) (time.Time, error) {
	if flag != "" {
		start, err := time.Parse("2006-01-02", flag)
		if err != nil {
			return time.Time{}, fmt.Errorf("start must be YYYY-MM-DD: %w", err)
		}
		return start, nil
	}

	start, ok, err := app.Cfg.StartDate()
	if err != nil || !ok {
		return time.Time{}, err
	}
	return start, nil
}

func writeCSV(path string, schedule *rota.Schedule, dates []time.Time) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := services.ExportRota(f, schedule, dates); err != nil {
		return err
	}
	return f.Close()
}
