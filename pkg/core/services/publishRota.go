package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/intern-rota/internal/config"
	"github.com/jakechorley/intern-rota/pkg/clients/sheetsclient"
	"github.com/jakechorley/intern-rota/pkg/core/rota"
	"github.com/jakechorley/intern-rota/pkg/core/shifts"
)

// RotaPublisher writes a laid out rota to a spreadsheet
type RotaPublisher interface {
	PublishRota(spreadsheetID string, rota *sheetsclient.PublishedRota) error
}

// Notifier sends plain text emails
type Notifier interface {
	SendEmail(to, subject, body string) error
}

// PublishRotaStore defines the database operations needed for publishing a rota
type PublishRotaStore interface {
	RunReader
	SetRunPublishedAt(ctx context.Context, runID string, publishedAt time.Time) error
}

// PublishRotaResult reports what was published and who was told about it
type PublishRotaResult struct {
	Rota         *sheetsclient.PublishedRota
	Notified     []string
	FailedEmails []string
}

// PublishRota writes a run's schedule to the rota spreadsheet, one row per calendar day,
// records the publish time and emails the configured recipients when notifier is set.
// An empty runID selects the latest run that produced a schedule.
func PublishRota(
	ctx context.Context,
	store PublishRotaStore,
	publisher RotaPublisher,
	notifier Notifier,
	cfg *config.Config,
	logger *zap.Logger,
	runID string,
) (*PublishRotaResult, error) {
	if cfg.RotaSheetID == "" {
		return nil, fmt.Errorf("rotaSheetID is not configured")
	}

	view, err := ViewScheduledRun(ctx, store, logger, runID)
	if err != nil {
		return nil, err
	}
	if view.Schedule == nil {
		return nil, fmt.Errorf("run %s has no schedule to publish (status %s)", view.Run.ID, view.Run.Status)
	}

	start, err := time.Parse(dateLayout, view.Run.StartDate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse run start date: %w", err)
	}

	dates, err := RotationDates(start, cfg.DateRule)
	if err != nil {
		return nil, err
	}

	published := buildPublishedRota(view.Run.ID, view.Schedule, dates)
	logger.Info("Publishing rota",
		zap.String("run_id", view.Run.ID),
		zap.String("tab", published.Title),
		zap.Int("rows", len(published.Rows)))

	if err := publisher.PublishRota(cfg.RotaSheetID, published); err != nil {
		return nil, fmt.Errorf("failed to publish rota: %w", err)
	}

	if err := store.SetRunPublishedAt(ctx, view.Run.ID, time.Now().UTC()); err != nil {
		return nil, fmt.Errorf("failed to record publish time: %w", err)
	}

	result := &PublishRotaResult{Rota: published}
	if notifier == nil || len(cfg.NotifyRecipients) == 0 {
		return result, nil
	}

	subject := fmt.Sprintf("Intern rota published: %s", published.Title)
	body := publishedEmailBody(published, cfg.RotaSheetID)
	for _, to := range cfg.NotifyRecipients {
		if err := notifier.SendEmail(to, subject, body); err != nil {
			logger.Warn("Failed to send rota email", zap.String("to", to), zap.Error(err))
			result.FailedEmails = append(result.FailedEmails, to)
			continue
		}
		result.Notified = append(result.Notified, to)
	}

	logger.Info("Rota notifications sent",
		zap.Int("sent", len(result.Notified)),
		zap.Int("failed", len(result.FailedEmails)))

	return result, nil
}

// buildPublishedRota lays out a schedule with one row per day and one column per shift type
func buildPublishedRota(runID string, schedule *rota.Schedule, dates []time.Time) *sheetsclient.PublishedRota {
	published := &sheetsclient.PublishedRota{
		RunID: runID,
		Title: tabTitle(dates[0], dates[shifts.Days-1]),
		Rows:  make([]sheetsclient.PublishedRotaRow, 0, shifts.Days),
	}
	for _, t := range shifts.All {
		published.Shifts = append(published.Shifts, t.String())
	}

	for d := 0; d < shifts.Days; d++ {
		row := sheetsclient.PublishedRotaRow{
			Day:     d + 1,
			Date:    dates[d].Format(displayLayout),
			Interns: make([]string, len(shifts.All)),
		}
		for s, t := range shifts.All {
			if intern, ok := schedule.Intern(d, t); ok {
				row.Interns[s] = InternLabel(intern)
			}
		}
		published.Rows = append(published.Rows, row)
	}

	return published
}

// tabTitle names a rota tab after its first and last dates
func tabTitle(first, last time.Time) string {
	return fmt.Sprintf("Rota %s - %s", first.Format("Jan 02 2006"), last.Format("Jan 02 2006"))
}

func publishedEmailBody(published *sheetsclient.PublishedRota, sheetID string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "A new intern rota has been published to the tab %q.\n\n", published.Title)
	fmt.Fprintf(&sb, "Spreadsheet: https://docs.google.com/spreadsheets/d/%s\n", sheetID)
	fmt.Fprintf(&sb, "Run: %s\n", published.RunID)
	if len(published.Rows) > 0 {
		fmt.Fprintf(&sb, "Covers %s to %s.\n", published.Rows[0].Date, published.Rows[len(published.Rows)-1].Date)
	}
	return sb.String()
}
