package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/jakechorley/intern-rota/pkg/core/rota"
)

var exportHeader = []string{"day", "date", "shift", "intern", "hours"}

// ExportRota writes a schedule as CSV, one record per staffed slot.
// Days are 1-based and interns keep their 0-based index. dates may be nil,
// leaving the date column empty.
func ExportRota(w io.Writer, schedule *rota.Schedule, dates []time.Time) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(exportHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, a := range schedule.Assignments {
		date := ""
		if a.Day < len(dates) {
			date = dates[a.Day].Format(dateLayout)
		}

		record := []string{
			strconv.Itoa(a.Day + 1),
			date,
			a.Shift.String(),
			strconv.Itoa(a.Intern),
			strconv.FormatFloat(a.Shift.RealHours(), 'f', 1, 64),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write csv record: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}
