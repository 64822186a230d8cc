// Package export renders dashboard tables as CSV downloads. Standard
// library encoding/csv handles quoting.
package export

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/hourboard/dashboard-api/pkg/domain"
	"github.com/hourboard/dashboard-api/pkg/report"
)

// Timesheets renders the raw entry table.
func Timesheets(entries []domain.TimesheetEntry) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	header := []string{"id", "user_id", "jobcode_id", "type", "start", "end", "date", "duration_seconds", "hours", "notes"}
	if err := w.Write(header); err != nil {
		return "", err
	}
	for _, e := range entries {
		record := []string{
			e.ID,
			e.UserID,
			e.JobcodeID,
			string(e.Type),
			e.Start,
			e.End,
			e.Date,
			strconv.Itoa(e.Duration),
			formatFloat(report.Hours(e.Duration)),
			e.Notes,
		}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}
	w.Flush()
	return buf.String(), w.Error()
}

// HoursTable renders a key/label/hours report with the given key header.
func HoursTable(keyHeader string, rows []report.HoursRow) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{keyHeader, "name", "hours"}); err != nil {
		return "", err
	}
	for _, row := range rows {
		if err := w.Write([]string{row.Key, row.Label, formatFloat(row.Hours)}); err != nil {
			return "", err
		}
	}
	w.Flush()
	return buf.String(), w.Error()
}

// ClientRevenue renders the per-client revenue table.
func ClientRevenue(rows []report.RevenueRow) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"client_id", "name", "hours", "rate", "revenue"}); err != nil {
		return "", err
	}
	for _, row := range rows {
		record := []string{
			row.ClientID,
			row.Name,
			formatFloat(row.Hours),
			formatFloat(row.Rate),
			formatFloat(row.Revenue),
		}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}
	w.Flush()
	return buf.String(), w.Error()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}
