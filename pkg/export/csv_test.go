package export

import (
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hourboard/dashboard-api/pkg/domain"
	"github.com/hourboard/dashboard-api/pkg/report"
)

func TestTimesheets(t *testing.T) {
	out, err := Timesheets([]domain.TimesheetEntry{
		{
			ID: "900", UserID: "42", JobcodeID: "7", Type: domain.EntryTypeRegular,
			Start: "2024-01-02T09:00:00Z", End: "2024-01-02T10:01:01Z",
			Date: "2024-01-02", Duration: 3661,
			Notes: `said "ship it", then left`,
		},
	})
	assert.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	assert.NoError(t, err)
	assert.Len(t, records, 2)

	assert.Equal(t, []string{"id", "user_id", "jobcode_id", "type", "start", "end", "date", "duration_seconds", "hours", "notes"}, records[0])
	assert.Equal(t, "900", records[1][0])
	assert.Equal(t, "3661", records[1][7])
	assert.Equal(t, "1.02", records[1][8])

	// Quotes and commas in notes survive the round trip.
	assert.Equal(t, `said "ship it", then left`, records[1][9])
}

func TestHoursTable(t *testing.T) {
	out, err := HoursTable("user_id", []report.HoursRow{
		{Key: "42", Label: "Ada Lovelace", Hours: 2.5},
		{Key: "43", Label: "Turing, Alan", Hours: 2},
	})
	assert.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	assert.NoError(t, err)
	assert.Len(t, records, 3)
	assert.Equal(t, []string{"user_id", "name", "hours"}, records[0])
	assert.Equal(t, []string{"42", "Ada Lovelace", "2.50"}, records[1])
	assert.Equal(t, []string{"43", "Turing, Alan", "2.00"}, records[2])
}

func TestClientRevenue(t *testing.T) {
	out, err := ClientRevenue([]report.RevenueRow{
		{ClientID: "1", Name: "Acme Corporation", Hours: 2.5, Rate: 175, Revenue: 437.5},
	})
	assert.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	assert.NoError(t, err)
	assert.Equal(t, []string{"client_id", "name", "hours", "rate", "revenue"}, records[0])
	assert.Equal(t, []string{"1", "Acme Corporation", "2.50", "175.00", "437.50"}, records[1])
}

func TestTimesheets_EmptyStillHasHeader(t *testing.T) {
	out, err := Timesheets(nil)
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "id,user_id,jobcode_id"))
	assert.Equal(t, 1, strings.Count(strings.TrimSpace(out), "\n")+1)
}
