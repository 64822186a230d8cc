package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/hourboard/dashboard-api/pkg/domain"
)

// Grouping periods for custom reports.
const (
	GroupByDay  = "Daily"
	GroupByWeek = "Weekly"
)

// GroupKey buckets a date into its reporting period.
func GroupKey(t time.Time, groupBy string) string {
	if groupBy == GroupByWeek {
		year, week := t.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	}
	return t.Format(domain.DateFormat)
}

// GroupTitle renders the period for table headers.
func GroupTitle(t time.Time, groupBy string) string {
	if groupBy == GroupByWeek {
		start, end := WeekRange(t)
		return fmt.Sprintf("%s - %s", start.Format("Jan 02"), end.Format("Jan 02, 2006"))
	}
	return t.Format("Monday, 02 Jan 2006")
}

// WeekRange returns the Monday and Sunday around t.
func WeekRange(t time.Time) (time.Time, time.Time) {
	offset := int(t.Weekday())
	if offset == 0 {
		offset = 7
	}
	start := t.AddDate(0, 0, -offset+1)
	end := start.AddDate(0, 0, 6)
	return start, end
}

// GroupedHours buckets the active-range entries by period. Entries whose
// date fails to parse are skipped.
func (a *Aggregator) GroupedHours(groupBy string) []HoursRow {
	seconds := map[string]int{}
	titles := map[string]string{}
	for _, e := range a.Timesheets {
		if !a.Range.Contains(e.Date) {
			continue
		}
		t, err := time.Parse(domain.DateFormat, e.Date)
		if err != nil {
			continue
		}
		key := GroupKey(t, groupBy)
		seconds[key] += e.Duration
		titles[key] = GroupTitle(t, groupBy)
	}
	rows := make([]HoursRow, 0, len(seconds))
	for key, secs := range seconds {
		rows = append(rows, HoursRow{Key: key, Label: titles[key], Hours: float64(secs) / 3600})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Key < rows[j].Key })
	return rows
}
