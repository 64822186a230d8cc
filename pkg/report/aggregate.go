package report

import (
	"sort"

	"github.com/hourboard/dashboard-api/pkg/clients"
	"github.com/hourboard/dashboard-api/pkg/domain"
)

// Aggregator computes derived views over one snapshot of the session
// cache. All methods are pure reads; nothing here does I/O.
type Aggregator struct {
	Timesheets []domain.TimesheetEntry
	Jobcodes   []domain.JobCode
	Users      []domain.User
	Clients    *clients.Repository

	// Range is the active global date range; methods taking an optional
	// range fall back to it.
	Range domain.DateRange
}

type (
	HoursRow struct {
		Key   string  `json:"key"`
		Label string  `json:"label"`
		Hours float64 `json:"hours"`
	}

	RevenueRow struct {
		ClientID string  `json:"client_id"`
		Name     string  `json:"name"`
		Hours    float64 `json:"hours"`
		Rate     float64 `json:"rate"`
		Revenue  float64 `json:"revenue"`
	}

	ClientStats struct {
		ActiveClients int     `json:"active_clients"`
		TotalClients  int     `json:"total_clients"`
		TotalProjects int     `json:"total_projects"`
		TotalRevenue  float64 `json:"total_revenue"`
		AvgRate       float64 `json:"avg_rate"`
	}
)

func (a *Aggregator) jobcode(id string) (domain.JobCode, bool) {
	for _, jc := range a.Jobcodes {
		if jc.ID == id {
			return jc, true
		}
	}
	return domain.JobCode{}, false
}

// clientFor resolves the derived client of an entry through the job code
// lookup.
func (a *Aggregator) clientFor(e domain.TimesheetEntry) (string, bool) {
	jc, ok := a.jobcode(e.JobcodeID)
	if !ok {
		return "", false
	}
	return a.Clients.ClientForJobCode(jc)
}

// HoursForClient sums duration/3600 over entries whose derived client
// matches clientID and whose date falls inside r, both bounds inclusive.
// A nil range means the active global range.
func (a *Aggregator) HoursForClient(clientID string, r *domain.DateRange) float64 {
	if r == nil {
		r = &a.Range
	}
	var seconds int
	for _, e := range a.Timesheets {
		if !r.Contains(e.Date) {
			continue
		}
		if id, ok := a.clientFor(e); ok && id == clientID {
			seconds += e.Duration
		}
	}
	return float64(seconds) / 3600
}

// RevenueForClient is hours times the client billing rate; zero when the
// client has no billing profile.
func (a *Aggregator) RevenueForClient(clientID string, r *domain.DateRange) float64 {
	billing, err := a.Clients.Billing(clientID)
	if err != nil || billing == nil {
		return 0
	}
	return a.HoursForClient(clientID, r) * billing.Rate
}

// ProjectStatusCounts pre-zeroes the four known statuses and counts the
// client's projects into them; unknown statuses become new keys.
func (a *Aggregator) ProjectStatusCounts(clientID string) map[domain.ProjectStatus]int {
	counts := make(map[domain.ProjectStatus]int, len(domain.KnownProjectStatuses))
	for _, status := range domain.KnownProjectStatuses {
		counts[status] = 0
	}
	projects, err := a.Clients.Projects(clientID)
	if err != nil {
		return counts
	}
	for _, p := range projects {
		counts[p.Status]++
	}
	return counts
}

// OverallClientStats aggregates across all clients for the active global
// range. AvgRate is the unweighted mean of the billing rates.
func (a *Aggregator) OverallClientStats() ClientStats {
	var stats ClientStats
	var rateSum float64
	var rated int
	for _, c := range a.Clients.List() {
		stats.TotalClients++
		if c.Status == domain.ClientActive {
			stats.ActiveClients++
		}
		if projects, err := a.Clients.Projects(c.ID); err == nil {
			stats.TotalProjects += len(projects)
		}
		stats.TotalRevenue += a.RevenueForClient(c.ID, nil)
		if billing, err := a.Clients.Billing(c.ID); err == nil && billing != nil {
			rateSum += billing.Rate
			rated++
		}
	}
	if rated > 0 {
		stats.AvgRate = rateSum / float64(rated)
	}
	return stats
}

// HoursByUser totals hours per user over the active range, sorted by key.
func (a *Aggregator) HoursByUser() []HoursRow {
	seconds := map[string]int{}
	for _, e := range a.Timesheets {
		if a.Range.Contains(e.Date) {
			seconds[e.UserID] += e.Duration
		}
	}
	rows := make([]HoursRow, 0, len(seconds))
	for id, secs := range seconds {
		rows = append(rows, HoursRow{Key: id, Label: a.userName(id), Hours: float64(secs) / 3600})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Key < rows[j].Key })
	return rows
}

// HoursByJobcode totals hours per job code over the active range.
func (a *Aggregator) HoursByJobcode() []HoursRow {
	seconds := map[string]int{}
	for _, e := range a.Timesheets {
		if a.Range.Contains(e.Date) {
			seconds[e.JobcodeID] += e.Duration
		}
	}
	rows := make([]HoursRow, 0, len(seconds))
	for id, secs := range seconds {
		label := id
		if jc, ok := a.jobcode(id); ok {
			label = jc.Name
		}
		rows = append(rows, HoursRow{Key: id, Label: label, Hours: float64(secs) / 3600})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Key < rows[j].Key })
	return rows
}

// HoursByClient totals hours per derived client over the active range.
// Entries with no derivable client are dropped.
func (a *Aggregator) HoursByClient() []HoursRow {
	rows := make([]HoursRow, 0)
	for _, c := range a.Clients.List() {
		rows = append(rows, HoursRow{
			Key:   c.ID,
			Label: c.Name,
			Hours: a.HoursForClient(c.ID, nil),
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Key < rows[j].Key })
	return rows
}

// ClientRevenue builds the revenue table across all clients.
func (a *Aggregator) ClientRevenue() []RevenueRow {
	rows := make([]RevenueRow, 0)
	for _, c := range a.Clients.List() {
		var rate float64
		if billing, err := a.Clients.Billing(c.ID); err == nil && billing != nil {
			rate = billing.Rate
		}
		hours := a.HoursForClient(c.ID, nil)
		rows = append(rows, RevenueRow{
			ClientID: c.ID,
			Name:     c.Name,
			Hours:    hours,
			Rate:     rate,
			Revenue:  hours * rate,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ClientID < rows[j].ClientID })
	return rows
}

func (a *Aggregator) userName(id string) string {
	for _, u := range a.Users {
		if u.ID == id {
			return u.FirstName + " " + u.LastName
		}
	}
	return id
}
