package server

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/hourboard/dashboard-api/pkg/clients"
	"github.com/hourboard/dashboard-api/pkg/domain"
	"github.com/hourboard/dashboard-api/pkg/export"
	"github.com/hourboard/dashboard-api/pkg/report"
	"github.com/hourboard/dashboard-api/pkg/session"
	"github.com/hourboard/dashboard-api/pkg/tracker"
)

type Controller struct {
	Sessions *session.Store
}

func NewController(sessions *session.Store) *Controller {
	return &Controller{Sessions: sessions}
}

// failure maps the error taxonomy onto HTTP statuses: auth failures 401,
// missing simulated entities 404, local validation 400, everything the
// tracker refused 502.
func failure(err error) Response {
	switch {
	case errors.Is(err, tracker.ErrAuthenticationFailed):
		return unauthorized(err)
	case errors.Is(err, clients.ErrClientNotFound),
		errors.Is(err, clients.ErrContactNotFound),
		errors.Is(err, clients.ErrProjectNotFound),
		errors.Is(err, clients.ErrNoteNotFound),
		errors.Is(err, clients.ErrBillingNotFound):
		return notFound(err)
	case errors.Is(err, domain.ErrInvalidTimeRange),
		errors.Is(err, domain.ErrInvalidDate),
		errors.Is(err, clients.ErrMissingName),
		errors.Is(err, clients.ErrNegativeRate):
		return badRequest(err)
	}
	return badGateway(err)
}

func (c *Controller) GetStatus(req Request) Response {
	return ok(map[string]interface{}{
		"status":   "OK",
		"sessions": c.Sessions.Count(),
	})
}

func (c *Controller) PostSession(req Request) Response {
	var payload struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(req.body, &payload); err != nil {
		return badRequest(err)
	}
	if payload.Token == "" {
		return badRequest("Missing token")
	}
	sess, err := c.Sessions.Create(payload.Token)
	if err != nil {
		return failure(err)
	}
	return ok(map[string]interface{}{
		"session_id":   sess.ID,
		"current_user": sess.CurrentUser(),
	})
}

func (c *Controller) DeleteSession(req Request) Response {
	sess := currentSession(req.r)
	c.Sessions.Destroy(sess.ID)
	return noContent()
}

func (c *Controller) PostReload(req Request) Response {
	sess := currentSession(req.r)

	var payload struct {
		domain.TimesheetFilters
		Quiet bool `json:"quiet"`
	}
	if err := json.Unmarshal(req.body, &payload); err != nil {
		return badRequest(err)
	}
	if err := sess.Reload(payload.TimesheetFilters, payload.Quiet); err != nil {
		return failure(err)
	}
	return ok(map[string]interface{}{
		"users":      len(sess.Users()),
		"jobcodes":   len(sess.Jobcodes()),
		"timesheets": len(sess.Timesheets()),
		"clients":    len(sess.Clients()),
	})
}

func (c *Controller) GetUsers(req Request) Response {
	return ok(currentSession(req.r).Users())
}

func (c *Controller) GetJobcodes(req Request) Response {
	return ok(currentSession(req.r).Jobcodes())
}

func (c *Controller) GetTimesheets(req Request) Response {
	return ok(currentSession(req.r).Timesheets())
}

func (c *Controller) PostTimesheet(req Request) Response {
	sess := currentSession(req.r)
	var entry domain.TimesheetEntry
	if err := json.Unmarshal(req.body, &entry); err != nil {
		return badRequest(err)
	}
	res, err := sess.CreateEntry(entry)
	if err != nil {
		return failure(err)
	}
	return ok(res)
}

func (c *Controller) PutTimesheet(req Request) Response {
	sess := currentSession(req.r)
	var changes domain.TimesheetEntry
	if err := json.Unmarshal(req.body, &changes); err != nil {
		return badRequest(err)
	}
	res, err := sess.UpdateEntry(mux.Vars(req.r)["id"], changes)
	if err != nil {
		return failure(err)
	}
	return ok(res)
}

func (c *Controller) DeleteTimesheet(req Request) Response {
	sess := currentSession(req.r)
	res, err := sess.DeleteEntry(mux.Vars(req.r)["id"])
	if err != nil {
		return failure(err)
	}
	return ok(res)
}

func (c *Controller) GetClients(req Request) Response {
	return ok(currentSession(req.r).Clients())
}

func (c *Controller) GetClient(req Request) Response {
	client, err := currentSession(req.r).Client(mux.Vars(req.r)["id"])
	if err != nil {
		return failure(err)
	}
	return ok(client)
}

func (c *Controller) PostClient(req Request) Response {
	var params clients.CreateParams
	if err := json.Unmarshal(req.body, &params); err != nil {
		return badRequest(err)
	}
	client, err := currentSession(req.r).CreateClient(params)
	if err != nil {
		return failure(err)
	}
	return ok(client)
}

func (c *Controller) PutClient(req Request) Response {
	var changes domain.Client
	if err := json.Unmarshal(req.body, &changes); err != nil {
		return badRequest(err)
	}
	client, err := currentSession(req.r).UpdateClient(mux.Vars(req.r)["id"], changes)
	if err != nil {
		return failure(err)
	}
	return ok(client)
}

func (c *Controller) DeleteClient(req Request) Response {
	if err := currentSession(req.r).DeleteClient(mux.Vars(req.r)["id"]); err != nil {
		return failure(err)
	}
	return noContent()
}

func (c *Controller) GetClientStats(req Request) Response {
	sess := currentSession(req.r)
	clientID := mux.Vars(req.r)["id"]
	if _, err := sess.Client(clientID); err != nil {
		return failure(err)
	}
	agg := sess.Report()
	hours := agg.HoursForClient(clientID, nil)
	return ok(map[string]interface{}{
		"hours":         hours,
		"revenue":       agg.RevenueForClient(clientID, nil),
		"status_counts": agg.ProjectStatusCounts(clientID),
		"hours_display": report.FormatDuration(int(hours * 3600)),
	})
}

func (c *Controller) GetContacts(req Request) Response {
	list, err := currentSession(req.r).Contacts(mux.Vars(req.r)["id"])
	if err != nil {
		return failure(err)
	}
	return ok(list)
}

func (c *Controller) PostContact(req Request) Response {
	var contact domain.Contact
	if err := json.Unmarshal(req.body, &contact); err != nil {
		return badRequest(err)
	}
	if err := currentSession(req.r).AddContact(mux.Vars(req.r)["id"], contact); err != nil {
		return failure(err)
	}
	return ok(contact)
}

func (c *Controller) PutContact(req Request) Response {
	index, err := strconv.Atoi(mux.Vars(req.r)["index"])
	if err != nil {
		return badRequest("Invalid contact index")
	}
	var contact domain.Contact
	if err := json.Unmarshal(req.body, &contact); err != nil {
		return badRequest(err)
	}
	if err := currentSession(req.r).UpdateContact(mux.Vars(req.r)["id"], index, contact); err != nil {
		return failure(err)
	}
	return ok(contact)
}

func (c *Controller) DeleteContact(req Request) Response {
	index, err := strconv.Atoi(mux.Vars(req.r)["index"])
	if err != nil {
		return badRequest("Invalid contact index")
	}
	if err := currentSession(req.r).DeleteContact(mux.Vars(req.r)["id"], index); err != nil {
		return failure(err)
	}
	return noContent()
}

func (c *Controller) GetProjects(req Request) Response {
	list, err := currentSession(req.r).Projects(mux.Vars(req.r)["id"])
	if err != nil {
		return failure(err)
	}
	return ok(list)
}

func (c *Controller) PostProject(req Request) Response {
	var project domain.Project
	if err := json.Unmarshal(req.body, &project); err != nil {
		return badRequest(err)
	}
	created, err := currentSession(req.r).AddProject(mux.Vars(req.r)["id"], project)
	if err != nil {
		return failure(err)
	}
	return ok(created)
}

func (c *Controller) PutProject(req Request) Response {
	var changes domain.Project
	if err := json.Unmarshal(req.body, &changes); err != nil {
		return badRequest(err)
	}
	vars := mux.Vars(req.r)
	if err := currentSession(req.r).UpdateProject(vars["id"], vars["project"], changes); err != nil {
		return failure(err)
	}
	return ok(nil)
}

func (c *Controller) DeleteProject(req Request) Response {
	vars := mux.Vars(req.r)
	if err := currentSession(req.r).DeleteProject(vars["id"], vars["project"]); err != nil {
		return failure(err)
	}
	return noContent()
}

func (c *Controller) GetNotes(req Request) Response {
	list, err := currentSession(req.r).Notes(mux.Vars(req.r)["id"])
	if err != nil {
		return failure(err)
	}
	return ok(list)
}

func (c *Controller) PostNote(req Request) Response {
	var note domain.Note
	if err := json.Unmarshal(req.body, &note); err != nil {
		return badRequest(err)
	}
	if err := currentSession(req.r).AddNote(mux.Vars(req.r)["id"], note); err != nil {
		return failure(err)
	}
	return ok(note)
}

func (c *Controller) DeleteNote(req Request) Response {
	index, err := strconv.Atoi(mux.Vars(req.r)["index"])
	if err != nil {
		return badRequest("Invalid note index")
	}
	if err := currentSession(req.r).DeleteNote(mux.Vars(req.r)["id"], index); err != nil {
		return failure(err)
	}
	return noContent()
}

func (c *Controller) GetBilling(req Request) Response {
	billing, err := currentSession(req.r).Billing(mux.Vars(req.r)["id"])
	if err != nil {
		return failure(err)
	}
	return ok(billing)
}

func (c *Controller) PutBilling(req Request) Response {
	var profile domain.BillingProfile
	if err := json.Unmarshal(req.body, &profile); err != nil {
		return badRequest(err)
	}
	if err := currentSession(req.r).UpdateBilling(mux.Vars(req.r)["id"], profile); err != nil {
		return failure(err)
	}
	return ok(profile)
}

func (c *Controller) GetOverview(req Request) Response {
	return ok(currentSession(req.r).Report().OverallClientStats())
}

func (c *Controller) GetReport(req Request) Response {
	sess := currentSession(req.r)
	kind := domain.ReportKind(mux.Vars(req.r)["kind"])
	if !domain.AvailableReportKind(kind) {
		return badRequest("Missing or invalid report kind")
	}
	agg := sess.Report()
	switch kind {
	case domain.ReportTimesheets:
		return ok(sess.Timesheets())
	case domain.ReportHoursByUser:
		return ok(agg.HoursByUser())
	case domain.ReportHoursByJob:
		return ok(agg.HoursByJobcode())
	case domain.ReportHoursByClient:
		return ok(agg.HoursByClient())
	case domain.ReportRevenue:
		return ok(agg.ClientRevenue())
	case domain.ReportCustom:
		groupBy := req.r.URL.Query().Get("group")
		if groupBy == "" {
			groupBy = report.GroupByDay
		}
		return ok(agg.GroupedHours(groupBy))
	}
	return badRequest("Missing or invalid report kind")
}

func (c *Controller) GetExport(req Request) Response {
	sess := currentSession(req.r)
	kind := domain.ReportKind(strings.TrimSuffix(mux.Vars(req.r)["kind"], ".csv"))
	if !domain.AvailableReportKind(kind) {
		return badRequest("Missing or invalid report kind")
	}
	agg := sess.Report()

	var content string
	var err error
	switch kind {
	case domain.ReportTimesheets:
		content, err = export.Timesheets(sess.Timesheets())
	case domain.ReportHoursByUser:
		content, err = export.HoursTable("user_id", agg.HoursByUser())
	case domain.ReportHoursByJob:
		content, err = export.HoursTable("jobcode_id", agg.HoursByJobcode())
	case domain.ReportHoursByClient:
		content, err = export.HoursTable("client_id", agg.HoursByClient())
	case domain.ReportRevenue:
		content, err = export.ClientRevenue(agg.ClientRevenue())
	case domain.ReportCustom:
		groupBy := req.r.URL.Query().Get("group")
		if groupBy == "" {
			groupBy = report.GroupByDay
		}
		content, err = export.HoursTable("period", agg.GroupedHours(groupBy))
	}
	if err != nil {
		return internalServerError(err)
	}
	return csvDownload(content)
}

func (c *Controller) GetNotifications(req Request) Response {
	return ok(currentSession(req.r).Notifications())
}

func (c *Controller) PostNotificationsRead(req Request) Response {
	sess := currentSession(req.r)
	var payload struct {
		ID string `json:"id"`
	}
	if len(req.body) > 0 {
		if err := json.Unmarshal(req.body, &payload); err != nil {
			return badRequest(err)
		}
	}
	if payload.ID == "" {
		sess.MarkAllNotificationsRead()
		return ok(nil)
	}
	if !sess.MarkNotificationRead(payload.ID) {
		return notFound(errors.New("notification not found"))
	}
	return ok(nil)
}
