package tracker

import (
	"encoding/json"
	"sort"
	"strconv"

	"github.com/hourboard/dashboard-api/pkg/domain"
)

// Wire shapes of the tracker API. Collections come back as maps keyed by
// the object id; numeric ids inside the objects are converted to the
// string identifiers the rest of the system uses.
type (
	wireUser struct {
		ID        int    `json:"id"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Email     string `json:"email"`
		Active    bool   `json:"active"`
	}

	wireJobcode struct {
		ID     int    `json:"id"`
		Name   string `json:"name"`
		Active bool   `json:"active"`
	}

	wireTimesheet struct {
		ID           int               `json:"id,omitempty"`
		UserID       int               `json:"user_id,omitempty"`
		JobcodeID    int               `json:"jobcode_id,omitempty"`
		Type         string            `json:"type,omitempty"`
		Start        string            `json:"start,omitempty"`
		End          string            `json:"end,omitempty"`
		Date         string            `json:"date,omitempty"`
		Duration     int               `json:"duration,omitempty"`
		Notes        string            `json:"notes,omitempty"`
		CustomFields map[string]string `json:"customfields,omitempty"`
	}

	usersResponse struct {
		Results struct {
			Users map[string]wireUser `json:"users"`
		} `json:"results"`
	}

	jobcodesResponse struct {
		Results struct {
			Jobcodes map[string]wireJobcode `json:"jobcodes"`
		} `json:"results"`
	}

	timesheetsResponse struct {
		Results struct {
			Timesheets map[string]wireTimesheet `json:"timesheets"`
		} `json:"results"`
	}

	batchRequest struct {
		Data []wireTimesheet `json:"data"`
	}
)

func decodeUsers(b []byte) ([]domain.User, error) {
	var response usersResponse
	if err := json.Unmarshal(b, &response); err != nil {
		return nil, err
	}
	users := make([]domain.User, 0, len(response.Results.Users))
	for id, u := range response.Results.Users {
		users = append(users, domain.User{
			ID:        id,
			FirstName: u.FirstName,
			LastName:  u.LastName,
			Email:     u.Email,
			Active:    u.Active,
		})
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (ts wireTimesheet) toDomain(id string) domain.TimesheetEntry {
	duration := ts.Duration
	if duration < 0 {
		duration = 0
	}
	return domain.TimesheetEntry{
		ID:           id,
		UserID:       strconv.Itoa(ts.UserID),
		JobcodeID:    strconv.Itoa(ts.JobcodeID),
		Type:         domain.EntryType(ts.Type),
		Start:        ts.Start,
		End:          ts.End,
		Date:         ts.Date,
		Duration:     duration,
		Notes:        ts.Notes,
		CustomFields: ts.CustomFields,
	}
}

func toWire(entries []domain.TimesheetEntry) []wireTimesheet {
	data := make([]wireTimesheet, 0, len(entries))
	for _, e := range entries {
		w := wireTimesheet{
			Type:         string(e.Type),
			Start:        e.Start,
			End:          e.End,
			Date:         e.Date,
			Notes:        e.Notes,
			CustomFields: e.CustomFields,
		}
		// Ids travel as integers on the wire; zero values are omitted.
		if e.ID != "" {
			w.ID, _ = strconv.Atoi(e.ID)
		}
		if e.UserID != "" {
			w.UserID, _ = strconv.Atoi(e.UserID)
		}
		if e.JobcodeID != "" {
			w.JobcodeID, _ = strconv.Atoi(e.JobcodeID)
		}
		data = append(data, w)
	}
	return data
}
