package session

import (
	"errors"

	"github.com/hourboard/dashboard-api/pkg/domain"
	"github.com/hourboard/dashboard-api/pkg/tracker"
)

// Reload refreshes the cache for the given filters. The four fetches run
// sequentially; each replaces its cache section on success and leaves it
// untouched on failure, except timesheets which reset to empty. The
// simulated client dataset is installed once the custom fields probe
// succeeds. A success notification is emitted unless quiet is set.
//
// An authentication failure aborts the reload and is returned so the
// caller can surface it; every other failure is absorbed into an error
// notification.
func (s *Session) Reload(filters domain.TimesheetFilters, quiet bool) error {
	if err := filters.Range.Validate(); err != nil {
		s.notifyError(err.Error())
		return err
	}

	var failed bool

	users, err := s.api.GetUsers()
	if err != nil {
		if errors.Is(err, tracker.ErrAuthenticationFailed) {
			s.notifyError(err.Error())
			return err
		}
		s.notifyError("Failed to load users: " + err.Error())
		failed = true
	} else {
		s.mx.Lock()
		s.users = users
		s.mx.Unlock()
	}

	jobcodes, err := s.api.GetJobcodes()
	if err != nil {
		s.notifyError("Failed to load job codes: " + err.Error())
		failed = true
	} else {
		s.mx.Lock()
		s.jobcodes = jobcodes
		s.mx.Unlock()
	}

	// The probe only checks that the endpoint answers; its payload is
	// irrelevant. Client data never comes from the tracker.
	if err := s.api.ProbeCustomFields(); err != nil {
		s.notifyError("Failed to probe custom fields: " + err.Error())
		failed = true
	} else {
		s.mx.Lock()
		if !s.clients.Seeded() {
			s.clients.SeedSampleData()
		}
		s.mx.Unlock()
	}

	var emptyRange bool
	entries, err := s.api.GetTimesheets(filters)
	s.mx.Lock()
	if err != nil {
		s.timesheets = nil
	} else {
		// Keep only entries inside the requested range; the tracker
		// already filters but replacement must honor the bounds.
		kept := entries[:0]
		for _, e := range entries {
			if filters.Range.Contains(e.Date) {
				kept = append(kept, e)
			}
		}
		s.timesheets = kept
		s.activeRange = filters.Range
		emptyRange = len(kept) == 0
	}
	s.mx.Unlock()
	if err != nil {
		s.notifyError("Failed to load timesheets: " + err.Error())
		failed = true
	}

	if !failed && !quiet {
		if emptyRange {
			s.notifyInfo("No timesheet entries in the selected range")
		}
		s.notifySuccess("Data refreshed")
	}
	return nil
}
