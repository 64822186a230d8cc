package session

import (
	"encoding/json"
	"sync"

	"github.com/hourboard/dashboard-api/pkg/clients"
	"github.com/hourboard/dashboard-api/pkg/domain"
	"github.com/hourboard/dashboard-api/pkg/report"
	"github.com/hourboard/dashboard-api/pkg/tracker"
)

// Session is the explicit per-user context object: the cached tracker
// data, the simulated client repository and the notification ring. Each
// session owns an independent copy; there is no cross-session sharing.
type Session struct {
	ID string

	api *tracker.ApiClient

	mx            sync.RWMutex
	currentUser   *domain.User
	users         []domain.User
	jobcodes      []domain.JobCode
	timesheets    []domain.TimesheetEntry
	activeRange   domain.DateRange
	clients       *clients.Repository
	notifications Ring
}

func newSession(id string, api *tracker.ApiClient, user *domain.User) *Session {
	return &Session{
		ID:          id,
		api:         api,
		currentUser: user,
		clients:     clients.NewRepository(),
	}
}

func (s *Session) CurrentUser() *domain.User {
	s.mx.RLock()
	defer s.mx.RUnlock()
	if s.currentUser == nil {
		return nil
	}
	u := *s.currentUser
	return &u
}

func (s *Session) Users() []domain.User {
	s.mx.RLock()
	defer s.mx.RUnlock()
	return append([]domain.User(nil), s.users...)
}

func (s *Session) Jobcodes() []domain.JobCode {
	s.mx.RLock()
	defer s.mx.RUnlock()
	return append([]domain.JobCode(nil), s.jobcodes...)
}

func (s *Session) Timesheets() []domain.TimesheetEntry {
	s.mx.RLock()
	defer s.mx.RUnlock()
	return append([]domain.TimesheetEntry(nil), s.timesheets...)
}

func (s *Session) ActiveRange() domain.DateRange {
	s.mx.RLock()
	defer s.mx.RUnlock()
	return s.activeRange
}

func (s *Session) Notifications() []domain.Notification {
	s.mx.RLock()
	defer s.mx.RUnlock()
	return s.notifications.All()
}

func (s *Session) MarkNotificationRead(id string) bool {
	s.mx.Lock()
	defer s.mx.Unlock()
	return s.notifications.MarkRead(id)
}

func (s *Session) MarkAllNotificationsRead() {
	s.mx.Lock()
	defer s.mx.Unlock()
	s.notifications.MarkAllRead()
}

// Report builds an aggregation snapshot over the current cache contents.
// The client repository is deep-copied under the lock; the aggregator is
// safe to walk while other requests mutate the session.
func (s *Session) Report() *report.Aggregator {
	s.mx.RLock()
	defer s.mx.RUnlock()
	return &report.Aggregator{
		Timesheets: append([]domain.TimesheetEntry(nil), s.timesheets...),
		Jobcodes:   append([]domain.JobCode(nil), s.jobcodes...),
		Users:      append([]domain.User(nil), s.users...),
		Clients:    s.clients.Snapshot(),
		Range:      s.activeRange,
	}
}

func (s *Session) notifyError(message string) {
	s.mx.Lock()
	defer s.mx.Unlock()
	s.notifications.Add(domain.NotifyError, message)
}

func (s *Session) notifySuccess(message string) {
	s.mx.Lock()
	defer s.mx.Unlock()
	s.notifications.Add(domain.NotifySuccess, message)
}

func (s *Session) notifyInfo(message string) {
	s.mx.Lock()
	defer s.mx.Unlock()
	s.notifications.Add(domain.NotifyInfo, message)
}

// CreateEntry validates the entry locally, then posts it as a
// single-element batch. The cache is not updated optimistically; callers
// reload to observe the effect.
func (s *Session) CreateEntry(entry domain.TimesheetEntry) (json.RawMessage, error) {
	if err := entry.Validate(); err != nil {
		s.notifyError(err.Error())
		return nil, err
	}
	res, err := s.api.CreateTimesheets([]domain.TimesheetEntry{entry})
	if err != nil {
		s.notifyError(err.Error())
		return nil, err
	}
	s.notifySuccess("Timesheet entry created")
	return res, nil
}

// UpdateEntry posts the id merged with the changed fields.
func (s *Session) UpdateEntry(id string, changes domain.TimesheetEntry) (json.RawMessage, error) {
	if err := changes.Validate(); err != nil {
		s.notifyError(err.Error())
		return nil, err
	}
	changes.ID = id
	res, err := s.api.UpdateTimesheets([]domain.TimesheetEntry{changes})
	if err != nil {
		s.notifyError(err.Error())
		return nil, err
	}
	s.notifySuccess("Timesheet entry updated")
	return res, nil
}

func (s *Session) DeleteEntry(id string) (json.RawMessage, error) {
	res, err := s.api.DeleteTimesheets([]string{id})
	if err != nil {
		s.notifyError(err.Error())
		return nil, err
	}
	s.notifySuccess("Timesheet entry deleted")
	return res, nil
}
