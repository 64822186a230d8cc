package session

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hourboard/dashboard-api/pkg/clients"
	"github.com/hourboard/dashboard-api/pkg/domain"
	"github.com/hourboard/dashboard-api/pkg/tracker"
)

// fakeTracker imitates the external API closely enough for session tests.
// It always returns the same two timesheet entries regardless of filters,
// so client side range replacement is observable.
type fakeTracker struct {
	mu             sync.Mutex
	failTimesheets bool
	failProbe      bool
	mutations      int
}

func (f *fakeTracker) handler() http.Handler {
	return http.HandlerFunc(func(res http.ResponseWriter, req *http.Request) {
		if req.Header.Get("Authorization") != "Bearer good-token" {
			res.WriteHeader(http.StatusUnauthorized)
			return
		}
		switch req.URL.Path {
		case "/current_user":
			res.Write([]byte(`{"results":{"users":{"42":{"id":42,"first_name":"Ada","last_name":"Lovelace","email":"ada@example.com","active":true}}}}`))
		case "/users":
			res.Write([]byte(`{"results":{"users":{"42":{"id":42,"first_name":"Ada","last_name":"Lovelace","email":"ada@example.com","active":true}}}}`))
		case "/jobcodes":
			res.Write([]byte(`{"results":{"jobcodes":{"7":{"id":7,"name":"Acme Assembly","active":true}}}}`))
		case "/custom_fields":
			f.mu.Lock()
			fail := f.failProbe
			f.mu.Unlock()
			if fail {
				res.WriteHeader(http.StatusInternalServerError)
				return
			}
			res.Write([]byte(`{"results":{"customfields":{"19142":{"id":19142}}}}`))
		case "/timesheets":
			if req.Method != http.MethodGet {
				f.mu.Lock()
				f.mutations++
				f.mu.Unlock()
				res.Write([]byte(`{"results":{"timesheets":{"1":{"id":1}}}}`))
				return
			}
			f.mu.Lock()
			fail := f.failTimesheets
			f.mu.Unlock()
			if fail {
				res.WriteHeader(http.StatusInternalServerError)
				return
			}
			res.Write([]byte(`{"results":{"timesheets":{
				"900":{"id":900,"user_id":42,"jobcode_id":7,"type":"regular","date":"2024-01-01","duration":3600},
				"901":{"id":901,"user_id":42,"jobcode_id":7,"type":"regular","date":"2024-02-01","duration":7200}
			}}}`))
		default:
			res.WriteHeader(http.StatusNotFound)
		}
	})
}

func (f *fakeTracker) setFailTimesheets(v bool) {
	f.mu.Lock()
	f.failTimesheets = v
	f.mu.Unlock()
}

func newTestSession(t *testing.T, fake *fakeTracker) (*Store, *Session, *httptest.Server) {
	srv := httptest.NewServer(fake.handler())
	store := NewStore(srv.URL)
	sess, err := store.Create("good-token")
	assert.NoError(t, err)
	return store, sess, srv
}

func janRange() domain.TimesheetFilters {
	return domain.TimesheetFilters{
		Range: domain.DateRange{Start: "2024-01-01", End: "2024-01-31"},
	}
}

func TestStore_Lifecycle(t *testing.T) {
	fake := &fakeTracker{}
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()
	store := NewStore(srv.URL)

	t.Run("bad token rejected", func(t *testing.T) {
		_, err := store.Create("bad-token")
		assert.Error(t, err)
		assert.True(t, errors.Is(err, tracker.ErrAuthenticationFailed))
		assert.Equal(t, 0, store.Count())
	})

	t.Run("session created and destroyed", func(t *testing.T) {
		sess, err := store.Create("good-token")
		assert.NoError(t, err)
		assert.NotEmpty(t, sess.ID)
		assert.Equal(t, "Ada", sess.CurrentUser().FirstName)
		assert.Same(t, sess, store.Get(sess.ID))

		store.Destroy(sess.ID)
		assert.Nil(t, store.Get(sess.ID))
	})
}

func TestSession_ReloadReplacesWithinRange(t *testing.T) {
	fake := &fakeTracker{}
	_, sess, srv := newTestSession(t, fake)
	defer srv.Close()

	err := sess.Reload(janRange(), false)
	assert.NoError(t, err)

	// The upstream returned entries for January and February; only the
	// one inside the requested range survives the replacement.
	entries := sess.Timesheets()
	assert.Len(t, entries, 1)
	assert.Equal(t, "900", entries[0].ID)
	assert.Equal(t, "2024-01-01", entries[0].Date)

	assert.Len(t, sess.Users(), 1)
	assert.Len(t, sess.Jobcodes(), 1)
	assert.Equal(t, domain.DateRange{Start: "2024-01-01", End: "2024-01-31"}, sess.ActiveRange())

	notifications := sess.Notifications()
	assert.Len(t, notifications, 1)
	assert.Equal(t, domain.NotifySuccess, notifications[0].Kind)
	assert.Equal(t, "Data refreshed", notifications[0].Message)
}

func TestSession_ReloadQuietSuppressesSuccess(t *testing.T) {
	fake := &fakeTracker{}
	_, sess, srv := newTestSession(t, fake)
	defer srv.Close()

	assert.NoError(t, sess.Reload(janRange(), true))
	assert.Empty(t, sess.Notifications())
}

func TestSession_ReloadTimesheetFailureResetsSection(t *testing.T) {
	fake := &fakeTracker{}
	_, sess, srv := newTestSession(t, fake)
	defer srv.Close()

	assert.NoError(t, sess.Reload(janRange(), true))
	assert.Len(t, sess.Timesheets(), 1)

	fake.setFailTimesheets(true)
	assert.NoError(t, sess.Reload(janRange(), true))

	// Timesheets reset to empty on failure; the other sections keep
	// their previous value.
	assert.Empty(t, sess.Timesheets())
	assert.Len(t, sess.Users(), 1)
	assert.Len(t, sess.Jobcodes(), 1)

	notifications := sess.Notifications()
	assert.Len(t, notifications, 1)
	assert.Equal(t, domain.NotifyError, notifications[0].Kind)
}

func TestSession_ReloadBadRange(t *testing.T) {
	fake := &fakeTracker{}
	_, sess, srv := newTestSession(t, fake)
	defer srv.Close()

	err := sess.Reload(domain.TimesheetFilters{
		Range: domain.DateRange{Start: "bogus", End: "2024-01-31"},
	}, true)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidDate))
}

func TestSession_ClientSeedingSurvivesReload(t *testing.T) {
	fake := &fakeTracker{}
	_, sess, srv := newTestSession(t, fake)
	defer srv.Close()

	assert.Empty(t, sess.Clients())

	assert.NoError(t, sess.Reload(janRange(), true))
	assert.Len(t, sess.Clients(), 5)

	// Edits through the session survive subsequent reloads; the sample
	// dataset is installed once.
	created, err := sess.CreateClient(clients.CreateParams{Name: "Wayne Enterprises"})
	assert.NoError(t, err)

	assert.NoError(t, sess.Reload(janRange(), true))
	assert.Len(t, sess.Clients(), 6)

	got, err := sess.Client(created.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Wayne Enterprises", got.Name)
}

func TestSession_CreateEntryValidationShortCircuits(t *testing.T) {
	fake := &fakeTracker{}
	_, sess, srv := newTestSession(t, fake)
	defer srv.Close()

	_, err := sess.CreateEntry(domain.TimesheetEntry{
		UserID:    "42",
		JobcodeID: "7",
		Start:     "2024-01-02T10:00:00Z",
		End:       "2024-01-02T09:00:00Z",
	})
	assert.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidTimeRange))

	// The request never reached the tracker.
	assert.Equal(t, 0, fake.mutations)

	notifications := sess.Notifications()
	assert.Len(t, notifications, 1)
	assert.Equal(t, domain.NotifyError, notifications[0].Kind)
}

func TestSession_MutationsNotify(t *testing.T) {
	fake := &fakeTracker{}
	_, sess, srv := newTestSession(t, fake)
	defer srv.Close()

	_, err := sess.CreateEntry(domain.TimesheetEntry{
		UserID:    "42",
		JobcodeID: "7",
		Type:      domain.EntryTypeManual,
		Date:      "2024-01-02",
	})
	assert.NoError(t, err)

	_, err = sess.UpdateEntry("900", domain.TimesheetEntry{Notes: "updated"})
	assert.NoError(t, err)

	_, err = sess.DeleteEntry("900")
	assert.NoError(t, err)

	assert.Equal(t, 3, fake.mutations)

	kinds := []domain.NotificationKind{}
	for _, n := range sess.Notifications() {
		kinds = append(kinds, n.Kind)
	}
	assert.Equal(t, []domain.NotificationKind{
		domain.NotifySuccess, domain.NotifySuccess, domain.NotifySuccess,
	}, kinds)

	// No optimistic update: the cache still holds whatever the last
	// reload put there.
	assert.Empty(t, sess.Timesheets())
}

func TestSession_ReloadEmptyRangeNotifiesInfo(t *testing.T) {
	fake := &fakeTracker{}
	_, sess, srv := newTestSession(t, fake)
	defer srv.Close()

	err := sess.Reload(domain.TimesheetFilters{
		Range: domain.DateRange{Start: "2024-03-01", End: "2024-03-31"},
	}, false)
	assert.NoError(t, err)
	assert.Empty(t, sess.Timesheets())

	notifications := sess.Notifications()
	assert.Len(t, notifications, 2)
	assert.Equal(t, domain.NotifyInfo, notifications[0].Kind)
	assert.Equal(t, "No timesheet entries in the selected range", notifications[0].Message)
	assert.Equal(t, domain.NotifySuccess, notifications[1].Kind)
}

func TestSession_ReportIsolatedFromClientEdits(t *testing.T) {
	fake := &fakeTracker{}
	_, sess, srv := newTestSession(t, fake)
	defer srv.Close()

	assert.NoError(t, sess.Reload(janRange(), true))

	agg := sess.Report()
	before := agg.OverallClientStats()

	_, err := sess.CreateClient(clients.CreateParams{Name: "Wayne Enterprises"})
	assert.NoError(t, err)
	assert.NoError(t, sess.UpdateBilling("1", domain.BillingProfile{Rate: 999, Currency: "USD"}))

	// The aggregator holds a copy taken before the edits.
	after := agg.OverallClientStats()
	assert.Equal(t, before, after)
	assert.Equal(t, 5, after.TotalClients)

	fresh := sess.Report().OverallClientStats()
	assert.Equal(t, 6, fresh.TotalClients)
}

func TestSession_ReportConcurrentWithClientEdits(t *testing.T) {
	fake := &fakeTracker{}
	_, sess, srv := newTestSession(t, fake)
	defer srv.Close()

	assert.NoError(t, sess.Reload(janRange(), true))

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			agg := sess.Report()
			agg.OverallClientStats()
			agg.ClientRevenue()
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			sess.CreateClient(clients.CreateParams{Name: "Throwaway"})
			sess.UpdateBilling("1", domain.BillingProfile{Rate: float64(i), Currency: "USD"})
		}
	}()
	wg.Wait()
}

func TestSession_ClientOpsNotifyOnMissing(t *testing.T) {
	fake := &fakeTracker{}
	_, sess, srv := newTestSession(t, fake)
	defer srv.Close()

	err := sess.AddContact("missing", domain.Contact{Name: "x"})
	assert.Error(t, err)
	assert.True(t, errors.Is(err, clients.ErrClientNotFound))

	notifications := sess.Notifications()
	assert.Len(t, notifications, 1)
	assert.Equal(t, domain.NotifyError, notifications[0].Kind)
}
