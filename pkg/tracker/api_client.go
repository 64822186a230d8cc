package tracker

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"log"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/hourboard/dashboard-api/pkg/domain"
)

const (
	// RequestTimeout bounds every call to the tracker API.
	RequestTimeout = 15 * time.Second

	// rateLimitBackoff is slept before the single retry on HTTP 429.
	rateLimitBackoff = 2 * time.Second

	userAgent = "hourboard-dashboard"
)

var (
	ErrAuthenticationFailed = errors.New("tracker api rejected the auth token")
	ErrNoAuthToken          = errors.New("no auth token set")
	ErrEmptyResponse        = errors.New("tracker api returned an empty result set")
)

// ApiClient talks to the external time-tracking REST API on behalf of one
// session. All calls attach the bearer token set via WithAuthToken.
type ApiClient struct {
	apiUrl     string
	httpClient *http.Client

	backoff   time.Duration
	authToken string
	mx        sync.Mutex
}

func NewApiClient(url string) *ApiClient {
	return &ApiClient{
		apiUrl:     url,
		httpClient: &http.Client{Timeout: RequestTimeout},
		backoff:    rateLimitBackoff,
	}
}

func (c *ApiClient) WithAuthToken(authToken string) *ApiClient {
	c.mx.Lock()
	defer c.mx.Unlock()

	c.authToken = authToken
	return c
}

func (c *ApiClient) token() string {
	c.mx.Lock()
	defer c.mx.Unlock()
	return c.authToken
}

// GetCurrentUser fetches the user the token belongs to. Used as the auth
// check when a session is opened.
func (c *ApiClient) GetCurrentUser() (*domain.User, error) {
	b, err := c.request("GET", "/current_user", nil, nil)
	if err != nil {
		return nil, err
	}
	users, err := decodeUsers(b)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, ErrEmptyResponse
	}
	return &users[0], nil
}

// GetUsers fetches the active users of the workspace, sorted by id.
func (c *ApiClient) GetUsers() ([]domain.User, error) {
	q := url.Values{}
	q.Set("active", "yes")
	b, err := c.request("GET", "/users", q, nil)
	if err != nil {
		return nil, err
	}
	return decodeUsers(b)
}

// GetJobcodes fetches the active job codes of the workspace, sorted by id.
func (c *ApiClient) GetJobcodes() ([]domain.JobCode, error) {
	q := url.Values{}
	q.Set("active", "yes")
	b, err := c.request("GET", "/jobcodes", q, nil)
	if err != nil {
		return nil, err
	}

	var response jobcodesResponse
	if err := json.Unmarshal(b, &response); err != nil {
		return nil, err
	}

	jobcodes := make([]domain.JobCode, 0, len(response.Results.Jobcodes))
	for id, jc := range response.Results.Jobcodes {
		jobcodes = append(jobcodes, domain.JobCode{
			ID:     id,
			Name:   jc.Name,
			Active: jc.Active,
		})
	}
	sort.Slice(jobcodes, func(i, j int) bool { return jobcodes[i].ID < jobcodes[j].ID })
	return jobcodes, nil
}

// ProbeCustomFields checks that the account exposes custom fields. Only
// existence matters; the payload is discarded.
func (c *ApiClient) ProbeCustomFields() error {
	_, err := c.request("GET", "/custom_fields", nil, nil)
	return err
}

// GetTimesheets fetches the entries matching the filters. The tracker
// filters server side; the returned list fully replaces any prior one.
func (c *ApiClient) GetTimesheets(filters domain.TimesheetFilters) ([]domain.TimesheetEntry, error) {
	q := url.Values{}
	q.Set("start_date", filters.Range.Start)
	q.Set("end_date", filters.Range.End)
	q.Set("supplemental_data", "yes")
	if filters.UserID != "" {
		q.Set("user_ids", filters.UserID)
	}
	if filters.JobcodeID != "" {
		q.Set("jobcode_ids", filters.JobcodeID)
	}

	b, err := c.request("GET", "/timesheets", q, nil)
	if err != nil {
		return nil, err
	}

	var response timesheetsResponse
	if err := json.Unmarshal(b, &response); err != nil {
		return nil, err
	}

	entries := make([]domain.TimesheetEntry, 0, len(response.Results.Timesheets))
	for id, ts := range response.Results.Timesheets {
		entries = append(entries, ts.toDomain(id))
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	return entries, nil
}

// CreateTimesheets posts new entries as a batch. Callers reload to see the
// effect; no local state is touched.
func (c *ApiClient) CreateTimesheets(entries []domain.TimesheetEntry) (json.RawMessage, error) {
	return c.request("POST", "/timesheets", nil, batchRequest{Data: toWire(entries)})
}

// UpdateTimesheets puts changed entries as a batch. Every element must
// carry the id of the entry it modifies.
func (c *ApiClient) UpdateTimesheets(entries []domain.TimesheetEntry) (json.RawMessage, error) {
	return c.request("PUT", "/timesheets", nil, batchRequest{Data: toWire(entries)})
}

// DeleteTimesheets deletes entries by id as a batch.
func (c *ApiClient) DeleteTimesheets(ids []string) (json.RawMessage, error) {
	data := make([]wireTimesheet, 0, len(ids))
	for _, id := range ids {
		n, err := strconv.Atoi(id)
		if err != nil {
			return nil, fmt.Errorf("bad timesheet id %q", id)
		}
		data = append(data, wireTimesheet{ID: n})
	}
	return c.request("DELETE", "/timesheets", nil, batchRequest{Data: data})
}

// request issues one authenticated call and applies the wrapper contract:
// 401 maps to ErrAuthenticationFailed, 429 is retried exactly once after a
// fixed backoff, any other non-2xx surfaces the structured error message
// from the body when present.
func (c *ApiClient) request(method, path string, query url.Values, payload interface{}) ([]byte, error) {
	return c.do(method, path, query, payload, true)
}

func (c *ApiClient) do(method, path string, query url.Values, payload interface{}, retryRateLimited bool) ([]byte, error) {
	token := c.token()
	if token == "" {
		return nil, ErrNoAuthToken
	}

	endpoint := c.apiUrl + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var body *bytes.Buffer
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewBuffer(b)
	}

	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequest(method, endpoint, body)
	} else {
		req, err = http.NewRequest(method, endpoint, nil)
	}
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s failed: %v", method, path, err)
	}
	defer resp.Body.Close()
	b, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, ErrAuthenticationFailed
	case resp.StatusCode == http.StatusTooManyRequests:
		if retryRateLimited {
			time.Sleep(c.backoff)
			return c.do(method, path, query, payload, false)
		}
		return nil, apiError(b, fmt.Errorf("%s %s rate limited, status code %d", method, path, resp.StatusCode))
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, apiError(b, fmt.Errorf("%s %s failed with status code %d", method, path, resp.StatusCode))
	}

	log.Println("Tracker request", method, path, "time", time.Since(start))
	return b, nil
}

type errorBody struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// apiError prefers the structured error.message field of the response
// body; fallback carries the raw status text otherwise.
func apiError(b []byte, fallback error) error {
	var eb errorBody
	if err := json.Unmarshal(b, &eb); err == nil && eb.Error.Message != "" {
		return errors.New(eb.Error.Message)
	}
	return fallback
}
