package domain

type (
	// User represents an account member of the external tracker workspace
	User struct {
		ID        string `json:"id"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Email     string `json:"email"`
		Active    bool   `json:"active"`
	}

	// JobCode represents a billable activity in the external tracker
	JobCode struct {
		ID     string `json:"id"`
		Name   string `json:"name"`
		Active bool   `json:"active"`
	}

	// TimesheetEntry is one recorded work interval. Start and End are
	// RFC3339 timestamps as sent by the tracker API, Date is YYYY-MM-DD.
	TimesheetEntry struct {
		ID           string            `json:"id,omitempty"`
		UserID       string            `json:"user_id"`
		JobcodeID    string            `json:"jobcode_id"`
		Type         EntryType         `json:"type"`
		Start        string            `json:"start"`
		End          string            `json:"end"`
		Date         string            `json:"date"`
		Duration     int               `json:"duration"`
		Notes        string            `json:"notes"`
		CustomFields map[string]string `json:"customfields,omitempty"`
	}

	// Client is a simulated customer entity layered on top of job codes
	// for reporting. It is never sent to the tracker API.
	Client struct {
		ID        string       `json:"id"`
		Name      string       `json:"name"`
		Industry  string       `json:"industry"`
		Status    ClientStatus `json:"status"`
		CreatedAt string       `json:"created_at"`
		Address   string       `json:"address"`
		Website   string       `json:"website"`
		LogoURL   string       `json:"logo_url"`
	}

	Contact struct {
		Name  string `json:"name"`
		Title string `json:"title"`
		Email string `json:"email"`
		Phone string `json:"phone"`
	}

	Project struct {
		ID       string        `json:"id"`
		Name     string        `json:"name"`
		Status   ProjectStatus `json:"status"`
		Deadline string        `json:"deadline"`
	}

	Note struct {
		Date    string `json:"date"`
		Author  string `json:"author"`
		Content string `json:"content"`
	}

	// BillingProfile holds the rate used for client revenue reports.
	// Exactly one exists per client.
	BillingProfile struct {
		Rate         float64      `json:"rate"`
		Currency     string       `json:"currency"`
		Cycle        BillingCycle `json:"cycle"`
		Terms        PaymentTerms `json:"terms"`
		ContactName  string       `json:"contact_name"`
		BillingEmail string       `json:"billing_email"`
	}

	// Notification is one user-facing status message
	Notification struct {
		ID        string           `json:"id"`
		Kind      NotificationKind `json:"kind"`
		Message   string           `json:"message"`
		Timestamp string           `json:"timestamp"`
		Read      bool             `json:"read"`
	}
)

type EntryType string

const (
	EntryTypeRegular EntryType = "regular"
	EntryTypeManual  EntryType = "manual"
)

type ClientStatus string

const (
	ClientActive   ClientStatus = "active"
	ClientInactive ClientStatus = "inactive"
)

type ProjectStatus string

const (
	ProjectPlanning   ProjectStatus = "Planning"
	ProjectInProgress ProjectStatus = "In Progress"
	ProjectOnHold     ProjectStatus = "On Hold"
	ProjectCompleted  ProjectStatus = "Completed"
)

// KnownProjectStatuses lists the statuses every count report starts from.
var KnownProjectStatuses = []ProjectStatus{
	ProjectPlanning,
	ProjectInProgress,
	ProjectOnHold,
	ProjectCompleted,
}

type BillingCycle string

const (
	CycleWeekly    BillingCycle = "Weekly"
	CycleMonthly   BillingCycle = "Monthly"
	CycleQuarterly BillingCycle = "Quarterly"
)

type PaymentTerms string

const (
	TermsDueOnReceipt PaymentTerms = "Due on Receipt"
	TermsNet15        PaymentTerms = "Net 15"
	TermsNet30        PaymentTerms = "Net 30"
	TermsNet45        PaymentTerms = "Net 45"
)

type NotificationKind string

const (
	NotifySuccess NotificationKind = "success"
	NotifyError   NotificationKind = "error"
	NotifyInfo    NotificationKind = "info"
)

// ReportKind is the closed set of table reports the dashboard can render
// and export.
type ReportKind string

const (
	ReportTimesheets    ReportKind = "timesheets"
	ReportHoursByUser   ReportKind = "hours_by_user"
	ReportHoursByJob    ReportKind = "hours_by_jobcode"
	ReportHoursByClient ReportKind = "hours_by_client"
	ReportRevenue       ReportKind = "client_revenue"
	ReportCustom        ReportKind = "custom"
)

// AvailableReportKind reports whether kind is part of the closed set.
func AvailableReportKind(kind ReportKind) bool {
	switch kind {
	case ReportTimesheets, ReportHoursByUser, ReportHoursByJob,
		ReportHoursByClient, ReportRevenue, ReportCustom:
		return true
	}
	return false
}

// FixedCustomFieldIDs are the custom field slots the tracker account
// exposes on every timesheet entry.
var FixedCustomFieldIDs = []string{"19142", "19144", "19146"}
