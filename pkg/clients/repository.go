package clients

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	gouuid "github.com/nu7hatch/gouuid"

	"github.com/hourboard/dashboard-api/pkg/domain"
)

var (
	ErrClientNotFound  = errors.New("client not found")
	ErrContactNotFound = errors.New("contact not found")
	ErrProjectNotFound = errors.New("project not found")
	ErrNoteNotFound    = errors.New("note not found")
	ErrBillingNotFound = errors.New("billing profile not found")
	ErrNegativeRate    = errors.New("billing rate must be non-negative")
	ErrMissingName     = errors.New("client name is required")
)

// Billing profile defaults applied on client creation.
const (
	DefaultRate     = 150.0
	DefaultCurrency = "USD"
)

// Repository is the in-memory store of simulated client records. Clients
// are not part of the external tracker; they exist only for reporting and
// live as long as the owning session.
type Repository struct {
	clients map[string]*domain.Client
	order   []string

	contacts map[string][]domain.Contact
	projects map[string][]domain.Project
	notes    map[string][]domain.Note
	billing  map[string]*domain.BillingProfile

	// FallbackMapping enables the modulo heuristic for job codes that
	// match nothing in the lookup table. It mirrors observed dashboard
	// behavior and can be switched off to drop unmapped entries instead.
	FallbackMapping bool

	seeded bool
}

func NewRepository() *Repository {
	return &Repository{
		clients:         map[string]*domain.Client{},
		contacts:        map[string][]domain.Contact{},
		projects:        map[string][]domain.Project{},
		notes:           map[string][]domain.Note{},
		billing:         map[string]*domain.BillingProfile{},
		FallbackMapping: true,
	}
}

// Seeded reports whether the sample dataset has been installed.
func (r *Repository) Seeded() bool {
	return r.seeded
}

// Snapshot deep-copies the repository state. Readers holding a snapshot
// never touch the live maps, so they need no synchronization against
// later writes through the original.
func (r *Repository) Snapshot() *Repository {
	cp := &Repository{
		clients:         make(map[string]*domain.Client, len(r.clients)),
		order:           append([]string(nil), r.order...),
		contacts:        make(map[string][]domain.Contact, len(r.contacts)),
		projects:        make(map[string][]domain.Project, len(r.projects)),
		notes:           make(map[string][]domain.Note, len(r.notes)),
		billing:         make(map[string]*domain.BillingProfile, len(r.billing)),
		FallbackMapping: r.FallbackMapping,
		seeded:          r.seeded,
	}
	for id, c := range r.clients {
		c2 := *c
		cp.clients[id] = &c2
	}
	for id, list := range r.contacts {
		cp.contacts[id] = append([]domain.Contact(nil), list...)
	}
	for id, list := range r.projects {
		cp.projects[id] = append([]domain.Project(nil), list...)
	}
	for id, list := range r.notes {
		cp.notes[id] = append([]domain.Note(nil), list...)
	}
	for id, b := range r.billing {
		b2 := *b
		cp.billing[id] = &b2
	}
	return cp
}

func (r *Repository) List() []domain.Client {
	out := make([]domain.Client, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *r.clients[id])
	}
	return out
}

func (r *Repository) Get(id string) (*domain.Client, error) {
	c, ok := r.clients[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrClientNotFound, id)
	}
	cp := *c
	return &cp, nil
}

// CreateParams carries the caller-supplied fields of a new client.
type CreateParams struct {
	Name     string `json:"name"`
	Industry string `json:"industry"`
	Address  string `json:"address"`
	Website  string `json:"website"`
}

// Create adds a client with a generated id, a generated avatar logo URL
// and a default billing profile.
func (r *Repository) Create(params CreateParams) (*domain.Client, error) {
	if strings.TrimSpace(params.Name) == "" {
		return nil, ErrMissingName
	}
	u4, err := gouuid.NewV4()
	if err != nil {
		return nil, err
	}
	client := &domain.Client{
		ID:        u4.String(),
		Name:      params.Name,
		Industry:  params.Industry,
		Status:    domain.ClientActive,
		CreatedAt: time.Now().Format(domain.DateFormat),
		Address:   params.Address,
		Website:   params.Website,
		LogoURL:   logoURL(params.Name),
	}
	r.install(client)
	return client, nil
}

// install registers a client together with its default billing profile.
func (r *Repository) install(client *domain.Client) {
	r.clients[client.ID] = client
	r.order = append(r.order, client.ID)
	r.billing[client.ID] = &domain.BillingProfile{
		Rate:     DefaultRate,
		Currency: DefaultCurrency,
		Cycle:    domain.CycleMonthly,
		Terms:    domain.TermsNet30,
	}
}

func (r *Repository) Update(id string, changes domain.Client) (*domain.Client, error) {
	c, ok := r.clients[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrClientNotFound, id)
	}
	if changes.Name != "" {
		c.Name = changes.Name
	}
	if changes.Industry != "" {
		c.Industry = changes.Industry
	}
	if changes.Status != "" {
		c.Status = changes.Status
	}
	if changes.Address != "" {
		c.Address = changes.Address
	}
	if changes.Website != "" {
		c.Website = changes.Website
	}
	cp := *c
	return &cp, nil
}

// Delete removes the client and everything it owns.
func (r *Repository) Delete(id string) error {
	if _, ok := r.clients[id]; !ok {
		return fmt.Errorf("%w: %s", ErrClientNotFound, id)
	}
	delete(r.clients, id)
	delete(r.contacts, id)
	delete(r.projects, id)
	delete(r.notes, id)
	delete(r.billing, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *Repository) Contacts(clientID string) ([]domain.Contact, error) {
	if _, ok := r.clients[clientID]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrClientNotFound, clientID)
	}
	return append([]domain.Contact(nil), r.contacts[clientID]...), nil
}

// AddContact appends a contact. Contacts have no id of their own; they
// are addressed by insertion order.
func (r *Repository) AddContact(clientID string, contact domain.Contact) error {
	if _, ok := r.clients[clientID]; !ok {
		return fmt.Errorf("%w: %s", ErrClientNotFound, clientID)
	}
	r.contacts[clientID] = append(r.contacts[clientID], contact)
	return nil
}

func (r *Repository) UpdateContact(clientID string, index int, contact domain.Contact) error {
	if _, ok := r.clients[clientID]; !ok {
		return fmt.Errorf("%w: %s", ErrClientNotFound, clientID)
	}
	list := r.contacts[clientID]
	if index < 0 || index >= len(list) {
		return fmt.Errorf("%w: %s[%d]", ErrContactNotFound, clientID, index)
	}
	list[index] = contact
	return nil
}

func (r *Repository) DeleteContact(clientID string, index int) error {
	if _, ok := r.clients[clientID]; !ok {
		return fmt.Errorf("%w: %s", ErrClientNotFound, clientID)
	}
	list := r.contacts[clientID]
	if index < 0 || index >= len(list) {
		return fmt.Errorf("%w: %s[%d]", ErrContactNotFound, clientID, index)
	}
	r.contacts[clientID] = append(list[:index], list[index+1:]...)
	return nil
}

func (r *Repository) Projects(clientID string) ([]domain.Project, error) {
	if _, ok := r.clients[clientID]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrClientNotFound, clientID)
	}
	return append([]domain.Project(nil), r.projects[clientID]...), nil
}

// AddProject appends a project with a generated time-based id.
func (r *Repository) AddProject(clientID string, project domain.Project) (*domain.Project, error) {
	if _, ok := r.clients[clientID]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrClientNotFound, clientID)
	}
	if project.Status == "" {
		project.Status = domain.ProjectPlanning
	}
	project.ID = fmt.Sprintf("p-%d", time.Now().UnixNano())
	r.projects[clientID] = append(r.projects[clientID], project)
	return &project, nil
}

func (r *Repository) UpdateProject(clientID, projectID string, changes domain.Project) error {
	if _, ok := r.clients[clientID]; !ok {
		return fmt.Errorf("%w: %s", ErrClientNotFound, clientID)
	}
	list := r.projects[clientID]
	for i := range list {
		if list[i].ID != projectID {
			continue
		}
		if changes.Name != "" {
			list[i].Name = changes.Name
		}
		if changes.Status != "" {
			list[i].Status = changes.Status
		}
		if changes.Deadline != "" {
			list[i].Deadline = changes.Deadline
		}
		return nil
	}
	return fmt.Errorf("%w: %s", ErrProjectNotFound, projectID)
}

func (r *Repository) DeleteProject(clientID, projectID string) error {
	if _, ok := r.clients[clientID]; !ok {
		return fmt.Errorf("%w: %s", ErrClientNotFound, clientID)
	}
	list := r.projects[clientID]
	for i := range list {
		if list[i].ID == projectID {
			r.projects[clientID] = append(list[:i], list[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrProjectNotFound, projectID)
}

func (r *Repository) Notes(clientID string) ([]domain.Note, error) {
	if _, ok := r.clients[clientID]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrClientNotFound, clientID)
	}
	return append([]domain.Note(nil), r.notes[clientID]...), nil
}

func (r *Repository) AddNote(clientID string, note domain.Note) error {
	if _, ok := r.clients[clientID]; !ok {
		return fmt.Errorf("%w: %s", ErrClientNotFound, clientID)
	}
	if note.Date == "" {
		note.Date = time.Now().Format(domain.DateFormat)
	}
	r.notes[clientID] = append(r.notes[clientID], note)
	return nil
}

func (r *Repository) DeleteNote(clientID string, index int) error {
	if _, ok := r.clients[clientID]; !ok {
		return fmt.Errorf("%w: %s", ErrClientNotFound, clientID)
	}
	list := r.notes[clientID]
	if index < 0 || index >= len(list) {
		return fmt.Errorf("%w: %s[%d]", ErrNoteNotFound, clientID, index)
	}
	r.notes[clientID] = append(list[:index], list[index+1:]...)
	return nil
}

// Billing returns the client's billing profile, or nil with no error when
// the client exists but carries none. Revenue math treats a missing
// profile as rate zero.
func (r *Repository) Billing(clientID string) (*domain.BillingProfile, error) {
	if _, ok := r.clients[clientID]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrClientNotFound, clientID)
	}
	b, ok := r.billing[clientID]
	if !ok {
		return nil, nil
	}
	bp := *b
	return &bp, nil
}

func (r *Repository) UpdateBilling(clientID string, profile domain.BillingProfile) error {
	if _, ok := r.clients[clientID]; !ok {
		return fmt.Errorf("%w: %s", ErrClientNotFound, clientID)
	}
	if profile.Rate < 0 {
		return ErrNegativeRate
	}
	current, ok := r.billing[clientID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrBillingNotFound, clientID)
	}
	*current = profile
	return nil
}

// logoURL builds an avatar URL carrying the client's initials: the first
// letters of the first two words, or the first two letters of a single
// word name.
func logoURL(name string) string {
	return fmt.Sprintf("https://ui-avatars.com/api/?name=%s&background=0D8ABC&color=fff", initials(name))
}

func initials(name string) string {
	words := strings.Fields(name)
	switch {
	case len(words) >= 2:
		return strings.ToUpper(firstLetter(words[0]) + firstLetter(words[1]))
	case len(words) == 1 && len(words[0]) >= 2:
		return strings.ToUpper(words[0][:2])
	case len(words) == 1:
		return strings.ToUpper(words[0])
	}
	return "?"
}

func firstLetter(word string) string {
	return string([]rune(word)[0])
}

// ClientForJobCode maps a job code onto a client id. The substring table
// is the only semantically meaningful mapping; the modulo heuristic only
// applies when FallbackMapping is on and the sample dataset is present.
func (r *Repository) ClientForJobCode(jc domain.JobCode) (string, bool) {
	name := strings.ToLower(jc.Name)
	// Walk the table in sorted key order so a name matching several
	// substrings always resolves to the same client.
	substrs := make([]string, 0, len(jobcodeClientTable))
	for substr := range jobcodeClientTable {
		substrs = append(substrs, substr)
	}
	sort.Strings(substrs)
	for _, substr := range substrs {
		if strings.Contains(name, substr) {
			if _, ok := r.clients[jobcodeClientTable[substr]]; ok {
				return jobcodeClientTable[substr], true
			}
		}
	}
	if !r.FallbackMapping {
		return "", false
	}
	n, err := strconv.Atoi(jc.ID)
	if err != nil {
		return "", false
	}
	id := strconv.Itoa(n%5 + 1)
	if _, ok := r.clients[id]; !ok {
		return "", false
	}
	return id, true
}
