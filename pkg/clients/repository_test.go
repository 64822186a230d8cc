package clients

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hourboard/dashboard-api/pkg/domain"
)

func TestRepository_CreateRoundTrip(t *testing.T) {
	repo := NewRepository()

	created, err := repo.Create(CreateParams{Name: "Acme"})
	assert.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Contains(t, created.LogoURL, "AC")
	assert.Equal(t, domain.ClientActive, created.Status)

	got, err := repo.Get(created.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Acme", got.Name)

	billing, err := repo.Billing(created.ID)
	assert.NoError(t, err)
	assert.NotNil(t, billing)
	assert.Equal(t, 150.0, billing.Rate)
	assert.Equal(t, domain.CycleMonthly, billing.Cycle)
	assert.Equal(t, domain.TermsNet30, billing.Terms)
}

func TestRepository_CreateRequiresName(t *testing.T) {
	repo := NewRepository()

	_, err := repo.Create(CreateParams{Name: "  "})
	assert.True(t, errors.Is(err, ErrMissingName))
}

func TestRepository_NotFound(t *testing.T) {
	repo := NewRepository()

	_, err := repo.Get("missing")
	assert.True(t, errors.Is(err, ErrClientNotFound))

	err = repo.Delete("missing")
	assert.True(t, errors.Is(err, ErrClientNotFound))

	err = repo.AddContact("missing", domain.Contact{Name: "x"})
	assert.True(t, errors.Is(err, ErrClientNotFound))

	created, _ := repo.Create(CreateParams{Name: "Acme"})
	err = repo.DeleteContact(created.ID, 0)
	assert.True(t, errors.Is(err, ErrContactNotFound))

	err = repo.UpdateProject(created.ID, "nope", domain.Project{Name: "x"})
	assert.True(t, errors.Is(err, ErrProjectNotFound))
}

func TestRepository_ContactsKeepInsertionOrder(t *testing.T) {
	repo := NewRepository()
	created, _ := repo.Create(CreateParams{Name: "Acme"})

	assert.NoError(t, repo.AddContact(created.ID, domain.Contact{Name: "first"}))
	assert.NoError(t, repo.AddContact(created.ID, domain.Contact{Name: "second"}))
	assert.NoError(t, repo.AddContact(created.ID, domain.Contact{Name: "third"}))
	assert.NoError(t, repo.DeleteContact(created.ID, 1))

	contacts, err := repo.Contacts(created.ID)
	assert.NoError(t, err)
	assert.Len(t, contacts, 2)
	assert.Equal(t, "first", contacts[0].Name)
	assert.Equal(t, "third", contacts[1].Name)
}

func TestRepository_ProjectLifecycle(t *testing.T) {
	repo := NewRepository()
	created, _ := repo.Create(CreateParams{Name: "Acme"})

	project, err := repo.AddProject(created.ID, domain.Project{Name: "Retrofit", Deadline: "2024-09-01"})
	assert.NoError(t, err)
	assert.NotEmpty(t, project.ID)
	assert.Equal(t, domain.ProjectPlanning, project.Status)

	assert.NoError(t, repo.UpdateProject(created.ID, project.ID, domain.Project{Status: domain.ProjectCompleted}))
	projects, _ := repo.Projects(created.ID)
	assert.Equal(t, domain.ProjectCompleted, projects[0].Status)

	assert.NoError(t, repo.DeleteProject(created.ID, project.ID))
	projects, _ = repo.Projects(created.ID)
	assert.Empty(t, projects)
}

func TestRepository_BillingValidation(t *testing.T) {
	repo := NewRepository()
	created, _ := repo.Create(CreateParams{Name: "Acme"})

	err := repo.UpdateBilling(created.ID, domain.BillingProfile{Rate: -5})
	assert.True(t, errors.Is(err, ErrNegativeRate))

	err = repo.UpdateBilling(created.ID, domain.BillingProfile{
		Rate: 200, Currency: "EUR", Cycle: domain.CycleWeekly, Terms: domain.TermsNet15,
	})
	assert.NoError(t, err)

	billing, _ := repo.Billing(created.ID)
	assert.Equal(t, 200.0, billing.Rate)
	assert.Equal(t, "EUR", billing.Currency)
}

func TestRepository_DeleteCascades(t *testing.T) {
	repo := NewRepository()
	created, _ := repo.Create(CreateParams{Name: "Acme"})
	repo.AddContact(created.ID, domain.Contact{Name: "x"})
	repo.AddNote(created.ID, domain.Note{Content: "y"})

	assert.NoError(t, repo.Delete(created.ID))
	assert.Empty(t, repo.List())

	_, err := repo.Contacts(created.ID)
	assert.True(t, errors.Is(err, ErrClientNotFound))
}

func TestInitials(t *testing.T) {
	assert.Equal(t, "AC", initials("Acme"))
	assert.Equal(t, "AC", initials("Acme Corporation"))
	assert.Equal(t, "GI", initials("Globex Industries"))
	assert.Equal(t, "X", initials("x"))
	assert.Equal(t, "?", initials("   "))
}

func TestClientForJobCode(t *testing.T) {
	repo := NewRepository()
	repo.SeedSampleData()

	t.Run("substring table wins", func(t *testing.T) {
		id, ok := repo.ClientForJobCode(domain.JobCode{ID: "99", Name: "Acme Assembly Line"})
		assert.True(t, ok)
		assert.Equal(t, "1", id)

		id, ok = repo.ClientForJobCode(domain.JobCode{ID: "4", Name: "STARK prototype"})
		assert.True(t, ok)
		assert.Equal(t, "5", id)
	})

	t.Run("modulo fallback", func(t *testing.T) {
		// 7 mod 5 + 1 = 3
		id, ok := repo.ClientForJobCode(domain.JobCode{ID: "7", Name: "Internal Ops"})
		assert.True(t, ok)
		assert.Equal(t, "3", id)
	})

	t.Run("fallback disabled drops unmapped codes", func(t *testing.T) {
		repo.FallbackMapping = false
		defer func() { repo.FallbackMapping = true }()

		_, ok := repo.ClientForJobCode(domain.JobCode{ID: "7", Name: "Internal Ops"})
		assert.False(t, ok)
	})

	t.Run("non numeric id has no fallback", func(t *testing.T) {
		_, ok := repo.ClientForJobCode(domain.JobCode{ID: "abc", Name: "Internal Ops"})
		assert.False(t, ok)
	})

	t.Run("multiple substring matches resolve stably", func(t *testing.T) {
		// "acme" sorts before "globex"; the same client wins every run.
		for i := 0; i < 20; i++ {
			id, ok := repo.ClientForJobCode(domain.JobCode{ID: "99", Name: "Acme/Globex shared line"})
			assert.True(t, ok)
			assert.Equal(t, "1", id)
		}
	})
}

func TestRepository_SnapshotIsolation(t *testing.T) {
	repo := NewRepository()
	repo.SeedSampleData()

	snap := repo.Snapshot()
	assert.Len(t, snap.List(), 5)
	assert.True(t, snap.Seeded())

	created, err := repo.Create(CreateParams{Name: "Wayne Enterprises"})
	assert.NoError(t, err)
	assert.NoError(t, repo.UpdateBilling("1", domain.BillingProfile{Rate: 999, Currency: "USD"}))
	assert.NoError(t, repo.AddContact("1", domain.Contact{Name: "late arrival"}))
	assert.NoError(t, repo.Delete("2"))

	// The snapshot still reflects the state at copy time.
	assert.Len(t, snap.List(), 5)
	_, err = snap.Get(created.ID)
	assert.True(t, errors.Is(err, ErrClientNotFound))

	billing, err := snap.Billing("1")
	assert.NoError(t, err)
	assert.Equal(t, 175.0, billing.Rate)

	_, err = snap.Get("2")
	assert.NoError(t, err)
}

func TestSeedSampleData(t *testing.T) {
	repo := NewRepository()
	assert.False(t, repo.Seeded())

	repo.SeedSampleData()
	assert.True(t, repo.Seeded())
	assert.Len(t, repo.List(), 5)

	// Every owned record points at an existing client.
	for id := range repo.contacts {
		_, ok := repo.clients[id]
		assert.True(t, ok)
	}
	for id := range repo.projects {
		_, ok := repo.clients[id]
		assert.True(t, ok)
	}
	for id := range repo.billing {
		_, ok := repo.clients[id]
		assert.True(t, ok)
	}
}
